package detect

import "math"

// #region change-point

// changePointProb estimates the probability that the stability series broke
// regime at its most recent point. The prior window supplies a Gaussian
// model of "no change"; the current value's two-sided tail mass under that
// model is the shift probability. A floor on the prior std keeps perfectly
// flat histories from turning measurement noise into certainty.
const minPriorStd = 0.05

func changePointProb(prior []float64, current float64, eps float64) float64 {
	if len(prior) == 0 {
		return 0
	}
	mean, std := meanStd(prior)
	if std < minPriorStd {
		std = minPriorStd
	}
	z := math.Abs(current-mean) / (std + eps)

	// P(|X - mean| >= |current - mean|) under N(mean, std²), inverted:
	// mass inside ±z grows toward 1 as the shift grows.
	return math.Erf(z / math.Sqrt2)
}

// #endregion change-point

// #region volatility

// volatilityAcceleration computes the short-window dispersion of the
// stability series (with the provisional current value appended) and the
// second difference of that dispersion across the last three days.
func volatilityAcceleration(series []float64, current float64, window int) (volatility, accel float64) {
	full := append(append([]float64{}, series...), current)

	vols := make([]float64, 0, 3)
	// Dispersion for windows ending at t, t-1, t-2.
	for back := 0; back < 3; back++ {
		end := len(full) - back
		if end < 2 {
			break
		}
		start := end - window
		if start < 0 {
			start = 0
		}
		_, std := meanStd(full[start:end])
		vols = append(vols, std)
	}
	if len(vols) == 0 {
		return 0, 0
	}

	volatility = vols[0]
	switch len(vols) {
	case 3:
		accel = vols[0] - 2*vols[1] + vols[2]
	case 2:
		accel = vols[0] - vols[1]
	}
	return volatility, accel
}

// #endregion volatility

// #region stats

func meanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(len(values))
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}

// #endregion stats
