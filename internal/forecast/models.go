package forecast

import (
	"fmt"
	"math"
)

// #region trend-model

// TrendModel extrapolates a linear trend plus weekly seasonality, the
// smooth component of the ensemble.
type TrendModel struct {
	SeasonPeriod int
}

// Name implements Model.
func (m *TrendModel) Name() string { return "trend" }

type trendFit struct {
	intercept float64
	slope     float64
	seasonal  []float64 // mean residual per day-of-week
	residStd  float64
}

// Fit performs least-squares on the series against its day indices, then
// folds per-weekday mean residuals into a seasonal profile.
func (m *TrendModel) Fit(days []int, series []float64) (Fit, error) {
	if len(series) < 2 || len(days) != len(series) {
		return nil, fmt.Errorf("trend fit: need >=2 aligned points, have %d/%d", len(days), len(series))
	}
	period := m.SeasonPeriod
	if period <= 0 {
		period = 7
	}

	// Least squares over (day, value).
	n := float64(len(series))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range series {
		x := float64(days[i])
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	var slope float64
	if denom != 0 {
		slope = (n*sumXY - sumX*sumY) / denom
	}
	intercept := (sumY - slope*sumX) / n

	// Seasonal profile from residuals.
	seasonal := make([]float64, period)
	counts := make([]int, period)
	for i, y := range series {
		resid := y - (intercept + slope*float64(days[i]))
		idx := days[i] % period
		seasonal[idx] += resid
		counts[idx]++
	}
	for i := range seasonal {
		if counts[i] > 0 {
			seasonal[i] /= float64(counts[i])
		}
	}

	// Residual spread after trend + seasonality.
	var sq float64
	for i, y := range series {
		r := y - (intercept + slope*float64(days[i]) + seasonal[days[i]%period])
		sq += r * r
	}
	residStd := math.Sqrt(sq / n)

	return &trendFit{
		intercept: intercept,
		slope:     slope,
		seasonal:  seasonal,
		residStd:  residStd,
	}, nil
}

func (f *trendFit) Predict(fromDay, horizon int) []float64 {
	out := make([]float64, horizon)
	period := len(f.seasonal)
	for i := range out {
		day := fromDay + 1 + i
		out[i] = clamp01(f.intercept + f.slope*float64(day) + f.seasonal[day%period])
	}
	return out
}

func (f *trendFit) Uncertainty() float64 { return f.residStd }

// #endregion trend-model

// #region sequence-model

// SequenceModel is a damped autoregressive predictor over the recent
// window, the momentum-sensitive component of the ensemble.
type SequenceModel struct {
	Window  int
	Damping float64
}

// Name implements Model.
func (m *SequenceModel) Name() string { return "sequence" }

type sequenceFit struct {
	mean     float64
	phi      float64 // lag-1 autocorrelation, clamped to [0, 0.95]
	last     float64
	momentum float64 // most recent first difference
	damping  float64
	residStd float64
}

// Fit estimates mean reversion and momentum from the series tail.
func (m *SequenceModel) Fit(days []int, series []float64) (Fit, error) {
	if len(series) < 3 {
		return nil, fmt.Errorf("sequence fit: need >=3 points, have %d", len(series))
	}
	window := m.Window
	if window <= 0 {
		window = 14
	}
	if len(series) > window {
		series = series[len(series)-window:]
	}

	var sum float64
	for _, v := range series {
		sum += v
	}
	mean := sum / float64(len(series))

	// Lag-1 autocorrelation.
	var num, den float64
	for i, v := range series {
		d := v - mean
		den += d * d
		if i > 0 {
			num += d * (series[i-1] - mean)
		}
	}
	var phi float64
	if den > 0 {
		phi = num / den
	}
	if phi < 0 {
		phi = 0
	}
	if phi > 0.95 {
		phi = 0.95
	}

	// One-step residual spread under the fitted recursion.
	var sq float64
	for i := 1; i < len(series); i++ {
		pred := mean + phi*(series[i-1]-mean)
		r := series[i] - pred
		sq += r * r
	}
	residStd := math.Sqrt(sq / float64(len(series)-1))

	return &sequenceFit{
		mean:     mean,
		phi:      phi,
		last:     series[len(series)-1],
		momentum: series[len(series)-1] - series[len(series)-2],
		damping:  m.Damping,
		residStd: residStd,
	}, nil
}

func (f *sequenceFit) Predict(fromDay, horizon int) []float64 {
	out := make([]float64, horizon)
	x := f.last
	mom := f.momentum
	for i := range out {
		x = f.mean + f.phi*(x-f.mean) + mom
		x = clamp01(x)
		out[i] = x
		mom *= f.damping
	}
	return out
}

func (f *sequenceFit) Uncertainty() float64 { return f.residStd }

// #endregion sequence-model

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
