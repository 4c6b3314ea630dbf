package forecast

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/danielpatrickdp/burnout-guardian/internal/detect"
	"github.com/google/uuid"
)

// #region forecaster

// Forecaster blends the trend and sequence models into a single horizon
// curve. Forecast generation is a pure read: it fits nothing when handed
// current Fits, and fits fresh throwaway models only when none exist yet.
type Forecaster struct {
	config   Config
	trend    Model
	sequence Model
}

// NewForecaster wires the two standard models from config.
func NewForecaster(config Config) *Forecaster {
	return &Forecaster{
		config:   config,
		trend:    &TrendModel{SeasonPeriod: config.SeasonPeriod},
		sequence: &SequenceModel{Window: config.ARWindow, Damping: config.Damping},
	}
}

// FitModels fits both models over the history's risk series. Used by the
// periodic refit job to produce a versioned Fits snapshot.
func (f *Forecaster) FitModels(history []detect.Assessment) (*Fits, error) {
	if len(history) < f.config.MinHistoryDays {
		return nil, ErrInsufficientHistory
	}
	days, series := riskSeries(history, f.config.LookbackDays)

	trendFit, err := f.trend.Fit(days, series)
	if err != nil {
		return nil, fmt.Errorf("fit %s: %w", f.trend.Name(), err)
	}
	seqFit, err := f.sequence.Fit(days, series)
	if err != nil {
		return nil, fmt.Errorf("fit %s: %w", f.sequence.Name(), err)
	}

	return &Fits{
		Trend:    trendFit,
		Sequence: seqFit,
		Version:  uuid.New().String(),
		FittedAt: time.Now().UTC(),
	}, nil
}

// #endregion forecaster

// #region forecast

// Forecast produces the horizon curve for one employee. fits may be nil
// (no refit has covered this employee yet), in which case both models are
// fitted inline from the same history; the result is identical either way
// because fitting is deterministic over the series.
func (f *Forecaster) Forecast(employee string, history []detect.Assessment, fits *Fits) (Forecast, error) {
	cfg := f.config
	if len(history) < cfg.MinHistoryDays {
		return Forecast{}, fmt.Errorf("employee %s has %d of %d days: %w",
			employee, len(history), cfg.MinHistoryDays, ErrInsufficientHistory)
	}

	modelVersion := "inline"
	if fits == nil {
		fresh, err := f.FitModels(history)
		if err != nil {
			return Forecast{}, err
		}
		fits = fresh
	} else {
		modelVersion = fits.Version
	}

	day := history[len(history)-1].Day
	trendCurve := fits.Trend.Predict(day, cfg.HorizonDays)
	seqCurve := fits.Sequence.Predict(day, cfg.HorizonDays)

	curve, lower, upper := blendCurves(trendCurve, seqCurve,
		cfg.TrendWeight, cfg.SequenceWeight,
		fits.Trend.Uncertainty(), fits.Sequence.Uncertainty())

	fc := Forecast{
		ID:           uuid.New().String(),
		EmployeeID:   employee,
		Day:          day,
		HorizonDays:  cfg.HorizonDays,
		Curve:        curve,
		Lower:        lower,
		Upper:        upper,
		TippingDay:   -1,
		PeakDay:      argmax(curve),
		PeakValue:    curve[argmax(curve)],
		ModelType:    "ensemble",
		ModelVersion: modelVersion,
		CreatedAt:    time.Now().UTC(),
	}
	for i, v := range curve {
		if v >= cfg.TippingThreshold {
			fc.TippingDetected = true
			fc.TippingDay = i
			break
		}
	}

	if fc.TippingDetected {
		log.Printf("[FORECAST] %s: tipping point at day +%d (%.3f)", employee, fc.TippingDay+1, curve[fc.TippingDay])
	}
	return fc, nil
}

// #endregion forecast

// #region blend

// blendCurves is the named blending function for the ensemble: a weighted
// average of the two curves, with a confidence band widened by model
// disagreement and each model's own residual spread.
func blendCurves(trend, seq []float64, wTrend, wSeq, uTrend, uSeq float64) (curve, lower, upper []float64) {
	total := wTrend + wSeq
	if total == 0 {
		wTrend, wSeq, total = 1, 1, 2
	}
	wTrend /= total
	wSeq /= total

	baseSpread := wTrend*uTrend + wSeq*uSeq

	curve = make([]float64, len(trend))
	lower = make([]float64, len(trend))
	upper = make([]float64, len(trend))
	for i := range trend {
		blended := wTrend*trend[i] + wSeq*seq[i]
		disagreement := math.Abs(trend[i]-seq[i]) / 2

		curve[i] = clamp01(blended)
		lower[i] = clamp01(blended - disagreement - baseSpread)
		upper[i] = clamp01(blended + disagreement + baseSpread)
	}
	return curve, lower, upper
}

// #endregion blend

// #region helpers

// riskSeries extracts aligned (day, risk) pairs from the history tail.
func riskSeries(history []detect.Assessment, lookback int) ([]int, []float64) {
	if lookback > 0 && len(history) > lookback {
		history = history[len(history)-lookback:]
	}
	days := make([]int, len(history))
	series := make([]float64, len(history))
	for i, a := range history {
		days[i] = a.Day
		series[i] = a.RiskProbability
	}
	return days, series
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

// #endregion helpers
