package forecast

import (
	"errors"
	"time"
)

// ErrInsufficientHistory is returned when forecasting is attempted before
// the minimum assessment history exists. Recoverable: the caller skips
// forecasting for that employee this cycle.
var ErrInsufficientHistory = errors.New("insufficient assessment history for forecasting")

// #region forecast

// Forecast is a multi-day risk projection for one employee. New forecasts
// supersede old ones; none is ever edited in place.
type Forecast struct {
	ID         string
	EmployeeID string
	Day        int // day index the forecast was generated on

	HorizonDays int
	Curve       []float64 // risk probability per future day, len == HorizonDays
	Lower       []float64 // confidence band, per day
	Upper       []float64

	TippingDetected bool
	TippingDay      int // first curve index at or above the tipping threshold
	PeakDay         int
	PeakValue       float64

	ModelType    string // "ensemble", "trend", "sequence"
	ModelVersion string
	CreatedAt    time.Time
}

// #endregion forecast

// #region config

// Config holds the forecaster's horizon, blend, and model parameters.
type Config struct {
	HorizonDays    int `yaml:"horizon_days"`
	MinHistoryDays int `yaml:"min_history_days"`
	LookbackDays   int `yaml:"lookback_days"`

	// Ensemble blend; the two weights are normalized before use so a
	// config carrying 60/40 or 3/2 reads identically.
	TrendWeight    float64 `yaml:"trend_weight"`
	SequenceWeight float64 `yaml:"sequence_weight"`

	TippingThreshold float64 `yaml:"tipping_threshold"`

	SeasonPeriod int     `yaml:"season_period"` // weekly seasonality
	ARWindow     int     `yaml:"ar_window"`     // sequence model fit window
	Damping      float64 `yaml:"damping"`       // momentum decay per step
}

// DefaultConfig returns the shipped 7-day, 60/40 ensemble tuning.
func DefaultConfig() Config {
	return Config{
		HorizonDays:      7,
		MinHistoryDays:   14,
		LookbackDays:     30,
		TrendWeight:      0.6,
		SequenceWeight:   0.4,
		TippingThreshold: 0.85,
		SeasonPeriod:     7,
		ARWindow:         14,
		Damping:          0.8,
	}
}

// #endregion config

// #region model-interface

// Model fits a risk series and produces an immutable Fit. Either model is
// swappable without touching the decision engine; the blend function is the
// only composition point.
type Model interface {
	Name() string
	Fit(days []int, series []float64) (Fit, error)
}

// Fit is a fitted model snapshot: a pure predictor plus its own
// uncertainty estimate. Fits are produced by periodic refits and read
// concurrently by cycles without locking.
type Fit interface {
	Predict(fromDay, horizon int) []float64
	Uncertainty() float64
}

// Fits pairs the two fitted models as one immutable, versioned snapshot.
type Fits struct {
	Trend    Fit
	Sequence Fit
	Version  string
	FittedAt time.Time
}

// #endregion model-interface
