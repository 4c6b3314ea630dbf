package detect

import "time"

// #region risk-level

// RiskLevel buckets risk probability at the configured cut points.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// #endregion risk-level

// #region assessment

// Assessment is one day's stability verdict for one employee.
// Created once per cycle, immutable thereafter; appended to the
// employee's time-ordered history.
type Assessment struct {
	EmployeeID string
	Day        int

	StabilityIndex  float64 // 1 - RiskProbability, exactly
	RiskProbability float64
	RiskLevel       RiskLevel

	Volatility   float64 // short-window dispersion of recent stability indices
	Acceleration float64 // second difference of the volatility series

	TopContributors []string // signal keys, |deviation|×weight descending, <= 5
	AnomalyFlags    []string // signal keys outside the sigma bound of baseline

	// Component breakdown, kept for provenance and the adaptive read path.
	DeviationScore  float64
	AnomalyScore    float64
	ChangePointProb float64

	CreatedAt time.Time
}

// #endregion assessment

// #region detector-config

// Config holds the detector's combination weights and bounds. Weights are
// operator-visible configuration, not buried constants; they are renormalized
// over whichever components are computable on a given day.
type Config struct {
	// Component weights for the risk combination.
	WeightDeviation    float64 `yaml:"weight_deviation"`
	WeightAnomaly      float64 `yaml:"weight_anomaly"`
	WeightChangePoint  float64 `yaml:"weight_change_point"`
	WeightAcceleration float64 `yaml:"weight_acceleration"`

	SigmaThreshold float64 `yaml:"sigma_threshold"` // |z| above this flags a signal anomalous
	EpsilonStd     float64 `yaml:"epsilon_std"`     // floor for near-zero baseline std

	VolatilityWindow int     `yaml:"volatility_window"` // stability indices per volatility estimate
	AccelNorm        float64 `yaml:"accel_norm"`        // acceleration magnitude mapping to component 1.0
	MinHistoryDays   int     `yaml:"min_history_days"`  // below this, history components contribute zero

	// Risk level cut points: < moderate → low, < high → moderate,
	// < critical → high, else critical.
	CutModerate float64 `yaml:"cut_moderate"`
	CutHigh     float64 `yaml:"cut_high"`
	CutCritical float64 `yaml:"cut_critical"`

	MaxContributors int `yaml:"max_contributors"`
}

// DefaultConfig returns the shipped detector tuning.
func DefaultConfig() Config {
	return Config{
		WeightDeviation:    0.35,
		WeightAnomaly:      0.30,
		WeightChangePoint:  0.20,
		WeightAcceleration: 0.15,
		SigmaThreshold:     2.5,
		EpsilonStd:         1e-6,
		VolatilityWindow:   5,
		AccelNorm:          0.10,
		MinHistoryDays:     3,
		CutModerate:        0.40,
		CutHigh:            0.60,
		CutCritical:        0.85,
		MaxContributors:    5,
	}
}

// #endregion detector-config

// #region bucket

// Bucket maps a risk probability to its level. Monotone by construction.
func (c Config) Bucket(risk float64) RiskLevel {
	switch {
	case risk < c.CutModerate:
		return RiskLow
	case risk < c.CutHigh:
		return RiskModerate
	case risk < c.CutCritical:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// #endregion bucket
