package profile

import (
	"errors"
	"time"

	"github.com/danielpatrickdp/burnout-guardian/internal/decide"
)

// ErrContention is returned when a second actor attempts to mutate one
// employee's profile while another holds it. Recoverable: the caller
// retries, it is never dropped silently.
var ErrContention = errors.New("resilience profile held by another writer")

// #region profile

// Profile is the per-employee adaptive state read by the decision engine
// every cycle and rewritten by the tuner. One row per employee.
type Profile struct {
	EmployeeID string

	Thresholds decide.Thresholds
	State      decide.EngineState

	// Daily intervention counter with its reset day.
	UsedToday  int
	CounterDay int

	// Decay-weighted aggregate of recent effectiveness scores, for the
	// read path; the tuner works from individual outcomes.
	RecentEffectiveness float64
	InterventionTotal   int

	UpdatedAt time.Time
}

// NewProfile returns the starting profile for an employee never seen before.
func NewProfile(employee string) Profile {
	return Profile{
		EmployeeID: employee,
		Thresholds: decide.DefaultThresholds(),
		State:      decide.StateIdle,
		CounterDay: -1,
		UpdatedAt:  time.Now().UTC(),
	}
}

// RollDay resets the daily counter when the cycle day has moved past the
// counter's day. Cooling-down clears with the counter.
func (p *Profile) RollDay(day int) {
	if day == p.CounterDay {
		return
	}
	p.CounterDay = day
	p.UsedToday = 0
	if p.State == decide.StateCoolingDown {
		p.State = decide.StateIdle
	}
}

// #endregion profile

// #region tuner-config

// Config holds the tuner's update rate and bounds.
type Config struct {
	LearningRate     float64 `yaml:"learning_rate"`
	NoiseFloor       float64 `yaml:"noise_floor"`        // |stability delta| below this is no_change
	OutcomeLagCycles int     `yaml:"outcome_lag_cycles"` // cycles after trigger before evaluation
	DecayHalfLife    float64 `yaml:"decay_half_life"`    // days, for the effectiveness aggregate

	ThresholdMin float64 `yaml:"threshold_min"`
	ThresholdMax float64 `yaml:"threshold_max"`
	MinGap       float64 `yaml:"min_gap"` // enforced between adjacent thresholds
}

// DefaultConfig returns the shipped tuner parameters.
func DefaultConfig() Config {
	return Config{
		LearningRate:     0.02,
		NoiseFloor:       0.03,
		OutcomeLagCycles: 2,
		DecayHalfLife:    14,
		ThresholdMin:     0.30,
		ThresholdMax:     0.95,
		MinGap:           0.05,
	}
}

// #endregion tuner-config
