package decide

import (
	"time"

	"github.com/danielpatrickdp/burnout-guardian/internal/detect"
)

// #region action-type

// ActionType identifies an autonomous stabilizing action, ordered by
// severity: alert outranks redistribution outranks buffer.
type ActionType string

const (
	ActionBufferInsertion ActionType = "buffer_insertion"
	ActionRedistribution  ActionType = "workload_redistribution_suggestion"
	ActionManagerAlert    ActionType = "manager_alert"
)

// Severity returns the precedence rank of an action; higher fires first.
func (a ActionType) Severity() int {
	switch a {
	case ActionManagerAlert:
		return 3
	case ActionRedistribution:
		return 2
	case ActionBufferInsertion:
		return 1
	}
	return 0
}

// #endregion action-type

// #region engine-state

// EngineState is the per-employee decision state, persisted in the
// resilience profile between cycles.
type EngineState string

const (
	StateIdle        EngineState = "idle"
	StateCoolingDown EngineState = "cooling_down" // daily cap reached, actions suppressed
	StateEscalated   EngineState = "escalated"    // manager alerted, holding until risk recedes
)

// #endregion engine-state

// #region outcome-label

// OutcomeLabel is the terminal verdict on an intervention's effect.
// Pending transitions to exactly one terminal label and never changes again.
type OutcomeLabel string

const (
	OutcomePending  OutcomeLabel = "pending"
	OutcomeImproved OutcomeLabel = "improved"
	OutcomeNoChange OutcomeLabel = "no_change"
	OutcomeWorsened OutcomeLabel = "worsened"
)

// Terminal reports whether the label will never change again.
func (l OutcomeLabel) Terminal() bool {
	return l == OutcomeImproved || l == OutcomeNoChange || l == OutcomeWorsened
}

// #endregion outcome-label

// #region intervention

// ActionParams carries the type-specific payload handed to the external
// action executor.
type ActionParams struct {
	BufferMinutes     int     `json:"buffer_minutes,omitempty"`
	WorkloadReduction float64 `json:"workload_reduction,omitempty"`
	AlertAudience     string  `json:"alert_audience,omitempty"`
	Reason            string  `json:"reason"`
}

// Intervention is one triggered action. Only the post-state, outcome label,
// effectiveness score, and dispatch status are ever written after creation,
// each exactly once.
type Intervention struct {
	ID          string
	EmployeeID  string
	Day         int
	TriggeredAt time.Time

	ActionType ActionType
	Params     ActionParams

	RiskScoreAtTrigger float64
	RiskLevelAtTrigger detect.RiskLevel
	PreStability       float64
	PreVolatility      float64

	PostStability      float64
	OutcomeLabel       OutcomeLabel
	EffectivenessScore float64

	DispatchFailed bool
}

// #endregion intervention

// #region thresholds

// Thresholds are the employee's adaptive action thresholds, read from the
// resilience profile each cycle. Invariant: Buffer < Redistribute < Alert.
type Thresholds struct {
	Buffer       float64
	Redistribute float64
	Alert        float64
}

// DefaultThresholds returns the global starting point before any tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Buffer:       0.60,
		Redistribute: 0.75,
		Alert:        0.85,
	}
}

// #endregion thresholds

// #region engine-config

// Config holds the engine's cap and action payload parameters.
type Config struct {
	DailyCap          int     `yaml:"daily_cap"`
	BufferMinutes     int     `yaml:"buffer_minutes"`
	WorkloadReduction float64 `yaml:"workload_reduction"`
	AlertAudience     string  `yaml:"alert_audience"`
}

// DefaultConfig returns the shipped engine parameters.
func DefaultConfig() Config {
	return Config{
		DailyCap:          3,
		BufferMinutes:     45,
		WorkloadReduction: 0.3,
		AlertAudience:     "manager",
	}
}

// #endregion engine-config

// #region decision

// Decision is the engine's verdict for one cycle: at most one action,
// the state to persist, and the reasoning for the provenance log.
type Decision struct {
	Action        *Intervention // nil when no action fires
	NextState     EngineState
	EffectiveRisk float64
	Reason        string
}

// #endregion decision
