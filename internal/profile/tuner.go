package profile

import (
	"log"
	"math"
	"time"

	"github.com/danielpatrickdp/burnout-guardian/internal/decide"
)

// #region outcome

// Outcome is one evaluated intervention: the terminal label plus the signed
// effectiveness score that drives threshold adjustment.
type Outcome struct {
	Label         decide.OutcomeLabel
	Effectiveness float64 // post stability minus pre stability, signed
	PostStability float64
}

// EvaluateOutcome is a pure function labeling an intervention from the
// stability index before and after it. A move inside the noise floor is
// no_change; the effectiveness score stays signed either way so the tuner
// sees small drifts too.
func EvaluateOutcome(preStability, postStability, noiseFloor float64) Outcome {
	delta := postStability - preStability

	label := decide.OutcomeNoChange
	switch {
	case delta > noiseFloor:
		label = decide.OutcomeImproved
	case delta < -noiseFloor:
		label = decide.OutcomeWorsened
	}

	return Outcome{
		Label:         label,
		Effectiveness: delta,
		PostStability: postStability,
	}
}

// #endregion outcome

// #region adjust

// AdjustThresholds computes the next threshold triple from one evaluated
// outcome. The update is a slow exponential nudge, not an overwrite:
//
//	new = old + learning_rate × effectiveness
//
// Effective interventions push all three thresholds up (the employee
// recovers well, act less eagerly); ineffective ones pull them down (act
// sooner next time). The result is clamped to the global floor and ceiling
// and the ordering buffer < redistribute < alert is re-imposed with the
// configured minimum gap, alert first so the most severe threshold is the
// anchor.
func AdjustThresholds(t decide.Thresholds, outcome Outcome, cfg Config) decide.Thresholds {
	step := cfg.LearningRate * outcome.Effectiveness

	next := decide.Thresholds{
		Buffer:       t.Buffer + step,
		Redistribute: t.Redistribute + step,
		Alert:        t.Alert + step,
	}
	return boundThresholds(next, cfg)
}

func boundThresholds(t decide.Thresholds, cfg Config) decide.Thresholds {
	clamp := func(v, lo, hi float64) float64 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}

	t.Alert = clamp(t.Alert, cfg.ThresholdMin+2*cfg.MinGap, cfg.ThresholdMax)
	t.Redistribute = clamp(t.Redistribute, cfg.ThresholdMin+cfg.MinGap, t.Alert-cfg.MinGap)
	t.Buffer = clamp(t.Buffer, cfg.ThresholdMin, t.Redistribute-cfg.MinGap)
	return t
}

// #endregion adjust

// #region apply

// ApplyOutcome folds one evaluated outcome into the profile: thresholds,
// the decayed effectiveness aggregate, and the timestamp. The caller holds
// the employee's write guard.
func ApplyOutcome(p *Profile, outcome Outcome, cfg Config) {
	before := p.Thresholds
	p.Thresholds = AdjustThresholds(p.Thresholds, outcome, cfg)

	// One-step exponential decay toward the new score; the half-life is
	// expressed in days but outcomes arrive roughly daily, so a single
	// cycle's weight is 1 - 2^(-1/halfLife).
	alpha := 1.0
	if cfg.DecayHalfLife > 0 {
		alpha = 1 - math.Exp2(-1/cfg.DecayHalfLife)
	}
	p.RecentEffectiveness += alpha * (outcome.Effectiveness - p.RecentEffectiveness)
	p.UpdatedAt = time.Now().UTC()

	if p.Thresholds != before {
		log.Printf("[TUNE] %s: %s (%.3f) moved thresholds %.3f/%.3f/%.3f -> %.3f/%.3f/%.3f",
			p.EmployeeID, outcome.Label, outcome.Effectiveness,
			before.Buffer, before.Redistribute, before.Alert,
			p.Thresholds.Buffer, p.Thresholds.Redistribute, p.Thresholds.Alert)
	}
}

// #endregion apply
