package decide

import (
	"fmt"
	"log"
	"time"

	"github.com/danielpatrickdp/burnout-guardian/internal/detect"
	"github.com/danielpatrickdp/burnout-guardian/internal/forecast"
	"github.com/google/uuid"
)

// #region engine

// Engine turns one cycle's assessment (and forecast, when one exists) into
// at most one intervention. The engine itself is stateless; all per-employee
// state arrives in the Input and leaves in the Decision.
type Engine struct {
	config Config
}

// NewEngine builds an engine with the given cap and payload parameters.
func NewEngine(config Config) *Engine {
	return &Engine{config: config}
}

// Input is everything the engine needs for one employee-cycle. UsedToday
// must already be normalized to the assessment's day by the caller.
type Input struct {
	Assessment detect.Assessment
	Forecast   *forecast.Forecast // nil when no forecast was produced this cycle
	Thresholds Thresholds
	State      EngineState
	UsedToday  int
}

// #endregion engine

// #region decide

// Decide runs the threshold cascade for one cycle.
//
// The effective risk is the assessment's probability, raised to the
// forecast's tipping-point value when a tipping point was detected: a
// projected crossing is treated as seriously as a current one. Exactly one
// action can fire per cycle, highest severity first, and the third action
// of a day puts the employee into cooling-down until the next day.
func (e *Engine) Decide(in Input) Decision {
	risk := in.Assessment.RiskProbability
	reason := fmt.Sprintf("risk %.3f", risk)
	if in.Forecast != nil && in.Forecast.TippingDetected {
		tip := in.Forecast.Curve[in.Forecast.TippingDay]
		if tip > risk {
			risk = tip
			reason = fmt.Sprintf("risk %.3f raised to %.3f by tipping point at day +%d",
				in.Assessment.RiskProbability, tip, in.Forecast.TippingDay+1)
		}
	}

	state := in.State
	if state == "" {
		state = StateIdle
	}

	// Cap check first: it overrides everything, including escalation.
	if in.UsedToday >= e.config.DailyCap {
		return Decision{
			NextState:     StateCoolingDown,
			EffectiveRisk: risk,
			Reason:        fmt.Sprintf("daily cap %d reached, cooling down", e.config.DailyCap),
		}
	}
	if state == StateCoolingDown {
		// A fresh day reset the counter; resume normal operation.
		state = StateIdle
	}

	if state == StateEscalated {
		if risk < in.Thresholds.Buffer {
			return Decision{
				NextState:     StateIdle,
				EffectiveRisk: risk,
				Reason:        fmt.Sprintf("risk %.3f receded below %.2f, standing down", risk, in.Thresholds.Buffer),
			}
		}
		if risk >= in.Thresholds.Alert {
			// Alert-level risk while already escalated: re-alert.
			return e.fire(in, ActionManagerAlert, risk, StateEscalated,
				fmt.Sprintf("%s while escalated", reason))
		}
		return Decision{
			NextState:     StateEscalated,
			EffectiveRisk: risk,
			Reason:        fmt.Sprintf("holding escalation, risk %.3f", risk),
		}
	}

	switch {
	case risk >= in.Thresholds.Alert:
		return e.fire(in, ActionManagerAlert, risk, StateEscalated, reason)
	case risk >= in.Thresholds.Redistribute:
		return e.fire(in, ActionRedistribution, risk, StateIdle, reason)
	case risk >= in.Thresholds.Buffer:
		return e.fire(in, ActionBufferInsertion, risk, StateIdle, reason)
	}

	return Decision{
		NextState:     StateIdle,
		EffectiveRisk: risk,
		Reason:        fmt.Sprintf("risk %.3f below buffer threshold %.2f", risk, in.Thresholds.Buffer),
	}
}

// fire builds the intervention record for the chosen action. If this is the
// last action the cap allows today, the next state is cooling-down instead.
func (e *Engine) fire(in Input, action ActionType, risk float64, next EngineState, reason string) Decision {
	if in.UsedToday+1 >= e.config.DailyCap {
		next = StateCoolingDown
	}

	iv := &Intervention{
		ID:          uuid.New().String(),
		EmployeeID:  in.Assessment.EmployeeID,
		Day:         in.Assessment.Day,
		TriggeredAt: time.Now().UTC(),

		ActionType: action,
		Params:     e.params(action, reason),

		RiskScoreAtTrigger: risk,
		RiskLevelAtTrigger: in.Assessment.RiskLevel,
		PreStability:       in.Assessment.StabilityIndex,
		PreVolatility:      in.Assessment.Volatility,

		OutcomeLabel: OutcomePending,
	}

	log.Printf("[DECIDE] %s day %d: %s (%s)", iv.EmployeeID, iv.Day, action, reason)
	return Decision{
		Action:        iv,
		NextState:     next,
		EffectiveRisk: risk,
		Reason:        reason,
	}
}

func (e *Engine) params(action ActionType, reason string) ActionParams {
	p := ActionParams{Reason: reason}
	switch action {
	case ActionBufferInsertion:
		p.BufferMinutes = e.config.BufferMinutes
	case ActionRedistribution:
		p.WorkloadReduction = e.config.WorkloadReduction
	case ActionManagerAlert:
		p.AlertAudience = e.config.AlertAudience
	}
	return p
}

// #endregion decide
