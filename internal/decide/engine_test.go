package decide

import (
	"testing"

	"github.com/danielpatrickdp/burnout-guardian/internal/detect"
	"github.com/danielpatrickdp/burnout-guardian/internal/forecast"
)

func inputAt(risk float64) Input {
	return Input{
		Assessment: detect.Assessment{
			EmployeeID:      "e1",
			Day:             10,
			RiskProbability: risk,
			StabilityIndex:  1 - risk,
			RiskLevel:       detect.DefaultConfig().Bucket(risk),
		},
		Thresholds: DefaultThresholds(),
		State:      StateIdle,
	}
}

func TestHighRiskEmitsManagerAlert(t *testing.T) {
	e := NewEngine(DefaultConfig())

	// 0.90 clears all three thresholds; the alert wins by precedence.
	d := e.Decide(inputAt(0.90))
	if d.Action == nil {
		t.Fatal("risk 0.90 must trigger an action")
	}
	if d.Action.ActionType != ActionManagerAlert {
		t.Fatalf("action %s, want %s", d.Action.ActionType, ActionManagerAlert)
	}
	if d.NextState != StateEscalated {
		t.Errorf("state %s after alert, want %s", d.NextState, StateEscalated)
	}
	if d.Action.Params.AlertAudience != "manager" {
		t.Errorf("alert audience %q, want manager", d.Action.Params.AlertAudience)
	}
	if d.Action.OutcomeLabel != OutcomePending {
		t.Errorf("new intervention label %s, want pending", d.Action.OutcomeLabel)
	}
}

func TestThresholdCascade(t *testing.T) {
	e := NewEngine(DefaultConfig())

	cases := []struct {
		risk float64
		want ActionType // "" means no action
	}{
		{0.50, ""},
		{0.60, ActionBufferInsertion}, // boundary inclusive
		{0.70, ActionBufferInsertion},
		{0.75, ActionRedistribution},
		{0.80, ActionRedistribution},
		{0.85, ActionManagerAlert},
		{0.99, ActionManagerAlert},
	}
	for _, tc := range cases {
		d := e.Decide(inputAt(tc.risk))
		if tc.want == "" {
			if d.Action != nil {
				t.Errorf("risk %.2f: unexpected action %s", tc.risk, d.Action.ActionType)
			}
			continue
		}
		if d.Action == nil {
			t.Errorf("risk %.2f: no action, want %s", tc.risk, tc.want)
			continue
		}
		if d.Action.ActionType != tc.want {
			t.Errorf("risk %.2f: action %s, want %s", tc.risk, d.Action.ActionType, tc.want)
		}
	}
}

func TestAtMostOneActionPerCycle(t *testing.T) {
	e := NewEngine(DefaultConfig())

	// Even with every threshold crossed, a Decision carries a single action.
	d := e.Decide(inputAt(0.99))
	if d.Action == nil {
		t.Fatal("expected one action")
	}
	// The remaining thresholds are absorbed, not queued: a second call on
	// the escalated state with receded risk emits nothing.
	in := inputAt(0.55)
	in.State = d.NextState
	in.UsedToday = 1
	d2 := e.Decide(in)
	if d2.Action != nil {
		t.Errorf("receded risk while escalated fired %s", d2.Action.ActionType)
	}
}

func TestDailyCapEntersCoolingDown(t *testing.T) {
	e := NewEngine(DefaultConfig())

	state := StateIdle
	fired := 0
	for cycle := 0; cycle < 6; cycle++ {
		in := inputAt(0.78) // redistribution level, stays out of escalation
		in.State = state
		in.UsedToday = fired
		d := e.Decide(in)
		if d.Action != nil {
			fired++
		}
		state = d.NextState
	}
	if fired != 3 {
		t.Fatalf("fired %d actions in one day, cap is 3", fired)
	}
	if state != StateCoolingDown {
		t.Errorf("state %s after cap, want %s", state, StateCoolingDown)
	}
}

func TestCoolingDownClearsOnFreshDay(t *testing.T) {
	e := NewEngine(DefaultConfig())

	// New day: the caller reset UsedToday to zero.
	in := inputAt(0.78)
	in.State = StateCoolingDown
	in.UsedToday = 0
	d := e.Decide(in)
	if d.Action == nil {
		t.Fatal("fresh day should allow actions again")
	}
	if d.Action.ActionType != ActionRedistribution {
		t.Errorf("action %s, want %s", d.Action.ActionType, ActionRedistribution)
	}
}

func TestEscalatedHoldsUntilRiskRecedes(t *testing.T) {
	e := NewEngine(DefaultConfig())

	// Elevated but sub-alert risk while escalated: hold, no action.
	in := inputAt(0.70)
	in.State = StateEscalated
	in.UsedToday = 1
	d := e.Decide(in)
	if d.Action != nil {
		t.Errorf("escalated hold fired %s", d.Action.ActionType)
	}
	if d.NextState != StateEscalated {
		t.Errorf("state %s, want %s", d.NextState, StateEscalated)
	}

	// Risk below the buffer threshold stands the escalation down.
	in = inputAt(0.40)
	in.State = StateEscalated
	d = e.Decide(in)
	if d.Action != nil {
		t.Error("stand-down must not fire an action")
	}
	if d.NextState != StateIdle {
		t.Errorf("state %s after stand-down, want %s", d.NextState, StateIdle)
	}
}

func TestTippingPointRaisesEffectiveRisk(t *testing.T) {
	e := NewEngine(DefaultConfig())

	// Current risk is calm, but the forecast crosses the tipping threshold:
	// the projected 0.88 drives the decision.
	in := inputAt(0.45)
	in.Forecast = &forecast.Forecast{
		EmployeeID:      "e1",
		Curve:           []float64{0.60, 0.72, 0.88, 0.90},
		TippingDetected: true,
		TippingDay:      2,
	}
	d := e.Decide(in)
	if d.EffectiveRisk != 0.88 {
		t.Fatalf("effective risk %.3f, want 0.88 from tipping day", d.EffectiveRisk)
	}
	if d.Action == nil || d.Action.ActionType != ActionManagerAlert {
		t.Fatalf("tipping at 0.88 should alert, got %+v", d.Action)
	}
	if d.Action.RiskScoreAtTrigger != 0.88 {
		t.Errorf("recorded trigger risk %.3f, want 0.88", d.Action.RiskScoreAtTrigger)
	}
}

func TestTippingPointNeverLowersRisk(t *testing.T) {
	e := NewEngine(DefaultConfig())

	in := inputAt(0.92)
	in.Forecast = &forecast.Forecast{
		Curve:           []float64{0.86},
		TippingDetected: true,
		TippingDay:      0,
	}
	d := e.Decide(in)
	if d.EffectiveRisk != 0.92 {
		t.Errorf("effective risk %.3f, want current 0.92 kept", d.EffectiveRisk)
	}
}

func TestNilForecastFallsBackToAssessment(t *testing.T) {
	e := NewEngine(DefaultConfig())

	in := inputAt(0.62)
	in.Forecast = nil
	d := e.Decide(in)
	if d.Action == nil || d.Action.ActionType != ActionBufferInsertion {
		t.Fatalf("risk 0.62 without forecast should insert a buffer, got %+v", d.Action)
	}
	if d.Action.Params.BufferMinutes != 45 {
		t.Errorf("buffer minutes %d, want 45", d.Action.Params.BufferMinutes)
	}
}

func TestAdaptedThresholdsShiftCascade(t *testing.T) {
	e := NewEngine(DefaultConfig())

	in := inputAt(0.62)
	in.Thresholds = Thresholds{Buffer: 0.65, Redistribute: 0.75, Alert: 0.85}
	d := e.Decide(in)
	if d.Action != nil {
		t.Errorf("risk 0.62 under raised buffer threshold fired %s", d.Action.ActionType)
	}
}
