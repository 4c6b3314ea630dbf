package replay

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielpatrickdp/burnout-guardian/internal/decide"
	"github.com/danielpatrickdp/burnout-guardian/internal/detect"
	"github.com/danielpatrickdp/burnout-guardian/internal/snapshot"
)

// steadyDay alternates a small wobble around an ordinary working pattern,
// so baselines get spread without any day reading as a shift.
func steadyDay(employee string, day int) snapshot.Snapshot {
	w := 0.2
	if day%2 == 1 {
		w = -0.2
	}
	return snapshot.Snapshot{
		EmployeeID: employee,
		Day:        day,
		Signals: map[string]float64{
			snapshot.SigTotalWorkHours:   8 + w,
			snapshot.SigSleepHours:       7.5 - w,
			snapshot.SigInstabilityIndex: 0.2,
		},
	}
}

func breakDay(employee string, day int) snapshot.Snapshot {
	return snapshot.Snapshot{
		EmployeeID: employee,
		Day:        day,
		Signals: map[string]float64{
			snapshot.SigTotalWorkHours:   14,
			snapshot.SigSleepHours:       4,
			snapshot.SigInstabilityIndex: 0.95,
		},
	}
}

func indexResults(results []DayResult) map[string]DayResult {
	byDay := make(map[string]DayResult, len(results))
	for _, r := range results {
		byDay[fmt.Sprintf("%s/%d", r.EmployeeID, r.Day)] = r
	}
	return byDay
}

func TestReplayMatchesFixtureExpectations(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "step_change.json"))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}

	results, _ := Replay(f.Snapshots(), DefaultReplayConfig())
	byDay := indexResults(results)

	for _, want := range f.Expected {
		key := fmt.Sprintf("%s/%d", want.EmployeeID, want.Day)
		got, ok := byDay[key]
		if !ok {
			t.Errorf("no result for %s", key)
			continue
		}
		if got.Action != want.Action {
			t.Errorf("%s: action %s, want %s", key, got.Action, want.Action)
		}
		if want.RiskLevel != "" && string(got.RiskLevel) != want.RiskLevel {
			t.Errorf("%s: risk level %s (%.3f), want %s",
				key, got.RiskLevel, got.RiskProbability, want.RiskLevel)
		}
	}
}

func TestReplaySummaryOnStepFixture(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "step_change.json"))
	if err != nil {
		t.Fatal(err)
	}

	_, summary := Replay(f.Snapshots(), DefaultReplayConfig())

	if summary.TotalDays != 21 {
		t.Errorf("total days %d, want 21", summary.TotalDays)
	}
	if summary.Actions != 1 || summary.Alerts != 1 {
		t.Errorf("actions %d alerts %d, want 1 and 1", summary.Actions, summary.Alerts)
	}
	// The break day is the last day; nothing is old enough to judge.
	if summary.Outcomes != 0 {
		t.Errorf("outcomes %d, want 0", summary.Outcomes)
	}

	prof, ok := summary.FinalProfiles["e1"]
	if !ok {
		t.Fatal("no final profile for e1")
	}
	if prof.InterventionTotal != 1 {
		t.Errorf("intervention total %d, want 1", prof.InterventionTotal)
	}
	if prof.State != decide.StateEscalated {
		t.Errorf("final state %s, want escalated", prof.State)
	}
}

func TestReplayClosesOutcomeLoop(t *testing.T) {
	var days []snapshot.Snapshot
	for d := 0; d < 20; d++ {
		days = append(days, steadyDay("e1", d))
	}
	days = append(days, breakDay("e1", 20))
	// Recovery: enough days after the break for the outcome lag to elapse.
	for d := 21; d < 24; d++ {
		days = append(days, steadyDay("e1", d))
	}

	results, summary := Replay(days, DefaultReplayConfig())
	byDay := indexResults(results)

	if got := byDay["e1/21"]; len(got.Outcomes) != 0 {
		t.Errorf("day 21 judged %d outcomes before the lag elapsed", len(got.Outcomes))
	}
	judged := byDay["e1/22"]
	if len(judged.Outcomes) != 1 {
		t.Fatalf("day 22 judged %d outcomes, want 1", len(judged.Outcomes))
	}
	// Stability collapsed at the trigger and recovered after it.
	if judged.Outcomes[0] != decide.OutcomeImproved {
		t.Errorf("outcome %s, want improved", judged.Outcomes[0])
	}
	if summary.Outcomes != 1 {
		t.Errorf("summary outcomes %d, want 1", summary.Outcomes)
	}

	// An improved outcome nudges the thresholds up.
	prof := summary.FinalProfiles["e1"]
	if prof.Thresholds.Buffer <= decide.DefaultThresholds().Buffer {
		t.Errorf("buffer threshold %.3f not raised after improvement", prof.Thresholds.Buffer)
	}
}

func TestStepScenarioAlertsOnBreakDay(t *testing.T) {
	snaps := StepScenario("e7", 20, 2, 42)

	results, _ := Replay(snaps, DefaultReplayConfig())
	byDay := indexResults(results)

	got := byDay["e7/20"]
	if got.RiskLevel != detect.RiskCritical {
		t.Errorf("break day risk %s (%.3f), want critical", got.RiskLevel, got.RiskProbability)
	}
	if got.Action != string(decide.ActionManagerAlert) {
		t.Errorf("break day action %s, want manager_alert", got.Action)
	}
}

func TestGeneratorsDeterministicPerSeed(t *testing.T) {
	a := CalmDays("e1", 0, 5, 7)
	b := CalmDays("e1", 0, 5, 7)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed diverged (-a +b):\n%s", diff)
	}

	if n := len(StepScenario("e1", 12, 3, 1)); n != 15 {
		t.Errorf("step scenario length %d, want 15", n)
	}

	ramp := RampScenario("e1", 10, 1)
	first := ramp[0].Signals[snapshot.SigTotalWorkHours]
	last := ramp[len(ramp)-1].Signals[snapshot.SigTotalWorkHours]
	if last <= first {
		t.Errorf("ramp workload did not rise: first %.2f last %.2f", first, last)
	}
}
