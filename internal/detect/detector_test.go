package detect

import (
	"math"
	"testing"

	"github.com/danielpatrickdp/burnout-guardian/internal/baseline"
	"github.com/danielpatrickdp/burnout-guardian/internal/snapshot"
)

// calmDay fabricates a snapshot hovering around a steady working pattern,
// with a small deterministic wobble so baselines have non-zero spread.
func calmDay(employee string, day int) snapshot.Snapshot {
	wobble := 0.2 * math.Sin(float64(day))
	return snapshot.Snapshot{
		EmployeeID: employee,
		Day:        day,
		Signals: map[string]float64{
			snapshot.SigTotalWorkHours:       8.0 + wobble,
			snapshot.SigMeetingHours:         2.0 + wobble/2,
			snapshot.SigSleepHours:           7.5 - wobble/2,
			snapshot.SigTaskSwitchingRate:    3.0 + wobble,
			snapshot.SigErrorRate:            0.02,
			snapshot.SigInstabilityIndex:     0.2 + wobble/10,
			snapshot.SigRecoveryDeficitScore: 0.1,
		},
	}
}

// crisisDay is the same employee after an abrupt regime break.
func crisisDay(employee string, day int) snapshot.Snapshot {
	return snapshot.Snapshot{
		EmployeeID: employee,
		Day:        day,
		Signals: map[string]float64{
			snapshot.SigTotalWorkHours:       14.0,
			snapshot.SigMeetingHours:         7.0,
			snapshot.SigSleepHours:           4.0,
			snapshot.SigTaskSwitchingRate:    9.0,
			snapshot.SigErrorRate:            0.15,
			snapshot.SigInstabilityIndex:     0.95,
			snapshot.SigRecoveryDeficitScore: 0.9,
		},
	}
}

// runDays feeds consecutive snapshots through baseline tracking and
// assessment, returning the accumulated history. Each day is assessed
// against the baselines of prior days only, then admitted.
func runDays(t *testing.T, d *Detector, tr *baseline.Tracker, days []snapshot.Snapshot) []Assessment {
	t.Helper()
	var history []Assessment
	for _, snap := range days {
		a := d.Assess(snap.EmployeeID, snap.Day, snap, tr.Baselines(snap.EmployeeID), history, nil)
		tr.Update(snap.EmployeeID, snap.Day, snap)
		history = append(history, a)
	}
	return history
}

func TestStabilityPlusRiskIsExactlyOne(t *testing.T) {
	d := NewDetector(DefaultConfig())
	tr := baseline.NewTracker(baseline.DefaultConfig())

	var days []snapshot.Snapshot
	for i := 0; i < 10; i++ {
		days = append(days, calmDay("e1", i))
	}
	days = append(days, crisisDay("e1", 10))

	for _, a := range runDays(t, d, tr, days) {
		if a.StabilityIndex+a.RiskProbability != 1 {
			t.Errorf("day %d: stability %.17f + risk %.17f != 1",
				a.Day, a.StabilityIndex, a.RiskProbability)
		}
	}
}

func TestRiskLevelMonotoneBuckets(t *testing.T) {
	cfg := DefaultConfig()
	order := map[RiskLevel]int{RiskLow: 0, RiskModerate: 1, RiskHigh: 2, RiskCritical: 3}

	prev := RiskLow
	for risk := 0.0; risk <= 1.0; risk += 0.01 {
		level := cfg.Bucket(risk)
		if order[level] < order[prev] {
			t.Fatalf("bucket regressed from %s to %s at risk %.2f", prev, level, risk)
		}
		prev = level
	}
	if cfg.Bucket(0.39) != RiskLow || cfg.Bucket(0.41) != RiskModerate {
		t.Error("moderate cut misplaced")
	}
	if cfg.Bucket(0.59) != RiskModerate || cfg.Bucket(0.61) != RiskHigh {
		t.Error("high cut misplaced")
	}
	if cfg.Bucket(0.84) != RiskHigh || cfg.Bucket(0.86) != RiskCritical {
		t.Error("critical cut misplaced")
	}
}

func TestShortHistoryYieldsZeroVolatilityAndSucceeds(t *testing.T) {
	d := NewDetector(DefaultConfig())
	tr := baseline.NewTracker(baseline.DefaultConfig())

	// 2 days of history is below MinHistoryDays (3).
	history := runDays(t, d, tr, []snapshot.Snapshot{calmDay("e1", 0), calmDay("e1", 1)})

	for _, a := range history {
		if a.Volatility != 0 || a.Acceleration != 0 || a.ChangePointProb != 0 {
			t.Errorf("day %d: history components non-zero on cold history: vol=%.4f accel=%.4f change=%.4f",
				a.Day, a.Volatility, a.Acceleration, a.ChangePointProb)
		}
		if a.RiskProbability < 0 || a.RiskProbability > 1 {
			t.Errorf("day %d: risk %.4f out of range", a.Day, a.RiskProbability)
		}
	}
}

func TestAnomalyFlagsAtSigmaThreshold(t *testing.T) {
	d := NewDetector(DefaultConfig())
	tr := baseline.NewTracker(baseline.DefaultConfig())

	var history []Assessment
	for i := 0; i < 7; i++ {
		snap := calmDay("e1", i)
		history = append(history, d.Assess("e1", i, snap, tr.Baselines("e1"), history, nil))
		tr.Update("e1", i, snap)
	}

	// Crisis day deviates far beyond 2.5 sigma on every tracked signal.
	snap := crisisDay("e1", 7)
	a := d.Assess("e1", 7, snap, tr.Baselines("e1"), history, nil)

	if len(a.AnomalyFlags) == 0 {
		t.Fatal("expected anomaly flags on crisis day")
	}
	flagged := make(map[string]bool)
	for _, f := range a.AnomalyFlags {
		flagged[f] = true
	}
	if !flagged[snapshot.SigSleepHours] {
		t.Errorf("sleep_hours not flagged; flags=%v", a.AnomalyFlags)
	}
}

func TestTopContributorsCappedAndRanked(t *testing.T) {
	d := NewDetector(DefaultConfig())
	tr := baseline.NewTracker(baseline.DefaultConfig())

	var history []Assessment
	for i := 0; i < 7; i++ {
		snap := calmDay("e1", i)
		history = append(history, d.Assess("e1", i, snap, tr.Baselines("e1"), history, nil))
		tr.Update("e1", i, snap)
	}
	snap := crisisDay("e1", 7)
	a := d.Assess("e1", 7, snap, tr.Baselines("e1"), history, nil)

	if len(a.TopContributors) > 5 {
		t.Fatalf("top contributors %d exceeds 5", len(a.TopContributors))
	}
	if len(a.TopContributors) == 0 {
		t.Fatal("expected contributors on crisis day")
	}
}

func TestRegimeBreakFlipsCriticalWithinOneDay(t *testing.T) {
	d := NewDetector(DefaultConfig())
	tr := baseline.NewTracker(baseline.DefaultConfig())

	var days []snapshot.Snapshot
	for i := 0; i < 20; i++ {
		days = append(days, calmDay("e1", i))
	}
	history := runDays(t, d, tr, days)

	last := history[len(history)-1]
	if last.RiskLevel == RiskCritical {
		t.Fatalf("calm regime already critical: risk=%.3f", last.RiskProbability)
	}

	// First day of the break: change-point and deviation must carry the
	// score to critical without waiting for the 7-day baseline to absorb
	// the new regime.
	snap := crisisDay("e1", 20)
	a := d.Assess("e1", 20, snap, tr.Baselines("e1"), history, nil)

	if a.RiskLevel != RiskCritical {
		t.Fatalf("expected critical on break day, got %s (risk=%.3f change=%.3f dev=%.3f)",
			a.RiskLevel, a.RiskProbability, a.ChangePointProb, a.DeviationScore)
	}
	if a.ChangePointProb < 0.9 {
		t.Errorf("change-point should dominate on break day, got %.3f", a.ChangePointProb)
	}
}

func TestChangePointNearZeroOnSteadySeries(t *testing.T) {
	prior := make([]float64, 14)
	for i := range prior {
		prior[i] = 0.5
	}
	if p := changePointProb(prior, 0.5, 1e-6); p > 0.05 {
		t.Errorf("steady series scored change prob %.4f", p)
	}
	if p := changePointProb(prior, 0.05, 1e-6); p < 0.95 {
		t.Errorf("step of 0.45 scored change prob %.4f, want near 1", p)
	}
}

func TestNoBaselineNoForestStillAssesses(t *testing.T) {
	d := NewDetector(DefaultConfig())
	snap := calmDay("e1", 0)

	a := d.Assess("e1", 0, snap, map[string]*baseline.State{}, nil, nil)

	if a.RiskProbability != 0 {
		t.Errorf("no scorable component should read stable, got risk %.4f", a.RiskProbability)
	}
	if a.RiskLevel != RiskLow {
		t.Errorf("expected low, got %s", a.RiskLevel)
	}
}
