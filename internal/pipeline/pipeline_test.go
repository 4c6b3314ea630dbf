package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielpatrickdp/burnout-guardian/internal/baseline"
	"github.com/danielpatrickdp/burnout-guardian/internal/decide"
	"github.com/danielpatrickdp/burnout-guardian/internal/detect"
	"github.com/danielpatrickdp/burnout-guardian/internal/forecast"
	"github.com/danielpatrickdp/burnout-guardian/internal/profile"
	"github.com/danielpatrickdp/burnout-guardian/internal/provlog"
	"github.com/danielpatrickdp/burnout-guardian/internal/refit"
	"github.com/danielpatrickdp/burnout-guardian/internal/snapshot"
	"github.com/danielpatrickdp/burnout-guardian/internal/store"
)

// #region helpers

type recordingDispatcher struct {
	sent chan decide.Intervention
	fail bool
}

func (d *recordingDispatcher) Send(_ context.Context, iv decide.Intervention, _ string) error {
	d.sent <- iv
	if d.fail {
		return errors.New("executor unreachable")
	}
	return nil
}

type harness struct {
	pipe  *Pipeline
	store *store.Store
	guard *profile.Guard
	disp  *recordingDispatcher
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	st, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if err := provlog.Migrate(st.DB()); err != nil {
		t.Fatalf("provlog: %v", err)
	}

	guard := profile.NewGuard()
	disp := &recordingDispatcher{sent: make(chan decide.Intervention, 8)}
	pipe := New(st,
		baseline.NewTracker(baseline.DefaultConfig()),
		detect.NewDetector(detect.DefaultConfig()),
		forecast.NewForecaster(forecast.DefaultConfig()),
		decide.NewEngine(decide.DefaultConfig()),
		refit.NewRegistry(),
		guard, disp, profile.DefaultConfig(), DefaultConfig())
	return &harness{pipe: pipe, store: st, guard: guard, disp: disp}
}

func calmDay(employee string, day int) snapshot.Snapshot {
	// Alternating wobble: baselines get spread, but today's value never
	// strays far from the window mean, so calm days stay calm.
	wobble := 0.2
	if day%2 == 1 {
		wobble = -0.2
	}
	return snapshot.Snapshot{
		EmployeeID: employee,
		Day:        day,
		Signals: map[string]float64{
			snapshot.SigTotalWorkHours:   8 + wobble,
			snapshot.SigSleepHours:       7.5 - wobble,
			snapshot.SigInstabilityIndex: 0.2,
		},
	}
}

func crisisDay(employee string, day int) snapshot.Snapshot {
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

// #endregion helpers

func TestCalmHistoryProducesNoActions(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	for day := 0; day < 20; day++ {
		res, err := h.pipe.RunCycle(ctx, calmDay("e1", day))
		if err != nil {
			t.Fatalf("day %d: %v", day, err)
		}
		if res.Action != nil {
			t.Fatalf("day %d: calm telemetry fired %s", day, res.Action.ActionType)
		}
	}

	// Forecasts start once 14 days of assessments exist.
	if _, err := h.store.LatestForecast("e1"); err != nil {
		t.Errorf("20 calm days should have produced forecasts: %v", err)
	}
}

func TestCrisisDayTriggersAndDispatches(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	for day := 0; day < 20; day++ {
		if _, err := h.pipe.RunCycle(ctx, calmDay("e1", day)); err != nil {
			t.Fatal(err)
		}
	}

	res, err := h.pipe.RunCycle(ctx, crisisDay("e1", 20))
	if err != nil {
		t.Fatal(err)
	}
	if res.Assessment.RiskLevel != detect.RiskCritical {
		t.Fatalf("crisis day risk %s (%.3f), want critical",
			res.Assessment.RiskLevel, res.Assessment.RiskProbability)
	}
	if res.Action == nil {
		t.Fatal("critical risk must trigger an intervention")
	}
	if res.Action.ActionType != decide.ActionManagerAlert {
		t.Errorf("action %s, want manager_alert", res.Action.ActionType)
	}

	select {
	case iv := <-h.disp.sent:
		if iv.ID != res.Action.ID {
			t.Errorf("dispatched %s, recorded %s", iv.ID, res.Action.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("intervention never handed to the dispatcher")
	}

	// Profile reflects the action and the escalation.
	prof, err := h.store.GetProfile("e1")
	if err != nil {
		t.Fatal(err)
	}
	if prof.UsedToday != 1 || prof.State != decide.StateEscalated {
		t.Errorf("profile after alert: used %d state %s", prof.UsedToday, prof.State)
	}
}

func TestRedeliveredSnapshotSkipsCycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.pipe.RunCycle(ctx, calmDay("e1", 0)); err != nil {
		t.Fatal(err)
	}
	res, err := h.pipe.RunCycle(ctx, calmDay("e1", 0))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Skipped {
		t.Fatal("second delivery of the same day must be skipped")
	}

	history, err := h.store.AssessmentHistory("e1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 {
		t.Fatalf("redelivery produced %d assessments, want 1", len(history))
	}
}

func TestAbandonedCycleResumesOnRedelivery(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// A cycle that died right after committing its snapshot: the day is
	// persisted but carries no assessment.
	snap := calmDay("e1", 0)
	if _, err := h.store.PutSnapshot(snap); err != nil {
		t.Fatal(err)
	}

	res, err := h.pipe.RunCycle(ctx, snap)
	if err != nil {
		t.Fatal(err)
	}
	if res.Skipped {
		t.Fatal("redelivery of an unassessed day must resume, not skip")
	}
	if _, err := h.store.AssessmentAt("e1", 0); err != nil {
		t.Fatalf("resumed cycle left no assessment: %v", err)
	}

	// Once the assessment exists the day really is done.
	res, err = h.pipe.RunCycle(ctx, snap)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Skipped {
		t.Fatal("completed day must be skipped on redelivery")
	}
	history, err := h.store.AssessmentHistory("e1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 {
		t.Fatalf("resume produced %d assessments, want 1", len(history))
	}
}

func TestOutcomeEvaluatedAfterLag(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	for day := 0; day < 20; day++ {
		if _, err := h.pipe.RunCycle(ctx, calmDay("e1", day)); err != nil {
			t.Fatal(err)
		}
	}
	res, err := h.pipe.RunCycle(ctx, crisisDay("e1", 20))
	if err != nil {
		t.Fatal(err)
	}
	ivID := res.Action.ID

	// The lag is 2 cycles: day 21 is too early, day 22 evaluates.
	res, err = h.pipe.RunCycle(ctx, calmDay("e1", 21))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Outcomes) != 0 {
		t.Fatalf("day 21 evaluated %d outcomes, lag not honored", len(res.Outcomes))
	}

	res, err = h.pipe.RunCycle(ctx, calmDay("e1", 22))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Outcomes) == 0 {
		t.Fatal("day 22 should have evaluated the pending intervention")
	}

	ivs, err := h.store.Interventions("e1", 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, iv := range ivs {
		if iv.ID == ivID && !iv.OutcomeLabel.Terminal() {
			t.Errorf("intervention %s still %s after lag", ivID, iv.OutcomeLabel)
		}
	}
}

func TestDispatchFailureMarksButKeepsIntervention(t *testing.T) {
	h := newHarness(t)
	h.disp.fail = true
	ctx := context.Background()

	for day := 0; day < 20; day++ {
		if _, err := h.pipe.RunCycle(ctx, calmDay("e1", day)); err != nil {
			t.Fatal(err)
		}
	}
	res, err := h.pipe.RunCycle(ctx, crisisDay("e1", 20))
	if err != nil {
		t.Fatal(err)
	}
	<-h.disp.sent

	// The hand-off goroutine marks the record; poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for {
		ivs, err := h.store.Interventions("e1", 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(ivs) == 1 && ivs[0].DispatchFailed {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("dispatch failure never marked")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// The intervention record itself stands.
	ivs, _ := h.store.Interventions("e1", 1)
	if ivs[0].ID != res.Action.ID {
		t.Error("failed dispatch must not roll back the intervention")
	}
}

func TestProfileContentionSurfacesAfterRetries(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	release, err := h.guard.Acquire("e1")
	if err != nil {
		t.Fatal(err)
	}
	defer release()

	_, err = h.pipe.RunCycle(ctx, calmDay("e1", 0))
	if !errors.Is(err, profile.ErrContention) {
		t.Fatalf("held profile: got %v, want ErrContention", err)
	}
}

func TestFleetRunsEmployeesIndependently(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	var snaps []snapshot.Snapshot
	for i := 0; i < 6; i++ {
		snaps = append(snaps, calmDay(fmt.Sprintf("e%d", i), 0))
	}
	results := h.pipe.RunFleet(ctx, snaps, 3)
	if len(results) != 6 {
		t.Fatalf("got %d results, want 6", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s: %v", r.EmployeeID, r.Err)
		}
	}

	employees, err := h.store.ListEmployees()
	if err != nil {
		t.Fatal(err)
	}
	if len(employees) != 6 {
		t.Errorf("%d employees stored, want 6", len(employees))
	}
}

func TestWarmupRebuildsBaselines(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	for day := 0; day < 10; day++ {
		if _, err := h.pipe.RunCycle(ctx, calmDay("e1", day)); err != nil {
			t.Fatal(err)
		}
	}

	// A fresh pipeline over the same store: baselines rebuilt from
	// snapshots, so the next crisis day still reads as a deviation.
	fresh := New(h.store,
		baseline.NewTracker(baseline.DefaultConfig()),
		detect.NewDetector(detect.DefaultConfig()),
		forecast.NewForecaster(forecast.DefaultConfig()),
		decide.NewEngine(decide.DefaultConfig()),
		refit.NewRegistry(),
		profile.NewGuard(), nil, profile.DefaultConfig(), DefaultConfig())
	if err := fresh.Warmup(); err != nil {
		t.Fatal(err)
	}

	res, err := fresh.RunCycle(ctx, crisisDay("e1", 10))
	if err != nil {
		t.Fatal(err)
	}
	if res.Assessment.DeviationScore < 0.5 {
		t.Errorf("deviation %.3f after warmup, want the crisis to register", res.Assessment.DeviationScore)
	}
}
