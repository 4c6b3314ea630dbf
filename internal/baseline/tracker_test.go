package baseline

import (
	"math"
	"testing"

	"github.com/danielpatrickdp/burnout-guardian/internal/snapshot"
)

func snapOf(day int, vals map[string]float64) snapshot.Snapshot {
	return snapshot.Snapshot{EmployeeID: "e1", Day: day, Signals: vals}
}

func TestWindowCountNeverExceedsLength(t *testing.T) {
	cfg := DefaultConfig() // window 7
	tr := NewTracker(cfg)

	for day := 0; day < 20; day++ {
		states := tr.Update("e1", day, snapOf(day, map[string]float64{"sleep_hours": 7.0}))
		st := states["sleep_hours"]
		if st.Count() > cfg.WindowDays {
			t.Fatalf("day %d: count %d exceeds window %d", day, st.Count(), cfg.WindowDays)
		}
	}

	st := tr.Baselines("e1")["sleep_hours"]
	if st.Count() != cfg.WindowDays {
		t.Fatalf("expected full window %d after 20 days, got %d", cfg.WindowDays, st.Count())
	}
}

func TestWarmupBelowThreeSamples(t *testing.T) {
	tr := NewTracker(DefaultConfig())

	tr.Update("e1", 0, snapOf(0, map[string]float64{"sleep_hours": 7.0}))
	states := tr.Update("e1", 1, snapOf(1, map[string]float64{"sleep_hours": 6.5}))

	if states["sleep_hours"].Warm() {
		t.Fatal("baseline should be cold with 2 samples")
	}

	states = tr.Update("e1", 2, snapOf(2, map[string]float64{"sleep_hours": 7.5}))
	if !states["sleep_hours"].Warm() {
		t.Fatal("baseline should be warm with 3 samples")
	}
}

func TestRunningMeanVarianceMatchNaive(t *testing.T) {
	tr := NewTracker(DefaultConfig())
	values := []float64{7.0, 6.5, 8.0, 5.5, 7.2, 6.8, 7.9, 4.0, 9.1, 6.0}

	for day, v := range values {
		tr.Update("e1", day, snapOf(day, map[string]float64{"s": v}))
	}

	// Last 7 values are the live window
	window := values[len(values)-7:]
	var sum float64
	for _, v := range window {
		sum += v
	}
	wantMean := sum / 7
	var sq float64
	for _, v := range window {
		d := v - wantMean
		sq += d * d
	}
	wantVar := sq / 7

	st := tr.Baselines("e1")["s"]
	if math.Abs(st.Mean()-wantMean) > 1e-9 {
		t.Errorf("mean: got %.9f want %.9f", st.Mean(), wantMean)
	}
	if math.Abs(st.Variance()-wantVar) > 1e-9 {
		t.Errorf("variance: got %.9f want %.9f", st.Variance(), wantVar)
	}
}

func TestRedeliveredDayDoesNotDoubleCount(t *testing.T) {
	tr := NewTracker(DefaultConfig())

	tr.Update("e1", 0, snapOf(0, map[string]float64{"s": 1.0}))
	tr.Update("e1", 1, snapOf(1, map[string]float64{"s": 2.0}))
	st := tr.Update("e1", 1, snapOf(1, map[string]float64{"s": 2.0}))["s"]

	if st.Count() != 2 {
		t.Fatalf("re-delivered day admitted: count %d, want 2", st.Count())
	}
	// mean of {1, 2} = 1.5
	if math.Abs(st.Mean()-1.5) > 1e-12 {
		t.Errorf("mean changed on re-delivery: %.4f", st.Mean())
	}
}

func TestMissingSignalSkippedNotZeroed(t *testing.T) {
	tr := NewTracker(DefaultConfig())

	tr.Update("e1", 0, snapOf(0, map[string]float64{"a": 1.0, "b": 2.0}))
	tr.Update("e1", 1, snapOf(1, map[string]float64{"a": 1.0})) // b missing

	states := tr.Baselines("e1")
	if states["a"].Count() != 2 {
		t.Errorf("signal a: count %d, want 2", states["a"].Count())
	}
	if states["b"].Count() != 1 {
		t.Errorf("signal b: count %d, want 1 (missing day skipped)", states["b"].Count())
	}
}

func TestEmployeesIndependent(t *testing.T) {
	tr := NewTracker(DefaultConfig())

	tr.Update("e1", 0, snapOf(0, map[string]float64{"s": 1.0}))
	other := snapshot.Snapshot{EmployeeID: "e2", Day: 0, Signals: map[string]float64{"s": 9.0}}
	tr.Update("e2", 0, other)

	if got := tr.Baselines("e1")["s"].Mean(); got != 1.0 {
		t.Errorf("e1 mean polluted: %.2f", got)
	}
	if got := tr.Baselines("e2")["s"].Mean(); got != 9.0 {
		t.Errorf("e2 mean polluted: %.2f", got)
	}
}
