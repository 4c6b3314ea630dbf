package baseline

import (
	"sync"

	"github.com/danielpatrickdp/burnout-guardian/internal/snapshot"
)

// #region tracker

// Tracker maintains rolling per-signal baselines for every employee.
// Each employee's baselines are mutated only by that employee's cycle,
// but the outer map is shared across cycles, so it is guarded.
type Tracker struct {
	config Config

	mu        sync.Mutex
	employees map[string]map[string]*State // employee → signal → state
}

// NewTracker creates an empty tracker.
func NewTracker(config Config) *Tracker {
	return &Tracker{
		config:    config,
		employees: make(map[string]map[string]*State),
	}
}

// #endregion tracker

// #region update

// Update admits one day's snapshot into the employee's baselines and returns
// the per-signal states after the update. Signals absent from the snapshot
// are skipped for the day. Re-delivery of an already-admitted day is a no-op
// per signal, so the window never double-counts.
func (t *Tracker) Update(employee string, day int, snap snapshot.Snapshot) map[string]*State {
	states := t.forEmployee(employee)

	for key, value := range snap.Signals {
		st, ok := states[key]
		if !ok {
			st = newState(employee, key, t.config)
			states[key] = st
		}
		if day <= st.LastDay {
			continue // stale or re-delivered day
		}
		st.admit(day, value)
	}

	return states
}

// #endregion update

// #region lookup

// Baselines returns the employee's current per-signal states, or nil if no
// snapshot has been admitted yet. The returned map is the live view owned by
// the employee's cycle; callers outside the cycle must not mutate it.
func (t *Tracker) Baselines(employee string) map[string]*State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.employees[employee]
}

func (t *Tracker) forEmployee(employee string) map[string]*State {
	t.mu.Lock()
	defer t.mu.Unlock()
	states, ok := t.employees[employee]
	if !ok {
		states = make(map[string]*State)
		t.employees[employee] = states
	}
	return states
}

// #endregion lookup
