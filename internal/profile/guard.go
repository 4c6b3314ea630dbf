package profile

import "sync"

// #region guard

// Guard serializes writers on a single employee's profile. Different
// employees never contend; the decision engine and the tuner on the same
// employee do. Acquire fails fast with ErrContention so the caller can
// retry instead of queueing behind an unknown holder.
type Guard struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewGuard returns an empty guard; employee entries are created on first use.
func NewGuard() *Guard {
	return &Guard{locks: make(map[string]*sync.Mutex)}
}

func (g *Guard) forEmployee(employee string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.locks[employee]
	if !ok {
		m = &sync.Mutex{}
		g.locks[employee] = m
	}
	return m
}

// Acquire takes the employee's write lock, or reports contention without
// blocking. On success the returned release function must be called.
func (g *Guard) Acquire(employee string) (release func(), err error) {
	m := g.forEmployee(employee)
	if !m.TryLock() {
		return nil, ErrContention
	}
	return m.Unlock, nil
}

// #endregion guard
