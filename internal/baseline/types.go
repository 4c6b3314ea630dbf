package baseline

import "math"

// #region baseline-config

// Config holds the sliding-window parameters for baseline tracking.
type Config struct {
	WindowDays int `yaml:"window_days"` // sliding window length per signal
	WarmMin    int `yaml:"warm_min"`    // samples required before a baseline is usable
}

// DefaultConfig returns the standard 7-day window with a 3-sample warm-up.
func DefaultConfig() Config {
	return Config{
		WindowDays: 7,
		WarmMin:    3,
	}
}

// #endregion baseline-config

// #region state

// State is the rolling statistical baseline for one (employee, signal) pair.
// The window is a fixed-size ring; sum and sumSq are maintained incrementally
// so mean and variance are O(1) per update.
type State struct {
	EmployeeID string
	Signal     string

	window  []float64 // ring buffer, len == capacity
	head    int       // next write position
	count   int       // samples currently admitted, <= len(window)
	sum     float64
	sumSq   float64
	warmMin int

	LastDay int // day index of the most recent admitted sample
}

func newState(employee, signal string, cfg Config) *State {
	return &State{
		EmployeeID: employee,
		Signal:     signal,
		window:     make([]float64, cfg.WindowDays),
		warmMin:    cfg.WarmMin,
		LastDay:    -1,
	}
}

// Count returns the number of samples currently in the window.
func (s *State) Count() int {
	return s.count
}

// Warm reports whether enough samples exist to score deviations.
func (s *State) Warm() bool {
	return s.count >= s.warmMin
}

// Mean returns the window mean, or 0 before any sample.
func (s *State) Mean() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}

// Variance returns the population variance over the window.
func (s *State) Variance() float64 {
	if s.count == 0 {
		return 0
	}
	n := float64(s.count)
	mean := s.sum / n
	v := s.sumSq/n - mean*mean
	if v < 0 {
		v = 0 // guard against float drift on near-constant windows
	}
	return v
}

// Std returns the population standard deviation over the window.
func (s *State) Std() float64 {
	return math.Sqrt(s.Variance())
}

// admit appends a value, evicting the oldest when the window is full.
func (s *State) admit(day int, value float64) {
	if s.count == len(s.window) {
		evicted := s.window[s.head]
		s.sum -= evicted
		s.sumSq -= evicted * evicted
		s.count--
	}
	s.window[s.head] = value
	s.head = (s.head + 1) % len(s.window)
	s.count++
	s.sum += value
	s.sumSq += value * value
	s.LastDay = day
}

// #endregion state
