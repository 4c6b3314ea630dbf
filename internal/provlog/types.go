package provlog

import "time"

// #region types

// Entry is one provenance record: which stage of an employee's cycle
// decided what, and why. The log is append-only and never read by the
// pipeline itself; it exists for audit.
type Entry struct {
	EmployeeID   string
	Day          int
	Stage        string // "detect", "forecast", "decide", "tune", "dispatch"
	Decision     string
	Reason       string
	ModelVersion string
	CreatedAt    time.Time
}

// #endregion types
