package provlog

import (
	"database/sql"
	"fmt"
	"time"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS cycle_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	employee_id   TEXT NOT NULL,
	day           INTEGER NOT NULL,
	stage         TEXT NOT NULL,
	decision      TEXT NOT NULL,
	reason        TEXT,
	model_version TEXT,
	created_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cycle_log_employee ON cycle_log(employee_id, day);
`

// Migrate creates the provenance table on the shared database.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("provlog schema: %w", err)
	}
	return nil
}

// #endregion schema

// #region log-entry
// Log writes one provenance entry.
func Log(db *sql.DB, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO cycle_log (employee_id, day, stage, decision, reason, model_version, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.EmployeeID,
		entry.Day,
		entry.Stage,
		entry.Decision,
		nullIfEmpty(entry.Reason),
		nullIfEmpty(entry.ModelVersion),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log entry: %w", err)
	}
	return nil
}

// #endregion log-entry

// #region read
// ForDay returns the entries for one employee-day in insertion order.
func ForDay(db *sql.DB, employee string, day int) ([]Entry, error) {
	rows, err := db.Query(
		`SELECT employee_id, day, stage, decision, reason, model_version, created_at
		 FROM cycle_log WHERE employee_id = ? AND day = ? ORDER BY id`,
		employee, day,
	)
	if err != nil {
		return nil, fmt.Errorf("query cycle log: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var reason, version sql.NullString
		var createdStr string
		if err := rows.Scan(&e.EmployeeID, &e.Day, &e.Stage, &e.Decision, &reason, &version, &createdStr); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if reason.Valid {
			e.Reason = reason.String
		}
		if version.Valid {
			e.ModelVersion = version.String
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, e)
	}
	return out, rows.Err()
}

// #endregion read

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
