package provlog

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// #region helpers
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// #endregion helpers

func TestLogAndReadBack(t *testing.T) {
	db := setupDB(t)

	entries := []Entry{
		{EmployeeID: "e1", Day: 7, Stage: "detect", Decision: "risk 0.82 (high)", ModelVersion: "v1"},
		{EmployeeID: "e1", Day: 7, Stage: "decide", Decision: "workload_redistribution_suggestion", Reason: "risk 0.820"},
		{EmployeeID: "e2", Day: 7, Stage: "detect", Decision: "risk 0.10 (low)"},
	}
	for _, e := range entries {
		if err := Log(db, e); err != nil {
			t.Fatalf("log: %v", err)
		}
	}

	got, err := ForDay(db, "e1", 7)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries for e1 day 7, want 2", len(got))
	}
	if got[0].Stage != "detect" || got[1].Stage != "decide" {
		t.Errorf("insertion order lost: %s, %s", got[0].Stage, got[1].Stage)
	}
	if got[1].Reason != "risk 0.820" {
		t.Errorf("reason %q", got[1].Reason)
	}
}

func TestZeroCreatedAtAutoFills(t *testing.T) {
	db := setupDB(t)

	before := time.Now().UTC()
	if err := Log(db, Entry{EmployeeID: "e1", Day: 1, Stage: "tune", Decision: "thresholds nudged"}); err != nil {
		t.Fatalf("log: %v", err)
	}
	got, err := ForDay(db, "e1", 1)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].CreatedAt.Before(before) {
		t.Error("auto-filled created_at should be >= test start time")
	}
}

func TestEmptyOptionalFieldsStoredAsNull(t *testing.T) {
	db := setupDB(t)

	if err := Log(db, Entry{EmployeeID: "e1", Day: 2, Stage: "forecast", Decision: "skipped"}); err != nil {
		t.Fatalf("log: %v", err)
	}

	var reason, version sql.NullString
	db.QueryRow("SELECT reason, model_version FROM cycle_log").Scan(&reason, &version)
	if reason.Valid || version.Valid {
		t.Error("empty optional fields should be NULL")
	}
}

func TestLogOnClosedDBFails(t *testing.T) {
	db := setupDB(t)
	db.Close()

	if err := Log(db, Entry{EmployeeID: "e1", Day: 3, Stage: "detect", Decision: "x"}); err == nil {
		t.Fatal("expected error on closed db")
	}
}
