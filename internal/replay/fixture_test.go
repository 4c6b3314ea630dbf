package replay

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFixtureStepChange(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "step_change.json"))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if f.Description == "" {
		t.Error("fixture description empty")
	}
	if len(f.Days) != 21 {
		t.Errorf("fixture has %d days, want 21", len(f.Days))
	}
	if len(f.Expected) != 21 {
		t.Errorf("fixture has %d expectations, want 21", len(f.Expected))
	}

	snaps := f.Snapshots()
	if len(snaps) != len(f.Days) {
		t.Fatalf("Snapshots returned %d, want %d", len(snaps), len(f.Days))
	}
	for i, s := range snaps {
		if s.EmployeeID != f.Days[i].EmployeeID || s.Day != f.Days[i].Day {
			t.Errorf("snapshot %d: %s/%d, want %s/%d",
				i, s.EmployeeID, s.Day, f.Days[i].EmployeeID, f.Days[i].Day)
		}
	}
}

func TestLoadFixtureMissingFile(t *testing.T) {
	if _, err := LoadFixture(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("missing fixture should fail")
	}
}

func TestLoadFixtureMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{days: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFixture(path); err == nil {
		t.Fatal("malformed fixture should fail")
	}
}
