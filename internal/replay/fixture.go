package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/burnout-guardian/internal/snapshot"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string               `json:"description"`
	Days        []FixtureDay         `json:"days"`
	Expected    []FixtureExpectation `json:"expected"`
}

// FixtureDay is one recorded snapshot.
type FixtureDay struct {
	EmployeeID string             `json:"employee_id"`
	Day        int                `json:"day"`
	Signals    map[string]float64 `json:"signals"`
}

// FixtureExpectation pins the replay outcome for one employee-day. An
// empty risk_level means "don't check"; action is always checked.
type FixtureExpectation struct {
	EmployeeID string `json:"employee_id"`
	Day        int    `json:"day"`
	RiskLevel  string `json:"risk_level,omitempty"`
	Action     string `json:"action"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// Snapshots converts the fixture days to domain snapshots, in file order.
func (f *Fixture) Snapshots() []snapshot.Snapshot {
	out := make([]snapshot.Snapshot, len(f.Days))
	for i, d := range f.Days {
		out[i] = snapshot.Snapshot{
			EmployeeID: d.EmployeeID,
			Day:        d.Day,
			Signals:    d.Signals,
		}
	}
	return out
}

// #endregion fixture-loader
