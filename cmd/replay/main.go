package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/burnout-guardian/internal/replay"
	"github.com/danielpatrickdp/burnout-guardian/internal/snapshot"
	"github.com/danielpatrickdp/burnout-guardian/internal/store"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to guardian.db (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	employee := flag.String("employee", "", "restrict DB mode to one employee")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/guardian.db [--employee id]")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runDBMode(*dbPath, *employee)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	results, summary := replay.Replay(f.Snapshots(), replay.DefaultReplayConfig())

	expected := make(map[string]replay.FixtureExpectation, len(f.Expected))
	for _, e := range f.Expected {
		expected[dayKey(e.EmployeeID, e.Day)] = e
	}

	code := printComparison(results, func(r replay.DayResult) (string, string, bool) {
		e, ok := expected[dayKey(r.EmployeeID, r.Day)]
		if !ok {
			return "", "", false
		}
		return e.Action, e.RiskLevel, true
	})

	fmt.Printf("\nReplayed %d days: %d actions, %d alerts, %d outcomes\n",
		summary.TotalDays, summary.Actions, summary.Alerts, summary.Outcomes)
	return code
}

// #endregion fixture-mode

// #region db-mode

// runDBMode re-runs every stored snapshot through the in-memory chain and
// compares the replayed actions against the interventions the live service
// recorded. Divergence means the decision path changed since the data was
// written.
func runDBMode(dbPath, employee string) int {
	st, err := store.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer st.Close()

	employees := []string{employee}
	if employee == "" {
		employees, err = st.ListEmployees()
		if err != nil {
			fmt.Fprintf(os.Stderr, "list employees: %v\n", err)
			return 2
		}
	}
	if len(employees) == 0 {
		fmt.Fprintln(os.Stderr, "no employees found")
		return 2
	}

	var days []snapshot.Snapshot
	recorded := make(map[string]string)
	for _, emp := range employees {
		snaps, err := st.Snapshots(emp)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load snapshots for %s: %v\n", emp, err)
			return 2
		}
		days = append(days, snaps...)

		ivs, err := st.Interventions(emp, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load interventions for %s: %v\n", emp, err)
			return 2
		}
		for _, iv := range ivs {
			recorded[dayKey(emp, iv.Day)] = string(iv.ActionType)
		}
	}
	if len(days) == 0 {
		fmt.Fprintln(os.Stderr, "no snapshots found")
		return 2
	}

	results, _ := replay.Replay(days, replay.DefaultReplayConfig())

	return printComparison(results, func(r replay.DayResult) (string, string, bool) {
		action, ok := recorded[dayKey(r.EmployeeID, r.Day)]
		if !ok {
			action = "none"
		}
		return action, "", true
	})
}

// #endregion db-mode

// #region output

// printComparison renders the replayed-vs-expected table and returns the
// exit code: 0 when every checked day matches, 1 otherwise.
func printComparison(results []replay.DayResult, expect func(replay.DayResult) (action, level string, ok bool)) int {
	fmt.Printf("%-20s| %-36s| %-36s| %s\n", "Employee/Day", "Expected", "Replayed", "Match")
	fmt.Printf("%-20s+%-37s+%-37s+%s\n",
		"--------------------", "-------------------------------------",
		"-------------------------------------", "------")

	matches, checked := 0, 0
	for _, r := range results {
		wantAction, wantLevel, ok := expect(r)
		if !ok {
			continue
		}
		checked++

		match := "OK"
		if r.Action != wantAction || (wantLevel != "" && string(r.RiskLevel) != wantLevel) {
			match = "DIFF"
		} else {
			matches++
		}

		fmt.Printf("%-20s| %-36s| %-36s| %s\n",
			dayKey(r.EmployeeID, r.Day), wantAction,
			fmt.Sprintf("%s (risk %.3f %s)", r.Action, r.RiskProbability, r.RiskLevel), match)
	}

	diverge := checked - matches
	fmt.Printf("\nSummary: %d checked, %d match, %d diverge\n", checked, matches, diverge)
	if diverge > 0 {
		return 1
	}
	return 0
}

func dayKey(employee string, day int) string {
	return fmt.Sprintf("%s/%d", employee, day)
}

// #endregion output
