package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/burnout-guardian/internal/replay"
	"github.com/danielpatrickdp/burnout-guardian/internal/snapshot"
	"github.com/danielpatrickdp/burnout-guardian/internal/store"
)

// #region main

// seed emits synthetic telemetry, one snapshot JSON per line, ready to pipe
// into the guardian's stdin. With --db the snapshots are also persisted so
// a later warmup finds history.
func main() {
	scenario := flag.String("scenario", "calm", "calm, step, or ramp")
	employees := flag.Int("employees", 1, "number of employees to generate")
	days := flag.Int("days", 30, "days per employee (step: last 3 are the break)")
	seed := flag.Int64("seed", 1, "rng seed")
	dbPath := flag.String("db", "", "also persist snapshots to this guardian.db")
	flag.Parse()

	var st *store.Store
	if *dbPath != "" {
		var err error
		st, err = store.NewStore(*dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open db: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()
	}

	enc := json.NewEncoder(os.Stdout)
	total := 0
	for i := 0; i < *employees; i++ {
		emp := fmt.Sprintf("emp-%03d", i+1)
		empSeed := *seed + int64(i)

		var snaps []snapshot.Snapshot
		switch *scenario {
		case "calm":
			snaps = replay.CalmDays(emp, 0, *days, empSeed)
		case "step":
			crisis := 3
			if *days <= crisis {
				crisis = 1
			}
			snaps = replay.StepScenario(emp, *days-crisis, crisis, empSeed)
		case "ramp":
			snaps = replay.RampScenario(emp, *days, empSeed)
		default:
			fmt.Fprintf(os.Stderr, "unknown scenario %q\n", *scenario)
			os.Exit(2)
		}

		for _, snap := range snaps {
			if err := enc.Encode(snap); err != nil {
				fmt.Fprintf(os.Stderr, "encode: %v\n", err)
				os.Exit(1)
			}
			if st != nil {
				if _, err := st.PutSnapshot(snap); err != nil {
					fmt.Fprintf(os.Stderr, "persist %s day %d: %v\n", snap.EmployeeID, snap.Day, err)
					os.Exit(1)
				}
			}
			total++
		}
	}

	fmt.Fprintf(os.Stderr, "seeded %d snapshots (%s, %d employees)\n", total, *scenario, *employees)
}

// #endregion main
