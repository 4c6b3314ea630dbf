package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/danielpatrickdp/burnout-guardian/internal/baseline"
	"github.com/danielpatrickdp/burnout-guardian/internal/config"
	"github.com/danielpatrickdp/burnout-guardian/internal/decide"
	"github.com/danielpatrickdp/burnout-guardian/internal/detect"
	"github.com/danielpatrickdp/burnout-guardian/internal/dispatch"
	"github.com/danielpatrickdp/burnout-guardian/internal/forecast"
	"github.com/danielpatrickdp/burnout-guardian/internal/pipeline"
	"github.com/danielpatrickdp/burnout-guardian/internal/profile"
	"github.com/danielpatrickdp/burnout-guardian/internal/provlog"
	"github.com/danielpatrickdp/burnout-guardian/internal/refit"
	"github.com/danielpatrickdp/burnout-guardian/internal/snapshot"
	"github.com/danielpatrickdp/burnout-guardian/internal/store"
)

// #region main
func main() {
	cfgPath := envOr("GUARDIAN_CONFIG", "")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	st, err := store.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	if err := provlog.Migrate(st.DB()); err != nil {
		log.Fatalf("failed to migrate provenance log: %v", err)
	}

	forecaster := forecast.NewForecaster(cfg.Forecast)
	registry := refit.NewRegistry()

	// Connect to the action executor; without an address the pipeline
	// records interventions but hands nothing off.
	var dispatcher pipeline.Dispatcher
	if cfg.ActionAddr != "" {
		client, err := dispatch.NewClient(cfg.ActionAddr)
		if err != nil {
			log.Fatalf("failed to connect to action executor at %s: %v", cfg.ActionAddr, err)
		}
		defer client.Close()
		dispatcher = client
	}

	pipe := pipeline.New(st,
		baseline.NewTracker(cfg.Baseline),
		detect.NewDetector(cfg.Detect),
		forecaster,
		decide.NewEngine(cfg.Engine),
		registry,
		profile.NewGuard(),
		dispatcher,
		cfg.Tuner, cfg.Pipeline)

	if err := pipe.Warmup(); err != nil {
		log.Fatalf("warmup failed: %v", err)
	}

	// Fit the population models once at startup, then on the cron schedule.
	job := refit.NewJob(st, registry, forecaster, cfg.Forest, cfg.Pipeline.LookbackDays)
	refitCtx, cancelRefit := context.WithTimeout(context.Background(), 2*time.Minute)
	if _, err := job.Run(refitCtx); err != nil {
		log.Printf("initial refit skipped: %v", err)
	}
	cancelRefit()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.RefitCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := job.Run(ctx); err != nil {
			log.Printf("scheduled refit failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("invalid refit schedule %q: %v", cfg.RefitCron, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	fmt.Println("Burnout Guardian ready.")
	fmt.Printf("  DB: %s | Executor: %s | Refit: %s\n", cfg.DBPath, cfg.ActionAddr, cfg.RefitCron)
	fmt.Println("Feed one snapshot JSON per line on stdin:")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var snap snapshot.Snapshot
		if err := json.Unmarshal([]byte(line), &snap); err != nil {
			log.Printf("bad snapshot line: %v", err)
			continue
		}
		if snap.EmployeeID == "" {
			log.Printf("snapshot without employee_id dropped")
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		res, err := pipe.RunCycle(ctx, snap)
		cancel()
		if err != nil {
			log.Printf("cycle error for %s day %d: %v", snap.EmployeeID, snap.Day, err)
			continue
		}

		printCycle(snap, res)
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("stdin read error: %v", err)
	}
}

// #endregion main

// #region output

func printCycle(snap snapshot.Snapshot, res pipeline.CycleResult) {
	if res.Skipped {
		fmt.Printf("[%s day %d] already processed, skipped\n", snap.EmployeeID, snap.Day)
		return
	}

	action := "none"
	if res.Action != nil {
		action = string(res.Action.ActionType)
	}
	tipping := ""
	if res.Forecast != nil && res.Forecast.TippingDetected {
		tipping = fmt.Sprintf(" tipping=+%dd", res.Forecast.TippingDay+1)
	}
	fmt.Printf("[%s day %d] risk=%.3f level=%s action=%s%s\n",
		snap.EmployeeID, snap.Day, res.Assessment.RiskProbability,
		res.Assessment.RiskLevel, action, tipping)

	for _, label := range res.Outcomes {
		fmt.Printf("[%s day %d] outcome=%s\n", snap.EmployeeID, snap.Day, label)
	}
}

// #endregion output

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
