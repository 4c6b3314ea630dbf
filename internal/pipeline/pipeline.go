package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/danielpatrickdp/burnout-guardian/internal/baseline"
	"github.com/danielpatrickdp/burnout-guardian/internal/decide"
	"github.com/danielpatrickdp/burnout-guardian/internal/detect"
	"github.com/danielpatrickdp/burnout-guardian/internal/forecast"
	"github.com/danielpatrickdp/burnout-guardian/internal/profile"
	"github.com/danielpatrickdp/burnout-guardian/internal/provlog"
	"github.com/danielpatrickdp/burnout-guardian/internal/refit"
	"github.com/danielpatrickdp/burnout-guardian/internal/snapshot"
	"github.com/danielpatrickdp/burnout-guardian/internal/store"
	"golang.org/x/sync/errgroup"
)

// #region pipeline-struct

// Dispatcher hands a recorded intervention to the external action
// executor. Nil disables dispatch (replay, tests).
type Dispatcher interface {
	Send(ctx context.Context, iv decide.Intervention, paramsJSON string) error
}

// Pipeline runs the per-employee daily cycle: baseline update, instability
// assessment, forecast, decision, and outcome-driven tuning. Employees are
// independent; within one employee the steps are strictly sequential.
type Pipeline struct {
	store      *store.Store
	tracker    *baseline.Tracker
	detector   *detect.Detector
	forecaster *forecast.Forecaster
	engine     *decide.Engine
	registry   *refit.Registry
	guard      *profile.Guard
	dispatcher Dispatcher

	tunerCfg profile.Config
	lookback int
	retries  int
}

// Config carries the pipeline's own knobs; component configs live with
// their components.
type Config struct {
	LookbackDays      int `yaml:"lookback_days"` // assessment history window per cycle
	ContentionRetries int `yaml:"contention_retries"`
	FleetConcurrency  int `yaml:"fleet_concurrency"`
}

// DefaultConfig returns the shipped pipeline tuning.
func DefaultConfig() Config {
	return Config{
		LookbackDays:      60,
		ContentionRetries: 5,
		FleetConcurrency:  8,
	}
}

// New wires a pipeline over its collaborators. dispatcher may be nil.
func New(st *store.Store, tracker *baseline.Tracker, detector *detect.Detector,
	forecaster *forecast.Forecaster, engine *decide.Engine, registry *refit.Registry,
	guard *profile.Guard, dispatcher Dispatcher, tunerCfg profile.Config, cfg Config) *Pipeline {
	return &Pipeline{
		store:      st,
		tracker:    tracker,
		detector:   detector,
		forecaster: forecaster,
		engine:     engine,
		registry:   registry,
		guard:      guard,
		dispatcher: dispatcher,
		tunerCfg:   tunerCfg,
		lookback:   cfg.LookbackDays,
		retries:    cfg.ContentionRetries,
	}
}

// #endregion pipeline-struct

// #region warmup

// Warmup rebuilds the in-memory baselines from stored snapshots. Run once
// at startup before the first cycle.
func (p *Pipeline) Warmup() error {
	employees, err := p.store.ListEmployees()
	if err != nil {
		return fmt.Errorf("warmup: %w", err)
	}
	for _, emp := range employees {
		snaps, err := p.store.Snapshots(emp)
		if err != nil {
			return fmt.Errorf("warmup %s: %w", emp, err)
		}
		for _, snap := range snaps {
			p.tracker.Update(emp, snap.Day, snap)
		}
	}
	log.Printf("[PIPELINE] warmed baselines for %d employees", len(employees))
	return nil
}

// #endregion warmup

// #region cycle

// CycleResult is what one employee-day produced.
type CycleResult struct {
	Skipped    bool // day already assessed by an earlier cycle
	Assessment detect.Assessment
	Forecast   *forecast.Forecast    // nil when history was insufficient
	Action     *decide.Intervention  // nil when no action fired
	Outcomes   []decide.OutcomeLabel // outcomes evaluated this cycle
}

// RunCycle processes one snapshot through the full chain. Every step's
// output is committed only after the step completes, so an abandoned cycle
// leaves no partial state and is safe to retry.
func (p *Pipeline) RunCycle(ctx context.Context, snap snapshot.Snapshot) (CycleResult, error) {
	emp, day := snap.EmployeeID, snap.Day

	inserted, err := p.store.PutSnapshot(snap)
	if err != nil {
		return CycleResult{}, fmt.Errorf("persist snapshot: %w", err)
	}
	if !inserted {
		// Re-delivered day. The assessment, not the snapshot, marks the
		// cycle as processed: a cycle abandoned between the two commits
		// resumes here instead of losing the day.
		if _, err := p.store.AssessmentAt(emp, day); err == nil {
			return CycleResult{Skipped: true}, nil
		} else if !errors.Is(err, store.ErrNotFound) {
			return CycleResult{}, fmt.Errorf("check assessment: %w", err)
		}
	}

	// Baselines reflect days before this one; the update itself happens
	// after assessment so today's values cannot absorb today's deviation.
	baselines := p.tracker.Baselines(emp)
	history, err := p.store.AssessmentHistory(emp, p.lookback)
	if err != nil {
		return CycleResult{}, fmt.Errorf("load history: %w", err)
	}

	models := p.registry.Current()
	modelVersion := ""
	var forest *detect.Forest
	if models != nil {
		modelVersion = models.Version
		forest = models.Forest
	}

	assessment := p.detector.Assess(emp, day, snap, baselines, history, forest)
	if err := p.store.PutAssessment(assessment); err != nil {
		return CycleResult{}, fmt.Errorf("commit assessment: %w", err)
	}
	p.tracker.Update(emp, day, snap)
	p.logStage(emp, day, "detect",
		fmt.Sprintf("risk %.3f (%s)", assessment.RiskProbability, assessment.RiskLevel), "", modelVersion)

	result := CycleResult{Assessment: assessment}

	fc, err := p.forecastStep(emp, day, append(history, assessment), modelVersion)
	if err != nil {
		return CycleResult{}, err
	}
	result.Forecast = fc

	outcomes, action, err := p.decideStep(ctx, assessment, fc)
	if err != nil {
		return CycleResult{}, err
	}
	result.Outcomes = outcomes
	result.Action = action
	return result, nil
}

// forecastStep regenerates the forecast, treating thin history as a skip,
// not a failure.
func (p *Pipeline) forecastStep(emp string, day int, history []detect.Assessment, modelVersion string) (*forecast.Forecast, error) {
	fc, err := p.forecaster.Forecast(emp, history, p.registry.FitsFor(emp))
	if errors.Is(err, forecast.ErrInsufficientHistory) {
		p.logStage(emp, day, "forecast", "skipped", err.Error(), modelVersion)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}
	if err := p.store.PutForecast(fc); err != nil {
		return nil, fmt.Errorf("commit forecast: %w", err)
	}
	p.logStage(emp, day, "forecast",
		fmt.Sprintf("peak %.3f at day +%d", fc.PeakValue, fc.PeakDay+1), "", fc.ModelVersion)
	return &fc, nil
}

// decideStep holds the employee's profile guard across outcome evaluation
// and the decision, the only section where two actors could collide.
func (p *Pipeline) decideStep(ctx context.Context, a detect.Assessment, fc *forecast.Forecast) ([]decide.OutcomeLabel, *decide.Intervention, error) {
	emp, day := a.EmployeeID, a.Day

	release, err := p.acquireProfile(ctx, emp)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	prof, err := p.store.GetProfile(emp)
	if err != nil {
		return nil, nil, err
	}
	prof.RollDay(day)

	outcomes, err := p.evaluateOutcomes(&prof, a)
	if err != nil {
		return nil, nil, err
	}

	decision := p.engine.Decide(decide.Input{
		Assessment: a,
		Forecast:   fc,
		Thresholds: prof.Thresholds,
		State:      prof.State,
		UsedToday:  prof.UsedToday,
	})
	prof.State = decision.NextState

	if decision.Action != nil {
		if err := p.store.PutIntervention(*decision.Action); err != nil {
			return nil, nil, fmt.Errorf("commit intervention: %w", err)
		}
		prof.UsedToday++
		prof.InterventionTotal++
		p.logStage(emp, day, "decide", string(decision.Action.ActionType), decision.Reason, "")
		p.dispatch(ctx, *decision.Action)
	} else {
		p.logStage(emp, day, "decide", "no_action", decision.Reason, "")
	}

	prof.UpdatedAt = time.Now().UTC()
	if err := p.store.SaveProfile(prof); err != nil {
		return nil, nil, err
	}
	return outcomes, decision.Action, nil
}

// evaluateOutcomes closes the loop on interventions old enough to judge:
// the stability index a lag after the trigger, against the one before it.
func (p *Pipeline) evaluateOutcomes(prof *profile.Profile, a detect.Assessment) ([]decide.OutcomeLabel, error) {
	emp := a.EmployeeID
	maxDay := a.Day - p.tunerCfg.OutcomeLagCycles
	pending, err := p.store.PendingInterventions(emp, maxDay)
	if err != nil {
		return nil, fmt.Errorf("pending interventions: %w", err)
	}

	var labels []decide.OutcomeLabel
	for _, iv := range pending {
		post := a.StabilityIndex
		if after, err := p.store.AssessmentAt(emp, iv.Day+p.tunerCfg.OutcomeLagCycles); err == nil {
			post = after.StabilityIndex
		}

		outcome := profile.EvaluateOutcome(iv.PreStability, post, p.tunerCfg.NoiseFloor)
		if err := p.store.RecordOutcome(iv.ID, outcome.Label, post, outcome.Effectiveness); err != nil {
			if errors.Is(err, store.ErrOutcomeFinal) {
				continue // a concurrent evaluator got there first
			}
			return nil, err
		}
		profile.ApplyOutcome(prof, outcome, p.tunerCfg)
		labels = append(labels, outcome.Label)
		p.logStage(emp, a.Day, "tune",
			fmt.Sprintf("%s %s", iv.ActionType, outcome.Label),
			fmt.Sprintf("effectiveness %.3f", outcome.Effectiveness), "")
	}
	return labels, nil
}

// acquireProfile retries contention with backoff; contention is recoverable
// and never dropped silently.
func (p *Pipeline) acquireProfile(ctx context.Context, emp string) (func(), error) {
	backoff := 10 * time.Millisecond
	for attempt := 0; ; attempt++ {
		release, err := p.guard.Acquire(emp)
		if err == nil {
			return release, nil
		}
		if attempt >= p.retries {
			return nil, fmt.Errorf("profile for %s: %w", emp, err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

// dispatch hands the intervention off without waiting; a failed hand-off
// marks the record and nothing else.
func (p *Pipeline) dispatch(ctx context.Context, iv decide.Intervention) {
	if p.dispatcher == nil {
		return
	}
	paramsJSON, err := json.Marshal(iv.Params)
	if err != nil {
		paramsJSON = []byte("{}")
	}
	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := p.dispatcher.Send(sendCtx, iv, string(paramsJSON)); err != nil {
			log.Printf("[DISPATCH] %s: hand-off failed: %v", iv.ID, err)
			if markErr := p.store.MarkDispatchFailed(iv.ID); markErr != nil {
				log.Printf("[DISPATCH] %s: mark failed: %v", iv.ID, markErr)
			}
		}
	}()
}

func (p *Pipeline) logStage(emp string, day int, stage, decision, reason, version string) {
	err := provlog.Log(p.store.DB(), provlog.Entry{
		EmployeeID:   emp,
		Day:          day,
		Stage:        stage,
		Decision:     decision,
		Reason:       reason,
		ModelVersion: version,
	})
	if err != nil {
		log.Printf("[PIPELINE] provenance write failed: %v", err)
	}
}

// #endregion cycle

// #region fleet

// FleetResult pairs one employee's cycle outcome with its error, if any.
type FleetResult struct {
	EmployeeID string
	Result     CycleResult
	Err        error
}

// RunFleet runs one cycle per snapshot on a bounded worker pool. A failing
// employee never aborts the others; per-employee errors come back in the
// results.
func (p *Pipeline) RunFleet(ctx context.Context, snaps []snapshot.Snapshot, concurrency int) []FleetResult {
	if concurrency <= 0 {
		concurrency = DefaultConfig().FleetConcurrency
	}
	results := make([]FleetResult, len(snaps))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, snap := range snaps {
		i, snap := i, snap
		g.Go(func() error {
			res, err := p.RunCycle(ctx, snap)
			results[i] = FleetResult{EmployeeID: snap.EmployeeID, Result: res, Err: err}
			if err != nil {
				log.Printf("[PIPELINE] cycle failed for %s day %d: %v", snap.EmployeeID, snap.Day, err)
			}
			return nil
		})
	}
	g.Wait()
	return results
}

// #endregion fleet
