package refit

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/danielpatrickdp/burnout-guardian/internal/detect"
	"github.com/danielpatrickdp/burnout-guardian/internal/forecast"
	"github.com/danielpatrickdp/burnout-guardian/internal/snapshot"
	"github.com/google/uuid"
)

// #region registry

// Registry holds the current fitted models as an immutable, versioned
// snapshot. Cycles read whatever version is current and never block on a
// refit in progress; the job swaps the whole snapshot in one write.
type Registry struct {
	mu      sync.RWMutex
	current *Models
}

// Models is one refit generation: the shared anomaly forest plus
// per-employee forecast fits.
type Models struct {
	Version  string
	FittedAt time.Time

	Forest *detect.Forest
	Fits   map[string]*forecast.Fits
}

// NewRegistry starts empty; until the first refit, cycles run without an
// anomaly model and fit forecasts inline.
func NewRegistry() *Registry {
	return &Registry{}
}

// Current returns the latest models snapshot, or nil before the first refit.
func (r *Registry) Current() *Models {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Swap installs a new generation.
func (r *Registry) Swap(m *Models) {
	r.mu.Lock()
	r.current = m
	r.mu.Unlock()
}

// ForestFor returns the current anomaly forest, or nil.
func (r *Registry) ForestFor() *detect.Forest {
	if m := r.Current(); m != nil {
		return m.Forest
	}
	return nil
}

// FitsFor returns the current forecast fits for one employee, or nil.
func (r *Registry) FitsFor(employee string) *forecast.Fits {
	m := r.Current()
	if m == nil {
		return nil
	}
	return m.Fits[employee]
}

// #endregion registry

// #region job

// HistorySource is the slice of the store the refit job reads.
type HistorySource interface {
	ListEmployees() ([]string, error)
	GetSnapshot(employee string, day int) (snapshot.Snapshot, error)
	AssessmentHistory(employee string, limit int) ([]detect.Assessment, error)
}

// Job rebuilds all models from stored history and swaps them into the
// registry. Scheduled out-of-band (nominally weekly); cycles never wait
// on it.
type Job struct {
	source     HistorySource
	registry   *Registry
	forecaster *forecast.Forecaster
	forestCfg  detect.ForestConfig
	lookback   int
}

// NewJob wires a refit job over the given history source and registry.
func NewJob(source HistorySource, registry *Registry, forecaster *forecast.Forecaster, forestCfg detect.ForestConfig, lookback int) *Job {
	return &Job{
		source:     source,
		registry:   registry,
		forecaster: forecaster,
		forestCfg:  forestCfg,
		lookback:   lookback,
	}
}

// Run fits one new model generation. Employees with too little history are
// skipped, not failed; the generation is installed even if some employees
// have no fits yet.
func (j *Job) Run(ctx context.Context) (*Models, error) {
	start := time.Now()
	employees, err := j.source.ListEmployees()
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	var corpus [][]float64
	fits := make(map[string]*forecast.Fits)

	for _, emp := range employees {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		history, err := j.source.AssessmentHistory(emp, j.lookback)
		if err != nil {
			return nil, fmt.Errorf("history for %s: %w", emp, err)
		}

		// The forest trains on raw signal vectors across the fleet.
		for _, a := range history {
			snap, err := j.source.GetSnapshot(emp, a.Day)
			if err != nil {
				continue // assessment without a stored snapshot, skip
			}
			corpus = append(corpus, snap.Vector())
		}

		fit, err := j.forecaster.FitModels(history)
		if err != nil {
			continue // insufficient history, employee stays on inline fits
		}
		fits[emp] = fit
	}

	m := &Models{
		Version:  uuid.New().String(),
		FittedAt: time.Now().UTC(),
		Forest:   detect.TrainForest(corpus, j.forestCfg),
		Fits:     fits,
	}
	j.registry.Swap(m)

	log.Printf("[REFIT] version %s: %d employees fitted, %d corpus points, %dms",
		m.Version, len(fits), len(corpus), time.Since(start).Milliseconds())
	return m, nil
}

// #endregion job
