package detect

import (
	"math"
	"sort"
	"time"

	"github.com/danielpatrickdp/burnout-guardian/internal/baseline"
	"github.com/danielpatrickdp/burnout-guardian/internal/snapshot"
)

// #region detector

// Detector combines baseline deviation, multivariate anomaly scoring,
// change-point probability, and volatility acceleration into one risk score.
type Detector struct {
	config Config
}

// NewDetector creates a detector with the given configuration.
func NewDetector(config Config) *Detector {
	return &Detector{config: config}
}

// #endregion detector

// #region assess

// Assess produces the day's StabilityAssessment. forest may be nil (model
// not yet fitted); history may be short or empty. Neither is an error:
// unavailable components drop out of the weighted combination and the
// remaining weights are renormalized, so the score stays in [0,1].
func (d *Detector) Assess(
	employee string,
	day int,
	snap snapshot.Snapshot,
	baselines map[string]*baseline.State,
	history []Assessment,
	forest *Forest,
) Assessment {
	cfg := d.config

	// 1. Baseline deviation over warm signals.
	devScore, deviations, flags, devAvailable := d.deviationScore(snap, baselines)

	// 2. Multivariate anomaly score from the population model.
	var anomScore float64
	anomAvailable := forest != nil
	if anomAvailable {
		anomScore = forest.Score(snap.Vector())
	}

	// Only days that actually scored a component belong in the stability
	// series; unscored cold-start days sit at stability 1.0 and would read
	// as a regime break the moment baselines warm up.
	series := stabilitySeries(history)
	historyWarm := len(series) >= cfg.MinHistoryDays

	// Provisional stability from the two history-free components seeds the
	// sequential estimators below, so a regime break registers the day it
	// happens instead of one cycle later.
	provisional := 1 - renormalize(
		component{cfg.WeightDeviation, devScore, devAvailable},
		component{cfg.WeightAnomaly, anomScore, anomAvailable},
	)

	// 3. Change-point probability over the stability series.
	var changeProb float64
	if historyWarm {
		changeProb = changePointProb(series, provisional, cfg.EpsilonStd)
	}

	// 4. Volatility and its acceleration.
	var volatility, accel, accelScore float64
	if historyWarm {
		volatility, accel = volatilityAcceleration(series, provisional, cfg.VolatilityWindow)
		if accel > 0 {
			accelScore = clamp01(accel / cfg.AccelNorm)
		}
	}

	risk := renormalize(
		component{cfg.WeightDeviation, devScore, devAvailable},
		component{cfg.WeightAnomaly, anomScore, anomAvailable},
		component{cfg.WeightChangePoint, changeProb, historyWarm},
		component{cfg.WeightAcceleration, accelScore, historyWarm},
	)

	return Assessment{
		EmployeeID:      employee,
		Day:             day,
		StabilityIndex:  1 - risk,
		RiskProbability: risk,
		RiskLevel:       cfg.Bucket(risk),
		Volatility:      volatility,
		Acceleration:    accel,
		TopContributors: topContributors(deviations, cfg.MaxContributors),
		AnomalyFlags:    flags,
		DeviationScore:  devScore,
		AnomalyScore:    anomScore,
		ChangePointProb: changeProb,
		CreatedAt:       time.Now().UTC(),
	}
}

// #endregion assess

// #region deviation

// deviationScore standardizes each warm signal against its baseline and
// folds the absolute z-scores into one [0,1] component. Cold or missing
// signals are skipped, never scored.
func (d *Detector) deviationScore(
	snap snapshot.Snapshot,
	baselines map[string]*baseline.State,
) (score float64, deviations map[string]float64, flags []string, available bool) {
	cfg := d.config
	deviations = make(map[string]float64)

	var weighted, totalWeight float64
	for key, value := range snap.Signals {
		st, ok := baselines[key]
		if !ok || !st.Warm() {
			continue
		}
		std := st.Std()
		if std < cfg.EpsilonStd {
			std = cfg.EpsilonStd
		}
		z := (value - st.Mean()) / std
		deviations[key] = z

		w := snapshot.Weight(key)
		weighted += math.Abs(z) * w
		totalWeight += w

		if math.Abs(z) > cfg.SigmaThreshold {
			flags = append(flags, key)
		}
	}
	if totalWeight == 0 {
		return 0, deviations, nil, false
	}
	sort.Strings(flags)

	// Average |z| saturates at the flag threshold: a fleet-wide 2.5σ day
	// scores 1.0 on this component.
	score = clamp01((weighted / totalWeight) / cfg.SigmaThreshold)
	return score, deviations, flags, true
}

// topContributors ranks signals by |standardized deviation| × signal weight.
func topContributors(deviations map[string]float64, limit int) []string {
	type ranked struct {
		key   string
		score float64
	}
	items := make([]ranked, 0, len(deviations))
	for key, z := range deviations {
		items = append(items, ranked{key, math.Abs(z) * snapshot.Weight(key)})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return items[i].key < items[j].key // stable order on ties
	})
	if len(items) > limit {
		items = items[:limit]
	}
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.key
	}
	return keys
}

// #endregion deviation

// #region combination

type component struct {
	weight    float64
	value     float64
	available bool
}

// renormalize computes the weighted mean over available components.
// With none available the day reads as fully stable; the caller records
// the assessment either way, so absence of evidence stays distinguishable
// from evidence of risk in the component breakdown.
func renormalize(comps ...component) float64 {
	var sum, weight float64
	for _, c := range comps {
		if !c.available {
			continue
		}
		sum += c.weight * clamp01(c.value)
		weight += c.weight
	}
	if weight == 0 {
		return 0
	}
	return sum / weight
}

// stabilitySeries extracts the stability indices of days where at least
// one component scored. Days assessed with nothing to score carry a
// vacuous 1.0 and are excluded.
func stabilitySeries(history []Assessment) []float64 {
	series := make([]float64, 0, len(history))
	for _, a := range history {
		if a.RiskProbability == 0 && a.DeviationScore == 0 &&
			a.AnomalyScore == 0 && a.ChangePointProb == 0 {
			continue
		}
		series = append(series, a.StabilityIndex)
	}
	return series
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion combination
