package replay

import (
	"github.com/danielpatrickdp/burnout-guardian/internal/baseline"
	"github.com/danielpatrickdp/burnout-guardian/internal/decide"
	"github.com/danielpatrickdp/burnout-guardian/internal/detect"
	"github.com/danielpatrickdp/burnout-guardian/internal/forecast"
	"github.com/danielpatrickdp/burnout-guardian/internal/profile"
	"github.com/danielpatrickdp/burnout-guardian/internal/snapshot"
)

// #region types
// ReplayConfig bundles every stage's config for a replay run.
type ReplayConfig struct {
	Baseline baseline.Config
	Detect   detect.Config
	Forecast forecast.Config
	Engine   decide.Config
	Tuner    profile.Config
}

// DefaultReplayConfig returns the shipped defaults for all stages.
func DefaultReplayConfig() ReplayConfig {
	return ReplayConfig{
		Baseline: baseline.DefaultConfig(),
		Detect:   detect.DefaultConfig(),
		Forecast: forecast.DefaultConfig(),
		Engine:   decide.DefaultConfig(),
		Tuner:    profile.DefaultConfig(),
	}
}

// DayResult captures the outcome of replaying one snapshot through the
// full chain.
type DayResult struct {
	EmployeeID string
	Day        int

	RiskProbability float64
	RiskLevel       detect.RiskLevel
	StabilityIndex  float64

	TippingDetected bool
	Action          string // action type, or "none"
	Outcomes        []decide.OutcomeLabel
}

// ReplaySummary provides aggregate stats from a replay run.
type ReplaySummary struct {
	TotalDays     int
	Actions       int
	Alerts        int
	Outcomes      int
	FinalProfiles map[string]profile.Profile
}

// #endregion types

// #region replay
// Replay pushes snapshots through detection, forecasting, decisioning, and
// tuning entirely in memory, in the order given. Deterministic for a given
// input sequence: no store, no clock, no dispatch.
func Replay(days []snapshot.Snapshot, config ReplayConfig) ([]DayResult, ReplaySummary) {
	tracker := baseline.NewTracker(config.Baseline)
	detector := detect.NewDetector(config.Detect)
	forecaster := forecast.NewForecaster(config.Forecast)
	engine := decide.NewEngine(config.Engine)

	histories := make(map[string][]detect.Assessment)
	profiles := make(map[string]*profile.Profile)
	pending := make(map[string][]*decide.Intervention)

	results := make([]DayResult, 0, len(days))

	for _, snap := range days {
		emp, day := snap.EmployeeID, snap.Day

		// 1. Assess against baselines from prior days only.
		assessment := detector.Assess(emp, day, snap, tracker.Baselines(emp), histories[emp], nil)
		tracker.Update(emp, day, snap)
		histories[emp] = append(histories[emp], assessment)

		// 2. Forecast; thin history is a skip.
		var fc *forecast.Forecast
		if f, err := forecaster.Forecast(emp, histories[emp], nil); err == nil {
			fc = &f
		}

		prof, ok := profiles[emp]
		if !ok {
			p := profile.NewProfile(emp)
			prof = &p
			profiles[emp] = prof
		}
		prof.RollDay(day)

		// 3. Close the loop on interventions old enough to judge.
		var labels []decide.OutcomeLabel
		for _, iv := range pending[emp] {
			if iv.OutcomeLabel != decide.OutcomePending || iv.Day > day-config.Tuner.OutcomeLagCycles {
				continue
			}
			post := assessment.StabilityIndex
			if after := assessmentAt(histories[emp], iv.Day+config.Tuner.OutcomeLagCycles); after != nil {
				post = after.StabilityIndex
			}
			outcome := profile.EvaluateOutcome(iv.PreStability, post, config.Tuner.NoiseFloor)
			iv.OutcomeLabel = outcome.Label
			iv.PostStability = post
			iv.EffectivenessScore = outcome.Effectiveness
			profile.ApplyOutcome(prof, outcome, config.Tuner)
			labels = append(labels, outcome.Label)
		}

		// 4. Decide.
		decision := engine.Decide(decide.Input{
			Assessment: assessment,
			Forecast:   fc,
			Thresholds: prof.Thresholds,
			State:      prof.State,
			UsedToday:  prof.UsedToday,
		})
		prof.State = decision.NextState

		action := "none"
		if decision.Action != nil {
			action = string(decision.Action.ActionType)
			prof.UsedToday++
			prof.InterventionTotal++
			pending[emp] = append(pending[emp], decision.Action)
		}

		result := DayResult{
			EmployeeID:      emp,
			Day:             day,
			RiskProbability: assessment.RiskProbability,
			RiskLevel:       assessment.RiskLevel,
			StabilityIndex:  assessment.StabilityIndex,
			Action:          action,
			Outcomes:        labels,
		}
		if fc != nil {
			result.TippingDetected = fc.TippingDetected
		}
		results = append(results, result)
	}

	summary := ReplaySummary{
		TotalDays:     len(results),
		FinalProfiles: make(map[string]profile.Profile, len(profiles)),
	}
	for emp, prof := range profiles {
		summary.FinalProfiles[emp] = *prof
	}
	for _, r := range results {
		if r.Action != "none" {
			summary.Actions++
		}
		if r.Action == string(decide.ActionManagerAlert) {
			summary.Alerts++
		}
		summary.Outcomes += len(r.Outcomes)
	}
	return results, summary
}

func assessmentAt(history []detect.Assessment, day int) *detect.Assessment {
	for i := range history {
		if history[i].Day == day {
			return &history[i]
		}
	}
	return nil
}

// #endregion replay
