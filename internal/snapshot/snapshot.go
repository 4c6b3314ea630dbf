package snapshot

// #region snapshot

// Snapshot is one day's behavioral feature vector for one employee,
// produced upstream by feature engineering. Immutable once recorded:
// the pipeline reads it, never writes it.
type Snapshot struct {
	EmployeeID string             `json:"employee_id"`
	Day        int                `json:"day"`
	Signals    map[string]float64 `json:"signals"`
}

// Get returns the named signal and whether it is present.
// Absent signals are skipped by consumers, never defaulted.
func (s Snapshot) Get(key string) (float64, bool) {
	v, ok := s.Signals[key]
	return v, ok
}

// #endregion snapshot

// #region signal-keys

// Canonical signal keys, grouped the way the feature collaborator emits them.
const (
	// Workload
	SigTotalWorkHours       = "total_work_hours"
	SigMeetingHours         = "meeting_hours"
	SigMeetingCount         = "meeting_count"
	SigAfterHoursWork       = "after_hours_work"
	SigTaskAssignedCount    = "task_assigned_count"
	SigTaskCompletedCount   = "task_completed_count"
	SigDeadlineCompression  = "deadline_compression_ratio"
	SigTaskSwitchingRate    = "task_switching_rate"
	SigEmailVolume          = "email_volume"
	SigChatMessageCount     = "chat_message_count"
	SigResponseLatencyAvg   = "response_latency_avg"

	// Recovery
	SigLongestFocusBlock    = "longest_focus_block_minutes"
	SigRecoveryGapMinutes   = "recovery_gap_minutes"
	SigWeekendWorkRatio     = "weekend_work_ratio"
	SigSleepHours           = "sleep_hours"
	SigSleepConsistency     = "sleep_consistency_score"
	SigHRVariabilityIndex   = "hr_variability_index"

	// Performance
	SigErrorRate            = "error_rate"
	SigRevisionCount        = "revision_count"
	SigDecisionReversals    = "decision_reversal_count"
	SigOutputScore          = "output_score"
	SigProductivityVolIndex = "productivity_volatility_index"

	// Derived
	SigMeetingDensityRatio  = "meeting_density_ratio"
	SigLoadAccumulationRate = "load_accumulation_rate"
	SigRecoveryDeficitScore = "recovery_deficit_score"
	SigInstabilityIndex     = "instability_index"
	SigVolatilityAccel      = "volatility_acceleration"
)

// Keys lists every canonical signal in a stable order. Snapshots may carry
// a subset; extra keys are tolerated and scored with weight DefaultWeight.
func Keys() []string {
	return []string{
		SigTotalWorkHours, SigMeetingHours, SigMeetingCount, SigAfterHoursWork,
		SigTaskAssignedCount, SigTaskCompletedCount, SigDeadlineCompression,
		SigTaskSwitchingRate, SigEmailVolume, SigChatMessageCount,
		SigResponseLatencyAvg,
		SigLongestFocusBlock, SigRecoveryGapMinutes, SigWeekendWorkRatio,
		SigSleepHours, SigSleepConsistency, SigHRVariabilityIndex,
		SigErrorRate, SigRevisionCount, SigDecisionReversals, SigOutputScore,
		SigProductivityVolIndex,
		SigMeetingDensityRatio, SigLoadAccumulationRate,
		SigRecoveryDeficitScore, SigInstabilityIndex, SigVolatilityAccel,
	}
}

// #endregion signal-keys

// #region weights

// DefaultWeight applies to any signal without an explicit entry in Weights.
const DefaultWeight = 1.0

// Weights ranks signals for contributor attribution. Heavier signals are
// the ones operators watch first when triaging a risk spike.
var Weights = map[string]float64{
	SigInstabilityIndex:     2.0,
	SigRecoveryDeficitScore: 1.8,
	SigProductivityVolIndex: 1.5,
	SigSleepHours:           1.4,
	SigMeetingDensityRatio:  1.3,
	SigTaskSwitchingRate:    1.2,
	SigErrorRate:            1.2,
	SigAfterHoursWork:       1.1,
}

// Weight returns the contributor weight for a signal key.
func Weight(key string) float64 {
	if w, ok := Weights[key]; ok {
		return w
	}
	return DefaultWeight
}

// #endregion weights

// #region vector

// Vector flattens a snapshot into the canonical key order for model input.
// Missing signals become zero; the detector separately skips cold baselines,
// so zeros here only feed the population-level anomaly model.
func (s Snapshot) Vector() []float64 {
	keys := Keys()
	vec := make([]float64, len(keys))
	for i, k := range keys {
		vec[i] = s.Signals[k]
	}
	return vec
}

// #endregion vector
