package replay

import (
	"math/rand"

	"github.com/danielpatrickdp/burnout-guardian/internal/snapshot"
)

// #region generators
// Synthetic telemetry generators for demos, fixtures, and load seeding.
// Deterministic for a given seed.

// CalmDays produces n days of ordinary telemetry starting at startDay.
func CalmDays(employee string, startDay, n int, seed int64) []snapshot.Snapshot {
	rng := rand.New(rand.NewSource(seed))
	out := make([]snapshot.Snapshot, n)
	for i := range out {
		out[i] = calmSnapshot(employee, startDay+i, rng)
	}
	return out
}

// StepScenario is the canonical regression sequence: calm days followed by
// an abrupt regime break. The break day should assess critical and alert.
func StepScenario(employee string, calmDays, crisisDays int, seed int64) []snapshot.Snapshot {
	rng := rand.New(rand.NewSource(seed))
	out := make([]snapshot.Snapshot, 0, calmDays+crisisDays)
	for d := 0; d < calmDays; d++ {
		out = append(out, calmSnapshot(employee, d, rng))
	}
	for d := 0; d < crisisDays; d++ {
		out = append(out, crisisSnapshot(employee, calmDays+d, rng))
	}
	return out
}

// RampScenario deteriorates gradually over n days: workload and recovery
// drift from calm to crisis values, the pattern the forecaster should call
// before the thresholds do.
func RampScenario(employee string, n int, seed int64) []snapshot.Snapshot {
	rng := rand.New(rand.NewSource(seed))
	out := make([]snapshot.Snapshot, n)
	for i := range out {
		t := float64(i) / float64(n-1)
		out[i] = snapshot.Snapshot{
			EmployeeID: employee,
			Day:        i,
			Signals: map[string]float64{
				snapshot.SigTotalWorkHours:       lerp(8, 14, t) + rng.Float64()*0.4 - 0.2,
				snapshot.SigAfterHoursWork:       lerp(0.5, 4, t) + rng.Float64()*0.2,
				snapshot.SigMeetingHours:         lerp(3, 7, t),
				snapshot.SigSleepHours:           lerp(7.5, 4.5, t) + rng.Float64()*0.3 - 0.15,
				snapshot.SigRecoveryGapMinutes:   lerp(90, 15, t),
				snapshot.SigErrorRate:            lerp(0.02, 0.15, t),
				snapshot.SigRecoveryDeficitScore: lerp(0.1, 0.9, t),
				snapshot.SigInstabilityIndex:     lerp(0.15, 0.95, t),
			},
		}
	}
	return out
}

func calmSnapshot(employee string, day int, rng *rand.Rand) snapshot.Snapshot {
	jitter := func(base, spread float64) float64 {
		return base + (rng.Float64()*2-1)*spread
	}
	return snapshot.Snapshot{
		EmployeeID: employee,
		Day:        day,
		Signals: map[string]float64{
			snapshot.SigTotalWorkHours:       jitter(8, 0.4),
			snapshot.SigMeetingHours:         jitter(3, 0.6),
			snapshot.SigAfterHoursWork:       jitter(0.5, 0.3),
			snapshot.SigTaskSwitchingRate:    jitter(0.3, 0.05),
			snapshot.SigSleepHours:           jitter(7.5, 0.4),
			snapshot.SigRecoveryGapMinutes:   jitter(90, 15),
			snapshot.SigErrorRate:            jitter(0.03, 0.01),
			snapshot.SigOutputScore:          jitter(0.8, 0.05),
			snapshot.SigRecoveryDeficitScore: jitter(0.15, 0.05),
			snapshot.SigInstabilityIndex:     jitter(0.2, 0.05),
		},
	}
}

func crisisSnapshot(employee string, day int, rng *rand.Rand) snapshot.Snapshot {
	jitter := func(base, spread float64) float64 {
		return base + (rng.Float64()*2-1)*spread
	}
	return snapshot.Snapshot{
		EmployeeID: employee,
		Day:        day,
		Signals: map[string]float64{
			snapshot.SigTotalWorkHours:       jitter(14, 0.5),
			snapshot.SigMeetingHours:         jitter(7, 0.5),
			snapshot.SigAfterHoursWork:       jitter(4, 0.5),
			snapshot.SigTaskSwitchingRate:    jitter(0.8, 0.05),
			snapshot.SigSleepHours:           jitter(4.2, 0.3),
			snapshot.SigRecoveryGapMinutes:   jitter(15, 5),
			snapshot.SigErrorRate:            jitter(0.15, 0.03),
			snapshot.SigOutputScore:          jitter(0.45, 0.05),
			snapshot.SigRecoveryDeficitScore: jitter(0.9, 0.04),
			snapshot.SigInstabilityIndex:     jitter(0.93, 0.03),
		},
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// #endregion generators
