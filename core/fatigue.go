package core

import "github.com/redlinelab/redline/schema"

// Fatigue classification thresholds. Central markers are systemic:
// sleep debt, poor sleep quality, stress, general fatigue. Peripheral
// markers are local: soreness and pain.
const (
	fatigueSleepDebt     = 0.5
	fatigueSleepFallback = 7.0
	fatigueLowQuality    = 2
	fatigueHighStress    = 7
	fatigueHighFatigue   = 7
	fatigueHighSoreness  = 7
	fatigueCentralMin    = 3
	fatiguePeripheralMin = 2
	fatigueLowReadiness  = 50.0
)

// ClassifyFatigue names the dominant fatigue signature of a day by
// weighing central markers against peripheral ones. Missing fields
// contribute nothing, and an unclear picture falls back on the
// readiness score: low scores read as generally fatigued, the rest as
// fresh.
func ClassifyFatigue(rec schema.DailyRecord, baseline schema.Baseline, readiness float64) schema.FatigueType {
	sleepP50 := baseline.Sleep.P50
	if sleepP50 <= 0 {
		sleepP50 = fatigueSleepFallback
	}

	var central int
	if rec.SleepHours != nil {
		switch {
		case *rec.SleepHours < sleepP50-fatigueSleepDebt:
			central += 2
		case *rec.SleepHours < sleepP50:
			central++
		}
	}
	if rec.SleepQuality != nil && *rec.SleepQuality <= fatigueLowQuality {
		central++
	}
	if rec.Stress != nil && *rec.Stress >= fatigueHighStress {
		central++
	}
	if rec.Fatigue != nil && *rec.Fatigue >= fatigueHighFatigue {
		central++
	}

	var peripheral int
	if rec.Soreness != nil && *rec.Soreness >= fatigueHighSoreness {
		peripheral += 2
	}
	if rec.PainFlag && rec.PainZone != "" {
		peripheral += 2
	}

	switch {
	case central >= fatigueCentralMin && peripheral < fatiguePeripheralMin:
		return schema.CentralFatigue
	case peripheral >= fatiguePeripheralMin && central < fatiguePeripheralMin:
		return schema.PeripheralFatigue
	case central >= fatiguePeripheralMin && peripheral >= fatiguePeripheralMin:
		return schema.MixedFatigue
	case readiness < fatigueLowReadiness:
		return schema.GeneralFatigue
	default:
		return schema.FreshState
	}
}
