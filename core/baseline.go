package core

import (
	"gonum.org/v1/gonum/stat"

	"github.com/redlinelab/redline/schema"
)

// minBaselineDays is the minimum history depth before personal
// quantiles are trusted over population fallbacks.
const minBaselineDays = 7

// ComputeBaseline builds the athlete's reference distributions from
// evaluated history and the derived load series. Signals with too few
// observations stay zero-valued, which downstream consumers read as
// "use the population default".
func ComputeBaseline(days []schema.DailyRecord, metrics []schema.LoadMetrics) schema.Baseline {
	b := schema.Baseline{Days: len(days)}

	var sleeps, readiness, volumes []float64
	for _, d := range days {
		if d.SleepHours != nil {
			sleeps = append(sleeps, *d.SleepHours)
		}
		if d.Readiness != nil {
			readiness = append(readiness, *d.Readiness)
		}
	}
	for _, m := range metrics {
		volumes = append(volumes, m.DailyVolume)
	}

	if len(sleeps) >= minBaselineDays {
		b.Sleep = quantilesOf(sleeps)
	}
	if len(readiness) >= minBaselineDays {
		b.Readiness = quantilesOf(readiness)
	}
	if len(volumes) >= minBaselineDays {
		b.DailyVolume = quantilesOf(volumes)
	}
	return b
}

// quantilesOf summarizes one signal's distribution.
func quantilesOf(values []float64) schema.Quantiles {
	return schema.Quantiles{
		P25:  quantileOf(values, 0.25),
		P50:  quantileOf(values, 0.50),
		P75:  quantileOf(values, 0.75),
		Mean: stat.Mean(values, nil),
		Std:  stat.StdDev(values, nil),
	}
}
