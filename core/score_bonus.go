package core

import (
	"math"

	"github.com/redlinelab/redline/schema"
	"gonum.org/v1/gonum/stat"
)

const (
	bonusWindowDays    = 7
	consistencyMinDays = 3
	momentumMinDays    = 5
)

// bonuses sums the consistency and momentum credits earned from recent
// history. Both are small and capped; zero history earns zero.
func (s *ReadinessScorer) bonuses(history []schema.DailyRecord) (float64, []string) {
	consistency, consistencyNotes := s.consistencyBonus(history)
	momentum, momentumNotes := s.momentumBonus(history)
	return consistency + momentum, append(consistencyNotes, momentumNotes...)
}

// consistencyBonus rewards a stable recent week: steady sleep hours, no
// high-fatigue spikes, and readiness without sawtooth swings.
func (s *ReadinessScorer) consistencyBonus(history []schema.DailyRecord) (float64, []string) {
	recent := tail(history, bonusWindowDays)
	if len(recent) < consistencyMinDays {
		return 0, nil
	}

	var bonus float64
	var notes []string

	if sleeps := collect(recent, sleepHoursOf); len(sleeps) >= 2 {
		switch std := stat.StdDev(sleeps, nil); {
		case std < 0.5:
			bonus += 0.02
			notes = append(notes, "sleep very steady")
		case std < 1.0:
			bonus += 0.01
			notes = append(notes, "sleep steady")
		}
	}

	highFatigue := 0
	for _, r := range recent {
		if r.Fatigue != nil && *r.Fatigue > 7 {
			highFatigue++
		}
	}
	switch {
	case highFatigue == 0:
		bonus += 0.02
		notes = append(notes, "fatigue controlled")
	case highFatigue <= 1:
		bonus += 0.01
	}

	if scores := collect(recent, readinessOf); len(scores) >= 2 {
		switch std := stat.StdDev(scores, nil); {
		case std < 8:
			bonus += 0.02
			notes = append(notes, "readiness consistent")
		case std < 15:
			bonus += 0.01
		}
	}

	return math.Min(bonus, s.cfg.Bonus.ConsistencyCap), notes
}

// momentumBonus rewards an improving recent trend: the back half of the
// week outperforming the front half on performance index or readiness.
func (s *ReadinessScorer) momentumBonus(history []schema.DailyRecord) (float64, []string) {
	if len(history) < momentumMinDays {
		return 0, nil
	}
	recent := tail(history, bonusWindowDays)
	if len(recent) < momentumMinDays {
		return 0, nil
	}

	var bonus float64
	var notes []string

	if pi := collect(recent, performanceIndexOf); len(pi) >= 3 {
		first, second := halves(pi)
		if stat.Mean(second, nil) > stat.Mean(first, nil)*1.01 {
			bonus += 0.02
			notes = append(notes, "performance trending up")
		}
	}

	if scores := collect(recent, readinessOf); len(scores) >= 3 {
		first, second := halves(scores)
		if stat.Mean(second, nil) > stat.Mean(first, nil)+3 {
			bonus += 0.01
			notes = append(notes, "readiness trending up")
		}
	}

	return math.Min(bonus, s.cfg.Bonus.MomentumCap), notes
}

func tail(recs []schema.DailyRecord, n int) []schema.DailyRecord {
	if len(recs) <= n {
		return recs
	}
	return recs[len(recs)-n:]
}

func halves(v []float64) (first, second []float64) {
	mid := len(v) / 2
	return v[:mid], v[mid:]
}

// collect gathers the present values of one field across records.
func collect(recs []schema.DailyRecord, get func(schema.DailyRecord) (float64, bool)) []float64 {
	out := make([]float64, 0, len(recs))
	for _, r := range recs {
		if v, ok := get(r); ok {
			out = append(out, v)
		}
	}
	return out
}

func sleepHoursOf(r schema.DailyRecord) (float64, bool) {
	if r.SleepHours == nil {
		return 0, false
	}
	return *r.SleepHours, true
}

func readinessOf(r schema.DailyRecord) (float64, bool) {
	if r.Readiness == nil {
		return 0, false
	}
	return *r.Readiness, true
}

func performanceIndexOf(r schema.DailyRecord) (float64, bool) {
	if r.PerformanceIndex == nil {
		return 0, false
	}
	return *r.PerformanceIndex, true
}
