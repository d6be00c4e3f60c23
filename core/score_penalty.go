package core

import (
	"math"

	"github.com/redlinelab/redline/core/curve"
	"github.com/redlinelab/redline/schema"
)

// penalties sums the deductions for pain, illness, alcohol, fragmented
// sleep and stimulant-masked fatigue. Every penalty is scaled by the
// confidence modifier, so with sparse history the engine stays
// conservative but not punitive.
func (s *ReadinessScorer) penalties(rec schema.DailyRecord, confidenceScore float64) (float64, []string) {
	mod := 0.5 + 0.5*confidenceScore

	sleepHours := schema.FloatOr(rec.SleepHours, 7.0)
	quality := schema.IntOr(rec.SleepQuality, 3)

	var total float64
	var notes []string

	if p := s.painPenalty(rec); p > 0 {
		total += p * mod
		notes = append(notes, painWord(p))
	}

	if level := schema.IntOr(rec.SickLevel, 0); level > 0 {
		total += s.sickPenalty(level) * mod
		notes = append(notes, sickWord(level))
	}

	if rec.AlcoholFlag {
		total += s.alcoholPenalty(sleepHours, quality) * mod
		notes = append(notes, "alcohol last night")
	}

	if rec.SleepDisrupted {
		total += s.disruptionPenalty(sleepHours, quality) * mod
		notes = append(notes, "fragmented sleep")
	}

	if schema.IntOr(rec.CaffeineLevel, 0) >= 3 && schema.IntOr(rec.Fatigue, 3) >= 7 {
		total += s.cfg.Penalty.CaffeineAmount * mod
		notes = append(notes, "high caffeine masking fatigue")
	}

	return total, notes
}

// painPenalty grows from its base with aggravating context: heavy
// soreness, stiffness, or pain in a critical zone.
func (s *ReadinessScorer) painPenalty(rec schema.DailyRecord) float64 {
	if !rec.PainFlag {
		return 0
	}
	multiplier := 1.0
	if schema.IntOr(rec.Soreness, 2) > 6 {
		multiplier += 0.3
	}
	if schema.IntOr(rec.Stiffness, 2) > 5 {
		multiplier += 0.2
	}
	if schema.IsCriticalPainZone(rec.PainZone) {
		multiplier += 0.25
	}
	return math.Min(s.cfg.Penalty.PainBase*multiplier, s.cfg.Penalty.PainCap)
}

// sickPenalty maps illness severity through a sigmoid rather than
// discrete steps.
func (s *ReadinessScorer) sickPenalty(level int) float64 {
	v := float64(clampOrdinal(level, 0, 5)) / 5
	return curve.Sigmoid(v, 0.35, 6.0) * s.cfg.Penalty.SickScale
}

// alcoholPenalty is proportional to the collateral damage on sleep.
func (s *ReadinessScorer) alcoholPenalty(sleepHours float64, quality int) float64 {
	p := 0.06
	if sleepHours < 6.5 || quality <= 2 {
		p += 0.04
	}
	if sleepHours < 5.5 {
		p += 0.03
	}
	return math.Min(p, s.cfg.Penalty.AlcoholCap)
}

// disruptionPenalty covers fragmented sleep, worse when the night was
// also short or poor.
func (s *ReadinessScorer) disruptionPenalty(sleepHours float64, quality int) float64 {
	p := 0.03
	if sleepHours < 6.0 {
		p += 0.02
	}
	if quality <= 2 {
		p += 0.02
	}
	return math.Min(p, s.cfg.Penalty.DisruptionCap)
}

func painWord(p float64) string {
	switch {
	case p < 0.10:
		return "mild pain"
	case p < 0.15:
		return "moderate pain"
	default:
		return "significant pain"
	}
}

func sickWord(level int) string {
	switch clampOrdinal(level, 1, 5) {
	case 1:
		return "slight malaise"
	case 2:
		return "somewhat sick"
	case 3:
		return "sick"
	case 4:
		return "quite sick"
	default:
		return "very sick"
	}
}
