package core

import (
	"github.com/redlinelab/redline/schema"
)

// DayAnalysisBuilder assembles the full analysis for one day. Steps are
// ordered: the decision needs the score and the overload assessment,
// the risk estimate needs the capped decision value, and the percentile
// needs the final score.
type DayAnalysisBuilder struct {
	ev  *Evaluation
	idx int

	rec      schema.DailyRecord
	trailing schema.Baseline // Baseline over the days before this one
	result   *schema.DayAnalysis
}

// NewDayAnalysisBuilder is the starting point for building a day analysis.
func NewDayAnalysisBuilder(ev *Evaluation, idx int) *DayAnalysisBuilder {
	return &DayAnalysisBuilder{
		ev:       ev,
		idx:      idx,
		rec:      ev.days[idx],
		trailing: ComputeBaseline(ev.days[:idx], ev.metrics[:idx]),
		result:   &schema.DayAnalysis{Date: ev.days[idx].Date},
	}
}

// ComputeMetrics copies the day's precomputed load metrics onto the result.
func (b *DayAnalysisBuilder) ComputeMetrics() *DayAnalysisBuilder {
	b.result.Metrics = b.ev.metrics[b.idx]
	return b
}

// ComputeScore scores the day with the profile-adjusted scorer against
// the trailing history.
func (b *DayAnalysisBuilder) ComputeScore() *DayAnalysisBuilder {
	b.result.Score = b.ev.scorer.Score(b.rec, b.ev.days[:b.idx], b.trailing)
	return b
}

// AssessOverload runs the overload detectors over the sessions known by
// this day, with the day's recovery signals as cross-check context.
func (b *DayAnalysisBuilder) AssessOverload() *DayAnalysisBuilder {
	recovery := &RecoveryContext{
		SleepHours: b.rec.SleepHours,
		SleepP50:   b.trailing.Sleep.P50,
		ACWR:       b.result.Metrics.ACWR,
	}
	b.result.Overload = b.ev.detector.Assess(sessionsThrough(b.ev.sessions, b.rec.Date), recovery)
	return b
}

// DecideAction maps the scored, capped day onto a training directive.
func (b *DayAnalysisBuilder) DecideAction() *DayAnalysisBuilder {
	b.result.Decision = b.ev.decider.Decide(b.rec, b.result.Score, b.result.Metrics, b.result.Overload)
	return b
}

// ClassifyFatigueType labels the day's fatigue pattern from the
// subjective signals and the raw readiness score.
func (b *DayAnalysisBuilder) ClassifyFatigueType() *DayAnalysisBuilder {
	b.result.FatigueType = ClassifyFatigue(b.rec, b.trailing, b.result.Score.Score)
	return b
}

// AssessRisk estimates injury risk from the day's signals and the
// trailing week's high-strain count.
func (b *DayAnalysisBuilder) AssessRisk() *DayAnalysisBuilder {
	b.result.Risk = InjuryRisk(b.rec, b.result.Metrics, b.result.Decision.Final, b.strainDays())
	return b
}

// ComputePercentile ranks the day's readiness against the trailing 28
// recorded days.
func (b *DayAnalysisBuilder) ComputePercentile() *DayAnalysisBuilder {
	cutoff := b.rec.Date.AddDate(0, 0, -chronicWindowDays)
	var window []float64
	for j := b.idx - 1; j >= 0; j-- {
		if b.ev.days[j].Date.Before(cutoff) {
			break
		}
		if r := b.ev.days[j].Readiness; r != nil {
			window = append(window, *r)
		}
	}
	b.result.Percentile = relativeStanding(b.result.Score.Score, window)
	return b
}

// Build finalizes the construction and returns the completed analysis.
func (b *DayAnalysisBuilder) Build() schema.DayAnalysis {
	return *b.result
}

// strainDays counts the high-strain days in the trailing week, this day
// included.
func (b *DayAnalysisBuilder) strainDays() int {
	cutoff := b.rec.Date.AddDate(0, 0, -(acuteWindowDays - 1))
	count := 0
	for j := b.idx; j >= 0; j-- {
		if b.ev.metrics[j].Date.Before(cutoff) {
			break
		}
		if b.ev.metrics[j].FatigueFlag {
			count++
		}
	}
	return count
}
