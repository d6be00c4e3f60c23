package core

import "github.com/redlinelab/redline/schema"

// confidence captures how much the scorer trusts its own output for a
// day: a blend of history depth and same-day field completeness.
type confidence struct {
	score        float64
	depth        float64
	completeness float64
	level        schema.ConfidenceLevel
}

// computeConfidence weighs history depth over completeness 60/40. A
// fully filled-out first day still scores low confidence; a sparse day
// deep into a long history scores medium.
func computeConfidence(rec schema.DailyRecord, historyDays int) confidence {
	depth := historyDepth(historyDays)
	completeness := fieldCompleteness(rec)
	score := 0.6*depth + 0.4*completeness
	return confidence{
		score:        score,
		depth:        depth,
		completeness: completeness,
		level:        confidenceLevel(score),
	}
}

// historyDepth steps through bands at one, two and four weeks, with a
// shallow ramp inside each band, saturating at four weeks.
func historyDepth(n int) float64 {
	switch {
	case n >= 28:
		return 0.95
	case n >= 14:
		return 0.70 + float64(n-14)*0.025/14
	case n >= 7:
		return 0.45 + float64(n-7)*0.025/7
	case n >= 1:
		return 0.20 + float64(n)*0.035
	default:
		return 0.15
	}
}

// fieldCompleteness counts the five inputs that move the score most.
func fieldCompleteness(rec schema.DailyRecord) float64 {
	present := 0
	if rec.SleepHours != nil {
		present++
	}
	if rec.SleepQuality != nil {
		present++
	}
	if rec.Fatigue != nil {
		present++
	}
	if rec.Energy != nil {
		present++
	}
	if rec.Perceived != nil {
		present++
	}
	return float64(present) / 5
}

func confidenceLevel(score float64) schema.ConfidenceLevel {
	switch {
	case score >= 0.75:
		return schema.HighConfidence
	case score >= 0.60:
		return schema.MediumHighConfidence
	case score >= 0.45:
		return schema.MediumConfidence
	default:
		return schema.LowConfidence
	}
}
