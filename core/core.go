// Package core has the engine logic: readiness scoring, personalization,
// overload detection, decisions, and the orchestration that assembles
// them into per-day analyses. Everything here is pure computation over
// an immutable history snapshot; loading and rendering live with the
// callers, behind the contract interfaces.
package core

import (
	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/schema"
)

// GetDecideResults runs the full pipeline over the trailing range and
// returns one analysis per day, ascending by date. When mgr carries a
// result store the run and its days are recorded.
func GetDecideResults(cfg *contract.Config, provider contract.HistoryProvider, mgr contract.StoreManager) ([]schema.DayAnalysis, error) {
	ev, err := prepareEvaluation(cfg, provider)
	if err != nil {
		return nil, err
	}
	return ev.EvaluateRange(cfg.Days, mgr), nil
}

// GetScoreResults scores the trailing range without running the
// downstream decision pipeline.
func GetScoreResults(cfg *contract.Config, provider contract.HistoryProvider) ([]schema.ScoreResult, error) {
	ev, err := prepareEvaluation(cfg, provider)
	if err != nil {
		return nil, err
	}
	return ev.ScoreRange(cfg.Days), nil
}

// GetFlagsResults assesses overload for the anchor day, with the
// flattened flag list ranked by severity and trimmed to the result
// limit. Per-exercise assessments are never trimmed.
func GetFlagsResults(cfg *contract.Config, provider contract.HistoryProvider) (*schema.OverloadAssessment, error) {
	ev, err := prepareEvaluation(cfg, provider)
	if err != nil {
		return nil, err
	}

	builder := NewDayAnalysisBuilder(ev, len(ev.days)-1)
	day := builder.ComputeMetrics().AssessOverload().Build()

	assessment := day.Overload
	ranked := RankFlags(assessment.Flags)
	if cfg.ResultLimit > 0 && len(ranked) > cfg.ResultLimit {
		ranked = ranked[:cfg.ResultLimit]
	}
	assessment.Flags = ranked
	return &assessment, nil
}

// GetProfileResults builds the personalization profile from the full
// history up to the anchor day.
func GetProfileResults(cfg *contract.Config, provider contract.HistoryProvider) (*schema.AthleteProfile, error) {
	ev, err := prepareEvaluation(cfg, provider)
	if err != nil {
		return nil, err
	}
	profile := ev.profile
	return &profile, nil
}

// GetMetricsResults returns the objective load series for the trailing
// range plus per-exercise strength trends, trimmed to the result limit.
func GetMetricsResults(cfg *contract.Config, provider contract.HistoryProvider) (*schema.MetricsOutput, error) {
	ev, err := prepareEvaluation(cfg, provider)
	if err != nil {
		return nil, err
	}

	lo := ev.rangeStart(cfg.Days)
	days := make([]schema.LoadMetrics, len(ev.metrics)-lo)
	copy(days, ev.metrics[lo:])

	exercises := ComputeExerciseTrends(ev.sessions)
	if cfg.ResultLimit > 0 && len(exercises) > cfg.ResultLimit {
		exercises = exercises[:cfg.ResultLimit]
	}

	return &schema.MetricsOutput{Days: days, Exercises: exercises}, nil
}

// GetTrendResults evaluates the trailing range and reduces each day to
// a timeline point. A positive point count keeps only the most recent
// points.
func GetTrendResults(cfg *contract.Config, provider contract.HistoryProvider) (*schema.TrendResult, error) {
	ev, err := prepareEvaluation(cfg, provider)
	if err != nil {
		return nil, err
	}

	analyses := ev.EvaluateRange(cfg.Days, nil)
	points := make([]schema.TrendPoint, 0, len(analyses))
	for _, day := range analyses {
		points = append(points, schema.TrendPoint{
			Date:       day.Date,
			Readiness:  day.Score.Score,
			Final:      day.Decision.Final,
			Zone:       day.Decision.Zone,
			Confidence: day.Score.Confidence,
			ACWR:       day.Metrics.ACWR,
			Volume:     day.Metrics.DailyVolume,
		})
	}
	if cfg.TrendPoints > 0 && len(points) > cfg.TrendPoints {
		points = points[len(points)-cfg.TrendPoints:]
	}
	return &schema.TrendResult{Points: points}, nil
}
