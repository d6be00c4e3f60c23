package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/schema"
)

// Evaluation is a prepared, immutable snapshot of one athlete's history:
// records sorted and truncated at the anchor day, load metrics computed,
// every day scored in chronological order, and the personalization
// profile derived from that scored history.
//
// Preparation runs in two phases. The first pass scores each day with
// neutral adjustment factors against only the records before it, so the
// attached readiness series reflects what was knowable at the time. The
// profile is then built from that series, and per-day evaluation uses
// the profile-adjusted scorer from there on.
type Evaluation struct {
	cfg    *contract.Config
	engine schema.EngineConfig

	days     []schema.DailyRecord // Ascending, ends at the anchor day
	sessions []schema.SessionRecord
	metrics  []schema.LoadMetrics // Aligned 1:1 with days
	baseline schema.Baseline
	profile  schema.AthleteProfile

	scorer   *ReadinessScorer
	detector *OverloadDetector
	decider  *DecisionEngine
}

// prepareEvaluation loads history through the provider and builds the
// evaluation snapshot.
func prepareEvaluation(cfg *contract.Config, provider contract.HistoryProvider) (*Evaluation, error) {
	daily, err := provider.LoadDaily(cfg.DailyFile)
	if err != nil {
		return nil, fmt.Errorf("load daily history: %w", err)
	}
	sessions, err := provider.LoadSessions(cfg.SessionsFile)
	if err != nil {
		return nil, fmt.Errorf("load session history: %w", err)
	}
	return newEvaluation(cfg, daily, sessions)
}

// newEvaluation builds the evaluation snapshot from in-memory records.
// The anchor day is cfg.Date, or the latest recorded day when unset;
// records after the anchor are dropped so a historical query sees only
// what existed then.
func newEvaluation(cfg *contract.Config, daily []schema.DailyRecord, sessions []schema.SessionRecord) (*Evaluation, error) {
	if len(daily) == 0 {
		return nil, errors.New("no daily records found")
	}

	days := make([]schema.DailyRecord, len(daily))
	copy(days, daily)
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	anchor, err := anchorIndex(days, cfg.Date)
	if err != nil {
		return nil, err
	}
	days = days[:anchor+1]
	sessions = sessionsThrough(filterSessions(sessions, cfg.Excludes), days[anchor].Date)

	engine := cfg.EngineConfig()
	metrics := ComputeLoadMetrics(days, sessions)
	days = AttachLoadMetrics(days, metrics)

	// First pass: score every day in order with neutral adjustments,
	// attaching readiness so later days and the profile can see it.
	neutral := NewReadinessScorer(engine.Scorer, schema.DefaultAdjustmentFactors())
	for i := range days {
		trailing := ComputeBaseline(days[:i], metrics[:i])
		res := neutral.Score(days[i], days[:i], trailing)
		days[i].Readiness = schema.Ptr(res.Score)
		days[i].Confidence = schema.Ptr(res.ConfidenceScore)
	}

	baseline := ComputeBaseline(days, metrics)
	profile := NewPersonalizationAnalyzer(engine.Profile).Analyze(days, baseline)

	return &Evaluation{
		cfg:      cfg,
		engine:   engine,
		days:     days,
		sessions: sessions,
		metrics:  metrics,
		baseline: baseline,
		profile:  profile,
		scorer:   NewReadinessScorer(engine.Scorer, profile.Adjustments),
		detector: NewOverloadDetector(engine.Overload),
		decider:  NewDecisionEngine(engine.Decision),
	}, nil
}

// EvaluateRange runs the full pipeline over the trailing range ending at
// the anchor day and returns one analysis per day, ascending by date.
// The range is clamped to available history. Days are independent, so
// they are evaluated by a worker pool writing to unique indexes.
//
// When mgr carries a result store, the run and its day rows are
// recorded; tracking failures warn and never stop the evaluation.
func (ev *Evaluation) EvaluateRange(days int, mgr contract.StoreManager) []schema.DayAnalysis {
	lo := ev.rangeStart(days)
	n := len(ev.days) - lo

	var store contract.ResultStore
	if mgr != nil {
		store = mgr.GetResultStore()
	}

	var runID int64
	if store != nil {
		startTime := time.Now()
		configParams := map[string]any{
			"variant":  string(ev.cfg.Variant),
			"days":     n,
			"workers":  ev.cfg.Workers,
			"data_dir": ev.cfg.DataDir,
		}
		var err error
		runID, err = store.BeginRun(startTime, configParams)
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		}
	}

	results := make([]schema.DayAnalysis, n)
	idxCh := make(chan int, n)
	var wg sync.WaitGroup

	for range max(ev.cfg.Workers, 1) {
		wg.Go(func() {
			for i := range idxCh {
				// Each goroutine writes to a unique index, which is safe.
				day := ev.EvaluateDay(lo + i)
				results[i] = day
				if store != nil && runID > 0 {
					if err := store.RecordDayResult(runID, day); err != nil {
						contract.LogWarn(fmt.Sprintf("Run tracking failed for %s", day.Date.Format(contract.DateFormat)), err)
					}
				}
			}
		})
	}

	for i := range n {
		idxCh <- i
	}
	close(idxCh)
	wg.Wait()

	if store != nil && runID > 0 {
		if err := store.EndRun(runID, time.Now(), len(results)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	return results
}

// EvaluateDay runs the full pipeline for the day at idx.
func (ev *Evaluation) EvaluateDay(idx int) schema.DayAnalysis {
	builder := NewDayAnalysisBuilder(ev, idx)

	builder.
		ComputeMetrics().
		ComputeScore().
		AssessOverload().
		DecideAction().
		ClassifyFatigueType().
		AssessRisk().
		ComputePercentile()

	return builder.Build()
}

// ScoreRange scores the trailing range with the profile-adjusted scorer,
// without running the downstream pipeline.
func (ev *Evaluation) ScoreRange(days int) []schema.ScoreResult {
	lo := ev.rangeStart(days)
	out := make([]schema.ScoreResult, 0, len(ev.days)-lo)
	for i := lo; i < len(ev.days); i++ {
		trailing := ComputeBaseline(ev.days[:i], ev.metrics[:i])
		out = append(out, ev.scorer.Score(ev.days[i], ev.days[:i], trailing))
	}
	return out
}

// rangeStart returns the index of the first day in a trailing range of
// the given length, clamped to available history.
func (ev *Evaluation) rangeStart(days int) int {
	return max(len(ev.days)-days, 0)
}

// anchorIndex resolves the index of the requested day. A zero date means
// the latest recorded day; any other date must match a recorded day.
func anchorIndex(days []schema.DailyRecord, date time.Time) (int, error) {
	if date.IsZero() {
		return len(days) - 1, nil
	}
	want := dayKey(date)
	for i := len(days) - 1; i >= 0; i-- {
		if dayKey(days[i].Date) == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no daily record for %s", date.Format(contract.DateFormat))
}

// sessionsThrough keeps the sessions logged on or before date.
func sessionsThrough(sessions []schema.SessionRecord, date time.Time) []schema.SessionRecord {
	end := dayKey(date)
	out := make([]schema.SessionRecord, 0, len(sessions))
	for _, s := range sessions {
		if dayKey(s.Date) <= end {
			out = append(out, s)
		}
	}
	return out
}

// filterSessions drops sessions for excluded exercises.
func filterSessions(sessions []schema.SessionRecord, excludes []string) []schema.SessionRecord {
	if len(excludes) == 0 {
		return sessions
	}
	out := make([]schema.SessionRecord, 0, len(sessions))
	for _, s := range sessions {
		if !contract.ShouldIgnoreExercise(s.Exercise, excludes) {
			out = append(out, s)
		}
	}
	return out
}
