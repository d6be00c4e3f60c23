package core

import (
	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/schema"
)

// Window labels for comparison output.
const (
	baseWindowLabel   = "previous"
	targetWindowLabel = "current"
)

// GetCompareResults evaluates two adjacent trailing windows of the
// lookback length, the current one ending at the anchor day, and
// returns their summaries and deltas.
func GetCompareResults(cfg *contract.Config, provider contract.HistoryProvider) (*schema.ComparisonResult, error) {
	ev, err := prepareEvaluation(cfg, provider)
	if err != nil {
		return nil, err
	}
	return ev.compareWindows(contract.LookbackDays(cfg.Lookback)), nil
}

// compareWindows evaluates the last 2*windowDays days and splits them
// into a base and a target window. Short history shrinks the base
// window first, down to an empty summary.
func (ev *Evaluation) compareWindows(windowDays int) *schema.ComparisonResult {
	analyses := ev.EvaluateRange(2*windowDays, nil)
	split := max(len(analyses)-windowDays, 0)
	lo := len(ev.days) - len(analyses)

	base := ev.summarizeWindow(baseWindowLabel, analyses[:split], lo)
	target := ev.summarizeWindow(targetWindowLabel, analyses[split:], lo+split)

	return &schema.ComparisonResult{
		Base:           base,
		Target:         target,
		DeltaReadiness: target.MeanReadiness - base.MeanReadiness,
		DeltaSleep:     target.MeanSleep - base.MeanSleep,
		DeltaVolume:    target.TotalVolume - base.TotalVolume,
		DeltaFlags:     target.FlagCount - base.FlagCount,
	}
}

// summarizeWindow aggregates one evaluated window. startIdx is the
// position in ev.days of the first analysis in the slice; sleep hours
// come from the daily records, which the analyses do not carry.
func (ev *Evaluation) summarizeWindow(label string, analyses []schema.DayAnalysis, startIdx int) schema.WindowSummary {
	summary := schema.WindowSummary{
		Label:      label,
		ZoneCounts: make(map[schema.Zone]int),
	}
	if len(analyses) == 0 {
		return summary
	}

	summary.Start = analyses[0].Date
	summary.End = analyses[len(analyses)-1].Date
	summary.Days = len(analyses)

	var readSum float64
	var sleepSum float64
	var sleepN int
	var acwrSum float64
	var acwrN int
	seenFlags := make(map[string]struct{})

	for i, day := range analyses {
		readSum += day.Score.Score
		summary.TotalVolume += day.Metrics.DailyVolume
		summary.ZoneCounts[day.Decision.Zone]++

		if hours := ev.days[startIdx+i].SleepHours; hours != nil {
			sleepSum += *hours
			sleepN++
		}
		if day.Metrics.ACWR != nil {
			acwrSum += *day.Metrics.ACWR
			acwrN++
		}
		for _, f := range day.Overload.Flags {
			seenFlags[f.Exercise+"|"+string(f.Kind)] = struct{}{}
		}
	}

	summary.MeanReadiness = readSum / float64(len(analyses))
	if sleepN > 0 {
		summary.MeanSleep = sleepSum / float64(sleepN)
	}
	if acwrN > 0 {
		summary.MeanACWR = schema.Ptr(acwrSum / float64(acwrN))
	}
	summary.FlagCount = len(seenFlags)
	return summary
}
