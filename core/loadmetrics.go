package core

import (
	"maps"
	"slices"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/redlinelab/redline/core/curve"
	"github.com/redlinelab/redline/schema"
)

// Window sizes for the rolling load aggregates.
const (
	acuteWindowDays   = 7
	chronicWindowDays = 28
	piTrailingDays    = 28
	piMinPriorCount   = 2
	piMeanMinCount    = 3
	percentileMinDays = 7
)

// EpleyE1RM estimates a one-rep max from a top set. Reps in reserve
// extend the effective rep count at half weight, so a heavy triple at
// RIR 2 counts as four effective reps, not five.
func EpleyE1RM(load float64, reps int, rir *float64) float64 {
	if load <= 0 || reps <= 0 {
		return 0
	}
	effectiveReps := float64(reps)
	if rir != nil && *rir > 0 {
		effectiveReps += *rir * 0.5
	}
	return load * (1.0 + effectiveReps/30.0)
}

// EffortScore converts reps in reserve to a 0-10 effort scale.
func EffortScore(rir float64) float64 {
	return curve.Clamp(10.0-rir, 0, 10)
}

// EnsureE1RM returns a copy of sessions with E1RM populated wherever it
// was zero. Input order is preserved and the input slice is never
// mutated.
func EnsureE1RM(sessions []schema.SessionRecord) []schema.SessionRecord {
	out := make([]schema.SessionRecord, len(sessions))
	copy(out, sessions)
	for i := range out {
		if out[i].E1RM == 0 {
			out[i].E1RM = EpleyE1RM(out[i].Load, out[i].Reps, effectiveRIR(out[i]))
		}
	}
	return out
}

// ComputeLoadMetrics derives the objective load series for every day in
// days, using the full session history. Days are processed in
// chronological order regardless of input order; the returned series is
// sorted ascending by date.
func ComputeLoadMetrics(days []schema.DailyRecord, sessions []schema.SessionRecord) []schema.LoadMetrics {
	sessions = EnsureE1RM(sessions)

	dayVolume := make(map[string]float64)
	dayRIRVolume := make(map[string]float64)
	dayRIRWeight := make(map[string]float64)
	byExercise := make(map[string][]schema.SessionRecord)

	for _, s := range sessions {
		key := dayKey(s.Date)
		vol := s.Load * float64(s.Reps)
		dayVolume[key] += vol
		if rir := effectiveRIR(s); rir != nil {
			dayRIRVolume[key] += *rir * vol
			dayRIRWeight[key] += vol
		}
		byExercise[s.Exercise] = append(byExercise[s.Exercise], s)
	}
	for _, list := range byExercise {
		sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	}

	ordered := make([]schema.DailyRecord, len(days))
	copy(ordered, days)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	out := make([]schema.LoadMetrics, 0, len(ordered))
	for _, day := range ordered {
		m := schema.LoadMetrics{Date: day.Date}
		key := dayKey(day.Date)
		m.DailyVolume = dayVolume[key]
		m.AcuteLoad = sumVolumeWindow(dayVolume, day.Date, acuteWindowDays)
		m.ChronicLoad = sumVolumeWindow(dayVolume, day.Date, chronicWindowDays) / 4.0

		if m.ChronicLoad > 0 {
			m.ACWR = schema.Ptr(m.AcuteLoad / m.ChronicLoad)
		}
		if w := dayRIRWeight[key]; w > 0 {
			rir := dayRIRVolume[key] / w
			m.RIRWeighted = schema.Ptr(rir)
			m.Effort = schema.Ptr(EffortScore(rir))
		}
		m.PerformanceIndex = performanceIndexFor(day.Date, byExercise)
		m.PerformanceMean7 = trailingIndexMean(out, m)

		weekVolumes := volumeSeries(dayVolume, day.Date, acuteWindowDays)
		if mono := monotonyOf(weekVolumes); mono != nil {
			m.Monotony = mono
			m.Strain = schema.Ptr(m.AcuteLoad * *mono)
		}
		m.FatigueFlag = highStrainDay(day, m.DailyVolume, dayVolume, ordered)

		out = append(out, m)
	}
	return out
}

// AttachLoadMetrics returns a copy of days with the objective pointer
// fields filled from the computed series. Values already present on a
// record are kept, so caller-supplied signals win over derived ones.
func AttachLoadMetrics(days []schema.DailyRecord, metrics []schema.LoadMetrics) []schema.DailyRecord {
	byDay := make(map[string]schema.LoadMetrics, len(metrics))
	for _, m := range metrics {
		byDay[dayKey(m.Date)] = m
	}

	out := make([]schema.DailyRecord, len(days))
	copy(out, days)
	for i := range out {
		m, ok := byDay[dayKey(out[i].Date)]
		if !ok {
			continue
		}
		if out[i].ACWR == nil {
			out[i].ACWR = m.ACWR
		}
		if out[i].PerformanceIndex == nil {
			out[i].PerformanceIndex = m.PerformanceIndex
		}
		if out[i].RIRWeighted == nil {
			out[i].RIRWeighted = m.RIRWeighted
		}
	}
	return out
}

// ComputeExerciseTrends summarizes the strength trajectory of every
// exercise seen in sessions, sorted by exercise name.
func ComputeExerciseTrends(sessions []schema.SessionRecord) []schema.ExerciseTrend {
	sessions = EnsureE1RM(sessions)

	byExercise := make(map[string][]schema.SessionRecord)
	for _, s := range sessions {
		byExercise[s.Exercise] = append(byExercise[s.Exercise], s)
	}

	names := slices.Sorted(maps.Keys(byExercise))
	trends := make([]schema.ExerciseTrend, 0, len(names))
	for _, name := range names {
		list := byExercise[name]
		sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })

		trend := schema.ExerciseTrend{
			Exercise: name,
			Sessions: len(list),
			LastDate: list[len(list)-1].Date,
		}

		var e1rms []float64
		var rirs []float64
		for _, s := range list {
			e1rms = append(e1rms, s.E1RM)
			trend.BestE1RM = max(trend.BestE1RM, s.E1RM)
			if rir := effectiveRIR(s); rir != nil {
				rirs = append(rirs, *rir)
			}
		}
		trend.LatestE1RM = e1rms[len(e1rms)-1]
		if len(e1rms) > 1 {
			trend.TrailingMeanE1RM = stat.Mean(e1rms[:len(e1rms)-1], nil)
		} else {
			trend.TrailingMeanE1RM = trend.LatestE1RM
		}
		if trend.TrailingMeanE1RM > 0 {
			trend.PerformanceIndex = trend.LatestE1RM / trend.TrailingMeanE1RM
		}
		if len(rirs) > 0 {
			trend.MeanRIR = schema.Ptr(stat.Mean(rirs, nil))
		}

		trends = append(trends, trend)
	}
	return trends
}

// effectiveRIR resolves a session's reps in reserve, deriving it from
// RPE when RIR itself was not logged.
func effectiveRIR(s schema.SessionRecord) *float64 {
	if s.RIR != nil {
		return s.RIR
	}
	if s.RPE != nil {
		return schema.Ptr(curve.Clamp(10.0-*s.RPE, 0, 10))
	}
	return nil
}

// performanceIndexFor compares the e1RM of every exercise trained on
// date against that exercise's trailing mean, returning the average
// ratio. Exercises without enough prior sessions in the trailing window
// are skipped; nil means no exercise qualified.
func performanceIndexFor(date time.Time, byExercise map[string][]schema.SessionRecord) *float64 {
	key := dayKey(date)
	cutoff := date.AddDate(0, 0, -piTrailingDays)

	var ratios []float64
	for _, list := range byExercise {
		var today float64
		var prior []float64
		for _, s := range list {
			switch {
			case dayKey(s.Date) == key:
				today = max(today, s.E1RM)
			case s.Date.Before(date) && !s.Date.Before(cutoff):
				prior = append(prior, s.E1RM)
			}
		}
		if today <= 0 || len(prior) < piMinPriorCount {
			continue
		}
		mean := stat.Mean(prior, nil)
		if mean > 0 {
			ratios = append(ratios, today/mean)
		}
	}
	if len(ratios) == 0 {
		return nil
	}
	return schema.Ptr(stat.Mean(ratios, nil))
}

// trailingIndexMean averages the performance index over the trailing
// week, current day included. Needs a few observations before it reads
// as a trend rather than noise.
func trailingIndexMean(prior []schema.LoadMetrics, current schema.LoadMetrics) *float64 {
	cutoff := current.Date.AddDate(0, 0, -(acuteWindowDays - 1))

	var indexes []float64
	for _, m := range prior {
		if m.Date.Before(cutoff) || m.PerformanceIndex == nil {
			continue
		}
		indexes = append(indexes, *m.PerformanceIndex)
	}
	if current.PerformanceIndex != nil {
		indexes = append(indexes, *current.PerformanceIndex)
	}
	if len(indexes) < piMeanMinCount {
		return nil
	}
	return schema.Ptr(stat.Mean(indexes, nil))
}

// sumVolumeWindow sums daily volume over the trailing window ending at
// and including date.
func sumVolumeWindow(dayVolume map[string]float64, date time.Time, windowDays int) float64 {
	var total float64
	for i := 0; i < windowDays; i++ {
		total += dayVolume[dayKey(date.AddDate(0, 0, -i))]
	}
	return total
}

// volumeSeries collects the trailing window of daily volumes, zeros
// included, oldest first.
func volumeSeries(dayVolume map[string]float64, date time.Time, windowDays int) []float64 {
	series := make([]float64, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		series = append(series, dayVolume[dayKey(date.AddDate(0, 0, -i))])
	}
	return series
}

// monotonyOf is Foster's training monotony: mean over std of daily
// volume. Undefined when nothing was lifted or every day was identical.
func monotonyOf(volumes []float64) *float64 {
	mean := stat.Mean(volumes, nil)
	if mean <= 0 {
		return nil
	}
	std := stat.StdDev(volumes, nil)
	if std <= 0 {
		return nil
	}
	return schema.Ptr(mean / std)
}

// highStrainDay reports whether the day combined top-quartile volume
// with bottom-quartile sleep, relative to the trailing 28 days.
func highStrainDay(day schema.DailyRecord, volume float64, dayVolume map[string]float64, history []schema.DailyRecord) bool {
	if day.SleepHours == nil || volume <= 0 {
		return false
	}

	cutoff := day.Date.AddDate(0, 0, -chronicWindowDays)
	var volumes, sleeps []float64
	for _, h := range history {
		if h.Date.After(day.Date) || h.Date.Before(cutoff) {
			continue
		}
		volumes = append(volumes, dayVolume[dayKey(h.Date)])
		if h.SleepHours != nil {
			sleeps = append(sleeps, *h.SleepHours)
		}
	}
	if len(volumes) < percentileMinDays || len(sleeps) < percentileMinDays {
		return false
	}

	return volume >= quantileOf(volumes, 0.75) && *day.SleepHours <= quantileOf(sleeps, 0.25)
}

// relativeStanding returns the percentile of value within window, the
// share of observations at or below it.
func relativeStanding(value float64, window []float64) float64 {
	if len(window) == 0 {
		return 50
	}
	var atOrBelow int
	for _, v := range window {
		if v <= value {
			atOrBelow++
		}
	}
	return curve.RoundTo(100*float64(atOrBelow)/float64(len(window)), 1)
}

// quantileOf computes the p-quantile of values without mutating them.
// Linear interpolation keeps small-sample quantiles smooth instead of
// snapping to observed points.
func quantileOf(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
