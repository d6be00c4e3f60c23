package core

import (
	"math"
	"slices"

	"github.com/redlinelab/redline/core/curve"
	"github.com/redlinelab/redline/schema"
)

// Cap sources recorded on the decision result.
const (
	capSourceOverload  = "overload"
	capSourceFatigue   = "fatigue_flag"
	capSourceSleepDebt = "sleep_debt"
	capSourceGrind     = "grind"
)

// Day-status thresholds. Status is a coarser cut than the zone bands: it
// answers "train as planned today?" rather than "how hard?". A full GO
// needs positive evidence on every signal; the lesser statuses only
// react to evidence that is actually present.
const (
	statusLimitsMin       = 60.0
	statusRecoverMax      = 40.0
	statusGoSleep         = 7.0
	statusLimitsSleep     = 6.0
	statusRecoverSleep    = 5.0
	statusGoOverload      = 30.0
	statusLimitsOverload  = 60.0
	statusRecoverOverload = 80.0
)

// steadyPI marks a held performance index in the reduce zone, where the
// volume trim stays moderate instead of deep.
const steadyPI = 1.00

// Objective-score normalization anchors, matching the glossary scales:
// sleep ramps from 6h to 7.5h, the performance index from -2% to +2%.
const (
	objSleepFloor   = 6.0
	objSleepSpan    = 1.5
	objPerfFloor    = 0.98
	objPerfSpan     = 0.04
	objTrendOffset  = 0.01
	objTrendSpan    = 0.02
	objNeutralScore = 0.5
)

// DecisionEngine turns a day's readiness score, load metrics and
// overload assessment into a training directive: a zone, an action, the
// caps that lowered the score, and machine-readable reason codes.
type DecisionEngine struct {
	cfg schema.DecisionConfig
}

// NewDecisionEngine returns an engine with the given thresholds.
func NewDecisionEngine(cfg schema.DecisionConfig) *DecisionEngine {
	return &DecisionEngine{cfg: cfg}
}

// Decide produces the training directive for one day. Caps are applied
// in a fixed order (overload, fatigue flag, sleep debt, grind) and each
// one that fires is recorded; the zone bands read the capped score.
func (e *DecisionEngine) Decide(rec schema.DailyRecord, score schema.ScoreResult, m schema.LoadMetrics, overload schema.OverloadAssessment) schema.DecisionResult {
	res := schema.DecisionResult{
		Date:      rec.Date,
		Readiness: score.Score,
		Final:     score.Score,
	}

	if capped := overload.ApplyCap(res.Final); capped < res.Final {
		res.Final = capped
		res.Caps = append(res.Caps, schema.AppliedCap{Source: capSourceOverload, Value: capped})
	}
	if m.FatigueFlag && res.Final > e.cfg.FatigueCap {
		res.Final = e.cfg.FatigueCap
		res.Caps = append(res.Caps, schema.AppliedCap{Source: capSourceFatigue, Value: res.Final})
	}
	if rec.SleepHours != nil && *rec.SleepHours < e.cfg.ShortSleep && res.Final > e.cfg.SleepCap {
		res.Final = e.cfg.SleepCap
		res.Caps = append(res.Caps, schema.AppliedCap{Source: capSourceSleepDebt, Value: res.Final})
	}
	if e.grinding(m) && res.Final > e.cfg.GrindCap {
		res.Final = e.cfg.GrindCap
		res.Caps = append(res.Caps, schema.AppliedCap{Source: capSourceGrind, Value: res.Final})
	}

	res.Zone = e.zoneOf(res.Final)
	res.Action = e.actionFor(res.Zone, rec, m)
	res.ReasonCodes = e.reasons(rec, m, overload)
	res.ObjectiveScore = e.ObjectiveScore(rec, m)
	res.Status = e.dayStatus(res.Final, rec, m, overload)
	res.Constraints = LiftConstraints(overload.Flags)
	return res
}

// zoneOf maps a capped score onto the four zone bands.
func (e *DecisionEngine) zoneOf(final float64) schema.Zone {
	switch {
	case final >= e.cfg.PushMin:
		return schema.PushZone
	case final >= e.cfg.NormalMin:
		return schema.NormalZone
	case final >= e.cfg.ReduceMin:
		return schema.ReduceZone
	default:
		return schema.DeloadZone
	}
}

// actionFor picks the concrete session directive inside a zone. Push
// days progress load only when the performance index earns it; reduce
// and deload days scale the volume cut to how bad the signals are.
func (e *DecisionEngine) actionFor(zone schema.Zone, rec schema.DailyRecord, m schema.LoadMetrics) string {
	switch zone {
	case schema.PushZone:
		if e.understimulated(m) {
			return "+1 set (key lift) or target RIR 1-2"
		}
		if m.PerformanceIndex != nil && *m.PerformanceIndex >= e.cfg.ProgressPI {
			return "+2.5% load (key lift)"
		}
		return "+1 set (key lift)"
	case schema.NormalZone:
		if m.ACWR != nil && *m.ACWR > e.cfg.ElevatedACWR {
			return "maintain load, -10% volume"
		}
		return "maintain load, target RIR 1-2"
	case schema.ReduceZone:
		if m.PerformanceIndex != nil && *m.PerformanceIndex >= steadyPI {
			return "-15% volume, keep technique, target RIR 2-3"
		}
		return "-20% volume, avoid RIR 0-1"
	default:
		if rec.SleepHours != nil && *rec.SleepHours < e.cfg.ShortSleep {
			return "-40% volume at RIR 3-5, or full rest"
		}
		return "-30% to -50% volume, target RIR 3-5"
	}
}

// reasons collects every active reason code in a fixed order. Codes
// explain the day; the zone and caps are decided independently. Nil
// means nothing fired; FormatReasonCodes renders that as NONE.
func (e *DecisionEngine) reasons(rec schema.DailyRecord, m schema.LoadMetrics, overload schema.OverloadAssessment) []schema.ReasonCode {
	var codes []schema.ReasonCode
	if rec.SleepHours != nil && *rec.SleepHours < e.cfg.LowSleep {
		codes = append(codes, schema.ReasonLowSleep)
	}
	if m.ACWR != nil && *m.ACWR > e.cfg.HighACWR {
		codes = append(codes, schema.ReasonHighACWR)
	}
	if m.PerformanceIndex != nil && *m.PerformanceIndex < e.cfg.PerfDrop {
		codes = append(codes, schema.ReasonPerfDrop)
	}
	if m.Effort != nil && *m.Effort >= e.cfg.HighEffort {
		codes = append(codes, schema.ReasonHighEffort)
	}
	if m.FatigueFlag {
		codes = append(codes, schema.ReasonFatigue)
	}
	if e.strainSpike(m) {
		codes = append(codes, schema.ReasonHighStrainDay)
	}
	if e.understimulated(m) {
		codes = append(codes, schema.ReasonUnderstim)
	}
	if overload.Flagged() {
		codes = append(codes, schema.ReasonNeuralOver)
	}
	return codes
}

// ObjectiveScore blends the day's objective signals into a 0-100 value
// reported alongside the readiness score. It is nil when the day lacks
// sleep hours or a performance index; softer signals fall back to a
// neutral midpoint instead.
func (e *DecisionEngine) ObjectiveScore(rec schema.DailyRecord, m schema.LoadMetrics) *float64 {
	if rec.SleepHours == nil || m.PerformanceIndex == nil {
		return nil
	}

	hours := curve.Clamp01((*rec.SleepHours - objSleepFloor) / objSleepSpan)
	quality := objNeutralScore
	if rec.SleepQuality != nil {
		quality = curve.Clamp01((float64(*rec.SleepQuality) - 1) / 4)
	}
	perf := curve.Clamp01((*m.PerformanceIndex - objPerfFloor) / objPerfSpan)
	trend := objNeutralScore
	if m.PerformanceMean7 != nil {
		trend = curve.Clamp01((*m.PerformanceIndex - *m.PerformanceMean7 + objTrendOffset) / objTrendSpan)
	}
	acwr := objectiveACWRScore(m.ACWR)
	rir := objectiveRIRScore(m.RIRWeighted)

	w := e.cfg.ObjectiveWeights
	blend := w[schema.BreakdownSleep]*hours +
		w[schema.BreakdownQuality]*quality +
		w[schema.BreakdownPerformance]*perf +
		w[schema.BreakdownTrend]*trend +
		w[schema.BreakdownACWR]*acwr +
		w[schema.BreakdownEffort]*rir
	return schema.Ptr(math.Round(blend * 100))
}

// objectiveACWRScore rewards the 0.8-1.3 sweet spot and decays on both
// sides, falling faster above it than below.
func objectiveACWRScore(acwr *float64) float64 {
	if acwr == nil {
		return objNeutralScore
	}
	x := *acwr
	switch {
	case x >= 0.8 && x <= 1.3:
		return 1.0
	case x > 1.5:
		return curve.Clamp(0.6-(x-1.5)*1.2, 0, 0.6)
	case x > 1.3:
		return 1.0 - (x-1.3)*2
	case x < 0.6:
		return 0.6
	default:
		return 0.7 + (x-0.6)*1.5
	}
}

// objectiveRIRScore rewards sessions finishing with 1-3 reps in
// reserve; grinding to failure scores zero and sandbagging scores below
// the sweet spot.
func objectiveRIRScore(rir *float64) float64 {
	if rir == nil {
		return objNeutralScore
	}
	x := *rir
	switch {
	case x <= 0.5:
		return 0
	case x < 1:
		return (x - 0.5) / 0.5
	case x <= 3:
		return 1.0
	default:
		return 0.8
	}
}

// dayStatus maps the capped score, sleep, workload ratio, and overload
// severity onto the coarse day statuses.
func (e *DecisionEngine) dayStatus(final float64, rec schema.DailyRecord, m schema.LoadMetrics, overload schema.OverloadAssessment) schema.DayStatus {
	sleep := rec.SleepHours
	switch {
	case final >= e.cfg.PushMin &&
		overload.Score < statusGoOverload &&
		acwrUnder(m.ACWR, e.cfg.ElevatedACWR) &&
		sleep != nil && *sleep >= statusGoSleep:
		return schema.StatusGo
	case final >= statusLimitsMin &&
		overload.Score < statusLimitsOverload &&
		acwrUnder(m.ACWR, e.cfg.HighACWR) &&
		(sleep == nil || *sleep >= statusLimitsSleep):
		return schema.StatusGoWithLimits
	case overload.Score >= statusRecoverOverload ||
		final < statusRecoverMax ||
		(sleep != nil && *sleep < statusRecoverSleep):
		return schema.StatusRecover
	default:
		return schema.StatusRedirect
	}
}

// acwrUnder treats a missing ratio as not elevated.
func acwrUnder(acwr *float64, limit float64) bool {
	return acwr == nil || *acwr < limit
}

// grinding reports a performance drop under high effort, the pattern
// behind the hardest readiness cap.
func (e *DecisionEngine) grinding(m schema.LoadMetrics) bool {
	return m.PerformanceIndex != nil && *m.PerformanceIndex < e.cfg.PerfDrop &&
		m.Effort != nil && *m.Effort >= e.cfg.HighEffort
}

// strainSpike reports a session taken to near failure at high effort.
func (e *DecisionEngine) strainSpike(m schema.LoadMetrics) bool {
	return m.RIRWeighted != nil && *m.RIRWeighted <= 1 &&
		m.Effort != nil && *m.Effort >= e.cfg.HighEffort
}

// understimulated reports a session too easy to drive adaptation.
func (e *DecisionEngine) understimulated(m schema.LoadMetrics) bool {
	return m.RIRWeighted != nil && *m.RIRWeighted >= e.cfg.UnderstimRIR &&
		m.Effort != nil && *m.Effort <= e.cfg.UnderstimEff
}

// constraintsByKind maps each overload flag to the guard rails it
// imposes on that lift for the day.
var constraintsByKind = map[schema.FlagKind][]string{
	schema.FlagSustainedNearFailure: {"NO_RIR0", "BACKOFF_ONLY"},
	schema.FlagFixedLoadDrift:       {"VOLUME_CAP_-20%", "NO_RIR0"},
	schema.FlagHighVolatility:       {"STANDARDIZE_TECHNIQUE"},
	schema.FlagPlateauEffortRise:    {"SWAP_VARIANT", "VOLUME_CAP_-25%"},
}

// LiftConstraints converts overload flags into per-exercise guard
// rails, most severe first.
func LiftConstraints(flags []schema.OverloadFlag) []schema.LiftConstraint {
	if len(flags) == 0 {
		return nil
	}
	out := make([]schema.LiftConstraint, 0, len(flags))
	for _, f := range RankFlags(flags) {
		rules, ok := constraintsByKind[f.Kind]
		if !ok {
			continue
		}
		out = append(out, schema.LiftConstraint{
			Exercise:    f.Exercise,
			Constraints: slices.Clone(rules),
			Why:         f.Kind,
			Severity:    f.Severity,
		})
	}
	return out
}
