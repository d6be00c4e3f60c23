package core

import (
	"maps"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/redlinelab/redline/core/curve"
	"github.com/redlinelab/redline/schema"
)

// Intensity defaults and fixed thresholds for the overload detectors.
// A set logged without RIR or RPE is assumed comfortably hard, not
// maximal, so silence never manufactures a near-failure streak.
const (
	defaultSessionRIR = 2.0

	nearFailureRIR = 1.0
	nearFailureRPE = 9.0

	driftMinComparable      = 2
	volatilityMinComparable = 3
	slopeMinPoints          = 3

	overloadScoreMax = 100

	recoverySleepDebt = 0.5
	recoveryACWRLimit = 1.3
)

// RecoveryContext carries the day's recovery signals into the overload
// cross-check. When sleep runs well under the personal median or the
// workload ratio is elevated, detected flags are attributed to poor
// recovery and their severity is raised.
type RecoveryContext struct {
	SleepHours *float64
	SleepP50   float64 // Personal sleep median; zero disables the sleep check
	ACWR       *float64
}

// compromised reports whether recovery context explains the overload
// signals better than neural fatigue does.
func (r *RecoveryContext) compromised() bool {
	if r == nil {
		return false
	}
	if r.SleepHours != nil && r.SleepP50 > 0 && *r.SleepHours < r.SleepP50-recoverySleepDebt {
		return true
	}
	if r.ACWR != nil && *r.ACWR > recoveryACWRLimit {
		return true
	}
	return false
}

// OverloadDetector finds neuromuscular overload patterns in per-exercise
// session history: sustained near-failure work, performance drift at a
// fixed load, volatile output, and plateaus with rising effort. Each
// detector is independent; their severities sum into an aggregate score
// that maps to a readiness ceiling.
type OverloadDetector struct {
	cfg schema.OverloadConfig
}

// NewOverloadDetector returns a detector with the given thresholds.
func NewOverloadDetector(cfg schema.OverloadConfig) *OverloadDetector {
	return &OverloadDetector{cfg: cfg}
}

// topSet is one session with intensity defaults resolved, the unit every
// detector works on.
type topSet struct {
	load float64
	reps int
	rir  float64
	rpe  float64
	e1rm float64
}

// Assess runs every detector over the trailing window of each exercise
// and aggregates the flags. Exercises with fewer sessions than the
// configured minimum are reported but never flagged. The recovery
// context may be nil.
func (d *OverloadDetector) Assess(sessions []schema.SessionRecord, recovery *RecoveryContext) schema.OverloadAssessment {
	sessions = EnsureE1RM(sessions)

	byExercise := make(map[string][]schema.SessionRecord)
	for _, s := range sessions {
		byExercise[s.Exercise] = append(byExercise[s.Exercise], s)
	}

	var assessment schema.OverloadAssessment
	for _, name := range slices.Sorted(maps.Keys(byExercise)) {
		list := byExercise[name]
		sort.SliceStable(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })

		sets := topSetsOf(list)
		ex := schema.ExerciseAssessment{Exercise: name, Sessions: len(sets)}
		if len(sets) >= d.cfg.MinSessions {
			ex.Advanced = d.advanced(sets)
			window := sets
			if len(window) > d.cfg.Window {
				window = window[len(window)-d.cfg.Window:]
			}
			ex.Flags = d.detect(name, window, ex.Advanced)
		}
		assessment.Exercises = append(assessment.Exercises, ex)
	}

	flagged := false
	for _, ex := range assessment.Exercises {
		if len(ex.Flags) > 0 {
			flagged = true
			break
		}
	}
	if flagged {
		assessment.Cause = schema.NeuralDriven
		if recovery.compromised() {
			assessment.Cause = schema.RecoveryDriven
			for i := range assessment.Exercises {
				for j := range assessment.Exercises[i].Flags {
					assessment.Exercises[i].Flags[j].Severity *= d.cfg.RecoveryMultiplier
				}
			}
		}
	}

	for _, ex := range assessment.Exercises {
		assessment.Flags = append(assessment.Flags, ex.Flags...)
	}
	for _, f := range assessment.Flags {
		assessment.Score += f.Severity
	}
	assessment.Score = math.Min(assessment.Score, overloadScoreMax)

	assessment.Cap, assessment.CapReason = d.capFor(assessment.Score)
	return assessment
}

// capFor maps an aggregate severity score onto a readiness ceiling. The
// lowest ceiling among matching caps wins, so a misordered cap table
// can never grant a higher ceiling to a worse score. Zero means no cap.
func (d *OverloadDetector) capFor(score float64) (float64, string) {
	var ceiling float64
	var reason string
	for _, c := range d.cfg.Caps {
		if score < c.MinScore {
			continue
		}
		if ceiling == 0 || c.Cap < ceiling {
			ceiling = c.Cap
			reason = c.Reason
		}
	}
	return ceiling, reason
}

// detect runs the four detectors over one exercise window. Advanced
// lifters get the tightened thresholds: their loads barely move, so
// small declines carry signal.
func (d *OverloadDetector) detect(exercise string, window []topSet, advanced bool) []schema.OverloadFlag {
	k := d.cfg.NearFailure.K
	proportion := d.cfg.NearFailure.Proportion
	e1rmRatio := d.cfg.Drift.E1RMRatio
	scale := 1.0
	if advanced {
		k = d.cfg.Advanced.K
		proportion = d.cfg.Advanced.Proportion
		e1rmRatio = d.cfg.Advanced.E1RMRatio
		scale = d.cfg.Advanced.SeverityScale
	}

	var flags []schema.OverloadFlag
	if f := d.nearFailure(exercise, window, k, proportion, scale); f != nil {
		flags = append(flags, *f)
	}
	if f := d.fixedLoadDrift(exercise, window, e1rmRatio, scale); f != nil {
		flags = append(flags, *f)
	}
	if f := d.highVolatility(exercise, window, scale); f != nil {
		flags = append(flags, *f)
	}
	if f := d.plateauEffortRise(exercise, window, scale); f != nil {
		flags = append(flags, *f)
	}
	return flags
}

// nearFailure fires when most of the last k sessions sat at or beyond
// the near-failure line and mean RIR confirms the streak.
func (d *OverloadDetector) nearFailure(exercise string, window []topSet, k int, proportion, scale float64) *schema.OverloadFlag {
	if k <= 0 || len(window) < k {
		return nil
	}
	recent := window[len(window)-k:]

	var hard int
	var rirSum float64
	for _, s := range recent {
		if s.rir <= nearFailureRIR || s.rpe >= nearFailureRPE {
			hard++
		}
		rirSum += s.rir
	}
	share := float64(hard) / float64(len(recent))
	meanRIR := rirSum / float64(len(recent))
	if share < proportion || meanRIR > d.cfg.NearFailure.MeanRIRMax {
		return nil
	}

	return &schema.OverloadFlag{
		Kind:     schema.FlagSustainedNearFailure,
		Exercise: exercise,
		Severity: d.cfg.NearFailure.Severity * scale,
		Evidence: map[string]float64{
			"sessions":           float64(len(recent)),
			"near_failure_share": share,
			"mean_rir":           meanRIR,
		},
		Recommendations: []string{
			"skip RIR 0 sets for the next week",
			"cap the top set at RIR 2 and work through backoffs",
			"trim sets by 20%",
		},
	}
}

// fixedLoadDrift fires when the latest session underperforms the median
// of earlier sessions at a comparable load: fewer reps, less in reserve,
// or a lower estimated 1RM.
func (d *OverloadDetector) fixedLoadDrift(exercise string, window []topSet, e1rmRatio, scale float64) *schema.OverloadFlag {
	if len(window) < 2 {
		return nil
	}
	last := window[len(window)-1]

	var reps, rirs, e1rms []float64
	for _, s := range window[:len(window)-1] {
		if math.Abs(s.load-last.load) > d.cfg.LoadTolerance {
			continue
		}
		reps = append(reps, float64(s.reps))
		rirs = append(rirs, s.rir)
		e1rms = append(e1rms, s.e1rm)
	}
	if len(reps) < driftMinComparable {
		return nil
	}

	baseReps := medianOf(reps)
	baseRIR := medianOf(rirs)
	baseE1RM := medianOf(e1rms)

	repDrop := float64(last.reps) <= baseReps-float64(d.cfg.Drift.RepDrop)
	rirDrop := last.rir <= baseRIR-d.cfg.Drift.RIRDrop
	e1rmDrop := last.e1rm < baseE1RM*e1rmRatio
	if !repDrop && !rirDrop && !e1rmDrop {
		return nil
	}

	return &schema.OverloadFlag{
		Kind:     schema.FlagFixedLoadDrift,
		Exercise: exercise,
		Severity: d.cfg.Drift.Severity * scale,
		Evidence: map[string]float64{
			"load":          last.load,
			"last_reps":     float64(last.reps),
			"baseline_reps": baseReps,
			"last_rir":      last.rir,
			"baseline_rir":  baseRIR,
			"last_e1rm":     last.e1rm,
			"baseline_e1rm": baseE1RM,
		},
		Recommendations: []string{
			"micro deload: drop load 5% or add 2 RIR for a week",
			"rotate the stimulus: pauses, tempo work, 6-8 rep sets",
			"no PR attempts this week",
		},
	}
}

// highVolatility fires when output swings at a comparable load while the
// lifter keeps grinding near failure.
func (d *OverloadDetector) highVolatility(exercise string, window []topSet, scale float64) *schema.OverloadFlag {
	if len(window) < volatilityMinComparable {
		return nil
	}
	last := window[len(window)-1]

	var reps, rirs, e1rms []float64
	for _, s := range window {
		if math.Abs(s.load-last.load) > d.cfg.LoadTolerance {
			continue
		}
		reps = append(reps, float64(s.reps))
		rirs = append(rirs, s.rir)
		e1rms = append(e1rms, s.e1rm)
	}
	if len(reps) < volatilityMinComparable {
		return nil
	}

	repRange := slices.Max(reps) - slices.Min(reps)
	mean := stat.Mean(e1rms, nil)
	var cv float64
	if mean > 0 {
		cv = stat.StdDev(e1rms, nil) / mean
	}
	var low int
	for _, r := range rirs {
		if r <= nearFailureRIR {
			low++
		}
	}
	lowShare := float64(low) / float64(len(rirs))

	volatile := repRange >= float64(d.cfg.Volatility.RepRange) || cv > d.cfg.Volatility.E1RMCV
	if !volatile || lowShare < d.cfg.Volatility.LowRIRShare {
		return nil
	}

	return &schema.OverloadFlag{
		Kind:     schema.FlagHighVolatility,
		Exercise: exercise,
		Severity: d.cfg.Volatility.Severity * scale,
		Evidence: map[string]float64{
			"load":          last.load,
			"rep_range":     repRange,
			"e1rm_cv":       cv,
			"low_rir_share": lowShare,
			"comparable":    float64(len(reps)),
		},
		Recommendations: []string{
			"keep structure and rest identical between sessions",
			"one heavy top set per session, backoffs after",
			"cap RIR 0 work at one set per week",
		},
	}
}

// plateauEffortRise fires when load has stalled across the window while
// effort climbs: the halves lift the same weight but the recent half
// holds visibly less in reserve.
func (d *OverloadDetector) plateauEffortRise(exercise string, window []topSet, scale float64) *schema.OverloadFlag {
	if len(window) < d.cfg.Window || len(window) < 2 {
		return nil
	}
	half := len(window) / 2

	var loadsFirst, loadsSecond, rirsFirst, rirsSecond []float64
	for i, s := range window {
		if i < half {
			loadsFirst = append(loadsFirst, s.load)
			rirsFirst = append(rirsFirst, s.rir)
		} else {
			loadsSecond = append(loadsSecond, s.load)
			rirsSecond = append(rirsSecond, s.rir)
		}
	}

	loadFirst := medianOf(loadsFirst)
	loadSecond := medianOf(loadsSecond)
	if loadFirst <= 0 {
		return nil
	}
	changePct := math.Abs(loadSecond-loadFirst) / loadFirst
	if changePct >= d.cfg.Plateau.LoadChangeMax {
		return nil
	}

	rirFirst := stat.Mean(rirsFirst, nil)
	rirSecond := stat.Mean(rirsSecond, nil)
	diff := rirSecond - rirFirst
	slope := rirSlope(window)
	if diff >= -d.cfg.Plateau.RIRDrop && slope >= d.cfg.Plateau.SlopeMin {
		return nil
	}

	return &schema.OverloadFlag{
		Kind:     schema.FlagPlateauEffortRise,
		Exercise: exercise,
		Severity: d.cfg.Plateau.Severity * scale,
		Evidence: map[string]float64{
			"load_change_pct": changePct,
			"rir_first_half":  rirFirst,
			"rir_second_half": rirSecond,
			"rir_slope":       slope,
		},
		Recommendations: []string{
			"micro deload: drop load 5% or add 2 RIR for a week",
			"swap in a variant: backoff sets, tempo, pauses",
			"deload fully if a second signal fires this week",
		},
	}
}

// advanced classifies a lift as advanced: enough sessions logged and a
// load so stable that progress has effectively plateaued.
func (d *OverloadDetector) advanced(sets []topSet) bool {
	if len(sets) < d.cfg.Advanced.MinSessions {
		return false
	}
	loads := make([]float64, len(sets))
	for i, s := range sets {
		loads[i] = s.load
	}
	mean := stat.Mean(loads, nil)
	if mean <= 0 {
		return false
	}
	return stat.StdDev(loads, nil)/mean < d.cfg.Advanced.MaxLoadCV
}

// topSetsOf resolves each session into a topSet, keeping only the
// highest-e1RM set per day so duplicate logs never double-count.
func topSetsOf(sessions []schema.SessionRecord) []topSet {
	bestByDay := make(map[string]topSet)
	var order []string
	for _, s := range sessions {
		set := topSet{load: s.Load, reps: s.Reps, e1rm: s.E1RM}
		switch {
		case s.RIR != nil:
			set.rir = *s.RIR
		case s.RPE != nil:
			set.rir = curve.Clamp(10-*s.RPE, 0, 10)
		default:
			set.rir = defaultSessionRIR
		}
		if s.RPE != nil {
			set.rpe = *s.RPE
		} else {
			set.rpe = 10 - set.rir
		}

		key := dayKey(s.Date)
		prev, seen := bestByDay[key]
		if !seen {
			order = append(order, key)
		}
		if !seen || set.e1rm > prev.e1rm {
			bestByDay[key] = set
		}
	}

	out := make([]topSet, 0, len(order))
	for _, key := range order {
		out = append(out, bestByDay[key])
	}
	return out
}

// rirSlope is the least-squares slope of RIR across the window, sessions
// indexed 0..n-1. Too few points reads as flat.
func rirSlope(window []topSet) float64 {
	if len(window) < slopeMinPoints {
		return 0
	}
	xs := make([]float64, len(window))
	ys := make([]float64, len(window))
	for i, s := range window {
		xs[i] = float64(i)
		ys[i] = s.rir
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope
}

// RankFlags orders overload flags by severity, highest first. Ties
// break alphabetically by exercise, then by kind, so rendered output is
// stable across runs.
func RankFlags(flags []schema.OverloadFlag) []schema.OverloadFlag {
	ranked := make([]schema.OverloadFlag, len(flags))
	copy(ranked, flags)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Severity != ranked[j].Severity {
			return ranked[i].Severity > ranked[j].Severity
		}
		if ranked[i].Exercise != ranked[j].Exercise {
			return ranked[i].Exercise < ranked[j].Exercise
		}
		return ranked[i].Kind < ranked[j].Kind
	})
	return ranked
}

// medianOf returns the median without mutating values.
func medianOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
