package core

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/redlinelab/redline/core/curve"
	"github.com/redlinelab/redline/schema"
)

// Personalization constants. Axis confidence saturates once a full
// training block of history exists; fatigue sensitivity maps |r| of the
// RIR correlation onto a bounded multiplier with 1.0 at |r| = 0.5.
const (
	profileFullDays = 28

	fatigueSensBase  = 0.6
	fatigueSensScale = 0.8
	fatigueSensCeil  = 1.4

	neutralReadiness = 50.0
)

// PersonalizationAnalyzer learns per-athlete response patterns from
// scored history: how readiness tracks sleep, which archetypes fit, and
// the adjustment factors fed back into the scorer. Analysis is pure;
// the history is never mutated.
type PersonalizationAnalyzer struct {
	cfg schema.ProfileConfig
}

// NewPersonalizationAnalyzer returns an analyzer with the given
// thresholds.
func NewPersonalizationAnalyzer(cfg schema.ProfileConfig) *PersonalizationAnalyzer {
	return &PersonalizationAnalyzer{cfg: cfg}
}

// Analyze builds the athlete profile. History shorter than the minimum
// yields the defined insufficient result: default adjustments, nil
// correlation, no archetypes, and a single insight saying so.
func (a *PersonalizationAnalyzer) Analyze(history []schema.DailyRecord, baseline schema.Baseline) schema.AthleteProfile {
	profile := schema.AthleteProfile{
		Primary:     schema.UnclassifiedAthlete,
		Adjustments: schema.DefaultAdjustmentFactors(),
		Quality:     a.quality(history),
	}
	if len(history) > 0 {
		last := history[len(history)-1]
		profile.FatigueType = ClassifyFatigue(last, baseline, schema.FloatOr(last.Readiness, neutralReadiness))
	}

	var sleeps, sleepReads []float64
	var acwrs, acwrReads []float64
	var rirs, rirReads []float64
	var allReads []float64
	for _, rec := range history {
		if rec.Readiness == nil {
			continue
		}
		allReads = append(allReads, *rec.Readiness)
		if rec.SleepHours != nil {
			sleeps = append(sleeps, *rec.SleepHours)
			sleepReads = append(sleepReads, *rec.Readiness)
		}
		if rec.ACWR != nil {
			acwrs = append(acwrs, *rec.ACWR)
			acwrReads = append(acwrReads, *rec.Readiness)
		}
		if rec.RIRWeighted != nil {
			rirs = append(rirs, *rec.RIRWeighted)
			rirReads = append(rirReads, *rec.Readiness)
		}
	}

	n := len(sleeps)
	profile.SleepResponse = schema.SleepResponse{N: n, Strength: schema.NoCorrelation}
	if n < a.cfg.MinDays {
		profile.Insights = []string{fmt.Sprintf(
			"insufficient data: %d of %d complete days needed for personalization", n, a.cfg.MinDays)}
		return profile
	}

	r, p := pearson(sleeps, sleepReads)
	profile.SleepResponse.R = r
	profile.SleepResponse.PValue = p
	if r != nil {
		profile.SleepResponse.Strength = strengthOf(*r)
		profile.SleepResponse.Responsive = *r > 0 && atLeastModerate(profile.SleepResponse.Strength)
	}

	meanSleep := stat.Mean(sleeps, nil)
	meanRead := stat.Mean(sleepReads, nil)

	if m := a.sleepArchetype(meanSleep, meanRead, profile.SleepResponse); m != nil {
		profile.Archetypes = append(profile.Archetypes, *m)
	}
	if m := a.consistencyArchetype(allReads); m != nil {
		profile.Archetypes = append(profile.Archetypes, *m)
	}
	rACWR, _ := pearson(acwrs, acwrReads)
	if m := a.acwrArchetype(acwrs, rACWR); m != nil {
		profile.Archetypes = append(profile.Archetypes, *m)
	}
	best := -1.0
	for _, m := range profile.Archetypes {
		if m.Confidence > best {
			best = m.Confidence
			profile.Primary = m.Label
		}
	}

	rRIR, _ := pearson(rirs, rirReads)
	if len(rirs) < a.cfg.MinDays {
		rRIR = nil
	}
	profile.Adjustments = a.adjustments(profile, rRIR)
	profile.Insights = a.insights(profile, meanSleep, allReads, acwrs, rACWR, rRIR)
	return profile
}

// sleepArchetype is the sleep-pattern axis. Short sleepers must prove
// it with acceptable readiness; long sleepers with even a weak positive
// correlation lean needs-sleep; everyone else reads as standard at
// reduced confidence.
func (a *PersonalizationAnalyzer) sleepArchetype(meanSleep, meanRead float64, resp schema.SleepResponse) *schema.ArchetypeMatch {
	conf := axisConfidence(resp.N)
	switch {
	case meanSleep < a.cfg.ShortSleepMax && meanRead >= a.cfg.ShortSleepMinRead:
		return &schema.ArchetypeMatch{
			Label:      schema.ShortSleeper,
			Confidence: conf,
			Basis:      fmt.Sprintf("averages %.1fh sleep yet holds readiness at %.0f", meanSleep, meanRead),
		}
	case resp.Responsive:
		return &schema.ArchetypeMatch{
			Label:      schema.NeedsSleep,
			Confidence: conf,
			Basis:      fmt.Sprintf("readiness tracks sleep hours (r=%.2f over %d days)", schema.FloatOr(resp.R, 0), resp.N),
		}
	case meanSleep >= a.cfg.LongSleepMin && resp.R != nil && *resp.R > 0 && resp.Strength != schema.NoCorrelation:
		return &schema.ArchetypeMatch{
			Label:      schema.NeedsSleep,
			Confidence: conf * 0.75,
			Basis:      fmt.Sprintf("long rester at %.1fh with readiness following sleep (r=%.2f)", meanSleep, *resp.R),
		}
	default:
		return &schema.ArchetypeMatch{
			Label:      schema.StandardSleeper,
			Confidence: conf * 0.5,
			Basis:      fmt.Sprintf("no marked sleep pattern at %.1fh average", meanSleep),
		}
	}
}

// consistencyArchetype is the readiness-consistency axis. The middle
// band between the two thresholds yields no label.
func (a *PersonalizationAnalyzer) consistencyArchetype(reads []float64) *schema.ArchetypeMatch {
	if len(reads) < a.cfg.MinDays {
		return nil
	}
	std := stat.StdDev(reads, nil)
	conf := axisConfidence(len(reads))
	switch {
	case std < a.cfg.ConsistentStdMax:
		return &schema.ArchetypeMatch{
			Label:      schema.ConsistentPerformer,
			Confidence: conf,
			Basis:      fmt.Sprintf("readiness std %.1f over %d days", std, len(reads)),
		}
	case std > a.cfg.VariableStdMin:
		return &schema.ArchetypeMatch{
			Label:      schema.VariablePerformer,
			Confidence: conf,
			Basis:      fmt.Sprintf("readiness std %.1f over %d days", std, len(reads)),
		}
	default:
		return nil
	}
}

// acwrArchetype is the workload-tolerance axis. Tolerance is only
// claimed when the athlete has actually been exposed to elevated
// ratios; a flat correlation on easy weeks proves nothing.
func (a *PersonalizationAnalyzer) acwrArchetype(acwrs []float64, r *float64) *schema.ArchetypeMatch {
	if len(acwrs) < a.cfg.MinDays || r == nil {
		return nil
	}
	maxACWR := slices.Max(acwrs)
	conf := axisConfidence(len(acwrs))
	switch {
	case math.Abs(*r) < a.cfg.ACWRTolerantRMax && maxACWR >= a.cfg.ACWRExposureMin:
		return &schema.ArchetypeMatch{
			Label:      schema.HighACWRTolerator,
			Confidence: conf,
			Basis:      fmt.Sprintf("workload ratio peaked at %.2f with |r|=%.2f against readiness", maxACWR, math.Abs(*r)),
		}
	case math.Abs(*r) >= a.cfg.ACWRSensitiveRMin && *r < 0:
		return &schema.ArchetypeMatch{
			Label:      schema.ACWRSensitive,
			Confidence: conf,
			Basis:      fmt.Sprintf("readiness falls as the workload ratio rises (r=%.2f)", *r),
		}
	default:
		return nil
	}
}

// adjustments derives the personalized factors from the profile. Weight
// shifts stack, then clamp to the bounded range.
func (a *PersonalizationAnalyzer) adjustments(profile schema.AthleteProfile, rRIR *float64) schema.AdjustmentFactors {
	adj := schema.DefaultAdjustmentFactors()
	if profile.SleepResponse.Responsive {
		adj.SleepWeight += a.cfg.SleepWeightBoost
	}
	if hasArchetype(profile, schema.ShortSleeper) {
		adj.SleepWeight -= a.cfg.SleepWeightTrim
		adj.RecoverySpeed = a.cfg.RecoveryBoost
	}
	if hasArchetype(profile, schema.HighACWRTolerator) {
		adj.ACWRWeight -= a.cfg.ACWRWeightStep
	}
	if hasArchetype(profile, schema.ACWRSensitive) {
		adj.ACWRWeight += a.cfg.ACWRWeightStep
	}
	if rRIR != nil {
		adj.FatigueSensitivity = curve.Clamp(fatigueSensBase+fatigueSensScale*math.Abs(*rRIR), fatigueSensBase, fatigueSensCeil)
	}

	adj.SleepWeight = curve.Clamp(adj.SleepWeight, a.cfg.WeightFloor, a.cfg.WeightCeil)
	adj.PerformanceWeight = curve.Clamp(adj.PerformanceWeight, a.cfg.WeightFloor, a.cfg.WeightCeil)
	adj.ACWRWeight = curve.Clamp(adj.ACWRWeight, a.cfg.WeightFloor, a.cfg.WeightCeil)
	return adj
}

// insights renders the threshold-rule observations, one line per
// pattern that actually holds.
func (a *PersonalizationAnalyzer) insights(profile schema.AthleteProfile, meanSleep float64, reads, acwrs []float64, rACWR, rRIR *float64) []string {
	var out []string
	if profile.SleepResponse.Responsive {
		out = append(out, fmt.Sprintf(
			"readiness tracks sleep closely (r=%.2f); protect the sleep window", schema.FloatOr(profile.SleepResponse.R, 0)))
	}
	if hasArchetype(profile, schema.ShortSleeper) {
		out = append(out, fmt.Sprintf("performs well on %.1fh average sleep", meanSleep))
	}
	if hasArchetype(profile, schema.ConsistentPerformer) {
		out = append(out, fmt.Sprintf("readiness is steady (std %.1f); day scores are trustworthy", stat.StdDev(reads, nil)))
	}
	if hasArchetype(profile, schema.VariablePerformer) {
		out = append(out, fmt.Sprintf("readiness swings widely (std %.1f); weigh weekly trends over single days", stat.StdDev(reads, nil)))
	}
	if hasArchetype(profile, schema.HighACWRTolerator) {
		out = append(out, fmt.Sprintf("tolerates workload spikes up to %.2f without readiness cost", slices.Max(acwrs)))
	}
	if hasArchetype(profile, schema.ACWRSensitive) {
		out = append(out, fmt.Sprintf(
			"readiness drops when the workload ratio climbs (r=%.2f); ramp loads gradually", schema.FloatOr(rACWR, 0)))
	}
	if rRIR != nil && math.Abs(*rRIR) >= a.cfg.ACWRSensitiveRMin {
		out = append(out, "hard sets echo in next-day readiness; expect a slower bounce after low-RIR days")
	}
	return out
}

// quality summarizes how much of the history was usable. Complete means
// the row carries both sleep hours and a readiness score, the pair
// every correlation needs.
func (a *PersonalizationAnalyzer) quality(history []schema.DailyRecord) schema.DataQuality {
	q := schema.DataQuality{TotalDays: len(history)}
	if len(history) == 0 {
		return q
	}

	counts := make(map[string]int)
	for _, rec := range history {
		if rec.SleepHours != nil && rec.Readiness != nil {
			q.CompleteDays++
		}
		countPresent(counts, "sleep_hours", rec.SleepHours != nil)
		countPresent(counts, "sleep_quality", rec.SleepQuality != nil)
		countPresent(counts, "energy", rec.Energy != nil)
		countPresent(counts, "fatigue", rec.Fatigue != nil)
		countPresent(counts, "soreness", rec.Soreness != nil)
		countPresent(counts, "stress", rec.Stress != nil)
		countPresent(counts, "motivation", rec.Motivation != nil)
		countPresent(counts, "perceived", rec.Perceived != nil)
		countPresent(counts, "readiness", rec.Readiness != nil)
		countPresent(counts, "acwr", rec.ACWR != nil)
		countPresent(counts, "rir_weighted", rec.RIRWeighted != nil)
	}

	q.FieldCoverage = make(map[string]float64, len(counts))
	for field, c := range counts {
		q.FieldCoverage[field] = float64(c) / float64(len(history))
	}
	return q
}

func countPresent(counts map[string]int, field string, present bool) {
	if present {
		counts[field]++
	}
}

func hasArchetype(profile schema.AthleteProfile, label schema.ArchetypeLabel) bool {
	for _, m := range profile.Archetypes {
		if m.Label == label {
			return true
		}
	}
	return false
}

// axisConfidence grows linearly with observations and saturates at a
// full 28-day block.
func axisConfidence(n int) float64 {
	return math.Min(1, float64(n)/profileFullDays)
}

// pearson returns the correlation and its two-sided p-value from a
// Student's t test, nil when the series are too short or constant.
func pearson(xs, ys []float64) (*float64, *float64) {
	if len(xs) < 3 || len(xs) != len(ys) {
		return nil, nil
	}
	if stat.StdDev(xs, nil) == 0 || stat.StdDev(ys, nil) == 0 {
		return nil, nil
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return nil, nil
	}

	var p float64
	if denom := 1 - r*r; denom > 0 {
		t := r * math.Sqrt((float64(len(xs))-2)/denom)
		dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(len(xs)) - 2}
		p = 2 * dist.CDF(-math.Abs(t))
	}
	return schema.Ptr(r), schema.Ptr(p)
}

// strengthOf bands |r| into the named strengths.
func strengthOf(r float64) schema.CorrelationStrength {
	abs := math.Abs(r)
	switch {
	case abs < 0.3:
		return schema.NoCorrelation
	case abs < 0.5:
		return schema.WeakCorrelation
	case abs < 0.7:
		return schema.ModerateCorrelation
	default:
		return schema.StrongCorrelation
	}
}

func atLeastModerate(s schema.CorrelationStrength) bool {
	return s == schema.ModerateCorrelation || s == schema.StrongCorrelation
}
