package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/redlinelab/redline/core/curve"
	"github.com/redlinelab/redline/schema"
)

// Neutral component scores substituted when a self-report field is
// absent. Missing data lowers confidence instead of distorting the
// score, so each stand-in sits near a typical athlete's answer rather
// than the scale midpoint.
const (
	neutralHoursScore      = 0.5
	neutralQualityScore    = 0.5
	neutralFatigueScore    = 0.7
	neutralStressScore     = 0.7
	neutralEnergyScore     = 0.6
	neutralSorenessScore   = 0.85
	neutralMotivationScore = 0.7

	// Raw stand-ins for fields that feed other formulas (the caffeine
	// gate and the perceived-readiness estimate).
	neutralFatigueRaw    = 3.0
	neutralMotivationRaw = 7.0
)

// Sensitivity exponents are capped so personalization can tilt a
// component without dominating it.
const (
	maxFatigueSensitivity = 1.2
	maxStressSensitivity  = 1.15
)

// Floors for low reported fatigue and stress, so noise around 1-2
// cannot dent an otherwise fresh day.
const (
	lowFatigueFloor = 0.92
	lowStressFloor  = 0.90
)

// normalizer maps raw component inputs onto 0-1 component scores. The
// curve implementation is the default; the linear one is the simpler
// fallback and must stay within a few points of it for mid-range
// inputs.
type normalizer interface {
	name() schema.ScorerVariant
	sleepHours(n float64) float64   // n is the position within the personal sleep band
	sleepQuality(v float64) float64 // v inputs below are raw ordinals scaled to 0-1
	energy(v float64) float64
	fatigue(v float64) float64
	stress(v float64) float64
	soreness(v float64) float64
	perceived(v float64) float64
	motivation(v float64) float64
}

// ReadinessScorer turns one day of wellness data into a 0-100 readiness
// score. It is immutable after construction and safe for concurrent use.
type ReadinessScorer struct {
	cfg  schema.ScorerConfig
	adj  schema.AdjustmentFactors
	norm normalizer
}

// NewReadinessScorer builds a scorer for the variant selected in cfg.
// Unknown variants fall back to the curve strategy.
func NewReadinessScorer(cfg schema.ScorerConfig, adj schema.AdjustmentFactors) *ReadinessScorer {
	var n normalizer
	switch cfg.Variant {
	case schema.LinearVariant:
		n = linearNormalizer{}
	default:
		n = curveNormalizer{sleep: cfg.Sleep}
	}
	return &ReadinessScorer{cfg: cfg, adj: adj, norm: n}
}

// Variant reports which normalization strategy the scorer runs.
func (s *ReadinessScorer) Variant() schema.ScorerVariant {
	return s.norm.name()
}

// Score evaluates one day. history holds the records strictly before
// rec's date, oldest first; it drives confidence depth and the
// consistency and momentum bonuses. baseline may be zero-valued when no
// history exists.
func (s *ReadinessScorer) Score(rec schema.DailyRecord, history []schema.DailyRecord, baseline schema.Baseline) schema.ScoreResult {
	conf := computeConfidence(rec, len(history))

	comps, detail := s.components(rec, baseline)
	weights := s.effectiveWeights()

	var base float64
	breakdown := make(map[schema.BreakdownKey]float64, len(weights)+2)
	for key, w := range weights {
		contribution := w * comps[key]
		breakdown[key] = contribution
		base += contribution
	}

	bonus, bonusNotes := s.bonuses(history)
	penalty, penaltyNotes := s.penalties(rec, conf.score)
	breakdown[schema.BreakdownBonus] = bonus
	breakdown[schema.BreakdownPenalty] = -penalty

	clipped := curve.SoftClip(base+bonus-penalty, 0, 1, s.cfg.SoftClipSoftness)
	score := curve.RoundTo(clipped*100, 0)

	explanations := []string{
		fmt.Sprintf("sleep: +%.1f pts (%s)", breakdown[schema.BreakdownSleep]*100, detail.sleep),
		fmt.Sprintf("state: +%.1f pts (%s)", breakdown[schema.BreakdownState]*100, detail.state),
		fmt.Sprintf("perceived: +%.1f pts (%s)", breakdown[schema.BreakdownPerceived]*100, detail.perceived),
		fmt.Sprintf("motivation: +%.1f pts (%s)", breakdown[schema.BreakdownMotivation]*100, detail.motivation),
		fmt.Sprintf("bonus: +%.1f pts%s", bonus*100, parenthesize(bonusNotes)),
		fmt.Sprintf("penalty: -%.1f pts%s", penalty*100, parenthesize(penaltyNotes)),
		fmt.Sprintf("confidence: %s (%.2f, %d days of history)", conf.level, conf.score, len(history)),
	}

	return schema.ScoreResult{
		Date:            rec.Date,
		Score:           score,
		Base:            base,
		Bonus:           bonus,
		Penalty:         penalty,
		ConfidenceScore: conf.score,
		Confidence:      conf.level,
		Variant:         s.norm.name(),
		Breakdown:       breakdown,
		Explanations:    explanations,
	}
}

// componentDetail carries the human-readable fragments behind each
// component score, assembled into explanation lines by Score.
type componentDetail struct {
	sleep      string
	state      string
	perceived  string
	motivation string
}

// components computes the four top-level component scores. Each absent
// field falls back to its neutral score and is called out in the
// matching explanation fragment.
func (s *ReadinessScorer) components(rec schema.DailyRecord, baseline schema.Baseline) (map[schema.BreakdownKey]float64, componentDetail) {
	var detail componentDetail

	// Sleep: blend of hours against the personal band and subjective
	// quality, plus a small nap credit folded into the same component.
	center, minAcceptable := s.sleepAnchors(baseline)
	hoursScore := neutralHoursScore
	hoursNote := "no hours logged"
	if rec.SleepHours != nil && *rec.SleepHours > 0 {
		hours := math.Min(*rec.SleepHours, 24)
		hoursScore = s.norm.sleepHours(sleepPosition(hours, center, minAcceptable))
		hoursNote = fmt.Sprintf("%.1fh vs %.1fh median", hours, center)
	}
	qualityScore := neutralQualityScore
	qualityNote := "quality unknown"
	if rec.SleepQuality != nil {
		q := clampOrdinal(*rec.SleepQuality, 1, 5)
		qualityScore = s.norm.sleepQuality(float64(q-1) / 4.0)
		qualityNote = fmt.Sprintf("quality %d/5", q)
	}
	sleepScore := s.cfg.Sleep.HoursWeight*hoursScore + (1-s.cfg.Sleep.HoursWeight)*qualityScore

	sleepParts := []string{hoursNote, qualityNote}
	if nap, napNote := napTier(schema.IntOr(rec.NapMinutes, 0), s.cfg.Bonus.NapCap); nap > 0 {
		sleepScore = math.Min(1, sleepScore+nap)
		sleepParts = append(sleepParts, napNote)
	}
	detail.sleep = strings.Join(sleepParts, ", ")

	// State: energy, fatigue, stress and soreness. Personalization tilts
	// fatigue and stress by raising their scores to the sensitivity
	// exponent, and soreness by the inverse of recovery speed.
	sensitivity := s.adj.FatigueSensitivity
	if sensitivity <= 0 {
		sensitivity = 1
	}
	recovery := curve.Clamp(s.adj.RecoverySpeed, 0.5, 2.0)
	if s.adj.RecoverySpeed <= 0 {
		recovery = 1
	}

	energyScore := neutralEnergyScore
	energyNote := "energy n/a"
	if rec.Energy != nil {
		e := float64(clampOrdinal(*rec.Energy, 0, 10))
		energyScore = s.norm.energy(e / 10)
		energyNote = "energy " + energyWord(e)
	}

	fatigueScore := neutralFatigueScore
	fatigueNote := "fatigue n/a"
	rawFatigue := neutralFatigueRaw
	if rec.Fatigue != nil {
		f := float64(clampOrdinal(*rec.Fatigue, 0, 10))
		rawFatigue = f
		fatigueScore = math.Pow(s.norm.fatigue(f/10), math.Min(sensitivity, maxFatigueSensitivity))
		if f <= 2 && fatigueScore < lowFatigueFloor {
			fatigueScore = lowFatigueFloor
		}
		fatigueNote = "fatigue " + fatigueWord(f)
	}

	stressScore := neutralStressScore
	stressNote := "stress n/a"
	if rec.Stress != nil {
		v := float64(clampOrdinal(*rec.Stress, 0, 10))
		stressScore = math.Pow(s.norm.stress(v/10), math.Min(sensitivity, maxStressSensitivity))
		if v <= 2 && stressScore < lowStressFloor {
			stressScore = lowStressFloor
		}
		stressNote = "stress " + stressWord(v)
	}

	sorenessScore := neutralSorenessScore
	if rec.Soreness != nil {
		v := float64(clampOrdinal(*rec.Soreness, 0, 10))
		sorenessScore = math.Pow(s.norm.soreness(v/10), 1/recovery)
	}

	stateScore := s.cfg.StateWeights[schema.BreakdownEnergy]*energyScore +
		s.cfg.StateWeights[schema.BreakdownFatigue]*fatigueScore +
		s.cfg.StateWeights[schema.BreakdownStress]*stressScore +
		s.cfg.StateWeights[schema.BreakdownSoreness]*sorenessScore
	detail.state = strings.Join([]string{energyNote, fatigueNote, stressNote}, ", ")

	// Motivation before perceived: the perceived fallback estimate
	// borrows the raw motivation value.
	motivationScore := neutralMotivationScore
	rawMotivation := neutralMotivationRaw
	detail.motivation = "no data"
	if rec.Motivation != nil {
		m := clampOrdinal(*rec.Motivation, 0, 10)
		rawMotivation = float64(m)
		motivationScore = s.norm.motivation(float64(m) / 10)
		detail.motivation = fmt.Sprintf("%d/10", m)
	}

	var perceivedScore float64
	if rec.Perceived != nil {
		p := clampOrdinal(*rec.Perceived, 0, 10)
		perceivedScore = s.norm.perceived(float64(p) / 10)
		detail.perceived = fmt.Sprintf("feel %d/10", p)
	} else {
		perceivedScore = energyScore*0.4 + (1-rawFatigue/10)*0.3 + rawMotivation/10*0.3
		detail.perceived = "estimated"
	}

	comps := map[schema.BreakdownKey]float64{
		schema.BreakdownSleep:      sleepScore,
		schema.BreakdownState:      stateScore,
		schema.BreakdownPerceived:  perceivedScore,
		schema.BreakdownMotivation: motivationScore,
	}
	return comps, detail
}

// sleepAnchors resolves the personal sleep band. The curve centers on
// the athlete's median and treats their 25th percentile as minimally
// acceptable, falling back to population defaults without history.
func (s *ReadinessScorer) sleepAnchors(baseline schema.Baseline) (center, minAcceptable float64) {
	center = s.cfg.Sleep.CenterFallback
	if baseline.Sleep.P50 > 0 {
		center = baseline.Sleep.P50
	}
	minAcceptable = math.Max(s.cfg.Sleep.MinFloor, center-2)
	if p := baseline.Sleep.P25; p > 0 && p < center+1 {
		minAcceptable = p
	}
	return center, minAcceptable
}

// sleepPosition maps hours onto the personal band: 0 at the minimum
// acceptable, 1.0 one hour past the center.
func sleepPosition(hours, center, minAcceptable float64) float64 {
	return (hours - minAcceptable) / (center + 1 - minAcceptable)
}

// napTier maps nap duration onto a small additive credit. The power-nap
// and full-cycle durations score best; very long naps lose a little to
// expected grogginess.
func napTier(minutes int, limit float64) (float64, string) {
	if minutes <= 0 {
		return 0, ""
	}
	var bonus float64
	var label string
	switch {
	case minutes <= 10:
		bonus, label = 0.01, "short nap"
	case minutes <= 25:
		bonus, label = 0.03, "power nap"
	case minutes <= 50:
		bonus, label = 0.04, "mid nap"
	case minutes <= 100:
		bonus, label = 0.05, "full-cycle nap"
	default:
		bonus, label = 0.04, "long nap"
	}
	return math.Min(bonus, limit), label
}

// effectiveWeights applies the personalized sleep-weight ratio and
// renormalizes so the weights still sum to one.
func (s *ReadinessScorer) effectiveWeights() map[schema.BreakdownKey]float64 {
	weights := make(map[schema.BreakdownKey]float64, len(s.cfg.Weights))
	for k, v := range s.cfg.Weights {
		weights[k] = v
	}

	defaults := schema.DefaultAdjustmentFactors()
	if defaults.SleepWeight <= 0 || s.adj.SleepWeight == defaults.SleepWeight {
		return weights
	}

	ratio := s.adj.SleepWeight / defaults.SleepWeight
	oldSleep := weights[schema.BreakdownSleep]
	newSleep := curve.Clamp(oldSleep*ratio, 0.05, 0.45)

	rest := 1 - oldSleep
	if rest > 0 {
		scale := (1 - newSleep) / rest
		for k := range weights {
			if k != schema.BreakdownSleep {
				weights[k] *= scale
			}
		}
	}
	weights[schema.BreakdownSleep] = newSleep
	return weights
}

func energyWord(v float64) string {
	switch {
	case v <= 3:
		return "very low"
	case v <= 5:
		return "low"
	case v <= 7:
		return "good"
	default:
		return "high"
	}
}

func fatigueWord(v float64) string {
	switch {
	case v <= 2:
		return "low"
	case v <= 4:
		return "normal"
	case v <= 6:
		return "moderate"
	case v <= 8:
		return "high"
	default:
		return "very high"
	}
}

func stressWord(v float64) string {
	switch {
	case v <= 2:
		return "low"
	case v <= 4:
		return "normal"
	case v <= 6:
		return "moderate"
	default:
		return "high"
	}
}

func clampOrdinal(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func parenthesize(notes []string) string {
	if len(notes) == 0 {
		return ""
	}
	return " (" + strings.Join(notes, ", ") + ")"
}
