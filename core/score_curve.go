package core

import (
	"github.com/redlinelab/redline/core/curve"
	"github.com/redlinelab/redline/schema"
)

// curveNormalizer is the default scoring strategy. Each response maps
// through a smooth saturating shape, so the score is forgiving near an
// athlete's normal range and falls away quickly outside it.
type curveNormalizer struct {
	sleep schema.SleepCurveConfig
}

func (curveNormalizer) name() schema.ScorerVariant { return schema.CurveVariant }

// sleepHours scores a position within the personal sleep band. Under
// the midpoint the score climbs a smootherstep ramp toward the branch
// ceiling; past it the remaining headroom saturates slowly, so
// oversleeping barely moves the needle.
func (c curveNormalizer) sleepHours(n float64) float64 {
	if n < 0.5 {
		return curve.Smootherstep(n, c.sleep.BelowEdge0, c.sleep.BelowEdge1) * c.sleep.BelowScale
	}
	return curve.Clamp01(c.sleep.BelowScale + curve.Saturating((n-0.5)*2, c.sleep.AboveSat)*(1-c.sleep.BelowScale))
}

func (curveNormalizer) sleepQuality(v float64) float64 {
	return curve.Smoothstep(v, 0, 1)
}

// energy saturates early and earns a small linear boost from 7/10 up,
// letting genuinely energetic days stand out from merely fine ones.
func (curveNormalizer) energy(v float64) float64 {
	score := curve.Saturating(v, 0.65)
	if v >= 0.7 {
		score += 0.25 * (v - 0.7)
	}
	return curve.Clamp01(score)
}

// fatigue inverts a sigmoid centered at 6/10: small deviations around
// normal barely move the score, extremes move it sharply.
func (curveNormalizer) fatigue(v float64) float64 {
	return 1 - curve.Sigmoid(v, 0.60, 6.0)
}

func (curveNormalizer) stress(v float64) float64 {
	return 1 - curve.Sigmoid(v, 0.65, 5.5)
}

// soreness never drops below 0.4: plain muscle soreness is routine
// after training and should temper a day, not tank it.
func (curveNormalizer) soreness(v float64) float64 {
	return 0.4 + 0.6*(1-curve.Sigmoid(v, 0.65, 6.0))
}

func (curveNormalizer) perceived(v float64) float64 {
	return curve.Smootherstep(v, 0.1, 0.9)
}

func (curveNormalizer) motivation(v float64) float64 {
	return curve.Saturating(v, 0.6)
}
