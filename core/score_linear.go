package core

import (
	"github.com/redlinelab/redline/core/curve"
	"github.com/redlinelab/redline/schema"
)

// anchor is one knot of a piecewise-linear shape.
type anchor struct {
	in  float64
	out float64
}

// interpolate evaluates a piecewise-linear shape at v. Inputs outside
// the anchor range clamp to the nearest endpoint.
func interpolate(anchors []anchor, v float64) float64 {
	if v <= anchors[0].in {
		return anchors[0].out
	}
	last := anchors[len(anchors)-1]
	if v >= last.in {
		return last.out
	}
	for i := 1; i < len(anchors); i++ {
		if v <= anchors[i].in {
			prev := anchors[i-1]
			t := (v - prev.in) / (anchors[i].in - prev.in)
			return curve.Lerp(prev.out, anchors[i].out, t)
		}
	}
	return last.out
}

// Anchor tables sampled from the curve shapes. Mid-range inputs land
// within a few points of the curve variant; only the tails diverge.
var (
	linearSleepAnchors = []anchor{
		{-0.2, 0}, {0.5, 0.85}, {1.0, 0.97}, {1.3, 1.0},
	}
	linearEnergyAnchors = []anchor{
		{0, 0}, {0.3, 0.65}, {0.5, 0.83}, {0.8, 0.96}, {1.0, 1.0},
	}
	linearFatigueAnchors = []anchor{
		{0, 0.97}, {0.2, 0.92}, {0.5, 0.65}, {0.8, 0.25}, {1.0, 0.08},
	}
	linearStressAnchors = []anchor{
		{0, 0.97}, {0.5, 0.70}, {0.8, 0.30}, {1.0, 0.13},
	}
	linearSorenessAnchors = []anchor{
		{0, 0.98}, {0.5, 0.83}, {1.0, 0.47},
	}
	linearMotivationAnchors = []anchor{
		{0, 0}, {0.3, 0.68}, {0.5, 0.85}, {1.0, 0.98},
	}
)

// linearNormalizer is the transparent fallback strategy: every shape is
// a handful of straight segments an athlete can audit by hand.
type linearNormalizer struct{}

func (linearNormalizer) name() schema.ScorerVariant { return schema.LinearVariant }

func (linearNormalizer) sleepHours(n float64) float64 {
	return interpolate(linearSleepAnchors, n)
}

func (linearNormalizer) sleepQuality(v float64) float64 {
	return curve.Clamp01(v)
}

func (linearNormalizer) energy(v float64) float64 {
	return interpolate(linearEnergyAnchors, v)
}

func (linearNormalizer) fatigue(v float64) float64 {
	return interpolate(linearFatigueAnchors, v)
}

func (linearNormalizer) stress(v float64) float64 {
	return interpolate(linearStressAnchors, v)
}

func (linearNormalizer) soreness(v float64) float64 {
	return interpolate(linearSorenessAnchors, v)
}

func (linearNormalizer) perceived(v float64) float64 {
	return curve.Clamp01((v - 0.1) / 0.8)
}

func (linearNormalizer) motivation(v float64) float64 {
	return interpolate(linearMotivationAnchors, v)
}
