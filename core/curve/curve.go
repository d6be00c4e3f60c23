// Package curve provides the numeric primitives behind readiness
// scoring. Every function is total: out-of-range inputs are clamped or
// tapered, never rejected, so callers can feed raw user data straight
// through.
package curve

import "math"

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to the unit interval.
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp linearly interpolates between a and b by t, with t clamped to
// the unit interval.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*Clamp01(t)
}

// Sigmoid is the logistic function centered at center. Steepness
// controls how sharply the output transitions around it.
func Sigmoid(x, center, steepness float64) float64 {
	return 1.0 / (1.0 + math.Exp(-steepness*(x-center)))
}

// Smoothstep maps x in [edge0, edge1] to [0, 1] with the cubic
// 3t^2 - 2t^3, flat at both edges.
func Smoothstep(x, edge0, edge1 float64) float64 {
	t := edgeT(x, edge0, edge1)
	return t * t * (3 - 2*t)
}

// Smootherstep maps x in [edge0, edge1] to [0, 1] with the quintic
// 6t^5 - 15t^4 + 10t^3, which is flat to the second derivative at both
// edges. Preferred over Smoothstep where scores should barely move near
// the extremes.
func Smootherstep(x, edge0, edge1 float64) float64 {
	t := edgeT(x, edge0, edge1)
	return t * t * t * (t*(t*6-15) + 10)
}

// Saturating is a diminishing-returns ramp: it rises steeply from zero
// and reaches about 90% of its asymptote at saturationPoint. Negative
// inputs return 0.
func Saturating(x, saturationPoint float64) float64 {
	if saturationPoint <= 0 {
		return Clamp01(x)
	}
	if x <= 0 {
		return 0
	}
	k := -math.Log(0.1) / saturationPoint
	return Clamp01(1.0 - math.Exp(-k*x))
}

// SoftClip limits x to (lo, hi) with a tanh squash around the midpoint
// instead of a hard cut. The midpoint maps to itself and the bounds are
// approached asymptotically, so stacked bonuses can never pin the
// result to the ceiling and a wrecked day never reads as literal zero.
func SoftClip(x, lo, hi, softness float64) float64 {
	if hi <= lo {
		return lo
	}
	if softness <= 0 {
		return Clamp(x, lo, hi)
	}
	mid := (lo + hi) / 2
	half := (hi - lo) / 2
	return mid + half*math.Tanh((x-mid)/(half+softness))
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

func edgeT(x, edge0, edge1 float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	return Clamp01((x - edge0) / (edge1 - edge0))
}
