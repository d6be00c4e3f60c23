package curve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSigmoid tests the logistic curve at and around its center.
func TestSigmoid(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		center   float64
		steep    float64
		expected float64
		delta    float64
	}{
		{
			name:     "at center",
			x:        0.6,
			center:   0.6,
			steep:    6.0,
			expected: 0.5,
			delta:    0.001,
		},
		{
			name:     "well below center",
			x:        0.0,
			center:   0.6,
			steep:    6.0,
			expected: 0.026,
			delta:    0.005,
		},
		{
			name:     "well above center",
			x:        1.0,
			center:   0.6,
			steep:    6.0,
			expected: 0.916,
			delta:    0.005,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Sigmoid(tt.x, tt.center, tt.steep)
			assert.LessOrEqual(t, math.Abs(result-tt.expected), tt.delta)
		})
	}
}

// TestSmootherstepEdges tests edge behavior and midpoint symmetry.
func TestSmootherstepEdges(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		expected float64
		delta    float64
	}{
		{"below lower edge", -1.0, 0.0, 0.0001},
		{"at lower edge", 0.0, 0.0, 0.0001},
		{"midpoint", 0.5, 0.5, 0.0001},
		{"at upper edge", 1.0, 1.0, 0.0001},
		{"above upper edge", 2.0, 1.0, 0.0001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Smootherstep(tt.x, 0, 1)
			assert.LessOrEqual(t, math.Abs(result-tt.expected), tt.delta)
		})
	}
}

// TestSmootherstepMonotonic verifies the curve never decreases across
// its domain.
func TestSmootherstepMonotonic(t *testing.T) {
	prev := -1.0
	for x := -0.5; x <= 1.5; x += 0.01 {
		v := Smootherstep(x, 0, 1)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

// TestSmoothstepDegenerateEdges verifies equal edges behave as a step.
func TestSmoothstepDegenerateEdges(t *testing.T) {
	assert.Equal(t, 0.0, Smoothstep(0.4, 0.5, 0.5))
	assert.Equal(t, 1.0, Smoothstep(0.6, 0.5, 0.5))
	assert.Equal(t, 1.0, Smoothstep(0.5, 0.5, 0.5))
}

// TestSaturating tests the diminishing-returns ramp.
func TestSaturating(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		satPoint float64
		expected float64
		delta    float64
	}{
		{"zero input", 0.0, 0.65, 0.0, 0.0001},
		{"negative input", -0.5, 0.65, 0.0, 0.0001},
		{"at saturation point", 0.65, 0.65, 0.9, 0.001},
		{"beyond saturation", 2.0, 0.65, 0.999, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Saturating(tt.x, tt.satPoint)
			assert.LessOrEqual(t, math.Abs(result-tt.expected), tt.delta)
		})
	}
}

// TestSoftClip verifies the midpoint is fixed, known reference values
// hold, and extreme inputs stay strictly inside the bounds.
func TestSoftClip(t *testing.T) {
	const softness = 0.02

	// The midpoint maps to itself; everything else compresses toward it.
	assert.Equal(t, 0.5, SoftClip(0.5, 0, 1, softness))
	assert.InDelta(t, 0.7602, SoftClip(0.8, 0, 1, softness), 0.001)
	assert.InDelta(t, 0.8725, SoftClip(1.0, 0, 1, softness), 0.001)
	assert.InDelta(t, 0.1275, SoftClip(0.0, 0, 1, softness), 0.001)

	// Overshoot approaches the bound without reaching it.
	high := SoftClip(1.5, 0, 1, softness)
	assert.Greater(t, high, 0.9)
	assert.Less(t, high, 1.0)

	low := SoftClip(-0.5, 0, 1, softness)
	assert.Less(t, low, 0.1)
	assert.Greater(t, low, 0.0)
}

// TestSoftClipMonotonic verifies ordering is preserved through the
// taper region.
func TestSoftClipMonotonic(t *testing.T) {
	prev := math.Inf(-1)
	for x := -0.3; x <= 1.3; x += 0.005 {
		v := SoftClip(x, 0, 1, 0.02)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

// TestSoftClipDegenerate covers zero softness and inverted bounds.
func TestSoftClipDegenerate(t *testing.T) {
	assert.Equal(t, 1.0, SoftClip(1.5, 0, 1, 0))
	assert.Equal(t, 0.0, SoftClip(-1, 0, 1, 0))
	assert.Equal(t, 0.3, SoftClip(0.9, 0.3, 0.3, 0.02))
}

// TestLerp tests linear interpolation with clamped t.
func TestLerp(t *testing.T) {
	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
	assert.Equal(t, 0.0, Lerp(0, 10, -1))
	assert.Equal(t, 10.0, Lerp(0, 10, 2))
}

// TestRoundTo tests decimal rounding.
func TestRoundTo(t *testing.T) {
	assert.Equal(t, 72.4, RoundTo(72.44999, 1))
	assert.Equal(t, 72.5, RoundTo(72.45001, 1))
	assert.Equal(t, 0.67, RoundTo(2.0/3.0, 2))
}

func BenchmarkSigmoid(b *testing.B) {
	for b.Loop() {
		Sigmoid(0.42, 0.6, 6.0)
	}
}

func BenchmarkSoftClip(b *testing.B) {
	for b.Loop() {
		SoftClip(1.07, 0, 1, 0.02)
	}
}
