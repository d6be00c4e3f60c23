package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/schema"
)

// TestEvaluateGate checks every gate condition against a fixed day, one
// failure entry per violated condition.
func TestEvaluateGate(t *testing.T) {
	day := schema.DayAnalysis{
		Date:     testDate(15),
		Decision: schema.DecisionResult{Final: 70, Zone: schema.NormalZone},
	}

	tests := []struct {
		name     string
		cfg      contract.Config
		passed   bool
		failures []string
	}{
		{
			name:   "above floor and outside fail zones",
			cfg:    contract.Config{MinReadiness: 65},
			passed: true,
		},
		{
			name:     "below floor",
			cfg:      contract.Config{MinReadiness: 75},
			failures: []string{"below floor"},
		},
		{
			name:     "zone in fail set",
			cfg:      contract.Config{MinReadiness: -1, FailZones: []schema.Zone{schema.NormalZone}},
			failures: []string{"fail set"},
		},
		{
			name:     "both conditions violated",
			cfg:      contract.Config{MinReadiness: 90, FailZones: []schema.Zone{schema.NormalZone, schema.DeloadZone}},
			failures: []string{"below floor", "fail set"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := evaluateGate(&tt.cfg, day)

			assert.Equal(t, tt.passed, result.Passed)
			require.Len(t, result.Failures, len(tt.failures))
			for i, substr := range tt.failures {
				assert.Contains(t, result.Failures[i], substr)
			}
			assert.Equal(t, 70.0, result.Readiness)
			assert.Equal(t, schema.NormalZone, result.Zone)
			assert.True(t, result.Date.Equal(testDate(15)))
		})
	}
}

// TestGetCheckResults gates the anchor day end to end, reading the
// final capped value rather than the raw score.
func TestGetCheckResults(t *testing.T) {
	daily, sessions := trainingHistory(10)

	t.Run("passes with a permissive gate", func(t *testing.T) {
		cfg := evalConfig(10)
		cfg.MinReadiness = -1

		result, err := GetCheckResults(cfg, mockProvider(daily, sessions))

		require.NoError(t, err)
		assert.True(t, result.Passed)
		assert.Empty(t, result.Failures)
		assert.True(t, result.Date.Equal(testDate(10)))
		assert.Greater(t, result.Readiness, 0.0)
	})

	t.Run("fails below an unreachable floor", func(t *testing.T) {
		cfg := evalConfig(10)
		cfg.MinReadiness = 99.5

		result, err := GetCheckResults(cfg, mockProvider(daily, sessions))

		require.NoError(t, err)
		assert.False(t, result.Passed)
		require.Len(t, result.Failures, 1)
		assert.Contains(t, result.Failures[0], "below floor")
		assert.Equal(t, 99.5, result.MinReadiness)
	})

	t.Run("fails when every zone is fatal", func(t *testing.T) {
		cfg := evalConfig(10)
		cfg.MinReadiness = -1
		cfg.FailZones = schema.AllZones

		result, err := GetCheckResults(cfg, mockProvider(daily, sessions))

		require.NoError(t, err)
		assert.False(t, result.Passed)
		require.Len(t, result.Failures, 1)
		assert.Contains(t, result.Failures[0], "fail set")
	})
}
