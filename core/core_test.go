package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/redlinelab/redline/internal/histfile"
	"github.com/redlinelab/redline/internal/iostore"
	"github.com/redlinelab/redline/schema"
)

func mockProvider(daily []schema.DailyRecord, sessions []schema.SessionRecord) *histfile.MockHistoryProvider {
	provider := &histfile.MockHistoryProvider{}
	provider.On("LoadDaily", "daily.csv").Return(daily, nil)
	provider.On("LoadSessions", "sessions.csv").Return(sessions, nil)
	return provider
}

// TestGetDecideResults runs the full pipeline end to end through the
// provider and records the run in the result store.
func TestGetDecideResults(t *testing.T) {
	daily, sessions := trainingHistory(10)
	provider := mockProvider(daily, sessions)

	mockMgr := &iostore.MockStoreManager{}
	mockStore := &iostore.MockResultStore{}
	mockMgr.On("GetResultStore").Return(mockStore)
	mockStore.On("BeginRun", mock.AnythingOfType("time.Time"), mock.AnythingOfType("map[string]interface {}")).Return(int64(3), nil)
	mockStore.On("RecordDayResult", int64(3), mock.AnythingOfType("schema.DayAnalysis")).Return(nil)
	mockStore.On("EndRun", int64(3), mock.AnythingOfType("time.Time"), 3).Return(nil)

	results, err := GetDecideResults(evalConfig(3), provider, mockMgr)

	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, day := range results {
		assert.True(t, day.Date.Equal(testDate(8+i)))
		assert.NotEmpty(t, day.Decision.Action)
	}
	provider.AssertExpectations(t)
	mockMgr.AssertExpectations(t)
	mockStore.AssertExpectations(t)
	mockStore.AssertNumberOfCalls(t, "RecordDayResult", 3)
}

// TestGetDecideResultsLoadFailure surfaces a provider failure instead
// of touching the store.
func TestGetDecideResultsLoadFailure(t *testing.T) {
	provider := &histfile.MockHistoryProvider{}
	provider.On("LoadDaily", "daily.csv").Return(nil, assert.AnError)

	results, err := GetDecideResults(evalConfig(3), provider, nil)

	require.Error(t, err)
	assert.Nil(t, results)
	assert.Contains(t, err.Error(), "load daily history")
	provider.AssertExpectations(t)
}

// TestGetScoreResults scores the trailing range without decisions.
func TestGetScoreResults(t *testing.T) {
	daily, sessions := trainingHistory(10)
	provider := mockProvider(daily, sessions)

	results, err := GetScoreResults(evalConfig(5), provider)

	require.NoError(t, err)
	require.Len(t, results, 5)
	for i, res := range results {
		assert.True(t, res.Date.Equal(testDate(6+i)))
		assert.Greater(t, res.Score, 0.0)
		assert.Greater(t, res.ConfidenceScore, 0.0)
		assert.NotEmpty(t, res.Confidence)
	}
	provider.AssertExpectations(t)
}

// TestGetFlagsResults ranks the flattened flags and trims them to the
// result limit while keeping every per-exercise assessment.
func TestGetFlagsResults(t *testing.T) {
	daily, _ := trainingHistory(10)
	var sessions []schema.SessionRecord
	for day := 1; day <= 6; day++ {
		sessions = append(sessions, liftSession(day, "squat", 140, 5, 1))
		sessions = append(sessions, liftSession(day, "bench", 100, 5, 0))
	}

	t.Run("unlimited", func(t *testing.T) {
		out, err := GetFlagsResults(evalConfig(10), mockProvider(daily, sessions))

		require.NoError(t, err)
		require.Len(t, out.Flags, 2)
		assert.Len(t, out.Exercises, 2)
		assert.True(t, out.Flagged())
		assert.Greater(t, out.Score, 0.0)
		assert.GreaterOrEqual(t, out.Flags[0].Severity, out.Flags[1].Severity)
	})

	t.Run("trimmed to limit", func(t *testing.T) {
		cfg := evalConfig(10)
		cfg.ResultLimit = 1

		out, err := GetFlagsResults(cfg, mockProvider(daily, sessions))

		require.NoError(t, err)
		require.Len(t, out.Flags, 1)
		assert.Len(t, out.Exercises, 2)
	})
}

// TestGetProfileResults returns the minimal profile with an explanatory
// insight when the log is too thin to personalize.
func TestGetProfileResults(t *testing.T) {
	daily, sessions := trainingHistory(5)
	provider := mockProvider(daily, sessions)

	profile, err := GetProfileResults(evalConfig(5), provider)

	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, schema.UnclassifiedAthlete, profile.Primary)
	assert.Equal(t, schema.DefaultAdjustmentFactors(), profile.Adjustments)
	require.NotEmpty(t, profile.Insights)
	assert.Contains(t, profile.Insights[0], "insufficient data")
	assert.NotEmpty(t, profile.FatigueType)
}

// TestGetMetricsResults returns the trailing load series plus exercise
// trends trimmed to the result limit.
func TestGetMetricsResults(t *testing.T) {
	daily, sessions := trainingHistory(10)
	for i := 1; i <= 10; i++ {
		sessions = append(sessions, liftSession(i, "bench", 60, 8, 3))
	}

	t.Run("trailing range", func(t *testing.T) {
		out, err := GetMetricsResults(evalConfig(4), mockProvider(daily, sessions))

		require.NoError(t, err)
		require.Len(t, out.Days, 4)
		assert.True(t, out.Days[0].Date.Equal(testDate(7)))
		assert.Greater(t, out.Days[0].DailyVolume, 0.0)
		assert.Len(t, out.Exercises, 2)
	})

	t.Run("exercise limit", func(t *testing.T) {
		cfg := evalConfig(4)
		cfg.ResultLimit = 1

		out, err := GetMetricsResults(cfg, mockProvider(daily, sessions))

		require.NoError(t, err)
		assert.Len(t, out.Exercises, 1)
	})
}

// TestGetTrendResults reduces each evaluated day to a timeline point
// and keeps only the most recent points when a count is set.
func TestGetTrendResults(t *testing.T) {
	daily, sessions := trainingHistory(10)
	cfg := evalConfig(6)
	cfg.TrendPoints = 3

	trend, err := GetTrendResults(cfg, mockProvider(daily, sessions))

	require.NoError(t, err)
	require.Len(t, trend.Points, 3)
	for i, point := range trend.Points {
		assert.True(t, point.Date.Equal(testDate(8+i)))
		assert.Greater(t, point.Readiness, 0.0)
		assert.InDelta(t, point.Readiness, point.Final, 1e-9)
		assert.Contains(t, schema.AllZones, point.Zone)
		assert.NotEmpty(t, point.Confidence)
		assert.Greater(t, point.Volume, 0.0)
	}
}
