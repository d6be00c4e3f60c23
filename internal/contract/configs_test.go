package contract

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redlinelab/redline/schema"
)

// validRawInput returns a minimal raw input that passes validation.
func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		DataDirStr:   ".",
		Days:         DefaultDays,
		Limit:        10,
		Workers:      4,
		Variant:      string(schema.CurveVariant),
		Precision:    1,
		Output:       "text",
		StoreBackend: string(schema.SQLiteBackend),
		MinReadiness: -1,
	}
}

// TestProcessAndValidate exercises the full raw-input validation pipeline.
func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{
			name:        "valid minimal config",
			mutate:      func(in *ConfigRawInput) {},
			expectError: false,
		},
		{
			name:        "invalid variant",
			mutate:      func(in *ConfigRawInput) { in.Variant = "cubic" },
			expectError: true,
		},
		{
			name:        "invalid limit (zero)",
			mutate:      func(in *ConfigRawInput) { in.Limit = 0 },
			expectError: true,
		},
		{
			name:        "invalid limit (negative)",
			mutate:      func(in *ConfigRawInput) { in.Limit = -1 },
			expectError: true,
		},
		{
			name:        "invalid limit (too large)",
			mutate:      func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
			expectError: true,
		},
		{
			name:        "invalid workers (zero)",
			mutate:      func(in *ConfigRawInput) { in.Workers = 0 },
			expectError: true,
		},
		{
			name:        "invalid precision (negative)",
			mutate:      func(in *ConfigRawInput) { in.Precision = -1 },
			expectError: true,
		},
		{
			name:        "invalid precision (too high)",
			mutate:      func(in *ConfigRawInput) { in.Precision = 4 },
			expectError: true,
		},
		{
			name:        "invalid output format",
			mutate:      func(in *ConfigRawInput) { in.Output = "yaml" },
			expectError: true,
		},
		{
			name:        "invalid days (zero)",
			mutate:      func(in *ConfigRawInput) { in.Days = 0 },
			expectError: true,
		},
		{
			name:        "invalid days (too large)",
			mutate:      func(in *ConfigRawInput) { in.Days = MaxDays + 1 },
			expectError: true,
		},
		{
			name:        "absolute date",
			mutate:      func(in *ConfigRawInput) { in.Date = "2026-03-15" },
			expectError: false,
		},
		{
			name:        "relative date",
			mutate:      func(in *ConfigRawInput) { in.Date = "3 days ago" },
			expectError: false,
		},
		{
			name:        "invalid date",
			mutate:      func(in *ConfigRawInput) { in.Date = "next tuesday" },
			expectError: true,
		},
		{
			name:        "invalid store backend",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = "oracle" },
			expectError: true,
		},
		{
			name:        "mysql backend without connection string",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = string(schema.MySQLBackend) },
			expectError: true,
		},
		{
			name: "mysql backend with connection string",
			mutate: func(in *ConfigRawInput) {
				in.StoreBackend = string(schema.MySQLBackend)
				in.StoreDBConnect = "user:pass@tcp(localhost:3306)/redline"
			},
			expectError: false,
		},
		{
			name:        "postgresql backend without connection string",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = string(schema.PostgreSQLBackend) },
			expectError: true,
		},
		{
			name:        "none backend",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = string(schema.NoneBackend) },
			expectError: false,
		},
		{
			name:        "invalid lookback",
			mutate:      func(in *ConfigRawInput) { in.Lookback = "a fortnight" },
			expectError: true,
		},
		{
			name:        "invalid trend points",
			mutate:      func(in *ConfigRawInput) { in.Points = -2 },
			expectError: true,
		},
		{
			name:        "invalid min readiness (too high)",
			mutate:      func(in *ConfigRawInput) { in.MinReadiness = 101 },
			expectError: true,
		},
		{
			name:        "invalid fail zones",
			mutate:      func(in *ConfigRawInput) { in.FailZones = "deload,danger" },
			expectError: true,
		},
		{
			name:        "invalid emoji value",
			mutate:      func(in *ConfigRawInput) { in.Emoji = "maybe" },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRawInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)

			if tt.expectError {
				assert.Error(t, err, "contract.ProcessAndValidate should return an error for %s", tt.name)
			} else {
				assert.NoError(t, err, "contract.ProcessAndValidate should not return an error for %s", tt.name)
				// Basic validation that config was populated
				assert.Equal(t, input.Limit, cfg.ResultLimit)
				assert.Equal(t, schema.ScorerVariant(input.Variant), cfg.Variant)
			}
		})
	}
}

// TestProcessAndValidateDefaults verifies the derived defaults of a minimal config.
func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()
	require.NoError(t, ProcessAndValidate(cfg, input))

	wantDir, err := filepath.Abs(".")
	require.NoError(t, err)

	assert.Equal(t, wantDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(wantDir, DefaultDailyFileName), cfg.DailyFile)
	assert.Equal(t, filepath.Join(wantDir, DefaultSessionsFileName), cfg.SessionsFile)
	assert.True(t, cfg.Date.IsZero(), "unset date should resolve later to the latest recorded day")
	assert.Equal(t, DefaultMinReadiness, cfg.MinReadiness)
	assert.Equal(t, []schema.Zone{schema.DeloadZone}, cfg.FailZones)
	assert.Equal(t, 28*24*time.Hour, cfg.Lookback)
	assert.True(t, cfg.UseEmojis)
	assert.True(t, cfg.UseColors)
}

// TestProcessAndValidateFileOverrides verifies --daily-file/--sessions-file precedence.
func TestProcessAndValidateFileOverrides(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()
	input.DailyFile = "/tmp/wellness.json"
	input.SessionsFile = "/tmp/sets.csv"
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, "/tmp/wellness.json", cfg.DailyFile)
	assert.Equal(t, "/tmp/sets.csv", cfg.SessionsFile)
}

// TestProcessAndValidateCheckGate verifies flag precedence over gate defaults.
func TestProcessAndValidateCheckGate(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()
	input.MinReadiness = 72.5
	input.FailZones = "deload, reduce"
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, 72.5, cfg.MinReadiness)
	assert.Equal(t, []schema.Zone{schema.DeloadZone, schema.ReduceZone}, cfg.FailZones)
}

// TestProcessWeightsRawInput exercises the sum-to-one validation for each group.
func TestProcessWeightsRawInput(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	t.Run("valid component weights", func(t *testing.T) {
		weights, err := ProcessWeightsRawInput(WeightsRawInput{
			Components: &ComponentWeightsRaw{
				Sleep:      f(0.40),
				State:      f(0.30),
				Perceived:  f(0.20),
				Motivation: f(0.10),
			},
		}, true)
		require.NoError(t, err)
		assert.InDelta(t, 0.40, weights[ComponentGroup][schema.BreakdownSleep], 1e-9)
	})

	t.Run("component weights not summing to one", func(t *testing.T) {
		_, err := ProcessWeightsRawInput(WeightsRawInput{
			Components: &ComponentWeightsRaw{
				Sleep: f(0.40),
				State: f(0.30),
			},
		}, true)
		assert.Error(t, err)
	})

	t.Run("partial weights allowed without sum validation", func(t *testing.T) {
		weights, err := ProcessWeightsRawInput(WeightsRawInput{
			State: &StateWeightsRaw{Energy: f(0.5)},
		}, false)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, weights[StateGroup][schema.BreakdownEnergy], 1e-9)
	})

	t.Run("empty input yields empty map", func(t *testing.T) {
		weights, err := ProcessWeightsRawInput(WeightsRawInput{}, true)
		require.NoError(t, err)
		assert.Empty(t, weights)
	})
}

// TestComputedWeightsMergeDefaults verifies overrides merge on top of defaults.
func TestComputedWeightsMergeDefaults(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	cfg := &Config{}
	input := validRawInput()
	input.Weights = WeightsRawInput{
		Objective: &ObjectiveWeightsRaw{
			Sleep:       f(0.30),
			Quality:     f(0.10),
			Performance: f(0.25),
			Trend:       f(0.10),
			ACWR:        f(0.15),
			Effort:      f(0.10),
		},
	}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.InDelta(t, 0.30, cfg.ComputedWeights[ObjectiveGroup][schema.BreakdownSleep], 1e-9)
	// Untouched groups keep their defaults.
	assert.InDelta(t, 0.32, cfg.ComputedWeights[ComponentGroup][schema.BreakdownSleep], 1e-9)
	assert.InDelta(t, 0.40, cfg.ComputedWeights[StateGroup][schema.BreakdownEnergy], 1e-9)

	ec := cfg.EngineConfig()
	assert.InDelta(t, 0.30, ec.Decision.ObjectiveWeights[schema.BreakdownSleep], 1e-9)
	assert.Equal(t, schema.CurveVariant, ec.Scorer.Variant)
}

// TestConfigClone verifies that Clone produces an independent deep copy.
func TestConfigClone(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()
	input.Exclude = "warmup*,band"
	require.NoError(t, ProcessAndValidate(cfg, input))

	clone := cfg.Clone()
	require.Equal(t, cfg.Excludes, clone.Excludes)

	clone.Excludes[0] = "mutated"
	clone.ComputedWeights[ComponentGroup][schema.BreakdownSleep] = 0.99
	clone.FailZones[0] = schema.PushZone

	assert.Equal(t, "warmup*", cfg.Excludes[0])
	assert.InDelta(t, 0.32, cfg.ComputedWeights[ComponentGroup][schema.BreakdownSleep], 1e-9)
	assert.Equal(t, schema.DeloadZone, cfg.FailZones[0])
}

// TestCloneWithDate verifies the date-swapping clone helper.
func TestCloneWithDate(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validRawInput()))

	target := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	clone := cfg.CloneWithDate(target)

	assert.Equal(t, target, clone.Date)
	assert.True(t, cfg.Date.IsZero(), "original config should be untouched")
}

// TestParseFailZones covers zone list parsing edge cases.
func TestParseFailZones(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        []schema.Zone
		expectError bool
	}{
		{name: "single zone", input: "deload", want: []schema.Zone{schema.DeloadZone}},
		{name: "multiple zones with spaces", input: " reduce , deload ", want: []schema.Zone{schema.ReduceZone, schema.DeloadZone}},
		{name: "uppercase accepted", input: "DELOAD", want: []schema.Zone{schema.DeloadZone}},
		{name: "unknown zone", input: "panic", expectError: true},
		{name: "only separators", input: ",,", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFailZones(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
