package outwriter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAssessment() *schema.OverloadAssessment {
	flags := []schema.OverloadFlag{
		{
			Kind:     schema.FlagSustainedNearFailure,
			Exercise: "back squat",
			Severity: 30,
			Evidence: map[string]float64{
				"mean_rir": 0.8,
				"sessions": 4,
			},
			Recommendations: []string{
				"Take 2-3 days away from back squat",
				"Return at 85% of your last top set",
			},
		},
		{
			Kind:     schema.FlagFixedLoadDrift,
			Exercise: "bench press",
			Severity: 15,
			Evidence: map[string]float64{
				"rir_slope": -0.45,
			},
		},
	}
	return &schema.OverloadAssessment{
		Exercises: []schema.ExerciseAssessment{
			{Exercise: "back squat", Sessions: 6, Advanced: true, Flags: flags[:1]},
			{Exercise: "bench press", Sessions: 5, Flags: flags[1:]},
			{Exercise: "deadlift", Sessions: 3},
		},
		Flags:     flags,
		Score:     45,
		Cap:       40,
		CapReason: "multiple overload flags active",
		Cause:     schema.NeuralDriven,
	}
}

func TestWriteFlagsTable(t *testing.T) {
	fmtFloat, _ := createFormatters(1)

	cfg := &contract.Config{
		Output:       schema.TextOut,
		Precision:    1,
		Detail:       true,
		UseColors:    false,
		UseEmojis:    false,
		Width:        160,
		Workers:      2,
		StoreBackend: schema.SQLiteBackend,
	}

	var buf bytes.Buffer
	err := writeFlagsTable(sampleAssessment(), cfg, fmtFloat, 60*time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "back squat")
	assert.Contains(t, output, "SUSTAINED_NEAR_FAILURE")
	assert.Contains(t, output, "FIXED_LOAD_DRIFT")
	assert.Contains(t, output, "mean_rir=0.8, sessions=4.0")

	// Recommendations listed below the table
	assert.Contains(t, output, "Recommendations for back squat (SUSTAINED_NEAR_FAILURE):")
	assert.Contains(t, output, "Take 2-3 days away from back squat")

	// Detail lists every assessed exercise, flagged or not
	assert.Contains(t, output, "back squat: 6 sessions, 1 flags, advanced thresholds")
	assert.Contains(t, output, "deadlift: 3 sessions, 0 flags")

	// Cap and cause, plain because emojis are off
	assert.Contains(t, output, "Readiness capped at 40.0 (multiple overload flags active)")
	assert.NotContains(t, output, "⛔")
	assert.Contains(t, output, "Likely driver: neural driven")

	assert.Contains(t, output, "Flagged 2 exercises with 2 flags (overload score: 45.0)")
	assert.Contains(t, output, "Analysis completed in 60ms with 2 workers. Store backend: sqlite")
}

func TestWriteFlagsTableClean(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	assessment := &schema.OverloadAssessment{
		Exercises: []schema.ExerciseAssessment{
			{Exercise: "back squat", Sessions: 6},
		},
	}

	cfg := &contract.Config{
		Output:       schema.TextOut,
		Precision:    1,
		UseEmojis:    true,
		Workers:      1,
		StoreBackend: schema.NoneBackend,
	}

	var buf bytes.Buffer
	err := writeFlagsTable(assessment, cfg, fmtFloat, time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "✅ No overload flags in the window.")
	assert.Contains(t, output, "Flagged 0 exercises with 0 flags (overload score: 0.0)")
	assert.NotContains(t, output, "Readiness capped")
}

func TestWriteCSVResultsForFlags(t *testing.T) {
	fmtFloat, _ := createFormatters(1)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeCSVResultsForFlags(w, sampleAssessment(), fmtFloat)
	require.NoError(t, err)
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "rank")
	assert.Contains(t, lines[0], "recommendations")
	assert.Contains(t, lines[1], "back squat")
	assert.Contains(t, lines[1], "30.0")
	assert.Contains(t, lines[1], "Take 2-3 days away from back squat; Return at 85% of your last top set")
	assert.Contains(t, lines[2], "bench press")
}
