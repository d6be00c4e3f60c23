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

func TestWriteCheckTextPassed(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	result := &schema.CheckResult{
		Passed:       true,
		Date:         time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		Readiness:    72,
		Zone:         schema.NormalZone,
		MinReadiness: 60,
		FailZones:    []schema.Zone{schema.DeloadZone},
	}

	cfg := &contract.Config{
		Output:    schema.TextOut,
		Precision: 1,
		UseEmojis: true,
	}

	var buf bytes.Buffer
	err := writeCheckText(result, cfg, fmtFloat, 30*time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Readiness Gate:")
	assert.Contains(t, output, "Date:")
	assert.Contains(t, output, "2024-05-02")
	assert.Contains(t, output, "72.0 (final)")
	assert.Contains(t, output, "Min readiness:")
	assert.Contains(t, output, "60.0")
	assert.Contains(t, output, "Fail zones:")
	assert.Contains(t, output, "deload")
	assert.Contains(t, output, "✅ PASSED")
	assert.Contains(t, output, "Gate evaluated in 30ms")
}

func TestWriteCheckTextFailed(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	result := &schema.CheckResult{
		Passed:       false,
		Date:         time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		Readiness:    47,
		Zone:         schema.DeloadZone,
		MinReadiness: 60,
		FailZones:    []schema.Zone{schema.DeloadZone},
		Failures: []string{
			"readiness 47.0 below minimum 60.0",
			`zone "deload" is a fail zone`,
		},
	}

	cfg := &contract.Config{
		Output:    schema.TextOut,
		Precision: 1,
		UseEmojis: false,
	}

	var buf bytes.Buffer
	err := writeCheckText(result, cfg, fmtFloat, time.Millisecond, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "FAILED: 2 condition(s) violated")
	assert.NotContains(t, output, "❌")
	assert.Contains(t, output, "readiness 47.0 below minimum 60.0")
	assert.Contains(t, output, `zone "deload" is a fail zone`)
}

func TestFormatZoneList(t *testing.T) {
	assert.Equal(t, "none", formatZoneList(nil))
	assert.Equal(t, "deload", formatZoneList([]schema.Zone{schema.DeloadZone}))
	assert.Equal(t, "reduce, deload", formatZoneList([]schema.Zone{schema.ReduceZone, schema.DeloadZone}))
}

func TestWriteCSVResultsForCheck(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	result := &schema.CheckResult{
		Passed:       false,
		Date:         time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		Readiness:    47,
		Zone:         schema.DeloadZone,
		MinReadiness: 60,
		FailZones:    []schema.Zone{schema.DeloadZone},
		Failures:     []string{"readiness 47.0 below minimum 60.0"},
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeCSVResultsForCheck(w, result, fmtFloat)
	require.NoError(t, err)
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "passed,date,readiness,zone,min_readiness,fail_zones,failures", lines[0])
	assert.Contains(t, lines[1], "false,2024-05-02,47.0,deload,60.0,deload")
	assert.Contains(t, lines[1], "readiness 47.0 below minimum 60.0")
}
