//go:build integration

// Package integration contains integration tests for redline.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
package integration

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildRedline builds a throwaway redline binary for this test run.
func buildRedline(t *testing.T) string {
	t.Helper()
	redlinePath := filepath.Join(t.TempDir(), "redline")
	buildCmd := exec.Command("go", "build", "-o", redlinePath, "./cmd/redline")
	buildCmd.Dir = ".." // Project root
	output, err := buildCmd.CombinedOutput()
	require.NoError(t, err, "failed to build redline: %s", output)
	return redlinePath
}

// writeVerificationHistory writes three weeks of deterministic history
// and returns the directory.
func writeVerificationHistory(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	daily := []string{"date,sleep_hours,sleep_quality,energy,fatigue,stress,soreness,perceived_readiness,motivation"}
	sessions := []string{"date,exercise,weight,reps,rir"}
	for i := 1; i <= 21; i++ {
		date := fmt.Sprintf("2025-06-%02d", i)
		daily = append(daily, fmt.Sprintf("%s,%.1f,%d,7,%d,3,2,7,7", date, 6.0+0.5*float64(i%5), 3+i%3, 2+i%4))
		if i%7 == 0 {
			continue
		}
		sessions = append(sessions, fmt.Sprintf("%s,back squat,%.1f,5,%d", date, 95.0+2.5*float64(i%5), 1+i%3))
		sessions = append(sessions, fmt.Sprintf("%s,deadlift,%.1f,3,2", date, 130.0+5.0*float64(i%3)))
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "daily.csv"), []byte(strings.Join(daily, "\n")), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sessions.csv"), []byte(strings.Join(sessions, "\n")), 0o644))
	return dir
}

// runCSV runs a redline command and parses its stdout as CSV records.
func runCSV(t *testing.T, redlinePath string, args ...string) [][]string {
	t.Helper()
	cmd := exec.Command(redlinePath, args...)
	stdout, err := cmd.Output()
	require.NoError(t, err, "command failed: %s", cmd.String())

	records, err := csv.NewReader(strings.NewReader(string(stdout))).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	return records
}

// TestDecideScoreAgreement verifies that the decide and score pipelines
// report the same readiness for every day of the same window.
func TestDecideScoreAgreement(t *testing.T) {
	redlinePath := buildRedline(t)
	dataDir := writeVerificationHistory(t)

	common := []string{dataDir, "--store-backend", "none", "--days", "14", "--output", "csv"}

	decideRecords := runCSV(t, redlinePath, append([]string{"decide"}, common...)...)
	scoreRecords := runCSV(t, redlinePath, append([]string{"score"}, common...)...)

	// Build date -> readiness maps, skipping the header rows
	decideReadiness := make(map[string]string)
	for _, rec := range decideRecords[1:] {
		decideReadiness[rec[0]] = rec[1]
	}
	scoreReadiness := make(map[string]string)
	for _, rec := range scoreRecords[1:] {
		scoreReadiness[rec[0]] = rec[1]
	}

	require.Len(t, decideReadiness, 14)
	require.Len(t, scoreReadiness, 14)

	for date, want := range scoreReadiness {
		t.Run(date, func(t *testing.T) {
			got, ok := decideReadiness[date]
			require.True(t, ok, "decide is missing %s", date)
			assert.Equal(t, want, got, "readiness mismatch for %s", date)
		})
	}
}

// TestTrendMatchesDecide verifies that the trend timeline reports the
// same readiness and final scores as the full decide pipeline.
func TestTrendMatchesDecide(t *testing.T) {
	redlinePath := buildRedline(t)
	dataDir := writeVerificationHistory(t)

	common := []string{dataDir, "--store-backend", "none", "--days", "14", "--output", "csv"}

	decideRecords := runCSV(t, redlinePath, append([]string{"decide"}, common...)...)
	trendRecords := runCSV(t, redlinePath, append([]string{"trend"}, common...)...)

	type scores struct{ readiness, final string }
	decideScores := make(map[string]scores)
	for _, rec := range decideRecords[1:] {
		decideScores[rec[0]] = scores{readiness: rec[1], final: rec[2]}
	}

	require.Len(t, trendRecords[1:], len(decideScores))

	for _, rec := range trendRecords[1:] {
		date := rec[0]
		t.Run(date, func(t *testing.T) {
			want, ok := decideScores[date]
			require.True(t, ok, "decide is missing %s", date)
			assert.Equal(t, want.readiness, rec[1], "readiness mismatch for %s", date)
			assert.Equal(t, want.final, rec[2], "final score mismatch for %s", date)
		})
	}
}
