package histfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHistoryFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// TestLoadDailyCSV reads a check-in file with alias columns, float-
// formatted integers, and blank cells left unset.
func TestLoadDailyCSV(t *testing.T) {
	path := writeHistoryFile(t, "daily.csv", strings.Join([]string{
		"date,sleep_hours,sleep_quality,energy,fatigue,perceived_readiness,pain_flag,pain_location,nap_minutes,acwr_7_28",
		"2025-06-01,7.5,4.0,8,3,7,1,knee,30,1.05",
		"2025-06-02,6.25,3,,,,0,,,",
	}, "\n"))

	days, err := NewFileProvider().LoadDaily(path)

	require.NoError(t, err)
	require.Len(t, days, 2)

	first := days[0]
	assert.True(t, first.Date.Equal(day(2025, 6, 1)))
	require.NotNil(t, first.SleepHours)
	assert.Equal(t, 7.5, *first.SleepHours)
	require.NotNil(t, first.SleepQuality)
	assert.Equal(t, 4, *first.SleepQuality)
	require.NotNil(t, first.Energy)
	assert.Equal(t, 8, *first.Energy)
	require.NotNil(t, first.Perceived)
	assert.Equal(t, 7, *first.Perceived)
	assert.True(t, first.PainFlag)
	assert.Equal(t, "knee", first.PainZone)
	require.NotNil(t, first.NapMinutes)
	assert.Equal(t, 30, *first.NapMinutes)
	require.NotNil(t, first.ACWR)
	assert.Equal(t, 1.05, *first.ACWR)

	second := days[1]
	assert.True(t, second.Date.Equal(day(2025, 6, 2)))
	require.NotNil(t, second.SleepHours)
	assert.Equal(t, 6.25, *second.SleepHours)
	assert.Nil(t, second.Energy)
	assert.Nil(t, second.Fatigue)
	assert.False(t, second.PainFlag)
	assert.Empty(t, second.PainZone)
	assert.Nil(t, second.ACWR)
}

// TestLoadDailyHeaderVariants binds columns case-insensitively and
// skips a UTF-8 byte order mark.
func TestLoadDailyHeaderVariants(t *testing.T) {
	path := writeHistoryFile(t, "daily.csv", "\ufeffDATE,Sleep_Hours\n2025-06-01,8\n")

	days, err := NewFileProvider().LoadDaily(path)

	require.NoError(t, err)
	require.Len(t, days, 1)
	require.NotNil(t, days[0].SleepHours)
	assert.Equal(t, 8.0, *days[0].SleepHours)
}

// TestLoadDailyJSON decodes the JSON alternative keyed on extension.
func TestLoadDailyJSON(t *testing.T) {
	path := writeHistoryFile(t, "daily.json",
		`[{"date":"2025-06-01T00:00:00Z","sleep_hours":7,"energy":8}]`)

	days, err := NewFileProvider().LoadDaily(path)

	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.True(t, days[0].Date.Equal(day(2025, 6, 1)))
	require.NotNil(t, days[0].SleepHours)
	assert.Equal(t, 7.0, *days[0].SleepHours)
	require.NotNil(t, days[0].Energy)
	assert.Equal(t, 8, *days[0].Energy)
}

// TestLoadDailyMissingFile errors, since there is nothing to score
// without check-ins.
func TestLoadDailyMissingFile(t *testing.T) {
	_, err := NewFileProvider().LoadDaily(filepath.Join(t.TempDir(), "absent.csv"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open daily history")
}

// TestLoadSessionsCSV reads a raw training log, mapping the weight
// column onto load and ignoring columns the engine has no use for.
func TestLoadSessionsCSV(t *testing.T) {
	path := writeHistoryFile(t, "sessions.csv", strings.Join([]string{
		"date,exercise,sets,reps,weight,rpe,rir",
		"2025-06-01,Sentadilla,4,5,140,8.5,1.5",
		"2025-06-01,Press Banca,3,8,80,,2",
		"2025-06-02,Remo,3,10,70,7,",
	}, "\n"))

	sessions, err := NewFileProvider().LoadSessions(path)

	require.NoError(t, err)
	require.Len(t, sessions, 3)

	first := sessions[0]
	assert.True(t, first.Date.Equal(day(2025, 6, 1)))
	assert.Equal(t, "Sentadilla", first.Exercise)
	assert.Equal(t, 140.0, first.Load)
	assert.Equal(t, 5, first.Reps)
	require.NotNil(t, first.RIR)
	assert.Equal(t, 1.5, *first.RIR)
	require.NotNil(t, first.RPE)
	assert.Equal(t, 8.5, *first.RPE)
	assert.Zero(t, first.E1RM)

	assert.Nil(t, sessions[1].RPE)
	assert.Nil(t, sessions[2].RIR)
	require.NotNil(t, sessions[2].RPE)
	assert.Equal(t, 7.0, *sessions[2].RPE)
}

// TestLoadSessionsMissingFile returns an empty slice: subjective-only
// logs are valid input.
func TestLoadSessionsMissingFile(t *testing.T) {
	sessions, err := NewFileProvider().LoadSessions(filepath.Join(t.TempDir(), "absent.csv"))

	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

// TestLoadSessionsJSON decodes the JSON alternative.
func TestLoadSessionsJSON(t *testing.T) {
	path := writeHistoryFile(t, "sessions.json",
		`[{"date":"2025-06-01T00:00:00Z","exercise":"squat","load":100,"reps":5}]`)

	sessions, err := NewFileProvider().LoadSessions(path)

	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "squat", sessions[0].Exercise)
	assert.Equal(t, 100.0, sessions[0].Load)
}

// TestParseDailyCSVErrors reports the failing row and column for every
// malformed input shape.
func TestParseDailyCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr []string
	}{
		{
			name:    "empty file",
			content: "",
			wantErr: []string{"empty file"},
		},
		{
			name:    "missing date column",
			content: "sleep_hours\n7.5\n",
			wantErr: []string{"missing required column", "date"},
		},
		{
			name:    "unparsable date",
			content: "date\n2025-06-01\nnot-a-date\n",
			wantErr: []string{"row 3", "unparsable date"},
		},
		{
			name:    "unparsable number",
			content: "date,sleep_hours\n2025-06-01,abc\n",
			wantErr: []string{"row 2", "column sleep_hours"},
		},
		{
			name:    "unparsable flag",
			content: "date,alcohol_flag\n2025-06-01,maybe\n",
			wantErr: []string{"row 2", "invalid boolean"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDailyCSV(strings.NewReader(tt.content))

			require.Error(t, err)
			for _, substr := range tt.wantErr {
				assert.Contains(t, err.Error(), substr)
			}
		})
	}
}

// TestParseDailyCSVHeaderOnly yields an empty history without error.
func TestParseDailyCSVHeaderOnly(t *testing.T) {
	days, err := ParseDailyCSV(strings.NewReader("date,sleep_hours\n"))

	require.NoError(t, err)
	assert.Empty(t, days)
}

// TestParseSessionsCSVErrors rejects a missing exercise column and a
// blank exercise cell.
func TestParseSessionsCSVErrors(t *testing.T) {
	_, err := ParseSessionsCSV(strings.NewReader("date,reps\n2025-06-01,5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required column "exercise"`)

	_, err = ParseSessionsCSV(strings.NewReader("date,exercise\n2025-06-01,\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "exercise: empty value")
}
