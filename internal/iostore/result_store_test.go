package iostore

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redlinelab/redline/schema"
)

// TestQuoteTableName covers the quoting style for every backend.
func TestQuoteTableName(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		want    string
	}{
		{
			name:    "SQLite backend",
			backend: schema.SQLiteBackend,
			want:    `"redline_runs"`,
		},
		{
			name:    "MySQL backend",
			backend: schema.MySQLBackend,
			want:    "`redline_runs`",
		},
		{
			name:    "PostgreSQL backend",
			backend: schema.PostgreSQLBackend,
			want:    `"redline_runs"`,
		},
		{
			name:    "None backend defaults to SQLite style",
			backend: schema.NoneBackend,
			want:    `"redline_runs"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, quoteTableName(runsTable, tt.backend))
		})
	}
}

// TestGetCreateRunsQuery checks the backend-specific column types for the
// runs table.
func TestGetCreateRunsQuery(t *testing.T) {
	tests := []struct {
		name         string
		backend      schema.DatabaseBackend
		wantContains []string
	}{
		{
			name:    "SQLite backend",
			backend: schema.SQLiteBackend,
			wantContains: []string{
				"CREATE TABLE IF NOT EXISTS",
				`"redline_runs"`,
				"run_id INTEGER PRIMARY KEY AUTOINCREMENT",
				"start_time TEXT NOT NULL",
				"run_duration_ms INTEGER",
			},
		},
		{
			name:    "MySQL backend",
			backend: schema.MySQLBackend,
			wantContains: []string{
				"CREATE TABLE IF NOT EXISTS",
				"`redline_runs`",
				"run_id BIGINT AUTO_INCREMENT PRIMARY KEY",
				"run_uuid VARCHAR(36) NOT NULL",
				"start_time DATETIME(6) NOT NULL",
			},
		},
		{
			name:    "PostgreSQL backend",
			backend: schema.PostgreSQLBackend,
			wantContains: []string{
				"CREATE TABLE IF NOT EXISTS",
				`"redline_runs"`,
				"run_id BIGSERIAL PRIMARY KEY",
				"start_time TIMESTAMPTZ NOT NULL",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getCreateRunsQuery(tt.backend)
			for _, want := range tt.wantContains {
				assert.Contains(t, got, want)
			}
		})
	}
}

// TestGetCreateDayResultsQuery checks the backend-specific column types for
// the day results table.
func TestGetCreateDayResultsQuery(t *testing.T) {
	tests := []struct {
		name         string
		backend      schema.DatabaseBackend
		wantContains []string
	}{
		{
			name:    "SQLite backend",
			backend: schema.SQLiteBackend,
			wantContains: []string{
				`"redline_day_results"`,
				"readiness REAL NOT NULL",
				"acwr REAL",
				"PRIMARY KEY (run_id, date)",
			},
		},
		{
			name:    "MySQL backend",
			backend: schema.MySQLBackend,
			wantContains: []string{
				"`redline_day_results`",
				"readiness DOUBLE NOT NULL",
				"zone VARCHAR(50) NOT NULL",
				"PRIMARY KEY (run_id, date)",
			},
		},
		{
			name:    "PostgreSQL backend",
			backend: schema.PostgreSQLBackend,
			wantContains: []string{
				`"redline_day_results"`,
				"readiness DOUBLE PRECISION NOT NULL",
				"date TIMESTAMPTZ NOT NULL",
				"PRIMARY KEY (run_id, date)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getCreateDayResultsQuery(tt.backend)
			for _, want := range tt.wantContains {
				assert.Contains(t, got, want)
			}
		})
	}
}

// TestFormatTime verifies SQLite gets RFC3339Nano strings while server
// backends get native time values.
func TestFormatTime(t *testing.T) {
	ts := time.Date(2025, 6, 10, 8, 30, 0, 123456789, time.UTC)

	got := formatTime(ts, schema.SQLiteBackend)
	str, ok := got.(string)
	require.True(t, ok)
	assert.Equal(t, "2025-06-10T08:30:00.123456789Z", str)

	parsed, err := time.Parse(time.RFC3339Nano, str)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts))

	for _, backend := range []schema.DatabaseBackend{schema.MySQLBackend, schema.PostgreSQLBackend} {
		got := formatTime(ts, backend)
		native, ok := got.(time.Time)
		require.True(t, ok)
		assert.True(t, native.Equal(ts))
	}
}

// TestResultStoreConcurrentRecords writes day results from multiple
// goroutines through the global manager.
func TestResultStoreConcurrentRecords(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "results.db")
	initOnce = sync.Once{}  // Reset for test
	closeOnce = sync.Once{} // Reset for test

	require.NoError(t, InitStore(schema.SQLiteBackend, dbPath))
	defer CloseStore()

	store := Manager.GetResultStore()
	require.NotNil(t, store)

	runID, err := store.BeginRun(time.Now(), map[string]any{"workers": 10})
	require.NoError(t, err)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	const numGoroutines = 10
	done := make(chan bool, numGoroutines)

	for i := range numGoroutines {
		go func(id int) {
			defer func() { done <- true }()
			s := Manager.GetResultStore()
			if s == nil {
				t.Errorf("goroutine %d: GetResultStore returned nil", id)
				return
			}
			// Distinct dates keep the (run_id, date) primary key happy
			day := sampleDay(base.AddDate(0, 0, id))
			if err := s.RecordDayResult(runID, day); err != nil {
				t.Errorf("goroutine %d: RecordDayResult failed: %v", id, err)
			}
		}(i)
	}

	for range numGoroutines {
		<-done
	}

	results, err := store.GetAllDayResults()
	require.NoError(t, err)
	assert.Len(t, results, numGoroutines)
}

// TestInitStoreInvalidConnection propagates connection failures out of the
// one-time initialization.
func TestInitStoreInvalidConnection(t *testing.T) {
	initOnce = sync.Once{}  // Reset for test
	closeOnce = sync.Once{} // Reset for test
	defer func() {
		initOnce = sync.Once{}
		closeOnce = sync.Once{}
	}()

	err := InitStore(schema.MySQLBackend, "invalid://connection")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize result store")
}
