package iostore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redlinelab/redline/schema"
)

// TestExecuteStoreExportValidation covers the guard conditions before any
// files are written.
func TestExecuteStoreExportValidation(t *testing.T) {
	t.Run("missing output file", func(t *testing.T) {
		err := ExecuteStoreExport("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--output-file is required")
	})

	t.Run("uninitialized store", func(t *testing.T) {
		Manager.Lock()
		prev := Manager.results
		Manager.results = nil
		Manager.Unlock()
		defer func() {
			Manager.Lock()
			Manager.results = prev
			Manager.Unlock()
		}()

		err := ExecuteStoreExport(filepath.Join(t.TempDir(), "export"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "result store is not initialized")
	})

	t.Run("no recorded runs", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "results.db")
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test
		require.NoError(t, InitStore(schema.SQLiteBackend, dbPath))
		defer CloseStore()

		err := ExecuteStoreExport(filepath.Join(t.TempDir(), "export"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no recorded runs found to export")
	})
}

// TestExecuteStoreExport writes both parquet files from a populated store.
func TestExecuteStoreExport(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "results.db")
	initOnce = sync.Once{}  // Reset for test
	closeOnce = sync.Once{} // Reset for test
	require.NoError(t, InitStore(schema.SQLiteBackend, dbPath))
	defer CloseStore()

	store := Manager.GetResultStore()
	require.NotNil(t, store)

	start := time.Now()
	runID, err := store.BeginRun(start, map[string]any{"days": 1})
	require.NoError(t, err)
	require.NoError(t, store.RecordDayResult(runID, sampleDay(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, store.EndRun(runID, start.Add(time.Second), 1))

	outputBase := filepath.Join(t.TempDir(), "export")
	require.NoError(t, ExecuteStoreExport(outputBase))

	runsInfo, err := os.Stat(outputBase + ".runs.parquet")
	require.NoError(t, err)
	assert.Greater(t, runsInfo.Size(), int64(0))

	daysInfo, err := os.Stat(outputBase + ".day_results.parquet")
	require.NoError(t, err)
	assert.Greater(t, daysInfo.Size(), int64(0))
}
