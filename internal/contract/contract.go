// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/redlinelab/redline/schema"
)

// HistoryProvider defines the operations for loading athlete history from disk.
// This allows the evaluation pipeline to be tested without fixture files.
type HistoryProvider interface {
	// LoadDaily reads daily wellness records from a CSV or JSON file.
	LoadDaily(path string) ([]schema.DailyRecord, error)

	// LoadSessions reads per-set session records from a CSV or JSON file.
	LoadSessions(path string) ([]schema.SessionRecord, error)
}

// StoreManager defines the interface for accessing the configured result store.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetResultStore() ResultStore
}

// ResultStore defines the interface for tracking evaluation runs and storing day results.
type ResultStore interface {
	// BeginRun creates a new evaluation run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the evaluation run with completion data
	EndRun(runID int64, endTime time.Time, totalDays int) error

	// RecordDayResult stores the decision outcome for a single day
	RecordDayResult(runID int64, day schema.DayAnalysis) error

	// GetStatus returns status information about the result store
	GetStatus() (schema.StoreStatus, error)

	// GetAllRuns returns every recorded evaluation run
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllDayResults returns every recorded day result across runs
	GetAllDayResults() ([]schema.DayResultRecord, error)

	// Ping verifies connectivity to the underlying backend
	Ping() error

	// Close closes the underlying connection
	Close() error
}
