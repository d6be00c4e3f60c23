package iostore

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetResultStore implements the StoreManager interface.
func (m *MockStoreManager) GetResultStore() contract.ResultStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ResultStore)
	return store
}

// MockResultStore is a mock implementation of ResultStore for testing.
type MockResultStore struct {
	mock.Mock
}

var _ contract.ResultStore = &MockResultStore{} // Compile-time check

// BeginRun implements the ResultStore interface.
func (m *MockResultStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	ret := m.Called(startTime, configParams)
	id, _ := ret.Get(0).(int64)
	return id, ret.Error(1)
}

// EndRun implements the ResultStore interface.
func (m *MockResultStore) EndRun(runID int64, endTime time.Time, totalDays int) error {
	ret := m.Called(runID, endTime, totalDays)
	return ret.Error(0)
}

// RecordDayResult implements the ResultStore interface.
func (m *MockResultStore) RecordDayResult(runID int64, day schema.DayAnalysis) error {
	ret := m.Called(runID, day)
	return ret.Error(0)
}

// GetStatus implements the ResultStore interface.
func (m *MockResultStore) GetStatus() (schema.StoreStatus, error) {
	ret := m.Called()
	status, _ := ret.Get(0).(schema.StoreStatus)
	return status, ret.Error(1)
}

// GetAllRuns implements the ResultStore interface.
func (m *MockResultStore) GetAllRuns() ([]schema.RunRecord, error) {
	ret := m.Called()
	runs, _ := ret.Get(0).([]schema.RunRecord)
	return runs, ret.Error(1)
}

// GetAllDayResults implements the ResultStore interface.
func (m *MockResultStore) GetAllDayResults() ([]schema.DayResultRecord, error) {
	ret := m.Called()
	rows, _ := ret.Get(0).([]schema.DayResultRecord)
	return rows, ret.Error(1)
}

// Ping implements the ResultStore interface.
func (m *MockResultStore) Ping() error {
	ret := m.Called()
	return ret.Error(0)
}

// Close implements the ResultStore interface.
func (m *MockResultStore) Close() error {
	ret := m.Called()
	return ret.Error(0)
}
