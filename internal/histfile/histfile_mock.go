package histfile

import (
	"github.com/stretchr/testify/mock"

	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/schema"
)

// MockHistoryProvider is a mock implementation of HistoryProvider for testing.
type MockHistoryProvider struct {
	mock.Mock
}

var _ contract.HistoryProvider = &MockHistoryProvider{} // Compile-time check

// LoadDaily implements the HistoryProvider interface.
func (m *MockHistoryProvider) LoadDaily(path string) ([]schema.DailyRecord, error) {
	ret := m.Called(path)
	days, _ := ret.Get(0).([]schema.DailyRecord)
	return days, ret.Error(1)
}

// LoadSessions implements the HistoryProvider interface.
func (m *MockHistoryProvider) LoadSessions(path string) ([]schema.SessionRecord, error) {
	ret := m.Called(path)
	sessions, _ := ret.Get(0).([]schema.SessionRecord)
	return sessions, ret.Error(1)
}
