package schema

import "time"

// RunRecord represents a row from the redline_runs table.
type RunRecord struct {
	RunID         int64
	RunUUID       string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalDays     int32
	ConfigParams  *string // JSON-encoded parameter map
}

// DayResultRecord represents a row from the redline_day_results table.
type DayResultRecord struct {
	RunID            int64
	Date             time.Time
	RecordedAt       time.Time
	Readiness        float64
	Final            float64
	ConfidenceScore  float64
	Zone             string
	Action           string
	ReasonCodes      string // Pipe-joined codes, "NONE" when empty
	ACWR             *float64
	PerformanceIndex *float64
	OverloadScore    float64
	RiskScore        float64
}
