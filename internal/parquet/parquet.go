// Package parquet provides data structures and functions for exporting recorded
// evaluation data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/redlinelab/redline/schema"
)

// EvaluationRun represents a single evaluation run with metadata.
// This struct maps to the redline_runs database table.
type EvaluationRun struct {
	// RunID is the unique identifier for this evaluation run
	RunID int64 `parquet:"run_id,snappy"`

	// RunUUID is the globally unique identifier assigned at run start
	RunUUID string `parquet:"run_uuid,snappy"`

	// StartTime is when the evaluation began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the evaluation completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the evaluation run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalDays is the number of days evaluated in this run
	TotalDays int32 `parquet:"total_days,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// DayResult represents the decision outcome for a single day in a run.
// This struct maps to the redline_day_results database table.
type DayResult struct {
	// RunID references the parent evaluation run
	RunID int64 `parquet:"run_id,snappy"`

	// Date is the training day the decision applies to
	Date time.Time `parquet:"date,snappy"`

	// RecordedAt is when this result was written (stored as TIMESTAMP with nanosecond precision)
	RecordedAt time.Time `parquet:"recorded_at,snappy"`

	// Readiness is the raw readiness score before caps
	Readiness float64 `parquet:"readiness,snappy"`

	// Final is the readiness score after caps
	Final float64 `parquet:"final_score,snappy"`

	// Confidence is the data completeness and depth score (0-1)
	Confidence float64 `parquet:"confidence,snappy"`

	// Zone is the training zone the final score landed in
	Zone string `parquet:"zone,snappy"`

	// Action is the human-readable session recommendation
	Action string `parquet:"action,snappy"`

	// ReasonCodes holds the pipe-joined decision codes, "NONE" when empty
	ReasonCodes string `parquet:"reason_codes,snappy"`

	// ACWR is the acute:chronic workload ratio (nullable)
	ACWR *float64 `parquet:"acwr,optional,snappy"`

	// PerformanceIndex is the strength trend ratio (nullable)
	PerformanceIndex *float64 `parquet:"performance_index,optional,snappy"`

	// OverloadScore aggregates per-exercise overload flag severities
	OverloadScore float64 `parquet:"overload_score,snappy"`

	// RiskScore is the injury-risk estimate (0-100)
	RiskScore float64 `parquet:"risk_score,snappy"`
}

// WriteRunsParquet writes a slice of EvaluationRun structs to a Parquet file.
func WriteRunsParquet(data []EvaluationRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the EvaluationRun struct tags
	writer := parquet.NewGenericWriter[EvaluationRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteDayResultsParquet writes a slice of DayResult structs to a Parquet file.
func WriteDayResultsParquet(data []DayResult, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the DayResult struct tags
	writer := parquet.NewGenericWriter[DayResult](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchRuns generates sample EvaluationRun data for demonstration.
func MockFetchRuns() []EvaluationRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := startTime1.Add(420 * time.Millisecond)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"variant":"curve","days":28,"workers":4}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := startTime2.Add(180 * time.Millisecond)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"variant":"linear","days":7,"workers":2}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []EvaluationRun{
		{
			RunID:         1,
			RunUUID:       "5b3f0a52-9a3c-4f2e-8a34-1d2b5a0c9e77",
			StartTime:     startTime1,
			EndTime:       &endTime1,
			RunDurationMs: &durationMs1,
			TotalDays:     28,
			ConfigParams:  &configParams1,
		},
		{
			RunID:         2,
			RunUUID:       "0c74e8d1-42bb-49ab-b6d4-7f91a3c2d8b0",
			StartTime:     startTime2,
			EndTime:       &endTime2,
			RunDurationMs: &durationMs2,
			TotalDays:     7,
			ConfigParams:  &configParams2,
		},
		{
			RunID:         3,
			RunUUID:       "9a1d6f03-57cc-4f0b-a1f9-3e84b6d0c2a5",
			StartTime:     startTime3,
			EndTime:       nil, // Still running - nullable field
			RunDurationMs: nil, // Not yet calculated - nullable field
			TotalDays:     0,
			ConfigParams:  nil, // No config stored - nullable field
		},
	}
}

// MockFetchDayResults generates sample DayResult data for demonstration.
func MockFetchDayResults() []DayResult {
	now := time.Now()
	acwr1 := 1.12
	perf1 := 1.01
	acwr2 := 1.38

	return []DayResult{
		{
			RunID:            1,
			Date:             now.AddDate(0, 0, -2),
			RecordedAt:       now.Add(-2 * time.Hour),
			Readiness:        82.0,
			Final:            82.0,
			Confidence:       0.91,
			Zone:             "push",
			Action:           "Green light. Load up on the main lifts.",
			ReasonCodes:      "NONE",
			ACWR:             &acwr1,
			PerformanceIndex: &perf1,
			OverloadScore:    0,
			RiskScore:        12.5,
		},
		{
			RunID:            1,
			Date:             now.AddDate(0, 0, -1),
			RecordedAt:       now.Add(-2 * time.Hour),
			Readiness:        61.0,
			Final:            55.0,
			Confidence:       0.88,
			Zone:             "reduce",
			Action:           "Cut volume and keep intensity moderate.",
			ReasonCodes:      "LOW_SLEEP|HIGH_ACWR",
			ACWR:             &acwr2,
			PerformanceIndex: nil, // No sessions logged - nullable field
			OverloadScore:    30,
			RiskScore:        48.0,
		},
		{
			RunID:            2,
			Date:             now.AddDate(0, 0, -1),
			RecordedAt:       now.Add(-24 * time.Hour),
			Readiness:        74.0,
			Final:            74.0,
			Confidence:       0.79,
			Zone:             "normal",
			Action:           "Train as planned.",
			ReasonCodes:      "NONE",
			ACWR:             nil, // Too little history - nullable field
			PerformanceIndex: nil,
			OverloadScore:    0,
			RiskScore:        20.0,
		},
	}
}

// ConvertRunRecords converts schema.RunRecord to EvaluationRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []EvaluationRun {
	result := make([]EvaluationRun, len(records))
	for i, record := range records {
		result[i] = EvaluationRun{
			RunID:         record.RunID,
			RunUUID:       record.RunUUID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalDays:     record.TotalDays,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertDayResultRecords converts schema.DayResultRecord to DayResult for Parquet export.
func ConvertDayResultRecords(records []schema.DayResultRecord) []DayResult {
	result := make([]DayResult, len(records))
	for i, record := range records {
		result[i] = DayResult{
			RunID:            record.RunID,
			Date:             record.Date,
			RecordedAt:       record.RecordedAt,
			Readiness:        record.Readiness,
			Final:            record.Final,
			Confidence:       record.ConfidenceScore,
			Zone:             record.Zone,
			Action:           record.Action,
			ReasonCodes:      record.ReasonCodes,
			ACWR:             record.ACWR,
			PerformanceIndex: record.PerformanceIndex,
			OverloadScore:    record.OverloadScore,
			RiskScore:        record.RiskScore,
		}
	}
	return result
}
