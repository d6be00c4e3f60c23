package iostore

import (
	"errors"
	"fmt"

	"github.com/redlinelab/redline/internal/parquet"
)

// ExecuteStoreExport performs the actual export of recorded results to Parquet files.
func ExecuteStoreExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the result store
	store := Manager.GetResultStore()
	if store == nil {
		return errors.New("result store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no recorded runs found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total day records: %d\n", status.TableSizes[dayResultsTable])

	// Retrieve all runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	// Retrieve all day results
	dayResults, err := store.GetAllDayResults()
	if err != nil {
		return fmt.Errorf("failed to retrieve day results: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetDayResults := parquet.ConvertDayResultRecords(dayResults)

	// Write runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	// Write day results to Parquet
	dayResultsFile := outputFile + ".day_results.parquet"
	if err := parquet.WriteDayResultsParquet(parquetDayResults, dayResultsFile); err != nil {
		return fmt.Errorf("failed to write day results: %w", err)
	}
	fmt.Printf("Exported %d day records to: %s\n", len(parquetDayResults), dayResultsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
