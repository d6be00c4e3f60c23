// Package main provides a performance benchmarking tool for the Redline CLI.
// It measures execution times across different history sizes and command types,
// running each test multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - redline binary installed and available in PATH
//
// Usage: go run benchmark/main.go [data-base-dir]
//
//	data-base-dir: Directory where synthetic history datasets are generated
package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-store average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset     string
	Command     string
	NoStoreTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	DataBase    string
	Timeout     time.Duration
	Workers     int
	NoStoreRuns int
	StoreRuns   int
	Datasets    []string
	DatasetDays map[string]int
	Lookbacks   map[string]string
	TrendSpans  map[string][2]int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [data-base-dir]\n", os.Args[0])
		os.Exit(1)
	}
	dataBase := os.Args[1]

	config := BenchmarkConfig{
		DataBase:    dataBase,
		Timeout:     2 * time.Minute,
		Workers:     8,
		NoStoreRuns: 3,
		StoreRuns:   4,
		Datasets:    []string{"quarter", "half-year", "year", "three-year"},
		DatasetDays: map[string]int{
			"quarter":    90,
			"half-year":  182,
			"year":       365,
			"three-year": 1095,
		},
		Lookbacks: map[string]string{
			"quarter":    "4 weeks",
			"half-year":  "8 weeks",
			"year":       "12 weeks",
			"three-year": "26 weeks",
		},
		TrendSpans: map[string][2]int{
			"quarter":    {60, 12},
			"half-year":  {120, 24},
			"year":       {180, 30},
			"three-year": {365, 52},
		},
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	if err := generateDatasets(config); err != nil {
		fmt.Printf("Dataset generation failed: %v\n", err)
		os.Exit(1)
	}

	// Clear recorded runs using redline store clear
	fmt.Printf("Clearing store...\n")
	clearCmd := exec.Command("redline", "store", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear store: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Store cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the redline binary is available
func checkPrerequisites() error {
	if _, err := exec.LookPath("redline"); err != nil {
		return fmt.Errorf("redline binary not found in PATH")
	}
	return nil
}

// generateDatasets writes synthetic history files for each configured dataset
// size. Existing datasets are reused so repeated runs measure the same inputs.
func generateDatasets(config BenchmarkConfig) error {
	for _, dataset := range config.Datasets {
		dir := filepath.Join(config.DataBase, dataset)
		if _, err := os.Stat(filepath.Join(dir, "daily.csv")); err == nil {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create dataset dir %s: %w", dir, err)
		}
		days := config.DatasetDays[dataset]
		if err := writeHistory(dir, days); err != nil {
			return fmt.Errorf("failed to generate dataset %s: %w", dataset, err)
		}
		fmt.Printf("Generated dataset %s (%d days)\n", dataset, days)
	}
	return nil
}

// writeHistory generates a deterministic synthetic training history: one daily
// check-in per day plus per-set session rows on training days. The seed is the
// day count so each dataset size always produces the same files.
func writeHistory(dir string, days int) error {
	rng := rand.New(rand.NewSource(int64(days)))
	start := time.Now().AddDate(0, 0, -days)
	exercises := []string{"back squat", "bench press", "deadlift", "overhead press", "barbell row"}

	daily, err := os.Create(filepath.Join(dir, "daily.csv"))
	if err != nil {
		return err
	}
	defer closeFile(daily)
	sessions, err := os.Create(filepath.Join(dir, "sessions.csv"))
	if err != nil {
		return err
	}
	defer closeFile(sessions)

	dw := csv.NewWriter(daily)
	sw := csv.NewWriter(sessions)
	if err := dw.Write([]string{"date", "sleep_hours", "sleep_quality", "energy", "fatigue", "stress", "soreness", "perceived_readiness"}); err != nil {
		return err
	}
	if err := sw.Write([]string{"date", "exercise", "weight", "reps", "rir"}); err != nil {
		return err
	}

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")

		// Wellness drifts on a slow wave with per-day noise
		wave := math.Sin(float64(i) / 9.0)
		if err := dw.Write([]string{
			date,
			fmt.Sprintf("%.1f", 7.0+wave+rng.Float64()),
			strconv.Itoa(3 + rng.Intn(3)),
			strconv.Itoa(5 + rng.Intn(4)),
			strconv.Itoa(2 + rng.Intn(4)),
			strconv.Itoa(1 + rng.Intn(4)),
			strconv.Itoa(2 + rng.Intn(4)),
			strconv.Itoa(5 + rng.Intn(4)),
		}); err != nil {
			return err
		}

		// Two rest days per week
		if i%7 == 5 || i%7 == 6 {
			continue
		}
		for _, exercise := range exercises[:2+rng.Intn(3)] {
			weight := 60 + rng.Intn(80) + i/20
			sets := 3 + rng.Intn(3)
			for set := 0; set < sets; set++ {
				if err := sw.Write([]string{
					date,
					exercise,
					strconv.Itoa(weight),
					strconv.Itoa(5 + rng.Intn(4)),
					strconv.Itoa(1 + rng.Intn(3)),
				}); err != nil {
					return err
				}
			}
		}
	}

	dw.Flush()
	if err := dw.Error(); err != nil {
		return err
	}
	sw.Flush()
	return sw.Error()
}

func closeFile(f *os.File) {
	if err := f.Close(); err != nil {
		fmt.Printf("Warning: failed to close file %s: %v\n", f.Name(), err)
	}
}

// runBenchmarks executes all benchmark tests across configured datasets
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, %d workers, no-store: %d runs, store: %d runs\n",
		len(config.Datasets), config.Timeout, config.Workers, config.NoStoreRuns, config.StoreRuns)

	for _, dataset := range config.Datasets {
		fmt.Printf("Benchmarking %s\n", dataset)

		dataDir := filepath.Join(config.DataBase, dataset)

		// Decide analysis
		result := runBenchmarkSuite(config, dataset, dataDir, "decide", "decide analysis", "")
		results = append(results, result)

		// Compare analysis
		lookback, hasLookback := config.Lookbacks[dataset]
		if hasLookback {
			args := fmt.Sprintf("--lookback \"%s\"", lookback)
			desc := fmt.Sprintf("compare analysis (%s windows)", lookback)
			result = runBenchmarkSuite(config, dataset, dataDir, "compare", desc, args)
			results = append(results, result)
		}

		// Trend analysis
		span, hasSpan := config.TrendSpans[dataset]
		if hasSpan {
			args := fmt.Sprintf("--days %d --points %d", span[0], span[1])
			desc := fmt.Sprintf("trend analysis (%d days, %d points)", span[0], span[1])
			result = runBenchmarkSuite(config, dataset, dataDir, "trend", desc, args)
			results = append(results, result)
		}
	}

	return results
}

// runBenchmarkSuite runs both no-store and store benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, dataset, dataDir, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, dataset)

	// Helper to run a benchmark phase
	runPhase := func(storeBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dataDir, command, extraArgs, storeBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-store runs
	_, noStoreAvg := runPhase("none", config.NoStoreRuns, "No-store")

	// Phase 2: Store runs
	coldTime, warmAvg := runPhase("sqlite", config.StoreRuns, "Store")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-store average: %s, Cold time: %s, Warm average: %s\n", noStoreAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:     dataset,
		Command:     command,
		NoStoreTime: noStoreAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a redline command multiple times with the specified store backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, dataDir, command, extraArgs, storeBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, dataDir, "--store-backend", storeBackend, "--workers", strconv.Itoa(config.Workers)}
	if extraArgs != "" {
		args = append(args, parseArgs(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("redline", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func parseArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range argsStr {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes && current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			} else if inQuotes {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// isSuccess checks if command output indicates successful completion.
// Every evaluation command ends with the same summary line.
func isSuccess(output []byte) bool {
	outputStr := string(output)

	return strings.Contains(outputStr, "Analysis completed in") &&
		strings.Contains(outputStr, "workers") &&
		strings.Contains(outputStr, "Store backend")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/redline_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "cmd", "no_store_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoStoreTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "decide", "Decide Analysis:")
	printCommandSummary(results, "compare", "Compare Analysis:")
	printCommandSummary(results, "trend", "Trend Analysis:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: No-store: %s, Cold: %s, Warm: %s\n", result.Dataset, result.NoStoreTime, result.ColdTime, result.WarmTime)
		}
	}
}
