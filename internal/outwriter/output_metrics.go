package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteMetricsResults outputs the objective load metrics, dispatching based on the output format configured.
func WriteMetricsResults(output *schema.MetricsOutput, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, output)
		}, "Wrote JSON")
		if err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		// CSV carries the per-day series; exercise trends are JSON/text only.
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVResultsForMetrics(csvWriter, output.Days, fmtFloat)
		}, "Wrote CSV")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsTables(output, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeMetricsTables renders the day series and exercise trends as two tables.
func writeMetricsTables(output *schema.MetricsOutput, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if _, err := fmt.Fprintln(writer, "Daily load:"); err != nil {
		return err
	}
	if err := writeDayMetricsTable(output.Days, cfg, fmtFloat, writer); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(writer, "\nExercise trends:"); err != nil {
		return err
	}
	if err := writeExerciseTrendTable(output.Exercises, cfg, fmtFloat, writer); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Store backend: %s\n", duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeDayMetricsTable renders the per-day load series.
func writeDayMetricsTable(days []schema.LoadMetrics, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Date", "Volume", "Acute", "Chronic", "ACWR"}
	if cfg.Detail {
		headers = append(headers, "Mono", "Strain", "RIR", "Effort", "PI")
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, d := range days {
		row := []string{
			d.Date.Format(contract.DateFormat),
			fmtFloat(d.DailyVolume),
			fmtFloat(d.AcuteLoad),
			fmtFloat(d.ChronicLoad),
			fmtFloatPtr(d.ACWR, fmtFloat),
		}
		if cfg.Detail {
			row = append(
				row,
				fmtFloatPtr(d.Monotony, fmtFloat),
				fmtFloatPtr(d.Strain, fmtFloat),
				fmtFloatPtr(d.RIRWeighted, fmtFloat),
				fmtFloatPtr(d.Effort, fmtFloat),
				fmtFloatPtr(d.PerformanceIndex, fmtFloat),
			)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeExerciseTrendTable renders the per-exercise strength trends.
func writeExerciseTrendTable(exercises []schema.ExerciseTrend, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Exercise", "Sessions", "Last", "e1RM", "Best", "PI", "RIR"})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, ex := range exercises {
		data = append(data, []string{
			contract.TruncateText(ex.Exercise, getMaxTableTextWidth(cfg)),
			fmt.Sprintf("%d", ex.Sessions),
			ex.LastDate.Format(contract.DateFormat),
			fmtFloat(ex.LatestE1RM),
			fmtFloat(ex.BestE1RM),
			fmt.Sprintf("%.2f", ex.PerformanceIndex),
			fmtFloatPtr(ex.MeanRIR, fmtFloat),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVResultsForMetrics writes the per-day load series in CSV format.
func writeCSVResultsForMetrics(w *csv.Writer, days []schema.LoadMetrics, fmtFloat func(float64) string) error {
	header := []string{
		"date",
		"daily_volume",
		"acute_load",
		"chronic_load",
		"acwr",
		"performance_index",
		"performance_mean_7",
		"rir_weighted",
		"effort",
		"monotony",
		"strain",
		"fatigue_flag",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, d := range days {
		rec := []string{
			d.Date.Format(contract.DateFormat),
			fmtFloat(d.DailyVolume),
			fmtFloat(d.AcuteLoad),
			fmtFloat(d.ChronicLoad),
			fmtFloatPtr(d.ACWR, fmtFloat),
			fmtFloatPtr(d.PerformanceIndex, fmtFloat),
			fmtFloatPtr(d.PerformanceMean7, fmtFloat),
			fmtFloatPtr(d.RIRWeighted, fmtFloat),
			fmtFloatPtr(d.Effort, fmtFloat),
			fmtFloatPtr(d.Monotony, fmtFloat),
			fmtFloatPtr(d.Strain, fmtFloat),
			fmt.Sprintf("%t", d.FatigueFlag),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
