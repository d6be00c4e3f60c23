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

// WriteDecideResults outputs the decision results, dispatching based on the output format configured.
func WriteDecideResults(days []schema.DayAnalysis, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeDecideJSONResults(days, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeDecideCSVResults(days, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDecideTable(days, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeDecideJSONResults handles opening the file and calling the JSON writer.
func writeDecideJSONResults(days []schema.DayAnalysis, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForDays(w, days)
	}, "Wrote JSON")
}

// writeDecideCSVResults handles opening the file and calling the CSV writer.
func writeDecideCSVResults(days []schema.DayAnalysis, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForDays(csvWriter, days, fmtFloat)
	}, "Wrote CSV")
}

// writeDecideTable generates and writes the human-readable table.
func writeDecideTable(days []schema.DayAnalysis, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Date", "Ready", "Final", "Zone", "Status", "Action", "Reasons"}
	if cfg.Detail {
		headers = append(headers, "ACWR", "Volume", "Risk", "Fatigue", "Pctl")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for _, day := range days {
		zoneLabel := string(day.Decision.Zone)
		statusLabel := string(day.Decision.Status)
		riskLabel := string(day.Risk.Band)
		if cfg.UseColors {
			zoneLabel = contract.GetZoneColorLabel(day.Decision.Zone)
			statusLabel = contract.GetStatusColorLabel(day.Decision.Status)
			riskLabel = contract.GetRiskColorLabel(day.Risk.Band)
		}

		// Prepare the row data as a slice of strings
		row := []string{
			day.Date.Format(contract.DateFormat),
			fmtFloat(day.Score.Score),
			fmtFloat(day.Decision.Final),
			zoneLabel,
			statusLabel,
			contract.TruncateText(day.Decision.Action, getMaxTableTextWidth(cfg)),
			schema.FormatReasonCodes(day.Decision.ReasonCodes),
		}
		if cfg.Detail {
			row = append(
				row,
				fmtFloatPtr(day.Metrics.ACWR, fmtFloat),
				fmtFloat(day.Metrics.DailyVolume),
				riskLabel,
				string(day.FatigueType),
				fmtFloat(day.Percentile),
			)
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// 5. Constraints for the anchor day, when any apply
	if len(days) > 0 {
		if err := writeDayConstraints(writer, days[len(days)-1]); err != nil {
			return err
		}
	}

	// Compute summary stats
	zoneCounts := map[schema.Zone]int{}
	capped := 0
	for _, day := range days {
		zoneCounts[day.Decision.Zone]++
		if day.Decision.Capped() {
			capped++
		}
	}
	if _, err := fmt.Fprintf(writer, "Showing %d days (push: %d, normal: %d, reduce: %d, deload: %d, capped: %d)\n",
		len(days), zoneCounts[schema.PushZone], zoneCounts[schema.NormalZone],
		zoneCounts[schema.ReduceZone], zoneCounts[schema.DeloadZone], capped); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Store backend: %s\n", duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeDayConstraints prints the per-lift guard rails for one day.
func writeDayConstraints(w io.Writer, day schema.DayAnalysis) error {
	if len(day.Decision.Constraints) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Constraints for %s:\n", day.Date.Format(contract.DateFormat)); err != nil {
		return err
	}
	for _, c := range day.Decision.Constraints {
		for _, text := range c.Constraints {
			if _, err := fmt.Fprintf(w, "  - %s: %s (%s)\n", c.Exercise, text, c.Why); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeCSVResultsForDays writes the decision results in CSV format.
func writeCSVResultsForDays(w *csv.Writer, days []schema.DayAnalysis, fmtFloat func(float64) string) error {
	// CSV header
	header := []string{
		"date",
		"readiness",
		"final",
		"zone",
		"status",
		"action",
		"reason_codes",
		"objective_score",
		"acwr",
		"volume",
		"overload_score",
		"risk_score",
		"risk_band",
		"fatigue_type",
		"percentile",
		"confidence",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, day := range days {
		rec := []string{
			day.Date.Format(contract.DateFormat),
			fmtFloat(day.Score.Score),
			fmtFloat(day.Decision.Final),
			string(day.Decision.Zone),
			string(day.Decision.Status),
			day.Decision.Action,
			schema.FormatReasonCodes(day.Decision.ReasonCodes),
			fmtFloatPtr(day.Decision.ObjectiveScore, fmtFloat),
			fmtFloatPtr(day.Metrics.ACWR, fmtFloat),
			fmtFloat(day.Metrics.DailyVolume),
			fmtFloat(day.Overload.Score),
			fmtFloat(day.Risk.Score),
			string(day.Risk.Band),
			string(day.FatigueType),
			fmtFloat(day.Percentile),
			string(day.Score.Confidence),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForDays writes the decision results in JSON format.
func writeJSONResultsForDays(w io.Writer, days []schema.DayAnalysis) error {
	// 1. Prepare the data structure for JSON with the zone label added
	type JSONDayResult struct {
		Label string `json:"label"`
		schema.DayAnalysis
	}

	output := make([]JSONDayResult, len(days))
	for i, day := range days {
		output[i] = JSONDayResult{
			Label:       contract.GetPlainLabel(day.Decision.Final),
			DayAnalysis: day,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
