package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteFlagsResults outputs the overload assessment, dispatching based on the output format configured.
func WriteFlagsResults(assessment *schema.OverloadAssessment, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, assessment)
		}, "Wrote JSON")
		if err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVResultsForFlags(csvWriter, assessment, fmtFloat)
		}, "Wrote CSV")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFlagsTable(assessment, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeFlagsTable generates and writes the human-readable table.
func writeFlagsTable(assessment *schema.OverloadAssessment, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if !assessment.Flagged() {
		line := "No overload flags in the window."
		if cfg.UseEmojis {
			line = "✅ " + line
		}
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
		return writeFlagsSummary(assessment, cfg, fmtFloat, duration, writer)
	}

	table := tablewriter.NewWriter(writer)

	headers := []string{"#", "Exercise", "Flag", "Severity"}
	if cfg.Detail {
		headers = append(headers, "Evidence")
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, f := range assessment.Flags {
		severity := fmt.Sprintf("%.0f", f.Severity)
		if cfg.UseColors {
			severity = contract.GetSeverityColorLabel(f.Severity)
		}
		row := []string{
			fmt.Sprintf("%d", i+1),
			f.Exercise,
			string(f.Kind),
			severity,
		}
		if cfg.Detail {
			row = append(row, contract.TruncateText(formatEvidence(f.Evidence, fmtFloat), getMaxTableTextWidth(cfg)))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, f := range assessment.Flags {
		if len(f.Recommendations) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(writer, "Recommendations for %s (%s):\n", f.Exercise, f.Kind); err != nil {
			return err
		}
		for _, rec := range f.Recommendations {
			if _, err := fmt.Fprintf(writer, "  - %s\n", rec); err != nil {
				return err
			}
		}
	}

	if cfg.Detail {
		if _, err := fmt.Fprintln(writer, "Exercises assessed:"); err != nil {
			return err
		}
		for _, ex := range assessment.Exercises {
			marker := ""
			if ex.Advanced {
				marker = ", advanced thresholds"
			}
			if _, err := fmt.Fprintf(writer, "  - %s: %d sessions, %d flags%s\n", ex.Exercise, ex.Sessions, len(ex.Flags), marker); err != nil {
				return err
			}
		}
	}

	return writeFlagsSummary(assessment, cfg, fmtFloat, duration, writer)
}

// writeFlagsSummary prints the cap, cause, and run stats below the table.
func writeFlagsSummary(assessment *schema.OverloadAssessment, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	if assessment.Cap > 0 {
		line := fmt.Sprintf("Readiness capped at %s (%s)", fmtFloat(assessment.Cap), assessment.CapReason)
		if cfg.UseEmojis {
			line = "⛔ " + line
		}
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}
	if assessment.Cause != "" {
		if _, err := fmt.Fprintf(writer, "Likely driver: %s\n", strings.ReplaceAll(string(assessment.Cause), "_", " ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Flagged %d exercises with %d flags (overload score: %s)\n",
		countFlaggedExercises(assessment), len(assessment.Flags), fmtFloat(assessment.Score)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Store backend: %s\n", duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// countFlaggedExercises counts exercises with at least one active flag.
func countFlaggedExercises(assessment *schema.OverloadAssessment) int {
	count := 0
	for _, ex := range assessment.Exercises {
		if len(ex.Flags) > 0 {
			count++
		}
	}
	return count
}

// writeCSVResultsForFlags writes the overload flags in CSV format.
func writeCSVResultsForFlags(w *csv.Writer, assessment *schema.OverloadAssessment, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"exercise",
		"kind",
		"severity",
		"evidence",
		"recommendations",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, f := range assessment.Flags {
		rec := []string{
			fmt.Sprintf("%d", i+1),
			f.Exercise,
			string(f.Kind),
			fmtFloat(f.Severity),
			formatEvidence(f.Evidence, fmtFloat),
			strings.Join(f.Recommendations, "; "),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
