package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/schema"
)

// WriteCheckResults outputs the gate verdict, dispatching based on the output format configured.
// The text form is concise on purpose so CI logs stay readable.
func WriteCheckResults(result *schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
		if err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVResultsForCheck(csvWriter, result, fmtFloat)
		}, "Wrote CSV")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckText(result, cfg, fmtFloat, duration, w)
		}, "Wrote text")
	}
	return nil
}

// writeCheckText prints the gate verdict in a concise format suitable for CI.
func writeCheckText(result *schema.CheckResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Readiness Gate:"); err != nil {
		return err
	}

	// Define labels and values for dynamic padding
	labels := []string{"Date:", "Readiness:", "Zone:", "Min readiness:", "Fail zones:"}
	values := []any{
		result.Date.Format(contract.DateFormat),
		fmtFloat(result.Readiness) + " (final)",
		result.Zone,
		fmtFloat(result.MinReadiness),
		formatZoneList(result.FailZones),
	}

	maxLabelLen := 0
	for _, label := range labels {
		if len(label) > maxLabelLen {
			maxLabelLen = len(label)
		}
	}
	for i, label := range labels {
		if _, err := fmt.Fprintf(w, "  %-*s %v\n", maxLabelLen+1, label, values[i]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	if result.Passed {
		line := "PASSED"
		if cfg.UseEmojis {
			line = "✅ " + line
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	} else {
		line := fmt.Sprintf("FAILED: %d condition(s) violated", len(result.Failures))
		if cfg.UseEmojis {
			line = "❌ " + line
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		for _, failure := range result.Failures {
			if _, err := fmt.Fprintf(w, "  - %s\n", failure); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(w, "Gate evaluated in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// formatZoneList joins zones for display, "none" when the list is empty.
func formatZoneList(zones []schema.Zone) string {
	if len(zones) == 0 {
		return "none"
	}
	parts := make([]string, len(zones))
	for i, z := range zones {
		parts[i] = string(z)
	}
	return strings.Join(parts, ", ")
}

// writeCSVResultsForCheck writes the gate verdict as a single CSV record.
func writeCSVResultsForCheck(w *csv.Writer, result *schema.CheckResult, fmtFloat func(float64) string) error {
	header := []string{
		"passed",
		"date",
		"readiness",
		"zone",
		"min_readiness",
		"fail_zones",
		"failures",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	rec := []string{
		fmt.Sprintf("%t", result.Passed),
		result.Date.Format(contract.DateFormat),
		fmtFloat(result.Readiness),
		string(result.Zone),
		fmtFloat(result.MinReadiness),
		formatZoneList(result.FailZones),
		strings.Join(result.Failures, "; "),
	}
	return w.Write(rec)
}
