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

// WriteTrendResults outputs the readiness timeline, dispatching based on the output format configured.
func WriteTrendResults(result *schema.TrendResult, cfg *contract.Config, duration time.Duration) error {
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
			return writeCSVResultsForTrend(csvWriter, result.Points, fmtFloat)
		}, "Wrote CSV")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendTable(result.Points, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeTrendTable generates and writes the human-readable table.
func writeTrendTable(points []schema.TrendPoint, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Date", "Ready", "Final", "Zone", "Conf", "ACWR", "Volume"})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range points {
		zoneLabel := string(p.Zone)
		if cfg.UseColors {
			zoneLabel = contract.GetZoneColorLabel(p.Zone)
		}
		data = append(data, []string{
			p.Date.Format(contract.DateFormat),
			fmtFloat(p.Readiness),
			fmtFloat(p.Final),
			zoneLabel,
			string(p.Confidence),
			fmtFloatPtr(p.ACWR, fmtFloat),
			fmtFloat(p.Volume),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d trend points\n", len(points)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Store backend: %s\n", duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForTrend writes the timeline points in CSV format.
func writeCSVResultsForTrend(w *csv.Writer, points []schema.TrendPoint, fmtFloat func(float64) string) error {
	header := []string{
		"date",
		"readiness",
		"final",
		"zone",
		"confidence",
		"acwr",
		"volume",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, p := range points {
		rec := []string{
			p.Date.Format(contract.DateFormat),
			fmtFloat(p.Readiness),
			fmtFloat(p.Final),
			string(p.Zone),
			string(p.Confidence),
			fmtFloatPtr(p.ACWR, fmtFloat),
			fmtFloat(p.Volume),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
