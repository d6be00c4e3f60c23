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

// WriteScoreResults outputs the readiness scores, dispatching based on the output format configured.
func WriteScoreResults(results []schema.ScoreResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForScores(w, results)
		}, "Wrote JSON")
		if err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVResultsForScores(csvWriter, results, fmtFloat)
		}, "Wrote CSV")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoreTable(results, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeScoreTable generates and writes the human-readable table.
func writeScoreTable(results []schema.ScoreResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Date", "Score", "Label", "Conf"}
	if cfg.Explain {
		headers = append(headers, "Base", "Bonus", "Penalty", "Top components")
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i := range results {
		r := &results[i]
		label := contract.GetPlainLabel(r.Score)
		if cfg.UseColors {
			label = contract.GetColorLabel(r.Score)
		}
		row := []string{
			r.Date.Format(contract.DateFormat),
			fmtFloat(r.Score),
			label,
			string(r.Confidence),
		}
		if cfg.Explain {
			row = append(
				row,
				fmtFloat(r.Base*100),
				fmtFloat(r.Bonus*100),
				fmtFloat(r.Penalty*100),
				formatTopComponentBreakdown(r),
			)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Explanations cover the anchor day only; older days stay compact.
	if cfg.Explain && len(results) > 0 {
		latest := results[len(results)-1]
		if len(latest.Explanations) > 0 {
			if _, err := fmt.Fprintf(writer, "Explanation for %s:\n", latest.Date.Format(contract.DateFormat)); err != nil {
				return err
			}
			for _, line := range latest.Explanations {
				if _, err := fmt.Fprintf(writer, "  - %s\n", line); err != nil {
					return err
				}
			}
		}
	}

	if _, err := fmt.Fprintf(writer, "Scored %d days (variant: %s)\n", len(results), cfg.Variant); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Store backend: %s\n", duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForScores writes the readiness scores in CSV format.
func writeCSVResultsForScores(w *csv.Writer, results []schema.ScoreResult, fmtFloat func(float64) string) error {
	header := []string{
		"date",
		"score",
		"label",
		"base",
		"bonus",
		"penalty",
		"confidence_score",
		"confidence",
		"variant",
		"top_components",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range results {
		r := &results[i]
		rec := []string{
			r.Date.Format(contract.DateFormat),
			fmtFloat(r.Score),
			contract.GetPlainLabel(r.Score),
			fmtFloat(r.Base * 100),
			fmtFloat(r.Bonus * 100),
			fmtFloat(r.Penalty * 100),
			fmtFloat(r.ConfidenceScore),
			string(r.Confidence),
			string(r.Variant),
			formatTopComponentBreakdown(r),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForScores writes the readiness scores in JSON format.
func writeJSONResultsForScores(w io.Writer, results []schema.ScoreResult) error {
	type JSONScoreResult struct {
		Label string `json:"label"`
		schema.ScoreResult
	}

	output := make([]JSONScoreResult, len(results))
	for i, r := range results {
		output[i] = JSONScoreResult{
			Label:       contract.GetPlainLabel(r.Score),
			ScoreResult: r,
		}
	}
	return writeJSON(w, output)
}
