// Package outwriter has output and writer logic.
package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/schema"
	"golang.org/x/term"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// fmtFloatPtr formats an optional float, rendering nil as a dash.
func fmtFloatPtr(p *float64, fmtFloat func(float64) string) string {
	if p == nil {
		return "-"
	}
	return fmtFloat(*p)
}

// componentContribution holds a key-value pair from the Breakdown map
// representing a component's contribution to the score.
type componentContribution struct {
	Name  string
	Value float64 // Contribution on the 0-1 scale
}

const (
	componentContribMinimum = 0.005
	topNComponents          = 3
)

// formatTopComponentBreakdown computes the top 3 components that contribute to the final score.
func formatTopComponentBreakdown(r *schema.ScoreResult) string {
	var components []componentContribution

	// 1. Filter and Convert Map to Slice
	for k, v := range r.Breakdown {
		// The bonus and penalty totals are reported separately in the table
		if k == schema.BreakdownBonus || k == schema.BreakdownPenalty {
			continue
		}
		// Only include meaningful components
		if math.Abs(v) >= componentContribMinimum {
			components = append(components, componentContribution{
				Name:  string(k),
				Value: v,
			})
		}
	}

	if len(components) == 0 {
		return "Not applicable"
	}

	// 2. Sort the Slice by absolute contribution in descending order.
	// Penalty-side components can carry negative contributions.
	sort.Slice(components, func(i, j int) bool {
		return math.Abs(components[i].Value) > math.Abs(components[j].Value)
	})

	// 3. Limit to Top 3 and Format the Output
	var parts []string
	limit := min(len(components), topNComponents)

	for i := range limit {
		parts = append(parts, components[i].Name)
	}

	return strings.Join(parts, " > ")
}

// formatEvidence renders an evidence map as stable "key=value" pairs.
func formatEvidence(evidence map[string]float64, fmtFloat func(float64) string) string {
	if len(evidence) == 0 {
		return ""
	}
	keys := make([]string, 0, len(evidence))
	for k := range evidence {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, fmtFloat(evidence[k])))
	}
	return strings.Join(parts, ", ")
}

// getMaxTableTextWidth calculates the maximum width for free-text columns
// (actions, recommendations) in table output based on terminal width and
// table configuration.
func getMaxTableTextWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns with table formatting
	baseWidth := 45 // Date + scores + zone/status with borders/padding

	// Add detail columns with formatting
	if cfg.Detail {
		baseWidth += 40
	}

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 10

	// Calculate available space for free text
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable text width
		return 15
	}
	if available > 70 {
		// Maximum width to prevent overly long lines
		return 70
	}
	return available
}
