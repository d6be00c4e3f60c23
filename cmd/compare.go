package cmd

import (
	"time"

	"github.com/redlinelab/redline/core"
	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/internal/histfile"
	"github.com/redlinelab/redline/internal/outwriter"
	"github.com/spf13/cobra"
)

// compareCmd compares the current trailing window against the previous one.
var compareCmd = &cobra.Command{
	Use:   "compare [data-dir]",
	Short: "Compare the current training window against the previous one.",
	Long: `Compare two adjacent trailing windows of your history and show how
readiness and load have shifted.

Each window is summarized by mean readiness, mean sleep, total volume,
mean ACWR, zone counts, and active overload flags. The comparison then
reports deltas: positive readiness delta means you are trending up.

Ideal for:
- Block reviews - did the last mesocycle leave you better or worse?
- Deload validation - confirm recovery weeks actually recovered you
- Return-from-break audits - quantify detraining before ramping up
- Progress tracking - watch volume and readiness move together

Examples:
  # Current 4 weeks vs the 4 weeks before
  redline compare

  # Shorter windows for a quick check
  redline compare --lookback "2 weeks"

  # Quarter-over-quarter review
  redline compare --lookback "12 weeks"

  # Export the comparison for a training log
  redline compare --output csv --output-file blocks.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		logCompareHeader(cfg)
		result, err := core.GetCompareResults(cfg, histfile.NewFileProvider())
		if err != nil {
			contract.LogFatal("Cannot run compare analysis", err)
		}
		if err := outwriter.WriteCompareResults(result, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write compare results", err)
		}
	},
}
