package cmd

import (
	"time"

	"github.com/redlinelab/redline/core"
	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/internal/histfile"
	"github.com/redlinelab/redline/internal/outwriter"
	"github.com/spf13/cobra"
)

// decideCmd runs the full readiness-to-decision pipeline.
var decideCmd = &cobra.Command{
	Use:   "decide [data-dir]",
	Short: "Turn today's readiness into a concrete training directive.",
	Long: `Run the full pipeline: readiness score, overload detection, and the final
training decision for one day or a trailing range.

Combines your daily check-ins and session logs to compute:
- A 0-100 readiness score personalized from your own history
- Neuromuscular overload flags with per-lift constraints
- A training zone (push, normal, reduce, deload) and day status
- An action line with reason codes explaining what drove the call
- An injury risk band and fatigue classification

When a result store is configured, every evaluated day is recorded for
longitudinal tracking and export.

Examples:
  # Decide for the latest recorded day
  redline decide

  # Decide for a specific day
  redline decide --date 2026-03-08

  # Decide across the last two weeks
  redline decide --days 14

  # Include load metadata and risk drivers
  redline decide --detail

  # Export decisions to CSV for a coach
  redline decide --days 28 --output csv --output-file decisions.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		logAnalysisHeader(cfg)
		results, err := core.GetDecideResults(cfg, histfile.NewFileProvider(), storeManager)
		if err != nil {
			contract.LogFatal("Cannot run decide analysis", err)
		}
		if err := outwriter.WriteDecideResults(results, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write decide results", err)
		}
	},
}
