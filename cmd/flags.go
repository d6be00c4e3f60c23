package cmd

import (
	"time"

	"github.com/redlinelab/redline/core"
	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/internal/histfile"
	"github.com/redlinelab/redline/internal/outwriter"
	"github.com/spf13/cobra"
)

// flagsCmd reports neuromuscular overload flags per exercise.
var flagsCmd = &cobra.Command{
	Use:   "flags [data-dir]",
	Short: "Show neuromuscular overload flags ranked by severity.",
	Long: `Inspect recent sessions per exercise and report overload flags.

Four detectors run against each lift's recent history:
- Performance decline: estimated 1RM trending down across sessions
- Grind accumulation: too many near-failure sets in the window
- Volume drop: completed volume falling at similar intensity
- Failure spike: failure rate above threshold with enough attempts

Each flag carries a severity, the numeric evidence that triggered it,
and concrete recommendations. Good recovery scores soften severities;
poor recovery amplifies them. Advanced-lifter thresholds are applied
automatically once an exercise has enough logged sessions.

Examples:
  # Flags for the latest recorded day
  redline flags

  # Only the three most severe flags
  redline flags --limit 3

  # Skip accessory lifts
  redline flags --exclude "curl,raise"

  # Feed flags into another tool
  redline flags --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		logAnalysisHeader(cfg)
		assessment, err := core.GetFlagsResults(cfg, histfile.NewFileProvider())
		if err != nil {
			contract.LogFatal("Cannot run overload analysis", err)
		}
		if err := outwriter.WriteFlagsResults(assessment, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write overload results", err)
		}
	},
}
