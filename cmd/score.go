package cmd

import (
	"time"

	"github.com/redlinelab/redline/core"
	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/internal/histfile"
	"github.com/redlinelab/redline/internal/outwriter"
	"github.com/spf13/cobra"
)

// scoreCmd computes readiness scores without the decision pipeline.
var scoreCmd = &cobra.Command{
	Use:   "score [data-dir]",
	Short: "Show readiness scores with component breakdowns.",
	Long: `Compute the 0-100 readiness score for one day or a trailing range,
without overload caps or training decisions.

The score blends sleep, subjective state, perceived readiness, and
motivation, with bonuses and penalties for pain, illness, caffeine,
alcohol, naps, and disrupted sleep. Weights are personalized from your
history once enough data has accumulated.

Use --explain to see which components drove each score and the plain
language notes behind bonuses and penalties.

Examples:
  # Score the latest recorded day
  redline score

  # Score a range with the component breakdown
  redline score --days 14 --explain

  # Compare the linear variant against the curve default
  redline score --variant linear

  # Export scores as JSON
  redline score --days 28 --output json --output-file scores.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		logAnalysisHeader(cfg)
		results, err := core.GetScoreResults(cfg, histfile.NewFileProvider())
		if err != nil {
			contract.LogFatal("Cannot run score analysis", err)
		}
		if err := outwriter.WriteScoreResults(results, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write score results", err)
		}
	},
}
