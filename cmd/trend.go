package cmd

import (
	"time"

	"github.com/redlinelab/redline/core"
	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/internal/histfile"
	"github.com/redlinelab/redline/internal/outwriter"
	"github.com/spf13/cobra"
)

// trendCmd tracks readiness and decisions over the trailing range.
var trendCmd = &cobra.Command{
	Use:   "trend [data-dir]",
	Short: "Track how readiness and decisions evolved over time.",
	Long: `Evaluate the full pipeline across the trailing range and reduce each
day to a timeline point: raw readiness, the final capped score, the
zone, confidence, ACWR, and daily volume.

Shows readiness trajectory at a glance, helping you:
- Spot a slow readiness decline before it becomes an injury
- See how deload weeks actually affected your scores
- Correlate workload spikes with readiness dips
- Verify that programming changes moved the needle

Use --points to keep only the most recent N days of the range.

Examples:
  # Timeline over the default 28-day range
  redline trend

  # Last 90 days, most recent 12 points
  redline trend --days 90 --points 12

  # Feed the timeline into a plotting tool
  redline trend --days 56 --output csv --output-file trend.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		logAnalysisHeader(cfg)
		result, err := core.GetTrendResults(cfg, histfile.NewFileProvider())
		if err != nil {
			contract.LogFatal("Cannot run trend analysis", err)
		}
		if err := outwriter.WriteTrendResults(result, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write trend results", err)
		}
	},
}
