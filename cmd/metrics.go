package cmd

import (
	"time"

	"github.com/redlinelab/redline/core"
	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/internal/histfile"
	"github.com/redlinelab/redline/internal/outwriter"
	"github.com/spf13/cobra"
)

// metricsCmd displays the objective training-load metrics.
var metricsCmd = &cobra.Command{
	Use:   "metrics [data-dir]",
	Short: "Show objective load metrics and per-exercise strength trends.",
	Long: `Compute the objective training-load signals from your session logs,
with no subjective inputs involved.

Per day:
- Daily volume (top-set load x reps summed over sets)
- Acute load (trailing 7 days) and chronic load (trailing 28 days / 4)
- ACWR: acute-to-chronic workload ratio
- Weekly monotony and strain
- Volume-weighted RIR and effort

Per exercise:
- Latest and best estimated 1RM (Epley)
- Performance index: latest e1RM vs the trailing mean
- Session count and mean RIR

Use this view to sanity-check what the readiness engine sees, or to
export the raw series for your own analysis.

Examples:
  # Load metrics for the default 28-day range
  redline metrics

  # Focus on the last week
  redline metrics --days 7

  # Export the full series
  redline metrics --output csv --output-file load.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		logAnalysisHeader(cfg)
		output, err := core.GetMetricsResults(cfg, histfile.NewFileProvider())
		if err != nil {
			contract.LogFatal("Cannot run metrics analysis", err)
		}
		if err := outwriter.WriteMetricsResults(output, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write metrics results", err)
		}
	},
}
