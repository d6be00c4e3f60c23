package cmd

import (
	"time"

	"github.com/redlinelab/redline/core"
	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/internal/histfile"
	"github.com/redlinelab/redline/internal/outwriter"
	"github.com/spf13/cobra"
)

// profileCmd shows the personalization profile built from history.
var profileCmd = &cobra.Command{
	Use:   "profile [data-dir]",
	Short: "Show your personalization profile and adjustment factors.",
	Long: `Analyze your history and show how the engine has adapted to you.

The profile covers:
- Sleep response: correlation between sleep hours and readiness, with
  statistical significance
- Archetypes: recognized response patterns (sleep-sensitive, workload-
  sensitive, volume-responsive, fast/slow recoverer, and others) with
  confidence and evidence
- Adjustment factors: the personalized weights fed back into scoring
  and decisions
- Fatigue classification and per-rule insights
- Data quality: how much of your history was usable

With fewer than 14 complete days the profile falls back to neutral
defaults and says so explicitly.

Examples:
  # Show the current profile
  redline profile

  # Profile from a longer history window
  redline profile --days 90

  # Machine-readable profile for dashboards
  redline profile --output json --output-file profile.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		logAnalysisHeader(cfg)
		profile, err := core.GetProfileResults(cfg, histfile.NewFileProvider())
		if err != nil {
			contract.LogFatal("Cannot run profile analysis", err)
		}
		if err := outwriter.WriteProfileResults(profile, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write profile results", err)
		}
	},
}
