package cmd

import (
	"os"
	"time"

	"github.com/redlinelab/redline/core"
	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/internal/histfile"
	"github.com/redlinelab/redline/internal/outwriter"
	"github.com/spf13/cobra"
)

// checkCmd gates automation on today's readiness.
var checkCmd = &cobra.Command{
	Use:   "check [data-dir]",
	Short: "Enforce a readiness gate for scripts and automations (fails on violations)",
	Long: `Evaluate the anchor day and enforce readiness policy thresholds.

Designed for scripting - exits with a non-zero code when readiness is
below the configured floor or the day lands in a failing zone. The gate
reads the final capped score, so an overload or sleep cap can fail a
day whose raw score would have passed.

Default policy: readiness >= 60 and zone not deload.

Use cases:
- Morning automations - only generate a session plan on a passing day
- Coach alerts - notify when an athlete fails the gate
- Program guards - block a planned max-out attempt on a bad day
- Habit loops - tie streaks to objective readiness instead of willpower

Thresholds come from flags, or from the check: block in .redline.yaml:

  check:
    min_readiness: 65
    fail_zones: "deload,reduce"

Examples:
  # Gate with the default policy
  redline check

  # Require near-full readiness for a testing day
  redline check --min-readiness 80

  # Fail on both deload and reduce days
  redline check --fail-zones "deload,reduce"

  # Gate a specific day in a backfill script
  redline check --date 2026-03-08`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		result, err := core.GetCheckResults(cfg, histfile.NewFileProvider())
		if err != nil {
			contract.LogFatal("Readiness check failed", err)
		}
		if err := outwriter.WriteCheckResults(result, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write check results", err)
		}
		if !result.Passed {
			os.Exit(1)
		}
	},
}
