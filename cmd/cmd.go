// Package cmd defines the command-line interface for redline.
package cmd

import (
	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(decideCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(flagsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(storeCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("daily-file", "", "Path to daily check-in history (overrides [data-dir]/daily.csv)")
	rootCmd.PersistentFlags().String("sessions-file", "", "Path to session log history (overrides [data-dir]/sessions.csv)")
	rootCmd.PersistentFlags().String("date", "", "Target day in ISO8601 or time ago (default: latest recorded day)")
	rootCmd.PersistentFlags().Int("days", contract.DefaultDays, "Trailing range length in days")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-day metadata (load, monotony, strain, risk)")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of exercise names or patterns to ignore")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("variant", string(schema.CurveVariant), "Scoring variant: curve or linear")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Result store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emoji in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of scoreCmd to Viper
	scoreCmd.Flags().Bool("explain", false, "Print per-day component score breakdown")
	if err := viper.BindPFlags(scoreCmd.Flags()); err != nil {
		contract.LogFatal("Error binding score flags", err)
	}

	// Bind all flags of trendCmd to Viper
	trendCmd.Flags().Int("points", 0, "Number of most recent trend points to keep (0 = all days)")
	if err := viper.BindPFlags(trendCmd.Flags()); err != nil {
		contract.LogFatal("Error binding trend flags", err)
	}

	// Bind all flags of compareCmd to Viper
	compareCmd.Flags().String("lookback", contract.DefaultLookback, "Span of each comparison window")
	if err := viper.BindPFlags(compareCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compare flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().Float64("min-readiness", -1, "Readiness floor for gating (-1 uses config file or default)")
	checkCmd.Flags().String("fail-zones", "", "Comma-separated zones that fail the gate (e.g. 'deload,reduce')")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
