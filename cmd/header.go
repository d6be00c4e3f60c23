package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/schema"
)

// headerPrefix picks the emoji or plain prefix for a header line.
func headerPrefix(emoji, plain string) string {
	if cfg.UseEmojis {
		return emoji
	}
	return plain
}

// logAnalysisHeader prints a concise, 2-line header for each evaluation.
// Only text output carries headers; CSV and JSON stay machine-parseable.
func logAnalysisHeader(cfg *contract.Config) {
	if cfg.Output != schema.TextOut {
		return
	}
	dataName := filepath.Base(cfg.DataDir)
	if dataName == "" || dataName == "." {
		dataName = "current"
	}

	// Line 1: The evaluation summary (Data dir and Variant)
	fmt.Printf("%s Data: %s (Variant: %s)\n", headerPrefix("🔎", "**"), dataName, cfg.Variant)

	// Line 2: The actual evaluation window
	if cfg.Date.IsZero() {
		fmt.Printf("%s Range: trailing %d days ending at the latest recorded day\n", headerPrefix("📅", "**"), cfg.Days)
	} else {
		fmt.Printf("%s Range: trailing %d days ending %s\n", headerPrefix("📅", "**"), cfg.Days, cfg.Date.Format(contract.DateFormat))
	}
}

// logCompareHeader prints a header for window comparison.
func logCompareHeader(cfg *contract.Config) {
	if cfg.Output != schema.TextOut {
		return
	}
	dataName := filepath.Base(cfg.DataDir)
	if dataName == "" || dataName == "." {
		dataName = "current"
	}
	fmt.Printf("%s Data: %s (Variant: %s)\n", headerPrefix("🔎", "**"), dataName, cfg.Variant)
	fmt.Printf("%s Comparing: current ↔ previous (lookback: %v)\n", headerPrefix("📊", "**"), cfg.Lookback)
}
