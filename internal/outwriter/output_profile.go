package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/schema"
)

// WriteProfileResults outputs the athlete profile, dispatching based on the output format configured.
func WriteProfileResults(profile *schema.AthleteProfile, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, profile)
		}, "Wrote JSON")
		if err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVResultsForProfile(csvWriter, profile, fmtFloat)
		}, "Wrote CSV")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProfileText(profile, cfg, fmtFloat, duration, w)
		}, "Wrote text")
	}
	return nil
}

// writeProfileText displays the profile in human-readable text format.
func writeProfileText(profile *schema.AthleteProfile, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, w io.Writer) error {
	title := "Athlete Profile"
	if cfg.UseEmojis {
		title = "🧬 " + title
	}
	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "===============\n\n"); err != nil {
		return err
	}

	// Sleep response
	sr := profile.SleepResponse
	if sr.R != nil {
		responsive := "no"
		if sr.Responsive {
			responsive = "yes"
		}
		if _, err := fmt.Fprintf(w, "Sleep response: %s (r=%s, p=%s, n=%d), responsive: %s\n",
			sr.Strength, fmtFloatPtr(sr.R, fmtFloat), fmtFloatPtr(sr.PValue, fmtFloat), sr.N, responsive); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "Sleep response: insufficient data (n=%d)\n", sr.N); err != nil {
			return err
		}
	}

	// Archetypes
	if len(profile.Archetypes) > 0 {
		if _, err := fmt.Fprintf(w, "\nArchetypes:\n"); err != nil {
			return err
		}
		for _, a := range profile.Archetypes {
			if _, err := fmt.Fprintf(w, "   %s: confidence %s (%s)\n", a.Label, fmtFloat(a.Confidence), a.Basis); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintf(w, "\nPrimary: %s\n", profile.Primary); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Fatigue type: %s\n", profile.FatigueType); err != nil {
		return err
	}

	// Adjustment factors fed back into the scorer
	adj := profile.Adjustments
	if _, err := fmt.Fprintf(w, "\nAdjustments:\n"); err != nil {
		return err
	}
	adjLines := []struct {
		name  string
		value float64
	}{
		{"Sleep weight", adj.SleepWeight},
		{"Performance weight", adj.PerformanceWeight},
		{"ACWR weight", adj.ACWRWeight},
		{"Fatigue sensitivity", adj.FatigueSensitivity},
		{"Recovery speed", adj.RecoverySpeed},
	}
	for _, line := range adjLines {
		if _, err := fmt.Fprintf(w, "   %-20s %.2f\n", line.name+":", line.value); err != nil {
			return err
		}
	}

	// Data quality
	if _, err := fmt.Fprintf(w, "\nData quality: %d of %d days complete\n", profile.Quality.CompleteDays, profile.Quality.TotalDays); err != nil {
		return err
	}
	if cfg.Detail && len(profile.Quality.FieldCoverage) > 0 {
		fields := make([]string, 0, len(profile.Quality.FieldCoverage))
		for f := range profile.Quality.FieldCoverage {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			if _, err := fmt.Fprintf(w, "   %-20s %.0f%%\n", f+":", profile.Quality.FieldCoverage[f]*100); err != nil {
				return err
			}
		}
	}

	// Insights
	if len(profile.Insights) > 0 {
		if _, err := fmt.Fprintf(w, "\nInsights:\n"); err != nil {
			return err
		}
		for _, insight := range profile.Insights {
			if _, err := fmt.Fprintf(w, "   - %s\n", insight); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(w, "\nAnalysis completed in %v with %d workers. Store backend: %s\n", duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForProfile writes the profile as flat field,value rows.
func writeCSVResultsForProfile(w *csv.Writer, profile *schema.AthleteProfile, fmtFloat func(float64) string) error {
	if err := w.Write([]string{"field", "value"}); err != nil {
		return err
	}
	records := [][]string{
		{"sleep_r", fmtFloatPtr(profile.SleepResponse.R, fmtFloat)},
		{"sleep_p_value", fmtFloatPtr(profile.SleepResponse.PValue, fmtFloat)},
		{"sleep_n", fmt.Sprintf("%d", profile.SleepResponse.N)},
		{"sleep_strength", string(profile.SleepResponse.Strength)},
		{"sleep_responsive", fmt.Sprintf("%t", profile.SleepResponse.Responsive)},
		{"primary", string(profile.Primary)},
		{"fatigue_type", string(profile.FatigueType)},
		{"sleep_weight", fmt.Sprintf("%.2f", profile.Adjustments.SleepWeight)},
		{"performance_weight", fmt.Sprintf("%.2f", profile.Adjustments.PerformanceWeight)},
		{"acwr_weight", fmt.Sprintf("%.2f", profile.Adjustments.ACWRWeight)},
		{"fatigue_sensitivity", fmt.Sprintf("%.2f", profile.Adjustments.FatigueSensitivity)},
		{"recovery_speed", fmt.Sprintf("%.2f", profile.Adjustments.RecoverySpeed)},
		{"total_days", fmt.Sprintf("%d", profile.Quality.TotalDays)},
		{"complete_days", fmt.Sprintf("%d", profile.Quality.CompleteDays)},
	}
	for _, a := range profile.Archetypes {
		records = append(records, []string{"archetype:" + string(a.Label), fmtFloat(a.Confidence)})
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
