package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteCompareResults outputs the window comparison, dispatching based on the output format configured.
func WriteCompareResults(result *schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
		if err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVResultsForComparison(csvWriter, result, fmtFloat)
		}, "Wrote CSV")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonTable(result, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeComparisonTable writes the windows in a metric-per-row comparison format.
func writeComparisonTable(result *schema.ComparisonResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	for _, win := range []schema.WindowSummary{result.Base, result.Target} {
		if _, err := fmt.Fprintf(writer, "Window %q: %s to %s, %d days evaluated\n",
			win.Label, win.Start.Format(contract.DateFormat), win.End.Format(contract.DateFormat), win.Days); err != nil {
			return err
		}
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Metric", "Previous", "Current", "Delta"})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var red, green, yellow func(...any) string
	if cfg.UseColors {
		red = color.New(color.FgRed).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
	} else {
		red = fmt.Sprint
		green = fmt.Sprint
		yellow = fmt.Sprint
	}

	// Direction matters per metric: more readiness or sleep is good, more
	// flags is bad, volume swings are neutral.
	formatDelta := func(delta float64, upIsGood, neutral bool) string {
		switch {
		case delta > 0:
			s := fmt.Sprintf("+%.*f ▲", cfg.Precision, delta)
			if neutral {
				return yellow(s)
			}
			if upIsGood {
				return green(s)
			}
			return red(s)
		case delta < 0:
			s := fmt.Sprintf("%.*f ▼", cfg.Precision, delta)
			if neutral {
				return yellow(s)
			}
			if upIsGood {
				return red(s)
			}
			return green(s)
		default:
			return yellow(fmt.Sprintf("%.*f", cfg.Precision, 0.0))
		}
	}
	formatIntDelta := func(delta int, upIsGood, neutral bool) string {
		switch {
		case delta > 0:
			s := fmt.Sprintf("+%d ▲", delta)
			if neutral {
				return yellow(s)
			}
			if upIsGood {
				return green(s)
			}
			return red(s)
		case delta < 0:
			s := fmt.Sprintf("%d ▼", delta)
			if neutral {
				return yellow(s)
			}
			if upIsGood {
				return red(s)
			}
			return green(s)
		default:
			return yellow("0")
		}
	}

	base, target := result.Base, result.Target
	data := [][]string{
		{"Mean readiness", fmtFloat(base.MeanReadiness), fmtFloat(target.MeanReadiness), formatDelta(result.DeltaReadiness, true, false)},
		{"Mean sleep (h)", fmtFloat(base.MeanSleep), fmtFloat(target.MeanSleep), formatDelta(result.DeltaSleep, true, false)},
		{"Total volume", fmtFloat(base.TotalVolume), fmtFloat(target.TotalVolume), formatDelta(result.DeltaVolume, false, true)},
		{"Mean ACWR", fmtFloatPtr(base.MeanACWR, fmtFloat), fmtFloatPtr(target.MeanACWR, fmtFloat), formatACWRDelta(base.MeanACWR, target.MeanACWR, cfg, yellow)},
		{"Overload flags", fmt.Sprintf("%d", base.FlagCount), fmt.Sprintf("%d", target.FlagCount), formatIntDelta(result.DeltaFlags, false, false)},
		{"Push days", fmt.Sprintf("%d", base.ZoneCounts[schema.PushZone]), fmt.Sprintf("%d", target.ZoneCounts[schema.PushZone]), formatIntDelta(target.ZoneCounts[schema.PushZone]-base.ZoneCounts[schema.PushZone], true, false)},
		{"Normal days", fmt.Sprintf("%d", base.ZoneCounts[schema.NormalZone]), fmt.Sprintf("%d", target.ZoneCounts[schema.NormalZone]), formatIntDelta(target.ZoneCounts[schema.NormalZone]-base.ZoneCounts[schema.NormalZone], true, true)},
		{"Reduce days", fmt.Sprintf("%d", base.ZoneCounts[schema.ReduceZone]), fmt.Sprintf("%d", target.ZoneCounts[schema.ReduceZone]), formatIntDelta(target.ZoneCounts[schema.ReduceZone]-base.ZoneCounts[schema.ReduceZone], false, true)},
		{"Deload days", fmt.Sprintf("%d", base.ZoneCounts[schema.DeloadZone]), fmt.Sprintf("%d", target.ZoneCounts[schema.DeloadZone]), formatIntDelta(target.ZoneCounts[schema.DeloadZone]-base.ZoneCounts[schema.DeloadZone], false, false)},
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Net readiness delta: %.*f, net flag delta: %+d\n", cfg.Precision, result.DeltaReadiness, result.DeltaFlags); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Store backend: %s\n", duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// formatACWRDelta handles the nil cases before formatting the ratio delta.
func formatACWRDelta(base, target *float64, cfg *contract.Config, neutral func(...any) string) string {
	if base == nil || target == nil {
		return "-"
	}
	delta := *target - *base
	switch {
	case delta > 0:
		return neutral(fmt.Sprintf("+%.*f ▲", cfg.Precision, delta))
	case delta < 0:
		return neutral(fmt.Sprintf("%.*f ▼", cfg.Precision, delta))
	default:
		return neutral(fmt.Sprintf("%.*f", cfg.Precision, 0.0))
	}
}

// writeCSVResultsForComparison writes the comparison in CSV format.
func writeCSVResultsForComparison(w *csv.Writer, result *schema.ComparisonResult, fmtFloat func(float64) string) error {
	header := []string{"metric", "previous", "current", "delta"}
	if err := w.Write(header); err != nil {
		return err
	}
	base, target := result.Base, result.Target
	records := [][]string{
		{"mean_readiness", fmtFloat(base.MeanReadiness), fmtFloat(target.MeanReadiness), fmtFloat(result.DeltaReadiness)},
		{"mean_sleep", fmtFloat(base.MeanSleep), fmtFloat(target.MeanSleep), fmtFloat(result.DeltaSleep)},
		{"total_volume", fmtFloat(base.TotalVolume), fmtFloat(target.TotalVolume), fmtFloat(result.DeltaVolume)},
		{"mean_acwr", fmtFloatPtr(base.MeanACWR, fmtFloat), fmtFloatPtr(target.MeanACWR, fmtFloat), ""},
		{"flag_count", fmt.Sprintf("%d", base.FlagCount), fmt.Sprintf("%d", target.FlagCount), fmt.Sprintf("%d", result.DeltaFlags)},
	}
	for _, zone := range schema.AllZones {
		records = append(records, []string{
			"days_" + string(zone),
			fmt.Sprintf("%d", base.ZoneCounts[zone]),
			fmt.Sprintf("%d", target.ZoneCounts[zone]),
			fmt.Sprintf("%d", target.ZoneCounts[zone]-base.ZoneCounts[zone]),
		})
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
