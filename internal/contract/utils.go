package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/redlinelab/redline/schema"
)

// Zone label constants.
const (
	PushValue   = "Push"   // Clear to progress
	NormalValue = "Normal" // Train as planned
	ReduceValue = "Reduce" // Trim volume
	DeloadValue = "Deload" // Back off or rest
)

// Color variables for console output.
var (
	PushColor    = color.New(color.FgGreen, color.Bold) // pushColor represents full clearance.
	NormalColor  = color.New(color.FgCyan)              // normalColor represents business as usual.
	ReduceColor  = color.New(color.FgYellow)            // reduceColor represents standard caution, not bold.
	DeloadColor  = color.New(color.FgRed, color.Bold)   // deloadColor represents standard danger.
	WarnColor    = color.New(color.FgMagenta, color.Bold)
	SubduedColor = color.New(color.FgHiBlack)
)

// GetPlainLabel returns a plain text label indicating the training zone
// based on the final readiness value. This is the core logic used for
// CSV, JSON, and table printing.
func GetPlainLabel(readiness float64) string {
	switch {
	case readiness >= 80:
		return PushValue
	case readiness >= 65:
		return NormalValue
	case readiness >= 50:
		return ReduceValue
	default:
		return DeloadValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(readiness float64) string {
	text := GetPlainLabel(readiness)

	switch text {
	case PushValue:
		return PushColor.Sprint(text)
	case NormalValue:
		return NormalColor.Sprint(text)
	case ReduceValue:
		return ReduceColor.Sprint(text)
	default: // "Deload"
		return DeloadColor.Sprint(text)
	}
}

// GetZoneColorLabel colors an explicit zone value for table output.
func GetZoneColorLabel(zone schema.Zone) string {
	switch zone {
	case schema.PushZone:
		return PushColor.Sprint(string(zone))
	case schema.NormalZone:
		return NormalColor.Sprint(string(zone))
	case schema.ReduceZone:
		return ReduceColor.Sprint(string(zone))
	default:
		return DeloadColor.Sprint(string(zone))
	}
}

// GetStatusColorLabel colors a day status for table output.
func GetStatusColorLabel(status schema.DayStatus) string {
	switch status {
	case schema.StatusGo:
		return PushColor.Sprint(string(status))
	case schema.StatusGoWithLimits:
		return NormalColor.Sprint(string(status))
	case schema.StatusRedirect:
		return ReduceColor.Sprint(string(status))
	default:
		return DeloadColor.Sprint(string(status))
	}
}

// GetRiskColorLabel colors an injury risk band for table output.
func GetRiskColorLabel(band schema.RiskBand) string {
	switch band {
	case schema.LowRisk:
		return PushColor.Sprint(string(band))
	case schema.ModerateRisk:
		return ReduceColor.Sprint(string(band))
	default:
		return DeloadColor.Sprint(string(band))
	}
}

// GetSeverityColorLabel colors an overload flag severity for table output.
// Severity bands mirror the readiness cap tiers.
func GetSeverityColorLabel(severity float64) string {
	text := fmt.Sprintf("%.0f", severity)
	switch {
	case severity >= 30:
		return DeloadColor.Sprint(text)
	case severity >= 15:
		return ReduceColor.Sprint(text)
	default:
		return NormalColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path and format type. It falls back to os.Stdout on error.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ShouldIgnoreExercise returns true if the given exercise name matches any of the
// exclude patterns. It supports simple glob patterns (using filepath.Match) when the
// pattern contains wildcard characters (*, ?, [ ]); otherwise a case-insensitive
// substring match is used. A user can provide patterns like "warmup*", "band".
func ShouldIgnoreExercise(name string, excludes []string) bool {
	lowered := strings.ToLower(name)
	for _, ex := range excludes {
		ex = strings.TrimSpace(strings.ToLower(ex))
		if ex == "" {
			continue
		}

		// If the pattern contains glob characters, try filepath.Match.
		if strings.ContainsAny(ex, "*?[") {
			if ok, err := filepath.Match(ex, lowered); err == nil && ok {
				return true
			}
			continue
		}

		if strings.Contains(lowered, ex) {
			return true
		}
	}
	return false
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for result storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".redline_results.db"
	}
	return filepath.Join(homeDir, ".redline_results.db")
}

// TruncateText truncates a display string to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to ensure there's space for both the "..." suffix and at least
// one character of content. Without this check, small maxWidth values could cause
// slice bounds errors in the truncation calculation.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
