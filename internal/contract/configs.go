package contract

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/redlinelab/redline/schema"
)

// Default values for configuration.
const (
	DefaultDays        = 28
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	MaxDays            = 730
	DefaultPrecision   = 1

	DefaultMinReadiness = 60.0
	DefaultLookback     = "4 weeks"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateFormat is the calendar-day representation used for all record dates.
const DateFormat = "2006-01-02"

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Default history file names resolved under the data directory.
const (
	DefaultDailyFileName    = "daily.csv"
	DefaultSessionsFileName = "sessions.csv"
)

// Weight group names used as keys into the custom and computed weight maps.
const (
	ComponentGroup = "components"
	StateGroup     = "state"
	ObjectiveGroup = "objective"
)

// ComponentWeightsRaw holds the custom top-level component weights.
// Only fields that might be customized are included. Use float64 pointers for optional fields.
type ComponentWeightsRaw struct {
	Sleep      *float64 `mapstructure:"sleep"`
	State      *float64 `mapstructure:"state"`
	Perceived  *float64 `mapstructure:"perceived"`
	Motivation *float64 `mapstructure:"motivation"`
}

// StateWeightsRaw holds the custom weights for the state sub-blend.
type StateWeightsRaw struct {
	Energy   *float64 `mapstructure:"energy"`
	Fatigue  *float64 `mapstructure:"fatigue"`
	Stress   *float64 `mapstructure:"stress"`
	Soreness *float64 `mapstructure:"soreness"`
}

// ObjectiveWeightsRaw holds the custom weights for the objective blend.
type ObjectiveWeightsRaw struct {
	Sleep       *float64 `mapstructure:"sleep"`
	Quality     *float64 `mapstructure:"quality"`
	Performance *float64 `mapstructure:"performance"`
	Trend       *float64 `mapstructure:"trend"`
	ACWR        *float64 `mapstructure:"acwr"`
	Effort      *float64 `mapstructure:"effort"`
}

// WeightsRawInput holds all custom weight definitions from the YAML config file.
type WeightsRawInput struct {
	Components *ComponentWeightsRaw `mapstructure:"components"`
	State      *StateWeightsRaw     `mapstructure:"state"`
	Objective  *ObjectiveWeightsRaw `mapstructure:"objective"`
}

// CheckRawInput holds readiness gate definitions from the YAML config file.
type CheckRawInput struct {
	MinReadiness *float64 `mapstructure:"min_readiness"`
	FailZones    *string  `mapstructure:"fail_zones"`
}

// Config holds the runtime configuration for the evaluation.
// This struct remains the "final, validated" config.
type Config struct {
	DataDir      string
	DailyFile    string
	SessionsFile string

	Date time.Time // Target day; zero means the latest recorded day
	Days int       // Trailing range length in days

	ResultLimit int
	Workers     int
	Variant     schema.ScorerVariant
	Excludes    []string // Exercise names or patterns skipped in session analysis
	Detail      bool
	Explain     bool
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	Lookback    time.Duration // Span of each comparison window
	TrendPoints int           // Number of sampled trend points

	MinReadiness float64       // Readiness floor for the check gate
	FailZones    []schema.Zone // Zones that fail the check gate

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	// CustomWeights is a mapping of [GroupName][BreakdownKey] = Weight holding only explicit overrides
	CustomWeights map[string]map[schema.BreakdownKey]float64

	// ComputedWeights is the final weights map for each group, computed from defaults + custom overrides
	ComputedWeights map[string]map[schema.BreakdownKey]float64

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DataDirStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	DailyFile      string `mapstructure:"daily-file"`
	SessionsFile   string `mapstructure:"sessions-file"`
	Date           string `mapstructure:"date"`
	Days           int    `mapstructure:"days"`
	Limit          int    `mapstructure:"limit"`
	Workers        int    `mapstructure:"workers"`
	Variant        string `mapstructure:"variant"`
	Exclude        string `mapstructure:"exclude"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Detail         bool   `mapstructure:"detail"`
	Width          int    `mapstructure:"width"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`

	// --- Fields from scoreCmd.Flags() ---
	Explain bool `mapstructure:"explain"`

	// --- Fields from compareCmd.Flags() ---
	Lookback string `mapstructure:"lookback"`

	// --- Fields from trendCmd.Flags() ---
	Points int `mapstructure:"points"`

	// --- Fields from checkCmd.Flags() ---
	MinReadiness float64 `mapstructure:"min-readiness"`
	FailZones    string  `mapstructure:"fail-zones"`

	// --- Custom weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`

	// --- Readiness gate from config file ---
	Check CheckRawInput `mapstructure:"check"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	if c.FailZones != nil {
		clone.FailZones = make([]schema.Zone, len(c.FailZones))
		copy(clone.FailZones, c.FailZones)
	}
	if c.CustomWeights != nil {
		clone.CustomWeights = make(map[string]map[schema.BreakdownKey]float64)
		for group, groupMap := range c.CustomWeights {
			clone.CustomWeights[group] = make(map[schema.BreakdownKey]float64)
			maps.Copy(clone.CustomWeights[group], groupMap)
		}
	}
	if c.ComputedWeights != nil {
		clone.ComputedWeights = make(map[string]map[schema.BreakdownKey]float64)
		for group, groupMap := range c.ComputedWeights {
			clone.ComputedWeights[group] = make(map[schema.BreakdownKey]float64)
			maps.Copy(clone.ComputedWeights[group], groupMap)
		}
	}
	return &clone
}

// CloneWithDate creates a copy of the Config targeting a different day.
func (c *Config) CloneWithDate(date time.Time) *Config {
	clone := c.Clone()
	clone.Date = date
	return clone
}

// EngineConfig materializes the engine tunables with any custom weights applied.
func (c *Config) EngineConfig() schema.EngineConfig {
	ec := schema.DefaultEngineConfig()
	ec.Scorer.Variant = c.Variant
	if w, ok := c.ComputedWeights[ComponentGroup]; ok {
		ec.Scorer.Weights = w
	}
	if w, ok := c.ComputedWeights[StateGroup]; ok {
		ec.Scorer.StateWeights = w
	}
	if w, ok := c.ComputedWeights[ObjectiveGroup]; ok {
		ec.Decision.ObjectiveWeights = w
	}
	return ec
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processEvaluationWindow(cfg, input); err != nil {
		return err
	}
	if err := processCompareMode(cfg, input); err != nil {
		return err
	}
	if err := processTrendMode(cfg, input); err != nil {
		return err
	}
	if err := processCustomWeights(cfg, input); err != nil {
		return err
	}
	if err := processCheckGate(cfg, input); err != nil {
		return err
	}
	if err := resolveHistoryPaths(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfig validates the result-store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.Width = input.Width

	// Parse emoji flag; empty means the flag default
	emojiStr := input.Emoji
	if emojiStr == "" {
		emojiStr = "yes"
	}
	emojis, err := ParseBoolString(emojiStr)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag; empty means the flag default
	colorStr := input.Color
	if colorStr == "" {
		colorStr = "yes"
	}
	colors, err := ParseBoolString(colorStr)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Variant Validation ---
	cfg.Variant = schema.ScorerVariant(strings.ToLower(input.Variant))
	if _, ok := schema.ValidScorerVariants[cfg.Variant]; !ok {
		return fmt.Errorf("invalid variant '%s'. must be curve, linear", input.Variant)
	}

	// --- 4. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > 3 {
		return fmt.Errorf("precision must be between 0 and 3 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	// --- 5. Backend Validation ---
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}

	// --- 6. Excludes Processing ---
	cfg.Excludes = nil
	if input.Exclude != "" {
		parts := strings.SplitSeq(input.Exclude, ",")
		for p := range parts {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excludes = append(cfg.Excludes, trimmedP)
			}
		}
	}

	return nil
}

// processEvaluationWindow handles date parsing and range validation.
func processEvaluationWindow(cfg *Config, input *ConfigRawInput) error {
	if input.Days < 1 || input.Days > MaxDays {
		return fmt.Errorf("days must be between 1 and %d (received %d)", MaxDays, input.Days)
	}
	cfg.Days = input.Days

	if input.Date == "" {
		cfg.Date = time.Time{} // Resolved to the latest recorded day at load time
		return nil
	}

	if t, err := time.Parse(DateFormat, input.Date); err == nil {
		cfg.Date = t
		return nil
	}
	t, relErr := ParseRelativeTime(input.Date, time.Now())
	if relErr != nil {
		return fmt.Errorf("invalid date format for '%s'. Expected YYYY-MM-DD or 'N [units] ago': %w", input.Date, relErr)
	}
	cfg.Date = t.Truncate(24 * time.Hour)
	return nil
}

// processCompareMode handles the comparison lookback window.
func processCompareMode(cfg *Config, input *ConfigRawInput) error {
	lookbackStr := input.Lookback
	if lookbackStr == "" {
		lookbackStr = DefaultLookback
	}
	lookback, err := ParseLookbackDuration(lookbackStr)
	if err != nil {
		return err
	}
	cfg.Lookback = lookback
	return nil
}

// processTrendMode handles the trend sampling parameters.
func processTrendMode(cfg *Config, input *ConfigRawInput) error {
	cfg.TrendPoints = input.Points

	if cfg.TrendPoints < 1 && cfg.TrendPoints != 0 {
		return fmt.Errorf("--points must be at least 1")
	}

	return nil
}

// ProcessWeightsRawInput converts WeightsRawInput into the final weights map.
// If validateSum is true, it validates that weights for each group sum to 1.0.
func ProcessWeightsRawInput(weights WeightsRawInput, validateSum bool) (map[string]map[schema.BreakdownKey]float64, error) {
	result := make(map[string]map[schema.BreakdownKey]float64)

	// Process each group's raw weights and validate sums if required.
	// Skip groups that are nil (not provided)
	if raw := weights.Components; raw != nil {
		groupMap := make(map[schema.BreakdownKey]float64)
		sum := 0.0

		if raw.Sleep != nil {
			groupMap[schema.BreakdownSleep] = *raw.Sleep
			sum += *raw.Sleep
		}
		if raw.State != nil {
			groupMap[schema.BreakdownState] = *raw.State
			sum += *raw.State
		}
		if raw.Perceived != nil {
			groupMap[schema.BreakdownPerceived] = *raw.Perceived
			sum += *raw.Perceived
		}
		if raw.Motivation != nil {
			groupMap[schema.BreakdownMotivation] = *raw.Motivation
			sum += *raw.Motivation
		}

		// Only add to result if we have at least one weight
		if len(groupMap) > 0 {
			if validateSum && (sum < 0.999 || sum > 1.001) {
				return nil, fmt.Errorf("custom weights for group %s must sum to 1.0, got %.3f", ComponentGroup, sum)
			}
			result[ComponentGroup] = groupMap
		}
	}

	if raw := weights.State; raw != nil {
		groupMap := make(map[schema.BreakdownKey]float64)
		sum := 0.0

		if raw.Energy != nil {
			groupMap[schema.BreakdownEnergy] = *raw.Energy
			sum += *raw.Energy
		}
		if raw.Fatigue != nil {
			groupMap[schema.BreakdownFatigue] = *raw.Fatigue
			sum += *raw.Fatigue
		}
		if raw.Stress != nil {
			groupMap[schema.BreakdownStress] = *raw.Stress
			sum += *raw.Stress
		}
		if raw.Soreness != nil {
			groupMap[schema.BreakdownSoreness] = *raw.Soreness
			sum += *raw.Soreness
		}

		if len(groupMap) > 0 {
			if validateSum && (sum < 0.999 || sum > 1.001) {
				return nil, fmt.Errorf("custom weights for group %s must sum to 1.0, got %.3f", StateGroup, sum)
			}
			result[StateGroup] = groupMap
		}
	}

	if raw := weights.Objective; raw != nil {
		groupMap := make(map[schema.BreakdownKey]float64)
		sum := 0.0

		if raw.Sleep != nil {
			groupMap[schema.BreakdownSleep] = *raw.Sleep
			sum += *raw.Sleep
		}
		if raw.Quality != nil {
			groupMap[schema.BreakdownQuality] = *raw.Quality
			sum += *raw.Quality
		}
		if raw.Performance != nil {
			groupMap[schema.BreakdownPerformance] = *raw.Performance
			sum += *raw.Performance
		}
		if raw.Trend != nil {
			groupMap[schema.BreakdownTrend] = *raw.Trend
			sum += *raw.Trend
		}
		if raw.ACWR != nil {
			groupMap[schema.BreakdownACWR] = *raw.ACWR
			sum += *raw.ACWR
		}
		if raw.Effort != nil {
			groupMap[schema.BreakdownEffort] = *raw.Effort
			sum += *raw.Effort
		}

		if len(groupMap) > 0 {
			if validateSum && (sum < 0.999 || sum > 1.001) {
				return nil, fmt.Errorf("custom weights for group %s must sum to 1.0, got %.3f", ObjectiveGroup, sum)
			}
			result[ObjectiveGroup] = groupMap
		}
	}

	return result, nil
}

// processCustomWeights converts the raw input into the final cfg.CustomWeights map
// and validates that the provided weights for any group sum up to 1.0.
// Also computes the final ComputedWeights for each group.
func processCustomWeights(cfg *Config, input *ConfigRawInput) error {
	weights, err := ProcessWeightsRawInput(input.Weights, true)
	if err != nil {
		return err
	}
	cfg.CustomWeights = weights

	// Compute final weights for each group
	cfg.ComputedWeights = make(map[string]map[schema.BreakdownKey]float64)
	defaultsByGroup := map[string]map[schema.BreakdownKey]float64{
		ComponentGroup: schema.GetDefaultWeights(cfg.Variant),
		StateGroup:     schema.GetDefaultStateWeights(),
		ObjectiveGroup: schema.GetDefaultObjectiveWeights(),
	}
	for _, group := range []string{ComponentGroup, StateGroup, ObjectiveGroup} {
		// Start with default weights
		groupWeights := make(map[schema.BreakdownKey]float64)
		maps.Copy(groupWeights, defaultsByGroup[group])

		// Override with custom weights if provided
		if cfg.CustomWeights != nil {
			if customGroupWeights, ok := cfg.CustomWeights[group]; ok {
				maps.Copy(groupWeights, customGroupWeights)
			}
		}

		cfg.ComputedWeights[group] = groupWeights
	}

	return nil
}

// processCheckGate resolves the readiness gate thresholds.
// Defaults first, then config file values, then command-line flags take precedence.
func processCheckGate(cfg *Config, input *ConfigRawInput) error {
	minReadiness := DefaultMinReadiness
	failZones := []schema.Zone{schema.DeloadZone}

	// Override with config file values if provided
	if input.Check.MinReadiness != nil {
		minReadiness = *input.Check.MinReadiness
	}
	if input.Check.FailZones != nil {
		zones, err := ParseFailZones(*input.Check.FailZones)
		if err != nil {
			return fmt.Errorf("invalid check.fail_zones in config file: %w", err)
		}
		failZones = zones
	}

	// Override with command-line flags if provided (takes precedence)
	if input.MinReadiness >= 0 {
		minReadiness = input.MinReadiness
	}
	if input.FailZones != "" {
		zones, err := ParseFailZones(input.FailZones)
		if err != nil {
			return fmt.Errorf("invalid --fail-zones format: %w", err)
		}
		failZones = zones
	}

	if minReadiness < 0 || minReadiness > 100 {
		return fmt.Errorf("min-readiness must be between 0 and 100 (received %.2f)", minReadiness)
	}

	cfg.MinReadiness = minReadiness
	cfg.FailZones = failZones
	return nil
}

// resolveHistoryPaths resolves the data directory and the daily/sessions file paths.
func resolveHistoryPaths(cfg *Config, input *ConfigRawInput) error {
	searchPath := input.DataDirStr
	if searchPath == "" {
		searchPath = "."
	}
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	if info, statErr := os.Stat(absSearchPath); statErr == nil && !info.IsDir() {
		return fmt.Errorf("data directory %s is a file, expected a directory", absSearchPath)
	}
	cfg.DataDir = absSearchPath

	// User-provided file flags take precedence over directory defaults.
	cfg.DailyFile = input.DailyFile
	if cfg.DailyFile == "" {
		cfg.DailyFile = filepath.Join(cfg.DataDir, DefaultDailyFileName)
	}
	cfg.SessionsFile = input.SessionsFile
	if cfg.SessionsFile == "" {
		cfg.SessionsFile = filepath.Join(cfg.DataDir, DefaultSessionsFileName)
	}

	return nil
}

// ParseFailZones parses a string like "deload,reduce" into validated zones.
func ParseFailZones(s string) ([]schema.Zone, error) {
	var zones []schema.Zone

	parts := strings.SplitSeq(s, ",")
	for part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		zone := schema.Zone(part)
		if _, ok := schema.ValidZones[zone]; !ok {
			return nil, fmt.Errorf("invalid zone '%s', must be push, normal, reduce, or deload", part)
		}
		zones = append(zones, zone)
	}

	if len(zones) == 0 {
		return nil, fmt.Errorf("at least one zone is required")
	}

	return zones, nil
}
