package schema

// Custom string types for type safety.
type (
	// BreakdownKey represents keys used in scoring breakdowns.
	BreakdownKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// Zone represents the training zone a day falls into.
	Zone string

	// ReasonCode is a machine-readable explanation attached to a decision.
	ReasonCode string

	// FlagKind represents an overload flag family.
	FlagKind string

	// OverloadCause attributes an overload assessment to its likely driver.
	OverloadCause string

	// ScorerVariant selects the readiness scoring strategy.
	ScorerVariant string

	// ConfidenceLevel bands the scorer's confidence score.
	ConfidenceLevel string

	// CorrelationStrength bands an absolute Pearson correlation.
	CorrelationStrength string

	// ArchetypeLabel names a recognized athlete response pattern.
	ArchetypeLabel string

	// FatigueType classifies the dominant fatigue signature of a day.
	FatigueType string

	// RiskBand bands an injury risk score.
	RiskBand string

	// DayStatus is the coarse go/no-go verdict layered over the zone.
	DayStatus string

	// DatabaseBackend represents the database backend for the result store.
	DatabaseBackend string
)

// Breakdown keys used in the scoring logic.
const (
	BreakdownSleep      BreakdownKey = "sleep"      // hours + quality blend
	BreakdownState      BreakdownKey = "state"      // energy/fatigue/stress/soreness blend
	BreakdownPerceived  BreakdownKey = "perceived"  // self-rated readiness
	BreakdownMotivation BreakdownKey = "motivation" // willingness to train

	BreakdownEnergy   BreakdownKey = "energy"   // state sub-component
	BreakdownFatigue  BreakdownKey = "fatigue"  // state sub-component
	BreakdownStress   BreakdownKey = "stress"   // state sub-component
	BreakdownSoreness BreakdownKey = "soreness" // state sub-component

	BreakdownBonus   BreakdownKey = "bonus"   // summed bonuses
	BreakdownPenalty BreakdownKey = "penalty" // summed penalties

	BreakdownPerformance BreakdownKey = "performance" // objective blend: performance index
	BreakdownACWR        BreakdownKey = "acwr"        // objective blend: workload ratio
	BreakdownTrend       BreakdownKey = "trend"       // objective blend: index vs 7d mean
	BreakdownEffort      BreakdownKey = "effort"      // objective blend: weighted RIR fatigue
	BreakdownQuality     BreakdownKey = "quality"     // objective blend: sleep quality
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All training zones, ordered from most to least aggressive.
const (
	PushZone   Zone = "push"   // readiness >= 80
	NormalZone Zone = "normal" // readiness in [65, 80)
	ReduceZone Zone = "reduce" // readiness in [50, 65)
	DeloadZone Zone = "deload" // readiness < 50
)

// All reason codes. Codes explain a decision; they never drive it.
const (
	ReasonLowSleep      ReasonCode = "LOW_SLEEP"       // sleep < 6.5h
	ReasonHighACWR      ReasonCode = "HIGH_ACWR"       // acute:chronic > 1.5
	ReasonPerfDrop      ReasonCode = "PERF_DROP"       // performance index < 0.98
	ReasonHighEffort    ReasonCode = "HIGH_EFFORT"     // weighted effort >= 8.5
	ReasonFatigue       ReasonCode = "FATIGUE"         // high-strain day flag
	ReasonHighStrainDay ReasonCode = "HIGH_STRAIN_DAY" // RIR <= 1 and effort >= 8.5
	ReasonUnderstim     ReasonCode = "UNDERSTIM"       // RIR >= 4 and effort <= 6.5
	ReasonNeuralOver    ReasonCode = "NEURAL_OVERLOAD" // any overload flag active
	ReasonNone          ReasonCode = "NONE"            // rendered when no code fires
)

// All overload flag kinds.
const (
	FlagSustainedNearFailure FlagKind = "SUSTAINED_NEAR_FAILURE"
	FlagFixedLoadDrift       FlagKind = "FIXED_LOAD_DRIFT"
	FlagHighVolatility       FlagKind = "HIGH_VOLATILITY"
	FlagPlateauEffortRise    FlagKind = "PLATEAU_EFFORT_RISE"
)

// All overload causes from the recovery cross-check.
const (
	NeuralDriven   OverloadCause = "neural_driven"
	RecoveryDriven OverloadCause = "recovery_driven"
)

// All scorer variants supported.
const (
	CurveVariant  ScorerVariant = "curve" // default
	LinearVariant ScorerVariant = "linear"
)

// All confidence levels, from least to most trustworthy.
const (
	LowConfidence        ConfidenceLevel = "low"
	MediumConfidence     ConfidenceLevel = "medium"
	MediumHighConfidence ConfidenceLevel = "medium-high"
	HighConfidence       ConfidenceLevel = "high"
)

// All correlation strength bands over |r|.
const (
	NoCorrelation       CorrelationStrength = "none"     // |r| < 0.3
	WeakCorrelation     CorrelationStrength = "weak"     // |r| < 0.5
	ModerateCorrelation CorrelationStrength = "moderate" // |r| < 0.7
	StrongCorrelation   CorrelationStrength = "strong"   // |r| >= 0.7
)

// All athlete archetypes.
const (
	ShortSleeper        ArchetypeLabel = "short_sleeper"
	StandardSleeper     ArchetypeLabel = "standard"
	NeedsSleep          ArchetypeLabel = "needs_sleep"
	ConsistentPerformer ArchetypeLabel = "consistent_performer"
	VariablePerformer   ArchetypeLabel = "variable_performer"
	HighACWRTolerator   ArchetypeLabel = "high_acwr_tolerator"
	ACWRSensitive       ArchetypeLabel = "acwr_sensitive"
	UnclassifiedAthlete ArchetypeLabel = "unclassified"
)

// All fatigue types.
const (
	CentralFatigue    FatigueType = "central"    // high fatigue, low soreness
	PeripheralFatigue FatigueType = "peripheral" // high soreness, low fatigue
	MixedFatigue      FatigueType = "mixed"      // both elevated
	FreshState        FatigueType = "fresh"      // neither elevated
	GeneralFatigue    FatigueType = "fatigued"   // readiness floor override
)

// All injury risk bands.
const (
	LowRisk      RiskBand = "low"      // score < 35
	ModerateRisk RiskBand = "moderate" // score in [35, 60)
	HighRisk     RiskBand = "high"     // score >= 60
)

// All day statuses, ordered from full clearance to full stop.
const (
	StatusGo           DayStatus = "GO"
	StatusGoWithLimits DayStatus = "GO_WITH_CONSTRAINTS"
	StatusRedirect     DayStatus = "REDIRECT"
	StatusRecover      DayStatus = "RECOVER"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllZones returns the zones ordered from most to least aggressive.
var AllZones = []Zone{PushZone, NormalZone, ReduceZone, DeloadZone}

// AllScorerVariants returns a list of all supported scorer variants.
var AllScorerVariants = []ScorerVariant{CurveVariant, LinearVariant}

// AllFlagKinds returns a list of all overload flag kinds.
var AllFlagKinds = []FlagKind{
	FlagSustainedNearFailure,
	FlagFixedLoadDrift,
	FlagHighVolatility,
	FlagPlateauEffortRise,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidScorerVariants lists all valid scorer variants.
var ValidScorerVariants = map[ScorerVariant]struct{}{
	CurveVariant:  {},
	LinearVariant: {},
}

// ValidZones lists all valid training zones.
var ValidZones = map[Zone]struct{}{
	PushZone:   {},
	NormalZone: {},
	ReduceZone: {},
	DeloadZone: {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// GetDefaultWeights returns the default top-level component weight map for
// a scorer variant. Both variants share the same weighting; only the
// normalization strategy differs between them.
func GetDefaultWeights(variant ScorerVariant) map[BreakdownKey]float64 {
	switch variant {
	case LinearVariant:
		fallthrough
	default: // CurveVariant
		return map[BreakdownKey]float64{
			BreakdownSleep:      0.32,
			BreakdownState:      0.36,
			BreakdownPerceived:  0.18,
			BreakdownMotivation: 0.14,
		}
	}
}

// GetDefaultStateWeights returns the default weight map for the state
// sub-components blended into the state score.
func GetDefaultStateWeights() map[BreakdownKey]float64 {
	return map[BreakdownKey]float64{
		BreakdownEnergy:   0.40,
		BreakdownFatigue:  0.30,
		BreakdownStress:   0.20,
		BreakdownSoreness: 0.10,
	}
}

// GetDefaultObjectiveWeights returns the default weight map for the
// reported-only objective blend surfaced alongside decisions.
func GetDefaultObjectiveWeights() map[BreakdownKey]float64 {
	return map[BreakdownKey]float64{
		BreakdownSleep:       0.25,
		BreakdownQuality:     0.15,
		BreakdownPerformance: 0.25,
		BreakdownTrend:       0.10,
		BreakdownACWR:        0.15,
		BreakdownEffort:      0.10,
	}
}
