package schema

// Tunable defaults for the engine configs. Values are starting points,
// not contracts; every one of them is overridable through the config
// structs below.
const (
	defaultSleepCenterFallback = 7.0
	defaultSleepMinFloor       = 5.0
	defaultSleepHoursWeight    = 0.6

	defaultConsistencyBonusCap = 0.06
	defaultMomentumBonusCap    = 0.03
	defaultNapBonusCap         = 0.05

	defaultPainBase       = 0.08
	defaultPainCap        = 0.20
	defaultSickScale      = 0.40
	defaultAlcoholCap     = 0.15
	defaultDisruptionCap  = 0.08
	defaultCaffeineAmount = 0.03

	defaultSoftClipSoftness = 0.02

	defaultOverloadWindow      = 6
	defaultOverloadMinSessions = 4
	defaultLoadTolerance       = 2.5

	defaultProfileMinDays = 7
)

// ScorerConfig holds all tunables for the readiness scorer. Weight maps
// must each sum to 1.0; ProcessWeights in the contract package enforces
// this for user-supplied overrides.
type ScorerConfig struct {
	Variant      ScorerVariant            // Normalization strategy: curve (default) or linear
	Weights      map[BreakdownKey]float64 // Top-level component weights
	StateWeights map[BreakdownKey]float64 // Energy/fatigue/stress/soreness split

	Sleep   SleepCurveConfig
	Bonus   BonusConfig
	Penalty PenaltyConfig

	SoftClipSoftness float64 // Taper width for the final soft clip
}

// SleepCurveConfig shapes the asymmetric sleep-hours curve.
type SleepCurveConfig struct {
	CenterFallback float64 // Personal median stand-in when no baseline exists
	MinFloor       float64 // Hard floor for the minimum acceptable hours
	BelowEdge0     float64 // Smootherstep lower edge under the center
	BelowEdge1     float64 // Smootherstep upper edge under the center
	BelowScale     float64 // Score ceiling for the under-center branch
	AboveSat       float64 // Saturation point for the over-center branch
	HoursWeight    float64 // Hours share of the hours/quality blend
}

// BonusConfig caps each additive bonus family.
type BonusConfig struct {
	ConsistencyCap float64
	MomentumCap    float64
	NapCap         float64
}

// PenaltyConfig bounds each penalty family. All penalties are scaled by
// the confidence modifier before subtraction.
type PenaltyConfig struct {
	PainBase       float64
	PainCap        float64
	SickScale      float64
	AlcoholCap     float64
	DisruptionCap  float64
	CaffeineAmount float64
}

// DefaultScorerConfig returns the scorer configuration used when no
// overrides are supplied.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		Variant:      CurveVariant,
		Weights:      GetDefaultWeights(CurveVariant),
		StateWeights: GetDefaultStateWeights(),
		Sleep: SleepCurveConfig{
			CenterFallback: defaultSleepCenterFallback,
			MinFloor:       defaultSleepMinFloor,
			BelowEdge0:     -0.2,
			BelowEdge1:     0.6,
			BelowScale:     0.85,
			AboveSat:       0.7,
			HoursWeight:    defaultSleepHoursWeight,
		},
		Bonus: BonusConfig{
			ConsistencyCap: defaultConsistencyBonusCap,
			MomentumCap:    defaultMomentumBonusCap,
			NapCap:         defaultNapBonusCap,
		},
		Penalty: PenaltyConfig{
			PainBase:       defaultPainBase,
			PainCap:        defaultPainCap,
			SickScale:      defaultSickScale,
			AlcoholCap:     defaultAlcoholCap,
			DisruptionCap:  defaultDisruptionCap,
			CaffeineAmount: defaultCaffeineAmount,
		},
		SoftClipSoftness: defaultSoftClipSoftness,
	}
}

// NearFailureRule tunes the sustained near-failure detector.
type NearFailureRule struct {
	K          int     // Trailing sessions inspected
	Proportion float64 // Minimum share of near-failure sessions
	MeanRIRMax float64 // Mean RIR at or below this confirms the streak
	Severity   float64
}

// DriftRule tunes the fixed-load drift detector.
type DriftRule struct {
	RepDrop   int     // Rep decline vs comparable baseline that counts as drift
	RIRDrop   float64 // RIR decline vs comparable baseline that counts as drift
	E1RMRatio float64 // e1RM below this fraction of baseline counts as drift
	Severity  float64
}

// VolatilityRule tunes the high-volatility detector.
type VolatilityRule struct {
	RepRange    int     // Rep spread at comparable load that counts as volatile
	E1RMCV      float64 // e1RM coefficient of variation that counts as volatile
	LowRIRShare float64 // Minimum share of low-RIR sessions to confirm
	Severity    float64
}

// PlateauRule tunes the plateau-with-rising-effort detector.
type PlateauRule struct {
	LoadChangeMax float64 // Median load change below this is a plateau
	RIRDrop       float64 // Mean RIR decline across halves that counts as rising effort
	SlopeMin      float64 // RIR slope below this counts as rising effort
	Severity      float64
}

// AdvancedOverrides tightens detector thresholds for advanced lifters,
// whose stable loading makes small declines meaningful.
type AdvancedOverrides struct {
	MinSessions   int     // Session count needed to qualify as advanced
	MaxLoadCV     float64 // Load coefficient of variation ceiling to qualify
	K             int     // Near-failure trailing window
	Proportion    float64 // Near-failure share
	E1RMRatio     float64 // Drift e1RM fraction
	SeverityScale float64 // Multiplier applied to all severities
}

// SeverityCap maps an aggregate overload score to a readiness ceiling.
// Caps are evaluated in descending score order; higher aggregate scores
// always produce equal-or-lower ceilings.
type SeverityCap struct {
	MinScore float64 // Aggregate severity at or above which the cap applies
	Cap      float64 // Readiness ceiling
	Reason   string  // Label recorded when the cap fires
}

// OverloadConfig holds all tunables for the overload detector.
type OverloadConfig struct {
	Window        int     // Sessions per exercise inspected
	MinSessions   int     // Minimum sessions before any detector runs
	LoadTolerance float64 // Absolute load band for comparable sessions (kg)

	NearFailure NearFailureRule
	Drift       DriftRule
	Volatility  VolatilityRule
	Plateau     PlateauRule
	Advanced    AdvancedOverrides

	Caps               []SeverityCap // Descending by MinScore
	RecoveryMultiplier float64       // Severity scale when recovery is compromised
}

// DefaultOverloadConfig returns the overload detector configuration used
// when no overrides are supplied.
func DefaultOverloadConfig() OverloadConfig {
	return OverloadConfig{
		Window:        defaultOverloadWindow,
		MinSessions:   defaultOverloadMinSessions,
		LoadTolerance: defaultLoadTolerance,
		NearFailure: NearFailureRule{
			K:          3,
			Proportion: 0.66,
			MeanRIRMax: 1.0,
			Severity:   30,
		},
		Drift: DriftRule{
			RepDrop:   1,
			RIRDrop:   1.0,
			E1RMRatio: 0.97,
			Severity:  20,
		},
		Volatility: VolatilityRule{
			RepRange:    2,
			E1RMCV:      0.04,
			LowRIRShare: 0.5,
			Severity:    10,
		},
		Plateau: PlateauRule{
			LoadChangeMax: 0.03,
			RIRDrop:       0.7,
			SlopeMin:      -0.2,
			Severity:      15,
		},
		Advanced: AdvancedOverrides{
			MinSessions:   12,
			MaxLoadCV:     0.05,
			K:             2,
			Proportion:    0.5,
			E1RMRatio:     0.985,
			SeverityScale: 1.2,
		},
		Caps: []SeverityCap{
			{MinScore: 60, Cap: 45, Reason: "NEURAL_OVERLOAD_SEVERE"},
			{MinScore: 45, Cap: 55, Reason: "NEURAL_OVERLOAD_HIGH"},
			{MinScore: 30, Cap: 65, Reason: "NEURAL_OVERLOAD_MOD"},
		},
		RecoveryMultiplier: 1.15,
	}
}

// DecisionConfig holds all tunables for the decision engine: zone bands,
// hard caps and the thresholds behind reason codes and action branches.
type DecisionConfig struct {
	PushMin   float64 // Zone band floor for push
	NormalMin float64 // Zone band floor for normal
	ReduceMin float64 // Zone band floor for reduce; below is deload

	FatigueCap   float64 // Ceiling on a high-strain day
	ShortSleep   float64 // Hours below which the sleep cap fires
	SleepCap     float64 // Ceiling under severe sleep debt
	GrindCap     float64 // Ceiling when performance drops under high effort
	LowSleep     float64 // Hours below which LOW_SLEEP is reported
	HighACWR     float64 // ACWR above which HIGH_ACWR is reported
	ElevatedACWR float64 // ACWR above which normal-zone volume is trimmed
	PerfDrop     float64 // Performance index below which PERF_DROP is reported
	HighEffort   float64 // Weighted effort at or above which HIGH_EFFORT is reported
	UnderstimRIR float64 // RIR at or above which a session may be understimulating
	UnderstimEff float64 // Effort at or below which a session may be understimulating
	ProgressPI   float64 // Performance index at or above which load progression is offered

	ObjectiveWeights map[BreakdownKey]float64 // Reported-only objective blend
}

// DefaultDecisionConfig returns the decision engine configuration used
// when no overrides are supplied.
func DefaultDecisionConfig() DecisionConfig {
	return DecisionConfig{
		PushMin:          80,
		NormalMin:        65,
		ReduceMin:        50,
		FatigueCap:       60,
		ShortSleep:       6.0,
		SleepCap:         55,
		GrindCap:         50,
		LowSleep:         6.5,
		HighACWR:         1.5,
		ElevatedACWR:     1.3,
		PerfDrop:         0.98,
		HighEffort:       8.5,
		UnderstimRIR:     4.0,
		UnderstimEff:     6.5,
		ProgressPI:       1.01,
		ObjectiveWeights: GetDefaultObjectiveWeights(),
	}
}

// ProfileConfig holds all tunables for the personalization analyzer.
type ProfileConfig struct {
	MinDays int // Complete history rows required before analysis runs

	ShortSleepMax     float64 // Mean sleep below this suggests a short sleeper
	ShortSleepMinRead float64 // Mean readiness required to confirm a short sleeper
	LongSleepMin      float64 // Mean sleep at or above this suggests a long sleeper
	ConsistentStdMax  float64 // Readiness std below this marks a consistent performer
	VariableStdMin    float64 // Readiness std above this marks a variable performer
	ACWRTolerantRMax  float64 // |r| below this marks ACWR tolerance
	ACWRSensitiveRMin float64 // |r| at or above this marks ACWR sensitivity
	ACWRExposureMin   float64 // Max observed ACWR needed before tolerance is claimed

	SleepWeightBoost float64 // Added to SleepWeight for sleep-responsive athletes
	SleepWeightTrim  float64 // Removed from SleepWeight for short sleepers
	ACWRWeightStep   float64 // ACWRWeight shift for tolerance/sensitivity
	RecoveryBoost    float64 // RecoverySpeed for short sleepers
	WeightFloor      float64 // Lower clamp for adjusted weights
	WeightCeil       float64 // Upper clamp for adjusted weights
}

// DefaultProfileConfig returns the personalization configuration used
// when no overrides are supplied.
func DefaultProfileConfig() ProfileConfig {
	return ProfileConfig{
		MinDays:           defaultProfileMinDays,
		ShortSleepMax:     6.5,
		ShortSleepMinRead: 60,
		LongSleepMin:      7.5,
		ConsistentStdMax:  8,
		VariableStdMin:    15,
		ACWRTolerantRMax:  0.2,
		ACWRSensitiveRMin: 0.5,
		ACWRExposureMin:   1.3,
		SleepWeightBoost:  0.10,
		SleepWeightTrim:   0.05,
		ACWRWeightStep:    0.05,
		RecoveryBoost:     1.15,
		WeightFloor:       0.05,
		WeightCeil:        0.45,
	}
}

// EngineConfig bundles the four component configurations. The zero value
// is not usable; construct with DefaultEngineConfig and override fields.
type EngineConfig struct {
	Scorer   ScorerConfig
	Overload OverloadConfig
	Decision DecisionConfig
	Profile  ProfileConfig
}

// DefaultEngineConfig returns the full default engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Scorer:   DefaultScorerConfig(),
		Overload: DefaultOverloadConfig(),
		Decision: DefaultDecisionConfig(),
		Profile:  DefaultProfileConfig(),
	}
}
