// Package schema has configs, models and constants for all parts of redline.
package schema

import "time"

// DailyRecord represents one day of wellness check-in data for an athlete.
// Self-reported fields are pointers so that a missing entry is
// distinguishable from a reported zero; the scorer substitutes neutral
// midpoints for absent values and tracks completeness separately.
// Objective fields are derived from session history by the load metrics
// pass, and the readiness fields are filled in by the engine itself.
type DailyRecord struct {
	Date time.Time `json:"date"`

	// Self-reported wellness (morning check-in).
	SleepHours   *float64 `json:"sleep_hours,omitempty"`   // Total sleep duration in hours
	SleepQuality *int     `json:"sleep_quality,omitempty"` // Subjective quality, 1 (poor) to 5 (excellent)
	Energy       *int     `json:"energy,omitempty"`        // Energy level, 0-10
	Fatigue      *int     `json:"fatigue,omitempty"`       // General fatigue, 0-10
	Soreness     *int     `json:"soreness,omitempty"`      // Muscle soreness, 0-10
	Stress       *int     `json:"stress,omitempty"`        // Life stress, 0-10
	Motivation   *int     `json:"motivation,omitempty"`    // Willingness to train, 0-10
	Perceived    *int     `json:"perceived,omitempty"`     // Self-rated readiness, 0-10

	// Lifestyle and symptom signals.
	PainFlag       bool   `json:"pain_flag,omitempty"`       // Any localized pain reported
	PainSeverity   *int   `json:"pain_severity,omitempty"`   // Pain severity, 0-10
	PainZone       string `json:"pain_zone,omitempty"`       // Body area, e.g. "knee", "lower_back"
	Stiffness      *int   `json:"stiffness,omitempty"`       // Joint stiffness, 0-10
	SickLevel      *int   `json:"sick_level,omitempty"`      // Illness severity, 0 (healthy) to 5
	CaffeineLevel  *int   `json:"caffeine_level,omitempty"`  // Caffeine intake, 0-5
	AlcoholFlag    bool   `json:"alcohol_flag,omitempty"`    // Alcohol consumed the prior evening
	SleepDisrupted bool   `json:"sleep_disrupted,omitempty"` // Fragmented or interrupted sleep
	NapMinutes     *int   `json:"nap_minutes,omitempty"`     // Daytime nap duration in minutes

	// Objective signals derived from session history.
	PerformanceIndex *float64 `json:"performance_index,omitempty"` // e1RM vs trailing mean, 1.0 = flat
	ACWR             *float64 `json:"acwr,omitempty"`              // Acute:chronic workload ratio
	RIRWeighted      *float64 `json:"rir_weighted,omitempty"`      // Volume-weighted RIR of the session

	// Derived by the engine.
	Readiness  *float64 `json:"readiness,omitempty"`  // Readiness score, 0-100
	Confidence *float64 `json:"confidence,omitempty"` // Scorer confidence, 0-1
}

// SessionRecord represents the top working set of one exercise on one day.
// E1RM is computed from load, reps and RIR when not supplied.
type SessionRecord struct {
	Date     time.Time `json:"date"`
	Exercise string    `json:"exercise"`
	Load     float64   `json:"load"` // Top-set load in kg
	Reps     int       `json:"reps"` // Top-set repetitions
	RIR      *float64  `json:"rir,omitempty"`
	RPE      *float64  `json:"rpe,omitempty"`
	E1RM     float64   `json:"e1rm,omitempty"` // Estimated 1RM (Epley with RIR-effective reps)
}

// Quantiles summarizes the distribution of one tracked signal.
type Quantiles struct {
	P25  float64 `json:"p25"`
	P50  float64 `json:"p50"`
	P75  float64 `json:"p75"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// Baseline holds per-athlete reference distributions computed over the
// trailing history window. The scorer anchors its sleep curve on the
// sleep median and the overload cross-check compares recent sleep
// against it. A zero-valued Baseline (Days == 0) means no history was
// available and callers fall back to population defaults.
type Baseline struct {
	Days        int       `json:"days"` // History rows the baseline was computed from
	Sleep       Quantiles `json:"sleep"`
	Readiness   Quantiles `json:"readiness"`
	DailyVolume Quantiles `json:"daily_volume"`
}
