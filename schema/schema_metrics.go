package schema

import "time"

// LoadMetrics holds the objective training-load signals computed for one
// day from session history. Ratio fields are nil when their denominator
// window has no data, so a missing signal never masquerades as a real
// value downstream.
type LoadMetrics struct {
	Date        time.Time `json:"date"`
	DailyVolume float64   `json:"daily_volume"` // Sum of top-set load x reps
	AcuteLoad   float64   `json:"acute_load"`   // Trailing 7-day volume
	ChronicLoad float64   `json:"chronic_load"` // Trailing 28-day volume / 4

	ACWR             *float64 `json:"acwr,omitempty"`
	PerformanceIndex *float64 `json:"performance_index,omitempty"`
	PerformanceMean7 *float64 `json:"performance_mean_7,omitempty"` // Trailing 7-day mean of the index
	RIRWeighted      *float64 `json:"rir_weighted,omitempty"`       // Volume-weighted RIR for the day
	Effort           *float64 `json:"effort,omitempty"`             // 10 - RIRWeighted

	Monotony    *float64 `json:"monotony,omitempty"` // Weekly mean/std of daily volume
	Strain      *float64 `json:"strain,omitempty"`   // Weekly volume x monotony
	FatigueFlag bool     `json:"fatigue_flag"`       // High volume day on short sleep
}

// ExerciseTrend summarizes one exercise's strength trajectory for the
// metrics view.
type ExerciseTrend struct {
	Exercise         string    `json:"exercise"`
	Sessions         int       `json:"sessions"`
	LastDate         time.Time `json:"last_date"`
	LatestE1RM       float64   `json:"latest_e1rm"`
	BestE1RM         float64   `json:"best_e1rm"`
	TrailingMeanE1RM float64   `json:"trailing_mean_e1rm"`
	PerformanceIndex float64   `json:"performance_index"` // Latest vs trailing mean
	MeanRIR          *float64  `json:"mean_rir,omitempty"`
}

// MetricsOutput is the full objective metrics view: the per-day load
// series plus per-exercise strength trends.
type MetricsOutput struct {
	Days      []LoadMetrics   `json:"days"`
	Exercises []ExerciseTrend `json:"exercises"`
}
