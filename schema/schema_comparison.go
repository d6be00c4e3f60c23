package schema

import "time"

// WindowSummary aggregates one trailing window for comparison.
type WindowSummary struct {
	Label string    `json:"label"` // e.g. "current", "previous"
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  int       `json:"days"` // Evaluated days in the window

	MeanReadiness float64      `json:"mean_readiness"`
	MeanSleep     float64      `json:"mean_sleep"`
	TotalVolume   float64      `json:"total_volume"`
	MeanACWR      *float64     `json:"mean_acwr,omitempty"`
	ZoneCounts    map[Zone]int `json:"zone_counts"`
	FlagCount     int          `json:"flag_count"` // Overload flags active in the window
}

// ComparisonResult holds two window summaries and their deltas.
// Positive deltas mean the target window is higher than the base.
type ComparisonResult struct {
	Base   WindowSummary `json:"base"`
	Target WindowSummary `json:"target"`

	DeltaReadiness float64 `json:"delta_readiness"`
	DeltaSleep     float64 `json:"delta_sleep"`
	DeltaVolume    float64 `json:"delta_volume"`
	DeltaFlags     int     `json:"delta_flags"`
}
