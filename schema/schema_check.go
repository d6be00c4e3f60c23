package schema

import "time"

// CheckResult holds the outcome of a readiness gate evaluation.
type CheckResult struct {
	Passed       bool      `json:"passed"`
	Date         time.Time `json:"date"`
	Readiness    float64   `json:"readiness"` // Final (capped) score the gate saw
	Zone         Zone      `json:"zone"`
	MinReadiness float64   `json:"min_readiness"` // Configured floor
	FailZones    []Zone    `json:"fail_zones,omitempty"`
	Failures     []string  `json:"failures,omitempty"` // One entry per violated condition
}
