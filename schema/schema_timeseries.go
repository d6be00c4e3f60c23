package schema

import "time"

// TrendPoint represents a single day in the readiness timeline.
type TrendPoint struct {
	Date       time.Time       `json:"date"`
	Readiness  float64         `json:"readiness"` // Raw scorer output
	Final      float64         `json:"final"`     // After overload and decision caps
	Zone       Zone            `json:"zone"`
	Confidence ConfidenceLevel `json:"confidence"`
	ACWR       *float64        `json:"acwr,omitempty"`
	Volume     float64         `json:"volume"`
}

// TrendResult holds the readiness timeline points.
type TrendResult struct {
	Points []TrendPoint `json:"points"`
}
