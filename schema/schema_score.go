package schema

import "time"

// ScoreResult holds the output of a single readiness evaluation.
// Score is on the 0-100 scale, rounded to whole points. Breakdown maps
// each weighted component plus the bonus and penalty totals to its
// contribution on the 0-1 scale, so the pieces recombine into the
// pre-clip base.
type ScoreResult struct {
	Date            time.Time                `json:"date"`
	Score           float64                  `json:"score"`
	Base            float64                  `json:"base"`    // Weighted component sum, 0-1
	Bonus           float64                  `json:"bonus"`   // Summed bonuses, 0-1 scale
	Penalty         float64                  `json:"penalty"` // Summed scaled penalties, 0-1 scale
	ConfidenceScore float64                  `json:"confidence_score"`
	Confidence      ConfidenceLevel          `json:"confidence"`
	Variant         ScorerVariant            `json:"variant"`
	Breakdown       map[BreakdownKey]float64 `json:"breakdown,omitempty"`
	Explanations    []string                 `json:"explanations,omitempty"`
}

// AdjustmentFactors carries the personalized modifiers fed back into the
// scorer and the decision blend. The zero value is not meaningful; use
// DefaultAdjustmentFactors as the neutral starting point.
type AdjustmentFactors struct {
	SleepWeight        float64 `json:"sleep_weight"`        // Decision-blend sleep share; scorer scales from it
	PerformanceWeight  float64 `json:"performance_weight"`  // Decision-blend performance share
	ACWRWeight         float64 `json:"acwr_weight"`         // Decision-blend workload share
	FatigueSensitivity float64 `json:"fatigue_sensitivity"` // Scales fatigue/stress inputs, 1.0 = neutral
	RecoverySpeed      float64 `json:"recovery_speed"`      // Divides soreness input, 1.0 = neutral
}

// DefaultAdjustmentFactors returns the neutral adjustment set used until
// personalization has enough history to say otherwise.
func DefaultAdjustmentFactors() AdjustmentFactors {
	return AdjustmentFactors{
		SleepWeight:        0.25,
		PerformanceWeight:  0.25,
		ACWRWeight:         0.15,
		FatigueSensitivity: 1.0,
		RecoverySpeed:      1.0,
	}
}
