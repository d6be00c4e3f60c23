package schema

import "time"

// AppliedCap records one ceiling that lowered the decision score.
type AppliedCap struct {
	Source string  `json:"source"` // Which rule fired, e.g. "overload", "sleep_debt"
	Value  float64 `json:"value"`
}

// LiftConstraint is the per-exercise guard rail derived from an overload
// flag: what to restrict today and which flag justifies it.
type LiftConstraint struct {
	Exercise    string   `json:"exercise"`
	Constraints []string `json:"constraints"`
	Why         FlagKind `json:"why"`
	Severity    float64  `json:"severity"`
}

// DecisionResult is the training directive for one day. Readiness is the
// raw scorer output; Final is the value after overload and decision caps
// and is what the zone bands were evaluated against. ObjectiveScore is a
// reported-only blend of load and sleep metrics, nil when the day lacks
// the sleep hours or performance index it needs.
type DecisionResult struct {
	Date           time.Time        `json:"date"`
	Zone           Zone             `json:"zone"`
	Status         DayStatus        `json:"status"`
	Action         string           `json:"action"`
	ReasonCodes    []ReasonCode     `json:"reason_codes"`
	Readiness      float64          `json:"readiness"`
	Final          float64          `json:"final"`
	ObjectiveScore *float64         `json:"objective_score,omitempty"`
	Caps           []AppliedCap     `json:"caps,omitempty"`
	Constraints    []LiftConstraint `json:"constraints,omitempty"`
}

// Capped reports whether any ceiling lowered the raw readiness score.
func (d *DecisionResult) Capped() bool {
	return len(d.Caps) > 0
}

// RiskAssessment is the additive injury risk estimate for one day.
type RiskAssessment struct {
	Score   float64  `json:"score"` // 0-100
	Band    RiskBand `json:"band"`
	Drivers []string `json:"drivers,omitempty"` // Conditions that contributed
}

// DayAnalysis bundles everything the pipeline computed for one day. It
// is the row type for range evaluation, rendering, and the result store.
type DayAnalysis struct {
	Date        time.Time          `json:"date"`
	Score       ScoreResult        `json:"score"`
	Metrics     LoadMetrics        `json:"metrics"`
	Overload    OverloadAssessment `json:"overload"`
	Decision    DecisionResult     `json:"decision"`
	Risk        RiskAssessment     `json:"risk"`
	FatigueType FatigueType        `json:"fatigue_type"`
	Percentile  float64            `json:"percentile"` // Readiness standing vs trailing 28 days
}
