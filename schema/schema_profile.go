package schema

// SleepResponse summarizes how an athlete's readiness tracks their sleep.
// R and PValue are nil when fewer than the minimum complete rows were
// available, or when either series is constant.
type SleepResponse struct {
	R          *float64            `json:"r,omitempty"`       // Pearson correlation, sleep hours vs readiness
	PValue     *float64            `json:"p_value,omitempty"` // Two-sided p-value for R
	N          int                 `json:"n"`                 // Paired observations used
	Strength   CorrelationStrength `json:"strength"`
	Responsive bool                `json:"responsive"` // Strength is moderate or stronger and positive
}

// ArchetypeMatch is one recognized response pattern with the evidence
// behind it.
type ArchetypeMatch struct {
	Label      ArchetypeLabel `json:"label"`
	Confidence float64        `json:"confidence"` // 0-1
	Basis      string         `json:"basis"`      // Human-readable evidence summary
}

// DataQuality reports how much of the history was usable.
type DataQuality struct {
	TotalDays     int                `json:"total_days"`
	CompleteDays  int                `json:"complete_days"` // Rows with all key fields present
	FieldCoverage map[string]float64 `json:"field_coverage,omitempty"`
}

// AthleteProfile is the full personalization output: correlation
// analysis, archetype classification, the adjustment factors derived
// from them, and threshold-rule insights. A profile built from
// insufficient history carries default adjustments, zero-confidence
// archetypes and a nil correlation.
type AthleteProfile struct {
	SleepResponse SleepResponse     `json:"sleep_response"`
	Archetypes    []ArchetypeMatch  `json:"archetypes,omitempty"`
	Primary       ArchetypeLabel    `json:"primary"`
	Adjustments   AdjustmentFactors `json:"adjustments"`
	FatigueType   FatigueType       `json:"fatigue_type"`
	Quality       DataQuality       `json:"quality"`
	Insights      []string          `json:"insights,omitempty"`
}

// Sufficient reports whether the profile was built from enough history
// for its adjustments to diverge from the defaults.
func (p *AthleteProfile) Sufficient() bool {
	return p.SleepResponse.R != nil || len(p.Archetypes) > 0
}
