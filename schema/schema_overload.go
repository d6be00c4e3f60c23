package schema

// OverloadFlag is one detector firing for one exercise. Evidence holds
// the numeric observations that triggered it, keyed by measure name.
type OverloadFlag struct {
	Kind            FlagKind           `json:"kind"`
	Exercise        string             `json:"exercise"`
	Severity        float64            `json:"severity"`
	Evidence        map[string]float64 `json:"evidence,omitempty"`
	Recommendations []string           `json:"recommendations,omitempty"`
}

// ExerciseAssessment groups the flags raised for a single exercise.
type ExerciseAssessment struct {
	Exercise string         `json:"exercise"`
	Sessions int            `json:"sessions"` // Sessions inspected within the window
	Advanced bool           `json:"advanced"` // Advanced-lifter thresholds were applied
	Flags    []OverloadFlag `json:"flags,omitempty"`
}

// OverloadAssessment aggregates detector output across all exercises.
// Score is the summed severity after the recovery cross-check; Cap is
// the readiness ceiling it maps to, zero when no cap applies.
type OverloadAssessment struct {
	Exercises []ExerciseAssessment `json:"exercises,omitempty"`
	Flags     []OverloadFlag       `json:"flags,omitempty"` // Flattened convenience view
	Score     float64              `json:"score"`
	Cap       float64              `json:"cap,omitempty"`
	CapReason string               `json:"cap_reason,omitempty"`
	Cause     OverloadCause        `json:"cause,omitempty"`
}

// Flagged reports whether any detector fired.
func (a *OverloadAssessment) Flagged() bool {
	return len(a.Flags) > 0
}

// ApplyCap returns the readiness score limited by the assessment's cap.
func (a *OverloadAssessment) ApplyCap(readiness float64) float64 {
	if a.Cap > 0 && readiness > a.Cap {
		return a.Cap
	}
	return readiness
}
