package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redlinelab/redline/schema"
)

func defaultEngine() *DecisionEngine {
	return NewDecisionEngine(schema.DefaultDecisionConfig())
}

func restDay(sleep float64) schema.DailyRecord {
	return schema.DailyRecord{Date: testDate(15), SleepHours: schema.Ptr(sleep)}
}

// TestDecideZones maps uncapped scores straight onto the zone bands.
func TestDecideZones(t *testing.T) {
	e := defaultEngine()

	tests := []struct {
		name   string
		score  float64
		zone   schema.Zone
		action string
	}{
		{"push", 80, schema.PushZone, "+1 set (key lift)"},
		{"normal", 79, schema.NormalZone, "maintain load, target RIR 1-2"},
		{"reduce", 64, schema.ReduceZone, "-20% volume, avoid RIR 0-1"},
		{"deload", 49, schema.DeloadZone, "-30% to -50% volume, target RIR 3-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Decide(restDay(7.5), schema.ScoreResult{Score: tt.score}, schema.LoadMetrics{}, schema.OverloadAssessment{})

			assert.Equal(t, tt.zone, res.Zone)
			assert.Equal(t, tt.action, res.Action)
			assert.Equal(t, tt.score, res.Final)
			assert.False(t, res.Capped())
			assert.Empty(t, res.ReasonCodes)
		})
	}
}

// TestDecideCapStacking fires all four caps on one day and checks they
// apply in order, each recording its value.
func TestDecideCapStacking(t *testing.T) {
	e := defaultEngine()

	rec := restDay(5.0)
	m := schema.LoadMetrics{
		FatigueFlag:      true,
		PerformanceIndex: schema.Ptr(0.97),
		Effort:           schema.Ptr(9.0),
	}
	overload := schema.OverloadAssessment{
		Flags: []schema.OverloadFlag{
			{Kind: schema.FlagSustainedNearFailure, Exercise: "squat", Severity: 30},
		},
		Score:     30,
		Cap:       65,
		CapReason: "NEURAL_OVERLOAD_MOD",
		Cause:     schema.NeuralDriven,
	}

	res := e.Decide(rec, schema.ScoreResult{Score: 90}, m, overload)

	assert.Equal(t, 90.0, res.Readiness)
	assert.Equal(t, 50.0, res.Final)
	require.Len(t, res.Caps, 4)
	assert.Equal(t, schema.AppliedCap{Source: "overload", Value: 65}, res.Caps[0])
	assert.Equal(t, schema.AppliedCap{Source: "fatigue_flag", Value: 60}, res.Caps[1])
	assert.Equal(t, schema.AppliedCap{Source: "sleep_debt", Value: 55}, res.Caps[2])
	assert.Equal(t, schema.AppliedCap{Source: "grind", Value: 50}, res.Caps[3])

	assert.Equal(t, schema.ReduceZone, res.Zone)
	assert.Equal(t, "-20% volume, avoid RIR 0-1", res.Action)
	assert.Equal(t, []schema.ReasonCode{
		schema.ReasonLowSleep,
		schema.ReasonPerfDrop,
		schema.ReasonHighEffort,
		schema.ReasonFatigue,
		schema.ReasonNeuralOver,
	}, res.ReasonCodes)
	assert.Equal(t, schema.StatusRedirect, res.Status)

	require.Len(t, res.Constraints, 1)
	assert.Equal(t, "squat", res.Constraints[0].Exercise)
	assert.Equal(t, []string{"NO_RIR0", "BACKOFF_ONLY"}, res.Constraints[0].Constraints)
}

// TestDecideCapSkipsWhenBelow only records caps that actually lower the
// score.
func TestDecideCapSkipsWhenBelow(t *testing.T) {
	e := defaultEngine()

	m := schema.LoadMetrics{FatigueFlag: true}
	overload := schema.OverloadAssessment{Score: 30, Cap: 65}

	res := e.Decide(restDay(6.5), schema.ScoreResult{Score: 62}, m, overload)

	require.Len(t, res.Caps, 1)
	assert.Equal(t, "fatigue_flag", res.Caps[0].Source)
	assert.Equal(t, 60.0, res.Final)
	assert.Equal(t, schema.ReduceZone, res.Zone)
	assert.Equal(t, schema.StatusGoWithLimits, res.Status)
}

// TestActionFor exercises the in-zone branches directly.
func TestActionFor(t *testing.T) {
	e := defaultEngine()
	rec := restDay(7.5)

	t.Run("push progresses load on a strong index", func(t *testing.T) {
		m := schema.LoadMetrics{PerformanceIndex: schema.Ptr(1.02)}
		assert.Equal(t, "+2.5% load (key lift)", e.actionFor(schema.PushZone, rec, m))
	})

	t.Run("push adds volume otherwise", func(t *testing.T) {
		m := schema.LoadMetrics{PerformanceIndex: schema.Ptr(1.0)}
		assert.Equal(t, "+1 set (key lift)", e.actionFor(schema.PushZone, rec, m))
	})

	t.Run("push nudges an understimulated session", func(t *testing.T) {
		m := schema.LoadMetrics{RIRWeighted: schema.Ptr(4.5), Effort: schema.Ptr(5.5)}
		assert.Equal(t, "+1 set (key lift) or target RIR 1-2", e.actionFor(schema.PushZone, rec, m))
	})

	t.Run("normal trims volume on elevated workload", func(t *testing.T) {
		m := schema.LoadMetrics{ACWR: schema.Ptr(1.4)}
		assert.Equal(t, "maintain load, -10% volume", e.actionFor(schema.NormalZone, rec, m))
	})

	t.Run("reduce keeps the trim moderate on a held index", func(t *testing.T) {
		m := schema.LoadMetrics{PerformanceIndex: schema.Ptr(1.0)}
		assert.Equal(t, "-15% volume, keep technique, target RIR 2-3", e.actionFor(schema.ReduceZone, rec, m))
	})

	t.Run("deload after short sleep suggests full rest", func(t *testing.T) {
		m := schema.LoadMetrics{}
		assert.Equal(t, "-40% volume at RIR 3-5, or full rest", e.actionFor(schema.DeloadZone, restDay(5.0), m))
	})
}

// TestReasonCodesOrder fires every code at once and checks the fixed
// ordering.
func TestReasonCodesOrder(t *testing.T) {
	e := defaultEngine()

	rec := restDay(6.0)
	m := schema.LoadMetrics{
		ACWR:             schema.Ptr(1.6),
		PerformanceIndex: schema.Ptr(0.97),
		Effort:           schema.Ptr(9.0),
		RIRWeighted:      schema.Ptr(0.5),
		FatigueFlag:      true,
	}
	overload := schema.OverloadAssessment{
		Flags: []schema.OverloadFlag{{Kind: schema.FlagSustainedNearFailure, Exercise: "squat", Severity: 30}},
	}

	codes := e.reasons(rec, m, overload)

	assert.Equal(t, []schema.ReasonCode{
		schema.ReasonLowSleep,
		schema.ReasonHighACWR,
		schema.ReasonPerfDrop,
		schema.ReasonHighEffort,
		schema.ReasonFatigue,
		schema.ReasonHighStrainDay,
		schema.ReasonNeuralOver,
	}, codes)
}

// TestReasonCodesUnderstim flags a sandbagged session.
func TestReasonCodesUnderstim(t *testing.T) {
	e := defaultEngine()

	m := schema.LoadMetrics{RIRWeighted: schema.Ptr(4.5), Effort: schema.Ptr(5.5)}
	codes := e.reasons(restDay(7.5), m, schema.OverloadAssessment{})

	assert.Equal(t, []schema.ReasonCode{schema.ReasonUnderstim}, codes)
}

// TestObjectiveScore pins the reference blend and the nil gates.
func TestObjectiveScore(t *testing.T) {
	e := defaultEngine()

	t.Run("reference day", func(t *testing.T) {
		rec := schema.DailyRecord{
			Date:         testDate(15),
			SleepHours:   schema.Ptr(7.5),
			SleepQuality: schema.Ptr(4),
		}
		m := schema.LoadMetrics{
			PerformanceIndex: schema.Ptr(1.0),
			PerformanceMean7: schema.Ptr(1.0),
			ACWR:             schema.Ptr(1.0),
			RIRWeighted:      schema.Ptr(2.0),
		}

		got := e.ObjectiveScore(rec, m)
		require.NotNil(t, got)
		assert.InDelta(t, 79.0, *got, 1e-9)
	})

	t.Run("missing soft signals fall back to neutral", func(t *testing.T) {
		rec := restDay(7.5)
		m := schema.LoadMetrics{PerformanceIndex: schema.Ptr(1.0)}

		got := e.ObjectiveScore(rec, m)
		require.NotNil(t, got)
		assert.InDelta(t, 63.0, *got, 1e-9)
	})

	t.Run("nil without sleep hours", func(t *testing.T) {
		m := schema.LoadMetrics{PerformanceIndex: schema.Ptr(1.0)}
		assert.Nil(t, e.ObjectiveScore(schema.DailyRecord{}, m))
	})

	t.Run("nil without a performance index", func(t *testing.T) {
		assert.Nil(t, e.ObjectiveScore(restDay(7.5), schema.LoadMetrics{}))
	})
}

// TestObjectiveACWRScore traces the piecewise sweet-spot curve.
func TestObjectiveACWRScore(t *testing.T) {
	assert.Equal(t, 0.5, objectiveACWRScore(nil))

	tests := []struct {
		acwr     float64
		expected float64
	}{
		{0.5, 0.6},
		{0.6, 0.7},
		{0.7, 0.85},
		{0.8, 1.0},
		{1.3, 1.0},
		{1.4, 0.8},
		{1.5, 0.6},
		{1.6, 0.48},
		{2.1, 0.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, objectiveACWRScore(schema.Ptr(tt.acwr)), 1e-9, "acwr=%v", tt.acwr)
	}
}

// TestObjectiveRIRScore rewards the 1-3 band and punishes grinding.
func TestObjectiveRIRScore(t *testing.T) {
	assert.Equal(t, 0.5, objectiveRIRScore(nil))

	tests := []struct {
		rir      float64
		expected float64
	}{
		{0, 0},
		{0.5, 0},
		{0.75, 0.5},
		{1, 1.0},
		{3, 1.0},
		{3.5, 0.8},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, objectiveRIRScore(schema.Ptr(tt.rir)), 1e-9, "rir=%v", tt.rir)
	}
}

// TestDayStatus covers all four statuses and the nil-signal policies.
func TestDayStatus(t *testing.T) {
	e := defaultEngine()

	type sample struct {
		name     string
		final    float64
		rec      schema.DailyRecord
		m        schema.LoadMetrics
		overload schema.OverloadAssessment
		want     schema.DayStatus
	}

	tests := []sample{
		{
			name:  "full go",
			final: 85,
			rec:   restDay(7.5),
			m:     schema.LoadMetrics{ACWR: schema.Ptr(1.0)},
			want:  schema.StatusGo,
		},
		{
			name:  "go needs logged sleep",
			final: 85,
			rec:   schema.DailyRecord{Date: testDate(15)},
			m:     schema.LoadMetrics{ACWR: schema.Ptr(1.0)},
			want:  schema.StatusGoWithLimits,
		},
		{
			name:  "elevated workload limits the day",
			final: 85,
			rec:   restDay(7.5),
			m:     schema.LoadMetrics{ACWR: schema.Ptr(1.3)},
			want:  schema.StatusGoWithLimits,
		},
		{
			name:  "middling score with decent sleep",
			final: 70,
			rec:   restDay(6.5),
			m:     schema.LoadMetrics{ACWR: schema.Ptr(1.4)},
			want:  schema.StatusGoWithLimits,
		},
		{
			name:     "severe overload forces recovery",
			final:    70,
			rec:      restDay(7.5),
			overload: schema.OverloadAssessment{Score: 80},
			want:     schema.StatusRecover,
		},
		{
			name:  "cratered score forces recovery",
			final: 30,
			rec:   restDay(7.5),
			want:  schema.StatusRecover,
		},
		{
			name:  "very short sleep forces recovery",
			final: 70,
			rec:   restDay(4.5),
			want:  schema.StatusRecover,
		},
		{
			name:     "everything else redirects",
			final:    55,
			rec:      restDay(6.5),
			overload: schema.OverloadAssessment{Score: 65},
			want:     schema.StatusRedirect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.dayStatus(tt.final, tt.rec, tt.m, tt.overload))
		})
	}
}

// TestLiftConstraints ranks flags and expands each into its guard
// rails.
func TestLiftConstraints(t *testing.T) {
	assert.Nil(t, LiftConstraints(nil))

	flags := []schema.OverloadFlag{
		{Kind: schema.FlagPlateauEffortRise, Exercise: "bench", Severity: 15},
		{Kind: schema.FlagSustainedNearFailure, Exercise: "squat", Severity: 30},
	}

	out := LiftConstraints(flags)
	require.Len(t, out, 2)

	assert.Equal(t, "squat", out[0].Exercise)
	assert.Equal(t, []string{"NO_RIR0", "BACKOFF_ONLY"}, out[0].Constraints)
	assert.Equal(t, schema.FlagSustainedNearFailure, out[0].Why)
	assert.Equal(t, 30.0, out[0].Severity)

	assert.Equal(t, "bench", out[1].Exercise)
	assert.Equal(t, []string{"SWAP_VARIANT", "VOLUME_CAP_-25%"}, out[1].Constraints)
}
