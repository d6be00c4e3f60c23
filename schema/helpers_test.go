package schema_test

import (
	"testing"

	"github.com/redlinelab/redline/schema"
	"github.com/stretchr/testify/assert"
)

func TestFormatReasonCodes(t *testing.T) {
	tests := []struct {
		name     string
		codes    []schema.ReasonCode
		expected string
	}{
		{"Empty renders NONE", nil, "NONE"},
		{"Single code", []schema.ReasonCode{schema.ReasonLowSleep}, "LOW_SLEEP"},
		{
			"Multiple codes pipe-joined",
			[]schema.ReasonCode{schema.ReasonLowSleep, schema.ReasonHighACWR, schema.ReasonNeuralOver},
			"LOW_SLEEP|HIGH_ACWR|NEURAL_OVERLOAD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.FormatReasonCodes(tt.codes))
		})
	}
}

func TestParseReasonCodes(t *testing.T) {
	tests := []struct {
		name     string
		joined   string
		expected []schema.ReasonCode
	}{
		{"NONE parses empty", "NONE", nil},
		{"Empty string parses empty", "", nil},
		{"Single code", "PERF_DROP", []schema.ReasonCode{schema.ReasonPerfDrop}},
		{
			"Joined codes with spaces",
			"LOW_SLEEP| HIGH_ACWR |FATIGUE",
			[]schema.ReasonCode{schema.ReasonLowSleep, schema.ReasonHighACWR, schema.ReasonFatigue},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.ParseReasonCodes(tt.joined))
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	codes := []schema.ReasonCode{schema.ReasonHighEffort, schema.ReasonHighStrainDay}
	assert.Equal(t, codes, schema.ParseReasonCodes(schema.FormatReasonCodes(codes)))
}

func TestIsCriticalPainZone(t *testing.T) {
	tests := []struct {
		zone     string
		expected bool
	}{
		{"lower_back", true},
		{"Lower Back", true}, // case and spacing tolerated
		{"KNEE", true},
		{"left knee", true}, // free text matched by token
		{"shoulder", true},
		{"forearm", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.IsCriticalPainZone(tt.zone))
		})
	}
}

func TestPointerHelpers(t *testing.T) {
	assert.Equal(t, 7.5, schema.FloatOr(schema.Ptr(7.5), 7.0))
	assert.Equal(t, 7.0, schema.FloatOr(nil, 7.0))
	assert.Equal(t, 3, schema.IntOr(schema.Ptr(3), 5))
	assert.Equal(t, 5, schema.IntOr(nil, 5))
	assert.Equal(t, 4.0, schema.IntAsFloat(schema.Ptr(4), 5))
	assert.Equal(t, 5.0, schema.IntAsFloat(nil, 5))
}
