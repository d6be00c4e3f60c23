package schema

import "strings"

// Ptr returns a pointer to v. It keeps record literals readable in
// loaders and tests.
func Ptr[T any](v T) *T {
	return &v
}

// FloatOr dereferences p, falling back to def when p is nil.
func FloatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// IntOr dereferences p, falling back to def when p is nil.
func IntOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// IntAsFloat dereferences an integer pointer as a float64, falling back
// to def when p is nil.
func IntAsFloat(p *int, def float64) float64 {
	if p == nil {
		return def
	}
	return float64(*p)
}

// FormatReasonCodes joins codes with a pipe separator, rendering NONE
// for an empty set.
func FormatReasonCodes(codes []ReasonCode) string {
	if len(codes) == 0 {
		return string(ReasonNone)
	}
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, "|")
}

// ParseReasonCodes splits a pipe-joined code string back into codes.
// NONE and empty strings parse to an empty slice.
func ParseReasonCodes(joined string) []ReasonCode {
	joined = strings.TrimSpace(joined)
	if joined == "" || joined == string(ReasonNone) {
		return nil
	}
	var codes []ReasonCode
	for part := range strings.SplitSeq(joined, "|") {
		part = strings.TrimSpace(part)
		if part != "" {
			codes = append(codes, ReasonCode(part))
		}
	}
	return codes
}

// CriticalPainZones lists body-area tokens where pain warrants the
// stronger penalty multiplier. Matched as substrings so free-text
// entries like "lower back" or "left knee" still hit.
var CriticalPainZones = []string{"back", "spine", "shoulder", "knee", "hip"}

// IsCriticalPainZone reports whether the given body area is treated as
// critical for the pain penalty. Matching is case-insensitive.
func IsCriticalPainZone(zone string) bool {
	normalized := strings.ToLower(zone)
	for _, token := range CriticalPainZones {
		if strings.Contains(normalized, token) {
			return true
		}
	}
	return false
}
