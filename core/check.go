package core

import (
	"fmt"
	"slices"

	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/schema"
)

// GetCheckResults evaluates the anchor day and gates it against the
// configured readiness floor and fail zones. The result reports every
// violated condition; exit-code policy belongs to the caller.
func GetCheckResults(cfg *contract.Config, provider contract.HistoryProvider) (*schema.CheckResult, error) {
	ev, err := prepareEvaluation(cfg, provider)
	if err != nil {
		return nil, err
	}
	day := ev.EvaluateDay(len(ev.days) - 1)
	return evaluateGate(cfg, day), nil
}

// evaluateGate checks one analyzed day against the gate thresholds. The
// gate reads the final capped value, so an overload or sleep cap can
// fail a day whose raw score would have passed.
func evaluateGate(cfg *contract.Config, day schema.DayAnalysis) *schema.CheckResult {
	result := &schema.CheckResult{
		Date:         day.Date,
		Readiness:    day.Decision.Final,
		Zone:         day.Decision.Zone,
		MinReadiness: cfg.MinReadiness,
		FailZones:    cfg.FailZones,
	}

	if day.Decision.Final < cfg.MinReadiness {
		result.Failures = append(result.Failures,
			fmt.Sprintf("readiness %.1f below floor %.1f", day.Decision.Final, cfg.MinReadiness))
	}
	if slices.Contains(cfg.FailZones, day.Decision.Zone) {
		result.Failures = append(result.Failures,
			fmt.Sprintf("zone %s is in the fail set", day.Decision.Zone))
	}

	result.Passed = len(result.Failures) == 0
	return result
}
