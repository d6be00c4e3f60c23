package core

import (
	"math"

	"github.com/redlinelab/redline/schema"
)

// Injury risk contributions. Each condition adds a fixed number of
// points; the sum is capped at 100 and banded. Effort here uses a lower
// bar than the decision engine's HIGH_EFFORT code because risk
// accumulates before performance visibly drops.
const (
	riskACWRHigh      = 1.5
	riskACWRElevated  = 1.3
	riskShortSleep    = 6.5
	riskModestSleep   = 7.0
	riskPerfDrop      = 0.98
	riskPerfDip       = 1.0
	riskHighEffort    = 8.0
	riskLowReadiness  = 40.0
	riskStrainDaysMin = 2

	riskSeverePain  = 7
	riskNotablePain = 5
	riskStiffJoints = 7
	riskSickSevere  = 5
	riskSickMild    = 3

	riskScoreMax = 100.0
	riskHighMin  = 60.0
	riskModMin   = 35.0
)

// InjuryRisk estimates the day's injury risk from workload, sleep,
// performance and symptom signals. daysHighStrain is how many of the
// trailing seven days ran high volume on short sleep. Missing signals
// simply contribute nothing.
func InjuryRisk(rec schema.DailyRecord, m schema.LoadMetrics, readiness float64, daysHighStrain int) schema.RiskAssessment {
	var score float64
	var drivers []string
	add := func(points float64, why string) {
		score += points
		drivers = append(drivers, why)
	}

	if m.ACWR != nil {
		switch {
		case *m.ACWR > riskACWRHigh:
			add(30, "workload ratio above 1.5")
		case *m.ACWR > riskACWRElevated:
			add(15, "workload ratio above 1.3")
		}
	}

	if rec.SleepHours != nil {
		switch {
		case *rec.SleepHours < riskShortSleep:
			add(25, "sleep under 6.5h")
		case *rec.SleepHours < riskModestSleep:
			add(10, "sleep under 7h")
		}
	}

	effort := effortLevel(rec, m)
	if m.PerformanceIndex != nil && !math.IsNaN(effort) && effort >= riskHighEffort {
		switch {
		case *m.PerformanceIndex < riskPerfDrop:
			add(20, "performance drop under high effort")
		case *m.PerformanceIndex < riskPerfDip:
			add(10, "performance dip under high effort")
		}
	}

	if daysHighStrain >= riskStrainDaysMin {
		add(15, "repeated high-strain days")
	}
	if readiness < riskLowReadiness {
		add(10, "low readiness")
	}
	if !math.IsNaN(effort) && effort >= riskHighEffort {
		add(12, "high effort")
	}
	if rec.PainFlag {
		add(8, "pain reported")
	}

	if rec.PainSeverity != nil {
		switch {
		case *rec.PainSeverity >= riskSeverePain:
			add(15, "severe pain")
		case *rec.PainSeverity >= riskNotablePain:
			add(8, "notable pain")
		}
	}
	if rec.Stiffness != nil && *rec.Stiffness >= riskStiffJoints {
		add(10, "joint stiffness")
	}
	if rec.SickLevel != nil && *rec.SickLevel > 0 {
		switch {
		case *rec.SickLevel >= riskSickSevere:
			add(35, "significant illness")
		case *rec.SickLevel >= riskSickMild:
			add(25, "moderate illness")
		default:
			add(10, "mild illness")
		}
	}

	score = math.Min(score, riskScoreMax)
	return schema.RiskAssessment{
		Score:   score,
		Band:    riskBandOf(score),
		Drivers: drivers,
	}
}

// effortLevel resolves the day's effort: the volume-weighted session
// effort when one was logged, otherwise the worse of reported stress
// and fatigue as a subjective stand-in. NaN when neither exists.
func effortLevel(rec schema.DailyRecord, m schema.LoadMetrics) float64 {
	if m.Effort != nil {
		return *m.Effort
	}
	effort := math.NaN()
	if rec.Stress != nil {
		effort = float64(*rec.Stress)
	}
	if rec.Fatigue != nil && (math.IsNaN(effort) || float64(*rec.Fatigue) > effort) {
		effort = float64(*rec.Fatigue)
	}
	return effort
}

func riskBandOf(score float64) schema.RiskBand {
	switch {
	case score >= riskHighMin:
		return schema.HighRisk
	case score >= riskModMin:
		return schema.ModerateRisk
	default:
		return schema.LowRisk
	}
}
