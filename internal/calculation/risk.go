package calculation

import "math"

// Grade buckets leverage proximity into display severities.
type Grade string

const (
	GradeOff      Grade = "OFF"
	GradeLow      Grade = "LOW"
	GradeModerate Grade = "MODERATE"
	GradeElevated Grade = "ELEVATED"
	GradeHigh     Grade = "HIGH"
	GradeCritical Grade = "CRITICAL"
	GradeLimit    Grade = "LIMIT"
)

// Assessment is the display-only risk readout for one day.
type Assessment struct {
	Proximity float64 // ltv / maxLTV, clamped to [0, 1.25]
	Grade     Grade
	Signal    string
}

// EvaluateRisk converts loan-to-value and income coverage into a risk grade
// and signal string. Pure function; consumed for display only.
func EvaluateRisk(ltv, maxLTV, coverage float64) Assessment {
	if maxLTV <= 0 {
		return Assessment{Grade: GradeOff, Signal: "Margin disabled"}
	}

	prox := Clamp(ltv/maxLTV, 0, 1.25)

	grade := GradeLow
	signal := "Healthy buffer"
	switch {
	case prox >= 1.00:
		grade, signal = GradeLimit, "At or beyond max LTV"
	case prox >= 0.95:
		grade, signal = GradeCritical, "Very low buffer"
	case prox >= 0.85:
		grade, signal = GradeHigh, "Close to limit"
	case prox >= 0.70:
		grade, signal = GradeElevated, "Stress can accelerate risk"
	case prox >= 0.50:
		grade, signal = GradeModerate, "Leverage is material"
	}

	finite := !math.IsNaN(coverage) && !math.IsInf(coverage, 0)
	if finite && coverage >= 1 && prox < 0.95 {
		signal = "Income covers interest"
	}
	if finite && coverage < 1 && prox >= 0.70 {
		signal = "Income does not cover interest"
	}

	return Assessment{Proximity: prox, Grade: grade, Signal: signal}
}
