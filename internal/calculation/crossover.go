package calculation

import (
	"math"

	"github.com/microdca/dcasim/internal/domain"
)

// FindEquityCrossover locates the first day the alternative equity curve
// (margin policy) reaches or overtakes the baseline (cash-only), with a
// linear intra-day fraction of where the curves crossed. Returns nil when the
// alternative never catches up, or when it leads from day one (no crossover
// to report).
func FindEquityCrossover(baseline, alt []float64, dates []string) *domain.Crossover {
	n := min(len(baseline), len(alt), len(dates))
	if n == 0 {
		return nil
	}
	if alt[0] >= baseline[0] {
		return nil
	}

	prevDiff := baseline[0] - alt[0]
	for i := 1; i < n; i++ {
		diff := baseline[i] - alt[i]
		if math.IsNaN(diff) {
			prevDiff = diff
			continue
		}
		if diff <= 0 && prevDiff > 0 {
			frac := 0.0
			if span := prevDiff - diff; span > 0 {
				frac = prevDiff / span
			}
			return &domain.Crossover{DayIndex: i, Date: dates[i], Fraction: frac}
		}
		prevDiff = diff
	}
	return nil
}
