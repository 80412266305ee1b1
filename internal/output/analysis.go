package output

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const tradingDaysPerYear = 252

// PerformanceSummary condenses an equity curve into the headline statistics
// shown in the console report.
type PerformanceSummary struct {
	FinalEquity   float64
	GrowthRate    float64 // annualized growth of the equity curve
	AnnualizedVol float64
	MaxDrawdown   float64 // worst peak-to-trough fraction, >= 0
}

// SummarizeEquity computes summary statistics over a daily equity series.
// Non-positive starting equity disables the growth-rate figure (reported as NaN).
func SummarizeEquity(equity []float64) PerformanceSummary {
	n := len(equity)
	if n == 0 {
		return PerformanceSummary{GrowthRate: math.NaN(), AnnualizedVol: math.NaN(), MaxDrawdown: 0}
	}

	s := PerformanceSummary{FinalEquity: equity[n-1]}

	if equity[0] > 0 && equity[n-1] > 0 && n > 1 {
		years := float64(n-1) / tradingDaysPerYear
		s.GrowthRate = math.Pow(equity[n-1]/equity[0], 1/years) - 1
	} else {
		s.GrowthRate = math.NaN()
	}

	rets := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		if equity[i-1] > 0 {
			rets = append(rets, equity[i]/equity[i-1]-1)
		}
	}
	if len(rets) > 1 {
		s.AnnualizedVol = stat.StdDev(rets, nil) * math.Sqrt(tradingDaysPerYear)
	} else {
		s.AnnualizedVol = math.NaN()
	}

	peak := equity[0]
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			dd := (peak - v) / peak
			if dd > s.MaxDrawdown {
				s.MaxDrawdown = dd
			}
		}
	}
	return s
}

// MeanCoverage averages the finite coverage readings of a run, NaN when none
// exist (margin never carried debt).
func MeanCoverage(coverage []float64) float64 {
	finite := make([]float64, 0, len(coverage))
	for _, c := range coverage {
		if !math.IsNaN(c) && !math.IsInf(c, 0) {
			finite = append(finite, c)
		}
	}
	if len(finite) == 0 {
		return math.NaN()
	}
	return stat.Mean(finite, nil)
}
