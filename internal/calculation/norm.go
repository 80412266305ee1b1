package calculation

import "math"

// cashEpsilon is the magnitude below which residual cash is snapped to exactly
// zero, preventing floating-point dust from drifting across long simulations.
const cashEpsilon = 1e-8

// NormalizeWeights cleans raw user weights (negatives and NaN clamp to 0) and
// scales them to sum to 1. When the cleaned weights sum to zero the sleeve
// falls back to equal weighting.
func NormalizeWeights(raw []float64) []float64 {
	if len(raw) == 0 {
		return nil
	}
	clean := make([]float64, len(raw))
	sum := 0.0
	for i, w := range raw {
		if math.IsNaN(w) || w < 0 {
			w = 0
		}
		clean[i] = w
		sum += w
	}
	if sum <= 0 {
		eq := 1.0 / float64(len(raw))
		for i := range clean {
			clean[i] = eq
		}
		return clean
	}
	for i := range clean {
		clean[i] /= sum
	}
	return clean
}

// SleeveWeights pads or truncates a raw weights list to the ticker count
// before normalizing, so a short weights list fills in equally.
func SleeveWeights(tickers []string, raw []float64) []float64 {
	if len(tickers) == 0 {
		return nil
	}
	padded := make([]float64, len(tickers))
	anyMissing := false
	for i := range tickers {
		if i < len(raw) {
			padded[i] = raw[i]
		} else {
			anyMissing = true
		}
	}
	if anyMissing && len(raw) == 0 {
		// No weights supplied at all: equal weighting via the zero-sum fallback.
		return NormalizeWeights(padded)
	}
	if anyMissing {
		eq := 1.0 / float64(len(tickers))
		for i := len(raw); i < len(tickers); i++ {
			padded[i] = eq
		}
	}
	return NormalizeWeights(padded)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// snapCash zeroes residual cash dust.
func snapCash(c float64) float64 {
	if math.Abs(c) < cashEpsilon {
		return 0
	}
	return c
}
