package calculation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWeights(t *testing.T) {
	assert.Equal(t, []float64{0.6, 0.4}, NormalizeWeights([]float64{3, 2}))
	assert.Nil(t, NormalizeWeights(nil))
}

func TestNormalizeWeightsCleansBadInputs(t *testing.T) {
	w := NormalizeWeights([]float64{-5, 1, math.NaN(), 1})
	require.Len(t, w, 4)
	assert.Equal(t, 0.0, w[0])
	assert.Equal(t, 0.5, w[1])
	assert.Equal(t, 0.0, w[2])
	assert.Equal(t, 0.5, w[3])
}

func TestNormalizeWeightsZeroSumFallsBackToEqual(t *testing.T) {
	w := NormalizeWeights([]float64{0, 0, 0})
	assert.Equal(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, w)

	w = NormalizeWeights([]float64{-1, -2})
	assert.Equal(t, []float64{0.5, 0.5}, w)
}

func TestSleeveWeights(t *testing.T) {
	tickers := []string{"A", "B", "C"}

	w := SleeveWeights(tickers, []float64{60, 30, 10})
	assert.InDelta(t, 0.6, w[0], 1e-12)
	assert.InDelta(t, 0.3, w[1], 1e-12)
	assert.InDelta(t, 0.1, w[2], 1e-12)

	// No weights at all: equal split.
	w = SleeveWeights(tickers, nil)
	for _, v := range w {
		assert.InDelta(t, 1.0/3, v, 1e-12)
	}

	// Short list pads the tail equally before normalizing.
	w = SleeveWeights([]string{"A", "B"}, []float64{1})
	sum := w[0] + w[1]
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.Greater(t, w[0], w[1])

	assert.Nil(t, SleeveWeights(nil, nil))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
	assert.Equal(t, 1.0, Clamp(7, 0, 1))
}

func TestSnapCash(t *testing.T) {
	assert.Equal(t, 0.0, snapCash(1e-12))
	assert.Equal(t, 0.0, snapCash(-1e-12))
	assert.Equal(t, 0.5, snapCash(0.5))
	assert.Equal(t, -0.5, snapCash(-0.5))
}
