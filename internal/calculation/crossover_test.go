package calculation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindEquityCrossover(t *testing.T) {
	dates := []string{"2024-01-02", "2024-01-03", "2024-01-04"}

	cross := FindEquityCrossover(
		[]float64{100, 100, 100},
		[]float64{90, 95, 105},
		dates,
	)
	require.NotNil(t, cross)
	assert.Equal(t, 2, cross.DayIndex)
	assert.Equal(t, "2024-01-04", cross.Date)
	assert.InDelta(t, 0.5, cross.Fraction, 1e-12)
}

func TestFindEquityCrossoverExactTouch(t *testing.T) {
	dates := []string{"2024-01-02", "2024-01-03"}
	cross := FindEquityCrossover([]float64{100, 100}, []float64{90, 100}, dates)
	require.NotNil(t, cross)
	assert.Equal(t, 1, cross.DayIndex)
	assert.InDelta(t, 1.0, cross.Fraction, 1e-12)
}

func TestFindEquityCrossoverNever(t *testing.T) {
	dates := []string{"2024-01-02", "2024-01-03", "2024-01-04"}
	assert.Nil(t, FindEquityCrossover(
		[]float64{100, 110, 120},
		[]float64{90, 95, 100},
		dates,
	))
}

func TestFindEquityCrossoverAltLeadsFromStart(t *testing.T) {
	dates := []string{"2024-01-02", "2024-01-03"}
	assert.Nil(t, FindEquityCrossover([]float64{100, 100}, []float64{100, 120}, dates))
	assert.Nil(t, FindEquityCrossover(nil, nil, nil))
}

func TestFindEquityCrossoverSkipsNaNDays(t *testing.T) {
	dates := []string{"2024-01-02", "2024-01-03", "2024-01-04"}
	cross := FindEquityCrossover(
		[]float64{100, math.NaN(), 100},
		[]float64{90, 95, 105},
		dates,
	)
	assert.Nil(t, cross)
}
