package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFloat(t *testing.T) {
	assert.Equal(t, "12.34", FromFloat(12.339999999).Round().String())
	assert.Equal(t, "0.00", FromFloat(math.NaN()).String())
	assert.Equal(t, "0.00", FromFloat(math.Inf(1)).String())
	assert.Equal(t, "0.00", FromFloat(math.Inf(-1)).String())
}

func TestFromString(t *testing.T) {
	m, err := FromString("1234.56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", m.String())

	_, err = FromString("not-a-number")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$1234.50", FromFloat(1234.5).Format())
	assert.Equal(t, "-$99.99", FromFloat(-99.99).Format())
	assert.Equal(t, "$0.00", FromFloat(0).Format())
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$10.00", FormatUSD(10))
	assert.Equal(t, "-$0.50", FormatUSD(-0.5))
	assert.Equal(t, "—", FormatUSD(math.NaN()))
	assert.Equal(t, "—", FormatUSD(math.Inf(1)))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "25.00%", FormatPercent(0.25))
	assert.Equal(t, "0.00%", FormatPercent(0))
	assert.Equal(t, "—", FormatPercent(math.NaN()))
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "1.25x", FormatRatio(1.254))
	assert.Equal(t, "∞", FormatRatio(math.Inf(1)))
	assert.Equal(t, "—", FormatRatio(math.NaN()))
	assert.Equal(t, "—", FormatRatio(math.Inf(-1)))
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, ClampPercent(-5))
	assert.Equal(t, 42.5, ClampPercent(42.5))
	assert.Equal(t, 100.0, ClampPercent(150))
}
