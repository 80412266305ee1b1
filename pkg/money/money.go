package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// FromFloat creates a Money instance from a float64. Non-finite values
// collapse to zero; callers that need an explicit marker should test with
// math.IsInf/IsNaN before converting.
func FromFloat(value float64) Money {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Money{decimal.Zero}
	}
	return Money{decimal.NewFromFloat(value)}
}

// FromString creates a Money instance from a string
func FromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the money amount to cents using banker's rounding
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// String returns the string representation with two decimal places
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format formats the money amount with a currency prefix
func (m Money) Format() string {
	if m.Decimal.IsNegative() {
		return "-$" + m.Decimal.Neg().StringFixed(2)
	}
	return "$" + m.String()
}

// FormatUSD renders a float as a currency string; non-finite values render
// as an em dash, matching the tabular output convention.
func FormatUSD(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "—"
	}
	return FromFloat(x).Format()
}

// FormatPercent renders a fraction (0.25 -> "25.00%"). Non-finite values
// render as an em dash.
func FormatPercent(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "—"
	}
	return FromFloat(x * 100).String() + "%"
}

// FormatRatio renders a coverage-style multiple ("1.25x"), with ∞ for
// infinite and an em dash for undefined values.
func FormatRatio(x float64) string {
	if math.IsInf(x, 1) {
		return "∞"
	}
	if math.IsNaN(x) || math.IsInf(x, -1) {
		return "—"
	}
	return FromFloat(x).String() + "x"
}

// ClampPercent bounds a user-supplied percentage to [0, 100].
func ClampPercent(p float64) float64 {
	return math.Max(0, math.Min(100, p))
}
