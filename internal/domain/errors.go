package domain

import "errors"

// Sentinel errors for conditions detected before any simulation step runs.
// Call sites wrap these with context via fmt.Errorf("...: %w", err).
var (
	// ErrInvalidDateRange indicates the requested end date is not after the start date.
	ErrInvalidDateRange = errors.New("invalid date range: end must be after start")

	// ErrInsufficientHistory indicates the aligned trading calendar is shorter
	// than the minimum required for a meaningful run.
	ErrInsufficientHistory = errors.New("insufficient overlapping price history")

	// ErrEmptyAllocation indicates a sleeve with no tickers.
	ErrEmptyAllocation = errors.New("empty allocation: at least one ticker is required")

	// ErrInvalidYears indicates a non-positive projection horizon.
	ErrInvalidYears = errors.New("projection years must be positive")

	// ErrPriceUnavailable indicates a price feed could not produce usable data
	// for a ticker. The fallback feed converts this into a synthetic series.
	ErrPriceUnavailable = errors.New("price data unavailable")
)
