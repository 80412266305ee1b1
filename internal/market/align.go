package market

import (
	"fmt"
	"strings"

	"github.com/microdca/dcasim/internal/domain"
)

// MinTradingDays is the minimum aligned calendar length a simulation accepts.
const MinTradingDays = 80

// Aligned is a common trading calendar with per-ticker price arrays indexed
// 1:1 with Dates, so every downstream step index refers to the same date
// across all tickers.
type Aligned struct {
	Tickers []string
	Dates   []string
	Prices  map[string][]float64
}

// AlignTimeline intersects the per-ticker series into one calendar: a date
// survives only if every ticker has a close for it. The shortest series is
// the scan base. Ticker order is taken from the tickers argument so the
// result is deterministic.
func AlignTimeline(tickers []string, series map[string][]Quote) (*Aligned, error) {
	if len(tickers) == 0 {
		return nil, domain.ErrEmptyAllocation
	}
	for _, t := range tickers {
		if len(series[t]) == 0 {
			return nil, fmt.Errorf("%s has no price data: %w", t, domain.ErrInsufficientHistory)
		}
	}

	maps := make(map[string]map[string]float64, len(tickers))
	for _, t := range tickers {
		m := make(map[string]float64, len(series[t]))
		for _, q := range series[t] {
			m[q.Date] = q.Close
		}
		maps[t] = m
	}

	base := tickers[0]
	for _, t := range tickers {
		if len(series[t]) < len(series[base]) {
			base = t
		}
	}

	var dates []string
	for _, q := range series[base] {
		ok := true
		for _, t := range tickers {
			if _, has := maps[t][q.Date]; !has {
				ok = false
				break
			}
		}
		if ok {
			dates = append(dates, q.Date)
		}
	}

	if len(dates) < MinTradingDays {
		return nil, fmt.Errorf("%d overlapping trading days across %s (need %d): %w",
			len(dates), describeRanges(tickers, series), MinTradingDays, domain.ErrInsufficientHistory)
	}

	prices := make(map[string][]float64, len(tickers))
	for _, t := range tickers {
		arr := make([]float64, len(dates))
		for i, d := range dates {
			arr[i] = maps[t][d]
		}
		prices[t] = arr
	}

	return &Aligned{Tickers: tickers, Dates: dates, Prices: prices}, nil
}

// describeRanges names each ticker's date range for InsufficientHistory messages.
func describeRanges(tickers []string, series map[string][]Quote) string {
	parts := make([]string, 0, len(tickers))
	for _, t := range tickers {
		s := series[t]
		parts = append(parts, fmt.Sprintf("%s[%s..%s]", t, s[0].Date, s[len(s)-1].Date))
	}
	return strings.Join(parts, " ")
}
