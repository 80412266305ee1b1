package market

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/microdca/dcasim/internal/domain"
)

// Quote is one (date, closing price) observation.
type Quote struct {
	Date  string
	Close float64
}

// Feed retrieves daily closing prices for a ticker over an inclusive ISO date
// range. Implementations return domain.ErrPriceUnavailable (wrapped) when no
// usable data exists; the returned quotes are in strictly increasing date order.
type Feed interface {
	Fetch(ctx context.Context, ticker, start, end string) ([]Quote, error)
}

// MinQuotesPerTicker is the minimum number of rows a fetched series must have
// inside the requested range before it is considered usable.
const MinQuotesPerTicker = 30

// StooqFeed fetches daily closes from the stooq.com CSV endpoint.
type StooqFeed struct {
	Client  *http.Client
	BaseURL string // defaults to https://stooq.com/q/d/l/
	Log     zerolog.Logger
}

// NewStooqFeed returns a feed with the default endpoint and client.
func NewStooqFeed(log zerolog.Logger) *StooqFeed {
	return &StooqFeed{Client: http.DefaultClient, BaseURL: "https://stooq.com/q/d/l/", Log: log}
}

// symbol maps a plain US ticker to stooq's suffixed form (AAPL -> aapl.us);
// tickers that already carry a market suffix pass through unchanged.
func (f *StooqFeed) symbol(ticker string) string {
	t := strings.ToLower(strings.TrimSpace(ticker))
	if strings.Contains(t, ".") {
		return t
	}
	return t + ".us"
}

func (f *StooqFeed) Fetch(ctx context.Context, ticker, start, end string) ([]Quote, error) {
	base := f.BaseURL
	if base == "" {
		base = "https://stooq.com/q/d/l/"
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	u := base + "?s=" + url.QueryEscape(f.symbol(ticker)) + "&i=d"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ticker, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", ticker, domain.ErrPriceUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: http status %d", ticker, domain.ErrPriceUnavailable, resp.StatusCode)
	}

	quotes, err := parseDailyCSV(resp.Body, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", ticker, domain.ErrPriceUnavailable, err)
	}
	if len(quotes) < MinQuotesPerTicker {
		return nil, fmt.Errorf("%s: %w: only %d rows in range", ticker, domain.ErrPriceUnavailable, len(quotes))
	}
	f.Log.Debug().Str("ticker", ticker).Int("rows", len(quotes)).Msg("fetched price history")
	return quotes, nil
}

// parseDailyCSV reads stooq's Date,Open,High,Low,Close,Volume layout, keeping
// finite closes inside [start, end]. Malformed rows are skipped, not fatal.
func parseDailyCSV(r io.Reader, start, end string) ([]Quote, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var out []Quote
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		if len(rec) < 5 {
			continue
		}
		date := rec[0]
		if date == "" || (start != "" && date < start) || (end != "" && date > end) {
			continue
		}
		closePx, err := strconv.ParseFloat(rec[4], 64)
		if err != nil || closePx <= 0 || math.IsNaN(closePx) || math.IsInf(closePx, 0) {
			continue
		}
		out = append(out, Quote{Date: date, Close: closePx})
	}
	return out, nil
}

// FallbackFeed tries a primary feed and substitutes the fallback's series on
// any failure. Downstream consumers cannot distinguish the two outcomes.
type FallbackFeed struct {
	Primary  Feed
	Fallback Feed
	Log      zerolog.Logger
}

func (f *FallbackFeed) Fetch(ctx context.Context, ticker, start, end string) ([]Quote, error) {
	quotes, err := f.Primary.Fetch(ctx, ticker, start, end)
	if err == nil {
		return quotes, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	f.Log.Warn().Str("ticker", ticker).Err(err).Msg("primary feed failed, using synthetic series")
	return f.Fallback.Fetch(ctx, ticker, start, end)
}

// LoadAll fetches every ticker through the feed, preserving ticker order.
func LoadAll(ctx context.Context, feed Feed, tickers []string, start, end string) (map[string][]Quote, error) {
	series := make(map[string][]Quote, len(tickers))
	for _, t := range tickers {
		quotes, err := feed.Fetch(ctx, t, start, end)
		if err != nil {
			return nil, err
		}
		series[t] = quotes
	}
	return series, nil
}
