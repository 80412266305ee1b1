package market

import (
	"context"
	"fmt"

	"github.com/microdca/dcasim/internal/domain"
	"github.com/microdca/dcasim/pkg/dateutil"
)

// SyntheticFeed generates a deterministic pseudo-random walk per ticker. The
// seed derives from the ticker text (plus an optional salt), so two runs with
// identical inputs produce byte-identical series. It serves as the documented
// fallback when real data is unavailable, and as a hermetic data source in tests.
type SyntheticFeed struct {
	Salt string
}

const (
	synthDrift = 0.00025
	synthVol   = 0.012
)

// lcg is the 32-bit linear congruential generator driving the walk.
type lcg struct {
	seed uint32
}

func newLCG(key string) *lcg {
	var seed uint32
	for i := 0; i < len(key); i++ {
		seed = seed*31 + uint32(key[i])
	}
	return &lcg{seed: seed}
}

// next returns a uniform float in [0, 1).
func (g *lcg) next() float64 {
	g.seed = 1664525*g.seed + 1013904223
	return float64(g.seed) / 4294967296
}

func (f SyntheticFeed) Fetch(_ context.Context, ticker, start, end string) ([]Quote, error) {
	startDay, err := dateutil.ParseDay(start)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ticker, err)
	}
	endDay, err := dateutil.ParseDay(end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ticker, err)
	}
	if !endDay.After(startDay) {
		return nil, fmt.Errorf("%s %s..%s: %w", ticker, start, end, domain.ErrInvalidDateRange)
	}

	rng := newLCG(ticker + f.Salt)
	px := 60 + rng.next()*180

	var out []Quote
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		if !dateutil.IsWeekday(d) {
			continue
		}
		shock := (rng.next()*2 - 1) * synthVol
		px = max(1, px*(1+synthDrift+shock))
		out = append(out, Quote{Date: dateutil.FormatDay(d), Close: px})
	}
	return out, nil
}
