package calculation

import (
	"fmt"
	"math"

	"github.com/microdca/dcasim/internal/domain"
	"github.com/microdca/dcasim/internal/market"
)

// sleeve is a runtime asset group: ordered tickers with normalized target weights.
type sleeve struct {
	tickers []string
	weights []float64
}

func newSleeve(cfg domain.SleeveConfig) sleeve {
	return sleeve{tickers: cfg.Tickers, weights: SleeveWeights(cfg.Tickers, cfg.Weights)}
}

func (s sleeve) empty() bool { return len(s.tickers) == 0 }

// value sums the sleeve's holdings at day i.
func (s sleeve) value(shares map[string]float64, prices map[string][]float64, i int) float64 {
	v := 0.0
	for _, t := range s.tickers {
		v += shares[t] * prices[t][i]
	}
	return v
}

// buyWeights returns the weights for this buy: fixed targets, or, when
// rebalance-on-buy is enabled and some asset sits below target, proportional
// to each asset's shortfall versus target.
func (s sleeve) buyWeights(shares map[string]float64, prices map[string][]float64, i int, rebalance bool) []float64 {
	if !rebalance {
		return s.weights
	}
	total := s.value(shares, prices, i)
	if total <= 0 {
		return s.weights
	}
	raw := make([]float64, len(s.tickers))
	sum := 0.0
	for k, t := range s.tickers {
		cur := shares[t] * prices[t][i] / total
		raw[k] = math.Max(0, s.weights[k]-cur)
		sum += raw[k]
	}
	if sum <= 0 {
		return s.weights
	}
	for k := range raw {
		raw[k] /= sum
	}
	return raw
}

// checkSleeve verifies every ticker has an aligned price series.
func checkSleeve(s sleeve, al *market.Aligned) error {
	if s.empty() {
		return domain.ErrEmptyAllocation
	}
	for _, t := range s.tickers {
		if _, ok := al.Prices[t]; !ok {
			return fmt.Errorf("ticker %s missing from aligned prices: %w", t, domain.ErrInsufficientHistory)
		}
	}
	return nil
}

// RunCashOnly simulates the pure cash-funded DCA baseline over the aligned
// calendar: deposit on each scheduled buy day, then invest all available cash
// into the core sleeve. No debt, no income sleeve.
func (e *Engine) RunCashOnly(cfg *domain.SimulationConfig, al *market.Aligned) (*domain.SimulationResult, error) {
	core := newSleeve(cfg.Core)
	if err := checkSleeve(core, al); err != nil {
		return nil, fmt.Errorf("core sleeve: %w", err)
	}

	n := len(al.Dates)
	shares := make(map[string]float64, len(core.tickers))
	for _, t := range core.tickers {
		shares[t] = 0
	}
	cash := math.Max(0, cfg.StartCash)
	contribution := math.Max(0, cfg.Contribution)

	buySignal := market.BuySchedule(al.Dates, cfg.Frequency)
	ledger := domain.NewEventLedger(n)
	rows := make([]domain.DailyRow, n)

	for i := 0; i < n; i++ {
		if buySignal[i] {
			cash += contribution
			ledger.Deposit[i] = contribution

			if cash > 0 {
				w := core.buyWeights(shares, al.Prices, i, cfg.RebalanceBuys)
				for k, t := range core.tickers {
					a := cash * w[k]
					if a <= 0 {
						continue
					}
					shares[t] += a / al.Prices[t][i]
					ledger.Buy[i] += a
				}
				cash -= ledger.Buy[i]
				cash = snapCash(cash)
			}
		}

		v := core.value(shares, al.Prices, i)
		rows[i] = domain.DailyRow{
			Date:       al.Dates[i],
			AssetValue: v,
			Cash:       cash,
			Equity:     v + cash,
			Coverage:   math.NaN(),
		}
	}

	return &domain.SimulationResult{Name: cfg.Name, Dates: al.Dates, Rows: rows, Ledger: ledger}, nil
}
