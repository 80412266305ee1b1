package calculation

import (
	"fmt"
	"math"

	"github.com/microdca/dcasim/internal/domain"
	"github.com/microdca/dcasim/internal/market"
)

// simState is the mutable accounting state of one margin/income run. It is
// exclusively owned by the running simulation instance and never shared.
type simState struct {
	shares     map[string]float64
	cash       float64
	debt       float64
	taxReserve float64 // monotonically non-decreasing
	billsPaid  float64 // monotonically non-decreasing
}

// marginSim executes the day-by-day margin + income simulation as an explicit
// ordered pipeline of named stages. The order is load-bearing: later stages
// read values mutated by earlier ones (interest before income before month-end
// routing before margin management before buys).
type marginSim struct {
	cfg *domain.SimulationConfig
	al  *market.Aligned

	core sleeve
	inc  sleeve
	all  []string

	buySignal    []bool
	monthEnd     []bool
	adjustSignal []bool

	useMargin    bool
	dailyRate    float64
	dailyYield   float64
	maxLTV       float64
	split        float64
	contribution float64

	state  simState
	ledger *domain.EventLedger
	rows   []domain.DailyRow

	// per-day scratch, reset by mark
	coverage  float64
	targetDev float64
}

// RunSimulation executes the margin/income policy over the aligned calendar
// and returns one row per trading day plus the event ledger.
func (e *Engine) RunSimulation(cfg *domain.SimulationConfig, al *market.Aligned) (*domain.SimulationResult, error) {
	s, err := newMarginSim(cfg, al)
	if err != nil {
		return nil, err
	}

	for i := range al.Dates {
		interest := s.accrueInterest(i)
		income := s.accrueIncome(i)
		s.routeMonthEnd(i, interest)
		s.manageMargin(i, income, interest)
		s.applyBuys(i)
		s.mark(i)
	}

	e.Logger.Debugf("simulation complete: %d days, final debt %.2f", len(al.Dates), s.state.debt)
	return &domain.SimulationResult{Name: cfg.Name, Dates: al.Dates, Rows: s.rows, Ledger: s.ledger}, nil
}

func newMarginSim(cfg *domain.SimulationConfig, al *market.Aligned) (*marginSim, error) {
	core := newSleeve(cfg.Core)
	if err := checkSleeve(core, al); err != nil {
		return nil, fmt.Errorf("core sleeve: %w", err)
	}

	var inc sleeve
	if cfg.Income.Enabled {
		inc = newSleeve(cfg.Income.Sleeve)
		if !inc.empty() {
			if err := checkSleeve(inc, al); err != nil {
				return nil, fmt.Errorf("income sleeve: %w", err)
			}
		}
	}

	all := append(append([]string{}, core.tickers...), inc.tickers...)
	shares := make(map[string]float64, len(all))
	for _, t := range all {
		shares[t] = 0
	}

	n := len(al.Dates)
	adjustFreq := cfg.Income.AdjustFrequency
	if !adjustFreq.Valid() {
		adjustFreq = domain.FreqMonthly
	}

	return &marginSim{
		cfg:          cfg,
		al:           al,
		core:         core,
		inc:          inc,
		all:          all,
		buySignal:    market.BuySchedule(al.Dates, cfg.Frequency),
		monthEnd:     market.MonthEndSchedule(al.Dates),
		adjustSignal: market.AdjustSchedule(al.Dates, adjustFreq),
		useMargin:    cfg.Margin.Active(),
		dailyRate:    cfg.Margin.DailyRate(),
		dailyYield:   cfg.Income.DailyYield(cfg.Margin.DayCount),
		maxLTV:       cfg.Margin.MaxLTV(),
		split:        cfg.Income.Split(),
		contribution: math.Max(0, cfg.Contribution),
		state: simState{
			shares: shares,
			cash:   math.Max(0, cfg.StartCash),
		},
		ledger: domain.NewEventLedger(n),
		rows:   make([]domain.DailyRow, n),
	}, nil
}

// portfolioValue is the combined value of both sleeves at day i.
func (s *marginSim) portfolioValue(i int) float64 {
	return s.core.value(s.state.shares, s.al.Prices, i) + s.inc.value(s.state.shares, s.al.Prices, i)
}

func (s *marginSim) incomeValue(i int) float64 {
	return s.inc.value(s.state.shares, s.al.Prices, i)
}

// accrueInterest capitalizes today's interest into debt. Interest is not paid
// from cash here; month-end routing may pay it down later the same day.
func (s *marginSim) accrueInterest(i int) float64 {
	if !s.useMargin || s.state.debt <= 0 || s.dailyRate <= 0 {
		return 0
	}
	interest := s.state.debt * s.dailyRate
	s.state.debt += interest
	s.ledger.Interest[i] = interest
	return interest
}

// accrueIncome records today's notional sleeve income. Cash is untouched:
// income is realized at month-end, mirroring the distribution timing of real
// income funds.
func (s *marginSim) accrueIncome(i int) float64 {
	if !s.cfg.Income.Enabled || s.inc.empty() || s.dailyYield <= 0 {
		return 0
	}
	income := s.incomeValue(i) * s.dailyYield
	s.ledger.Income[i] = income
	return income
}

// routeMonthEnd realizes the month's distribution and, when the bills/tax
// engine is on, routes cash to interest, tax, and the fixed monthly bill in
// that order. The distribution estimates a monthly yield from the sleeve's
// value on this day rather than a time-weighted daily balance, a known
// approximation that under- or overestimates income in volatile months.
func (s *marginSim) routeMonthEnd(i int, interestToday float64) {
	if !s.monthEnd[i] || !s.cfg.Income.Enabled || s.inc.empty() {
		return
	}

	dist := s.incomeValue(i) * s.cfg.Income.MonthlyYield()
	if dist > 0 {
		s.state.cash += dist
		s.ledger.Distribution[i] = dist
	}

	if !s.cfg.BillsTax.Enabled {
		return
	}

	if s.useMargin && interestToday > 0 {
		s.payDownDebt(i, math.Min(s.state.cash, interestToday))
	}

	if tax := math.Min(dist*s.cfg.BillsTax.TaxRate(), s.state.cash); tax > 0 {
		s.state.cash -= tax
		s.ledger.TaxPaid[i] = tax
		if s.cfg.BillsTax.Handling != domain.TaxImmediate {
			s.state.taxReserve += tax
		}
	}

	bill := math.Max(0, s.cfg.BillsTax.MonthlyBill)
	if bill > 0 {
		paid := math.Min(bill, s.state.cash)
		s.state.cash -= paid
		s.state.billsPaid += paid
		s.ledger.BillsPaid[i] = paid
		// Shortfalls are reported, never force a sale.
		s.ledger.BillsShortfall[i] = bill - paid
	}
}

// manageMargin applies the configured income-management mode to the debt
// position. Target modes act only on scheduled adjustment days.
func (s *marginSim) manageMargin(i int, incomeToday, interestToday float64) {
	if !s.useMargin {
		return
	}

	v := s.portfolioValue(i)
	ltv := 0.0
	if v > 0 {
		ltv = s.state.debt / v
	}
	s.coverage = coverageRatio(incomeToday, interestToday)

	if !s.cfg.Income.Enabled {
		return
	}

	switch s.cfg.Income.Mode {
	case domain.ModeInterestOnly:
		// No principal action; interest is handled by month-end routing.
	case domain.ModeInterestPlusPrincipal:
		s.payDownDebt(i, s.state.cash)
	case domain.ModeTargetRatio, domain.ModePriceBand:
		target := s.targetRatio(i, v)
		s.targetDev = ltv - target

		if !s.adjustSignal[i] {
			return
		}
		desired := math.Max(0, target*v)
		delta := desired - s.state.debt
		if delta < 0 {
			s.payDownDebt(i, math.Min(s.state.cash, -delta))
		} else if delta > 0 && s.cfg.Income.AllowBorrow {
			s.borrowToCash(i, delta, false)
		}
	}
}

// targetRatio resolves the target LTV for this day: fixed for target_ratio,
// zero outside the configured price band for price_band.
func (s *marginSim) targetRatio(i int, v float64) float64 {
	target := s.cfg.Income.TargetRatio()
	if s.cfg.Income.Mode != domain.ModePriceBand {
		return target
	}
	minV := math.Max(0, s.cfg.Income.BandMin)
	maxV := math.Max(0, s.cfg.Income.BandMax)
	if maxV <= 0 || v < minV || v > maxV {
		return 0
	}
	return target
}

// applyBuys deposits the periodic contribution on a scheduled buy day,
// applies the margin buy policy, then invests all available cash split
// between the income and core sleeves.
func (s *marginSim) applyBuys(i int) {
	if !s.buySignal[i] {
		return
	}

	s.state.cash += s.contribution
	s.ledger.Deposit[i] = s.contribution

	if s.useMargin {
		switch s.cfg.Margin.Policy {
		case domain.PolicyAlways:
			desired := s.maxLTV * s.portfolioValue(i)
			s.borrowToCash(i, desired-s.state.debt, true)
		case domain.PolicyAssist:
			if s.state.cash < s.contribution {
				s.borrowToCash(i, s.contribution-s.state.cash, true)
			}
		}
	}

	investable := s.state.cash
	if investable <= 0 {
		return
	}
	if s.inc.empty() {
		s.invest(i, investable, s.core)
		return
	}
	toIncome := investable * s.split
	s.invest(i, toIncome, s.inc)
	s.invest(i, investable-toIncome, s.core)
}

// invest converts cash into sleeve holdings at today's prices.
func (s *marginSim) invest(i int, amt float64, sl sleeve) {
	if amt <= 0 || sl.empty() {
		return
	}
	w := sl.buyWeights(s.state.shares, s.al.Prices, i, s.cfg.RebalanceBuys)
	for k, t := range sl.tickers {
		a := amt * w[k]
		if a <= 0 {
			continue
		}
		s.state.shares[t] += a / s.al.Prices[t][i]
		s.state.cash -= a
		s.ledger.Buy[i] += a
	}
	s.state.cash = snapCash(s.state.cash)
}

// borrowToCash draws on the margin facility, capped by headroom so a borrow
// never pushes debt beyond maxLTV of the current asset value. Transient
// overshoot from interest capitalization is allowed and expected; the risk
// grade surfaces it.
func (s *marginSim) borrowToCash(i int, amount float64, forBuy bool) float64 {
	if !s.useMargin || amount <= 0 {
		return 0
	}
	headroom := math.Max(0, s.maxLTV*s.portfolioValue(i)-s.state.debt)
	b := Clamp(amount, 0, headroom)
	if b <= 0 {
		return 0
	}
	s.state.debt += b
	s.state.cash += b
	if forBuy {
		s.ledger.BorrowBuy[i] += b
	} else {
		s.ledger.BorrowAdjust[i] += b
	}
	return b
}

// payDownDebt retires debt from cash, bounded by both.
func (s *marginSim) payDownDebt(i int, amount float64) float64 {
	p := Clamp(amount, 0, math.Min(s.state.cash, s.state.debt))
	if p <= 0 {
		return 0
	}
	s.state.debt -= p
	s.state.cash -= p
	s.ledger.Paydown[i] += p
	return p
}

// mark values the portfolio and emits the day's row.
func (s *marginSim) mark(i int) {
	v := s.portfolioValue(i)
	ltv := 0.0
	if v > 0 {
		ltv = s.state.debt / v
	}

	coverage := s.coverage
	if !s.useMargin {
		coverage = coverageRatio(s.ledger.Income[i], s.ledger.Interest[i])
	}

	s.state.cash = snapCash(s.state.cash)
	s.rows[i] = domain.DailyRow{
		Date:            s.al.Dates[i],
		AssetValue:      v,
		Cash:            s.state.cash,
		Equity:          v + s.state.cash - s.state.debt,
		Debt:            s.state.debt,
		LTV:             ltv,
		Coverage:        coverage,
		TargetDeviation: s.targetDev,
		TaxReserve:      s.state.taxReserve,
		BillsPaid:       s.state.billsPaid,
	}
	s.coverage = 0
	s.targetDev = 0
}

// coverageRatio is income over interest for the same period: +Inf when
// interest is zero but income is positive, NaN when both are zero. These are
// domain-expected states, not failures.
func coverageRatio(income, interest float64) float64 {
	if interest > 0 {
		return income / interest
	}
	if income > 0 {
		return math.Inf(1)
	}
	return math.NaN()
}
