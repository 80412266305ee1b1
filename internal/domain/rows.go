package domain

// DailyRow is one emitted row per trading day of the daily simulators.
type DailyRow struct {
	Date            string  `json:"date"`
	AssetValue      float64 `json:"asset_value"`
	Cash            float64 `json:"cash"`
	Equity          float64 `json:"equity"` // asset value + cash - debt
	Debt            float64 `json:"debt"`
	LTV             float64 `json:"ltv"`      // debt / asset value, 0 when asset value is 0
	Coverage        float64 `json:"coverage"` // income / interest; +Inf or NaN at the edges
	TargetDeviation float64 `json:"target_deviation"`
	TaxReserve      float64 `json:"tax_reserve"`
	BillsPaid       float64 `json:"bills_paid"` // cumulative
}

// EventLedger records per-day event magnitudes in parallel slices aligned 1:1
// with the trading calendar. It is reporting output; state transitions never
// read it back, with the single exception of the month-end distribution that
// feeds the same day's tax/bills routing.
type EventLedger struct {
	Deposit        []float64 `json:"deposit"`
	Buy            []float64 `json:"buy"`
	Income         []float64 `json:"income"`   // daily notional accrual
	Interest       []float64 `json:"interest"` // capitalized into debt
	Paydown        []float64 `json:"paydown"`
	BorrowAdjust   []float64 `json:"borrow_adjust"`
	BorrowBuy      []float64 `json:"borrow_buy"`
	Distribution   []float64 `json:"distribution"` // month-end realized income
	TaxPaid        []float64 `json:"tax_paid"`
	BillsPaid      []float64 `json:"bills_paid"`
	BillsShortfall []float64 `json:"bills_shortfall"`
}

// NewEventLedger allocates a ledger for n trading days.
func NewEventLedger(n int) *EventLedger {
	return &EventLedger{
		Deposit:        make([]float64, n),
		Buy:            make([]float64, n),
		Income:         make([]float64, n),
		Interest:       make([]float64, n),
		Paydown:        make([]float64, n),
		BorrowAdjust:   make([]float64, n),
		BorrowBuy:      make([]float64, n),
		Distribution:   make([]float64, n),
		TaxPaid:        make([]float64, n),
		BillsPaid:      make([]float64, n),
		BillsShortfall: make([]float64, n),
	}
}

// SimulationResult is the complete output of one daily simulation run.
// Every run owns an independent result; nothing survives across runs.
type SimulationResult struct {
	Name   string       `json:"name"`
	Dates  []string     `json:"dates"`
	Rows   []DailyRow   `json:"rows"`
	Ledger *EventLedger `json:"ledger"`
}

// EquitySeries extracts the per-day equity curve.
func (r *SimulationResult) EquitySeries() []float64 {
	out := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row.Equity
	}
	return out
}

// ProjectionRow is one summary row per projected year of the cash-only model.
type ProjectionRow struct {
	Year              int       `json:"year"`
	Contributions     float64   `json:"contributions"` // cumulative, including starting balance
	Growth            float64   `json:"growth"`        // total balance - contributions
	TotalBalance      float64   `json:"total_balance"`
	BalancesByAsset   []float64 `json:"balances_by_asset"`
	YearDistributions float64   `json:"year_distributions"`
	YearPayoutGross   float64   `json:"year_payout_gross"`
	YearPayoutNet     float64   `json:"year_payout_net"`
}

// ProjectionResult is the output of the cash-only compounding projection.
type ProjectionResult struct {
	Rows []ProjectionRow `json:"rows"`
}

// FinalBalance returns the last row's total balance, 0 for an empty projection.
func (r *ProjectionResult) FinalBalance() float64 {
	if len(r.Rows) == 0 {
		return 0
	}
	return r.Rows[len(r.Rows)-1].TotalBalance
}

// Crossover marks the first day the margin equity curve overtakes the
// cash-only baseline, with a linear intra-day fraction.
type Crossover struct {
	DayIndex int     `json:"day_index"`
	Date     string  `json:"date"`
	Fraction float64 `json:"fraction"`
}

// ComparisonResult pairs a cash-only baseline with the margin/income run over
// the same trading calendar.
type ComparisonResult struct {
	Name      string            `json:"name"`
	Dates     []string          `json:"dates"`
	CashOnly  *SimulationResult `json:"cash_only"`
	Margin    *SimulationResult `json:"margin"`
	Crossover *Crossover        `json:"crossover,omitempty"`
	MaxLTV    float64           `json:"max_ltv"`
}
