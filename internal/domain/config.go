package domain

// Frequency controls contribution and adjustment scheduling on the trading calendar.
type Frequency string

const (
	FreqDaily   Frequency = "daily"
	FreqWeekly  Frequency = "weekly"
	FreqMonthly Frequency = "monthly"
)

// Valid reports whether the frequency is one of the supported values.
func (f Frequency) Valid() bool {
	switch f {
	case FreqDaily, FreqWeekly, FreqMonthly:
		return true
	}
	return false
}

// Compounding controls the step size of the cash-only projection model.
type Compounding string

const (
	CompoundDaily     Compounding = "daily"
	CompoundMonthly   Compounding = "monthly"
	CompoundQuarterly Compounding = "quarterly"
	CompoundYearly    Compounding = "yearly"
)

// Valid reports whether the compounding frequency is a supported value.
func (c Compounding) Valid() bool {
	switch c {
	case CompoundDaily, CompoundMonthly, CompoundQuarterly, CompoundYearly:
		return true
	}
	return false
}

// StepsPerYear maps a compounding frequency to the number of model steps per year.
func (c Compounding) StepsPerYear() int {
	switch c {
	case CompoundDaily:
		return 365
	case CompoundQuarterly:
		return 4
	case CompoundYearly:
		return 1
	default:
		return 12
	}
}

// MarginPolicy controls how borrowing participates in DCA buys.
type MarginPolicy string

const (
	// PolicyOff disables all borrowing even when margin is nominally enabled.
	PolicyOff MarginPolicy = "off"
	// PolicyAssist borrows only the shortfall needed to fully fund a buy.
	PolicyAssist MarginPolicy = "assist"
	// PolicyAlways tops debt up to the max LTV before every buy.
	PolicyAlways MarginPolicy = "always"
)

func (p MarginPolicy) Valid() bool {
	switch p {
	case PolicyOff, PolicyAssist, PolicyAlways:
		return true
	}
	return false
}

// IncomeMode selects the income-management strategy for margin debt.
type IncomeMode string

const (
	ModeInterestOnly          IncomeMode = "interest_only"
	ModeInterestPlusPrincipal IncomeMode = "interest_plus_principal"
	ModeTargetRatio           IncomeMode = "target_ratio"
	ModePriceBand             IncomeMode = "price_band"
)

func (m IncomeMode) Valid() bool {
	switch m {
	case ModeInterestOnly, ModeInterestPlusPrincipal, ModeTargetRatio, ModePriceBand:
		return true
	}
	return false
}

// TaxHandling selects whether month-end tax is set aside or paid immediately.
// Both remove the amount from investable cash; reserve additionally tracks the
// running reserve balance.
type TaxHandling string

const (
	TaxReserve   TaxHandling = "reserve"
	TaxImmediate TaxHandling = "immediate"
)

func (h TaxHandling) Valid() bool {
	return h == TaxReserve || h == TaxImmediate
}

// SleeveConfig is an ordered list of tickers with raw (un-normalized) weights.
// A weights list shorter than the tickers list is padded with equal weights.
type SleeveConfig struct {
	Tickers []string  `yaml:"tickers" json:"tickers"`
	Weights []float64 `yaml:"weights" json:"weights"`
}

// MarginConfig describes the borrowing facility.
type MarginConfig struct {
	Enabled       bool         `yaml:"enabled" json:"enabled"`
	AnnualRatePct float64      `yaml:"annual_rate_pct" json:"annual_rate_pct"`
	DayCount      int          `yaml:"day_count" json:"day_count"` // 365 or 360
	MaxLTVPct     float64      `yaml:"max_ltv_pct" json:"max_ltv_pct"`
	Policy        MarginPolicy `yaml:"policy" json:"policy"`
}

// MaxLTV returns the configured max loan-to-value as a fraction, clamped to [0, 0.95].
func (m MarginConfig) MaxLTV() float64 {
	return min(max(m.MaxLTVPct/100, 0), 0.95)
}

// DailyRate returns the per-day interest rate under the configured day-count basis.
func (m MarginConfig) DailyRate() float64 {
	basis := float64(m.DayCount)
	if basis != 360 {
		basis = 365
	}
	return max(m.AnnualRatePct, 0) / 100 / basis
}

// Active reports whether borrowing can occur at all.
func (m MarginConfig) Active() bool {
	return m.Enabled && m.Policy != PolicyOff && m.Policy != ""
}

// IncomeConfig describes the income-generating sleeve and its management strategy.
type IncomeConfig struct {
	Enabled         bool         `yaml:"enabled" json:"enabled"`
	Sleeve          SleeveConfig `yaml:"sleeve" json:"sleeve"`
	SplitPct        float64      `yaml:"split_pct" json:"split_pct"` // share of each buy routed to the income sleeve
	AnnualYieldPct  float64      `yaml:"annual_yield_pct" json:"annual_yield_pct"`
	Mode            IncomeMode   `yaml:"mode" json:"mode"`
	AdjustFrequency Frequency    `yaml:"adjust_frequency" json:"adjust_frequency"`
	TargetRatioPct  float64      `yaml:"target_ratio_pct" json:"target_ratio_pct"`
	AllowBorrow     bool         `yaml:"allow_borrow" json:"allow_borrow"` // borrow to reach target ratio
	BandMin         float64      `yaml:"band_min" json:"band_min"`
	BandMax         float64      `yaml:"band_max" json:"band_max"`
}

// Split returns the buy-split fraction routed to the income sleeve, in [0, 1].
func (i IncomeConfig) Split() float64 {
	return min(max(i.SplitPct/100, 0), 1)
}

// TargetRatio returns the target LTV fraction, clamped to [0, 0.95].
func (i IncomeConfig) TargetRatio() float64 {
	return min(max(i.TargetRatioPct/100, 0), 0.95)
}

// DailyYield returns the per-day notional income rate for the given day-count basis.
func (i IncomeConfig) DailyYield(dayCount int) float64 {
	basis := float64(dayCount)
	if basis != 360 {
		basis = 365
	}
	return max(i.AnnualYieldPct, 0) / 100 / basis
}

// MonthlyYield returns the month-end distribution rate (annual yield / 12).
func (i IncomeConfig) MonthlyYield() float64 {
	return max(i.AnnualYieldPct, 0) / 100 / 12
}

// BillsTaxConfig describes the month-end tax and fixed-bill routing engine.
type BillsTaxConfig struct {
	Enabled     bool        `yaml:"enabled" json:"enabled"`
	MonthlyBill float64     `yaml:"monthly_bill" json:"monthly_bill"`
	TaxRatePct  float64     `yaml:"tax_rate_pct" json:"tax_rate_pct"`
	Handling    TaxHandling `yaml:"handling" json:"handling"`
}

// TaxRate returns the flat tax rate as a fraction in [0, 1].
func (b BillsTaxConfig) TaxRate() float64 {
	return min(max(b.TaxRatePct/100, 0), 1)
}

// SimulationConfig is the complete snapshot a daily simulation run is built from.
type SimulationConfig struct {
	Name          string         `yaml:"name" json:"name"`
	Start         string         `yaml:"start" json:"start"` // YYYY-MM-DD
	End           string         `yaml:"end" json:"end"`
	StartCash     float64        `yaml:"start_cash" json:"start_cash"`
	Contribution  float64        `yaml:"contribution" json:"contribution"`
	Frequency     Frequency      `yaml:"frequency" json:"frequency"`
	RebalanceBuys bool           `yaml:"rebalance_buys" json:"rebalance_buys"`
	Core          SleeveConfig   `yaml:"core" json:"core"`
	Income        IncomeConfig   `yaml:"income" json:"income"`
	Margin        MarginConfig   `yaml:"margin" json:"margin"`
	BillsTax      BillsTaxConfig `yaml:"bills_tax" json:"bills_tax"`
}

// Tickers returns all tickers the simulation needs prices for, core sleeve
// first, deduplicated in order.
func (c *SimulationConfig) Tickers() []string {
	seen := make(map[string]bool, len(c.Core.Tickers))
	var out []string
	for _, t := range c.Core.Tickers {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	if c.Income.Enabled {
		for _, t := range c.Income.Sleeve.Tickers {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

// ProjectionAsset is one asset line of the cash-only compounding model.
type ProjectionAsset struct {
	Name         string  `yaml:"name" json:"name"`
	Weight       float64 `yaml:"weight" json:"weight"` // raw weight, normalized before use
	GrowthPct    float64 `yaml:"growth_pct" json:"growth_pct"`
	YieldPct     float64 `yaml:"yield_pct" json:"yield_pct"`
	ReinvestPct  float64 `yaml:"reinvest_pct" json:"reinvest_pct"`
}

// ProjectionConfig drives the period-stepped cash-only compounding model.
type ProjectionConfig struct {
	StartingBalance   float64           `yaml:"starting_balance" json:"starting_balance"`
	Contribution      float64           `yaml:"contribution" json:"contribution"`
	ContributionsYear int               `yaml:"contributions_per_year" json:"contributions_per_year"` // e.g. 12 for monthly
	Compounding       Compounding       `yaml:"compounding" json:"compounding"`
	Years             int               `yaml:"years" json:"years"`
	Assets            []ProjectionAsset `yaml:"assets" json:"assets"`
	TaxRatePct        float64           `yaml:"tax_rate_pct" json:"tax_rate_pct"`
	CorrectionPct     float64           `yaml:"correction_pct" json:"correction_pct"`
	CorrectionEvery   int               `yaml:"correction_every_years" json:"correction_every_years"`
}

// TaxRate returns the flat tax rate on paid-out income as a fraction.
func (c *ProjectionConfig) TaxRate() float64 {
	return min(max(c.TaxRatePct/100, 0), 1)
}

// CorrectionFraction returns the scheduled haircut as a fraction in [0, 1].
func (c *ProjectionConfig) CorrectionFraction() float64 {
	return min(max(c.CorrectionPct/100, 0), 1)
}
