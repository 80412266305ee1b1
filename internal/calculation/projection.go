package calculation

import (
	"fmt"
	"math"

	"github.com/microdca/dcasim/internal/domain"
)

// RunProjection executes the period-stepped cash-only compounding model and
// emits one summary row per projected year.
//
// Per step: growth applies to the running balance first, then the step's
// pro-rata contribution is added (new money earns no growth within its own
// step), then the step's distribution is split into reinvested and paid-out
// portions with the flat tax applied to the paid-out gross. On each year
// boundary a scheduled correction, when due, haircuts every asset before the
// row is emitted.
func (e *Engine) RunProjection(cfg *domain.ProjectionConfig) (*domain.ProjectionResult, error) {
	if cfg.Years <= 0 {
		return nil, fmt.Errorf("years=%d: %w", cfg.Years, domain.ErrInvalidYears)
	}
	if len(cfg.Assets) == 0 {
		return nil, fmt.Errorf("projection: %w", domain.ErrEmptyAllocation)
	}

	stepsPerYear := cfg.Compounding.StepsPerYear()
	contribPerYear := cfg.ContributionsYear
	if contribPerYear <= 0 {
		contribPerYear = 12
	}

	// Negative numeric inputs clamp to 0 before use.
	startBalance := math.Max(0, cfg.StartingBalance)
	contribAnnual := math.Max(0, cfg.Contribution) * float64(contribPerYear)
	contribPerStep := contribAnnual / float64(stepsPerYear)
	taxRate := cfg.TaxRate()
	corrFrac := cfg.CorrectionFraction()

	raw := make([]float64, len(cfg.Assets))
	for i, a := range cfg.Assets {
		raw[i] = a.Weight
	}
	weights := NormalizeWeights(raw)

	growthPerStep := make([]float64, len(cfg.Assets))
	yieldPerStep := make([]float64, len(cfg.Assets))
	reinvest := make([]float64, len(cfg.Assets))
	balances := make([]float64, len(cfg.Assets))
	for i, a := range cfg.Assets {
		growthPerStep[i] = math.Max(0, a.GrowthPct) / 100 / float64(stepsPerYear)
		yieldPerStep[i] = math.Max(0, a.YieldPct) / 100 / float64(stepsPerYear)
		reinvest[i] = Clamp(a.ReinvestPct/100, 0, 1)
		balances[i] = startBalance * weights[i]
	}

	result := &domain.ProjectionResult{Rows: make([]domain.ProjectionRow, 0, cfg.Years)}

	contribCum := startBalance
	var yearDist, yearGross, yearNet float64

	totalSteps := cfg.Years * stepsPerYear
	for step := 1; step <= totalSteps; step++ {
		for i := range balances {
			balances[i] *= 1 + growthPerStep[i]
		}

		for i := range balances {
			balances[i] += contribPerStep * weights[i]
		}
		contribCum += contribPerStep

		for i := range balances {
			dist := balances[i] * yieldPerStep[i]
			back := dist * reinvest[i]
			gross := dist - back
			net := gross * (1 - taxRate)
			balances[i] += back

			yearDist += dist
			yearGross += gross
			yearNet += net
		}

		if step%stepsPerYear == 0 {
			year := step / stepsPerYear
			if corrFrac > 0 && cfg.CorrectionEvery > 0 && year%cfg.CorrectionEvery == 0 {
				for i := range balances {
					balances[i] *= 1 - corrFrac
				}
			}

			total := 0.0
			perAsset := make([]float64, len(balances))
			copy(perAsset, balances)
			for _, b := range balances {
				total += b
			}

			result.Rows = append(result.Rows, domain.ProjectionRow{
				Year:              year,
				Contributions:     contribCum,
				Growth:            total - contribCum,
				TotalBalance:      total,
				BalancesByAsset:   perAsset,
				YearDistributions: yearDist,
				YearPayoutGross:   yearGross,
				YearPayoutNet:     yearNet,
			})
			yearDist, yearGross, yearNet = 0, 0, 0
		}
	}

	return result, nil
}
