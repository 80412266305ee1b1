package output

import (
	"encoding/json"
	"math"

	"github.com/microdca/dcasim/internal/domain"
)

// JSONFormatter renders the full report as indented JSON. Non-finite floats
// (coverage can be NaN or +Inf) are not representable in JSON, so rows are
// re-encoded with nullable fields before marshaling.
type JSONFormatter struct{}

func (f JSONFormatter) Name() string { return "json" }

func (f JSONFormatter) Format(rep *Report) ([]byte, error) {
	doc := jsonReport{Name: rep.Name, Projection: rep.Projection}
	if rep.Comparison != nil {
		doc.Comparison = &jsonComparison{
			Name:      rep.Comparison.Name,
			Dates:     rep.Comparison.Dates,
			CashOnly:  sanitizeResult(rep.Comparison.CashOnly),
			Margin:    sanitizeResult(rep.Comparison.Margin),
			Crossover: rep.Comparison.Crossover,
			MaxLTV:    rep.Comparison.MaxLTV,
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}

type jsonReport struct {
	Name       string                   `json:"name"`
	Comparison *jsonComparison          `json:"comparison,omitempty"`
	Projection *domain.ProjectionResult `json:"projection,omitempty"`
}

type jsonComparison struct {
	Name      string            `json:"name"`
	Dates     []string          `json:"dates"`
	CashOnly  *jsonResult       `json:"cash_only"`
	Margin    *jsonResult       `json:"margin"`
	Crossover *domain.Crossover `json:"crossover,omitempty"`
	MaxLTV    float64           `json:"max_ltv"`
}

type jsonResult struct {
	Name   string              `json:"name"`
	Rows   []jsonDailyRow      `json:"rows"`
	Ledger *domain.EventLedger `json:"ledger"`
}

type jsonDailyRow struct {
	Date            string   `json:"date"`
	AssetValue      float64  `json:"asset_value"`
	Cash            float64  `json:"cash"`
	Equity          float64  `json:"equity"`
	Debt            float64  `json:"debt"`
	LTV             float64  `json:"ltv"`
	Coverage        *float64 `json:"coverage"` // null when undefined or infinite
	TargetDeviation float64  `json:"target_deviation"`
	TaxReserve      float64  `json:"tax_reserve"`
	BillsPaid       float64  `json:"bills_paid"`
}

func sanitizeResult(r *domain.SimulationResult) *jsonResult {
	if r == nil {
		return nil
	}
	out := &jsonResult{Name: r.Name, Ledger: r.Ledger, Rows: make([]jsonDailyRow, len(r.Rows))}
	for i, row := range r.Rows {
		jr := jsonDailyRow{
			Date:            row.Date,
			AssetValue:      row.AssetValue,
			Cash:            row.Cash,
			Equity:          row.Equity,
			Debt:            row.Debt,
			LTV:             row.LTV,
			TargetDeviation: row.TargetDeviation,
			TaxReserve:      row.TaxReserve,
			BillsPaid:       row.BillsPaid,
		}
		if !math.IsNaN(row.Coverage) && !math.IsInf(row.Coverage, 0) {
			c := row.Coverage
			jr.Coverage = &c
		}
		out.Rows[i] = jr
	}
	return out
}
