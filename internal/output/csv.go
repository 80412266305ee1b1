package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"

	"github.com/microdca/dcasim/pkg/money"
)

// DailyCSVExporter writes the margin run's daily rows joined with the event
// ledger and the cash-only baseline equity, one record per trading day.
type DailyCSVExporter struct{}

func (e DailyCSVExporter) Name() string { return "csv" }

func (e DailyCSVExporter) Format(rep *Report) ([]byte, error) {
	if rep.Comparison == nil {
		return nil, fmt.Errorf("csv formatter requires a simulation comparison")
	}
	cmp := rep.Comparison

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"date", "asset_value", "cash", "equity", "debt", "ltv", "coverage",
		"target_deviation", "tax_reserve", "bills_paid_cum",
		"deposit", "buy", "income", "interest", "paydown",
		"borrow_adjust", "borrow_buy", "distribution",
		"tax_paid", "bills_paid", "bills_shortfall",
		"cash_only_equity",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	led := cmp.Margin.Ledger
	for i, row := range cmp.Margin.Rows {
		rec := []string{
			row.Date,
			csvMoney(row.AssetValue),
			csvMoney(row.Cash),
			csvMoney(row.Equity),
			csvMoney(row.Debt),
			csvRatio(row.LTV),
			csvRatio(row.Coverage),
			csvMoney(row.TargetDeviation),
			csvMoney(row.TaxReserve),
			csvMoney(row.BillsPaid),
			csvMoney(led.Deposit[i]),
			csvMoney(led.Buy[i]),
			csvMoney(led.Income[i]),
			csvMoney(led.Interest[i]),
			csvMoney(led.Paydown[i]),
			csvMoney(led.BorrowAdjust[i]),
			csvMoney(led.BorrowBuy[i]),
			csvMoney(led.Distribution[i]),
			csvMoney(led.TaxPaid[i]),
			csvMoney(led.BillsPaid[i]),
			csvMoney(led.BillsShortfall[i]),
			csvMoney(cmp.CashOnly.Rows[i].Equity),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// ProjectionCSVExporter writes one record per projected year.
type ProjectionCSVExporter struct{}

func (e ProjectionCSVExporter) Name() string { return "csv-projection" }

func (e ProjectionCSVExporter) Format(rep *Report) ([]byte, error) {
	if rep.Projection == nil {
		return nil, fmt.Errorf("csv-projection formatter requires a projection result")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"year", "contributions", "growth", "total_balance",
		"year_distributions", "year_payout_gross", "year_payout_net",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range rep.Projection.Rows {
		rec := []string{
			strconv.Itoa(row.Year),
			csvMoney(row.Contributions),
			csvMoney(row.Growth),
			csvMoney(row.TotalBalance),
			csvMoney(row.YearDistributions),
			csvMoney(row.YearPayoutGross),
			csvMoney(row.YearPayoutNet),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// csvMoney renders a dollar amount with cent precision, empty for non-finite.
func csvMoney(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return ""
	}
	return money.FromFloat(x).String()
}

// csvRatio renders a unitless ratio with six decimals, empty for non-finite.
func csvRatio(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return ""
	}
	return strconv.FormatFloat(x, 'f', 6, 64)
}
