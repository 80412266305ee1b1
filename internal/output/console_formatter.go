package output

import (
	"fmt"
	"strings"

	"github.com/microdca/dcasim/internal/calculation"
	"github.com/microdca/dcasim/internal/domain"
	"github.com/microdca/dcasim/pkg/money"
)

// ConsoleFormatter renders a human-readable text report.
type ConsoleFormatter struct{}

func (f ConsoleFormatter) Name() string { return "console" }

func (f ConsoleFormatter) Format(rep *Report) ([]byte, error) {
	var sb strings.Builder

	title := rep.Name
	if title == "" {
		title = "DCA Simulation Report"
	}
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", len(title)) + "\n\n")

	if rep.Comparison != nil {
		f.writeComparison(&sb, rep.Comparison)
	}
	if rep.Projection != nil {
		if rep.Comparison != nil {
			sb.WriteString("\n")
		}
		f.writeProjection(&sb, rep.Projection)
	}

	return []byte(sb.String()), nil
}

func (f ConsoleFormatter) writeComparison(sb *strings.Builder, cmp *domain.ComparisonResult) {
	n := len(cmp.Dates)
	if n == 0 {
		sb.WriteString("No trading days in range.\n")
		return
	}
	fmt.Fprintf(sb, "Period: %s to %s (%d trading days)\n\n", cmp.Dates[0], cmp.Dates[n-1], n)

	base := SummarizeEquity(cmp.CashOnly.EquitySeries())
	alt := SummarizeEquity(cmp.Margin.EquitySeries())

	sb.WriteString("STRATEGY COMPARISON\n")
	sb.WriteString("-------------------\n")
	fmt.Fprintf(sb, "%-24s %16s %16s\n", "", "Cash-Only", "Margin/Income")
	fmt.Fprintf(sb, "%-24s %16s %16s\n", "Final Equity",
		money.FormatUSD(base.FinalEquity), money.FormatUSD(alt.FinalEquity))
	fmt.Fprintf(sb, "%-24s %16s %16s\n", "Annualized Growth",
		money.FormatPercent(base.GrowthRate), money.FormatPercent(alt.GrowthRate))
	fmt.Fprintf(sb, "%-24s %16s %16s\n", "Annualized Volatility",
		money.FormatPercent(base.AnnualizedVol), money.FormatPercent(alt.AnnualizedVol))
	fmt.Fprintf(sb, "%-24s %16s %16s\n", "Max Drawdown",
		money.FormatPercent(base.MaxDrawdown), money.FormatPercent(alt.MaxDrawdown))

	if cmp.Crossover != nil {
		fmt.Fprintf(sb, "\nMargin strategy overtakes cash-only on %s (day %d)\n",
			cmp.Crossover.Date, cmp.Crossover.DayIndex+1)
	} else if alt.FinalEquity >= base.FinalEquity {
		sb.WriteString("\nMargin strategy leads for the entire period.\n")
	} else {
		sb.WriteString("\nMargin strategy never overtakes the cash-only baseline.\n")
	}

	last := cmp.Margin.Rows[len(cmp.Margin.Rows)-1]
	risk := calculation.EvaluateRisk(last.LTV, cmp.MaxLTV, last.Coverage)

	sb.WriteString("\nMARGIN POSITION (final day)\n")
	sb.WriteString("---------------------------\n")
	fmt.Fprintf(sb, "%-24s %16s\n", "Debt", money.FormatUSD(last.Debt))
	fmt.Fprintf(sb, "%-24s %16s\n", "Loan-to-Value", money.FormatPercent(last.LTV))
	fmt.Fprintf(sb, "%-24s %16s\n", "Max LTV", money.FormatPercent(cmp.MaxLTV))
	fmt.Fprintf(sb, "%-24s %16s\n", "Interest Coverage", money.FormatRatio(last.Coverage))
	fmt.Fprintf(sb, "%-24s %16s\n", "Risk Grade", string(risk.Grade))
	fmt.Fprintf(sb, "%-24s %s\n", "Signal", risk.Signal)

	if last.TaxReserve > 0 || last.BillsPaid > 0 {
		sb.WriteString("\nTAX AND BILLS\n")
		sb.WriteString("-------------\n")
		fmt.Fprintf(sb, "%-24s %16s\n", "Tax Reserve", money.FormatUSD(last.TaxReserve))
		fmt.Fprintf(sb, "%-24s %16s\n", "Bills Paid", money.FormatUSD(last.BillsPaid))
		fmt.Fprintf(sb, "%-24s %16s\n", "Bills Shortfall", money.FormatUSD(sum(cmp.Margin.Ledger.BillsShortfall)))
	}
}

func (f ConsoleFormatter) writeProjection(sb *strings.Builder, proj *domain.ProjectionResult) {
	sb.WriteString("CASH-ONLY PROJECTION\n")
	sb.WriteString("--------------------\n")
	fmt.Fprintf(sb, "%4s %16s %16s %16s %16s\n",
		"Year", "Contributions", "Growth", "Balance", "Net Payout")
	for _, row := range proj.Rows {
		fmt.Fprintf(sb, "%4d %16s %16s %16s %16s\n",
			row.Year,
			money.FormatUSD(row.Contributions),
			money.FormatUSD(row.Growth),
			money.FormatUSD(row.TotalBalance),
			money.FormatUSD(row.YearPayoutNet))
	}
	fmt.Fprintf(sb, "\n%-16s %s\n", "Final Balance", money.FormatUSD(proj.FinalBalance()))
}

func sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}
