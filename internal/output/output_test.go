package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microdca/dcasim/internal/domain"
)

// sampleReport fabricates a two-day comparison with a NaN coverage reading
// and a two-year projection.
func sampleReport() *Report {
	dates := []string{"2024-01-02", "2024-01-03"}

	mkResult := func(name string, coverage float64) *domain.SimulationResult {
		led := domain.NewEventLedger(2)
		led.Deposit[0] = 500
		led.Buy[0] = 500
		return &domain.SimulationResult{
			Name:  name,
			Dates: dates,
			Rows: []domain.DailyRow{
				{Date: dates[0], AssetValue: 500, Cash: 0, Equity: 500, Coverage: math.NaN()},
				{Date: dates[1], AssetValue: 510, Cash: 0, Equity: 505, Debt: 5, LTV: 5.0 / 510, Coverage: coverage},
			},
			Ledger: led,
		}
	}

	return &Report{
		Name: "sample",
		Comparison: &domain.ComparisonResult{
			Name:     "sample",
			Dates:    dates,
			CashOnly: mkResult("cash", math.NaN()),
			Margin:   mkResult("margin", 1.2),
			MaxLTV:   0.40,
		},
		Projection: &domain.ProjectionResult{
			Rows: []domain.ProjectionRow{
				{Year: 1, Contributions: 16000, Growth: 800, TotalBalance: 16800, YearPayoutNet: 90},
				{Year: 2, Contributions: 22000, Growth: 2100, TotalBalance: 24100, YearPayoutNet: 95},
			},
		},
	}
}

func TestGetFormatterByName(t *testing.T) {
	assert.NotNil(t, GetFormatterByName("console"))
	assert.NotNil(t, GetFormatterByName("CSV"))
	assert.NotNil(t, GetFormatterByName(" json "))
	assert.Nil(t, GetFormatterByName("xml"))
	assert.Contains(t, AvailableFormatterNames(), "csv-projection")
}

func TestConsoleFormatter(t *testing.T) {
	data, err := ConsoleFormatter{}.Format(sampleReport())
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "STRATEGY COMPARISON")
	assert.Contains(t, out, "Final Equity")
	assert.Contains(t, out, "$505.00")
	assert.Contains(t, out, "Risk Grade")
	assert.Contains(t, out, "CASH-ONLY PROJECTION")
	assert.Contains(t, out, "Final Balance")
	assert.Contains(t, out, "$24100.00")
}

func TestDailyCSVExporter(t *testing.T) {
	data, err := DailyCSVExporter{}.Format(sampleReport())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 days

	header := records[0]
	assert.Equal(t, "date", header[0])
	assert.Equal(t, "cash_only_equity", header[len(header)-1])
	for _, rec := range records[1:] {
		assert.Len(t, rec, len(header))
	}

	// NaN coverage renders as an empty field, finite coverage as a number.
	covIdx := indexOf(header, "coverage")
	require.GreaterOrEqual(t, covIdx, 0)
	assert.Equal(t, "", records[1][covIdx])
	assert.Equal(t, "1.200000", records[2][covIdx])

	_, err = DailyCSVExporter{}.Format(&Report{})
	assert.Error(t, err)
}

func TestProjectionCSVExporter(t *testing.T) {
	data, err := ProjectionCSVExporter{}.Format(sampleReport())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "16800.00", records[1][3])

	_, err = ProjectionCSVExporter{}.Format(&Report{})
	assert.Error(t, err)
}

func TestJSONFormatterSanitizesNonFinite(t *testing.T) {
	data, err := JSONFormatter{}.Format(sampleReport())
	require.NoError(t, err)
	require.True(t, json.Valid(data))

	var doc struct {
		Comparison struct {
			Margin struct {
				Rows []struct {
					Coverage *float64 `json:"coverage"`
				} `json:"rows"`
			} `json:"margin"`
		} `json:"comparison"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Comparison.Margin.Rows, 2)
	assert.Nil(t, doc.Comparison.Margin.Rows[0].Coverage)
	require.NotNil(t, doc.Comparison.Margin.Rows[1].Coverage)
	assert.InDelta(t, 1.2, *doc.Comparison.Margin.Rows[1].Coverage, 1e-12)
}

func TestJSONFormatterProjectionOnly(t *testing.T) {
	rep := &Report{Name: "proj", Projection: sampleReport().Projection}
	data, err := JSONFormatter{}.Format(rep)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
	assert.False(t, strings.Contains(string(data), `"comparison"`))
}

func indexOf(xs []string, want string) int {
	for i, x := range xs {
		if x == want {
			return i
		}
	}
	return -1
}
