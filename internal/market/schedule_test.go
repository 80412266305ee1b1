package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microdca/dcasim/internal/domain"
)

func TestBuyScheduleDaily(t *testing.T) {
	dates := []string{"2024-01-02", "2024-01-03", "2024-01-04"}
	buy := BuySchedule(dates, domain.FreqDaily)
	assert.Equal(t, []bool{true, true, true}, buy)
}

func TestBuyScheduleWeekly(t *testing.T) {
	// Tue-Fri of one ISO week, then Mon-Tue of the next.
	dates := []string{
		"2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05",
		"2024-01-08", "2024-01-09",
	}
	buy := BuySchedule(dates, domain.FreqWeekly)
	assert.Equal(t, []bool{true, false, false, false, true, false}, buy)
}

func TestBuyScheduleMonthly(t *testing.T) {
	// The first trading day of a month need not be the 1st.
	dates := []string{
		"2024-01-30", "2024-01-31",
		"2024-02-02", "2024-02-05",
		"2024-03-01",
	}
	buy := BuySchedule(dates, domain.FreqMonthly)
	assert.Equal(t, []bool{true, false, true, false, true}, buy)
}

func TestMonthEndSchedule(t *testing.T) {
	dates := []string{
		"2024-01-30", "2024-01-31",
		"2024-02-01", "2024-02-29",
		"2024-03-01", "2024-03-04",
	}
	end := MonthEndSchedule(dates)
	// Last trading day before each month transition, plus the final day.
	assert.Equal(t, []bool{false, true, false, true, false, true}, end)

	assert.Empty(t, MonthEndSchedule(nil))

	single := MonthEndSchedule([]string{"2024-01-15"})
	require.Len(t, single, 1)
	assert.True(t, single[0])
}

func TestAdjustScheduleMatchesBuySchedule(t *testing.T) {
	dates := []string{"2024-01-02", "2024-01-03", "2024-02-01"}
	assert.Equal(t, BuySchedule(dates, domain.FreqMonthly), AdjustSchedule(dates, domain.FreqMonthly))
}
