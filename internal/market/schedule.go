package market

import (
	"github.com/microdca/dcasim/internal/domain"
	"github.com/microdca/dcasim/pkg/dateutil"
)

// BuySchedule derives "buy today" signals from the trading calendar: every
// day for daily, the first trading day of each ISO week for weekly, the first
// trading day of each (year, month) for monthly. Pure function of the calendar.
func BuySchedule(dates []string, freq domain.Frequency) []bool {
	buy := make([]bool, len(dates))

	switch freq {
	case domain.FreqDaily:
		for i := range buy {
			buy[i] = true
		}
	case domain.FreqWeekly:
		lastKey := ""
		for i, ds := range dates {
			d, err := dateutil.ParseDay(ds)
			if err != nil {
				continue
			}
			if key := dateutil.ISOWeekKey(d); key != lastKey {
				buy[i] = true
				lastKey = key
			}
		}
	default: // monthly
		lastKey := ""
		for i, ds := range dates {
			d, err := dateutil.ParseDay(ds)
			if err != nil {
				continue
			}
			if key := dateutil.MonthKey(d); key != lastKey {
				buy[i] = true
				lastKey = key
			}
		}
	}
	return buy
}

// MonthEndSchedule marks the trading day immediately preceding each month
// transition, plus the final calendar day.
func MonthEndSchedule(dates []string) []bool {
	end := make([]bool, len(dates))
	if len(dates) == 0 {
		return end
	}
	for i := 0; i < len(dates)-1; i++ {
		cur, err1 := dateutil.ParseDay(dates[i])
		next, err2 := dateutil.ParseDay(dates[i+1])
		if err1 != nil || err2 != nil {
			continue
		}
		if !dateutil.SameMonth(cur, next) {
			end[i] = true
		}
	}
	end[len(dates)-1] = true
	return end
}

// AdjustSchedule derives "adjust today" signals for margin management.
func AdjustSchedule(dates []string, freq domain.Frequency) []bool {
	return BuySchedule(dates, freq)
}
