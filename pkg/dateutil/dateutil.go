package dateutil

import (
	"fmt"
	"time"
)

// DayFormat is the wire format for trading dates throughout the simulator.
const DayFormat = "2006-01-02"

// ParseDay parses an ISO date (YYYY-MM-DD) as midnight UTC.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.UTC(), nil
}

// FormatDay renders a time as an ISO date.
func FormatDay(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// IsWeekday reports whether the date falls on a market day (Mon-Fri).
func IsWeekday(t time.Time) bool {
	wd := t.UTC().Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// ISOWeekKey returns a key that is identical for all dates in the same ISO week.
func ISOWeekKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthKey returns a key that is identical for all dates in the same calendar month.
func MonthKey(t time.Time) string {
	u := t.UTC()
	return fmt.Sprintf("%d-%02d", u.Year(), int(u.Month()))
}

// SameMonth reports whether two dates fall in the same (year, month) pair.
func SameMonth(a, b time.Time) bool {
	au, bu := a.UTC(), b.UTC()
	return au.Year() == bu.Year() && au.Month() == bu.Month()
}
