package util

import (
	"fmt"
	"time"
)

// DateFormat is the canonical YYYY-MM-DD form used on the wire.
const DateFormat = "2006-01-02"

// MonthFormat is the canonical YYYY-MM form used on the wire.
const MonthFormat = "2006-01"

// DateOnly truncates t to midnight UTC so calendar-date comparisons hold.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// ParseMonth parses a YYYY-MM month string into its year and month.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse(MonthFormat, s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return t.Year(), t.Month(), nil
}

// FormatMonth renders a year/month pair as YYYY-MM.
func FormatMonth(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format(MonthFormat)
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// PreviousMonth returns the year and month immediately before the given one.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// DaysBetween returns the whole-day difference b-a; both are truncated to
// calendar dates first. Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
