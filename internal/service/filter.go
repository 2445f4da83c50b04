package service

import (
	"time"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/util"
)

// periodBounds resolves a named period to inclusive date bounds relative to
// now. The zero end time means unbounded.
func periodBounds(period domain.Period, now time.Time) (start, end time.Time, bounded bool) {
	today := util.DateOnly(now)
	switch period {
	case domain.PeriodToday:
		return today, today, true
	case domain.PeriodWeek:
		// Trailing seven days including today
		return today.AddDate(0, 0, -6), today, true
	case domain.PeriodMonth:
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), today, true
	case domain.PeriodYear:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), today, true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// filterExpenses returns the expenses matching opts. The input slice is never
// mutated; an empty result is an empty slice, not an error.
func filterExpenses(expenses []*domain.Expense, opts domain.AnalyticsOptions, now time.Time) []*domain.Expense {
	start, end, bounded := periodBounds(opts.Period, now)

	// Explicit bounds narrow the named period further
	if opts.StartDate != nil {
		s := util.DateOnly(*opts.StartDate)
		if !bounded || s.After(start) {
			start = s
		}
		bounded = true
	}
	if opts.EndDate != nil {
		e := util.DateOnly(*opts.EndDate)
		if end.IsZero() || e.Before(end) {
			end = e
		}
	}

	filtered := make([]*domain.Expense, 0, len(expenses))
	for _, exp := range expenses {
		date := util.DateOnly(exp.Date)
		if bounded && date.Before(start) {
			continue
		}
		if !end.IsZero() && date.After(end) {
			continue
		}
		if opts.CategoryID != "" && exp.CategoryID != opts.CategoryID {
			continue
		}
		filtered = append(filtered, exp)
	}
	return filtered
}
