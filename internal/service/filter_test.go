package service

import (
	"testing"
	"time"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/shopspring/decimal"
)

func expenseOn(date time.Time, categoryID string) *domain.Expense {
	return &domain.Expense{
		Amount:     decimal.NewFromInt(10),
		Date:       date,
		CategoryID: categoryID,
	}
}

func TestFilterExpenses(t *testing.T) {
	now := time.Date(2025, time.September, 21, 15, 30, 0, 0, time.UTC)
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	expenses := []*domain.Expense{
		expenseOn(day(2025, time.September, 21), "food"),
		expenseOn(day(2025, time.September, 15), "food"),
		expenseOn(day(2025, time.September, 1), "transport"),
		expenseOn(day(2025, time.August, 30), "food"),
		expenseOn(day(2025, time.January, 2), "transport"),
		expenseOn(day(2024, time.December, 31), "food"),
	}

	startSep10 := day(2025, time.September, 10)
	endSep16 := day(2025, time.September, 16)

	tests := []struct {
		name string
		opts domain.AnalyticsOptions
		want int
	}{
		{"all period keeps everything", domain.AnalyticsOptions{Period: domain.PeriodAll}, 6},
		{"no period behaves like all", domain.AnalyticsOptions{}, 6},
		{"today", domain.AnalyticsOptions{Period: domain.PeriodToday}, 1},
		{"week is trailing seven days", domain.AnalyticsOptions{Period: domain.PeriodWeek}, 2},
		{"month starts on the first", domain.AnalyticsOptions{Period: domain.PeriodMonth}, 3},
		{"year starts in january", domain.AnalyticsOptions{Period: domain.PeriodYear}, 5},
		{"category filter", domain.AnalyticsOptions{Period: domain.PeriodAll, CategoryID: "transport"}, 2},
		{"explicit bounds", domain.AnalyticsOptions{StartDate: &startSep10, EndDate: &endSep16}, 1},
		{"explicit start narrows month", domain.AnalyticsOptions{Period: domain.PeriodMonth, StartDate: &startSep10}, 2},
		{"explicit end narrows month", domain.AnalyticsOptions{Period: domain.PeriodMonth, EndDate: &endSep16}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterExpenses(expenses, tt.opts, now)
			if len(got) != tt.want {
				t.Errorf("filterExpenses() returned %d expenses, want %d", len(got), tt.want)
			}
		})
	}
}

func TestFilterExpenses_NeverReturnsNil(t *testing.T) {
	got := filterExpenses(nil, domain.AnalyticsOptions{Period: domain.PeriodToday}, time.Now())
	if got == nil {
		t.Fatal("filterExpenses() returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Fatalf("filterExpenses() returned %d expenses, want 0", len(got))
	}
}

func TestFilterExpenses_DoesNotMutateInput(t *testing.T) {
	now := time.Date(2025, time.September, 21, 0, 0, 0, 0, time.UTC)
	expenses := []*domain.Expense{
		expenseOn(time.Date(2025, time.September, 20, 0, 0, 0, 0, time.UTC), "food"),
		expenseOn(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), "food"),
	}

	filterExpenses(expenses, domain.AnalyticsOptions{Period: domain.PeriodWeek}, now)

	if len(expenses) != 2 {
		t.Fatalf("input slice length changed to %d", len(expenses))
	}
}
