package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/util"
	"github.com/shopspring/decimal"
)

// DefaultTrendMonths is the window used when no month count is requested.
const DefaultTrendMonths = 6

// TrendService groups expenses into daily and monthly time series.
type TrendService struct {
	expenseRepo domain.ExpenseRepository
	clock       Clock
}

// NewTrendService creates a new TrendService
func NewTrendService(expenseRepo domain.ExpenseRepository, clock Clock) *TrendService {
	return &TrendService{
		expenseRepo: expenseRepo,
		clock:       clock,
	}
}

// GetDailyTrends sums expenses per calendar day, ascending. Days without an
// expense are omitted rather than zero-filled.
func (s *TrendService) GetDailyTrends(opts domain.AnalyticsOptions) ([]*domain.DailyTrendPoint, error) {
	expenses, err := s.expenseRepo.List()
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	filtered := filterExpenses(expenses, opts, s.clock.Now())

	totals := make(map[time.Time]decimal.Decimal)
	for _, exp := range filtered {
		day := util.DateOnly(exp.Date)
		totals[day] = totals[day].Add(exp.Amount)
	}

	points := make([]*domain.DailyTrendPoint, 0, len(totals))
	for day, total := range totals {
		points = append(points, &domain.DailyTrendPoint{Date: day, Total: total})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points, nil
}

// GetMonthlyTrends returns exactly months contiguous calendar months ending
// at the current month, ascending, including months with zero expenses.
// Expenses are assigned by their own calendar year and month.
func (s *TrendService) GetMonthlyTrends(months int) ([]*domain.MonthlyTrendPoint, error) {
	if months <= 0 {
		months = DefaultTrendMonths
	}

	expenses, err := s.expenseRepo.List()
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	type monthAgg struct {
		total decimal.Decimal
		count int
	}
	aggs := make(map[string]*monthAgg)
	for _, exp := range expenses {
		key := util.FormatMonth(exp.Date.Year(), exp.Date.Month())
		agg, ok := aggs[key]
		if !ok {
			agg = &monthAgg{}
			aggs[key] = agg
		}
		agg.total = agg.total.Add(exp.Amount)
		agg.count++
	}

	now := s.clock.Now()
	points := make([]*domain.MonthlyTrendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		target := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		key := util.FormatMonth(target.Year(), target.Month())

		point := &domain.MonthlyTrendPoint{
			Month:       key,
			Year:        target.Year(),
			MonthNumber: int(target.Month()),
			MonthName:   target.Month().String(),
			Total:       decimal.Zero,
			Average:     decimal.Zero,
		}
		if agg, ok := aggs[key]; ok {
			point.Total = agg.total
			point.Count = agg.count
			if agg.count > 0 {
				point.Average = agg.total.Div(decimal.NewFromInt(int64(agg.count)))
			}
		}
		points = append(points, point)
	}
	return points, nil
}
