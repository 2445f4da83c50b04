package service

import (
	"fmt"
	"time"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/util"
	"github.com/shopspring/decimal"
)

// DateRange is an inclusive calendar date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ComparisonService compares spending across two arbitrary date ranges.
type ComparisonService struct {
	expenseRepo domain.ExpenseRepository
}

// NewComparisonService creates a new ComparisonService
func NewComparisonService(expenseRepo domain.ExpenseRepository) *ComparisonService {
	return &ComparisonService{expenseRepo: expenseRepo}
}

// ComparePeriods totals both ranges and derives the change between them.
// Both ranges are required. The change percentage is 0 when the previous
// total is 0.
func (s *ComparisonService) ComparePeriods(previous, current *DateRange) (*domain.PeriodComparison, error) {
	if previous == nil || current == nil {
		return nil, domain.ErrPeriodsRequired
	}

	expenses, err := s.expenseRepo.List()
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	prevTotals := totalsForRange(expenses, previous)
	curTotals := totalsForRange(expenses, current)

	amount := curTotals.Total.Sub(prevTotals.Total)
	percentage := decimal.Zero
	if prevTotals.Total.IsPositive() {
		percentage = amount.Mul(oneHundred).Div(prevTotals.Total)
	}

	direction := domain.ChangeNone
	switch {
	case amount.IsPositive():
		direction = domain.ChangeIncrease
	case amount.IsNegative():
		direction = domain.ChangeDecrease
	}

	return &domain.PeriodComparison{
		Previous: prevTotals,
		Current:  curTotals,
		Change: &domain.PeriodChange{
			Amount:     amount,
			Percentage: percentage,
			Direction:  direction,
		},
	}, nil
}

func totalsForRange(expenses []*domain.Expense, r *DateRange) *domain.PeriodTotals {
	start := util.DateOnly(r.Start)
	end := util.DateOnly(r.End)

	totals := &domain.PeriodTotals{
		StartDate: start,
		EndDate:   end,
		Total:     decimal.Zero,
		Average:   decimal.Zero,
	}
	for _, exp := range expenses {
		date := util.DateOnly(exp.Date)
		if date.Before(start) || date.After(end) {
			continue
		}
		totals.Total = totals.Total.Add(exp.Amount)
		totals.Count++
	}
	if totals.Count > 0 {
		totals.Average = totals.Total.Div(decimal.NewFromInt(int64(totals.Count)))
	}
	return totals
}
