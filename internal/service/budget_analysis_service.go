package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/util"
	"github.com/shopspring/decimal"
)

// Utilization thresholds, in percent.
var (
	nearLimitThreshold = decimal.NewFromInt(80)
	dangerThreshold    = decimal.NewFromInt(100)
)

// BudgetAnalysisOptions narrows which budgets are analyzed.
type BudgetAnalysisOptions struct {
	CategoryID string
	Month      string // YYYY-MM; budgets overlapping this month
}

// BudgetAnalysisService derives per-budget utilization views and burn-rate
// projections. Spent amounts are always recomputed from the expense set.
type BudgetAnalysisService struct {
	budgetRepo   domain.BudgetRepository
	expenseRepo  domain.ExpenseRepository
	categoryRepo domain.CategoryRepository
	clock        Clock
}

// NewBudgetAnalysisService creates a new BudgetAnalysisService
func NewBudgetAnalysisService(
	budgetRepo domain.BudgetRepository,
	expenseRepo domain.ExpenseRepository,
	categoryRepo domain.CategoryRepository,
	clock Clock,
) *BudgetAnalysisService {
	return &BudgetAnalysisService{
		budgetRepo:   budgetRepo,
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// AnalyzeBudgets analyzes every active budget matching opts, sorted by
// utilization descending.
func (s *BudgetAnalysisService) AnalyzeBudgets(opts BudgetAnalysisOptions) ([]*domain.BudgetAnalysis, error) {
	budgets, expenses, names, err := s.loadSnapshot()
	if err != nil {
		return nil, err
	}

	var monthStart, monthEnd time.Time
	if opts.Month != "" {
		year, month, err := util.ParseMonth(opts.Month)
		if err != nil {
			return nil, domain.ErrInvalidMonth
		}
		monthStart = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		monthEnd = monthStart.AddDate(0, 1, -1)
	}

	today := util.DateOnly(s.clock.Now())
	analyses := make([]*domain.BudgetAnalysis, 0, len(budgets))
	for _, budget := range budgets {
		if !budget.IsActive {
			continue
		}
		if opts.CategoryID != "" && budget.CategoryID != opts.CategoryID {
			continue
		}
		if opts.Month != "" {
			if util.DateOnly(budget.EndDate).Before(monthStart) || util.DateOnly(budget.StartDate).After(monthEnd) {
				continue
			}
		}
		analyses = append(analyses, analyzeBudget(budget, expenses, names, today))
	}

	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].UtilizationPercentage.GreaterThan(analyses[j].UtilizationPercentage)
	})
	return analyses, nil
}

// AnalyzeBudgetForCategory analyzes the active budget for a single category.
// Returns nil without error when the category has no active budget.
func (s *BudgetAnalysisService) AnalyzeBudgetForCategory(categoryID string) (*domain.BudgetAnalysis, error) {
	if categoryID == "" {
		return nil, domain.ErrCategoryIDRequired
	}

	budgets, expenses, names, err := s.loadSnapshot()
	if err != nil {
		return nil, err
	}

	today := util.DateOnly(s.clock.Now())
	for _, budget := range budgets {
		if budget.IsActive && budget.CategoryID == categoryID {
			return analyzeBudget(budget, expenses, names, today), nil
		}
	}
	return nil, nil
}

// ProjectBudget forecasts period-end spending for a category's budget in the
// given YYYY-MM month. Both arguments are required.
func (s *BudgetAnalysisService) ProjectBudget(categoryID, month string) (*domain.BudgetProjection, error) {
	if categoryID == "" {
		return nil, domain.ErrCategoryIDRequired
	}
	if month == "" {
		return nil, domain.ErrMonthRequired
	}
	year, m, err := util.ParseMonth(month)
	if err != nil {
		return nil, domain.ErrInvalidMonth
	}

	budgets, err := s.budgetRepo.List()
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	monthStart := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	var budget *domain.Budget
	for _, b := range budgets {
		if !b.IsActive || b.CategoryID != categoryID {
			continue
		}
		if util.DateOnly(b.EndDate).Before(monthStart) || util.DateOnly(b.StartDate).After(monthEnd) {
			continue
		}
		budget = b
		break
	}
	if budget == nil {
		return nil, domain.ErrBudgetNotFound
	}

	expenses, err := s.expenseRepo.List()
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	totalSpent := decimal.Zero
	days := make(map[string]struct{})
	for _, exp := range expenses {
		if exp.CategoryID != categoryID {
			continue
		}
		date := util.DateOnly(exp.Date)
		if date.Before(monthStart) || date.After(monthEnd) {
			continue
		}
		totalSpent = totalSpent.Add(exp.Amount)
		days[util.FormatDate(date)] = struct{}{}
	}

	daysInMonth := util.DaysInMonth(year, m)
	daysInMonthDec := decimal.NewFromInt(int64(daysInMonth))

	if len(days) == 0 {
		return &domain.BudgetProjection{
			BudgetAmount:          budget.Amount,
			CurrentSpent:          decimal.Zero,
			DailyAverage:          decimal.Zero,
			ProjectedTotal:        decimal.Zero,
			ProjectedOverage:      decimal.Zero,
			DaysRemaining:         daysInMonth,
			RecommendedDailySpend: budget.Amount.Div(daysInMonthDec),
		}, nil
	}

	// Burn rate divides by days that actually carry an expense, not by
	// elapsed calendar days.
	dailyAverage := totalSpent.Div(decimal.NewFromInt(int64(len(days))))
	projectedTotal := dailyAverage.Mul(daysInMonthDec)

	daysRemaining := daysInMonth - s.clock.Now().Day()
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	remainingBudget := budget.Amount.Sub(totalSpent)
	if remainingBudget.IsNegative() {
		remainingBudget = decimal.Zero
	}
	recommended := decimal.Zero
	if daysRemaining > 0 {
		recommended = remainingBudget.Div(decimal.NewFromInt(int64(daysRemaining)))
	}

	projection := &domain.BudgetProjection{
		BudgetAmount:          budget.Amount,
		CurrentSpent:          totalSpent,
		DailyAverage:          dailyAverage,
		ProjectedTotal:        projectedTotal,
		WillExceedBudget:      projectedTotal.GreaterThan(budget.Amount),
		ProjectedOverage:      decimal.Zero,
		DaysRemaining:         daysRemaining,
		RecommendedDailySpend: recommended,
	}
	if overage := projectedTotal.Sub(budget.Amount); overage.IsPositive() {
		projection.ProjectedOverage = overage
	}
	return projection, nil
}

func (s *BudgetAnalysisService) loadSnapshot() ([]*domain.Budget, []*domain.Expense, map[string]string, error) {
	budgets, err := s.budgetRepo.List()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list budgets: %w", err)
	}
	expenses, err := s.expenseRepo.List()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list expenses: %w", err)
	}
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list categories: %w", err)
	}
	names := make(map[string]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}
	return budgets, expenses, names, nil
}

// analyzeBudget derives the full utilization view of one budget against the
// expense snapshot.
func analyzeBudget(budget *domain.Budget, expenses []*domain.Expense, categoryNames map[string]string, today time.Time) *domain.BudgetAnalysis {
	start := util.DateOnly(budget.StartDate)
	end := util.DateOnly(budget.EndDate)

	spent := decimal.Zero
	for _, exp := range expenses {
		if exp.CategoryID != budget.CategoryID {
			continue
		}
		date := util.DateOnly(exp.Date)
		if date.Before(start) || date.After(end) {
			continue
		}
		spent = spent.Add(exp.Amount)
	}

	utilization := decimal.Zero
	if budget.Amount.IsPositive() {
		utilization = spent.Mul(oneHundred).Div(budget.Amount)
	}

	status := domain.BudgetStatusActive
	switch {
	case !budget.IsActive:
		status = domain.BudgetStatusInactive
	case today.Before(start):
		status = domain.BudgetStatusUpcoming
	case today.After(end):
		status = domain.BudgetStatusExpired
	}

	health := domain.BudgetHealthGood
	switch {
	case utilization.GreaterThanOrEqual(dangerThreshold):
		health = domain.BudgetHealthDanger
	case utilization.GreaterThanOrEqual(nearLimitThreshold):
		health = domain.BudgetHealthWarning
	}

	remaining := budget.Amount.Sub(spent)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	overage := spent.Sub(budget.Amount)
	if overage.IsNegative() {
		overage = decimal.Zero
	}

	name, ok := categoryNames[budget.CategoryID]
	if !ok {
		name = domain.UnknownCategoryName
	}

	isOver := spent.GreaterThan(budget.Amount)
	return &domain.BudgetAnalysis{
		BudgetID:              budget.ID,
		CategoryID:            budget.CategoryID,
		CategoryName:          name,
		BudgetAmount:          budget.Amount,
		SpentAmount:           spent,
		RemainingAmount:       remaining,
		UtilizationPercentage: utilization,
		Status:                status,
		Health:                health,
		DaysRemaining:         util.DaysBetween(today, end),
		IsOverBudget:          isOver,
		IsNearLimit:           utilization.GreaterThanOrEqual(nearLimitThreshold) && !isOver,
		OverageAmount:         overage,
		Period:                budget.Period,
		StartDate:             budget.StartDate,
		EndDate:               budget.EndDate,
	}
}
