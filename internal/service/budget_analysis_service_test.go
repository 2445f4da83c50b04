package service

import (
	"testing"
	"time"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBudgetAnalysisService(now time.Time) (*BudgetAnalysisService, *testutil.MockBudgetRepository, *testutil.MockExpenseRepository, *testutil.MockCategoryRepository) {
	budgetRepo := testutil.NewMockBudgetRepository()
	expenseRepo := testutil.NewMockExpenseRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	service := NewBudgetAnalysisService(budgetRepo, expenseRepo, categoryRepo, testutil.FixedClock{Time: now})
	return service, budgetRepo, expenseRepo, categoryRepo
}

func septemberBudget(categoryID string, amount int64) *domain.Budget {
	return &domain.Budget{
		CategoryID: categoryID,
		Amount:     decimal.NewFromInt(amount),
		Period:     domain.BudgetPeriodMonthly,
		StartDate:  time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC),
		IsActive:   true,
	}
}

func TestBudgetAnalysis_UnderBudget(t *testing.T) {
	now := time.Date(2025, time.September, 21, 12, 0, 0, 0, time.UTC)
	service, budgetRepo, expenseRepo, categoryRepo := setupBudgetAnalysisService(now)
	addCategory(categoryRepo, "food", "Food")
	budgetRepo.AddBudget(septemberBudget("food", 200))
	addExpense(expenseRepo, 100, "food", time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC))
	addExpense(expenseRepo, 50, "food", time.Date(2025, time.September, 12, 0, 0, 0, 0, time.UTC))

	analyses, err := service.AnalyzeBudgets(BudgetAnalysisOptions{})
	require.NoError(t, err)
	require.Len(t, analyses, 1)

	a := analyses[0]
	assert.Equal(t, "Food", a.CategoryName)
	assert.Equal(t, "150.00", a.SpentAmount.StringFixed(2))
	assert.Equal(t, "50.00", a.RemainingAmount.StringFixed(2))
	assert.Equal(t, "75.00", a.UtilizationPercentage.StringFixed(2))
	assert.False(t, a.IsOverBudget)
	assert.False(t, a.IsNearLimit)
	assert.Equal(t, "0.00", a.OverageAmount.StringFixed(2))
	assert.Equal(t, domain.BudgetStatusActive, a.Status)
	assert.Equal(t, domain.BudgetHealthGood, a.Health)
	assert.Equal(t, 9, a.DaysRemaining)
}

func TestBudgetAnalysis_OverBudget(t *testing.T) {
	now := time.Date(2025, time.September, 21, 12, 0, 0, 0, time.UTC)
	service, budgetRepo, expenseRepo, categoryRepo := setupBudgetAnalysisService(now)
	addCategory(categoryRepo, "food", "Food")
	budgetRepo.AddBudget(septemberBudget("food", 100))
	addExpense(expenseRepo, 150, "food", time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC))

	analyses, err := service.AnalyzeBudgets(BudgetAnalysisOptions{})
	require.NoError(t, err)
	require.Len(t, analyses, 1)

	a := analyses[0]
	assert.True(t, a.IsOverBudget)
	assert.False(t, a.IsNearLimit)
	assert.Equal(t, "50.00", a.OverageAmount.StringFixed(2))
	assert.Equal(t, "150.00", a.UtilizationPercentage.StringFixed(2))
	assert.Equal(t, "0.00", a.RemainingAmount.StringFixed(2))
	assert.Equal(t, domain.BudgetHealthDanger, a.Health)
}

func TestBudgetAnalysis_NearLimitWarning(t *testing.T) {
	now := time.Date(2025, time.September, 21, 12, 0, 0, 0, time.UTC)
	service, budgetRepo, expenseRepo, categoryRepo := setupBudgetAnalysisService(now)
	addCategory(categoryRepo, "food", "Food")
	budgetRepo.AddBudget(septemberBudget("food", 100))
	addExpense(expenseRepo, 85, "food", time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC))

	analyses, err := service.AnalyzeBudgets(BudgetAnalysisOptions{})
	require.NoError(t, err)
	require.Len(t, analyses, 1)
	assert.True(t, analyses[0].IsNearLimit)
	assert.False(t, analyses[0].IsOverBudget)
	assert.Equal(t, domain.BudgetHealthWarning, analyses[0].Health)
}

func TestBudgetAnalysis_StatusLifecycle(t *testing.T) {
	now := time.Date(2025, time.September, 21, 12, 0, 0, 0, time.UTC)
	service, budgetRepo, _, categoryRepo := setupBudgetAnalysisService(now)
	addCategory(categoryRepo, "food", "Food")

	upcoming := septemberBudget("food", 100)
	upcoming.StartDate = time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	upcoming.EndDate = time.Date(2025, time.October, 31, 0, 0, 0, 0, time.UTC)
	budgetRepo.AddBudget(upcoming)

	expired := septemberBudget("food", 100)
	expired.StartDate = time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	expired.EndDate = time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC)
	budgetRepo.AddBudget(expired)

	inactive := septemberBudget("food", 100)
	inactive.IsActive = false
	budgetRepo.AddBudget(inactive)

	analyses, err := service.AnalyzeBudgets(BudgetAnalysisOptions{})
	require.NoError(t, err)
	// Inactive budgets are excluded entirely
	require.Len(t, analyses, 2)
	statuses := []domain.BudgetStatus{analyses[0].Status, analyses[1].Status}
	assert.Contains(t, statuses, domain.BudgetStatusUpcoming)
	assert.Contains(t, statuses, domain.BudgetStatusExpired)
}

func TestBudgetAnalysis_SortedByUtilizationDescending(t *testing.T) {
	now := time.Date(2025, time.September, 21, 12, 0, 0, 0, time.UTC)
	service, budgetRepo, expenseRepo, categoryRepo := setupBudgetAnalysisService(now)
	addCategory(categoryRepo, "food", "Food")
	addCategory(categoryRepo, "transport", "Transport")
	budgetRepo.AddBudget(septemberBudget("food", 100))
	budgetRepo.AddBudget(septemberBudget("transport", 100))
	addExpense(expenseRepo, 20, "food", time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC))
	addExpense(expenseRepo, 90, "transport", time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC))

	analyses, err := service.AnalyzeBudgets(BudgetAnalysisOptions{})
	require.NoError(t, err)
	require.Len(t, analyses, 2)
	assert.Equal(t, "transport", analyses[0].CategoryID)
	assert.Equal(t, "food", analyses[1].CategoryID)
}

func TestBudgetAnalysis_MonthFilter(t *testing.T) {
	now := time.Date(2025, time.September, 21, 12, 0, 0, 0, time.UTC)
	service, budgetRepo, _, categoryRepo := setupBudgetAnalysisService(now)
	addCategory(categoryRepo, "food", "Food")
	budgetRepo.AddBudget(septemberBudget("food", 100))

	august := septemberBudget("food", 100)
	august.StartDate = time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	august.EndDate = time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC)
	budgetRepo.AddBudget(august)

	analyses, err := service.AnalyzeBudgets(BudgetAnalysisOptions{Month: "2025-09"})
	require.NoError(t, err)
	assert.Len(t, analyses, 1)

	_, err = service.AnalyzeBudgets(BudgetAnalysisOptions{Month: "September 2025"})
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)
}

func TestBudgetAnalysis_ForCategory(t *testing.T) {
	now := time.Date(2025, time.September, 21, 12, 0, 0, 0, time.UTC)
	service, budgetRepo, _, categoryRepo := setupBudgetAnalysisService(now)
	addCategory(categoryRepo, "food", "Food")
	budgetRepo.AddBudget(septemberBudget("food", 100))

	analysis, err := service.AnalyzeBudgetForCategory("food")
	require.NoError(t, err)
	require.NotNil(t, analysis)
	assert.Equal(t, "food", analysis.CategoryID)

	// No budget is not an error
	analysis, err = service.AnalyzeBudgetForCategory("transport")
	require.NoError(t, err)
	assert.Nil(t, analysis)

	_, err = service.AnalyzeBudgetForCategory("")
	assert.ErrorIs(t, err, domain.ErrCategoryIDRequired)
}

func TestBudgetProjection_SteadyBurnRate(t *testing.T) {
	// 10 distinct days of 10.00 each in a 30-day month
	now := time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)
	service, budgetRepo, expenseRepo, categoryRepo := setupBudgetAnalysisService(now)
	addCategory(categoryRepo, "food", "Food")
	budgetRepo.AddBudget(septemberBudget("food", 300))
	for day := 1; day <= 10; day++ {
		addExpense(expenseRepo, 10, "food", time.Date(2025, time.September, day, 0, 0, 0, 0, time.UTC))
	}

	projection, err := service.ProjectBudget("food", "2025-09")
	require.NoError(t, err)

	assert.Equal(t, "100.00", projection.CurrentSpent.StringFixed(2))
	assert.Equal(t, "10.00", projection.DailyAverage.StringFixed(2))
	assert.Equal(t, "300.00", projection.ProjectedTotal.StringFixed(2))
	assert.False(t, projection.WillExceedBudget)
	assert.Equal(t, "0.00", projection.ProjectedOverage.StringFixed(2))
	assert.Equal(t, 20, projection.DaysRemaining)
	assert.Equal(t, "10.00", projection.RecommendedDailySpend.StringFixed(2))
}

func TestBudgetProjection_WillExceed(t *testing.T) {
	now := time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)
	service, budgetRepo, expenseRepo, categoryRepo := setupBudgetAnalysisService(now)
	addCategory(categoryRepo, "food", "Food")
	budgetRepo.AddBudget(septemberBudget("food", 200))
	for day := 1; day <= 10; day++ {
		addExpense(expenseRepo, 10, "food", time.Date(2025, time.September, day, 0, 0, 0, 0, time.UTC))
	}

	projection, err := service.ProjectBudget("food", "2025-09")
	require.NoError(t, err)
	assert.True(t, projection.WillExceedBudget)
	// willExceedBudget implies projectedTotal > budgetAmount
	assert.True(t, projection.ProjectedTotal.GreaterThan(projection.BudgetAmount))
	assert.Equal(t, "100.00", projection.ProjectedOverage.StringFixed(2))
}

func TestBudgetProjection_NoSpendingYet(t *testing.T) {
	now := time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC)
	service, budgetRepo, _, categoryRepo := setupBudgetAnalysisService(now)
	addCategory(categoryRepo, "food", "Food")
	budgetRepo.AddBudget(septemberBudget("food", 300))

	projection, err := service.ProjectBudget("food", "2025-09")
	require.NoError(t, err)
	assert.True(t, projection.CurrentSpent.IsZero())
	assert.True(t, projection.DailyAverage.IsZero())
	assert.True(t, projection.ProjectedTotal.IsZero())
	assert.False(t, projection.WillExceedBudget)
	assert.Equal(t, 30, projection.DaysRemaining)
	assert.Equal(t, "10.00", projection.RecommendedDailySpend.StringFixed(2))
}

func TestBudgetProjection_UsageErrors(t *testing.T) {
	now := time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)
	service, budgetRepo, _, categoryRepo := setupBudgetAnalysisService(now)
	addCategory(categoryRepo, "food", "Food")
	budgetRepo.AddBudget(septemberBudget("food", 300))

	_, err := service.ProjectBudget("", "2025-09")
	assert.ErrorIs(t, err, domain.ErrCategoryIDRequired)

	_, err = service.ProjectBudget("food", "")
	assert.ErrorIs(t, err, domain.ErrMonthRequired)

	_, err = service.ProjectBudget("food", "Sept")
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)

	_, err = service.ProjectBudget("transport", "2025-09")
	assert.ErrorIs(t, err, domain.ErrBudgetNotFound)

	// Budget exists but does not overlap the requested month
	_, err = service.ProjectBudget("food", "2025-11")
	assert.ErrorIs(t, err, domain.ErrBudgetNotFound)
}
