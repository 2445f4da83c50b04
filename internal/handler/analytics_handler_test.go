package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/service"
	"github.com/moneta-app/moneta-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAnalyticsHandler() (*AnalyticsHandler, *testutil.MockExpenseRepository, *testutil.MockCategoryRepository, *testutil.MockBudgetRepository) {
	expenseRepo := testutil.NewMockExpenseRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	clock := testutil.FixedClock{Time: time.Date(2025, time.September, 21, 12, 0, 0, 0, time.UTC)}

	summaryService := service.NewSummaryService(expenseRepo, categoryRepo, clock)
	trendService := service.NewTrendService(expenseRepo, clock)
	budgetAnalysis := service.NewBudgetAnalysisService(budgetRepo, expenseRepo, categoryRepo, clock)
	insightService := service.NewInsightService(summaryService, trendService, budgetAnalysis, expenseRepo, clock)
	comparisonService := service.NewComparisonService(expenseRepo)
	savingsService := service.NewSavingsService(summaryService, expenseRepo, categoryRepo, clock)

	handler := NewAnalyticsHandler(summaryService, trendService, budgetAnalysis, insightService, comparisonService, savingsService)
	return handler, expenseRepo, categoryRepo, budgetRepo
}

func analyticsRequest(t *testing.T, handler func(echo.Context) error, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, handler(c))
	return rec
}

func TestAnalyticsHandler_GetSummary(t *testing.T) {
	handler, expenseRepo, categoryRepo, _ := setupAnalyticsHandler()
	categoryRepo.AddCategory(&domain.Category{ID: "food", Name: "Food", Color: "#336699", Icon: "wallet"})
	expenseRepo.AddExpense(&domain.Expense{
		Amount:     decimalFromString(t, "50.00"),
		Date:       time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC),
		CategoryID: "food",
	})

	rec := analyticsRequest(t, handler.GetSummary, "/analytics/summary?period=month")
	assert.Equal(t, http.StatusOK, rec.Code)

	var summary SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "50.00", summary.Total)
	assert.Equal(t, 1, summary.Count)

	// Money is rendered with exactly two decimals on the wire
	body := rec.Body.String()
	assert.Contains(t, body, `"total":"50.00"`)
	assert.Contains(t, body, `"dailyAverage":"50.00"`)
}

func TestAnalyticsHandler_GetCategoryBreakdownWireFormat(t *testing.T) {
	handler, expenseRepo, categoryRepo, _ := setupAnalyticsHandler()
	categoryRepo.AddCategory(&domain.Category{ID: "food", Name: "Food", Color: "#336699", Icon: "wallet"})
	categoryRepo.AddCategory(&domain.Category{ID: "transport", Name: "Transport", Color: "#2196F3", Icon: "bus"})
	day := time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC)
	expenseRepo.AddExpense(&domain.Expense{Amount: decimalFromString(t, "100"), Date: day, CategoryID: "food"})
	expenseRepo.AddExpense(&domain.Expense{Amount: decimalFromString(t, "50"), Date: day, CategoryID: "food"})
	expenseRepo.AddExpense(&domain.Expense{Amount: decimalFromString(t, "75"), Date: day, CategoryID: "transport"})

	rec := analyticsRequest(t, handler.GetCategoryBreakdown, "/analytics/categories?period=month")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Percentages round to two decimals, never full division precision
	body := rec.Body.String()
	assert.Contains(t, body, `"percentage":"66.67"`)
	assert.Contains(t, body, `"percentage":"33.33"`)
	assert.Contains(t, body, `"total":"150.00"`)
	assert.Contains(t, body, `"total":"75.00"`)
	assert.NotContains(t, body, "66.6666")
}

func TestAnalyticsHandler_GetBudgetProjectionWireFormat(t *testing.T) {
	handler, expenseRepo, categoryRepo, budgetRepo := setupAnalyticsHandler()
	categoryRepo.AddCategory(&domain.Category{ID: "food", Name: "Food", Color: "#336699", Icon: "wallet"})
	budgetRepo.AddBudget(&domain.Budget{
		CategoryID: "food",
		Amount:     decimalFromString(t, "300"),
		Period:     domain.BudgetPeriodMonthly,
		StartDate:  time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC),
		IsActive:   true,
	})
	for day := 1; day <= 10; day++ {
		expenseRepo.AddExpense(&domain.Expense{
			Amount:     decimalFromString(t, "10"),
			Date:       time.Date(2025, time.September, day, 0, 0, 0, 0, time.UTC),
			CategoryID: "food",
		})
	}

	rec := analyticsRequest(t, handler.GetBudgetProjection, "/analytics/projection?categoryId=food&month=2025-09")
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"dailyAverage":"10.00"`)
	assert.Contains(t, body, `"projectedTotal":"300.00"`)
	assert.Contains(t, body, `"projectedOverage":"0.00"`)
	assert.Contains(t, body, `"willExceedBudget":false`)
}

func TestAnalyticsHandler_GetSummaryRejectsBadPeriod(t *testing.T) {
	handler, _, _, _ := setupAnalyticsHandler()

	rec := analyticsRequest(t, handler.GetSummary, "/analytics/summary?period=decade")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyticsHandler_GetSummaryRejectsBadDates(t *testing.T) {
	handler, _, _, _ := setupAnalyticsHandler()

	rec := analyticsRequest(t, handler.GetSummary, "/analytics/summary?startDate=10-09-2025")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyticsHandler_GetMonthlyTrendsRejectsBadMonths(t *testing.T) {
	handler, _, _, _ := setupAnalyticsHandler()

	rec := analyticsRequest(t, handler.GetMonthlyTrends, "/analytics/trends/monthly?months=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = analyticsRequest(t, handler.GetMonthlyTrends, "/analytics/trends/monthly?months=-2")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyticsHandler_GetBudgetProjectionUsageErrors(t *testing.T) {
	handler, _, _, _ := setupAnalyticsHandler()

	rec := analyticsRequest(t, handler.GetBudgetProjection, "/analytics/projection?month=2025-09")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = analyticsRequest(t, handler.GetBudgetProjection, "/analytics/projection?categoryId=food")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Valid usage but no budget configured
	rec = analyticsRequest(t, handler.GetBudgetProjection, "/analytics/projection?categoryId=food&month=2025-09")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyticsHandler_GetCategoryBudgetAnalysisNotFound(t *testing.T) {
	handler, _, _, _ := setupAnalyticsHandler()

	rec := analyticsRequest(t, handler.GetCategoryBudgetAnalysis, "/analytics/budgets/category?categoryId=food")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyticsHandler_ComparePeriods(t *testing.T) {
	handler, expenseRepo, _, _ := setupAnalyticsHandler()
	expenseRepo.AddExpense(&domain.Expense{
		Amount:     decimalFromString(t, "100.00"),
		Date:       time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC),
		CategoryID: "food",
	})

	rec := analyticsRequest(t, handler.ComparePeriods,
		"/analytics/comparison?previousStart=2025-08-01&previousEnd=2025-08-31&currentStart=2025-09-01&currentEnd=2025-09-30")
	assert.Equal(t, http.StatusOK, rec.Code)

	var comparison PeriodComparisonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comparison))
	assert.Equal(t, "100.00", comparison.Current.Total)
	assert.Equal(t, "0.00", comparison.Previous.Total)
	assert.Equal(t, domain.ChangeIncrease, comparison.Change.Direction)
	assert.Equal(t, "2025-09-01", comparison.Current.StartDate)
}

func TestAnalyticsHandler_ComparePeriodsMissingRange(t *testing.T) {
	handler, _, _, _ := setupAnalyticsHandler()

	// No ranges at all reaches the service, which demands both
	rec := analyticsRequest(t, handler.ComparePeriods, "/analytics/comparison")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A half-specified range fails parameter validation
	rec = analyticsRequest(t, handler.ComparePeriods, "/analytics/comparison?previousStart=2025-08-01")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
