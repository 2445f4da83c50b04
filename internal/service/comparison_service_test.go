package service

import (
	"testing"
	"time"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthRange(year int, month time.Month) *DateRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return &DateRange{Start: start, End: start.AddDate(0, 1, -1)}
}

func TestComparison_IncreaseBetweenMonths(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	service := NewComparisonService(expenseRepo)
	addExpense(expenseRepo, 100, "food", time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC))
	addExpense(expenseRepo, 100, "food", time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC))
	addExpense(expenseRepo, 300, "food", time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC))

	comparison, err := service.ComparePeriods(monthRange(2025, time.August), monthRange(2025, time.September))
	require.NoError(t, err)

	assert.Equal(t, "200.00", comparison.Previous.Total.StringFixed(2))
	assert.Equal(t, 2, comparison.Previous.Count)
	assert.Equal(t, "100.00", comparison.Previous.Average.StringFixed(2))

	assert.Equal(t, "300.00", comparison.Current.Total.StringFixed(2))
	assert.Equal(t, 1, comparison.Current.Count)

	assert.Equal(t, "100.00", comparison.Change.Amount.StringFixed(2))
	assert.Equal(t, "50.00", comparison.Change.Percentage.StringFixed(2))
	assert.Equal(t, domain.ChangeIncrease, comparison.Change.Direction)
}

func TestComparison_Decrease(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	service := NewComparisonService(expenseRepo)
	addExpense(expenseRepo, 400, "food", time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC))
	addExpense(expenseRepo, 100, "food", time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC))

	comparison, err := service.ComparePeriods(monthRange(2025, time.August), monthRange(2025, time.September))
	require.NoError(t, err)
	assert.Equal(t, "-300.00", comparison.Change.Amount.StringFixed(2))
	assert.Equal(t, "-75.00", comparison.Change.Percentage.StringFixed(2))
	assert.Equal(t, domain.ChangeDecrease, comparison.Change.Direction)
}

func TestComparison_ZeroBasePercentage(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	service := NewComparisonService(expenseRepo)
	addExpense(expenseRepo, 100, "food", time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC))

	comparison, err := service.ComparePeriods(monthRange(2025, time.August), monthRange(2025, time.September))
	require.NoError(t, err)
	// No division against an empty base period
	assert.True(t, comparison.Change.Percentage.IsZero())
	assert.Equal(t, domain.ChangeIncrease, comparison.Change.Direction)
}

func TestComparison_NoChange(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	service := NewComparisonService(expenseRepo)

	comparison, err := service.ComparePeriods(monthRange(2025, time.August), monthRange(2025, time.September))
	require.NoError(t, err)
	assert.Equal(t, domain.ChangeNone, comparison.Change.Direction)
	assert.True(t, comparison.Previous.Average.IsZero())
	assert.True(t, comparison.Current.Average.IsZero())
}

func TestComparison_BothPeriodsRequired(t *testing.T) {
	service := NewComparisonService(testutil.NewMockExpenseRepository())

	_, err := service.ComparePeriods(nil, monthRange(2025, time.September))
	assert.ErrorIs(t, err, domain.ErrPeriodsRequired)

	_, err = service.ComparePeriods(monthRange(2025, time.August), nil)
	assert.ErrorIs(t, err, domain.ErrPeriodsRequired)
}

func TestComparison_RangeBoundsAreInclusive(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	service := NewComparisonService(expenseRepo)
	addExpense(expenseRepo, 10, "food", time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC))
	addExpense(expenseRepo, 20, "food", time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC))

	comparison, err := service.ComparePeriods(monthRange(2025, time.August), monthRange(2025, time.September))
	require.NoError(t, err)
	assert.Equal(t, "30.00", comparison.Current.Total.StringFixed(2))
}
