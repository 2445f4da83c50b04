package service

import (
	"strings"
	"testing"
	"time"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) InvalidateCache() {
	c.calls++
}

func setupExpenseService(now time.Time) (*ExpenseService, *testutil.MockExpenseRepository, *testutil.MockCategoryRepository, *countingInvalidator) {
	expenseRepo := testutil.NewMockExpenseRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	cache := &countingInvalidator{}
	service := NewExpenseService(expenseRepo, categoryRepo, testutil.FixedClock{Time: now}, cache)
	return service, expenseRepo, categoryRepo, cache
}

func validExpenseData() *ExpenseData {
	return &ExpenseData{
		Amount:      decimal.NewFromFloat(12.50),
		Description: "lunch",
		Date:        time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC),
		CategoryID:  "food",
	}
}

func TestExpenseService_Create(t *testing.T) {
	now := time.Date(2025, time.September, 21, 12, 0, 0, 0, time.UTC)
	service, _, categoryRepo, cache := setupExpenseService(now)
	addCategory(categoryRepo, "food", "Food")

	expense, err := service.CreateExpense(validExpenseData())
	require.NoError(t, err)
	assert.NotEmpty(t, expense.ID)
	assert.Equal(t, "12.50", expense.Amount.StringFixed(2))
	assert.Equal(t, "lunch", expense.Description)
	assert.Equal(t, 1, cache.calls)
}

func TestExpenseService_CreateTrimsDescription(t *testing.T) {
	now := time.Date(2025, time.September, 21, 12, 0, 0, 0, time.UTC)
	service, _, categoryRepo, _ := setupExpenseService(now)
	addCategory(categoryRepo, "food", "Food")

	data := validExpenseData()
	data.Description = "  lunch  "
	expense, err := service.CreateExpense(data)
	require.NoError(t, err)
	assert.Equal(t, "lunch", expense.Description)
}

func TestExpenseService_CreateAllowsToday(t *testing.T) {
	// Clock sits mid-day; an expense dated later the same day must pass
	now := time.Date(2025, time.September, 21, 12, 0, 0, 0, time.UTC)
	service, _, categoryRepo, _ := setupExpenseService(now)
	addCategory(categoryRepo, "food", "Food")

	data := validExpenseData()
	data.Date = time.Date(2025, time.September, 21, 23, 0, 0, 0, time.UTC)
	_, err := service.CreateExpense(data)
	assert.NoError(t, err)
}

func TestExpenseService_Validation(t *testing.T) {
	now := time.Date(2025, time.September, 21, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(*ExpenseData)
		wantErr error
	}{
		{
			name:    "zero amount",
			mutate:  func(d *ExpenseData) { d.Amount = decimal.Zero },
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			mutate:  func(d *ExpenseData) { d.Amount = decimal.NewFromInt(-5) },
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "amount above cap",
			mutate:  func(d *ExpenseData) { d.Amount = decimal.NewFromInt(1000000) },
			wantErr: domain.ErrAmountTooLarge,
		},
		{
			name:    "blank description",
			mutate:  func(d *ExpenseData) { d.Description = "   " },
			wantErr: domain.ErrDescriptionRequired,
		},
		{
			name:    "description too long",
			mutate:  func(d *ExpenseData) { d.Description = strings.Repeat("x", domain.MaxDescriptionLength+1) },
			wantErr: domain.ErrDescriptionTooLong,
		},
		{
			name:    "future date",
			mutate:  func(d *ExpenseData) { d.Date = time.Date(2025, time.September, 22, 0, 0, 0, 0, time.UTC) },
			wantErr: domain.ErrDateInFuture,
		},
		{
			name:    "missing category",
			mutate:  func(d *ExpenseData) { d.CategoryID = "nope" },
			wantErr: domain.ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, categoryRepo, cache := setupExpenseService(now)
			addCategory(categoryRepo, "food", "Food")

			data := validExpenseData()
			tt.mutate(data)
			_, err := service.CreateExpense(data)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, cache.calls)
		})
	}
}

func TestExpenseService_Update(t *testing.T) {
	now := time.Date(2025, time.September, 21, 12, 0, 0, 0, time.UTC)
	service, _, categoryRepo, cache := setupExpenseService(now)
	addCategory(categoryRepo, "food", "Food")

	expense, err := service.CreateExpense(validExpenseData())
	require.NoError(t, err)

	data := validExpenseData()
	data.Amount = decimal.NewFromInt(20)
	updated, err := service.UpdateExpense(expense.ID, data)
	require.NoError(t, err)
	assert.Equal(t, "20.00", updated.Amount.StringFixed(2))
	assert.Equal(t, 2, cache.calls)
}

func TestExpenseService_UpdateUnknownID(t *testing.T) {
	now := time.Date(2025, time.September, 21, 12, 0, 0, 0, time.UTC)
	service, _, categoryRepo, _ := setupExpenseService(now)
	addCategory(categoryRepo, "food", "Food")

	_, err := service.UpdateExpense("missing", validExpenseData())
	assert.ErrorIs(t, err, domain.ErrExpenseNotFound)
}

func TestExpenseService_Delete(t *testing.T) {
	now := time.Date(2025, time.September, 21, 12, 0, 0, 0, time.UTC)
	service, _, categoryRepo, cache := setupExpenseService(now)
	addCategory(categoryRepo, "food", "Food")

	expense, err := service.CreateExpense(validExpenseData())
	require.NoError(t, err)

	require.NoError(t, service.DeleteExpense(expense.ID))
	assert.Equal(t, 2, cache.calls)

	_, err = service.GetExpense(expense.ID)
	assert.ErrorIs(t, err, domain.ErrExpenseNotFound)
}

func TestExpenseService_DeleteUnknownID(t *testing.T) {
	now := time.Date(2025, time.September, 21, 12, 0, 0, 0, time.UTC)
	service, _, _, cache := setupExpenseService(now)

	err := service.DeleteExpense("missing")
	assert.ErrorIs(t, err, domain.ErrExpenseNotFound)
	assert.Zero(t, cache.calls)
}
