package service

import (
	"strings"
	"testing"
	"time"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCategoryService() (*CategoryService, *testutil.MockCategoryRepository, *testutil.MockExpenseRepository) {
	categoryRepo := testutil.NewMockCategoryRepository()
	expenseRepo := testutil.NewMockExpenseRepository()
	service := NewCategoryService(categoryRepo, expenseRepo, nil)
	return service, categoryRepo, expenseRepo
}

func TestCategoryService_Create(t *testing.T) {
	service, _, _ := setupCategoryService()

	category, err := service.CreateCategory("Groceries", "#4CAF50", "cart")
	require.NoError(t, err)
	assert.NotEmpty(t, category.ID)
	assert.Equal(t, "Groceries", category.Name)
	assert.False(t, category.IsDefault)
}

func TestCategoryService_Validation(t *testing.T) {
	tests := []struct {
		name    string
		catName string
		color   string
		icon    string
		wantErr error
	}{
		{"blank name", "   ", "#4CAF50", "cart", domain.ErrNameRequired},
		{"name too long", strings.Repeat("x", domain.MaxCategoryNameLength+1), "#4CAF50", "cart", domain.ErrNameTooLong},
		{"missing hash", "Groceries", "4CAF50", "cart", domain.ErrInvalidColor},
		{"short hex", "Groceries", "#4CA", "cart", domain.ErrInvalidColor},
		{"bad hex digits", "Groceries", "#GGGGGG", "cart", domain.ErrInvalidColor},
		{"blank icon", "Groceries", "#4CAF50", "  ", domain.ErrIconRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := setupCategoryService()
			_, err := service.CreateCategory(tt.catName, tt.color, tt.icon)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCategoryService_DuplicateNameCaseInsensitive(t *testing.T) {
	service, _, _ := setupCategoryService()

	_, err := service.CreateCategory("Groceries", "#4CAF50", "cart")
	require.NoError(t, err)

	_, err = service.CreateCategory("groceries", "#336699", "basket")
	assert.ErrorIs(t, err, domain.ErrCategoryExists)
}

func TestCategoryService_UpdateKeepsOwnName(t *testing.T) {
	service, _, _ := setupCategoryService()

	category, err := service.CreateCategory("Groceries", "#4CAF50", "cart")
	require.NoError(t, err)

	// Renaming to its own name must not trip the uniqueness check
	updated, err := service.UpdateCategory(category.ID, "Groceries", "#336699", "basket")
	require.NoError(t, err)
	assert.Equal(t, "#336699", updated.Color)
}

func TestCategoryService_UpdateToExistingName(t *testing.T) {
	service, _, _ := setupCategoryService()

	_, err := service.CreateCategory("Groceries", "#4CAF50", "cart")
	require.NoError(t, err)
	category, err := service.CreateCategory("Transport", "#2196F3", "bus")
	require.NoError(t, err)

	_, err = service.UpdateCategory(category.ID, "GROCERIES", "#2196F3", "bus")
	assert.ErrorIs(t, err, domain.ErrCategoryExists)
}

func TestCategoryService_DeleteReassignsExpenses(t *testing.T) {
	service, categoryRepo, expenseRepo := setupCategoryService()

	category, err := service.CreateCategory("Groceries", "#4CAF50", "cart")
	require.NoError(t, err)
	addExpense(expenseRepo, 10, category.ID, time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC))
	addExpense(expenseRepo, 20, category.ID, time.Date(2025, time.September, 11, 0, 0, 0, 0, time.UTC))

	require.NoError(t, service.DeleteCategory(category.ID))

	_, err = categoryRepo.GetByID(category.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	other, err := categoryRepo.GetByName(domain.OtherCategoryName)
	require.NoError(t, err)
	assert.True(t, other.IsDefault)

	expenses, err := expenseRepo.List()
	require.NoError(t, err)
	for _, exp := range expenses {
		assert.Equal(t, other.ID, exp.CategoryID)
	}
}

func TestCategoryService_DeleteReusesExistingOther(t *testing.T) {
	service, categoryRepo, _ := setupCategoryService()
	categoryRepo.AddCategory(&domain.Category{
		ID:        "other",
		Name:      domain.OtherCategoryName,
		Color:     domain.OtherCategoryColor,
		Icon:      domain.OtherCategoryIcon,
		IsDefault: true,
	})

	category, err := service.CreateCategory("Groceries", "#4CAF50", "cart")
	require.NoError(t, err)
	require.NoError(t, service.DeleteCategory(category.ID))

	categories, err := categoryRepo.List()
	require.NoError(t, err)
	assert.Len(t, categories, 1)
	assert.Equal(t, "other", categories[0].ID)
}

func TestCategoryService_DeleteDefaultRefused(t *testing.T) {
	service, categoryRepo, _ := setupCategoryService()
	categoryRepo.AddCategory(&domain.Category{
		ID:        "other",
		Name:      domain.OtherCategoryName,
		Color:     domain.OtherCategoryColor,
		Icon:      domain.OtherCategoryIcon,
		IsDefault: true,
	})

	err := service.DeleteCategory("other")
	assert.ErrorIs(t, err, domain.ErrDefaultCategory)
}

func TestCategoryService_DeleteUnknownID(t *testing.T) {
	service, _, _ := setupCategoryService()
	err := service.DeleteCategory("missing")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}
