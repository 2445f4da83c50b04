package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/moneta-app/moneta-backend/internal/domain"
)

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository.
// List returns expenses in insertion order so tests see a stable ledger.
type MockExpenseRepository struct {
	Expenses map[string]*domain.Expense
	order    []string
	ListFn   func() ([]*domain.Expense, error)
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		Expenses: make(map[string]*domain.Expense),
	}
}

// Create creates a new expense
func (m *MockExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	expense.ID = uuid.NewString()
	expense.CreatedAt = time.Now()
	expense.UpdatedAt = expense.CreatedAt
	m.Expenses[expense.ID] = expense
	m.order = append(m.order, expense.ID)
	return expense, nil
}

// GetByID retrieves an expense by ID
func (m *MockExpenseRepository) GetByID(id string) (*domain.Expense, error) {
	if expense, ok := m.Expenses[id]; ok {
		return expense, nil
	}
	return nil, domain.ErrExpenseNotFound
}

// List retrieves all expenses in insertion order
func (m *MockExpenseRepository) List() ([]*domain.Expense, error) {
	if m.ListFn != nil {
		return m.ListFn()
	}
	expenses := make([]*domain.Expense, 0, len(m.order))
	for _, id := range m.order {
		if expense, ok := m.Expenses[id]; ok {
			expenses = append(expenses, expense)
		}
	}
	return expenses, nil
}

// Update updates an existing expense
func (m *MockExpenseRepository) Update(id string, data *domain.UpdateExpenseData) (*domain.Expense, error) {
	expense, ok := m.Expenses[id]
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}
	expense.Amount = data.Amount
	expense.Description = data.Description
	expense.Date = data.Date
	expense.CategoryID = data.CategoryID
	expense.UpdatedAt = time.Now()
	return expense, nil
}

// Delete removes an expense
func (m *MockExpenseRepository) Delete(id string) error {
	if _, ok := m.Expenses[id]; !ok {
		return domain.ErrExpenseNotFound
	}
	delete(m.Expenses, id)
	return nil
}

// SetReceiptPath records or clears the receipt object path
func (m *MockExpenseRepository) SetReceiptPath(id, receiptPath string) error {
	expense, ok := m.Expenses[id]
	if !ok {
		return domain.ErrExpenseNotFound
	}
	expense.ReceiptPath = receiptPath
	return nil
}

// ReassignCategory moves all expenses from one category to another
func (m *MockExpenseRepository) ReassignCategory(fromCategoryID, toCategoryID string) (int64, error) {
	var moved int64
	for _, id := range m.order {
		expense, ok := m.Expenses[id]
		if ok && expense.CategoryID == fromCategoryID {
			expense.CategoryID = toCategoryID
			moved++
		}
	}
	return moved, nil
}

// AddExpense adds an expense to the mock repository (helper for tests)
func (m *MockExpenseRepository) AddExpense(expense *domain.Expense) {
	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}
	m.Expenses[expense.ID] = expense
	m.order = append(m.order, expense.ID)
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[string]*domain.Category
	order      []string
	ListFn     func() ([]*domain.Category, error)
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[string]*domain.Category),
	}
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	category.ID = uuid.NewString()
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	m.Categories[category.ID] = category
	m.order = append(m.order, category.ID)
	return category, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id string) (*domain.Category, error) {
	if category, ok := m.Categories[id]; ok {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetByName retrieves a category by exact name
func (m *MockCategoryRepository) GetByName(name string) (*domain.Category, error) {
	for _, id := range m.order {
		if category, ok := m.Categories[id]; ok && category.Name == name {
			return category, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

// List retrieves all categories in insertion order
func (m *MockCategoryRepository) List() ([]*domain.Category, error) {
	if m.ListFn != nil {
		return m.ListFn()
	}
	categories := make([]*domain.Category, 0, len(m.order))
	for _, id := range m.order {
		if category, ok := m.Categories[id]; ok {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

// Update updates an existing category
func (m *MockCategoryRepository) Update(id string, name, color, icon string) (*domain.Category, error) {
	category, ok := m.Categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	category.Name = name
	category.Color = color
	category.Icon = icon
	category.UpdatedAt = time.Now()
	return category, nil
}

// Delete removes a category
func (m *MockCategoryRepository) Delete(id string) error {
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	m.Categories[category.ID] = category
	m.order = append(m.order, category.ID)
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets map[string]*domain.Budget
	order   []string
	ListFn  func() ([]*domain.Budget, error)
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[string]*domain.Budget),
	}
}

// Create creates a new budget
func (m *MockBudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	budget.ID = uuid.NewString()
	budget.CreatedAt = time.Now()
	budget.UpdatedAt = budget.CreatedAt
	m.Budgets[budget.ID] = budget
	m.order = append(m.order, budget.ID)
	return budget, nil
}

// GetByID retrieves a budget by ID
func (m *MockBudgetRepository) GetByID(id string) (*domain.Budget, error) {
	if budget, ok := m.Budgets[id]; ok {
		return budget, nil
	}
	return nil, domain.ErrBudgetNotFound
}

// List retrieves all budgets in insertion order
func (m *MockBudgetRepository) List() ([]*domain.Budget, error) {
	if m.ListFn != nil {
		return m.ListFn()
	}
	budgets := make([]*domain.Budget, 0, len(m.order))
	for _, id := range m.order {
		if budget, ok := m.Budgets[id]; ok {
			budgets = append(budgets, budget)
		}
	}
	return budgets, nil
}

// Update updates an existing budget
func (m *MockBudgetRepository) Update(id string, data *domain.UpdateBudgetData) (*domain.Budget, error) {
	budget, ok := m.Budgets[id]
	if !ok {
		return nil, domain.ErrBudgetNotFound
	}
	budget.Amount = data.Amount
	budget.Period = data.Period
	budget.StartDate = data.StartDate
	budget.EndDate = data.EndDate
	budget.IsActive = data.IsActive
	budget.UpdatedAt = time.Now()
	return budget, nil
}

// Delete removes a budget
func (m *MockBudgetRepository) Delete(id string) error {
	if _, ok := m.Budgets[id]; !ok {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}

// AddBudget adds a budget to the mock repository (helper for tests)
func (m *MockBudgetRepository) AddBudget(budget *domain.Budget) {
	if budget.ID == "" {
		budget.ID = uuid.NewString()
	}
	m.Budgets[budget.ID] = budget
	m.order = append(m.order, budget.ID)
}

// FixedClock is a Clock implementation pinned to a single instant
type FixedClock struct {
	Time time.Time
}

// Now returns the pinned instant
func (c FixedClock) Now() time.Time {
	return c.Time
}
