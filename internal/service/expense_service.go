package service

import (
	"strings"
	"time"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/util"
	"github.com/shopspring/decimal"
)

// CacheInvalidator is notified after every ledger mutation so derived-result
// caches can be dropped.
type CacheInvalidator interface {
	InvalidateCache()
}

// ExpenseData carries the caller-supplied fields of an expense.
type ExpenseData struct {
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CategoryID  string
}

// ExpenseService handles expense CRUD and validation
type ExpenseService struct {
	expenseRepo  domain.ExpenseRepository
	categoryRepo domain.CategoryRepository
	clock        Clock
	cache        CacheInvalidator
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo domain.ExpenseRepository, categoryRepo domain.CategoryRepository, clock Clock, cache CacheInvalidator) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
		cache:        cache,
	}
}

// CreateExpense validates and records a new expense
func (s *ExpenseService) CreateExpense(data *ExpenseData) (*domain.Expense, error) {
	if err := s.validate(data); err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.Create(&domain.Expense{
		Amount:      data.Amount,
		Description: strings.TrimSpace(data.Description),
		Date:        util.DateOnly(data.Date),
		CategoryID:  data.CategoryID,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return expense, nil
}

// GetExpense retrieves a single expense by ID
func (s *ExpenseService) GetExpense(id string) (*domain.Expense, error) {
	return s.expenseRepo.GetByID(id)
}

// ListExpenses retrieves all expenses
func (s *ExpenseService) ListExpenses() ([]*domain.Expense, error) {
	return s.expenseRepo.List()
}

// UpdateExpense validates and applies an expense update
func (s *ExpenseService) UpdateExpense(id string, data *ExpenseData) (*domain.Expense, error) {
	if err := s.validate(data); err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.Update(id, &domain.UpdateExpenseData{
		Amount:      data.Amount,
		Description: strings.TrimSpace(data.Description),
		Date:        util.DateOnly(data.Date),
		CategoryID:  data.CategoryID,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return expense, nil
}

// DeleteExpense removes an expense
func (s *ExpenseService) DeleteExpense(id string) error {
	if err := s.expenseRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *ExpenseService) validate(data *ExpenseData) error {
	if !data.Amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if data.Amount.GreaterThan(domain.MaxExpenseAmount) {
		return domain.ErrAmountTooLarge
	}
	description := strings.TrimSpace(data.Description)
	if description == "" {
		return domain.ErrDescriptionRequired
	}
	if len(description) > domain.MaxDescriptionLength {
		return domain.ErrDescriptionTooLong
	}
	if util.DateOnly(data.Date).After(util.DateOnly(s.clock.Now())) {
		return domain.ErrDateInFuture
	}
	if _, err := s.categoryRepo.GetByID(data.CategoryID); err != nil {
		return err
	}
	return nil
}

func (s *ExpenseService) invalidate() {
	if s.cache != nil {
		s.cache.InvalidateCache()
	}
}
