package service

import (
	"time"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/util"
	"github.com/shopspring/decimal"
)

// BudgetData carries the caller-supplied fields of a budget.
type BudgetData struct {
	CategoryID string
	Amount     decimal.Decimal
	Period     domain.BudgetPeriod
	StartDate  time.Time
	EndDate    time.Time
	IsActive   bool
}

// BudgetService handles budget CRUD and validation
type BudgetService struct {
	budgetRepo   domain.BudgetRepository
	categoryRepo domain.CategoryRepository
	cache        CacheInvalidator
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, categoryRepo domain.CategoryRepository, cache CacheInvalidator) *BudgetService {
	return &BudgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// CreateBudget validates and records a new budget
func (s *BudgetService) CreateBudget(data *BudgetData) (*domain.Budget, error) {
	if err := s.validate(data); err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.Create(&domain.Budget{
		CategoryID: data.CategoryID,
		Amount:     data.Amount,
		Period:     data.Period,
		StartDate:  util.DateOnly(data.StartDate),
		EndDate:    util.DateOnly(data.EndDate),
		Spent:      decimal.Zero,
		IsActive:   data.IsActive,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return budget, nil
}

// GetBudget retrieves a single budget by ID
func (s *BudgetService) GetBudget(id string) (*domain.Budget, error) {
	return s.budgetRepo.GetByID(id)
}

// ListBudgets retrieves all budgets
func (s *BudgetService) ListBudgets() ([]*domain.Budget, error) {
	return s.budgetRepo.List()
}

// UpdateBudget validates and applies a budget update
func (s *BudgetService) UpdateBudget(id string, data *BudgetData) (*domain.Budget, error) {
	if err := s.validate(data); err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.Update(id, &domain.UpdateBudgetData{
		Amount:    data.Amount,
		Period:    data.Period,
		StartDate: util.DateOnly(data.StartDate),
		EndDate:   util.DateOnly(data.EndDate),
		IsActive:  data.IsActive,
	})
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return budget, nil
}

// DeleteBudget removes a budget
func (s *BudgetService) DeleteBudget(id string) error {
	if err := s.budgetRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *BudgetService) validate(data *BudgetData) error {
	if !data.Amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if !data.Period.Valid() {
		return domain.ErrInvalidPeriod
	}
	if !util.DateOnly(data.EndDate).After(util.DateOnly(data.StartDate)) {
		return domain.ErrInvalidDateRange
	}
	if _, err := s.categoryRepo.GetByID(data.CategoryID); err != nil {
		return err
	}
	return nil
}

func (s *BudgetService) invalidate() {
	if s.cache != nil {
		s.cache.InvalidateCache()
	}
}
