package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Valid reports whether p is one of the recognized budget periods.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case BudgetPeriodWeekly, BudgetPeriodMonthly, BudgetPeriodYearly:
		return true
	}
	return false
}

type Budget struct {
	ID         string          `json:"id"`
	CategoryID string          `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Period     BudgetPeriod    `json:"period"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    time.Time       `json:"endDate"`
	Spent      decimal.Decimal `json:"spent"`
	IsActive   bool            `json:"isActive"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// UpdateBudgetData carries the mutable fields of a budget update
type UpdateBudgetData struct {
	Amount    decimal.Decimal
	Period    BudgetPeriod
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
}

type BudgetRepository interface {
	Create(budget *Budget) (*Budget, error)
	GetByID(id string) (*Budget, error)
	List() ([]*Budget, error)
	Update(id string, data *UpdateBudgetData) (*Budget, error)
	Delete(id string) error
}
