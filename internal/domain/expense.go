package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CategoryID  string          `json:"categoryId"`
	ReceiptPath string          `json:"receiptPath,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// UpdateExpenseData carries the mutable fields of an expense update
type UpdateExpenseData struct {
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CategoryID  string
}

// Validation constants
const (
	MaxDescriptionLength = 200
)

// MaxExpenseAmount is the largest accepted expense amount (999999.99)
var MaxExpenseAmount = decimal.NewFromFloat(999999.99)

type ExpenseRepository interface {
	Create(expense *Expense) (*Expense, error)
	GetByID(id string) (*Expense, error)
	List() ([]*Expense, error)
	Update(id string, data *UpdateExpenseData) (*Expense, error)
	Delete(id string) error
	SetReceiptPath(id, receiptPath string) error
	ReassignCategory(fromCategoryID, toCategoryID string) (int64, error)
}
