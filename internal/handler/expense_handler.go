package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/moneta-app/moneta-backend/internal/service"
	"github.com/moneta-app/moneta-backend/internal/util"
	"github.com/shopspring/decimal"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents the create/update expense request body
type ExpenseRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
	CategoryID  string `json:"categoryId"`
}

func (r *ExpenseRequest) toData() (*service.ExpenseData, []ValidationError) {
	var errs []ValidationError

	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		errs = append(errs, ValidationError{Field: "amount", Message: "Amount must be a decimal number"})
	}
	date, err := util.ParseDate(r.Date)
	if err != nil {
		errs = append(errs, ValidationError{Field: "date", Message: "Date must be formatted YYYY-MM-DD"})
	}
	if r.CategoryID == "" {
		errs = append(errs, ValidationError{Field: "categoryId", Message: "Category ID is required"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return &service.ExpenseData{
		Amount:      amount,
		Description: r.Description,
		Date:        date,
		CategoryID:  r.CategoryID,
	}, nil
}

// CreateExpense handles POST /expenses
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	data, errs := req.toData()
	if errs != nil {
		return NewValidationError(c, "Validation failed", errs)
	}

	expense, err := h.expenseService.CreateExpense(data)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// GetExpense handles GET /expenses/:id
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	expense, err := h.expenseService.GetExpense(c.Param("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// ListExpenses handles GET /expenses
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	expenses, err := h.expenseService.ListExpenses()
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toExpenseResponses(expenses))
}

// UpdateExpense handles PUT /expenses/:id
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	data, errs := req.toData()
	if errs != nil {
		return NewValidationError(c, "Validation failed", errs)
	}

	expense, err := h.expenseService.UpdateExpense(c.Param("id"), data)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// DeleteExpense handles DELETE /expenses/:id
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	if err := h.expenseService.DeleteExpense(c.Param("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
