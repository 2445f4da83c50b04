package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/service"
	"github.com/moneta-app/moneta-backend/internal/util"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// BudgetRequest represents the create/update budget request body
type BudgetRequest struct {
	CategoryID string `json:"categoryId"`
	Amount     string `json:"amount"`
	Period     string `json:"period"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	IsActive   *bool  `json:"isActive,omitempty"`
}

func (r *BudgetRequest) toData() (*service.BudgetData, []ValidationError) {
	var errs []ValidationError

	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		errs = append(errs, ValidationError{Field: "amount", Message: "Amount must be a decimal number"})
	}
	startDate, err := util.ParseDate(r.StartDate)
	if err != nil {
		errs = append(errs, ValidationError{Field: "startDate", Message: "Start date must be formatted YYYY-MM-DD"})
	}
	endDate, err := util.ParseDate(r.EndDate)
	if err != nil {
		errs = append(errs, ValidationError{Field: "endDate", Message: "End date must be formatted YYYY-MM-DD"})
	}
	if r.CategoryID == "" {
		errs = append(errs, ValidationError{Field: "categoryId", Message: "Category ID is required"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return &service.BudgetData{
		CategoryID: r.CategoryID,
		Amount:     amount,
		Period:     domain.BudgetPeriod(r.Period),
		StartDate:  startDate,
		EndDate:    endDate,
		IsActive:   isActive,
	}, nil
}

// CreateBudget handles POST /budgets
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	data, errs := req.toData()
	if errs != nil {
		return NewValidationError(c, "Validation failed", errs)
	}

	budget, err := h.budgetService.CreateBudget(data)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toBudgetResponse(budget))
}

// GetBudget handles GET /budgets/:id
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	budget, err := h.budgetService.GetBudget(c.Param("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// ListBudgets handles GET /budgets
func (h *BudgetHandler) ListBudgets(c echo.Context) error {
	budgets, err := h.budgetService.ListBudgets()
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toBudgetResponses(budgets))
}

// UpdateBudget handles PUT /budgets/:id
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	data, errs := req.toData()
	if errs != nil {
		return NewValidationError(c, "Validation failed", errs)
	}

	budget, err := h.budgetService.UpdateBudget(c.Param("id"), data)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// DeleteBudget handles DELETE /budgets/:id
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	if err := h.budgetService.DeleteBudget(c.Param("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
