package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/moneta-app/moneta-backend/internal/service"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents the create/update category request body
type CategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// CreateCategory handles POST /categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.CreateCategory(req.Name, req.Color, req.Icon)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

// GetCategory handles GET /categories/:id
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	category, err := h.categoryService.GetCategory(c.Param("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// ListCategories handles GET /categories
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// UpdateCategory handles PUT /categories/:id
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.UpdateCategory(c.Param("id"), req.Name, req.Color, req.Icon)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	if err := h.categoryService.DeleteCategory(c.Param("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
