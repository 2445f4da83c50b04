package domain

import "errors"

// Domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrBudgetNotFound   = errors.New("budget not found")

	ErrCategoryExists      = errors.New("category name already exists")
	ErrDefaultCategory     = errors.New("default category cannot be deleted")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrAmountTooLarge      = errors.New("amount exceeds maximum")
	ErrDescriptionRequired = errors.New("description is required")
	ErrDescriptionTooLong  = errors.New("description exceeds maximum length")
	ErrDateInFuture        = errors.New("date cannot be in the future")
	ErrNameRequired        = errors.New("name is required")
	ErrNameTooLong         = errors.New("name exceeds maximum length")
	ErrInvalidColor        = errors.New("color must be a 6-digit hex value")
	ErrIconRequired        = errors.New("icon is required")
	ErrInvalidPeriod       = errors.New("invalid budget period")
	ErrInvalidDateRange    = errors.New("end date must be after start date")

	// Usage errors for the stricter analytics endpoints
	ErrCategoryIDRequired = errors.New("category id is required")
	ErrMonthRequired      = errors.New("month is required")
	ErrInvalidMonth       = errors.New("month must be formatted YYYY-MM")
	ErrPeriodsRequired    = errors.New("both comparison periods are required")

	ErrReceiptNotFound  = errors.New("receipt not found")
	ErrInvalidImageType = errors.New("unsupported image type")
	ErrReceiptTooLarge  = errors.New("receipt exceeds maximum size")
	ErrStorageDisabled  = errors.New("object storage is not configured")
)
