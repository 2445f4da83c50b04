package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// validationErrs are the domain sentinels that map to 400 responses.
var validationErrs = []error{
	domain.ErrInvalidAmount,
	domain.ErrAmountTooLarge,
	domain.ErrDescriptionRequired,
	domain.ErrDescriptionTooLong,
	domain.ErrDateInFuture,
	domain.ErrNameRequired,
	domain.ErrNameTooLong,
	domain.ErrInvalidColor,
	domain.ErrIconRequired,
	domain.ErrInvalidPeriod,
	domain.ErrInvalidDateRange,
	domain.ErrCategoryIDRequired,
	domain.ErrMonthRequired,
	domain.ErrInvalidMonth,
	domain.ErrPeriodsRequired,
	domain.ErrInvalidImageType,
	domain.ErrReceiptTooLarge,
}

var notFoundErrs = []error{
	domain.ErrNotFound,
	domain.ErrExpenseNotFound,
	domain.ErrCategoryNotFound,
	domain.ErrBudgetNotFound,
	domain.ErrReceiptNotFound,
}

// respondDomainError translates a service error into a ProblemDetails
// response. Unrecognized errors become 500s and are logged.
func respondDomainError(c echo.Context, err error) error {
	for _, sentinel := range validationErrs {
		if errors.Is(err, sentinel) {
			return NewValidationError(c, err.Error(), nil)
		}
	}
	for _, sentinel := range notFoundErrs {
		if errors.Is(err, sentinel) {
			return NewNotFoundError(c, err.Error())
		}
	}
	switch {
	case errors.Is(err, domain.ErrCategoryExists), errors.Is(err, domain.ErrDefaultCategory):
		return NewConflictError(c, err.Error())
	case errors.Is(err, domain.ErrStorageDisabled):
		return c.JSON(http.StatusServiceUnavailable, ProblemDetails{
			Type:     ErrorTypeInternal,
			Title:    "Service Unavailable",
			Status:   http.StatusServiceUnavailable,
			Detail:   err.Error(),
			Instance: c.Request().URL.Path,
		})
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Unhandled error")
	return NewInternalError(c, "An unexpected error occurred")
}
