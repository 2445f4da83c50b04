package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/moneta-app/moneta-backend/internal/service"
)

// ExportHandler handles CSV export HTTP requests
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportCSV handles GET /export/csv. When backup=true the snapshot is also
// pushed to object storage and the object path is returned in a header.
func (h *ExportHandler) ExportCSV(c echo.Context) error {
	opts, errs := parseAnalyticsOptions(c)
	if errs != nil {
		return NewValidationError(c, "Validation failed", errs)
	}

	var (
		data       []byte
		objectPath string
		err        error
	)
	if c.QueryParam("backup") == "true" {
		data, objectPath, err = h.exportService.ExportAndBackup(c.Request().Context(), opts)
	} else {
		data, err = h.exportService.ExportCSV(opts)
	}
	if err != nil {
		return respondDomainError(c, err)
	}

	if objectPath != "" {
		c.Response().Header().Set("X-Backup-Object", objectPath)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="expenses.csv"`)
	return c.Blob(http.StatusOK, "text/csv", data)
}
