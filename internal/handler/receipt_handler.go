package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/moneta-app/moneta-backend/internal/service"
)

// ReceiptHandler handles receipt image HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// UploadReceipt handles POST /expenses/:id/receipt (multipart form, "file" field)
func (h *ReceiptHandler) UploadReceipt(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "A file upload is required", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return NewValidationError(c, "Unable to read uploaded file", nil)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxReceiptSize+1))
	if err != nil {
		return NewValidationError(c, "Unable to read uploaded file", nil)
	}

	urls, err := h.receiptService.UploadReceipt(c.Request().Context(), c.Param("id"), data, fileHeader.Filename)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, urls)
}

// GetReceipt handles GET /expenses/:id/receipt
func (h *ReceiptHandler) GetReceipt(c echo.Context) error {
	urls, err := h.receiptService.GetReceiptURLs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, urls)
}

// DeleteReceipt handles DELETE /expenses/:id/receipt
func (h *ReceiptHandler) DeleteReceipt(c echo.Context) error {
	if err := h.receiptService.DeleteReceipt(c.Request().Context(), c.Param("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
