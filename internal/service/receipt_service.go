package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/repository/storage"
)

const (
	MaxReceiptSize        = 5 * 1024 * 1024 // 5MB
	ReceiptThumbnailWidth = 512
	receiptURLExpiry      = 15 * time.Minute
)

// receiptContentTypes maps accepted extensions to content types
var receiptContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ReceiptURLs contains presigned URLs for a stored receipt
type ReceiptURLs struct {
	OriginalURL  string `json:"originalUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// ReceiptService handles receipt image validation, thumbnailing and storage
type ReceiptService struct {
	expenseRepo domain.ExpenseRepository
	store       storage.ObjectStore
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(expenseRepo domain.ExpenseRepository, store storage.ObjectStore) *ReceiptService {
	return &ReceiptService{expenseRepo: expenseRepo, store: store}
}

// IsEnabled indicates whether receipt storage is configured
func (s *ReceiptService) IsEnabled() bool {
	return s != nil && s.store != nil
}

// UploadReceipt validates the image, stores the original and a thumbnail
// under receipts/<expenseID>, and records the object path on the expense.
func (s *ReceiptService) UploadReceipt(ctx context.Context, expenseID string, data []byte, filename string) (*ReceiptURLs, error) {
	if !s.IsEnabled() {
		return nil, domain.ErrStorageDisabled
	}

	expense, err := s.expenseRepo.GetByID(expenseID)
	if err != nil {
		return nil, err
	}

	if len(data) > MaxReceiptSize {
		return nil, domain.ErrReceiptTooLarge
	}
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := receiptContentTypes[ext]
	if !ok {
		return nil, domain.ErrInvalidImageType
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, domain.ErrInvalidImageType
	}

	originalPath := path.Join("receipts", expense.ID, "original"+ext)
	if _, err := s.store.Upload(ctx, originalPath, bytes.NewReader(data), contentType, int64(len(data))); err != nil {
		return nil, fmt.Errorf("upload receipt: %w", err)
	}

	// Thumbnail keeps aspect ratio, capped at 512px wide
	thumb := img
	if img.Bounds().Dx() > ReceiptThumbnailWidth {
		thumb = imaging.Resize(img, ReceiptThumbnailWidth, 0, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	thumbPath := path.Join("receipts", expense.ID, "thumb.jpg")
	if _, err := s.store.Upload(ctx, thumbPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len())); err != nil {
		return nil, fmt.Errorf("upload thumbnail: %w", err)
	}

	if err := s.expenseRepo.SetReceiptPath(expense.ID, originalPath); err != nil {
		return nil, err
	}

	return s.presign(ctx, originalPath, thumbPath)
}

// GetReceiptURLs returns presigned URLs for the expense's stored receipt
func (s *ReceiptService) GetReceiptURLs(ctx context.Context, expenseID string) (*ReceiptURLs, error) {
	if !s.IsEnabled() {
		return nil, domain.ErrStorageDisabled
	}

	expense, err := s.expenseRepo.GetByID(expenseID)
	if err != nil {
		return nil, err
	}
	if expense.ReceiptPath == "" {
		return nil, domain.ErrReceiptNotFound
	}

	return s.presign(ctx, expense.ReceiptPath, path.Join("receipts", expense.ID, "thumb.jpg"))
}

// DeleteReceipt removes the stored receipt objects and clears the path
func (s *ReceiptService) DeleteReceipt(ctx context.Context, expenseID string) error {
	if !s.IsEnabled() {
		return domain.ErrStorageDisabled
	}

	expense, err := s.expenseRepo.GetByID(expenseID)
	if err != nil {
		return err
	}
	if expense.ReceiptPath == "" {
		return domain.ErrReceiptNotFound
	}

	if err := s.store.Delete(ctx, expense.ReceiptPath); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, path.Join("receipts", expense.ID, "thumb.jpg")); err != nil {
		return err
	}
	return s.expenseRepo.SetReceiptPath(expense.ID, "")
}

func (s *ReceiptService) presign(ctx context.Context, originalPath, thumbPath string) (*ReceiptURLs, error) {
	originalURL, err := s.store.GeneratePresignedURL(ctx, originalPath, receiptURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign receipt: %w", err)
	}
	thumbURL, err := s.store.GeneratePresignedURL(ctx, thumbPath, receiptURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign thumbnail: %w", err)
	}
	return &ReceiptURLs{OriginalURL: originalURL, ThumbnailURL: thumbURL}, nil
}
