package storage

import (
	"context"
	"io"
	"time"
)

// ObjectStore defines the interface for blob storage operations. It backs
// receipt images and CSV export snapshots.
type ObjectStore interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}
