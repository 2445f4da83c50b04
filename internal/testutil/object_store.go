package testutil

import (
	"context"
	"io"
	"time"
)

// StoredObject captures a single upload made against MockObjectStore.
type StoredObject struct {
	Data        []byte
	ContentType string
	Size        int64
}

// MockObjectStore is an in-memory implementation of storage.ObjectStore.
type MockObjectStore struct {
	Objects  map[string]StoredObject
	UploadFn func(objectPath string) error
}

// NewMockObjectStore creates a new MockObjectStore
func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{
		Objects: make(map[string]StoredObject),
	}
}

// Upload stores the object in memory
func (m *MockObjectStore) Upload(_ context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	if m.UploadFn != nil {
		if err := m.UploadFn(objectPath); err != nil {
			return "", err
		}
	}
	body, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.Objects[objectPath] = StoredObject{Data: body, ContentType: contentType, Size: size}
	return objectPath, nil
}

// Delete removes a stored object
func (m *MockObjectStore) Delete(_ context.Context, objectPath string) error {
	delete(m.Objects, objectPath)
	return nil
}

// GeneratePresignedURL returns a deterministic fake URL for the object
func (m *MockObjectStore) GeneratePresignedURL(_ context.Context, objectPath string, _ time.Duration) (string, error) {
	return "https://storage.test/" + objectPath, nil
}
