package storage

import (
	"context"
	"io"
)

type StorageService interface {
	// Upload stores the object and returns its public URL.
	Upload(ctx context.Context, key string, src io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
