package storage

import (
	"context"
	"io"
)

// StorageInterface defines the object storage backend for uploaded images and documents.
// Supports mock (local filesystem), S3 and S3-compatible services, and Google Cloud Storage.
type StorageInterface interface {
	// Upload stores data under key and returns a publicly readable URL.
	// key: storage path/key for the file
	// contentType: MIME type (e.g., "image/jpeg")
	Upload(ctx context.Context, key string, contentType string, data []byte) (string, error)
}

// FileReader is implemented by backends whose files are served by this process.
type FileReader interface {
	// ReadFile opens a file for reading (used by the mock storage HTTP handler)
	ReadFile(key string) (io.ReadCloser, string, error)
}
