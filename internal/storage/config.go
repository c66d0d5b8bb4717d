package storage

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
)

// Config holds storage configuration
type Config struct {
	Type          string        // "mock", "s3" or "gcs"
	MockDir       string        // Directory for mock storage
	BaseURL       string        // Server base URL for generating mock URLs
	UploadTimeout time.Duration // per-upload deadline
	S3            S3Options
	GCSBucket     string
	GCSPublicURL  string
}

type timeoutStorage struct {
	next    StorageInterface
	timeout time.Duration
}

// WithTimeout bounds every upload of next by d.
func WithTimeout(next StorageInterface, d time.Duration) StorageInterface {
	if d <= 0 {
		return next
	}
	return &timeoutStorage{next: next, timeout: d}
}

func (t *timeoutStorage) Upload(ctx context.Context, key string, contentType string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	url, err := t.next.Upload(ctx, key, contentType, data)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return url, nil
}

// Backend is a configured object store. Files is set only for the local mock backend,
// whose uploads are served back by the HTTP API.
type Backend struct {
	StorageInterface
	Files FileReader
	close func() error
}

func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// New builds the backend selected by cfg.Type. gcsOpts carry credentials for GCS.
func New(ctx context.Context, cfg Config, gcsOpts ...option.ClientOption) (*Backend, error) {
	switch cfg.Type {
	case "", "mock":
		mock, err := NewMockStorageService(cfg.BaseURL, cfg.MockDir)
		if err != nil {
			return nil, err
		}
		return &Backend{StorageInterface: WithTimeout(mock, cfg.UploadTimeout), Files: mock}, nil
	case "s3":
		s3svc, err := NewS3StorageService(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return &Backend{StorageInterface: WithTimeout(s3svc, cfg.UploadTimeout)}, nil
	case "gcs":
		gcsSvc, err := NewGCSStorageService(ctx, cfg.GCSBucket, cfg.GCSPublicURL, gcsOpts...)
		if err != nil {
			return nil, err
		}
		return &Backend{StorageInterface: WithTimeout(gcsSvc, cfg.UploadTimeout), close: gcsSvc.Close}, nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
