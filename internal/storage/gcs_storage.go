package storage

import (
	"context"
	"fmt"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStorageService writes objects to a Google Cloud Storage bucket. Objects are
// expected to be publicly readable through bucket-level IAM.
type GCSStorageService struct {
	client  *gcs.Client
	bucket  string
	baseURL string
}

func NewGCSStorageService(ctx context.Context, bucket, publicBaseURL string, opts ...option.ClientOption) (*GCSStorageService, error) {
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	if publicBaseURL == "" {
		publicBaseURL = "https://storage.googleapis.com/" + bucket
	}
	return &GCSStorageService{client: client, bucket: bucket, baseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

func (g *GCSStorageService) Upload(ctx context.Context, key string, contentType string, data []byte) (string, error) {
	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write GCS object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize GCS object: %w", err)
	}
	return g.baseURL + "/" + key, nil
}

func (g *GCSStorageService) Close() error {
	return g.client.Close()
}
