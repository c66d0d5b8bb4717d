package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// MockStorageService implements object storage using the local filesystem.
// This is for demo/testing without S3 or GCS; files are served back by the HTTP API.
type MockStorageService struct {
	baseURL    string // Server URL (e.g., "http://localhost:8000")
	uploadsDir string // Local directory for uploads (e.g., "./uploads")
}

// NewMockStorageService creates a new mock storage service
func NewMockStorageService(baseURL, uploadsDir string) (*MockStorageService, error) {
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	return &MockStorageService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		uploadsDir: uploadsDir,
	}, nil
}

// Upload writes the file below the uploads directory and returns a download URL
// pointing to this server.
func (m *MockStorageService) Upload(ctx context.Context, key string, contentType string, data []byte) (string, error) {
	fullPath, err := m.localPath(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directories: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("%s/files/%s", m.baseURL, (&url.URL{Path: key}).EscapedPath()), nil
}

// ReadFile opens a stored file and reports its content type.
func (m *MockStorageService) ReadFile(key string) (io.ReadCloser, string, error) {
	fullPath, err := m.localPath(key)
	if err != nil {
		return nil, "", err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return file, contentType, nil
}

// localPath resolves key inside the uploads directory and rejects traversal.
func (m *MockStorageService) localPath(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(m.uploadsDir, clean), nil
}
