// internal/infrastructure/storage/local.go
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/baankanom/bakery-backend/internal/config"
)

// LocalStore implements ObjectStore on the local filesystem. Buckets are
// directories under the configured root; public URLs are served from the
// configured base URL by the HTTP server's static file route.
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore creates a local-disk object store
func NewLocalStore(cfg *config.Config) *LocalStore {
	return &LocalStore{
		root:    cfg.Storage.LocalPath,
		baseURL: strings.TrimRight(cfg.Storage.PublicBaseURL, "/"),
	}
}

// Root returns the filesystem root the store writes under
func (s *LocalStore) Root() string {
	return s.root
}

// Put stores content under bucket/path and returns the stored path
func (s *LocalStore) Put(ctx context.Context, bucket, path string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cleaned, err := s.cleanPath(bucket, path)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(s.root, bucket, cleaned)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create object: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, content); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	return cleaned, nil
}

// PublicURL returns the URL a stored object is served from
func (s *LocalStore) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, bucket, path)
}

// Delete removes a stored object; a missing object is not an error
func (s *LocalStore) Delete(ctx context.Context, bucket, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cleaned, err := s.cleanPath(bucket, path)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.root, bucket, cleaned)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// cleanPath rejects paths that would escape the bucket directory
func (s *LocalStore) cleanPath(bucket, path string) (string, error) {
	if bucket == "" || strings.ContainsAny(bucket, "/\\") {
		return "", fmt.Errorf("invalid bucket name %q", bucket)
	}

	cleaned := filepath.ToSlash(filepath.Clean("/" + path))[1:]
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("invalid object path %q", path)
	}
	return cleaned, nil
}
