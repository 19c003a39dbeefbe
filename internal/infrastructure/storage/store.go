// internal/infrastructure/storage/store.go
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ObjectStore is the object storage contract the application depends on:
// binary content goes in under a bucket and path, a stored path comes back,
// a public URL can be derived from it, and objects can be deleted by path.
type ObjectStore interface {
	// Put stores content under bucket/path and returns the stored path.
	Put(ctx context.Context, bucket, path string, content io.Reader) (string, error)

	// PublicURL returns the URL a browser can fetch a stored object from.
	PublicURL(bucket, path string) string

	// Delete removes a stored object. Deleting a missing object is not an error.
	Delete(ctx context.Context, bucket, path string) error
}

// ObjectName generates a collision-free object name that keeps the original
// file extension. Uploaded filenames are never trusted as-is (they may contain
// path separators or non-ASCII characters).
func ObjectName(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("%s%s", uuid.New().String(), ext)
}

// PathFromURL recovers the bucket-relative object path from a public URL
// produced by PublicURL. Returns an empty string if the URL does not carry
// the bucket segment.
func PathFromURL(url, bucket string) string {
	marker := "/" + bucket + "/"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return ""
	}
	return url[idx+len(marker):]
}
