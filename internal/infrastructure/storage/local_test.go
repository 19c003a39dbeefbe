package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/baankanom/bakery-backend/internal/config"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	cfg := &config.Config{}
	cfg.Storage.LocalPath = t.TempDir()
	cfg.Storage.PublicBaseURL = "/files"
	return NewLocalStore(cfg)
}

func TestPutAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	stored, err := store.Put(ctx, "slips", "abc.jpg", strings.NewReader("slip-bytes"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if stored != "abc.jpg" {
		t.Errorf("expected stored path abc.jpg, got %q", stored)
	}

	onDisk := filepath.Join(store.Root(), "slips", "abc.jpg")
	data, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "slip-bytes" {
		t.Errorf("unexpected content %q", data)
	}

	if err := store.Delete(ctx, "slips", stored); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(onDisk); !os.IsNotExist(err) {
		t.Error("object still on disk after delete")
	}

	// Deleting again is not an error
	if err := store.Delete(ctx, "slips", stored); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestPutRejectsEscapingPaths(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	stored, err := store.Put(ctx, "slips", "../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		return // outright rejection is fine too
	}
	if strings.Contains(stored, "..") {
		t.Fatalf("stored path escaped the bucket: %q", stored)
	}
	onDisk := filepath.Join(store.Root(), "slips", stored)
	if !strings.HasPrefix(onDisk, store.Root()) {
		t.Fatalf("object written outside the root: %q", onDisk)
	}
}

func TestPublicURLRoundTrip(t *testing.T) {
	store := newTestStore(t)

	url := store.PublicURL("product-images", "cakes/a.png")
	if url != "/files/product-images/cakes/a.png" {
		t.Errorf("unexpected url %q", url)
	}

	if got := PathFromURL(url, "product-images"); got != "cakes/a.png" {
		t.Errorf("PathFromURL = %q, want cakes/a.png", got)
	}
	if got := PathFromURL("http://x/other/a.png", "product-images"); got != "" {
		t.Errorf("expected empty path for foreign url, got %q", got)
	}
}

func TestObjectNameKeepsExtension(t *testing.T) {
	name := ObjectName("ขนมเค้ก.JPG")
	if !strings.HasSuffix(name, ".jpg") {
		t.Errorf("expected .jpg suffix, got %q", name)
	}
	if strings.Contains(name, "ขนม") {
		t.Errorf("original filename leaked into object name: %q", name)
	}
}
