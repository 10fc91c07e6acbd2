package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *LocalImageStore {
	t.Helper()
	store, err := NewLocalImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestSaveGeneratesPublicPath(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Save(context.Background(), []byte("jpegdata"), "photo.JPG", "shawls-abc123")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !regexp.MustCompile(`^/uploads/shawls-abc123_[0-9a-f]{8}\.JPG$`).MatchString(path) {
		t.Fatalf("unexpected public path: %q", path)
	}

	onDisk := filepath.Join(store.Dir(), strings.TrimPrefix(path, "/uploads/"))
	content, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(content) != "jpegdata" {
		t.Fatalf("unexpected content: %q", content)
	}
}

func TestSaveAvoidsCollisions(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save(context.Background(), []byte("a"), "photo.jpg", "shawls-abc123")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := store.Save(context.Background(), []byte("b"), "photo.jpg", "shawls-abc123")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct filenames, both were %q", first)
	}
}

func TestRemoveIsAdvisory(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Save(context.Background(), []byte("x"), "photo.jpg", "shawls-abc123")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Remove(context.Background(), path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	// Absent files are not an error; removal is cleanup, not correctness.
	if err := store.Remove(context.Background(), path); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if err := store.Remove(context.Background(), "/uploads/never-existed.jpg"); err != nil {
		t.Fatalf("remove of missing file: %v", err)
	}
}

func TestRemoveConfinedToUploadDir(t *testing.T) {
	store := newTestStore(t)

	outside := filepath.Join(filepath.Dir(store.Dir()), "victim.txt")
	if err := os.WriteFile(outside, []byte("keep"), 0o644); err != nil {
		t.Fatalf("write victim: %v", err)
	}
	if err := store.Remove(context.Background(), "../victim.txt"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatal("file outside the upload dir must not be touched")
	}
}

func TestOpenStreamsStoredImage(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Save(context.Background(), []byte("jpegdata"), "photo.jpg", "shawls-abc123")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	rc, err := store.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	content, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(content) != "jpegdata" {
		t.Fatalf("unexpected content: %q", content)
	}

	if _, err := store.Open(context.Background(), "/uploads/missing.jpg"); !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
}

func TestNewImageFilenameKeepsExtension(t *testing.T) {
	name := newImageFilename("product photo.png", "handbags-0f0f0f")
	if !regexp.MustCompile(`^handbags-0f0f0f_[0-9a-f]{8}\.png$`).MatchString(name) {
		t.Fatalf("unexpected filename: %q", name)
	}
}
