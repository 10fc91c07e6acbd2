package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/kashmiricraft/treasures-api/internal/observability"
)

const publicPrefix = "/uploads/"

var (
	ErrImageNotFound = errors.New("image not found")
	ErrSaveFailed    = errors.New("failed to save image")
)

// ImageStore persists uploaded product images and serves them back out.
// Save returns a public URL suffix ("/uploads/{filename}"), not a
// filesystem path. Remove is advisory: callers treat its error as a log
// line, never as an operation failure.
type ImageStore interface {
	Save(ctx context.Context, content []byte, originalFilename, productID string) (string, error)
	Remove(ctx context.Context, relativePath string) error
	Open(ctx context.Context, relativePath string) (io.ReadCloser, error)
}

// newImageFilename builds a collision-resistant name:
// {productId}_{8 hex}{original extension}. Uniqueness is probabilistic,
// which is acceptable for this domain.
func newImageFilename(originalFilename, productID string) string {
	ext := filepath.Ext(originalFilename)
	return fmt.Sprintf("%s_%s%s", productID, randomHex(8), ext)
}

func randomHex(n int) string {
	h := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(h) {
		n = len(h)
	}
	return h[:n]
}

// basenameOf strips the public prefix and any path components, leaving only
// the stored filename. Keeps deletes and reads confined to the store.
func basenameOf(relativePath string) string {
	return filepath.Base(strings.TrimPrefix(relativePath, publicPrefix))
}

// LocalImageStore writes images into a single upload directory on disk.
type LocalImageStore struct {
	dir string
}

// NewLocalImageStore resolves dir to an absolute path and creates it if
// absent.
func NewLocalImageStore(dir string) (*LocalImageStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalImageStore{dir: abs}, nil
}

// Dir returns the absolute upload directory, used for static serving.
func (s *LocalImageStore) Dir() string { return s.dir }

func (s *LocalImageStore) Save(ctx context.Context, content []byte, originalFilename, productID string) (string, error) {
	filename := newImageFilename(originalFilename, productID)
	if err := os.WriteFile(filepath.Join(s.dir, filename), content, 0o644); err != nil {
		observability.RecordImageStoreOperation(ctx, "local", "save", "error")
		return "", fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	observability.RecordImageStoreOperation(ctx, "local", "save", "success")
	observability.RecordImageUploadBytes(ctx, "local", int64(len(content)))
	return publicPrefix + filename, nil
}

func (s *LocalImageStore) Remove(ctx context.Context, relativePath string) error {
	name := basenameOf(relativePath)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		if os.IsNotExist(err) {
			observability.RecordImageStoreOperation(ctx, "local", "remove", "absent")
			return nil
		}
		observability.RecordImageStoreOperation(ctx, "local", "remove", "error")
		return err
	}
	observability.RecordImageStoreOperation(ctx, "local", "remove", "success")
	return nil
}

func (s *LocalImageStore) Open(ctx context.Context, relativePath string) (io.ReadCloser, error) {
	name := basenameOf(relativePath)
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			observability.RecordImageStoreOperation(ctx, "local", "open", "absent")
			return nil, ErrImageNotFound
		}
		observability.RecordImageStoreOperation(ctx, "local", "open", "error")
		return nil, err
	}
	observability.RecordImageStoreOperation(ctx, "local", "open", "success")
	return f, nil
}
