package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/kashmiricraft/treasures-api/internal/observability"
)

// MinioImageStore keeps product images in an S3-compatible bucket. The
// public URL suffix stays "/uploads/{filename}" so the stored paths are
// interchangeable with the local backend; the uploads handler streams the
// object back through Open.
type MinioImageStore struct {
	client   *minio.Client
	bucket   string
	initOnce sync.Once
	initErr  error
}

// NewMinioImageStore creates the client. Bucket creation is deferred to the
// first operation so a missing MinIO does not block startup.
func NewMinioImageStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioImageStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &MinioImageStore{client: client, bucket: bucket}, nil
}

func (s *MinioImageStore) lazyInit(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.initErr = fmt.Errorf("check bucket existence: %w", err)
			return
		}
		if !exists {
			if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
				s.initErr = fmt.Errorf("create bucket: %w", err)
			}
		}
	})
	return s.initErr
}

func (s *MinioImageStore) Save(ctx context.Context, content []byte, originalFilename, productID string) (string, error) {
	if err := s.lazyInit(ctx); err != nil {
		observability.RecordImageStoreOperation(ctx, "minio", "save", "error")
		return "", fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	filename := newImageFilename(originalFilename, productID)
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, filename, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		observability.RecordImageStoreOperation(ctx, "minio", "save", "error")
		return "", fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	observability.RecordImageStoreOperation(ctx, "minio", "save", "success")
	observability.RecordImageUploadBytes(ctx, "minio", int64(len(content)))
	return publicPrefix + filename, nil
}

func (s *MinioImageStore) Remove(ctx context.Context, relativePath string) error {
	name := basenameOf(relativePath)
	if name == "" || name == "." {
		return nil
	}
	if err := s.lazyInit(ctx); err != nil {
		observability.RecordImageStoreOperation(ctx, "minio", "remove", "error")
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		observability.RecordImageStoreOperation(ctx, "minio", "remove", "error")
		return err
	}
	observability.RecordImageStoreOperation(ctx, "minio", "remove", "success")
	return nil
}

func (s *MinioImageStore) Open(ctx context.Context, relativePath string) (io.ReadCloser, error) {
	name := basenameOf(relativePath)
	if err := s.lazyInit(ctx); err != nil {
		observability.RecordImageStoreOperation(ctx, "minio", "open", "error")
		return nil, err
	}
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		observability.RecordImageStoreOperation(ctx, "minio", "open", "error")
		return nil, err
	}
	// GetObject is lazy; Stat surfaces a missing key before the caller
	// starts streaming.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			observability.RecordImageStoreOperation(ctx, "minio", "open", "absent")
			return nil, ErrImageNotFound
		}
		observability.RecordImageStoreOperation(ctx, "minio", "open", "error")
		return nil, err
	}
	observability.RecordImageStoreOperation(ctx, "minio", "open", "success")
	return obj, nil
}
