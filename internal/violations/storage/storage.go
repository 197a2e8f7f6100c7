// Package storage stores violation report photos in object storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const downloadURLTTL = 15 * time.Minute

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// Config configures the photo store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// PhotoStore wraps a MinIO bucket holding violation photos.
type PhotoStore struct {
	client *minio.Client
	bucket string
}

func New(cfg Config) (*PhotoStore, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("object storage endpoint and bucket are required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	return &PhotoStore{client: client, bucket: cfg.Bucket}, nil
}

// EnsureBucket creates the photo bucket if it does not exist yet.
func (s *PhotoStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// UploadPhoto stores a photo and returns its object key. Keys are prefixed
// with the upload date and suffixed with a UUID so reports never overwrite
// each other.
func (s *PhotoStore) UploadPhoto(ctx context.Context, fileName, contentType string, reader io.Reader, size int64) (string, error) {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported photo content type %q", contentType)
	}

	base := strings.TrimSuffix(path.Base(fileName), path.Ext(fileName))
	if base == "" || base == "." {
		base = "photo"
	}
	key := fmt.Sprintf("%s/%s_%s%s", time.Now().UTC().Format("2006-01-02"), base, uuid.New().String()[:8], ext)

	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return key, nil
}

// PhotoURL returns a presigned download URL for a stored photo.
func (s *PhotoStore) PhotoURL(ctx context.Context, key string) (string, error) {
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, downloadURLTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign photo url: %w", err)
	}
	return presigned.String(), nil
}
