package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"grant_portal/internal/infrastructure/config"
	"grant_portal/internal/usecase/interfaces"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultURLTTL = 15 * time.Minute

// MinioStorage keeps uploaded documents and signatures in MinIO / S3.
type MinioStorage struct {
	client  *minio.Client
	buckets map[interfaces.Bucket]string
	region  string
	urlTTL  time.Duration
}

var _ interfaces.IBlobStorage = (*MinioStorage)(nil)

func NewMinioStorage(cfg *config.Config) (*MinioStorage, error) {
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
		Region: cfg.S3Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}
	return &MinioStorage{
		client:  client,
		buckets: bucketNames(cfg),
		region:  cfg.S3Region,
		urlTTL:  urlTTL(cfg.PublicURLTTL),
	}, nil
}

func bucketNames(cfg *config.Config) map[interfaces.Bucket]string {
	names := map[interfaces.Bucket]string{
		interfaces.BucketDocuments:  cfg.DocumentsBucket,
		interfaces.BucketSignatures: cfg.SignaturesBucket,
	}
	for logical, name := range names {
		if name == "" {
			names[logical] = string(logical)
		}
	}
	return names
}

func urlTTL(ttl time.Duration) time.Duration {
	// S3 presigned URLs are valid for at most seven days.
	if ttl <= 0 || ttl > 7*24*time.Hour {
		return defaultURLTTL
	}
	return ttl
}

// EnsureBuckets creates the document and signature buckets when missing.
func (s *MinioStorage) EnsureBuckets(ctx context.Context) error {
	for _, bucket := range []string{s.buckets[interfaces.BucketDocuments], s.buckets[interfaces.BucketSignatures]} {
		exists, err := s.client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("check bucket %s: %w", bucket, err)
		}
		if !exists {
			if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
				return fmt.Errorf("make bucket %s: %w", bucket, err)
			}
		}
	}
	return nil
}

func (s *MinioStorage) Upload(ctx context.Context, bucket interfaces.Bucket, objectKey string, r io.Reader, size int64, contentType string) error {
	name, err := s.bucket(bucket)
	if err != nil {
		return err
	}
	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := s.client.PutObject(ctx, name, objectKey, r, size, opts); err != nil {
		return fmt.Errorf("upload object %s/%s: %w", name, objectKey, err)
	}
	return nil
}

// PublicURL returns a presigned GET URL for the object.
func (s *MinioStorage) PublicURL(ctx context.Context, bucket interfaces.Bucket, objectKey string) (string, error) {
	name, err := s.bucket(bucket)
	if err != nil {
		return "", err
	}
	u, err := s.client.PresignedGetObject(ctx, name, objectKey, s.urlTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign object %s/%s: %w", name, objectKey, err)
	}
	return u.String(), nil
}

func (s *MinioStorage) bucket(b interfaces.Bucket) (string, error) {
	name, ok := s.buckets[b]
	if !ok {
		return "", fmt.Errorf("unknown bucket %q", b)
	}
	return name, nil
}
