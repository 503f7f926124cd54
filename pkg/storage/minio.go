package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

// MinioStorage keeps objects in a MinIO bucket.
type MinioStorage struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
}

// NewMinioStorage wraps a configured client.
func NewMinioStorage(client *minio.Client, bucket string, ttl time.Duration) *MinioStorage {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MinioStorage{client: client, bucket: bucket, ttl: ttl}
}

func (m *MinioStorage) Put(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, body, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=86400",
	})
	if err != nil {
		return fmt.Errorf("minio put %s: %w", key, err)
	}
	return nil
}

func (m *MinioStorage) Get(ctx context.Context, key string) (*Object, error) {
	info, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("minio stat %s: %w", key, err)
	}
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("minio get %s: %w", key, err)
	}
	return &Object{
		Body:          obj,
		ContentLength: info.Size,
		ContentType:   info.ContentType,
		LastModified:  info.LastModified,
	}, nil
}

func (m *MinioStorage) Delete(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio delete %s: %w", key, err)
	}
	return nil
}

// URL presigns a GET request for the object.
func (m *MinioStorage) URL(ctx context.Context, key string) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, m.ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("minio presign %s: %w", key, err)
	}
	return u.String(), nil
}
