package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	awscredentials "github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/minio/minio-go/v7"
	miniocredentials "github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/noah-isme/radio-cms-api/pkg/config"
)

// ErrObjectNotFound is returned by Get when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Object is a stored blob opened for reading. Callers close Body.
type Object struct {
	Body          io.ReadCloser
	ContentLength int64
	ContentType   string
	LastModified  time.Time
}

// Provider stores media blobs by key.
type Provider interface {
	Put(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) error
	Get(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
	// URL returns a time-limited link clients can fetch the object from.
	URL(ctx context.Context, key string) (string, error)
}

// New builds the provider selected by cfg.Provider. mediaPrefix is the public
// route the local provider serves signed downloads from.
func New(cfg config.StorageConfig, mediaPrefix string) (Provider, error) {
	switch cfg.Provider {
	case "", config.StorageLocal:
		signer := NewSignedURLSigner(cfg.SignedURLSecret, cfg.SignedURLTTL)
		return NewLocalStorage(cfg.LocalDir, signer, mediaPrefix)
	case config.StorageS3:
		awsCfg := &aws.Config{
			Credentials:      awscredentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
			Region:           aws.String(cfg.Region),
			S3ForcePathStyle: aws.Bool(cfg.Endpoint != ""),
		}
		if cfg.Endpoint != "" {
			awsCfg.Endpoint = aws.String(cfg.Endpoint)
		}
		sess, err := session.NewSession(awsCfg)
		if err != nil {
			return nil, fmt.Errorf("create s3 session: %w", err)
		}
		return NewS3Storage(sess, cfg.Bucket, cfg.SignedURLTTL), nil
	case config.StorageMinio:
		client, err := minio.New(cfg.Endpoint, &minio.Options{
			Creds:  miniocredentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("create minio client: %w", err)
		}
		return NewMinioStorage(client, cfg.Bucket, cfg.SignedURLTTL), nil
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}
