package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Archiver keeps a copy of every rendered report.
type Archiver interface {
	Archive(ctx context.Context, name, contentType string, data []byte) error
}

type MinioOpts func(c *minioConfig)

type minioConfig struct {
	endpoint        string
	bucket          string
	accessKey       string
	secretAccessKey string
	useSSL          bool
}

func WithEndpoint(endpoint string) MinioOpts {
	return func(c *minioConfig) {
		c.endpoint = endpoint
	}
}

func WithBucket(bucket string) MinioOpts {
	return func(c *minioConfig) {
		c.bucket = bucket
	}
}

func WithCredentials(accessKey, secretAccessKey string) MinioOpts {
	return func(c *minioConfig) {
		c.accessKey = accessKey
		c.secretAccessKey = secretAccessKey
	}
}

func WithSSL(useSSL bool) MinioOpts {
	return func(c *minioConfig) {
		c.useSSL = useSSL
	}
}

type MinioArchiver struct {
	cfg    *minioConfig
	client *minio.Client
}

func NewMinioArchiver(opts ...MinioOpts) (*MinioArchiver, error) {
	cfg := &minioConfig{bucket: "reports"}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.endpoint == "" {
		return nil, fmt.Errorf("object store endpoint is required")
	}

	client, err := minio.New(cfg.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.accessKey, cfg.secretAccessKey, ""),
		Secure: cfg.useSSL,
	})
	if err != nil {
		return nil, err
	}

	return &MinioArchiver{cfg: cfg, client: client}, nil
}

func (m *MinioArchiver) Archive(ctx context.Context, name, contentType string, data []byte) error {
	_, err := m.client.PutObject(ctx, m.cfg.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to archive %s to bucket %s: %w", name, m.cfg.bucket, err)
	}
	return nil
}
