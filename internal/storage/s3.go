package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/shortflix/backend/internal/config"
)

const jsonContentType = "application/json"

// S3Storage implements snapshots.Uploader backed by an S3-compatible service.
type S3Storage struct {
	uploader *manager.Uploader
	bucket   string
	prefix   string
	baseURL  string
}

// NewS3Storage configures an uploader targeting the provided object store.
func NewS3Storage(ctx context.Context, cfg config.ObjectStoreConfig) (*S3Storage, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("s3 storage: bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = manager.MinUploadPartSize
		u.LeavePartsOnError = false
	})

	return newS3Storage(uploader, cfg), nil
}

func newS3Storage(uploader *manager.Uploader, cfg config.ObjectStoreConfig) *S3Storage {
	return &S3Storage{
		uploader: uploader,
		bucket:   cfg.Bucket,
		prefix:   strings.Trim(cfg.Prefix, "/"),
		baseURL:  strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}
}

// Key returns the object key name is stored under.
func (s *S3Storage) Key(name string) string {
	name = strings.TrimLeft(name, "/")
	if name == "" {
		return ""
	}
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Save uploads the provided JSON document to the configured bucket and returns its location.
func (s *S3Storage) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	key := s.Key(name)
	if key == "" {
		return "", fmt.Errorf("s3 storage: empty key")
	}

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(jsonContentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 storage upload %s: %w", key, err)
	}

	return s.location(key), nil
}

func (s *S3Storage) location(key string) string {
	if s.baseURL == "" {
		return fmt.Sprintf("s3://%s/%s", s.bucket, key)
	}
	return fmt.Sprintf("%s/%s", s.baseURL, key)
}
