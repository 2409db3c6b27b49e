// Package media implements the MediaStore port against S3-compatible object
// storage. Backblaze B2 works through its S3 endpoint.
package media

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"nexus-backend/application/ports"
	pkgerrors "nexus-backend/pkg/errors"
)

// S3MediaStore stores media binaries in one bucket. Objects are keyed
// <id>/<name> and served from a public base URL.
type S3MediaStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
	logger  *zap.Logger
}

// NewS3MediaStore creates a media store. endpoint overrides the AWS default
// for S3-compatible providers; baseURL is the public prefix download URLs
// carry.
func NewS3MediaStore(awsCfg aws.Config, bucket, endpoint, baseURL string, logger *zap.Logger) *S3MediaStore {
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3MediaStore{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// Upload stores a binary and returns its id and public URL
func (s *S3MediaStore) Upload(ctx context.Context, data []byte, name, mimeType string) (ports.MediaRef, error) {
	if len(data) == 0 {
		return ports.MediaRef{}, pkgerrors.NewValidationError("media payload cannot be empty")
	}

	id := uuid.New().String()
	key := id + "/" + name

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return ports.MediaRef{}, pkgerrors.NewExternalError("media storage", err)
	}

	return ports.MediaRef{ID: id, URL: s.baseURL + "/" + key}, nil
}

// Download fetches a binary by its public URL. URLs outside this store's
// base are not retrievable and return nil, which embedders treat as a skip.
func (s *S3MediaStore) Download(ctx context.Context, url string) ([]byte, error) {
	key, ok := s.keyFromURL(url)
	if !ok {
		s.logger.Debug("media url outside managed bucket", zap.String("url", url))
		return nil, nil
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, pkgerrors.NewExternalError("media storage", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, pkgerrors.NewExternalError("media storage", err)
	}
	return data, nil
}

// Delete removes a stored binary
func (s *S3MediaStore) Delete(ctx context.Context, id, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(id + "/" + name),
	})
	if err != nil {
		return pkgerrors.NewExternalError("media storage", err)
	}
	return nil
}

func (s *S3MediaStore) keyFromURL(url string) (string, bool) {
	if s.baseURL == "" || !strings.HasPrefix(url, s.baseURL+"/") {
		return "", false
	}
	return strings.TrimPrefix(url, s.baseURL+"/"), true
}
