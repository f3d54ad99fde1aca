package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"golang.org/x/exp/slog"

	"artargets/internal/domain/asset"
)

// ObjectStore - бинарное хранилище на S3-совместимом сервере (MinIO, R2, AWS).
type ObjectStore struct {
	client *s3.Client
	log    *slog.Logger
}

func New(ctx context.Context, endpoint, region, accessKey, secretKey string, log *slog.Logger) (*ObjectStore, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if accessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})

	return NewWithClient(client, log), nil
}

func NewWithClient(client *s3.Client, log *slog.Logger) *ObjectStore {
	return &ObjectStore{
		client: client,
		log:    log.With("component", "s3_store"),
	}
}

func (s *ObjectStore) Put(ctx context.Context, bucket, path string, f asset.File, upsert bool) (string, error) {
	body, size, err := seekable(f)
	if err != nil {
		return "", &asset.UploadError{Err: err}
	}

	contentType := f.ContentType
	if contentType == "" {
		contentType = asset.DefaultContentType
	}

	in := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(path),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("max-age=3600"),
	}
	if !upsert {
		in.IfNoneMatch = aws.String("*")
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		s.log.Error("put object failed", "bucket", bucket, "key", path, "error", err)
		status, msg := describe(err)
		return "", &asset.UploadError{Status: status, Body: msg, Err: err}
	}

	return path, nil
}

func (s *ObjectStore) Remove(ctx context.Context, bucket, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		status, msg := describe(err)
		storeErr := &asset.StoreError{Op: "remove", Status: status, Message: msg, Err: err}
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			storeErr.Code = apiErr.ErrorCode()
		}
		return storeErr
	}

	return nil
}

// seekable нужен для подписи SigV4 без chunked-трейлеров.
func seekable(f asset.File) (io.ReadSeeker, int64, error) {
	if f.Body == nil {
		return bytes.NewReader(nil), 0, nil
	}
	if rs, ok := f.Body.(io.ReadSeeker); ok && f.Size > 0 {
		return rs, f.Size, nil
	}

	data, err := io.ReadAll(f.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read body: %w", err)
	}
	return bytes.NewReader(data), int64(len(data)), nil
}

func describe(err error) (int, string) {
	status := 0
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		status = respErr.HTTPStatusCode()
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return status, apiErr.ErrorMessage()
	}
	return status, err.Error()
}
