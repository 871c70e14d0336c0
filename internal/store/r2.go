// Package store is the R2 object-store client for the pipeline. R2 speaks
// the S3 API, so it is a thin wrapper over the AWS SDK pointed at the
// account's R2 endpoint.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"pdfextract/internal/config"
)

// ObjectInfo is the subset of object metadata the output record carries.
// All fields are optional: R2 may omit any of them.
type ObjectInfo struct {
	ContentType  *string
	SizeBytes    *int64
	ETag         *string
	LastModified *time.Time
}

// Store wraps an S3 client bound to one bucket.
type Store struct {
	client *s3.Client
	bucket string
}

// New creates a Store for the R2 account and bucket in cfg.
func New(ctx context.Context, cfg *config.Config) (*Store, error) {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, ""),
		),
		awsconfig.WithRetryMode(aws.RetryModeStandard),
		awsconfig.WithRetryMaxAttempts(6),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// Bucket returns the bucket name the store is bound to.
func (s *Store) Bucket() string {
	return s.bucket
}

// ListPendingPDFs returns the keys of every .pdf object under pdfPrefix
// that has no .json artifact under outPrefix. The processed set is listed
// once per call, not per document.
func (s *Store) ListPendingPDFs(ctx context.Context, pdfPrefix, outPrefix string) ([]string, error) {
	extracted, err := s.listBasenames(ctx, outPrefix, ".json")
	if err != nil {
		return nil, err
	}

	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(pdfPrefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, &StoreError{Op: "list", Err: err}
		}
		for _, obj := range page.Contents {
			if key := aws.ToString(obj.Key); isPending(key, extracted) {
				keys = append(keys, key)
			}
		}
	}
	return keys, nil
}

// listBasenames collects the extensionless basenames of every object under
// prefix carrying the given extension.
func (s *Store) listBasenames(ctx context.Context, prefix, ext string) (map[string]struct{}, error) {
	basenames := make(map[string]struct{})
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, &StoreError{Op: "list", Err: err}
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if hasExt(key, ext) {
				basenames[Basename(key)] = struct{}{}
			}
		}
	}
	return basenames, nil
}

// Head returns the object's storage metadata.
func (s *Store) Head(ctx context.Context, key string) (*ObjectInfo, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, &StoreError{Op: "head", Key: key, Err: err}
	}

	return &ObjectInfo{
		ContentType:  out.ContentType,
		SizeBytes:    out.ContentLength,
		ETag:         out.ETag,
		LastModified: out.LastModified,
	}, nil
}

// GetBytes downloads the object into memory.
func (s *Store) GetBytes(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, &StoreError{Op: "get", Key: key, Err: err}
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, &StoreError{Op: "get", Key: key, Err: err}
	}
	return data, nil
}

// PutJSON marshals v with indentation and writes it at key, overwriting any
// existing object.
func (s *Store) PutJSON(ctx context.Context, key string, v any) error {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &StoreError{Op: "put", Key: key, Err: err}
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json; charset=utf-8"),
	})
	if err != nil {
		return &StoreError{Op: "put", Key: key, Err: err}
	}
	return nil
}
