// Package archiver snapshots the open-event catalog to S3 on an hourly
// cadence. Each hour gets one gzip NDJSON object plus a _SUCCESS marker,
// so reruns for an already-archived hour are no-ops.
package archiver

import (
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// Sink is where snapshot objects land. S3 in production, in-memory in tests.
type Sink interface {
	Exists(ctx context.Context, key string) (bool, error)
	Put(ctx context.Context, key, contentType, contentEncoding string, body io.Reader) error
	PutEmpty(ctx context.Context, key string) error
}

// S3Sink writes snapshot objects to a single bucket.
type S3Sink struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
}

func NewS3Sink(client *s3.Client, uploader *manager.Uploader, bucket string) *S3Sink {
	return &S3Sink{client: client, uploader: uploader, bucket: bucket}
}

// Exists reports whether an object is already present at key.
func (s *S3Sink) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		if code == "NotFound" || code == "NoSuchKey" {
			return false, nil
		}
	}
	return false, err
}

// Put streams body into the bucket at key. The uploader handles multipart
// for large snapshots.
func (s *S3Sink) Put(ctx context.Context, key, contentType, contentEncoding string, body io.Reader) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if contentEncoding != "" {
		input.ContentEncoding = aws.String(contentEncoding)
	}

	_, err := s.uploader.Upload(ctx, input)
	return err
}

// PutEmpty writes a zero-byte object, used for _SUCCESS markers.
func (s *S3Sink) PutEmpty(ctx context.Context, key string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   nil,
	})
	return err
}
