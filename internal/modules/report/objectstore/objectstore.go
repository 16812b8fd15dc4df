package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	appcfg "github.com/sheetbrief/core/internal/config"
)

// RetrievalError reports a failed object read. NotFound distinguishes a
// missing object from access or transport failures.
type RetrievalError struct {
	Bucket   string
	Key      string
	NotFound bool
	Err      error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("fetch s3://%s/%s: %v", e.Bucket, e.Key, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// Client reads objects from an S3-compatible store.
type Client struct {
	s3 *s3.Client
}

// New builds a Client from storage options. Static credentials are used when
// provided; otherwise the SDK's anonymous/default behavior applies.
func New(opts appcfg.StorageOptions) *Client {
	s3opts := s3.Options{
		Region:       opts.Region,
		UsePathStyle: opts.PathStyleAccess,
		HTTPClient:   &http.Client{Timeout: 60 * time.Second},
	}
	if opts.Region == "" {
		s3opts.Region = "us-east-1"
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		s3opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""))
	}
	if endpoint := strings.TrimSpace(opts.Endpoint); endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		s3opts.BaseEndpoint = aws.String(strings.TrimSuffix(endpoint, "/"))
		// Custom endpoints rarely resolve virtual-host bucket names.
		s3opts.UsePathStyle = true
	}
	return &Client{s3: s3.New(s3opts)}
}

// Fetch downloads the full object content into memory. The returned buffer
// backs both the parser and the email attachment, so one read per
// invocation suffices.
func (c *Client) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, &RetrievalError{Bucket: bucket, Key: key, NotFound: isNotFound(err), Err: err}
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, &RetrievalError{Bucket: bucket, Key: key, Err: err}
	}
	return data, nil
}

func isNotFound(err error) bool {
	var noKey *s3types.NoSuchKey
	var noBucket *s3types.NoSuchBucket
	if errors.As(err, &noKey) || errors.As(err, &noBucket) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return true
		}
	}
	return false
}
