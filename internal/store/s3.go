package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Store reads objects from a single S3 (or S3-compatible) bucket.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store creates a store over the given bucket using the provided client.
func NewS3Store(client *s3.Client, bucket string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
	}
}

// Get fetches an object, passing the byte range through to S3 so only the
// requested slice crosses the network.
func (s *S3Store) Get(ctx context.Context, name string, rng *ByteRange) (*Object, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	}
	if rng != nil {
		input.Range = aws.String(rng.HeaderValue())
	}

	out, err := s.client.GetObject(ctx, input)
	if err != nil {
		return nil, mapGetError(name, err)
	}

	obj := &Object{Body: out.Body}
	if out.ContentLength != nil {
		obj.ContentLength = *out.ContentLength
	}
	obj.Size = obj.ContentLength
	if out.ContentRange != nil {
		// Ranged responses report "bytes a-b/total"; the total is the
		// full object size.
		if total, ok := totalFromContentRange(*out.ContentRange); ok {
			obj.Size = total
		}
	}
	return obj, nil
}

// Head issues a metadata-only request to check the object exists.
func (s *S3Store) Head(ctx context.Context, name string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("head %q: %w", name, err)
	}
	return true, nil
}

func mapGetError(name string, err error) error {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return ErrObjectNotFound
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return ErrObjectNotFound
		case "InvalidRange":
			return ErrRangeNotSatisfiable
		}
	}
	return fmt.Errorf("get %q: %w", name, err)
}

func totalFromContentRange(cr string) (int64, bool) {
	_, totalStr, ok := strings.Cut(cr, "/")
	if !ok || totalStr == "*" {
		return 0, false
	}
	total, err := strconv.ParseInt(totalStr, 10, 64)
	if err != nil {
		return 0, false
	}
	return total, true
}
