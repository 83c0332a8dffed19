package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresignedUpload carries a time-limited PUT URL for one object key.
type PresignedUpload struct {
	URL       string
	Key       string
	ExpiresIn time.Duration
}

// URLSigner is the blob-store collaborator: it mints write-capable signed
// URLs without this service ever touching object bytes.
type URLSigner interface {
	SignedPutURL(ctx context.Context, key, contentType string) (PresignedUpload, error)
}

// S3Signer issues presigned PUT URLs scoped to a single bucket.
type S3Signer struct {
	presign *s3.PresignClient
	bucket  string
	ttl     time.Duration
}

// NewS3Signer creates a signer for the given bucket and URL lifetime.
func NewS3Signer(presign *s3.PresignClient, bucket string, ttl time.Duration) *S3Signer {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &S3Signer{presign: presign, bucket: bucket, ttl: ttl}
}

// SignedPutURL asks S3 for an upload URL scoped to key. The URL grants PUT
// access until the expiry and is never validated or fetched by this service.
func (s *S3Signer) SignedPutURL(ctx context.Context, key, contentType string) (PresignedUpload, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	req, err := s.presign.PresignPutObject(ctx, input, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return PresignedUpload{}, fmt.Errorf("presign put object: %w", err)
	}
	return PresignedUpload{URL: req.URL, Key: key, ExpiresIn: s.ttl}, nil
}
