package storage

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Presigning is a local computation, so these run without any network.
func newTestSigner(ttl time.Duration) *S3Signer {
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
	}
	client := s3.NewFromConfig(cfg)
	return NewS3Signer(s3.NewPresignClient(client), "post-images", ttl)
}

func TestSignedPutURLScopesKeyAndExpiry(t *testing.T) {
	signer := newTestSigner(10 * time.Minute)

	upload, err := signer.SignedPutURL(context.Background(), "alice/p1/image.png", "image/png")
	require.NoError(t, err)

	assert.Equal(t, "alice/p1/image.png", upload.Key)
	assert.Equal(t, 10*time.Minute, upload.ExpiresIn)
	assert.Contains(t, upload.URL, "post-images")
	assert.Contains(t, upload.URL, "alice/p1/image.png")
	assert.Contains(t, upload.URL, "X-Amz-Expires=600")
	assert.Contains(t, upload.URL, "X-Amz-Signature=")
}

func TestSignerDefaultsExpiry(t *testing.T) {
	signer := newTestSigner(0)

	upload, err := signer.SignedPutURL(context.Background(), "alice/p1/file.bin", "")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, upload.ExpiresIn)
	assert.Contains(t, upload.URL, "X-Amz-Expires=900")
}
