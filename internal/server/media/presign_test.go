package media

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() Settings {
	return Settings{
		AccessKey:    "admin",
		SecretKey:    "secretpassword",
		Bucket:       "photos",
		Region:       "us-east-1",
		BaseEndpoint: "http://127.0.0.1:9000/",
	}
}

func TestEnabled(t *testing.T) {
	assert.True(t, NewService(testSettings()).Enabled())
	assert.False(t, NewService(Settings{}).Enabled())
	assert.False(t, NewService(Settings{Bucket: "photos"}).Enabled())
}

func TestNewStorageKey_UniquePerCall(t *testing.T) {
	a := newStorageKey()
	b := newStorageKey()
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "photos/"))
}

func TestUploadURL_UsesPresignedPut(t *testing.T) {
	var gotBucket, gotKey string
	origPut := presignPutObject
	defer func() { presignPutObject = origPut }()
	presignPutObject = func(_ *s3.PresignClient, _ context.Context, in *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotBucket = aws.ToString(in.Bucket)
		gotKey = aws.ToString(in.Key)
		return &v4.PresignedHTTPRequest{URL: "http://signed.example/put"}, nil
	}

	key, url, err := NewService(testSettings()).UploadURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "http://signed.example/put", url)
	assert.Equal(t, key, gotKey)
	assert.Equal(t, "photos", gotBucket)
}

func TestDownloadURL_UsesPresignedGet(t *testing.T) {
	origGet := presignGetObject
	defer func() { presignGetObject = origGet }()
	presignGetObject = func(_ *s3.PresignClient, _ context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		assert.Equal(t, "photos/2026/02/14/abc", aws.ToString(in.Key))
		return &v4.PresignedHTTPRequest{URL: "http://signed.example/get"}, nil
	}

	url, err := NewService(testSettings()).DownloadURL(context.Background(), "photos/2026/02/14/abc")
	require.NoError(t, err)
	assert.Equal(t, "http://signed.example/get", url)
}
