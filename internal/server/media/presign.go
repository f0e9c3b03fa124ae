// Package media issues presigned S3 URLs so authors can host the photos
// their documents reference without relying on third-party image hosts.
package media

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const presignValidity = 15 * time.Minute

// Test seams over the AWS SDK.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Settings configures the S3-compatible backend (AWS or MinIO).
type Settings struct {
	AccessKey    string
	SecretKey    string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// Service issues presigned PUT/GET URLs for photo objects.
type Service struct {
	settings Settings
}

func NewService(settings Settings) *Service {
	return &Service{settings: settings}
}

// Enabled reports whether an object storage backend is configured; when it
// is not, the HTTP layer answers 503 for media routes.
func (s *Service) Enabled() bool {
	return s.settings.Bucket != "" && s.settings.BaseEndpoint != ""
}

func newStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("photos/%d/%02d/%02d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *Service) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.settings.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.settings.AccessKey,
			s.settings.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.settings.BaseEndpoint)
		o.UsePathStyle = true
	})
	return newS3PresignClient(client), nil
}

// UploadURL returns a fresh object key and a presigned PUT URL for it.
func (s *Service) UploadURL(ctx context.Context) (key, url string, err error) {
	pc, err := s.presignClient(ctx)
	if err != nil {
		return "", "", err
	}

	key = newStorageKey()
	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.settings.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", "", err
	}
	return key, req.URL, nil
}

// DownloadURL returns a presigned GET URL for an existing object key.
func (s *Service) DownloadURL(ctx context.Context, key string) (string, error) {
	pc, err := s.presignClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.settings.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
