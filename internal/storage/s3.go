package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"groupme/internal/config"
)

const keyPrefix = "uploads/"

var ErrStorageDisabled = errors.New("object storage is not configured")

// Client is the subset of the S3 API used for uploads.
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 stores post images in a bucket and returns their public URL.
type S3 struct {
	Logger *slog.Logger
	Config *config.Config

	client Client
}

// NewWithClient builds an S3 storage on top of an existing client.
func NewWithClient(logger *slog.Logger, cfg *config.Config, client Client) *S3 {
	return &S3{Logger: logger, Config: cfg, client: client}
}

func (s *S3) Init(ctx context.Context) error {
	s.Logger = s.Logger.With("component", "storage.S3")

	if s.Config.S3Bucket == "" {
		s.Logger.Warn("No bucket configured, uploads are disabled")
		return nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(s.Config.S3Region),
	}
	if s.Config.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.Config.S3AccessKey, s.Config.S3SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return err
	}

	s.client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.Config.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(s.Config.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return nil
}

func (s *S3) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	if s.client == nil || s.Config.S3Bucket == "" {
		return "", ErrStorageDisabled
	}

	key := keyPrefix + uuid.NewString() + strings.ToLower(path.Ext(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Config.S3Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.Logger.Debug("Uploaded object", "key", key, "contentType", contentType)

	return s.url(key), nil
}

func (s *S3) url(key string) string {
	if s.Config.S3PublicURL != "" {
		return strings.TrimRight(s.Config.S3PublicURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.Config.S3Bucket, s.Config.S3Region, key)
}
