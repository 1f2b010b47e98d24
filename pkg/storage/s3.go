package storage

import (
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds S3-compatible storage configuration.
// Bucket is taken from the location ("s3://bucket/...") when opened via Open.
type S3Config struct {
	Bucket    string `env:"S3_BUCKET"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	Endpoint  string `env:"S3_ENDPOINT"` // MinIO or other S3-compatible services
	Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	PathStyle bool   `env:"S3_PATH_STYLE"` // required for MinIO
}

// DefaultRegion is used when no region is configured.
const DefaultRegion = "us-east-1"

func (c *S3Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

func (c *S3Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}

// S3 reads files from an S3 bucket.
type S3 struct {
	client *s3.Client
	bucket string
}

// NewS3 creates an S3 store with static credentials.
func NewS3(_ context.Context, cfg S3Config) (*S3, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &S3{
		client: s3.New(s3.Options{}, opts...),
		bucket: cfg.Bucket,
	}, nil
}

// Get retrieves an object.
func (s *S3) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrReadFailed)
	}
	return out.Body, nil
}

// Exists checks for an object without downloading it.
func (s *S3) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	err = wrapS3Error(err, ErrReadFailed)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

var _ Storage = (*S3)(nil)
