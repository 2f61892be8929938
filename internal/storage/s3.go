package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the configuration for S3 publishing.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // Optional: for custom S3-compatible endpoints
	KeyPrefix       string // Optional: prefix for object keys
	AccessKeyID     string // Optional: AWS access key ID
	SecretAccessKey string // Optional: AWS secret access key
}

// S3Store wraps LocalStore and additionally uploads every published file
// to an S3 bucket, reporting the object URL instead of the local path.
// The local copies are kept.
type S3Store struct {
	*LocalStore
	client *s3.Client
	bucket string
	region string
	prefix string
}

// NewS3Store creates an S3Store. The scratchDir parameter works as in
// NewLocalStore; cfg configures the bucket and credentials.
func NewS3Store(scratchDir string, cfg S3Config) (*S3Store, error) {
	local, err := NewLocalStore(scratchDir)
	if err != nil {
		return nil, err
	}

	var configOpts []func(*config.LoadOptions) error
	configOpts = append(configOpts, config.WithRegion(cfg.Region))

	// Use static credentials if provided
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		configOpts = append(configOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(), configOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, clientOpts...)

	return &S3Store{
		LocalStore: local,
		client:     client,
		bucket:     cfg.Bucket,
		region:     cfg.Region,
		prefix:     cfg.KeyPrefix,
	}, nil
}

// Publish uploads the file to S3 under its base name (plus the optional
// key prefix) and returns the object URL.
func (s *S3Store) Publish(ctx context.Context, localPath string) (string, error) {
	abs, err := s.LocalStore.Publish(ctx, localPath)
	if err != nil {
		return "", err
	}

	f, err := os.Open(abs) // #nosec G304 - path is produced by the encoder
	if err != nil {
		return "", fmt.Errorf("open %s: %w", abs, err)
	}
	defer func() { _ = f.Close() }()

	key := path.Join(s.prefix, filepath.Base(abs))
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return "", fmt.Errorf("upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// Verify interface implementation at compile time.
var _ Store = (*S3Store)(nil)
