package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

// S3Config configures an S3Store. It works with AWS S3 and S3-compatible
// servers such as MinIO.
type S3Config struct {
	Bucket       string
	Region       string // default us-east-1
	Endpoint     string // custom endpoint; empty for AWS
	AccessKey    string // empty uses the default AWS credential chain
	SecretKey    string
	UsePathStyle bool
}

// putObjectAPI is the part of the S3 client used by S3Store.
type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Option configures an S3Store.
type S3Option func(*S3Store)

// WithLogger sets the logger for upload events.
func WithLogger(l *log.Logger) S3Option {
	return func(s *S3Store) { s.logger = l }
}

// S3Store uploads artifacts to a bucket.
type S3Store struct {
	client putObjectAPI
	bucket string
	logger *log.Logger
}

// NewS3Store builds an S3 client from cfg.
func NewS3Store(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "s3 bucket is required")
	}
	if (cfg.AccessKey == "") != (cfg.SecretKey == "") {
		return nil, errors.New(errors.ErrCodeInvalidInput, "s3 access key and secret key must be set together")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return newS3Store(client, cfg.Bucket, opts...), nil
}

func newS3Store(client putObjectAPI, bucket string, opts ...S3Option) *S3Store {
	s := &S3Store{client: client, bucket: bucket}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return s
}

// Put uploads data and returns its s3:// URL.
func (s *S3Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if err := errors.ValidateObjectKey(key); err != nil {
		return "", err
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStorageFailed, err, "upload s3://%s/%s", s.bucket, key)
	}
	s.logger.Debug("uploaded", "bucket", s.bucket, "key", key, "bytes", len(data))
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

var _ Store = (*S3Store)(nil)
