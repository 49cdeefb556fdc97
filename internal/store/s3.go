package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

const (
	defaultRegion      = "us-east-1"
	defaultSessionName = "bandpass-fourier"
	parquetContentType = "application/vnd.apache.parquet"
)

// S3Config describes the bucket and credentials of an S3Sink.
type S3Config struct {
	Bucket string
	// Prefix is prepended to every key.
	Prefix string
	Region string

	// Endpoint overrides the S3 and STS endpoints (MinIO, LocalStack).
	Endpoint     string
	UsePathStyle bool

	// Static credentials. Empty means the default provider chain.
	AccessKey    string
	SecretKey    string
	SessionToken string

	// RoleARN, when set, is assumed through STS using the credentials above.
	RoleARN     string
	SessionName string
	ExternalID  string
	Duration    time.Duration

	ContentType string
}

// S3Sink stores objects in an S3 bucket.
type S3Sink struct {
	client *s3.Client
	cfg    S3Config
}

// NewS3Sink builds an S3 client from cfg.
func NewS3Sink(ctx context.Context, cfg S3Config) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket is required")
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}
	if cfg.ContentType == "" {
		cfg.ContentType = parquetContentType
	}

	loaders := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken)),
		))
	}
	if cfg.Endpoint != "" {
		loaders = append(loaders, config.WithBaseEndpoint(cfg.Endpoint))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.RoleARN != "" {
		awsCfg.Credentials = aws.NewCredentialsCache(assumeRoleProvider(awsCfg, cfg))
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		// S3-compatible endpoints often reject the default flexible checksums.
		if cfg.Endpoint != "" {
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
			o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
		}
	})
	return &S3Sink{client: client, cfg: cfg}, nil
}

func assumeRoleProvider(awsCfg aws.Config, cfg S3Config) *stscreds.AssumeRoleProvider {
	sessionName := cfg.SessionName
	if sessionName == "" {
		sessionName = defaultSessionName
	}
	return stscreds.NewAssumeRoleProvider(sts.NewFromConfig(awsCfg), cfg.RoleARN, func(o *stscreds.AssumeRoleOptions) {
		o.RoleSessionName = sessionName
		if cfg.Duration > 0 {
			o.Duration = cfg.Duration
		}
		if cfg.ExternalID != "" {
			o.ExternalID = aws.String(cfg.ExternalID)
		}
	})
}

// Put uploads body under Prefix/key.
func (s *S3Sink) Put(ctx context.Context, key string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(s.key(key)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(s.cfg.ContentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put s3://%s/%s: %w", s.cfg.Bucket, s.key(key), err)
	}
	return nil
}

// Get downloads Prefix/key.
func (s *S3Sink) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.key(key)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%w: s3://%s/%s", ErrNotFound, s.cfg.Bucket, s.key(key))
		}
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", s.cfg.Bucket, s.key(key), err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *S3Sink) key(key string) string {
	if s.cfg.Prefix == "" {
		return key
	}
	return path.Join(s.cfg.Prefix, key)
}
