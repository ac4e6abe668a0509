package skeleton

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Source reads a structure description from an S3 object
type S3Source struct {
	client *s3.Client
	bucket string
	key    string
}

// S3Option customizes how the AWS configuration is resolved
type S3Option func(*s3Options)

type s3Options struct {
	region    string
	accessKey string
	secretKey string
	session   string
}

// WithRegion pins the AWS region instead of relying on the environment
func WithRegion(region string) S3Option {
	return func(o *s3Options) {
		o.region = region
	}
}

// WithStaticCredentials uses fixed credentials instead of the default chain
func WithStaticCredentials(accessKey, secretKey, sessionToken string) S3Option {
	return func(o *s3Options) {
		o.accessKey = accessKey
		o.secretKey = secretKey
		o.session = sessionToken
	}
}

// NewS3Source resolves AWS configuration and creates an S3-backed source
func NewS3Source(ctx context.Context, bucket, key string, opts ...S3Option) (*S3Source, error) {
	var o s3Options
	for _, opt := range opts {
		opt(&o)
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if o.region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(o.region))
	}
	if o.accessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.accessKey, o.secretKey, o.session),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return NewS3SourceFromClient(s3.NewFromConfig(cfg), bucket, key), nil
}

// NewS3SourceFromClient wraps an existing client, mainly for tests
func NewS3SourceFromClient(client *s3.Client, bucket, key string) *S3Source {
	return &S3Source{client: client, bucket: bucket, key: key}
}

// Fetch downloads the object, mapping a missing bucket or key to ErrNotFound
func (s *S3Source) Fetch(ctx context.Context) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		var noBucket *s3types.NoSuchBucket
		if errors.As(err, &noKey) || errors.As(err, &noBucket) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.Location())
		}
		return nil, fmt.Errorf("get object %s: %w", s.Location(), err)
	}
	defer out.Body.Close()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", s.Location(), err)
	}
	return raw, nil
}

// Location returns the s3:// URL of the object
func (s *S3Source) Location() string {
	return "s3://" + s.bucket + "/" + s.key
}
