package s3

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"pravaah/internal/config"
	"pravaah/internal/domain"
	"pravaah/internal/port"
)

const defaultPresignExpiry = time.Hour

type archive struct {
	client    *s3.Client
	presigner *s3.PresignClient
	uploader  *manager.Uploader
	bucket    string
	prefix    string
	expiry    time.Duration
}

// NewArchive creates an S3-backed DocumentArchive. A custom endpoint
// switches to path-style addressing for MinIO and LocalStack.
func NewArchive(ctx context.Context, cfg *config.S3Config) (port.DocumentArchive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 archive: bucket is required")
	}

	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	expiry := time.Duration(cfg.PresignExpiry) * time.Second
	if expiry <= 0 {
		expiry = defaultPresignExpiry
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return &archive{
		client:    client,
		presigner: s3.NewPresignClient(client),
		uploader:  manager.NewUploader(client),
		bucket:    cfg.Bucket,
		prefix:    cfg.KeyPrefix,
		expiry:    expiry,
	}, nil
}

// Archive uploads body to <prefix><uuid>/<basename>.
func (a *archive) Archive(ctx context.Context, filename string, body io.Reader, size int64) (string, error) {
	base := filepath.Base(filename)
	key := a.prefix + path.Join(uuid.New().String(), base)

	contentType := mime.TypeByExtension(filepath.Ext(base))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if _, err := a.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("%w: s3 upload: %w", domain.ErrArchiveFailed, err)
	}
	return key, nil
}

func (a *archive) URL(ctx context.Context, key string) (string, error) {
	result, err := a.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(a.expiry))
	if err != nil {
		return "", fmt.Errorf("%w: s3 presign: %w", domain.ErrArchiveFailed, err)
	}
	return result.URL, nil
}

func (a *archive) Remove(ctx context.Context, key string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%w: s3 delete: %w", domain.ErrArchiveFailed, err)
	}
	return nil
}

// Ping checks that the bucket is reachable with the configured credentials.
func (a *archive) Ping(ctx context.Context) error {
	_, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(a.bucket)})
	return err
}
