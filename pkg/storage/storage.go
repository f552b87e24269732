package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"sports-scheduler/config"
)

// Archiver keeps a copy of generated export files.
type Archiver interface {
	// Put stores body and returns the object key it was written under.
	Put(ctx context.Context, name, contentType string, body []byte) (string, error)
	Enabled() bool
}

// NewArchiver returns an S3 archiver when archiving is enabled, otherwise
// one that discards everything.
func NewArchiver(ctx context.Context, cfg *config.ArchiveConfig, logger *zap.Logger) (Archiver, error) {
	if !cfg.Enabled {
		return noopArchiver{}, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("export archive enabled", zap.String("bucket", cfg.Bucket), zap.String("prefix", cfg.Prefix))

	return &s3Archiver{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix, now: time.Now}, nil
}

type s3Archiver struct {
	client *s3.Client
	bucket string
	prefix string
	now    func() time.Time
}

func (a *s3Archiver) Enabled() bool { return true }

func (a *s3Archiver) Put(ctx context.Context, name, contentType string, body []byte) (string, error) {
	key := ObjectKey(a.prefix, name, a.now())

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

// ObjectKey builds prefix/YYYY/MM/DD/<slug>-<unix>.<ext> for an export name.
func ObjectKey(prefix, name string, at time.Time) string {
	ext := path.Ext(name)
	base := slug.Make(name[:len(name)-len(ext)])
	if base == "" {
		base = "export"
	}
	return path.Join(prefix, at.UTC().Format("2006/01/02"), fmt.Sprintf("%s-%d%s", base, at.Unix(), ext))
}

type noopArchiver struct{}

func (noopArchiver) Enabled() bool { return false }

func (noopArchiver) Put(context.Context, string, string, []byte) (string, error) { return "", nil }
