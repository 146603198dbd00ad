package blob

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/pharmadmin/internal/netx"
)

// S3Options configures an S3-compatible backend such as MinIO.
type S3Options struct {
	User         string
	Password     string
	Bucket       string
	Region       string
	BaseEndpoint string
	// PublicBase prefixes keys in returned URLs. Empty means
	// BaseEndpoint/Bucket.
	PublicBase string
	HTTPClient *http.Client
}

// S3 uploads through presigned PUT URLs.
type S3 struct {
	presign    *s3.PresignClient
	bucket     string
	publicBase string
	http       *http.Client
}

func NewS3(ctx context.Context, o S3Options) (*S3, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(o.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(o.User, o.Password, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("s3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(opts *s3.Options) {
		opts.BaseEndpoint = aws.String(o.BaseEndpoint)
		opts.UsePathStyle = true
	})

	public := o.PublicBase
	if public == "" {
		public = publicURL(o.BaseEndpoint, o.Bucket)
	}
	return &S3{presign: s3.NewPresignClient(client), bucket: o.Bucket, publicBase: public, http: o.HTTPClient}, nil
}

func (s *S3) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}

	if err := netx.PutPresigned(ctx, s.http, req.URL, contentType, data); err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return publicURL(s.publicBase, key), nil
}
