package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/Altinity/site-sync/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"
)

// IndexDocument is served for requests to a "directory" of the website.
const IndexDocument = "index.html"

// UploadOptions tunes the transfer manager used by UploadFile.
type UploadOptions struct {
	PartSize    int64
	Concurrency int
}

// Client performs the object operations of a publish run against one bucket.
type Client struct {
	api      S3API
	uploader *manager.Uploader
	bucket   string
}

// New creates a Client from settings. When the access key pair is incomplete
// the SDK default credential chain is used, and any resulting auth failure is
// reported by S3 on the first request.
func New(ctx context.Context, settings config.Settings, upload UploadOptions) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(settings.Region),
	}

	if settings.AccessKey != "" && settings.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(settings.AccessKey, settings.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	api := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewWithAPI(api, settings.Bucket, upload), nil
}

// NewWithAPI creates a Client on top of an existing S3 API implementation.
func NewWithAPI(api S3API, bucket string, upload UploadOptions) *Client {
	if upload.PartSize < manager.MinUploadPartSize {
		upload.PartSize = manager.MinUploadPartSize
	}

	if upload.Concurrency <= 0 {
		upload.Concurrency = manager.DefaultUploadConcurrency
	}

	return &Client{
		api: api,
		uploader: manager.NewUploader(api, func(u *manager.Uploader) {
			u.PartSize = upload.PartSize
			u.Concurrency = upload.Concurrency
		}),
		bucket: bucket,
	}
}

// Bucket returns the bucket the client is bound to.
func (c *Client) Bucket() string {
	return c.bucket
}

// ListObjects returns the keys of all objects under prefix, in listing order.
func (c *Client) ListObjects(ctx context.Context, prefix string) ([]string, error) {
	keys := []string{}

	p := s3.NewListObjectsV2Paginator(c.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(prefix),
	})

	var i int
	for p.HasMorePages() {
		i++
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, newError("ListObjectsV2", c.bucket, prefix, fmt.Errorf("failed to get page %d: %w", i, err))
		}

		log.Debug().
			Str("bucket", c.bucket).
			Str("prefix", prefix).
			Int("page", i).
			Int("objects", len(page.Contents)).
			Msg("Listed page of objects")

		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}

	return keys, nil
}

func (c *Client) DeleteObject(ctx context.Context, key string) error {
	log.Info().
		Str("bucket", c.bucket).
		Str("key", key).
		Msg("Deleting object")

	if _, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return newError("DeleteObject", c.bucket, key, err)
	}

	return nil
}

// UploadFile streams the file at localPath to key with the given content type.
func (c *Client) UploadFile(ctx context.Context, localPath string, key string, contentType string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", localPath, err)
	}

	log.Info().
		Str("bucket", c.bucket).
		Str("key", key).
		Str("contentType", contentType).
		Int64("size", fi.Size()).
		Msg("Uploading object")

	if _, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        &dataCounter{ctx: ctx, f: f, bucket: c.bucket},
		ContentType: aws.String(contentType),
	}); err != nil {
		return newError("PutObject", c.bucket, key, err)
	}

	return nil
}

// ConfigureWebsiteHosting serves prefix as a public static website: it enables
// website hosting, installs a public-read policy for prefix and clears the
// public access block. It stops at the first failing call; changes already
// made are left in place.
func (c *Client) ConfigureWebsiteHosting(ctx context.Context, prefix string) error {
	log.Info().
		Str("bucket", c.bucket).
		Str("prefix", prefix).
		Msg("Configuring static website hosting")

	if _, err := c.api.PutBucketWebsite(ctx, &s3.PutBucketWebsiteInput{
		Bucket: aws.String(c.bucket),
		WebsiteConfiguration: &types.WebsiteConfiguration{
			ErrorDocument: &types.ErrorDocument{
				Key: aws.String(prefix + IndexDocument),
			},
			IndexDocument: &types.IndexDocument{
				Suffix: aws.String(IndexDocument),
			},
		},
	}); err != nil {
		return newError("PutBucketWebsite", c.bucket, "", err)
	}

	policy, err := PublicReadPolicy(c.bucket, prefix)
	if err != nil {
		return newError("PutBucketPolicy", c.bucket, "", err)
	}

	if _, err := c.api.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(c.bucket),
		Policy: aws.String(policy),
	}); err != nil {
		return newError("PutBucketPolicy", c.bucket, "", err)
	}

	if _, err := c.api.PutPublicAccessBlock(ctx, &s3.PutPublicAccessBlockInput{
		Bucket: aws.String(c.bucket),
		PublicAccessBlockConfiguration: &types.PublicAccessBlockConfiguration{
			BlockPublicAcls:       aws.Bool(false),
			IgnorePublicAcls:      aws.Bool(false),
			BlockPublicPolicy:     aws.Bool(false),
			RestrictPublicBuckets: aws.Bool(false),
		},
	}); err != nil {
		return newError("PutPublicAccessBlock", c.bucket, "", err)
	}

	log.Info().
		Str("bucket", c.bucket).
		Msg("Bucket configured for static hosting")

	return nil
}
