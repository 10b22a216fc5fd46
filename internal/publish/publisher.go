package publish

import (
	"context"
	"errors"
	"strings"

	"github.com/Altinity/site-sync/config"
	"github.com/Altinity/site-sync/internal/storage"
	"github.com/Altinity/site-sync/internal/telemetry"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ObjectStore is the bucket a Publisher works on. *storage.Client implements it.
type ObjectStore interface {
	ListObjects(ctx context.Context, prefix string) ([]string, error)
	DeleteObject(ctx context.Context, key string) error
	UploadFile(ctx context.Context, localPath string, key string, contentType string) error
	ConfigureWebsiteHosting(ctx context.Context, prefix string) error
}

var _ ObjectStore = (*storage.Client)(nil)

// Publisher replaces the content under one prefix of a bucket with a local
// folder and serves it as a static website.
type Publisher struct {
	store         ObjectStore
	bucket        string
	region        string
	prefix        string
	websiteDomain string

	exclude       []string
	detectContent bool
}

type Option func(*Publisher)

// WithExclude skips local files matching any of the glob patterns.
func WithExclude(patterns ...string) Option {
	return func(p *Publisher) {
		p.exclude = append(p.exclude, patterns...)
	}
}

// WithContentDetection sniffs files that match no content type rule.
func WithContentDetection(enabled bool) Option {
	return func(p *Publisher) {
		p.detectContent = enabled
	}
}

func New(store ObjectStore, settings config.Settings, opts ...Option) *Publisher {
	p := &Publisher{
		store:         store,
		bucket:        settings.Bucket,
		region:        settings.Region,
		prefix:        settings.Prefix,
		websiteDomain: settings.WebsiteDomain,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.prefix != "" && !strings.HasSuffix(p.prefix, "/") {
		log.Warn().
			Str("prefix", p.prefix).
			Msg("Site prefix does not end with /, keys and URL will be joined without a separator")
	}

	return p
}

// URL returns the website address of the configured prefix.
func (p *Publisher) URL() string {
	return WebsiteURL(p.bucket, p.region, p.websiteDomain, p.prefix)
}

// SyncAndPublish deletes every object under the prefix, uploads the files of
// localFolder in their place and enables static website hosting. It returns
// the website URL.
//
// Local problems are reported as *ValidationError before the bucket is
// touched. Remote failures stop the run immediately and are reported as
// *PhaseError; what was already changed stays changed.
func (p *Publisher) SyncAndPublish(ctx context.Context, localFolder string) (string, error) {
	telemetry.PublishRuns.Add(ctx, 1, p.attributes())

	url, err := p.run(ctx, localFolder)
	if err != nil {
		phase := "validate"
		var pErr *PhaseError
		if errors.As(err, &pErr) {
			phase = string(pErr.Phase)
		}

		telemetry.PublishErrors.Add(ctx, 1, p.attributes(
			attribute.KeyValue{
				Key:   "phase",
				Value: attribute.StringValue(phase),
			},
		))

		log.Error().
			Err(err).
			Str("folder", localFolder).
			Str("bucket", p.bucket).
			Str("prefix", p.prefix).
			Str("phase", phase).
			Msg("Failed to publish site")

		return "", err
	}

	log.Info().
		Str("folder", localFolder).
		Str("url", url).
		Msg("Site published")

	return url, nil
}

func (p *Publisher) run(ctx context.Context, localFolder string) (string, error) {
	if err := validateFolder(localFolder); err != nil {
		return "", err
	}

	files, err := LocalFiles(localFolder, p.exclude)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return "", err
		}

		return "", &ValidationError{Folder: localFolder, Err: err}
	}

	telemetry.SiteFiles.Record(ctx, int64(len(files)), p.attributes())

	// Delete phase.
	keys, err := p.store.ListObjects(ctx, p.prefix)
	if err != nil {
		return "", &PhaseError{Phase: PhaseDelete, Err: err}
	}

	log.Info().
		Str("bucket", p.bucket).
		Str("prefix", p.prefix).
		Int("objects", len(keys)).
		Msg("Removing previous site objects")

	mutated := false
	for _, key := range keys {
		if err := p.store.DeleteObject(ctx, key); err != nil {
			return "", &PhaseError{Phase: PhaseDelete, Key: key, Partial: mutated, Err: err}
		}

		mutated = true
		telemetry.DeletedObjects.Add(ctx, 1, p.attributes())
	}

	// Upload phase.
	log.Info().
		Str("folder", localFolder).
		Int("files", len(files)).
		Msg("Uploading site files")

	for _, file := range files {
		key := file.RemoteKey(p.prefix)

		if err := p.store.UploadFile(ctx, file.AbsolutePath, key, detectContentType(file.AbsolutePath, p.detectContent)); err != nil {
			return "", &PhaseError{Phase: PhaseUpload, Key: key, Partial: mutated, Err: err}
		}

		mutated = true
		telemetry.UploadedObjects.Add(ctx, 1, p.attributes())
	}

	// Configure phase.
	if err := p.store.ConfigureWebsiteHosting(ctx, p.prefix); err != nil {
		return "", &PhaseError{Phase: PhaseConfigure, Partial: mutated || hostingPartlyConfigured(err), Err: err}
	}

	return p.URL(), nil
}

// hostingPartlyConfigured reports whether a hosting step succeeded before err.
func hostingPartlyConfigured(err error) bool {
	var sErr *storage.Error
	if errors.As(err, &sErr) {
		return sErr.Op != "PutBucketWebsite"
	}

	return false
}

func (p *Publisher) attributes(extra ...attribute.KeyValue) metric.MeasurementOption {
	kv := append([]attribute.KeyValue{
		{
			Key:   "bucket",
			Value: attribute.StringValue(p.bucket),
		},
	}, extra...)

	return metric.WithAttributes(kv...)
}
