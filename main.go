package sitesync

import (
	"context"
	"errors"

	"github.com/Altinity/site-sync/config"
	"github.com/Altinity/site-sync/internal/form"
	"github.com/Altinity/site-sync/internal/publish"
	"github.com/Altinity/site-sync/internal/storage"
	"github.com/Altinity/site-sync/internal/telemetry"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// NewPublisher builds a publisher for the configured bucket and prefix.
func NewPublisher(ctx context.Context) (*publish.Publisher, error) {
	settings := config.LoadSettings()

	client, err := storage.New(ctx, settings, storage.UploadOptions{
		PartSize:    config.SyncUploadPartSize.Int64(),
		Concurrency: config.SyncUploadConcurrency.Int(),
	})
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("bucket", settings.Bucket).
		Str("prefix", settings.Prefix).
		Str("region", settings.Region).
		Str("endpoint", settings.Endpoint).
		Msg("Storage client ready")

	return publish.New(client, settings,
		publish.WithExclude(config.SyncExclude.StringSlice()...),
		publish.WithContentDetection(config.SyncDetectContentType.Bool()),
	), nil
}

// Run shows the terminal form until the user quits or ctx is canceled.
func Run(ctx context.Context) error {
	p, err := NewPublisher(ctx)
	if err != nil {
		return err
	}

	return withTelemetry(ctx, config.TelemetryEnabled.Bool(), func(ctx context.Context) error {
		ctrl := form.NewController(p, form.WithFolder(config.SiteFolder.String()))

		prog := tea.NewProgram(form.NewModel(ctx, ctrl),
			tea.WithAltScreen(),
			tea.WithContext(ctx),
		)

		if _, err := prog.Run(); err != nil {
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				return nil
			}
			return err
		}

		return nil
	})
}

// PublishOnce publishes folder without the form and returns the website URL.
func PublishOnce(ctx context.Context, folder string) (string, error) {
	p, err := NewPublisher(ctx)
	if err != nil {
		return "", err
	}

	var url string
	err = withTelemetry(ctx, headlessTelemetry(), func(ctx context.Context) error {
		var err error
		url, err = p.SyncAndPublish(ctx, folder)
		return err
	})

	return url, err
}

// headlessTelemetry reports whether a one-shot publish should export metrics.
// A scrape endpoint would be gone before anything could scrape it, so only the
// stdout exporter, which flushes on shutdown, is started.
func headlessTelemetry() bool {
	if !config.TelemetryEnabled.Bool() {
		return false
	}

	if config.TelemetryMetricsExporter.String() == "prometheus" {
		log.Debug().Msg("Prometheus exporter is not started for a one-shot publish")
		return false
	}

	return true
}

// withTelemetry runs fn next to the telemetry exporter, when enabled, and
// stops the exporter once fn returns.
func withTelemetry(ctx context.Context, enabled bool, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	if enabled {
		g.Go(func() error {
			if err := telemetry.Start(gctx); err != nil {
				log.Error().
					Err(err).
					Msg("Failed to start telemetry")
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		defer cancel()
		return fn(gctx)
	})

	return g.Wait()
}
