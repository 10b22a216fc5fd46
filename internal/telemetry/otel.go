package telemetry

import (
	"context"
	"fmt"

	"github.com/Altinity/site-sync/config"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.uber.org/multierr"
)

// Start installs the meter provider and, for the prometheus exporter, serves
// the scrape endpoint. It blocks until ctx is canceled.
func Start(ctx context.Context) (err error) {
	logger := log.With().Str("component", "telemetry").Logger()
	ctx = logger.WithContext(ctx)

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithProcess(),
		resource.WithOS(),
		resource.WithHost(),
		resource.WithAttributes(
			attribute.String("service", "site-sync"),
			attribute.String("version", config.Version),
		),
	)
	if err != nil {
		return err
	}

	meterProvider, err := newMeterProvider(res)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Error creating meter provider")
		return err
	}
	defer func() {
		// The context is already canceled here; flush with a fresh one.
		err = multierr.Append(err, meterProvider.Shutdown(context.WithoutCancel(ctx)))
	}()
	otel.SetMeterProvider(meterProvider)

	if config.TelemetryMetricsExporter.String() != "prometheus" {
		<-ctx.Done()
		logger.Info().Msg("Stopping telemetry")
		return nil
	}

	if err := servePrometheus(ctx); err != nil {
		logger.Error().
			Err(err).
			Msg("Error in telemetry server")
		return err
	}

	logger.Info().Msg("Stopping telemetry")

	return nil
}

// newMeterProvider creates a new meter provider based on the configured metrics exporter.
func newMeterProvider(res *resource.Resource) (*metric.MeterProvider, error) {
	switch config.TelemetryMetricsExporter.String() {
	case "prometheus":
		exporter, err := prometheus.New(prometheus.WithNamespace(config.TelemetryMetricsNamespace.String()))
		if err != nil {
			return nil, err
		}
		return metric.NewMeterProvider(metric.WithReader(exporter), metric.WithResource(res)), nil
	case "stdout":
		exporter, err := stdoutmetric.New()
		if err != nil {
			return nil, err
		}
		return metric.NewMeterProvider(
			metric.WithReader(
				metric.NewPeriodicReader(exporter,
					metric.WithInterval(config.TelemetryMetricsStdoutInterval.Duration()))),
			metric.WithResource(res)), nil
	default:
		return nil, fmt.Errorf("unknown metrics exporter: %s", config.TelemetryMetricsExporter.String())
	}
}
