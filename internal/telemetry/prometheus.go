package telemetry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/Altinity/site-sync/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// servePrometheus runs the metrics endpoint until ctx is canceled.
func servePrometheus(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	address := config.TelemetryMetricsPrometheusAddress.String()
	path := config.TelemetryMetricsPrometheusPath.String()

	logger.Info().Str("address", address).Str("path", path).Msg("Starting Prometheus server")

	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())

	server := &http.Server{
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Error shutting down Prometheus server")
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
