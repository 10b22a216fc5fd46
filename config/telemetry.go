package config

var (
	// region Telemetry.

	// TelemetryEnabled turns on publish metrics.
	TelemetryEnabled = NewKey("telemetry.enabled",
		WithDefaultValue(false),
		WithValidBool())

	// TelemetryMetricsExporter selects where metrics go: a Prometheus scrape
	// endpoint or periodic dumps to stdout.
	TelemetryMetricsExporter = NewKey("telemetry.metrics.exporter",
		WithDefaultValue("prometheus"),
		WithAllowedStrings([]string{"prometheus", "stdout"}))

	// TelemetryMetricsNamespace prefixes every exported metric name.
	TelemetryMetricsNamespace = NewKey("telemetry.metrics.namespace",
		WithDefaultValue("sitesync"),
		WithValidString())

	// TelemetryMetricsPrometheusAddress is the listen address of the scrape endpoint.
	TelemetryMetricsPrometheusAddress = NewKey("telemetry.metrics.prometheus.address",
		WithDefaultValue("127.0.0.1:9090"),
		WithValidNetHostPort())

	// TelemetryMetricsPrometheusPath is the HTTP path of the scrape endpoint.
	TelemetryMetricsPrometheusPath = NewKey("telemetry.metrics.prometheus.path",
		WithDefaultValue("/metrics"),
		WithValidURI())

	// TelemetryMetricsStdoutInterval is how often metrics are written to stdout.
	TelemetryMetricsStdoutInterval = NewKey("telemetry.metrics.stdout.interval",
		WithDefaultValue("5s"),
		WithValidDuration())

	// endregion.
)
