package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Instruments are created from the global meter provider, which delegates to
// the real one once Start installs it.
var meter = otel.Meter("site-sync")

var PublishRuns = must(meter.Int64Counter("publish_runs",
	metric.WithDescription("Total number of publish runs started"),
))

var PublishErrors = must(meter.Int64Counter("publish_errors",
	metric.WithDescription("Total number of failed publish runs, by phase"),
))

var DeletedObjects = must(meter.Int64Counter("deleted_objects",
	metric.WithDescription("Total number of objects deleted under the site prefix"),
))

var UploadedObjects = must(meter.Int64Counter("uploaded_objects",
	metric.WithDescription("Total number of files uploaded"),
))

var UploadedBytes = must(meter.Int64Counter("uploaded_bytes",
	metric.WithDescription("Total number of bytes uploaded"),
	metric.WithUnit("By"),
))

var SiteFiles = must(meter.Int64Gauge("site_files",
	metric.WithDescription("Number of files in the last published folder"),
))

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}

	return v
}
