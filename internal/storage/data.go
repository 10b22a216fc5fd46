package storage

import (
	"context"
	"io"

	"github.com/Altinity/site-sync/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// dataCounter reports bytes read from f to telemetry as uploaded bytes. Bytes
// read again after a Seek back, as happens when a request is retried, are
// counted once.
type dataCounter struct {
	ctx    context.Context
	f      io.ReadSeeker
	bucket string

	pos     int64
	counted int64
}

func (s *dataCounter) Read(p []byte) (int, error) {
	n, err := s.f.Read(p)
	s.pos += int64(n)

	if s.pos > s.counted {
		telemetry.UploadedBytes.Add(s.ctx, s.pos-s.counted,
			metric.WithAttributes(
				attribute.KeyValue{
					Key:   "bucket",
					Value: attribute.StringValue(s.bucket),
				},
			),
		)
		s.counted = s.pos
	}

	return n, err
}

func (s *dataCounter) Seek(offset int64, whence int) (int64, error) {
	pos, err := s.f.Seek(offset, whence)
	if err == nil {
		s.pos = pos
	}

	return pos, err
}
