package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func uploadedBytes(t *testing.T, reader *sdkmetric.ManualReader) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "uploaded_bytes" {
				continue
			}

			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}

	return total
}

func TestDataCounter(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))

	before := uploadedBytes(t, reader)

	counter := &dataCounter{
		ctx:    context.Background(),
		f:      strings.NewReader("test data"),
		bucket: testBucket,
	}

	buf := make([]byte, 4)
	n, err := counter.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, int64(4), uploadedBytes(t, reader)-before)

	pos, err := counter.Seek(0, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos)

	rest, err := io.ReadAll(counter)
	require.NoError(t, err)
	assert.Equal(t, "test data", string(rest))
	assert.Equal(t, int64(9), uploadedBytes(t, reader)-before)

	n, err = counter.Read(buf)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
}

func TestDataCounter_RetryCountsOnce(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))

	before := uploadedBytes(t, reader)

	counter := &dataCounter{
		ctx:    context.Background(),
		f:      strings.NewReader("0123456789"),
		bucket: testBucket,
	}

	buf := make([]byte, 6)
	_, err := counter.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(6), uploadedBytes(t, reader)-before)

	// A retried request rewinds and sends the body again.
	for range 3 {
		_, err = counter.Seek(0, io.SeekStart)
		require.NoError(t, err)

		b, err := io.ReadAll(counter)
		require.NoError(t, err)
		assert.Equal(t, "0123456789", string(b))
	}

	assert.Equal(t, int64(10), uploadedBytes(t, reader)-before)

	_, err = counter.Seek(4, io.SeekStart)
	require.NoError(t, err)
	_, err = counter.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(10), uploadedBytes(t, reader)-before)
}
