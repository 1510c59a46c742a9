package xbatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// newTestMeterProvider 创建用于测试的 MeterProvider
func newTestMeterProvider(t *testing.T) (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return mp, reader
}

// newTestTracerProvider 创建用于测试的 TracerProvider
func newTestTracerProvider(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, sr
}

// counterByResult 读取 calculations 计数器，按 result 属性分组。
func counterByResult(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	got := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != metricCalculations {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "unexpected data type %T", m.Data)
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(attrResult)
				got[v.AsString()] += dp.Value
			}
		}
	}
	return got
}

func TestTelemetry_Counters(t *testing.T) {
	mp, reader := newTestMeterProvider(t)

	c, err := New(Config{Workers: 1, CacheSize: 8}, WithMeterProvider(mp))
	require.NoError(t, err)

	_, err = c.CalculateAll(context.Background(), []string{"::/0", "::/0", "::/129", "fe80::/10"})
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{
		resultOK:       2,
		resultCacheHit: 1,
		resultInvalid:  1,
	}, counterByResult(t, reader))
}

func TestTelemetry_DurationHistogram(t *testing.T) {
	mp, reader := newTestMeterProvider(t)

	c, err := New(Config{Workers: 2}, WithMeterProvider(mp))
	require.NoError(t, err)
	for range 3 {
		_, err := c.CalculateAll(context.Background(), []string{"::1/128"})
		require.NoError(t, err)
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var found bool
	for _, sm := range rm.ScopeMetrics {
		assert.Equal(t, instrumentationName, sm.Scope.Name)
		for _, m := range sm.Metrics {
			if m.Name != metricDuration {
				continue
			}
			found = true
			hist, ok := m.Data.(metricdata.Histogram[float64])
			require.True(t, ok)
			require.Len(t, hist.DataPoints, 1)
			assert.Equal(t, uint64(3), hist.DataPoints[0].Count)
		}
	}
	assert.True(t, found, "duration histogram not recorded")
}

func TestTelemetry_Span(t *testing.T) {
	tp, sr := newTestTracerProvider(t)

	c, err := New(Config{Workers: 2}, WithTracerProvider(tp))
	require.NoError(t, err)

	_, err = c.CalculateAll(context.Background(), []string{"::/0", "bogus", "::/300"})
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, spanCalculateAll, span.Name())
	assert.Equal(t, codes.Unset, span.Status().Code)

	attrs := attribute.NewSet(span.Attributes()...)
	size, ok := attrs.Value(attrBatchSize)
	require.True(t, ok)
	assert.Equal(t, int64(3), size.AsInt64())
	invalid, ok := attrs.Value(attrInvalid)
	require.True(t, ok)
	assert.Equal(t, int64(2), invalid.AsInt64())
}

func TestTelemetry_SpanOnCancel(t *testing.T) {
	tp, sr := newTestTracerProvider(t)

	c, err := New(Config{Workers: 1}, WithTracerProvider(tp))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.CalculateAll(ctx, []string{"::/0"})
	require.ErrorIs(t, err, context.Canceled)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.NotEmpty(t, spans[0].Events())
}

func TestTelemetry_NilProvidersUseGlobal(t *testing.T) {
	c, err := New(Config{Workers: 1}, WithMeterProvider(nil), WithTracerProvider(nil))
	require.NoError(t, err)

	_, err = c.CalculateAll(context.Background(), []string{"::/0"})
	require.NoError(t, err)
}
