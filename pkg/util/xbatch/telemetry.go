package xbatch

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/omeyang/ipv6calc/pkg/util/xbatch"

	metricCalculations = "ipv6calc.batch.calculations"
	metricDuration     = "ipv6calc.batch.duration"

	spanCalculateAll = "xbatch.CalculateAll"
)

// 计算结果取值，作为 result 属性。
const (
	resultOK       = "ok"
	resultCacheHit = "cache_hit"
	resultInvalid  = "invalid"
)

// 属性 key。
const (
	attrResult    = attribute.Key("result")
	attrBatchSize = attribute.Key("ipv6calc.batch.size")
	attrInvalid   = attribute.Key("ipv6calc.batch.invalid")
)

// WithMeterProvider 设置 MeterProvider，默认使用 otel 全局 provider。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(o *options) {
		if provider != nil {
			o.meterProvider = provider
		}
	}
}

// WithTracerProvider 设置 TracerProvider，默认使用 otel 全局 provider。
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(o *options) {
		if provider != nil {
			o.tracerProvider = provider
		}
	}
}

// telemetry 批量计算的指标与追踪。
type telemetry struct {
	tracer       trace.Tracer
	calculations metric.Int64Counter
	duration     metric.Float64Histogram
}

func newTelemetry(mp metric.MeterProvider, tp trace.TracerProvider) (*telemetry, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	meter := mp.Meter(instrumentationName)

	calculations, err := meter.Int64Counter(
		metricCalculations,
		metric.WithDescription("CIDR calculations by result"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("xbatch: create counter failed: %w", err)
	}

	duration, err := meter.Float64Histogram(
		metricDuration,
		metric.WithDescription("batch calculation duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("xbatch: create histogram failed: %w", err)
	}

	return &telemetry{
		tracer:       tp.Tracer(instrumentationName),
		calculations: calculations,
		duration:     duration,
	}, nil
}

// count 记录一次单项计算。
func (t *telemetry) count(ctx context.Context, result string) {
	t.calculations.Add(ctx, 1, metric.WithAttributes(attrResult.String(result)))
}

// startBatch 开始一次批量计算，返回的函数结束 span 并记录耗时。
func (t *telemetry) startBatch(ctx context.Context, size int) (context.Context, func(invalid int, err error)) {
	start := time.Now()
	ctx, span := t.tracer.Start(ctx, spanCalculateAll,
		trace.WithAttributes(attrBatchSize.Int(size)),
	)

	return ctx, func(invalid int, err error) {
		t.duration.Record(ctx, time.Since(start).Seconds())
		span.SetAttributes(attrInvalid.Int(invalid))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
