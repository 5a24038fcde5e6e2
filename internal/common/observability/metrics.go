// internal/common/observability/metrics.go
package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Observability owns the otel meter and tracer providers. Meter readings are
// exported through the Prometheus registry given to New.
type Observability struct {
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
	jobCounter     otelmetric.Int64Counter
	jobDuration    otelmetric.Float64Histogram
}

// New registers the exporter on reg. Span processors are optional; without
// one spans are created but not exported.
func New(serviceName string, reg prometheus.Registerer, processors ...sdktrace.SpanProcessor) (*Observability, error) {
	exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(meterProvider)

	traceOpts := make([]sdktrace.TracerProviderOption, 0, len(processors))
	for _, p := range processors {
		traceOpts = append(traceOpts, sdktrace.WithSpanProcessor(p))
	}
	tracerProvider := sdktrace.NewTracerProvider(traceOpts...)
	otel.SetTracerProvider(tracerProvider)

	meter := meterProvider.Meter(serviceName)

	jobCounter, err := meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	)
	if err != nil {
		return nil, err
	}

	jobDuration, err := meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Observability{
		meterProvider:  meterProvider,
		tracerProvider: tracerProvider,
		tracer:         tracerProvider.Tracer(serviceName),
		jobCounter:     jobCounter,
		jobDuration:    jobDuration,
	}, nil
}

// StartJobSpan opens a span named after the task type.
func (o *Observability) StartJobSpan(ctx context.Context, taskType string, jobKey, processInstanceKey int64) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, taskType,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("job.type", taskType),
			attribute.Int64("job.key", jobKey),
			attribute.Int64("process.instance.key", processInstanceKey),
		),
	)
}

func (o *Observability) RecordJob(ctx context.Context, taskType string, duration time.Duration) {
	attrs := otelmetric.WithAttributes(attribute.String("task_type", taskType))
	o.jobCounter.Add(ctx, 1, attrs)
	o.jobDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if err := o.tracerProvider.Shutdown(ctx); err != nil {
		return err
	}
	return o.meterProvider.Shutdown(ctx)
}
