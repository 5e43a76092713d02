// Package otel wires the OpenTelemetry SDK for the roster binary.
package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Settings controls Setup. Tracing is opt-in: nothing is exported unless
// Enabled is set and Endpoint is non-empty.
type Settings struct {
	ServiceName string
	Endpoint    string
	Enabled     bool
}

// Setup initialises tracing and returns a tracer for command spans plus a
// shutdown function that flushes pending spans. When tracing is off the
// tracer is a no-op and no global provider is registered.
func Setup(ctx context.Context, s Settings) (trace.Tracer, func(context.Context) error, error) {
	noopShutdown := func(context.Context) error { return nil }
	if !s.Enabled || s.Endpoint == "" {
		return noop.NewTracerProvider().Tracer(s.ServiceName), noopShutdown, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(s.Endpoint))
	if err != nil {
		return nil, noopShutdown, err
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(s.ServiceName)))
	if err != nil {
		return nil, noopShutdown, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp.Tracer(s.ServiceName), tp.Shutdown, nil
}
