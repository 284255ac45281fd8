package pubsub

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "alphaprime-pubsub"

// TracingConfig holds configuration for OpenTelemetry tracing of the bus.
type TracingConfig struct {
	Enabled     bool
	ServiceName string
	ZipkinURL   string
}

// SetupOTel returns a tracer exporting to Zipkin, or a no-op tracer when
// tracing is disabled. The returned cleanup flushes pending spans.
func SetupOTel(ctx context.Context, cfg TracingConfig) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.Enabled {
		return noop.NewTracerProvider().Tracer(tracerName), func(context.Context) error { return nil }, nil
	}

	exporter, err := zipkin.New(cfg.ZipkinURL)
	if err != nil {
		return nil, nil, fmt.Errorf("create zipkin exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Tracer(tracerName), tp.Shutdown, nil
}

func startSpan(ctx context.Context, tracer trace.Tracer, op string, msg Message, id string) (context.Context, trace.Span) {
	return tracer.Start(ctx, fmt.Sprintf("pubsub.%s.%s", op, msg.Topic),
		trace.WithAttributes(
			attribute.String("messaging.system", "watermill"),
			attribute.String("messaging.operation", op),
			attribute.String("messaging.destination", msg.Topic),
			attribute.String("messaging.message_id", id),
			attribute.String("visitor.id", msg.VisitorID),
			attribute.Int("messaging.message_payload_size_bytes", len(msg.Payload)),
		),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
