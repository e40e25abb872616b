package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/gatei-njuri/cocoa-analysis/internal/config"
)

// TracerName identifies spans produced by the report pipeline
const TracerName = "github.com/gatei-njuri/cocoa-analysis"

// Tracing holds the tracer used by the pipeline and the provider behind it.
type Tracing struct {
	Tracer   trace.Tracer
	provider *sdktrace.TracerProvider
}

// InitializeTracing sets up OpenTelemetry tracing. When telemetry is
// disabled the returned Tracer is a no-op. Spans are exported synchronously
// to w, since a run ends as soon as the last step does.
func InitializeTracing(cfg config.TelemetryConfig, w io.Writer, logger *slog.Logger) (*Tracing, error) {
	exporterName := strings.ToLower(cfg.Exporter)
	if !cfg.Enabled || exporterName == "none" {
		return &Tracing{Tracer: noop.NewTracerProvider().Tracer(TracerName)}, nil
	}

	if exporterName != "stdout" {
		return nil, fmt.Errorf("unsupported trace exporter: %s", cfg.Exporter)
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(config.AppName),
		semconv.ServiceVersion(config.AppVersion),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	logger.Debug("Tracing initialized", slog.String("exporter", exporterName))

	return &Tracing{
		Tracer:   tp.Tracer(TracerName, trace.WithInstrumentationVersion(config.AppVersion)),
		provider: tp,
	}, nil
}

// Shutdown flushes and stops the tracer provider, if any
func (t *Tracing) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanAttributes sets string attributes on the current span
func SetSpanAttributes(ctx context.Context, attributes map[string]string) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		attrs = append(attrs, attribute.String(k, v))
	}
	span.SetAttributes(attrs...)
}
