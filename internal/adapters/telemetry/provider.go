package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/spvbuild/internal/core/ports"
)

var _ ports.Tracer = (*OTelTracer)(nil)

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
// Spans are processed by a private TracerProvider whose only processor is a Bridge,
// so every span is rendered as a job and the global provider is left alone.
type OTelTracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	renderer ports.Renderer
}

// NewOTelTracer creates a new OTelTracer with the given instrumentation name.
// A nil renderer keeps spans but renders nothing.
func NewOTelTracer(name string, renderer ports.Renderer) *OTelTracer {
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewBridge(renderer)),
	)
	return &OTelTracer{
		provider: provider,
		tracer:   provider.Tracer(name),
		renderer: renderer,
	}
}

// Shutdown ends the provider and flushes the renderer.
func (t *OTelTracer) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, &OTelSpan{span: span, renderer: t.renderer}
}

// EmitPlan records the planned jobs on the current span and announces them to the renderer.
func (t *OTelTracer) EmitPlan(ctx context.Context, jobNames []string) {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("jobs", jobNames),
		))
	}

	if t.renderer != nil {
		t.renderer.OnPlanEmit(jobNames)
	}
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span     trace.Span
	renderer ports.Renderer
}

// End completes the span.
func (s *OTelSpan) End() {
	s.span.End()
}

// RecordError records an error for the span and marks it failed.
func (s *OTelSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}

// Write forwards compiler output to the renderer under this span's ID.
// Without a renderer the output is kept as a span event.
func (s *OTelSpan) Write(p []byte) (int, error) {
	if s.renderer == nil {
		s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
		return len(p), nil
	}

	data := make([]byte, len(p))
	copy(data, p)
	s.renderer.OnTaskLog(s.span.SpanContext().SpanID().String(), data)
	return len(p), nil
}
