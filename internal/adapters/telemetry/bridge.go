package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/spvbuild/internal/core/ports"
)

// sourceKey is the span attribute holding a job's shader source path.
const sourceKey attribute.Key = "shader.source"

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// Bridge is the span processor that turns compile-job spans into renderer events.
// Spans are handed over as they start and end; nothing is queued.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a Bridge feeding renderer. A nil renderer drops every span.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// OnStart announces the job named by the span.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	id, ok := b.jobID(s)
	if !ok {
		return
	}

	var parentID string
	if sc := trace.SpanContextFromContext(parent); sc.IsValid() {
		parentID = sc.SpanID().String()
	}
	b.renderer.OnTaskStart(id, parentID, s.Name(), s.StartTime())
}

// OnEnd reports the job result. An error status fails the job with its description.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	id, ok := b.jobID(s)
	if !ok {
		return
	}
	b.renderer.OnTaskComplete(id, s.EndTime(), jobError(s))
}

// ForceFlush is a no-op.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown flushes output the renderer still holds.
func (b *Bridge) Shutdown(_ context.Context) error {
	if b.renderer == nil {
		return nil
	}
	return b.renderer.Stop()
}

func (b *Bridge) jobID(s sdktrace.ReadOnlySpan) (string, bool) {
	if b.renderer == nil {
		return "", false
	}
	sc := s.SpanContext()
	if !sc.IsValid() {
		return "", false
	}
	return sc.SpanID().String(), true
}

// jobError converts an error status into the failure shown for the job.
func jobError(s sdktrace.ReadOnlySpan) error {
	status := s.Status()
	if status.Code != codes.Error {
		return nil
	}
	if status.Description != "" {
		return errors.New(status.Description)
	}
	for _, kv := range s.Attributes() {
		if kv.Key == sourceKey {
			return errors.New("compilation of " + kv.Value.AsString() + " failed")
		}
	}
	return errors.New("compilation failed")
}
