package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/spvbuild/internal/adapters/telemetry"
	"go.trai.ch/spvbuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBridge_SpanLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(mockRenderer)))
	tracer := tp.Tracer("test")

	var spanID string
	gomock.InOrder(
		mockRenderer.EXPECT().OnTaskStart(gomock.Any(), "", "shader2D.vert", gomock.Any()).
			Do(func(id, _, _ string, _ any) { spanID = id }),
		mockRenderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), nil).
			Do(func(id string, _ any, _ error) { assert.Equal(t, spanID, id) }),
	)

	_, span := tracer.Start(context.Background(), "shader2D.vert")
	span.End()
}

func TestBridge_ParentID(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(mockRenderer)))
	tracer := tp.Tracer("test")

	mockRenderer.EXPECT().OnTaskStart(gomock.Any(), "", "compile", gomock.Any())
	ctx, parent := tracer.Start(context.Background(), "compile")

	mockRenderer.EXPECT().OnTaskStart(gomock.Any(), parent.SpanContext().SpanID().String(), "shader3D.frag", gomock.Any())
	mockRenderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), nil).Times(2)

	_, child := tracer.Start(ctx, "shader3D.frag")
	child.End()
	parent.End()
}

func TestBridge_OnEndWithError(t *testing.T) {
	tests := []struct {
		name        string
		description string
		source      string
		want        string
	}{
		{name: "with description", description: "command failed: exit status 1", want: "command failed: exit status 1"},
		{name: "without description", description: "", want: "compilation failed"},
		{name: "names the source", description: "", source: "shaders/shader2D.frag", want: "compilation of shaders/shader2D.frag failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockRenderer := mocks.NewMockRenderer(ctrl)

			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(mockRenderer)))

			mockRenderer.EXPECT().OnTaskStart(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())
			mockRenderer.EXPECT().OnTaskComplete(gomock.Any(), gomock.Any(), gomock.Any()).
				Do(func(_ string, _ any, err error) {
					require.Error(t, err)
					assert.Equal(t, tt.want, err.Error())
				})

			_, span := tp.Tracer("test").Start(context.Background(), "shader2D.frag")
			if tt.source != "" {
				span.SetAttributes(attribute.String("shader.source", tt.source))
			}
			span.SetStatus(codes.Error, tt.description)
			span.End()
		})
	}
}

func TestBridge_NilRenderer(t *testing.T) {
	bridge := telemetry.NewBridge(nil)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))

	_, span := tp.Tracer("test").Start(context.Background(), "shader2D.vert")
	span.End()

	require.NoError(t, bridge.ForceFlush(context.Background()))
	require.NoError(t, tp.Shutdown(context.Background()))
}

func TestBridge_ShutdownStopsRenderer(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)
	mockRenderer.EXPECT().Stop().Return(nil).Times(1)

	require.NoError(t, telemetry.NewBridge(mockRenderer).Shutdown(context.Background()))
}
