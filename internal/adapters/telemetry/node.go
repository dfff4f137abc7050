package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/spvbuild/internal/adapters/linear"
	"go.trai.ch/spvbuild/internal/core/ports"
)

// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

// InstrumentationName names the tracer spans are created with.
const InstrumentationName = "spvbuild"

func init() {
	graft.Register(graft.Node[*OTelTracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{linear.NodeID},
		Run: func(ctx context.Context) (*OTelTracer, error) {
			renderer, err := graft.Dep[ports.Renderer](ctx)
			if err != nil {
				return nil, err
			}
			return NewOTelTracer(InstrumentationName, renderer), nil
		},
	})
}
