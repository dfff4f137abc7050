package toolchain

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/spvbuild/internal/core/ports"
)

// NodeID is the unique identifier for the toolchain locator Graft node.
const NodeID graft.ID = "adapter.toolchain"

func init() {
	graft.Register(graft.Node[ports.ToolchainLocator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.ToolchainLocator, error) {
			return NewEnvLocator(), nil
		},
	})
}
