package batch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/spvbuild/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/spvbuild/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/spvbuild/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/spvbuild/internal/adapters/toolchain" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/spvbuild/internal/core/ports"
)

// NodeID is the unique identifier for the batch compiler Graft node.
const NodeID graft.ID = "engine.batch"

func init() {
	graft.Register(graft.Node[*Compiler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			toolchain.NodeID,
			fs.OutputDirNodeID,
			shell.NodeID,
			fs.VerifierNodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Compiler, error) {
			locator, err := graft.Dep[ports.ToolchainLocator](ctx)
			if err != nil {
				return nil, err
			}

			outputDir, err := graft.Dep[ports.OutputDir](ctx)
			if err != nil {
				return nil, err
			}

			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			verifier, err := graft.Dep[ports.Verifier](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[*telemetry.OTelTracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewCompiler(locator, outputDir, executor, verifier, tracer), nil
		},
	})
}
