package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/spvbuild/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/spvbuild/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/spvbuild/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/spvbuild/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/spvbuild/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/spvbuild/internal/core/ports"
	"go.trai.ch/spvbuild/internal/engine/batch"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			batch.NodeID,
			fs.OutputDirNodeID,
			fs.HasherNodeID,
			logger.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	compiler, err := graft.Dep[*batch.Compiler](ctx)
	if err != nil {
		return nil, err
	}

	outputDir, err := graft.Dep[ports.OutputDir](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	newWatcher, err := graft.Dep[watcher.Factory](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, compiler, outputDir, hasher, log, newWatcher), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[*telemetry.OTelTracer](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, tracer.Shutdown), nil
}
