// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/spvbuild/internal/adapters/config"
	_ "go.trai.ch/spvbuild/internal/adapters/fs"
	_ "go.trai.ch/spvbuild/internal/adapters/linear"
	_ "go.trai.ch/spvbuild/internal/adapters/logger"
	_ "go.trai.ch/spvbuild/internal/adapters/shell"
	_ "go.trai.ch/spvbuild/internal/adapters/telemetry"
	_ "go.trai.ch/spvbuild/internal/adapters/toolchain"
	_ "go.trai.ch/spvbuild/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/spvbuild/internal/app"
	_ "go.trai.ch/spvbuild/internal/engine/batch"
)
