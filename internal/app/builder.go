package app

import (
	"context"

	"go.trai.ch/spvbuild/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App      *App
	Logger   ports.Logger
	shutdown func(context.Context) error
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger, shutdown func(context.Context) error) *Components {
	return &Components{
		App:      app,
		Logger:   logger,
		shutdown: shutdown,
	}
}

// Shutdown flushes any buffered output. It is safe to call on a nil receiver.
func (c *Components) Shutdown(ctx context.Context) error {
	if c == nil || c.shutdown == nil {
		return nil
	}
	return c.shutdown(ctx)
}
