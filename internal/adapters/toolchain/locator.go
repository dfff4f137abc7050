// Package toolchain locates the Vulkan SDK from the process environment.
package toolchain

import (
	"os"

	"go.trai.ch/spvbuild/internal/core/domain"
	"go.trai.ch/spvbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ToolchainLocator = (*EnvLocator)(nil)

// LookupFunc reads an environment variable. It matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// EnvLocator implements ports.ToolchainLocator using the VULKAN_SDK variable.
type EnvLocator struct {
	lookup LookupFunc
}

// NewEnvLocator creates a locator reading the process environment.
func NewEnvLocator() *EnvLocator {
	return NewEnvLocatorWithLookup(os.LookupEnv)
}

// NewEnvLocatorWithLookup creates a locator reading variables through lookup.
func NewEnvLocatorWithLookup(lookup LookupFunc) *EnvLocator {
	return &EnvLocator{lookup: lookup}
}

// Locate returns the SDK root named by VULKAN_SDK.
// An unset or empty variable is a configuration error.
func (l *EnvLocator) Locate() (domain.Toolchain, error) {
	root, ok := l.lookup(domain.ToolchainEnvVar)
	if !ok || root == "" {
		return domain.Toolchain{}, zerr.With(domain.ErrToolchainNotConfigured, "variable", domain.ToolchainEnvVar)
	}
	return domain.Toolchain{Root: root}, nil
}
