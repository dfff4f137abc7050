// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/spvbuild/internal/core/domain"

// ToolchainLocator finds the shader compiler toolchain.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type ToolchainLocator interface {
	// Locate returns the toolchain installation.
	// It returns domain.ErrToolchainNotConfigured when no installation is configured.
	Locate() (domain.Toolchain, error)
}
