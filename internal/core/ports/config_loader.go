package ports

import "go.trai.ch/spvbuild/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration rooted at the given directory.
	// A missing configuration file yields the default project.
	Load(root string) (*domain.Project, error)
}
