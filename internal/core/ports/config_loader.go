package ports

import "go.trai.ch/schemagen/internal/core/domain"

// ConfigLoader defines the interface for loading the generator configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration file starting at cwd and returns the resolved settings.
	Load(cwd string) (*domain.Settings, error)
}

// PropertySource supplies the merged persistence configuration of a run.
type PropertySource interface {
	// Properties merges the properties file, the configured map and the explicit overrides.
	// The resolver is consulted for the default properties resource.
	Properties(settings *domain.Settings, resolver ClassResolver) (map[string]string, error)
}
