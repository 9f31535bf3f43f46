package ports

import (
	"context"

	"go.trai.ch/schemagen/internal/core/domain"
)

// SchemaRequest is everything the schema engine needs for one invocation.
type SchemaRequest struct {
	Goal       domain.Goal
	Units      []domain.MappingUnit
	Properties map[string]string
	Resolver   ClassResolver
	Script     string
	Execute    bool
	ProjectDir string
	Engine     domain.EngineSettings
}

// SchemaEngine generates a schema script and optionally applies it.
//
//go:generate go run go.uber.org/mock/mockgen -source=schema_engine.go -destination=mocks/mock_schema_engine.go -package=mocks
type SchemaEngine interface {
	// Generate runs the engine. Non-fatal problems are reported in the returned report.
	Generate(ctx context.Context, req SchemaRequest) (*domain.SchemaReport, error)
}
