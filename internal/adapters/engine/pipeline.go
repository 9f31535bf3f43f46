package engine

import (
	"context"

	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/schemagen/internal/core/ports"
)

// Executor applies a generated script.
type Executor interface {
	Execute(ctx context.Context, req ports.SchemaRequest) ([]domain.SchemaException, error)
}

// Pipeline implements ports.SchemaEngine as a generator followed by an executor.
type Pipeline struct {
	generator ports.SchemaEngine
	executor  Executor
}

// NewPipeline creates a new Pipeline.
func NewPipeline(generator ports.SchemaEngine, executor Executor) *Pipeline {
	return &Pipeline{generator: generator, executor: executor}
}

// Generate runs the generator and, when requested, executes the produced script.
// Exceptions of both stages are merged into one report.
func (p *Pipeline) Generate(ctx context.Context, req ports.SchemaRequest) (*domain.SchemaReport, error) {
	report, err := p.generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if report == nil {
		report = &domain.SchemaReport{}
	}

	if !req.Execute || p.executor == nil {
		return report, nil
	}

	exceptions, err := p.executor.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	report.Exceptions = append(report.Exceptions, exceptions...)

	return report, nil
}
