package engine

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/schemagen/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/schemagen/internal/core/ports"
)

// NodeID is the unique identifier for the schema engine Graft node.
const NodeID graft.ID = "adapter.schema_engine"

func init() {
	graft.Register(graft.Node[ports.SchemaEngine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.SchemaEngine, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewPipeline(NewCommandEngine(log), NewScriptExecutor(log)), nil
		},
	})
}
