package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/schemagen/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/schemagen/internal/core/ports"
)

// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

// InstrumentationName names the tracer of the generator.
const InstrumentationName = "schemagen"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewOTelTracer(InstrumentationName, NewDurationProcessor(log)), nil
		},
	})
}
