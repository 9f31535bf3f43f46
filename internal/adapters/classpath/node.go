package classpath

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/schemagen/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/schemagen/internal/core/ports"
)

// NodeID is the unique identifier for the classpath factory Graft node.
const NodeID graft.ID = "adapter.classpath"

func init() {
	graft.Register(graft.Node[ports.ClasspathFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ClasspathFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(log), nil
		},
	})
}
