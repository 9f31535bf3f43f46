package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/schemagen/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/schemagen/internal/core/ports"
)

// NodeID is the unique identifier for the configuration loader Graft node.
const NodeID graft.ID = "adapter.config_loader"

// PropertySourceNodeID is the unique identifier for the property source Graft node.
const PropertySourceNodeID graft.ID = "adapter.property_source"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[ports.PropertySource]{
		ID:        PropertySourceNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.PropertySource, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewPropertySource(log), nil
		},
	})
}
