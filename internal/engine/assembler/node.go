package assembler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/schemagen/internal/adapters/fs"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/schemagen/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/schemagen/internal/core/ports"
)

// NodeID is the unique identifier for the assembler Graft node.
const NodeID graft.ID = "engine.assembler"

func init() {
	graft.Register(graft.Node[*Assembler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.LocatorNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Assembler, error) {
			locator, err := graft.Dep[ports.FileLocator](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(locator, log), nil
		},
	})
}
