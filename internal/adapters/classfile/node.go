package classfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/schemagen/internal/adapters/fs"     //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/schemagen/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/schemagen/internal/core/ports"
)

// NodeID is the unique identifier for the annotation scanner Graft node.
const NodeID graft.ID = "adapter.annotation_scanner"

func init() {
	graft.Register(graft.Node[ports.AnnotationScanner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.AnnotationScanner, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewScanner(walker, log), nil
		},
	})
}
