package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/schemagen/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// DigesterNodeID is the unique identifier for the digester Graft node.
	DigesterNodeID graft.ID = "adapter.fs.digester"
	// LocatorNodeID is the unique identifier for the file locator Graft node.
	LocatorNodeID graft.ID = "adapter.fs.locator"
)

func init() {
	// Walker Node (concrete implementation needed by the annotation scanner)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Digester]{
		ID:        DigesterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Digester, error) {
			return NewDigester(), nil
		},
	})

	graft.Register(graft.Node[ports.FileLocator]{
		ID:        LocatorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileLocator, error) {
			return NewLocator(), nil
		},
	})
}
