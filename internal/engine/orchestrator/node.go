package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/schemagen/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/schemagen/internal/adapters/classfile" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/schemagen/internal/adapters/classpath" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/schemagen/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/schemagen/internal/adapters/engine"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/schemagen/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/schemagen/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/schemagen/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/schemagen/internal/core/ports"
	"go.trai.ch/schemagen/internal/engine/assembler"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			telemetry.TracerNodeID,
			cas.NodeID,
			fs.DigesterNodeID,
			classpath.NodeID,
			classfile.NodeID,
			config.PropertySourceNodeID,
			assembler.NodeID,
			engine.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.LedgerStore](ctx)
			if err != nil {
				return nil, err
			}

			digester, err := graft.Dep[ports.Digester](ctx)
			if err != nil {
				return nil, err
			}

			factory, err := graft.Dep[ports.ClasspathFactory](ctx)
			if err != nil {
				return nil, err
			}

			scanner, err := graft.Dep[ports.AnnotationScanner](ctx)
			if err != nil {
				return nil, err
			}

			source, err := graft.Dep[ports.PropertySource](ctx)
			if err != nil {
				return nil, err
			}

			asm, err := graft.Dep[*assembler.Assembler](ctx)
			if err != nil {
				return nil, err
			}

			schemaEngine, err := graft.Dep[ports.SchemaEngine](ctx)
			if err != nil {
				return nil, err
			}

			return New(log, tracer, store, digester, factory, scanner, source, asm, schemaEngine), nil
		},
	})
}
