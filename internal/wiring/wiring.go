// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/schemagen/internal/adapters/cas"
	_ "go.trai.ch/schemagen/internal/adapters/classfile"
	_ "go.trai.ch/schemagen/internal/adapters/classpath"
	_ "go.trai.ch/schemagen/internal/adapters/config"
	_ "go.trai.ch/schemagen/internal/adapters/engine"
	_ "go.trai.ch/schemagen/internal/adapters/fs"
	_ "go.trai.ch/schemagen/internal/adapters/logger"
	_ "go.trai.ch/schemagen/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/schemagen/internal/app"
	_ "go.trai.ch/schemagen/internal/engine/assembler"
	_ "go.trai.ch/schemagen/internal/engine/orchestrator"
)
