// Package main is the entry point for the schemagen tool.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/schemagen/cmd/schemagen/commands"
	"go.trai.ch/schemagen/internal/app"
	_ "go.trai.ch/schemagen/internal/wiring"
)

// componentsProvider initializes the application components and returns a cleanup function.
type componentsProvider func(ctx context.Context) (*app.Components, func(), error)

func main() {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, provideComponents)
	cancel()
	os.Exit(code)
}

func provideComponents(ctx context.Context) (*app.Components, func(), error) {
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		return nil, nil, err
	}
	return components, func() {
		_ = components.Tracer.Shutdown(context.Background())
	}, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, provide componentsProvider) int {
	// 1. Initialize application components
	components, cleanup, err := provide(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = io.WriteString(stderr, "Error: "+err.Error()+"\n")
		return 1
	}
	defer cleanup()

	// 2. Interface - CLI
	cli := commands.New(components.App, components.Logger)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}
