// Package app implements the application layer for schemagen.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/schemagen/internal/core/ports"
	"go.trai.ch/schemagen/internal/engine/ledger"
	"go.trai.ch/schemagen/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// Generator runs or previews a generation run for resolved settings.
type Generator interface {
	Run(ctx context.Context, settings *domain.Settings) (*domain.Outcome, error)
	Preview(ctx context.Context, settings *domain.Settings) (*orchestrator.Preview, error)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	generator    Generator
	store        ports.LedgerStore
	logger       ports.Logger
	getwd        func() (string, error)
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, generator Generator, store ports.LedgerStore, log ports.Logger) *App {
	return &App{
		configLoader: loader,
		generator:    generator,
		store:        store,
		logger:       log,
		getwd:        os.Getwd,
	}
}

// WithWorkingDir makes the App look for its configuration starting at dir.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	Force     bool
	Skip      bool
	NoExecute bool
}

// Run loads the configuration and performs one generation run.
func (a *App) Run(ctx context.Context, opts RunOptions) (*domain.Outcome, error) {
	settings, err := a.loadSettings()
	if err != nil {
		return nil, err
	}

	if opts.Force {
		settings.Force = true
	}
	if opts.Skip {
		settings.Skip = true
	}
	if opts.NoExecute {
		settings.Execute = false
	}

	outcome, err := a.generator.Run(ctx, settings)
	if err != nil {
		return nil, zerr.Wrap(err, "schema generation failed")
	}
	return outcome, nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Script bool
}

// Clean removes the ledger and, if requested, the generated script.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	settings, err := a.loadSettings()
	if err != nil {
		return err
	}

	var errs error

	a.logger.Info("removing ledger " + settings.LedgerPath)
	if err := a.store.Remove(settings.LedgerPath); err != nil {
		errs = errors.Join(errs, err)
	}

	if options.Script {
		a.logger.Info("removing script " + settings.Script)
		if err := os.Remove(settings.Script); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", settings.Script))
		}
	}

	return errs
}

// InspectOptions configuration for the Inspect method.
type InspectOptions struct {
	// Diff compares the persisted ledger with the inputs as they are now.
	Diff bool
}

// Inspect writes the persisted ledger, or its diff against the current inputs, to w.
func (a *App) Inspect(ctx context.Context, w io.Writer, options InspectOptions) error {
	settings, err := a.loadSettings()
	if err != nil {
		return err
	}

	if !options.Diff {
		snapshot, err := a.store.Load(settings.LedgerPath)
		if err != nil {
			return err
		}
		if snapshot == nil {
			_, err = fmt.Fprintf(w, "no ledger at %s\n", settings.LedgerPath)
			return err
		}
		for _, line := range ledger.Lines(snapshot) {
			if _, err := io.WriteString(w, line); err != nil {
				return err
			}
		}
		return nil
	}

	preview, err := a.generator.Preview(ctx, settings)
	if err != nil {
		return zerr.Wrap(err, "failed to compute ledger diff")
	}

	if !preview.Dirty {
		_, err = fmt.Fprintln(w, "ledger is up to date")
		return err
	}
	if preview.Recovered {
		if _, err := fmt.Fprintln(w, "persisted ledger is unusable and will be rewritten"); err != nil {
			return err
		}
	}

	return difflib.WriteUnifiedDiff(w, difflib.UnifiedDiff{
		A:        ledger.Lines(preview.Persisted),
		B:        ledger.Lines(preview.Current),
		FromFile: settings.LedgerPath,
		ToFile:   "current",
		Context:  1,
	})
}

func (a *App) loadSettings() (*domain.Settings, error) {
	cwd, err := a.getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to determine working directory")
	}

	settings, err := a.configLoader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return settings, nil
}
