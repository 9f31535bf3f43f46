// Package orchestrator drives one schema generation run from ledger load to persistence.
package orchestrator

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/schemagen/internal/core/ports"
	"go.trai.ch/schemagen/internal/engine/assembler"
	"go.trai.ch/schemagen/internal/engine/ledger"
	"go.trai.ch/zerr"
)

// Orchestrator runs the generator state machine.
type Orchestrator struct {
	logger     ports.Logger
	tracer     ports.Tracer
	store      ports.LedgerStore
	digester   ports.Digester
	classpath  ports.ClasspathFactory
	scanner    ports.AnnotationScanner
	properties ports.PropertySource
	assembler  *assembler.Assembler
	engine     ports.SchemaEngine
}

// New creates a new Orchestrator.
func New(
	logger ports.Logger,
	tracer ports.Tracer,
	store ports.LedgerStore,
	digester ports.Digester,
	classpath ports.ClasspathFactory,
	scanner ports.AnnotationScanner,
	properties ports.PropertySource,
	asm *assembler.Assembler,
	engine ports.SchemaEngine,
) *Orchestrator {
	return &Orchestrator{
		logger:     logger,
		tracer:     tracer,
		store:      store,
		digester:   digester,
		classpath:  classpath,
		scanner:    scanner,
		properties: properties,
		assembler:  asm,
		engine:     engine,
	}
}

// Run executes one generation run. The ledger is only persisted when every step succeeded.
func (o *Orchestrator) Run(ctx context.Context, settings *domain.Settings) (*domain.Outcome, error) {
	runID := uuid.NewString()
	ctx, span := o.tracer.Start(ctx, "schemagen.run",
		ports.WithAttribute("run_id", runID),
		ports.WithAttribute("goal", string(settings.Goal)),
	)
	defer span.End()

	outcome := &domain.Outcome{Goal: settings.Goal, RunID: runID}

	if settings.Skip {
		o.logger.Info("execution of schemagen is skipped")
		outcome.Skipped = true
		outcome.Reason = domain.ReasonSkipRequested
		span.SetAttribute("skipped", true)
		return outcome, nil
	}

	state := o.newRunState(settings, outcome)
	defer state.close()

	if err := state.execute(ctx); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("skipped", outcome.Skipped)
	return outcome, nil
}

// Preview is the comparison a run would make, computed without generating or persisting anything.
type Preview struct {
	Persisted *domain.LedgerSnapshot
	Current   *domain.LedgerSnapshot
	Changes   []domain.LedgerChange
	Dirty     bool
	Recovered bool
}

// Preview tracks every input like Run does and stops at the decision.
func (o *Orchestrator) Preview(ctx context.Context, settings *domain.Settings) (*Preview, error) {
	outcome := &domain.Outcome{Goal: settings.Goal, RunID: uuid.NewString()}
	ctx, span := o.tracer.Start(ctx, "schemagen.preview", ports.WithAttribute("run_id", outcome.RunID))
	defer span.End()

	state := o.newRunState(settings, outcome)
	defer state.close()

	if err := state.prepare(ctx); err != nil {
		span.RecordError(err)
		return nil, err
	}

	dirty := state.ledger.FinalizeRun()
	state.transition(domain.StateDecided)
	return &Preview{
		Persisted: state.ledger.Persisted(),
		Current:   state.ledger.Current(),
		Changes:   state.ledger.Diff(),
		Dirty:     dirty,
		Recovered: state.ledger.Recovered(),
	}, nil
}

func (o *Orchestrator) newRunState(settings *domain.Settings, outcome *domain.Outcome) *runState {
	return &runState{
		o:        o,
		settings: settings,
		outcome:  outcome,
		runID:    outcome.RunID,
		ledger:   ledger.New(o.store, o.digester, o.logger, settings.LedgerPath),
	}
}

type runState struct {
	o        *Orchestrator
	settings *domain.Settings
	outcome  *domain.Outcome
	runID    string
	state    domain.RunState

	ledger   *ledger.Ledger
	base     ports.ClassResolver
	resolver ports.ClassResolver
	props    map[string]string
	classes  []string
}

// prepare runs every step up to the decision.
func (r *runState) prepare(ctx context.Context) error {
	steps := []struct {
		name string
		next domain.RunState
		fn   func(context.Context) error
	}{
		{"ledger.load", domain.StateLedgerLoaded, r.loadLedger},
		{"classpath.assemble", domain.StateClasspathAssembled, r.assembleClasspath},
		{"classes.scan", domain.StateScanned, r.scan},
		{"units.assemble", domain.StateUnitsAssembled, r.assembleUnits},
	}
	for _, step := range steps {
		if err := r.phase(ctx, step.name, step.next, step.fn); err != nil {
			return err
		}
	}
	return nil
}

func (r *runState) execute(ctx context.Context) error {
	if err := r.prepare(ctx); err != nil {
		return err
	}

	dirty := r.ledger.FinalizeRun()
	r.transition(domain.StateDecided)
	r.logChanges()

	if !dirty && !r.settings.Force {
		r.o.logger.Info("no changes detected: skipping schema generation")
		r.outcome.Skipped = true
		r.outcome.Reason = domain.ReasonUnchanged
		r.transition(domain.StateSkipped)
	} else {
		r.outcome.Reason = domain.ReasonChanged
		if !dirty {
			r.outcome.Reason = domain.ReasonForced
		}
		if err := r.phase(ctx, "schema.generate", domain.StateDelegated, r.delegate); err != nil {
			return err
		}
	}

	return r.phase(ctx, "ledger.save", domain.StatePersisted, r.persist)
}

func (r *runState) phase(ctx context.Context, name string, next domain.RunState, fn func(context.Context) error) error {
	ctx, span := r.o.tracer.Start(ctx, name, ports.WithAttribute("run_id", r.runID))
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, "run interrupted")
	}
	if err := fn(ctx); err != nil {
		span.RecordError(err)
		return err
	}
	r.transition(next)
	return nil
}

func (r *runState) transition(next domain.RunState) {
	r.o.logger.Debug("run " + r.runID + ": " + r.state.String() + " -> " + next.String())
	r.state = next
}

func (r *runState) close() {
	if r.base != nil {
		if err := r.base.Close(); err != nil {
			r.o.logger.Warn("failed to close classpath: " + err.Error())
		}
	}
	if r.state != domain.StateIdle {
		r.transition(domain.StateIdle)
	}
}

func (r *runState) loadLedger(_ context.Context) error {
	r.ledger.Load()
	if r.ledger.Recovered() {
		r.o.logger.Info("ledger was reset, schema will be regenerated")
	}
	return nil
}

// assembleClasspath builds the project classpath, merges the configuration and tracks it,
// then extends the classpath with dependency archives and extra entries.
func (r *runState) assembleClasspath(_ context.Context) error {
	s := r.settings

	builder := r.o.classpath.NewBuilder()
	builder.AddRoot(s.TestOutputDir, domain.ProvenanceTestOutput)
	builder.AddRoot(s.OutputDir, domain.ProvenanceBuildOutput)
	r.base = builder.Build()

	props, err := r.o.properties.Properties(s, r.base)
	if err != nil {
		return err
	}
	r.props = props
	r.trackProperties()

	if err := r.trackScript(); err != nil {
		return err
	}

	extra := r.o.classpath.NewBuilder()
	extra.AddDependencyArchives(dependencyScopes(s.Dependencies), s.Dependencies)
	extra.AddRoots(s.Classpath, domain.ProvenanceClasspath)
	r.resolver = r.base.WithAdditionalRoots(extra.Roots()...)
	return nil
}

func (r *runState) trackProperties() {
	execute := r.props[domain.PropExecute]
	if r.ledger.ObserveProperty(domain.PropExecute, execute) && execute == "true" {
		r.o.logger.Info(domain.PropExecute + " was switched on: forcing generation and execution of SQL")
		r.ledger.Touch()
	}

	r.ledger.ObserveProperty(domain.PropShowSQL, r.props[domain.PropShowSQL])

	keys := make([]string, 0, len(r.props))
	for key := range r.props {
		if key == domain.PropExecute || domain.UntrackedProperties[key] {
			continue
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if r.ledger.TrackProperty(key, r.props[key]) {
			r.o.logger.Debug("changed property " + key)
		}
	}
}

// trackScript fingerprints the script under the script property. A missing script is tracked
// as the current time so that it is always regenerated.
func (r *runState) trackScript() error {
	f, err := os.Open(r.settings.Script)
	if errors.Is(err, fs.ErrNotExist) {
		r.o.logger.Debug("script " + r.settings.Script + " does not exist")
		_, err = r.ledger.TrackArtifact(domain.PropScript, strings.NewReader(time.Now().String()))
		if err != nil {
			return zerr.With(domain.Classify(domain.ErrArtifactUnreadable, err), "path", r.settings.Script)
		}
		return nil
	}
	if err != nil {
		return zerr.With(domain.Classify(domain.ErrArtifactUnreadable, err), "path", r.settings.Script)
	}
	defer func() { _ = f.Close() }()

	if _, err := r.ledger.TrackArtifact(domain.PropScript, f); err != nil {
		return zerr.With(domain.Classify(domain.ErrArtifactUnreadable, err), "path", r.settings.Script)
	}
	return nil
}

func (r *runState) scan(ctx context.Context) error {
	s := r.settings

	var roots []domain.ClasspathRoot
	for _, root := range r.resolver.Roots() {
		switch root.Provenance {
		case domain.ProvenanceBuildOutput:
			if s.ScanClasses {
				roots = append(roots, root)
			}
		case domain.ProvenanceTestOutput:
			if s.ScanTestClasses {
				roots = append(roots, root)
			}
		case domain.ProvenanceDependency:
			if slices.ContainsFunc(s.ScanDependencies, func(scope string) bool {
				return strings.EqualFold(scope, root.Scope)
			}) {
				roots = append(roots, root)
			}
		case domain.ProvenanceClasspath:
		}
	}

	classes, err := r.o.scanner.Scan(ctx, roots, domain.AllMarkers)
	if err != nil {
		return err
	}
	r.classes = classes

	if len(r.classes) == 0 && len(s.Classes) == 0 && len(s.Mappings) == 0 {
		r.o.logger.Warn("no annotated classes found in directories and dependencies")
	}
	return nil
}

func (r *runState) assembleUnits(ctx context.Context) error {
	units, err := r.o.assembler.Assemble(ctx, r.resolver, r.ledger, assembler.Input{
		Classes:    r.classes,
		Managed:    r.settings.Classes,
		Mappings:   r.settings.Mappings,
		ProjectDir: r.settings.ProjectDir,
		SearchDirs: r.settings.ResourceDirs,
	})
	if err != nil {
		return err
	}
	r.outcome.Units = units
	return nil
}

func (r *runState) logChanges() {
	if r.ledger.Recovered() {
		return
	}
	for _, change := range r.ledger.Diff() {
		r.o.logger.Debug("changed " + string(change.Domain) + " " + change.Name + " (" + string(change.Kind) + ")")
	}
}

func (r *runState) delegate(ctx context.Context) error {
	s := r.settings

	if err := prepareScript(s.Script); err != nil {
		return err
	}

	report, err := r.o.engine.Generate(ctx, ports.SchemaRequest{
		Goal:       s.Goal,
		Units:      r.outcome.Units,
		Properties: r.props,
		Resolver:   r.resolver,
		Script:     s.Script,
		Execute:    s.Execute,
		ProjectDir: s.ProjectDir,
		Engine:     s.Engine,
	})
	if err != nil {
		return err
	}

	if report != nil {
		for _, ex := range report.Exceptions {
			msg := "schema engine reported: " + ex.Message
			if ex.Statement != "" {
				msg += " [" + ex.Statement + "]"
			}
			r.o.logger.Warn(msg)
		}
		r.outcome.Exceptions = report.Exceptions
	}

	return r.trackScript()
}

func (r *runState) persist(_ context.Context) error {
	written, err := r.ledger.Save()
	if err != nil {
		return err
	}
	r.outcome.LedgerWritten = written
	return nil
}

// prepareScript creates the parent directory of path and truncates the script.
func prepareScript(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrScriptPrepareFailed.Error()), "path", path)
	}
	if err := os.WriteFile(path, nil, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrScriptPrepareFailed.Error()), "path", path)
	}
	return nil
}

// dependencyScopes returns every distinct scope declared by deps.
func dependencyScopes(deps []domain.Dependency) []string {
	var scopes []string
	for _, dep := range deps {
		if !slices.Contains(scopes, dep.Scope) {
			scopes = append(scopes, dep.Scope)
		}
	}
	return scopes
}
