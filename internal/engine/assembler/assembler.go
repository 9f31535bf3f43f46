// Package assembler resolves the mapping units handed to the schema engine.
package assembler

import (
	"context"
	"errors"
	"io"
	"os"
	"slices"

	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/schemagen/internal/core/ports"
	"go.trai.ch/zerr"
)

// Tracker records the fingerprint of every artifact that contributes a mapping unit.
type Tracker interface {
	TrackArtifact(name string, r io.Reader) (bool, error)
}

// Input lists the names to assemble for one run.
type Input struct {
	// Classes are discovered class names. Each must resolve to a class file.
	Classes []string
	// Managed are explicitly configured names. A managed name that is not a class is a package.
	Managed []string
	// Mappings are explicitly configured mapping-file references.
	Mappings []string
	// ProjectDir is the base for relative mapping-file paths.
	ProjectDir string
	// SearchDirs are the resource directories searched for mapping files, in order.
	SearchDirs []string
}

// Assembler turns class names and mapping-file references into mapping units.
type Assembler struct {
	locator ports.FileLocator
	logger  ports.Logger
}

// New creates a new Assembler.
func New(locator ports.FileLocator, logger ports.Logger) *Assembler {
	return &Assembler{locator: locator, logger: logger}
}

// Assemble tracks every contributor through tracker and returns the units ordered as
// classes, packages, then files. Unreadable required artifacts and unresolvable mapping
// files are hard errors.
func (a *Assembler) Assemble(
	ctx context.Context,
	resolver ports.ClassResolver,
	tracker Tracker,
	in Input,
) ([]domain.MappingUnit, error) {
	run := &assembly{
		Assembler: a,
		resolver:  resolver,
		tracker:   tracker,
		processed: make(map[string]struct{}),
	}

	discovered := make(map[string]struct{}, len(in.Classes))
	for _, name := range in.Classes {
		discovered[name] = struct{}{}
	}

	names := slices.Concat(in.Classes, in.Managed)
	slices.Sort(names)
	names = slices.Compact(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, zerr.Wrap(err, "assembly interrupted")
		}
		_, required := discovered[name]
		if err := run.addAnnotated(name, !required); err != nil {
			return nil, err
		}
	}

	for _, ref := range in.Mappings {
		if err := run.addMappingFile(ref, in.ProjectDir, in.SearchDirs); err != nil {
			return nil, err
		}
	}

	units := make([]domain.MappingUnit, 0, len(run.classes)+len(run.packages)+len(run.files))
	units = append(units, run.classes...)
	units = append(units, run.packages...)
	units = append(units, run.files...)
	return units, nil
}

// assembly is the state of a single Assemble call.
type assembly struct {
	*Assembler
	resolver  ports.ClassResolver
	tracker   Tracker
	processed map[string]struct{}

	classes  []domain.MappingUnit
	packages []domain.MappingUnit
	files    []domain.MappingUnit
}

func (r *assembly) addAnnotated(name string, mayBePackage bool) error {
	rc, err := r.resolver.OpenClass(name)
	switch {
	case errors.Is(err, domain.ErrClassNotFound) && mayBePackage:
		r.logger.Debug(name + " is not a class, treating it as a package")
		return r.walkPackages(name)
	case err != nil:
		return zerr.With(domain.Classify(domain.ErrArtifactUnreadable, err), "class", name)
	}

	changed, err := r.track(name, rc)
	if err != nil {
		return zerr.With(err, "class", name)
	}
	r.logChange("class", name, changed)
	r.classes = append(r.classes, domain.AnnotatedClass(name))

	pkg, ok := domain.ParentPackage(name)
	if !ok {
		return nil
	}
	return r.walkPackages(pkg)
}

// walkPackages visits pkg and its ancestors innermost-first until it reaches a
// package already processed in this call.
func (r *assembly) walkPackages(pkg string) error {
	for pkg != "" {
		if _, done := r.processed[pkg]; done {
			return nil
		}
		r.processed[pkg] = struct{}{}

		if err := r.addPackage(pkg); err != nil {
			return err
		}

		parent, ok := domain.ParentPackage(pkg)
		if !ok {
			break
		}
		pkg = parent
	}
	return nil
}

func (r *assembly) addPackage(pkg string) error {
	resource := domain.PackageInfoResourceName(pkg)
	rc, err := r.resolver.OpenResource(resource)
	switch {
	case errors.Is(err, domain.ErrResourceNotFound):
		r.logger.Debug("package " + pkg + " is not annotated")
		return nil
	case err != nil:
		return zerr.With(domain.Classify(domain.ErrArtifactUnreadable, err), "package", pkg)
	}

	changed, err := r.track(pkg, rc)
	if err != nil {
		return zerr.With(err, "package", pkg)
	}
	r.logChange("package", pkg, changed)
	r.logger.Info("adding annotations from package " + pkg)
	r.packages = append(r.packages, domain.AnnotatedPackage(pkg))
	return nil
}

func (r *assembly) addMappingFile(ref, baseDir string, searchDirs []string) error {
	path, err := r.locator.Locate(ref, baseDir, searchDirs)
	if err != nil {
		return err
	}

	// #nosec G304 -- path was resolved from the project configuration
	f, err := os.Open(path)
	if err != nil {
		return zerr.With(domain.Classify(domain.ErrArtifactUnreadable, err), "file", path)
	}

	changed, err := r.track(ref, f)
	if err != nil {
		return zerr.With(err, "file", path)
	}
	r.logChange("mapping file", ref, changed)
	r.files = append(r.files, domain.MappingFile(ref, path))
	return nil
}

// track fingerprints rc under name and closes it.
func (r *assembly) track(name string, rc io.ReadCloser) (bool, error) {
	defer func() { _ = rc.Close() }()

	changed, err := r.tracker.TrackArtifact(name, rc)
	if err != nil {
		return false, domain.Classify(domain.ErrArtifactUnreadable, err)
	}
	return changed, nil
}

func (r *assembly) logChange(kind, name string, changed bool) {
	if changed {
		r.logger.Debug("new or modified " + kind + ": " + name)
		return
	}
	r.logger.Debug("unchanged " + kind + ": " + name)
}
