// Package classpath assembles classpath roots and resolves classes and resources over them.
package classpath

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/schemagen/internal/core/ports"
)

var (
	_ ports.ClasspathBuilder = (*Builder)(nil)
	_ ports.ClasspathFactory = (*Factory)(nil)
)

// Factory creates classpath builders that report skipped entries to a logger.
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a new Factory.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger}
}

// NewBuilder returns an empty builder.
func (f *Factory) NewBuilder() ports.ClasspathBuilder {
	return NewBuilder(f.logger)
}

// Builder collects an insertion-ordered, de-duplicated list of classpath roots.
type Builder struct {
	logger ports.Logger
	roots  []domain.ClasspathRoot
	seen   map[string]bool
}

// NewBuilder creates an empty Builder.
func NewBuilder(logger ports.Logger) *Builder {
	return &Builder{
		logger: logger,
		seen:   make(map[string]bool),
	}
}

// AddRoot appends path unless it was added before. Malformed paths are skipped with a warning.
func (b *Builder) AddRoot(path string, provenance domain.Provenance) {
	b.add(path, provenance, "")
}

// AddRoots appends each path in order.
func (b *Builder) AddRoots(paths []string, provenance domain.Provenance) {
	for _, path := range paths {
		b.add(path, provenance, "")
	}
}

// AddDependencyArchives appends every candidate whose scope matches one of scopes, ignoring case.
// Candidates without a resolvable file are skipped with a warning.
func (b *Builder) AddDependencyArchives(scopes []string, candidates []domain.Dependency) {
	if len(scopes) == 0 {
		return
	}
	for _, dep := range candidates {
		if !matchesScope(dep.Scope, scopes) {
			continue
		}
		if dep.Path == "" {
			b.logger.Warn("dependency " + dep.ID + " has no resolved file, skipping")
			continue
		}
		if _, err := os.Stat(dep.Path); err != nil {
			b.logger.Warn("dependency " + dep.ID + " cannot be resolved, skipping: " + err.Error())
			continue
		}
		b.add(dep.Path, domain.ProvenanceDependency, dep.Scope)
	}
}

// Roots returns a copy of the collected roots.
func (b *Builder) Roots() []domain.ClasspathRoot {
	out := make([]domain.ClasspathRoot, len(b.roots))
	copy(out, b.roots)
	return out
}

// Build returns an immutable resolver over the collected roots.
func (b *Builder) Build() ports.ClassResolver {
	return NewResolver(b.logger, b.Roots())
}

func (b *Builder) add(path string, provenance domain.Provenance, scope string) {
	root, ok := newRoot(path, provenance, scope)
	if !ok {
		b.logger.Warn("skipping malformed classpath entry " + strconv.Quote(path))
		return
	}
	if b.seen[root.Path] {
		return
	}
	b.seen[root.Path] = true
	b.roots = append(b.roots, root)
}

// newRoot normalizes path and detects its kind. Missing paths become directory roots that never match.
func newRoot(path string, provenance domain.Provenance, scope string) (domain.ClasspathRoot, bool) {
	if strings.TrimSpace(path) == "" || strings.ContainsRune(path, 0) {
		return domain.ClasspathRoot{}, false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.ClasspathRoot{}, false
	}

	kind := domain.RootDirectory
	if info, err := os.Stat(abs); err == nil && info.Mode().IsRegular() {
		kind = domain.RootArchive
	}

	return domain.ClasspathRoot{
		Path:       abs,
		Kind:       kind,
		Provenance: provenance,
		Scope:      scope,
	}, true
}

func matchesScope(scope string, scopes []string) bool {
	for _, s := range scopes {
		if strings.EqualFold(scope, s) {
			return true
		}
	}
	return false
}
