package ports

import (
	"io"

	"go.trai.ch/schemagen/internal/core/domain"
)

// ClassResolver opens classes and resources from an ordered set of classpath roots.
// Implementations are immutable; extending the root set yields a new resolver.
//
//go:generate go run go.uber.org/mock/mockgen -source=classpath.go -destination=mocks/mock_classpath.go -package=mocks
type ClassResolver interface {
	// OpenClass opens the class file of a fully-qualified class name.
	OpenClass(name string) (io.ReadCloser, error)

	// OpenResource opens a slash-separated resource path.
	OpenResource(name string) (io.ReadCloser, error)

	// Locate reports the first root that contains the resource.
	Locate(name string) (domain.ClasspathRoot, bool)

	// WithAdditionalRoots returns a resolver over the current roots followed by roots.
	WithAdditionalRoots(roots ...domain.ClasspathRoot) ClassResolver

	// Roots returns the ordered root list.
	Roots() []domain.ClasspathRoot

	// Close releases every archive handle held by this resolver and any resolver derived from it.
	Close() error
}

// ClasspathBuilder assembles an ordered, de-duplicated list of classpath roots.
type ClasspathBuilder interface {
	// AddRoot appends a root. Malformed paths are skipped with a warning.
	AddRoot(path string, provenance domain.Provenance)

	// AddRoots appends several roots of the same provenance.
	AddRoots(paths []string, provenance domain.Provenance)

	// AddDependencyArchives appends the candidates whose scope matches one of scopes.
	AddDependencyArchives(scopes []string, candidates []domain.Dependency)

	// Roots returns the roots collected so far.
	Roots() []domain.ClasspathRoot

	// Build returns a resolver over the collected roots.
	Build() ClassResolver
}

// ClasspathFactory creates classpath builders.
type ClasspathFactory interface {
	// NewBuilder returns an empty builder.
	NewBuilder() ClasspathBuilder
}
