package domain

import (
	"regexp"
	"strings"
)

// RootKind distinguishes directory roots from archive roots.
type RootKind uint8

const (
	// RootDirectory is an exploded directory of classes and resources.
	RootDirectory RootKind = iota
	// RootArchive is a zip/jar archive.
	RootArchive
)

// String returns the name of the root kind.
func (k RootKind) String() string {
	switch k {
	case RootDirectory:
		return "directory"
	case RootArchive:
		return "archive"
	default:
		return "unknown"
	}
}

// Provenance records where a classpath root came from.
type Provenance uint8

const (
	// ProvenanceBuildOutput is the project's compiled main classes.
	ProvenanceBuildOutput Provenance = iota
	// ProvenanceTestOutput is the project's compiled test classes.
	ProvenanceTestOutput
	// ProvenanceDependency is a declared dependency archive.
	ProvenanceDependency
	// ProvenanceClasspath is an additional classpath element supplied by the host.
	ProvenanceClasspath
)

// String returns the name of the provenance.
func (p Provenance) String() string {
	switch p {
	case ProvenanceBuildOutput:
		return "build-output"
	case ProvenanceTestOutput:
		return "test-output"
	case ProvenanceDependency:
		return "dependency"
	case ProvenanceClasspath:
		return "classpath"
	default:
		return "unknown"
	}
}

// ClasspathRoot is a directory or archive searched for classes and resources.
type ClasspathRoot struct {
	Path       string
	Kind       RootKind
	Provenance Provenance
	// Scope is the declared dependency scope; empty for project outputs.
	Scope string
}

// Dependency is a dependency artifact as reported by the build host.
type Dependency struct {
	ID    string `yaml:"id"`
	Scope string `yaml:"scope"`
	Path  string `yaml:"path"`
}

// ScopeNone disables dependency scanning.
const ScopeNone = "none"

var scopeSplit = regexp.MustCompile(`[^,\s]+`)

// ParseScopes splits a comma and/or whitespace separated scope list.
// The special value "none" yields no scopes.
func ParseScopes(s string) []string {
	var scopes []string
	for _, scope := range scopeSplit.FindAllString(s, -1) {
		if strings.EqualFold(scope, ScopeNone) {
			continue
		}
		scopes = append(scopes, scope)
	}
	return scopes
}

// SplitList splits a comma and/or whitespace separated list, as used for mapping files.
func SplitList(s string) []string {
	return scopeSplit.FindAllString(s, -1)
}
