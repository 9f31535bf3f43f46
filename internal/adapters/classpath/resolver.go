package classpath

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/schemagen/internal/core/ports"
	"go.trai.ch/zerr"
)

// lookupCacheSize bounds the number of remembered resource locations.
const lookupCacheSize = 1024

var _ ports.ClassResolver = (*Resolver)(nil)

// Resolver opens classes and resources from an ordered list of roots. The first root containing
// an entry wins. Resolvers are immutable; WithAdditionalRoots derives a new one that shares
// archive handles and the lookup cache with its parent.
type Resolver struct {
	logger   ports.Logger
	roots    []domain.ClasspathRoot
	archives *archiveSet
	// hits maps a resource name to the roots up to and including the first one that holds it.
	// A hit is reused only by resolvers whose root list starts with that same prefix.
	hits *lru.Cache[string, []domain.ClasspathRoot]
}

// NewResolver creates a resolver over roots.
func NewResolver(logger ports.Logger, roots []domain.ClasspathRoot) *Resolver {
	hits, _ := lru.New[string, []domain.ClasspathRoot](lookupCacheSize)
	return &Resolver{
		logger:   logger,
		roots:    roots,
		archives: newArchiveSet(logger),
		hits:     hits,
	}
}

// OpenClass opens the class file of a fully-qualified class name. Nested class names keep their '$'.
func (r *Resolver) OpenClass(name string) (io.ReadCloser, error) {
	rc, err := r.open(domain.ClassResourceName(name))
	if errors.Is(err, domain.ErrResourceNotFound) {
		return nil, zerr.With(zerr.Wrap(domain.ErrClassNotFound, "cannot open class"), "class", name)
	}
	return rc, err
}

// OpenResource opens a slash-separated resource path.
func (r *Resolver) OpenResource(name string) (io.ReadCloser, error) {
	return r.open(strings.TrimPrefix(name, "/"))
}

// Locate reports the first root that contains the resource.
func (r *Resolver) Locate(name string) (domain.ClasspathRoot, bool) {
	idx, ok := r.lookup(strings.TrimPrefix(name, "/"))
	if !ok {
		return domain.ClasspathRoot{}, false
	}
	return r.roots[idx], true
}

// WithAdditionalRoots returns a resolver over the current roots followed by the new ones.
// Roots already present are ignored.
func (r *Resolver) WithAdditionalRoots(roots ...domain.ClasspathRoot) ports.ClassResolver {
	seen := make(map[string]bool, len(r.roots)+len(roots))
	merged := make([]domain.ClasspathRoot, 0, len(r.roots)+len(roots))
	for _, root := range r.roots {
		seen[root.Path] = true
		merged = append(merged, root)
	}
	for _, root := range roots {
		if seen[root.Path] {
			continue
		}
		seen[root.Path] = true
		merged = append(merged, root)
	}

	return &Resolver{
		logger:   r.logger,
		roots:    merged,
		archives: r.archives,
		hits:     r.hits,
	}
}

// Roots returns a copy of the ordered root list.
func (r *Resolver) Roots() []domain.ClasspathRoot {
	out := make([]domain.ClasspathRoot, len(r.roots))
	copy(out, r.roots)
	return out
}

// Close releases all archive handles shared by this resolver family.
func (r *Resolver) Close() error {
	return r.archives.close()
}

func (r *Resolver) open(name string) (io.ReadCloser, error) {
	if r.archives.isClosed() {
		return nil, zerr.With(zerr.Wrap(domain.ErrResolverClosed, "cannot open resource"), "resource", name)
	}

	idx, ok := r.lookup(name)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrResourceNotFound, "cannot open resource"), "resource", name)
	}

	root := r.roots[idx]
	if root.Kind == domain.RootArchive {
		entry := r.archives.entry(root.Path, name)
		if entry == nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrResourceNotFound, "cannot open resource"), "resource", name)
		}
		rc, err := entry.Open()
		if err != nil {
			err = zerr.With(zerr.Wrap(err, "failed to open archive entry"), "archive", root.Path)
			return nil, zerr.With(err, "resource", name)
		}
		return rc, nil
	}

	//nolint:gosec // Path is built from a classpath root and a resource name
	f, err := os.Open(filepath.Join(root.Path, filepath.FromSlash(name)))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "resource", name)
	}
	return f, nil
}

// lookup returns the index of the first root holding name.
func (r *Resolver) lookup(name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	if prefix, ok := r.hits.Get(name); ok && r.startsWith(prefix) {
		return len(prefix) - 1, true
	}

	for idx, root := range r.roots {
		if r.contains(root, name) {
			r.hits.Add(name, r.roots[:idx+1:idx+1])
			return idx, true
		}
	}
	return 0, false
}

// startsWith reports whether the root list of r begins with prefix.
func (r *Resolver) startsWith(prefix []domain.ClasspathRoot) bool {
	if len(prefix) == 0 || len(prefix) > len(r.roots) {
		return false
	}
	for i, root := range prefix {
		if r.roots[i].Path != root.Path {
			return false
		}
	}
	return true
}

func (r *Resolver) contains(root domain.ClasspathRoot, name string) bool {
	if root.Kind == domain.RootArchive {
		return r.archives.entry(root.Path, name) != nil
	}
	info, err := os.Stat(filepath.Join(root.Path, filepath.FromSlash(name)))
	return err == nil && info.Mode().IsRegular()
}

// archiveSet lazily opens archives and indexes their entries. It is shared by derived resolvers.
type archiveSet struct {
	logger  ports.Logger
	mu      sync.Mutex
	handles map[string]*openArchive
	closed  bool
}

type openArchive struct {
	zr      *zip.ReadCloser
	entries map[string]*zip.File
}

func newArchiveSet(logger ports.Logger) *archiveSet {
	return &archiveSet{
		logger:  logger,
		handles: make(map[string]*openArchive),
	}
}

// entry returns the named entry of the archive at path, opening the archive on first use.
// An archive that cannot be opened is remembered as empty.
func (s *archiveSet) entry(path, name string) *zip.File {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	a, ok := s.handles[path]
	if !ok {
		a = s.openLocked(path)
		s.handles[path] = a
	}
	if a == nil {
		return nil
	}
	return a.entries[name]
}

func (s *archiveSet) openLocked(path string) *openArchive {
	zr, err := zip.OpenReader(path)
	if err != nil {
		s.logger.Warn("skipping unreadable classpath archive " + strconv.Quote(path) + ": " + err.Error())
		return nil
	}
	entries := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		if _, dup := entries[f.Name]; !dup {
			entries[f.Name] = f
		}
	}
	return &openArchive{zr: zr, entries: entries}
}

func (s *archiveSet) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *archiveSet) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	for path, a := range s.handles {
		if a == nil {
			continue
		}
		if err := a.zr.Close(); err != nil {
			errs = append(errs, zerr.With(zerr.Wrap(err, "failed to close classpath archive"), "archive", path))
		}
	}
	s.handles = nil
	return errors.Join(errs...)
}
