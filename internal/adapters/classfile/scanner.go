package classfile

import (
	"archive/zip"
	"bufio"
	"context"
	"maps"
	"os"
	"path"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/schemagen/internal/adapters/fs"
	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/schemagen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.AnnotationScanner = (*Scanner)(nil)

// Index maps annotation names to the classes carrying them.
type Index map[string]map[string]struct{}

// Classes returns the sorted classes annotated with any of the given annotation names.
func (idx Index) Classes(annotations ...string) []string {
	set := make(map[string]struct{})
	for _, a := range annotations {
		for class := range idx[a] {
			set[class] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

func (idx Index) add(class string, annotations []string) {
	for _, a := range annotations {
		classes, ok := idx[a]
		if !ok {
			classes = make(map[string]struct{})
			idx[a] = classes
		}
		classes[class] = struct{}{}
	}
}

// Scanner builds annotation indexes from class files without loading them.
type Scanner struct {
	walker *fs.Walker
	logger ports.Logger
}

// NewScanner creates a new Scanner.
func NewScanner(walker *fs.Walker, logger ports.Logger) *Scanner {
	return &Scanner{walker: walker, logger: logger}
}

// Scan returns the sorted names of classes in roots annotated with any of markers.
func (s *Scanner) Scan(ctx context.Context, roots []domain.ClasspathRoot, markers []domain.Marker) ([]string, error) {
	idx, err := s.Index(ctx, roots)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, m := range markers {
		names = append(names, m.AnnotationNames()...)
	}
	return idx.Classes(names...), nil
}

// Index parses every class in roots. Unreadable entries are skipped with a debug note and
// unreadable archives with a warning.
func (s *Scanner) Index(ctx context.Context, roots []domain.ClasspathRoot) (Index, error) {
	idx := make(Index)
	for _, root := range roots {
		var err error
		if root.Kind == domain.RootArchive {
			err = s.indexArchive(ctx, root.Path, idx)
		} else {
			err = s.indexDirectory(ctx, root.Path, idx)
		}
		if err != nil {
			return nil, err
		}
	}
	return idx, nil
}

func (s *Scanner) indexDirectory(ctx context.Context, dir string, idx Index) error {
	for file := range s.walker.WalkSuffix(dir, domain.ClassSuffix) {
		if err := ctx.Err(); err != nil {
			return zerr.Wrap(err, "scan interrupted")
		}
		if skipClass(file) {
			continue
		}
		info, err := parseFile(file)
		if err != nil {
			s.logger.Debug("skipping unreadable class " + strconv.Quote(file) + ": " + err.Error())
			continue
		}
		idx.add(info.Name, info.Annotations)
	}
	return nil
}

func (s *Scanner) indexArchive(ctx context.Context, archive string, idx Index) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		s.logger.Warn("skipping unreadable archive " + strconv.Quote(archive) + ": " + err.Error())
		return nil
	}
	defer zr.Close() //nolint:errcheck // Read-only archive

	for _, entry := range zr.File {
		if err := ctx.Err(); err != nil {
			return zerr.Wrap(err, "scan interrupted")
		}
		if !strings.HasSuffix(entry.Name, domain.ClassSuffix) || skipClass(entry.Name) {
			continue
		}
		// Multi-release variants duplicate the base classes.
		if strings.HasPrefix(entry.Name, "META-INF/") {
			continue
		}
		info, err := parseEntry(entry)
		if err != nil {
			s.logger.Debug("skipping unreadable entry " + strconv.Quote(entry.Name) + " in " + archive + ": " + err.Error())
			continue
		}
		idx.add(info.Name, info.Annotations)
	}
	return nil
}

func skipClass(name string) bool {
	base := strings.TrimSuffix(path.Base(strings.ReplaceAll(name, "\\", "/")), domain.ClassSuffix)
	return base == domain.PackageInfoClass || base == domain.ModuleInfoClass
}

func parseFile(file string) (*ClassInfo, error) {
	f, err := os.Open(file) //nolint:gosec // Path comes from walking a classpath root
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrFileOpenFailed.Error())
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer
	return ParseClass(bufio.NewReader(f))
}

func parseEntry(entry *zip.File) (*ClassInfo, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close() //nolint:errcheck // Best effort close in defer
	return ParseClass(rc)
}
