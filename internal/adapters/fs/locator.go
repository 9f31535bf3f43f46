package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/schemagen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileLocator = (*Locator)(nil)

// Locator resolves configured file references against the project and resource directories.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Locate tries name as a path first (relative names are resolved against baseDir),
// then inside each search directory in order. The first existing entry wins.
func (l *Locator) Locate(name, baseDir string, searchDirs []string) (string, error) {
	candidates := make([]string, 0, len(searchDirs)+1)
	if filepath.IsAbs(name) {
		candidates = append(candidates, filepath.Clean(name))
	} else {
		candidates = append(candidates, filepath.Join(baseDir, name))
	}
	for _, dir := range searchDirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(baseDir, dir)
		}
		candidates = append(candidates, filepath.Join(dir, name))
	}

	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", zerr.With(zerr.Wrap(err, "failed to stat mapping file"), "path", path)
		}
		if info.IsDir() {
			return "", zerr.With(zerr.Wrap(domain.ErrMappingFileIsDirectory, "cannot read mapping file"), "path", path)
		}
		return path, nil
	}

	err := zerr.Wrap(domain.ErrMappingFileNotFound, "cannot locate mapping file")
	err = zerr.With(err, "file", name)
	return "", zerr.With(err, "searched", searchDirs)
}
