// Package cas implements persistence of ledger snapshots.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/schemagen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LedgerStore = (*Store)(nil)

// Store implements ports.LedgerStore using one versioned JSON document per ledger.
type Store struct{}

// NewStore creates a new LedgerStore.
func NewStore() (*Store, error) {
	return &Store{}, nil
}

// Load reads the snapshot at path. A missing file yields nil, nil.
func (s *Store) Load(path string) (*domain.LedgerSnapshot, error) {
	//nolint:gosec // Path is derived from the configured build directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLedgerReadFailed.Error()), "path", path)
	}

	var snapshot domain.LedgerSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLedgerCorrupt.Error()), "path", path)
	}

	if snapshot.Version < 1 || snapshot.Version > domain.LedgerFormatVersion {
		err := zerr.With(zerr.Wrap(domain.ErrLedgerVersionUnsupported, "cannot decode ledger"), "path", path)
		return nil, zerr.With(err, "version", snapshot.Version)
	}

	if snapshot.Domains == nil {
		snapshot.Domains = make(map[domain.Domain]map[string]domain.Fingerprint)
	}

	return &snapshot, nil
}

// Save writes the snapshot into a temporary file next to path and renames it into place,
// so readers never observe a partially-written ledger.
func (s *Store) Save(path string, snapshot *domain.LedgerSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrLedgerWriteFailed.Error())
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLedgerWriteFailed.Error()), "path", dir)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLedgerWriteFailed.Error()), "path", path)
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, domain.ErrLedgerWriteFailed.Error()), "path", path)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, domain.ErrLedgerWriteFailed.Error()), "path", path)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, domain.ErrLedgerWriteFailed.Error()), "path", path)
	}
	if err := os.Chmod(tmp, domain.FilePerm); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, domain.ErrLedgerWriteFailed.Error()), "path", path)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, domain.ErrLedgerWriteFailed.Error()), "path", path)
	}

	return nil
}

// Remove deletes the snapshot at path.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", path)
	}
	return nil
}
