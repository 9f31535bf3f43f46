package ports

import "go.trai.ch/schemagen/internal/core/domain"

// LedgerStore defines the interface for persisting ledger snapshots.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type LedgerStore interface {
	// Load reads the snapshot at path.
	// Returns nil, nil if no snapshot exists.
	Load(path string) (*domain.LedgerSnapshot, error)

	// Save writes the snapshot to path, replacing any previous one atomically.
	Save(path string, snapshot *domain.LedgerSnapshot) error

	// Remove deletes the snapshot at path. Removing a missing snapshot is not an error.
	Remove(path string) error
}
