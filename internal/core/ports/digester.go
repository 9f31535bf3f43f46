// Package ports defines the core interfaces for the application.
package ports

import (
	"io"

	"go.trai.ch/schemagen/internal/core/domain"
)

// Digester computes content fingerprints.
//
//go:generate go run go.uber.org/mock/mockgen -source=digester.go -destination=mocks/mock_digester.go -package=mocks
type Digester interface {
	// Digest consumes r and returns the fingerprint of its bytes. It does not close r.
	Digest(r io.Reader) (domain.Fingerprint, error)

	// DigestString returns the fingerprint of the UTF-8 bytes of s.
	DigestString(s string) domain.Fingerprint

	// DigestFile returns the fingerprint of the file content at path.
	DigestFile(path string) (domain.Fingerprint, error)
}
