package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/schemagen/internal/core/ports"
	"go.trai.ch/zerr"
)

// chunkSize is the read buffer used while digesting streams.
const chunkSize = 4 << 10

var _ ports.Digester = (*Digester)(nil)

// Digester fingerprints byte streams with XXHash64.
type Digester struct{}

// NewDigester creates a new Digester.
func NewDigester() *Digester {
	return &Digester{}
}

// Digest consumes r in fixed-size chunks and returns its fingerprint.
// The caller keeps ownership of r.
func (d *Digester) Digest(r io.Reader) (domain.Fingerprint, error) {
	hasher := xxhash.New()
	buf := make([]byte, chunkSize)
	// Hide WriterTo/ReaderFrom so io.CopyBuffer always uses buf.
	if _, err := io.CopyBuffer(struct{ io.Writer }{hasher}, struct{ io.Reader }{r}, buf); err != nil {
		return "", domain.Classify(domain.ErrDigestFailed, err)
	}
	return format(hasher.Sum64()), nil
}

// DigestString returns the fingerprint of the UTF-8 bytes of s.
func (d *Digester) DigestString(s string) domain.Fingerprint {
	return format(xxhash.Sum64String(s))
}

// DigestFile computes the fingerprint of a file's content.
func (d *Digester) DigestFile(path string) (domain.Fingerprint, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	fp, err := d.Digest(f)
	if err != nil {
		return "", zerr.With(err, "path", path)
	}
	return fp, nil
}

func format(sum uint64) domain.Fingerprint {
	return domain.Fingerprint(fmt.Sprintf("%016x", sum))
}
