package fs_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/schemagen/internal/adapters/fs"
	"go.trai.ch/schemagen/internal/core/domain"
)

func TestDigester_Digest_Deterministic(t *testing.T) {
	d := fs.NewDigester()

	fp1, err := d.Digest(strings.NewReader("hello world"))
	require.NoError(t, err)
	fp2, err := d.Digest(strings.NewReader("hello world"))
	require.NoError(t, err)

	assert.Equal(t, fp1, fp2)
	assert.Len(t, fp1.String(), 16)
	assert.Equal(t, strings.ToLower(fp1.String()), fp1.String())
}

func TestDigester_Digest_SingleByteChange(t *testing.T) {
	d := fs.NewDigester()

	a := bytes.Repeat([]byte{0xCA, 0xFE, 0xBA, 0xBE}, 4096)
	b := bytes.Clone(a)
	b[len(b)-1] ^= 0x01

	fpA, err := d.Digest(bytes.NewReader(a))
	require.NoError(t, err)
	fpB, err := d.Digest(bytes.NewReader(b))
	require.NoError(t, err)

	assert.NotEqual(t, fpA, fpB)
}

func TestDigester_Digest_ChunkedReadsMatchString(t *testing.T) {
	d := fs.NewDigester()
	content := strings.Repeat("0123456789abcdef", 1000)

	// OneByteReader forces many short reads.
	fpStream, err := d.Digest(iotest.OneByteReader(strings.NewReader(content)))
	require.NoError(t, err)

	assert.Equal(t, d.DigestString(content), fpStream)
}

func TestDigester_Digest_ReadError(t *testing.T) {
	d := fs.NewDigester()

	cause := errors.New("disk on fire")
	_, err := d.Digest(iotest.ErrReader(cause))
	require.ErrorIs(t, err, domain.ErrDigestFailed)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to compute fingerprint")
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestDigester_DigestString_DistinguishesValues(t *testing.T) {
	d := fs.NewDigester()

	assert.NotEqual(t, d.DigestString("H2"), d.DigestString("PostgreSQL"))
	assert.Equal(t, d.DigestString(""), d.DigestString(""))
}

func TestDigester_DigestFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "Foo.class")
	require.NoError(t, os.WriteFile(path, []byte("class bytes"), 0o600))

	d := fs.NewDigester()

	fromFile, err := d.DigestFile(path)
	require.NoError(t, err)
	assert.Equal(t, d.DigestString("class bytes"), fromFile)
}

func TestDigester_DigestFile_Missing(t *testing.T) {
	d := fs.NewDigester()

	_, err := d.DigestFile(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open file")
}
