package classfile_test

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/schemagen/internal/adapters/classfile"
	"go.trai.ch/schemagen/internal/adapters/classfile/classfiletest"
	"go.trai.ch/schemagen/internal/adapters/fs"
	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/schemagen/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeClass(t *testing.T, root string, c classfiletest.Class) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(domain.ClassResourceName(c.Name)))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, classfiletest.Build(c), 0o600))
}

func writeJar(t *testing.T, path string, entries map[string][]byte) {
	t.Helper()
	f, err := os.Create(path) //nolint:gosec // Test file with controlled path
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, data := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func newScanner(t *testing.T) (*classfile.Scanner, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	return classfile.NewScanner(fs.NewWalker(), logger), logger
}

func TestScanner_Scan_Directory(t *testing.T) {
	root := t.TempDir()
	writeClass(t, root, classfiletest.Class{Name: "com.example.Order", Annotations: []string{"javax.persistence.Entity"}})
	writeClass(t, root, classfiletest.Class{Name: "com.example.Base", Annotations: []string{"jakarta.persistence.MappedSuperclass"}})
	writeClass(t, root, classfiletest.Class{Name: "com.example.Address", Annotations: []string{"jakarta.persistence.Embeddable"}})
	writeClass(t, root, classfiletest.Class{
		Name:        "com.example.Both",
		Annotations: []string{"jakarta.persistence.Entity", "jakarta.persistence.Embeddable"},
	})
	writeClass(t, root, classfiletest.Class{Name: "com.example.Service", Annotations: []string{"org.springframework.Service"}})
	writeClass(t, root, classfiletest.Class{Name: "com.example.package-info", Annotations: []string{"jakarta.persistence.Entity"}})
	writeClass(t, root, classfiletest.Class{Name: "module-info", Annotations: []string{"jakarta.persistence.Entity"}})

	scanner, _ := newScanner(t)
	roots := []domain.ClasspathRoot{{Path: root, Kind: domain.RootDirectory}}

	got, err := scanner.Scan(t.Context(), roots, domain.AllMarkers)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"com.example.Address",
		"com.example.Base",
		"com.example.Both",
		"com.example.Order",
	}, got)

	entities, err := scanner.Scan(t.Context(), roots, []domain.Marker{domain.MarkerEntity})
	require.NoError(t, err)
	assert.Equal(t, []string{"com.example.Both", "com.example.Order"}, entities)
}

func TestScanner_Scan_ArchiveAndDuplicates(t *testing.T) {
	tmp := t.TempDir()
	classes := filepath.Join(tmp, "classes")
	writeClass(t, classes, classfiletest.Class{Name: "com.example.Order", Annotations: []string{"jakarta.persistence.Entity"}})

	jar := filepath.Join(tmp, "model.jar")
	writeJar(t, jar, map[string][]byte{
		"com/lib/Customer.class": classfiletest.Build(classfiletest.Class{
			Name:        "com.lib.Customer",
			Annotations: []string{"javax.persistence.Entity"},
		}),
		"com/example/Order.class": classfiletest.Build(classfiletest.Class{
			Name:        "com.example.Order",
			Annotations: []string{"jakarta.persistence.Entity"},
		}),
		"META-INF/versions/11/com/lib/Customer.class": []byte("ignored"),
		"com/lib/readme.txt":                          []byte("not a class"),
	})

	scanner, _ := newScanner(t)
	got, err := scanner.Scan(t.Context(), []domain.ClasspathRoot{
		{Path: classes, Kind: domain.RootDirectory},
		{Path: jar, Kind: domain.RootArchive},
	}, domain.AllMarkers)
	require.NoError(t, err)
	assert.Equal(t, []string{"com.example.Order", "com.lib.Customer"}, got)
}

func TestScanner_Scan_MalformedEntryIsSkipped(t *testing.T) {
	root := t.TempDir()
	writeClass(t, root, classfiletest.Class{Name: "com.example.Good", Annotations: []string{"jakarta.persistence.Entity"}})
	require.NoError(t, os.WriteFile(filepath.Join(root, "com", "example", "Broken.class"), []byte{0xCA, 0xFE}, 0o600))

	scanner, logger := newScanner(t)
	logger.EXPECT().Debug(gomock.Any()).Times(1)

	got, err := scanner.Scan(t.Context(), []domain.ClasspathRoot{{Path: root, Kind: domain.RootDirectory}}, domain.AllMarkers)
	require.NoError(t, err)
	assert.Equal(t, []string{"com.example.Good"}, got)
}

func TestScanner_Scan_UnreadableArchiveIsSkipped(t *testing.T) {
	jar := filepath.Join(t.TempDir(), "broken.jar")
	require.NoError(t, os.WriteFile(jar, []byte("not a zip"), 0o600))

	scanner, logger := newScanner(t)
	logger.EXPECT().Warn(gomock.Any()).Times(1)

	got, err := scanner.Scan(t.Context(), []domain.ClasspathRoot{{Path: jar, Kind: domain.RootArchive}}, domain.AllMarkers)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScanner_Scan_MissingDirectory(t *testing.T) {
	scanner, _ := newScanner(t)
	got, err := scanner.Scan(t.Context(), []domain.ClasspathRoot{
		{Path: filepath.Join(t.TempDir(), "missing"), Kind: domain.RootDirectory},
	}, domain.AllMarkers)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScanner_Scan_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeClass(t, root, classfiletest.Class{Name: "com.example.Order", Annotations: []string{"jakarta.persistence.Entity"}})

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	scanner, _ := newScanner(t)
	_, err := scanner.Scan(ctx, []domain.ClasspathRoot{{Path: root, Kind: domain.RootDirectory}}, domain.AllMarkers)
	require.ErrorIs(t, err, context.Canceled)
}
