package app_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/schemagen/internal/app"
	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/schemagen/internal/core/ports/mocks"
	"go.trai.ch/schemagen/internal/engine/orchestrator"
	"go.uber.org/mock/gomock"
)

type stubGenerator struct {
	settings *domain.Settings
	outcome  *domain.Outcome
	preview  *orchestrator.Preview
	err      error
}

func (s *stubGenerator) Run(_ context.Context, settings *domain.Settings) (*domain.Outcome, error) {
	s.settings = settings
	return s.outcome, s.err
}

func (s *stubGenerator) Preview(_ context.Context, settings *domain.Settings) (*orchestrator.Preview, error) {
	s.settings = settings
	return s.preview, s.err
}

type appFixture struct {
	app      *app.App
	loader   *mocks.MockConfigLoader
	store    *mocks.MockLedgerStore
	gen      *stubGenerator
	settings *domain.Settings
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	store := mocks.NewMockLedgerStore(ctrl)
	lg := mocks.NewMockLogger(ctrl)
	lg.EXPECT().Info(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	f := &appFixture{
		loader: loader,
		store:  store,
		gen:    &stubGenerator{},
		settings: &domain.Settings{
			Goal:       domain.GoalCreate,
			ProjectDir: dir,
			Script:     filepath.Join(dir, "target", "create.sql"),
			LedgerPath: filepath.Join(dir, "target", ".schemagen", "create.sql.ledger.json"),
			Execute:    true,
		},
	}
	f.app = app.New(loader, f.gen, store, lg).WithWorkingDir(dir)
	loader.EXPECT().Load(dir).Return(f.settings, nil).AnyTimes()
	return f
}

func TestApp_Run(t *testing.T) {
	t.Run("applies options", func(t *testing.T) {
		f := newAppFixture(t)
		f.gen.outcome = &domain.Outcome{Goal: domain.GoalCreate, Reason: domain.ReasonForced}

		out, err := f.app.Run(context.Background(), app.RunOptions{Force: true, NoExecute: true})
		require.NoError(t, err)
		assert.Equal(t, f.gen.outcome, out)
		assert.True(t, f.gen.settings.Force)
		assert.False(t, f.gen.settings.Execute)
		assert.False(t, f.gen.settings.Skip)
	})

	t.Run("wraps generator errors", func(t *testing.T) {
		f := newAppFixture(t)
		f.gen.err = domain.ErrSchemaEngineFailed

		_, err := f.app.Run(context.Background(), app.RunOptions{})
		require.ErrorIs(t, err, domain.ErrSchemaEngineFailed)
		assert.Contains(t, err.Error(), "schema generation failed")
	})

	t.Run("reports configuration errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		loader := mocks.NewMockConfigLoader(ctrl)
		loader.EXPECT().Load("/nowhere").Return(nil, domain.ErrConfigNotFound)

		a := app.New(loader, &stubGenerator{}, mocks.NewMockLedgerStore(ctrl), mocks.NewMockLogger(ctrl)).
			WithWorkingDir("/nowhere")

		_, err := a.Run(context.Background(), app.RunOptions{})
		require.ErrorIs(t, err, domain.ErrConfigNotFound)
	})
}

func TestApp_Clean(t *testing.T) {
	t.Run("removes ledger only by default", func(t *testing.T) {
		f := newAppFixture(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(f.settings.Script), domain.DirPerm))
		require.NoError(t, os.WriteFile(f.settings.Script, []byte("create table t;"), domain.FilePerm))
		f.store.EXPECT().Remove(f.settings.LedgerPath).Return(nil)

		require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{}))
		assert.FileExists(t, f.settings.Script)
	})

	t.Run("removes script when requested", func(t *testing.T) {
		f := newAppFixture(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(f.settings.Script), domain.DirPerm))
		require.NoError(t, os.WriteFile(f.settings.Script, []byte("create table t;"), domain.FilePerm))
		f.store.EXPECT().Remove(f.settings.LedgerPath).Return(nil)

		require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{Script: true}))
		assert.NoFileExists(t, f.settings.Script)
	})

	t.Run("missing script is not an error", func(t *testing.T) {
		f := newAppFixture(t)
		f.store.EXPECT().Remove(f.settings.LedgerPath).Return(nil)

		require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{Script: true}))
	})

	t.Run("store failure", func(t *testing.T) {
		f := newAppFixture(t)
		f.store.EXPECT().Remove(f.settings.LedgerPath).Return(errors.New("read-only file system"))

		err := f.app.Clean(context.Background(), app.CleanOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read-only file system")
	})
}

func TestApp_Inspect(t *testing.T) {
	fpA := domain.Fingerprint("00000000000000000000000000000001")
	fpB := domain.Fingerprint("00000000000000000000000000000002")

	t.Run("no ledger", func(t *testing.T) {
		f := newAppFixture(t)
		f.store.EXPECT().Load(f.settings.LedgerPath).Return(nil, nil)

		var buf bytes.Buffer
		require.NoError(t, f.app.Inspect(context.Background(), &buf, app.InspectOptions{}))
		assert.Equal(t, "no ledger at "+f.settings.LedgerPath+"\n", buf.String())
	})

	t.Run("prints persisted entries", func(t *testing.T) {
		f := newAppFixture(t)
		snapshot := domain.NewLedgerSnapshot()
		snapshot.Domains[domain.DomainArtifacts] = map[string]domain.Fingerprint{"com.example.Order": fpA}
		f.store.EXPECT().Load(f.settings.LedgerPath).Return(snapshot, nil)

		var buf bytes.Buffer
		require.NoError(t, f.app.Inspect(context.Background(), &buf, app.InspectOptions{}))
		assert.Equal(t, "artifacts com.example.Order "+fpA.String()+"\n", buf.String())
	})

	t.Run("diff up to date", func(t *testing.T) {
		f := newAppFixture(t)
		f.gen.preview = &orchestrator.Preview{}

		var buf bytes.Buffer
		require.NoError(t, f.app.Inspect(context.Background(), &buf, app.InspectOptions{Diff: true}))
		assert.Equal(t, "ledger is up to date\n", buf.String())
	})

	t.Run("diff shows changed entries", func(t *testing.T) {
		f := newAppFixture(t)
		before := domain.NewLedgerSnapshot()
		before.Domains[domain.DomainProperties] = map[string]domain.Fingerprint{domain.PropDialect: fpA}
		after := domain.NewLedgerSnapshot()
		after.Domains[domain.DomainProperties] = map[string]domain.Fingerprint{domain.PropDialect: fpB}
		f.gen.preview = &orchestrator.Preview{Persisted: before, Current: after, Dirty: true}

		var buf bytes.Buffer
		require.NoError(t, f.app.Inspect(context.Background(), &buf, app.InspectOptions{Diff: true}))
		out := buf.String()
		assert.Contains(t, out, "--- "+f.settings.LedgerPath)
		assert.Contains(t, out, "+++ current")
		assert.Contains(t, out, "-properties hibernate.dialect "+fpA.String())
		assert.Contains(t, out, "+properties hibernate.dialect "+fpB.String())
	})
}
