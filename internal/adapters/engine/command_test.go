package engine_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/schemagen/internal/adapters/engine"
	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/schemagen/internal/core/ports"
	"go.trai.ch/schemagen/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func shellRequest(t *testing.T, script string, env map[string]string) ports.SchemaRequest {
	t.Helper()
	return ports.SchemaRequest{
		Goal:       domain.GoalCreate,
		Units:      []domain.MappingUnit{domain.AnnotatedClass("com.example.Order")},
		Properties: map[string]string{domain.PropDialect: "H2", domain.PropFormatSQL: "true"},
		Script:     filepath.Join(t.TempDir(), "create.sql"),
		ProjectDir: t.TempDir(),
		Engine: domain.EngineSettings{
			Command: []string{"sh", "-c", script},
			Env:     env,
		},
	}
}

func TestCommandEngine_Generate_Report(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info("generating schema").Times(1)

	captured := filepath.Join(t.TempDir(), "request.json")
	req := shellRequest(t,
		`cat > "$CAPTURE"; echo "generating schema" >&2; echo '{"exceptions":[{"message":"unknown type","statement":"create table x"}]}'`,
		map[string]string{"CAPTURE": captured},
	)

	resolver := mocks.NewMockClassResolver(ctrl)
	resolver.EXPECT().Roots().Return([]domain.ClasspathRoot{
		{Path: "/work/target/classes", Kind: domain.RootDirectory},
		{Path: "/repo/model.jar", Kind: domain.RootArchive},
	})
	req.Resolver = resolver

	report, err := engine.NewCommandEngine(mockLogger).Generate(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, []domain.SchemaException{{Message: "unknown type", Statement: "create table x"}}, report.Exceptions)

	data, err := os.ReadFile(captured)
	require.NoError(t, err)

	var sent engine.Request
	require.NoError(t, json.Unmarshal(data, &sent))
	assert.Equal(t, domain.GoalCreate, sent.Goal)
	assert.Equal(t, req.Units, sent.Units)
	assert.Equal(t, req.Script, sent.Script)
	assert.Equal(t, domain.DefaultDelimiter, sent.Delimiter)
	assert.True(t, sent.Format)
	assert.Equal(t, []engine.Root{
		{Path: "/work/target/classes", Kind: "directory"},
		{Path: "/repo/model.jar", Kind: "archive"},
	}, sent.Classpath)
}

func TestCommandEngine_Generate_EmptyOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	report, err := engine.NewCommandEngine(mockLogger).Generate(t.Context(), shellRequest(t, "cat > /dev/null", nil))
	require.NoError(t, err)
	assert.Empty(t, report.Exceptions)
}

func TestCommandEngine_Generate_FilteredEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info("secret=").Times(1)
	mockLogger.EXPECT().Info("opts=-Xmx1g").Times(1)

	t.Setenv("SCHEMAGEN_SECRET", "leaked")
	req := shellRequest(t,
		`echo "secret=$SCHEMAGEN_SECRET" >&2; echo "opts=$JAVA_OPTS" >&2`,
		map[string]string{"JAVA_OPTS": "-Xmx1g"},
	)

	_, err := engine.NewCommandEngine(mockLogger).Generate(t.Context(), req)
	require.NoError(t, err)
}

func TestCommandEngine_Generate_ExitCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info("mapping error").Times(1)

	_, err := engine.NewCommandEngine(mockLogger).Generate(t.Context(), shellRequest(t, "printf 'mapping error' >&2; exit 3", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrSchemaEngineFailed.Error())

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, 3, zErr.Metadata()["exit_code"])
	assert.Equal(t, "sh", zErr.Metadata()["command"])
}

func TestCommandEngine_Generate_InvalidReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	_, err := engine.NewCommandEngine(mockLogger).Generate(t.Context(), shellRequest(t, "echo 'not json'", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrSchemaReportInvalid.Error())
}

func TestCommandEngine_Generate_NotConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	_, err := engine.NewCommandEngine(mockLogger).Generate(t.Context(), ports.SchemaRequest{})
	require.ErrorIs(t, err, domain.ErrSchemaEngineNotConfigured)
}
