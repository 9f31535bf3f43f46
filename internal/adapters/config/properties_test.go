package config_test

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/schemagen/internal/adapters/config"
	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/schemagen/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type propertyFixture struct {
	source   *config.PropertySource
	resolver *mocks.MockClassResolver
	logger   *mocks.MockLogger
}

func newPropertyFixture(t *testing.T) *propertyFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	lg := mocks.NewMockLogger(ctrl)
	lg.EXPECT().Debug(gomock.Any()).AnyTimes()
	lg.EXPECT().Info(gomock.Any()).AnyTimes()
	resolver := mocks.NewMockClassResolver(ctrl)
	return &propertyFixture{source: config.NewPropertySource(lg), resolver: resolver, logger: lg}
}

func baseSettings(dir string) *domain.Settings {
	return &domain.Settings{
		Goal:             domain.GoalCreate,
		ProjectDir:       dir,
		OutputDir:        filepath.Join(dir, "target", "classes"),
		TestOutputDir:    filepath.Join(dir, "target", "test-classes"),
		Execute:          true,
		ScanClasses:      true,
		ScanDependencies: []string{"compile", "runtime"},
	}
}

func resource(content string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(content))
}

func TestPropertySource_MergeOrder(t *testing.T) {
	f := newPropertyFixture(t)
	dir := t.TempDir()
	createFile(t, dir, "db.properties", "hibernate.dialect=FileDialect\nhibernate.format_sql=false\nhibernate.default_schema=app\n")

	settings := baseSettings(dir)
	settings.PropertiesFile = "db.properties"
	settings.Properties = map[string]string{
		domain.PropDialect:   "MapDialect",
		domain.PropFormatSQL: "true",
	}
	settings.Overrides = map[string]string{domain.PropDialect: "OverrideDialect"}

	props, err := f.source.Properties(settings, f.resolver)
	require.NoError(t, err)

	assert.Equal(t, "OverrideDialect", props[domain.PropDialect])
	assert.Equal(t, "true", props[domain.PropFormatSQL])
	assert.Equal(t, "app", props["hibernate.default_schema"])
}

func TestPropertySource_PublishesSettings(t *testing.T) {
	f := newPropertyFixture(t)
	dir := t.TempDir()

	settings := baseSettings(dir)
	settings.Properties = map[string]string{domain.PropDialect: "H2"}

	f.resolver.EXPECT().OpenResource(domain.DefaultPropertiesResource).Return(nil, domain.ErrResourceNotFound)

	props, err := f.source.Properties(settings, f.resolver)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		domain.PropDialect:             "H2",
		domain.PropGoal:                "create",
		domain.PropExecute:             "true",
		domain.PropOutputDirectory:     settings.OutputDir,
		domain.PropTestOutputDirectory: settings.TestOutputDir,
		domain.PropScanClasses:         "true",
		domain.PropScanTestClasses:     "false",
		domain.PropScanDependencies:    "compile,runtime",
	}, props)
}

func TestPropertySource_DefaultResource(t *testing.T) {
	f := newPropertyFixture(t)

	f.resolver.EXPECT().OpenResource(domain.DefaultPropertiesResource).
		Return(resource("# comment\nhibernate.dialect = H2\nhibernate.connection.url=jdbc:h2:${user.home}/db\n"), nil)

	props, err := f.source.Properties(baseSettings(t.TempDir()), f.resolver)
	require.NoError(t, err)

	assert.Equal(t, "H2", props[domain.PropDialect])
	assert.Equal(t, "jdbc:h2:${user.home}/db", props[domain.PropURL])
}

func TestPropertySource_NamedResource(t *testing.T) {
	f := newPropertyFixture(t)
	settings := baseSettings(t.TempDir())
	settings.PropertiesFile = "config/db.properties"

	f.resolver.EXPECT().OpenResource("config/db.properties").Return(resource("hibernate.dialect=Oracle\n"), nil)

	props, err := f.source.Properties(settings, f.resolver)
	require.NoError(t, err)
	assert.Equal(t, "Oracle", props[domain.PropDialect])
}

func TestPropertySource_MissingExplicitSource(t *testing.T) {
	f := newPropertyFixture(t)
	settings := baseSettings(t.TempDir())
	settings.PropertiesFile = "missing.properties"

	f.resolver.EXPECT().OpenResource("missing.properties").Return(nil, domain.ErrResourceNotFound)

	_, err := f.source.Properties(settings, f.resolver)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrPropertiesReadFailed.Error())
}

func TestPropertySource_ConfigurationMissing(t *testing.T) {
	f := newPropertyFixture(t)
	f.resolver.EXPECT().OpenResource(domain.DefaultPropertiesResource).Return(nil, domain.ErrResourceNotFound)

	_, err := f.source.Properties(baseSettings(t.TempDir()), f.resolver)
	require.ErrorIs(t, err, domain.ErrConfigurationMissing)
}

func TestPropertySource_AliasFolding(t *testing.T) {
	t.Run("alias moves onto target", func(t *testing.T) {
		f := newPropertyFixture(t)
		settings := baseSettings(t.TempDir())
		settings.Properties = map[string]string{
			domain.PropJPAURL:  "jdbc:postgresql://db/app",
			domain.PropJPAUser: "app",
		}
		f.resolver.EXPECT().OpenResource(gomock.Any()).Return(nil, domain.ErrResourceNotFound)

		props, err := f.source.Properties(settings, f.resolver)
		require.NoError(t, err)

		assert.Equal(t, "jdbc:postgresql://db/app", props[domain.PropURL])
		assert.Equal(t, "app", props[domain.PropUsername])
		assert.NotContains(t, props, domain.PropJPAURL)
		assert.NotContains(t, props, domain.PropJPAUser)
	})

	t.Run("target wins with a warning", func(t *testing.T) {
		f := newPropertyFixture(t)
		settings := baseSettings(t.TempDir())
		settings.Properties = map[string]string{domain.PropJPADriver: "org.h2.Driver"}
		settings.Overrides = map[string]string{domain.PropDriver: "org.postgresql.Driver"}
		f.resolver.EXPECT().OpenResource(gomock.Any()).Return(nil, domain.ErrResourceNotFound)
		f.logger.EXPECT().Warn(gomock.Any()).Times(1)

		props, err := f.source.Properties(settings, f.resolver)
		require.NoError(t, err)

		assert.Equal(t, "org.postgresql.Driver", props[domain.PropDriver])
		assert.NotContains(t, props, domain.PropJPADriver)
	})
}
