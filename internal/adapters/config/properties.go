package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/magiconair/properties"
	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/schemagen/internal/core/ports"
	"go.trai.ch/zerr"
)

// PropertySource implements ports.PropertySource on Java properties files.
type PropertySource struct {
	Logger ports.Logger
}

// NewPropertySource creates a new PropertySource with the given logger.
func NewPropertySource(logger ports.Logger) *PropertySource {
	return &PropertySource{Logger: logger}
}

// Properties merges the properties file, the configured map and the explicit overrides,
// in that order, then publishes the generator settings and folds the JPA connection aliases.
// It fails with domain.ErrConfigurationMissing when none of the three supplies a property.
func (s *PropertySource) Properties(
	settings *domain.Settings,
	resolver ports.ClassResolver,
) (map[string]string, error) {
	props, err := s.load(settings, resolver)
	if err != nil {
		return nil, err
	}

	for _, key := range slices.Sorted(maps.Keys(settings.Properties)) {
		s.configure(props, key, settings.Properties[key])
	}
	for _, key := range slices.Sorted(maps.Keys(settings.Overrides)) {
		s.configure(props, key, settings.Overrides[key])
	}

	if len(props) == 0 {
		return nil, domain.ErrConfigurationMissing
	}

	s.configure(props, domain.PropGoal, string(settings.Goal))
	s.configure(props, domain.PropExecute, strconv.FormatBool(settings.Execute))
	s.configure(props, domain.PropOutputDirectory, settings.OutputDir)
	s.configure(props, domain.PropTestOutputDirectory, settings.TestOutputDir)
	s.configure(props, domain.PropScanClasses, strconv.FormatBool(settings.ScanClasses))
	s.configure(props, domain.PropScanTestClasses, strconv.FormatBool(settings.ScanTestClasses))
	s.configure(props, domain.PropScanDependencies, strings.Join(settings.ScanDependencies, ","))

	for _, alias := range domain.PropertyAliases {
		s.fold(props, alias)
	}

	return props, nil
}

// load reads the configured properties file. Without one, the default resource is
// looked up on the classpath and its absence is not an error.
func (s *PropertySource) load(settings *domain.Settings, resolver ports.ClassResolver) (map[string]string, error) {
	name := settings.PropertiesFile
	if name == "" {
		props, err := s.loadResource(resolver, domain.DefaultPropertiesResource)
		if errors.Is(err, domain.ErrResourceNotFound) {
			s.Logger.Debug("no " + domain.DefaultPropertiesResource + " found on the classpath")
			return map[string]string{}, nil
		}
		return props, err
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(settings.ProjectDir, path)
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		s.Logger.Info("reading settings from file " + path)
		return loadFile(path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPropertiesReadFailed.Error()), "path", path)
	}

	props, err := s.loadResource(resolver, name)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPropertiesReadFailed.Error()), "properties", name)
	}
	return props, nil
}

func (s *PropertySource) loadResource(resolver ports.ClassResolver, name string) (map[string]string, error) {
	rc, err := resolver.OpenResource(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPropertiesReadFailed.Error()), "resource", name)
	}

	s.Logger.Debug("reading settings from resource " + name)
	return parseProperties(data, name)
}

func loadFile(path string) (map[string]string, error) {
	// #nosec G304 -- path comes from the project configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPropertiesReadFailed.Error()), "path", path)
	}
	return parseProperties(data, path)
}

// parseProperties decodes Java properties text. ${...} references are kept verbatim.
func parseProperties(data []byte, source string) (map[string]string, error) {
	loader := properties.Loader{Encoding: properties.ISO_8859_1, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPropertiesReadFailed.Error()), "source", source)
	}
	return p.Map(), nil
}

// configure sets key to value, logging when an existing value is overwritten.
func (s *PropertySource) configure(props map[string]string, key, value string) {
	current, ok := props[key]
	switch {
	case !ok:
		s.Logger.Debug(fmt.Sprintf("using value %q for property %s", value, key))
	case current != value:
		s.Logger.Info(fmt.Sprintf("overwriting property %s=%q with value %q", key, current, value))
	default:
		return
	}
	props[key] = value
}

// fold moves an alias onto its target key. An existing target wins.
func (s *PropertySource) fold(props map[string]string, alias domain.PropertyAlias) {
	value, ok := props[alias.Alias]
	if !ok {
		return
	}
	delete(props, alias.Alias)

	if current, exists := props[alias.Target]; exists {
		s.Logger.Warn(fmt.Sprintf(
			"ignoring property %s=%q in favour of property %s=%q",
			alias.Alias, value, alias.Target, current,
		))
		return
	}

	s.Logger.Info(fmt.Sprintf("using value %q from property %s for property %s", value, alias.Alias, alias.Target))
	props[alias.Target] = value
}
