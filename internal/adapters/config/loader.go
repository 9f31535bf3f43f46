// Package config provides the configuration loader for schemagen.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/schemagen/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	defaultBuildDirectory      = "target"
	defaultOutputDirectory     = "classes"
	defaultTestOutputDirectory = "test-classes"
	defaultScanScope           = "compile"
	defaultResourceDirectory   = "src/main/resources"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds schemagen.yaml starting at cwd and resolves it into settings.
func (l *Loader) Load(cwd string) (*domain.Settings, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	projectDir := filepath.Dir(configPath)

	env, err := l.readEnv(filepath.Join(projectDir, domain.EnvFileName))
	if err != nil {
		return nil, err
	}

	var schemafile Schemafile
	if err := readAndUnmarshalYAML(configPath, env, &schemafile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	return buildSettings(projectDir, &schemafile)
}

func findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no configuration in any parent directory"), "cwd", cwd)
}

// readEnv reads the optional dotenv file. A missing file yields an empty map.
func (l *Loader) readEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}

	env, err := godotenv.Read(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}
	l.Logger.Debug("loaded " + strconv.Itoa(len(env)) + " variables from " + path)
	return env, nil
}

// readAndUnmarshalYAML reads a YAML file, expands ${VAR} references and unmarshals it into target.
// Variables from env take precedence over the process environment.
func readAndUnmarshalYAML[T any](configPath string, env map[string]string, target *T) error {
	// #nosec G304 -- configPath is discovered by walking up from the working directory
	content, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	expanded := os.Expand(string(content), func(key string) string {
		if v, ok := env[key]; ok {
			return v
		}
		return os.Getenv(key)
	})

	if parseErr := yaml.Unmarshal([]byte(expanded), target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

func buildSettings(projectDir string, dto *Schemafile) (*domain.Settings, error) {
	goal, err := domain.ParseGoal(dto.Goal)
	if err != nil {
		return nil, err
	}

	buildDir := resolvePath(projectDir, orDefault(dto.BuildDirectory, defaultBuildDirectory))

	script := orDefault(dto.Script, goal.DefaultScript())
	scriptPath := resolvePath(buildDir, script)

	ledgerPath := domain.DefaultLedgerPath(buildDir, script)
	if dto.Ledger != "" {
		ledgerPath = resolvePath(buildDir, dto.Ledger)
	}

	scanScopes := defaultScanScope
	if dto.ScanDependencies != nil {
		scanScopes = *dto.ScanDependencies
	}

	resources := dto.Resources
	if len(resources) == 0 {
		resources = []string{defaultResourceDirectory}
	}

	return &domain.Settings{
		Goal:             goal,
		ProjectDir:       projectDir,
		BuildDir:         buildDir,
		OutputDir:        resolvePath(projectDir, orDefault(dto.OutputDirectory, filepath.Join(buildDir, defaultOutputDirectory))),
		TestOutputDir:    resolvePath(projectDir, orDefault(dto.TestOutputDirectory, filepath.Join(buildDir, defaultTestOutputDirectory))),
		Script:           scriptPath,
		LedgerPath:       ledgerPath,
		Skip:             dto.Skip,
		Force:            dto.Force,
		Execute:          boolOrDefault(dto.Execute, true),
		ScanClasses:      boolOrDefault(dto.ScanClasses, true),
		ScanTestClasses:  dto.ScanTestClasses,
		ScanDependencies: domain.ParseScopes(scanScopes),
		Dependencies:     resolveDependencies(projectDir, dto.Dependencies),
		Classpath:        resolvePaths(projectDir, dto.Classpath),
		Classes:          dto.Classes,
		Mappings:         domain.SplitList(dto.Mappings),
		ResourceDirs:     resolvePaths(projectDir, resources),
		PropertiesFile:   dto.PropertiesFile,
		Properties:       dto.Properties,
		Overrides:        overrides(dto),
		Engine: domain.EngineSettings{
			Command: dto.Engine.Command,
			Env:     dto.Engine.Env,
		},
	}, nil
}

// overrides collects the explicit property settings of the configuration file.
func overrides(dto *Schemafile) map[string]string {
	out := make(map[string]string)

	set := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}
	setBool := func(key string, value *bool) {
		if value != nil {
			out[key] = strconv.FormatBool(*value)
		}
	}

	set(domain.PropDialect, dto.Dialect)
	set(domain.PropDelimiter, dto.Delimiter)
	setBool(domain.PropFormatSQL, dto.Format)
	setBool(domain.PropShowSQL, dto.Show)
	setBool(domain.PropCreateNamespaces, dto.CreateNamespaces)
	set(domain.PropImplicitNamingStrategy, dto.ImplicitNamingStrategy)
	set(domain.PropPhysicalNamingStrategy, dto.PhysicalNamingStrategy)
	set(domain.PropDriver, dto.Driver)
	set(domain.PropURL, dto.URL)
	set(domain.PropUsername, dto.Username)
	set(domain.PropPassword, dto.Password)

	return out
}

func resolveDependencies(baseDir string, deps []domain.Dependency) []domain.Dependency {
	if len(deps) == 0 {
		return nil
	}
	out := make([]domain.Dependency, len(deps))
	for i, dep := range deps {
		out[i] = dep
		if dep.Path != "" {
			out[i].Path = resolvePath(baseDir, dep.Path)
		}
	}
	return out
}

func resolvePaths(baseDir string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = resolvePath(baseDir, p)
	}
	return out
}

// resolvePath returns p unchanged if absolute, otherwise joined with baseDir.
func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(baseDir, p))
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func boolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
