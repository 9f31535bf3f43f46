package config

import "go.trai.ch/schemagen/internal/core/domain"

// Schemafile represents the structure of the schemagen.yaml configuration file.
type Schemafile struct {
	Version string `yaml:"version"`
	Goal    string `yaml:"goal"`

	BuildDirectory      string `yaml:"buildDirectory"`
	OutputDirectory     string `yaml:"outputDirectory"`
	TestOutputDirectory string `yaml:"testOutputDirectory"`
	Script              string `yaml:"script"`
	Ledger              string `yaml:"ledger"`

	Skip    bool  `yaml:"skip"`
	Force   bool  `yaml:"force"`
	Execute *bool `yaml:"execute"`

	ScanClasses      *bool   `yaml:"scanClasses"`
	ScanTestClasses  bool    `yaml:"scanTestClasses"`
	ScanDependencies *string `yaml:"scanDependencies"`

	Dependencies []domain.Dependency `yaml:"dependencies"`
	Classpath    []string            `yaml:"classpath"`
	Classes      []string            `yaml:"classes"`
	Mappings     string              `yaml:"mappings"`
	Resources    []string            `yaml:"resources"`

	PropertiesFile string            `yaml:"propertiesFile"`
	Properties     map[string]string `yaml:"properties"`

	Dialect                string `yaml:"dialect"`
	Delimiter              string `yaml:"delimiter"`
	Format                 *bool  `yaml:"format"`
	Show                   *bool  `yaml:"show"`
	CreateNamespaces       *bool  `yaml:"createNamespaces"`
	ImplicitNamingStrategy string `yaml:"implicitNamingStrategy"`
	PhysicalNamingStrategy string `yaml:"physicalNamingStrategy"`

	Driver   string `yaml:"driver"`
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	Engine EngineDTO `yaml:"engine"`
}

// EngineDTO configures the external schema engine.
type EngineDTO struct {
	Command []string          `yaml:"command"`
	Env     map[string]string `yaml:"env"`
}
