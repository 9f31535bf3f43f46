package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Goal is the schema operation requested by the host.
type Goal string

const (
	// GoalCreate generates a script that creates the schema.
	GoalCreate Goal = "create"
	// GoalUpdate generates a script that migrates an existing schema.
	GoalUpdate Goal = "update"
	// GoalDrop generates a script that drops the schema.
	GoalDrop Goal = "drop"
)

// ParseGoal parses a goal name case-insensitively. An empty name yields GoalCreate.
func ParseGoal(s string) (Goal, error) {
	switch Goal(strings.ToLower(strings.TrimSpace(s))) {
	case "", GoalCreate:
		return GoalCreate, nil
	case GoalUpdate:
		return GoalUpdate, nil
	case GoalDrop:
		return GoalDrop, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidGoal, "unknown goal"), "goal", s)
	}
}

// DefaultScript returns the default script file name for the goal.
func (g Goal) DefaultScript() string {
	return string(g) + ".sql"
}

// EngineSettings configures the external schema engine process.
type EngineSettings struct {
	Command []string
	Env     map[string]string
}

// Settings is the fully resolved input of one run. All paths are absolute.
type Settings struct {
	Goal Goal

	ProjectDir    string
	BuildDir      string
	OutputDir     string
	TestOutputDir string
	Script        string
	LedgerPath    string

	Skip    bool
	Force   bool
	Execute bool

	ScanClasses      bool
	ScanTestClasses  bool
	ScanDependencies []string

	Dependencies []Dependency
	Classpath    []string
	Classes      []string
	Mappings     []string
	ResourceDirs []string

	// PropertiesFile is an explicit properties file; empty means the classpath default.
	PropertiesFile string
	// Properties holds the properties map of the configuration file.
	Properties map[string]string
	// Overrides holds explicitly configured settings keyed by property name. They win over every source.
	Overrides map[string]string

	Engine EngineSettings
}
