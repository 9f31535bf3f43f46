// Package engine provides the external schema engine: a subprocess generator
// followed by an optional PostgreSQL script executor.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"slices"
	"strings"

	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/schemagen/internal/core/ports"
	"go.trai.ch/zerr"
)

// Request is the JSON document written to the engine's stdin.
type Request struct {
	Goal       domain.Goal          `json:"goal"`
	Units      []domain.MappingUnit `json:"units"`
	Properties map[string]string    `json:"properties"`
	Classpath  []Root               `json:"classpath"`
	Script     string               `json:"script"`
	Delimiter  string               `json:"delimiter"`
	Format     bool                 `json:"format"`
}

// Root is a classpath root as seen by the engine.
type Root struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
}

// CommandEngine implements ports.SchemaEngine by running a configured command.
// The command reads a Request from stdin, writes the script and reports
// non-fatal problems as a domain.SchemaReport on stdout.
type CommandEngine struct {
	logger ports.Logger
}

// NewCommandEngine creates a new CommandEngine.
func NewCommandEngine(logger ports.Logger) *CommandEngine {
	return &CommandEngine{logger: logger}
}

// Generate runs the engine command and decodes its report.
func (e *CommandEngine) Generate(ctx context.Context, req ports.SchemaRequest) (*domain.SchemaReport, error) {
	if len(req.Engine.Command) == 0 {
		return nil, domain.ErrSchemaEngineNotConfigured
	}

	payload, err := json.Marshal(newRequest(req))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode schema engine request")
	}

	name := req.Engine.Command[0]
	cmd := exec.CommandContext(ctx, name, req.Engine.Command[1:]...) //nolint:gosec // user provided command
	cmd.Dir = req.ProjectDir
	cmd.Env = resolveEnvironment(os.Environ(), req.Engine.Env)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout bytes.Buffer
	stderrLog := &logWriter{logger: e.logger}
	cmd.Stdout = &stdout
	cmd.Stderr = stderrLog

	e.logger.Debug("starting schema engine: " + strings.Join(req.Engine.Command, " "))
	runErr := cmd.Run()
	_ = stderrLog.Close()

	if runErr != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return nil, zerr.With(
			zerr.With(zerr.Wrap(runErr, domain.ErrSchemaEngineFailed.Error()), "exit_code", exitCode),
			"command", name,
		)
	}

	return decodeReport(stdout.Bytes())
}

func newRequest(req ports.SchemaRequest) Request {
	out := Request{
		Goal:       req.Goal,
		Units:      req.Units,
		Properties: req.Properties,
		Script:     req.Script,
		Delimiter:  domain.DefaultDelimiter,
		Format:     req.Properties[domain.PropFormatSQL] == "true",
	}
	if d, ok := req.Properties[domain.PropDelimiter]; ok && d != "" {
		out.Delimiter = d
	}
	if req.Resolver != nil {
		for _, root := range req.Resolver.Roots() {
			out.Classpath = append(out.Classpath, Root{Path: root.Path, Kind: root.Kind.String()})
		}
	}
	return out
}

// decodeReport parses the engine's stdout. Empty output is an empty report.
func decodeReport(data []byte) (*domain.SchemaReport, error) {
	report := &domain.SchemaReport{}
	if len(bytes.TrimSpace(data)) == 0 {
		return report, nil
	}
	if err := json.Unmarshal(data, report); err != nil {
		return nil, zerr.Wrap(err, domain.ErrSchemaReportInvalid.Error())
	}
	return report, nil
}

// logWriter forwards complete lines to the logger.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if msg == "" {
		return
	}
	w.logger.Info(msg)
}

// allowListedEnvVars are the system environment variables inherited by the engine.
var allowListedEnvVars = map[string]struct{}{
	"HOME":      {},
	"TERM":      {},
	"USER":      {},
	"PATH":      {},
	"JAVA_HOME": {},
	"TMPDIR":    {},
}

// resolveEnvironment filters the system environment and applies the engine overrides.
func resolveEnvironment(sysEnv []string, engineEnv map[string]string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed {
			envMap[k] = v
		}
	}

	for k, v := range engineEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}
