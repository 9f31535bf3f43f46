package engine

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5"
	"go.trai.ch/schemagen/internal/core/domain"
	"go.trai.ch/schemagen/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	jdbcPostgresPrefix = "jdbc:postgresql:"
	postgresScheme     = "postgres"
	postgresqlScheme   = "postgresql"
)

// ScriptExecutor applies a generated script to a PostgreSQL database.
// Failing statements are collected as non-fatal exceptions.
type ScriptExecutor struct {
	logger ports.Logger
}

// NewScriptExecutor creates a new ScriptExecutor.
func NewScriptExecutor(logger ports.Logger) *ScriptExecutor {
	return &ScriptExecutor{logger: logger}
}

// Execute runs every statement of req.Script against the configured database.
// Without a connection URL nothing is executed.
func (x *ScriptExecutor) Execute(ctx context.Context, req ports.SchemaRequest) ([]domain.SchemaException, error) {
	rawURL := req.Properties[domain.PropURL]
	if rawURL == "" {
		x.logger.Info("no connection url configured, skipping execution of " + req.Script)
		return nil, nil
	}

	connString, err := ConnString(rawURL)
	if err != nil {
		x.logger.Warn(fmt.Sprintf("cannot execute script against %s, skipping execution", rawURL))
		return nil, nil
	}

	// #nosec G304 -- script path comes from the project configuration
	content, err := os.ReadFile(req.Script)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", req.Script)
	}

	delimiter := req.Properties[domain.PropDelimiter]
	if delimiter == "" {
		delimiter = domain.DefaultDelimiter
	}
	statements := SplitStatements(string(content), delimiter)
	if len(statements) == 0 {
		x.logger.Info("script " + req.Script + " is empty, nothing to execute")
		return nil, nil
	}

	cfg, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrUnsupportedDatabaseURL.Error()), "url", rawURL)
	}
	if user := req.Properties[domain.PropUsername]; user != "" {
		cfg.User = user
	}
	if password := req.Properties[domain.PropPassword]; password != "" {
		cfg.Password = password
	}

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDatabaseConnectFailed.Error()), "url", rawURL)
	}
	defer func() { _ = conn.Close(context.WithoutCancel(ctx)) }()

	x.logger.Info(fmt.Sprintf("executing %d statements from %s", len(statements), req.Script))

	var exceptions []domain.SchemaException
	for _, stmt := range statements {
		if err := ctx.Err(); err != nil {
			return exceptions, zerr.Wrap(err, "script execution interrupted")
		}
		if _, err := conn.Exec(ctx, stmt); err != nil {
			x.logger.Debug("statement failed: " + stmt)
			exceptions = append(exceptions, domain.SchemaException{
				Message:   err.Error(),
				Statement: stmt,
			})
		}
	}

	return exceptions, nil
}

// ConnString translates a JDBC or libpq style PostgreSQL URL into a pgx connection string.
func ConnString(raw string) (string, error) {
	switch {
	case strings.HasPrefix(raw, jdbcPostgresPrefix+"//"):
		return postgresScheme + ":" + strings.TrimPrefix(raw, jdbcPostgresPrefix), nil
	case strings.HasPrefix(raw, jdbcPostgresPrefix):
		// jdbc:postgresql:database connects to localhost.
		return postgresScheme + "://localhost/" + strings.TrimPrefix(raw, jdbcPostgresPrefix), nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrUnsupportedDatabaseURL.Error()), "url", raw)
	}
	if u.Scheme == postgresScheme || u.Scheme == postgresqlScheme {
		return raw, nil
	}
	return "", zerr.With(zerr.Wrap(domain.ErrUnsupportedDatabaseURL, "not a postgresql url"), "url", raw)
}

// SplitStatements splits a script on delimiter, ignoring delimiters inside quoted
// text, PostgreSQL dollar-quoted bodies and comments. Empty statements are dropped.
func SplitStatements(script, delimiter string) []string {
	if delimiter == "" {
		delimiter = domain.DefaultDelimiter
	}

	var (
		statements []string
		current    strings.Builder
		quote      byte
	)

	flush := func() {
		if stmt := strings.TrimSpace(current.String()); stmt != "" && !isCommentOnly(stmt) {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	for i := 0; i < len(script); i++ {
		c := script[i]

		switch {
		case quote != 0:
			current.WriteByte(c)
			if c == quote {
				quote = 0
			}
			continue
		case c == '\'' || c == '"':
			quote = c
			current.WriteByte(c)
			continue
		case c == '$':
			if tag := dollarTag(script[i:]); tag != "" {
				end := strings.Index(script[i+len(tag):], tag)
				if end < 0 {
					end = len(script) - i - len(tag)
				} else {
					end += len(tag)
				}
				current.WriteString(script[i : i+len(tag)+end])
				i += len(tag) + end - 1
				continue
			}
		case strings.HasPrefix(script[i:], "--"):
			end := strings.IndexByte(script[i:], '\n')
			if end < 0 {
				end = len(script) - i
			}
			current.WriteString(script[i : i+end])
			i += end - 1
			continue
		case strings.HasPrefix(script[i:], delimiter):
			flush()
			i += len(delimiter) - 1
			continue
		}

		current.WriteByte(c)
	}
	flush()

	return statements
}

// dollarTag returns the opening dollar-quote tag at the start of s, such as "$$" or "$body$".
func dollarTag(s string) string {
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '$':
			return s[:i+1]
		case c == '_' || unicode.IsLetter(rune(c)) || (i > 1 && unicode.IsDigit(rune(c))):
		default:
			return ""
		}
	}
	return ""
}

func isCommentOnly(stmt string) bool {
	for _, line := range strings.Split(stmt, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "--") {
			return false
		}
	}
	return true
}
