// Package actions implements the GitHub Actions runner protocol:
// inputs, step outputs, exported variables, masking and failure.
package actions

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/runoshun/repo-actions/internal/domain"
)

// Ensure Runtime implements domain.ActionIO interface.
var _ domain.ActionIO = (*Runtime)(nil)

// Environment variables read from the runner.
const (
	EnvActions    = "GITHUB_ACTIONS"
	EnvOutput     = "GITHUB_OUTPUT"
	EnvExport     = "GITHUB_ENV"
	EnvRepository = "GITHUB_REPOSITORY"
	EnvServerURL  = "GITHUB_SERVER_URL"
	EnvAPIURL     = "GITHUB_API_URL"
	EnvToken      = "GITHUB_TOKEN"
	EnvDebug      = "RUNNER_DEBUG"
)

// Runtime talks to the runner through environment variables, files and stdout.
// Fields are ordered to minimize memory padding.
type Runtime struct {
	stdout io.Writer
	getenv func(string) string
	mu     sync.Mutex
}

// New creates a Runtime. A nil getenv reads the process environment.
func New(stdout io.Writer, getenv func(string) string) *Runtime {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &Runtime{stdout: stdout, getenv: getenv}
}

// InputEnv returns the environment variable holding an input.
// Input names are upper-cased with spaces replaced by underscores.
func InputEnv(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// Input returns the trimmed value of an input, empty when unset.
func (r *Runtime) Input(name string) string {
	return strings.TrimSpace(r.getenv(InputEnv(name)))
}

// Stdout returns the writer workflow commands are written to.
func (r *Runtime) Stdout() io.Writer {
	return r.stdout
}

// Getenv returns an environment variable.
func (r *Runtime) Getenv(name string) string {
	return r.getenv(name)
}

// OnRunner reports whether the process runs inside GitHub Actions.
func (r *Runtime) OnRunner() bool {
	return r.getenv(EnvActions) == "true"
}

// Debug reports whether step debug logging is enabled.
func (r *Runtime) Debug() bool {
	return r.getenv(EnvDebug) == "1"
}

// RepoContext returns the repository from GITHUB_REPOSITORY.
// Returns ErrNoRepository when the variable is unset.
func (r *Runtime) RepoContext() (domain.RepoContext, error) {
	name := r.getenv(EnvRepository)
	if name == "" {
		return domain.RepoContext{}, domain.ErrNoRepository
	}
	repo, err := domain.ParseRepo(name)
	if err != nil {
		return domain.RepoContext{}, err
	}
	server := r.getenv(EnvServerURL)
	if server == "" {
		server = domain.DefaultServerURL
	}
	return domain.RepoContext{ServerURL: server, Repo: repo}, nil
}

// SetOutput sets a step output.
func (r *Runtime) SetOutput(name, value string) error {
	if path := r.getenv(EnvOutput); path != "" {
		return r.appendFileCommand(path, name, value)
	}
	r.issue("set-output", "name="+escapeProperty(name), value)
	return nil
}

// ExportVariable exports an environment variable to later steps.
func (r *Runtime) ExportVariable(name, value string) error {
	if path := r.getenv(EnvExport); path != "" {
		return r.appendFileCommand(path, name, value)
	}
	r.issue("set-env", "name="+escapeProperty(name), value)
	return nil
}

// SetSecret masks a value in the job log.
func (r *Runtime) SetSecret(value string) {
	if value == "" {
		return
	}
	r.issue("add-mask", "", value)
}

// Fail reports err as an error annotation.
func (r *Runtime) Fail(err error) {
	r.issue("error", "", err.Error())
}

// issue writes a workflow command: ::name props::message
func (r *Runtime) issue(command, props, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	line := "::" + command
	if props != "" {
		line += " " + props
	}
	_, _ = fmt.Fprintf(r.stdout, "%s::%s\n", line, escapeData(message))
}

// appendFileCommand appends name/value to a runner file in heredoc form.
func (r *Runtime) appendFileCommand(path, name, value string) error {
	delimiter, err := newDelimiter()
	if err != nil {
		return err
	}
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return fmt.Errorf("value for %s contains the delimiter %s", name, delimiter)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // Runner-provided path
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func newDelimiter() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate delimiter: %w", err)
	}
	return "ghadelimiter_" + hex.EncodeToString(buf), nil
}

func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}

func escapeProperty(s string) string {
	s = escapeData(s)
	s = strings.ReplaceAll(s, ":", "%3A")
	return strings.ReplaceAll(s, ",", "%2C")
}
