package actions

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/repo-actions/internal/domain"
)

func mapEnv(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}

func TestInputEnv(t *testing.T) {
	assert.Equal(t, "INPUT_TOKEN", InputEnv("token"))
	assert.Equal(t, "INPUT_CONTENTASPATH", InputEnv("contentAsPath"))
	assert.Equal(t, "INPUT_MY_INPUT", InputEnv("my input"))
}

func TestRuntime_Input(t *testing.T) {
	r := New(&bytes.Buffer{}, mapEnv(map[string]string{"INPUT_FILE": "  CHANGELOG.md\n"}))

	assert.Equal(t, "CHANGELOG.md", r.Input("file"))
	assert.Equal(t, "", r.Input("missing"))
}

func TestRuntime_SetOutput_File(t *testing.T) {
	// Setup
	path := filepath.Join(t.TempDir(), "output")
	var stdout bytes.Buffer
	r := New(&stdout, mapEnv(map[string]string{EnvOutput: path}))

	// Execute
	require.NoError(t, r.SetOutput("content", "line1\nline2"))
	require.NoError(t, r.SetOutput("json", "{}"))

	// Assert
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	pattern := regexp.MustCompile(`^content<<(ghadelimiter_[0-9a-f]+)\nline1\nline2\n(ghadelimiter_[0-9a-f]+)\njson<<ghadelimiter_[0-9a-f]+\n\{\}\nghadelimiter_[0-9a-f]+\n$`)
	m := pattern.FindStringSubmatch(string(data))
	require.NotNil(t, m, string(data))
	assert.Equal(t, m[1], m[2])
	assert.Empty(t, stdout.String())
}

func TestRuntime_SetOutput_Legacy(t *testing.T) {
	var stdout bytes.Buffer
	r := New(&stdout, mapEnv(nil))

	require.NoError(t, r.SetOutput("content", "a\nb 100%"))

	assert.Equal(t, "::set-output name=content::a%0Ab 100%25\n", stdout.String())
}

func TestRuntime_ExportVariable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env")
	r := New(&bytes.Buffer{}, mapEnv(map[string]string{EnvExport: path}))

	require.NoError(t, r.ExportVariable("VERSION", "1.2.3"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Regexp(t, `^VERSION<<ghadelimiter_[0-9a-f]+\n1\.2\.3\nghadelimiter_[0-9a-f]+\n$`, string(data))
}

func TestRuntime_SetSecretAndFail(t *testing.T) {
	var stdout bytes.Buffer
	r := New(&stdout, mapEnv(nil))

	r.SetSecret("hunter2")
	r.SetSecret("")
	r.Fail(errors.New("milestone not found: v9"))

	assert.Equal(t, "::add-mask::hunter2\n::error::milestone not found: v9\n", stdout.String())
}

func TestRuntime_RepoContext(t *testing.T) {
	r := New(&bytes.Buffer{}, mapEnv(map[string]string{EnvRepository: "acme/widget"}))
	rc, err := r.RepoContext()
	require.NoError(t, err)
	assert.Equal(t, domain.RepoContext{ServerURL: domain.DefaultServerURL, Repo: domain.Repo{Owner: "acme", Name: "widget"}}, rc)

	r = New(&bytes.Buffer{}, mapEnv(map[string]string{EnvRepository: "acme/widget", EnvServerURL: "https://ghe.example.com"}))
	rc, err = r.RepoContext()
	require.NoError(t, err)
	assert.Equal(t, "https://ghe.example.com/acme/widget", rc.URL())

	_, err = New(&bytes.Buffer{}, mapEnv(nil)).RepoContext()
	assert.ErrorIs(t, err, domain.ErrNoRepository)
}

func TestRuntime_Flags(t *testing.T) {
	r := New(&bytes.Buffer{}, mapEnv(map[string]string{EnvActions: "true", EnvDebug: "1"}))
	assert.True(t, r.OnRunner())
	assert.True(t, r.Debug())

	r = New(&bytes.Buffer{}, mapEnv(nil))
	assert.False(t, r.OnRunner())
	assert.False(t, r.Debug())
}
