package cli

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/runoshun/repo-actions/internal/app"
	"github.com/runoshun/repo-actions/internal/domain"
	"github.com/runoshun/repo-actions/internal/testutil"
)

var testRepo = domain.RepoContext{
	ServerURL: "https://github.com",
	Repo:      domain.Repo{Owner: "o", Name: "r"},
}

// testEnv bundles a container with the mocks behind it.
type testEnv struct {
	Container *app.Container
	GitHub    *testutil.MockGitHub
	ActionIO  *testutil.MockActionIO
}

// newTestContainer creates a container over mocks, bound to testRepo.
func newTestContainer(t *testing.T) *testEnv {
	t.Helper()

	gh := testutil.NewMockGitHub()
	actionIO := testutil.NewMockActionIO()
	clock := &testutil.MockClock{NowTime: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c := app.NewWithDeps(app.Config{Repo: testRepo}, gh, actionIO, clock, logger)
	return &testEnv{Container: c, GitHub: gh, ActionIO: actionIO}
}

// execute runs the root command with args and returns its stdout.
func execute(c *app.Container, args ...string) (string, error) {
	root := NewRootCommand(c, "test-version")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// writeFile writes content to name in a temporary directory and returns the path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
