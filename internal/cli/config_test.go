package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/repo-actions/internal/domain"
)

func TestConfigCommand_NoSubcommand_ShowsHelp(t *testing.T) {
	// Setup
	env := newTestContainer(t)

	// Execute
	out, err := execute(env.Container, "config")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "init")
	assert.Contains(t, out, "template")
}

func TestConfigInitCommand_CreatesFile(t *testing.T) {
	// Setup
	env := newTestContainer(t)
	path := filepath.Join(t.TempDir(), ".github", "changelog.yml")

	// Execute
	out, err := execute(env.Container, "config", "init", path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Created config file: "+path+"\n", out)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "milestone_state: closed")
}

func TestConfigInitCommand_AlreadyExists(t *testing.T) {
	// Setup
	env := newTestContainer(t)
	path := writeFile(t, "changelog.yml", "header: Old\n")

	// Execute
	_, err := execute(env.Container, "config", "init", path)

	// Assert
	assert.ErrorIs(t, err, domain.ErrConfigExists)
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "header: Old\n", string(data))
}

func TestConfigInitCommand_InvalidKind(t *testing.T) {
	// Setup
	env := newTestContainer(t)
	path := filepath.Join(t.TempDir(), "x.yml")

	// Execute
	_, err := execute(env.Container, "config", "init", path, "--kind", "unknown")

	// Assert
	assert.ErrorIs(t, err, domain.ErrInvalidConfigKind)
	assert.NoFileExists(t, path)
}

func TestConfigTemplateCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "changelog yaml", args: nil, want: "milestone_state: closed"},
		{name: "releases toml", args: []string{"--kind", "releases", "--format", "toml"}, want: "published"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			env := newTestContainer(t)

			// Execute
			out, err := execute(env.Container, append([]string{"config", "template"}, tt.args...)...)

			// Assert
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}
