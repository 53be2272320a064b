package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputName(t *testing.T) {
	tests := []struct {
		flag string
		want string
	}{
		{flag: "file", want: "file"},
		{flag: "is-path", want: "isPath"},
		{flag: "extract-regex", want: "extractRegex"},
		{flag: "content-as-path", want: "contentAsPath"},
		{flag: "end-type", want: "endType"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			assert.Equal(t, tt.want, inputName(tt.flag))
		})
	}
}

func newInputsCommand() (*cobra.Command, *string, *bool, *string) {
	cmd := &cobra.Command{Use: "test"}
	file := cmd.Flags().String("file", "", "")
	isPath := cmd.Flags().Bool("is-path", false, "")
	level := cmd.Flags().String("log-level", "info", "")
	return cmd, file, isPath, level
}

func TestBindInputs_FillsUnsetFlags(t *testing.T) {
	// Setup
	cmd, file, isPath, level := newInputsCommand()
	env := map[string]string{
		"INPUT_FILE":     "data.json",
		"INPUT_ISPATH":   "true",
		"INPUT_LOGLEVEL": "debug",
	}

	// Execute
	err := bindInputs(cmd, func(key string) string { return env[key] })

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "data.json", *file)
	assert.True(t, *isPath)
	assert.Equal(t, "info", *level, "local flags are not read from inputs")
}

func TestBindInputs_CommandLineWins(t *testing.T) {
	// Setup
	cmd, file, _, _ := newInputsCommand()
	require.NoError(t, cmd.Flags().Set("file", "cli.json"))
	env := map[string]string{"INPUT_FILE": "input.json"}

	// Execute
	err := bindInputs(cmd, func(key string) string { return env[key] })

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "cli.json", *file)
}

func TestBindInputs_EmptyInputKeepsDefault(t *testing.T) {
	// Setup
	cmd := &cobra.Command{Use: "test"}
	typ := cmd.Flags().String("type", "json", "")
	env := map[string]string{"INPUT_TYPE": "  "}

	// Execute
	err := bindInputs(cmd, func(key string) string { return env[key] })

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "json", *typ)
}

func TestBindInputs_InvalidValue(t *testing.T) {
	// Setup
	cmd, _, _, _ := newInputsCommand()
	env := map[string]string{"INPUT_ISPATH": "maybe"}

	// Execute
	err := bindInputs(cmd, func(key string) string { return env[key] })

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input isPath")
}
