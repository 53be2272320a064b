package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/repo-actions/internal/domain"
	"github.com/runoshun/repo-actions/internal/infra/document"
	"github.com/runoshun/repo-actions/internal/testutil"
)

func TestAccessFile_Execute(t *testing.T) {
	t.Run("reads values and applies assignments", func(t *testing.T) {
		// Setup
		io := testutil.NewMockActionIO()
		uc := NewAccessFile(document.NewCodec(), io, discardLogger())

		// Execute
		out, err := uc.Execute(context.Background(), AccessFileInput{
			File: `{"version":"1.0.0","build":{"tags":["a","b"]}}`,
			Get:  `{"VERSION":{"path":"version","step":true,"env":true},"TAG":{"path":"build.tags.1","step":true},"NONE":{"path":"missing"}}`,
			Set:  `{"bump":{"path":"version","value":"1.1.0"},"os":{"path":"build.os","value":"linux"}}`,
			Type: domain.FormatJSON,
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, `{"build":{"os":"linux","tags":["a","b"]},"version":"1.1.0"}`, out.Content)
		assert.Equal(t, map[string]string{"VERSION": "1.0.0", "TAG": "b", "NONE": ""}, out.Values)
		assert.Equal(t, map[string]string{"VERSION": "1.0.0", "TAG": "b"}, io.Outputs)
		assert.Equal(t, map[string]string{"VERSION": "1.0.0"}, io.Exports)
	})

	t.Run("yaml document", func(t *testing.T) {
		io := testutil.NewMockActionIO()
		uc := NewAccessFile(document.NewCodec(), io, discardLogger())

		out, err := uc.Execute(context.Background(), AccessFileInput{
			File: "name: app\n",
			Set:  "rename:\n  path: name\n  value: web\n",
			Type: domain.FormatYAML,
		})

		require.NoError(t, err)
		assert.Equal(t, "name: web\n", out.Content)
		assert.Empty(t, io.Outputs)
	})

	t.Run("writes file back", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "package.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version":"1.0.0"}`), 0o600))
		uc := NewAccessFile(document.NewCodec(), testutil.NewMockActionIO(), discardLogger())

		out, err := uc.Execute(context.Background(), AccessFileInput{
			File:   path,
			IsPath: true,
			Write:  true,
			Set:    `{"v":{"path":"version","value":"2.0.0"}}`,
			Type:   domain.FormatJSON,
		})

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, `{"version":"2.0.0"}`, string(data))
		assert.Equal(t, out.Content, string(data))
	})

	t.Run("leaves file untouched without write", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "package.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version":"1.0.0"}`), 0o600))
		uc := NewAccessFile(document.NewCodec(), testutil.NewMockActionIO(), discardLogger())

		_, err := uc.Execute(context.Background(), AccessFileInput{
			File:   path,
			IsPath: true,
			Set:    `{"v":{"path":"version","value":"2.0.0"}}`,
			Type:   domain.FormatJSON,
		})

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, `{"version":"1.0.0"}`, string(data))
	})
}

func TestAccessFile_Errors(t *testing.T) {
	uc := NewAccessFile(document.NewCodec(), testutil.NewMockActionIO(), discardLogger())

	t.Run("invalid type", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), AccessFileInput{File: "{}", Type: "xml"})
		assert.ErrorIs(t, err, domain.ErrInvalidType)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), AccessFileInput{
			File:   filepath.Join(t.TempDir(), "none.json"),
			IsPath: true,
			Type:   domain.FormatJSON,
		})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed get", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), AccessFileInput{File: "{}", Get: `{"a":`, Type: domain.FormatJSON})
		var perr *domain.ParseError
		assert.ErrorAs(t, err, &perr)
	})

	t.Run("output failure", func(t *testing.T) {
		io := testutil.NewMockActionIO()
		io.SetOutputErr = assert.AnError
		_, err := NewAccessFile(document.NewCodec(), io, discardLogger()).Execute(context.Background(), AccessFileInput{
			File: `{"a":"1"}`,
			Get:  `{"A":{"path":"a","step":true}}`,
			Type: domain.FormatJSON,
		})
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestAccessFile_FailedSetEmitsNothing(t *testing.T) {
	// Setup
	io := testutil.NewMockActionIO()
	uc := NewAccessFile(document.NewCodec(), io, discardLogger())

	// Execute
	_, err := uc.Execute(context.Background(), AccessFileInput{
		File: `{"version":"1.0"}`,
		Get:  `{"V":{"path":"version","step":true,"env":true}}`,
		Set:  `{"x":{"path":"version.deep","value":"2"}}`,
		Type: domain.FormatJSON,
	})

	// Assert
	require.Error(t, err)
	assert.Empty(t, io.Outputs)
	assert.Empty(t, io.Exports)
}
