package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/repo-actions/internal/domain"
	"github.com/runoshun/repo-actions/internal/testutil"
)

func newReleasesGitHub() *testutil.MockGitHub {
	gh := testutil.NewMockGitHub()
	gh.Releases = []domain.Release{
		{ID: 10, TagName: "v1.0.0", Name: "First", Body: "notes", Draft: true},
		{ID: 11, TagName: "v1.1.0", Name: "2024", Prerelease: true},
	}
	return gh
}

func TestUpdateRelease_Execute(t *testing.T) {
	t.Run("by id", func(t *testing.T) {
		// Setup
		gh := newReleasesGitHub()
		uc := NewUpdateRelease(gh, discardLogger())

		// Execute
		out, err := uc.Execute(context.Background(), UpdateReleaseInput{
			ID:     "10",
			Change: domain.ReleaseChange{Name: "Renamed", Draft: "false"},
		})

		// Assert
		require.NoError(t, err)
		expected := domain.Release{ID: 10, TagName: "v1.0.0", Name: "Renamed", Body: "notes"}
		assert.Equal(t, expected, out.Release)
		assert.Equal(t, []domain.Release{expected}, gh.UpdatedReleases)
	})

	t.Run("by name", func(t *testing.T) {
		gh := newReleasesGitHub()
		uc := NewUpdateRelease(gh, discardLogger())

		out, err := uc.Execute(context.Background(), UpdateReleaseInput{
			ID:     "First",
			Change: domain.ReleaseChange{Tag: "v1.0.1", Body: "fixed"},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(10), out.Release.ID)
		assert.Equal(t, "v1.0.1", out.Release.TagName)
		assert.Equal(t, "fixed", out.Release.Body)
		assert.True(t, out.Release.Draft)
	})

	t.Run("numeric name falls back to name match", func(t *testing.T) {
		gh := newReleasesGitHub()
		uc := NewUpdateRelease(gh, discardLogger())

		out, err := uc.Execute(context.Background(), UpdateReleaseInput{
			ID:     "2024",
			Change: domain.ReleaseChange{Prerelease: "false"},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(11), out.Release.ID)
		assert.False(t, out.Release.Prerelease)
	})

	t.Run("not found", func(t *testing.T) {
		gh := newReleasesGitHub()
		uc := NewUpdateRelease(gh, discardLogger())

		_, err := uc.Execute(context.Background(), UpdateReleaseInput{ID: "missing"})

		assert.ErrorIs(t, err, domain.ErrReleaseNotFound)
		assert.Empty(t, gh.UpdatedReleases)
	})

	t.Run("update error", func(t *testing.T) {
		gh := newReleasesGitHub()
		gh.UpdateReleaseErr = assert.AnError
		uc := NewUpdateRelease(gh, discardLogger())

		_, err := uc.Execute(context.Background(), UpdateReleaseInput{ID: "10"})

		assert.ErrorIs(t, err, assert.AnError)
	})
}
