package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortReleases(t *testing.T) {
	releases := []Release{
		{ID: 1, TagName: "v1.0.0", Name: "1.0.0", PublishedAt: "2023-01-01T00:00:00Z"},
		{ID: 2, TagName: "v1.2.0", PublishedAt: "2023-02-01T00:00:00Z"},
		{ID: 3, TagName: "v2.0.0", Name: "2.0.0", Draft: true},
		{ID: 4, TagName: "v1.1.0", Name: "1.1.0", PublishedAt: "2023-03-01T00:00:00Z"},
	}

	byDate := SortReleases(releases, ReleaseSortPublished)
	require.Len(t, byDate, 3)
	assert.Equal(t, []int64{4, 2, 1}, releaseIDs(byDate))

	byName := SortReleases(releases, ReleaseSortName)
	assert.Equal(t, []int64{2, 4, 1}, releaseIDs(byName))

	assert.Len(t, releases, 4, "input is not modified")
}

func TestRenderReleases(t *testing.T) {
	cfg := NewDefaultReleasesConfig()
	cfg.Description = "All releases."
	releases := []Release{
		{TagName: "v1.1.0", Name: "1.1.0", Body: "- Added things", PublishedAt: "2023-03-01T10:00:00Z", HTMLURL: "https://github.com/o/r/releases/tag/v1.1.0"},
		{TagName: "v1.0.0", PublishedAt: "2023-01-01T10:00:00Z"},
	}

	out := RenderReleases(releases, cfg)

	assert.Equal(t,
		"# Changelog\r\n\r\nAll releases.\r\n\r\n"+
			"## [1.1.0](https://github.com/o/r/releases/tag/v1.1.0) - 2023-03-01\r\n- Added things\r\n\r\n"+
			"## v1.0.0 - 2023-01-01\r\nNo changelog.\r\n\r\n",
		out)
}

func TestReleaseChange_Apply(t *testing.T) {
	r := Release{ID: 9, TagName: "v1", Name: "One", Body: "old", Draft: true}

	got := ReleaseChange{Name: "Uno", Draft: "false", Prerelease: "true"}.Apply(r)

	assert.Equal(t, "v1", got.TagName)
	assert.Equal(t, "Uno", got.Name)
	assert.Equal(t, "old", got.Body)
	assert.False(t, got.Draft)
	assert.True(t, got.Prerelease)
	assert.True(t, r.Draft, "original is untouched")
}

func TestReleasesConfig_Validate(t *testing.T) {
	cfg := NewDefaultReleasesConfig()
	require.NoError(t, cfg.Validate())

	cfg.Sort = "random"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidPolicy)
}

func releaseIDs(releases []Release) []int64 {
	ids := make([]int64, 0, len(releases))
	for _, r := range releases {
		ids = append(ids, r.ID)
	}
	return ids
}
