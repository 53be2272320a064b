package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// ReleaseSort decides the order of release entries.
type ReleaseSort string

// Release sort policies. Both sort descending.
const (
	ReleaseSortPublished ReleaseSort = "published"
	ReleaseSortName      ReleaseSort = "name"
)

// ReleasesConfig holds the layout of a changelog built from releases.
type ReleasesConfig struct {
	Title        string      `yaml:"title" toml:"title"` // First line, written as-is (e.g. "# Changelog")
	Description  string      `yaml:"description" toml:"description"`
	EmptyRelease string      `yaml:"empty_release" toml:"empty_release"` // Body used for releases without notes
	Sort         ReleaseSort `yaml:"sort" toml:"sort"`
	LineEnding   string      `yaml:"line_ending" toml:"line_ending"`
	Links        bool        `yaml:"links" toml:"links"` // Link release names to their page
}

// NewDefaultReleasesConfig returns the default release changelog layout.
func NewDefaultReleasesConfig() *ReleasesConfig {
	return &ReleasesConfig{
		Title:        "# Changelog",
		Description:  DefaultChangelogDescription,
		EmptyRelease: "No changelog.",
		Sort:         ReleaseSortPublished,
		LineEnding:   LineEndingCRLF,
		Links:        true,
	}
}

// Validate checks policy values.
func (c *ReleasesConfig) Validate() error {
	if c.Sort != ReleaseSortPublished && c.Sort != ReleaseSortName {
		return fmt.Errorf("%w: sort = '%s' (allowed: published, name)", ErrInvalidPolicy, c.Sort)
	}
	if c.LineEnding != LineEndingCRLF && c.LineEnding != LineEndingLF {
		return fmt.Errorf("%w: line_ending = '%s' (allowed: crlf, lf)", ErrInvalidPolicy, c.LineEnding)
	}
	return nil
}

// SortReleases returns published releases ordered newest first.
// Releases without a publish date (unpublished drafts) are dropped.
func SortReleases(releases []Release, by ReleaseSort) []Release {
	published := slices.DeleteFunc(slices.Clone(releases), func(r Release) bool {
		return r.PublishedAt == ""
	})
	slices.SortStableFunc(published, func(a, b Release) int {
		if by == ReleaseSortName {
			return cmp.Compare(b.DisplayName(), a.DisplayName())
		}
		return cmp.Compare(b.PublishedAt, a.PublishedAt)
	})
	return published
}

// RenderReleases renders releases, already ordered, as a changelog.
func RenderReleases(releases []Release, cfg *ReleasesConfig) string {
	var b strings.Builder

	b.WriteString(cfg.Title + "\n\n")
	if cfg.Description != "" {
		b.WriteString(cfg.Description + "\n\n")
	}

	for _, r := range releases {
		name := r.DisplayName()
		if cfg.Links && r.HTMLURL != "" {
			name = "[" + name + "](" + r.HTMLURL + ")"
		}
		body := r.Body
		if body == "" {
			body = cfg.EmptyRelease
		}
		fmt.Fprintf(&b, "## %s - %s\n%s\n\n", name, FormatDate(r.PublishedAt), body)
	}

	return NormalizeLineEndings(b.String(), cfg.LineEnding)
}

// ReleaseChange lists release fields to overwrite. Empty values leave the
// field unchanged; Draft and Prerelease accept "true" or "false".
type ReleaseChange struct {
	Tag        string
	Commitish  string
	Name       string
	Body       string
	Draft      string
	Prerelease string
}

// Apply returns a copy of r with the change applied.
func (c ReleaseChange) Apply(r Release) Release {
	if c.Tag != "" {
		r.TagName = c.Tag
	}
	if c.Commitish != "" {
		r.TargetCommitish = c.Commitish
	}
	if c.Name != "" {
		r.Name = c.Name
	}
	if c.Body != "" {
		r.Body = c.Body
	}
	if c.Draft != "" {
		r.Draft = c.Draft == "true"
	}
	if c.Prerelease != "" {
		r.Prerelease = c.Prerelease == "true"
	}
	return r
}
