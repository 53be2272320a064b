// Package config loads action configuration files.
// Files are YAML (.yml, .yaml, .json) or TOML (.toml) and are merged over built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/repo-actions/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration files.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new Loader. Unknown keys are reported to logger as warnings.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// changelogFile mirrors domain.ChangelogConfig with optional fields.
type changelogFile struct {
	Header           *string                `yaml:"header" toml:"header"`
	Description      *string                `yaml:"description" toml:"description"`
	Footer           *string                `yaml:"footer" toml:"footer"`
	NoContent        *string                `yaml:"no_content" toml:"no_content"`
	EmptyText        *string                `yaml:"empty_text" toml:"empty_text"`
	TagPrefix        *string                `yaml:"tag_prefix" toml:"tag_prefix"`
	MilestoneState   *string                `yaml:"milestone_state" toml:"milestone_state"`
	LineEnding       *string                `yaml:"line_ending" toml:"line_ending"`
	SectionMatch     *domain.SectionMatch   `yaml:"section_match" toml:"section_match"`
	SectionSort      *domain.SectionSort    `yaml:"section_sort" toml:"section_sort"`
	MilestoneSort    *domain.SortDirection  `yaml:"milestone_sort" toml:"milestone_sort"`
	MissingMilestone *domain.MissingPolicy  `yaml:"missing_milestone" toml:"missing_milestone"`
	EmptyMilestones  *domain.EmptyPolicy    `yaml:"empty_milestones" toml:"empty_milestones"`
	PullRequests     *bool                  `yaml:"pull_requests" toml:"pull_requests"`
	IssueLinks       *bool                  `yaml:"issue_links" toml:"issue_links"`
	IssueBodies      *bool                  `yaml:"issue_bodies" toml:"issue_bodies"`
	Descriptions     *bool                  `yaml:"milestone_descriptions" toml:"milestone_descriptions"`
	Sections         []domain.SectionConfig `yaml:"sections" toml:"sections"`
}

var changelogKeys = []string{
	"header", "description", "footer", "no_content", "empty_text", "tag_prefix",
	"milestone_state", "line_ending", "section_match", "section_sort", "milestone_sort",
	"missing_milestone", "empty_milestones", "pull_requests", "issue_links", "issue_bodies",
	"milestone_descriptions", "sections",
}

// releasesFile mirrors domain.ReleasesConfig with optional fields.
type releasesFile struct {
	Title        *string             `yaml:"title" toml:"title"`
	Description  *string             `yaml:"description" toml:"description"`
	EmptyRelease *string             `yaml:"empty_release" toml:"empty_release"`
	Sort         *domain.ReleaseSort `yaml:"sort" toml:"sort"`
	LineEnding   *string             `yaml:"line_ending" toml:"line_ending"`
	Links        *bool               `yaml:"links" toml:"links"`
}

var releasesKeys = []string{"title", "description", "empty_release", "sort", "line_ending", "links"}

// readmeFile mirrors domain.ReadmeConfig. The full description is accepted
// in camel and snake case in both formats; camel case wins when both are set.
type readmeFile struct {
	FullDescription      *string `yaml:"fullDescription" toml:"fullDescription"`
	FullDescriptionSnake *string `yaml:"full_description" toml:"full_description"`
	Closing              *string `yaml:"closing" toml:"closing"`
	Footer               *string `yaml:"footer" toml:"footer"`
}

var readmeKeys = []string{"fullDescription", "full_description", "closing", "footer"}

// LoadChangelog loads a changelog config and merges it over base.
// An empty path returns base unchanged.
func (l *Loader) LoadChangelog(path string, base *domain.ChangelogConfig) (*domain.ChangelogConfig, error) {
	result := *base
	result.Sections = slices.Clone(base.Sections)

	if path != "" {
		var file changelogFile
		if err := l.loadFile(path, &file, changelogKeys); err != nil {
			return nil, err
		}
		mergeChangelog(&result, &file)
	}

	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", displayPath(path), err)
	}
	return &result, nil
}

// LoadReleases loads a release changelog config merged over the defaults.
func (l *Loader) LoadReleases(path string) (*domain.ReleasesConfig, error) {
	result := domain.NewDefaultReleasesConfig()

	if path != "" {
		var file releasesFile
		if err := l.loadFile(path, &file, releasesKeys); err != nil {
			return nil, err
		}
		set(&result.Title, file.Title)
		set(&result.Description, file.Description)
		set(&result.EmptyRelease, file.EmptyRelease)
		set(&result.Sort, file.Sort)
		set(&result.LineEnding, file.LineEnding)
		set(&result.Links, file.Links)
	}

	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", displayPath(path), err)
	}
	return result, nil
}

// LoadReadme loads a README config. An empty path returns an empty config.
func (l *Loader) LoadReadme(path string) (*domain.ReadmeConfig, error) {
	result := &domain.ReadmeConfig{}
	if path == "" {
		return result, nil
	}
	var file readmeFile
	if err := l.loadFile(path, &file, readmeKeys); err != nil {
		return nil, err
	}
	set(&result.FullDescription, file.FullDescriptionSnake)
	set(&result.FullDescription, file.FullDescription)
	set(&result.Closing, file.Closing)
	set(&result.Footer, file.Footer)
	return result, nil
}

// loadFile decodes a config file into v and warns about unknown keys.
func (l *Loader) loadFile(path string, v any, known []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw map[string]any
	if err := decode(path, data, &raw); err != nil {
		return err
	}
	if err := decode(path, data, v); err != nil {
		return err
	}

	for _, key := range unknownKeys(raw, known) {
		l.logger.Warn("unknown config key", "file", path, "key", key)
	}
	return nil
}

// decode unmarshals data using the format implied by the file extension.
func decode(path string, data []byte, v any) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, v)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		err = dec.Decode(v)
		if errors.Is(err, io.EOF) {
			// Empty file
			err = nil
		}
	}
	if err != nil {
		return &domain.ParseError{Source: path, Err: err}
	}
	return nil
}

// unknownKeys returns the top-level keys of raw that are not in known, sorted.
func unknownKeys(raw map[string]any, known []string) []string {
	var unknown []string
	for key := range raw {
		if !slices.Contains(known, key) {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// mergeChangelog overrides base with every field set in file.
func mergeChangelog(base *domain.ChangelogConfig, file *changelogFile) {
	set(&base.Header, file.Header)
	set(&base.Description, file.Description)
	set(&base.Footer, file.Footer)
	set(&base.NoContent, file.NoContent)
	set(&base.EmptyText, file.EmptyText)
	set(&base.TagPrefix, file.TagPrefix)
	set(&base.MilestoneState, file.MilestoneState)
	set(&base.LineEnding, file.LineEnding)
	set(&base.SectionMatch, file.SectionMatch)
	set(&base.SectionSort, file.SectionSort)
	set(&base.MilestoneSort, file.MilestoneSort)
	set(&base.MissingMilestone, file.MissingMilestone)
	set(&base.EmptyMilestones, file.EmptyMilestones)
	set(&base.PullRequests, file.PullRequests)
	set(&base.IssueLinks, file.IssueLinks)
	set(&base.IssueBodies, file.IssueBodies)
	set(&base.Descriptions, file.Descriptions)
	if file.Sections != nil {
		base.Sections = file.Sections
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func displayPath(path string) string {
	if path == "" {
		return "(defaults)"
	}
	return path
}
