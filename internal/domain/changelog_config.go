package domain

import (
	"fmt"
	"slices"
)

// SectionMatch decides how many sections an issue may join.
type SectionMatch string

// Section match policies.
const (
	SectionMatchAll   SectionMatch = "all"   // Issue joins every matching section
	SectionMatchFirst SectionMatch = "first" // Issue joins the first matching section only
)

// SectionSort decides the render order of sections.
type SectionSort string

// Section sort policies.
const (
	SectionSortOrder SectionSort = "order" // By explicit order (list index when unset)
	SectionSortName  SectionSort = "name"  // By name, lexicographic
)

// SortDirection is the order milestones are rendered in.
type SortDirection string

// Sort directions.
const (
	SortDescending SortDirection = "desc" // Most recent first
	SortAscending  SortDirection = "asc"  // Oldest first
)

// MissingPolicy decides what happens when a milestone cannot be resolved.
type MissingPolicy string

// Missing milestone policies.
const (
	MissingError       MissingPolicy = "error"       // Fail the run
	MissingPlaceholder MissingPolicy = "placeholder" // Warn and output the no-content text
)

// EmptyPolicy decides whether milestones without issues are rendered.
type EmptyPolicy string

// Empty milestone policies.
const (
	EmptyOmit EmptyPolicy = "omit"
	EmptyShow EmptyPolicy = "show"
)

// Line endings accepted by NormalizeLineEndings.
const (
	LineEndingCRLF = "crlf"
	LineEndingLF   = "lf"
)

// SectionConfig routes issues carrying any of Labels into a section.
type SectionConfig struct {
	Order  *int     `yaml:"order,omitempty" toml:"order,omitempty" json:"order,omitempty"`
	ID     string   `yaml:"id,omitempty" toml:"id,omitempty" json:"id,omitempty"`
	Name   string   `yaml:"name" toml:"name" json:"name"`
	Labels []string `yaml:"labels" toml:"labels" json:"labels"`
}

// Key returns the stable identifier of the section.
func (s SectionConfig) Key() string {
	if s.ID != "" {
		return s.ID
	}
	return s.Name
}

// ChangelogConfig holds rendering content and grouping policies for changelogs.
// Fields are ordered to minimize memory padding.
type ChangelogConfig struct {
	Header           string          `yaml:"header" toml:"header"`
	Description      string          `yaml:"description" toml:"description"`
	Footer           string          `yaml:"footer" toml:"footer"`
	NoContent        string          `yaml:"no_content" toml:"no_content"`
	EmptyText        string          `yaml:"empty_text" toml:"empty_text"`
	TagPrefix        string          `yaml:"tag_prefix" toml:"tag_prefix"`
	MilestoneState   string          `yaml:"milestone_state" toml:"milestone_state"`
	LineEnding       string          `yaml:"line_ending" toml:"line_ending"`
	SectionMatch     SectionMatch    `yaml:"section_match" toml:"section_match"`
	SectionSort      SectionSort     `yaml:"section_sort" toml:"section_sort"`
	MilestoneSort    SortDirection   `yaml:"milestone_sort" toml:"milestone_sort"`
	MissingMilestone MissingPolicy   `yaml:"missing_milestone" toml:"missing_milestone"`
	EmptyMilestones  EmptyPolicy     `yaml:"empty_milestones" toml:"empty_milestones"`
	Sections         []SectionConfig `yaml:"sections" toml:"sections"`
	PullRequests     bool            `yaml:"pull_requests" toml:"pull_requests"`
	IssueLinks       bool            `yaml:"issue_links" toml:"issue_links"`
	IssueBodies      bool            `yaml:"issue_bodies" toml:"issue_bodies"`
	Descriptions     bool            `yaml:"milestone_descriptions" toml:"milestone_descriptions"`
}

// DefaultChangelogDescription is the description used when none is configured.
const DefaultChangelogDescription = `All notable changes to this project will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.0.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).`

// NewDefaultChangelogConfig returns the Keep a Changelog layout.
func NewDefaultChangelogConfig() *ChangelogConfig {
	names := []string{"Added", "Changed", "Deprecated", "Removed", "Fixed", "Security"}
	sections := make([]SectionConfig, 0, len(names))
	for _, name := range names {
		sections = append(sections, SectionConfig{Name: name, Labels: []string{name}})
	}
	return &ChangelogConfig{
		Header:           "Changelog",
		Description:      DefaultChangelogDescription,
		NoContent:        "No content.",
		MilestoneState:   "closed",
		LineEnding:       LineEndingCRLF,
		SectionMatch:     SectionMatchAll,
		SectionSort:      SectionSortOrder,
		MilestoneSort:    SortDescending,
		MissingMilestone: MissingError,
		EmptyMilestones:  EmptyOmit,
		Sections:         sections,
	}
}

// NewDefaultMilestoneNotesConfig returns the layout used for single-milestone notes,
// which link issues and include their bodies.
func NewDefaultMilestoneNotesConfig() *ChangelogConfig {
	cfg := NewDefaultChangelogConfig()
	cfg.IssueLinks = true
	cfg.IssueBodies = true
	cfg.Descriptions = true
	return cfg
}

// Validate checks policy values and section definitions.
func (c *ChangelogConfig) Validate() error {
	checks := []struct {
		name    string
		value   string
		allowed []string
	}{
		{"section_match", string(c.SectionMatch), []string{string(SectionMatchAll), string(SectionMatchFirst)}},
		{"section_sort", string(c.SectionSort), []string{string(SectionSortOrder), string(SectionSortName)}},
		{"milestone_sort", string(c.MilestoneSort), []string{string(SortDescending), string(SortAscending)}},
		{"missing_milestone", string(c.MissingMilestone), []string{string(MissingError), string(MissingPlaceholder)}},
		{"empty_milestones", string(c.EmptyMilestones), []string{string(EmptyOmit), string(EmptyShow)}},
		{"line_ending", c.LineEnding, []string{LineEndingCRLF, LineEndingLF}},
		{"milestone_state", c.MilestoneState, []string{"open", "closed", "all"}},
	}
	for _, check := range checks {
		if !slices.Contains(check.allowed, check.value) {
			return fmt.Errorf("%w: %s = '%s' (allowed: %v)", ErrInvalidPolicy, check.name, check.value, check.allowed)
		}
	}
	for i, s := range c.Sections {
		if s.Name == "" {
			return MissingField("changelog config", fmt.Sprintf("sections[%d].name", i))
		}
		if len(s.Labels) == 0 {
			return MissingField("changelog config", fmt.Sprintf("sections[%d].labels", i))
		}
	}
	return nil
}

// Tag returns the release tag of a milestone.
func (c *ChangelogConfig) Tag(m Milestone) string {
	return c.TagPrefix + m.Title
}
