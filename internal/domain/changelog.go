package domain

import (
	"cmp"
	"slices"
	"strconv"
	"time"
)

// Changelog is the document model rendered by RenderChangelog.
type Changelog struct {
	Milestones []ChangelogMilestone `json:"milestones"`
}

// ChangelogMilestone is one release entry of a changelog.
// Fields are ordered to minimize memory padding.
type ChangelogMilestone struct {
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Date        string             `json:"date,omitempty"` // Resolution date (ISO-8601)
	HTMLURL     string             `json:"html_url,omitempty"`
	Tag         string             `json:"tag"`
	PreviousTag string             `json:"previous_tag,omitempty"` // Empty for the oldest milestone
	Sections    []ChangelogSection `json:"sections"`
	Number      int                `json:"number"`
}

// ChangelogSection is a labeled group of issues within a milestone.
type ChangelogSection struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Issues []Issue `json:"issues"`
	Order  int     `json:"order"`
}

// MilestoneGroup holds the issues assigned to one milestone.
type MilestoneGroup struct {
	Milestone Milestone
	Issues    []Issue
}

// GroupIssuesByMilestone buckets issues by milestone.
// Every milestone yields exactly one group, in input order, even when empty.
// An issue joins a group only when its pull-request marker equals pullRequests;
// issues without a milestone, or with one not in milestones, are dropped.
func GroupIssuesByMilestone(milestones []Milestone, issues []Issue, pullRequests bool) []MilestoneGroup {
	groups := make([]MilestoneGroup, len(milestones))
	index := make(map[int]int, len(milestones))
	for i, m := range milestones {
		groups[i] = MilestoneGroup{Milestone: m, Issues: []Issue{}}
		index[m.Number] = i
	}

	for _, issue := range issues {
		if !issue.HasMilestone() || issue.PullRequest != pullRequests {
			continue
		}
		if i, ok := index[issue.Milestone]; ok {
			groups[i].Issues = append(groups[i].Issues, issue)
		}
	}
	return groups
}

// GroupIssuesBySection buckets issues by section key.
// With SectionMatchAll an issue joins every section it matches; with
// SectionMatchFirst only the first, in configuration order.
// Sections without issues are absent from the result.
func GroupIssuesBySection(issues []Issue, sections []SectionConfig, match SectionMatch) map[string][]Issue {
	groups := make(map[string][]Issue)
	for _, issue := range issues {
		joined := make(map[string]bool)
		for _, section := range sections {
			key := section.Key()
			if joined[key] || !issue.HasAnyLabel(section.Labels) {
				continue
			}
			joined[key] = true
			groups[key] = append(groups[key], issue)
			if match == SectionMatchFirst {
				break
			}
		}
	}
	return groups
}

// BuildChangelog groups issues into milestones and sections and orders everything
// according to cfg.
func BuildChangelog(milestones []Milestone, issues []Issue, cfg *ChangelogConfig) Changelog {
	groups := GroupIssuesByMilestone(milestones, issues, cfg.PullRequests)

	entries := make([]ChangelogMilestone, 0, len(groups))
	for _, group := range groups {
		entries = append(entries, buildMilestone(group, cfg))
	}

	// Previous tags follow chronological order whatever the render direction.
	slices.SortStableFunc(entries, compareMilestones(SortAscending))
	for i := 1; i < len(entries); i++ {
		entries[i].PreviousTag = entries[i-1].Tag
	}

	if cfg.EmptyMilestones == EmptyOmit {
		entries = slices.DeleteFunc(entries, func(e ChangelogMilestone) bool {
			return len(e.Sections) == 0
		})
	}

	slices.SortStableFunc(entries, compareMilestones(cfg.MilestoneSort))
	return Changelog{Milestones: entries}
}

func buildMilestone(group MilestoneGroup, cfg *ChangelogConfig) ChangelogMilestone {
	m := group.Milestone
	entry := ChangelogMilestone{
		Title:       m.Title,
		Description: m.Description,
		Date:        m.ResolutionDate(),
		HTMLURL:     m.HTMLURL,
		Tag:         cfg.Tag(m),
		Number:      m.Number,
		Sections:    []ChangelogSection{},
	}

	buckets := GroupIssuesBySection(group.Issues, cfg.Sections, cfg.SectionMatch)
	for i, sc := range cfg.Sections {
		issues, ok := buckets[sc.Key()]
		if !ok {
			continue
		}
		// Two configs sharing a key produce one section.
		delete(buckets, sc.Key())

		order := i
		if sc.Order != nil {
			order = *sc.Order
		}
		sorted := slices.Clone(issues)
		slices.SortStableFunc(sorted, func(a, b Issue) int {
			return cmp.Or(cmp.Compare(a.Title, b.Title), cmp.Compare(a.Number, b.Number))
		})
		entry.Sections = append(entry.Sections, ChangelogSection{
			ID:     sc.Key(),
			Name:   sc.Name,
			Order:  order,
			Issues: sorted,
		})
	}

	slices.SortStableFunc(entry.Sections, func(a, b ChangelogSection) int {
		if cfg.SectionSort == SectionSortName {
			return cmp.Compare(a.Name, b.Name)
		}
		return cmp.Or(cmp.Compare(a.Order, b.Order), cmp.Compare(a.Name, b.Name))
	})
	return entry
}

// compareMilestones orders entries by resolution date in the given direction.
// Entries without a date go last; ties are broken by milestone number.
func compareMilestones(dir SortDirection) func(a, b ChangelogMilestone) int {
	return func(a, b ChangelogMilestone) int {
		ta, okA := parseTimestamp(a.Date)
		tb, okB := parseTimestamp(b.Date)
		if okA != okB {
			if okA {
				return -1
			}
			return 1
		}
		c := cmp.Or(ta.Compare(tb), cmp.Compare(a.Number, b.Number))
		if dir == SortDescending {
			return -c
		}
		return c
	}
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Date-only values still order correctly.
		t, err = time.Parse(time.DateOnly, FormatDate(s))
		if err != nil {
			return time.Time{}, false
		}
	}
	return t, true
}

// FindMilestone resolves a milestone by number or, failing that, by title.
// Returns ErrMilestoneNotFound when nothing matches.
func FindMilestone(milestones []Milestone, ref string) (*Milestone, error) {
	if ref == "" {
		return nil, ErrEmptyMilestone
	}
	for i := range milestones {
		if strconv.Itoa(milestones[i].Number) == ref {
			return &milestones[i], nil
		}
	}
	for i := range milestones {
		if milestones[i].Title == ref {
			return &milestones[i], nil
		}
	}
	return nil, ErrMilestoneNotFound
}
