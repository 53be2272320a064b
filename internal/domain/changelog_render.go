package domain

import (
	"fmt"
	"strings"
)

// ShortSHALength is the length of abbreviated commit hashes in compare links.
const ShortSHALength = 7

// RenderContext carries repository facts needed to render links.
type RenderContext struct {
	Repo        RepoContext
	FirstCommit string // Full or short SHA of the root commit
}

// RenderChangelog renders a changelog document as Markdown.
// Line endings are normalized once over the assembled text.
func RenderChangelog(log Changelog, rc RenderContext, cfg *ChangelogConfig) string {
	var b strings.Builder

	b.WriteString("# " + cfg.Header + "\n")
	if cfg.Description != "" {
		b.WriteString(cfg.Description + "\n")
	}
	b.WriteString("\n")

	for _, m := range log.Milestones {
		writeMilestone(&b, m, rc, cfg)
	}

	if cfg.Footer != "" {
		b.WriteString(cfg.Footer + "\n")
	}

	return NormalizeLineEndings(b.String(), cfg.LineEnding)
}

func writeMilestone(b *strings.Builder, m ChangelogMilestone, rc RenderContext, cfg *ChangelogConfig) {
	repoURL := rc.Repo.URL()

	b.WriteString("## " + m.Title)
	if date := FormatDate(m.Date); date != "" {
		b.WriteString(" - " + date)
	}
	b.WriteString("\n")

	from := m.PreviousTag
	if from == "" {
		from = ShortSHA(rc.FirstCommit)
	}
	fmt.Fprintf(b, "- [Commits](%s/compare/%s...%s)\n", repoURL, from, m.Tag)
	fmt.Fprintf(b, "- [Milestone](%s/milestone/%d?closed=1)\n", repoURL, m.Number)
	b.WriteString("\n")

	if cfg.Descriptions && m.Description != "" {
		b.WriteString(m.Description + "\n\n")
	}

	if len(m.Sections) == 0 && cfg.EmptyText != "" {
		b.WriteString(cfg.EmptyText + "\n\n")
	}
	writeSections(b, m.Sections, cfg)
}

// RenderMilestoneNotes renders the body of a single milestone: a link to the
// milestone, its description and the issue sections.
func RenderMilestoneNotes(m ChangelogMilestone, rc RenderContext, cfg *ChangelogConfig) string {
	var b strings.Builder

	url := m.HTMLURL
	if url == "" {
		url = fmt.Sprintf("%s/milestone/%d", rc.Repo.URL(), m.Number)
	}
	b.WriteString("- [Milestone](" + url + ")\n")

	if cfg.Descriptions && m.Description != "" {
		b.WriteString("\n" + m.Description + "\n\n")
	}

	if len(m.Sections) == 0 && cfg.EmptyText != "" {
		b.WriteString("\n" + cfg.EmptyText + "\n")
	}
	writeSections(&b, m.Sections, cfg)

	return NormalizeLineEndings(b.String(), cfg.LineEnding)
}

func writeSections(b *strings.Builder, sections []ChangelogSection, cfg *ChangelogConfig) {
	for _, s := range sections {
		b.WriteString("### " + s.Name + "\n")
		for _, issue := range s.Issues {
			b.WriteString("- " + FormatIssue(issue, cfg.IssueLinks, cfg.IssueBodies) + "\n")
		}
		b.WriteString("\n")
	}
}

// FormatIssue renders an issue bullet body: "title (#N)", optionally with a
// link to the issue and its body appended after a line break.
func FormatIssue(issue Issue, link, body bool) string {
	ref := fmt.Sprintf("#%d", issue.Number)
	if link && issue.HTMLURL != "" {
		ref = fmt.Sprintf("[#%d](%s)", issue.Number, issue.HTMLURL)
	}
	s := issue.Title + " (" + ref + ")"
	if body && issue.Body != "" {
		s += "<br/>" + issue.Body
	}
	return s
}

// ShortSHA abbreviates a commit hash.
func ShortSHA(sha string) string {
	if len(sha) > ShortSHALength {
		return sha[:ShortSHALength]
	}
	return sha
}
