package github

import (
	"time"

	gh "github.com/google/go-github/v59/github"

	"github.com/runoshun/repo-actions/internal/domain"
)

// convertAll converts API items to domain values, stopping at the first malformed item.
func convertAll[T, D any](items []*T, convert func(*T) (D, error)) ([]D, error) {
	out := make([]D, 0, len(items))
	for _, item := range items {
		d, err := convert(item)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func toMilestone(m *gh.Milestone) (domain.Milestone, error) {
	if m.Number == nil {
		return domain.Milestone{}, domain.MissingField("milestone", "number")
	}
	if m.Title == nil {
		return domain.Milestone{}, domain.MissingField("milestone", "title")
	}
	return domain.Milestone{
		Number:      m.GetNumber(),
		Title:       m.GetTitle(),
		Description: m.GetDescription(),
		State:       m.GetState(),
		DueOn:       formatTime(m.GetDueOn()),
		ClosedAt:    formatTime(m.GetClosedAt()),
		HTMLURL:     m.GetHTMLURL(),
	}, nil
}

func toIssue(i *gh.Issue) (domain.Issue, error) {
	if i.Number == nil {
		return domain.Issue{}, domain.MissingField("issue", "number")
	}
	if i.Title == nil {
		return domain.Issue{}, domain.MissingField("issue", "title")
	}
	labels := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		labels = append(labels, l.GetName())
	}
	return domain.Issue{
		Number:      i.GetNumber(),
		Title:       i.GetTitle(),
		Body:        i.GetBody(),
		HTMLURL:     i.GetHTMLURL(),
		Labels:      labels,
		Milestone:   i.GetMilestone().GetNumber(),
		PullRequest: i.IsPullRequest(),
	}, nil
}

func toRelease(r *gh.RepositoryRelease) (domain.Release, error) {
	if r.ID == nil {
		return domain.Release{}, domain.MissingField("release", "id")
	}
	return domain.Release{
		ID:              r.GetID(),
		TagName:         r.GetTagName(),
		TargetCommitish: r.GetTargetCommitish(),
		Name:            r.GetName(),
		Body:            r.GetBody(),
		PublishedAt:     formatTime(r.GetPublishedAt()),
		HTMLURL:         r.GetHTMLURL(),
		Draft:           r.GetDraft(),
		Prerelease:      r.GetPrerelease(),
	}, nil
}

// formatTime renders an API timestamp as RFC 3339 in UTC, empty when unset.
func formatTime(t gh.Timestamp) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
