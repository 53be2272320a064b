package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/repo-actions/internal/domain"
	"github.com/runoshun/repo-actions/internal/testutil"
)

func newMilestoneNotesFixture() (*testutil.MockGitHub, *testutil.MockConfigLoader) {
	gh := testutil.NewMockGitHub()
	gh.Milestones = []domain.Milestone{
		{Number: 1, Title: "v1.0", State: "closed", Description: "First release", HTMLURL: "https://github.com/o/r/milestone/1"},
		{Number: 2, Title: "v1.1", State: "open"},
	}
	gh.Issues = []domain.Issue{
		{Number: 42, Title: "Fix crash", Labels: []string{"Fixed"}, Milestone: 1, HTMLURL: "https://github.com/o/r/issues/42", Body: "Details"},
		{Number: 41, Title: "Add export", Labels: []string{"added"}, Milestone: 1},
	}

	cfg := domain.NewDefaultMilestoneNotesConfig()
	cfg.LineEnding = domain.LineEndingLF
	return gh, &testutil.MockConfigLoader{Changelog: cfg}
}

func TestMilestoneNotes_Execute(t *testing.T) {
	t.Run("renders milestone found by title", func(t *testing.T) {
		// Setup
		gh, configs := newMilestoneNotesFixture()
		uc := NewMilestoneNotes(gh, configs, discardLogger())

		// Execute
		out, err := uc.Execute(context.Background(), MilestoneNotesInput{Milestone: "v1.0", Repo: testRepo})

		// Assert
		require.NoError(t, err)
		assert.Equal(t,
			"- [Milestone](https://github.com/o/r/milestone/1)\n"+
				"\n"+
				"First release\n"+
				"\n"+
				"### Added\n"+
				"- Add export (#41)\n"+
				"\n"+
				"### Fixed\n"+
				"- Fix crash ([#42](https://github.com/o/r/issues/42))<br/>Details\n"+
				"\n",
			out.Content)
		require.NotNil(t, out.Milestone)
		assert.Equal(t, 1, out.Milestone.Number)
		assert.Equal(t, []domain.IssueQuery{{Milestone: "1", State: "all"}}, gh.IssueQueries)
	})

	t.Run("renders empty milestone found by number", func(t *testing.T) {
		gh, configs := newMilestoneNotesFixture()
		configs.Changelog.EmptyText = "Nothing yet."
		uc := NewMilestoneNotes(gh, configs, discardLogger())

		out, err := uc.Execute(context.Background(), MilestoneNotesInput{Milestone: "2", Repo: testRepo})

		require.NoError(t, err)
		assert.Equal(t, "- [Milestone](https://github.com/o/r/milestone/2)\n\nNothing yet.\n", out.Content)
	})

	t.Run("fails on missing milestone by default", func(t *testing.T) {
		gh, configs := newMilestoneNotesFixture()
		uc := NewMilestoneNotes(gh, configs, discardLogger())

		_, err := uc.Execute(context.Background(), MilestoneNotesInput{Milestone: "v9", Repo: testRepo})

		assert.ErrorIs(t, err, domain.ErrMilestoneNotFound)
		assert.Empty(t, gh.IssueQueries)
	})

	t.Run("uses placeholder for missing milestone", func(t *testing.T) {
		gh, configs := newMilestoneNotesFixture()
		configs.Changelog.MissingMilestone = domain.MissingPlaceholder
		uc := NewMilestoneNotes(gh, configs, discardLogger())

		out, err := uc.Execute(context.Background(), MilestoneNotesInput{Milestone: "v9", Repo: testRepo})

		require.NoError(t, err)
		assert.Equal(t, "No content.", out.Content)
		assert.Nil(t, out.Milestone)
	})

	t.Run("rejects empty milestone", func(t *testing.T) {
		gh, configs := newMilestoneNotesFixture()
		configs.Changelog.MissingMilestone = domain.MissingPlaceholder
		uc := NewMilestoneNotes(gh, configs, discardLogger())

		_, err := uc.Execute(context.Background(), MilestoneNotesInput{Repo: testRepo})

		assert.ErrorIs(t, err, domain.ErrEmptyMilestone)
	})

	t.Run("propagates API errors", func(t *testing.T) {
		gh, configs := newMilestoneNotesFixture()
		gh.ListIssuesErr = assert.AnError
		uc := NewMilestoneNotes(gh, configs, discardLogger())

		_, err := uc.Execute(context.Background(), MilestoneNotesInput{Milestone: "1", Repo: testRepo})

		assert.ErrorIs(t, err, assert.AnError)
	})
}
