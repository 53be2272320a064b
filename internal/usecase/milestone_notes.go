package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/runoshun/repo-actions/internal/domain"
)

// MilestoneNotesInput contains the parameters for rendering one milestone.
type MilestoneNotesInput struct {
	Milestone  string             // Number or title
	ConfigPath string             // YAML/TOML config (empty = defaults)
	Repo       domain.RepoContext // Repository to read
}

// MilestoneNotesOutput contains the rendered milestone notes.
type MilestoneNotesOutput struct {
	Milestone *domain.ChangelogMilestone // Nil when the placeholder was used
	Content   string
}

// MilestoneNotes is the use case for rendering the notes of a single milestone.
type MilestoneNotes struct {
	github  domain.GitHub
	configs domain.ConfigLoader
	logger  *slog.Logger
}

// NewMilestoneNotes creates a new MilestoneNotes use case.
func NewMilestoneNotes(github domain.GitHub, configs domain.ConfigLoader, logger *slog.Logger) *MilestoneNotes {
	return &MilestoneNotes{
		github:  github,
		configs: configs,
		logger:  logger,
	}
}

// Execute resolves the milestone, fetches its issues and renders the notes.
func (uc *MilestoneNotes) Execute(ctx context.Context, in MilestoneNotesInput) (*MilestoneNotesOutput, error) {
	cfg, err := uc.configs.LoadChangelog(in.ConfigPath, domain.NewDefaultMilestoneNotesConfig())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	repo := in.Repo.Repo
	milestones, err := uc.github.ListMilestones(ctx, repo, "all")
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}

	m, err := domain.FindMilestone(milestones, in.Milestone)
	if errors.Is(err, domain.ErrMilestoneNotFound) && cfg.MissingMilestone == domain.MissingPlaceholder {
		uc.logger.Warn("milestone not found, using placeholder", "milestone", in.Milestone)
		return &MilestoneNotesOutput{Content: domain.NormalizeLineEndings(cfg.NoContent, cfg.LineEnding)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("milestone '%s': %w", in.Milestone, err)
	}

	issues, err := uc.github.ListIssues(ctx, repo, domain.IssueQuery{Milestone: strconv.Itoa(m.Number), State: "all"})
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}

	// The requested milestone is always rendered, even without issues.
	build := *cfg
	build.EmptyMilestones = domain.EmptyShow
	log := domain.BuildChangelog([]domain.Milestone{*m}, issues, &build)
	entry := log.Milestones[0]

	content := domain.RenderMilestoneNotes(entry, domain.RenderContext{Repo: in.Repo}, cfg)
	return &MilestoneNotesOutput{Milestone: &entry, Content: content}, nil
}
