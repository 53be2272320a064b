package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/runoshun/repo-actions/internal/domain"
	"github.com/runoshun/repo-actions/internal/usecase/shared"
)

// CommitOptions describes where rendered content is committed.
type CommitOptions struct {
	File    string // Repository path
	Message string // Commit message
	User    string // Committer and author name
	Email   string // Committer and author email
}

func (o *CommitOptions) update(content string) domain.FileUpdate {
	return domain.FileUpdate{
		Path:    o.File,
		Message: o.Message,
		User:    o.User,
		Email:   o.Email,
		Content: []byte(content),
	}
}

// GenerateChangelogInput contains the parameters for generating a changelog.
type GenerateChangelogInput struct {
	Commit     *CommitOptions     // Commit the content when set
	ConfigPath string             // YAML/TOML config (empty = defaults)
	State      string             // Milestone state override (empty = config value)
	Repo       domain.RepoContext // Repository to read
}

// GenerateChangelogOutput contains the result of generating a changelog.
type GenerateChangelogOutput struct {
	Content   string           // Rendered Markdown
	JSON      string           // Document model as JSON
	Changelog domain.Changelog // Document model
	Committed bool
}

// GenerateChangelog is the use case for building a changelog from milestones.
type GenerateChangelog struct {
	github  domain.GitHub
	history domain.CommitHistory
	configs domain.ConfigLoader
	logger  *slog.Logger
}

// NewGenerateChangelog creates a new GenerateChangelog use case.
func NewGenerateChangelog(
	github domain.GitHub,
	history domain.CommitHistory,
	configs domain.ConfigLoader,
	logger *slog.Logger,
) *GenerateChangelog {
	return &GenerateChangelog{
		github:  github,
		history: history,
		configs: configs,
		logger:  logger,
	}
}

// Execute fetches milestones and issues, builds the changelog and renders it.
func (uc *GenerateChangelog) Execute(ctx context.Context, in GenerateChangelogInput) (*GenerateChangelogOutput, error) {
	cfg, err := uc.configs.LoadChangelog(in.ConfigPath, domain.NewDefaultChangelogConfig())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if in.State != "" {
		if !slices.Contains([]string{"open", "closed", "all"}, in.State) {
			return nil, fmt.Errorf("%w: state = '%s' (allowed: open, closed, all)", domain.ErrInvalidPolicy, in.State)
		}
		cfg.MilestoneState = in.State
	}

	repo := in.Repo.Repo
	milestones, err := uc.github.ListMilestones(ctx, repo, cfg.MilestoneState)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	issues, err := uc.github.ListIssues(ctx, repo, domain.IssueQuery{Milestone: "*", State: "all"})
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	uc.logger.Debug("fetched changelog data", "milestones", len(milestones), "issues", len(issues))

	rc := domain.RenderContext{Repo: in.Repo}
	if len(milestones) > 0 {
		rc.FirstCommit, err = uc.firstCommit(ctx, repo)
		if err != nil {
			return nil, err
		}
	}

	log := domain.BuildChangelog(milestones, issues, cfg)
	content := domain.RenderChangelog(log, rc, cfg)

	data, err := json.Marshal(log)
	if err != nil {
		return nil, fmt.Errorf("encode changelog: %w", err)
	}

	out := &GenerateChangelogOutput{Content: content, JSON: string(data), Changelog: log}
	if in.Commit != nil {
		if err := shared.CommitFile(ctx, uc.github, repo, in.Commit.update(content)); err != nil {
			return nil, err
		}
		out.Committed = true
		uc.logger.Info("changelog committed", "file", in.Commit.File)
	}
	return out, nil
}

// firstCommit resolves the root commit, tolerating repositories without history.
func (uc *GenerateChangelog) firstCommit(ctx context.Context, repo domain.Repo) (string, error) {
	sha, err := uc.history.FirstCommit(ctx, repo)
	if errors.Is(err, domain.ErrFirstCommitUnknown) {
		uc.logger.Warn("first commit unknown, oldest compare link has no base")
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("first commit: %w", err)
	}
	return sha, nil
}
