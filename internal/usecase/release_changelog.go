package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/runoshun/repo-actions/internal/domain"
	"github.com/runoshun/repo-actions/internal/usecase/shared"
)

// ReleaseChangelogInput contains the parameters for building a changelog from releases.
type ReleaseChangelogInput struct {
	Commit     *CommitOptions // Commit the content when set
	ConfigPath string         // YAML/TOML config (empty = defaults)
	Repo       domain.Repo
}

// ReleaseChangelogOutput contains the rendered release changelog.
type ReleaseChangelogOutput struct {
	Content   string
	Releases  []domain.Release // Rendered releases, in render order
	Committed bool
}

// ReleaseChangelog is the use case for rendering a changelog from published releases.
type ReleaseChangelog struct {
	github  domain.GitHub
	configs domain.ConfigLoader
	logger  *slog.Logger
}

// NewReleaseChangelog creates a new ReleaseChangelog use case.
func NewReleaseChangelog(github domain.GitHub, configs domain.ConfigLoader, logger *slog.Logger) *ReleaseChangelog {
	return &ReleaseChangelog{
		github:  github,
		configs: configs,
		logger:  logger,
	}
}

// Execute lists releases, renders them newest first and optionally commits the result.
func (uc *ReleaseChangelog) Execute(ctx context.Context, in ReleaseChangelogInput) (*ReleaseChangelogOutput, error) {
	cfg, err := uc.configs.LoadReleases(in.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	releases, err := uc.github.ListReleases(ctx, in.Repo)
	if err != nil {
		return nil, fmt.Errorf("list releases: %w", err)
	}

	sorted := domain.SortReleases(releases, cfg.Sort)
	if skipped := len(releases) - len(sorted); skipped > 0 {
		uc.logger.Debug("skipped unpublished releases", "count", skipped)
	}

	out := &ReleaseChangelogOutput{
		Content:  domain.RenderReleases(sorted, cfg),
		Releases: sorted,
	}
	if in.Commit != nil {
		if err := shared.CommitFile(ctx, uc.github, in.Repo, in.Commit.update(out.Content)); err != nil {
			return nil, err
		}
		out.Committed = true
		uc.logger.Info("release changelog committed", "file", in.Commit.File)
	}
	return out, nil
}
