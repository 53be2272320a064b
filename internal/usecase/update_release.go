package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/runoshun/repo-actions/internal/domain"
)

// UpdateReleaseInput contains the parameters for editing a release.
type UpdateReleaseInput struct {
	ID     string // Numeric release ID or release name
	Change domain.ReleaseChange
	Repo   domain.Repo
}

// UpdateReleaseOutput contains the release as written.
type UpdateReleaseOutput struct {
	Release domain.Release
}

// UpdateRelease is the use case for editing fields of an existing release.
type UpdateRelease struct {
	github domain.GitHub
	logger *slog.Logger
}

// NewUpdateRelease creates a new UpdateRelease use case.
func NewUpdateRelease(github domain.GitHub, logger *slog.Logger) *UpdateRelease {
	return &UpdateRelease{
		github: github,
		logger: logger,
	}
}

// Execute finds the release, applies the change and writes it back.
func (uc *UpdateRelease) Execute(ctx context.Context, in UpdateReleaseInput) (*UpdateReleaseOutput, error) {
	release, err := uc.find(ctx, in.Repo, in.ID)
	if err != nil {
		return nil, err
	}

	changed := in.Change.Apply(*release)
	if err := uc.github.UpdateRelease(ctx, in.Repo, changed); err != nil {
		return nil, fmt.Errorf("update release: %w", err)
	}
	uc.logger.Info("release updated", "id", changed.ID, "tag", changed.TagName)
	return &UpdateReleaseOutput{Release: changed}, nil
}

// find resolves a release by numeric ID, falling back to a name match.
func (uc *UpdateRelease) find(ctx context.Context, repo domain.Repo, ref string) (*domain.Release, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		release, err := uc.github.GetRelease(ctx, repo, id)
		if err == nil {
			return release, nil
		}
		if !errors.Is(err, domain.ErrReleaseNotFound) {
			return nil, fmt.Errorf("get release: %w", err)
		}
	}

	releases, err := uc.github.ListReleases(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("list releases: %w", err)
	}
	for i := range releases {
		if releases[i].Name == ref {
			return &releases[i], nil
		}
	}
	return nil, fmt.Errorf("%w: '%s'", domain.ErrReleaseNotFound, ref)
}
