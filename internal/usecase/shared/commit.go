// Package shared provides shared utilities for use cases.
package shared

import (
	"context"
	"fmt"

	"github.com/runoshun/repo-actions/internal/domain"
)

// CommitFile commits update to the repository.
// The current blob SHA is looked up first so that an existing file is replaced
// and a missing file is created.
func CommitFile(ctx context.Context, gh domain.GitHub, repo domain.Repo, update domain.FileUpdate) error {
	if update.Path == "" {
		return domain.ErrEmptyFile
	}

	file, err := gh.GetFile(ctx, repo, update.Path)
	if err != nil {
		return fmt.Errorf("get file %s: %w", update.Path, err)
	}
	update.SHA = file.SHA

	if err := gh.PutFile(ctx, repo, update); err != nil {
		return fmt.Errorf("commit %s: %w", update.Path, err)
	}
	return nil
}
