package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/runoshun/repo-actions/internal/domain"
	"github.com/runoshun/repo-actions/internal/usecase/shared"
)

// UpdateFileInput contains the parameters for committing a repository file.
type UpdateFileInput struct {
	Content       string // File content, or a local path when ContentAsPath is set
	Commit        CommitOptions
	Repo          domain.Repo
	ContentAsPath bool
}

// UpdateFileOutput contains the committed content.
type UpdateFileOutput struct {
	Content string
}

// UpdateFile is the use case for creating or updating one repository file.
type UpdateFile struct {
	github domain.GitHub
	logger *slog.Logger
}

// NewUpdateFile creates a new UpdateFile use case.
func NewUpdateFile(github domain.GitHub, logger *slog.Logger) *UpdateFile {
	return &UpdateFile{
		github: github,
		logger: logger,
	}
}

// Execute resolves the content and commits it.
func (uc *UpdateFile) Execute(ctx context.Context, in UpdateFileInput) (*UpdateFileOutput, error) {
	content := in.Content
	if in.ContentAsPath {
		data, err := os.ReadFile(in.Content)
		if err != nil {
			return nil, fmt.Errorf("read content: %w", err)
		}
		content = string(data)
	}

	if err := shared.CommitFile(ctx, uc.github, in.Repo, in.Commit.update(content)); err != nil {
		return nil, err
	}
	uc.logger.Info("file committed", "file", in.Commit.File, "bytes", len(content))
	return &UpdateFileOutput{Content: content}, nil
}
