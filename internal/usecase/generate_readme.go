package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/runoshun/repo-actions/internal/domain"
	"github.com/runoshun/repo-actions/internal/usecase/shared"
)

// GenerateReadmeInput contains the parameters for generating a package README.
type GenerateReadmeInput struct {
	Commit      *CommitOptions // Commit the content when set
	PackagePath string         // package.json
	ConfigPath  string         // README config (empty = none)
	Repo        domain.Repo
}

// GenerateReadmeOutput contains the rendered README.
type GenerateReadmeOutput struct {
	Package   *domain.Package
	Content   string
	Committed bool
}

// GenerateReadme is the use case for rendering a README from a package manifest.
type GenerateReadme struct {
	github  domain.GitHub
	configs domain.ConfigLoader
	logger  *slog.Logger
}

// NewGenerateReadme creates a new GenerateReadme use case.
func NewGenerateReadme(github domain.GitHub, configs domain.ConfigLoader, logger *slog.Logger) *GenerateReadme {
	return &GenerateReadme{
		github:  github,
		configs: configs,
		logger:  logger,
	}
}

// Execute reads the manifest, renders the README and optionally commits it.
func (uc *GenerateReadme) Execute(ctx context.Context, in GenerateReadmeInput) (*GenerateReadmeOutput, error) {
	if in.PackagePath == "" {
		return nil, domain.ErrEmptyFile
	}
	data, err := os.ReadFile(in.PackagePath)
	if err != nil {
		return nil, fmt.Errorf("read package: %w", err)
	}

	var pkg domain.Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, &domain.ParseError{Source: in.PackagePath, Err: err}
	}
	if err := pkg.Validate(in.PackagePath); err != nil {
		return nil, err
	}

	cfg, err := uc.configs.LoadReadme(in.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	out := &GenerateReadmeOutput{Package: &pkg, Content: domain.RenderReadme(&pkg, cfg)}
	if in.Commit != nil {
		if err := shared.CommitFile(ctx, uc.github, in.Repo, in.Commit.update(out.Content)); err != nil {
			return nil, err
		}
		out.Committed = true
		uc.logger.Info("readme committed", "file", in.Commit.File, "package", pkg.Name)
	}
	return out, nil
}
