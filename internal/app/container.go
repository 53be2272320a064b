// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/runoshun/repo-actions/internal/domain"
	"github.com/runoshun/repo-actions/internal/infra/actions"
	"github.com/runoshun/repo-actions/internal/infra/config"
	"github.com/runoshun/repo-actions/internal/infra/crypto"
	"github.com/runoshun/repo-actions/internal/infra/document"
	"github.com/runoshun/repo-actions/internal/infra/git"
	"github.com/runoshun/repo-actions/internal/infra/github"
	"github.com/runoshun/repo-actions/internal/infra/logging"
	"github.com/runoshun/repo-actions/internal/infra/markdown"
	"github.com/runoshun/repo-actions/internal/usecase"
)

// Config holds the settings resolved from flags, inputs and the environment.
type Config struct {
	Token      string             // GitHub token (empty = anonymous)
	Repository string             // owner/name override (empty = detect)
	APIURL     string             // Enterprise API URL (empty = api.github.com)
	LogLevel   string             // debug, info, warn or error (empty = info)
	Repo       domain.RepoContext // Resolved by Configure
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	GitHub        domain.GitHub
	History       domain.CommitHistory
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Documents     domain.Documents
	Sealer        domain.SecretSealer
	ActionIO      domain.ActionIO
	Clock         domain.Clock

	// Pointer fields
	Runtime  *actions.Runtime
	Markdown *markdown.Renderer
	Logger   *slog.Logger
	local    *git.Client // Local repository, nil outside a work tree
	stderr   io.Writer

	// Configuration
	Config Config
}

// New creates a new Container for the process.
// The GitHub client is created later by Configure, once flags are parsed.
func New(dir string, stdout, stderr io.Writer, getenv func(string) string) *Container {
	runtime := actions.New(stdout, getenv)

	// A missing repository only disables local detection.
	local, _ := git.NewClient(dir)

	c := &Container{
		ConfigManager: config.NewManager(),
		Documents:     document.NewCodec(),
		Sealer:        crypto.NewSealer(),
		ActionIO:      runtime,
		Clock:         domain.RealClock{},
		Runtime:       runtime,
		Markdown:      markdown.NewRenderer(markdown.DefaultWidth, runtime.OnRunner()),
		local:         local,
		stderr:        stderr,
	}
	c.setLogger(slog.LevelInfo)
	return c
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, gh domain.GitHub, actionIO domain.ActionIO, clock domain.Clock, logger *slog.Logger) *Container {
	return &Container{
		GitHub:        gh,
		History:       git.Chain{},
		ConfigLoader:  config.NewLoader(logger),
		ConfigManager: config.NewManager(),
		Documents:     document.NewCodec(),
		Sealer:        crypto.NewSealer(),
		ActionIO:      actionIO,
		Clock:         clock,
		Markdown:      markdown.NewRenderer(markdown.DefaultWidth, true),
		Logger:        logger,
		Config:        cfg,
	}
}

// Configure applies the resolved settings: logger level, repository context
// and the GitHub client. Ports already set (e.g. by NewWithDeps) are kept.
func (c *Container) Configure(ctx context.Context, cfg Config) error {
	if c.Runtime != nil {
		level := logging.ParseLevel(cfg.LogLevel)
		if c.Runtime.Debug() {
			level = slog.LevelDebug
		}
		c.setLogger(level)
	}

	repo, err := c.resolveRepo(cfg.Repository)
	if err != nil {
		return err
	}
	cfg.Repo = repo
	c.Config = cfg

	if c.GitHub == nil {
		client, err := github.NewClient(ctx, github.Options{
			Token:   cfg.Token,
			BaseURL: cfg.APIURL,
			Logger:  c.Logger,
		})
		if err != nil {
			return fmt.Errorf("create github client: %w", err)
		}
		c.GitHub = client

		// Local history is only used for the repository checked out here;
		// the API covers shallow clones and other repositories.
		var chain git.Chain
		if c.local != nil {
			if origin, err := c.local.Origin(); err == nil && strings.EqualFold(origin.Repo.String(), repo.Repo.String()) {
				chain = append(chain, c.local)
			}
		}
		c.History = append(chain, client)
	}
	return nil
}

// resolveRepo picks the repository from the override, the runner environment
// or the origin remote, in that order. An unknown repository is not an error
// here; commands that need one fail when they use it.
func (c *Container) resolveRepo(override string) (domain.RepoContext, error) {
	if override != "" {
		repo, err := domain.ParseRepo(override)
		if err != nil {
			return domain.RepoContext{}, err
		}
		server := domain.DefaultServerURL
		if c.Runtime != nil {
			if s := c.Runtime.Getenv(actions.EnvServerURL); s != "" {
				server = s
			}
		}
		return domain.RepoContext{ServerURL: server, Repo: repo}, nil
	}

	if c.Runtime != nil {
		rc, err := c.Runtime.RepoContext()
		if err == nil {
			return rc, nil
		}
		if !errors.Is(err, domain.ErrNoRepository) {
			return domain.RepoContext{}, err
		}
	}
	if c.local != nil {
		if rc, err := c.local.Origin(); err == nil {
			return rc, nil
		}
	}
	if c.Config.Repo.Repo.Name != "" {
		return c.Config.Repo, nil
	}
	return domain.RepoContext{}, nil
}

// Repo returns the resolved repository context, or ErrNoRepository.
func (c *Container) Repo() (domain.RepoContext, error) {
	if c.Config.Repo.Repo.Owner == "" || c.Config.Repo.Repo.Name == "" {
		return domain.RepoContext{}, domain.ErrNoRepository
	}
	return c.Config.Repo, nil
}

func (c *Container) setLogger(level slog.Level) {
	opts := logging.Options{Level: level}
	w := c.stderr
	if c.Runtime != nil && c.Runtime.OnRunner() {
		// The runner parses workflow commands from stdout.
		opts.Runner = true
		w = c.Runtime.Stdout()
	}
	c.Logger = logging.New(w, opts)
	c.ConfigLoader = config.NewLoader(c.Logger)
}

// UseCase factory methods

// GenerateChangelogUseCase returns a new GenerateChangelog use case.
func (c *Container) GenerateChangelogUseCase() *usecase.GenerateChangelog {
	return usecase.NewGenerateChangelog(c.GitHub, c.History, c.ConfigLoader, c.Logger)
}

// MilestoneNotesUseCase returns a new MilestoneNotes use case.
func (c *Container) MilestoneNotesUseCase() *usecase.MilestoneNotes {
	return usecase.NewMilestoneNotes(c.GitHub, c.ConfigLoader, c.Logger)
}

// ReleaseChangelogUseCase returns a new ReleaseChangelog use case.
func (c *Container) ReleaseChangelogUseCase() *usecase.ReleaseChangelog {
	return usecase.NewReleaseChangelog(c.GitHub, c.ConfigLoader, c.Logger)
}

// BuildParamsUseCase returns a new BuildParams use case.
func (c *Container) BuildParamsUseCase() *usecase.BuildParams {
	return usecase.NewBuildParams(c.Documents)
}

// AccessFileUseCase returns a new AccessFile use case.
func (c *Container) AccessFileUseCase() *usecase.AccessFile {
	return usecase.NewAccessFile(c.Documents, c.ActionIO, c.Logger)
}

// UpdateFileUseCase returns a new UpdateFile use case.
func (c *Container) UpdateFileUseCase() *usecase.UpdateFile {
	return usecase.NewUpdateFile(c.GitHub, c.Logger)
}

// ManageColumnUseCase returns a new ManageColumn use case.
func (c *Container) ManageColumnUseCase() *usecase.ManageColumn {
	return usecase.NewManageColumn(c.GitHub, c.Logger)
}

// GenerateReadmeUseCase returns a new GenerateReadme use case.
func (c *Container) GenerateReadmeUseCase() *usecase.GenerateReadme {
	return usecase.NewGenerateReadme(c.GitHub, c.ConfigLoader, c.Logger)
}

// UpdateReleaseUseCase returns a new UpdateRelease use case.
func (c *Container) UpdateReleaseUseCase() *usecase.UpdateRelease {
	return usecase.NewUpdateRelease(c.GitHub, c.Logger)
}

// DispatchEventUseCase returns a new DispatchEvent use case.
func (c *Container) DispatchEventUseCase() *usecase.DispatchEvent {
	return usecase.NewDispatchEvent(c.GitHub, c.Documents, c.Logger)
}

// UpdateSecretsUseCase returns a new UpdateSecrets use case.
func (c *Container) UpdateSecretsUseCase() *usecase.UpdateSecrets {
	return usecase.NewUpdateSecrets(c.GitHub, c.Sealer, c.Documents, c.ActionIO, c.Logger)
}

// SprintNameUseCase returns a new SprintName use case.
func (c *Container) SprintNameUseCase() *usecase.SprintName {
	return usecase.NewSprintName(c.Clock)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate(c.ConfigManager)
}
