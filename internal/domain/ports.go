package domain

import (
	"context"
	"encoding/json"
	"time"
)

// GitHub is the collaborator API used by the actions.
// List methods return every page, concatenated in page order.
type GitHub interface {
	// ListMilestones lists milestones in the given state (open, closed, all).
	ListMilestones(ctx context.Context, repo Repo, state string) ([]Milestone, error)

	// GetMilestone retrieves a milestone by number. Returns ErrMilestoneNotFound if absent.
	GetMilestone(ctx context.Context, repo Repo, number int) (*Milestone, error)

	// ListIssues lists issues and pull requests matching the query.
	ListIssues(ctx context.Context, repo Repo, query IssueQuery) ([]Issue, error)

	// ListReleases lists all releases.
	ListReleases(ctx context.Context, repo Repo) ([]Release, error)

	// GetRelease retrieves a release by ID. Returns ErrReleaseNotFound if absent.
	GetRelease(ctx context.Context, repo Repo, id int64) (*Release, error)

	// UpdateRelease writes every editable field of the release.
	UpdateRelease(ctx context.Context, repo Repo, release Release) error

	// GetFile returns the file's blob SHA. SHA is empty if the file does not exist.
	GetFile(ctx context.Context, repo Repo, path string) (*RepoFile, error)

	// PutFile creates or updates a file with a single commit.
	PutFile(ctx context.Context, repo Repo, update FileUpdate) error

	// ListProjects lists classic project boards of the repository.
	ListProjects(ctx context.Context, repo Repo) ([]Project, error)

	// ListProjectColumns lists the columns of a project.
	ListProjectColumns(ctx context.Context, projectID int64) ([]ProjectColumn, error)

	// CreateProjectColumn creates a column and returns it.
	CreateProjectColumn(ctx context.Context, projectID int64, name string) (*ProjectColumn, error)

	// RenameProjectColumn renames a column.
	RenameProjectColumn(ctx context.Context, columnID int64, name string) error

	// MoveProjectColumn moves a column (first, last or after:<column_id>).
	MoveProjectColumn(ctx context.Context, columnID int64, position string) error

	// GetPublicKey retrieves the repository public key for secrets.
	GetPublicKey(ctx context.Context, repo Repo) (*PublicKey, error)

	// PutSecret creates or updates a repository secret.
	PutSecret(ctx context.Context, repo Repo, secret EncryptedSecret) error

	// Dispatch triggers a repository_dispatch event.
	Dispatch(ctx context.Context, repo Repo, eventType string, payload json.RawMessage) error
}

// IssueQuery specifies criteria for listing issues.
type IssueQuery struct {
	Milestone string   // Milestone number, "*", "none" or empty for any
	State     string   // open, closed or all
	Labels    []string // Filter by labels (AND condition)
}

// CommitHistory resolves commits of the repository.
type CommitHistory interface {
	// FirstCommit returns the full SHA of the root commit.
	FirstCommit(ctx context.Context, repo Repo) (string, error)
}

// SecretSealer encrypts a value for a repository public key.
type SecretSealer interface {
	// Seal encrypts value with the base64-encoded public key and returns base64 ciphertext.
	Seal(publicKey string, value []byte) (string, error)
}

// ActionIO is the runner surface an action writes its results to.
type ActionIO interface {
	// SetOutput sets a step output.
	SetOutput(name, value string) error

	// ExportVariable exports an environment variable to later steps.
	ExportVariable(name, value string) error

	// SetSecret masks a value in the job log.
	SetSecret(value string)
}

// ConfigLoader loads action configuration files.
type ConfigLoader interface {
	// LoadChangelog loads a changelog config merged over base. Empty path returns base.
	LoadChangelog(path string, base *ChangelogConfig) (*ChangelogConfig, error)

	// LoadReleases loads a release changelog config merged over the defaults.
	LoadReleases(path string) (*ReleasesConfig, error)

	// LoadReadme loads a README config. Empty path returns an empty config.
	LoadReadme(path string) (*ReadmeConfig, error)
}

// ConfigKind names a configuration file layout.
type ConfigKind string

// Configuration kinds.
const (
	ConfigChangelog ConfigKind = "changelog" // Changelog from milestones
	ConfigMilestone ConfigKind = "milestone" // Notes of one milestone
	ConfigReleases  ConfigKind = "releases"  // Changelog from releases
)

// ConfigManager writes configuration templates.
type ConfigManager interface {
	// InitConfig writes the default config of kind to path.
	// Returns ErrConfigExists if the file exists.
	InitConfig(path string, kind ConfigKind) error

	// Template renders the default config of kind in the format implied by path.
	Template(path string, kind ConfigKind) (string, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
