// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/runoshun/repo-actions/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Dispatch records a repository_dispatch call.
type Dispatch struct {
	Repo      domain.Repo
	EventType string
	Payload   json.RawMessage
}

// ColumnMove records a MoveProjectColumn call.
type ColumnMove struct {
	Position string
	ColumnID int64
}

// MockGitHub is a test double for domain.GitHub.
// Fields are ordered to minimize memory padding.
type MockGitHub struct {
	// Data
	Milestones []domain.Milestone
	Issues     []domain.Issue
	Releases   []domain.Release
	Projects   []domain.Project
	Columns    map[int64][]domain.ProjectColumn // project ID -> columns
	FileSHAs   map[string]string                // path -> blob SHA
	PublicKey  *domain.PublicKey

	// Recorded calls
	MilestonesCtx   context.Context // Context of the last ListMilestones call
	IssueQueries    []domain.IssueQuery
	UpdatedReleases []domain.Release
	PutFiles        []domain.FileUpdate
	CreatedColumns  []domain.ProjectColumn
	RenamedColumns  []domain.ProjectColumn
	MovedColumns    []ColumnMove
	Secrets         []domain.EncryptedSecret
	Dispatches      []Dispatch

	// Errors
	ListMilestonesErr error
	ListIssuesErr     error
	ListReleasesErr   error
	UpdateReleaseErr  error
	GetFileErr        error
	PutFileErr        error
	ListProjectsErr   error
	ListColumnsErr    error
	CreateColumnErr   error
	RenameColumnErr   error
	MoveColumnErr     error
	GetPublicKeyErr   error
	PutSecretErr      error
	DispatchErr       error

	nextColumnID int64
}

// NewMockGitHub creates a new MockGitHub with initialized maps.
func NewMockGitHub() *MockGitHub {
	return &MockGitHub{
		Columns:      make(map[int64][]domain.ProjectColumn),
		FileSHAs:     make(map[string]string),
		nextColumnID: 1000,
	}
}

// ListMilestones returns milestones in the given state.
func (m *MockGitHub) ListMilestones(ctx context.Context, _ domain.Repo, state string) ([]domain.Milestone, error) {
	m.MilestonesCtx = ctx
	if m.ListMilestonesErr != nil {
		return nil, m.ListMilestonesErr
	}
	var result []domain.Milestone
	for _, ms := range m.Milestones {
		if state == "all" || ms.State == "" || ms.State == state {
			result = append(result, ms)
		}
	}
	return result, nil
}

// GetMilestone returns the milestone with the given number.
func (m *MockGitHub) GetMilestone(_ context.Context, _ domain.Repo, number int) (*domain.Milestone, error) {
	if m.ListMilestonesErr != nil {
		return nil, m.ListMilestonesErr
	}
	for _, ms := range m.Milestones {
		if ms.Number == number {
			found := ms
			return &found, nil
		}
	}
	return nil, domain.ErrMilestoneNotFound
}

// ListIssues returns issues, filtered by milestone number when the query names one.
func (m *MockGitHub) ListIssues(_ context.Context, _ domain.Repo, query domain.IssueQuery) ([]domain.Issue, error) {
	m.IssueQueries = append(m.IssueQueries, query)
	if m.ListIssuesErr != nil {
		return nil, m.ListIssuesErr
	}
	number, err := strconv.Atoi(query.Milestone)
	if err != nil {
		return m.Issues, nil
	}
	var result []domain.Issue
	for _, issue := range m.Issues {
		if issue.Milestone == number {
			result = append(result, issue)
		}
	}
	return result, nil
}

// ListReleases returns all releases.
func (m *MockGitHub) ListReleases(_ context.Context, _ domain.Repo) ([]domain.Release, error) {
	if m.ListReleasesErr != nil {
		return nil, m.ListReleasesErr
	}
	return m.Releases, nil
}

// GetRelease returns the release with the given ID.
func (m *MockGitHub) GetRelease(_ context.Context, _ domain.Repo, id int64) (*domain.Release, error) {
	if m.ListReleasesErr != nil {
		return nil, m.ListReleasesErr
	}
	for _, r := range m.Releases {
		if r.ID == id {
			found := r
			return &found, nil
		}
	}
	return nil, domain.ErrReleaseNotFound
}

// UpdateRelease records the release.
func (m *MockGitHub) UpdateRelease(_ context.Context, _ domain.Repo, release domain.Release) error {
	if m.UpdateReleaseErr != nil {
		return m.UpdateReleaseErr
	}
	m.UpdatedReleases = append(m.UpdatedReleases, release)
	return nil
}

// GetFile returns the configured SHA of a file (empty when absent).
func (m *MockGitHub) GetFile(_ context.Context, _ domain.Repo, path string) (*domain.RepoFile, error) {
	if m.GetFileErr != nil {
		return nil, m.GetFileErr
	}
	return &domain.RepoFile{Path: path, SHA: m.FileSHAs[path]}, nil
}

// PutFile records the update.
func (m *MockGitHub) PutFile(_ context.Context, _ domain.Repo, update domain.FileUpdate) error {
	if m.PutFileErr != nil {
		return m.PutFileErr
	}
	m.PutFiles = append(m.PutFiles, update)
	return nil
}

// ListProjects returns all projects.
func (m *MockGitHub) ListProjects(_ context.Context, _ domain.Repo) ([]domain.Project, error) {
	if m.ListProjectsErr != nil {
		return nil, m.ListProjectsErr
	}
	return m.Projects, nil
}

// ListProjectColumns returns the columns of a project.
func (m *MockGitHub) ListProjectColumns(_ context.Context, projectID int64) ([]domain.ProjectColumn, error) {
	if m.ListColumnsErr != nil {
		return nil, m.ListColumnsErr
	}
	return m.Columns[projectID], nil
}

// CreateProjectColumn appends a column to the project.
func (m *MockGitHub) CreateProjectColumn(_ context.Context, projectID int64, name string) (*domain.ProjectColumn, error) {
	if m.CreateColumnErr != nil {
		return nil, m.CreateColumnErr
	}
	m.nextColumnID++
	col := domain.ProjectColumn{ID: m.nextColumnID, Name: name}
	m.Columns[projectID] = append(m.Columns[projectID], col)
	m.CreatedColumns = append(m.CreatedColumns, col)
	return &col, nil
}

// RenameProjectColumn records the rename.
func (m *MockGitHub) RenameProjectColumn(_ context.Context, columnID int64, name string) error {
	if m.RenameColumnErr != nil {
		return m.RenameColumnErr
	}
	m.RenamedColumns = append(m.RenamedColumns, domain.ProjectColumn{ID: columnID, Name: name})
	return nil
}

// MoveProjectColumn records the move.
func (m *MockGitHub) MoveProjectColumn(_ context.Context, columnID int64, position string) error {
	if m.MoveColumnErr != nil {
		return m.MoveColumnErr
	}
	m.MovedColumns = append(m.MovedColumns, ColumnMove{ColumnID: columnID, Position: position})
	return nil
}

// GetPublicKey returns the configured key.
func (m *MockGitHub) GetPublicKey(_ context.Context, _ domain.Repo) (*domain.PublicKey, error) {
	if m.GetPublicKeyErr != nil {
		return nil, m.GetPublicKeyErr
	}
	return m.PublicKey, nil
}

// PutSecret records the secret.
func (m *MockGitHub) PutSecret(_ context.Context, _ domain.Repo, secret domain.EncryptedSecret) error {
	if m.PutSecretErr != nil {
		return m.PutSecretErr
	}
	m.Secrets = append(m.Secrets, secret)
	return nil
}

// Dispatch records the event.
func (m *MockGitHub) Dispatch(_ context.Context, repo domain.Repo, eventType string, payload json.RawMessage) error {
	if m.DispatchErr != nil {
		return m.DispatchErr
	}
	m.Dispatches = append(m.Dispatches, Dispatch{Repo: repo, EventType: eventType, Payload: payload})
	return nil
}

// MockCommitHistory is a test double for domain.CommitHistory.
type MockCommitHistory struct {
	Err   error
	SHA   string
	Calls int
}

// FirstCommit returns the configured SHA.
func (m *MockCommitHistory) FirstCommit(_ context.Context, _ domain.Repo) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.SHA, nil
}

// MockActionIO is a test double for domain.ActionIO.
// Fields are ordered to minimize memory padding.
type MockActionIO struct {
	Outputs      map[string]string
	Exports      map[string]string
	SetOutputErr error
	Masked       []string
}

// NewMockActionIO creates a new MockActionIO with initialized maps.
func NewMockActionIO() *MockActionIO {
	return &MockActionIO{
		Outputs: make(map[string]string),
		Exports: make(map[string]string),
	}
}

// SetOutput records a step output.
func (m *MockActionIO) SetOutput(name, value string) error {
	if m.SetOutputErr != nil {
		return m.SetOutputErr
	}
	m.Outputs[name] = value
	return nil
}

// ExportVariable records an exported variable.
func (m *MockActionIO) ExportVariable(name, value string) error {
	m.Exports[name] = value
	return nil
}

// SetSecret records a masked value.
func (m *MockActionIO) SetSecret(value string) {
	m.Masked = append(m.Masked, value)
}

// MockSealer is a test double for domain.SecretSealer.
// Sealed values are "sealed(<key>):<value>".
type MockSealer struct {
	Err error
}

// Seal returns a readable fake ciphertext.
func (m *MockSealer) Seal(publicKey string, value []byte) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return "sealed(" + publicKey + "):" + string(value), nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
// Nil configs fall back to the base or built-in defaults.
type MockConfigLoader struct {
	Changelog *domain.ChangelogConfig
	Releases  *domain.ReleasesConfig
	Readme    *domain.ReadmeConfig
	Err       error
	Paths     []string
}

// LoadChangelog returns the configured changelog config.
func (m *MockConfigLoader) LoadChangelog(path string, base *domain.ChangelogConfig) (*domain.ChangelogConfig, error) {
	m.Paths = append(m.Paths, path)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Changelog != nil {
		return m.Changelog, nil
	}
	return base, nil
}

// LoadReleases returns the configured releases config.
func (m *MockConfigLoader) LoadReleases(path string) (*domain.ReleasesConfig, error) {
	m.Paths = append(m.Paths, path)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Releases != nil {
		return m.Releases, nil
	}
	return domain.NewDefaultReleasesConfig(), nil
}

// LoadReadme returns the configured README config.
func (m *MockConfigLoader) LoadReadme(path string) (*domain.ReadmeConfig, error) {
	m.Paths = append(m.Paths, path)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Readme != nil {
		return m.Readme, nil
	}
	return &domain.ReadmeConfig{}, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	Created map[string]domain.ConfigKind // path -> kind
	InitErr error
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{Created: make(map[string]domain.ConfigKind)}
}

// InitConfig records the created config.
func (m *MockConfigManager) InitConfig(path string, kind domain.ConfigKind) error {
	if m.InitErr != nil {
		return m.InitErr
	}
	m.Created[path] = kind
	return nil
}

// Template returns a fake template naming the kind.
func (m *MockConfigManager) Template(_ string, kind domain.ConfigKind) (string, error) {
	if m.InitErr != nil {
		return "", m.InitErr
	}
	return "template:" + string(kind), nil
}
