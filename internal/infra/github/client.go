// Package github implements domain.GitHub on top of the go-github REST client.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	gh "github.com/google/go-github/v59/github"
	"golang.org/x/oauth2"

	"github.com/runoshun/repo-actions/internal/domain"
)

// Ensure Client implements the domain ports.
var (
	_ domain.GitHub        = (*Client)(nil)
	_ domain.CommitHistory = (*Client)(nil)
)

const (
	// perPage is the page size requested from list endpoints (the API maximum).
	perPage = 100

	defaultMaxRetries    = 3
	defaultRetryInterval = 500 * time.Millisecond
)

// Options configures a Client.
type Options struct {
	HTTPClient    *http.Client  // Base transport, defaults to http.DefaultClient
	Logger        *slog.Logger  // Defaults to slog.Default()
	Token         string        // Token for authentication (empty = anonymous)
	BaseURL       string        // Enterprise API URL, empty for api.github.com
	MaxRetries    int           // Retries for transient read failures, 0 = default
	RetryInterval time.Duration // Initial backoff interval, 0 = default
}

// Client is a GitHub REST client. Reads are retried on transient failures;
// writes are sent once.
type Client struct {
	api           *gh.Client
	logger        *slog.Logger
	retryInterval time.Duration
	maxRetries    uint64
}

// NewClient creates a new Client.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	httpClient := opts.HTTPClient
	if opts.Token != "" {
		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		httpClient = oauth2.NewClient(ctx, src)
	}

	api := gh.NewClient(httpClient)
	if opts.BaseURL != "" {
		var err error
		api, err = api.WithEnterpriseURLs(opts.BaseURL, opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("configure enterprise url: %w", err)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	interval := opts.RetryInterval
	if interval <= 0 {
		interval = defaultRetryInterval
	}

	return &Client{
		api:           api,
		logger:        logger,
		maxRetries:    uint64(maxRetries),
		retryInterval: interval,
	}, nil
}

// ListMilestones lists milestones in the given state.
func (c *Client) ListMilestones(ctx context.Context, repo domain.Repo, state string) ([]domain.Milestone, error) {
	items, err := collect(ctx, c, func(page gh.ListOptions) ([]*gh.Milestone, *gh.Response, error) {
		return c.api.Issues.ListMilestones(ctx, repo.Owner, repo.Name, &gh.MilestoneListOptions{
			State:       state,
			ListOptions: page,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("github list milestones: %w", err)
	}
	return convertAll(items, toMilestone)
}

// GetMilestone retrieves a milestone by number.
func (c *Client) GetMilestone(ctx context.Context, repo domain.Repo, number int) (*domain.Milestone, error) {
	var item *gh.Milestone
	err := c.retry(ctx, func() error {
		var err error
		item, _, err = c.api.Issues.GetMilestone(ctx, repo.Owner, repo.Name, number)
		return err
	})
	if isNotFound(err) {
		return nil, fmt.Errorf("%w: #%d", domain.ErrMilestoneNotFound, number)
	}
	if err != nil {
		return nil, fmt.Errorf("github get milestone: %w", err)
	}
	m, err := toMilestone(item)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListIssues lists issues and pull requests matching the query.
func (c *Client) ListIssues(ctx context.Context, repo domain.Repo, query domain.IssueQuery) ([]domain.Issue, error) {
	items, err := collect(ctx, c, func(page gh.ListOptions) ([]*gh.Issue, *gh.Response, error) {
		return c.api.Issues.ListByRepo(ctx, repo.Owner, repo.Name, &gh.IssueListByRepoOptions{
			Milestone:   query.Milestone,
			State:       query.State,
			Labels:      query.Labels,
			ListOptions: page,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("github list issues: %w", err)
	}
	return convertAll(items, toIssue)
}

// ListReleases lists all releases.
func (c *Client) ListReleases(ctx context.Context, repo domain.Repo) ([]domain.Release, error) {
	items, err := collect(ctx, c, func(page gh.ListOptions) ([]*gh.RepositoryRelease, *gh.Response, error) {
		return c.api.Repositories.ListReleases(ctx, repo.Owner, repo.Name, &page)
	})
	if err != nil {
		return nil, fmt.Errorf("github list releases: %w", err)
	}
	return convertAll(items, toRelease)
}

// GetRelease retrieves a release by ID.
func (c *Client) GetRelease(ctx context.Context, repo domain.Repo, id int64) (*domain.Release, error) {
	var item *gh.RepositoryRelease
	err := c.retry(ctx, func() error {
		var err error
		item, _, err = c.api.Repositories.GetRelease(ctx, repo.Owner, repo.Name, id)
		return err
	})
	if isNotFound(err) {
		return nil, fmt.Errorf("%w: id %d", domain.ErrReleaseNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("github get release: %w", err)
	}
	r, err := toRelease(item)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateRelease writes every editable field of the release.
func (c *Client) UpdateRelease(ctx context.Context, repo domain.Repo, release domain.Release) error {
	_, _, err := c.api.Repositories.EditRelease(ctx, repo.Owner, repo.Name, release.ID, &gh.RepositoryRelease{
		TagName:         gh.String(release.TagName),
		TargetCommitish: gh.String(release.TargetCommitish),
		Name:            gh.String(release.Name),
		Body:            gh.String(release.Body),
		Draft:           gh.Bool(release.Draft),
		Prerelease:      gh.Bool(release.Prerelease),
	})
	if err != nil {
		return fmt.Errorf("github update release: %w", err)
	}
	return nil
}

// GetFile returns the blob SHA of a file; the SHA is empty if the file does not exist.
func (c *Client) GetFile(ctx context.Context, repo domain.Repo, path string) (*domain.RepoFile, error) {
	var file *gh.RepositoryContent
	err := c.retry(ctx, func() error {
		var err error
		file, _, _, err = c.api.Repositories.GetContents(ctx, repo.Owner, repo.Name, path, nil)
		return err
	})
	if isNotFound(err) {
		return &domain.RepoFile{Path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("github get contents: %w", err)
	}
	if file == nil {
		return nil, fmt.Errorf("github get contents: %s is a directory", path)
	}
	return &domain.RepoFile{Path: path, SHA: file.GetSHA()}, nil
}

// PutFile creates or updates a file with a single commit.
func (c *Client) PutFile(ctx context.Context, repo domain.Repo, update domain.FileUpdate) error {
	opts := &gh.RepositoryContentFileOptions{
		Message: gh.String(update.Message),
		Content: update.Content,
	}
	if update.User != "" || update.Email != "" {
		author := &gh.CommitAuthor{Name: gh.String(update.User), Email: gh.String(update.Email)}
		opts.Author = author
		opts.Committer = author
	}

	var err error
	if update.SHA != "" {
		opts.SHA = gh.String(update.SHA)
		_, _, err = c.api.Repositories.UpdateFile(ctx, repo.Owner, repo.Name, update.Path, opts)
	} else {
		_, _, err = c.api.Repositories.CreateFile(ctx, repo.Owner, repo.Name, update.Path, opts)
	}
	if err != nil {
		return fmt.Errorf("github put %s: %w", update.Path, err)
	}
	c.logger.Debug("file committed", "path", update.Path, "sha", update.SHA)
	return nil
}

// ListProjects lists classic project boards of the repository.
func (c *Client) ListProjects(ctx context.Context, repo domain.Repo) ([]domain.Project, error) {
	items, err := collect(ctx, c, func(page gh.ListOptions) ([]*gh.Project, *gh.Response, error) {
		return c.api.Repositories.ListProjects(ctx, repo.Owner, repo.Name, &gh.ProjectListOptions{ListOptions: page})
	})
	if err != nil {
		return nil, fmt.Errorf("github list projects: %w", err)
	}
	projects := make([]domain.Project, 0, len(items))
	for _, p := range items {
		projects = append(projects, domain.Project{ID: p.GetID(), Name: p.GetName()})
	}
	return projects, nil
}

// ListProjectColumns lists the columns of a project.
func (c *Client) ListProjectColumns(ctx context.Context, projectID int64) ([]domain.ProjectColumn, error) {
	items, err := collect(ctx, c, func(page gh.ListOptions) ([]*gh.ProjectColumn, *gh.Response, error) {
		return c.api.Projects.ListProjectColumns(ctx, projectID, &page)
	})
	if err != nil {
		return nil, fmt.Errorf("github list project columns: %w", err)
	}
	columns := make([]domain.ProjectColumn, 0, len(items))
	for _, col := range items {
		columns = append(columns, domain.ProjectColumn{ID: col.GetID(), Name: col.GetName()})
	}
	return columns, nil
}

// CreateProjectColumn creates a column.
func (c *Client) CreateProjectColumn(ctx context.Context, projectID int64, name string) (*domain.ProjectColumn, error) {
	col, _, err := c.api.Projects.CreateProjectColumn(ctx, projectID, &gh.ProjectColumnOptions{Name: name})
	if err != nil {
		return nil, fmt.Errorf("github create project column: %w", err)
	}
	return &domain.ProjectColumn{ID: col.GetID(), Name: col.GetName()}, nil
}

// RenameProjectColumn renames a column.
func (c *Client) RenameProjectColumn(ctx context.Context, columnID int64, name string) error {
	if _, _, err := c.api.Projects.UpdateProjectColumn(ctx, columnID, &gh.ProjectColumnOptions{Name: name}); err != nil {
		return fmt.Errorf("github update project column: %w", err)
	}
	return nil
}

// MoveProjectColumn moves a column.
func (c *Client) MoveProjectColumn(ctx context.Context, columnID int64, position string) error {
	if _, err := c.api.Projects.MoveProjectColumn(ctx, columnID, &gh.ProjectColumnMoveOptions{Position: position}); err != nil {
		return fmt.Errorf("github move project column: %w", err)
	}
	return nil
}

// GetPublicKey retrieves the repository public key for secrets.
func (c *Client) GetPublicKey(ctx context.Context, repo domain.Repo) (*domain.PublicKey, error) {
	var key *gh.PublicKey
	err := c.retry(ctx, func() error {
		var err error
		key, _, err = c.api.Actions.GetRepoPublicKey(ctx, repo.Owner, repo.Name)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("github get public key: %w", err)
	}
	return &domain.PublicKey{KeyID: key.GetKeyID(), Key: key.GetKey()}, nil
}

// PutSecret creates or updates a repository secret.
func (c *Client) PutSecret(ctx context.Context, repo domain.Repo, secret domain.EncryptedSecret) error {
	_, err := c.api.Actions.CreateOrUpdateRepoSecret(ctx, repo.Owner, repo.Name, &gh.EncryptedSecret{
		Name:           secret.Name,
		KeyID:          secret.KeyID,
		EncryptedValue: secret.EncryptedValue,
	})
	if err != nil {
		return fmt.Errorf("github put secret %s: %w", secret.Name, err)
	}
	return nil
}

// Dispatch triggers a repository_dispatch event.
func (c *Client) Dispatch(ctx context.Context, repo domain.Repo, eventType string, payload json.RawMessage) error {
	opts := gh.DispatchRequestOptions{EventType: eventType}
	if len(payload) > 0 {
		opts.ClientPayload = &payload
	}
	if _, _, err := c.api.Repositories.Dispatch(ctx, repo.Owner, repo.Name, opts); err != nil {
		return fmt.Errorf("github dispatch %s: %w", eventType, err)
	}
	return nil
}

// FirstCommit returns the SHA of the root commit of the default branch.
// Commits are listed one per page, so the last page holds the root commit.
func (c *Client) FirstCommit(ctx context.Context, repo domain.Repo) (string, error) {
	list := func(page int) ([]*gh.RepositoryCommit, *gh.Response, error) {
		var commits []*gh.RepositoryCommit
		var resp *gh.Response
		err := c.retry(ctx, func() error {
			var err error
			commits, resp, err = c.api.Repositories.ListCommits(ctx, repo.Owner, repo.Name, &gh.CommitsListOptions{
				ListOptions: gh.ListOptions{Page: page, PerPage: 1},
			})
			return err
		})
		return commits, resp, err
	}

	commits, resp, err := list(0)
	if err != nil {
		return "", fmt.Errorf("github list commits: %w", err)
	}
	if resp != nil && resp.LastPage > 1 {
		commits, _, err = list(resp.LastPage)
		if err != nil {
			return "", fmt.Errorf("github list commits: %w", err)
		}
	}
	if len(commits) == 0 || commits[0].GetSHA() == "" {
		return "", domain.ErrFirstCommitUnknown
	}
	return commits[0].GetSHA(), nil
}

// collect fetches every page of a list endpoint and concatenates them in order.
func collect[T any](ctx context.Context, c *Client, fetch func(page gh.ListOptions) ([]T, *gh.Response, error)) ([]T, error) {
	var all []T
	page := gh.ListOptions{PerPage: perPage}
	for {
		var items []T
		var resp *gh.Response
		err := c.retry(ctx, func() error {
			var err error
			items, resp, err = fetch(page)
			return err
		})
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if resp == nil || resp.NextPage == 0 {
			return all, nil
		}
		page.Page = resp.NextPage
	}
}

// retry runs op, retrying transient failures with exponential backoff.
func (c *Client) retry(ctx context.Context, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval
	b := backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx)

	return backoff.RetryNotify(func() error {
		err := op()
		if err != nil && !isTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, b, func(err error, wait time.Duration) {
		c.logger.Warn("github request failed, retrying", "error", err, "wait", wait)
	})
}

func isTransient(err error) bool {
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return true
	}
	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return respErr.Response.StatusCode >= http.StatusInternalServerError
	}
	return false
}

func isNotFound(err error) bool {
	var respErr *gh.ErrorResponse
	return errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == http.StatusNotFound
}
