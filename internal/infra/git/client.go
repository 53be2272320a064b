// Package git reads repository metadata from the local clone.
package git

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/runoshun/repo-actions/internal/domain"
)

// Ensure Client implements domain.CommitHistory interface.
var _ domain.CommitHistory = (*Client)(nil)

// Client provides read-only git operations backed by go-git.
type Client struct {
	repo *git.Repository
	dir  string // Directory the repository was discovered from
}

// NewClient opens the repository containing dir.
// Parent directories are searched for the .git directory.
func NewClient(dir string) (*Client, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}
	return &Client{repo: repo, dir: dir}, nil
}

// NewClientWithRepo creates a Client for an already opened repository.
func NewClientWithRepo(repo *git.Repository) *Client {
	return &Client{repo: repo}
}

// Origin returns the repository the origin remote points to.
func (c *Client) Origin() (domain.RepoContext, error) {
	remote, err := c.repo.Remote("origin")
	if errors.Is(err, git.ErrRemoteNotFound) {
		return domain.RepoContext{}, domain.ErrNoRepository
	}
	if err != nil {
		return domain.RepoContext{}, fmt.Errorf("read origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return domain.RepoContext{}, domain.ErrNoRepository
	}
	return ParseRemoteURL(urls[0])
}

// FirstCommit returns the root commit reached by following first parents from HEAD.
// Shallow clones do not contain the root commit, so ErrFirstCommitUnknown is returned.
func (c *Client) FirstCommit(ctx context.Context, _ domain.Repo) (string, error) {
	shallow, err := c.repo.Storer.Shallow()
	if err != nil {
		return "", fmt.Errorf("read shallow commits: %w", err)
	}
	if len(shallow) > 0 {
		return "", domain.ErrFirstCommitUnknown
	}

	head, err := c.repo.Head()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFirstCommitUnknown, err)
	}
	commit, err := c.repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("read commit %s: %w", head.Hash(), err)
	}
	for commit.NumParents() > 0 {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		commit, err = commit.Parent(0)
		if err != nil {
			return "", fmt.Errorf("read parent commit: %w", err)
		}
	}
	return commit.Hash.String(), nil
}

// ParseRemoteURL extracts the server URL and repository from a remote URL.
// Supports https://host/owner/name(.git), ssh://git@host/owner/name and git@host:owner/name.
func ParseRemoteURL(raw string) (domain.RepoContext, error) {
	var host, path string
	if !strings.Contains(raw, "://") {
		// scp-like syntax: [user@]host:owner/name
		hostPart, pathPart, ok := strings.Cut(raw, ":")
		if !ok {
			return domain.RepoContext{}, fmt.Errorf("%w: remote %q", domain.ErrInvalidRepository, raw)
		}
		if _, after, found := strings.Cut(hostPart, "@"); found {
			hostPart = after
		}
		host, path = hostPart, pathPart
	} else {
		u, err := url.Parse(raw)
		if err != nil {
			return domain.RepoContext{}, fmt.Errorf("%w: remote %q", domain.ErrInvalidRepository, raw)
		}
		host, path = u.Hostname(), u.Path
		if u.Scheme == "http" || u.Scheme == "https" {
			host = u.Host
		}
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	repo, err := domain.ParseRepo(path)
	if err != nil {
		return domain.RepoContext{}, err
	}
	return domain.RepoContext{ServerURL: "https://" + host, Repo: repo}, nil
}

// Chain resolves the first commit from each history in turn,
// moving on while a history reports ErrFirstCommitUnknown.
type Chain []domain.CommitHistory

// FirstCommit implements domain.CommitHistory.
func (ch Chain) FirstCommit(ctx context.Context, repo domain.Repo) (string, error) {
	for _, h := range ch {
		sha, err := h.FirstCommit(ctx, repo)
		if errors.Is(err, domain.ErrFirstCommitUnknown) {
			continue
		}
		return sha, err
	}
	return "", domain.ErrFirstCommitUnknown
}
