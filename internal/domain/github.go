// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"strings"
)

// Issue represents a GitHub issue or pull request.
// Fields are ordered to minimize memory padding.
type Issue struct {
	Title       string   `json:"title"`                  // Title (required)
	Body        string   `json:"body,omitempty"`         // Body text
	HTMLURL     string   `json:"html_url,omitempty"`     // Web URL
	Labels      []string `json:"labels,omitempty"`       // Label names
	Number      int      `json:"number"`                 // Issue number (required)
	Milestone   int      `json:"milestone,omitempty"`    // Milestone number (0 = none)
	PullRequest bool     `json:"pull_request,omitempty"` // Set when the entry is a pull request
}

// HasMilestone returns true if the issue is assigned to a milestone.
func (i Issue) HasMilestone() bool {
	return i.Milestone > 0
}

// HasLabel reports whether the issue carries the label, ignoring case.
func (i Issue) HasLabel(name string) bool {
	for _, l := range i.Labels {
		if strings.EqualFold(l, name) {
			return true
		}
	}
	return false
}

// HasAnyLabel reports whether the issue carries at least one of the labels.
func (i Issue) HasAnyLabel(names []string) bool {
	for _, name := range names {
		if i.HasLabel(name) {
			return true
		}
	}
	return false
}

// Milestone represents a GitHub milestone.
// Dates are kept as the ISO-8601 strings returned by the API.
type Milestone struct {
	Title       string `json:"title"`                 // Title (required), also used as the release tag
	Description string `json:"description,omitempty"` // Description
	State       string `json:"state,omitempty"`       // open or closed
	DueOn       string `json:"due_on,omitempty"`      // Due date (may be empty)
	ClosedAt    string `json:"closed_at,omitempty"`   // Closed date (may be empty)
	HTMLURL     string `json:"html_url,omitempty"`    // Web URL
	Number      int    `json:"number"`                // Milestone number (required)
}

// ResolutionDate returns the due date if present, else the closed date.
func (m Milestone) ResolutionDate() string {
	if m.DueOn != "" {
		return m.DueOn
	}
	return m.ClosedAt
}

// Release represents a GitHub release.
type Release struct {
	TagName         string `json:"tag_name"`
	TargetCommitish string `json:"target_commitish,omitempty"`
	Name            string `json:"name,omitempty"`
	Body            string `json:"body,omitempty"`
	PublishedAt     string `json:"published_at,omitempty"` // Empty for unpublished drafts
	HTMLURL         string `json:"html_url,omitempty"`
	ID              int64  `json:"id"`
	Draft           bool   `json:"draft"`
	Prerelease      bool   `json:"prerelease"`
}

// DisplayName returns the release name, falling back to the tag name.
func (r Release) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.TagName
}

// Project represents a classic repository project board.
type Project struct {
	Name string
	ID   int64
}

// ProjectColumn represents a column of a project board.
type ProjectColumn struct {
	Name string
	ID   int64
}

// RepoFile describes a file stored in a repository.
type RepoFile struct {
	Path string
	SHA  string // Blob SHA, empty if the file does not exist yet
}

// FileUpdate describes a commit that creates or updates one file.
// Fields are ordered to minimize memory padding.
type FileUpdate struct {
	Path    string
	Message string
	SHA     string // Blob SHA of the file being replaced (empty = create)
	User    string // Committer and author name
	Email   string // Committer and author email
	Content []byte // Raw content, base64-encoded on the wire
}

// PublicKey is the repository public key used to seal secrets.
type PublicKey struct {
	KeyID string
	Key   string // Base64-encoded Curve25519 public key
}

// EncryptedSecret is a sealed secret ready to be stored in a repository.
type EncryptedSecret struct {
	Name           string
	KeyID          string
	EncryptedValue string // Base64-encoded sealed box
}

// Repo identifies a repository by owner and name.
type Repo struct {
	Owner string
	Name  string
}

// ParseRepo parses an "owner/name" string.
func ParseRepo(s string) (Repo, error) {
	parts := strings.Split(s, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Repo{}, fmt.Errorf("%w: '%s'", ErrInvalidRepository, s)
	}
	return Repo{Owner: parts[0], Name: parts[1]}, nil
}

// String returns "owner/name".
func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

// RepoContext describes the repository an action runs against.
type RepoContext struct {
	ServerURL string // e.g. https://github.com
	Repo      Repo
}

// URL returns the web URL of the repository without a trailing slash.
func (c RepoContext) URL() string {
	server := strings.TrimRight(c.ServerURL, "/")
	if server == "" {
		server = DefaultServerURL
	}
	return server + "/" + c.Repo.String()
}

// DefaultServerURL is the web URL of github.com.
const DefaultServerURL = "https://github.com"
