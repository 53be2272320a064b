package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrMilestoneNotFound  = errors.New("milestone not found")
	ErrReleaseNotFound    = errors.New("release not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrColumnNotFound     = errors.New("column not found")
	ErrInvalidRepository  = errors.New("invalid repository name (expected owner/name)")
	ErrInvalidType        = errors.New("invalid parse type (must be json or yaml)")
	ErrInvalidAction      = errors.New("invalid action (must be create or update)")
	ErrInvalidEndType     = errors.New("invalid end type (must be date or length)")
	ErrInvalidPosition    = errors.New("invalid column position")
	ErrInvalidPolicy      = errors.New("invalid policy value")
	ErrEmptyMilestone     = errors.New("milestone cannot be empty")
	ErrEmptyFile          = errors.New("file path cannot be empty")
	ErrEmptyEventType     = errors.New("event type cannot be empty")
	ErrNoRepository       = errors.New("repository not detected (set GITHUB_REPOSITORY or add an origin remote)")
	ErrNoToken            = errors.New("no GitHub token (set --token or GITHUB_TOKEN)")
	ErrFirstCommitUnknown = errors.New("first commit could not be determined")
	ErrConfigExists       = errors.New("config file already exists")
	ErrInvalidConfigKind  = errors.New("invalid config kind (must be changelog, milestone or releases)")
)

// ParseError reports malformed or incomplete structured input.
// Fields are ordered to minimize memory padding.
type ParseError struct {
	Err    error
	Source string // Where the input came from (file path or input name)
	Field  string // Missing or invalid field, empty for syntax errors
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		if e.Err != nil {
			return fmt.Sprintf("parse %s: field %q: %v", e.Source, e.Field, e.Err)
		}
		return fmt.Sprintf("parse %s: missing required field %q", e.Source, e.Field)
	}
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingField returns a ParseError for a required field that is absent.
func MissingField(source, field string) *ParseError {
	return &ParseError{Source: source, Field: field}
}
