package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/runoshun/repo-actions/internal/domain"
)

// Column actions.
const (
	ColumnCreate = "create"
	ColumnUpdate = "update"
)

// ManageColumnInput contains the parameters for creating or updating a project column.
type ManageColumnInput struct {
	Project  string // Project name
	Column   string // Column to create, or to update
	Action   string // create or update
	Name     string // New name (update only, empty = keep)
	Position string // first, last or after:<column name> (empty = keep)
	Repo     domain.Repo
}

// ManageColumnOutput contains the affected column.
type ManageColumnOutput struct {
	Column domain.ProjectColumn
}

// ManageColumn is the use case for managing columns of a classic project board.
type ManageColumn struct {
	github domain.GitHub
	logger *slog.Logger
}

// NewManageColumn creates a new ManageColumn use case.
func NewManageColumn(github domain.GitHub, logger *slog.Logger) *ManageColumn {
	return &ManageColumn{
		github: github,
		logger: logger,
	}
}

// Execute creates or updates the column, then moves it when a position is given.
func (uc *ManageColumn) Execute(ctx context.Context, in ManageColumnInput) (*ManageColumnOutput, error) {
	if in.Action != ColumnCreate && in.Action != ColumnUpdate {
		return nil, fmt.Errorf("%w: '%s'", domain.ErrInvalidAction, in.Action)
	}

	project, err := uc.findProject(ctx, in.Repo, in.Project)
	if err != nil {
		return nil, err
	}
	columns, err := uc.github.ListProjectColumns(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}

	// Resolve the position before anything is written.
	position, err := resolvePosition(columns, project, in.Position)
	if err != nil {
		return nil, err
	}

	var column domain.ProjectColumn
	switch in.Action {
	case ColumnCreate:
		created, err := uc.github.CreateProjectColumn(ctx, project.ID, in.Column)
		if err != nil {
			return nil, fmt.Errorf("create column: %w", err)
		}
		column = *created
		uc.logger.Info("column created", "project", project.Name, "column", column.Name, "id", column.ID)
	case ColumnUpdate:
		found, err := findColumn(columns, project, in.Column)
		if err != nil {
			return nil, err
		}
		column = *found
		if in.Name != "" {
			if err := uc.github.RenameProjectColumn(ctx, column.ID, in.Name); err != nil {
				return nil, fmt.Errorf("rename column: %w", err)
			}
			column.Name = in.Name
			uc.logger.Info("column renamed", "project", project.Name, "from", in.Column, "to", in.Name)
		}
	}

	if position != "" {
		if err := uc.github.MoveProjectColumn(ctx, column.ID, position); err != nil {
			return nil, fmt.Errorf("move column: %w", err)
		}
		uc.logger.Info("column moved", "column", column.Name, "position", position)
	}
	return &ManageColumnOutput{Column: column}, nil
}

func (uc *ManageColumn) findProject(ctx context.Context, repo domain.Repo, name string) (*domain.Project, error) {
	projects, err := uc.github.ListProjects(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	for i := range projects {
		if projects[i].Name == name {
			return &projects[i], nil
		}
	}
	return nil, fmt.Errorf("%w: '%s'", domain.ErrProjectNotFound, name)
}

func findColumn(columns []domain.ProjectColumn, project *domain.Project, name string) (*domain.ProjectColumn, error) {
	for i := range columns {
		if columns[i].Name == name {
			return &columns[i], nil
		}
	}
	return nil, fmt.Errorf("%w: '%s' (project: '%s')", domain.ErrColumnNotFound, name, project.Name)
}

// resolvePosition converts a position input to the API form, replacing the
// column name of an after: position with its ID.
func resolvePosition(columns []domain.ProjectColumn, project *domain.Project, position string) (string, error) {
	switch position {
	case "", "first", "last":
		return position, nil
	}
	name, ok := strings.CutPrefix(position, "after:")
	if !ok || name == "" {
		return "", fmt.Errorf("%w: '%s' (must be first, last or after:<column>)", domain.ErrInvalidPosition, position)
	}
	column, err := findColumn(columns, project, name)
	if err != nil {
		return "", err
	}
	return "after:" + strconv.FormatInt(column.ID, 10), nil
}
