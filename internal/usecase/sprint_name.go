package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/runoshun/repo-actions/internal/domain"
)

// Sprint end types.
const (
	EndTypeDate   = "date"
	EndTypeLength = "length"
)

// SprintNameInput contains the parameters for naming a sprint.
type SprintNameInput struct {
	Start   string // RFC 3339 or YYYY-MM-DD (empty = now)
	End     string // End date, or length in days
	EndType string // date or length
}

// SprintNameOutput contains the sprint name.
type SprintNameOutput struct {
	Start  time.Time
	End    time.Time
	Result string
}

// SprintName is the use case for formatting the name of a sprint period.
type SprintName struct {
	clock domain.Clock
}

// NewSprintName creates a new SprintName use case.
func NewSprintName(clock domain.Clock) *SprintName {
	return &SprintName{clock: clock}
}

// Execute resolves the period and formats its name.
func (uc *SprintName) Execute(_ context.Context, in SprintNameInput) (*SprintNameOutput, error) {
	if in.EndType != EndTypeDate && in.EndType != EndTypeLength {
		return nil, fmt.Errorf("%w: '%s'", domain.ErrInvalidEndType, in.EndType)
	}

	start := uc.clock.Now()
	if in.Start != "" {
		t, err := parseDate(in.Start)
		if err != nil {
			return nil, fmt.Errorf("start: %w", err)
		}
		start = t
	}

	var end time.Time
	switch in.EndType {
	case EndTypeDate:
		t, err := parseDate(in.End)
		if err != nil {
			return nil, fmt.Errorf("end: %w", err)
		}
		end = t
	case EndTypeLength:
		days, err := strconv.Atoi(in.End)
		if err != nil {
			return nil, &domain.ParseError{Source: "end", Err: err}
		}
		end = start.AddDate(0, 0, days)
	}

	return &SprintNameOutput{Start: start, End: end, Result: domain.SprintName(start, end)}, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, &domain.ParseError{Source: "date", Err: err}
	}
	return t, nil
}
