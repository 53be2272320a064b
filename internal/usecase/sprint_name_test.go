package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/repo-actions/internal/domain"
	"github.com/runoshun/repo-actions/internal/testutil"
)

func TestSprintName_Execute(t *testing.T) {
	clock := &testutil.MockClock{NowTime: time.Date(2024, 12, 23, 9, 0, 0, 0, time.UTC)}

	tests := []struct {
		name     string
		in       SprintNameInput
		expected string
	}{
		{"end date", SprintNameInput{Start: "2024-01-02", End: "2024-01-16", EndType: EndTypeDate}, "02 Jan - 16 Jan 2024"},
		{"rfc3339 dates", SprintNameInput{Start: "2024-03-04T10:00:00Z", End: "2024-03-18T10:00:00Z", EndType: EndTypeDate}, "04 Mar - 18 Mar 2024"},
		{"length", SprintNameInput{Start: "2024-01-02", End: "14", EndType: EndTypeLength}, "02 Jan - 16 Jan 2024"},
		{"start defaults to now across years", SprintNameInput{End: "14", EndType: EndTypeLength}, "23 Dec 2024 - 06 Jan 2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewSprintName(clock).Execute(context.Background(), tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, out.Result)
		})
	}
}

func TestSprintName_Errors(t *testing.T) {
	uc := NewSprintName(&testutil.MockClock{NowTime: time.Now()})

	_, err := uc.Execute(context.Background(), SprintNameInput{End: "14", EndType: "weeks"})
	assert.ErrorIs(t, err, domain.ErrInvalidEndType)

	_, err = uc.Execute(context.Background(), SprintNameInput{End: "two", EndType: EndTypeLength})
	var perr *domain.ParseError
	assert.ErrorAs(t, err, &perr)

	_, err = uc.Execute(context.Background(), SprintNameInput{End: "16/01/2024", EndType: EndTypeDate})
	assert.ErrorAs(t, err, &perr)
}
