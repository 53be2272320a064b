package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/repo-actions/internal/domain"
	"github.com/runoshun/repo-actions/internal/infra/document"
	"github.com/runoshun/repo-actions/internal/testutil"
)

func TestDispatchEvent_Execute(t *testing.T) {
	target := domain.Repo{Owner: "acme", Name: "deploy"}

	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{"empty payload", "", `{}`},
		{"json payload", `{"ref":"main","env":{"stage":"prod"}}`, `{"env":{"stage":"prod"},"ref":"main"}`},
		{"yaml payload", "ref: main\nforce: true\n", `{"force":true,"ref":"main"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gh := testutil.NewMockGitHub()
			uc := NewDispatchEvent(gh, document.NewCodec(), discardLogger())

			out, err := uc.Execute(context.Background(), DispatchEventInput{Repo: target, EventType: "deploy", Payload: tt.payload})

			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(out.Payload))
			require.Len(t, gh.Dispatches, 1)
			assert.Equal(t, target, gh.Dispatches[0].Repo)
			assert.Equal(t, "deploy", gh.Dispatches[0].EventType)
			assert.Equal(t, json.RawMessage(tt.expected), gh.Dispatches[0].Payload)
		})
	}
}

func TestDispatchEvent_Errors(t *testing.T) {
	t.Run("empty event type", func(t *testing.T) {
		gh := testutil.NewMockGitHub()
		_, err := NewDispatchEvent(gh, document.NewCodec(), discardLogger()).Execute(context.Background(), DispatchEventInput{})
		assert.ErrorIs(t, err, domain.ErrEmptyEventType)
		assert.Empty(t, gh.Dispatches)
	})

	t.Run("scalar payload", func(t *testing.T) {
		gh := testutil.NewMockGitHub()
		_, err := NewDispatchEvent(gh, document.NewCodec(), discardLogger()).Execute(context.Background(), DispatchEventInput{EventType: "x", Payload: "just text"})
		var perr *domain.ParseError
		assert.ErrorAs(t, err, &perr)
	})

	t.Run("malformed json", func(t *testing.T) {
		gh := testutil.NewMockGitHub()
		_, err := NewDispatchEvent(gh, document.NewCodec(), discardLogger()).Execute(context.Background(), DispatchEventInput{EventType: "x", Payload: `{"a":`})
		var perr *domain.ParseError
		assert.ErrorAs(t, err, &perr)
	})

	t.Run("api error", func(t *testing.T) {
		gh := testutil.NewMockGitHub()
		gh.DispatchErr = assert.AnError
		_, err := NewDispatchEvent(gh, document.NewCodec(), discardLogger()).Execute(context.Background(), DispatchEventInput{EventType: "x"})
		assert.ErrorIs(t, err, assert.AnError)
	})
}
