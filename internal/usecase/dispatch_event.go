package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/runoshun/repo-actions/internal/domain"
)

// DispatchEventInput contains the parameters for a repository_dispatch event.
type DispatchEventInput struct {
	EventType string
	Payload   string // JSON object, YAML mapping or empty
	Repo      domain.Repo
}

// DispatchEventOutput contains the payload that was sent.
type DispatchEventOutput struct {
	Payload json.RawMessage
}

// DispatchEvent is the use case for triggering a repository_dispatch event.
type DispatchEvent struct {
	github domain.GitHub
	docs   domain.Documents
	logger *slog.Logger
}

// NewDispatchEvent creates a new DispatchEvent use case.
func NewDispatchEvent(github domain.GitHub, docs domain.Documents, logger *slog.Logger) *DispatchEvent {
	return &DispatchEvent{
		github: github,
		docs:   docs,
		logger: logger,
	}
}

// Execute parses the payload and sends the event.
// Text starting with '{' is parsed as JSON, anything else as YAML.
func (uc *DispatchEvent) Execute(ctx context.Context, in DispatchEventInput) (*DispatchEventOutput, error) {
	if in.EventType == "" {
		return nil, domain.ErrEmptyEventType
	}

	format := domain.FormatYAML
	if strings.HasPrefix(strings.TrimSpace(in.Payload), "{") {
		format = domain.FormatJSON
	}
	doc, err := uc.docs.Decode(format, in.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if _, ok := doc.(map[string]any); !ok {
		return nil, &domain.ParseError{Source: "payload", Err: fmt.Errorf("expected an object, got %T", doc)}
	}

	encoded, err := uc.docs.Encode(domain.FormatJSON, doc)
	if err != nil {
		return nil, err
	}
	payload := json.RawMessage(encoded)

	if err := uc.github.Dispatch(ctx, in.Repo, in.EventType, payload); err != nil {
		return nil, fmt.Errorf("dispatch %s: %w", in.EventType, err)
	}
	uc.logger.Info("event dispatched", "repository", in.Repo.String(), "event", in.EventType)
	return &DispatchEventOutput{Payload: payload}, nil
}
