// Package logging builds the slog logger used by the actions.
// On a runner, records are written as workflow commands so that warnings and
// errors are annotated in the job log. Locally, records are rendered by tint.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

// Options configures the logger.
type Options struct {
	Level  slog.Level
	Runner bool // Emit workflow commands instead of terminal output
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	if opts.Runner {
		return slog.New(NewWorkflowHandler(w, opts.Level))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		TimeFormat: time.TimeOnly,
		Level:      opts.Level,
	}))
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WorkflowHandler is a slog.Handler that writes GitHub Actions workflow commands.
// Fields are ordered to minimize memory padding.
type WorkflowHandler struct {
	w      io.Writer
	mu     *sync.Mutex
	attrs  string // Attributes added by WithAttrs, already rendered
	groups []string
	level  slog.Level
}

// NewWorkflowHandler creates a WorkflowHandler.
func NewWorkflowHandler(w io.Writer, level slog.Level) *WorkflowHandler {
	return &WorkflowHandler{w: w, level: level, mu: &sync.Mutex{}}
}

// Enabled reports whether records at level are written.
func (h *WorkflowHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle writes one record as a single line.
func (h *WorkflowHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Message)
	sb.WriteString(h.attrs)

	prefix := strings.Join(h.groups, ".")
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, prefix, a)
		return true
	})

	line := commandPrefix(r.Level) + escapeData(sb.String()) + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line)
	return err
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *WorkflowHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var sb strings.Builder
	sb.WriteString(h.attrs)
	prefix := strings.Join(h.groups, ".")
	for _, a := range attrs {
		writeAttr(&sb, prefix, a)
	}
	clone := *h
	clone.attrs = sb.String()
	return &clone
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *WorkflowHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(slices.Clone(h.groups), name)
	return &clone
}

func commandPrefix(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "::error::"
	case level >= slog.LevelWarn:
		return "::warning::"
	case level >= slog.LevelInfo:
		return ""
	default:
		return "::debug::"
	}
}

func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		group := a.Key
		if prefix != "" && group != "" {
			group = prefix + "." + group
		} else if group == "" {
			group = prefix
		}
		for _, ga := range a.Value.Group() {
			writeAttr(sb, group, ga)
		}
		return
	}
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	fmt.Fprintf(sb, " %s=%v", key, a.Value.Any())
}

// escapeData escapes a workflow command message.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}
