// Package markdown renders Markdown previews for terminals.
package markdown

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// DefaultWidth is the wrap width used when none is configured.
const DefaultWidth = 100

// Renderer renders Markdown with ANSI styling.
type Renderer struct {
	style string
	width int
}

// NewRenderer creates a Renderer. Plain disables colours, for logs and pipes.
func NewRenderer(width int, plain bool) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	style := styles.DarkStyle
	if plain {
		style = styles.NoTTYStyle
	}
	return &Renderer{style: style, width: width}
}

// Render returns the styled form of md.
func (r *Renderer) Render(md string) (string, error) {
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(r.width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := tr.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
