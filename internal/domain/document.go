package domain

import "fmt"

// DocumentFormat is a structured text format accepted by inputs.
type DocumentFormat string

// Document formats.
const (
	FormatJSON DocumentFormat = "json"
	FormatYAML DocumentFormat = "yaml"
)

// ParseDocumentFormat validates a format name.
func ParseDocumentFormat(s string) (DocumentFormat, error) {
	switch DocumentFormat(s) {
	case FormatJSON, FormatYAML:
		return DocumentFormat(s), nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrInvalidType, s)
	}
}

// Documents decodes, queries and encodes structured documents.
// Decoded documents are trees of map[string]any, []any and scalars.
type Documents interface {
	// Decode parses text. Empty text decodes to an empty map.
	Decode(format DocumentFormat, text string) (any, error)

	// Encode renders a document.
	Encode(format DocumentFormat, doc any) (string, error)

	// Lookup returns the value at a dotted path rendered as text
	// (strings as-is, objects and arrays as JSON). ok is false when absent.
	Lookup(doc any, path string) (value string, ok bool, err error)

	// Assign sets the value at a dotted path, creating intermediate objects,
	// and returns the updated document.
	Assign(doc any, path string, value any) (any, error)
}
