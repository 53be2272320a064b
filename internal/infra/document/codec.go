// Package document decodes, queries and encodes JSON and YAML documents.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/repo-actions/internal/domain"
)

// Ensure Codec implements domain.Documents interface.
var _ domain.Documents = (*Codec)(nil)

// Codec implements domain.Documents.
type Codec struct{}

// NewCodec creates a new Codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Decode parses text in the given format.
func (c *Codec) Decode(format domain.DocumentFormat, text string) (any, error) {
	if strings.TrimSpace(text) == "" {
		return map[string]any{}, nil
	}

	var doc any
	switch format {
	case domain.FormatJSON:
		if err := json.Unmarshal([]byte(text), &doc); err != nil {
			return nil, &domain.ParseError{Source: "json", Err: err}
		}
		return doc, nil
	case domain.FormatYAML:
		if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
			return nil, &domain.ParseError{Source: "yaml", Err: err}
		}
		return normalize(doc), nil
	default:
		return nil, fmt.Errorf("%w: '%s'", domain.ErrInvalidType, format)
	}
}

// Encode renders doc in the given format.
// JSON is compact; YAML uses two-space indentation.
func (c *Codec) Encode(format domain.DocumentFormat, doc any) (string, error) {
	var buf bytes.Buffer
	switch format {
	case domain.FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return strings.TrimSuffix(buf.String(), "\n"), nil
	case domain.FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("%w: '%s'", domain.ErrInvalidType, format)
	}
}

// Lookup returns the value at a dotted path. Array elements are addressed by index.
func (c *Codec) Lookup(doc any, path string) (string, bool, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", false, fmt.Errorf("lookup %s: %w", path, err)
	}
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return "", false, nil
	}
	return res.String(), true, nil
}

// Assign sets the value at a dotted path. Missing intermediate nodes become
// arrays when the next key is an index and objects otherwise.
func (c *Codec) Assign(doc any, path string, value any) (any, error) {
	if path == "" {
		return value, nil
	}
	return assign(doc, strings.Split(path, "."), path, value)
}

func assign(node any, keys []string, path string, value any) (any, error) {
	if len(keys) == 0 {
		return value, nil
	}
	key := keys[0]

	switch n := node.(type) {
	case map[string]any:
		child, err := assign(n[key], keys[1:], path, value)
		if err != nil {
			return nil, err
		}
		n[key] = child
		return n, nil
	case []any:
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("set %s: '%s' is not an array index", path, key)
		}
		for len(n) <= idx {
			n = append(n, nil)
		}
		child, err := assign(n[idx], keys[1:], path, value)
		if err != nil {
			return nil, err
		}
		n[idx] = child
		return n, nil
	case nil:
		if idx, err := strconv.Atoi(key); err == nil && idx >= 0 {
			return assign(make([]any, idx+1), keys, path, value)
		}
		return assign(map[string]any{}, keys, path, value)
	default:
		return nil, fmt.Errorf("set %s: cannot descend into %T at '%s'", path, node, key)
	}
}

// normalize converts YAML maps with non-string keys so the document can be encoded as JSON.
func normalize(v any) any {
	switch n := v.(type) {
	case map[string]any:
		for k, child := range n {
			n[k] = normalize(child)
		}
		return n
	case map[any]any:
		m := make(map[string]any, len(n))
		for k, child := range n {
			m[fmt.Sprint(k)] = normalize(child)
		}
		return m
	case []any:
		for i, child := range n {
			n[i] = normalize(child)
		}
		return n
	default:
		return v
	}
}
