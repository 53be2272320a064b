package usecase

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"dario.cat/mergo"

	"github.com/runoshun/repo-actions/internal/domain"
)

// BuildParamsInput contains the parameters for merging build parameters.
type BuildParamsInput struct {
	ConfigPath   string                // YAML file with the base parameters (empty = none)
	Params       string                // YAML or JSON text merged over the config
	ExtractRegex string                // Pattern applied to Params when Extract is set
	Output       domain.DocumentFormat // Output format (empty = json)
	Extract      bool                  // Use the first non-empty match of ExtractRegex as params
}

// BuildParamsOutput contains the merged parameters.
type BuildParamsOutput struct {
	Params  map[string]any
	Content string
}

// BuildParams is the use case for merging parameters over a config file.
type BuildParams struct {
	docs domain.Documents
}

// NewBuildParams creates a new BuildParams use case.
func NewBuildParams(docs domain.Documents) *BuildParams {
	return &BuildParams{docs: docs}
}

// Execute merges the params over the config and encodes the result.
// Nested maps are merged recursively and params win on conflicts.
func (uc *BuildParams) Execute(_ context.Context, in BuildParamsInput) (*BuildParamsOutput, error) {
	base := map[string]any{}
	if in.ConfigPath != "" {
		data, err := os.ReadFile(in.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		base, err = uc.decodeMap(in.ConfigPath, string(data))
		if err != nil {
			return nil, err
		}
	}

	text := in.Params
	if in.Extract {
		re, err := regexp.Compile(in.ExtractRegex)
		if err != nil {
			return nil, fmt.Errorf("extract regex: %w", err)
		}
		text = firstMatch(re, in.Params)
	}
	params, err := uc.decodeMap("params", text)
	if err != nil {
		return nil, err
	}

	if err := mergo.Merge(&base, params, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merge params: %w", err)
	}

	// Anything but yaml is emitted as JSON.
	format := domain.FormatJSON
	if in.Output == domain.FormatYAML {
		format = domain.FormatYAML
	}
	content, err := uc.docs.Encode(format, base)
	if err != nil {
		return nil, err
	}
	return &BuildParamsOutput{Params: base, Content: content}, nil
}

// decodeMap decodes YAML text that must hold a mapping.
func (uc *BuildParams) decodeMap(source, text string) (map[string]any, error) {
	doc, err := uc.docs.Decode(domain.FormatYAML, text)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, &domain.ParseError{Source: source, Err: fmt.Errorf("expected a mapping, got %T", doc)}
	}
	return m, nil
}

func firstMatch(re *regexp.Regexp, s string) string {
	for _, match := range re.FindAllString(s, -1) {
		if match != "" {
			return match
		}
	}
	return ""
}
