package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/runoshun/repo-actions/internal/domain"
)

// AccessFileInput contains the parameters for reading and editing a document.
// Fields are ordered to minimize memory padding.
type AccessFileInput struct {
	File   string                // Document text, or a path when IsPath is set
	Get    string                // Map of output name -> {path, step, env}
	Set    string                // Map of name -> {path, value}
	Type   domain.DocumentFormat // Format of File, Get and Set
	IsPath bool
	Write  bool // Rewrite the file after applying Set (requires IsPath)
}

// AccessFileOutput contains the edited document.
type AccessFileOutput struct {
	Values  map[string]string // Values read by Get
	Content string
}

type getSpec struct {
	Path string `json:"path"`
	Step bool   `json:"step"`
	Env  bool   `json:"env"`
}

type setSpec struct {
	Value any    `json:"value"`
	Path  string `json:"path"`
}

// AccessFile is the use case for reading values from and writing values to a
// JSON or YAML document.
type AccessFile struct {
	docs   domain.Documents
	io     domain.ActionIO
	logger *slog.Logger
}

// NewAccessFile creates a new AccessFile use case.
func NewAccessFile(docs domain.Documents, io domain.ActionIO, logger *slog.Logger) *AccessFile {
	return &AccessFile{
		docs:   docs,
		io:     io,
		logger: logger,
	}
}

// Execute reads the requested values, applies the assignments and encodes the document.
// Values are read before assignments are applied.
func (uc *AccessFile) Execute(_ context.Context, in AccessFileInput) (*AccessFileOutput, error) {
	if _, err := domain.ParseDocumentFormat(string(in.Type)); err != nil {
		return nil, err
	}

	text := in.File
	if in.IsPath {
		if in.File == "" {
			return nil, domain.ErrEmptyFile
		}
		data, err := os.ReadFile(in.File)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		text = string(data)
	}

	doc, err := uc.docs.Decode(in.Type, text)
	if err != nil {
		return nil, fmt.Errorf("decode file: %w", err)
	}

	var gets map[string]getSpec
	if err := uc.decodeSpecs("get", in.Type, in.Get, &gets); err != nil {
		return nil, err
	}
	var sets map[string]setSpec
	if err := uc.decodeSpecs("set", in.Type, in.Set, &sets); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(gets))
	for _, name := range slices.Sorted(maps.Keys(gets)) {
		spec := gets[name]
		value, ok, err := uc.docs.Lookup(doc, spec.Path)
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", name, err)
		}
		if !ok {
			uc.logger.Debug("path not found", "name", name, "path", spec.Path)
		}
		values[name] = value
	}

	for _, name := range slices.Sorted(maps.Keys(sets)) {
		spec := sets[name]
		doc, err = uc.docs.Assign(doc, spec.Path, spec.Value)
		if err != nil {
			return nil, fmt.Errorf("set %s: %w", name, err)
		}
	}

	content, err := uc.docs.Encode(in.Type, doc)
	if err != nil {
		return nil, err
	}

	if in.IsPath && in.Write {
		if err := os.WriteFile(in.File, []byte(content), 0o600); err != nil {
			return nil, fmt.Errorf("write file: %w", err)
		}
		uc.logger.Info("file written", "file", in.File)
	}

	// Nothing is emitted until every step above has succeeded.
	for _, name := range slices.Sorted(maps.Keys(gets)) {
		spec := gets[name]
		if spec.Step {
			if err := uc.io.SetOutput(name, values[name]); err != nil {
				return nil, fmt.Errorf("set output %s: %w", name, err)
			}
		}
		if spec.Env {
			if err := uc.io.ExportVariable(name, values[name]); err != nil {
				return nil, fmt.Errorf("export %s: %w", name, err)
			}
		}
	}
	return &AccessFileOutput{Content: content, Values: values}, nil
}

// decodeSpecs decodes a get or set map written in the document format.
func (uc *AccessFile) decodeSpecs(source string, format domain.DocumentFormat, text string, v any) error {
	doc, err := uc.docs.Decode(format, text)
	if err != nil {
		return fmt.Errorf("decode %s: %w", source, err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("decode %s: %w", source, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &domain.ParseError{Source: source, Err: err}
	}
	return nil
}
