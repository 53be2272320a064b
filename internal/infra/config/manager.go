package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/repo-actions/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct{}

// NewManager creates a new Manager.
func NewManager() *Manager {
	return &Manager{}
}

// InitConfig writes the default config of kind to path.
// The format follows the file extension, as in Loader.
func (m *Manager) InitConfig(path string, kind domain.ConfigKind) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return domain.ErrConfigExists
	}

	content, err := RenderTemplate(path, kind)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	return os.WriteFile(path, content, 0o600)
}

// Template renders the default config of kind in the format implied by path.
func (m *Manager) Template(path string, kind domain.ConfigKind) (string, error) {
	content, err := RenderTemplate(path, kind)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// RenderTemplate renders the default config of kind in the format implied by path.
func RenderTemplate(path string, kind domain.ConfigKind) ([]byte, error) {
	var cfg any
	switch kind {
	case domain.ConfigChangelog:
		cfg = domain.NewDefaultChangelogConfig()
	case domain.ConfigMilestone:
		cfg = domain.NewDefaultMilestoneNotesConfig()
	case domain.ConfigReleases:
		cfg = domain.NewDefaultReleasesConfig()
	default:
		return nil, fmt.Errorf("%w: '%s'", domain.ErrInvalidConfigKind, kind)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		out, err := toml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return out, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}
