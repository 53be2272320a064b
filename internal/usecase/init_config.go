// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/repo-actions/internal/domain"
)

// InitConfigInput contains the input for the InitConfig use case.
type InitConfigInput struct {
	Path string            // Destination file; the extension selects YAML or TOML
	Kind domain.ConfigKind // Layout to write
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Path string // Path to the created config file
}

// InitConfig generates a configuration file template.
type InitConfig struct {
	configManager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager) *InitConfig {
	return &InitConfig{
		configManager: configManager,
	}
}

// Execute creates a configuration file with the default template of the kind.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	if in.Path == "" {
		return nil, domain.ErrEmptyFile
	}
	if err := uc.configManager.InitConfig(in.Path, in.Kind); err != nil {
		return nil, fmt.Errorf("init config %s: %w", in.Path, err)
	}
	return &InitConfigOutput{Path: in.Path}, nil
}
