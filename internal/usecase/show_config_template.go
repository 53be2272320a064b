package usecase

import (
	"context"

	"github.com/runoshun/repo-actions/internal/domain"
)

// ShowConfigTemplateInput contains the input for the ShowConfigTemplate use case.
type ShowConfigTemplateInput struct {
	Path string            // File name; the extension selects YAML or TOML
	Kind domain.ConfigKind // Layout to render
}

// ShowConfigTemplateOutput contains the output of the ShowConfigTemplate use case.
type ShowConfigTemplateOutput struct {
	Template string // Configuration template content
}

// ShowConfigTemplate renders a configuration template and returns it as a string.
type ShowConfigTemplate struct {
	configManager domain.ConfigManager
}

// NewShowConfigTemplate creates a new ShowConfigTemplate use case.
func NewShowConfigTemplate(configManager domain.ConfigManager) *ShowConfigTemplate {
	return &ShowConfigTemplate{configManager: configManager}
}

// Execute renders and returns a configuration template.
func (uc *ShowConfigTemplate) Execute(_ context.Context, in ShowConfigTemplateInput) (*ShowConfigTemplateOutput, error) {
	template, err := uc.configManager.Template(in.Path, in.Kind)
	if err != nil {
		return nil, err
	}
	return &ShowConfigTemplateOutput{Template: template}, nil
}
