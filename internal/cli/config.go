package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/repo-actions/internal/app"
	"github.com/runoshun/repo-actions/internal/domain"
	"github.com/runoshun/repo-actions/internal/usecase"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration files",
		Long:  `Generate changelog, milestone notes and release changelog configuration files.`,
		// No RunE: shows subcommand list when called without arguments
	}

	// Add subcommands
	cmd.AddCommand(newConfigTemplateCommand(c))
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand(c *app.Container) *cobra.Command {
	var kind string
	var format string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Print a configuration template",
		Long: heredoc.Doc(`
			Print the default configuration of a kind (changelog, milestone or
			releases) to stdout, as YAML or TOML.
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ShowConfigTemplateUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowConfigTemplateInput{
				Path: "config." + format,
				Kind: domain.ConfigKind(kind),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Template)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(domain.ConfigChangelog), "Config kind: changelog, milestone or releases")
	cmd.Flags().StringVar(&format, "format", "yaml", "Template format: yaml or toml")

	return cmd
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Generate configuration file template",
		Long: heredoc.Doc(`
			Generate a configuration file with the default settings of a kind.
			The extension of <path> selects the format: .toml for TOML, anything
			else for YAML.

			Error conditions:
			- Target file already exists: error
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.InitConfigUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitConfigInput{
				Path: args[0],
				Kind: domain.ConfigKind(kind),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(domain.ConfigChangelog), "Config kind: changelog, milestone or releases")

	return cmd
}
