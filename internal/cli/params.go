package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/repo-actions/internal/app"
	"github.com/runoshun/repo-actions/internal/domain"
	"github.com/runoshun/repo-actions/internal/usecase"
)

// newBuildParamsCommand creates the build-params command.
func newBuildParamsCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Config       string
		Params       string
		ExtractRegex string
		Output       string
		Extract      bool
	}

	cmd := &cobra.Command{
		Use:   "build-params",
		Short: "Merge parameters over a YAML config",
		Long: heredoc.Doc(`
			Merge parameters over a YAML config file and output the result. Params
			are YAML or JSON; nested maps are merged and params win on conflicts.
			With --extract, params are the first non-empty match of --extract-regex
			in --params, e.g. a JSON block in a pull request body.

			Outputs:
			  content  The merged parameters (json, or yaml with --output yaml)
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.BuildParamsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.BuildParamsInput{
				ConfigPath:   opts.Config,
				Params:       opts.Params,
				ExtractRegex: opts.ExtractRegex,
				Output:       domain.DocumentFormat(opts.Output),
				Extract:      opts.Extract,
			})
			if err != nil {
				return err
			}

			if err := setOutputs(c, output{"content", out.Content}); err != nil {
				return err
			}
			return printContent(cmd, c, out.Content, false)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "Base parameters, YAML file")
	cmd.Flags().StringVar(&opts.Params, "params", "", "Parameters, YAML or JSON text")
	cmd.Flags().BoolVar(&opts.Extract, "extract", false, "Extract params from --params with --extract-regex")
	cmd.Flags().StringVar(&opts.ExtractRegex, "extract-regex", "", "Pattern used by --extract")
	cmd.Flags().StringVar(&opts.Output, "output", string(domain.FormatJSON), "Output format (json or yaml)")

	return cmd
}
