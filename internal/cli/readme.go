package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/repo-actions/internal/app"
	"github.com/runoshun/repo-actions/internal/usecase"
)

// newReadmePackageCommand creates the readme-package command.
func newReadmePackageCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Package string
		Config  string
		Commit  commitFlags
		Preview bool
	}

	cmd := &cobra.Command{
		Use:   "readme-package",
		Short: "Generate a README from a package manifest",
		Long: heredoc.Doc(`
			Generate a README from a Unity package manifest (package.json): name,
			display name, version, Unity version, API compatibility level, sorted
			dependencies and description. The optional config adds a full
			description, a closing paragraph and a footer.

			The README uses CRLF line endings.

			Outputs:
			  content  Rendered Markdown
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := usecase.GenerateReadmeInput{
				Commit:      opts.Commit.options(),
				PackagePath: opts.Package,
				ConfigPath:  opts.Config,
			}
			if in.Commit != nil {
				repo, err := c.Repo()
				if err != nil {
					return err
				}
				in.Repo = repo.Repo
			}

			uc := c.GenerateReadmeUseCase()
			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			if err := setOutputs(c, output{"content", out.Content}); err != nil {
				return err
			}
			return printContent(cmd, c, out.Content, opts.Preview)
		},
	}

	cmd.Flags().StringVar(&opts.Package, "package", "package.json", "Path to package.json")
	cmd.Flags().StringVar(&opts.Config, "config", "", "README config file, YAML or TOML")
	cmd.Flags().BoolVar(&opts.Preview, "preview", false, "Render the Markdown for the terminal")
	opts.Commit.register(cmd, "README.md", "Update README")

	return cmd
}
