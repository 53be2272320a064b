package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/repo-actions/internal/app"
	"github.com/runoshun/repo-actions/internal/domain"
	"github.com/runoshun/repo-actions/internal/usecase"
)

// newSecretsUpdateCommand creates the secrets-update command.
func newSecretsUpdateCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Secrets string
		Type    string
	}

	cmd := &cobra.Command{
		Use:   "secrets-update",
		Short: "Create or update repository secrets",
		Long: heredoc.Doc(`
			Create or update repository secrets from a name -> value map. Each
			value is sealed with the repository public key before it is sent, and
			masked in the job log. The target repository is --repo.

			Examples:
			  actions secrets-update --repo acme/app --type yaml --secrets "$SECRETS"
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := c.Repo()
			if err != nil {
				return err
			}

			uc := c.UpdateSecretsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.UpdateSecretsInput{
				Secrets: opts.Secrets,
				Type:    domain.DocumentFormat(opts.Type),
				Repo:    repo.Repo,
			})
			if err != nil {
				return err
			}

			for _, name := range out.Names {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated secret %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Secrets, "secrets", "", "Secrets map: name -> value")
	cmd.Flags().StringVar(&opts.Type, "type", string(domain.FormatYAML), "Secrets format (json or yaml)")

	return cmd
}
