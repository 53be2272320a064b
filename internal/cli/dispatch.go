package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/repo-actions/internal/app"
	"github.com/runoshun/repo-actions/internal/domain"
	"github.com/runoshun/repo-actions/internal/usecase"
)

// newRepoDispatchCommand creates the repo-dispatch command.
func newRepoDispatchCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Repository string
		EventType  string
		Payload    string
	}

	cmd := &cobra.Command{
		Use:   "repo-dispatch",
		Short: "Trigger a repository_dispatch event",
		Long: heredoc.Doc(`
			Trigger a repository_dispatch event on a repository. The payload is
			sent as client_payload: text starting with '{' is read as JSON,
			anything else as YAML, and an empty payload sends {}.

			Examples:
			  actions repo-dispatch --repository acme/deploy --event-type deploy \
			    --payload '{"ref":"main"}'
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var target domain.Repo
			if opts.Repository != "" {
				repo, err := domain.ParseRepo(opts.Repository)
				if err != nil {
					return err
				}
				target = repo
			} else {
				rc, err := c.Repo()
				if err != nil {
					return err
				}
				target = rc.Repo
			}

			uc := c.DispatchEventUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.DispatchEventInput{
				EventType: opts.EventType,
				Payload:   opts.Payload,
				Repo:      target,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dispatched %s to %s with %s\n", opts.EventType, target, out.Payload)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Repository, "repository", "", "Target repository as owner/name (default: current)")
	cmd.Flags().StringVar(&opts.EventType, "event-type", "", "Event type (required)")
	cmd.Flags().StringVar(&opts.Payload, "payload", "", "Client payload, JSON or YAML")

	return cmd
}
