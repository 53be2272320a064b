package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/repo-actions/internal/app"
	"github.com/runoshun/repo-actions/internal/domain"
	"github.com/runoshun/repo-actions/internal/usecase"
)

// newReleaseUpdateCommand creates the release-update command.
func newReleaseUpdateCommand(c *app.Container) *cobra.Command {
	var opts struct {
		ID     string
		Change domain.ReleaseChange
	}

	cmd := &cobra.Command{
		Use:   "release-update",
		Short: "Edit fields of an existing release",
		Long: heredoc.Doc(`
			Edit an existing release found by numeric ID or, failing that, by name.
			Empty flags leave the field unchanged. --draft and --prerelease take
			true or false.

			Examples:
			  actions release-update --id 1234567 --draft false
			  actions release-update --id "Version 1.2" --body "$(cat notes.md)"
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := c.Repo()
			if err != nil {
				return err
			}

			uc := c.UpdateReleaseUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.UpdateReleaseInput{
				ID:     opts.ID,
				Change: opts.Change,
				Repo:   repo.Repo,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated release %s (#%d)\n", out.Release.DisplayName(), out.Release.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ID, "id", "", "Release ID or name (required)")
	cmd.Flags().StringVar(&opts.Change.Tag, "tag", "", "New tag name")
	cmd.Flags().StringVar(&opts.Change.Commitish, "commitish", "", "New target commitish")
	cmd.Flags().StringVar(&opts.Change.Name, "name", "", "New release name")
	cmd.Flags().StringVar(&opts.Change.Body, "body", "", "New release notes")
	cmd.Flags().StringVar(&opts.Change.Draft, "draft", "", "Draft state (true or false)")
	cmd.Flags().StringVar(&opts.Change.Prerelease, "prerelease", "", "Prerelease state (true or false)")

	return cmd
}
