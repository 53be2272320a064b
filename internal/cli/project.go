package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/repo-actions/internal/app"
	"github.com/runoshun/repo-actions/internal/usecase"
)

// newProjectColumnsCommand creates the project-columns command.
func newProjectColumnsCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Project  string
		Column   string
		Action   string
		Name     string
		Position string
	}

	cmd := &cobra.Command{
		Use:   "project-columns",
		Short: "Create or update a column of a project board",
		Long: heredoc.Doc(`
			Create or update a column of a classic project board. The project and
			column are found by name.

			--action create adds a column named --column. --action update renames
			--column to --name when given. Both move the column when --position is
			given: first, last or after:<column name>.

			Examples:
			  actions project-columns --project Roadmap --column Review --action create --position after:Doing
			  actions project-columns --project Roadmap --column Doing --action update --name "In progress"
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := c.Repo()
			if err != nil {
				return err
			}

			uc := c.ManageColumnUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ManageColumnInput{
				Project:  opts.Project,
				Column:   opts.Column,
				Action:   opts.Action,
				Name:     opts.Name,
				Position: opts.Position,
				Repo:     repo.Repo,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Column %q (#%d) %sd\n", out.Column.Name, out.Column.ID, opts.Action)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Project, "project", "", "Project name (required)")
	cmd.Flags().StringVar(&opts.Column, "column", "", "Column name (required)")
	cmd.Flags().StringVar(&opts.Action, "action", usecase.ColumnCreate, "Action: create or update")
	cmd.Flags().StringVar(&opts.Name, "name", "", "New column name (update)")
	cmd.Flags().StringVar(&opts.Position, "position", "", "Position: first, last or after:<column name>")

	return cmd
}
