package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/repo-actions/internal/app"
	"github.com/runoshun/repo-actions/internal/usecase"
)

// newSprintNameCommand creates the utility-sprint-name command.
func newSprintNameCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Start   string
		End     string
		EndType string
	}

	cmd := &cobra.Command{
		Use:   "utility-sprint-name",
		Short: "Format the name of a sprint period",
		Long: heredoc.Doc(`
			Format the name of a sprint period, e.g. "02 Jan - 16 Jan 2024". The
			start year is printed only when it differs from the end year.

			--end is a date with --end-type date, or a length in days with
			--end-type length. Dates are YYYY-MM-DD or RFC 3339.

			Outputs:
			  result  The sprint name
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.SprintNameUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.SprintNameInput{
				Start:   opts.Start,
				End:     opts.End,
				EndType: opts.EndType,
			})
			if err != nil {
				return err
			}

			if err := setOutputs(c, output{"result", out.Result}); err != nil {
				return err
			}
			return printContent(cmd, c, out.Result, false)
		},
	}

	cmd.Flags().StringVar(&opts.Start, "start", "", "Start date (default: today)")
	cmd.Flags().StringVar(&opts.End, "end", "", "End date or length in days (required)")
	cmd.Flags().StringVar(&opts.EndType, "end-type", usecase.EndTypeDate, "End type: date or length")

	return cmd
}
