package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/repo-actions/internal/app"
	"github.com/runoshun/repo-actions/internal/usecase"
)

// newChangelogCommand creates the changelog command.
func newChangelogCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Config  string
		State   string
		Commit  commitFlags
		Preview bool
	}

	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Build a changelog from milestones and issues",
		Long: heredoc.Doc(`
			Build a Keep a Changelog style document from the repository's
			milestones. Issues are grouped by milestone, then into sections by
			label. Each milestone links to its commit range and milestone page.

			Outputs:
			  content  Rendered Markdown
			  json     Document model as JSON

			Examples:
			  # Print the changelog of closed milestones
			  actions changelog

			  # Include open milestones and preview in the terminal
			  actions changelog --state all --preview

			  # Commit the result
			  actions changelog --config .github/changelog.yml --commit --file CHANGELOG.md
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := c.Repo()
			if err != nil {
				return err
			}

			uc := c.GenerateChangelogUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.GenerateChangelogInput{
				Commit:     opts.Commit.options(),
				ConfigPath: opts.Config,
				State:      opts.State,
				Repo:       repo,
			})
			if err != nil {
				return err
			}

			if err := setOutputs(c, output{"content", out.Content}, output{"json", out.JSON}); err != nil {
				return err
			}
			return printContent(cmd, c, out.Content, opts.Preview)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "Config file, YAML or TOML (default: built-in layout)")
	cmd.Flags().StringVar(&opts.State, "state", "", "Milestone state: open, closed or all (default: from config)")
	cmd.Flags().BoolVar(&opts.Preview, "preview", false, "Render the Markdown for the terminal")
	opts.Commit.register(cmd, "CHANGELOG.md", "Update changelog")

	return cmd
}

// newChangelogMilestoneCommand creates the changelog-milestone command.
func newChangelogMilestoneCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Milestone string
		Config    string
		Preview   bool
	}

	cmd := &cobra.Command{
		Use:   "changelog-milestone",
		Short: "Render the notes of one milestone",
		Long: heredoc.Doc(`
			Render the notes of a single milestone: a link to the milestone, its
			description and its issues grouped into sections. The milestone is
			found by number, then by title.

			When the milestone does not exist the run fails, unless the config sets
			missing_milestone: placeholder, in which case no_content is output.

			Outputs:
			  content  Rendered Markdown
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := c.Repo()
			if err != nil {
				return err
			}

			uc := c.MilestoneNotesUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.MilestoneNotesInput{
				Milestone:  opts.Milestone,
				ConfigPath: opts.Config,
				Repo:       repo,
			})
			if err != nil {
				return err
			}

			if err := setOutputs(c, output{"content", out.Content}); err != nil {
				return err
			}
			return printContent(cmd, c, out.Content, opts.Preview)
		},
	}

	cmd.Flags().StringVar(&opts.Milestone, "milestone", "", "Milestone number or title (required)")
	cmd.Flags().StringVar(&opts.Config, "config", "", "Config file, YAML or TOML")
	cmd.Flags().BoolVar(&opts.Preview, "preview", false, "Render the Markdown for the terminal")

	return cmd
}

// newChangelogReleasesCommand creates the changelog-releases command.
func newChangelogReleasesCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Config  string
		Commit  commitFlags
		Preview bool
	}

	cmd := &cobra.Command{
		Use:   "changelog-releases",
		Short: "Build a changelog from published releases",
		Long: heredoc.Doc(`
			Build a changelog from the repository's published releases, newest
			first. Drafts that were never published are skipped. Releases without
			notes get the empty_release text.

			Outputs:
			  content  Rendered Markdown
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := c.Repo()
			if err != nil {
				return err
			}

			uc := c.ReleaseChangelogUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ReleaseChangelogInput{
				Commit:     opts.Commit.options(),
				ConfigPath: opts.Config,
				Repo:       repo.Repo,
			})
			if err != nil {
				return err
			}

			if err := setOutputs(c, output{"content", out.Content}); err != nil {
				return err
			}
			return printContent(cmd, c, out.Content, opts.Preview)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "Config file, YAML or TOML")
	cmd.Flags().BoolVar(&opts.Preview, "preview", false, "Render the Markdown for the terminal")
	opts.Commit.register(cmd, "CHANGELOG.md", "Update changelog")

	return cmd
}
