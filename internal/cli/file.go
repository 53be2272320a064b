package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/repo-actions/internal/app"
	"github.com/runoshun/repo-actions/internal/domain"
	"github.com/runoshun/repo-actions/internal/usecase"
)

// newFileAccessCommand creates the file-access command.
func newFileAccessCommand(c *app.Container) *cobra.Command {
	var opts struct {
		File   string
		Get    string
		Set    string
		Type   string
		IsPath bool
		Write  bool
	}

	cmd := &cobra.Command{
		Use:   "file-access",
		Short: "Read and edit values of a JSON or YAML document",
		Long: heredoc.Doc(`
			Read values from a JSON or YAML document and assign new ones. Paths are
			dot separated; array elements are addressed by index (build.tags.0).

			--get maps output names to {path, step, env}: the value at path becomes
			a step output when step is true and an environment variable for later
			steps when env is true. --set maps names to {path, value}. Both are
			written in the document type and values are read before assignment.

			Outputs:
			  content  The edited document
			  <name>   One output per --get entry with step: true

			Examples:
			  actions file-access --is-path --file package.json --type json \
			    --get '{"VERSION":{"path":"version","step":true}}'

			  actions file-access --is-path --write --file config.yml --type yaml \
			    --set 'bump: {path: version, value: 1.2.0}'
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.AccessFileUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.AccessFileInput{
				File:   opts.File,
				Get:    opts.Get,
				Set:    opts.Set,
				Type:   domain.DocumentFormat(opts.Type),
				IsPath: opts.IsPath,
				Write:  opts.Write,
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

	cmd.Flags().StringVar(&opts.File, "file", "", "Document text, or a path with --is-path")
	cmd.Flags().BoolVar(&opts.IsPath, "is-path", false, "Treat --file as a path")
	cmd.Flags().BoolVar(&opts.Write, "write", false, "Write the edited document back to --file")
	cmd.Flags().StringVar(&opts.Get, "get", "", "Values to read: name -> {path, step, env}")
	cmd.Flags().StringVar(&opts.Set, "set", "", "Values to assign: name -> {path, value}")
	cmd.Flags().StringVar(&opts.Type, "type", string(domain.FormatJSON), "Document type (json or yaml)")

	return cmd
}

// newFileUpdateCommand creates the file-update command.
func newFileUpdateCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Content       string
		Commit        commitFlags
		ContentAsPath bool
	}

	cmd := &cobra.Command{
		Use:   "file-update",
		Short: "Commit content to a repository file",
		Long: heredoc.Doc(`
			Create or update one repository file with a single commit through the
			API. The content is given inline or, with --content-as-path, read from a
			local file.

			Outputs:
			  content  The committed content
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := c.Repo()
			if err != nil {
				return err
			}

			uc := c.UpdateFileUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.UpdateFileInput{
				Content: opts.Content,
				Commit: usecase.CommitOptions{
					File:    opts.Commit.File,
					Message: opts.Commit.Message,
					User:    opts.Commit.User,
					Email:   opts.Commit.Email,
				},
				Repo:          repo.Repo,
				ContentAsPath: opts.ContentAsPath,
			})
			if err != nil {
				return err
			}

			return setOutputs(c, output{"content", out.Content})
		},
	}

	cmd.Flags().StringVar(&opts.Content, "content", "", "File content, or a local path with --content-as-path")
	cmd.Flags().BoolVar(&opts.ContentAsPath, "content-as-path", false, "Read the content from the local path in --content")
	cmd.Flags().StringVar(&opts.Commit.File, "file", "", "Repository path to commit to (required)")
	cmd.Flags().StringVar(&opts.Commit.Message, "message", "Update file", "Commit message")
	cmd.Flags().StringVar(&opts.Commit.User, "user", "", "Committer and author name (default: token owner)")
	cmd.Flags().StringVar(&opts.Commit.Email, "email", "", "Committer and author email")

	return cmd
}
