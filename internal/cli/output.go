package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/repo-actions/internal/app"
	"github.com/runoshun/repo-actions/internal/usecase"
)

// commitFlags are shared by commands that can commit their content.
type commitFlags struct {
	File    string
	Message string
	User    string
	Email   string
	Commit  bool
}

func (f *commitFlags) register(cmd *cobra.Command, file, message string) {
	cmd.Flags().BoolVar(&f.Commit, "commit", false, "Commit the content to the repository")
	cmd.Flags().StringVar(&f.File, "file", file, "Repository path to commit to")
	cmd.Flags().StringVar(&f.Message, "message", message, "Commit message")
	cmd.Flags().StringVar(&f.User, "user", "", "Committer and author name (default: token owner)")
	cmd.Flags().StringVar(&f.Email, "email", "", "Committer and author email")
}

// options returns the commit options, nil when committing is disabled.
func (f *commitFlags) options() *usecase.CommitOptions {
	if !f.Commit {
		return nil
	}
	return &usecase.CommitOptions{File: f.File, Message: f.Message, User: f.User, Email: f.Email}
}

// output is a named step output.
type output struct {
	name  string
	value string
}

// setOutputs writes step outputs in order.
func setOutputs(c *app.Container, outputs ...output) error {
	for _, o := range outputs {
		if err := c.ActionIO.SetOutput(o.name, o.value); err != nil {
			return fmt.Errorf("set output %s: %w", o.name, err)
		}
	}
	return nil
}

// printContent writes content to stdout, rendered for the terminal when preview is set.
func printContent(cmd *cobra.Command, c *app.Container, content string, preview bool) error {
	w := cmd.OutOrStdout()
	if preview {
		rendered, err := c.Markdown.Render(content)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(w, rendered)
		return nil
	}
	_, _ = fmt.Fprint(w, content)
	if !strings.HasSuffix(content, "\n") {
		_, _ = fmt.Fprintln(w)
	}
	return nil
}
