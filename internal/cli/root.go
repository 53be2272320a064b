// Package cli provides the command-line interface for the repository actions.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/runoshun/repo-actions/internal/app"
	"github.com/runoshun/repo-actions/internal/infra/actions"
)

// Command group IDs.
const (
	groupChangelog  = "changelog"
	groupRepository = "repository"
	groupUtility    = "utility"
)

// defaultTimeout bounds every command, including retries.
const defaultTimeout = 2 * time.Minute

// NewRootCommand creates the root command.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var opts struct {
		EnvFile  string
		LogLevel string
		Token    string
		Repo     string
		APIURL   string
		Timeout  time.Duration
	}
	var cancel context.CancelFunc

	root := &cobra.Command{
		Use:   "actions",
		Short: "GitHub repository automation actions",
		Long: heredoc.Doc(`
			Repository automation for GitHub Actions workflows: changelogs from
			milestones and releases, release and file updates, project columns,
			secrets, repository dispatch and small utilities.

			Every flag can also be given as an action input. An input is read from
			INPUT_<NAME>, where NAME is the flag name without hyphens, upper-cased
			(--is-path reads INPUT_ISPATH). Flags given on the command line win.
		`),
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.EnvFile != "" {
				if err := godotenv.Load(opts.EnvFile); err != nil {
					return fmt.Errorf("load env file: %w", err)
				}
			}
			getenv := envLookup(c)
			if err := bindInputs(cmd, getenv); err != nil {
				return err
			}
			if opts.Token == "" {
				opts.Token = getenv(actions.EnvToken)
			}
			if opts.APIURL == "" {
				opts.APIURL = apiURL(getenv(actions.EnvAPIURL))
			}

			if err := c.Configure(cmd.Context(), app.Config{
				Token:      opts.Token,
				Repository: opts.Repo,
				APIURL:     opts.APIURL,
				LogLevel:   opts.LogLevel,
			}); err != nil {
				return err
			}

			var ctx context.Context
			ctx, cancel = context.WithTimeout(cmd.Context(), opts.Timeout)
			cmd.SetContext(ctx)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.EnvFile, "env-file", "", "Load environment variables from a dotenv file first")
	flags.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.DurationVar(&opts.Timeout, "timeout", defaultTimeout, "Deadline for the whole command")
	flags.StringVar(&opts.Token, "token", "", "GitHub token (default: $GITHUB_TOKEN)")
	flags.StringVar(&opts.Repo, "repo", "", "Repository as owner/name (default: $GITHUB_REPOSITORY or the origin remote)")
	flags.StringVar(&opts.APIURL, "api-url", "", "GitHub Enterprise API URL (default: $GITHUB_API_URL)")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupChangelog, Title: "Changelog Commands:"},
		&cobra.Group{ID: groupRepository, Title: "Repository Commands:"},
		&cobra.Group{ID: groupUtility, Title: "Utility Commands:"},
	)

	// Changelog commands
	changelogCmd := newChangelogCommand(c)
	changelogCmd.GroupID = groupChangelog

	milestoneCmd := newChangelogMilestoneCommand(c)
	milestoneCmd.GroupID = groupChangelog

	releasesCmd := newChangelogReleasesCommand(c)
	releasesCmd.GroupID = groupChangelog

	readmeCmd := newReadmePackageCommand(c)
	readmeCmd.GroupID = groupChangelog

	// Repository commands
	fileUpdateCmd := newFileUpdateCommand(c)
	fileUpdateCmd.GroupID = groupRepository

	columnsCmd := newProjectColumnsCommand(c)
	columnsCmd.GroupID = groupRepository

	releaseCmd := newReleaseUpdateCommand(c)
	releaseCmd.GroupID = groupRepository

	dispatchCmd := newRepoDispatchCommand(c)
	dispatchCmd.GroupID = groupRepository

	secretsCmd := newSecretsUpdateCommand(c)
	secretsCmd.GroupID = groupRepository

	// Utility commands
	paramsCmd := newBuildParamsCommand(c)
	paramsCmd.GroupID = groupUtility

	fileAccessCmd := newFileAccessCommand(c)
	fileAccessCmd.GroupID = groupUtility

	sprintCmd := newSprintNameCommand(c)
	sprintCmd.GroupID = groupUtility

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupUtility

	root.AddCommand(
		changelogCmd,
		milestoneCmd,
		releasesCmd,
		readmeCmd,
		fileUpdateCmd,
		columnsCmd,
		releaseCmd,
		dispatchCmd,
		secretsCmd,
		paramsCmd,
		fileAccessCmd,
		sprintCmd,
		configCmd,
	)

	releaseTimeout(root, &cancel)

	return root
}

// releaseTimeout wraps the RunE of cmd and its subcommands so the timeout
// context is released whether or not the command fails.
func releaseTimeout(cmd *cobra.Command, cancel *context.CancelFunc) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			defer func() {
				if *cancel != nil {
					(*cancel)()
				}
			}()
			return run(cmd, args)
		}
	}
	for _, sub := range cmd.Commands() {
		releaseTimeout(sub, cancel)
	}
}

// envLookup returns the environment reader of the container's runtime,
// or the process environment when there is none (e.g. in tests).
func envLookup(c *app.Container) func(string) string {
	if c.Runtime != nil {
		return c.Runtime.Getenv
	}
	return os.Getenv
}

// apiURL drops the public API URL, which is the client default.
func apiURL(url string) string {
	if url == "https://api.github.com" {
		return ""
	}
	return url
}
