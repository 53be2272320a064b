// Package main is the entry point for the repository actions CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/runoshun/repo-actions/internal/app"
	"github.com/runoshun/repo-actions/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to get current directory: %v\n", err)
		return 1
	}

	// Create dependency injection container
	container := app.New(cwd, stdout, stderr, getenv)

	// Create and execute root command
	rootCmd := cli.NewRootCommand(container, version)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	if err := rootCmd.Execute(); err != nil {
		report(container, stderr, err)
		return 1
	}
	return 0
}

// report signals a failure: a workflow error command on the runner,
// a plain message on stderr otherwise.
func report(c *app.Container, stderr io.Writer, err error) {
	if c.Runtime.OnRunner() {
		c.Runtime.Fail(err)
		return
	}
	_, _ = fmt.Fprintln(stderr, "Error:", err)
}
