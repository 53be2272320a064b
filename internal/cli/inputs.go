package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/runoshun/repo-actions/internal/infra/actions"
)

// localFlags are never read from action inputs.
var localFlags = map[string]bool{
	"env-file":  true,
	"help":      true,
	"log-level": true,
	"timeout":   true,
	"version":   true,
}

// inputName returns the action input that feeds a flag: is-path -> isPath.
func inputName(flag string) string {
	parts := strings.Split(flag, "-")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

// bindInputs fills every flag not set on the command line from its action input.
// Empty inputs leave the flag default in place.
func bindInputs(cmd *cobra.Command, getenv func(string) string) error {
	var errs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || localFlags[f.Name] {
			return
		}
		value := strings.TrimSpace(getenv(actions.InputEnv(inputName(f.Name))))
		if value == "" {
			return
		}
		if err := cmd.Flags().Set(f.Name, value); err != nil {
			errs = append(errs, fmt.Errorf("input %s: %w", inputName(f.Name), err))
		}
	})
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
