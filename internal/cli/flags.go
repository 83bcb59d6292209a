// Package cli provides the command-line interface for moodle-plugin-ci.
package cli

import (
	stderrors "errors"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/moodle-plugin-ci/internal/constants"
	"github.com/mrz1836/moodle-plugin-ci/internal/errors"
	"github.com/mrz1836/moodle-plugin-ci/internal/tui"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates successful execution or a passing check.
	ExitSuccess = 0
	// ExitError indicates a failing check, a failed install step or a runtime error.
	ExitError = 1
	// ExitInvalidInput indicates invalid user input or configuration.
	ExitInvalidInput = 2
)

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	// Output specifies the output format (text or json).
	Output string
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool
}

// AddGlobalFlags adds global flags to a command.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVarP(&flags.Output, "output", "o", tui.FormatText, "output format (text|json)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// BindGlobalFlags binds global flags to Viper so MOODLE_PLUGIN_CI_OUTPUT and
// friends work alongside the flags.
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	rootFlags := cmd.Root().PersistentFlags()

	for _, name := range []string{"output", "verbose", "quiet"} {
		if err := v.BindPFlag(name, rootFlags.Lookup(name)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()
	return nil
}

// ValidOutputFormats returns the list of valid output format values.
func ValidOutputFormats() []string {
	return []string{tui.FormatText, tui.FormatJSON}
}

// IsValidOutputFormat checks if the given format is a valid output format.
func IsValidOutputFormat(format string) bool {
	return slices.Contains(ValidOutputFormats(), format)
}

// ExitCodeForError maps an error returned by a command to a process exit
// status: 0 for nil, 2 for invalid input or configuration, 1 otherwise.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.IsExitCode2Error(err) {
		return ExitInvalidInput
	}

	// A step or tool failure exits 1 whatever its cause or output.
	if isRuntimeFailure(err) {
		return ExitError
	}

	if errors.IsConfigurationError(err) || isInvalidInputError(err.Error()) {
		return ExitInvalidInput
	}

	return ExitError
}

// isRuntimeFailure reports whether err comes from running an external tool.
// Such errors carry the tool's stderr, which must not be read as CLI input
// errors.
func isRuntimeFailure(err error) bool {
	for _, target := range []error{
		errors.ErrInstallStepFailed,
		errors.ErrCheckerFailed,
		errors.ErrCommandFailed,
		errors.ErrCommandTimeout,
	} {
		if stderrors.Is(err, target) {
			return true
		}
	}
	return false
}

// inputArgs marks positional argument errors as invalid input.
func inputArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.NewExitCode2Error(err)
		}
		return nil
	}
}

// inputFlagError marks flag parse errors as invalid input.
func inputFlagError(_ *cobra.Command, err error) error {
	return errors.NewExitCode2Error(err)
}

// isInvalidInputError catches cobra's built-in flag and argument validation errors.
func isInvalidInputError(errMsg string) bool {
	invalidInputPatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"if any flags in the group",
		"required flag",
		"unknown command",
	}

	for _, pattern := range invalidInputPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
