package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/moodle-plugin-ci/internal/config"
	"github.com/mrz1836/moodle-plugin-ci/internal/errors"
	"github.com/mrz1836/moodle-plugin-ci/internal/process"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// deps are the seams between the commands and the outside world.
type deps struct {
	// initLogger builds the logger from the verbosity flags.
	initLogger func(verbose, quiet bool) zerolog.Logger
	// loadConfig loads the layered configuration before flag overrides.
	loadConfig func(ctx context.Context) (*config.Config, error)
	// runner executes external processes.
	runner process.Runner
	// toolExecutor probes external tools.
	toolExecutor config.CommandExecutor
}

func defaultDeps() deps {
	return deps{
		initLogger:   InitLogger,
		loadConfig:   config.Load,
		runner:       &process.DefaultRunner{},
		toolExecutor: &config.DefaultCommandExecutor{},
	}
}

// newRootCmd creates the root command for the moodle-plugin-ci CLI.
func newRootCmd(flags *GlobalFlags, info BuildInfo, d deps) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "moodle-plugin-ci",
		Short: "Continuous integration helper for Moodle plugins",
		Long: `moodle-plugin-ci provisions a Moodle environment for a plugin under test
and runs quality checks against the plugin's code.

Commands:
  install      clone Moodle, create the database and install the plugin
  codechecker  run the coding standard checker with a warning tolerance
  tools        report the external tools the other commands need`,
		Version: formatVersion(info),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			flags.Output = v.GetString("output")
			if !IsValidOutputFormat(flags.Output) {
				return errors.NewExitCode2Error(fmt.Errorf("%w: %q must be one of %v",
					errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats()))
			}

			flags.Verbose = v.GetBool("verbose")
			flags.Quiet = v.GetBool("quiet")
			logger := d.initLogger(flags.Verbose, flags.Quiet)
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
		SilenceUsage: true,
	}

	AddGlobalFlags(cmd, flags)
	cmd.SetFlagErrorFunc(inputFlagError)

	cmd.AddCommand(newInstallCmd(flags, d))
	cmd.AddCommand(newCodeCheckerCmd(flags, d))
	cmd.AddCommand(newToolsCmd(flags, d))

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command and returns the process exit code.
// Errors are printed to errOut unless the command already reported them.
func Execute(ctx context.Context, info BuildInfo, errOut io.Writer) int {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info, defaultDeps())
	cmd.SilenceErrors = true
	defer CloseLogFile()

	err := cmd.ExecuteContext(ctx)
	if err != nil && !isSilent(err) {
		printError(errOut, err)
	}
	return ExitCodeForError(err)
}

// printError writes err and, for known failures, a plain-language hint.
func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, "Error:", err)
	if msg := errors.UserMessage(err); msg != err.Error() {
		_, _ = fmt.Fprintln(w, " ", msg)
	}
}
