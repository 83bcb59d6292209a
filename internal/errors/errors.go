// Package errors provides centralized error handling for moodle-plugin-ci.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// Three failure classes exist and must stay distinguishable:
//   - configuration errors (bad plugin directory, invalid config, bad flags)
//   - step failures (an installer's external process did not succeed)
//   - check failures (the checker ran and found too many issues)
//
// Check failures are data, not errors: they only surface as ErrQualityGateFailed
// at the CLI boundary so the process exits with status 1.
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrInvalidPluginDir indicates the given directory is not a recognizable plugin root.
	ErrInvalidPluginDir = errors.New("invalid plugin directory")

	// ErrPluginComponent indicates the plugin's component name is missing or unsupported.
	ErrPluginComponent = errors.New("invalid plugin component")

	// ErrInvalidArgument indicates that an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidInstall indicates an invalid install configuration value.
	ErrConfigInvalidInstall = errors.New("invalid install configuration")

	// ErrConfigInvalidDatabase indicates an invalid database configuration value.
	ErrConfigInvalidDatabase = errors.New("invalid database configuration")

	// ErrConfigInvalidChecker indicates an invalid code checker configuration value.
	ErrConfigInvalidChecker = errors.New("invalid codechecker configuration")

	// ErrPluginConfigParse indicates the plugin-local config file is malformed.
	ErrPluginConfigParse = errors.New("plugin config parse error")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrUnknownDatabase indicates an unsupported database type was requested.
	ErrUnknownDatabase = errors.New("unknown database type")

	// ErrLockHeld indicates another process holds the data directory lock.
	ErrLockHeld = errors.New("data directory is locked by another process")

	// ErrDestinationExists indicates the plugin destination already exists in the environment.
	ErrDestinationExists = errors.New("destination already exists")

	// ErrInstallStepFailed indicates an installer failed and the pipeline was aborted.
	ErrInstallStepFailed = errors.New("install step failed")

	// ErrCommandFailed indicates that an external command exited unsuccessfully.
	ErrCommandFailed = errors.New("command failed")

	// ErrCommandTimeout indicates a command exceeded its timeout duration.
	ErrCommandTimeout = errors.New("command timeout exceeded")

	// ErrCommandNotConfigured indicates that a fake command was not configured in tests.
	ErrCommandNotConfigured = errors.New("command not configured")

	// ErrCheckerFailed indicates the checker could not run or produced unusable output.
	// This is an error, unlike a check failure which is a verdict.
	ErrCheckerFailed = errors.New("checker failed")

	// ErrQualityGateFailed indicates the verdict was fail. It exists only to
	// carry exit status 1 out of the CLI; the summary has already been printed.
	ErrQualityGateFailed = errors.New("quality gate failed")

	// ErrMissingRequiredTools indicates that required tools are missing or outdated.
	ErrMissingRequiredTools = errors.New("required tools are missing or outdated")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}

// IsConfigurationError reports whether err belongs to the configuration class:
// raised before any installer or checker runs and never worth retrying.
func IsConfigurationError(err error) bool {
	for _, target := range []error{
		ErrInvalidPluginDir,
		ErrPluginComponent,
		ErrInvalidArgument,
		ErrConfigNil,
		ErrConfigInvalidInstall,
		ErrConfigInvalidDatabase,
		ErrConfigInvalidChecker,
		ErrPluginConfigParse,
		ErrInvalidOutputFormat,
		ErrUnknownDatabase,
		ErrLockHeld,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
