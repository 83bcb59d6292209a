package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// A slice (not a map) so errors.Is() can walk wrapped chains in order.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Configuration
	// ===================
	{
		err: ErrInvalidPluginDir,
		info: ErrorInfo{
			Message: "The plugin directory is missing or is not a plugin root.",
			Action:  "Pass the directory that contains the plugin's version.php.",
		},
	},
	{
		err: ErrPluginComponent,
		info: ErrorInfo{
			Message: "The plugin component could not be determined.",
			Action:  "Make sure version.php sets $plugin->component = 'type_name'.",
		},
	},
	{
		err: ErrPluginConfigParse,
		info: ErrorInfo{
			Message: "The plugin's .moodle-plugin-ci.yml could not be parsed.",
			Action:  "Fix the YAML syntax in .moodle-plugin-ci.yml.",
		},
	},
	{
		err: ErrConfigInvalidInstall,
		info: ErrorInfo{
			Message: "The install configuration is invalid.",
			Action:  "Check the install section of your config or the install flags.",
		},
	},
	{
		err: ErrConfigInvalidDatabase,
		info: ErrorInfo{
			Message: "The database configuration is invalid.",
			Action:  "Check --db-type, --db-host and --db-name.",
		},
	},
	{
		err: ErrConfigInvalidChecker,
		info: ErrorInfo{
			Message: "The code checker configuration is invalid.",
			Action:  "Check --max-warnings and the codechecker section of your config.",
		},
	},
	{
		err: ErrUnknownDatabase,
		info: ErrorInfo{
			Message: "The requested database type is not supported.",
			Action:  "Use --db-type mysqli or --db-type pgsql.",
		},
	},
	{
		err: ErrLockHeld,
		info: ErrorInfo{
			Message: "Another install is using this data directory.",
			Action:  "Wait for it to finish or pass a different --data directory.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Invalid output format specified.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrInvalidArgument,
		info: ErrorInfo{
			Message: "An invalid argument was provided.",
			Action:  "Check the command help for valid arguments.",
		},
	},

	// ===================
	// Install pipeline
	// ===================
	{
		err: ErrDestinationExists,
		info: ErrorInfo{
			Message: "The plugin destination already exists in the environment.",
			Action:  "Start from a fresh environment; installs are not resumable.",
		},
	},
	{
		err: ErrCommandTimeout,
		info: ErrorInfo{
			Message: "An external command timed out.",
			Action:  "Increase timeouts.command in your config and rerun the whole command.",
		},
	},
	{
		err: ErrInstallStepFailed,
		info: ErrorInfo{
			Message: "An install step failed; remaining steps were skipped.",
			Action:  "Discard the environment, fix the reported step and rerun install.",
		},
	},
	{
		err: ErrCommandFailed,
		info: ErrorInfo{
			Message: "An external command failed.",
			Action:  "Check the command output in the log file.",
		},
	},

	// ===================
	// Quality gate
	// ===================
	{
		err: ErrCheckerFailed,
		info: ErrorInfo{
			Message: "The code checker could not run or returned unreadable output.",
			Action:  "Run 'moodle-plugin-ci tools' to verify phpcs is installed.",
		},
	},
	{
		err: ErrQualityGateFailed,
		info: ErrorInfo{
			Message: "Code checks found issues above the allowed tolerance.",
			Action:  "Fix the reported issues or raise --max-warnings.",
		},
	},
	{
		err: ErrMissingRequiredTools,
		info: ErrorInfo{
			Message: "Required tools are missing or outdated.",
			Action:  "Run 'moodle-plugin-ci tools' and install the missing tools.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// Direct sentinels hit the map; wrapped errors fall back to errors.Is().
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
