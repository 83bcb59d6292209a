// Package constants provides centralized constant values used throughout moodle-plugin-ci.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used for organizing local data.
const (
	// AppHome is the hidden directory name where moodle-plugin-ci stores its data.
	// This directory is created in the user's home directory.
	AppHome = ".moodle-plugin-ci"

	// HomeEnvVar overrides the location of AppHome when set.
	HomeEnvVar = "MOODLE_PLUGIN_CI_HOME"

	// EnvPrefix is the prefix for configuration environment variables
	// (e.g., MOODLE_PLUGIN_CI_DATABASE_PASS).
	EnvPrefix = "MOODLE_PLUGIN_CI"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the maximum size of a log file before it is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to keep.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age of rotated log files.
	LogMaxAgeDays = 14

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true
)

// Timeout configurations for external processes.
const (
	// DefaultCommandTimeout bounds a single installer or checker process.
	DefaultCommandTimeout = 15 * time.Minute

	// DefaultCloneTimeout bounds the source control clone of the host platform.
	DefaultCloneTimeout = 10 * time.Minute
)

// Host platform defaults.
const (
	// DefaultMoodleRepo is the upstream repository cloned by the environment installer.
	DefaultMoodleRepo = "https://github.com/moodle/moodle.git"

	// DefaultBranch is the host platform branch installed when none is configured.
	DefaultBranch = "main"

	// DefaultMoodleDir is the directory (relative to the working directory)
	// where the host platform is cloned.
	DefaultMoodleDir = "moodle"

	// DefaultDataDir is the directory (relative to the working directory)
	// used as the host platform data root.
	DefaultDataDir = "moodledata"

	// DefaultCodingStandard is the checker standard used by the code checker.
	DefaultCodingStandard = "moodle"

	// DefaultCheckerExecutable is the checker binary invoked by the code checker.
	DefaultCheckerExecutable = "phpcs"

	// DefaultWWWRoot is the site URL written to the environment's config.php.
	DefaultWWWRoot = "http://localhost/moodle"
)

// Database defaults.
const (
	// DefaultDBType is the database driver used when none is configured.
	DefaultDBType = "pgsql"

	// DefaultDBHost is the database host used when none is configured.
	DefaultDBHost = "localhost"

	// DefaultDBName is the database created for the environment.
	DefaultDBName = "moodle"
)
