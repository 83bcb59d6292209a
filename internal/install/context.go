package install

import (
	"time"

	"github.com/mrz1836/moodle-plugin-ci/internal/database"
	"github.com/mrz1836/moodle-plugin-ci/internal/plugin"
	"github.com/mrz1836/moodle-plugin-ci/internal/process"
)

// Commands names the executables the installers invoke.
type Commands struct {
	Git      string
	PHP      string
	Composer string
	NPM      string
}

// ExecutionContext is the configuration shared by every installer built
// from it. Installers only read it; it is complete before composition.
type ExecutionContext struct {
	// Repo and Branch select the host platform source.
	Repo   string
	Branch string

	// MoodleDir is the absolute path of the host platform checkout.
	MoodleDir string

	// DataDir is the absolute path of the host platform data root.
	DataDir string

	// WWWRoot is the site URL written to config.php.
	WWWRoot string

	// Database is the environment's database handle.
	Database database.Database

	// Filters are the exclusions applied when placing the plugin.
	Filters plugin.Filters

	// IncludeJS adds the script-lint installer.
	IncludeJS bool

	// Commands names the executables.
	Commands Commands

	// CloneTimeout bounds the host platform clone.
	CloneTimeout time.Duration

	// Executor runs every external process.
	Executor *process.Executor
}
