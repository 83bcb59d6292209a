// Package config provides configuration management for moodle-plugin-ci.
//
// Configuration is layered with viper (flags > MOODLE_PLUGIN_CI_* env >
// global config file > defaults). The plugin under test may also carry a
// .moodle-plugin-ci.yml with exclusion filters, read by LoadPluginFile.
package config

import (
	"time"

	"github.com/mrz1836/moodle-plugin-ci/internal/plugin"
)

// Config is the root configuration.
type Config struct {
	// Install configures the install command.
	Install InstallConfig `yaml:"install" mapstructure:"install"`

	// Database configures the environment's database.
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`

	// CodeChecker configures the codechecker command.
	CodeChecker CodeCheckerConfig `yaml:"codechecker" mapstructure:"codechecker"`

	// Commands names the external executables.
	Commands CommandsConfig `yaml:"commands" mapstructure:"commands"`

	// Timeouts bounds external processes.
	Timeouts TimeoutsConfig `yaml:"timeouts" mapstructure:"timeouts"`
}

// InstallConfig holds settings for provisioning the environment.
type InstallConfig struct {
	// Repo is the host platform repository to clone.
	Repo string `yaml:"repo" mapstructure:"repo"`

	// Branch is the host platform branch to clone.
	Branch string `yaml:"branch" mapstructure:"branch"`

	// MoodleDir is where the host platform is cloned.
	MoodleDir string `yaml:"moodle_dir" mapstructure:"moodle_dir"`

	// DataDir is the host platform data root.
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// NoJS skips the script-lint installer.
	NoJS bool `yaml:"no_js" mapstructure:"no_js"`

	// NotPaths and NotNames are global exclusion filters merged with the
	// plugin's own.
	NotPaths []string `yaml:"not_paths" mapstructure:"not_paths"`
	NotNames []string `yaml:"not_names" mapstructure:"not_names"`

	// Lock holds an exclusive lock on the data directory during install.
	Lock bool `yaml:"lock" mapstructure:"lock"`
}

// Filters returns the configured global exclusions.
func (c InstallConfig) Filters() plugin.Filters {
	return plugin.Filters{NotPaths: c.NotPaths, NotNames: c.NotNames}
}

// DatabaseConfig holds the database connection settings.
type DatabaseConfig struct {
	Type string `yaml:"type" mapstructure:"type"`
	Host string `yaml:"host" mapstructure:"host"`
	Name string `yaml:"name" mapstructure:"name"`
	User string `yaml:"user" mapstructure:"user"`
	Pass string `yaml:"pass" mapstructure:"pass"`
}

// CodeCheckerConfig holds settings for the codechecker command.
type CodeCheckerConfig struct {
	// Standard is the coding standard passed to the checker.
	Standard string `yaml:"standard" mapstructure:"standard"`

	// MaxWarnings is the warning tolerance. Nil means unlimited.
	MaxWarnings *int `yaml:"max_warnings" mapstructure:"max_warnings"`

	// Executable is the checker binary.
	Executable string `yaml:"executable" mapstructure:"executable"`
}

// CommandsConfig names the executables used by the installers.
type CommandsConfig struct {
	Git      string `yaml:"git" mapstructure:"git"`
	PHP      string `yaml:"php" mapstructure:"php"`
	Composer string `yaml:"composer" mapstructure:"composer"`
	NPM      string `yaml:"npm" mapstructure:"npm"`
}

// TimeoutsConfig bounds external processes.
type TimeoutsConfig struct {
	// Command bounds each installer or checker process.
	Command time.Duration `yaml:"command" mapstructure:"command"`

	// Clone bounds the host platform clone.
	Clone time.Duration `yaml:"clone" mapstructure:"clone"`
}
