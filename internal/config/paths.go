package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/moodle-plugin-ci/internal/constants"
	"github.com/mrz1836/moodle-plugin-ci/internal/errors"
)

// HomeDir returns the moodle-plugin-ci data directory: $MOODLE_PLUGIN_CI_HOME
// when set, otherwise ~/.moodle-plugin-ci.
//
// Returns an error if the home directory cannot be determined.
func HomeDir() (string, error) {
	if dir := os.Getenv(constants.HomeEnvVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.AppHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// LogFilePath returns the full path to the CLI log file.
func LogFilePath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", fmt.Errorf("get log file path: %w", err)
	}
	return filepath.Join(dir, constants.LogsDir, constants.CLILogFileName), nil
}

// PluginConfigPath returns the plugin-local configuration file inside pluginDir.
func PluginConfigPath(pluginDir string) string {
	return filepath.Join(pluginDir, constants.PluginConfigName)
}
