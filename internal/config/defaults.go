package config

import (
	"github.com/mrz1836/moodle-plugin-ci/internal/constants"
)

// DefaultConfig returns a Config with sensible defaults.
// These match the values registered on viper by setDefaults.
func DefaultConfig() *Config {
	return &Config{
		Install: InstallConfig{
			Repo:      constants.DefaultMoodleRepo,
			Branch:    constants.DefaultBranch,
			MoodleDir: constants.DefaultMoodleDir,
			DataDir:   constants.DefaultDataDir,
			NotPaths:  []string{},
			NotNames:  []string{},
			Lock:      true,
		},
		Database: DatabaseConfig{
			Type: constants.DefaultDBType,
			Host: constants.DefaultDBHost,
			Name: constants.DefaultDBName,
		},
		CodeChecker: CodeCheckerConfig{
			Standard:   constants.DefaultCodingStandard,
			Executable: constants.DefaultCheckerExecutable,
		},
		Commands: CommandsConfig{
			Git:      constants.ToolGit,
			PHP:      constants.ToolPHP,
			Composer: constants.ToolComposer,
			NPM:      constants.ToolNPM,
		},
		Timeouts: TimeoutsConfig{
			Command: constants.DefaultCommandTimeout,
			Clone:   constants.DefaultCloneTimeout,
		},
	}
}
