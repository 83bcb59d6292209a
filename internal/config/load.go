package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/moodle-plugin-ci/internal/constants"
	"github.com/mrz1836/moodle-plugin-ci/internal/errors"
)

// newViperInstance creates a new Viper instance with the MOODLE_PLUGIN_CI_
// environment prefix, key replacer and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// No default exists for the tolerance, so AutomaticEnv alone would
	// never surface it during Unmarshal.
	_ = v.BindEnv("codechecker.max_warnings")
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(ctx context.Context, v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Str("install.branch", cfg.Install.Branch).
		Str("database.type", cfg.Database.Type).
		Dur("timeouts.command", cfg.Timeouts.Command).
		Msg("configuration loaded and unmarshaled")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence.
// Configuration is loaded in the following order (highest precedence first):
//  1. Environment variables (MOODLE_PLUGIN_CI_* prefix)
//  2. Global config (~/.moodle-plugin-ci/config.yaml)
//  3. Built-in defaults
//
// Flag values are layered on afterwards with ApplyOverrides. A missing config
// file is not an error.
func Load(ctx context.Context) (*Config, error) {
	path, err := GlobalConfigPath()
	if err != nil {
		// No home directory: defaults and environment still apply.
		path = ""
	}
	return LoadFromPath(ctx, path)
}

// LoadFromPath loads configuration from a specific file path. An empty or
// missing path loads defaults and environment only.
func LoadFromPath(ctx context.Context, path string) (*Config, error) {
	v := newViperInstance()

	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
				return nil, errors.Wrapf(err, "failed to read config file: %s", path)
			}
		}
	}

	return unmarshalAndValidate(ctx, v)
}

// setDefaults configures all default values on the Viper instance.
// Keys must match the mapstructure tag names exactly.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("install.repo", d.Install.Repo)
	v.SetDefault("install.branch", d.Install.Branch)
	v.SetDefault("install.moodle_dir", d.Install.MoodleDir)
	v.SetDefault("install.data_dir", d.Install.DataDir)
	v.SetDefault("install.no_js", d.Install.NoJS)
	v.SetDefault("install.not_paths", d.Install.NotPaths)
	v.SetDefault("install.not_names", d.Install.NotNames)
	v.SetDefault("install.lock", d.Install.Lock)

	v.SetDefault("database.type", d.Database.Type)
	v.SetDefault("database.host", d.Database.Host)
	v.SetDefault("database.name", d.Database.Name)
	v.SetDefault("database.user", "")
	v.SetDefault("database.pass", "")

	v.SetDefault("codechecker.standard", d.CodeChecker.Standard)
	v.SetDefault("codechecker.executable", d.CodeChecker.Executable)

	v.SetDefault("commands.git", d.Commands.Git)
	v.SetDefault("commands.php", d.Commands.PHP)
	v.SetDefault("commands.composer", d.Commands.Composer)
	v.SetDefault("commands.npm", d.Commands.NPM)

	v.SetDefault("timeouts.command", d.Timeouts.Command.String())
	v.SetDefault("timeouts.clone", d.Timeouts.Clone.String())
}

// ApplyOverrides merges non-zero override values into cfg.
func ApplyOverrides(cfg, overrides *Config) {
	applyInstallOverrides(&cfg.Install, &overrides.Install)
	applyDatabaseOverrides(&cfg.Database, &overrides.Database)

	if overrides.CodeChecker.Standard != "" {
		cfg.CodeChecker.Standard = overrides.CodeChecker.Standard
	}
	if overrides.CodeChecker.MaxWarnings != nil {
		limit := *overrides.CodeChecker.MaxWarnings
		cfg.CodeChecker.MaxWarnings = &limit
	}
	if overrides.CodeChecker.Executable != "" {
		cfg.CodeChecker.Executable = overrides.CodeChecker.Executable
	}

	if overrides.Timeouts.Command != 0 {
		cfg.Timeouts.Command = overrides.Timeouts.Command
	}
	if overrides.Timeouts.Clone != 0 {
		cfg.Timeouts.Clone = overrides.Timeouts.Clone
	}
}

func applyInstallOverrides(cfg, overrides *InstallConfig) {
	if overrides.Repo != "" {
		cfg.Repo = overrides.Repo
	}
	if overrides.Branch != "" {
		cfg.Branch = overrides.Branch
	}
	if overrides.MoodleDir != "" {
		cfg.MoodleDir = overrides.MoodleDir
	}
	if overrides.DataDir != "" {
		cfg.DataDir = overrides.DataDir
	}
	if len(overrides.NotPaths) > 0 {
		cfg.NotPaths = append(cfg.NotPaths, overrides.NotPaths...)
	}
	if len(overrides.NotNames) > 0 {
		cfg.NotNames = append(cfg.NotNames, overrides.NotNames...)
	}
}

func applyDatabaseOverrides(cfg, overrides *DatabaseConfig) {
	if overrides.Type != "" {
		cfg.Type = overrides.Type
	}
	if overrides.Host != "" {
		cfg.Host = overrides.Host
	}
	if overrides.Name != "" {
		cfg.Name = overrides.Name
	}
	if overrides.User != "" {
		cfg.User = overrides.User
	}
	if overrides.Pass != "" {
		cfg.Pass = overrides.Pass
	}
}

// viperDecoderOption decodes duration strings and comma-separated lists
// (as supplied through environment variables).
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}
