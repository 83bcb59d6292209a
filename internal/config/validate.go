package config

import (
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/mrz1836/moodle-plugin-ci/internal/database"
	"github.com/mrz1836/moodle-plugin-ci/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// Every problem is reported at once; each wraps one of the
// ErrConfigInvalid* sentinels.
//
// Validation rules:
//   - install repo, branch, moodle dir and data dir must not be empty
//   - database type must be supported and the name must not be empty
//   - codechecker standard and executable must not be empty
//   - codechecker max_warnings, when set, must not be negative
//   - timeouts must be positive
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	var result *multierror.Error
	result = multierror.Append(result, validateInstallConfig(&cfg.Install, &cfg.Timeouts)...)
	result = multierror.Append(result, validateDatabaseConfig(&cfg.Database)...)
	result = multierror.Append(result, validateCheckerConfig(&cfg.CodeChecker)...)
	return result.ErrorOrNil()
}

func validateInstallConfig(cfg *InstallConfig, timeouts *TimeoutsConfig) []error {
	var errs []error
	required := []struct {
		key   string
		value string
	}{
		{"install.repo", cfg.Repo},
		{"install.branch", cfg.Branch},
		{"install.moodle_dir", cfg.MoodleDir},
		{"install.data_dir", cfg.DataDir},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, errors.Wrapf(errors.ErrConfigInvalidInstall, "%s must not be empty", r.key))
		}
	}

	if timeouts.Command <= 0 {
		errs = append(errs, errors.Wrapf(errors.ErrConfigInvalidInstall,
			"timeouts.command must be positive, got %s", timeouts.Command))
	}
	if timeouts.Clone <= 0 {
		errs = append(errs, errors.Wrapf(errors.ErrConfigInvalidInstall,
			"timeouts.clone must be positive, got %s", timeouts.Clone))
	}
	return errs
}

func validateDatabaseConfig(cfg *DatabaseConfig) []error {
	var errs []error
	if _, err := database.New(database.Options{Type: cfg.Type, Name: cfg.Name}); err != nil {
		errs = append(errs, errors.Wrapf(errors.ErrConfigInvalidDatabase,
			"database.type %q with name %q: %v (supported: %s)",
			cfg.Type, cfg.Name, err, strings.Join(database.SupportedTypes(), ", ")))
	}
	return errs
}

func validateCheckerConfig(cfg *CodeCheckerConfig) []error {
	var errs []error
	if strings.TrimSpace(cfg.Standard) == "" {
		errs = append(errs, errors.Wrap(errors.ErrConfigInvalidChecker, "codechecker.standard must not be empty"))
	}
	if strings.TrimSpace(cfg.Executable) == "" {
		errs = append(errs, errors.Wrap(errors.ErrConfigInvalidChecker, "codechecker.executable must not be empty"))
	}
	if cfg.MaxWarnings != nil && *cfg.MaxWarnings < 0 {
		errs = append(errs, errors.Wrapf(errors.ErrConfigInvalidChecker,
			"codechecker.max_warnings must not be negative, got %d", *cfg.MaxWarnings))
	}
	return errs
}
