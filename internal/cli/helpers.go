package cli

import (
	"context"
	stderrors "errors"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mrz1836/moodle-plugin-ci/internal/config"
	"github.com/mrz1836/moodle-plugin-ci/internal/errors"
	"github.com/mrz1836/moodle-plugin-ci/internal/plugin"
)

// reportedError marks an error the command already showed the user, so
// Execute only turns it into an exit code.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

func isSilent(err error) bool {
	var re *reportedError
	return stderrors.As(err, &re)
}

// asInputError marks configuration errors for exit code 2.
func asInputError(err error) error {
	if err == nil || !errors.IsConfigurationError(err) {
		return err
	}
	return errors.NewExitCode2Error(err)
}

// loadConfig loads the layered configuration, applies flag overrides and
// validates the result.
func loadConfig(ctx context.Context, d deps, overrides *config.Config) (*config.Config, error) {
	cfg, err := d.loadConfig(ctx)
	if err != nil {
		return nil, asInputError(err)
	}
	config.ApplyOverrides(cfg, overrides)
	if err := config.Validate(cfg); err != nil {
		return nil, asInputError(err)
	}
	return cfg, nil
}

// inspectPlugin resolves dir and inspects it with the global exclusions
// merged with the plugin's own filters for command.
func inspectPlugin(ctx context.Context, dir string, cfg *config.Config, command string) (*plugin.Capabilities, error) {
	if dir == "" {
		return nil, errors.NewExitCode2Error(errors.Wrap(errors.ErrInvalidPluginDir, "no plugin directory given"))
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.NewExitCode2Error(errors.Wrapf(errors.ErrInvalidPluginDir, "%s: %v", dir, err))
	}

	pluginFile, err := config.LoadPluginFile(abs)
	if err != nil {
		return nil, asInputError(err)
	}
	filters := cfg.Install.Filters().Merge(pluginFile.Filters(command))

	caps, err := plugin.Inspect(abs, filters)
	if err != nil {
		return nil, asInputError(err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", caps.Component()).
		Bool("has_unit_tests", caps.HasUnitTests()).
		Bool("has_behat_features", caps.HasBehatFeatures()).
		Strs("not_paths", filters.NotPaths).
		Strs("not_names", filters.NotNames).
		Msg("plugin inspected")
	return caps, nil
}
