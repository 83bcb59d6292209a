package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mrz1836/moodle-plugin-ci/internal/constants"
	ciErrors "github.com/mrz1836/moodle-plugin-ci/internal/errors"
	"github.com/mrz1836/moodle-plugin-ci/internal/hostconfig"
	"github.com/mrz1836/moodle-plugin-ci/internal/plugin"
	"github.com/mrz1836/moodle-plugin-ci/internal/process"
)

// Installer is one unit of setup work. Execute either completes or fails;
// it has no other result.
type Installer interface {
	Kind() Kind
	Execute(ctx context.Context) error
}

// EnvironmentInstaller clones the host platform, prepares the data
// directories, creates the database and writes config.php.
type EnvironmentInstaller struct {
	ec *ExecutionContext
}

// Kind implements Installer.
func (i *EnvironmentInstaller) Kind() Kind { return KindEnvironment }

// Execute implements Installer.
func (i *EnvironmentInstaller) Execute(ctx context.Context) error {
	ec := i.ec
	log := zerolog.Ctx(ctx)

	clone := process.Command{
		Name: ec.Commands.Git,
		Args: []string{"clone", "--depth", "1", "--branch", ec.Branch, ec.Repo, ec.MoodleDir},
	}
	if _, err := ec.Executor.RunWithTimeout(ctx, clone, ec.CloneTimeout); err != nil {
		return err
	}

	dataDirs := []string{
		ec.DataDir,
		filepath.Join(ec.DataDir, constants.UnitTestDataDir),
		filepath.Join(ec.DataDir, constants.BehatDataDir),
	}
	for _, dir := range dataDirs {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating data directory %s: %w", dir, err)
		}
	}

	if _, err := ec.Executor.Run(ctx, ec.Database.CreateCommand()); err != nil {
		return err
	}

	content, err := hostconfig.RenderConfig(hostconfig.ConfigData{
		DBType:          ec.Database.Type(),
		DBLibrary:       ec.Database.Library(),
		DBHost:          ec.Database.Host(),
		DBName:          ec.Database.Name(),
		DBUser:          ec.Database.User(),
		DBPass:          ec.Database.Pass(),
		Prefix:          "m_",
		Collation:       "utf8mb4_unicode_ci",
		WWWRoot:         ec.WWWRoot,
		DataRoot:        ec.DataDir,
		PHPUnitDataRoot: dataDirs[1],
		BehatDataRoot:   dataDirs[2],
		BehatWWWRoot:    ec.WWWRoot,
	})
	if err != nil {
		return err
	}

	configPath := filepath.Join(ec.MoodleDir, constants.HostConfigFile)
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	log.Info().
		Str("moodle_dir", ec.MoodleDir).
		Str("data_dir", ec.DataDir).
		Str("db_type", ec.Database.Type()).
		Msg("environment provisioned")
	return nil
}

// PluginInstaller places the filtered plugin tree into the environment.
type PluginInstaller struct {
	ec     *ExecutionContext
	plugin *plugin.Capabilities
}

// Kind implements Installer.
func (i *PluginInstaller) Kind() Kind { return KindPlugin }

// Execute implements Installer.
func (i *PluginInstaller) Execute(ctx context.Context) error {
	dst := i.plugin.InstallPath(i.ec.MoodleDir)
	if err := i.plugin.CopyTo(dst); err != nil {
		return ciErrors.Wrapf(err, "failed to place %s", i.plugin.Component())
	}

	zerolog.Ctx(ctx).Info().
		Str("component", i.plugin.Component()).
		Str("destination", dst).
		Strs("not_paths", i.ec.Filters.NotPaths).
		Strs("not_names", i.ec.Filters.NotNames).
		Msg("plugin placed")
	return nil
}

// commandInstaller runs one command inside the host platform checkout.
type commandInstaller struct {
	kind Kind
	ec   *ExecutionContext
	cmd  func(ec *ExecutionContext) process.Command
}

// Kind implements Installer.
func (i *commandInstaller) Kind() Kind { return i.kind }

// Execute implements Installer.
func (i *commandInstaller) Execute(ctx context.Context) error {
	cmd := i.cmd(i.ec)
	cmd.Dir = i.ec.MoodleDir
	_, err := i.ec.Executor.Run(ctx, cmd)
	return err
}

func dependencyCommand(ec *ExecutionContext) process.Command {
	return process.Command{Name: ec.Commands.Composer, Args: []string{"install", "--no-interaction", "--prefer-dist"}}
}

func behatCommand(ec *ExecutionContext) process.Command {
	return process.Command{Name: ec.Commands.PHP, Args: []string{"admin/tool/behat/cli/init.php"}}
}

func unitTestCommand(ec *ExecutionContext) process.Command {
	return process.Command{Name: ec.Commands.PHP, Args: []string{"admin/tool/phpunit/cli/init.php"}}
}

func scriptLintCommand(ec *ExecutionContext) process.Command {
	return process.Command{Name: ec.Commands.NPM, Args: []string{"install", "--no-fund", "--no-audit"}}
}

var (
	_ Installer = (*EnvironmentInstaller)(nil)
	_ Installer = (*PluginInstaller)(nil)
	_ Installer = (*commandInstaller)(nil)
)
