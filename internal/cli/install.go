package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/moodle-plugin-ci/internal/config"
	"github.com/mrz1836/moodle-plugin-ci/internal/constants"
	"github.com/mrz1836/moodle-plugin-ci/internal/database"
	"github.com/mrz1836/moodle-plugin-ci/internal/errors"
	"github.com/mrz1836/moodle-plugin-ci/internal/flock"
	"github.com/mrz1836/moodle-plugin-ci/internal/install"
	"github.com/mrz1836/moodle-plugin-ci/internal/process"
	"github.com/mrz1836/moodle-plugin-ci/internal/tui"
)

// installOptions holds the install command's flags.
type installOptions struct {
	pluginDir  string
	overrides  config.Config
	noJS       bool
	wwwRoot    string
	dryRun     bool
	liveOutput io.Writer
}

func newInstallCmd(flags *GlobalFlags, d deps) *cobra.Command {
	opts := &installOptions{}

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Provision a Moodle environment for the plugin under test",
		Long: `Clone Moodle, create its data directories and database, write config.php,
place the plugin and prepare the test tool chains the plugin needs.

Steps run strictly in order and stop at the first failure. Nothing is rolled
back: discard the environment and run install again.

Examples:
  moodle-plugin-ci install --plugin ./local_ci --db-type pgsql
  moodle-plugin-ci install --plugin ./mod_foo --branch MOODLE_405_STABLE --no-js
  moodle-plugin-ci install --plugin ./mod_foo --dry-run --output json`,
		Args: inputArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.Verbose && !strings.EqualFold(flags.Output, tui.FormatJSON) {
				opts.liveOutput = cmd.ErrOrStderr()
			}
			return runInstall(cmd.Context(), tui.NewOutput(cmd.OutOrStdout(), flags.Output), opts, d, cmd.Flags().Changed("no-js"))
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.pluginDir, "plugin", "", "path to the plugin under test")
	f.StringVar(&opts.overrides.Install.Repo, "repo", "", "Moodle git repository to clone")
	f.StringVar(&opts.overrides.Install.Branch, "branch", "", "Moodle branch to clone")
	f.StringVar(&opts.overrides.Install.MoodleDir, "moodle", "", "directory to clone Moodle into")
	f.StringVar(&opts.overrides.Install.DataDir, "data", "", "Moodle data directory")
	f.StringVar(&opts.overrides.Database.Type, "db-type", "", "database type (mysqli|mariadb|pgsql)")
	f.StringVar(&opts.overrides.Database.Host, "db-host", "", "database host")
	f.StringVar(&opts.overrides.Database.Name, "db-name", "", "database name")
	f.StringVar(&opts.overrides.Database.User, "db-user", "", "database user")
	f.StringVar(&opts.overrides.Database.Pass, "db-pass", "", "database password")
	f.StringSliceVar(&opts.overrides.Install.NotPaths, "not-paths", nil, "plugin paths to exclude (comma separated)")
	f.StringSliceVar(&opts.overrides.Install.NotNames, "not-names", nil, "file name globs to exclude (comma separated)")
	f.BoolVar(&opts.noJS, "no-js", false, "skip the script lint tool chain")
	f.StringVar(&opts.wwwRoot, "wwwroot", constants.DefaultWWWRoot, "site URL written to config.php")
	f.BoolVar(&opts.dryRun, "dry-run", false, "print the planned steps without running them")
	_ = cmd.MarkFlagRequired("plugin")

	return cmd
}

// installPlan is the JSON shape of a dry run.
type installPlan struct {
	Component string         `json:"component"`
	Steps     []install.Kind `json:"steps"`
}

// installReport is the JSON shape of a completed install.
type installReport struct {
	Component string `json:"component"`
	*install.RunResult
}

func runInstall(ctx context.Context, out tui.Output, opts *installOptions, d deps, noJSChanged bool) error {
	log := zerolog.Ctx(ctx)

	cfg, err := loadConfig(ctx, d, &opts.overrides)
	if err != nil {
		return err
	}
	if noJSChanged {
		cfg.Install.NoJS = opts.noJS
	}

	caps, err := inspectPlugin(ctx, opts.pluginDir, cfg, "install")
	if err != nil {
		return err
	}

	db, err := database.New(database.Options{
		Type: cfg.Database.Type,
		Host: cfg.Database.Host,
		Name: cfg.Database.Name,
		User: cfg.Database.User,
		Pass: cfg.Database.Pass,
	})
	if err != nil {
		return asInputError(err)
	}

	moodleDir, err := filepath.Abs(cfg.Install.MoodleDir)
	if err != nil {
		return errors.Wrap(err, "failed to resolve moodle directory")
	}
	dataDir, err := filepath.Abs(cfg.Install.DataDir)
	if err != nil {
		return errors.Wrap(err, "failed to resolve data directory")
	}

	executor := process.NewExecutorWithRunner(cfg.Timeouts.Command, d.runner)
	if opts.liveOutput != nil {
		executor.SetLiveOutput(opts.liveOutput)
	}
	ec := &install.ExecutionContext{
		Repo:      cfg.Install.Repo,
		Branch:    cfg.Install.Branch,
		MoodleDir: moodleDir,
		DataDir:   dataDir,
		WWWRoot:   opts.wwwRoot,
		Database:  db,
		Filters:   caps.Filters(),
		IncludeJS: !cfg.Install.NoJS,
		Commands: install.Commands{
			Git:      cfg.Commands.Git,
			PHP:      cfg.Commands.PHP,
			Composer: cfg.Commands.Composer,
			NPM:      cfg.Commands.NPM,
		},
		CloneTimeout: cfg.Timeouts.Clone,
		Executor:     executor,
	}
	factory := install.NewFactory(caps, ec)

	if opts.dryRun {
		return printPlan(out, caps.Component(), factory.Plan())
	}

	if cfg.Install.Lock {
		lock, lockErr := flock.Acquire(filepath.Join(dataDir, constants.DataDirLockFile))
		if lockErr != nil {
			return asInputError(lockErr)
		}
		defer func() {
			if relErr := lock.Release(); relErr != nil {
				log.Warn().Err(relErr).Str("path", lock.Path()).Msg("failed to release data directory lock")
			}
		}()
	}

	collection := install.NewCollection()
	factory.AddInstallers(collection)
	collection.SetProgressCallback(func(kind install.Kind, status install.Status) {
		switch status {
		case install.StatusStarting:
			out.Heading("RUN  " + kind.Heading())
		case install.StatusCompleted:
			out.Success(kind.Heading())
		}
	})

	log.Info().
		Str("component", caps.Component()).
		Str("moodle_dir", moodleDir).
		Int("steps", collection.Len()).
		Msg("starting install")

	result, err := collection.Run(ctx)
	if err != nil {
		out.Error(err)
		return reported(err)
	}

	if _, isJSON := out.(*tui.JSONOutput); isJSON {
		return out.JSON(installReport{Component: caps.Component(), RunResult: result})
	}
	out.Success(fmt.Sprintf("Installed %s into %s", caps.Component(), caps.InstallPath(moodleDir)))
	return nil
}

func printPlan(out tui.Output, component string, steps []install.Kind) error {
	if _, isJSON := out.(*tui.JSONOutput); isJSON {
		return out.JSON(installPlan{Component: component, Steps: steps})
	}

	out.Heading("Install plan for " + component)
	for i, kind := range steps {
		out.Line(fmt.Sprintf("%d. %s", i+1, kind.Heading()))
	}
	return nil
}
