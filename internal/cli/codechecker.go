package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/moodle-plugin-ci/internal/checker"
	"github.com/mrz1836/moodle-plugin-ci/internal/config"
	"github.com/mrz1836/moodle-plugin-ci/internal/errors"
	"github.com/mrz1836/moodle-plugin-ci/internal/gate"
	"github.com/mrz1836/moodle-plugin-ci/internal/process"
	"github.com/mrz1836/moodle-plugin-ci/internal/tui"
)

// codecheckerOptions holds the codechecker command's flags.
type codecheckerOptions struct {
	pluginDir      string
	standard       string
	maxWarnings    int
	maxWarningsSet bool
}

func newCodeCheckerCmd(flags *GlobalFlags, d deps) *cobra.Command {
	opts := &codecheckerOptions{}

	cmd := &cobra.Command{
		Use:   "codechecker PLUGIN_DIR",
		Short: "Run the Moodle coding standard against the plugin",
		Long: `Run PHP CodeSniffer with the Moodle coding standard over the plugin's PHP
files and decide pass or fail.

Any error fails the check. Warnings fail it only when --max-warnings is given
and the warning count exceeds it. Without --max-warnings warnings never fail.

Exit codes: 0 pass, 1 fail or checker failure, 2 invalid input.

Examples:
  moodle-plugin-ci codechecker ./local_ci
  moodle-plugin-ci codechecker ./local_ci --max-warnings 0
  moodle-plugin-ci codechecker ./local_ci --output json`,
		Args: inputArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.pluginDir = args[0]
			opts.maxWarningsSet = cmd.Flags().Changed("max-warnings")
			return runCodeChecker(cmd.Context(), tui.NewOutput(cmd.OutOrStdout(), flags.Output), opts, d)
		},
	}

	cmd.Flags().IntVar(&opts.maxWarnings, "max-warnings", 0, "number of warnings to tolerate before failing (default unlimited)")
	cmd.Flags().StringVar(&opts.standard, "standard", "", "coding standard to check against")

	return cmd
}

// codecheckerReport is the JSON shape of a codechecker run.
type codecheckerReport struct {
	Component string `json:"component"`
	*gate.Outcome
	FilesScanned  int             `json:"files_scanned"`
	Errors        int             `json:"errors"`
	Warnings      int             `json:"warnings"`
	Fixable       int             `json:"fixable"`
	AffectedFiles int             `json:"affected_files"`
	Issues        []checker.Issue `json:"issues"`
	DurationMs    int64           `json:"duration_ms"`
}

func runCodeChecker(ctx context.Context, out tui.Output, opts *codecheckerOptions, d deps) error {
	log := zerolog.Ctx(ctx)

	overrides := &config.Config{}
	overrides.CodeChecker.Standard = opts.standard
	if opts.maxWarningsSet {
		if opts.maxWarnings < 0 {
			return errors.NewExitCode2Error(fmt.Errorf("%w: --max-warnings must not be negative, got %d",
				errors.ErrInvalidArgument, opts.maxWarnings))
		}
		limit := opts.maxWarnings
		overrides.CodeChecker.MaxWarnings = &limit
	}

	cfg, err := loadConfig(ctx, d, overrides)
	if err != nil {
		return err
	}

	threshold, err := gate.ThresholdFrom(cfg.CodeChecker.MaxWarnings)
	if err != nil {
		return asInputError(err)
	}

	caps, err := inspectPlugin(ctx, opts.pluginDir, cfg, "codechecker")
	if err != nil {
		return err
	}

	_, isJSON := out.(*tui.JSONOutput)
	if !isJSON {
		out.Heading(fmt.Sprintf("RUN  Moodle CodeSniffer standard on %s", caps.Component()))
	}

	executor := process.NewExecutorWithRunner(cfg.Timeouts.Command, d.runner)
	phpcs := checker.NewPHPCS(executor, cfg.CodeChecker.Executable, cfg.CodeChecker.Standard)

	outcome, err := gate.New(phpcs, threshold).Run(ctx, caps)
	if err != nil {
		out.Error(err)
		return reported(err)
	}

	log.Debug().
		Str("component", caps.Component()).
		Str("verdict", string(outcome.Verdict)).
		Dur("duration", outcome.Duration).
		Msg("codechecker finished")

	if isJSON {
		if err := out.JSON(newCodecheckerReport(caps.Component(), outcome)); err != nil {
			return err
		}
	} else {
		renderOutcome(out, outcome)
	}

	if outcome.Verdict == gate.VerdictFail {
		return reported(errors.ErrQualityGateFailed)
	}
	return nil
}

func newCodecheckerReport(component string, outcome *gate.Outcome) codecheckerReport {
	report := outcome.Report
	return codecheckerReport{
		Component:     component,
		Outcome:       outcome,
		FilesScanned:  report.FilesScanned(),
		Errors:        report.ErrorCount(),
		Warnings:      report.WarningCount(),
		Fixable:       report.FixableCount(),
		AffectedFiles: report.AffectedFileCount(),
		Issues:        report.Issues(),
		DurationMs:    outcome.Duration.Milliseconds(),
	}
}

func renderOutcome(out tui.Output, outcome *gate.Outcome) {
	if outcome.FreePass {
		out.Success(gate.FreePassMessage)
		return
	}

	report := outcome.Report
	out.Line(strings.TrimSuffix(gate.Progress(report), "\n"))
	if table := tui.IssueTable(report); table != "" {
		out.Line(strings.TrimSuffix(table, "\n"))
	}
	out.Line("")
	for _, line := range gate.Summary(report) {
		out.Line(line)
	}
	out.Line("")
	out.Line(fmt.Sprintf("Time: %s", outcome.Duration.Round(time.Millisecond)))

	switch {
	case outcome.Verdict == gate.VerdictPass:
		out.Success("Code check passed")
	case report.ErrorCount() == 0:
		out.Warning(fmt.Sprintf("%d warnings exceed the tolerance of %s", report.WarningCount(), outcome.Threshold))
	default:
		out.Warning("Code check failed")
	}
}
