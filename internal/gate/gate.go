package gate

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/moodle-plugin-ci/internal/checker"
	"github.com/mrz1836/moodle-plugin-ci/internal/constants"
)

// FreePassMessage is shown when filtering leaves nothing to check.
const FreePassMessage = "No relevant files found to process, free pass!"

// FileSource lists the filtered files eligible for checking.
type FileSource interface {
	Files(exts ...string) ([]string, error)
}

// Gate runs the checker over a plugin's files and applies the threshold.
type Gate struct {
	checker    checker.Checker
	threshold  Threshold
	extensions []string
}

// New creates a gate checking PHP files.
func New(c checker.Checker, threshold Threshold) *Gate {
	return &Gate{checker: c, threshold: threshold, extensions: []string{constants.PHPExt}}
}

// Outcome is the result of one gate run.
type Outcome struct {
	Verdict   Verdict         `json:"verdict"`
	ExitCode  int             `json:"exit_code"`
	FreePass  bool            `json:"free_pass"`
	Threshold Threshold       `json:"max_warnings"`
	Report    *checker.Report `json:"-"`
	Duration  time.Duration   `json:"-"`
}

// Run discovers files, invokes the checker once and evaluates the report.
// Issues over tolerance are a failing verdict, not an error; errors are
// reserved for discovery and checker failures.
func (g *Gate) Run(ctx context.Context, src FileSource) (*Outcome, error) {
	log := zerolog.Ctx(ctx)
	start := time.Now()

	files, err := src.Files(g.extensions...)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		log.Info().Msg("no relevant files after filtering")
		return &Outcome{
			Verdict:   VerdictPass,
			ExitCode:  VerdictPass.ExitCode(),
			FreePass:  true,
			Threshold: g.threshold,
			Report:    checker.NewReport(nil, nil),
			Duration:  time.Since(start),
		}, nil
	}

	report, err := g.checker.Check(ctx, files)
	if err != nil {
		return nil, err
	}

	verdict := g.threshold.Evaluate(report)
	log.Info().
		Int("files_scanned", report.FilesScanned()).
		Int("errors", report.ErrorCount()).
		Int("warnings", report.WarningCount()).
		Str("max_warnings", g.threshold.String()).
		Str("verdict", string(verdict)).
		Msg("quality gate evaluated")

	return &Outcome{
		Verdict:   verdict,
		ExitCode:  verdict.ExitCode(),
		Threshold: g.threshold,
		Report:    report,
		Duration:  time.Since(start),
	}, nil
}
