package checker

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	ciErrors "github.com/mrz1836/moodle-plugin-ci/internal/errors"
	"github.com/mrz1836/moodle-plugin-ci/internal/process"
)

// Checker runs a static analysis tool over files.
type Checker interface {
	Check(ctx context.Context, files []string) (*Report, error)
}

// phpcs exit codes: 0 clean, 1 issues found, 2 issues found and some fixable.
const (
	phpcsExitIssues  = 1
	phpcsExitFixable = 2
)

// PHPCS runs PHP_CodeSniffer with the JSON report.
type PHPCS struct {
	executor   *process.Executor
	executable string
	standard   string
}

// NewPHPCS creates a PHPCS checker.
func NewPHPCS(executor *process.Executor, executable, standard string) *PHPCS {
	return &PHPCS{executor: executor, executable: executable, standard: standard}
}

// Command returns the checker invocation for files.
func (p *PHPCS) Command(files []string) process.Command {
	args := []string{"-q", "--report=json", "--standard=" + p.standard}
	return process.Command{Name: p.executable, Args: append(args, files...)}
}

// Check implements Checker. Finding issues is not an error; a crash, an
// unexpected exit code or unreadable output is ErrCheckerFailed.
func (p *PHPCS) Check(ctx context.Context, files []string) (*Report, error) {
	result, err := p.executor.RunAllowingExitCodes(ctx, p.Command(files), phpcsExitIssues, phpcsExitFixable)
	if err != nil {
		if result != nil && strings.TrimSpace(result.Stderr) != "" {
			return nil, fmt.Errorf("%w: %w: %s", ciErrors.ErrCheckerFailed, err, strings.TrimSpace(result.Stderr))
		}
		return nil, fmt.Errorf("%w: %w", ciErrors.ErrCheckerFailed, err)
	}

	report, err := ParsePHPCSJSON([]byte(result.Stdout))
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Int("files_scanned", report.FilesScanned()).
		Int("errors", report.ErrorCount()).
		Int("warnings", report.WarningCount()).
		Int("exit_code", result.ExitCode).
		Msg("checker finished")
	return report, nil
}

type phpcsOutput struct {
	Files map[string]phpcsFile `json:"files"`
}

type phpcsFile struct {
	Messages []phpcsMessage `json:"messages"`
}

type phpcsMessage struct {
	Message string `json:"message"`
	Source  string `json:"source"`
	Type    string `json:"type"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Fixable bool   `json:"fixable"`
}

// ParsePHPCSJSON converts phpcs --report=json output into a Report. Files
// are ordered by path; messages keep their per-file order.
func ParsePHPCSJSON(data []byte) (*Report, error) {
	var out phpcsOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON report: %w", ciErrors.ErrCheckerFailed, err)
	}
	if out.Files == nil {
		return nil, fmt.Errorf("%w: report has no files section", ciErrors.ErrCheckerFailed)
	}

	files := make([]string, 0, len(out.Files))
	for path := range out.Files {
		files = append(files, path)
	}
	sort.Strings(files)

	var issues []Issue
	for _, path := range files {
		for _, msg := range out.Files[path].Messages {
			severity, err := parseSeverity(msg.Type)
			if err != nil {
				return nil, err
			}
			issues = append(issues, Issue{
				File:     path,
				Line:     msg.Line,
				Column:   msg.Column,
				Severity: severity,
				Fixable:  msg.Fixable,
				RuleID:   msg.Source,
				Message:  msg.Message,
			})
		}
	}

	return NewReport(files, issues), nil
}

func parseSeverity(t string) (Severity, error) {
	switch strings.ToUpper(t) {
	case "ERROR":
		return SeverityError, nil
	case "WARNING":
		return SeverityWarning, nil
	default:
		return "", fmt.Errorf("%w: unknown message type %q", ciErrors.ErrCheckerFailed, t)
	}
}

var _ Checker = (*PHPCS)(nil)
