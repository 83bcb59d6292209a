// Package gate reduces a checker report to a pass/fail verdict.
//
// The verdict fails on any error, and on warnings only when a tolerance is
// configured and strictly exceeded. An empty file set is a free pass and
// the checker never runs.
package gate

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mrz1836/moodle-plugin-ci/internal/checker"
	ciErrors "github.com/mrz1836/moodle-plugin-ci/internal/errors"
)

// Verdict is the outcome of applying a Threshold to a report.
type Verdict string

// Verdicts.
const (
	VerdictPass Verdict = "pass"
	VerdictFail Verdict = "fail"
)

// ExitCode maps the verdict to a process exit status.
func (v Verdict) ExitCode() int {
	if v == VerdictPass {
		return 0
	}
	return 1
}

// Threshold is the warning tolerance. The zero value is unlimited.
type Threshold struct {
	max int
	set bool
}

// Unlimited tolerates any number of warnings.
func Unlimited() Threshold {
	return Threshold{}
}

// MaxWarnings tolerates up to n warnings inclusive. Negative n is an
// invalid argument.
func MaxWarnings(n int) (Threshold, error) {
	if n < 0 {
		return Threshold{}, fmt.Errorf("%w: max warnings must not be negative, got %d", ciErrors.ErrInvalidArgument, n)
	}
	return Threshold{max: n, set: true}, nil
}

// ThresholdFrom converts an optional limit; nil is unlimited.
func ThresholdFrom(limit *int) (Threshold, error) {
	if limit == nil {
		return Unlimited(), nil
	}
	return MaxWarnings(*limit)
}

// Limit returns the tolerance and whether one is configured.
func (t Threshold) Limit() (int, bool) {
	return t.max, t.set
}

// String renders the tolerance for humans.
func (t Threshold) String() string {
	if !t.set {
		return "unlimited"
	}
	return strconv.Itoa(t.max)
}

// MarshalJSON renders an unset tolerance as null.
func (t Threshold) MarshalJSON() ([]byte, error) {
	if !t.set {
		return []byte("null"), nil
	}
	return json.Marshal(t.max)
}

// Evaluate applies the tolerance to report. It is a pure function of its
// inputs: identical reports always yield identical verdicts.
func (t Threshold) Evaluate(report *checker.Report) Verdict {
	if report.ErrorCount() > 0 {
		return VerdictFail
	}
	if t.set && report.WarningCount() > t.max {
		return VerdictFail
	}
	return VerdictPass
}
