// Package checker runs the external code checker over a set of files and
// turns its structured output into a Report.
package checker

import (
	"slices"

	"github.com/samber/lo"
)

// Severity classifies an issue.
type Severity string

// Issue severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding reported by the checker.
type Issue struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Severity Severity `json:"severity"`
	Fixable  bool     `json:"fixable"`
	RuleID   string   `json:"rule_id"`
	Message  string   `json:"message"`
}

// Report is the immutable result of one checker run. Aggregate counts are
// derived from the issues when the report is built and never set directly.
type Report struct {
	files    []string
	issues   []Issue
	errors   int
	warnings int
	fixable  int
	affected int
	perFile  map[string]Severity
}

// NewReport builds a report for the scanned files and their issues.
func NewReport(files []string, issues []Issue) *Report {
	r := &Report{
		files:   slices.Clone(files),
		issues:  slices.Clone(issues),
		perFile: make(map[string]Severity),
	}

	r.errors = lo.CountBy(r.issues, func(i Issue) bool { return i.Severity == SeverityError })
	r.warnings = lo.CountBy(r.issues, func(i Issue) bool { return i.Severity == SeverityWarning })
	r.fixable = lo.CountBy(r.issues, func(i Issue) bool { return i.Fixable })
	r.affected = len(lo.Uniq(lo.Map(r.issues, func(i Issue, _ int) string { return i.File })))

	for _, issue := range r.issues {
		if r.perFile[issue.File] != SeverityError {
			r.perFile[issue.File] = issue.Severity
		}
	}
	return r
}

// FilesScanned returns how many files were inspected.
func (r *Report) FilesScanned() int { return len(r.files) }

// Files returns the scanned files in the order the report was built with.
func (r *Report) Files() []string { return slices.Clone(r.files) }

// Issues returns a copy of the issues in reported order.
func (r *Report) Issues() []Issue { return slices.Clone(r.issues) }

// ErrorCount returns the number of error issues.
func (r *Report) ErrorCount() int { return r.errors }

// WarningCount returns the number of warning issues.
func (r *Report) WarningCount() int { return r.warnings }

// FixableCount returns the number of automatically fixable issues.
func (r *Report) FixableCount() int { return r.fixable }

// AffectedFileCount returns the number of distinct files with at least one issue.
func (r *Report) AffectedFileCount() int { return r.affected }

// WorstSeverity returns the most severe issue level for file and whether
// the file has any issue.
func (r *Report) WorstSeverity(file string) (Severity, bool) {
	s, ok := r.perFile[file]
	return s, ok
}
