package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/moodle-plugin-ci/internal/checker"
)

func TestIssueTable(t *testing.T) {
	t.Parallel()

	report := checker.NewReport(
		[]string{"a.php", "b.php", "lib.php"},
		[]checker.Issue{
			{File: "lib.php", Line: 3, Severity: checker.SeverityError, Fixable: true, RuleID: "moodle.Files.BoilerplateComment", Message: "Missing boilerplate"},
			{File: "lib.php", Line: 12, Severity: checker.SeverityWarning, Message: "Line exceeds 132 characters"},
			{File: "a.php", Line: 1, Severity: checker.SeverityWarning, Message: "Inline comment"},
		},
	)

	out := IssueTable(report)

	assert.NotContains(t, out, "FILE: b.php")
	assert.Less(t, strings.Index(out, "FILE: a.php"), strings.Index(out, "FILE: lib.php"))
	assert.Contains(t, out, "FOUND 0 ERRORS AND 1 WARNING AFFECTING 1 LINE\n")
	assert.Contains(t, out, "FOUND 1 ERROR AND 1 WARNING AFFECTING 2 LINES\n")
	assert.Contains(t, out, " 3 | ERROR   | [x] Missing boilerplate (moodle.Files.BoilerplateComment)\n")
	assert.Contains(t, out, " 12 | WARNING | [ ] Line exceeds 132 characters\n")
}

func TestIssueTable_NoIssues(t *testing.T) {
	t.Parallel()

	assert.Empty(t, IssueTable(checker.NewReport([]string{"a.php"}, nil)))
}

func TestPadRight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"ab", 4, "ab  "},
		{"abcdef", 3, "abc"},
		{"日本", 5, "日本 "},
		{"", 2, "  "},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, padRight(tc.in, tc.width), tc.in)
	}
	assert.Equal(t, "  7", padLeft("7", 3))
}
