package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/mrz1836/moodle-plugin-ci/internal/checker"
)

// issueRuleWidth is the width of the separator lines around each file block.
const issueRuleWidth = 70

// IssueTable renders the report's issues grouped per file, in report file order:
//
//	FILE: lib.php
//	----------------------------------------------------------------------
//	FOUND 1 ERROR AND 0 WARNINGS AFFECTING 1 LINE
//	----------------------------------------------------------------------
//	 3 | ERROR   | [x] Missing docblock (moodle.Commenting.MissingDocblock)
//	----------------------------------------------------------------------
//
// Files without issues are omitted. An empty string means nothing to show.
func IssueTable(report *checker.Report) string {
	byFile := lo.GroupBy(report.Issues(), func(i checker.Issue) string { return i.File })
	if len(byFile) == 0 {
		return ""
	}

	rule := strings.Repeat("-", issueRuleWidth)
	var sb strings.Builder
	for _, file := range report.Files() {
		issues, ok := byFile[file]
		if !ok {
			continue
		}

		errs := lo.CountBy(issues, func(i checker.Issue) bool { return i.Severity == checker.SeverityError })
		lines := len(lo.Uniq(lo.Map(issues, func(i checker.Issue, _ int) int { return i.Line })))
		lineWidth := lo.Max(lo.Map(issues, func(i checker.Issue, _ int) int { return len(strconv.Itoa(i.Line)) }))

		fmt.Fprintf(&sb, "\nFILE: %s\n%s\n", StyleBold.Render(file), rule)
		fmt.Fprintf(&sb, "FOUND %d ERROR%s AND %d WARNING%s AFFECTING %d LINE%s\n%s\n",
			errs, suffix(errs), len(issues)-errs, suffix(len(issues)-errs), lines, suffix(lines), rule)

		for _, issue := range issues {
			label := padRight(strings.ToUpper(string(issue.Severity)), len("WARNING"))
			fix := "[ ]"
			if issue.Fixable {
				fix = "[x]"
			}
			msg := issue.Message
			if issue.RuleID != "" {
				msg += " (" + issue.RuleID + ")"
			}
			fmt.Fprintf(&sb, " %s | %s | %s %s\n",
				padLeft(strconv.Itoa(issue.Line), lineWidth),
				SeverityStyle(issue.Severity).Render(label),
				fix, msg)
		}
		sb.WriteString(rule + "\n")
	}
	return sb.String()
}

func suffix(n int) string {
	if n == 1 {
		return ""
	}
	return "S"
}
