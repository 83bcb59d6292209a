package gate

import (
	"fmt"
	"strings"

	"github.com/mrz1836/moodle-plugin-ci/internal/checker"
)

// progressWidth is the number of file symbols per progress line.
const progressWidth = 60

// Progress symbols.
const (
	SymbolError   = 'E'
	SymbolWarning = 'W'
	SymbolClean   = '.'
)

// Progress renders one symbol per scanned file in path order, wrapped every
// 60 files, each line ending with a running "n / total (pct%)" counter.
func Progress(report *checker.Report) string {
	files := report.Files()
	total := len(files)
	if total == 0 {
		return ""
	}

	digits := len(fmt.Sprint(total))
	var sb strings.Builder
	for i, file := range files {
		sb.WriteRune(symbolFor(report, file))

		done := i + 1
		if done%progressWidth != 0 && done != total {
			continue
		}
		if rem := done % progressWidth; done == total && total > progressWidth && rem != 0 {
			sb.WriteString(strings.Repeat(" ", progressWidth-rem))
		}
		fmt.Fprintf(&sb, " %*d / %d (%d%%)\n", digits, done, total, done*100/total)
	}
	return sb.String()
}

func symbolFor(report *checker.Report, file string) rune {
	severity, ok := report.WorstSeverity(file)
	switch {
	case !ok:
		return SymbolClean
	case severity == checker.SeverityError:
		return SymbolError
	default:
		return SymbolWarning
	}
}

// Summary returns the totals line and, when some issues are fixable, the
// auto-fix note.
func Summary(report *checker.Report) []string {
	if report.ErrorCount() == 0 && report.WarningCount() == 0 {
		return []string{fmt.Sprintf("NO ISSUES FOUND IN %s", plural(report.FilesScanned(), "FILE"))}
	}

	lines := []string{fmt.Sprintf("FOUND %s AND %s AFFECTING %s",
		plural(report.ErrorCount(), "ERROR"),
		plural(report.WarningCount(), "WARNING"),
		plural(report.AffectedFileCount(), "FILE"),
	)}
	if n := report.FixableCount(); n > 0 {
		lines = append(lines, fmt.Sprintf("PHPCBF CAN FIX THE %d MARKED SNIFF %s AUTOMATICALLY", n, pluralWord(n, "VIOLATION")))
	}
	return lines
}

func plural(n int, word string) string {
	return fmt.Sprintf("%d %s", n, pluralWord(n, word))
}

func pluralWord(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "S"
}
