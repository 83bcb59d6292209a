package gate

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/moodle-plugin-ci/internal/checker"
)

func TestProgress_SingleLine(t *testing.T) {
	t.Parallel()

	files := []string{"a.php", "b.php", "c.php", "d.php", "e.php", "f.php", "g.php", "h.php"}
	report := checker.NewReport(files, []checker.Issue{
		{File: "a.php", Severity: checker.SeverityError},
		{File: "a.php", Severity: checker.SeverityWarning},
		{File: "c.php", Severity: checker.SeverityWarning},
	})

	assert.Equal(t, "E.W..... 8 / 8 (100%)\n", Progress(report))
}

func TestProgress_Clean(t *testing.T) {
	t.Parallel()

	files := []string{"1", "2", "3", "4", "5", "6", "7"}
	assert.Equal(t, "....... 7 / 7 (100%)\n", Progress(checker.NewReport(files, nil)))
	assert.Empty(t, Progress(checker.NewReport(nil, nil)))
}

func TestProgress_Wraps(t *testing.T) {
	t.Parallel()

	files := make([]string, 130)
	for i := range files {
		files[i] = fmt.Sprintf("f%03d.php", i)
	}
	out := Progress(checker.NewReport(files, nil))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	assert.Len(t, lines, 3)
	assert.Equal(t, strings.Repeat(".", 60)+"  60 / 130 (46%)", lines[0])
	assert.Equal(t, strings.Repeat(".", 60)+" 120 / 130 (92%)", lines[1])
	assert.Equal(t, strings.Repeat(".", 10)+strings.Repeat(" ", 50)+" 130 / 130 (100%)", lines[2])
}

func TestSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		report *checker.Report
		want   []string
	}{
		{
			name:   "errors with fixable",
			report: reportWith(8, 1, 3),
			want: []string{
				"FOUND 8 ERRORS AND 1 WARNING AFFECTING 9 FILES",
				"PHPCBF CAN FIX THE 3 MARKED SNIFF VIOLATIONS AUTOMATICALLY",
			},
		},
		{
			name:   "single warning not fixable",
			report: reportWith(0, 1, 0),
			want:   []string{"FOUND 0 ERRORS AND 1 WARNING AFFECTING 1 FILE"},
		},
		{
			name:   "one fixable",
			report: reportWith(1, 0, 1),
			want: []string{
				"FOUND 1 ERROR AND 0 WARNINGS AFFECTING 1 FILE",
				"PHPCBF CAN FIX THE 1 MARKED SNIFF VIOLATION AUTOMATICALLY",
			},
		},
		{
			name:   "clean",
			report: checker.NewReport([]string{"a.php", "b.php"}, nil),
			want:   []string{"NO ISSUES FOUND IN 2 FILES"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Summary(tc.report))
		})
	}
}
