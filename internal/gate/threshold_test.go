package gate

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/moodle-plugin-ci/internal/checker"
	ciErrors "github.com/mrz1836/moodle-plugin-ci/internal/errors"
)

func reportWith(errors, warnings, fixable int) *checker.Report {
	var issues []checker.Issue
	for i := range errors {
		issues = append(issues, checker.Issue{File: fmt.Sprintf("e%d.php", i), Severity: checker.SeverityError, Fixable: i < fixable})
	}
	for i := range warnings {
		issues = append(issues, checker.Issue{File: "w.php", Severity: checker.SeverityWarning, Fixable: errors+i < fixable})
	}
	return checker.NewReport([]string{"a.php"}, issues)
}

func mustMax(t *testing.T, n int) Threshold {
	t.Helper()
	th, err := MaxWarnings(n)
	require.NoError(t, err)
	return th
}

func TestThreshold_WarningScenarios(t *testing.T) {
	t.Parallel()

	report := reportWith(0, 2, 0)

	tests := []struct {
		name      string
		threshold Threshold
		wantExit  int
	}{
		{name: "unset", threshold: Unlimited(), wantExit: 0},
		{name: "zero", threshold: mustMax(t, 0), wantExit: 1},
		{name: "one", threshold: mustMax(t, 1), wantExit: 1},
		{name: "equal is inclusive", threshold: mustMax(t, 2), wantExit: 0},
		{name: "above", threshold: mustMax(t, 3), wantExit: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantExit, tc.threshold.Evaluate(report).ExitCode())
		})
	}
}

func TestThreshold_ErrorsAlwaysFail(t *testing.T) {
	t.Parallel()

	report := reportWith(8, 1, 3)
	for _, th := range []Threshold{Unlimited(), mustMax(t, 0), mustMax(t, 1), mustMax(t, 1000)} {
		assert.Equal(t, VerdictFail, th.Evaluate(report), "threshold %s", th)
		assert.Equal(t, 1, th.Evaluate(report).ExitCode())
	}
}

func TestThreshold_Deterministic(t *testing.T) {
	t.Parallel()

	report := reportWith(0, 5, 0)
	th := mustMax(t, 4)
	first := th.Evaluate(report)
	for range 10 {
		assert.Equal(t, first, th.Evaluate(report))
	}
}

func TestMaxWarnings_Negative(t *testing.T) {
	t.Parallel()

	_, err := MaxWarnings(-1)
	require.ErrorIs(t, err, ciErrors.ErrInvalidArgument)

	neg := -5
	_, err = ThresholdFrom(&neg)
	require.ErrorIs(t, err, ciErrors.ErrInvalidArgument)
}

func TestThreshold_Accessors(t *testing.T) {
	t.Parallel()

	th, err := ThresholdFrom(nil)
	require.NoError(t, err)
	_, set := th.Limit()
	assert.False(t, set)
	assert.Equal(t, "unlimited", th.String())
	assert.Equal(t, Unlimited(), Threshold{})

	two := 2
	th, err = ThresholdFrom(&two)
	require.NoError(t, err)
	limit, set := th.Limit()
	assert.True(t, set)
	assert.Equal(t, 2, limit)
	assert.Equal(t, "2", th.String())

	data, err := json.Marshal(map[string]Threshold{"unset": Unlimited(), "set": th})
	require.NoError(t, err)
	assert.JSONEq(t, `{"unset": null, "set": 2}`, string(data))
}
