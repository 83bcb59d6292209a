package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/moodle-plugin-ci/internal/errors"
	"github.com/mrz1836/moodle-plugin-ci/internal/gate"
	"github.com/mrz1836/moodle-plugin-ci/internal/testutil"
)

// twoWarnings is phpcs output with two warnings in one of two files.
const twoWarnings = `{
  "totals": {"errors": 0, "warnings": 2, "fixable": 1},
  "files": {
    "/p/lib.php": {
      "errors": 0, "warnings": 2,
      "messages": [
        {"message": "Line exceeds 132 characters", "source": "moodle.Files.LineLength.TooLong", "severity": 5, "fixable": false, "type": "WARNING", "line": 4, "column": 133},
        {"message": "Inline comments must end in full-stops", "source": "moodle.Commenting.InlineComment.InvalidEndChar", "severity": 5, "fixable": true, "type": "WARNING", "line": 9, "column": 5}
      ]
    },
    "/p/version.php": {"errors": 0, "warnings": 0, "messages": []}
  }
}`

const oneError = `{
  "totals": {"errors": 1, "warnings": 0, "fixable": 0},
  "files": {
    "/p/lib.php": {
      "errors": 1, "warnings": 0,
      "messages": [
        {"message": "Missing docblock", "source": "moodle.Commenting.MissingDocblock.Function", "severity": 5, "fixable": false, "type": "ERROR", "line": 10, "column": 1}
      ]
    }
  }
}`

func phpcsRunner(stdout string, exitCode int) *testutil.FakeRunner {
	return testutil.NewFakeRunner().Fallback(testutil.Response{Stdout: stdout, ExitCode: exitCode})
}

func TestCodeChecker_Tolerance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		output   string
		exitCode int
		args     []string
		wantExit int
	}{
		{"warnings without tolerance pass", twoWarnings, 1, nil, ExitSuccess},
		{"warnings at tolerance pass", twoWarnings, 1, []string{"--max-warnings", "2"}, ExitSuccess},
		{"warnings under tolerance pass", twoWarnings, 1, []string{"--max-warnings", "3"}, ExitSuccess},
		{"warnings over tolerance fail", twoWarnings, 1, []string{"--max-warnings", "1"}, ExitError},
		{"zero tolerance fails on warnings", twoWarnings, 1, []string{"--max-warnings", "0"}, ExitError},
		{"errors always fail", oneError, 1, []string{"--max-warnings", "100"}, ExitError},
		{"errors fail without tolerance", oneError, 1, nil, ExitError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := testutil.WritePlugin(t, "local_ci", map[string]string{"lib.php": "<?php\n"})
			args := append([]string{"codechecker", dir}, tc.args...)

			out, err := execute(t, testDeps(phpcsRunner(tc.output, tc.exitCode)), args...)
			assert.Equal(t, tc.wantExit, ExitCodeForError(err))
			assert.Contains(t, out, "RUN  Moodle CodeSniffer standard on local_ci")
			assert.Contains(t, out, "Time:")
			if tc.wantExit == ExitError {
				require.ErrorIs(t, err, errors.ErrQualityGateFailed)
				assert.True(t, isSilent(err))
			}
		})
	}
}

func TestCodeChecker_TextOutput(t *testing.T) {
	t.Parallel()

	dir := testutil.WritePlugin(t, "local_ci", map[string]string{"lib.php": "<?php\n"})
	runner := phpcsRunner(twoWarnings, 2)

	out, err := execute(t, testDeps(runner), "codechecker", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "W. 2 / 2 (100%)")
	assert.Contains(t, out, "FILE: /p/lib.php")
	assert.Contains(t, out, "FOUND 0 ERRORS AND 2 WARNINGS AFFECTING 1 FILE")
	assert.Contains(t, out, "PHPCBF CAN FIX THE 1 MARKED SNIFF VIOLATION AUTOMATICALLY")

	lines := runner.CommandLines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "phpcs -q --report=json --standard=moodle ")
	assert.Contains(t, lines[0], "lib.php")
	assert.Contains(t, lines[0], "version.php")
}

func TestCodeChecker_StandardFlag(t *testing.T) {
	t.Parallel()

	dir := testutil.WritePlugin(t, "local_ci", nil)
	runner := phpcsRunner(`{"files": {}}`, 0)

	_, err := execute(t, testDeps(runner), "codechecker", dir, "--standard", "PSR12")
	require.NoError(t, err)
	require.Len(t, runner.CommandLines(), 1)
	assert.Contains(t, runner.CommandLines()[0], "--standard=PSR12")
}

func TestCodeChecker_FreePass(t *testing.T) {
	t.Parallel()

	dir := testutil.WritePlugin(t, "local_ci", map[string]string{
		".moodle-plugin-ci.yml": "filter-codechecker:\n  notNames: ['*.php']\n",
		"lib.php":               "<?php\n",
	})
	runner := testutil.NewFakeRunner()

	out, err := execute(t, testDeps(runner), "codechecker", dir, "--max-warnings", "0")
	require.NoError(t, err)
	assert.Contains(t, out, gate.FreePassMessage)
	assert.Empty(t, runner.Calls(), "checker must not run")
}

func TestCodeChecker_NegativeMaxWarnings(t *testing.T) {
	t.Parallel()

	dir := testutil.WritePlugin(t, "local_ci", map[string]string{"lib.php": "<?php\n"})
	runner := testutil.NewFakeRunner()

	_, err := execute(t, testDeps(runner), "codechecker", dir, "--max-warnings", "-1")
	require.ErrorIs(t, err, errors.ErrInvalidArgument)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
	assert.Empty(t, runner.Calls())
}

func TestCodeChecker_InvalidPluginDir(t *testing.T) {
	t.Parallel()

	_, err := execute(t, testDeps(testutil.NewFakeRunner()), "codechecker", t.TempDir())
	require.ErrorIs(t, err, errors.ErrInvalidPluginDir)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestCodeChecker_PluginSubdirectoryRejected(t *testing.T) {
	t.Parallel()

	dir := testutil.WritePlugin(t, "local_ci", map[string]string{"tests/behat/login.feature": "Feature: x"})
	runner := testutil.NewFakeRunner()

	_, err := execute(t, testDeps(runner), "codechecker", filepath.Join(dir, "tests", "behat"))
	require.ErrorIs(t, err, errors.ErrInvalidPluginDir)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
	assert.Empty(t, runner.Calls())
}

func TestCodeChecker_MissingArgument(t *testing.T) {
	t.Parallel()

	_, err := execute(t, testDeps(testutil.NewFakeRunner()), "codechecker")
	require.Error(t, err)
	assert.True(t, errors.IsExitCode2Error(err))
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestCodeChecker_UnknownFlag(t *testing.T) {
	t.Parallel()

	dir := testutil.WritePlugin(t, "local_ci", nil)
	_, err := execute(t, testDeps(testutil.NewFakeRunner()), "codechecker", dir, "--bogus")
	require.Error(t, err)
	assert.True(t, errors.IsExitCode2Error(err))
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestCodeChecker_CheckerStderrIsNotInputError(t *testing.T) {
	t.Parallel()

	dir := testutil.WritePlugin(t, "local_ci", map[string]string{"lib.php": "<?php\n"})
	runner := testutil.NewFakeRunner().Fallback(testutil.Response{ExitCode: 3, Stderr: "ERROR: invalid argument for the report width"})

	_, err := execute(t, testDeps(runner), "codechecker", dir)
	require.ErrorIs(t, err, errors.ErrCheckerFailed)
	assert.Contains(t, err.Error(), "invalid argument")
	assert.Equal(t, ExitError, ExitCodeForError(err))
}

func TestCodeChecker_CheckerFailure(t *testing.T) {
	t.Parallel()

	dir := testutil.WritePlugin(t, "local_ci", map[string]string{"lib.php": "<?php\n"})
	runner := testutil.NewFakeRunner().Fallback(testutil.Response{ExitCode: 3, Stderr: "ERROR: the \"moodle\" coding standard is not installed"})

	out, err := execute(t, testDeps(runner), "codechecker", dir)
	require.ErrorIs(t, err, errors.ErrCheckerFailed)
	assert.Equal(t, ExitError, ExitCodeForError(err))
	assert.Contains(t, out, "coding standard is not installed")
}

func TestCodeChecker_JSONOutput(t *testing.T) {
	t.Parallel()

	dir := testutil.WritePlugin(t, "local_ci", map[string]string{"lib.php": "<?php\n"})

	out, err := execute(t, testDeps(phpcsRunner(twoWarnings, 1)), "codechecker", dir, "--output", "json", "--max-warnings", "1")
	require.ErrorIs(t, err, errors.ErrQualityGateFailed)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "local_ci", got["component"])
	assert.Equal(t, "fail", got["verdict"])
	assert.InDelta(t, 1, got["exit_code"], 0)
	assert.InDelta(t, 1, got["max_warnings"], 0)
	assert.InDelta(t, 2, got["files_scanned"], 0)
	assert.InDelta(t, 2, got["warnings"], 0)
	assert.InDelta(t, 0, got["errors"], 0)
	assert.Equal(t, false, got["free_pass"])
	assert.Len(t, got["issues"], 2)
}

func TestCodeChecker_JSONOutputUnlimited(t *testing.T) {
	t.Parallel()

	dir := testutil.WritePlugin(t, "local_ci", map[string]string{"lib.php": "<?php\n"})

	out, err := execute(t, testDeps(phpcsRunner(twoWarnings, 1)), "codechecker", dir, "-o", "json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "pass", got["verdict"])
	assert.Nil(t, got["max_warnings"])
}
