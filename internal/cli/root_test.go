package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/moodle-plugin-ci/internal/errors"
	"github.com/mrz1836/moodle-plugin-ci/internal/install"
	"github.com/mrz1836/moodle-plugin-ci/internal/testutil"
)

func TestRootCmd_Help(t *testing.T) {
	t.Parallel()

	out, err := execute(t, testDeps(testutil.NewFakeRunner()), "--help")
	require.NoError(t, err)

	for _, want := range []string{"moodle-plugin-ci", "install", "codechecker", "tools", "--output", "--verbose", "--quiet", "--version"} {
		assert.Contains(t, out, want)
	}
}

func TestRootCmd_Version(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		info           BuildInfo
		expectContains []string
	}{
		{
			name:           "full version info",
			info:           BuildInfo{Version: "1.0.0", Commit: "abc1234", Date: "2026-01-01"},
			expectContains: []string{"1.0.0", "abc1234", "2026-01-01"},
		},
		{
			name:           "default dev version",
			info:           BuildInfo{},
			expectContains: []string{"dev", "none", "unknown"},
		},
		{
			name:           "partial version info",
			info:           BuildInfo{Version: "2.0.0-beta"},
			expectContains: []string{"2.0.0-beta", "none", "unknown"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cmd := newRootCmd(&GlobalFlags{}, tc.info, testDeps(testutil.NewFakeRunner()))
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs([]string{"--version"})

			require.NoError(t, cmd.ExecuteContext(context.Background()))
			for _, expected := range tc.expectContains {
				assert.Contains(t, buf.String(), expected)
			}
		})
	}
}

func TestRootCmd_InvalidOutputFormat(t *testing.T) {
	t.Parallel()

	_, err := execute(t, testDeps(testutil.NewFakeRunner()), "tools", "--output", "yaml")
	require.ErrorIs(t, err, errors.ErrInvalidOutputFormat)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRootCmd_VerboseAndQuietConflict(t *testing.T) {
	t.Parallel()

	_, err := execute(t, testDeps(testutil.NewFakeRunner()), "tools", "--verbose", "--quiet")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestExitCodeForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"exit code 2 wrapper", errors.NewExitCode2Error(fmt.Errorf("bad")), ExitInvalidInput}, //nolint:err113 // test error
		{"invalid plugin dir", fmt.Errorf("x: %w", errors.ErrInvalidPluginDir), ExitInvalidInput},
		{"lock held", errors.ErrLockHeld, ExitInvalidInput},
		{"cobra unknown flag", fmt.Errorf("unknown flag: --nope"), ExitInvalidInput}, //nolint:err113 // test error
		{"gate failure", reported(errors.ErrQualityGateFailed), ExitError},
		{"checker failure", errors.ErrCheckerFailed, ExitError},
		{
			"checker stderr mentioning an invalid argument",
			fmt.Errorf("%w: %w: ERROR: invalid argument for the report width", errors.ErrCheckerFailed, errors.ErrCommandFailed),
			ExitError,
		},
		{"command timeout mentioning an unknown command", fmt.Errorf("%w: unknown command", errors.ErrCommandTimeout), ExitError},
		{
			"step failure wrapping a config sentinel",
			&install.StepError{Kind: install.KindPlugin, Err: errors.ErrInvalidPluginDir},
			ExitError,
		},
		{"step failure", &install.StepError{Kind: install.KindEnvironment, Err: errors.ErrCommandFailed}, ExitError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ExitCodeForError(tc.err))
		})
	}
}

func TestReportedError(t *testing.T) {
	t.Parallel()

	err := reported(fmt.Errorf("wrap: %w", errors.ErrQualityGateFailed))
	assert.True(t, isSilent(err))
	require.ErrorIs(t, err, errors.ErrQualityGateFailed)
	assert.Equal(t, "wrap: quality gate failed", err.Error())

	assert.NoError(t, reported(nil))
	assert.False(t, isSilent(errors.ErrCheckerFailed))
}

func TestIsValidOutputFormat(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidOutputFormat("text"))
	assert.True(t, IsValidOutputFormat("json"))
	assert.False(t, IsValidOutputFormat("yaml"))
	assert.False(t, IsValidOutputFormat(""))
}

func TestPrintError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printError(&buf, fmt.Errorf("/tmp/x: %w", errors.ErrInvalidPluginDir))
	assert.Contains(t, buf.String(), "Error: /tmp/x: ")
	assert.Contains(t, buf.String(), "not a plugin root")

	buf.Reset()
	printError(&buf, fmt.Errorf("unknown flag: --bogus")) //nolint:err113 // test error
	assert.Equal(t, "Error: unknown flag: --bogus\n", buf.String())
}
