package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mrz1836/moodle-plugin-ci/internal/config"
	"github.com/mrz1836/moodle-plugin-ci/internal/process"
	"github.com/mrz1836/moodle-plugin-ci/internal/testutil"
)

// fakeToolExecutor answers LookPath and version probes from a map.
type fakeToolExecutor struct {
	outputs map[string]string
}

func (f *fakeToolExecutor) LookPath(file string) (string, error) {
	if _, ok := f.outputs[file]; ok {
		return "/usr/bin/" + file, nil
	}
	return "", testutil.ErrMockNotFound
}

func (f *fakeToolExecutor) Run(_ context.Context, name string, _ ...string) (string, error) {
	return f.outputs[name], nil
}

// testDeps never touches the user's home directory: configuration comes
// from defaults only and logs are discarded.
func testDeps(runner process.Runner) deps {
	return deps{
		initLogger: func(_, _ bool) zerolog.Logger { return zerolog.Nop() },
		loadConfig: func(ctx context.Context) (*config.Config, error) {
			return config.LoadFromPath(ctx, "")
		},
		runner:       runner,
		toolExecutor: &fakeToolExecutor{},
	}
}

// execute runs the root command with args and returns everything written
// to stdout and stderr.
func execute(t *testing.T, d deps, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{Version: "test"}, d)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}
