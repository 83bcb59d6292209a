package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	ciErrors "github.com/mrz1836/moodle-plugin-ci/internal/errors"
	"github.com/mrz1836/moodle-plugin-ci/internal/process"
)

// Response is the canned outcome of one fake command.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
	Delay    time.Duration
}

// FakeRunner implements process.Runner with responses keyed by the raw
// command line ("name arg1 arg2"). Unconfigured commands fail with
// ErrCommandNotConfigured unless a fallback is set.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]Response
	fallback  *Response
	calls     []process.Command
}

// NewFakeRunner creates an empty fake runner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]Response)}
}

// On configures the response for a command line.
func (f *FakeRunner) On(commandLine string, resp Response) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[commandLine] = resp
	return f
}

// Fallback configures the response for every command without its own entry.
func (f *FakeRunner) Fallback(resp Response) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fallback = &resp
	return f
}

// Calls returns the commands received so far, in order.
func (f *FakeRunner) Calls() []process.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]process.Command, len(f.calls))
	copy(out, f.calls)
	return out
}

// CommandLines returns the received commands rendered as raw command lines.
func (f *FakeRunner) CommandLines() []string {
	calls := f.Calls()
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, CommandLine(c))
	}
	return out
}

// Run implements process.Runner.
func (f *FakeRunner) Run(ctx context.Context, cmd process.Command) (stdout, stderr string, exitCode int, err error) {
	key := CommandLine(cmd)

	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	resp, ok := f.responses[key]
	if !ok && f.fallback != nil {
		resp, ok = *f.fallback, true
	}
	f.mu.Unlock()

	if !ok {
		return "", "command not configured: " + key, 1, ciErrors.ErrCommandNotConfigured
	}

	if resp.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", "context canceled", 1, ctx.Err()
		case <-time.After(resp.Delay):
		}
	}

	return resp.Stdout, resp.Stderr, resp.ExitCode, resp.Err
}

// CommandLine joins a command's name and arguments with single spaces.
func CommandLine(cmd process.Command) string {
	return strings.TrimSpace(cmd.Name + " " + strings.Join(cmd.Args, " "))
}

var _ process.Runner = (*FakeRunner)(nil)
