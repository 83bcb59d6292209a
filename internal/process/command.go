// Package process runs the external tools this system delegates to: source
// control, database clients, dependency installers, test framework
// initializers and the code checker.
//
// Commands are executed directly (no shell) from argument vectors built by
// the installers and the checker; nothing here interprets user-supplied
// shell syntax.
package process

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mrz1836/moodle-plugin-ci/internal/logging"
)

// Command describes one external process invocation.
type Command struct {
	// Name is the executable, resolved through PATH.
	Name string
	// Args are passed verbatim.
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env holds extra KEY=VALUE pairs appended to the inherited environment.
	Env []string
}

// String renders the command line for logs with credentials redacted.
func (c Command) String() string {
	parts := append([]string{c.Name}, c.Args...)
	return strings.Join(logging.SafeArgs(parts), " ")
}

// Runner defines the interface for executing commands.
// This allows for testing by injecting fake implementations.
type Runner interface {
	// Run executes a command and returns its captured output.
	Run(ctx context.Context, cmd Command) (stdout, stderr string, exitCode int, err error)
}

// LiveOutputRunner defines a runner that can stream output while capturing it.
type LiveOutputRunner interface {
	Runner
	// RunWithLiveOutput executes a command and streams output to liveOut.
	RunWithLiveOutput(ctx context.Context, cmd Command, liveOut io.Writer) (stdout, stderr string, exitCode int, err error)
}

// DefaultRunner implements Runner and LiveOutputRunner using os/exec.
type DefaultRunner struct{}

// Run executes the command.
func (r *DefaultRunner) Run(ctx context.Context, cmd Command) (stdout, stderr string, exitCode int, err error) {
	return r.run(ctx, cmd, nil)
}

// RunWithLiveOutput executes the command and streams output to liveOut while capturing it.
func (r *DefaultRunner) RunWithLiveOutput(ctx context.Context, cmd Command, liveOut io.Writer) (stdout, stderr string, exitCode int, err error) {
	return r.run(ctx, cmd, liveOut)
}

func (r *DefaultRunner) run(ctx context.Context, c Command, liveOut io.Writer) (stdout, stderr string, exitCode int, err error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...) //#nosec G204 -- argv built internally by installers and the checker
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	var outBuf, errBuf bytes.Buffer
	if liveOut != nil {
		cmd.Stdout = io.MultiWriter(&outBuf, liveOut)
		cmd.Stderr = io.MultiWriter(&errBuf, liveOut)
	} else {
		cmd.Stdout = &outBuf
		cmd.Stderr = &errBuf
	}

	err = cmd.Run()
	stdout = outBuf.String()
	stderr = errBuf.String()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = 1
		}
	}

	return stdout, stderr, exitCode, err
}

var (
	_ Runner           = (*DefaultRunner)(nil)
	_ LiveOutputRunner = (*DefaultRunner)(nil)
)
