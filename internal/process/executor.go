package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/moodle-plugin-ci/internal/constants"
	ciErrors "github.com/mrz1836/moodle-plugin-ci/internal/errors"
)

// Executor runs commands with a timeout, structured logging and a uniform
// success/failure contract. Each call blocks until the process exits.
type Executor struct {
	runner     Runner
	timeout    time.Duration
	liveOutput io.Writer
}

// NewExecutor creates an executor with the default runner.
func NewExecutor(timeout time.Duration) *Executor {
	return NewExecutorWithRunner(timeout, &DefaultRunner{})
}

// NewExecutorWithRunner creates an executor with a custom runner (for testing).
func NewExecutorWithRunner(timeout time.Duration, runner Runner) *Executor {
	if timeout <= 0 {
		timeout = constants.DefaultCommandTimeout
	}
	return &Executor{
		runner:  runner,
		timeout: timeout,
	}
}

// SetLiveOutput streams command output to w as it is produced.
func (e *Executor) SetLiveOutput(w io.Writer) {
	e.liveOutput = w
}

// Timeout returns the per-command timeout.
func (e *Executor) Timeout() time.Duration {
	return e.timeout
}

// Run executes cmd. A non-zero exit status is reported as ErrCommandFailed.
func (e *Executor) Run(ctx context.Context, cmd Command) (*Result, error) {
	return e.RunWithTimeout(ctx, cmd, e.timeout, 0)
}

// RunAllowingExitCodes executes cmd and treats any of the given exit codes
// as success. Checkers use exit codes to signal that issues were found.
func (e *Executor) RunAllowingExitCodes(ctx context.Context, cmd Command, allowed ...int) (*Result, error) {
	return e.RunWithTimeout(ctx, cmd, e.timeout, allowed...)
}

// RunWithTimeout executes cmd with an explicit timeout and accepted exit codes
// (zero is always accepted).
func (e *Executor) RunWithTimeout(ctx context.Context, cmd Command, timeout time.Duration, allowed ...int) (*Result, error) {
	log := zerolog.Ctx(ctx)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if timeout <= 0 {
		timeout = e.timeout
	}

	command := cmd.String()
	log.Info().
		Str("command", command).
		Str("work_dir", cmd.Dir).
		Msg("executing command")

	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	startTime := time.Now()
	stdout, stderr, exitCode, runErr := e.execute(cmdCtx, cmd)
	completedAt := time.Now()
	duration := completedAt.Sub(startTime)

	result := &Result{
		Command:     command,
		ExitCode:    exitCode,
		Stdout:      stdout,
		Stderr:      stderr,
		DurationMs:  duration.Milliseconds(),
		StartedAt:   startTime,
		CompletedAt: completedAt,
	}

	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
		result.Error = "command timed out"
		log.Error().
			Str("command", command).
			Dur("duration_ms", duration).
			Str("stderr", result.Stderr).
			Msg("command timed out")
		return result, fmt.Errorf("%w: %s", ciErrors.ErrCommandTimeout, command)
	}

	if ctx.Err() != nil {
		result.Error = "context canceled"
		return result, ctx.Err()
	}

	accepted := exitCode == 0 || slices.Contains(allowed, exitCode)
	var exitErr interface{ ExitCode() int }
	if runErr != nil && !errors.As(runErr, &exitErr) {
		// The process never ran (missing binary, bad working directory).
		accepted = false
	}

	if !accepted {
		if runErr != nil {
			result.Error = runErr.Error()
		} else {
			result.Error = fmt.Sprintf("exit code %d", exitCode)
		}

		log.Error().
			Str("command", command).
			Int("exit_code", exitCode).
			Dur("duration_ms", duration).
			Str("stderr", result.Stderr).
			Msg("command failed")

		return result, fmt.Errorf("%w: %s (exit code %d)", ciErrors.ErrCommandFailed, command, exitCode)
	}

	result.Success = true
	log.Info().
		Str("command", command).
		Int("exit_code", exitCode).
		Dur("duration_ms", duration).
		Msg("command completed")

	return result, nil
}

func (e *Executor) execute(ctx context.Context, cmd Command) (stdout, stderr string, exitCode int, err error) {
	if e.liveOutput != nil {
		if liveRunner, ok := e.runner.(LiveOutputRunner); ok {
			return liveRunner.RunWithLiveOutput(ctx, cmd, e.liveOutput)
		}
	}
	return e.runner.Run(ctx, cmd)
}
