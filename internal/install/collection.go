package install

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	ciErrors "github.com/mrz1836/moodle-plugin-ci/internal/errors"
)

// Status reports a step's progress to the progress callback.
type Status string

// Step statuses.
const (
	StatusStarting  Status = "starting"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ProgressFunc receives step transitions while a collection runs.
type ProgressFunc func(kind Kind, status Status)

// StepResult records one executed step.
type StepResult struct {
	Kind       Kind   `json:"kind"`
	Status     Status `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// RunResult records what a collection run did. Steps after a failure never
// appear: they did not run.
type RunResult struct {
	Steps      []StepResult `json:"steps"`
	DurationMs int64        `json:"duration_ms"`
}

// FailedStep returns the kind of the step that failed, if any.
func (r *RunResult) FailedStep() (Kind, bool) {
	for _, step := range r.Steps {
		if step.Status == StatusFailed {
			return step.Kind, true
		}
	}
	return 0, false
}

// StepError reports which installer failed. It matches both
// ErrInstallStepFailed and the underlying cause with errors.Is.
type StepError struct {
	Kind Kind
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("install step %q failed: %v", e.Kind.String(), e.Err)
}

// Unwrap exposes the sentinel and the cause.
func (e *StepError) Unwrap() []error {
	return []error{ciErrors.ErrInstallStepFailed, e.Err}
}

// Collection is an ordered sequence of installers.
type Collection struct {
	installers []Installer
	progress   ProgressFunc
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add appends an installer.
func (c *Collection) Add(installer Installer) {
	c.installers = append(c.installers, installer)
}

// Len returns the number of installers.
func (c *Collection) Len() int {
	return len(c.installers)
}

// Kinds returns the kinds in execution order.
func (c *Collection) Kinds() []Kind {
	kinds := make([]Kind, len(c.installers))
	for i, installer := range c.installers {
		kinds[i] = installer.Kind()
	}
	return kinds
}

// SetProgressCallback registers fn to receive step transitions.
func (c *Collection) SetProgressCallback(fn ProgressFunc) {
	c.progress = fn
}

// Run executes the installers in insertion order. The first failure stops
// the run: later installers never execute and nothing is undone. The
// returned error is a *StepError naming the failed step.
func (c *Collection) Run(ctx context.Context) (*RunResult, error) {
	log := zerolog.Ctx(ctx)
	result := &RunResult{Steps: make([]StepResult, 0, len(c.installers))}
	start := time.Now()
	defer func() { result.DurationMs = time.Since(start).Milliseconds() }()

	for _, installer := range c.installers {
		kind := installer.Kind()
		c.notify(kind, StatusStarting)
		log.Info().Str("step", kind.String()).Msg("install step starting")

		stepStart := time.Now()
		err := ctx.Err()
		if err == nil {
			err = installer.Execute(ctx)
		}
		step := StepResult{Kind: kind, DurationMs: time.Since(stepStart).Milliseconds()}

		if err != nil {
			step.Status = StatusFailed
			step.Error = err.Error()
			result.Steps = append(result.Steps, step)
			c.notify(kind, StatusFailed)

			log.Error().
				Err(err).
				Str("step", kind.String()).
				Msg("install step failed, aborting remaining steps")
			return result, &StepError{Kind: kind, Err: err}
		}

		step.Status = StatusCompleted
		result.Steps = append(result.Steps, step)
		c.notify(kind, StatusCompleted)
		log.Info().
			Str("step", kind.String()).
			Int64("duration_ms", step.DurationMs).
			Msg("install step completed")
	}

	return result, nil
}

func (c *Collection) notify(kind Kind, status Status) {
	if c.progress != nil {
		c.progress(kind, status)
	}
}
