package install

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ciErrors "github.com/mrz1836/moodle-plugin-ci/internal/errors"
	"github.com/mrz1836/moodle-plugin-ci/internal/testutil"
)

func testContext() context.Context {
	logger := zerolog.Nop()
	return logger.WithContext(context.Background())
}

// recordingInstaller appends its kind to a shared log when executed.
type recordingInstaller struct {
	kind Kind
	err  error
	log  *[]Kind
}

func (r *recordingInstaller) Kind() Kind { return r.kind }

func (r *recordingInstaller) Execute(context.Context) error {
	*r.log = append(*r.log, r.kind)
	return r.err
}

func TestCollection_RunsInInsertionOrder(t *testing.T) {
	t.Parallel()

	var executed []Kind
	c := NewCollection()
	for _, kind := range []Kind{KindEnvironment, KindPlugin, KindDependencies, KindUnitTests} {
		c.Add(&recordingInstaller{kind: kind, log: &executed})
	}

	type event struct {
		kind   Kind
		status Status
	}
	var events []event
	c.SetProgressCallback(func(kind Kind, status Status) {
		events = append(events, event{kind, status})
	})

	result, err := c.Run(testContext())
	require.NoError(t, err)

	assert.Equal(t, []Kind{KindEnvironment, KindPlugin, KindDependencies, KindUnitTests}, executed)
	assert.Equal(t, executed, c.Kinds())
	assert.Equal(t, 4, c.Len())
	require.Len(t, result.Steps, 4)
	for _, step := range result.Steps {
		assert.Equal(t, StatusCompleted, step.Status)
	}
	_, failed := result.FailedStep()
	assert.False(t, failed)

	require.Len(t, events, 8)
	assert.Equal(t, event{KindEnvironment, StatusStarting}, events[0])
	assert.Equal(t, event{KindEnvironment, StatusCompleted}, events[1])
	assert.Equal(t, event{KindUnitTests, StatusCompleted}, events[7])
}

func TestCollection_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	for failAt := range 4 {
		t.Run(AllKinds()[failAt].String(), func(t *testing.T) {
			t.Parallel()

			var executed []Kind
			c := NewCollection()
			kinds := []Kind{KindEnvironment, KindPlugin, KindDependencies, KindBehat}
			for i, kind := range kinds {
				installer := &recordingInstaller{kind: kind, log: &executed}
				if i == failAt {
					installer.err = testutil.ErrMockCloneFailed
				}
				c.Add(installer)
			}

			result, err := c.Run(testContext())
			require.Error(t, err)

			assert.Equal(t, kinds[:failAt+1], executed, "nothing after the failed step may run")
			require.Len(t, result.Steps, failAt+1)

			failedKind, ok := result.FailedStep()
			require.True(t, ok)
			assert.Equal(t, kinds[failAt], failedKind)

			var stepErr *StepError
			require.ErrorAs(t, err, &stepErr)
			assert.Equal(t, kinds[failAt], stepErr.Kind)
			require.ErrorIs(t, err, ciErrors.ErrInstallStepFailed)
			require.ErrorIs(t, err, testutil.ErrMockCloneFailed)
			assert.Contains(t, err.Error(), kinds[failAt].String())
		})
	}
}

func TestCollection_CanceledContext(t *testing.T) {
	t.Parallel()

	var executed []Kind
	c := NewCollection()
	c.Add(&recordingInstaller{kind: KindEnvironment, log: &executed})

	ctx, cancel := context.WithCancel(testContext())
	cancel()

	_, err := c.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, executed)
}

func TestCollection_Empty(t *testing.T) {
	t.Parallel()

	result, err := NewCollection().Run(testContext())
	require.NoError(t, err)
	assert.Empty(t, result.Steps)
}

func TestStepError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := ciErrors.ErrCommandTimeout
	err := error(&StepError{Kind: KindBehat, Err: cause})
	assert.True(t, errors.Is(err, ciErrors.ErrInstallStepFailed))
	assert.True(t, errors.Is(err, ciErrors.ErrCommandTimeout))
	assert.Equal(t, `install step "behat" failed: command timeout exceeded`, err.Error())
}
