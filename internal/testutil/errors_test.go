package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockErrors(t *testing.T) {
	t.Parallel()

	all := []error{ErrMockCloneFailed, ErrMockNotFound, ErrMockNetwork, ErrMockExit}
	for i, a := range all {
		assert.NotEmpty(t, a.Error())
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}
