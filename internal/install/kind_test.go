package install

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_Names(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind    Kind
		id      string
		heading string
	}{
		{KindEnvironment, "environment", "Environment"},
		{KindPlugin, "plugin", "Plugin"},
		{KindDependencies, "dependencies", "Dependencies"},
		{KindBehat, "behat", "Behat"},
		{KindUnitTests, "unit-tests", "Unit Tests"},
		{KindScriptLint, "script-lint", "Script Lint"},
		{Kind(42), "unknown", "Unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.id, tc.kind.String())
			assert.Equal(t, tc.heading, tc.kind.Heading())
		})
	}
}

func TestKind_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal([]Kind{KindEnvironment, KindUnitTests})
	require.NoError(t, err)
	assert.JSONEq(t, `["environment","unit-tests"]`, string(data))
}

func TestAllKinds(t *testing.T) {
	t.Parallel()
	assert.Len(t, AllKinds(), 6)
	for i, k := range AllKinds() {
		assert.Equal(t, Kind(i), k)
	}
}
