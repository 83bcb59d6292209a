package install

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubCapabilities struct {
	unit  bool
	behat bool
}

func (s stubCapabilities) HasUnitTests() bool     { return s.unit }
func (s stubCapabilities) HasBehatFeatures() bool { return s.behat }

func TestPlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		caps      stubCapabilities
		includeJS bool
		want      []Kind
	}{
		{
			name: "no tests no js",
			want: []Kind{KindEnvironment, KindPlugin},
		},
		{
			name:      "js only",
			includeJS: true,
			want:      []Kind{KindEnvironment, KindPlugin, KindScriptLint},
		},
		{
			name: "unit tests only",
			caps: stubCapabilities{unit: true},
			want: []Kind{KindEnvironment, KindPlugin, KindDependencies, KindUnitTests},
		},
		{
			name: "behat only",
			caps: stubCapabilities{behat: true},
			want: []Kind{KindEnvironment, KindPlugin, KindDependencies, KindBehat},
		},
		{
			name:      "everything",
			caps:      stubCapabilities{unit: true, behat: true},
			includeJS: true,
			want:      AllKinds(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Plan(tc.caps, tc.includeJS))
		})
	}
}

func TestPlan_OrderingProperties(t *testing.T) {
	t.Parallel()

	for _, unit := range []bool{false, true} {
		for _, behat := range []bool{false, true} {
			for _, js := range []bool{false, true} {
				caps := stubCapabilities{unit: unit, behat: behat}
				name := fmt.Sprintf("unit=%t behat=%t js=%t", unit, behat, js)

				t.Run(name, func(t *testing.T) {
					t.Parallel()
					kinds := Plan(caps, js)

					assert.Equal(t, KindEnvironment, kinds[0])
					assert.Equal(t, KindPlugin, kinds[1])

					assert.Equal(t, unit || behat, slices.Contains(kinds, KindDependencies))
					assert.Equal(t, behat, slices.Contains(kinds, KindBehat))
					assert.Equal(t, unit, slices.Contains(kinds, KindUnitTests))
					assert.Equal(t, js, slices.Contains(kinds, KindScriptLint))

					if dep := slices.Index(kinds, KindDependencies); dep >= 0 {
						if i := slices.Index(kinds, KindBehat); i >= 0 {
							assert.Less(t, dep, i)
						}
						if i := slices.Index(kinds, KindUnitTests); i >= 0 {
							assert.Less(t, dep, i)
						}
					}
					assert.True(t, slices.IsSorted(kinds), "kinds must follow dependency order")
				})
			}
		}
	}
}
