package bundled

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreServesBuiltinsTier(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	unit, ok, err := store.Unit(TierBuiltins, "builtins", "v2.0.0")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "builtins", unit.Name)
	assert.NotNil(t, unit.Class("object"))
	assert.NotNil(t, unit.Class("int"))
	assert.NotNil(t, unit.Class("list"))
	assert.NotNil(t, unit.Function("len"))

	compat, ok, err := store.Unit(TierBuiltins, "compat", "v2.0.0")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotNil(t, compat.Class("protocol"))
}

func TestStoreCompatTextFollowsVersion(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	old, ok, err := store.Unit(TierBuiltins, "compat", "v1.9.0")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, old.Alias("text"))
	assert.Equal(t, "bytes", old.Alias("text").Type.String())

	current, ok, err := store.Unit(TierBuiltins, "compat", "v2.1.0")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, current.Alias("text"))
	assert.Equal(t, "str", current.Alias("text").Type.String())
}

func TestStoreTiersAreDistinct(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	_, ok, err := store.Unit(TierStdlib, "builtins", "v2.0.0")
	require.NoError(t, err)
	assert.False(t, ok, "builtins must not leak into the stdlib tier")

	_, ok, err = store.Unit(TierBuiltins, "math", "v2.0.0")
	require.NoError(t, err)
	assert.False(t, ok, "stdlib must not leak into the builtins tier")
}

func TestStoreVersionGating(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	testCases := []struct {
		name       string
		module     string
		version    string
		expectedOK bool
	}{
		{
			name:       "math is unversioned",
			module:     "math",
			version:    "v1.0.0",
			expectedOK: true,
		},
		{
			name:       "dotted name added in v1.3",
			module:     "collections.abc",
			version:    "v1.2.0",
			expectedOK: false,
		},
		{
			name:       "dotted name visible from v1.3",
			module:     "collections.abc",
			version:    "v1.3.0",
			expectedOK: true,
		},
		{
			name:       "module removed in v2 still visible before",
			module:     "strutil",
			version:    "v1.9.0",
			expectedOK: true,
		},
		{
			name:       "module removed in v2 invisible from v2",
			module:     "strutil",
			version:    "v2.0.0",
			expectedOK: false,
		},
		{
			name:       "unknown module",
			module:     "no_such_module",
			version:    "v2.0.0",
			expectedOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			unit, ok, err := store.Unit(TierStdlib, tc.module, tc.version)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedOK, ok)
			if tc.expectedOK {
				assert.Equal(t, tc.module, unit.Name)
			}
		})
	}
}

func TestStoreParsesFreshUnits(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	first, ok, err := store.Unit(TierStdlib, "math", "v2.0.0")
	require.NoError(t, err)
	require.True(t, ok)
	second, ok, err := store.Unit(TierStdlib, "math", "v2.0.0")
	require.NoError(t, err)
	require.True(t, ok)

	assert.NotSame(t, first, second, "callers own independent trees")
}
