package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefineAndGet(t *testing.T) {
	env := New()
	env.Define("a", 1.0)

	v, err := env.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestGetUndefinedReturnsError(t *testing.T) {
	env := New()
	_, err := env.Get("missing")
	require.Error(t, err)
	assert.Equal(t, "Undefined variable 'missing'.", err.Error())
}

func TestGetWalksEnclosingScopes(t *testing.T) {
	outer := New()
	outer.Define("a", 1.0)
	inner := NewEnclosed(outer)

	v, err := inner.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestInnerShadowsOuter(t *testing.T) {
	outer := New()
	outer.Define("a", 1.0)
	inner := NewEnclosed(outer)
	inner.Define("a", 2.0)

	v, err := inner.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	outerV, err := outer.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, outerV)
}

func TestAssignUpdatesExistingBinding(t *testing.T) {
	env := New()
	env.Define("a", 1.0)
	require.NoError(t, env.Assign("a", 2.0))

	v, _ := env.Get("a")
	assert.Equal(t, 2.0, v)
}

func TestAssignWalksEnclosingScopes(t *testing.T) {
	outer := New()
	outer.Define("a", 1.0)
	inner := NewEnclosed(outer)

	require.NoError(t, inner.Assign("a", 2.0))

	v, _ := outer.Get("a")
	assert.Equal(t, 2.0, v, "assignment should mutate the outer binding, not shadow it")
}

func TestAssignUndefinedReturnsError(t *testing.T) {
	env := New()
	err := env.Assign("missing", 1.0)
	require.Error(t, err)
	assert.Equal(t, "Undefined variable 'missing'.", err.Error())
}

func TestGetAtAndAssignAt(t *testing.T) {
	outer := New()
	outer.Define("a", 1.0)
	middle := NewEnclosed(outer)
	inner := NewEnclosed(middle)

	assert.Equal(t, 1.0, inner.GetAt(2, "a"))

	inner.AssignAt(2, "a", 9.0)
	v, _ := outer.Get("a")
	assert.Equal(t, 9.0, v)
}

func TestRedefineInSameScopeReplaces(t *testing.T) {
	env := New()
	env.Define("a", 1.0)
	env.Define("a", 2.0)

	v, _ := env.Get("a")
	assert.Equal(t, 2.0, v)
}
