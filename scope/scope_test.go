/*
File    : saga/scope/scope_test.go
*/
package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saga-lang/saga/objects"
)

// TestScope_DefineAndGet tests binding and chain lookup.
func TestScope_DefineAndGet(t *testing.T) {
	global := NewScope(nil)
	global.Define("x", &objects.Integer{Value: 10})

	inner := NewScope(global)

	value, ok := inner.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(10), value.(*objects.Integer).Value)

	_, ok = inner.Get("missing")
	assert.False(t, ok)
}

// TestScope_DefineShadowsOuter tests that Define always writes the
// innermost frame.
func TestScope_DefineShadowsOuter(t *testing.T) {
	global := NewScope(nil)
	global.Define("x", &objects.Integer{Value: 1})

	inner := NewScope(global)
	inner.Define("x", &objects.Integer{Value: 2})

	value, _ := inner.Get("x")
	assert.Equal(t, int64(2), value.(*objects.Integer).Value)

	// The outer binding is untouched.
	value, _ = global.Get("x")
	assert.Equal(t, int64(1), value.(*objects.Integer).Value)
}

// TestScope_AssignWalksChain tests that assignment updates the defining
// frame and never creates bindings.
func TestScope_AssignWalksChain(t *testing.T) {
	global := NewScope(nil)
	global.Define("x", &objects.Integer{Value: 1})

	inner := NewScope(global)
	ok := inner.Assign("x", &objects.Integer{Value: 5})
	require.True(t, ok)

	value, _ := global.Get("x")
	assert.Equal(t, int64(5), value.(*objects.Integer).Value)

	// x was updated in the global frame, not created in the inner one.
	_, definedLocally := inner.Variables["x"]
	assert.False(t, definedLocally)

	// Assigning an undefined name reports failure instead of creating it.
	assert.False(t, inner.Assign("missing", &objects.Integer{Value: 1}))
	_, ok = inner.Get("missing")
	assert.False(t, ok)
}

// TestScope_Ancestor tests distance-indexed frame access.
func TestScope_Ancestor(t *testing.T) {
	global := NewScope(nil)
	middle := NewScope(global)
	inner := NewScope(middle)

	assert.Same(t, inner, inner.Ancestor(0))
	assert.Same(t, middle, inner.Ancestor(1))
	assert.Same(t, global, inner.Ancestor(2))
}

// TestScope_GetAtAndAssignAt tests that the distance-indexed accessors act
// on exactly one frame, even when a closer frame shadows the name.
func TestScope_GetAtAndAssignAt(t *testing.T) {
	global := NewScope(nil)
	global.Define("x", &objects.Integer{Value: 1})

	inner := NewScope(global)
	inner.Define("x", &objects.Integer{Value: 2})

	// Distance selects the frame regardless of shadowing.
	value, ok := inner.GetAt(1, "x")
	require.True(t, ok)
	assert.Equal(t, int64(1), value.(*objects.Integer).Value)

	value, ok = inner.GetAt(0, "x")
	require.True(t, ok)
	assert.Equal(t, int64(2), value.(*objects.Integer).Value)

	// AssignAt touches only the addressed frame.
	require.True(t, inner.AssignAt(1, "x", &objects.Integer{Value: 9}))
	value, _ = global.Get("x")
	assert.Equal(t, int64(9), value.(*objects.Integer).Value)
	value, _ = inner.GetAt(0, "x")
	assert.Equal(t, int64(2), value.(*objects.Integer).Value)

	// A name missing from the addressed frame is a miss, not a chain walk.
	_, ok = inner.GetAt(0, "only_global")
	assert.False(t, ok)
	assert.False(t, inner.AssignAt(0, "only_global", &objects.Nil{}))
}

// TestScope_SharedCapture tests the closure-sharing property: two scopes
// with the same parent see each other's assignments through it.
func TestScope_SharedCapture(t *testing.T) {
	captured := NewScope(nil)
	captured.Define("n", &objects.Integer{Value: 0})

	callFrameA := NewScope(captured)
	callFrameB := NewScope(captured)

	require.True(t, callFrameA.Assign("n", &objects.Integer{Value: 1}))

	value, _ := callFrameB.Get("n")
	assert.Equal(t, int64(1), value.(*objects.Integer).Value)
}
