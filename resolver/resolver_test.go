/*
File    : saga/resolver/resolver_test.go
*/
package resolver

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saga-lang/saga/diag"
	"github.com/saga-lang/saga/lexer"
	"github.com/saga-lang/saga/parser"
)

// recordedBindings collects resolved distances for inspection.
type recordedBindings struct {
	distances map[parser.ExpressionNode]int
}

func (b *recordedBindings) Resolve(node parser.ExpressionNode, depth int) {
	b.distances[node] = depth
}

// resolveSource lexes, parses, and resolves src, returning the recorded
// distances, the sink, and the captured diagnostics.
func resolveSource(t *testing.T, src string) (*recordedBindings, *diag.Sink, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	sink := diag.NewSinkWithWriter(out)

	lex := lexer.NewLexer(src, sink)
	p := parser.NewParser(lex.LexTokens(), sink)
	statements := p.Parse()
	require.False(t, sink.HadError, "parse failed: %s", out.String())

	bindings := &recordedBindings{distances: make(map[parser.ExpressionNode]int)}
	NewResolver(bindings, sink).Resolve(statements)
	return bindings, sink, out
}

// distanceOf finds the recorded distance of the variable use with the given
// name, requiring exactly one match.
func distanceOf(t *testing.T, bindings *recordedBindings, name string) int {
	t.Helper()
	found := 0
	distance := -1
	for node, d := range bindings.distances {
		if ident, ok := node.(*parser.IdentifierExpressionNode); ok && ident.Name == name {
			found++
			distance = d
		}
	}
	require.Equal(t, 1, found, "expected exactly one resolved use of %q", name)
	return distance
}

// TestResolver_Distances checks the recorded scope distances for nested
// functions and blocks.
func TestResolver_Distances(t *testing.T) {
	src := strings.Join([]string{
		"fn outer():",
		"    let a = 1",
		"    fn inner():",
		"        let b = 2",
		"        say a",
		"        say b",
		"",
	}, "\n")

	bindings, sink, out := resolveSource(t, src)
	require.False(t, sink.HadError, out.String())

	// Inside inner's body: b lives in the same frame, a one frame up.
	assert.Equal(t, 0, distanceOf(t, bindings, "b"))
	assert.Equal(t, 1, distanceOf(t, bindings, "a"))
}

// TestResolver_BlockScopes checks that every block pushes a frame.
func TestResolver_BlockScopes(t *testing.T) {
	src := strings.Join([]string{
		"fn f():",
		"    let x = 1",
		"    if true:",
		"        say x",
		"",
	}, "\n")

	bindings, sink, out := resolveSource(t, src)
	require.False(t, sink.HadError, out.String())

	// The use sits one block below x's frame.
	assert.Equal(t, 1, distanceOf(t, bindings, "x"))
}

// TestResolver_GlobalsGetNoEntry checks that names resolved in the global
// environment are absent from the side table.
func TestResolver_GlobalsGetNoEntry(t *testing.T) {
	src := "let x = 10\nsay x\n"

	bindings, sink, out := resolveSource(t, src)
	require.False(t, sink.HadError, out.String())

	for node := range bindings.distances {
		if ident, ok := node.(*parser.IdentifierExpressionNode); ok {
			assert.NotEqual(t, "x", ident.Name, "global use must not be resolved as a local")
		}
	}
}

// TestResolver_InitializerReadsOuter checks that an initializer
// mentioning a different variable resolves past the new declaration.
func TestResolver_InitializerReadsOuter(t *testing.T) {
	src := strings.Join([]string{
		"fn f():",
		"    let a = 1",
		"    if true:",
		"        let b = a",
		"        say b",
		"",
	}, "\n")

	bindings, sink, out := resolveSource(t, src)
	require.False(t, sink.HadError, out.String())
	assert.Equal(t, 1, distanceOf(t, bindings, "a"))
}

// TestResolver_SelfInitializerRejected checks the dedicated diagnostic for
// reading a local inside its own initializer.
func TestResolver_SelfInitializerRejected(t *testing.T) {
	src := strings.Join([]string{
		"fn f():",
		"    let x = x",
		"",
	}, "\n")

	_, sink, out := resolveSource(t, src)
	assert.True(t, sink.HadError)
	assert.Contains(t, out.String(), "Cannot read local variable in its own initializer.")
}

// TestResolver_AssignmentDistances checks that assignment targets resolve
// like reads.
func TestResolver_AssignmentDistances(t *testing.T) {
	src := strings.Join([]string{
		"fn make(n):",
		"    fn inc():",
		"        n = n + 1",
		"        return n",
		"    return inc",
		"",
	}, "\n")

	bindings, sink, out := resolveSource(t, src)
	require.False(t, sink.HadError, out.String())

	assigns := 0
	for node, d := range bindings.distances {
		if assign, ok := node.(*parser.AssignmentExpressionNode); ok {
			assigns++
			assert.Equal(t, "n", assign.Name.Lexeme)
			assert.Equal(t, 1, d)
		}
	}
	assert.Equal(t, 1, assigns)
}

// TestResolver_ContextChecks covers return/break/continue used outside
// their owning construct.
func TestResolver_ContextChecks(t *testing.T) {
	tests := []struct {
		Input   string
		Message string
	}{
		{Input: "return 1\n", Message: "Cannot return from top-level code."},
		{Input: "break\n", Message: "'break' outside of a loop."},
		{Input: "continue\n", Message: "'continue' outside of a loop."},
		{
			// A function boundary resets loop context.
			Input:   "while true:\n    fn f():\n        break\n",
			Message: "'break' outside of a loop.",
		},
	}

	for _, test := range tests {
		_, sink, out := resolveSource(t, test.Input)
		assert.True(t, sink.HadError, "input %q", test.Input)
		assert.Contains(t, out.String(), test.Message, "input %q", test.Input)
	}
}

// TestResolver_LoopAndFunctionContextsAccepted checks the valid placements
// stay silent.
func TestResolver_LoopAndFunctionContextsAccepted(t *testing.T) {
	src := strings.Join([]string{
		"while true:",
		"    if true:",
		"        break",
		"    continue",
		"fn f():",
		"    while true:",
		"        break",
		"    return 1",
		"",
	}, "\n")

	_, sink, out := resolveSource(t, src)
	assert.False(t, sink.HadError, out.String())
}
