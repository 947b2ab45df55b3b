/*
File    : saga/parser/parser_test.go
*/
package parser

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saga-lang/saga/diag"
	"github.com/saga-lang/saga/lexer"
)

// parseProgram lexes and parses src, returning the statements, the sink,
// and the captured diagnostic output.
func parseProgram(src string) ([]StatementNode, *diag.Sink, *bytes.Buffer) {
	out := &bytes.Buffer{}
	sink := diag.NewSinkWithWriter(out)
	lex := lexer.NewLexer(src, sink)
	p := NewParser(lex.LexTokens(), sink)
	return p.Parse(), sink, out
}

// firstExpression parses src and unwraps the first statement's expression.
func firstExpression(t *testing.T, src string) ExpressionNode {
	t.Helper()
	statements, sink, out := parseProgram(src)
	require.False(t, sink.HadError, "input %q produced diagnostics: %s", src, out.String())
	require.NotEmpty(t, statements, "input %q", src)
	exprStmt, ok := statements[0].(*ExpressionStatementNode)
	require.True(t, ok, "input %q did not parse to an expression statement", src)
	return exprStmt.Expr
}

// ignoreTokens drops all token metadata from structural comparisons, which
// is exactly "modulo location" plus lexeme spelling.
var ignoreTokens = cmpopts.IgnoreTypes(lexer.Token{})

// TestParser_Precedence pins the grammar's precedence and associativity
// through the parenthesized printer.
func TestParser_Precedence(t *testing.T) {
	tests := []struct {
		Input    string
		Expected string
	}{
		{Input: "1 + 2 * 3", Expected: "(1 + (2 * 3))"},
		{Input: "1 * 2 + 3", Expected: "((1 * 2) + 3)"},
		{Input: "1 + 2 - 3", Expected: "((1 + 2) - 3)"},
		{Input: "a or b and c", Expected: "(a or (b and c))"},
		{Input: "a and b == c", Expected: "(a and (b == c))"},
		{Input: "a == b < c", Expected: "(a == (b < c))"},
		{Input: "1..3 < 5", Expected: "((1 .. 3) < 5)"},
		{Input: "1 + 2..5 + 1", Expected: "((1 + 2) .. (5 + 1))"},
		{Input: "-x * 3", Expected: "((-x) * 3)"},
		{Input: "!a == b", Expected: "((!a) == b)"},
		{Input: "!!a", Expected: "(!(!a))"},
		{Input: "a = b = c", Expected: "(a = (b = c))"},
		{Input: "a ? b : c ? d : e", Expected: "(a ? b : (c ? d : e))"},
		{Input: "a ? b ? c : d : e", Expected: "(a ? (b ? c : d) : e)"},
		{Input: "a, b, c", Expected: "((a , b) , c)"},
		{Input: "x = a ? 1 : 2", Expected: "(x = (a ? 1 : 2))"},
		{Input: "f(1)(2)", Expected: "f(1)(2)"},
		{Input: "f(a, b + 1)", Expected: "f(a, (b + 1))"},
		{Input: "(1 + 2) * 3", Expected: "((1 + 2) * 3)"},
		{Input: `"a" + "b"`, Expected: `("a" + "b")`},
	}

	printer := &Printer{}
	for _, test := range tests {
		expr := firstExpression(t, test.Input)
		assert.Equal(t, test.Expected, printer.Print(expr), "input %q", test.Input)
	}
}

// TestParser_RoundTrip checks that printing an expression yields source
// that reparses to the same shape: the printed form is a fixed point of
// parse-then-print.
func TestParser_RoundTrip(t *testing.T) {
	inputs := []string{
		"1 + 2 * 3",
		"-4.5 / (2 - 1)",
		"a or b and !c",
		"x = y = 1 + 2",
		"cond ? a + 1 : b * 2",
		"1..10",
		`"name" + x`,
		"f(1, 2, g(3))",
		"a, b + 1, c",
		"nil == false",
	}

	printer := &Printer{}
	for _, input := range inputs {
		printed := printer.Print(firstExpression(t, input))
		reprinted := printer.Print(firstExpression(t, printed))
		assert.Equal(t, printed, reprinted, "input %q", input)
	}
}

// TestParser_ForDesugaring checks the for → let+while rewrite structurally:
// the loop parses to exactly what the primitive spelling parses to.
func TestParser_ForDesugaring(t *testing.T) {
	loop := strings.Join([]string{
		"for i in 1..3:",
		"    say i",
		"",
	}, "\n")
	primitive := strings.Join([]string{
		"let i = 1",
		"while i <= 3:",
		"    say i",
		"    i = i + 1",
		"",
	}, "\n")

	loopStatements, sink, out := parseProgram(loop)
	require.False(t, sink.HadError, out.String())
	require.Len(t, loopStatements, 1)

	primitiveStatements, sink, out := parseProgram(primitive)
	require.False(t, sink.HadError, out.String())

	expected := &BlockStatementNode{Statements: primitiveStatements}
	if diff := cmp.Diff(expected, loopStatements[0], ignoreTokens); diff != "" {
		t.Errorf("for loop did not desugar to the primitive form (-want +got):\n%s", diff)
	}

	// The token filter above hides names, so pin the loop variable too.
	block := loopStatements[0].(*BlockStatementNode)
	initializer := block.Statements[0].(*LetStatementNode)
	assert.Equal(t, "i", initializer.Name.Lexeme)
}

// TestParser_ForRequiresRange checks that non-range iterables are rejected.
func TestParser_ForRequiresRange(t *testing.T) {
	_, sink, out := parseProgram("for i in xs:\n    say i\n")
	assert.True(t, sink.HadError)
	assert.Contains(t, out.String(), "range")
}

// TestParser_CompoundAssignmentDesugaring checks the parse-time rewrite of
// the compound operators.
func TestParser_CompoundAssignmentDesugaring(t *testing.T) {
	tests := []struct {
		Input    string
		Expected string
	}{
		{Input: "x += 2", Expected: "(x = (x + 2))"},
		{Input: "x -= 2", Expected: "(x = (x - 2))"},
		{Input: "x *= 2", Expected: "(x = (x * 2))"},
		{Input: "x /= 2", Expected: "(x = (x / 2))"},
		{Input: "x++", Expected: "(x = (x + 1))"},
		{Input: "x--", Expected: "(x = (x - 1))"},
	}

	printer := &Printer{}
	for _, test := range tests {
		expr := firstExpression(t, test.Input)
		assert.Equal(t, test.Expected, printer.Print(expr), "input %q", test.Input)
	}
}

// TestParser_Statements covers the statement forms and suite shape.
func TestParser_Statements(t *testing.T) {
	src := strings.Join([]string{
		"let x = 10",
		"let y",
		"if x > 5:",
		"    say \"big\"",
		"else:",
		"    say \"small\"",
		"while x > 0:",
		"    x = x - 1",
		"    if x == 2:",
		"        break",
		"fn add(a, b):",
		"    return a + b",
		"class Counter:",
		"    fn bump():",
		"        pass",
		"pass",
		"",
	}, "\n")

	statements, sink, out := parseProgram(src)
	require.False(t, sink.HadError, out.String())
	require.Len(t, statements, 7)

	assert.IsType(t, &LetStatementNode{}, statements[0])
	assert.IsType(t, &LetStatementNode{}, statements[1])
	assert.Nil(t, statements[1].(*LetStatementNode).Initializer)
	assert.IsType(t, &IfStatementNode{}, statements[2])
	assert.IsType(t, &WhileStatementNode{}, statements[3])
	assert.IsType(t, &FunctionStatementNode{}, statements[4])
	assert.IsType(t, &ClassStatementNode{}, statements[5])
	assert.IsType(t, &PassStatementNode{}, statements[6])

	ifStmt := statements[2].(*IfStatementNode)
	require.NotNil(t, ifStmt.Else)
	assert.Len(t, ifStmt.Then.Statements, 1)

	fn := statements[4].(*FunctionStatementNode)
	assert.Equal(t, "add", fn.Name.Lexeme)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Lexeme)

	class := statements[5].(*ClassStatementNode)
	assert.Equal(t, "Counter", class.Name.Lexeme)
	require.Len(t, class.Methods, 1)
	assert.Equal(t, "bump", class.Methods[0].Name.Lexeme)
}

// TestParser_EOFClosesBlocks checks that a file ending inside open suites
// still parses: EOF stands in for the missing dedents and newline.
func TestParser_EOFClosesBlocks(t *testing.T) {
	statements, sink, out := parseProgram("if a:\n    if b:\n        say 1")
	require.False(t, sink.HadError, out.String())
	require.Len(t, statements, 1)

	outer := statements[0].(*IfStatementNode)
	inner := outer.Then.Statements[0].(*IfStatementNode)
	assert.Len(t, inner.Then.Statements, 1)
}

// TestParser_ErrorRecovery checks panic-mode synchronization: every bad
// declaration is reported and the good ones still parse.
func TestParser_ErrorRecovery(t *testing.T) {
	src := strings.Join([]string{
		"let 123 = 5",
		"say 2",
		"* 3",
		"say 4",
		"",
	}, "\n")

	statements, sink, out := parseProgram(src)
	assert.True(t, sink.HadError)

	// Both say statements survive.
	says := 0
	for _, stmt := range statements {
		if _, ok := stmt.(*SayStatementNode); ok {
			says++
		}
	}
	assert.Equal(t, 2, says)

	diagnostics := out.String()
	assert.Contains(t, diagnostics, "Expected variable name after 'let'.")
	assert.Contains(t, diagnostics, "Binary operator '*' cannot appear at the beginning of an expression.")
}

// TestParser_LeadingBinaryOperators checks the dedicated diagnostic for
// every binary level.
func TestParser_LeadingBinaryOperators(t *testing.T) {
	operators := []string{",", "or", "and", "==", "!=", "<", "<=", ">", ">=", "..", "+", "*", "/"}

	for _, operator := range operators {
		_, sink, out := parseProgram(fmt.Sprintf("%s 2\n", operator))
		assert.True(t, sink.HadError, "operator %q", operator)
		assert.Contains(t, out.String(),
			fmt.Sprintf("Binary operator '%s' cannot appear at the beginning of an expression.", operator),
			"operator %q", operator)
	}
}

// TestParser_InvalidAssignmentTarget checks the non-throwing diagnostic at
// the equals token.
func TestParser_InvalidAssignmentTarget(t *testing.T) {
	statements, sink, out := parseProgram("1 = 2\n")
	assert.True(t, sink.HadError)
	assert.Contains(t, out.String(), "Invalid assignment target.")
	// The parser stays in a valid state and still yields a statement.
	assert.Len(t, statements, 1)
}

// TestParser_ArgumentCap checks the 255-argument diagnostic without abort.
func TestParser_ArgumentCap(t *testing.T) {
	args := make([]string, 300)
	for i := range args {
		args[i] = "1"
	}
	src := "f(" + strings.Join(args, ", ") + ")\n"

	statements, sink, out := parseProgram(src)
	assert.True(t, sink.HadError)
	assert.Contains(t, out.String(), "Can't have more than 255 arguments.")
	require.Len(t, statements, 1)

	call := statements[0].(*ExpressionStatementNode).Expr.(*CallExpressionNode)
	assert.Len(t, call.Arguments, 300)
}

// TestParser_ImportIsReserved checks the diagnostic for the reserved
// keyword.
func TestParser_ImportIsReserved(t *testing.T) {
	_, sink, out := parseProgram("import something\n")
	assert.True(t, sink.HadError)
	assert.Contains(t, out.String(), "'import' is reserved")
}

// TestParser_SuiteShapeErrors checks the diagnostics around the
// colon-newline-indent block shape.
func TestParser_SuiteShapeErrors(t *testing.T) {
	tests := []struct {
		Input   string
		Message string
	}{
		{Input: "if x say 1\n", Message: "Expected ':' after if condition."},
		{Input: "if x:\nsay 1\n", Message: "Expected an indented block."},
		{Input: "say a ? b\n", Message: "Expected ':' after then branch of ternary expression."},
		{Input: "say (1 + 2\n", Message: "Expected ')' after expression."},
	}

	for _, test := range tests {
		_, sink, out := parseProgram(test.Input)
		assert.True(t, sink.HadError, "input %q", test.Input)
		assert.Contains(t, out.String(), test.Message, "input %q", test.Input)
	}
}
