/*
File    : saga/eval/evaluator.go
*/

// Package eval implements the tree-walking evaluator of the SAGA language.
// It walks the AST depth-first, producing values and side effects. Runtime
// errors and the break/continue/return control-flow exits are tagged result
// objects that flow up through the walk: statement lists stop on them, loops
// consume break and continue, and function calls consume return. Variable
// lookups use the resolver's distance table; names without an entry resolve
// in the global environment.
package eval

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/saga-lang/saga/diag"
	"github.com/saga-lang/saga/function"
	"github.com/saga-lang/saga/lexer"
	"github.com/saga-lang/saga/objects"
	"github.com/saga-lang/saga/parser"
	"github.com/saga-lang/saga/scope"
	"github.com/saga-lang/saga/std"
)

// Evaluator holds the state of one interpreter instance: the global
// environment (with every native callable pre-defined), the environment of
// the code currently executing, the resolver's distance table, and the I/O
// streams the program talks to.
type Evaluator struct {
	Globals *scope.Scope                  // The outermost environment, holding natives and globals
	Scp     *scope.Scope                  // Environment of the code currently executing
	Locals  map[parser.ExpressionNode]int // Resolver distances, keyed by node identity
	Sink    *diag.Sink                    // Diagnostics sink for runtime errors
	Writer  io.Writer                     // Output for say and native prompts (default: os.Stdout)
	Reader  *bufio.Reader                 // Input for the input() native (default: os.Stdin)
}

// NewEvaluator creates an Evaluator with a fresh global environment holding
// all registered natives, reporting runtime errors to sink.
func NewEvaluator(sink *diag.Sink) *Evaluator {
	globals := scope.NewScope(nil)
	for _, builtin := range std.Builtins {
		globals.Define(builtin.Name, builtin)
	}
	return &Evaluator{
		Globals: globals,
		Scp:     globals,
		Locals:  make(map[parser.ExpressionNode]int),
		Sink:    sink,
		Writer:  os.Stdout,
		Reader:  bufio.NewReader(os.Stdin),
	}
}

// SetWriter redirects say output and native prompts, e.g. into a buffer
// under test.
func (e *Evaluator) SetWriter(w io.Writer) {
	e.Writer = w
}

// SetReader redirects the input() native's source.
func (e *Evaluator) SetReader(r io.Reader) {
	e.Reader = bufio.NewReader(r)
}

// GetInputReader returns the buffered input reader.
// This implements the std.Runtime interface.
func (e *Evaluator) GetInputReader() *bufio.Reader {
	return e.Reader
}

// Resolve records the scope distance of a variable-use node.
// This implements the resolver.Bindings interface.
func (e *Evaluator) Resolve(node parser.ExpressionNode, depth int) {
	e.Locals[node] = depth
}

// Interpret executes a program's statements in order. The first runtime
// error stops execution and is reported to the sink; a control-flow signal
// reaching the top level (possible only when the static checks were
// bypassed) is reported as a runtime error too.
func (e *Evaluator) Interpret(statements []parser.StatementNode) {
	for _, stmt := range statements {
		result := e.Eval(stmt)

		switch r := result.(type) {
		case *objects.Error:
			e.Sink.RuntimeError(r.Line, r.Column, r.Message)
			return
		case *objects.BreakSignal:
			e.Sink.RuntimeError(r.Line, r.Column, "'break' outside of a loop.")
			return
		case *objects.ContinueSignal:
			e.Sink.RuntimeError(r.Line, r.Column, "'continue' outside of a loop.")
			return
		case *objects.ReturnValue:
			e.Sink.RuntimeError(0, 0, "'return' outside of a function.")
			return
		}
	}
}

// EvalExpression evaluates a single expression and reports any runtime
// error to the sink. The REPL uses this to auto-print the value of a lone
// expression statement.
func (e *Evaluator) EvalExpression(expr parser.ExpressionNode) objects.Object {
	result := e.Eval(expr)
	if err, ok := result.(*objects.Error); ok {
		e.Sink.RuntimeError(err.Line, err.Column, err.Message)
		return nil
	}
	return result
}

// CallFunction invokes a user-defined function with already-evaluated
// arguments. Each call gets a fresh environment whose parent is the
// closure's captured environment; a return signal escaping the body is
// consumed here and its value becomes the call result, defaulting to nil.
func (e *Evaluator) CallFunction(fn *function.Function, args []objects.Object) objects.Object {
	env := scope.NewScope(fn.Closure)
	for i, param := range fn.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	result := e.executeBlock(fn.Declaration.Body.Statements, env)

	switch r := result.(type) {
	case *objects.ReturnValue:
		return r.Value
	case *objects.Error:
		return r
	}
	return &objects.Nil{}
}

// executeBlock runs statements inside env, restoring the previous
// environment on every exit path.
func (e *Evaluator) executeBlock(statements []parser.StatementNode, env *scope.Scope) objects.Object {
	previous := e.Scp
	e.Scp = env
	defer func() { e.Scp = previous }()

	return e.evalStatements(statements)
}

// evalStatements runs statements in order, stopping early on a runtime
// error or a control-flow signal so it can propagate to whichever construct
// owns it.
func (e *Evaluator) evalStatements(statements []parser.StatementNode) objects.Object {
	for _, stmt := range statements {
		result := e.Eval(stmt)

		switch result.(type) {
		case *objects.Error, *objects.ReturnValue, *objects.BreakSignal, *objects.ContinueSignal:
			return result
		}
	}
	return &objects.Nil{}
}

// Eval dispatches on the concrete node type. Every AST variant has a case;
// an unknown node is an interpreter bug surfaced as a runtime error.
func (e *Evaluator) Eval(node parser.Node) objects.Object {
	switch n := node.(type) {
	// Literals
	case *parser.IntegerLiteralExpressionNode:
		return n.Value
	case *parser.FloatLiteralExpressionNode:
		return n.Value
	case *parser.StringLiteralExpressionNode:
		return n.Value
	case *parser.BooleanLiteralExpressionNode:
		return n.Value
	case *parser.NilLiteralExpressionNode:
		return &objects.Nil{}

	// Expressions
	case *parser.IdentifierExpressionNode:
		return e.evalIdentifierExpression(n)
	case *parser.AssignmentExpressionNode:
		return e.evalAssignmentExpression(n)
	case *parser.UnaryExpressionNode:
		return e.evalUnaryExpression(n)
	case *parser.BinaryExpressionNode:
		return e.evalBinaryExpression(n)
	case *parser.LogicalExpressionNode:
		return e.evalLogicalExpression(n)
	case *parser.TernaryExpressionNode:
		return e.evalTernaryExpression(n)
	case *parser.ParenthesizedExpressionNode:
		return e.Eval(n.Expr)
	case *parser.CallExpressionNode:
		return e.evalCallExpression(n)

	// Statements
	case *parser.ExpressionStatementNode:
		return e.evalExpressionStatement(n)
	case *parser.SayStatementNode:
		return e.evalSayStatement(n)
	case *parser.LetStatementNode:
		return e.evalLetStatement(n)
	case *parser.BlockStatementNode:
		return e.executeBlock(n.Statements, scope.NewScope(e.Scp))
	case *parser.IfStatementNode:
		return e.evalIfStatement(n)
	case *parser.WhileStatementNode:
		return e.evalWhileStatement(n)
	case *parser.FunctionStatementNode:
		return e.evalFunctionStatement(n)
	case *parser.ReturnStatementNode:
		return e.evalReturnStatement(n)
	case *parser.BreakStatementNode:
		return &objects.BreakSignal{Line: n.Keyword.Line, Column: n.Keyword.Column}
	case *parser.ContinueStatementNode:
		return &objects.ContinueSignal{Line: n.Keyword.Line, Column: n.Keyword.Column}
	case *parser.PassStatementNode:
		return &objects.Nil{}
	case *parser.ClassStatementNode:
		return e.evalClassStatement(n)
	}

	return &objects.Error{Message: fmt.Sprintf("Unhandled AST node %T.", node)}
}

// newError creates a runtime error located at token.
func newError(token lexer.Token, format string, args ...interface{}) *objects.Error {
	return &objects.Error{
		Message: fmt.Sprintf(format, args...),
		Line:    token.Line,
		Column:  token.Column,
	}
}

// locateError stamps a source position onto errors that were created
// without one (natives do not see tokens).
func locateError(err *objects.Error, token lexer.Token) *objects.Error {
	if err.Line == 0 {
		err.Line = token.Line
		err.Column = token.Column
	}
	return err
}
