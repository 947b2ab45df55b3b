/*
File    : saga/resolver/resolver.go
*/

// Package resolver implements the static pass that binds every variable use
// to a lexical scope distance before evaluation begins. It maintains a stack
// of scopes mirroring the environments the evaluator will create, records
// how many frames separate each use from its binding, and reports the
// context-sensitive errors the grammar cannot catch: reading a local inside
// its own initializer, return outside a function, and break/continue outside
// a loop.
package resolver

import (
	"github.com/saga-lang/saga/diag"
	"github.com/saga-lang/saga/lexer"
	"github.com/saga-lang/saga/parser"
)

// Bindings receives the resolved scope distances. The evaluator implements
// it; using variable-use nodes (by identity) as keys means the absence of an
// entry marks a global.
type Bindings interface {
	Resolve(node parser.ExpressionNode, depth int)
}

// functionContext tracks whether the resolver is inside a function body,
// for the return-outside-function check.
type functionContext int

const (
	contextNone functionContext = iota
	contextFunction
	contextMethod
)

// Resolver walks the AST once, pushing a scope for every block, function
// body, and class body, exactly as the evaluator creates environments.
type Resolver struct {
	Bindings Bindings   // Destination for resolved distances
	Sink     *diag.Sink // Diagnostics sink for static errors

	// Each scope maps a name to its "defined" flag: false between
	// declaration and the end of the initializer, true afterwards.
	scopes []map[string]bool

	currentFunction functionContext
	loopDepth       int
}

// NewResolver creates a Resolver feeding distances to bindings and errors
// to sink.
func NewResolver(bindings Bindings, sink *diag.Sink) *Resolver {
	return &Resolver{
		Bindings: bindings,
		Sink:     sink,
		scopes:   make([]map[string]bool, 0),
	}
}

// Resolve walks a program's statements. Errors are reported to the sink;
// the caller decides whether evaluation may proceed.
func (r *Resolver) Resolve(statements []parser.StatementNode) {
	for _, stmt := range statements {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) resolveStatement(stmt parser.StatementNode) {
	switch n := stmt.(type) {
	case *parser.BlockStatementNode:
		r.beginScope()
		r.Resolve(n.Statements)
		r.endScope()

	case *parser.LetStatementNode:
		// Declaring before resolving the initializer is what lets a read
		// of the new name inside its own initializer be detected: in a
		// local scope `let x = x` is reported as an error.
		r.declare(n.Name)
		if n.Initializer != nil {
			r.resolveExpression(n.Initializer)
		}
		r.define(n.Name)

	case *parser.FunctionStatementNode:
		// The name is defined before the body resolves so the function
		// can call itself recursively.
		r.declare(n.Name)
		r.define(n.Name)
		r.resolveFunction(n, contextFunction)

	case *parser.ClassStatementNode:
		r.declare(n.Name)
		r.define(n.Name)
		r.beginScope()
		for _, method := range n.Methods {
			r.declare(method.Name)
			r.define(method.Name)
		}
		for _, method := range n.Methods {
			r.resolveFunction(method, contextMethod)
		}
		r.endScope()

	case *parser.ExpressionStatementNode:
		r.resolveExpression(n.Expr)

	case *parser.SayStatementNode:
		r.resolveExpression(n.Expr)

	case *parser.IfStatementNode:
		r.resolveExpression(n.Condition)
		r.resolveStatement(n.Then)
		if n.Else != nil {
			r.resolveStatement(n.Else)
		}

	case *parser.WhileStatementNode:
		r.resolveExpression(n.Condition)
		r.loopDepth++
		r.resolveStatement(n.Body)
		r.loopDepth--

	case *parser.ReturnStatementNode:
		if r.currentFunction == contextNone {
			r.errorAt(n.Keyword, "Cannot return from top-level code.")
		}
		if n.Value != nil {
			r.resolveExpression(n.Value)
		}

	case *parser.BreakStatementNode:
		if r.loopDepth == 0 {
			r.errorAt(n.Keyword, "'break' outside of a loop.")
		}

	case *parser.ContinueStatementNode:
		if r.loopDepth == 0 {
			r.errorAt(n.Keyword, "'continue' outside of a loop.")
		}

	case *parser.PassStatementNode:
		// Nothing to resolve.
	}
}

func (r *Resolver) resolveExpression(expr parser.ExpressionNode) {
	switch n := expr.(type) {
	case *parser.IdentifierExpressionNode:
		if len(r.scopes) > 0 {
			if defined, declared := r.innermost()[n.Name]; declared && !defined {
				r.errorAt(n.Token, "Cannot read local variable in its own initializer.")
			}
		}
		r.resolveLocal(n, n.Name)

	case *parser.AssignmentExpressionNode:
		r.resolveExpression(n.Value)
		r.resolveLocal(n, n.Name.Lexeme)

	case *parser.UnaryExpressionNode:
		r.resolveExpression(n.Right)

	case *parser.BinaryExpressionNode:
		r.resolveExpression(n.Left)
		r.resolveExpression(n.Right)

	case *parser.LogicalExpressionNode:
		r.resolveExpression(n.Left)
		r.resolveExpression(n.Right)

	case *parser.TernaryExpressionNode:
		r.resolveExpression(n.Condition)
		r.resolveExpression(n.Then)
		r.resolveExpression(n.Else)

	case *parser.ParenthesizedExpressionNode:
		r.resolveExpression(n.Expr)

	case *parser.CallExpressionNode:
		r.resolveExpression(n.Callee)
		for _, arg := range n.Arguments {
			r.resolveExpression(arg)
		}

	case *parser.IntegerLiteralExpressionNode,
		*parser.FloatLiteralExpressionNode,
		*parser.StringLiteralExpressionNode,
		*parser.BooleanLiteralExpressionNode,
		*parser.NilLiteralExpressionNode:
		// Literals reference nothing.
	}
}

// resolveFunction resolves a function body: one scope holding both the
// parameters and the body's statements, matching the single call frame the
// evaluator creates. Loop context does not cross a function boundary, so a
// break inside a function declared inside a loop is still an error.
func (r *Resolver) resolveFunction(fn *parser.FunctionStatementNode, context functionContext) {
	enclosingFunction := r.currentFunction
	enclosingLoopDepth := r.loopDepth
	r.currentFunction = context
	r.loopDepth = 0

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.Resolve(fn.Body.Statements)
	r.endScope()

	r.currentFunction = enclosingFunction
	r.loopDepth = enclosingLoopDepth
}

// resolveLocal walks the scope stack innermost-out and records the distance
// to the scope containing name. Names found nowhere are assumed global and
// get no entry.
func (r *Resolver) resolveLocal(node parser.ExpressionNode, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.Bindings.Resolve(node, len(r.scopes)-1-i)
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) innermost() map[string]bool {
	return r.scopes[len(r.scopes)-1]
}

// declare marks a name as existing but not yet usable in the innermost
// scope. At the top level there is no scope to mark; globals resolve
// dynamically.
func (r *Resolver) declare(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.innermost()[name.Lexeme] = false
}

// define marks a declared name as fully initialized.
func (r *Resolver) define(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.innermost()[name.Lexeme] = true
}

func (r *Resolver) errorAt(token lexer.Token, message string) {
	r.Sink.ReportAt(token.Line, token.Column, token.Lexeme, token.Type == lexer.EOF_TYPE, message)
}
