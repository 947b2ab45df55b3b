/*
File    : saga/eval/eval_statements.go
*/
package eval

import (
	"fmt"

	"github.com/saga-lang/saga/function"
	"github.com/saga-lang/saga/objects"
	"github.com/saga-lang/saga/parser"
	"github.com/saga-lang/saga/scope"
)

// evalExpressionStatement evaluates an expression for its side effects and
// discards the value. Errors still propagate.
func (e *Evaluator) evalExpressionStatement(n *parser.ExpressionStatementNode) objects.Object {
	result := e.Eval(n.Expr)
	if objects.IsError(result) {
		return result
	}
	return &objects.Nil{}
}

// evalSayStatement prints the display form of the value plus a newline.
func (e *Evaluator) evalSayStatement(n *parser.SayStatementNode) objects.Object {
	value := e.Eval(n.Expr)
	if objects.IsError(value) {
		return value
	}
	fmt.Fprintln(e.Writer, value.ToString())
	return &objects.Nil{}
}

// evalLetStatement declares a variable in the innermost environment,
// defaulting to nil without an initializer. Define always writes the
// current frame, so shadowing an outer binding is allowed.
func (e *Evaluator) evalLetStatement(n *parser.LetStatementNode) objects.Object {
	var value objects.Object = &objects.Nil{}
	if n.Initializer != nil {
		value = e.Eval(n.Initializer)
		if objects.IsError(value) {
			return value
		}
	}
	e.Scp.Define(n.Name.Lexeme, value)
	return &objects.Nil{}
}

// evalIfStatement evaluates the condition and exactly one branch. Each
// branch is a block and runs in its own scope frame, mirroring the
// resolver.
func (e *Evaluator) evalIfStatement(n *parser.IfStatementNode) objects.Object {
	condition := e.Eval(n.Condition)
	if objects.IsError(condition) {
		return condition
	}

	if objects.IsTruthy(condition) {
		return e.Eval(n.Then)
	}
	if n.Else != nil {
		return e.Eval(n.Else)
	}
	return &objects.Nil{}
}

// evalWhileStatement loops while the condition is truthy. A break signal
// from the body terminates the loop, a continue signal moves to the next
// iteration, and errors and return values propagate outward.
func (e *Evaluator) evalWhileStatement(n *parser.WhileStatementNode) objects.Object {
	for {
		condition := e.Eval(n.Condition)
		if objects.IsError(condition) {
			return condition
		}
		if !objects.IsTruthy(condition) {
			break
		}

		result := e.Eval(n.Body)
		switch result.(type) {
		case *objects.BreakSignal:
			return &objects.Nil{}
		case *objects.ContinueSignal:
			continue
		case *objects.Error, *objects.ReturnValue:
			return result
		}
	}
	return &objects.Nil{}
}

// evalFunctionStatement binds a function value closing over the environment
// active at the declaration, not at the call.
func (e *Evaluator) evalFunctionStatement(n *parser.FunctionStatementNode) objects.Object {
	fn := function.NewFunction(n, e.Scp)
	e.Scp.Define(n.Name.Lexeme, fn)
	return &objects.Nil{}
}

// evalReturnStatement wraps the value (nil for a bare return) in a return
// signal for the enclosing call to consume.
func (e *Evaluator) evalReturnStatement(n *parser.ReturnStatementNode) objects.Object {
	var value objects.Object = &objects.Nil{}
	if n.Value != nil {
		value = e.Eval(n.Value)
		if objects.IsError(value) {
			return value
		}
	}
	return &objects.ReturnValue{Value: value}
}

// evalClassStatement builds the placeholder-constructor class value. The
// methods close over a dedicated class environment, mirroring the scope the
// resolver pushed for the class body, and the class itself is bound in the
// declaring environment.
func (e *Evaluator) evalClassStatement(n *parser.ClassStatementNode) objects.Object {
	classEnv := scope.NewScope(e.Scp)

	methods := make(map[string]*function.Function, len(n.Methods))
	for _, declaration := range n.Methods {
		method := function.NewFunction(declaration, classEnv)
		classEnv.Define(declaration.Name.Lexeme, method)
		methods[declaration.Name.Lexeme] = method
	}

	class := function.NewClass(n.Name.Lexeme, methods)
	e.Scp.Define(n.Name.Lexeme, class)
	return &objects.Nil{}
}
