/*
File    : saga/eval/eval_expressions.go
*/
package eval

import (
	"github.com/saga-lang/saga/function"
	"github.com/saga-lang/saga/lexer"
	"github.com/saga-lang/saga/objects"
	"github.com/saga-lang/saga/parser"
	"github.com/saga-lang/saga/std"
)

// evalIdentifierExpression reads a variable. A resolved node reads the exact
// frame at its recorded distance; an unresolved node is a global.
func (e *Evaluator) evalIdentifierExpression(n *parser.IdentifierExpressionNode) objects.Object {
	if distance, ok := e.Locals[n]; ok {
		value, found := e.Scp.GetAt(distance, n.Name)
		if !found {
			return newError(n.Token, "Undefined variable '%s'.", n.Name)
		}
		return value
	}

	value, found := e.Globals.Get(n.Name)
	if !found {
		return newError(n.Token, "Undefined variable '%s'.", n.Name)
	}
	return value
}

// evalAssignmentExpression overwrites an existing binding and yields the
// assigned value. Assignment never creates a binding: an undefined name is
// a runtime error.
func (e *Evaluator) evalAssignmentExpression(n *parser.AssignmentExpressionNode) objects.Object {
	value := e.Eval(n.Value)
	if objects.IsError(value) {
		return value
	}

	if distance, ok := e.Locals[n]; ok {
		if !e.Scp.AssignAt(distance, n.Name.Lexeme, value) {
			return newError(n.Name, "Undefined variable '%s'.", n.Name.Lexeme)
		}
		return value
	}

	if !e.Globals.Assign(n.Name.Lexeme, value) {
		return newError(n.Name, "Undefined variable '%s'.", n.Name.Lexeme)
	}
	return value
}

// evalUnaryExpression handles prefix - and !.
func (e *Evaluator) evalUnaryExpression(n *parser.UnaryExpressionNode) objects.Object {
	right := e.Eval(n.Right)
	if objects.IsError(right) {
		return right
	}

	switch n.Operator.Type {
	case lexer.MINUS_OP:
		switch value := right.(type) {
		case *objects.Integer:
			return &objects.Integer{Value: -value.Value}
		case *objects.Float:
			return &objects.Float{Value: -value.Value}
		}
		return newError(n.Operator, "Operand must be a number.")
	case lexer.NOT_OP:
		return &objects.Boolean{Value: !objects.IsTruthy(right)}
	}

	return newError(n.Operator, "Unknown unary operator '%s'.", n.Operator.Lexeme)
}

// evalBinaryExpression handles the eager binary operators. Both operands
// evaluate (left first) before the operator applies.
func (e *Evaluator) evalBinaryExpression(n *parser.BinaryExpressionNode) objects.Object {
	left := e.Eval(n.Left)
	if objects.IsError(left) {
		return left
	}
	right := e.Eval(n.Right)
	if objects.IsError(right) {
		return right
	}

	switch n.Operator.Type {
	case lexer.COMMA_DELIM:
		// The sequence operator: both sides already evaluated, the right
		// operand is the value.
		return right

	case lexer.RANGE_OP:
		return evalRange(n.Operator, left, right)

	case lexer.EQ_OP:
		return &objects.Boolean{Value: valuesEqual(left, right)}
	case lexer.NE_OP:
		return &objects.Boolean{Value: !valuesEqual(left, right)}

	case lexer.LT_OP, lexer.LE_OP, lexer.GT_OP, lexer.GE_OP:
		return evalComparison(n.Operator, left, right)

	case lexer.PLUS_OP:
		return evalPlus(n.Operator, left, right)

	case lexer.MINUS_OP, lexer.MUL_OP:
		return evalArithmetic(n.Operator, left, right)

	case lexer.DIV_OP:
		return evalDivision(n.Operator, left, right)
	}

	return newError(n.Operator, "Unknown binary operator '%s'.", n.Operator.Lexeme)
}

// evalLogicalExpression handles the short-circuiting and/or. The result is
// one of the operand values, never a coerced boolean: `a or b` yields a if
// a is truthy and b otherwise; `a and b` yields a if a is falsy and b
// otherwise.
func (e *Evaluator) evalLogicalExpression(n *parser.LogicalExpressionNode) objects.Object {
	left := e.Eval(n.Left)
	if objects.IsError(left) {
		return left
	}

	if n.Operator.Type == lexer.OR_KEY {
		if objects.IsTruthy(left) {
			return left
		}
	} else {
		if !objects.IsTruthy(left) {
			return left
		}
	}
	return e.Eval(n.Right)
}

// evalTernaryExpression evaluates the condition and then exactly one branch.
func (e *Evaluator) evalTernaryExpression(n *parser.TernaryExpressionNode) objects.Object {
	condition := e.Eval(n.Condition)
	if objects.IsError(condition) {
		return condition
	}

	if objects.IsTruthy(condition) {
		return e.Eval(n.Then)
	}
	return e.Eval(n.Else)
}

// evalCallExpression evaluates the callee and then the arguments left to
// right, checks arity, and dispatches on the kind of callable.
func (e *Evaluator) evalCallExpression(n *parser.CallExpressionNode) objects.Object {
	callee := e.Eval(n.Callee)
	if objects.IsError(callee) {
		return callee
	}

	args := make([]objects.Object, 0, len(n.Arguments))
	for _, argExpr := range n.Arguments {
		arg := e.Eval(argExpr)
		if objects.IsError(arg) {
			return arg
		}
		args = append(args, arg)
	}

	switch callable := callee.(type) {
	case *function.Function:
		if len(args) != callable.Arity() {
			return newError(n.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args))
		}
		result := e.CallFunction(callable, args)
		if err, ok := result.(*objects.Error); ok {
			return locateError(err, n.Paren)
		}
		return result

	case *std.Builtin:
		if callable.Arity() != std.Variadic && len(args) != callable.Arity() {
			return newError(n.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args))
		}
		result := callable.Callback(e, e.Writer, args...)
		if err, ok := result.(*objects.Error); ok {
			return locateError(err, n.Paren)
		}
		return result

	case *function.Class:
		if len(args) != callable.Arity() {
			return newError(n.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args))
		}
		return function.NewInstance(callable)
	}

	return newError(n.Paren, "Can only call functions and classes.")
}
