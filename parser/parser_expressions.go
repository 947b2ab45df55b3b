/*
File    : saga/parser/parser_expressions.go
*/
package parser

import (
	"fmt"

	"github.com/saga-lang/saga/lexer"
	"github.com/saga-lang/saga/objects"
)

// The expression grammar, lowest to highest precedence:
//
//	expression  → comma
//	comma       → assignment ( "," assignment )*
//	assignment  → ternary ( "=" assignment )?          right-assoc
//	ternary     → logic_or ( "?" ternary ":" ternary )? right-assoc
//	logic_or    → logic_and ( "or" logic_and )*
//	logic_and   → equality ( "and" equality )*
//	equality    → comparison ( ( "==" | "!=" ) comparison )*
//	comparison  → range ( ( "<" | "<=" | ">" | ">=" ) range )*
//	range       → term ( ".." term )*
//	term        → factor ( ( "+" | "-" ) factor )*
//	factor      → unary ( ( "*" | "/" ) unary )*
//	unary       → ( "!" | "-" ) unary | call
//	call        → primary ( "(" arguments? ")" )*
//	primary     → literal | identifier | "(" expression ")"
//
// Every binary level starts with a leading-operator check: a binary operator
// at the head of an expression gets a dedicated diagnostic, and the parser
// consumes and discards a right-hand operand before raising the error, which
// keeps recovery aligned on real expression boundaries.

// expression parses at the lowest precedence level.
func (p *Parser) expression() (ExpressionNode, error) {
	return p.comma()
}

// checkLeadingOperator reports the "binary operator at the beginning of an
// expression" diagnostic when the current token is one of the given operator
// types. The discarded right operand is parsed with operand.
func (p *Parser) checkLeadingOperator(operand func() (ExpressionNode, error), types ...lexer.TokenType) error {
	if !p.match(types...) {
		return nil
	}
	operator := p.previous()
	err := p.errorAt(operator, fmt.Sprintf("Binary operator '%s' cannot appear at the beginning of an expression.", operator.Lexeme))
	operand() // parse and discard the right operand
	return err
}

// comma parses the ',' sequence operator.
func (p *Parser) comma() (ExpressionNode, error) {
	if err := p.checkLeadingOperator(p.assignment, lexer.COMMA_DELIM); err != nil {
		return nil, err
	}

	expr, err := p.assignment()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.COMMA_DELIM) {
		operator := p.previous()
		right, err := p.assignment()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpressionNode{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

// assignment parses plain assignment plus the compound forms, which desugar
// to plain assignment here so no later phase ever sees them:
//
//	x += e  →  x = x + e     (same for -=, *=, /=)
//	x++     →  x = x + 1     (same for --)
//
// Only a bare variable is a valid target; anything else is reported at the
// operator token without aborting the parse.
func (p *Parser) assignment() (ExpressionNode, error) {
	expr, err := p.ternary()
	if err != nil {
		return nil, err
	}

	if p.match(lexer.ASSIGN_OP) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if target, ok := expr.(*IdentifierExpressionNode); ok {
			return &AssignmentExpressionNode{Name: target.Token, Value: value}, nil
		}
		p.reportAt(equals, "Invalid assignment target.")
		return expr, nil
	}

	if p.match(lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN, lexer.MUL_ASSIGN, lexer.DIV_ASSIGN) {
		operator := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		target, ok := expr.(*IdentifierExpressionNode)
		if !ok {
			p.reportAt(operator, "Invalid assignment target.")
			return expr, nil
		}
		return &AssignmentExpressionNode{
			Name: target.Token,
			Value: &BinaryExpressionNode{
				Left:     &IdentifierExpressionNode{Token: target.Token, Name: target.Name},
				Operator: compoundOperator(operator),
				Right:    value,
			},
		}, nil
	}

	if p.match(lexer.INC_OP, lexer.DEC_OP) {
		operator := p.previous()
		target, ok := expr.(*IdentifierExpressionNode)
		if !ok {
			p.reportAt(operator, "Invalid assignment target.")
			return expr, nil
		}
		return &AssignmentExpressionNode{
			Name: target.Token,
			Value: &BinaryExpressionNode{
				Left:     &IdentifierExpressionNode{Token: target.Token, Name: target.Name},
				Operator: compoundOperator(operator),
				Right: &IntegerLiteralExpressionNode{
					Token: lexer.NewLiteralToken(lexer.INT_LIT, "1", int64(1), operator.Line, operator.Column),
					Value: &objects.Integer{Value: 1},
				},
			},
		}, nil
	}

	return expr, nil
}

// compoundOperator maps a compound-assignment token to the underlying
// arithmetic operator token at the same source position.
func compoundOperator(operator lexer.Token) lexer.Token {
	switch operator.Type {
	case lexer.PLUS_ASSIGN, lexer.INC_OP:
		return lexer.NewToken(lexer.PLUS_OP, "+", operator.Line, operator.Column)
	case lexer.MINUS_ASSIGN, lexer.DEC_OP:
		return lexer.NewToken(lexer.MINUS_OP, "-", operator.Line, operator.Column)
	case lexer.MUL_ASSIGN:
		return lexer.NewToken(lexer.MUL_OP, "*", operator.Line, operator.Column)
	default:
		return lexer.NewToken(lexer.DIV_OP, "/", operator.Line, operator.Column)
	}
}

// ternary parses the right-associative conditional operator.
func (p *Parser) ternary() (ExpressionNode, error) {
	expr, err := p.logicalOr()
	if err != nil {
		return nil, err
	}

	if p.match(lexer.QUESTION_OP) {
		operator := p.previous()
		thenBranch, err := p.ternary()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.COLON_DELIM, "Expected ':' after then branch of ternary expression."); err != nil {
			return nil, err
		}
		elseBranch, err := p.ternary()
		if err != nil {
			return nil, err
		}
		return &TernaryExpressionNode{
			Condition: expr,
			Operator:  operator,
			Then:      thenBranch,
			Else:      elseBranch,
		}, nil
	}
	return expr, nil
}

// logicalOr parses short-circuiting 'or'.
func (p *Parser) logicalOr() (ExpressionNode, error) {
	if err := p.checkLeadingOperator(p.logicalAnd, lexer.OR_KEY); err != nil {
		return nil, err
	}

	expr, err := p.logicalAnd()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.OR_KEY) {
		operator := p.previous()
		right, err := p.logicalAnd()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpressionNode{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

// logicalAnd parses short-circuiting 'and'.
func (p *Parser) logicalAnd() (ExpressionNode, error) {
	if err := p.checkLeadingOperator(p.equality, lexer.AND_KEY); err != nil {
		return nil, err
	}

	expr, err := p.equality()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.AND_KEY) {
		operator := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpressionNode{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

// equality parses == and !=.
func (p *Parser) equality() (ExpressionNode, error) {
	if err := p.checkLeadingOperator(p.comparison, lexer.EQ_OP, lexer.NE_OP); err != nil {
		return nil, err
	}

	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.EQ_OP, lexer.NE_OP) {
		operator := p.previous()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpressionNode{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

// comparison parses the ordering operators.
func (p *Parser) comparison() (ExpressionNode, error) {
	if err := p.checkLeadingOperator(p.rangeLevel, lexer.LT_OP, lexer.LE_OP, lexer.GT_OP, lexer.GE_OP); err != nil {
		return nil, err
	}

	expr, err := p.rangeLevel()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.LT_OP, lexer.LE_OP, lexer.GT_OP, lexer.GE_OP) {
		operator := p.previous()
		right, err := p.rangeLevel()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpressionNode{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

// rangeLevel parses the '..' range operator.
func (p *Parser) rangeLevel() (ExpressionNode, error) {
	if err := p.checkLeadingOperator(p.term, lexer.RANGE_OP); err != nil {
		return nil, err
	}

	expr, err := p.term()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.RANGE_OP) {
		operator := p.previous()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpressionNode{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

// term parses + and -. Only a leading '+' gets the leading-operator
// diagnostic; a leading '-' is unary negation.
func (p *Parser) term() (ExpressionNode, error) {
	if err := p.checkLeadingOperator(p.factor, lexer.PLUS_OP); err != nil {
		return nil, err
	}

	expr, err := p.factor()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.PLUS_OP, lexer.MINUS_OP) {
		operator := p.previous()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpressionNode{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

// factor parses * and /.
func (p *Parser) factor() (ExpressionNode, error) {
	if err := p.checkLeadingOperator(p.unary, lexer.MUL_OP, lexer.DIV_OP); err != nil {
		return nil, err
	}

	expr, err := p.unary()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.MUL_OP, lexer.DIV_OP) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpressionNode{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

// unary parses prefix ! and -.
func (p *Parser) unary() (ExpressionNode, error) {
	if p.match(lexer.NOT_OP, lexer.MINUS_OP) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpressionNode{Operator: operator, Right: right}, nil
	}
	return p.call()
}

// call parses a primary followed by any number of call argument lists.
func (p *Parser) call() (ExpressionNode, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for p.match(lexer.LEFT_PAREN) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}

// finishCall parses the argument list of a call whose '(' was just
// consumed. Arguments parse at assignment level so a ',' separates
// arguments instead of forming a sequence expression.
func (p *Parser) finishCall(callee ExpressionNode) (ExpressionNode, error) {
	arguments := make([]ExpressionNode, 0)
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(arguments) >= maxCallArguments {
				p.reportAt(p.peek(), "Can't have more than 255 arguments.")
			}
			arg, err := p.assignment()
			if err != nil {
				return nil, err
			}
			arguments = append(arguments, arg)
			if !p.match(lexer.COMMA_DELIM) {
				break
			}
		}
	}

	paren, err := p.consume(lexer.RIGHT_PAREN, "Expected ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &CallExpressionNode{Callee: callee, Paren: paren, Arguments: arguments}, nil
}

// primary parses literals, identifiers, and parenthesized expressions.
func (p *Parser) primary() (ExpressionNode, error) {
	switch {
	case p.match(lexer.FALSE_KEY):
		return &BooleanLiteralExpressionNode{Token: p.previous(), Value: &objects.Boolean{Value: false}}, nil
	case p.match(lexer.TRUE_KEY):
		return &BooleanLiteralExpressionNode{Token: p.previous(), Value: &objects.Boolean{Value: true}}, nil
	case p.match(lexer.NIL_KEY):
		return &NilLiteralExpressionNode{Token: p.previous()}, nil
	case p.match(lexer.INT_LIT):
		token := p.previous()
		return &IntegerLiteralExpressionNode{Token: token, Value: &objects.Integer{Value: token.Literal.(int64)}}, nil
	case p.match(lexer.FLOAT_LIT):
		token := p.previous()
		return &FloatLiteralExpressionNode{Token: token, Value: &objects.Float{Value: token.Literal.(float64)}}, nil
	case p.match(lexer.STRING_LIT):
		token := p.previous()
		return &StringLiteralExpressionNode{Token: token, Value: &objects.String{Value: token.Literal.(string)}}, nil
	case p.match(lexer.IDENTIFIER_ID):
		token := p.previous()
		return &IdentifierExpressionNode{Token: token, Name: token.Lexeme}, nil
	case p.match(lexer.LEFT_PAREN):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RIGHT_PAREN, "Expected ')' after expression."); err != nil {
			return nil, err
		}
		return &ParenthesizedExpressionNode{Expr: expr}, nil
	}
	return nil, p.errorAt(p.peek(), "Expected expression.")
}
