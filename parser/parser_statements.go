/*
File    : saga/parser/parser_statements.go
*/
package parser

import (
	"github.com/saga-lang/saga/lexer"
	"github.com/saga-lang/saga/objects"
)

// statement parses any non-declaration statement.
func (p *Parser) statement() (StatementNode, error) {
	switch {
	case p.match(lexer.IF_KEY):
		return p.ifStatement()
	case p.match(lexer.WHILE_KEY):
		return p.whileStatement()
	case p.match(lexer.FOR_KEY):
		return p.forStatement()
	case p.match(lexer.RETURN_KEY):
		return p.returnStatement()
	case p.match(lexer.BREAK_KEY):
		return p.breakStatement()
	case p.match(lexer.CONTINUE_KEY):
		return p.continueStatement()
	case p.match(lexer.PASS_KEY):
		return p.passStatement()
	case p.match(lexer.SAY_KEY):
		return p.sayStatement()
	case p.match(lexer.IMPORT_KEY):
		// The keyword is reserved so it can synchronize recovery, but the
		// feature does not exist yet.
		return nil, p.errorAt(p.previous(), "'import' is reserved; imports are not supported.")
	}
	return p.expressionStatement()
}

// suite parses the block shape shared by every compound statement:
// ':' NEWLINE INDENT statement+ DEDENT. EOF closes any open suite, so a file
// may end mid-block without a trailing dedent.
func (p *Parser) suite(context string) (*BlockStatementNode, error) {
	if _, err := p.consume(lexer.COLON_DELIM, "Expected ':' after "+context+"."); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.NEWLINE, "Expected a newline after ':'."); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.INDENT, "Expected an indented block."); err != nil {
		return nil, err
	}

	statements := make([]StatementNode, 0)
	for !p.check(lexer.DEDENT) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}

	if !p.isAtEnd() {
		if _, err := p.consume(lexer.DEDENT, "Expected dedent after block."); err != nil {
			return nil, err
		}
	}
	return &BlockStatementNode{Statements: statements}, nil
}

// letDeclaration parses `let NAME` with an optional initializer.
func (p *Parser) letDeclaration() (StatementNode, error) {
	name, err := p.consume(lexer.IDENTIFIER_ID, "Expected variable name after 'let'.")
	if err != nil {
		return nil, err
	}

	var initializer ExpressionNode
	if p.match(lexer.ASSIGN_OP) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if err := p.consumeTerminator(); err != nil {
		return nil, err
	}
	return &LetStatementNode{Name: name, Initializer: initializer}, nil
}

// functionDeclaration parses a fn declaration (or a class method; kind only
// changes the diagnostics).
func (p *Parser) functionDeclaration(kind string) (*FunctionStatementNode, error) {
	name, err := p.consume(lexer.IDENTIFIER_ID, "Expected "+kind+" name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LEFT_PAREN, "Expected '(' after "+kind+" name."); err != nil {
		return nil, err
	}

	params := make([]lexer.Token, 0)
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(params) >= maxCallArguments {
				p.reportAt(p.peek(), "Can't have more than 255 parameters.")
			}
			param, err := p.consume(lexer.IDENTIFIER_ID, "Expected parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(lexer.COMMA_DELIM) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.RIGHT_PAREN, "Expected ')' after parameters."); err != nil {
		return nil, err
	}

	body, err := p.suite(kind + " signature")
	if err != nil {
		return nil, err
	}
	return &FunctionStatementNode{Name: name, Params: params, Body: body}, nil
}

// classDeclaration parses a class body: fn methods, or a lone pass for an
// empty class.
func (p *Parser) classDeclaration() (StatementNode, error) {
	name, err := p.consume(lexer.IDENTIFIER_ID, "Expected class name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.COLON_DELIM, "Expected ':' after class name."); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.NEWLINE, "Expected a newline after ':'."); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.INDENT, "Expected an indented class body."); err != nil {
		return nil, err
	}

	methods := make([]*FunctionStatementNode, 0)
	for !p.check(lexer.DEDENT) && !p.isAtEnd() {
		if p.match(lexer.PASS_KEY) {
			if err := p.consumeTerminator(); err != nil {
				return nil, err
			}
			continue
		}
		if _, err := p.consume(lexer.FN_KEY, "Expected method declaration in class body."); err != nil {
			return nil, err
		}
		method, err := p.functionDeclaration("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}

	if !p.isAtEnd() {
		if _, err := p.consume(lexer.DEDENT, "Expected dedent after class body."); err != nil {
			return nil, err
		}
	}
	return &ClassStatementNode{Name: name, Methods: methods}, nil
}

// ifStatement parses a conditional with an optional else suite.
func (p *Parser) ifStatement() (StatementNode, error) {
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	thenBranch, err := p.suite("if condition")
	if err != nil {
		return nil, err
	}

	var elseBranch *BlockStatementNode
	if p.match(lexer.ELSE_KEY) {
		elseBranch, err = p.suite("'else'")
		if err != nil {
			return nil, err
		}
	}
	return &IfStatementNode{Condition: condition, Then: thenBranch, Else: elseBranch}, nil
}

// whileStatement parses a while loop.
func (p *Parser) whileStatement() (StatementNode, error) {
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.suite("while condition")
	if err != nil {
		return nil, err
	}
	return &WhileStatementNode{Condition: condition, Body: body}, nil
}

// forStatement parses `for IDENT in A..B:` SUITE and desugars it at parse
// time into the equivalent primitive form:
//
//	let IDENT = A
//	while IDENT <= B:
//	    SUITE
//	    IDENT = IDENT + 1
//
// Only range iterables are supported. The synthesized comparison and
// increment reuse the loop variable's source location so runtime
// diagnostics point at the loop header.
func (p *Parser) forStatement() (StatementNode, error) {
	name, err := p.consume(lexer.IDENTIFIER_ID, "Expected loop variable name after 'for'.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.IN_KEY, "Expected 'in' after loop variable."); err != nil {
		return nil, err
	}

	iterable, err := p.expression()
	if err != nil {
		return nil, err
	}
	rangeExpr, ok := iterable.(*BinaryExpressionNode)
	if !ok || rangeExpr.Operator.Type != lexer.RANGE_OP {
		return nil, p.errorAt(name, "'for' loops can only iterate over a range (A..B).")
	}

	body, err := p.suite("for clauses")
	if err != nil {
		return nil, err
	}

	loopVar := func() *IdentifierExpressionNode {
		return &IdentifierExpressionNode{Token: name, Name: name.Lexeme}
	}

	initializer := &LetStatementNode{Name: name, Initializer: rangeExpr.Left}

	condition := &BinaryExpressionNode{
		Left:     loopVar(),
		Operator: lexer.NewToken(lexer.LE_OP, "<=", name.Line, name.Column),
		Right:    rangeExpr.Right,
	}

	increment := &ExpressionStatementNode{
		Expr: &AssignmentExpressionNode{
			Name: name,
			Value: &BinaryExpressionNode{
				Left:     loopVar(),
				Operator: lexer.NewToken(lexer.PLUS_OP, "+", name.Line, name.Column),
				Right: &IntegerLiteralExpressionNode{
					Token: lexer.NewLiteralToken(lexer.INT_LIT, "1", int64(1), name.Line, name.Column),
					Value: &objects.Integer{Value: 1},
				},
			},
		},
	}

	loop := &WhileStatementNode{
		Condition: condition,
		Body:      &BlockStatementNode{Statements: append(body.Statements, increment)},
	}

	return &BlockStatementNode{Statements: []StatementNode{initializer, loop}}, nil
}

// returnStatement parses a return with an optional value.
func (p *Parser) returnStatement() (StatementNode, error) {
	keyword := p.previous()

	var value ExpressionNode
	if !p.check(lexer.NEWLINE) && !p.check(lexer.EOF_TYPE) {
		var err error
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if err := p.consumeTerminator(); err != nil {
		return nil, err
	}
	return &ReturnStatementNode{Keyword: keyword, Value: value}, nil
}

// breakStatement parses a break.
func (p *Parser) breakStatement() (StatementNode, error) {
	keyword := p.previous()
	if err := p.consumeTerminator(); err != nil {
		return nil, err
	}
	return &BreakStatementNode{Keyword: keyword}, nil
}

// continueStatement parses a continue.
func (p *Parser) continueStatement() (StatementNode, error) {
	keyword := p.previous()
	if err := p.consumeTerminator(); err != nil {
		return nil, err
	}
	return &ContinueStatementNode{Keyword: keyword}, nil
}

// passStatement parses the explicit empty statement.
func (p *Parser) passStatement() (StatementNode, error) {
	keyword := p.previous()
	if err := p.consumeTerminator(); err != nil {
		return nil, err
	}
	return &PassStatementNode{Keyword: keyword}, nil
}

// sayStatement parses a say statement.
func (p *Parser) sayStatement() (StatementNode, error) {
	keyword := p.previous()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.consumeTerminator(); err != nil {
		return nil, err
	}
	return &SayStatementNode{Keyword: keyword, Expr: value}, nil
}

// expressionStatement parses a bare expression evaluated for effect.
func (p *Parser) expressionStatement() (StatementNode, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.consumeTerminator(); err != nil {
		return nil, err
	}
	return &ExpressionStatementNode{Expr: expr}, nil
}
