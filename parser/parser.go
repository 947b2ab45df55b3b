/*
File    : saga/parser/parser.go
*/

// Package parser turns the SAGA token stream into an abstract syntax tree.
// It is a recursive-descent parser with one-token lookahead and panic-mode
// error recovery: when a rule cannot proceed it reports a diagnostic to the
// sink, unwinds to the nearest declaration boundary via a sentinel error,
// and synchronizes to the next statement so the rest of the file still gets
// parsed. The parser also performs the language's desugarings: for-loops
// over ranges become let+while, and compound assignments become plain ones.
package parser

import (
	"github.com/saga-lang/saga/diag"
	"github.com/saga-lang/saga/lexer"
)

// maxCallArguments caps the number of arguments of a single call. Exceeding
// it is a diagnostic, not an abort: the parser stays in a valid state.
const maxCallArguments = 255

// parseError is the sentinel error used to unwind the parser to the nearest
// declaration during panic-mode recovery. The diagnostic was already
// reported when the sentinel was created, so it carries no payload.
type parseError struct{}

func (parseError) Error() string { return "parse error" }

// synchronizationSet lists the token types that begin a statement. Panic
// mode discards tokens until it sees one of these (or has just passed a
// NEWLINE), then resumes parsing.
var synchronizationSet = map[lexer.TokenType]bool{
	lexer.LET_KEY:      true,
	lexer.FN_KEY:       true,
	lexer.IF_KEY:       true,
	lexer.FOR_KEY:      true,
	lexer.WHILE_KEY:    true,
	lexer.CLASS_KEY:    true,
	lexer.RETURN_KEY:   true,
	lexer.IMPORT_KEY:   true,
	lexer.SAY_KEY:      true,
	lexer.BREAK_KEY:    true,
	lexer.CONTINUE_KEY: true,
}

// Parser consumes a token stream and produces statements. Errors accumulate
// in the diagnostics sink; callers gate evaluation on a clean sink.
type Parser struct {
	Tokens []lexer.Token // The full token stream, EOF-terminated
	Sink   *diag.Sink    // Diagnostics sink shared with the other phases

	current int // Index of the next token to consume
}

// NewParser creates a Parser over tokens, reporting errors to sink.
func NewParser(tokens []lexer.Token, sink *diag.Sink) *Parser {
	return &Parser{
		Tokens: tokens,
		Sink:   sink,
	}
}

// Parse repeatedly parses declarations until EOF and returns them. A
// declaration that failed to parse contributes nothing to the slice; its
// diagnostics are already in the sink.
func (p *Parser) Parse() []StatementNode {
	statements := make([]StatementNode, 0)
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// declaration parses one class, fn, or let declaration, or any other
// statement. This is the recovery boundary: a parse error below this point
// synchronizes here and yields nil.
func (p *Parser) declaration() StatementNode {
	var stmt StatementNode
	var err error

	switch {
	case p.match(lexer.CLASS_KEY):
		stmt, err = p.classDeclaration()
	case p.match(lexer.FN_KEY):
		stmt, err = p.functionDeclaration("function")
	case p.match(lexer.LET_KEY):
		stmt, err = p.letDeclaration()
	default:
		stmt, err = p.statement()
	}

	if err != nil {
		p.synchronize()
		return nil
	}
	return stmt
}

// synchronize discards tokens until the previous token is a NEWLINE or the
// next token begins a statement, leaving the parser at a plausible
// declaration boundary.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == lexer.NEWLINE {
			return
		}
		if synchronizationSet[p.peek().Type] {
			return
		}
		p.advance()
	}
}

// ----------------------------------------------------------------------------
// Token stream helpers
// ----------------------------------------------------------------------------

// match consumes the current token if it is one of the candidate types.
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, tokenType := range types {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

// check reports whether the current token has the given type, without
// consuming it. EOF_TYPE may be checked for explicitly.
func (p *Parser) check(tokenType lexer.TokenType) bool {
	if p.isAtEnd() {
		return tokenType == lexer.EOF_TYPE
	}
	return p.peek().Type == tokenType
}

// advance consumes the current token and returns it. At EOF it keeps
// returning the EOF token.
func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// isAtEnd reports whether the parser has reached the EOF token.
func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.EOF_TYPE
}

// peek returns the current token without consuming it.
func (p *Parser) peek() lexer.Token {
	return p.Tokens[p.current]
}

// previous returns the most recently consumed token.
func (p *Parser) previous() lexer.Token {
	return p.Tokens[p.current-1]
}

// consume expects a token of the given type, consuming and returning it.
// Anything else raises a parse error with the given message.
func (p *Parser) consume(tokenType lexer.TokenType, message string) (lexer.Token, error) {
	if p.check(tokenType) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errorAt(p.peek(), message)
}

// consumeTerminator expects the end of a simple statement: a NEWLINE token,
// or EOF (a trailing newline is not required).
func (p *Parser) consumeTerminator() error {
	if p.match(lexer.NEWLINE) || p.check(lexer.EOF_TYPE) {
		return nil
	}
	return p.errorAt(p.peek(), "Expected a newline after statement.")
}

// errorAt reports a diagnostic anchored at token and returns the panic-mode
// sentinel for the caller to propagate.
func (p *Parser) errorAt(token lexer.Token, message string) error {
	p.reportAt(token, message)
	return parseError{}
}

// reportAt records a diagnostic at token without raising the panic-mode
// sentinel; used where the spec requires the parser to keep going (invalid
// assignment targets, the 255-argument cap).
func (p *Parser) reportAt(token lexer.Token, message string) {
	p.Sink.ReportAt(token.Line, token.Column, token.Lexeme, token.Type == lexer.EOF_TYPE, message)
}
