/*
File    : saga/interpreter/interpreter.go
*/

// Package interpreter wires the SAGA pipeline together: source text is
// lexed into tokens, parsed into an AST, statically resolved, and finally
// evaluated. The diagnostics sink is inspected after parsing and after
// resolution, so static errors short-circuit everything downstream; the
// parser runs even when lexing reported errors.
package interpreter

import (
	"fmt"

	"github.com/saga-lang/saga/diag"
	"github.com/saga-lang/saga/eval"
	"github.com/saga-lang/saga/lexer"
	"github.com/saga-lang/saga/objects"
	"github.com/saga-lang/saga/parser"
	"github.com/saga-lang/saga/resolver"
)

// Saga is one interpreter instance: a diagnostics sink plus an evaluator
// whose global environment persists across Run calls, which is what lets a
// REPL session accumulate definitions line by line.
type Saga struct {
	Sink *diag.Sink      // Diagnostics sink shared by all phases
	Ev   *eval.Evaluator // The evaluator, holding the session's globals
}

// NewSaga creates an interpreter reporting diagnostics to stdout.
func NewSaga() *Saga {
	return NewSagaWithSink(diag.NewSink())
}

// NewSagaWithSink creates an interpreter around an existing sink. Tests use
// this to capture diagnostics.
func NewSagaWithSink(sink *diag.Sink) *Saga {
	return &Saga{
		Sink: sink,
		Ev:   eval.NewEvaluator(sink),
	}
}

// Run tokenizes, parses, resolves, and interprets source. Parsing always
// follows lexing; resolution and evaluation run only when every earlier
// phase was clean. Runtime errors surface through
// the sink's HadRuntimeError flag.
//
// In REPL mode a sole expression statement is auto-printed: the expression
// is evaluated directly and any non-nil value is written to the program
// output.
func (s *Saga) Run(source string, isRepl bool) {
	lex := lexer.NewLexer(source, s.Sink)
	tokens := lex.LexTokens()

	p := parser.NewParser(tokens, s.Sink)
	statements := p.Parse()
	if s.Sink.HadError {
		return
	}

	res := resolver.NewResolver(s.Ev, s.Sink)
	res.Resolve(statements)
	if s.Sink.HadError {
		return
	}

	if isRepl && len(statements) == 1 {
		if exprStmt, ok := statements[0].(*parser.ExpressionStatementNode); ok {
			value := s.Ev.EvalExpression(exprStmt.Expr)
			if value != nil {
				if _, isNil := value.(*objects.Nil); !isNil {
					fmt.Fprintln(s.Ev.Writer, value.ToString())
				}
			}
			return
		}
	}

	s.Ev.Interpret(statements)
}
