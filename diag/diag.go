/*
File    : saga/diag/diag.go
*/

// Package diag implements the diagnostics sink for the SAGA interpreter.
// Every phase of the pipeline (lexer, parser, resolver, evaluator) reports
// errors into a single Sink, and the pipeline driver checks the sink between
// phases to decide whether downstream work may proceed. The sink is an
// explicit object threaded through the pipeline rather than process-wide
// state, so independent interpreter instances (and tests) never interfere.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// errorColor is used for every diagnostic line. Diagnostics go to stdout
// alongside program output, so color is what sets them apart on a terminal.
var errorColor = color.New(color.FgRed)

// Sink collects diagnostics for one interpreter instance.
//
// HadError covers static problems (lexical, parse, resolution) and gates the
// pipeline: the parser still runs after lexical errors, but once parsing or
// resolution ends with the flag set, no later phase runs. HadRuntimeError is set only by the
// evaluator. File mode maps the flags to exit codes 65 and 70 respectively;
// the REPL clears HadError after every line so one bad input does not poison
// the session.
type Sink struct {
	Out             io.Writer // Destination for diagnostic lines (default: os.Stdout)
	HadError        bool      // A lexical, parse, or resolution error was reported
	HadRuntimeError bool      // A runtime error was reported
}

// NewSink creates a Sink writing to standard output.
func NewSink() *Sink {
	return &Sink{Out: os.Stdout}
}

// NewSinkWithWriter creates a Sink writing to the given writer.
// Used by tests to capture diagnostic output.
func NewSinkWithWriter(out io.Writer) *Sink {
	return &Sink{Out: out}
}

// Report records a static error at the given source position.
// The line format is fixed:
//
//	SAGA::[line L, column C] Error: MSG
func (s *Sink) Report(line int, column int, message string) {
	errorColor.Fprintf(s.Out, "SAGA::[line %d, column %d] Error: %s\n", line, column, message)
	s.HadError = true
}

// ReportAt records a static error at a token, naming the offending lexeme.
// atEnd marks diagnostics raised at the EOF token, where there is no lexeme
// worth quoting.
func (s *Sink) ReportAt(line int, column int, lexeme string, atEnd bool, message string) {
	if atEnd {
		s.Report(line, column, fmt.Sprintf("at end: %s", message))
	} else {
		s.Report(line, column, fmt.Sprintf("at '%s': %s", lexeme, message))
	}
}

// RuntimeError records an error raised during evaluation. It uses the same
// line format as Report but flips the runtime flag instead of the static one.
func (s *Sink) RuntimeError(line int, column int, message string) {
	errorColor.Fprintf(s.Out, "SAGA::[line %d, column %d] Error: %s\n", line, column, message)
	s.HadRuntimeError = true
}

// Reset clears the static error flag. The REPL calls this after every line.
func (s *Sink) Reset() {
	s.HadError = false
}
