/*
File    : saga/std/builtins.go
*/

// Package std defines the native callables of the SAGA language. Every
// native is an objects.Object, so the evaluator installs them directly as
// globals; the registry is a package-level slice that each file of the
// package appends to in its init function.
package std

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/saga-lang/saga/objects"
)

// Runtime is the narrow view of the evaluator that natives may use. It
// exists so std never imports eval.
type Runtime interface {
	// GetInputReader returns the buffered reader natives read user input from
	GetInputReader() *bufio.Reader
}

// CallbackFunc is the implementation signature of a native callable. It
// receives the runtime, the evaluator's output writer, and the evaluated
// arguments, and returns a result object (or an error object).
type CallbackFunc func(rt Runtime, writer io.Writer, args ...objects.Object) objects.Object

// Variadic is the arity of natives accepting a variable number of
// arguments; the native validates the count itself.
const Variadic = -1

// Builtin represents a native function. It implements objects.Object so it
// can live in the global environment like any other value.
type Builtin struct {
	Name       string       // The global name the native is bound to
	ArityCount int          // Exact argument count, or Variadic
	Callback   CallbackFunc // The implementation
}

// Arity returns the declared argument count (Variadic for input).
func (b *Builtin) Arity() int {
	return b.ArityCount
}

// GetType returns the native function type
func (b *Builtin) GetType() objects.SagaType {
	return objects.NativeType
}

// ToString returns the display form `<native fn>`
func (b *Builtin) ToString() string {
	return "<native fn>"
}

// ToObject returns a detailed representation including the name
func (b *Builtin) ToObject() string {
	return fmt.Sprintf("<native fn %s>", b.Name)
}

// Builtins is the global registry of native callables. Files in this
// package append to it during initialization; the evaluator defines every
// entry in the global scope of each new interpreter.
var Builtins = make([]*Builtin, 0)

// coreMethods are the natives without a filesystem dependency.
var coreMethods = []*Builtin{
	{Name: "clock", ArityCount: 0, Callback: clock},            // Wall-clock seconds as a float
	{Name: "random", ArityCount: 0, Callback: random},          // Uniform float in [0, 1)
	{Name: "random_int", ArityCount: 2, Callback: randomInt},   // Inclusive integer in [lo, hi]
	{Name: "input", ArityCount: Variadic, Callback: inputLine}, // One line from stdin, optional prompt
}

// init registers the core natives.
func init() {
	Builtins = append(Builtins, coreMethods...)
}

// clock returns the current wall-clock time in seconds as a float.
//
// Syntax: clock()
func clock(rt Runtime, writer io.Writer, args ...objects.Object) objects.Object {
	return &objects.Float{Value: float64(time.Now().UnixNano()) / float64(time.Second)}
}

// random returns a uniformly distributed float in [0, 1).
//
// Syntax: random()
func random(rt Runtime, writer io.Writer, args ...objects.Object) objects.Object {
	return &objects.Float{Value: rand.Float64()}
}

// randomInt returns a uniformly distributed integer between lo and hi,
// both inclusive.
//
// Syntax: random_int(lo, hi)
func randomInt(rt Runtime, writer io.Writer, args ...objects.Object) objects.Object {
	lo, ok := args[0].(*objects.Integer)
	if !ok {
		return createError("random_int() arguments must be integers.")
	}
	hi, ok := args[1].(*objects.Integer)
	if !ok {
		return createError("random_int() arguments must be integers.")
	}
	if hi.Value < lo.Value {
		return createError("random_int() upper bound is below the lower bound.")
	}
	return &objects.Integer{Value: lo.Value + rand.Int63n(hi.Value-lo.Value+1)}
}

// inputLine reads one line from the runtime's input reader, without the
// trailing newline. An optional single argument is printed as a prompt
// first, with no newline of its own.
//
// Syntax: input([prompt])
func inputLine(rt Runtime, writer io.Writer, args ...objects.Object) objects.Object {
	if len(args) > 1 {
		return createError("input() takes 0 or 1 arguments.")
	}
	if len(args) == 1 {
		fmt.Fprint(writer, args[0].ToString())
	}

	line, err := rt.GetInputReader().ReadString('\n')
	if err != nil && line == "" {
		return createError(fmt.Sprintf("Error reading input: %v", err))
	}
	line = strings.TrimRight(line, "\r\n")
	return &objects.String{Value: line}
}

// createError builds a runtime error object. The evaluator stamps the call
// site position onto errors produced by natives.
func createError(message string) *objects.Error {
	return &objects.Error{Message: message}
}
