/*
File    : saga/function/function.go
*/

// Package function defines the user-defined callable values of the SAGA
// language: functions (closures), class constructors, and class instances.
// They live in their own package so that objects stays free of parser and
// scope dependencies while the evaluator can still treat every callable
// uniformly.
package function

import (
	"fmt"

	"github.com/saga-lang/saga/objects"
	"github.com/saga-lang/saga/parser"
	"github.com/saga-lang/saga/scope"
)

// Function represents a user-defined function value. It pairs the declared
// parameters and body with the environment in effect at the declaration;
// that captured environment is what gives closures access to outer
// variables long after their defining scope has exited. Multiple closures
// declared in the same scope share one captured environment.
type Function struct {
	Declaration *parser.FunctionStatementNode // The fn declaration (name, params, body)
	Closure     *scope.Scope                  // Environment captured at the declaration
}

// NewFunction creates a function value closing over the given environment.
func NewFunction(declaration *parser.FunctionStatementNode, closure *scope.Scope) *Function {
	return &Function{
		Declaration: declaration,
		Closure:     closure,
	}
}

// Arity returns the exact number of arguments the function requires.
func (f *Function) Arity() int {
	return len(f.Declaration.Params)
}

// GetType returns the function type
func (f *Function) GetType() objects.SagaType {
	return objects.FunctionType
}

// ToString returns the display form `<fn NAME>`
func (f *Function) ToString() string {
	return fmt.Sprintf("<fn %s>", f.Declaration.Name.Lexeme)
}

// ToObject returns a detailed representation including parameter names
func (f *Function) ToObject() string {
	params := ""
	for i, param := range f.Declaration.Params {
		if i > 0 {
			params += ", "
		}
		params += param.Lexeme
	}
	return fmt.Sprintf("<fn %s(%s)>", f.Declaration.Name.Lexeme, params)
}

// Class represents a class constructor value. Calling it takes no arguments
// and produces a bare instance. Methods are parsed, resolved, and retained
// here, but the language currently has no property access syntax, so there
// is no dispatch path to them.
type Class struct {
	Name    string               // The declared class name
	Methods map[string]*Function // Declared methods by name
}

// NewClass creates a class value with the given methods.
func NewClass(name string, methods map[string]*Function) *Class {
	return &Class{
		Name:    name,
		Methods: methods,
	}
}

// Arity returns 0: the placeholder constructor takes no arguments.
func (c *Class) Arity() int {
	return 0
}

// GetType returns the class type
func (c *Class) GetType() objects.SagaType {
	return objects.ClassType
}

// ToString returns the class name
func (c *Class) ToString() string {
	return c.Name
}

// ToObject returns a detailed representation
func (c *Class) ToObject() string {
	return fmt.Sprintf("<class %s>", c.Name)
}

// Instance represents an object created by calling a class constructor.
type Instance struct {
	Class *Class // The constructing class
}

// NewInstance creates an instance of class.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class}
}

// GetType returns the instance type
func (i *Instance) GetType() objects.SagaType {
	return objects.InstanceType
}

// ToString returns the display form `NAME instance`
func (i *Instance) ToString() string {
	return fmt.Sprintf("%s instance", i.Class.Name)
}

// ToObject returns a detailed representation
func (i *Instance) ToObject() string {
	return fmt.Sprintf("<instance of %s>", i.Class.Name)
}
