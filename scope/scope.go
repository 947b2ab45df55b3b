/*
File    : saga/scope/scope.go
*/

// Package scope implements the lexical environment chain of the SAGA
// interpreter. Each Scope is one frame mapping names to values with an
// optional enclosing parent; functions capture the frame in effect at their
// definition, which is what makes closures work.
package scope

import "github.com/saga-lang/saga/objects"

// Scope defines a lexical scope boundary for variable lifetime and
// accessibility.
//
// The scope chain is traversed upward (from child to parent) during plain
// variable lookup. When the resolver has computed a scope distance for a
// variable use, the distance-indexed accessors step to the exact frame
// instead of searching, so a lookup can never land on the wrong shadowing
// binding.
type Scope struct {
	// Variables maps variable names to their current values in this frame
	Variables map[string]objects.Object

	// Parent points to the enclosing scope, forming a scope chain.
	// nil indicates this is the global (root) scope.
	Parent *Scope
}

// NewScope creates a Scope enclosed by parent. A nil parent creates the
// global (root) scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		Variables: make(map[string]objects.Object),
		Parent:    parent,
	}
}

// Define binds a name in this frame only, shadowing any binding of the same
// name in enclosing frames. Redefining an existing name in the same frame
// simply overwrites it.
func (s *Scope) Define(name string, value objects.Object) {
	s.Variables[name] = value
}

// Get looks a name up in this frame and then outward along the chain.
// The boolean reports whether the name was found anywhere; the caller turns
// a miss into an "Undefined variable" runtime error with source position.
func (s *Scope) Get(name string) (objects.Object, bool) {
	if value, ok := s.Variables[name]; ok {
		return value, true
	}
	if s.Parent != nil {
		return s.Parent.Get(name)
	}
	return nil, false
}

// Assign overwrites an existing binding, searching this frame and then
// outward along the chain. It never creates a binding: assigning an
// undefined name reports false and the caller raises the error.
func (s *Scope) Assign(name string, value objects.Object) bool {
	if _, ok := s.Variables[name]; ok {
		s.Variables[name] = value
		return true
	}
	if s.Parent != nil {
		return s.Parent.Assign(name, value)
	}
	return false
}

// Ancestor returns the frame exactly distance steps up the parent chain.
// Distance 0 is the receiver itself. The resolver guarantees the distance is
// valid, so a nil result indicates an interpreter bug, not a user error.
func (s *Scope) Ancestor(distance int) *Scope {
	frame := s
	for i := 0; i < distance; i++ {
		if frame == nil {
			return nil
		}
		frame = frame.Parent
	}
	return frame
}

// GetAt reads a name from the frame exactly distance steps up the chain,
// without searching any other frame.
func (s *Scope) GetAt(distance int, name string) (objects.Object, bool) {
	frame := s.Ancestor(distance)
	if frame == nil {
		return nil, false
	}
	value, ok := frame.Variables[name]
	return value, ok
}

// AssignAt overwrites a name in the frame exactly distance steps up the
// chain, without searching any other frame.
func (s *Scope) AssignAt(distance int, name string, value objects.Object) bool {
	frame := s.Ancestor(distance)
	if frame == nil {
		return false
	}
	if _, ok := frame.Variables[name]; !ok {
		return false
	}
	frame.Variables[name] = value
	return true
}
