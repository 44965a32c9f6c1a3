/*
File : spicy/scope/scope.go
*/

// Package scope implements SpicyLang's lexical environments: linked
// frames of name-to-value bindings plus the manager that tracks the
// current frame across block and call boundaries.
package scope

import (
	"errors"

	"github.com/spicylang/spicy/objects"
)

// ErrUndefined is reported when a name is not bound in any reachable frame.
var ErrUndefined = errors.New("Undefined variable.")

// ErrUninitialized is reported when a binding holds the nil value: the
// variable was declared without an initializer, or nil was stored in it.
var ErrUninitialized = errors.New("Uninitialized variable.")

// Scope is one environment frame: a map of bindings plus an optional
// parent reference. The outermost frame (nil parent) is the global
// frame. Frames are shared by reference: closures keep the frames they
// captured alive.
//
// The frame chain supports:
//   - Variable shadowing: inner frames can rebind names from outer frames
//   - Closures: functions capture their defining frame and keep reading
//     and writing through it
//   - Block scoping: each block gets its own frame
type Scope struct {
	// Objects maps variable names to their current values in this frame
	Objects map[string]objects.SpicyObject

	// Parent points to the enclosing frame; nil marks the global frame
	Parent *Scope
}

// NewScope creates a frame with the given parent (nil for the global
// frame).
func NewScope(parent *Scope) *Scope {
	return &Scope{
		Objects: make(map[string]objects.SpicyObject),
		Parent:  parent,
	}
}

// Define inserts or overwrites a binding in this frame.
func (s *Scope) Define(name string, value objects.SpicyObject) {
	s.Objects[name] = value
}

// Assign overwrites the binding in the nearest frame that contains it,
// or reports ErrUndefined.
func (s *Scope) Assign(name string, value objects.SpicyObject) error {
	if _, ok := s.Objects[name]; ok {
		s.Objects[name] = value
		return nil
	}
	if s.Parent != nil {
		return s.Parent.Assign(name, value)
	}
	return ErrUndefined
}

// Get reads the binding from the nearest frame that contains it. A
// binding that still holds the nil placeholder reports
// ErrUninitialized; a missing binding reports ErrUndefined.
func (s *Scope) Get(name string) (objects.SpicyObject, error) {
	if value, ok := s.Objects[name]; ok {
		if _, uninit := value.(*objects.Nil); uninit {
			return nil, ErrUninitialized
		}
		return value, nil
	}
	if s.Parent != nil {
		return s.Parent.Get(name)
	}
	return nil, ErrUndefined
}

// IsGlobal reports whether this frame is the outermost one.
func (s *Scope) IsGlobal() bool {
	return s.Parent == nil
}
