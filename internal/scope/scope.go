// Package scope implements the evaluator's lexical binding tables: nested
// block scopes backed by a name->slot map, a global/library tier, and the
// math-mode fallback tier spec.md §4.1 names.
//
// Grounded on internal/vm/vm.go's ScopeFrame (map[string]Value locals plus
// a parent pointer, used for if/while/for block scoping) and
// EnhancedVM.globals/globalMap (array-backed globals plus a name->index
// map for O(1) lookup), generalized from a single flat global table into
// the three-tier lookup chain (local scope chain -> library -> math
// library) spec.md §4.1 requires, and extended with closure capture
// snapshotting (spec.md §4.1's "closures with capture-at-creation
// snapshotting").
package scope

import "github.com/sentra-lang/typeset/internal/value"

// Frame is one lexical block scope: a flat binding map plus a parent link,
// matching internal/vm/vm.go's ScopeFrame exactly in shape.
type Frame struct {
	locals map[string]value.Value
	parent *Frame
}

// NewFrame creates a scope nested inside parent (nil for the outermost
// function-body scope).
func NewFrame(parent *Frame) *Frame {
	return &Frame{locals: make(map[string]value.Value), parent: parent}
}

// Define binds name in this frame, shadowing any outer binding of the same
// name.
func (f *Frame) Define(name string, v value.Value) {
	f.locals[name] = v
}

// Lookup searches this frame and its ancestors, nearest first.
func (f *Frame) Lookup(name string) (value.Value, bool) {
	for s := f; s != nil; s = s.parent {
		if v, ok := s.locals[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign rebinds the nearest existing binding of name, returning false if
// no frame in the chain defines it (the caller should then fall back to
// defining it fresh at the innermost scope, per spec.md's "assignment to
// an undeclared name creates a local binding" rule... see Evaluator).
func (f *Frame) Assign(name string, v value.Value) bool {
	for s := f; s != nil; s = s.parent {
		if _, ok := s.locals[name]; ok {
			s.locals[name] = v
			return true
		}
	}
	return false
}

// Snapshot captures the current bindings visible from f into a flat,
// independent map — used when a closure is created, so later mutation of
// the enclosing scope does not leak into it (spec.md §4.1's "closures with
// capture-at-creation snapshotting").
func (f *Frame) Snapshot() *Frame {
	flat := make(map[string]value.Value)
	var collect func(*Frame)
	collect = func(s *Frame) {
		if s == nil {
			return
		}
		collect(s.parent)
		for k, v := range s.locals {
			flat[k] = v
		}
	}
	collect(f)
	return &Frame{locals: flat}
}

// Library is the global/standard-library binding tier, consulted after the
// local scope chain is exhausted.
type Library struct {
	names map[string]value.Value
	math  map[string]value.Value
}

// NewLibrary creates an empty library scope.
func NewLibrary() *Library {
	return &Library{names: make(map[string]value.Value), math: make(map[string]value.Value)}
}

// Define binds name at the top level.
func (l *Library) Define(name string, v value.Value) {
	l.names[name] = v
}

// DefineMath binds name in the math-mode-only tier.
func (l *Library) DefineMath(name string, v value.Value) {
	l.math[name] = v
}

// Lookup returns the top-level binding for name.
func (l *Library) Lookup(name string) (value.Value, bool) {
	v, ok := l.names[name]
	return v, ok
}

// MathLookup returns the math-mode binding for name.
func (l *Library) MathLookup(name string) (value.Value, bool) {
	v, ok := l.math[name]
	return v, ok
}

// Resolver is the full three-tier name lookup spec.md §4.1 describes:
// local scope chain, then the library, then (only in math mode) the
// math-specific library tier.
type Resolver struct {
	Local   *Frame
	Library *Library
	InMath  bool
}

// Resolve looks up name across all applicable tiers, in precedence order.
func (r Resolver) Resolve(name string) (value.Value, bool) {
	if r.Local != nil {
		if v, ok := r.Local.Lookup(name); ok {
			return v, true
		}
	}
	if r.Library != nil {
		if v, ok := r.Library.Lookup(name); ok {
			return v, true
		}
	}
	if r.InMath && r.Library != nil {
		if v, ok := r.Library.MathLookup(name); ok {
			return v, true
		}
	}
	return nil, false
}
