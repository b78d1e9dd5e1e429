package eval

import (
	"github.com/sentra-lang/typeset/internal/scope"
	"github.com/sentra-lang/typeset/internal/value"
)

// Closure is a callable value.Value: either a user-defined lambda closing
// over a captured frame, or a native function wired in from the
// evaluator's standard library. Grounded on internal/vm/value.go's single
// "*Function" concrete case wrapping vm.Value, generalized into the two
// variants (interpreted, native) a tree-walker needs.
type Closure struct {
	Name     string
	Params   []Pattern
	Sink     string
	Body     Expr
	Captured *scope.Frame

	// Native, if set, is invoked instead of evaluating Body — used for
	// library functions implemented directly in Go.
	Native func(ev *Evaluator, args value.Args) (value.Value, error)
}

func (c *Closure) Kind() value.Kind { return value.KindFunc }

func (c *Closure) Repr() string {
	if c.Name != "" {
		return c.Name
	}
	return "(anonymous function)"
}

func (c *Closure) Truthy() bool { return true }

// bindArgs applies positional, named, and sink parameters to a fresh frame
// nested in the closure's captured environment. Parameters whose default
// applies are returned in pendingDefaults for the caller to evaluate
// against the now-populated frame (defaults may reference earlier
// parameters, so they cannot be resolved before the frame exists).
func (c *Closure) bindArgs(args value.Args) (frame *scope.Frame, pendingDefaults []Binding, err error) {
	frame = scope.NewFrame(c.Captured)
	// Self-binding: a named closure can call itself by name from within its
	// own body (spec.md §4.1's "optional self-binding for named closures").
	// Bound in the call frame, not Captured, so it is visible to the body
	// being evaluated without leaking into whatever captured the closure.
	if c.Name != "" {
		frame.Define(c.Name, c)
	}
	define := func(name string, v value.Value) { frame.Define(name, v) }

	positional := make([]value.Value, len(args.Positional))
	copy(positional, args.Positional)

	for _, p := range c.Params {
		b, ok := p.(Binding)
		if !ok {
			if len(positional) == 0 {
				return nil, nil, &TypeError{Message: "missing argument"}
			}
			if err := Bind(p, positional[0], define); err != nil {
				return nil, nil, err
			}
			positional = positional[1:]
			continue
		}
		if named, ok := args.Named.Get(b.Name); ok {
			define(b.Name, named)
			continue
		}
		if len(positional) > 0 {
			define(b.Name, positional[0])
			positional = positional[1:]
			continue
		}
		if b.Default != nil {
			pendingDefaults = append(pendingDefaults, b)
			continue
		}
		return nil, nil, &TypeError{Message: "missing argument \"" + b.Name + "\""}
	}

	if c.Sink != "" {
		define(c.Sink, value.Args{Positional: positional, Named: value.NewDict()})
	}
	return frame, pendingDefaults, nil
}
