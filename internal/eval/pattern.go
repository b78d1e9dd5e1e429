package eval

import "github.com/sentra-lang/typeset/internal/value"

// Pattern destructures a value across let-bindings, loop variables, and
// function parameters (spec.md §4.1's "pattern destructuring": placeholder,
// binding, tuple-with-sink, named).
type Pattern interface {
	isPattern()
}

// Placeholder discards the matched value (`_`).
type Placeholder struct{}

func (Placeholder) isPattern() {}

// Binding binds the matched value to Name, optionally with a default
// (used for named function parameters: `fn(x: 1)`).
type Binding struct {
	Name    string
	Default Expr // nil if required / not a named parameter
}

func (Binding) isPattern() {}

// Tuple destructures an array into per-element patterns, with an optional
// trailing sink that collects the remaining elements as an array.
type Tuple struct {
	Elements []Pattern
	Sink     string // "" if no ".." sink
}

func (Tuple) isPattern() {}

// Named destructures a dictionary by key, binding each Pattern to its
// corresponding key's value.
type Named struct {
	Keys     []string
	Patterns []Pattern
}

func (Named) isPattern() {}

// Bind matches v against p, defining every bound name in frame.Define.
func Bind(p Pattern, v value.Value, define func(name string, v value.Value)) error {
	switch pp := p.(type) {
	case Placeholder:
		return nil
	case Binding:
		define(pp.Name, v)
		return nil
	case Tuple:
		arr, ok := v.(value.Array)
		if !ok {
			return &TypeError{Message: "cannot destructure " + v.Kind().String() + " as an array pattern"}
		}
		items := arr.Items()
		if pp.Sink == "" && len(items) != len(pp.Elements) {
			return &TypeError{Message: "pattern expects a fixed number of elements"}
		}
		if len(items) < len(pp.Elements) {
			return &TypeError{Message: "not enough elements to destructure"}
		}
		for i, elemPat := range pp.Elements {
			if err := Bind(elemPat, items[i], define); err != nil {
				return err
			}
		}
		if pp.Sink != "" {
			define(pp.Sink, value.NewArray(append([]value.Value{}, items[len(pp.Elements):]...)))
		}
		return nil
	case Named:
		dict, ok := v.(value.Dict)
		if !ok {
			return &TypeError{Message: "cannot destructure " + v.Kind().String() + " as a named pattern"}
		}
		for i, key := range pp.Keys {
			fv, ok := dict.Get(key)
			if !ok {
				return &TypeError{Message: "missing key \"" + key + "\" in destructuring pattern"}
			}
			if err := Bind(pp.Patterns[i], fv, define); err != nil {
				return err
			}
		}
		return nil
	default:
		return &TypeError{Message: "unsupported pattern"}
	}
}

// TypeError reports a pattern/value mismatch encountered during
// evaluation, distinct from the Diagnostic sink used for warnings: these
// are always fatal to the current evaluation.
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string { return e.Message }
