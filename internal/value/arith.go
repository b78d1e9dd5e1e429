package value

import (
	"fmt"

	"github.com/sentra-lang/typeset/internal/geom"
)

// OpError reports that an arithmetic or comparison operator has no defined
// meaning for the given operand kinds.
type OpError struct {
	Op       string
	Lhs, Rhs Kind
}

func (e *OpError) Error() string {
	if e.Rhs == KindNone && e.Op == "neg" {
		return fmt.Sprintf("cannot apply unary '-' to %s", e.Lhs)
	}
	return fmt.Sprintf("cannot apply '%s' to %s and %s", e.Op, e.Lhs, e.Rhs)
}

// Add implements '+', defined for numerics (closed over their own kind),
// length/relative/fraction combinations that preserve both components,
// strings, arrays, and dictionaries, matching spec.md §3's "arithmetic
// with clearly defined allowed pairs."
func Add(a, b Value) (Value, error) {
	switch l := a.(type) {
	case Int:
		switch r := b.(type) {
		case Int:
			return l + r, nil
		case Float:
			return Float(l) + r, nil
		}
	case Float:
		switch r := b.(type) {
		case Int:
			return l + Float(r), nil
		case Float:
			return l + r, nil
		}
	case Length:
		if r, ok := b.(Length); ok {
			return Length(geom.Length(l).Add(geom.Length(r))), nil
		}
	case Angle:
		if r, ok := b.(Angle); ok {
			return l + r, nil
		}
	case Ratio:
		if r, ok := b.(Ratio); ok {
			return l + r, nil
		}
	case Relative:
		switch r := b.(type) {
		case Relative:
			return Relative(geom.Relative(l).Add(geom.Relative(r))), nil
		case Length:
			return Relative(geom.Relative(l).Add(geom.RelativeFromLength(geom.Length(r)))), nil
		case Ratio:
			return Relative(geom.Relative(l).Add(geom.RelativeFromRatio(geom.Ratio(r)))), nil
		}
	case Fraction:
		if r, ok := b.(Fraction); ok {
			return l + r, nil
		}
	case String:
		if r, ok := b.(String); ok {
			return l + r, nil
		}
	case Array:
		if r, ok := b.(Array); ok {
			return l.Concat(r), nil
		}
	case Dict:
		if r, ok := b.(Dict); ok {
			merged := l
			for _, k := range r.Keys() {
				v, _ := r.Get(k)
				merged = merged.With(k, v)
			}
			return merged, nil
		}
	}
	// Mixed length/relative additions: length + ratio or ratio + length
	// promote to Relative.
	if v, ok := addCrossPromote(a, b); ok {
		return v, nil
	}
	return nil, &OpError{Op: "+", Lhs: a.Kind(), Rhs: b.Kind()}
}

func addCrossPromote(a, b Value) (Value, bool) {
	al, aIsLen := a.(Length)
	ar, aIsRatio := a.(Ratio)
	bl, bIsLen := b.(Length)
	br, bIsRatio := b.(Ratio)
	switch {
	case aIsLen && bIsRatio:
		return Relative(geom.Relative{Ratio: geom.Ratio(br), Length: geom.Length(al)}), true
	case aIsRatio && bIsLen:
		return Relative(geom.Relative{Ratio: geom.Ratio(ar), Length: geom.Length(bl)}), true
	}
	return nil, false
}

// Sub implements binary '-' as Add(a, Neg(b)) where negation is defined,
// falling back to a direct OpError otherwise.
func Sub(a, b Value) (Value, error) {
	neg, err := Neg(b)
	if err != nil {
		return nil, &OpError{Op: "-", Lhs: a.Kind(), Rhs: b.Kind()}
	}
	v, err := Add(a, neg)
	if err != nil {
		return nil, &OpError{Op: "-", Lhs: a.Kind(), Rhs: b.Kind()}
	}
	return v, nil
}

// Neg implements unary '-'.
func Neg(a Value) (Value, error) {
	switch v := a.(type) {
	case Int:
		return -v, nil
	case Float:
		return -v, nil
	case Length:
		return Length(geom.Length(v).Neg()), nil
	case Angle:
		return -v, nil
	case Ratio:
		return -v, nil
	case Fraction:
		return -v, nil
	case Relative:
		g := geom.Relative(v)
		return Relative(geom.Relative{Ratio: -g.Ratio, Length: g.Length.Neg()}), nil
	}
	return nil, &OpError{Op: "neg", Lhs: a.Kind()}
}

// Mul implements '*', defined for numeric*numeric and length/relative/
// fraction scaled by a plain number.
func Mul(a, b Value) (Value, error) {
	if n, ok := asFloat(b); ok {
		if v, ok := scaleByFloat(a, n); ok {
			return v, nil
		}
	}
	if n, ok := asFloat(a); ok {
		if v, ok := scaleByFloat(b, n); ok {
			return v, nil
		}
	}
	switch l := a.(type) {
	case Int:
		if r, ok := b.(Int); ok {
			return l * r, nil
		}
	case String:
		if r, ok := b.(Int); ok {
			return repeatString(l, int(r)), nil
		}
	case Array:
		if r, ok := b.(Int); ok {
			return repeatArray(l, int(r)), nil
		}
	}
	return nil, &OpError{Op: "*", Lhs: a.Kind(), Rhs: b.Kind()}
}

func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n), true
	case Float:
		return float64(n), true
	}
	return 0, false
}

func scaleByFloat(v Value, n float64) (Value, bool) {
	switch t := v.(type) {
	case Float:
		return Float(float64(t) * n), true
	case Length:
		return Length(geom.Length(t).Mul(n)), true
	case Angle:
		return Angle(float64(t) * n), true
	case Ratio:
		return Ratio(float64(t) * n), true
	case Fraction:
		return Fraction(float64(t) * n), true
	case Relative:
		g := geom.Relative(t)
		return Relative(geom.Relative{Ratio: geom.Ratio(float64(g.Ratio) * n), Length: g.Length.Mul(n)}), true
	}
	return nil, false
}

func repeatString(s String, n int) String {
	if n <= 0 {
		return ""
	}
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return String(out)
}

func repeatArray(a Array, n int) Array {
	if n <= 0 {
		return NewArray(nil)
	}
	out := make([]Value, 0, a.Len()*n)
	for i := 0; i < n; i++ {
		out = append(out, a.Items()...)
	}
	return NewArray(out)
}

// Div implements '/'. Two lengths divide to a plain Float only when
// proportional (geom.Length.DivLength); dividing by zero numerics fails.
func Div(a, b Value) (Value, error) {
	if al, ok := a.(Length); ok {
		if bl, ok := b.(Length); ok {
			q, ok := geom.Length(al).DivLength(geom.Length(bl))
			if !ok {
				return nil, &OpError{Op: "/", Lhs: a.Kind(), Rhs: b.Kind()}
			}
			return Float(q), nil
		}
	}
	if n, ok := asFloat(b); ok {
		if n == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		if v, ok := scaleByFloat(a, 1/n); ok {
			return v, nil
		}
		if ai, ok := a.(Int); ok {
			return Float(float64(ai) / n), nil
		}
	}
	return nil, &OpError{Op: "/", Lhs: a.Kind(), Rhs: b.Kind()}
}
