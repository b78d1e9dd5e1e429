// Package geom implements the geometric primitives that underlie every
// length, position, and size computed by the evaluator and layout engine.
package geom

import "math"

// Length conversion constants, 72pt per inch / 25.4mm per inch.
const (
	Pt Abs = 1.0
	Mm Abs = 72.0 / 25.4
	Cm Abs = 720.0 / 25.4
	In Abs = 72.0
)

// Abs is an absolute length in points.
type Abs float64

// IsZero reports whether the length is exactly zero.
func (a Abs) IsZero() bool { return a == 0 }

// Abs returns the absolute value of the length.
func (a Abs) Abs() Abs {
	if a < 0 {
		return -a
	}
	return a
}

// Min returns the smaller of a and b.
func (a Abs) Min(b Abs) Abs {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func (a Abs) Max(b Abs) Abs {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts a to [lo, hi].
func (a Abs) Clamp(lo, hi Abs) Abs {
	if a < lo {
		return lo
	}
	if a > hi {
		return hi
	}
	return a
}

// Fits reports whether a value of size `need` fits within a.
// Small negative overshoot (sub-point rounding) is tolerated, matching
// the layouter's region-advance comparisons.
func (a Abs) Fits(need Abs) bool {
	return need-a <= 1e-6
}

// Points returns the length in points as a float64.
func (a Abs) Points() float64 { return float64(a) }

// Length is a pair (abs, em): an absolute part plus a multiple of the
// current font size. Both components are preserved by addition and
// subtraction; the pair is only collapsed to a single Abs value by
// Resolve, against an active text size.
type Length struct {
	Abs Abs
	Em  float64
}

// Zero is the zero length.
var Zero = Length{}

// LengthPt constructs a Length of n points.
func LengthPt(n float64) Length { return Length{Abs: Abs(n) * Pt} }

// LengthEm constructs a Length of n em (font-relative) units.
func LengthEm(n float64) Length { return Length{Em: n} }

// IsZero reports whether both components are zero.
func (l Length) IsZero() bool { return l.Abs == 0 && l.Em == 0 }

// Add sums two lengths component-wise; closed under addition.
func (l Length) Add(o Length) Length {
	return Length{Abs: l.Abs + o.Abs, Em: l.Em + o.Em}
}

// Sub subtracts o from l component-wise; closed under subtraction.
func (l Length) Sub(o Length) Length {
	return Length{Abs: l.Abs - o.Abs, Em: l.Em - o.Em}
}

// Neg negates both components.
func (l Length) Neg() Length {
	return Length{Abs: -l.Abs, Em: -l.Em}
}

// Mul scales both components by a scalar; closed under scalar multiplication.
func (l Length) Mul(s float64) Length {
	return Length{Abs: Abs(float64(l.Abs) * s), Em: l.Em * s}
}

// DivLength divides l by o component-wise. It only succeeds (ok=true) when
// the two lengths have proportional abs/em components, i.e. one of the two
// is representable as a pure scalar multiple of the other on every
// non-zero component — matching spec.md's "division of unlike components
// yields no result" rule.
func (l Length) DivLength(o Length) (float64, bool) {
	switch {
	case o.Abs == 0 && o.Em == 0:
		return 0, false
	case o.Abs == 0:
		if l.Abs != 0 {
			return 0, false
		}
		return l.Em / o.Em, true
	case o.Em == 0:
		if l.Em != 0 {
			return 0, false
		}
		return float64(l.Abs) / float64(o.Abs), true
	default:
		qa := float64(l.Abs) / float64(o.Abs)
		qe := l.Em / o.Em
		if math.Abs(qa-qe) > 1e-9 {
			return 0, false
		}
		return qa, true
	}
}

// Resolve collapses the Em component against the active font size,
// returning a plain absolute length.
func (l Length) Resolve(fontSize Abs) Abs {
	return l.Abs + Abs(l.Em)*fontSize
}
