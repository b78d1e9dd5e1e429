package geom

import "math"

// Point is a 2D position in layout coordinates.
type Point struct {
	X, Y Abs
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Size is a width/height pair.
type Size struct {
	Width, Height Abs
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool { return s.Width == 0 && s.Height == 0 }

// AspectRatio returns width/height, or +Inf when height is zero.
func (s Size) AspectRatio() float64 {
	if s.Height == 0 {
		return math.Inf(1)
	}
	return float64(s.Width) / float64(s.Height)
}

// HAlign is horizontal alignment.
type HAlign int

const (
	HAlignStart HAlign = iota
	HAlignCenter
	HAlignEnd
	HAlignLeft
	HAlignRight
)

// VAlign is vertical alignment.
type VAlign int

const (
	VAlignTop VAlign = iota
	VAlignHorizon
	VAlignBottom
)

// Alignment is a resolved 2D alignment.
type Alignment struct {
	X HAlign
	Y VAlign
}

// Dir is text/flow direction.
type Dir int

const (
	DirLTR Dir = iota
	DirRTL
	DirTTB
	DirBTT
)

// IsHorizontal reports whether d runs along the horizontal axis.
func (d Dir) IsHorizontal() bool { return d == DirLTR || d == DirRTL }

// IsPositive reports whether d runs in the positive coordinate direction.
func (d Dir) IsPositive() bool { return d == DirLTR || d == DirTTB }

// Transform is a 2D affine transform applied to points as row vectors,
// [x' y' 1] = [x y 1] * M, so x' = A*x + C*y + E and y' = B*x + D*y + F:
//
//	| A B 0 |
//	| C D 0 |
//	| E F 1 |
type Transform struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Transform { return Transform{A: 1, D: 1} }

// Translate builds a pure-translation transform.
func Translate(dx, dy Abs) Transform {
	return Transform{A: 1, D: 1, E: float64(dx), F: float64(dy)}
}

// ScaleXY builds a pure-scale transform.
func ScaleXY(sx, sy float64) Transform { return Transform{A: sx, D: sy} }

// Rotate builds a rotation transform (counter-clockwise, radians).
func Rotate(angle Angle) Transform {
	c, s := math.Cos(float64(angle)), math.Sin(float64(angle))
	return Transform{A: c, B: -s, C: s, D: c}
}

// Skew builds a skew transform (radians along each axis).
func Skew(ax, ay Angle) Transform {
	return Transform{A: 1, D: 1, B: math.Tan(float64(ay)), C: math.Tan(float64(ax))}
}

// Then composes t followed by o (t.Then(o) applied to a point equals
// applying t then o).
func (t Transform) Then(o Transform) Transform {
	return Transform{
		A: t.A*o.A + t.B*o.C,
		B: t.A*o.B + t.B*o.D,
		C: t.C*o.A + t.D*o.C,
		D: t.C*o.B + t.D*o.D,
		E: t.E*o.A + t.F*o.C + o.E,
		F: t.E*o.B + t.F*o.D + o.F,
	}
}

// Apply transforms a point.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: Abs(t.A*float64(p.X) + t.C*float64(p.Y) + t.E),
		Y: Abs(t.B*float64(p.X) + t.D*float64(p.Y) + t.F),
	}
}

// IsIdentity reports whether t is the identity transform.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}
