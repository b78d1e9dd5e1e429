package geom

// Ratio is a percentage-like value; 1.0 == 100%.
type Ratio float64

// Resolve scales whole by the ratio.
func (r Ratio) Resolve(whole Abs) Abs {
	return Abs(float64(r) * float64(whole))
}

// Angle is stored in radians internally but constructed from degrees or
// radians.
type Angle float64

// AngleDeg constructs an Angle from degrees.
func AngleDeg(deg float64) Angle { return Angle(deg * 3.141592653589793 / 180) }

// AngleRad constructs an Angle from radians.
func AngleRad(rad float64) Angle { return Angle(rad) }

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 { return float64(a) * 180 / 3.141592653589793 }

// Radians returns the angle in radians.
func (a Angle) Radians() float64 { return float64(a) }

// Fr is a fractional unit expressing a share of leftover space.
type Fr float64

// Relative is a pair (ratio, length) resolved against a base length:
// rel.relative_to(base) = ratio*base + length.
type Relative struct {
	Ratio  Ratio
	Length Length
}

// RelativeFromLength lifts a plain Length into a Relative with zero ratio.
func RelativeFromLength(l Length) Relative { return Relative{Length: l} }

// RelativeFromRatio lifts a plain Ratio into a Relative with zero length.
func RelativeFromRatio(r Ratio) Relative { return Relative{Ratio: r} }

// IsZero reports whether both components are zero.
func (r Relative) IsZero() bool { return r.Ratio == 0 && r.Length.IsZero() }

// RelativeTo resolves the relative length against a whole/base and a font
// size (for the Length's em component).
func (r Relative) RelativeTo(whole, fontSize Abs) Abs {
	return r.Ratio.Resolve(whole) + r.Length.Resolve(fontSize)
}

// Add sums two relative lengths component-wise.
func (r Relative) Add(o Relative) Relative {
	return Relative{Ratio: r.Ratio + o.Ratio, Length: r.Length.Add(o.Length)}
}
