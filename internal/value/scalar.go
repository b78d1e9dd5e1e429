package value

import (
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sentra-lang/typeset/internal/geom"
	"github.com/sentra-lang/typeset/internal/semver"
)

// None is the unit "no value" value.
type None struct{}

func (None) Kind() Kind      { return KindNone }
func (None) Repr() string    { return "none" }
func (None) Truthy() bool    { return false }

// Auto is the "let the default apply" sentinel, distinct from None.
type Auto struct{}

func (Auto) Kind() Kind   { return KindAuto }
func (Auto) Repr() string { return "auto" }
func (Auto) Truthy() bool { return false }

// Bool wraps a boolean.
type Bool bool

func (b Bool) Kind() Kind { return KindBool }
func (b Bool) Repr() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Bool) Truthy() bool { return bool(b) }

// Int wraps an arbitrary-width integer (spec.md treats integers as
// unbounded; int64 is the practical range this engine supports).
type Int int64

func (i Int) Kind() Kind     { return KindInt }
func (i Int) Repr() string   { return strconv.FormatInt(int64(i), 10) }
func (i Int) Truthy() bool   { return i != 0 }

// Float wraps a floating point number.
type Float float64

func (f Float) Kind() Kind { return KindFloat }
func (f Float) Repr() string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	return s
}
func (f Float) Truthy() bool { return f != 0 }

// Length wraps geom.Length, the (abs, em) pair.
type Length geom.Length

func (l Length) Kind() Kind { return KindLength }
func (l Length) Repr() string {
	g := geom.Length(l)
	switch {
	case g.Em == 0:
		return fmt.Sprintf("%spt", trimFloat(g.Abs.Points()))
	case g.Abs.IsZero():
		return fmt.Sprintf("%sem", trimFloat(g.Em))
	default:
		return fmt.Sprintf("%spt + %sem", trimFloat(g.Abs.Points()), trimFloat(g.Em))
	}
}
func (l Length) Truthy() bool { return !geom.Length(l).IsZero() }

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Angle wraps geom.Angle (radians internally, degrees in repr).
type Angle geom.Angle

func (a Angle) Kind() Kind     { return KindAngle }
func (a Angle) Repr() string   { return fmt.Sprintf("%sdeg", trimFloat(geom.Angle(a).Degrees())) }
func (a Angle) Truthy() bool   { return a != 0 }

// Ratio wraps geom.Ratio, repr'd as a percentage.
type Ratio geom.Ratio

func (r Ratio) Kind() Kind   { return KindRatio }
func (r Ratio) Repr() string { return fmt.Sprintf("%s%%", trimFloat(float64(r)*100)) }
func (r Ratio) Truthy() bool { return r != 0 }

// Relative wraps geom.Relative: ratio*base + length.
type Relative geom.Relative

func (r Relative) Kind() Kind { return KindRelative }
func (r Relative) Repr() string {
	g := geom.Relative(r)
	switch {
	case g.Ratio == 0:
		return Length(g.Length).Repr()
	case g.Length.IsZero():
		return Ratio(g.Ratio).Repr()
	default:
		return fmt.Sprintf("%s + %s", Ratio(g.Ratio).Repr(), Length(g.Length).Repr())
	}
}
func (r Relative) Truthy() bool { return !geom.Relative(r).IsZero() }

// Fraction wraps geom.Fr, repr'd with an "fr" suffix.
type Fraction geom.Fr

func (f Fraction) Kind() Kind   { return KindFraction }
func (f Fraction) Repr() string { return fmt.Sprintf("%sfr", trimFloat(float64(f))) }
func (f Fraction) Truthy() bool { return f != 0 }

// String wraps a text string.
type String string

func (s String) Kind() Kind   { return KindString }
func (s String) Repr() string { return strconv.Quote(string(s)) }
func (s String) Truthy() bool { return s != "" }

// Bytes wraps a raw byte sequence.
type Bytes []byte

func (b Bytes) Kind() Kind   { return KindBytes }
func (b Bytes) Repr() string { return fmt.Sprintf("bytes(%d)", len(b)) }
func (b Bytes) Truthy() bool { return len(b) > 0 }

// Label names an element for later reference/query.
type Label string

func (l Label) Kind() Kind   { return KindLabel }
func (l Label) Repr() string { return "<" + string(l) + ">" }
func (l Label) Truthy() bool { return l != "" }

// Datetime wraps a date, time, or both, matching a host clock reading or a
// user-constructed literal.
type Datetime struct {
	time.Time
	HasDate bool
	HasTime bool
}

func (d Datetime) Kind() Kind { return KindDatetime }
func (d Datetime) Repr() string {
	switch {
	case d.HasDate && d.HasTime:
		return fmt.Sprintf("datetime(year: %d, month: %d, day: %d, hour: %d, minute: %d, second: %d)",
			d.Year(), int(d.Month()), d.Day(), d.Hour(), d.Minute(), d.Second())
	case d.HasDate:
		return fmt.Sprintf("datetime(year: %d, month: %d, day: %d)", d.Year(), int(d.Month()), d.Day())
	default:
		return fmt.Sprintf("datetime(hour: %d, minute: %d, second: %d)", d.Hour(), d.Minute(), d.Second())
	}
}
func (d Datetime) Truthy() bool { return true }

// Duration wraps a span of time; Repr gives the exact
// "duration(seconds: N)" form, and HumanString the approximate one.
type Duration time.Duration

func (d Duration) Kind() Kind { return KindDuration }
func (d Duration) Repr() string {
	return fmt.Sprintf("duration(seconds: %s)", trimFloat(time.Duration(d).Seconds()))
}
func (d Duration) Truthy() bool { return d != 0 }

// HumanString renders an approximate, human-facing duration
// (e.g. "3 days ago"), used by diagnostics and debug printing rather than
// by repr, which must stay exact and round-trippable.
func (d Duration) HumanString(since time.Time) string {
	return humanize.Time(since.Add(-time.Duration(d)))
}

// Decimal wraps an arbitrary-precision decimal number using math/big, since
// neither the teacher nor the rest of the pack pulls in a dedicated decimal
// library; math/big.Float is the stdlib's own arbitrary-precision type and
// needs no extra dependency. Values are parsed at 128 bits of binary
// precision, so base-10 fractions such as 0.1 are rounded, not exact.
type Decimal struct {
	*big.Float
}

func NewDecimal(s string) (Decimal, error) {
	f, _, err := big.ParseFloat(s, 10, 128, big.ToNearestEven)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{f}, nil
}

func (d Decimal) Kind() Kind   { return KindDecimal }
func (d Decimal) Repr() string { return "decimal(\"" + d.Float.Text('f', -1) + "\")" }
func (d Decimal) Truthy() bool { return d.Float.Sign() != 0 }

// Version wraps semver.Version as a first-class value.
type Version semver.Version

func (v Version) Kind() Kind   { return KindVersion }
func (v Version) Repr() string { return fmt.Sprintf("version(%d, %d, %d)", v.Major, v.Minor, v.Patch) }
func (v Version) Truthy() bool { return true }

// Color is an 8-bit-per-channel RGBA color.
type Color struct {
	R, G, B, A uint8
}

func (c Color) Kind() Kind { return KindColor }
func (c Color) Repr() string {
	if c.A == 255 {
		return fmt.Sprintf("rgb(\"#%02x%02x%02x\")", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgb(\"#%02x%02x%02x%02x\")", c.R, c.G, c.B, c.A)
}
func (c Color) Truthy() bool { return true }

// Symbol is a named glyph variant set (e.g. math operators with
// accent/bold/script variants); variants map a dot-separated modifier
// string to a literal rune.
type Symbol struct {
	Name     string
	Variants map[string]rune
	Default  rune
}

func (s Symbol) Kind() Kind   { return KindSymbol }
func (s Symbol) Repr() string { return "symbol(\"" + s.Name + "\")" }
func (s Symbol) Truthy() bool { return true }
