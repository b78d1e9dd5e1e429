// Package math implements the specialized inline layouter for equations
// (spec.md §4.6): MathClass-dependent spacing, sub/superscript attachment,
// limit-style stacking, fractions, roots, and stretchable delimiters.
//
// Glyph shaping and OpenType MATH table lookup are out of this module's
// scope the same way general glyph rasterization is (spec.md line 11:
// "Font loading, shaping, and glyph rasterization" are consumed through
// the abstract world interface, not implemented here), so Metrics below
// is an interface a caller backs with real font data; DefaultMetrics
// supplies TeX-classic em-relative ratios so the layouter is usable
// without one. Row/spacing classes and the underline/overline/brace
// stacking shape are grounded on
// original_source/crates/typst-library/src/math/underover.rs's
// layout_underoverline/layout_underoverspreader/stack, rebased onto
// this module's layout.Frame (which carries no baseline field, so
// Fragment tracks baseline alongside its Frame instead of mutating it
// in place the way Frame::set_baseline does).
package math

import (
	"github.com/sentra-lang/typeset/internal/geom"
	"github.com/sentra-lang/typeset/internal/layout"
)

// Class is a MathClass (spec.md §4.6): governs inter-atom spacing.
type Class int

const (
	ClassNormal Class = iota
	ClassOpen
	ClassClose
	ClassFence
	ClassLarge
	ClassRel
	ClassBinary
	ClassPunctuation
	ClassInner
)

// Style is the math style driving attachment scale and cramping, per the
// classic display/text/script/script-script ladder.
type Style int

const (
	StyleDisplay Style = iota
	StyleText
	StyleScript
	StyleScriptScript
)

// smaller returns the style one rung down the ladder, used when laying
// out sub/superscripts and fraction numerators/denominators.
func (s Style) smaller() Style {
	switch s {
	case StyleDisplay, StyleText:
		return StyleScript
	default:
		return StyleScriptScript
	}
}

// scale is the em-size multiplier for a style relative to the base font
// size, matching the classic TeX ladder (1, 1, 0.7, 0.5).
func (s Style) scale() float64 {
	switch s {
	case StyleDisplay, StyleText:
		return 1.0
	case StyleScript:
		return 0.7
	default:
		return 0.5
	}
}

// Metrics supplies the em-relative measurements the layouter needs.
// DefaultMetrics implements it with TeX-classic constants; a host wired
// to real OpenType MATH tables can supply its own.
type Metrics interface {
	// AxisHeight is the height of the math axis above the baseline,
	// around which fraction bars and vertically-centered operators sit.
	AxisHeight(fontSize geom.Abs) geom.Abs
	// SuperscriptShift is the minimum upward baseline shift for a
	// superscript attached to a base of the given height.
	SuperscriptShift(fontSize, baseHeight geom.Abs) geom.Abs
	// SubscriptShift is the minimum downward baseline shift for a
	// subscript attached to a base of the given depth.
	SubscriptShift(fontSize, baseDepth geom.Abs) geom.Abs
	// FractionRuleThickness is the thickness of a fraction bar.
	FractionRuleThickness(fontSize geom.Abs) geom.Abs
	// FractionGap is the clearance between numerator/denominator and the
	// fraction bar.
	FractionGap(fontSize geom.Abs) geom.Abs
}

// DefaultMetrics implements Metrics with fixed em ratios drawn from the
// classic TeX parameter set (axis height 0.25em, sup/sub shift 0.36em and
// 0.15em, fraction rule 0.04em with a 0.15em gap either side).
type DefaultMetrics struct{}

func (DefaultMetrics) AxisHeight(fontSize geom.Abs) geom.Abs { return fontSize * 0.25 }
func (DefaultMetrics) SuperscriptShift(fontSize, baseHeight geom.Abs) geom.Abs {
	min := fontSize * 0.36
	if baseHeight > min {
		return baseHeight
	}
	return min
}
func (DefaultMetrics) SubscriptShift(fontSize, baseDepth geom.Abs) geom.Abs {
	min := fontSize * 0.15
	if baseDepth > min {
		return baseDepth
	}
	return min
}
func (DefaultMetrics) FractionRuleThickness(fontSize geom.Abs) geom.Abs { return fontSize * 0.04 }
func (DefaultMetrics) FractionGap(fontSize geom.Abs) geom.Abs           { return fontSize * 0.15 }

// Context carries the ambient style state a math layout operation runs
// under: the em size at the current style, whether display (block)
// style applies (governs the limits heuristic), and the metrics source.
type Context struct {
	FontSize geom.Abs
	Style    Style
	Cramped  bool
	Metrics  Metrics
}

func (c Context) metrics() Metrics {
	if c.Metrics != nil {
		return c.Metrics
	}
	return DefaultMetrics{}
}

// scaled returns a Context set to the given style, its font size rescaled
// to that style's ladder rung.
func (c Context) scaled(style Style, cramped bool) Context {
	c.Style = style
	c.Cramped = cramped
	c.FontSize = geom.Abs(style.scale()) * c.baseFontSize()
	return c
}

// baseFontSize recovers the un-scaled (display/text style) font size so
// repeated attachment nesting doesn't compound the style ladder twice.
func (c Context) baseFontSize() geom.Abs {
	if c.Style == StyleDisplay || c.Style == StyleText {
		return c.FontSize
	}
	return c.FontSize / geom.Abs(c.Style.scale())
}

// Fragment is one laid-out math atom: its frame, the baseline within
// that frame (distance from the frame's top edge), its MathClass for
// spacing purposes, and the italic correction to apply after it when
// followed directly by another slanted atom.
type Fragment struct {
	Frame    layout.Frame
	Baseline geom.Abs
	Class    Class
	Italic   geom.Abs
}

func (f Fragment) ascent() geom.Abs  { return f.Baseline }
func (f Fragment) descent() geom.Abs { return f.Frame.Size.Height - f.Baseline }

// spacing returns the gap to insert between two adjacent classes, as a
// fraction of the em size, per the classic TeX inter-atom spacing rules
// (thin/medium/thick spaces; in script styles only the thin space after
// punctuation remains, everything else is zero).
func spacing(left, right Class, style Style) float64 {
	if style == StyleScript || style == StyleScriptScript {
		// Only punctuation/thin spacing survives in cramped/script sizes.
		if left == ClassPunctuation {
			return 0.167
		}
		return 0
	}
	switch {
	case left == ClassPunctuation:
		return 0.167 // thin space after punctuation
	case left == ClassOpen || right == ClassClose:
		return 0
	case left == ClassBinary || right == ClassBinary:
		return 0.222 // medium space around binary operators
	case left == ClassRel || right == ClassRel:
		return 0.278 // thick space around relations
	case left == ClassClose && right == ClassOpen:
		return 0.167
	default:
		return 0
	}
}

// Row lays fragments left to right on a shared baseline, inserting
// class-dependent spacing between adjacent atoms (spec.md §4.6).
func Row(ctx Context, fragments []Fragment) Fragment {
	if len(fragments) == 0 {
		return Fragment{Frame: layout.NewFrame(geom.Size{})}
	}
	var ascent, descent geom.Abs
	for _, f := range fragments {
		if f.ascent() > ascent {
			ascent = f.ascent()
		}
		if f.descent() > descent {
			descent = f.descent()
		}
	}
	frame := layout.NewFrame(geom.Size{Height: ascent + descent})
	var cursor geom.Abs
	for i, f := range fragments {
		if i > 0 {
			gap := spacing(fragments[i-1].Class, f.Class, ctx.Style)
			cursor += geom.Abs(gap) * ctx.FontSize
		}
		frame.PushFrame(geom.Point{X: cursor, Y: ascent - f.ascent()}, f.Frame)
		cursor += f.Frame.Size.Width + f.Italic
	}
	frame.Size.Width = cursor
	return Fragment{Frame: frame, Baseline: ascent, Class: ClassNormal}
}

// ScriptContext returns the Context a caller should lay out a sub- or
// superscript fragment under before passing it to Attach: one rung down
// the style ladder, cramped when only a subscript is present.
func (c Context) ScriptContext(hasSub, hasSup bool) Context {
	return c.scaled(c.Style.smaller(), hasSub && !hasSup)
}

// Attach places an optional subscript and superscript against a base,
// per spec.md §4.6's "sub/superscripts with metrics-driven shifts."
// Either sub or sup may be nil.
func Attach(ctx Context, base Fragment, sub, sup *Fragment) Fragment {
	m := ctx.metrics()

	var supFrame, subFrame *layout.Frame
	var supShift, subShift geom.Abs
	var supWidth, subWidth geom.Abs

	if sup != nil {
		supShift = m.SuperscriptShift(ctx.FontSize, base.ascent())
		f := sup.Frame
		supFrame = &f
		supWidth = f.Size.Width
	}
	if sub != nil {
		subShift = m.SubscriptShift(ctx.FontSize, base.descent())
		f := sub.Frame
		subFrame = &f
		subWidth = f.Size.Width
	}

	scriptWidth := supWidth
	if subWidth > scriptWidth {
		scriptWidth = subWidth
	}

	totalWidth := base.Frame.Size.Width + scriptWidth
	ascent := base.ascent()
	if supFrame != nil {
		need := supShift + sup.ascent()
		if need > ascent {
			ascent = need
		}
	}
	descent := base.descent()
	if subFrame != nil {
		need := subShift + sub.descent()
		if need > descent {
			descent = need
		}
	}

	frame := layout.NewFrame(geom.Size{Width: totalWidth, Height: ascent + descent})
	frame.PushFrame(geom.Point{X: 0, Y: ascent - base.ascent()}, base.Frame)
	if supFrame != nil {
		frame.PushFrame(geom.Point{X: base.Frame.Size.Width, Y: ascent - supShift - sup.ascent()}, *supFrame)
	}
	if subFrame != nil {
		frame.PushFrame(geom.Point{X: base.Frame.Size.Width, Y: ascent + subShift - sub.ascent()}, *subFrame)
	}
	return Fragment{Frame: frame, Baseline: ascent, Class: base.Class}
}

// Limits stacks an under/over body around a base instead of attaching it
// as a script, used for Large-class operators (sum, product, integral)
// in display style (spec.md §4.6: "limit-style stacking under/over bases").
func Limits(ctx Context, base Fragment, under, over *Fragment) Fragment {
	const gap = 0.1 // em
	g := geom.Abs(gap) * ctx.FontSize

	width := base.Frame.Size.Width
	if over != nil && over.Frame.Size.Width > width {
		width = over.Frame.Size.Width
	}
	if under != nil && under.Frame.Size.Width > width {
		width = under.Frame.Size.Width
	}

	var topExtra, bottomExtra geom.Abs
	if over != nil {
		topExtra = over.Frame.Size.Height + g
	}
	if under != nil {
		bottomExtra = under.Frame.Size.Height + g
	}

	height := topExtra + base.Frame.Size.Height + bottomExtra
	baseline := topExtra + base.ascent()

	frame := layout.NewFrame(geom.Size{Width: width, Height: height})
	center := func(w geom.Abs) geom.Abs { return (width - w) / 2 }
	if over != nil {
		frame.PushFrame(geom.Point{X: center(over.Frame.Size.Width), Y: 0}, over.Frame)
	}
	frame.PushFrame(geom.Point{X: center(base.Frame.Size.Width), Y: topExtra}, base.Frame)
	if under != nil {
		frame.PushFrame(geom.Point{X: center(under.Frame.Size.Width), Y: topExtra + base.Frame.Size.Height + g}, under.Frame)
	}
	return Fragment{Frame: frame, Baseline: baseline, Class: base.Class}
}

// UseLimits applies the display-style-plus-Large-class-plus-codepoint
// heuristic spec.md §4.6 calls out explicitly as "present in-source...
// treat the codepoint list as part of the specification": limits render
// under/over only for a fixed set of big-operator codepoints, and only
// in display style.
func UseLimits(ctx Context, class Class, codepoint rune) bool {
	if ctx.Style != StyleDisplay || class != ClassLarge {
		return false
	}
	switch codepoint {
	case '∑', '∏', '⋂', '⋃', '⨁', '⨂', '⨆', '⋁', '⋀', '∐':
		return true
	default:
		return false
	}
}

// Frac lays out a numerator over a denominator separated by a fraction
// bar spanning the wider of the two (spec.md §4.6: "Fractions").
func Frac(ctx Context, num, den Fragment) Fragment {
	m := ctx.metrics()
	rule := m.FractionRuleThickness(ctx.FontSize)
	gap := m.FractionGap(ctx.FontSize)
	axis := m.AxisHeight(ctx.FontSize)

	width := num.Frame.Size.Width
	if den.Frame.Size.Width > width {
		width = den.Frame.Size.Width
	}

	numHeight := num.Frame.Size.Height
	denHeight := den.Frame.Size.Height
	height := numHeight + gap + rule + gap + denHeight
	baseline := numHeight + gap + rule/2 + axis - rule/2

	frame := layout.NewFrame(geom.Size{Width: width, Height: height})
	center := func(w geom.Abs) geom.Abs { return (width - w) / 2 }
	frame.PushFrame(geom.Point{X: center(num.Frame.Size.Width), Y: 0}, num.Frame)
	frame.Push(geom.Point{X: 0, Y: numHeight + gap + rule/2}, layout.ImageItem{Width: width, Height: rule})
	frame.PushFrame(geom.Point{X: center(den.Frame.Size.Width), Y: numHeight + gap + rule + gap}, den.Frame)
	return Fragment{Frame: frame, Baseline: baseline, Class: ClassNormal}
}

// Root lays out a radicand under a radical sign with an optional index
// (spec.md §4.6: "roots with optional index"). The radical sign itself
// is represented as a stretched Fragment supplied by the caller (shaped
// via Stretch), since glyph shaping is out of this package's scope.
func Root(ctx Context, index *Fragment, sign, radicand Fragment) Fragment {
	const padEm = 0.1
	pad := geom.Abs(padEm) * ctx.FontSize

	bodyHeight := radicand.Frame.Size.Height
	height := bodyHeight + pad
	if sign.Frame.Size.Height > height {
		height = sign.Frame.Size.Height
	}

	var indexWidth geom.Abs
	var indexFrame *layout.Frame
	if index != nil {
		f := index.Frame
		indexFrame = &f
		indexWidth = f.Size.Width
	}

	width := indexWidth + sign.Frame.Size.Width + radicand.Frame.Size.Width
	baseline := radicand.ascent() + pad

	frame := layout.NewFrame(geom.Size{Width: width, Height: height})
	var cursor geom.Abs
	if indexFrame != nil {
		frame.PushFrame(geom.Point{X: 0, Y: height - indexFrame.Size.Height}, *indexFrame)
		cursor += indexWidth
	}
	frame.PushFrame(geom.Point{X: cursor, Y: height - sign.Frame.Size.Height}, sign.Frame)
	cursor += sign.Frame.Size.Width
	frame.PushFrame(geom.Point{X: cursor, Y: height - bodyHeight - pad/2}, radicand.Frame)

	return Fragment{Frame: frame, Baseline: baseline, Class: ClassNormal}
}

// Stretch scales a delimiter glyph fragment to at least targetHeight,
// simulating the OpenType MATH variants/assemblies mechanism spec.md
// §4.6 names ("stretchable delimiters that scale... to the height of
// their contents") by a uniform vertical scale of the supplied base
// glyph frame, since real glyph variant/assembly selection needs font
// data this module does not have access to.
func Stretch(glyph Fragment, targetHeight geom.Abs) Fragment {
	if glyph.Frame.Size.Height >= targetHeight || glyph.Frame.Size.Height == 0 {
		return glyph
	}
	factor := float64(targetHeight / glyph.Frame.Size.Height)
	scaled := layout.NewFrame(geom.Size{Width: glyph.Frame.Size.Width, Height: targetHeight})
	t := geom.Identity().Then(geom.ScaleXY(1, factor))
	scaled.Push(geom.Point{}, layout.GroupItem{Frame: glyph.Frame, Transform: t})
	return Fragment{Frame: scaled, Baseline: glyph.Baseline * geom.Abs(factor), Class: glyph.Class}
}

// AlignPoint marks a column boundary within a row of a multi-line
// equation (spec.md §4.6: "alignment points forming columns across
// lines"). Index is the alignment point's ordinal within the row.
type AlignPoint struct {
	Index  int
	Offset geom.Abs
}

// AlignColumns computes, for a set of rows each annotated with the
// cumulative width up to each of its alignment points, the shared
// column offsets: the widest prefix up to each alignment index across
// all rows, so every row's Nth alignment point lines up vertically.
func AlignColumns(rowPoints [][]geom.Abs) []geom.Abs {
	var count int
	for _, pts := range rowPoints {
		if len(pts) > count {
			count = len(pts)
		}
	}
	cols := make([]geom.Abs, count)
	for _, pts := range rowPoints {
		for i, w := range pts {
			if w > cols[i] {
				cols[i] = w
			}
		}
	}
	return cols
}
