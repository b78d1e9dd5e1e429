// Package transform implements box/block size-fixing and the
// rotate/scale/skew container transforms (spec.md §4.8), including the
// reflow true/false split: reflow lays the body into the
// inverse-transformed target and reports the transformed bounding box
// as the new size, while non-reflow keeps the body's natural flow size
// and applies the transform purely visually.
//
// No gotypst or other pack fragment implements this operation (the
// retrieved `layout-flow-types.go.go`/`layout-flow-config.go.go`
// fragments model pagination, not container transforms), so this is new
// code written directly from spec.md §4.8's prose, built on
// internal/geom.Transform (already grounded on
// `original_source/crates/typst-layout/src/transform.rs`'s affine
// model per SPEC_FULL.md).
package transform

import (
	"github.com/sentra-lang/typeset/internal/geom"
	"github.com/sentra-lang/typeset/internal/layout"
)

// Sizing requests a fixed dimension for a box/block container; a nil
// field leaves that axis to the body's natural size.
type Sizing struct {
	Width  *geom.Abs
	Height *geom.Abs
}

// Box fixes the inner size for sizing's set dimensions and propagates
// expansion flags to the region the body lays out into, then forces the
// reported frame size to match (spec.md §4.8: "Box/block fix the inner
// size and propagate expansion flags"). Block uses the same algorithm;
// the box/block distinction is about inline-vs-block classification of
// the resulting content, not a difference in sizing behavior.
func Box(sizing Sizing, region layout.Region, body func(layout.Region) layout.Frame) layout.Frame {
	inner := region
	if sizing.Width != nil {
		inner.Size.Width = *sizing.Width
		inner.Expand.X = true
	}
	if sizing.Height != nil {
		inner.Size.Height = *sizing.Height
		inner.Expand.Y = true
	}
	frame := body(inner)
	if sizing.Width != nil {
		frame.Size.Width = *sizing.Width
	}
	if sizing.Height != nil {
		frame.Size.Height = *sizing.Height
	}
	return frame
}

// Block is Box under the block-level name; see Box.
func Block(sizing Sizing, region layout.Region, body func(layout.Region) layout.Frame) layout.Frame {
	return Box(sizing, region, body)
}

// Op is one rotate/scale/skew operation: the affine transform to apply
// and whether it reflows the body.
type Op struct {
	Transform geom.Transform
	Reflow    bool
}

// Apply lays out body under op (spec.md §4.8). When Reflow is false, the
// body lays out into region unchanged and the transform is purely
// visual: the reported frame keeps the body's natural size. When Reflow
// is true, the body is measured and re-laid into a region whose size is
// the inverse-transformed target, then the resulting frame is
// transformed and its bounding box becomes the reported size.
func Apply(op Op, region layout.Region, body func(layout.Region) layout.Frame) layout.Frame {
	if !op.Reflow {
		frame := body(region)
		wrapped := layout.NewFrame(frame.Size)
		wrapped.Push(geom.Point{}, layout.GroupItem{Frame: frame, Transform: op.Transform})
		return wrapped
	}

	inner := region
	if preimage, ok := preimageSize(op.Transform, region.Size); ok {
		inner.Size = preimage
	}
	frame := body(inner)
	bbox, offset := boundingBox(op.Transform, frame.Size)
	wrapped := layout.NewFrame(bbox)
	wrapped.Push(offset, layout.GroupItem{Frame: frame, Transform: op.Transform})
	return wrapped
}

// Rotate applies a rotation (spec.md §4.8, "rotate... optionally
// reflow").
func Rotate(angle geom.Angle, reflow bool, region layout.Region, body func(layout.Region) layout.Frame) layout.Frame {
	return Apply(Op{Transform: geom.Rotate(angle), Reflow: reflow}, region, body)
}

// Scale applies a non-uniform scale.
func Scale(sx, sy float64, reflow bool, region layout.Region, body func(layout.Region) layout.Frame) layout.Frame {
	return Apply(Op{Transform: geom.ScaleXY(sx, sy), Reflow: reflow}, region, body)
}

// Skew applies a skew along each axis.
func Skew(ax, ay geom.Angle, reflow bool, region layout.Region, body func(layout.Region) layout.Frame) layout.Frame {
	return Apply(Op{Transform: geom.Skew(ax, ay), Reflow: reflow}, region, body)
}

// invertLinear inverts the 2x2 linear part of t (ignoring any
// translation, which every rotate/scale/skew constructor leaves zero),
// reporting false for a singular (degenerate, e.g. zero-scale) matrix.
func invertLinear(t geom.Transform) (geom.Transform, bool) {
	det := t.A*t.D - t.B*t.C
	if det == 0 {
		return geom.Transform{}, false
	}
	return geom.Transform{
		A: t.D / det,
		B: -t.B / det,
		C: -t.C / det,
		D: t.A / det,
	}, true
}

// corners returns the four corner points of the rectangle from the
// origin to size.
func corners(size geom.Size) [4]geom.Point {
	return [4]geom.Point{
		{X: 0, Y: 0},
		{X: size.Width, Y: 0},
		{X: 0, Y: size.Height},
		{X: size.Width, Y: size.Height},
	}
}

// boundingBox transforms size's corner rectangle by t and returns the
// axis-aligned bounding size, plus the offset (always non-negative)
// needed to shift the transformed content so its bounding box starts at
// the origin.
func boundingBox(t geom.Transform, size geom.Size) (geom.Size, geom.Point) {
	pts := corners(size)
	minX, maxX := t.Apply(pts[0]).X, t.Apply(pts[0]).X
	minY, maxY := t.Apply(pts[0]).Y, t.Apply(pts[0]).Y
	for _, p := range pts[1:] {
		tp := t.Apply(p)
		if tp.X < minX {
			minX = tp.X
		}
		if tp.X > maxX {
			maxX = tp.X
		}
		if tp.Y < minY {
			minY = tp.Y
		}
		if tp.Y > maxY {
			maxY = tp.Y
		}
	}
	return geom.Size{Width: maxX - minX, Height: maxY - minY}, geom.Point{X: -minX, Y: -minY}
}

// preimageSize maps target back through t's inverse, returning the size
// of the region whose transformed bounding box equals target.
func preimageSize(t geom.Transform, target geom.Size) (geom.Size, bool) {
	inv, ok := invertLinear(t)
	if !ok {
		return geom.Size{}, false
	}
	size, _ := boundingBox(inv, target)
	return size, true
}
