// Package flow implements the block-level flow layouter (spec.md §4.3):
// threading a sequence of blocks, spacings, and placed nodes across a
// Regions iterator, collapsing weak spacing, distributing fractional
// spacing at region-finish time, and applying the monotone alignment
// ruler.
//
// Grounded on
// other_examples/fddb5336_boergens-gotypst__layout-flow-types.go.go's
// Child/Work/Composer sketch (Float/processQueuedFloats ported near
// verbatim) and
// other_examples/8ab48296_boergens-gotypst__layout-flow-block.go.go's
// block algorithm shape; the region-advance, weak-collapse, and
// fractional-distribution algorithms themselves are new code completing
// gotypst's `// TODO: Implement actual layout` stubs, written from
// spec.md §4.3's prose and `original_source/crates/typst-layout/src/flow/mod.rs`.
package flow

import (
	"github.com/sentra-lang/typeset/internal/geom"
	"github.com/sentra-lang/typeset/internal/layout"
)

// Child is one item threaded through flow layout.
type Child interface{ isChild() }

// FrameChild is an already-laid-out, unbreakable piece of content (one
// line, one box, one nested layout's output).
type FrameChild struct {
	Frame layout.Frame
	Align geom.Axes[layout.FixedAlignment]
}

func (FrameChild) isChild() {}

// SpacingChild is explicit vertical spacing. Weak spacing collapses against
// neighboring weak spacing (spec.md §4.3) and is discarded at a region
// boundary.
type SpacingChild struct {
	Amount   geom.Abs
	Weak     bool
	Weakness layout.Weakness
}

func (SpacingChild) isChild() {}

// FrChild is fractional spacing, resolved against leftover space at
// region-finish time.
type FrChild struct {
	Amount   geom.Fr
	Weakness layout.Weakness
}

func (FrChild) isChild() {}

// PlacedChild bypasses flow advance entirely, attaching at a fixed
// position in the current region frame (spec.md §4.3: "Placed children
// bypass flow advance").
type PlacedChild struct {
	Frame  layout.Frame
	AlignX layout.FixedAlignment
	AlignY layout.FixedAlignment
}

func (PlacedChild) isChild() {}

// ColbreakChild forces the current region to finish early.
type ColbreakChild struct{ Weak bool }

func (ColbreakChild) isChild() {}

type pendingKind int

const (
	pendingFrame pendingKind = iota
	pendingSpace
	pendingFr
)

type pendingItem struct {
	kind     pendingKind
	frame    layout.Frame
	align    geom.Axes[layout.FixedAlignment]
	amount   geom.Abs
	frShare  geom.Fr
	weak     bool
	weakness layout.Weakness
}

// Layout threads children across regions, returning one output frame per
// region that was used.
func Layout(children []Child, regions layout.Regions) ([]layout.Frame, error) {
	var out []layout.Frame
	var pending []pendingItem
	var placed []pendingItem
	var used geom.Abs
	var frTotal geom.Fr
	lastWasWeak := false

	finish := func() {
		// Weak spacing trailing at a region boundary is discarded
		// (spec.md §4.3).
		for len(pending) > 0 && pending[len(pending)-1].kind == pendingSpace && pending[len(pending)-1].weak {
			used -= pending[len(pending)-1].amount
			pending = pending[:len(pending)-1]
		}

		full := regions.Full
		w := full.Width
		if !regions.Expand.X {
			w = maxWidthOf(pending)
		}
		h := full.Height
		if !regions.Expand.Y {
			h = used
		}
		frame := layout.NewFrame(geom.Size{Width: w, Height: h})

		leftover := full.Height - used
		if leftover < 0 {
			leftover = 0
		}

		// cursor walks the main (vertical) axis monotonically; every pending
		// frame's cross-axis (X) alignment is resolved independently per
		// frame, matching spec.md §4.3's "alignment ruler that is monotone-
		// increasing along the flow direction."
		var cursor geom.Abs
		for _, item := range pending {
			switch item.kind {
			case pendingSpace:
				cursor += item.amount
			case pendingFr:
				if frTotal > 0 {
					cursor += geom.Abs(float64(item.frShare/frTotal) * float64(leftover))
				}
			case pendingFrame:
				x := item.align.X.Position(w - item.frame.Size.Width)
				frame.PushFrame(geom.Point{X: x, Y: cursor}, item.frame)
				cursor += item.frame.Size.Height
			}
		}
		for _, p := range placed {
			x := p.align.X.Position(w - p.frame.Size.Width)
			y := p.align.Y.Position(h - p.frame.Size.Height)
			frame.PushFrame(geom.Point{X: x, Y: y}, p.frame)
		}

		out = append(out, frame)
		pending = nil
		placed = nil
		used = 0
		frTotal = 0
		lastWasWeak = false
	}

	advance := func() {
		finish()
		if !regions.Next() {
			// No further region: subsequent content keeps accumulating
			// into one final, possibly overfull, region.
			regions.Size.Height = 1 << 30
			regions.Full.Height = 1 << 30
		}
	}

	for _, c := range children {
		switch v := c.(type) {
		case PlacedChild:
			placed = append(placed, pendingItem{frame: v.Frame, align: geom.Axes[layout.FixedAlignment]{X: v.AlignX, Y: v.AlignY}})

		case ColbreakChild:
			if len(pending) > 0 || len(placed) > 0 {
				advance()
			}

		case SpacingChild:
			if v.Weak {
				if len(pending) == 0 {
					// weak spacing at the start of a region: discard.
					continue
				}
				if lastWasWeak {
					prev := &pending[len(pending)-1]
					if v.Weakness > prev.weakness {
						used -= prev.amount
						clamped := clampToRemaining(v.Amount, regions.Size.Height, used)
						*prev = pendingItem{kind: pendingSpace, amount: clamped, weak: true, weakness: v.Weakness}
						used += clamped
					}
					// else: the incoming weaker (or equal) spacing is dropped.
					continue
				}
			}
			amount := clampToRemaining(v.Amount, regions.Size.Height, used)
			pending = append(pending, pendingItem{kind: pendingSpace, amount: amount, weak: v.Weak, weakness: v.Weakness})
			used += amount
			lastWasWeak = v.Weak

		case FrChild:
			frTotal += v.Amount
			pending = append(pending, pendingItem{kind: pendingFr, frShare: v.Amount})
			lastWasWeak = false

		case FrameChild:
			need := v.Frame.Size.Height
			if regions.Size.Height-used < need && used > 0 {
				advance()
			}
			pending = append(pending, pendingItem{kind: pendingFrame, frame: v.Frame, align: v.Align})
			used += need
			lastWasWeak = false
		}
	}

	if len(pending) > 0 || len(placed) > 0 || len(out) == 0 {
		finish()
	}
	return out, nil
}

func maxWidthOf(items []pendingItem) geom.Abs {
	var w geom.Abs
	for _, it := range items {
		if it.kind == pendingFrame && it.frame.Size.Width > w {
			w = it.frame.Size.Width
		}
	}
	return w
}

// clampToRemaining restricts amount to the height left in the current
// region (spec.md §4.3: "Relative spacing is clamped to remaining
// height").
func clampToRemaining(amount, regionHeight, used geom.Abs) geom.Abs {
	remaining := regionHeight - used
	if remaining < 0 {
		remaining = 0
	}
	if amount > remaining {
		return remaining
	}
	return amount
}
