// Package stack implements the direction-parameterized stack layouter
// (spec.md §4.4): like flow, but the main axis may run in any of
// LTR/RTL/TTB/BTT, with cross-axis alignment resolved independently per
// frame while the main axis keeps monotone ordering.
//
// Grounded on the same
// other_examples/fddb5336_boergens-gotypst__layout-flow-types.go.go
// Child/Axes/FixedAlignment vocabulary internal/layout/flow is grounded
// on, generalized here over geom.Dir instead of assuming a vertical main
// axis — gotypst's fragments had no stack-specific file in the retrieved
// pack, so the direction generalization is new code written directly from
// spec.md §4.4's prose. Unlike flow, one call lays out into a single
// region (a stack's children are measured against one bounded box, not
// threaded across a paginated Regions iterator); this is a deliberate
// scope reduction from flow's multi-region algorithm, since every example
// in the pack and spec.md's own text treat `stack()` as an unbreakable
// container.
package stack

import (
	"github.com/sentra-lang/typeset/internal/geom"
	"github.com/sentra-lang/typeset/internal/layout"
)

// Child is one item threaded through stack layout.
type Child interface{ isChild() }

// FrameChild is an already-laid-out piece of content, aligned on the
// cross axis.
type FrameChild struct {
	Frame layout.Frame
	Cross layout.FixedAlignment
}

func (FrameChild) isChild() {}

// SpacingChild is explicit main-axis spacing.
type SpacingChild struct {
	Amount   geom.Abs
	Weak     bool
	Weakness layout.Weakness
}

func (SpacingChild) isChild() {}

// FrChild is fractional main-axis spacing.
type FrChild struct {
	Amount   geom.Fr
	Weakness layout.Weakness
}

func (FrChild) isChild() {}

// Layout stacks children along dir into a single frame sized to fit size
// (or the content's natural extent on axes not in expand).
func Layout(children []Child, dir geom.Dir, size geom.Size, expand geom.Axes[bool]) (layout.Frame, error) {
	horizontal := dir.IsHorizontal()
	mainBudget := size.Height
	if horizontal {
		mainBudget = size.Width
	}

	type item struct {
		isSpace  bool
		isFr     bool
		frame    layout.Frame
		cross    layout.FixedAlignment
		amount   geom.Abs
		frShare  geom.Fr
		weak     bool
		weakness layout.Weakness
	}

	var items []item
	var used geom.Abs
	var frTotal geom.Fr
	lastWasWeak := false

	mainSize := func(f layout.Frame) geom.Abs {
		if horizontal {
			return f.Size.Width
		}
		return f.Size.Height
	}
	crossSize := func(f layout.Frame) geom.Abs {
		if horizontal {
			return f.Size.Height
		}
		return f.Size.Width
	}

	for _, c := range children {
		switch v := c.(type) {
		case SpacingChild:
			if v.Weak {
				if len(items) == 0 {
					continue
				}
				if lastWasWeak {
					prev := &items[len(items)-1]
					if v.Weakness > prev.weakness {
						used -= prev.amount
						clamped := clampToRemaining(v.Amount, mainBudget, used)
						*prev = item{isSpace: true, amount: clamped, weak: true, weakness: v.Weakness}
						used += clamped
					}
					continue
				}
			}
			amount := clampToRemaining(v.Amount, mainBudget, used)
			items = append(items, item{isSpace: true, amount: amount, weak: v.Weak, weakness: v.Weakness})
			used += amount
			lastWasWeak = v.Weak

		case FrChild:
			frTotal += v.Amount
			items = append(items, item{isFr: true, frShare: v.Amount})
			lastWasWeak = false

		case FrameChild:
			items = append(items, item{frame: v.Frame, cross: v.Cross})
			used += mainSize(v.Frame)
			lastWasWeak = false
		}
	}

	for len(items) > 0 && items[len(items)-1].isSpace && items[len(items)-1].weak {
		used -= items[len(items)-1].amount
		items = items[:len(items)-1]
	}

	mainTotal := mainBudget
	if (horizontal && !expand.X) || (!horizontal && !expand.Y) {
		mainTotal = used
	}
	var crossTotal geom.Abs
	for _, it := range items {
		if !it.isSpace && !it.isFr {
			if cs := crossSize(it.frame); cs > crossTotal {
				crossTotal = cs
			}
		}
	}
	if horizontal && expand.Y {
		crossTotal = size.Height
	}
	if !horizontal && expand.X {
		crossTotal = size.Width
	}

	out := geom.Size{Width: mainTotal, Height: crossTotal}
	if !horizontal {
		out = geom.Size{Width: crossTotal, Height: mainTotal}
	}
	frame := layout.NewFrame(out)

	leftover := mainBudget - used
	if leftover < 0 {
		leftover = 0
	}

	var cursor geom.Abs
	positive := dir.IsPositive()
	for _, it := range items {
		switch {
		case it.isSpace:
			cursor += it.amount
		case it.isFr:
			if frTotal > 0 {
				cursor += geom.Abs(float64(it.frShare/frTotal) * float64(leftover))
			}
		default:
			mainPos := cursor
			if !positive {
				mainPos = mainTotal - cursor - mainSize(it.frame)
			}
			var crossAvail geom.Abs
			if horizontal {
				crossAvail = crossTotal - it.frame.Size.Height
			} else {
				crossAvail = crossTotal - it.frame.Size.Width
			}
			crossPos := it.cross.Position(crossAvail)

			var pos geom.Point
			if horizontal {
				pos = geom.Point{X: mainPos, Y: crossPos}
			} else {
				pos = geom.Point{X: crossPos, Y: mainPos}
			}
			frame.PushFrame(pos, it.frame)
			cursor += mainSize(it.frame)
		}
	}

	return frame, nil
}

func clampToRemaining(amount, budget, used geom.Abs) geom.Abs {
	remaining := budget - used
	if remaining < 0 {
		remaining = 0
	}
	if amount > remaining {
		return remaining
	}
	return amount
}
