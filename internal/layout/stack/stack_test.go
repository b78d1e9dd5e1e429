package stack

import (
	"testing"

	"github.com/sentra-lang/typeset/internal/geom"
	"github.com/sentra-lang/typeset/internal/layout"
)

func box(w, h geom.Abs) layout.Frame {
	return layout.NewFrame(geom.Size{Width: w, Height: h})
}

func TestStackVerticalOrdersTopToBottom(t *testing.T) {
	children := []Child{
		FrameChild{Frame: box(10*geom.Pt, 10*geom.Pt)},
		FrameChild{Frame: box(10*geom.Pt, 20*geom.Pt)},
	}
	frame, err := Layout(children, geom.DirTTB, geom.Size{Width: 50 * geom.Pt, Height: 100 * geom.Pt}, geom.Axes[bool]{})
	if err != nil {
		t.Fatal(err)
	}
	items := frame.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Pos.Y != 0 || items[1].Pos.Y != 10*geom.Pt {
		t.Fatalf("expected sequential vertical stacking, got %v and %v", items[0].Pos.Y, items[1].Pos.Y)
	}
}

func TestStackBottomToTopReversesOrder(t *testing.T) {
	children := []Child{
		FrameChild{Frame: box(10*geom.Pt, 10*geom.Pt)},
		FrameChild{Frame: box(10*geom.Pt, 20*geom.Pt)},
	}
	frame, err := Layout(children, geom.DirBTT, geom.Size{Width: 50 * geom.Pt, Height: 30 * geom.Pt}, geom.Axes[bool]{})
	if err != nil {
		t.Fatal(err)
	}
	items := frame.Items()
	// With a BTT direction, the first child ends up nearest the bottom.
	if items[0].Pos.Y <= items[1].Pos.Y {
		t.Fatalf("expected BTT to place the first child below the second, got %v and %v", items[0].Pos.Y, items[1].Pos.Y)
	}
}

func TestStackHorizontalCrossAlignment(t *testing.T) {
	children := []Child{
		FrameChild{Frame: box(10*geom.Pt, 5*geom.Pt), Cross: layout.AlignCenter},
	}
	frame, err := Layout(children, geom.DirLTR, geom.Size{Width: 100 * geom.Pt, Height: 20 * geom.Pt}, geom.Axes[bool]{Y: true})
	if err != nil {
		t.Fatal(err)
	}
	items := frame.Items()
	if items[0].Pos.Y != (20-5)*geom.Pt/2 {
		t.Fatalf("expected vertically centered cross-axis position, got %v", items[0].Pos.Y)
	}
}
