package flow

import (
	"testing"

	"github.com/sentra-lang/typeset/internal/geom"
	"github.com/sentra-lang/typeset/internal/layout"
)

func block(h geom.Abs) FrameChild {
	return FrameChild{Frame: layout.NewFrame(geom.Size{Width: 10 * geom.Pt, Height: h})}
}

func TestFlowAdvancesAcrossRegionsWhenFull(t *testing.T) {
	regions := layout.NewRegions(geom.Size{Width: 100 * geom.Pt, Height: 30 * geom.Pt}, geom.Axes[bool]{X: true, Y: true})
	last := 30 * geom.Pt
	regions.Last = &last

	children := []Child{block(20 * geom.Pt), block(20 * geom.Pt), block(20 * geom.Pt)}
	frames, err := Layout(children, regions)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames (no two 20pt blocks fit one 30pt region), got %d", len(frames))
	}
}

func TestFlowCollapsesWeakSpacingToStrongest(t *testing.T) {
	regions := layout.NewRegions(geom.Size{Width: 100 * geom.Pt, Height: 100 * geom.Pt}, geom.Axes[bool]{X: true, Y: true})
	children := []Child{
		block(10 * geom.Pt),
		SpacingChild{Amount: 5 * geom.Pt, Weak: true, Weakness: 1},
		SpacingChild{Amount: 8 * geom.Pt, Weak: true, Weakness: 2},
		block(10 * geom.Pt),
	}
	frames, err := Layout(children, regions)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 1 {
		t.Fatalf("expected a single frame, got %d", len(frames))
	}
	// Only the second (stronger) weak spacing should have survived: total
	// consumed height is 10 + 8 + 10 = 28pt.
	var maxY geom.Abs
	for _, e := range frames[0].Items() {
		if e.Pos.Y > maxY {
			maxY = e.Pos.Y
		}
	}
	if maxY != 18*geom.Pt {
		t.Fatalf("expected the weaker spacing to be dropped, second block at y=18pt, got %v", maxY)
	}
}

func TestFlowDiscardsWeakSpacingAtRegionStart(t *testing.T) {
	regions := layout.NewRegions(geom.Size{Width: 100 * geom.Pt, Height: 100 * geom.Pt}, geom.Axes[bool]{X: true, Y: true})
	children := []Child{
		SpacingChild{Amount: 50 * geom.Pt, Weak: true},
		block(10 * geom.Pt),
	}
	frames, err := Layout(children, regions)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames[0].Items()) != 1 {
		t.Fatalf("expected the leading weak spacing to be discarded")
	}
	if frames[0].Items()[0].Pos.Y != 0 {
		t.Fatalf("expected the block at y=0, got %v", frames[0].Items()[0].Pos.Y)
	}
}

func TestFlowDistributesFractionalSpaceProportionally(t *testing.T) {
	regions := layout.NewRegions(geom.Size{Width: 100 * geom.Pt, Height: 100 * geom.Pt}, geom.Axes[bool]{X: true, Y: true})
	children := []Child{
		block(10 * geom.Pt),
		FrChild{Amount: 1},
		block(10 * geom.Pt),
		FrChild{Amount: 3},
		block(10 * geom.Pt),
	}
	frames, err := Layout(children, regions)
	if err != nil {
		t.Fatal(err)
	}
	items := frames[0].Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(items))
	}
	// leftover = 100 - 30 = 70pt, split 1:3 => 17.5pt and 52.5pt.
	gap1 := items[1].Pos.Y - (items[0].Pos.Y + 10*geom.Pt)
	gap2 := items[2].Pos.Y - (items[1].Pos.Y + 10*geom.Pt)
	if gap1 <= 0 || gap2 <= gap1*2 {
		t.Fatalf("expected the second fr gap to be roughly 3x the first, got %v and %v", gap1, gap2)
	}
}

func TestFlowPlacedChildBypassesFlowBudget(t *testing.T) {
	regions := layout.NewRegions(geom.Size{Width: 100 * geom.Pt, Height: 20 * geom.Pt}, geom.Axes[bool]{X: true, Y: true})
	children := []Child{
		PlacedChild{Frame: layout.NewFrame(geom.Size{Width: 5 * geom.Pt, Height: 5 * geom.Pt})},
		block(20 * geom.Pt),
	}
	frames, err := Layout(children, regions)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 1 {
		t.Fatalf("placed child should not force a region advance by itself, got %d frames", len(frames))
	}
}
