package layout

import (
	"testing"

	"github.com/sentra-lang/typeset/internal/geom"
)

func TestFixedAlignmentPosition(t *testing.T) {
	free := 10 * geom.Pt
	if got := AlignStart.Position(free); got != 0 {
		t.Fatalf("AlignStart: got %v", got)
	}
	if got := AlignCenter.Position(free); got != 5*geom.Pt {
		t.Fatalf("AlignCenter: got %v", got)
	}
	if got := AlignEnd.Position(free); got != free {
		t.Fatalf("AlignEnd: got %v", got)
	}
}

func TestFramePushAndTranslate(t *testing.T) {
	f := NewFrame(geom.Size{Width: 100 * geom.Pt, Height: 50 * geom.Pt})
	f.Push(geom.Point{X: 1 * geom.Pt, Y: 2 * geom.Pt}, TextItem{Text: "a", Advance: 3 * geom.Pt})
	if f.IsEmpty() {
		t.Fatal("expected non-empty frame after Push")
	}
	f.Translate(geom.Point{X: 10 * geom.Pt, Y: 0})
	items := f.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Pos.X != 11*geom.Pt {
		t.Fatalf("expected translated X 11pt, got %v", items[0].Pos.X)
	}
}

func TestPushFrameNestsUntransformed(t *testing.T) {
	child := NewFrame(geom.Size{Width: 10 * geom.Pt, Height: 10 * geom.Pt})
	parent := NewFrame(geom.Size{Width: 100 * geom.Pt, Height: 100 * geom.Pt})
	parent.PushFrame(geom.Point{}, child)
	group, ok := parent.Items()[0].Item.(GroupItem)
	if !ok {
		t.Fatalf("expected GroupItem, got %T", parent.Items()[0].Item)
	}
	if group.Transform != geom.Identity() {
		t.Fatal("expected identity transform for untransformed nesting")
	}
}

func TestRegionsSingleRegionDoesNotProgress(t *testing.T) {
	page := geom.Size{Width: 100 * geom.Pt, Height: 200 * geom.Pt}
	regions := NewRegions(page, geom.Axes[bool]{})
	if regions.MayProgress() {
		t.Fatal("a bare single-region iterator should not progress")
	}
	if regions.Next() {
		t.Fatal("Next should fail with no backlog and no Last")
	}
}

func TestRegionsRepeatsLastIndefinitely(t *testing.T) {
	page := geom.Size{Width: 100 * geom.Pt, Height: 200 * geom.Pt}
	regions := NewRegions(page, geom.Axes[bool]{})
	last := page.Height
	regions.Last = &last

	if !regions.MayProgress() {
		t.Fatal("expected MayProgress once Last is set")
	}
	for i := 0; i < 3; i++ {
		if !regions.Next() {
			t.Fatalf("expected Next to succeed on iteration %d", i)
		}
		if regions.Size.Height != page.Height {
			t.Fatalf("expected repeated height %v, got %v", page.Height, regions.Size.Height)
		}
	}
}

func TestRegionsDrainsBacklogBeforeLast(t *testing.T) {
	page := geom.Size{Width: 100 * geom.Pt, Height: 200 * geom.Pt}
	regions := NewRegions(page, geom.Axes[bool]{})
	regions.Backlog = []geom.Abs{50 * geom.Pt, 75 * geom.Pt}
	last := page.Height
	regions.Last = &last

	if !regions.Next() || regions.Size.Height != 50*geom.Pt {
		t.Fatalf("expected first backlog height 50pt, got %v", regions.Size.Height)
	}
	if !regions.Next() || regions.Size.Height != 75*geom.Pt {
		t.Fatalf("expected second backlog height 75pt, got %v", regions.Size.Height)
	}
	if !regions.Next() || regions.Size.Height != page.Height {
		t.Fatalf("expected fallback to Last height, got %v", regions.Size.Height)
	}
}

func TestRegionsIsFull(t *testing.T) {
	regions := NewRegions(geom.Size{Width: 10 * geom.Pt, Height: 0}, geom.Axes[bool]{})
	if !regions.IsFull() {
		t.Fatal("expected zero-height region to be full")
	}
}
