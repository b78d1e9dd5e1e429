package transform

import (
	"math"
	"testing"

	"github.com/sentra-lang/typeset/internal/geom"
	"github.com/sentra-lang/typeset/internal/layout"
)

func TestBoxFixesSizeAndPropagatesExpand(t *testing.T) {
	w := 50 * geom.Pt
	h := 30 * geom.Pt
	var gotRegion layout.Region
	frame := Box(Sizing{Width: &w, Height: &h}, layout.Region{Size: geom.Size{Width: 100 * geom.Pt, Height: 200 * geom.Pt}},
		func(r layout.Region) layout.Frame {
			gotRegion = r
			return layout.NewFrame(geom.Size{Width: 10 * geom.Pt, Height: 10 * geom.Pt})
		})

	if frame.Size.Width != w || frame.Size.Height != h {
		t.Fatalf("expected fixed box size %v x %v, got %v", w, h, frame.Size)
	}
	if !gotRegion.Expand.X || !gotRegion.Expand.Y {
		t.Fatal("expected both axes to be marked expand when both dimensions are fixed")
	}
	if gotRegion.Size.Width != w || gotRegion.Size.Height != h {
		t.Fatalf("expected the body to be laid out into the fixed size, got %v", gotRegion.Size)
	}
}

func TestApplyNonReflowKeepsNaturalSize(t *testing.T) {
	frame := Rotate(geom.Angle(math.Pi/4), false, layout.Region{Size: geom.Size{Width: 100 * geom.Pt, Height: 100 * geom.Pt}},
		func(r layout.Region) layout.Frame {
			return layout.NewFrame(geom.Size{Width: 10 * geom.Pt, Height: 4 * geom.Pt})
		})
	if frame.Size.Width != 10*geom.Pt || frame.Size.Height != 4*geom.Pt {
		t.Fatalf("expected non-reflow transform to preserve natural size, got %v", frame.Size)
	}
	items := frame.Items()
	if len(items) != 1 {
		t.Fatalf("expected one wrapped group item, got %d", len(items))
	}
}

func TestRotateReflowSwapsDimensionsAtQuarterTurn(t *testing.T) {
	frame := Rotate(geom.Angle(math.Pi/2), true, layout.Region{Size: geom.Size{Width: 1000 * geom.Pt, Height: 1000 * geom.Pt}},
		func(r layout.Region) layout.Frame {
			return layout.NewFrame(geom.Size{Width: 10 * geom.Pt, Height: 4 * geom.Pt})
		})
	// A 90 degree rotation of a 10x4 box bounds to a 4x10 box.
	if !approxEqual(frame.Size.Width, 4*geom.Pt) {
		t.Fatalf("expected reflowed width 4pt, got %v", frame.Size.Width)
	}
	if !approxEqual(frame.Size.Height, 10*geom.Pt) {
		t.Fatalf("expected reflowed height 10pt, got %v", frame.Size.Height)
	}
	pos := frame.Items()[0].Pos
	if !approxEqual(pos.X, 0) || !approxEqual(pos.Y, 10*geom.Pt) {
		t.Fatalf("expected offset (0, 10pt), got %v", pos)
	}
}

func TestScaleReflowComputesPreimageFromInverse(t *testing.T) {
	var gotSize geom.Size
	Scale(2, 3, true, layout.Region{Size: geom.Size{Width: 40 * geom.Pt, Height: 60 * geom.Pt}},
		func(r layout.Region) layout.Frame {
			gotSize = r.Size
			return layout.NewFrame(geom.Size{Width: 10 * geom.Pt, Height: 10 * geom.Pt})
		})
	// inverse of scale(2,3) applied to the 40x60pt target bounds to 20x20pt.
	if !approxEqual(gotSize.Width, 20*geom.Pt) || !approxEqual(gotSize.Height, 20*geom.Pt) {
		t.Fatalf("expected preimage region 20pt x 20pt, got %v", gotSize)
	}
}

func approxEqual(got, want geom.Abs) bool {
	diff := got - want
	return diff >= -0.001*geom.Pt && diff <= 0.001*geom.Pt
}
