package grid

import (
	"testing"

	"github.com/sentra-lang/typeset/internal/geom"
	"github.com/sentra-lang/typeset/internal/layout"
)

func fixedCell(col, row int, w, h geom.Abs) Cell {
	return Cell{Col: col, Row: row, Colspan: 1, Rowspan: 1, Layout: func(width geom.Abs) layout.Frame {
		return layout.NewFrame(geom.Size{Width: w, Height: h})
	}}
}

func TestGridResolvesFixedAndFractionalColumns(t *testing.T) {
	cols := []Sizing{SizingFixed{Value: 20 * geom.Pt}, SizingFractional{Fr: 1}, SizingFractional{Fr: 3}}
	rows := []Sizing{SizingFixed{Value: 10 * geom.Pt}}
	cells := []Cell{
		fixedCell(0, 0, 20*geom.Pt, 10*geom.Pt),
		fixedCell(1, 0, 0, 10*geom.Pt),
		fixedCell(2, 0, 0, 10*geom.Pt),
	}
	frame, err := Layout(cols, rows, cells, geom.Size{Width: 100 * geom.Pt, Height: 10 * geom.Pt}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	items := frame.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(items))
	}
	// leftover after the fixed 20pt column = 80pt, split 1:3 => 20pt, 60pt.
	if items[0].Pos.X != 0 {
		t.Fatalf("expected first column at x=0, got %v", items[0].Pos.X)
	}
	if items[1].Pos.X != 20*geom.Pt {
		t.Fatalf("expected second column at x=20pt, got %v", items[1].Pos.X)
	}
	if items[2].Pos.X != 40*geom.Pt {
		t.Fatalf("expected third column at x=40pt (20+20 fr-share), got %v", items[2].Pos.X)
	}
}

func TestGridAutoColumnMeasuresWidestCell(t *testing.T) {
	cols := []Sizing{SizingAuto{}}
	rows := []Sizing{SizingFixed{Value: 10 * geom.Pt}, SizingFixed{Value: 10 * geom.Pt}}
	cells := []Cell{
		fixedCell(0, 0, 15*geom.Pt, 10*geom.Pt),
		fixedCell(0, 1, 30*geom.Pt, 10*geom.Pt),
	}
	frame, err := Layout(cols, rows, cells, geom.Size{Width: 200 * geom.Pt, Height: 20 * geom.Pt}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if frame.Size.Width != 30*geom.Pt {
		t.Fatalf("expected the auto column to widen to the widest cell (30pt), got %v", frame.Size.Width)
	}
}

func TestGridColspanSumsTrackWidths(t *testing.T) {
	cols := []Sizing{SizingFixed{Value: 10 * geom.Pt}, SizingFixed{Value: 15 * geom.Pt}}
	rows := []Sizing{SizingFixed{Value: 10 * geom.Pt}}
	var gotWidth geom.Abs
	cells := []Cell{
		{Col: 0, Row: 0, Colspan: 2, Rowspan: 1, Layout: func(width geom.Abs) layout.Frame {
			gotWidth = width
			return layout.NewFrame(geom.Size{Width: width, Height: 10 * geom.Pt})
		}},
	}
	gutter := 5 * geom.Pt
	if _, err := Layout(cols, rows, cells, geom.Size{Width: 30 * geom.Pt, Height: 10 * geom.Pt}, gutter, 0); err != nil {
		t.Fatal(err)
	}
	if gotWidth != 10*geom.Pt+5*geom.Pt+15*geom.Pt {
		t.Fatalf("expected colspan width to sum both columns plus the gutter, got %v", gotWidth)
	}
}
