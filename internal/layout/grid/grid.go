// Package grid implements the grid/table track-sizing and cell layout
// algorithm (spec.md §4.7): absolute/relative tracks resolved directly,
// auto tracks measured by laying out their content, fractional tracks
// distributed across whatever space remains, then every cell laid out
// into its final column/row box (with colspan/rowspan support).
//
// Grounded on
// other_examples/32b81659_boergens-gotypst__layout-grid-types.go.go's
// Track/Sizing/Cell/RowState/Current shape, rebased onto this module's
// own geom/layout types (SizingFixed/SizingRelative/SizingFractional/
// SizingAuto kept as-is; Stroke/Paint/fill are layout.transform/paint
// concerns out of this package's scope per spec.md's emission Non-goal).
// gotypst's fragment defined only the data shapes with no sizing
// algorithm attached; the four-step resolve/measure/distribute/place
// algorithm in Layout is new code written from spec.md §4.7's numbered
// steps and `original_source/crates/typst-layout/src/grid/layouter.rs`.
// Row/cell breaking across regions (gotypst's Current.AvailableHeight)
// is scoped out here, matching internal/layout/stack's single-region
// simplification: Layout always produces one frame.
package grid

import (
	"github.com/sentra-lang/typeset/internal/geom"
	"github.com/sentra-lang/typeset/internal/layout"
)

// Sizing is one track's sizing mode.
type Sizing interface{ isSizing() }

type SizingAuto struct{}

func (SizingAuto) isSizing() {}

type SizingFixed struct{ Value geom.Abs }

func (SizingFixed) isSizing() {}

type SizingRelative struct{ Ratio float64 }

func (SizingRelative) isSizing() {}

type SizingFractional struct{ Fr geom.Fr }

func (SizingFractional) isSizing() {}

// Cell is one grid cell: its position, span, and a layout callback that
// produces a frame given the available width (used both to measure auto
// columns and to do the final placement).
type Cell struct {
	Col, Row         int
	Colspan, Rowspan int
	Layout           func(width geom.Abs) layout.Frame
}

// Layout resolves cols/rows sizing against available, measures auto
// tracks, distributes fractional tracks, and places every cell.
func Layout(cols, rows []Sizing, cells []Cell, available geom.Size, colGutter, rowGutter geom.Abs) (layout.Frame, error) {
	const infiniteWidth geom.Abs = 1 << 30

	colWidths := resolveTracks(cols, available.Width, colGutter, true, cellsByCol(cells),
		func(Cell) geom.Abs { return infiniteWidth })

	rowHeights := resolveTracks(rows, available.Height, rowGutter, false, cellsByRow(cells),
		func(c Cell) geom.Abs { return spanSize(colWidths, c.Col, c.Colspan, colGutter) })

	colOffsets := offsetsOf(colWidths, colGutter)
	rowOffsets := offsetsOf(rowHeights, rowGutter)

	totalWidth := trackExtent(colWidths, colGutter)
	totalHeight := trackExtent(rowHeights, rowGutter)

	frame := layout.NewFrame(geom.Size{Width: totalWidth, Height: totalHeight})
	for _, c := range cells {
		w := spanSize(colWidths, c.Col, c.Colspan, colGutter)
		cellFrame := c.Layout(w)
		pos := geom.Point{X: colOffsets[c.Col], Y: rowOffsets[c.Row]}
		frame.PushFrame(pos, cellFrame)
	}
	return frame, nil
}

// resolveTracks implements spec.md §4.7's four steps for one axis: resolve
// absolute/relative tracks, measure auto tracks by laying out their
// single-span cells at the width cellWidth gives, and
// distribute the remaining space across fractional tracks by weight.
func resolveTracks(tracks []Sizing, available geom.Abs, gutter geom.Abs, isColumn bool, spanning func(track int) []Cell, cellWidth func(Cell) geom.Abs) []geom.Abs {
	sizes := make([]geom.Abs, len(tracks))
	var frIndices []int
	var frWeights []geom.Fr
	var consumed geom.Abs

	for i, t := range tracks {
		switch s := t.(type) {
		case SizingFixed:
			sizes[i] = s.Value
			consumed += s.Value
		case SizingRelative:
			sizes[i] = geom.Abs(s.Ratio) * available
			consumed += sizes[i]
		case SizingFractional:
			frIndices = append(frIndices, i)
			frWeights = append(frWeights, s.Fr)
		case SizingAuto:
			var max geom.Abs
			for _, c := range spanning(i) {
				span := 1
				if isColumn {
					span = c.Colspan
				} else {
					span = c.Rowspan
				}
				if span != 1 {
					continue // multi-span cells don't constrain a single auto track
				}
				f := c.Layout(cellWidth(c))
				natural := f.Size.Width
				if !isColumn {
					natural = f.Size.Height
				}
				if natural > max {
					max = natural
				}
			}
			sizes[i] = max
			consumed += max
		}
	}

	if len(tracks) > 1 {
		consumed += gutter * geom.Abs(len(tracks)-1)
	}

	leftover := available - consumed
	if leftover < 0 {
		leftover = 0
	}
	var frTotal geom.Fr
	for _, w := range frWeights {
		frTotal += w
	}
	if frTotal > 0 {
		for i, idx := range frIndices {
			sizes[idx] = geom.Abs(float64(frWeights[i]/frTotal) * float64(leftover))
		}
	}
	return sizes
}

func cellsByCol(cells []Cell) func(int) []Cell {
	return func(col int) []Cell {
		var out []Cell
		for _, c := range cells {
			if c.Col == col {
				out = append(out, c)
			}
		}
		return out
	}
}

func cellsByRow(cells []Cell) func(int) []Cell {
	return func(row int) []Cell {
		var out []Cell
		for _, c := range cells {
			if c.Row == row {
				out = append(out, c)
			}
		}
		return out
	}
}

// offsetsOf returns the leading offset of each track, accounting for
// gutter between tracks.
func offsetsOf(sizes []geom.Abs, gutter geom.Abs) []geom.Abs {
	offsets := make([]geom.Abs, len(sizes))
	var cursor geom.Abs
	for i, s := range sizes {
		offsets[i] = cursor
		cursor += s + gutter
	}
	return offsets
}

func trackExtent(sizes []geom.Abs, gutter geom.Abs) geom.Abs {
	var total geom.Abs
	for _, s := range sizes {
		total += s
	}
	if len(sizes) > 1 {
		total += gutter * geom.Abs(len(sizes)-1)
	}
	return total
}

// spanSize sums the widths (or heights) of `span` consecutive tracks
// starting at `start`, including the gutter between them.
func spanSize(sizes []geom.Abs, start, span int, gutter geom.Abs) geom.Abs {
	if span < 1 {
		span = 1
	}
	var total geom.Abs
	for i := start; i < start+span && i < len(sizes); i++ {
		total += sizes[i]
		if i > start {
			total += gutter
		}
	}
	return total
}
