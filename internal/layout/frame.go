// Package layout holds the types shared by every sub-layouter
// (flow/stack/grid/inline/math/transform): frames, regions, and the
// alignment/weakness vocabulary spec.md §4.3-§4.8 is written against.
//
// Grounded on
// other_examples/fddb5336_boergens-gotypst__layout-flow-types.go.go's
// Frame/FrameEntry/FrameItem/Region/Regions/FixedAlignment, completed
// (gotypst's Frame carried no real item variants and Regions.Iter/MayProgress
// were TODO-stubbed in the block/flow fragments) and rebased onto this
// module's own internal/geom primitives instead of gotypst's layout.Abs/
// layout.Size.
package layout

import "github.com/sentra-lang/typeset/internal/geom"

// FixedAlignment is a resolved one-axis alignment (spec.md §4.3's "monotone
// ruler" operates against this).
type FixedAlignment int

const (
	AlignStart FixedAlignment = iota
	AlignCenter
	AlignEnd
)

// Position returns the offset into `free` space this alignment resolves to.
func (a FixedAlignment) Position(free geom.Abs) geom.Abs {
	switch a {
	case AlignCenter:
		return free / 2
	case AlignEnd:
		return free
	default:
		return 0
	}
}

// Weakness orders weak-spacing collapse: among adjacent weak items, only
// the one with the highest weakness survives (spec.md §4.3).
type Weakness uint8

// FrameItem is anything placeable at a position in a Frame.
type FrameItem interface{ isFrameItem() }

// TextItem is one shaped run of glyph positions (from internal/layout/inline).
type TextItem struct {
	Text    string
	Advance geom.Abs
}

func (TextItem) isFrameItem() {}

// ImageItem places a raster/vector image at its rendered size.
type ImageItem struct {
	Width, Height geom.Abs
}

func (ImageItem) isFrameItem() {}

// GroupItem nests a child frame, optionally under a transform (spec.md
// §4.8).
type GroupItem struct {
	Frame     Frame
	Transform geom.Transform
}

func (GroupItem) isFrameItem() {}

// TagItem marks an introspection location without occupying space.
type TagItem struct{ Location uint64 }

func (TagItem) isFrameItem() {}

// Entry is one positioned item within a Frame.
type Entry struct {
	Pos  geom.Point
	Item FrameItem
}

// Frame is a laid-out box: a size plus positioned items, the terminal
// output of every layouter.
type Frame struct {
	Size  geom.Size
	items []Entry
}

// NewFrame creates an empty frame of the given size.
func NewFrame(size geom.Size) Frame { return Frame{Size: size} }

// Push appends an item at pos.
func (f *Frame) Push(pos geom.Point, item FrameItem) {
	f.items = append(f.items, Entry{Pos: pos, Item: item})
}

// PushFrame nests a child frame at pos, untransformed.
func (f *Frame) PushFrame(pos geom.Point, child Frame) {
	f.Push(pos, GroupItem{Frame: child, Transform: geom.Identity()})
}

// Items returns the frame's positioned items.
func (f *Frame) Items() []Entry { return f.items }

// IsEmpty reports whether the frame holds no items.
func (f *Frame) IsEmpty() bool { return len(f.items) == 0 }

// Translate shifts every item in the frame by delta. The frame's Size is
// left unchanged.
func (f *Frame) Translate(delta geom.Point) {
	for i := range f.items {
		f.items[i].Pos = f.items[i].Pos.Add(delta)
	}
}

// Region is a single available layout area.
type Region struct {
	Size   geom.Size
	Expand geom.Axes[bool]
}

// Regions is the iterator over successive available areas a breakable
// layouter may spill into (spec.md §4.3's "Regions iterator").
type Regions struct {
	Size    geom.Size
	Expand  geom.Axes[bool]
	Full    geom.Size
	Backlog []geom.Abs // heights of subsequent regions, if known
	Last    *geom.Abs  // height repeated indefinitely once Backlog is exhausted
}

// NewRegions builds a single-region iterator from a fixed size.
func NewRegions(size geom.Size, expand geom.Axes[bool]) Regions {
	return Regions{Size: size, Expand: expand, Full: size}
}

// Base returns the size relative lengths inside this region resolve
// against.
func (r Regions) Base() geom.Size { return r.Full }

// MayProgress reports whether advancing past the current region would
// reach a further, possibly more spacious, region.
func (r Regions) MayProgress() bool {
	return len(r.Backlog) > 0 || r.Last != nil
}

// IsFull reports whether the current region has (over)used its height.
func (r Regions) IsFull() bool { return r.Size.Height <= 0 }

// Next advances to the next region in the backlog (or repeats Last),
// returning false once no further region is available.
func (r *Regions) Next() bool {
	if len(r.Backlog) > 0 {
		h := r.Backlog[0]
		r.Backlog = r.Backlog[1:]
		r.Size = geom.Size{Width: r.Full.Width, Height: h}
		r.Full.Height = h
		return true
	}
	if r.Last != nil {
		r.Size = geom.Size{Width: r.Full.Width, Height: *r.Last}
		r.Full.Height = *r.Last
		return true
	}
	return false
}
