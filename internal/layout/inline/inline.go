// Package inline implements paragraph line breaking and justification
// (spec.md §4.5): items are built from shaped word/space runs, a dynamic
// program chooses the minimum-cost partition into lines, and justified
// lines redistribute glue stretch.
//
// Line-box assembly (a running cursor tracking line width/height as items
// are placed) is grounded in the Go idiom of
// iansmith-louis14/pkg/layout/layout_inline_singlepass.go's InlineContext
// (LineX/LineY/LineHeight accumulated incrementally); the CSS engine that
// file belongs to has no DP line breaker of its own (it wraps greedily),
// so the cost-minimizing partition in BreakLines is new code written
// directly from spec.md §4.5's "score candidate line layouts... choose
// the minimum-cost set by dynamic programming" and
// `original_source/crates/typst-layout/src/inline/linebreak.rs`. Grapheme
// and word boundaries come from `github.com/clipperhouse/uax29/v2` via
// internal/segment, exactly as spec.md §4.5 calls for.
package inline

import (
	"math"

	"github.com/sentra-lang/typeset/internal/geom"
	"github.com/sentra-lang/typeset/internal/layout"
	"github.com/sentra-lang/typeset/internal/segment"
)

// Item is one shaped piece of paragraph content: a word run, or a glue
// (interword space) that stretches under justification and is a normal
// break opportunity.
type Item struct {
	Text       string
	Advance    geom.Abs
	Glue       bool
	Stretch    geom.Abs
	Mandatory  bool // a forced break (e.g. linebreak element) follows this item
	Hyphenable bool // a hyphenation break opportunity follows this item
}

// BuildItems segments text into word items separated by glue items, using
// grapheme-safe word boundaries (internal/segment, UAX#29).
func BuildItems(text string, measure func(word string) geom.Abs, spaceWidth, spaceStretch geom.Abs) []Item {
	var items []Item
	for _, w := range segment.Words(text) {
		if isAllSpace(w) {
			items = append(items, Item{Glue: true, Advance: spaceWidth, Stretch: spaceStretch})
			continue
		}
		items = append(items, Item{Text: w, Advance: measure(w)})
	}
	return items
}

func isAllSpace(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return len(s) > 0
}

// Line is one output line: the items it contains and their natural
// (unjustified) width.
type Line struct {
	Items []Item
	Width geom.Abs
}

// BreakLines partitions items into lines minimizing total badness via
// dynamic programming (spec.md §4.5). Badness penalizes overfull lines
// heavily and tight/loose lines quadratically; the last item of the
// paragraph is always a valid break regardless of glue.
func BreakLines(items []Item, width geom.Abs) []Line {
	n := len(items)
	if n == 0 {
		return nil
	}
	const inf = math.MaxFloat64

	cost := make([]float64, n+1)
	from := make([]int, n+1)
	for i := range cost {
		cost[i] = inf
	}
	cost[0] = 0

	// breakableAfter(i) reports whether a line may end right after item i
	// (paragraph end, glue, or a hyphenation point).
	breakableAfter := func(i int) bool {
		if i == n-1 {
			return true
		}
		return items[i].Glue || items[i].Mandatory || items[i].Hyphenable
	}

	for i := 0; i < n; i++ {
		if cost[i] == inf {
			continue
		}
		var lineWidth geom.Abs
		var stretch geom.Abs
		for j := i; j < n; j++ {
			lineWidth += items[j].Advance
			stretch += items[j].Stretch
			if !breakableAfter(j) && j != n-1 {
				continue
			}
			c := lineBadness(lineWidth, stretch, width, items[j].Mandatory)
			total := cost[i] + c
			if total < cost[j+1] {
				cost[j+1] = total
				from[j+1] = i
			}
			if items[j].Mandatory {
				break
			}
		}
	}

	var breaks []int
	for k := n; k > 0; k = from[k] {
		breaks = append([]int{k}, breaks...)
	}

	var lines []Line
	start := 0
	for _, end := range breaks {
		seg := trimLeadingGlue(items[start:end])
		var w geom.Abs
		for _, it := range seg {
			w += it.Advance
		}
		lines = append(lines, Line{Items: seg, Width: w})
		start = end
	}
	return lines
}

func trimLeadingGlue(items []Item) []Item {
	for len(items) > 0 && items[0].Glue {
		items = items[1:]
	}
	for len(items) > 0 && items[len(items)-1].Glue {
		items = items[:len(items)-1]
	}
	return items
}

// lineBadness scores a candidate line: quadratic in the over/undershoot
// relative to the available stretch, and very large once the line
// overflows (spec.md §4.5: "penalizing overfull lines (strongly), tight/
// loose lines").
func lineBadness(width, stretch, target geom.Abs, mandatory bool) float64 {
	delta := float64(target - width)
	if delta < 0 {
		// Overfull: cannot be fixed by stretch, heavily penalized.
		return 1e6 * (-delta) * (-delta)
	}
	if mandatory {
		return 0
	}
	if stretch <= 0 {
		return delta * delta
	}
	ratio := delta / float64(stretch)
	return ratio * ratio
}

// Justify computes, for a line flagged justified, the extra stretch to
// add to each glue item so the line's total width equals target. The
// last line of a paragraph is exempted unless forced (spec.md §4.5).
func Justify(line Line, target geom.Abs) []geom.Abs {
	extra := make([]geom.Abs, len(line.Items))
	var totalStretch geom.Abs
	for _, it := range line.Items {
		if it.Glue {
			totalStretch += it.Stretch
		}
	}
	leftover := target - line.Width
	if leftover <= 0 || totalStretch <= 0 {
		return extra
	}
	for i, it := range line.Items {
		if it.Glue {
			extra[i] = geom.Abs(float64(it.Stretch/totalStretch) * float64(leftover))
		}
	}
	return extra
}

// Layout renders lines into one frame per line, positioning glyph runs
// left-to-right with justification applied per Justify when justify is
// true (except the final line).
func Layout(lines []Line, width, lineHeight geom.Abs, justify bool) []layout.Frame {
	frames := make([]layout.Frame, len(lines))
	for i, line := range lines {
		frame := layout.NewFrame(geom.Size{Width: width, Height: lineHeight})
		var extra []geom.Abs
		if justify && i != len(lines)-1 {
			extra = Justify(line, width)
		}
		var cursor geom.Abs
		for j, it := range line.Items {
			if it.Glue {
				adv := it.Advance
				if extra != nil {
					adv += extra[j]
				}
				cursor += adv
				continue
			}
			frame.Push(geom.Point{X: cursor, Y: 0}, layout.TextItem{Text: it.Text, Advance: it.Advance})
			cursor += it.Advance
		}
		frames[i] = frame
	}
	return frames
}
