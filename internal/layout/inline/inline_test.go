package inline

import (
	"testing"

	"github.com/sentra-lang/typeset/internal/geom"
)

func measureFixed(perChar geom.Abs) func(string) geom.Abs {
	return func(w string) geom.Abs { return geom.Abs(len([]rune(w))) * perChar }
}

func TestBreakLinesWrapsAtAvailableWidth(t *testing.T) {
	items := BuildItems("aa bb cc dd", measureFixed(1*geom.Pt), 1*geom.Pt, 1*geom.Pt)
	lines := BreakLines(items, 6*geom.Pt)
	if len(lines) < 2 {
		t.Fatalf("expected text to wrap across multiple lines, got %d", len(lines))
	}
	for _, l := range lines {
		if l.Width > 6*geom.Pt+1 {
			t.Fatalf("line overflowed available width: %v > 6pt", l.Width)
		}
	}
}

func TestBreakLinesFitsShortTextOnOneLine(t *testing.T) {
	items := BuildItems("hi", measureFixed(1*geom.Pt), 1*geom.Pt, 1*geom.Pt)
	lines := BreakLines(items, 50*geom.Pt)
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
}

func TestJustifyDistributesStretchAcrossGlue(t *testing.T) {
	items := BuildItems("aa bb", measureFixed(1*geom.Pt), 1*geom.Pt, 1*geom.Pt)
	lines := BreakLines(items, 50*geom.Pt)
	if len(lines) != 1 {
		t.Fatal("expected one line")
	}
	extra := Justify(lines[0], 20*geom.Pt)
	var total geom.Abs
	for _, e := range extra {
		total += e
	}
	if total != 20*geom.Pt-lines[0].Width {
		t.Fatalf("expected justification to make up the full shortfall, got %v want %v", total, 20*geom.Pt-lines[0].Width)
	}
}

func TestLayoutProducesOneFramePerLine(t *testing.T) {
	items := BuildItems("aa bb cc", measureFixed(1*geom.Pt), 1*geom.Pt, 1*geom.Pt)
	lines := BreakLines(items, 3*geom.Pt)
	frames := Layout(lines, 3*geom.Pt, 12*geom.Pt, false)
	if len(frames) != len(lines) {
		t.Fatalf("expected one frame per line, got %d frames for %d lines", len(frames), len(lines))
	}
}
