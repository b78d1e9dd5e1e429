package math

import (
	"testing"

	"github.com/sentra-lang/typeset/internal/geom"
	"github.com/sentra-lang/typeset/internal/layout"
)

func glyph(w, h, baseline geom.Abs, class Class) Fragment {
	return Fragment{Frame: layout.NewFrame(geom.Size{Width: w, Height: h}), Baseline: baseline, Class: class}
}

func TestRowInsertsThickSpaceAroundRelation(t *testing.T) {
	ctx := Context{FontSize: 10 * geom.Pt, Style: StyleText}
	f1 := glyph(10*geom.Pt, 10*geom.Pt, 8*geom.Pt, ClassNormal)
	f2 := glyph(5*geom.Pt, 6*geom.Pt, 4*geom.Pt, ClassRel)

	row := Row(ctx, []Fragment{f1, f2})

	if row.Baseline != 8*geom.Pt {
		t.Fatalf("expected row baseline 8pt, got %v", row.Baseline)
	}
	if row.Frame.Size.Height != 10*geom.Pt {
		t.Fatalf("expected row height 10pt, got %v", row.Frame.Size.Height)
	}
	wantWidth := 10*geom.Pt + 2.78*geom.Pt + 5*geom.Pt
	if diff := row.Frame.Size.Width - wantWidth; diff > 0.01*geom.Pt || diff < -0.01*geom.Pt {
		t.Fatalf("expected row width ~%v, got %v", wantWidth, row.Frame.Size.Width)
	}
}

func TestAttachGrowsFrameToFitBothScripts(t *testing.T) {
	ctx := Context{FontSize: 10 * geom.Pt, Style: StyleText}
	base := glyph(10*geom.Pt, 10*geom.Pt, 8*geom.Pt, ClassNormal)
	sup := glyph(4*geom.Pt, 4*geom.Pt, 3*geom.Pt, ClassNormal)
	sub := glyph(3*geom.Pt, 3*geom.Pt, 1*geom.Pt, ClassNormal)

	out := Attach(ctx, base, &sub, &sup)

	// SuperscriptShift = max(baseAscent=8, 0.36*10=3.6) = 8; ascent = max(8, 8+3) = 11.
	// SubscriptShift = max(baseDescent=2, 0.15*10=1.5) = 2; descent = max(2, 2+2) = 4.
	if out.Frame.Size.Height != 15*geom.Pt {
		t.Fatalf("expected attached height 15pt, got %v", out.Frame.Size.Height)
	}
	if out.Baseline != 11*geom.Pt {
		t.Fatalf("expected attached baseline 11pt, got %v", out.Baseline)
	}
	if out.Frame.Size.Width != 14*geom.Pt {
		t.Fatalf("expected attached width 14pt (base 10 + script 4), got %v", out.Frame.Size.Width)
	}
}

func TestFracStacksNumeratorBarDenominator(t *testing.T) {
	ctx := Context{FontSize: 10 * geom.Pt, Style: StyleText}
	num := glyph(10*geom.Pt, 6*geom.Pt, 5*geom.Pt, ClassNormal)
	den := glyph(8*geom.Pt, 4*geom.Pt, 3*geom.Pt, ClassNormal)

	out := Frac(ctx, num, den)

	if out.Frame.Size.Width != 10*geom.Pt {
		t.Fatalf("expected fraction width to match the wider operand (10pt), got %v", out.Frame.Size.Width)
	}
	wantHeight := 13.4 * geom.Pt
	if diff := out.Frame.Size.Height - wantHeight; diff > 0.01*geom.Pt || diff < -0.01*geom.Pt {
		t.Fatalf("expected fraction height ~%v, got %v", wantHeight, out.Frame.Size.Height)
	}
	if len(out.Frame.Items()) != 3 {
		t.Fatalf("expected 3 items (numerator, bar, denominator), got %d", len(out.Frame.Items()))
	}
}

func TestStretchScalesGlyphToTargetHeight(t *testing.T) {
	g := glyph(3*geom.Pt, 5*geom.Pt, 4*geom.Pt, ClassFence)
	out := Stretch(g, 15*geom.Pt)
	if out.Frame.Size.Height != 15*geom.Pt {
		t.Fatalf("expected stretched height 15pt, got %v", out.Frame.Size.Height)
	}
	if out.Baseline != 12*geom.Pt {
		t.Fatalf("expected baseline scaled by the same factor (3x) to 12pt, got %v", out.Baseline)
	}
}

func TestStretchLeavesTallEnoughGlyphAlone(t *testing.T) {
	g := glyph(3*geom.Pt, 20*geom.Pt, 10*geom.Pt, ClassFence)
	out := Stretch(g, 15*geom.Pt)
	if out.Frame.Size.Height != 20*geom.Pt {
		t.Fatalf("expected untouched height 20pt, got %v", out.Frame.Size.Height)
	}
}

func TestUseLimitsOnlyForDisplayStyleBigOperators(t *testing.T) {
	display := Context{FontSize: 10 * geom.Pt, Style: StyleDisplay}
	text := Context{FontSize: 10 * geom.Pt, Style: StyleText}

	if !UseLimits(display, ClassLarge, '∑') {
		t.Fatal("expected sum in display style to use limits")
	}
	if UseLimits(text, ClassLarge, '∑') {
		t.Fatal("expected sum in text style not to use limits")
	}
	if UseLimits(display, ClassLarge, 'x') {
		t.Fatal("expected an arbitrary codepoint not to trigger limits")
	}
}

func TestAlignColumnsTakesWidestPrefixPerIndex(t *testing.T) {
	cols := AlignColumns([][]geom.Abs{
		{2 * geom.Pt, 5 * geom.Pt},
		{3 * geom.Pt, 4 * geom.Pt, 9 * geom.Pt},
	})
	want := []geom.Abs{3 * geom.Pt, 5 * geom.Pt, 9 * geom.Pt}
	if len(cols) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(cols))
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Fatalf("column %d: expected %v, got %v", i, want[i], cols[i])
		}
	}
}
