package main

import (
	"testing"

	"github.com/sentra-lang/typeset/internal/content"
	"github.com/sentra-lang/typeset/internal/diag"
	"github.com/sentra-lang/typeset/internal/eval"
	"github.com/sentra-lang/typeset/internal/geom"
	"github.com/sentra-lang/typeset/internal/realize"
	"github.com/sentra-lang/typeset/internal/style"
)

func TestParsePageSizeParsesWidthAndHeight(t *testing.T) {
	size, err := parsePageSize("100x200")
	if err != nil {
		t.Fatal(err)
	}
	if size.Width != 100*geom.Pt || size.Height != 200*geom.Pt {
		t.Fatalf("got %v", size)
	}
}

func TestParsePageSizeRejectsMalformedInput(t *testing.T) {
	if _, err := parsePageSize("not-a-size"); err == nil {
		t.Fatal("expected an error for a malformed --page value")
	}
}

func TestSourceExprSplitsBlankLinesIntoParagraphs(t *testing.T) {
	ev := eval.NewEvaluator(nil, eval.StandardLibrary(), &diag.Sink{})
	root, err := ev.Eval(sourceExpr("first paragraph\n\nsecond paragraph"))
	if err != nil {
		t.Fatal(err)
	}
	elem, ok := root.(content.Element)
	if !ok {
		t.Fatalf("expected content, got %T", root)
	}

	pairs, err := realize.Realize(realize.Document{}, elem, style.Empty(), &diag.Sink{})
	if err != nil {
		t.Fatal(err)
	}

	var paragraphs []content.Element
	for _, p := range pairs {
		if p.Element.Tag() == content.KindParagraph {
			paragraphs = append(paragraphs, p.Element)
		}
	}
	if len(paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(paragraphs))
	}
	if got := paragraphText(paragraphs[0]); got != "first paragraph" {
		t.Fatalf("expected %q, got %q", "first paragraph", got)
	}
	if got := paragraphText(paragraphs[1]); got != "second paragraph" {
		t.Fatalf("expected %q, got %q", "second paragraph", got)
	}
}
