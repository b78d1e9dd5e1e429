package realize

import (
	"testing"

	"github.com/sentra-lang/typeset/internal/content"
	"github.com/sentra-lang/typeset/internal/style"
)

func TestRealizeGroupsInlineRunsIntoParagraphs(t *testing.T) {
	root := content.New(content.KindSequence).
		PushChild(content.Text("hello")).
		PushChild(content.New(content.KindSpace)).
		PushChild(content.Text("world"))

	pairs, err := Realize(Document{}, root, style.Empty(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 1 || pairs[0].Element.Tag() != content.KindParagraph {
		t.Fatalf("expected one paragraph, got %+v", pairs)
	}
	if len(pairs[0].Element.Children()) != 3 {
		t.Fatalf("expected 3 grouped children, got %d", len(pairs[0].Element.Children()))
	}
}

func TestRealizeAppliesShowRule(t *testing.T) {
	recipe := style.NewRecipe(style.ElemSelector{Kind: content.KindStrong}, func(e content.Element) (content.Element, error) {
		return content.New(content.KindEmph).WithChildren(e.Children()), nil
	})
	chain := style.Empty().Push(style.Entry{Recipes: []style.Recipe{recipe}})

	root := content.New(content.KindStrong).PushChild(content.Text("shout"))
	pairs, err := Realize(Document{}, root, chain, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 1 || pairs[0].Element.Tag() != content.KindEmph {
		t.Fatalf("expected the show rule to retag the element, got %+v", pairs)
	}
}

func TestRealizeDropsSpacesAtBlockBoundaries(t *testing.T) {
	root := content.New(content.KindSequence).
		PushChild(content.New(content.KindSpace)).
		PushChild(content.New(content.KindHeading).PushChild(content.Text("Title")))

	pairs, err := Realize(Document{}, root, style.Empty(), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range pairs {
		if p.Element.Tag() == content.KindSpace {
			t.Fatal("expected the leading space before a block element to be collapsed")
		}
	}
}

func TestDetectFragmentKindMixed(t *testing.T) {
	pairs := []Pair{
		{Element: content.New(content.KindHeading)},
		{Element: content.Text("inline")},
	}
	if k := detectFragmentKind(pairs); k != FragmentMixed {
		t.Fatalf("got %v", k)
	}
}

func TestRecipeGuardPreventsReentry(t *testing.T) {
	var calls int
	recipe := style.NewRecipe(style.ElemSelector{Kind: content.KindStrong}, func(e content.Element) (content.Element, error) {
		calls++
		return e, nil // returns the same kind, which would loop forever without the guard
	})
	chain := style.Empty().Push(style.Entry{Recipes: []style.Recipe{recipe}})

	root := content.New(content.KindStrong).PushChild(content.Text("x"))
	if _, err := Realize(Document{}, root, chain, nil); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("expected the guard to prevent re-entry, recipe ran %d times", calls)
	}
}
