package style

import (
	"testing"

	"github.com/sentra-lang/typeset/internal/content"
	"github.com/sentra-lang/typeset/internal/value"
)

func TestGetSearchesFromTip(t *testing.T) {
	outer := Empty().Push(Entry{Properties: []Property{{Func: "text", Name: "size", Value: value.Int(10)}}})
	inner := outer.Push(Entry{Properties: []Property{{Func: "text", Name: "size", Value: value.Int(20)}}})

	v, ok := inner.Get("text", "size")
	if !ok || v.(value.Int) != 20 {
		t.Fatalf("expected nearest entry to win, got %v", v)
	}
}

func TestGetWithDefault(t *testing.T) {
	chain := Empty()
	v := chain.GetWithDefault("text", "size", value.Int(12))
	if v.(value.Int) != 12 {
		t.Fatalf("expected default, got %v", v)
	}
}

func TestFoldSumsDeltas(t *testing.T) {
	outer := Empty().Push(Entry{Properties: []Property{{Func: "text", Name: "delta", Value: value.Int(1), Fold: FoldSum}}})
	inner := outer.Push(Entry{Properties: []Property{{Func: "text", Name: "delta", Value: value.Int(2), Fold: FoldSum}}})

	v, ok := inner.Get("text", "delta")
	if !ok || v.(value.Int) != 3 {
		t.Fatalf("expected folded sum 3, got %v", v)
	}
}

func TestPushEmptyEntryIsNoop(t *testing.T) {
	base := Empty()
	same := base.Push(Entry{})
	if same != base {
		t.Fatal("expected pushing an empty entry to return the same chain")
	}
}

func TestRecipesForFiltersBySelectorAndGuard(t *testing.T) {
	recipe := NewRecipe(ElemSelector{Kind: content.KindStrong}, nil)
	chain := Empty().Push(Entry{Recipes: []Recipe{recipe}})

	strong := content.New(content.KindStrong)
	matches := chain.RecipesFor(strong)
	if len(matches) != 1 {
		t.Fatalf("expected 1 matching recipe, got %d", len(matches))
	}

	text := content.New(content.KindText)
	if len(chain.RecipesFor(text)) != 0 {
		t.Fatal("expected no match for a non-matching kind")
	}

	guarded := chain.Guarded(recipe)
	if len(guarded.RecipesFor(strong)) != 0 {
		t.Fatal("expected guarded chain to exclude the recipe")
	}
}

func TestAtBarrierTruncates(t *testing.T) {
	base := Empty().Push(Entry{Properties: []Property{{Func: "f", Name: "p", Value: value.Int(1)}}})
	barriered := base.Push(Entry{Barrier: true})
	scoped := barriered.Push(Entry{Properties: []Property{{Func: "f", Name: "p", Value: value.Int(2)}}})

	if v, ok := scoped.Get("f", "p"); !ok || v.(value.Int) != 2 {
		t.Fatalf("expected scoped value visible before barrier, got %v", v)
	}
	afterBarrier := scoped.AtBarrier()
	if v, ok := afterBarrier.Get("f", "p"); !ok || v.(value.Int) != 1 {
		t.Fatalf("expected barrier to cut off scoped value, got %v", v)
	}
}

func TestIsEmptyAndDepth(t *testing.T) {
	if !Empty().IsEmpty() {
		t.Fatal("expected empty chain to report empty")
	}
	chain := Empty().Push(Entry{Properties: []Property{{Func: "a", Name: "b", Value: value.Int(1)}}})
	if chain.IsEmpty() {
		t.Fatal("expected non-empty chain")
	}
	if chain.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", chain.Depth())
	}
}
