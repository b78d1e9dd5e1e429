package style

import (
	"sync/atomic"

	"github.com/sentra-lang/typeset/internal/content"
)

var recipeCounter uint64

// NewRecipe builds a recipe with a fresh process-unique guard id, so two
// recipes compiled from the same show-rule source at different call sites
// guard independently (spec.md §3's "guard carried in the style chain").
func NewRecipe(selector Selector, transform func(content.Element) (content.Element, error)) Recipe {
	return Recipe{
		Selector:  selector,
		Transform: transform,
		id:        atomic.AddUint64(&recipeCounter, 1),
	}
}
