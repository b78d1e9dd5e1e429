// Package style implements the style chain: a singly-linked list of
// property/recipe/barrier/guard/role entries that content is realized and
// laid out against (spec.md §3).
//
// Grounded directly on
// other_examples/735b0eff_boergens-gotypst__realize-realize.go.go's
// StyleChain (Get/GetWithDefault/GetProperty/Chain/GetRecipes/
// GetRecipesFor/IsEmpty/Depth), adapted from gotypst's eval.Styles/
// eval.Recipe onto this module's own value.Value/content.Element types.
// The per-recipe guard mechanism (spec.md §3's "re-entry into a recipe is
// prevented by a per-recipe guard carried in the style chain") has no
// analogue in gotypst's sketch and is new code in the same struct-and-
// method idiom.
package style

import (
	"github.com/sentra-lang/typeset/internal/content"
	"github.com/sentra-lang/typeset/internal/value"
)

// Selector decides whether a recipe applies to a given element.
type Selector interface {
	Matches(e content.Element) bool
}

// ElemSelector matches by element kind.
type ElemSelector struct{ Kind content.ElementKind }

func (s ElemSelector) Matches(e content.Element) bool { return e.Tag() == s.Kind }

// LabelSelector matches elements carrying a specific label.
type LabelSelector struct{ Label string }

func (s LabelSelector) Matches(e content.Element) bool {
	l, ok := e.Label()
	return ok && l == s.Label
}

// Recipe is a show rule: an optional selector plus the transform to apply
// when it matches (a closure into eval is supplied by the caller to avoid
// an eval->style import cycle).
type Recipe struct {
	Selector Selector // nil matches everything
	Transform func(content.Element) (content.Element, error)
	// id disambiguates recipes for the per-recipe re-entry guard.
	id uint64
}

// Property is one (function, property name) -> value binding, the
// equivalent of gotypst's "rule.Args" named-argument peek.
type Property struct {
	Func  string
	Name  string
	Value value.Value
	// Fold, if set, combines this property with an outer value of the same
	// (Func,Name) instead of shadowing it, matching spec.md §3's "folding
	// properties combine nested values."
	Fold func(inner, outer value.Value) value.Value
}

// Entry is one style-chain link's payload: any mix of properties,
// recipes, and guards recorded at this link.
type Entry struct {
	Properties []Property
	Recipes    []Recipe
	// Guards lists recipe ids whose re-entry is forbidden below this link.
	Guards []uint64
	// Barrier marks this link as the one scoped ("constructor-style")
	// properties below it cannot see past.
	Barrier bool
}

func (Entry) isStyleEntry() {} // implements content.StyleEntry

// equalStyleEntry implements content.StyleEntry's equality hook: two
// entries compare equal when their properties, recipes, guards, and
// barrier flag all match. Recipes compare by id rather than by Transform
// (functions aren't comparable), so two independently-built recipes with
// identical behavior but different ids still compare unequal — consistent
// with the per-recipe guard mechanism, which also keys off id.
func (e Entry) equalStyleEntry(other content.StyleEntry) bool {
	o, ok := other.(Entry)
	if !ok {
		return false
	}
	if e.Barrier != o.Barrier {
		return false
	}
	if len(e.Properties) != len(o.Properties) || len(e.Recipes) != len(o.Recipes) || len(e.Guards) != len(o.Guards) {
		return false
	}
	for i := range e.Properties {
		a, b := e.Properties[i], o.Properties[i]
		if a.Func != b.Func || a.Name != b.Name || !value.Equal(a.Value, b.Value) {
			return false
		}
	}
	for i := range e.Guards {
		if e.Guards[i] != o.Guards[i] {
			return false
		}
	}
	for i := range e.Recipes {
		if e.Recipes[i].id != o.Recipes[i].id {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the entry carries no properties, recipes, or
// guards and is not a barrier (mirrors gotypst's inline nil-check in
// StyleChain.Chain).
func (e Entry) IsEmpty() bool {
	return len(e.Properties) == 0 && len(e.Recipes) == 0 && len(e.Guards) == 0 && !e.Barrier
}

// Chain is a singly-linked list of style entries, highest precedence
// (nearest the tip) first.
type Chain struct {
	entry  *Entry
	parent *Chain
}

// Empty returns the empty style chain.
func Empty() *Chain { return nil }

// Push returns a new chain with entry prepended, or s unchanged if entry is
// empty (mirrors gotypst's StyleChain.Chain early-return).
func (s *Chain) Push(entry Entry) *Chain {
	if entry.IsEmpty() {
		return s
	}
	return &Chain{entry: &entry, parent: s}
}

// Get looks up the first value bound to (funcName, propName), searching
// from the tip outward, applying Fold along the way if the property
// defines one.
func (s *Chain) Get(funcName, propName string) (value.Value, bool) {
	if s == nil {
		return nil, false
	}
	if s.entry != nil {
		for _, p := range s.entry.Properties {
			if p.Func == funcName && p.Name == propName {
				if p.Fold == nil {
					return p.Value, true
				}
				if outer, ok := s.parent.Get(funcName, propName); ok {
					return p.Fold(p.Value, outer), true
				}
				return p.Value, true
			}
		}
	}
	return s.parent.Get(funcName, propName)
}

// GetWithDefault returns Get's value, or def if unset.
func (s *Chain) GetWithDefault(funcName, propName string, def value.Value) value.Value {
	if v, ok := s.Get(funcName, propName); ok {
		return v
	}
	return def
}

// GetAll returns every value bound to (funcName, propName) along the
// chain, nearest-first, without folding — used when a caller wants to fold
// itself (e.g. summing delta weights).
func (s *Chain) GetAll(funcName, propName string) []value.Value {
	if s == nil {
		return nil
	}
	var out []value.Value
	if s.entry != nil {
		for _, p := range s.entry.Properties {
			if p.Func == funcName && p.Name == propName {
				out = append(out, p.Value)
			}
		}
	}
	return append(out, s.parent.GetAll(funcName, propName)...)
}

// Recipes returns every recipe in the chain, lowest precedence (outermost
// parent) first, matching gotypst's parent-before-current ordering.
func (s *Chain) Recipes() []Recipe {
	if s == nil {
		return nil
	}
	var out []Recipe
	out = append(out, s.parent.Recipes()...)
	if s.entry != nil {
		out = append(out, s.entry.Recipes...)
	}
	return out
}

// RecipesFor returns the recipes in the chain whose selector matches e (or
// has no selector at all), skipping any recipe currently guarded.
func (s *Chain) RecipesFor(e content.Element) []Recipe {
	all := s.Recipes()
	if len(all) == 0 {
		return nil
	}
	guarded := s.guardedSet()
	matching := make([]Recipe, 0, len(all))
	for _, r := range all {
		if guarded[r.id] {
			continue
		}
		if r.Selector == nil || r.Selector.Matches(e) {
			matching = append(matching, r)
		}
	}
	return matching
}

func (s *Chain) guardedSet() map[uint64]bool {
	set := make(map[uint64]bool)
	for c := s; c != nil; c = c.parent {
		if c.entry == nil {
			continue
		}
		for _, id := range c.entry.Guards {
			set[id] = true
		}
	}
	return set
}

// Guarded returns a new chain with recipe's id added to the guard set,
// preventing its own output from re-triggering it (spec.md §3).
func (s *Chain) Guarded(recipe Recipe) *Chain {
	return s.Push(Entry{Guards: []uint64{recipe.id}})
}

// IsEmpty reports whether the chain carries no properties, recipes,
// guards, or barriers at any level.
func (s *Chain) IsEmpty() bool {
	if s == nil {
		return true
	}
	if s.entry != nil && !s.entry.IsEmpty() {
		return false
	}
	return s.parent.IsEmpty()
}

// Depth returns the number of non-empty links in the chain.
func (s *Chain) Depth() int {
	if s == nil {
		return 0
	}
	return 1 + s.parent.Depth()
}

// AtBarrier truncates the chain at the nearest barrier, used to resolve
// constructor-style "scoped" properties that must not leak past the call
// that introduced them (spec.md §3's "Scoped properties apply to exactly
// one barrier crossing").
func (s *Chain) AtBarrier() *Chain {
	for c := s; c != nil; c = c.parent {
		if c.entry != nil && c.entry.Barrier {
			return c.parent
		}
	}
	return nil
}
