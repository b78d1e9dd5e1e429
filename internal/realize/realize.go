// Package realize implements realization: recursively applying show rules
// to content, grouping related elements (inline runs into paragraphs), and
// collapsing spaces, producing the flat list of (element, styles) pairs
// layout consumes (spec.md §4.2's realization stage).
//
// Grounded directly on
// other_examples/735b0eff_boergens-gotypst__realize-realize.go.go's
// Realize/State.realizeElement/applyShowRules/handleGrouping/
// ParagraphGrouping/detectFragmentKind, ported onto this module's own
// content.Element/style.Chain types. gotypst's separate
// Transformation sum type (NoneTransformation/ContentTransformation/
// StyleTransformation/FuncTransformation) collapses here into a single
// func(content.Element) (content.Element, error) recipe transform (already
// unified at the point a show rule is evaluated, in internal/eval), so
// applyTransformation's FuncTransformation TODO ("calling the function
// with the element as argument") has no separate case to complete — that
// call already happened when the recipe's closure was built. Regex
// text-selector matching (gotypst's other TODO) is completed in
// internal/style/selector_text.go instead, since selector matching belongs
// to the style package here, not to realize.
package realize

import (
	"github.com/sentra-lang/typeset/internal/content"
	"github.com/sentra-lang/typeset/internal/diag"
	"github.com/sentra-lang/typeset/internal/style"
)

// Kind specifies the realization context, affecting how content is grouped.
type Kind interface{ isKind() }

// Document prepares content for full document layout.
type Document struct{}

func (Document) isKind() {}

// Fragment prepares content for fragment layout (block/inline detection).
type Fragment struct {
	Detected *FragmentKind // set by Realize once detection has run
}

func (Fragment) isKind() {}

// Par prepares content for paragraph-specific realization (no paragraph
// grouping is applied — the caller is already building one paragraph).
type Par struct{}

func (Par) isKind() {}

// Math prepares content for realization inside an equation.
type Math struct{}

func (Math) isKind() {}

// FragmentKind classifies a realized fragment's content.
type FragmentKind int

const (
	FragmentBlock FragmentKind = iota
	FragmentInline
	FragmentMixed
)

// Pair is one realized element paired with the style chain it was realized
// under.
type Pair struct {
	Element content.Element
	Styles  *style.Chain
}

// Config toggles realization behaviors. Realize always runs with
// DefaultConfig; it takes no Config parameter, so space collapsing and
// show-rule processing cannot be turned off by its callers.
type Config struct {
	CollapseSpaces   bool
	ProcessShowRules bool
}

// DefaultConfig enables every realization behavior.
func DefaultConfig() Config {
	return Config{CollapseSpaces: true, ProcessShowRules: true}
}

// state is the mutable context threaded through one realization pass.
type state struct {
	kind      Kind
	config    Config
	sink      *diag.Sink
	output    []Pair
	groupings []*paragraphGrouping
}

// Realize transforms root (and its descendants) against styles into a flat
// list of realized pairs ready for layout.
func Realize(kind Kind, root content.Element, styles *style.Chain, sink *diag.Sink) ([]Pair, error) {
	s := &state{kind: kind, config: DefaultConfig(), sink: sink}

	for _, elem := range content.Flatten(root) {
		if err := s.realizeElement(elem, styles); err != nil {
			return nil, err
		}
	}
	s.finalizeGroupings()

	if s.config.CollapseSpaces {
		s.output = collapseSpaces(s.output)
	}

	if frag, ok := kind.(Fragment); ok && frag.Detected != nil {
		*frag.Detected = detectFragmentKind(s.output)
	}

	return s.output, nil
}

func (s *state) realizeElement(elem content.Element, styles *style.Chain) error {
	if s.config.ProcessShowRules {
		if recipes := styles.RecipesFor(elem); len(recipes) > 0 {
			// The nearest enclosing matching recipe (tip of the chain) wins;
			// RecipesFor preserves Recipes()'s outermost-first order, so
			// that is the last entry.
			recipe := recipes[len(recipes)-1]
			transformed, err := recipe.Transform(elem)
			if err != nil {
				return err
			}
			guarded := styles.Guarded(recipe)
			for _, child := range content.Flatten(transformed) {
				if err := s.realizeElement(child, guarded); err != nil {
					return err
				}
			}
			return nil
		}
	}

	if s.handleGrouping(elem, styles) {
		return nil
	}

	s.output = append(s.output, Pair{Element: elem, Styles: styles})
	return nil
}

func (s *state) handleGrouping(elem content.Element, styles *style.Chain) bool {
	for i := len(s.groupings) - 1; i >= 0; i-- {
		g := s.groupings[i]
		if g.Interrupt(elem) {
			s.finalizeGrouping(i)
			// fall through: elem itself is not consumed by the grouping
			// it just interrupted, so re-run grouping/output logic below
			return s.handleGrouping(elem, styles)
		}
		if g.Inner(elem) {
			g.elements = append(g.elements, elem)
			return true
		}
	}

	switch s.kind.(type) {
	case Document, Fragment:
		// A space never opens a paragraph: left at the top level, it is
		// dropped by collapseSpaces when it borders a block.
		if elem.Tag().IsInline() && elem.Tag() != content.KindSpace {
			s.groupings = append(s.groupings, &paragraphGrouping{elements: []content.Element{elem}})
			return true
		}
	}
	return false
}

func (s *state) finalizeGrouping(index int) {
	if index < 0 || index >= len(s.groupings) {
		return
	}
	g := s.groupings[index]
	if result, ok := g.Finalize(); ok {
		s.output = append(s.output, Pair{Element: result, Styles: style.Empty()})
	}
	s.groupings = append(s.groupings[:index], s.groupings[index+1:]...)
}

func (s *state) finalizeGroupings() {
	for len(s.groupings) > 0 {
		s.finalizeGrouping(len(s.groupings) - 1)
	}
}

// paragraphGrouping collects inline content into a paragraph element, the
// same as gotypst's ParagraphGrouping.
type paragraphGrouping struct {
	elements []content.Element
}

func (g *paragraphGrouping) Inner(e content.Element) bool     { return e.Tag().IsInline() }
func (g *paragraphGrouping) Interrupt(e content.Element) bool { return e.Tag().IsBlock() || e.Tag() == content.KindParbreak }

func (g *paragraphGrouping) Finalize() (content.Element, bool) {
	if len(g.elements) == 0 {
		return content.Element{}, false
	}
	par := content.New(content.KindParagraph)
	for _, e := range g.elements {
		par = par.PushChild(e)
	}
	return par, true
}

// detectFragmentKind classifies a realized pair list as block, inline, or
// a mix of both.
func detectFragmentKind(pairs []Pair) FragmentKind {
	sawBlock, sawInline := false, false
	for _, p := range pairs {
		if p.Element.Tag().IsBlock() {
			sawBlock = true
		} else if p.Element.Tag().IsInline() {
			sawInline = true
		}
	}
	switch {
	case sawBlock && sawInline:
		return FragmentMixed
	case sawBlock:
		return FragmentBlock
	default:
		return FragmentInline
	}
}

// collapseSpaces drops KindSpace pairs adjacent to a block boundary (start
// of output, end of output, or next to a block-level element) and merges
// consecutive spaces into one, matching Typst's space-collapsing rules
// around block content.
func collapseSpaces(pairs []Pair) []Pair {
	out := make([]Pair, 0, len(pairs))
	for i, p := range pairs {
		if p.Element.Tag() != content.KindSpace {
			out = append(out, p)
			continue
		}
		prevBlock := i == 0 || pairs[i-1].Element.Tag().IsBlock()
		nextBlock := i == len(pairs)-1 || pairs[i+1].Element.Tag().IsBlock()
		if prevBlock || nextBlock {
			continue
		}
		if len(out) > 0 && out[len(out)-1].Element.Tag() == content.KindSpace {
			continue
		}
		out = append(out, p)
	}
	return out
}
