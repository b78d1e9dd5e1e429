// Package content implements the persistent, structurally-shared element
// tree evaluation produces and realization/layout consume (spec.md §3).
//
// Grounded on other_examples/735b0eff_boergens-gotypst__realize-realize.go.go's
// concrete-struct-per-kind element set (TextElement, ParagraphElement,
// HeadingElement, ListItemElement, ...) and its getElementName/
// isBlockElement/isInlineElement classification helpers, adapted from one
// Go struct type per element kind into a single Element carrying a Kind tag
// plus a field map — matching spec.md §3's "an element kind, a field map of
// typed properties" description directly, and reusing
// internal/parser/ast.go's Expr/ExprVisitor double-dispatch shape for
// ElementVisitor.
package content

import (
	"github.com/sentra-lang/typeset/internal/value"
	"github.com/sentra-lang/typeset/internal/world"
)

// ElementKind tags an element's type, playing the role gotypst's per-kind Go
// struct types play, but as data instead of as a Go type switch target.
type ElementKind byte

const (
	KindSequence ElementKind = iota
	KindStyled
	KindText
	KindSpace
	KindParagraph
	KindStrong
	KindEmph
	KindRaw
	KindHeading
	KindListItem
	KindEnumItem
	KindTermItem
	KindLink
	KindRef
	KindLinebreak
	KindParbreak
	KindSmartQuote
	KindEquation
	KindImage
	KindMetadata
	KindBox
	KindBlock
	KindStack
	KindGrid
	KindGridCell
	KindPlace
	KindColbreak
	KindPagebreak
	KindRotate
	KindScale
	KindSkew
)

var kindNames = [...]string{
	KindSequence:   "sequence",
	KindStyled:     "styled",
	KindText:       "text",
	KindSpace:      "space",
	KindParagraph:  "par",
	KindStrong:     "strong",
	KindEmph:       "emph",
	KindRaw:        "raw",
	KindHeading:    "heading",
	KindListItem:   "list.item",
	KindEnumItem:   "enum.item",
	KindTermItem:   "terms.item",
	KindLink:       "link",
	KindRef:        "ref",
	KindLinebreak:  "linebreak",
	KindParbreak:   "parbreak",
	KindSmartQuote: "smartquote",
	KindEquation:   "equation",
	KindImage:      "image",
	KindMetadata:   "metadata",
	KindBox:        "box",
	KindBlock:      "block",
	KindStack:      "stack",
	KindGrid:       "grid",
	KindGridCell:   "grid.cell",
	KindPlace:      "place",
	KindColbreak:   "colbreak",
	KindPagebreak:  "pagebreak",
	KindRotate:     "rotate",
	KindScale:      "scale",
	KindSkew:       "skew",
}

func (k ElementKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsBlock reports whether elements of this kind are block-level, matching
// gotypst's isBlockElement classification.
func (k ElementKind) IsBlock() bool {
	switch k {
	case KindParagraph, KindHeading, KindListItem, KindEnumItem, KindTermItem,
		KindBlock, KindStack, KindGrid, KindPlace, KindColbreak, KindPagebreak:
		return true
	default:
		return false
	}
}

// IsInline reports whether elements of this kind flow inline within a
// paragraph, matching gotypst's isInlineElement classification.
func (k ElementKind) IsInline() bool {
	switch k {
	case KindText, KindSpace, KindStrong, KindEmph, KindRaw, KindLink,
		KindRef, KindLinebreak, KindSmartQuote, KindEquation, KindBox:
		return true
	default:
		return false
	}
}

// StyleEntry is the marker interface a single local style-map entry
// implements. It is defined here (not in internal/style) so content does
// not need to import style; internal/style's Entry type implements it.
type StyleEntry interface {
	isStyleEntry()
	// equalStyleEntry reports whether other is the same kind of entry and
	// compares equal to it, used by Element.EqualValue to make style part
	// of content's structural equality.
	equalStyleEntry(other StyleEntry) bool
}

// Element is one node in the content tree: a kind tag, a field map, a local
// style map, optional label/location/span, and child elements for
// container kinds (sequence, styled, paragraph, headings, list items, ...).
//
// Element is immutable; every mutating method returns a new value sharing
// the unmodified parts of the original (spec.md §3's copy-on-write rule).
type Element struct {
	kind     ElementKind
	fields   value.Dict
	styles   []StyleEntry
	label    string
	hasLabel bool
	loc      world.Location
	hasLoc   bool
	span     world.Span
	children []Element
}

// New creates an element of the given kind with no fields, styles, label,
// location, or children.
func New(kind ElementKind) Element {
	return Element{kind: kind, fields: value.NewDict(), span: world.DetachedSpan}
}

// Text builds a KindText leaf holding a string field "text".
func Text(s string) Element {
	return New(KindText).WithField("text", value.String(s))
}

func (e Element) Tag() ElementKind { return e.kind }

func (e Element) Kind() value.Kind { return value.KindContent }

// Field looks up a typed property, returning false if unset.
func (e Element) Field(name string) (value.Value, bool) {
	return e.fields.Get(name)
}

// WithField returns a copy of e with name bound to v.
func (e Element) WithField(name string, v value.Value) Element {
	e.fields = e.fields.With(name, v)
	return e
}

// WithSpan returns a copy of e carrying the given source span.
func (e Element) WithSpan(span world.Span) Element {
	e.span = span
	return e
}

// Span returns the source span this element was produced from, or the
// detached sentinel if it has none.
func (e Element) Span() world.Span { return e.span }

// WithLabel returns a copy of e carrying label, replacing any previous
// label. Callers enforcing the "last label wins, with a warning"
// invariant (spec.md §3) are responsible for emitting that warning before
// calling this a second time on the same target.
func (e Element) WithLabel(label string) Element {
	e.label = label
	e.hasLabel = true
	return e
}

// Label returns the element's label, if any.
func (e Element) Label() (string, bool) { return e.label, e.hasLabel }

// WithLocation returns a copy of e assigned to loc (set once realization
// determines its stable introspection identity).
func (e Element) WithLocation(loc world.Location) Element {
	e.loc = loc
	e.hasLoc = true
	return e
}

// Location returns the element's assigned introspection location, if any.
func (e Element) Location() (world.Location, bool) { return e.loc, e.hasLoc }

// PushStyle returns a copy of e with a local style-map entry appended.
func (e Element) PushStyle(entry StyleEntry) Element {
	next := make([]StyleEntry, len(e.styles)+1)
	copy(next, e.styles)
	next[len(e.styles)] = entry
	e.styles = next
	return e
}

// LocalStyles returns the element's local style-map entries.
func (e Element) LocalStyles() []StyleEntry { return e.styles }

// Children returns the element's child elements (empty for leaves).
func (e Element) Children() []Element { return e.children }

// WithChildren returns a copy of e with its children replaced.
func (e Element) WithChildren(children []Element) Element {
	e.children = children
	return e
}

// PushChild returns a copy of e with child appended.
func (e Element) PushChild(child Element) Element {
	next := make([]Element, len(e.children)+1)
	copy(next, e.children)
	next[len(e.children)] = child
	e.children = next
	return e
}

func (e Element) Repr() string {
	return "[" + e.kind.String() + "]"
}

func (e Element) Truthy() bool { return true }

// EqualValue implements value.Value's structural-equality hook: content
// compares by tree shape and style, per spec.md §3.
func (e Element) EqualValue(other value.Value) bool {
	o, ok := other.(Element)
	if !ok || e.kind != o.kind || len(e.children) != len(o.children) {
		return false
	}
	if !dictEqual(e.fields, o.fields) {
		return false
	}
	if len(e.styles) != len(o.styles) {
		return false
	}
	for i := range e.styles {
		if !e.styles[i].equalStyleEntry(o.styles[i]) {
			return false
		}
	}
	for i := range e.children {
		if !e.children[i].EqualValue(o.children[i]) {
			return false
		}
	}
	return true
}

func dictEqual(a, b value.Dict) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, k := range a.Keys() {
		av, _ := a.Get(k)
		bv, ok := b.Get(k)
		if !ok || !value.Equal(av, bv) {
			return false
		}
	}
	return true
}
