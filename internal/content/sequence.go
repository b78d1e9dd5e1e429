package content

// Join combines two elements into one, flattening sequences at append time
// only when doing so preserves styling boundaries (neither side carries
// local style entries); otherwise it wraps both sides in a styled sequence
// node, matching spec.md §3's sequence-composition invariant.
func Join(a, b Element) Element {
	if len(a.styles) == 0 && len(b.styles) == 0 {
		seq := flattenInto(New(KindSequence), a)
		seq = flattenInto(seq, b)
		return seq
	}
	return New(KindSequence).PushChild(a).PushChild(b)
}

func flattenInto(seq, e Element) Element {
	if e.kind == KindSequence && len(e.styles) == 0 {
		for _, child := range e.children {
			seq = seq.PushChild(child)
		}
		return seq
	}
	return seq.PushChild(e)
}

// Flatten returns the list of top-level children a sequence holds, or a
// single-element slice if e is not a sequence.
func Flatten(e Element) []Element {
	if e.kind == KindSequence {
		return e.children
	}
	return []Element{e}
}

// Visitor double-dispatches over content by kind, matching
// internal/parser/ast.go's Expr/ExprVisitor shape.
type Visitor interface {
	VisitElement(e Element) error
}

// Walk visits e and every descendant, depth-first, pre-order.
func Walk(e Element, v Visitor) error {
	if err := v.VisitElement(e); err != nil {
		return err
	}
	for _, child := range e.children {
		if err := Walk(child, v); err != nil {
			return err
		}
	}
	return nil
}
