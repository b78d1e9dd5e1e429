package content

import (
	"github.com/sentra-lang/typeset/internal/diag"
	"github.com/sentra-lang/typeset/internal/world"
)

// unlabellable are kinds a label skips over when attaching to "the
// immediately preceding element" (spec.md §3): spaces and breaks carry no
// identity worth labelling.
func (k ElementKind) unlabellable() bool {
	switch k {
	case KindSpace, KindParbreak:
		return true
	default:
		return false
	}
}

// AttachLabel finds the last labellable element in siblings and attaches
// label to it, warning to sink if that element already carried a label
// (spec.md §3: "multiple labels on the same target emit a warning and only
// the last one is kept").
func AttachLabel(siblings []Element, label string, span world.Span, sink *diag.Sink) []Element {
	for i := len(siblings) - 1; i >= 0; i-- {
		if siblings[i].kind.unlabellable() {
			continue
		}
		if _, had := siblings[i].Label(); had {
			sink.Warnf(span, "element already has a label; the previous one is discarded")
		}
		siblings[i] = siblings[i].WithLabel(label)
		return siblings
	}
	return siblings
}
