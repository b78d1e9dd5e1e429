package style

import "github.com/sentra-lang/typeset/internal/value"

// FoldSum is a Fold function that sums two numeric values, matching
// spec.md §3's "delta weights sum" folding example (e.g. nested `text(delta:
// ...)` rules accumulate rather than shadow).
func FoldSum(inner, outer value.Value) value.Value {
	v, err := value.Add(inner, outer)
	if err != nil {
		// Non-numeric properties declared with FoldSum by mistake simply
		// shadow instead of summing.
		return inner
	}
	return v
}
