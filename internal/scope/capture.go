package scope

// FreeVars performs a two-pass free-variable analysis over a closure body,
// matching internal/compiler/hoisting_compiler.go's two-pass shape (first
// collect, then use the collected set on a second walk) — here adapted
// from hoisting top-level function declarations to finding which names a
// nested function body reads that it does not itself bind, so the
// evaluator knows exactly what to snapshot at closure-creation time
// instead of snapshotting the entire enclosing scope.
type FreeVars struct {
	bound map[string]bool
	free  map[string]bool
}

// NewFreeVars starts a fresh collector, seeded with a function's own
// parameter names (already bound, never free).
func NewFreeVars(params []string) *FreeVars {
	fv := &FreeVars{bound: make(map[string]bool), free: make(map[string]bool)}
	for _, p := range params {
		fv.bound[p] = true
	}
	return fv
}

// MarkBound records that name is locally declared from this point on
// (a `let` binding, a loop variable, a nested function's own parameter).
func (fv *FreeVars) MarkBound(name string) {
	fv.bound[name] = true
}

// MarkUsed records a read of name; if nothing in the body has bound it yet,
// it is a free variable captured from the enclosing scope.
func (fv *FreeVars) MarkUsed(name string) {
	if !fv.bound[name] {
		fv.free[name] = true
	}
}

// Names returns the collected free-variable names.
func (fv *FreeVars) Names() []string {
	out := make([]string, 0, len(fv.free))
	for n := range fv.free {
		out = append(out, n)
	}
	return out
}

// CaptureFrame builds a minimal closure environment containing only the
// free variables found, resolved against the defining scope — narrower
// than Frame.Snapshot's full-chain flatten, used when the evaluator has
// already run free-variable analysis on the closure body.
func CaptureFrame(defining *Frame, free []string) *Frame {
	captured := NewFrame(nil)
	for _, name := range free {
		if v, ok := defining.Lookup(name); ok {
			captured.Define(name, v)
		}
	}
	return captured
}
