package eval

import "github.com/sentra-lang/typeset/internal/scope"

// closureFreeVars analyzes e's body to find the names it reads that aren't
// bound by its own parameters, sink, or internal let/for bindings — the
// free-variable analysis spec.md §4.1's "capture-at-creation snapshotting"
// calls for, narrower than a blanket scope.Frame.Snapshot of everything
// visible at the definition site.
func closureFreeVars(e *Lambda) []string {
	bound := patternNames(e.Params)
	if e.Sink != "" {
		bound = append(bound, e.Sink)
	}
	if e.Name != "" {
		// a named closure resolves its own name through self-binding
		// (see Closure.bindArgs), not through capture.
		bound = append(bound, e.Name)
	}
	fv := scope.NewFreeVars(bound)
	walkFreeVars(fv, e.Body)
	return fv.Names()
}

func patternNames(ps []Pattern) []string {
	var names []string
	for _, p := range ps {
		names = append(names, patternBoundNames(p)...)
	}
	return names
}

func patternBoundNames(p Pattern) []string {
	switch pp := p.(type) {
	case Placeholder:
		return nil
	case Binding:
		return []string{pp.Name}
	case Tuple:
		var names []string
		for _, elem := range pp.Elements {
			names = append(names, patternBoundNames(elem)...)
		}
		if pp.Sink != "" {
			names = append(names, pp.Sink)
		}
		return names
	case Named:
		var names []string
		for _, elem := range pp.Patterns {
			names = append(names, patternBoundNames(elem)...)
		}
		return names
	default:
		return nil
	}
}

// walkFreeVars recurses over e, feeding every Ident read to fv.MarkUsed and
// every local binding (let pattern, for pattern) to fv.MarkBound before the
// scope it covers is walked.
func walkFreeVars(fv *scope.FreeVars, e Expr) {
	switch n := e.(type) {
	case nil:
	case *Literal:
	case *Ident:
		fv.MarkUsed(n.Name)
	case *Binary:
		walkFreeVars(fv, n.Left)
		walkFreeVars(fv, n.Right)
	case *Unary:
		walkFreeVars(fv, n.Operand)
	case *Logical:
		walkFreeVars(fv, n.Left)
		walkFreeVars(fv, n.Right)
	case *Call:
		walkFreeVars(fv, n.Callee)
		for _, a := range n.Args {
			walkFreeVars(fv, a)
		}
	case *FieldAccess:
		walkFreeVars(fv, n.Object)
	case *Index:
		walkFreeVars(fv, n.Object)
		walkFreeVars(fv, n.Key)
	case *ArrayLit:
		for _, elem := range n.Elements {
			walkFreeVars(fv, elem)
		}
	case *DictLit:
		for _, v := range n.Values {
			walkFreeVars(fv, v)
		}
	case *ContentLit:
		for _, p := range n.Pieces {
			walkFreeVars(fv, p)
		}
	case *If:
		walkFreeVars(fv, n.Cond)
		walkFreeVars(fv, n.Then)
		walkFreeVars(fv, n.Else)
	case *While:
		walkFreeVars(fv, n.Cond)
		walkFreeVars(fv, n.Body)
	case *For:
		walkFreeVars(fv, n.Iterable)
		for _, name := range patternBoundNames(n.Pattern) {
			fv.MarkBound(name)
		}
		walkFreeVars(fv, n.Body)
	case *Block:
		for _, s := range n.Stmts {
			walkFreeVars(fv, s)
		}
	case *Let:
		walkFreeVars(fv, n.Value)
		for _, name := range patternBoundNames(n.Pattern) {
			fv.MarkBound(name)
		}
	case *Assign:
		if ident, ok := n.Target.(*Ident); ok {
			fv.MarkUsed(ident.Name)
		} else {
			walkFreeVars(fv, n.Target)
		}
		walkFreeVars(fv, n.Value)
	case *Lambda:
		// A nested closure's own free variables are this closure's free
		// variables too, except whatever the nested closure binds itself.
		for _, name := range closureFreeVars(n) {
			fv.MarkUsed(name)
		}
	case *Break:
	case *Continue:
	case *Return:
		walkFreeVars(fv, n.Value)
	case *Import:
		walkFreeVars(fv, n.Path)
	case *ShowRule:
		walkFreeVars(fv, n.Selector)
		walkFreeVars(fv, n.Transform)
	case *SetRule:
		walkFreeVars(fv, n.Target)
		walkFreeVars(fv, n.Cond)
	}
}
