// Package eval's Evaluator walks an expression tree and produces
// value.Value results, joining content.Element output along the way and
// threading a style.Chain through set/show rule scoping.
//
// Grounded on internal/vm/vm.go's EnhancedVM (a single struct holding
// globals, a call-frame stack, and one big dispatch switch), reworked from
// bytecode-opcode dispatch into double-dispatch over the Expr/ExprVisitor
// tree the teacher's internal/compiler/compiler.go compiles away — this
// evaluator keeps the tree instead of compiling it, per spec.md §4.1's
// tree-walking evaluator model.
package eval

import (
	"fmt"

	"github.com/sentra-lang/typeset/internal/content"
	"github.com/sentra-lang/typeset/internal/diag"
	"github.com/sentra-lang/typeset/internal/memoize"
	"github.com/sentra-lang/typeset/internal/scope"
	"github.com/sentra-lang/typeset/internal/segment"
	"github.com/sentra-lang/typeset/internal/style"
	"github.com/sentra-lang/typeset/internal/value"
	"github.com/sentra-lang/typeset/internal/world"
)

func splitGraphemes(s string) []string { return segment.Graphemes(s) }

// maxLoopIterations bounds while/for loops (spec.md §8 property 5):
// exceeding it is a diagnostic, not a hang.
const maxLoopIterations = 10_000

// Evaluator holds the mutable state one evaluation pass threads through
// the expression tree: the current lexical frame, the in-scope style
// chain, diagnostics sink, and the host World capability surface.
type Evaluator struct {
	World   world.World
	Library *scope.Library
	Sink    *diag.Sink
	Cache   *memoize.Cache[value.Value]

	frame  *scope.Frame
	frames []*scope.Frame // ancestors of frame, for pushFrame/popFrame
	styles *style.Chain
	inMath bool

	// modules holds pre-evaluated module dictionaries keyed by import
	// path, populated by the host before evaluation starts (full
	// multi-file project loading is the driver's concern, not the
	// evaluator's).
	modules map[string]value.Dict
}

// NewEvaluator creates an evaluator rooted at an empty frame, with lib as
// the standard-library binding tier.
func NewEvaluator(w world.World, lib *scope.Library, sink *diag.Sink) *Evaluator {
	return &Evaluator{
		World:   w,
		Library: lib,
		Sink:    sink,
		Cache:   memoize.NewCache[value.Value](),
		frame:   scope.NewFrame(nil),
		modules: make(map[string]value.Dict),
	}
}

// RegisterModule makes name's exported bindings available to `import`.
func (ev *Evaluator) RegisterModule(path string, exports value.Dict) {
	ev.modules[path] = exports
}

// Eval evaluates a top-level expression (typically a Block) and returns
// its value.
func (ev *Evaluator) Eval(e Expr) (value.Value, error) {
	v, err := ev.eval(e)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (ev *Evaluator) eval(e Expr) (value.Value, error) {
	out, err := e.Accept(ev)
	if err != nil {
		return nil, err
	}
	v, ok := out.(value.Value)
	if !ok {
		return nil, fmt.Errorf("internal error: expression produced non-value %T", out)
	}
	return v, nil
}

func (ev *Evaluator) resolve(name string) (value.Value, bool) {
	r := scope.Resolver{Local: ev.frame, Library: ev.Library, InMath: ev.inMath}
	if v, ok := r.Resolve(name); ok {
		return v, true
	}
	if ev.World == nil {
		return nil, false
	}
	if v, ok := ev.World.Library().Lookup(name); ok {
		if vv, ok := v.(value.Value); ok {
			return vv, true
		}
	}
	return nil, false
}

func (ev *Evaluator) pushFrame() {
	ev.frames = append(ev.frames, ev.frame)
	ev.frame = scope.NewFrame(ev.frame)
}

func (ev *Evaluator) popFrame() {
	n := len(ev.frames)
	ev.frame = ev.frames[n-1]
	ev.frames = ev.frames[:n-1]
}

// --- literals, identifiers, operators ---

func (ev *Evaluator) VisitLiteral(e *Literal) (any, error) {
	v, ok := e.Value.(value.Value)
	if !ok {
		return nil, fmt.Errorf("internal error: literal holds non-value %T", e.Value)
	}
	return v, nil
}

func (ev *Evaluator) VisitIdent(e *Ident) (any, error) {
	if v, ok := ev.resolve(e.Name); ok {
		return v, nil
	}
	return nil, ev.errf(e.Span(), "unknown variable: %s", e.Name)
}

func (ev *Evaluator) VisitBinary(e *Binary) (any, error) {
	l, err := ev.eval(e.Left)
	if err != nil {
		return nil, err
	}
	r, err := ev.eval(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case "+":
		return wrapArith(value.Add(l, r))
	case "-":
		return wrapArith(value.Sub(l, r))
	case "*":
		return wrapArith(value.Mul(l, r))
	case "/":
		return wrapArith(value.Div(l, r))
	case "==":
		return value.Bool(value.Equal(l, r)), nil
	case "!=":
		return value.Bool(!value.Equal(l, r)), nil
	case "<", "<=", ">", ">=":
		return ev.compare(e.Operator, l, r, e.Span())
	default:
		return nil, ev.errf(e.Span(), "unknown operator: %s", e.Operator)
	}
}

func wrapArith(v value.Value, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (ev *Evaluator) compare(op string, l, r value.Value, span world.Span) (any, error) {
	lf, lok := asOrderable(l)
	rf, rok := asOrderable(r)
	if !lok || !rok {
		return nil, ev.errf(span, "cannot compare %s with %s", l.Kind(), r.Kind())
	}
	switch op {
	case "<":
		return value.Bool(lf < rf), nil
	case "<=":
		return value.Bool(lf <= rf), nil
	case ">":
		return value.Bool(lf > rf), nil
	default:
		return value.Bool(lf >= rf), nil
	}
}

func asOrderable(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case value.Int:
		return float64(n), true
	case value.Float:
		return float64(n), true
	default:
		return 0, false
	}
}

func (ev *Evaluator) VisitUnary(e *Unary) (any, error) {
	v, err := ev.eval(e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case "-":
		return wrapArith(value.Neg(v))
	case "not":
		return value.Bool(!v.Truthy()), nil
	default:
		return nil, ev.errf(e.Span(), "unknown unary operator: %s", e.Operator)
	}
}

func (ev *Evaluator) VisitLogical(e *Logical) (any, error) {
	l, err := ev.eval(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator == "and" && !l.Truthy() {
		return l, nil
	}
	if e.Operator == "or" && l.Truthy() {
		return l, nil
	}
	return ev.eval(e.Right)
}

// --- calls ---

func (ev *Evaluator) VisitCall(e *Call) (any, error) {
	calleeV, err := ev.eval(e.Callee)
	if err != nil {
		return nil, err
	}
	closure, ok := calleeV.(*Closure)
	if !ok {
		return nil, ev.errf(e.Span(), "%s is not callable", calleeV.Kind())
	}
	positionalCount := len(e.Args) - e.NamedLen
	args := value.Args{Named: value.NewDict()}
	for i := 0; i < positionalCount; i++ {
		v, err := ev.eval(e.Args[i])
		if err != nil {
			return nil, err
		}
		args.Positional = append(args.Positional, v)
	}
	for i := 0; i < e.NamedLen; i++ {
		v, err := ev.eval(e.Args[positionalCount+i])
		if err != nil {
			return nil, err
		}
		args.Named = args.Named.With(e.Names[i], v)
	}
	return ev.invoke(closure, args)
}

func (ev *Evaluator) invoke(c *Closure, args value.Args) (value.Value, error) {
	if c.Native != nil {
		return c.Native(ev, args)
	}
	frame, pendingDefaults, err := c.bindArgs(args)
	if err != nil {
		return nil, err
	}
	saved := ev.frame
	ev.frame = frame
	defer func() { ev.frame = saved }()

	for _, b := range pendingDefaults {
		dv, err := ev.eval(b.Default)
		if err != nil {
			return nil, err
		}
		frame.Define(b.Name, dv)
	}

	v, err := ev.eval(c.Body)
	if err != nil {
		if s, ok := err.(*signal); ok && s.kind == signalReturn {
			rv, _ := s.value.(value.Value)
			return rv, nil
		}
		return nil, err
	}
	return v, nil
}

func (ev *Evaluator) VisitFieldAccess(e *FieldAccess) (any, error) {
	obj, err := ev.eval(e.Object)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case value.Dict:
		if v, ok := o.Get(e.Field); ok {
			return v, nil
		}
	case content.Element:
		if v, ok := o.Field(e.Field); ok {
			return v, nil
		}
	}
	return nil, ev.errf(e.Span(), "no field %q on %s", e.Field, obj.Kind())
}

func (ev *Evaluator) VisitIndex(e *Index) (any, error) {
	obj, err := ev.eval(e.Object)
	if err != nil {
		return nil, err
	}
	key, err := ev.eval(e.Key)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case value.Array:
		idx, ok := key.(value.Int)
		if !ok {
			return nil, ev.errf(e.Span(), "array index must be an integer")
		}
		v, ok := o.At(int(idx))
		if !ok {
			return nil, ev.errf(e.Span(), "array index out of bounds")
		}
		return v, nil
	case value.Dict:
		k, ok := key.(value.String)
		if !ok {
			return nil, ev.errf(e.Span(), "dictionary key must be a string")
		}
		v, ok := o.Get(string(k))
		if !ok {
			return nil, ev.errf(e.Span(), "no such key: %s", string(k))
		}
		return v, nil
	default:
		return nil, ev.errf(e.Span(), "%s is not indexable", obj.Kind())
	}
}

// --- collections & content literals ---

func (ev *Evaluator) VisitArrayLit(e *ArrayLit) (any, error) {
	items := make([]value.Value, len(e.Elements))
	for i, el := range e.Elements {
		v, err := ev.eval(el)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return value.NewArray(items), nil
}

func (ev *Evaluator) VisitDictLit(e *DictLit) (any, error) {
	d := value.NewDict()
	for i, k := range e.Keys {
		v, err := ev.eval(e.Values[i])
		if err != nil {
			return nil, err
		}
		d = d.With(k, v)
	}
	return d, nil
}

func (ev *Evaluator) VisitContentLit(e *ContentLit) (any, error) {
	acc := content.New(content.KindSequence)
	for _, piece := range e.Pieces {
		v, err := ev.eval(piece)
		if err != nil {
			return nil, err
		}
		el, ok := v.(content.Element)
		if !ok {
			el = content.Text(v.Repr())
		}
		acc = content.Join(acc, el)
	}
	return acc, nil
}

// --- control flow ---

func (ev *Evaluator) VisitIf(e *If) (any, error) {
	cond, err := ev.eval(e.Cond)
	if err != nil {
		return nil, err
	}
	if cond.Truthy() {
		return ev.eval(e.Then)
	}
	if e.Else != nil {
		return ev.eval(e.Else)
	}
	return content.New(content.KindSequence), nil
}

func (ev *Evaluator) VisitWhile(e *While) (any, error) {
	if isAlwaysTrue(e.Cond) && isNonDiverging(e.Body) {
		return nil, ev.errf(e.Span(), "loop condition is always true and the body never breaks")
	}
	acc := content.New(content.KindSequence)
	for i := 0; ; i++ {
		if i >= maxLoopIterations {
			return nil, ev.errf(e.Span(), "loop exceeded %d iterations", maxLoopIterations)
		}
		cond, err := ev.eval(e.Cond)
		if err != nil {
			return nil, err
		}
		if !cond.Truthy() {
			break
		}
		v, err := ev.eval(e.Body)
		if err != nil {
			if isSignal(err, signalBreak) {
				break
			}
			if isSignal(err, signalContinue) {
				continue
			}
			return nil, err
		}
		if el, ok := v.(content.Element); ok {
			acc = content.Join(acc, el)
		}
	}
	return acc, nil
}

// isAlwaysTrue reports whether cond is syntactically the literal `true`,
// the simplest case of spec.md §8 property 6's always-true-condition
// rejection.
func isAlwaysTrue(cond Expr) bool {
	lit, ok := cond.(*Literal)
	if !ok {
		return false
	}
	b, ok := lit.Value.(value.Bool)
	return ok && bool(b)
}

// isNonDiverging reports whether body contains no break/return that could
// ever stop the loop — a conservative syntactic check, not full control-
// flow analysis.
func isNonDiverging(body Expr) bool {
	found := false
	var walk func(Expr)
	walk = func(e Expr) {
		if e == nil || found {
			return
		}
		switch n := e.(type) {
		case *Break, *Return:
			found = true
		case *Block:
			for _, s := range n.Stmts {
				walk(s)
			}
		case *If:
			walk(n.Then)
			walk(n.Else)
		}
	}
	walk(body)
	return !found
}

func (ev *Evaluator) VisitFor(e *For) (any, error) {
	iterable, err := ev.eval(e.Iterable)
	if err != nil {
		return nil, err
	}
	items, err := iterationItems(iterable)
	if err != nil {
		return nil, ev.errf(e.Span(), "%s", err.Error())
	}
	acc := content.New(content.KindSequence)
	ev.pushFrame()
	defer ev.popFrame()
	for i, item := range items {
		if i >= maxLoopIterations {
			return nil, ev.errf(e.Span(), "loop exceeded %d iterations", maxLoopIterations)
		}
		if err := Bind(e.Pattern, item, ev.frame.Define); err != nil {
			return nil, err
		}
		v, err := ev.eval(e.Body)
		if err != nil {
			if isSignal(err, signalBreak) {
				break
			}
			if isSignal(err, signalContinue) {
				continue
			}
			return nil, err
		}
		if el, ok := v.(content.Element); ok {
			acc = content.Join(acc, el)
		}
	}
	return acc, nil
}

// iterationItems enumerates values for a for-loop's iterable, per spec.md
// §4.1: arrays/dicts yield their elements/entries, strings yield
// graphemes, bytes yield one-byte-integer values.
func iterationItems(v value.Value) ([]value.Value, error) {
	switch it := v.(type) {
	case value.Array:
		return append([]value.Value{}, it.Items()...), nil
	case value.Dict:
		out := make([]value.Value, 0, it.Len())
		for _, k := range it.Keys() {
			fv, _ := it.Get(k)
			out = append(out, value.NewArray([]value.Value{value.String(k), fv}))
		}
		return out, nil
	case value.String:
		graphemes := splitGraphemes(string(it))
		out := make([]value.Value, len(graphemes))
		for i, g := range graphemes {
			out[i] = value.String(g)
		}
		return out, nil
	case value.Bytes:
		out := make([]value.Value, len(it))
		for i, b := range it {
			out[i] = value.Int(b)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s is not iterable", v.Kind())
	}
}

func (ev *Evaluator) VisitBlock(e *Block) (any, error) {
	ev.pushFrame()
	defer ev.popFrame()
	return ev.evalStmts(e.Stmts)
}

func (ev *Evaluator) evalStmts(stmts []Expr) (any, error) {
	if len(stmts) == 0 {
		return content.New(content.KindSequence), nil
	}
	head, rest := stmts[0], stmts[1:]

	switch s := head.(type) {
	case *SetRule:
		entry, err := ev.evalSetRule(s)
		if err != nil {
			return nil, err
		}
		return ev.continueWithEntry(entry, rest)
	case *ShowRule:
		entry, err := ev.evalShowRule(s)
		if err != nil {
			return nil, err
		}
		return ev.continueWithEntry(entry, rest)
	default:
		v, err := ev.eval(head)
		if err != nil {
			return nil, err
		}
		if len(rest) == 0 {
			return v, nil
		}
		restOut, err := ev.evalStmts(rest)
		if err != nil {
			return nil, err
		}
		restVal, ok := restOut.(value.Value)
		if !ok {
			return v, nil
		}
		return joinAsContent(v, restVal), nil
	}
}

func (ev *Evaluator) continueWithEntry(entry style.Entry, rest []Expr) (any, error) {
	if entry.IsEmpty() {
		return ev.evalStmts(rest)
	}
	savedStyles := ev.styles
	ev.styles = ev.styles.Push(entry)
	defer func() { ev.styles = savedStyles }()

	restOut, err := ev.evalStmts(rest)
	if err != nil {
		return nil, err
	}
	restVal, ok := restOut.(value.Value)
	if !ok {
		return restOut, nil
	}
	if el, ok := restVal.(content.Element); ok {
		return content.New(content.KindStyled).PushChild(el).PushStyle(entry), nil
	}
	return restVal, nil
}

func joinAsContent(a, b value.Value) value.Value {
	ael, aok := a.(content.Element)
	bel, bok := b.(content.Element)
	if aok && bok {
		return content.Join(ael, bel)
	}
	if bok {
		return bel
	}
	return b
}

func (ev *Evaluator) VisitLet(e *Let) (any, error) {
	var v value.Value = value.None{}
	if e.Value != nil {
		var err error
		v, err = ev.eval(e.Value)
		if err != nil {
			return nil, err
		}
	}
	if err := Bind(e.Pattern, v, ev.frame.Define); err != nil {
		return nil, err
	}
	return content.New(content.KindSequence), nil
}

func (ev *Evaluator) VisitAssign(e *Assign) (any, error) {
	v, err := ev.eval(e.Value)
	if err != nil {
		return nil, err
	}
	ident, ok := e.Target.(*Ident)
	if !ok {
		return nil, ev.errf(e.Span(), "invalid assignment target")
	}
	if e.CompoundOp != "" {
		cur, ok := ev.resolve(ident.Name)
		if !ok {
			return nil, ev.errf(e.Span(), "unknown variable: %s", ident.Name)
		}
		switch e.CompoundOp {
		case "+":
			v, err = value.Add(cur, v)
		case "-":
			v, err = value.Sub(cur, v)
		case "*":
			v, err = value.Mul(cur, v)
		case "/":
			v, err = value.Div(cur, v)
		}
		if err != nil {
			return nil, err
		}
	}
	if !ev.frame.Assign(ident.Name, v) {
		ev.frame.Define(ident.Name, v)
	}
	return v, nil
}

func (ev *Evaluator) VisitLambda(e *Lambda) (any, error) {
	return &Closure{
		Name:     e.Name,
		Params:   e.Params,
		Sink:     e.Sink,
		Body:     e.Body,
		Captured: scope.CaptureFrame(ev.frame, closureFreeVars(e)),
	}, nil
}

func (ev *Evaluator) VisitBreak(e *Break) (any, error) {
	return nil, &signal{kind: signalBreak}
}

func (ev *Evaluator) VisitContinue(e *Continue) (any, error) {
	return nil, &signal{kind: signalContinue}
}

func (ev *Evaluator) VisitReturn(e *Return) (any, error) {
	var v value.Value = value.None{}
	if e.Value != nil {
		var err error
		v, err = ev.eval(e.Value)
		if err != nil {
			return nil, err
		}
	}
	return nil, &signal{kind: signalReturn, value: v}
}

func (ev *Evaluator) VisitImport(e *Import) (any, error) {
	pathV, err := ev.eval(e.Path)
	if err != nil {
		return nil, err
	}
	pathStr, ok := pathV.(value.String)
	if !ok {
		return nil, ev.errf(e.Span(), "import path must be a string")
	}
	exports, ok := ev.modules[string(pathStr)]
	if !ok {
		return nil, ev.errf(e.Span(), "unresolved import: %s", string(pathStr))
	}
	if e.Wildcard {
		for _, k := range exports.Keys() {
			v, _ := exports.Get(k)
			ev.frame.Define(k, v)
		}
		return content.New(content.KindSequence), nil
	}
	if len(e.Names) == 0 {
		ev.frame.Define(e.Alias, exports)
		return content.New(content.KindSequence), nil
	}
	for _, name := range e.Names {
		v, ok := exports.Get(name)
		if !ok {
			return nil, ev.errf(e.Span(), "module %s has no export %q", string(pathStr), name)
		}
		ev.frame.Define(name, v)
	}
	return content.New(content.KindSequence), nil
}

func (ev *Evaluator) VisitShowRule(e *ShowRule) (any, error) {
	entry, err := ev.evalShowRule(e)
	if err != nil {
		return nil, err
	}
	return content.New(content.KindSequence).PushStyle(entry), nil
}

func (ev *Evaluator) evalShowRule(e *ShowRule) (style.Entry, error) {
	var sel style.Selector
	if e.Selector != nil {
		sv, err := ev.eval(e.Selector)
		if err != nil {
			return style.Entry{}, err
		}
		sel = valueAsSelector(sv)
	}
	transformV, err := ev.eval(e.Transform)
	if err != nil {
		return style.Entry{}, err
	}
	recipe := style.NewRecipe(sel, ev.makeTransform(transformV))
	return style.Entry{Recipes: []style.Recipe{recipe}}, nil
}

func (ev *Evaluator) makeTransform(v value.Value) func(content.Element) (content.Element, error) {
	if closure, ok := v.(*Closure); ok {
		return func(e content.Element) (content.Element, error) {
			out, err := ev.invoke(closure, value.Args{Positional: []value.Value{e}})
			if err != nil {
				return content.Element{}, err
			}
			if el, ok := out.(content.Element); ok {
				return el, nil
			}
			return content.Text(out.Repr()), nil
		}
	}
	if el, ok := v.(content.Element); ok {
		return func(content.Element) (content.Element, error) { return el, nil }
	}
	return func(e content.Element) (content.Element, error) { return e, nil }
}

func valueAsSelector(v value.Value) style.Selector {
	if lbl, ok := v.(value.Label); ok {
		return style.LabelSelector{Label: string(lbl)}
	}
	return nil
}

func (ev *Evaluator) VisitSetRule(e *SetRule) (any, error) {
	entry, err := ev.evalSetRule(e)
	if err != nil {
		return nil, err
	}
	return content.New(content.KindSequence).PushStyle(entry), nil
}

func (ev *Evaluator) evalSetRule(e *SetRule) (style.Entry, error) {
	if e.Cond != nil {
		cond, err := ev.eval(e.Cond)
		if err != nil {
			return style.Entry{}, err
		}
		if !cond.Truthy() {
			return style.Entry{}, nil
		}
	}
	call, ok := e.Target.(*Call)
	if !ok {
		return style.Entry{}, ev.errf(e.Span(), "set target must be a function call")
	}
	ident, ok := call.Callee.(*Ident)
	if !ok {
		return style.Entry{}, ev.errf(e.Span(), "set target must name a function")
	}
	positionalCount := len(call.Args) - call.NamedLen
	entry := style.Entry{}
	for i := 0; i < call.NamedLen; i++ {
		v, err := ev.eval(call.Args[positionalCount+i])
		if err != nil {
			return style.Entry{}, err
		}
		entry.Properties = append(entry.Properties, style.Property{
			Func:  ident.Name,
			Name:  call.Names[i],
			Value: v,
		})
	}
	return entry, nil
}

func (ev *Evaluator) errf(span world.Span, format string, args ...any) error {
	if ev.Sink != nil {
		return ev.Sink.Errorf(span, format, args...)
	}
	return diag.Error(span, format, args...)
}
