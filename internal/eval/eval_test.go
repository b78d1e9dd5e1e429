package eval

import (
	"testing"

	"github.com/sentra-lang/typeset/internal/content"
	"github.com/sentra-lang/typeset/internal/diag"
	"github.com/sentra-lang/typeset/internal/value"
	"github.com/sentra-lang/typeset/internal/world"
)

func lit(v value.Value) *Literal { return &Literal{Value: v} }

func newTestEvaluator() *Evaluator {
	return NewEvaluator(nil, StandardLibrary(), &diag.Sink{})
}

func TestIfExpressionBranches(t *testing.T) {
	ev := newTestEvaluator()
	e := &If{Cond: lit(value.Bool(true)), Then: lit(value.Int(1)), Else: lit(value.Int(2))}
	v, err := ev.Eval(e)
	if err != nil {
		t.Fatal(err)
	}
	if v.(value.Int) != 1 {
		t.Fatalf("got %v", v)
	}
}

func TestWhileLoopCapsAtMaxIterations(t *testing.T) {
	ev := newTestEvaluator()
	ev.frame.Define("x", value.Int(0))
	loop := &While{
		Cond: &Binary{Left: &Ident{Name: "x"}, Right: lit(value.Int(-1)), Operator: ">"},
		Body: &Assign{Target: &Ident{Name: "x"}, Value: &Binary{Left: &Ident{Name: "x"}, Right: lit(value.Int(1)), Operator: "+"}},
	}
	_, err := ev.Eval(loop)
	if err == nil {
		t.Fatal("expected the iteration cap to trigger an error")
	}
}

func TestAlwaysTrueWhileIsRejected(t *testing.T) {
	ev := newTestEvaluator()
	loop := &While{Cond: lit(value.Bool(true)), Body: &Block{}}
	_, err := ev.Eval(loop)
	if err == nil {
		t.Fatal("expected an always-true condition with a non-diverging body to be rejected")
	}
}

func TestWhileLoopWithBreakTerminates(t *testing.T) {
	ev := newTestEvaluator()
	loop := &While{Cond: lit(value.Bool(true)), Body: &Block{Stmts: []Expr{&Break{}}}}
	_, err := ev.Eval(loop)
	if err != nil {
		t.Fatalf("break should let an always-true loop terminate cleanly: %v", err)
	}
}

func TestForLoopOverArraySumsValues(t *testing.T) {
	ev := newTestEvaluator()
	ev.frame.Define("total", value.Int(0))
	arr := &ArrayLit{Elements: []Expr{lit(value.Int(1)), lit(value.Int(2)), lit(value.Int(3))}}
	loop := &For{
		Pattern:  Binding{Name: "n"},
		Iterable: arr,
		Body: &Assign{
			Target:     &Ident{Name: "total"},
			Value:      &Ident{Name: "n"},
			CompoundOp: "+",
		},
	}
	if _, err := ev.Eval(loop); err != nil {
		t.Fatal(err)
	}
	total, _ := ev.frame.Lookup("total")
	if total.(value.Int) != 6 {
		t.Fatalf("got %v", total)
	}
}

func TestClosureCapturesAtCreationNotAtCall(t *testing.T) {
	ev := newTestEvaluator()
	ev.frame.Define("x", value.Int(1))
	lambda := &Lambda{Params: nil, Body: &Ident{Name: "x"}}
	closureV, err := ev.Eval(lambda)
	if err != nil {
		t.Fatal(err)
	}
	ev.frame.Assign("x", value.Int(99))
	closure := closureV.(*Closure)
	result, err := ev.invoke(closure, value.Args{Named: value.NewDict()})
	if err != nil {
		t.Fatal(err)
	}
	if result.(value.Int) != 1 {
		t.Fatalf("expected capture-at-creation snapshot to read 1, got %v", result)
	}
}

func TestSetRuleScopesOnlyToTrailingStatements(t *testing.T) {
	ev := newTestEvaluator()
	block := &Block{Stmts: []Expr{
		&SetRule{Target: &Call{
			Callee:   &Ident{Name: "text"},
			Args:     []Expr{lit(value.String("red"))},
			Names:    []string{"fill"},
			NamedLen: 1,
		}},
		&ContentLit{Pieces: []Expr{lit(value.String("styled"))}},
	}}
	out, err := ev.Eval(block)
	if err != nil {
		t.Fatal(err)
	}
	el, ok := out.(content.Element)
	if !ok {
		t.Fatalf("expected content output, got %T", out)
	}
	if el.Tag() != content.KindStyled {
		t.Fatalf("expected the trailing content to be wrapped as styled, got %v", el.Tag())
	}
}

func TestBuiltinStrongConstructor(t *testing.T) {
	ev := newTestEvaluator()
	fn, ok := ev.resolve("strong")
	if !ok {
		t.Fatal("expected strong to be defined in the standard library")
	}
	closure := fn.(*Closure)
	out, err := ev.invoke(closure, value.Args{Positional: []value.Value{content.Text("hi")}, Named: value.NewDict()})
	if err != nil {
		t.Fatal(err)
	}
	el := out.(content.Element)
	if el.Tag() != content.KindStrong || len(el.Children()) != 1 {
		t.Fatalf("got %+v", el)
	}
}

func TestUnknownVariableProducesDiagnostic(t *testing.T) {
	ev := newTestEvaluator()
	_, err := ev.Eval(&Ident{Name: "nope", base: base{span: world.DetachedSpan}})
	if err == nil {
		t.Fatal("expected an error for an unresolved identifier")
	}
}

func TestNamedClosureCanCallItselfRecursively(t *testing.T) {
	ev := newTestEvaluator()
	// #let f(n) = if n == 0 {0} else {n + f(n-1)}; f(3)
	lambda := &Lambda{
		Name:   "f",
		Params: []Pattern{Binding{Name: "n"}},
		Body: &If{
			Cond: &Binary{Left: &Ident{Name: "n"}, Right: lit(value.Int(0)), Operator: "=="},
			Then: lit(value.Int(0)),
			Else: &Binary{
				Left:     &Ident{Name: "n"},
				Operator: "+",
				Right: &Call{
					Callee: &Ident{Name: "f"},
					Args:   []Expr{&Binary{Left: &Ident{Name: "n"}, Right: lit(value.Int(1)), Operator: "-"}},
				},
			},
		},
	}
	closureV, err := ev.Eval(lambda)
	if err != nil {
		t.Fatal(err)
	}
	closure := closureV.(*Closure)
	result, err := ev.invoke(closure, value.Args{Positional: []value.Value{value.Int(3)}, Named: value.NewDict()})
	if err != nil {
		t.Fatal(err)
	}
	if result.(value.Int) != 6 {
		t.Fatalf("expected 3+2+1+0=6, got %v", result)
	}
}

func TestSinkParameterBindsArgsNotArray(t *testing.T) {
	ev := newTestEvaluator()
	// #let f(x, ..rest) = rest; f(1, 2, 3)
	lambda := &Lambda{
		Params: []Pattern{Binding{Name: "x"}},
		Sink:   "rest",
		Body:   &Ident{Name: "rest"},
	}
	closureV, err := ev.Eval(lambda)
	if err != nil {
		t.Fatal(err)
	}
	closure := closureV.(*Closure)
	result, err := ev.invoke(closure, value.Args{
		Positional: []value.Value{value.Int(1), value.Int(2), value.Int(3)},
		Named:      value.NewDict(),
	})
	if err != nil {
		t.Fatal(err)
	}
	args, ok := result.(value.Args)
	if !ok {
		t.Fatalf("expected a sink parameter to bind value.Args, got %T", result)
	}
	if got := args.Repr(); got != "arguments(2, 3)" {
		t.Fatalf("got %q", got)
	}
}

func TestClosureCaptureIsNarrowedToFreeVariables(t *testing.T) {
	ev := newTestEvaluator()
	ev.frame.Define("used", value.Int(1))
	ev.frame.Define("unused", value.Int(2))
	lambda := &Lambda{Params: nil, Body: &Ident{Name: "used"}}
	closureV, err := ev.Eval(lambda)
	if err != nil {
		t.Fatal(err)
	}
	closure := closureV.(*Closure)
	if _, ok := closure.Captured.Lookup("used"); !ok {
		t.Fatal("expected the referenced free variable to be captured")
	}
	if _, ok := closure.Captured.Lookup("unused"); ok {
		t.Fatal("expected an unreferenced enclosing binding not to be captured")
	}
}

func TestPatternBindTuple(t *testing.T) {
	var got []value.Value
	define := func(name string, v value.Value) { got = append(got, v) }
	pat := Tuple{Elements: []Pattern{Binding{Name: "a"}, Binding{Name: "b"}}}
	arr := value.NewArray([]value.Value{value.Int(1), value.Int(2)})
	if err := Bind(pat, arr, define); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].(value.Int) != 1 || got[1].(value.Int) != 2 {
		t.Fatalf("got %v", got)
	}
}
