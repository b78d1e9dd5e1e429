// Package eval implements the tree-walking evaluator (spec.md §4.1):
// expression/statement dispatch, scope resolution, closures, flow control,
// pattern destructuring, and the production of styled content.
//
// Grounded on internal/parser/ast.go's Expr/ExprVisitor double-dispatch
// shape (Binary/Literal/Variable/Assign/CallExpr/IfExpr/BlockExpr/
// ArrayExpr/MapExpr/IndexExpr/UnaryExpr/LogicalExpr/LambdaExpr/
// PropertyExpr, each a struct implementing Accept(visitor)), reused
// directly for this evaluator's expression node set and extended with the
// markup-specific nodes spec.md §4.1 requires that the teacher's
// general-purpose scripting language has no analogue for (show/set rules,
// content literals, for-loop destructuring patterns).
package eval

import "github.com/sentra-lang/typeset/internal/world"

// Expr is any evaluable expression node.
type Expr interface {
	Accept(v ExprVisitor) (any, error)
	Span() world.Span
}

type base struct{ span world.Span }

func (b base) Span() world.Span { return b.span }

// Literal is a constant value embedded directly in source.
type Literal struct {
	base
	Value any // a value.Value
}

func (e *Literal) Accept(v ExprVisitor) (any, error) { return v.VisitLiteral(e) }

// Ident is a name lookup, resolved through the three-tier scope chain.
type Ident struct {
	base
	Name string
}

func (e *Ident) Accept(v ExprVisitor) (any, error) { return v.VisitIdent(e) }

// Binary is a two-operand operator expression.
type Binary struct {
	base
	Left, Right Expr
	Operator    string
}

func (e *Binary) Accept(v ExprVisitor) (any, error) { return v.VisitBinary(e) }

// Unary is a single-operand operator expression.
type Unary struct {
	base
	Operator string
	Operand  Expr
}

func (e *Unary) Accept(v ExprVisitor) (any, error) { return v.VisitUnary(e) }

// Logical is a short-circuiting and/or expression.
type Logical struct {
	base
	Left, Right Expr
	Operator    string // "and" | "or"
}

func (e *Logical) Accept(v ExprVisitor) (any, error) { return v.VisitLogical(e) }

// Call invokes callee with positional, named, and spread arguments.
type Call struct {
	base
	Callee   Expr
	Args     []Expr
	Names    []string // parallel to a trailing slice of Args for named args
	NamedLen int       // number of trailing Args entries that are named
}

func (e *Call) Accept(v ExprVisitor) (any, error) { return v.VisitCall(e) }

// FieldAccess is `object.field`.
type FieldAccess struct {
	base
	Object Expr
	Field  string
}

func (e *FieldAccess) Accept(v ExprVisitor) (any, error) { return v.VisitFieldAccess(e) }

// Index is `object(at: i)`-style or `array.at(i)` indexing; spec.md models
// arrays/dicts/strings as indexable via methods rather than `[]` syntax
// (markup source uses `.at()`), so this node is reached only from that
// method-call desugaring.
type Index struct {
	base
	Object Expr
	Key    Expr
}

func (e *Index) Accept(v ExprVisitor) (any, error) { return v.VisitIndex(e) }

// ArrayLit is `(a, b, c)`.
type ArrayLit struct {
	base
	Elements []Expr
}

func (e *ArrayLit) Accept(v ExprVisitor) (any, error) { return v.VisitArrayLit(e) }

// DictLit is `(k: v, ...)`.
type DictLit struct {
	base
	Keys   []string
	Values []Expr
}

func (e *DictLit) Accept(v ExprVisitor) (any, error) { return v.VisitDictLit(e) }

// ContentLit is markup content embedded as an expression, e.g. `[*bold*]`.
type ContentLit struct {
	base
	// Body is pre-parsed into a sequence of already-elaborated pieces
	// (text runs and embedded expressions); evaluating it joins them into
	// one content.Element, per spec.md §4.1.
	Pieces []Expr
}

func (e *ContentLit) Accept(v ExprVisitor) (any, error) { return v.VisitContentLit(e) }

// If is `if cond { then } else { else }`, an expression (it produces the
// chosen branch's value).
type If struct {
	base
	Cond Expr
	Then Expr
	Else Expr // nil if no else branch
}

func (e *If) Accept(v ExprVisitor) (any, error) { return v.VisitIf(e) }

// While is `while cond { body }`; iteration count is capped at 10,000
// (spec.md §8 property 5) and a condition provably always-true with a
// non-diverging body is rejected as a diagnostic (property 6).
type While struct {
	base
	Cond Expr
	Body Expr
}

func (e *While) Accept(v ExprVisitor) (any, error) { return v.VisitWhile(e) }

// For is `for pattern in iterable { body }`; iterable may be an array,
// dictionary, string (grapheme-wise), or bytes.
type For struct {
	base
	Pattern  Pattern
	Iterable Expr
	Body     Expr
}

func (e *For) Accept(v ExprVisitor) (any, error) { return v.VisitFor(e) }

// Block is `{ stmts... }`; the last expression statement's value (if any)
// is the block's value, matching internal/parser/ast.go's BlockExpr shape.
type Block struct {
	base
	Stmts []Expr
}

func (e *Block) Accept(v ExprVisitor) (any, error) { return v.VisitBlock(e) }

// Let binds pattern to the evaluated Value in the current scope.
type Let struct {
	base
	Pattern Pattern
	Value   Expr // nil for an uninitialized `let x` (binds none)
}

func (e *Let) Accept(v ExprVisitor) (any, error) { return v.VisitLet(e) }

// Assign rebinds an existing name (or field/index target).
type Assign struct {
	base
	Target Expr // Ident, FieldAccess, or Index
	Value  Expr
	// CompoundOp is set for `+=`-style assignment ("+", "-", ...), empty
	// for plain "=".
	CompoundOp string
}

func (e *Assign) Accept(v ExprVisitor) (any, error) { return v.VisitAssign(e) }

// Lambda is `(params) => body`.
type Lambda struct {
	base
	Params  []Pattern
	Sink    string // name of a trailing ".." sink parameter, "" if none
	Body    Expr
	Name    string // "" for anonymous lambdas
}

func (e *Lambda) Accept(v ExprVisitor) (any, error) { return v.VisitLambda(e) }

// Break exits the nearest enclosing loop.
type Break struct{ base }

func (e *Break) Accept(v ExprVisitor) (any, error) { return v.VisitBreak(e) }

// Continue skips to the nearest enclosing loop's next iteration.
type Continue struct{ base }

func (e *Continue) Accept(v ExprVisitor) (any, error) { return v.VisitContinue(e) }

// Return exits the nearest enclosing function with Value (none if nil).
type Return struct {
	base
	Value Expr
}

func (e *Return) Accept(v ExprVisitor) (any, error) { return v.VisitReturn(e) }

// Import binds names exported by a module resolved through world.World.
type Import struct {
	base
	Path     Expr     // string literal or package-spec expression
	Names    []string // empty means "import the module itself under Alias"
	Alias    string
	Wildcard bool // `import "x": *`
}

func (e *Import) Accept(v ExprVisitor) (any, error) { return v.VisitImport(e) }

// ShowRule is `show selector: transform` or bare `show: transform`
// (selector nil means "everything").
type ShowRule struct {
	base
	Selector  Expr // nil, or an expression producing a selector value
	Transform Expr // a function value, or a content template
}

func (e *ShowRule) Accept(v ExprVisitor) (any, error) { return v.VisitShowRule(e) }

// SetRule is `set func(args)`, optionally guarded by `if cond`.
type SetRule struct {
	base
	Target Expr // a Call whose Callee names the function the set applies to
	Cond   Expr // nil if unconditional
}

func (e *SetRule) Accept(v ExprVisitor) (any, error) { return v.VisitSetRule(e) }

// ExprVisitor double-dispatches over every expression kind, matching
// internal/parser/ast.go's ExprVisitor shape extended with the
// markup-specific nodes above.
type ExprVisitor interface {
	VisitLiteral(e *Literal) (any, error)
	VisitIdent(e *Ident) (any, error)
	VisitBinary(e *Binary) (any, error)
	VisitUnary(e *Unary) (any, error)
	VisitLogical(e *Logical) (any, error)
	VisitCall(e *Call) (any, error)
	VisitFieldAccess(e *FieldAccess) (any, error)
	VisitIndex(e *Index) (any, error)
	VisitArrayLit(e *ArrayLit) (any, error)
	VisitDictLit(e *DictLit) (any, error)
	VisitContentLit(e *ContentLit) (any, error)
	VisitIf(e *If) (any, error)
	VisitWhile(e *While) (any, error)
	VisitFor(e *For) (any, error)
	VisitBlock(e *Block) (any, error)
	VisitLet(e *Let) (any, error)
	VisitAssign(e *Assign) (any, error)
	VisitLambda(e *Lambda) (any, error)
	VisitBreak(e *Break) (any, error)
	VisitContinue(e *Continue) (any, error)
	VisitReturn(e *Return) (any, error)
	VisitImport(e *Import) (any, error)
	VisitShowRule(e *ShowRule) (any, error)
	VisitSetRule(e *SetRule) (any, error)
}
