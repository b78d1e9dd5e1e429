// Package value implements the tagged Value sum type that every evaluated
// expression produces, plus its arithmetic, ordering, and repr rules.
//
// Grounded on the teacher's internal/vm/value.go ("type Value interface{}"
// plus one concrete *Function case), generalized into a closed tag set
// dispatched the way internal/bytecode/opcodes.go enumerates instruction
// kinds: one flat iota block naming every case up front.
package value

// Kind tags the dynamic type of a Value.
type Kind byte

const (
	KindNone Kind = iota
	KindAuto
	KindBool
	KindInt
	KindFloat
	KindLength
	KindAngle
	KindRatio
	KindRelative
	KindFraction
	KindString
	KindBytes
	KindLabel
	KindDatetime
	KindDuration
	KindDecimal
	KindVersion
	KindColor
	KindArray
	KindDict
	KindArgs
	KindFunc
	KindType
	KindModule
	KindContent
	KindSymbol
	KindStyle
)

var kindNames = [...]string{
	KindNone:     "none",
	KindAuto:     "auto",
	KindBool:     "boolean",
	KindInt:      "integer",
	KindFloat:    "float",
	KindLength:   "length",
	KindAngle:    "angle",
	KindRatio:    "ratio",
	KindRelative: "relative length",
	KindFraction: "fraction",
	KindString:   "string",
	KindBytes:    "bytes",
	KindLabel:    "label",
	KindDatetime: "datetime",
	KindDuration: "duration",
	KindDecimal:  "decimal",
	KindVersion:  "version",
	KindColor:    "color",
	KindArray:    "array",
	KindDict:     "dictionary",
	KindArgs:     "arguments",
	KindFunc:     "function",
	KindType:     "type",
	KindModule:   "module",
	KindContent:  "content",
	KindSymbol:   "symbol",
	KindStyle:    "style",
}

// String returns the user-facing type name used in diagnostics
// (e.g. "expected length, found integer").
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is the dynamic value every expression evaluates to. It is a closed
// sum type: every concrete case lives in this package and implements Kind,
// Repr, and Truthy.
type Value interface {
	Kind() Kind
	// Repr returns the canonical, round-trippable textual form.
	Repr() string
	// Truthy reports the value's boolean interpretation in conditions.
	Truthy() bool
}

// Equal reports structural equality between two values. Kinds with an
// EqualValue method compare through it (content by tree shape and style,
// arrays element-wise, dictionaries key by key); every other kind compares
// by Go equality of its underlying data.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if eq, ok := a.(interface{ EqualValue(Value) bool }); ok {
		return eq.EqualValue(b)
	}
	return a == b
}
