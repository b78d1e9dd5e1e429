package value

import "strings"

// Array is an ordered, persistent list of values. Mutating operations
// copy into a fresh backing slice and return a new Array, leaving the
// original untouched, matching content's copy-on-write discipline
// (spec.md §3).
type Array struct {
	items []Value
}

// NewArray builds an Array from items, taking ownership of the slice.
func NewArray(items []Value) Array { return Array{items: items} }

func (a Array) Kind() Kind { return KindArray }

func (a Array) Repr() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, v := range a.items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.Repr())
	}
	if len(a.items) == 1 {
		sb.WriteByte(',')
	}
	sb.WriteByte(')')
	return sb.String()
}

func (a Array) Truthy() bool { return len(a.items) > 0 }

// Len returns the number of elements.
func (a Array) Len() int { return len(a.items) }

// At returns the element at i, or false if out of range.
func (a Array) At(i int) (Value, bool) {
	if i < 0 || i >= len(a.items) {
		return nil, false
	}
	return a.items[i], true
}

// Items returns the backing slice; callers must not mutate it.
func (a Array) Items() []Value { return a.items }

// Pushed returns a new Array with v appended.
func (a Array) Pushed(v Value) Array {
	next := make([]Value, len(a.items)+1)
	copy(next, a.items)
	next[len(a.items)] = v
	return Array{items: next}
}

// Concat returns a new Array with o's elements appended after a's.
func (a Array) Concat(o Array) Array {
	next := make([]Value, 0, len(a.items)+len(o.items))
	next = append(next, a.items...)
	next = append(next, o.items...)
	return Array{items: next}
}

func (a Array) EqualValue(other Value) bool {
	o, ok := other.(Array)
	if !ok || len(a.items) != len(o.items) {
		return false
	}
	for i := range a.items {
		if !Equal(a.items[i], o.items[i]) {
			return false
		}
	}
	return true
}

// Dict is an ordered string-keyed map, preserving insertion order for
// iteration and repr, matching spec.md's dictionary-abbreviation round
// trips for paired/four-sided values.
type Dict struct {
	keys   []string
	values map[string]Value
}

// NewDict builds an empty Dict.
func NewDict() Dict {
	return Dict{values: make(map[string]Value)}
}

func (d Dict) Kind() Kind { return KindDict }

func (d Dict) Repr() string {
	if len(d.keys) == 0 {
		return "(:)"
	}
	var sb strings.Builder
	sb.WriteByte('(')
	for i, k := range d.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(d.values[k].Repr())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (d Dict) Truthy() bool { return len(d.keys) > 0 }

// Get looks up key, returning false if absent.
func (d Dict) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Keys returns keys in insertion order.
func (d Dict) Keys() []string { return d.keys }

// Len returns the number of entries.
func (d Dict) Len() int { return len(d.keys) }

// With returns a new Dict with key bound to v, preserving insertion order
// for existing keys and appending new ones, without mutating d.
func (d Dict) With(key string, v Value) Dict {
	next := Dict{values: make(map[string]Value, len(d.values)+1)}
	next.keys = append(next.keys, d.keys...)
	for k, val := range d.values {
		next.values[k] = val
	}
	if _, exists := d.values[key]; !exists {
		next.keys = append(next.keys, key)
	}
	next.values[key] = v
	return next
}

func (d Dict) EqualValue(other Value) bool {
	o, ok := other.(Dict)
	if !ok || len(d.keys) != len(o.keys) {
		return false
	}
	for _, k := range d.keys {
		ov, ok := o.values[k]
		if !ok || !Equal(d.values[k], ov) {
			return false
		}
	}
	return true
}

// Args is a function call's argument list: positional values plus named
// values plus an optional spread/sink marker, matching spec.md §4.1's
// pattern-destructuring and call-argument model.
type Args struct {
	Positional []Value
	Named      Dict
	// Spread holds extra positional arguments captured by a trailing
	// ".." sink parameter, if the call site used one.
	Spread []Value
}

func (a Args) Kind() Kind { return KindArgs }

func (a Args) Repr() string {
	var sb strings.Builder
	sb.WriteString("arguments(")
	first := true
	for _, v := range a.Positional {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(v.Repr())
	}
	for _, k := range a.Named.Keys() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		v, _ := a.Named.Get(k)
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(v.Repr())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (a Args) Truthy() bool { return len(a.Positional) > 0 || a.Named.Len() > 0 }

// Pop removes and returns the first remaining positional argument.
func (a *Args) Pop() (Value, bool) {
	if len(a.Positional) == 0 {
		return nil, false
	}
	v := a.Positional[0]
	a.Positional = a.Positional[1:]
	return v, true
}

// TakeNamed returns the value bound to a named argument, removing it so a
// second lookup of the same name fails (matching "each named argument is
// consumed at most once" call-binding semantics).
func (a *Args) TakeNamed(name string) (Value, bool) {
	v, ok := a.Named.Get(name)
	if !ok {
		return nil, false
	}
	a.Named = a.Named.without(name)
	return v, true
}

func (d Dict) without(key string) Dict {
	next := Dict{values: make(map[string]Value, len(d.values))}
	for _, k := range d.keys {
		if k == key {
			continue
		}
		next.keys = append(next.keys, k)
		next.values[k] = d.values[k]
	}
	return next
}
