// Package introspect implements spec.md §4.9's introspector: a map from
// locators to realized positions, stepwise counter/state queries, and the
// deferred-realization mechanism that lets a show rule depend on layout
// information not yet known at the time it first runs.
//
// Grounded on other_examples/fddb5336_boergens-gotypst__layout-flow-types.go.go's
// Location/Tag/Work.Skips (a uint64 location handle plus an append-only
// tag list and a location->struct{} skip set), generalized from "track
// which placed children have already been skipped this pass" into the
// full locator->position map plus counter/state query surface spec.md
// §4.9 names, and on
// original_source/crates/typst/src/vm/access.rs's location-indirection
// pattern ("content stores locations, resolution queries the
// introspector") for the query API shape.
package introspect

import (
	"sync"

	"github.com/sentra-lang/typeset/internal/world"
)

// Position is where a located element ended up after layout: which page
// (frame index in document order) and where within that page's frame.
type Position struct {
	Page int
	X, Y float64
}

// Introspector is append-only during a realization pass (locations are
// assigned but never removed) and immutable once layout for that pass has
// completed, per spec.md §5's shared-resource policy.
type Introspector struct {
	mu        sync.RWMutex
	positions map[world.Location]Position
	order     []world.Location // first-placement order, for deterministic iteration
	counters  map[string][]int64
	sequence  uint32
}

// New creates an empty introspector.
func New() *Introspector {
	return &Introspector{
		positions: make(map[world.Location]Position),
		counters:  make(map[string][]int64),
	}
}

// NextLocation allocates a fresh location from a structural-path hash,
// disambiguating repeated allocations for the same hash within one pass.
func (in *Introspector) NextLocation(hash uint64) world.Location {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.sequence++
	return world.NewLocation(hash, in.sequence)
}

// Place records where a located element ended up. Placing a location that
// is already placed replaces its position and keeps its original slot in
// Locations; no error is reported.
func (in *Introspector) Place(loc world.Location, pos Position) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if _, exists := in.positions[loc]; !exists {
		in.order = append(in.order, loc)
	}
	in.positions[loc] = pos
}

// Query returns where loc ended up, or false if it has not been placed yet
// in the current pass (the caller should treat that as "depends on layout
// not yet known" and defer, per spec.md §4.9).
func (in *Introspector) Query(loc world.Location) (Position, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	p, ok := in.positions[loc]
	return p, ok
}

// BumpCounter appends the next value for a named counter (e.g. heading
// numbering, figure numbering) and returns the full stepwise sequence so
// far, letting callers query "value at this point" by slicing.
func (in *Introspector) BumpCounter(name string, delta int64) []int64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	seq := in.counters[name]
	last := int64(0)
	if len(seq) > 0 {
		last = seq[len(seq)-1]
	}
	seq = append(seq, last+delta)
	in.counters[name] = seq
	return seq
}

// CounterAt returns the counter's value as of the nth bump (0-indexed), or
// 0 if it has not been bumped that many times yet.
func (in *Introspector) CounterAt(name string, n int) int64 {
	in.mu.RLock()
	defer in.mu.RUnlock()
	seq := in.counters[name]
	if n < 0 || n >= len(seq) {
		return 0
	}
	return seq[n]
}

// Locations returns every placed location in the order it was first placed.
func (in *Introspector) Locations() []world.Location {
	in.mu.RLock()
	defer in.mu.RUnlock()
	out := make([]world.Location, len(in.order))
	copy(out, in.order)
	return out
}
