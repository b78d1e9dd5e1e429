package introspect

import "testing"

func TestPlaceAndQuery(t *testing.T) {
	in := New()
	loc := in.NextLocation(42)
	if _, ok := in.Query(loc); ok {
		t.Fatal("expected unplaced location to be unknown")
	}
	in.Place(loc, Position{Page: 1, X: 10, Y: 20})
	pos, ok := in.Query(loc)
	if !ok || pos.Page != 1 || pos.X != 10 || pos.Y != 20 {
		t.Fatalf("got %+v %v", pos, ok)
	}
}

func TestNextLocationDisambiguates(t *testing.T) {
	in := New()
	a := in.NextLocation(7)
	b := in.NextLocation(7)
	if a == b {
		t.Fatal("expected two allocations from the same hash to differ")
	}
}

func TestBumpCounterSequence(t *testing.T) {
	in := New()
	in.BumpCounter("heading", 1)
	in.BumpCounter("heading", 1)
	seq := in.BumpCounter("heading", 1)
	if len(seq) != 3 || seq[2] != 3 {
		t.Fatalf("got %v", seq)
	}
	if in.CounterAt("heading", 1) != 2 {
		t.Fatalf("got %d", in.CounterAt("heading", 1))
	}
}

func TestLocationsPreservesOrder(t *testing.T) {
	in := New()
	a := in.NextLocation(1)
	b := in.NextLocation(2)
	in.Place(b, Position{})
	in.Place(a, Position{})
	locs := in.Locations()
	if len(locs) != 2 || locs[0] != b || locs[1] != a {
		t.Fatal("expected locations in placement order")
	}
}

func TestConvergeResolvesEventually(t *testing.T) {
	in := New()
	loc := in.NextLocation(1)
	rounds := 0
	delayed := Delayed[int]{Resolve: func(in *Introspector) (int, bool) {
		rounds++
		if rounds < 3 {
			return 0, false
		}
		if _, ok := in.Query(loc); !ok {
			in.Place(loc, Position{Page: 5})
		}
		pos, ok := in.Query(loc)
		return pos.Page, ok
	}}
	results, err := Converge(in, []Delayed[int]{delayed})
	if err != nil {
		t.Fatal(err)
	}
	if results[0] != 5 {
		t.Fatalf("got %v", results)
	}
}

func TestConvergeNonConvergentFails(t *testing.T) {
	never := Delayed[int]{Resolve: func(*Introspector) (int, bool) { return 0, false }}
	if _, err := Converge(New(), []Delayed[int]{never}); err == nil {
		t.Fatal("expected non-convergence to produce an error")
	}
}
