package scope

import (
	"testing"

	"github.com/sentra-lang/typeset/internal/value"
)

func TestLookupSearchesAncestors(t *testing.T) {
	outer := NewFrame(nil)
	outer.Define("x", value.Int(1))
	inner := NewFrame(outer)
	inner.Define("y", value.Int(2))

	if v, ok := inner.Lookup("x"); !ok || v.(value.Int) != 1 {
		t.Fatalf("expected to find x in outer, got %v %v", v, ok)
	}
	if v, ok := inner.Lookup("y"); !ok || v.(value.Int) != 2 {
		t.Fatalf("expected to find y in inner, got %v %v", v, ok)
	}
	if _, ok := outer.Lookup("y"); ok {
		t.Fatal("outer should not see inner's bindings")
	}
}

func TestAssignRebindsNearestExisting(t *testing.T) {
	outer := NewFrame(nil)
	outer.Define("x", value.Int(1))
	inner := NewFrame(outer)

	if !inner.Assign("x", value.Int(99)) {
		t.Fatal("expected assign to find x in outer frame")
	}
	v, _ := outer.Lookup("x")
	if v.(value.Int) != 99 {
		t.Fatalf("expected outer x updated, got %v", v)
	}
	if inner.Assign("never-declared", value.Int(0)) {
		t.Fatal("expected assign to an undeclared name to fail")
	}
}

func TestSnapshotIsIndependentOfLaterMutation(t *testing.T) {
	outer := NewFrame(nil)
	outer.Define("x", value.Int(1))
	inner := NewFrame(outer)
	snap := inner.Snapshot()

	outer.Define("x", value.Int(2))

	v, _ := snap.Lookup("x")
	if v.(value.Int) != 1 {
		t.Fatalf("expected snapshot to freeze x at capture time, got %v", v)
	}
}

func TestResolverTiers(t *testing.T) {
	lib := NewLibrary()
	lib.Define("pi", value.Float(3.14))
	lib.DefineMath("frac", value.String("frac-fn"))

	local := NewFrame(nil)
	local.Define("pi", value.Int(0))

	r := Resolver{Local: local, Library: lib}
	if v, ok := r.Resolve("pi"); !ok || v.(value.Int) != 0 {
		t.Fatalf("expected local to shadow library, got %v", v)
	}
	if _, ok := r.Resolve("frac"); ok {
		t.Fatal("expected math tier to be unavailable outside math mode")
	}

	rMath := Resolver{Library: lib, InMath: true}
	if _, ok := rMath.Resolve("frac"); !ok {
		t.Fatal("expected math tier lookup to succeed in math mode")
	}
}

func TestFreeVarsCollectsUnboundReads(t *testing.T) {
	fv := NewFreeVars([]string{"x"})
	fv.MarkUsed("x")
	fv.MarkBound("y")
	fv.MarkUsed("y")
	fv.MarkUsed("z")

	names := fv.Names()
	if len(names) != 1 || names[0] != "z" {
		t.Fatalf("expected only z to be free, got %v", names)
	}
}

func TestCaptureFrameOnlyIncludesFree(t *testing.T) {
	defining := NewFrame(nil)
	defining.Define("a", value.Int(1))
	defining.Define("b", value.Int(2))

	captured := CaptureFrame(defining, []string{"a"})
	if _, ok := captured.Lookup("a"); !ok {
		t.Fatal("expected a to be captured")
	}
	if _, ok := captured.Lookup("b"); ok {
		t.Fatal("expected b to be excluded from capture")
	}
}
