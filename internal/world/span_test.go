package world

import "testing"

// TestSpanRangeRoundTrip checks property 9: Span::from_range(f, s..e).range()
// == Some(s..e) for s,e <= 2^23.
func TestSpanRangeRoundTrip(t *testing.T) {
	cases := [][2]int{{0, 0}, {177, 233}, {0, 8388607}, {8388606, 8388607}}
	for _, c := range cases {
		sp := FromRange(FileID(65535), c[0], c[1])
		start, end, ok := sp.Range()
		if !ok || start != c[0] || end != c[1] {
			t.Fatalf("range round trip failed for %v: got (%d,%d,%v)", c, start, end, ok)
		}
		if id, ok := sp.ID(); !ok || id != 65535 {
			t.Fatalf("id mismatch: got %v %v", id, ok)
		}
	}
}

func TestSpanRangeSaturates(t *testing.T) {
	sp := FromRange(FileID(1), 0, 1<<24)
	_, end, ok := sp.Range()
	if !ok || end != int(rangePartMax) {
		t.Fatalf("expected end to saturate at 2^23, got %d ok=%v", end, ok)
	}
}

// TestSpanNumberRoundTrip checks property 9: Span::from_number(f, n).id()
// == Some(f) for n in the numbered range.
func TestSpanNumberRoundTrip(t *testing.T) {
	sp, ok := FromNumber(FileID(5), 10)
	if !ok {
		t.Fatal("expected FromNumber to succeed")
	}
	id, ok := sp.ID()
	if !ok || id != 5 {
		t.Fatalf("id mismatch: got %v %v", id, ok)
	}
	if sp.Number() != 10 {
		t.Fatalf("number mismatch: got %d", sp.Number())
	}
	if _, _, ok := sp.Range(); ok {
		t.Fatal("numbered span should not decode as a range")
	}
}

func TestSpanNumberOutOfRange(t *testing.T) {
	if _, ok := FromNumber(FileID(1), 0); ok {
		t.Fatal("0 is reserved, should be rejected")
	}
	if _, ok := FromNumber(FileID(1), 1); ok {
		t.Fatal("1 is the detached sentinel, should be rejected")
	}
	if _, ok := FromNumber(FileID(1), fullEnd); ok {
		t.Fatal("2^47 is out of the numbered range, should be rejected")
	}
}

func TestDetachedSpan(t *testing.T) {
	sp := DetachedSpan
	if !sp.IsDetached() {
		t.Fatal("expected detached span to report detached")
	}
	if _, ok := sp.ID(); ok {
		t.Fatal("detached span should have no file id")
	}
}

func TestSpanOr(t *testing.T) {
	other, _ := FromNumber(FileID(3), 5)
	if got := DetachedSpan.Or(other); got != other {
		t.Fatal("Or should fall back to other when detached")
	}
	real, _ := FromNumber(FileID(2), 7)
	if got := real.Or(other); got != real {
		t.Fatal("Or should keep self when not detached")
	}
}
