package semver

import "testing"

func TestCompareOrdersByMajorThenMinorThenPatch(t *testing.T) {
	cases := []struct {
		a, b Version
		want int
	}{
		{Version{1, 0, 0}, Version{2, 0, 0}, -1},
		{Version{2, 0, 0}, Version{1, 9, 9}, 1},
		{Version{1, 2, 0}, Version{1, 3, 0}, -1},
		{Version{1, 2, 5}, Version{1, 2, 4}, 1},
		{Version{1, 2, 3}, Version{1, 2, 3}, 0},
	}
	for _, c := range cases {
		if got := c.a.Compare(c.b); got != c.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestLessMatchesCompare(t *testing.T) {
	if !(Version{1, 0, 0}).Less(Version{1, 0, 1}) {
		t.Fatal("expected 1.0.0 < 1.0.1")
	}
	if (Version{1, 0, 1}).Less(Version{1, 0, 0}) {
		t.Fatal("expected 1.0.1 not < 1.0.0")
	}
}

func TestStringFormatsDotted(t *testing.T) {
	if got := (Version{1, 2, 3}).String(); got != "1.2.3" {
		t.Fatalf("got %q", got)
	}
}
