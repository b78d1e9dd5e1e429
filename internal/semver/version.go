// Package semver implements the u32-triple version type used by both the
// `version` Value kind and package specifications (spec.md §6).
//
// The teacher's indirect golang.org/x/mod dependency covers the same
// concern (semantic version comparison) but only for the `vMAJOR.MINOR.PATCH`
// Go-module string form; package specs here use a bare numeric triple
// (spec.md §6), so it is dropped rather than wired — see DESIGN.md.
package semver

import "fmt"

// Version is a three-part version number with u32 components, ordered
// lexicographically as (major, minor, patch).
type Version struct {
	Major, Minor, Patch uint32
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than
// o, ordering by (major, minor, patch) tuple order (spec.md §8 property 10).
func (v Version) Compare(o Version) int {
	if v.Major != o.Major {
		return cmp(v.Major, o.Major)
	}
	if v.Minor != o.Minor {
		return cmp(v.Minor, o.Minor)
	}
	return cmp(v.Patch, o.Patch)
}

func cmp(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// String formats the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Less reports v < o.
func (v Version) Less(o Version) bool { return v.Compare(o) < 0 }
