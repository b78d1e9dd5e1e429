// Package segment wraps github.com/clipperhouse/uax29/v2's Unicode text
// segmentation (graphemes, words, sentences) behind the three boundary
// kinds the evaluator and inline layouter need: grapheme clusters for
// `for`-loop string iteration (spec.md §4.1), and word/sentence boundaries
// for line-breaking and smart paragraph grouping (spec.md §4.5).
//
// uax29 appears in the pack only as an indirect dependency (pulled in
// transitively through rupor-github-fb2cng's TUI stack), but its concern —
// UAX#29 boundary-finding — is an exact match for spec.md §4.5's line-
// breaking requirement, so it is adopted directly rather than hand-rolling
// grapheme/word segmentation on top of unicode/utf8.
package segment

import (
	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
)

// Graphemes splits s into user-perceived characters, the unit spec.md
// §4.1's `for` loop iterates a string by.
func Graphemes(s string) []string {
	var out []string
	seg := graphemes.FromString(s)
	for seg.Next() {
		out = append(out, seg.Value())
	}
	return out
}

// Words splits s into word segments (including the whitespace/punctuation
// runs between them), the unit the inline layouter breaks lines on.
func Words(s string) []string {
	var out []string
	seg := words.FromString(s)
	for seg.Next() {
		out = append(out, seg.Value())
	}
	return out
}

// Sentences splits s into sentence segments, used by smart paragraph
// grouping to decide where a run of text could plausibly break across
// pages without mid-sentence orphaning.
func Sentences(s string) []string {
	var out []string
	seg := sentences.FromString(s)
	for seg.Next() {
		out = append(out, seg.Value())
	}
	return out
}

// GraphemeCount reports the number of grapheme clusters in s without
// allocating the intermediate slice, used by length-checking fast paths.
func GraphemeCount(s string) int {
	n := 0
	seg := graphemes.FromString(s)
	for seg.Next() {
		n++
	}
	return n
}
