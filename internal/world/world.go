package world

import "time"

// Location identifies a concrete position an introspectable element was
// realized at, stable across re-layout as long as the document's content
// identity does not change. It lives here (rather than in internal/content
// or internal/introspect) so that both packages can depend on it without
// depending on each other.
type Location struct {
	// hash is the structural-path hash the element was produced at: the
	// chain of sequence indices and recursion depths leading to it.
	hash uint64
	// disambiguator breaks ties between two elements that hash identically
	// (e.g. two calls to the same show-rule body within one iteration).
	disambiguator uint32
}

// NewLocation builds a Location from an already-computed structural hash and
// a disambiguation counter.
func NewLocation(hash uint64, disambiguator uint32) Location {
	return Location{hash: hash, disambiguator: disambiguator}
}

// Hash returns the raw structural-path hash, usable as a map key component.
func (l Location) Hash() uint64 { return l.hash }

// Variant returns a location distinguished from l only by disambiguator,
// used when the same structural path produces more than one element.
func (l Location) Variant(disambiguator uint32) Location {
	return Location{hash: l.hash, disambiguator: disambiguator}
}

// World is the capability surface the evaluator and layouter consume from
// their host: source access, font/package resolution, and wall-clock time.
// Grounded on the teacher's internal/module/module.go loader abstraction,
// generalized from "load one script by path" to the broader set of
// resources spec.md §6 names.
type World interface {
	// Library returns the root scope of predefined bindings (the standard
	// library plus any preluded symbols).
	Library() Library

	// Source returns the decoded text of the file id, or an error if it
	// cannot be read or is not valid UTF-8.
	Source(id FileID) (string, error)

	// File returns the raw bytes backing the file id (used for non-source
	// assets: images, raw includes).
	File(id FileID) ([]byte, error)

	// FontCount reports how many fonts are available for layout to index.
	FontCount() int

	// Font returns descriptive metadata for the font at index, or false if
	// out of range.
	Font(index int) (FontInfo, bool)

	// Today returns the current date, shifted by utcOffset hours if
	// provided, for the `datetime.today()` builtin.
	Today(utcOffsetHours *int) time.Time

	// Packages lists every package namespace/name/version combination the
	// host knows how to resolve, for import diagnostics and completion.
	Packages() []PackageSpec

	// ResolvePackage locates the manifest and root file id for a package
	// spec, downloading or reading from a local cache as the host sees
	// fit.
	ResolvePackage(spec PackageSpec) (PackageManifest, FileID, error)
}

// Library is the set of bindings visible without an explicit import.
type Library interface {
	// Lookup returns the value bound to name at the top level, or false.
	Lookup(name string) (any, bool)
	// MathLookup returns the value bound to name in math mode specifically,
	// consulted only while evaluating inside an equation (spec.md §4.1's
	// "math scope" fallback tier).
	MathLookup(name string) (any, bool)
}

// FontInfo is the metadata layout needs to measure and place glyphs; actual
// glyph outlines are the host's concern, not the evaluator's.
type FontInfo struct {
	Family    string
	UnitsPerEm float64
	Ascender   float64
	Descender  float64
	LineGap    float64
	Bold       bool
	Italic     bool
}
