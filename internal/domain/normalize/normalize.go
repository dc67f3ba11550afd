// Package normalize canonicalizes free-text team and match names so that
// differently formatted spellings compare equal.
package normalize

import (
	"regexp"
	"strings"
)

// Club suffix/prefix fragments stripped before comparison. Substring
// removal, not word-boundary aware: " fc" inside a longer word is
// stripped too, which is acceptable for similarity scoring.
var clubTokens = []string{" fc", "cf ", " sc", " afc"}

var (
	nonAlnumRE = regexp.MustCompile(`[^a-z0-9 ]+`)
	spaceRE    = regexp.MustCompile(`\s+`)
)

// Name lower-cases the input, strips common club tokens, drops everything
// outside [a-z0-9 ] and collapses whitespace. Empty input normalizes to
// the empty string. Deterministic and idempotent.
func Name(s string) string {
	s = strings.ToLower(s)
	for _, tok := range clubTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	s = nonAlnumRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(spaceRE.ReplaceAllString(s, " "))
}
