package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	upper    = cases.Upper(language.Und)
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// CanonicalName normalizes a vessel name for matching: diacritics stripped,
// upper-cased, interior whitespace collapsed. Registry shipnames are stored
// this way, so exact and partial name matches go through here first
func CanonicalName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if folded, _, err := transform.String(deaccent, s); err == nil {
		s = folded
	}
	s = upper.String(s)
	return strings.Join(strings.Fields(s), " ")
}
