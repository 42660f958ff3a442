package entitykey

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Normalize maps a raw name or place string to its canonical comparison
// form: case-folded, punctuation treated as whitespace, internal whitespace
// collapsed, leading and trailing whitespace trimmed.
func Normalize(s string) string {
	folded := folder.String(s)

	var b strings.Builder
	b.Grow(len(folded))
	prevSpace := true
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
			prevSpace = false
			continue
		}
		if !prevSpace {
			b.WriteByte(' ')
			prevSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// FullKey joins the normalized name and place; two entities match on it only
// when both fields agree. Empty when the name normalizes to nothing.
func FullKey(name, place string) string {
	n := Normalize(name)
	if n == "" {
		return ""
	}
	return n + "|" + Normalize(place)
}

// NameKey normalizes the name alone, ignoring place entirely.
func NameKey(name string) string {
	return Normalize(name)
}

// NameWithoutPlaceKey normalizes the name after removing any substring
// matching the place, for candidates whose name field already embeds the
// place (e.g. "Bowery Ballroom, New York"). Empty when the place does not
// occur in the name or nothing remains after removal.
func NameWithoutPlaceKey(name, place string) string {
	n := Normalize(name)
	p := Normalize(place)
	if n == "" || p == "" {
		return ""
	}
	idx := strings.Index(n, p)
	if idx < 0 {
		return ""
	}
	return Normalize(n[:idx] + n[idx+len(p):])
}
