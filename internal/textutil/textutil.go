// Package textutil provides text normalization helpers for slugs and previews.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	disallowed  = regexp.MustCompile(`[^a-z0-9\s-]`)
	separatorRe = regexp.MustCompile(`[\s-]+`)
)

// FoldASCII decomposes text, strips combining marks and drops every rune
// that has no ASCII representation.
//
// Examples:
//   - "Café" -> "Cafe"
//   - "Ærøskøbing" -> "rskbing"
//   - "日本" -> ""
func FoldASCII(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), runes.Remove(runes.Predicate(isNotASCII)))
	folded, _, err := transform.String(t, s)
	if err != nil {
		return asciiOnly(s)
	}
	return folded
}

func isNotASCII(r rune) bool {
	return r > unicode.MaxASCII
}

func asciiOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if isNotASCII(r) {
			return -1
		}
		return r
	}, s)
}

// Slug turns arbitrary text into lowercase ASCII words joined by single
// hyphens. The result matches ^[a-z0-9-]*$ and never starts or ends with '-'.
func Slug(s string) string {
	s = strings.ToLower(FoldASCII(s))
	s = disallowed.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = separatorRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
