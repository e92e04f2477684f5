package utils

import (
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops combining marks, so accented
// characters fold to their base letter ("é" -> "e").
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

func isCJK(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

// Slugify generates a URL-friendly slug from a display name. CJK ideographs
// are kept and percent-encoded; everything outside [a-z0-9-] and the CJK
// range is dropped. The function is deterministic and idempotent:
// Slugify(Slugify(name)) == Slugify(name).
func Slugify(name string) string {
	normalized, _, err := transform.String(stripMarks, name)
	if err != nil {
		normalized = name
	}

	lowered := strings.ToLower(normalized)
	lowered = strings.ReplaceAll(lowered, ".", "")
	lowered = strings.Join(strings.Fields(lowered), "-")

	var b strings.Builder
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case isCJK(r):
			b.WriteRune(r)
		}
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")

	// Percent-encode the non-ASCII remainder (CJK ideographs).
	return url.PathEscape(slug)
}
