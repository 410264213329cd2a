package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugLength = 100

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

	// NFD decomposition followed by removal of combining marks folds
	// accented letters to their ASCII base ("São" -> "Sao").
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slug builds a URL-safe identifier from one or more free-text parts.
//
//	Slug("Alan", "Turing")     -> "alan-turing"
//	Slug("Congresso", "2024")  -> "congresso-2024"
//	Slug("C++ & Python")       -> "c-python"
//	Slug("   ")                -> ""
//
// Output contains only lowercase ASCII letters, digits and single hyphens,
// never starts or ends with a hyphen and is capped at 100 characters.
// Uniqueness is the caller's problem.
func Slug(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	joined := strings.Join(kept, "-")

	ascii, _, err := transform.String(deaccent, joined)
	if err != nil {
		ascii = joined
	}

	lower := strings.ToLower(ascii)
	hyphenated := nonAlphanumeric.ReplaceAllString(lower, "-")
	trimmed := strings.Trim(hyphenated, "-")

	if len(trimmed) > maxSlugLength {
		trimmed = strings.Trim(trimmed[:maxSlugLength], "-")
	}

	return trimmed
}
