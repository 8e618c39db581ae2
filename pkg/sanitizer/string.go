package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims the ends and collapses internal whitespace runs
// to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeName cleans display names (barbers, customers).
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeTitle cleans service titles.
func NormalizeTitle(title string) string {
	return TrimAndNormalize(title)
}

// NormalizeNotes cleans free-form note fields.
func NormalizeNotes(notes string) string {
	return TrimAndNormalize(notes)
}

// NormalizeDayToken lowercases a working-day token so "Mon " and "mon"
// compare equal.
func NormalizeDayToken(day string) string {
	p := Pipeline{TrimAndNormalize, lower}
	return p.Apply(day)
}
