package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripMarks removes combining diacritics ("Miércoles" -> "Miercoles").
func StripMarks(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, value)
	if err != nil {
		return value
	}
	return out
}

// Key lowercases, trims and strips diacritics so names compare loosely.
func Key(value string) string {
	return strings.ToLower(strings.TrimSpace(StripMarks(value)))
}
