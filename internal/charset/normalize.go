package charset

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize trims leading and trailing whitespace and lower-cases s.
//
// A new Caser is created per call: casers keep internal state and must not be
// shared between goroutines.
func Normalize(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// NormalizeNFC composes s to NFC before applying Normalize, so that a base
// letter followed by a combining mark equals its precomposed form.
func NormalizeNFC(s string) string {
	return Normalize(norm.NFC.String(s))
}
