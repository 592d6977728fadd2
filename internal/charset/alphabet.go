// Package charset defines the alphabets that fixed-size checkers are sized for
// and the text normalization applied before permutation checks.
//
// An Alphabet is a contiguous range of code points [Base, Base+Size). Checkers
// backed by lookup tables or bit vectors index runes by their offset from Base,
// so every rune they see must be validated against the alphabet first.
package charset

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	domerrors "github.com/garyellow/strcheck/internal/errors"
)

// Alphabet is a contiguous range of code points.
type Alphabet struct {
	Name string
	Base rune // first code point
	Size int  // number of code points
}

// Built-in alphabets.
var (
	// ASCII is the 7-bit range.
	ASCII = Alphabet{Name: "ascii", Base: 0, Size: 128}

	// Latin1 covers ISO-8859-1.
	Latin1 = Alphabet{Name: "latin1", Base: 0, Size: 256}

	// Lower covers 'a' through 'z'. Small enough for a single-word bit vector.
	Lower = Alphabet{Name: "lower", Base: 'a', Size: 26}

	// Unicode covers every code point.
	Unicode = Alphabet{Name: "unicode", Base: 0, Size: unicode.MaxRune + 1}
)

var registry = map[string]Alphabet{
	ASCII.Name:   ASCII,
	Latin1.Name:  Latin1,
	Lower.Name:   Lower,
	Unicode.Name: Unicode,
}

// Lookup resolves an alphabet by name (case-insensitive).
func Lookup(name string) (Alphabet, error) {
	a, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Alphabet{}, fmt.Errorf("%w: %q", domerrors.ErrUnknownAlphabet, name)
	}
	return a, nil
}

// Names returns the registered alphabet names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// String implements fmt.Stringer.
func (a Alphabet) String() string {
	return a.Name
}

// Contains reports whether r belongs to the alphabet.
func (a Alphabet) Contains(r rune) bool {
	return r >= a.Base && int(r-a.Base) < a.Size
}

// Index returns the offset of r within the alphabet.
func (a Alphabet) Index(r rune) (int, error) {
	if !a.Contains(r) {
		return 0, domerrors.NewAlphabetError(a.Name, r, -1)
	}
	return int(r - a.Base), nil
}

// Validate returns an *errors.AlphabetError for the first rune of s outside
// the alphabet, or nil if every rune fits.
func (a Alphabet) Validate(s string) error {
	pos := 0
	for _, r := range s {
		if !a.Contains(r) {
			return domerrors.NewAlphabetError(a.Name, r, pos)
		}
		pos++
	}
	return nil
}

// ContainsString reports whether every rune of s belongs to the alphabet.
func (a Alphabet) ContainsString(s string) bool {
	return a.Validate(s) == nil
}

// RuneCount returns the number of code points in s.
func RuneCount(s string) int {
	return utf8.RuneCountInString(s)
}
