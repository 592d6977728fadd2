// Package stringutil provides rune-level string helpers shared by the checkers
// and the chat command parser.
package stringutil

import (
	"slices"
	"strings"
)

// SortedRunes returns the runes of s in ascending code point order.
// The result is a fresh slice; s is never modified.
//
// Example:
//
//	SortedRunes("dog") returns []rune("dgo")
func SortedRunes(s string) []rune {
	runes := []rune(s)
	slices.Sort(runes)
	return runes
}

// RuneFrequencies counts occurrences of every rune in s.
func RuneFrequencies(s string) map[rune]int {
	counts := make(map[rune]int, len(s))
	for _, r := range s {
		counts[r]++
	}
	return counts
}

// CutKeyword reports whether text starts with one of keywords followed by
// whitespace or end of input, returning the trimmed remainder.
// Matching ignores ASCII case so "Unique abc" and "unique abc" behave alike.
//
// Example:
//
//	CutKeyword("唯一 hello", "unique", "唯一") returns ("hello", true)
func CutKeyword(text string, keywords ...string) (string, bool) {
	text = strings.TrimSpace(text)
	for _, kw := range keywords {
		if len(text) < len(kw) || !strings.EqualFold(text[:len(kw)], kw) {
			continue
		}
		rest := text[len(kw):]
		if rest == "" {
			return "", true
		}
		if rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\n' || strings.HasPrefix(rest, "　") {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

// SplitPair splits text on the first sep into two parts without trimming them,
// so whitespace the user typed is kept for the checker to normalize.
func SplitPair(text, sep string) (string, string, bool) {
	a, b, ok := strings.Cut(text, sep)
	if !ok {
		return "", "", false
	}
	return a, b, true
}
