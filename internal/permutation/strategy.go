package permutation

import (
	"slices"

	"github.com/garyellow/strcheck/internal/charset"
	"github.com/garyellow/strcheck/internal/stringutil"
)

// Comparisons run after normalization, the length check and validation.

func compareSorted(a, b string, _ charset.Alphabet) bool {
	return slices.Equal(stringutil.SortedRunes(a), stringutil.SortedRunes(b))
}

func compareMap(a, b string, _ charset.Alphabet) bool {
	counts := stringutil.RuneFrequencies(a)
	for _, r := range b {
		n, ok := counts[r]
		if !ok || n == 0 {
			return false
		}
		counts[r] = n - 1
	}
	return true
}

func compareArray(a, b string, alphabet charset.Alphabet) bool {
	counts := make([]int, alphabet.Size)
	for _, r := range a {
		counts[r-alphabet.Base]++
	}
	for _, r := range b {
		i := r - alphabet.Base
		counts[i]--
		if counts[i] < 0 {
			return false
		}
	}
	return true
}
