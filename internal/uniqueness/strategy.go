package uniqueness

import "github.com/garyellow/strcheck/internal/charset"

// Scans assume s was validated against a, so every index is in range.

func scanSet(s string, _ charset.Alphabet) bool {
	seen := make(map[rune]struct{}, len(s))
	for _, r := range s {
		if _, dup := seen[r]; dup {
			return false
		}
		seen[r] = struct{}{}
	}
	return true
}

func scanTable(s string, a charset.Alphabet) bool {
	seen := make([]bool, a.Size)
	for _, r := range s {
		i := r - a.Base
		if seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}

func scanBits(s string, a charset.Alphabet) bool {
	if a.Size <= 64 {
		var checker uint64
		for _, r := range s {
			mask := uint64(1) << uint(r-a.Base)
			if checker&mask != 0 {
				return false
			}
			checker |= mask
		}
		return true
	}

	// Alphabets wider than one word get a slice of words.
	words := make([]uint64, (a.Size+63)/64)
	for _, r := range s {
		i := int(r - a.Base)
		mask := uint64(1) << uint(i%64)
		if words[i/64]&mask != 0 {
			return false
		}
		words[i/64] |= mask
	}
	return true
}
