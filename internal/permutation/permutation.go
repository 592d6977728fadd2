// Package permutation decides whether two strings are character permutations
// of each other after trimming surrounding whitespace and lower-casing.
//
// Strategies:
//   - StrategySort compares rune-sorted copies.
//   - StrategyMap counts runes of the first string in a map and consumes them
//     with the second.
//   - StrategyArray does the same over a count table sized to the alphabet.
package permutation

import (
	"fmt"
	"strings"

	"github.com/garyellow/strcheck/internal/charset"
	domerrors "github.com/garyellow/strcheck/internal/errors"
)

// Strategy names a permutation algorithm.
type Strategy string

const (
	StrategySort  Strategy = "sort"
	StrategyMap   Strategy = "map"
	StrategyArray Strategy = "array"
)

var strategies = []Strategy{StrategySort, StrategyMap, StrategyArray}

// Strategies returns every supported strategy in a stable order.
func Strategies() []Strategy {
	out := make([]Strategy, len(strategies))
	copy(out, strategies)
	return out
}

// ParseStrategy resolves a strategy name (case-insensitive).
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range strategies {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: permutation strategy %q", domerrors.ErrUnknownStrategy, name)
}

// Checker reports whether two strings are permutations of each other.
type Checker interface {
	// IsPermutation returns false with an *errors.AlphabetError when either
	// normalized string holds a rune outside the checker's alphabet.
	IsPermutation(a, b string) (bool, error)
	Strategy() Strategy
	Alphabet() charset.Alphabet
}

// Option configures a Checker.
type Option func(*checker)

// WithUnicodeNormalization composes both inputs to NFC before trimming and
// lower-casing, so precomposed and decomposed forms compare equal.
func WithUnicodeNormalization() Option {
	return func(c *checker) {
		c.normalize = charset.NormalizeNFC
	}
}

type compareFunc func(a, b string, alphabet charset.Alphabet) bool

type checker struct {
	strategy  Strategy
	alphabet  charset.Alphabet
	compare   compareFunc
	normalize func(string) string
}

// New returns a Checker using the given strategy over alphabet.
func New(strategy Strategy, alphabet charset.Alphabet, opts ...Option) (Checker, error) {
	if alphabet.Size <= 0 {
		return nil, domerrors.NewValidationError("alphabet", fmt.Sprintf("%q has no code points", alphabet.Name))
	}

	var compare compareFunc
	switch strategy {
	case StrategySort:
		compare = compareSorted
	case StrategyMap:
		compare = compareMap
	case StrategyArray:
		compare = compareArray
	default:
		return nil, fmt.Errorf("%w: permutation strategy %q", domerrors.ErrUnknownStrategy, strategy)
	}

	c := &checker{
		strategy:  strategy,
		alphabet:  alphabet,
		compare:   compare,
		normalize: charset.Normalize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(strategy Strategy, alphabet charset.Alphabet, opts ...Option) Checker {
	c, err := New(strategy, alphabet, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *checker) Strategy() Strategy { return c.strategy }

func (c *checker) Alphabet() charset.Alphabet { return c.alphabet }

func (c *checker) IsPermutation(a, b string) (bool, error) {
	a, b = c.normalize(a), c.normalize(b)
	if charset.RuneCount(a) != charset.RuneCount(b) {
		return false, nil
	}
	if err := c.alphabet.Validate(a); err != nil {
		return false, err
	}
	if err := c.alphabet.Validate(b); err != nil {
		return false, err
	}
	return c.compare(a, b, c.alphabet), nil
}

var (
	asciiArray = MustNew(StrategyArray, charset.ASCII)
	unicodeMap = MustNew(StrategyMap, charset.Unicode)
)

// IsPermutation checks a and b with the array strategy over ASCII when both
// normalized strings are ASCII, and with the map strategy over Unicode
// otherwise.
func IsPermutation(a, b string) bool {
	c := unicodeMap
	if charset.ASCII.ContainsString(charset.Normalize(a)) && charset.ASCII.ContainsString(charset.Normalize(b)) {
		c = asciiArray
	}
	ok, _ := c.IsPermutation(a, b)
	return ok
}
