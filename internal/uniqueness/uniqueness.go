// Package uniqueness decides whether a string contains no repeated character.
//
// Three strategies share one contract and always agree:
//   - StrategySet tracks seen runes in a hash set.
//   - StrategyTable flags seen runes in a boolean table sized to the alphabet.
//   - StrategyBits packs the same flags into a bit vector.
//
// Every checker applies the same steps: a pigeonhole fast path (more runes
// than the alphabet holds cannot all be distinct), then alphabet validation,
// then the strategy scan. Checkers are immutable and safe for concurrent use.
package uniqueness

import (
	"fmt"
	"strings"

	"github.com/garyellow/strcheck/internal/charset"
	domerrors "github.com/garyellow/strcheck/internal/errors"
)

// Strategy names a uniqueness algorithm.
type Strategy string

const (
	StrategySet   Strategy = "set"
	StrategyTable Strategy = "table"
	StrategyBits  Strategy = "bits"
)

var strategies = []Strategy{StrategySet, StrategyTable, StrategyBits}

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
	return "", fmt.Errorf("%w: uniqueness strategy %q", domerrors.ErrUnknownStrategy, name)
}

// Checker reports whether a string has all-distinct characters.
type Checker interface {
	// IsUnique returns false with an *errors.AlphabetError when s holds a rune
	// outside the checker's alphabet.
	IsUnique(s string) (bool, error)
	Strategy() Strategy
	Alphabet() charset.Alphabet
}

type scanFunc func(s string, a charset.Alphabet) bool

type checker struct {
	strategy Strategy
	alphabet charset.Alphabet
	scan     scanFunc
}

// New returns a Checker using the given strategy over alphabet.
func New(strategy Strategy, alphabet charset.Alphabet) (Checker, error) {
	if alphabet.Size <= 0 {
		return nil, domerrors.NewValidationError("alphabet", fmt.Sprintf("%q has no code points", alphabet.Name))
	}

	var scan scanFunc
	switch strategy {
	case StrategySet:
		scan = scanSet
	case StrategyTable:
		scan = scanTable
	case StrategyBits:
		scan = scanBits
	default:
		return nil, fmt.Errorf("%w: uniqueness strategy %q", domerrors.ErrUnknownStrategy, strategy)
	}

	return &checker{strategy: strategy, alphabet: alphabet, scan: scan}, nil
}

// MustNew is like New but panics on error. Intended for package-level defaults.
func MustNew(strategy Strategy, alphabet charset.Alphabet) Checker {
	c, err := New(strategy, alphabet)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *checker) Strategy() Strategy { return c.strategy }
func (c *checker) Alphabet() charset.Alphabet { return c.alphabet }

func (c *checker) IsUnique(s string) (bool, error) {
	if charset.RuneCount(s) > c.alphabet.Size {
		return false, nil
	}
	if err := c.alphabet.Validate(s); err != nil {
		return false, err
	}
	return c.scan(s, c.alphabet), nil
}

var (
	asciiTable = MustNew(StrategyTable, charset.ASCII)
	unicodeSet = MustNew(StrategySet, charset.Unicode)
)

// IsUnique checks s with the table strategy over ASCII when every rune is
// ASCII, and with the set strategy over all of Unicode otherwise.
func IsUnique(s string) bool {
	c := unicodeSet
	if charset.ASCII.ContainsString(s) {
		c = asciiTable
	}
	ok, _ := c.IsUnique(s)
	return ok
}
