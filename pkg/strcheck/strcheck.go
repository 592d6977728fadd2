// Package strcheck answers two questions about strings: whether every
// character is distinct, and whether two strings are permutations of each
// other. Each question has three interchangeable strategies that agree on
// every input within a chosen alphabet.
//
// Permutation checks ignore case and surrounding whitespace, so
// "dog          " and "gOd" are permutations.
package strcheck

import (
	"github.com/garyellow/strcheck/internal/charset"
	domerrors "github.com/garyellow/strcheck/internal/errors"
	"github.com/garyellow/strcheck/internal/permutation"
	"github.com/garyellow/strcheck/internal/uniqueness"
)

// Alphabet is a contiguous range of code points a checker accepts.
type Alphabet = charset.Alphabet

// Built-in alphabets.
var (
	ASCII   = charset.ASCII
	Latin1  = charset.Latin1
	Lower   = charset.Lower
	Unicode = charset.Unicode
)

// AlphabetError reports the first rune outside a checker's alphabet.
type AlphabetError = domerrors.AlphabetError

// Errors returned by the constructors and checkers. Use errors.Is.
var (
	ErrInvalidAlphabet = domerrors.ErrInvalidAlphabet
	ErrUnknownAlphabet = domerrors.ErrUnknownAlphabet
	ErrUnknownStrategy = domerrors.ErrUnknownStrategy
)

type (
	UniquenessStrategy  = uniqueness.Strategy
	UniquenessChecker   = uniqueness.Checker
	PermutationStrategy = permutation.Strategy
	PermutationChecker  = permutation.Checker
	PermutationOption   = permutation.Option
)

// Uniqueness strategies.
const (
	Set   = uniqueness.StrategySet
	Table = uniqueness.StrategyTable
	Bits  = uniqueness.StrategyBits
)

// Permutation strategies.
const (
	Sort  = permutation.StrategySort
	Map   = permutation.StrategyMap
	Array = permutation.StrategyArray
)

// IsUnique reports whether s has no repeated character.
func IsUnique(s string) bool {
	return uniqueness.IsUnique(s)
}

// IsPermutation reports whether a and b are permutations of each other after
// trimming surrounding whitespace and lower-casing.
func IsPermutation(a, b string) bool {
	return permutation.IsPermutation(a, b)
}

// NewUniquenessChecker returns a checker using strategy over alphabet.
func NewUniquenessChecker(strategy UniquenessStrategy, alphabet Alphabet) (UniquenessChecker, error) {
	return uniqueness.New(strategy, alphabet)
}

// NewPermutationChecker returns a checker using strategy over alphabet.
func NewPermutationChecker(strategy PermutationStrategy, alphabet Alphabet, opts ...PermutationOption) (PermutationChecker, error) {
	return permutation.New(strategy, alphabet, opts...)
}

// WithUnicodeNormalization makes a permutation checker compose both inputs
// to NFC first.
func WithUnicodeNormalization() PermutationOption {
	return permutation.WithUnicodeNormalization()
}

// LookupAlphabet resolves a built-in alphabet by name.
func LookupAlphabet(name string) (Alphabet, error) {
	return charset.Lookup(name)
}
