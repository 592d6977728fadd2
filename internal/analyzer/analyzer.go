// Package analyzer runs uniqueness and permutation checks on behalf of the
// HTTP API, the LINE bot, and the CLI. It resolves strategy and alphabet
// names against configured defaults, enforces input limits, and records
// metrics for every check.
package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/garyellow/strcheck/internal/charset"
	"github.com/garyellow/strcheck/internal/config"
	domerrors "github.com/garyellow/strcheck/internal/errors"
	"github.com/garyellow/strcheck/internal/logger"
	"github.com/garyellow/strcheck/internal/metrics"
	"github.com/garyellow/strcheck/internal/permutation"
	"github.com/garyellow/strcheck/internal/uniqueness"
)

// StrategyAll requests a comparison across every strategy.
const StrategyAll = "all"

// Operation labels used in metrics and logs.
const (
	OperationUnique      = "unique"
	OperationPermutation = "permutation"
)

// Service evaluates check requests. It is safe for concurrent use.
type Service struct {
	cfg     config.CheckConfig
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// New creates a Service. metrics may be nil.
func New(cfg config.CheckConfig, m *metrics.Metrics, log *logger.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}
	return &Service{
		cfg:     cfg,
		metrics: m,
		logger:  log.WithModule("analyzer"),
	}, nil
}

// Config returns the check defaults and limits the service was built with.
func (s *Service) Config() config.CheckConfig {
	return s.cfg
}

// UniqueRequest asks whether Input has all-distinct characters.
// Empty Strategy or Alphabet fall back to configured defaults.
type UniqueRequest struct {
	Input    string
	Strategy string
	Alphabet string
}

// UniqueResult is the outcome of one uniqueness check.
type UniqueResult struct {
	Input    string `json:"input"`
	Unique   bool   `json:"unique"`
	Strategy string `json:"strategy"`
	Alphabet string `json:"alphabet"`
	Runes    int    `json:"runes"`
	Error    string `json:"error,omitempty"`
}

// PermutationRequest asks whether A and B are permutations of each other.
type PermutationRequest struct {
	A                    string
	B                    string
	Strategy             string
	Alphabet             string
	UnicodeNormalization bool
}

// PermutationResult is the outcome of one permutation check.
type PermutationResult struct {
	A           string `json:"a"`
	B           string `json:"b"`
	Permutation bool   `json:"permutation"`
	Strategy    string `json:"strategy"`
	Alphabet    string `json:"alphabet"`
}

// StrategyResult is one strategy's verdict in a comparison.
type StrategyResult struct {
	Strategy string        `json:"strategy"`
	Result   bool          `json:"result"`
	Duration time.Duration `json:"duration_ns"`
}

// Comparison reports every strategy's verdict for one input.
// Consistent is false if any two strategies disagree.
type Comparison struct {
	Operation  string           `json:"operation"`
	Alphabet   string           `json:"alphabet"`
	Results    []StrategyResult `json:"results"`
	Consistent bool             `json:"consistent"`
}

func (s *Service) alphabet(name string) (charset.Alphabet, error) {
	if strings.TrimSpace(name) == "" {
		name = s.cfg.DefaultAlphabet
	}
	return charset.Lookup(name)
}

func (s *Service) checkLength(field, input string) (int, error) {
	runes := charset.RuneCount(input)
	if runes > s.cfg.MaxInputRunes {
		return runes, fmt.Errorf("%w: %s has %d characters, limit is %d",
			domerrors.ErrInputTooLong, field, runes, s.cfg.MaxInputRunes)
	}
	return runes, nil
}

// IsStrategyAll reports whether name selects comparison mode.
func IsStrategyAll(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), StrategyAll)
}

// Unique runs a single uniqueness check.
func (s *Service) Unique(ctx context.Context, req UniqueRequest) (*UniqueResult, error) {
	name := req.Strategy
	if strings.TrimSpace(name) == "" {
		name = s.cfg.DefaultUniqueStrategy
	}
	strategy, err := uniqueness.ParseStrategy(name)
	if err != nil {
		return nil, err
	}
	alphabet, err := s.alphabet(req.Alphabet)
	if err != nil {
		return nil, err
	}
	runes, err := s.checkLength("input", req.Input)
	if err != nil {
		return nil, err
	}

	checker, err := uniqueness.New(strategy, alphabet)
	if err != nil {
		return nil, err
	}

	s.recordInput(OperationUnique, runes)
	unique, err := s.timed(ctx, OperationUnique, string(strategy), func() (bool, error) {
		return checker.IsUnique(req.Input)
	})
	if err != nil {
		return nil, err
	}

	return &UniqueResult{
		Input:    req.Input,
		Unique:   unique,
		Strategy: string(strategy),
		Alphabet: alphabet.Name,
		Runes:    runes,
	}, nil
}

// Permutation runs a single permutation check.
func (s *Service) Permutation(ctx context.Context, req PermutationRequest) (*PermutationResult, error) {
	name := req.Strategy
	if strings.TrimSpace(name) == "" {
		name = s.cfg.DefaultPermutationStrategy
	}
	strategy, err := permutation.ParseStrategy(name)
	if err != nil {
		return nil, err
	}
	alphabet, err := s.alphabet(req.Alphabet)
	if err != nil {
		return nil, err
	}
	runesA, err := s.checkLength("a", req.A)
	if err != nil {
		return nil, err
	}
	if _, err := s.checkLength("b", req.B); err != nil {
		return nil, err
	}

	checker, err := permutation.New(strategy, alphabet, s.permutationOptions(req.UnicodeNormalization)...)
	if err != nil {
		return nil, err
	}

	s.recordInput(OperationPermutation, runesA)
	ok, err := s.timed(ctx, OperationPermutation, string(strategy), func() (bool, error) {
		return checker.IsPermutation(req.A, req.B)
	})
	if err != nil {
		return nil, err
	}

	return &PermutationResult{
		A:           req.A,
		B:           req.B,
		Permutation: ok,
		Strategy:    string(strategy),
		Alphabet:    alphabet.Name,
	}, nil
}

func (s *Service) permutationOptions(nfc bool) []permutation.Option {
	if nfc {
		return []permutation.Option{permutation.WithUnicodeNormalization()}
	}
	return nil
}

// CompareUnique runs every uniqueness strategy over input.
func (s *Service) CompareUnique(ctx context.Context, input, alphabetName string) (*Comparison, error) {
	alphabet, err := s.alphabet(alphabetName)
	if err != nil {
		return nil, err
	}
	runes, err := s.checkLength("input", input)
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{Operation: OperationUnique, Alphabet: alphabet.Name, Consistent: true}
	for _, strategy := range uniqueness.Strategies() {
		checker, err := uniqueness.New(strategy, alphabet)
		if err != nil {
			return nil, err
		}
		s.recordInput(OperationUnique, runes)
		start := time.Now()
		ok, err := s.timed(ctx, OperationUnique, string(strategy), func() (bool, error) {
			return checker.IsUnique(input)
		})
		if err != nil {
			return nil, err
		}
		cmp.add(string(strategy), ok, time.Since(start))
	}

	s.finishComparison(ctx, cmp)
	return cmp, nil
}

// ComparePermutation runs every permutation strategy over a and b.
func (s *Service) ComparePermutation(ctx context.Context, a, b, alphabetName string, nfc bool) (*Comparison, error) {
	alphabet, err := s.alphabet(alphabetName)
	if err != nil {
		return nil, err
	}
	runes, err := s.checkLength("a", a)
	if err != nil {
		return nil, err
	}
	if _, err := s.checkLength("b", b); err != nil {
		return nil, err
	}

	cmp := &Comparison{Operation: OperationPermutation, Alphabet: alphabet.Name, Consistent: true}
	for _, strategy := range permutation.Strategies() {
		checker, err := permutation.New(strategy, alphabet, s.permutationOptions(nfc)...)
		if err != nil {
			return nil, err
		}
		s.recordInput(OperationPermutation, runes)
		start := time.Now()
		ok, err := s.timed(ctx, OperationPermutation, string(strategy), func() (bool, error) {
			return checker.IsPermutation(a, b)
		})
		if err != nil {
			return nil, err
		}
		cmp.add(string(strategy), ok, time.Since(start))
	}

	s.finishComparison(ctx, cmp)
	return cmp, nil
}

func (c *Comparison) add(strategy string, result bool, d time.Duration) {
	if len(c.Results) > 0 && c.Results[0].Result != result {
		c.Consistent = false
	}
	c.Results = append(c.Results, StrategyResult{Strategy: strategy, Result: result, Duration: d})
}

func (s *Service) finishComparison(ctx context.Context, cmp *Comparison) {
	if cmp.Consistent {
		return
	}
	if s.metrics != nil {
		s.metrics.RecordDisagreement(cmp.Operation)
	}
	s.logger.WarnContext(ctx, "Strategies disagree",
		"operation", cmp.Operation,
		"alphabet", cmp.Alphabet,
		"results", cmp.Results,
	)
}

func (s *Service) recordInput(operation string, runes int) {
	if s.metrics != nil {
		s.metrics.RecordInputRunes(operation, runes)
	}
}

// timed runs fn and records its outcome. ctx only carries tracing values.
func (s *Service) timed(ctx context.Context, operation, strategy string, fn func() (bool, error)) (bool, error) {
	start := time.Now()
	ok, err := fn()
	elapsed := time.Since(start)

	result := fmt.Sprintf("%t", ok)
	if err != nil {
		result = "error"
		if domerrors.IsInvalidAlphabet(err) {
			result = "invalid_alphabet"
		}
	}
	if s.metrics != nil {
		s.metrics.RecordCheck(operation, strategy, result, elapsed.Seconds())
	}
	s.logger.DebugContext(ctx, "Check finished",
		"operation", operation,
		"strategy", strategy,
		"result", result,
		"duration", elapsed,
	)
	return ok, err
}
