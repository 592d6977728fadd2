package analyzer

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/garyellow/strcheck/internal/charset"
	domerrors "github.com/garyellow/strcheck/internal/errors"
)

// VerifyCase is one input to cross-check. B is only used for permutation cases.
type VerifyCase struct {
	Operation string
	A         string
	B         string
}

// Disagreement records a case on which strategies returned different answers.
type Disagreement struct {
	Case    VerifyCase
	Results []StrategyResult
}

// VerifyReport summarizes a Verify run.
type VerifyReport struct {
	Alphabet      string
	Checked       int
	Disagreements []Disagreement
}

// OK reports whether every strategy agreed on every case.
func (r *VerifyReport) OK() bool {
	return len(r.Disagreements) == 0
}

// Verify runs every strategy over cases and collects disagreements. Cases run
// concurrently, bounded by the configured batch concurrency. Any check error
// (including a case outside the alphabet) aborts the run.
func (s *Service) Verify(ctx context.Context, alphabetName string, cases []VerifyCase) (*VerifyReport, error) {
	alphabet, err := s.alphabet(alphabetName)
	if err != nil {
		return nil, err
	}

	report := &VerifyReport{Alphabet: alphabet.Name, Checked: len(cases)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.BatchConcurrency)

	for _, c := range cases {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var (
				cmp *Comparison
				err error
			)
			switch c.Operation {
			case OperationUnique:
				cmp, err = s.CompareUnique(gctx, c.A, alphabet.Name)
			case OperationPermutation:
				cmp, err = s.ComparePermutation(gctx, c.A, c.B, alphabet.Name, false)
			default:
				err = domerrors.NewValidationError("operation", fmt.Sprintf("unknown operation %q", c.Operation))
			}
			if err != nil {
				return fmt.Errorf("verify %s %q: %w", c.Operation, c.A, err)
			}

			if !cmp.Consistent {
				mu.Lock()
				report.Disagreements = append(report.Disagreements, Disagreement{Case: c, Results: cmp.Results})
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: verify over %d cases", domerrors.ErrTimeout, len(cases))
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "Verification finished",
		"alphabet", alphabet.Name,
		"cases", len(cases),
		"disagreements", len(report.Disagreements),
	)
	return report, nil
}

// GenerateCorpus builds n verification cases over alphabet, alternating
// uniqueness and permutation cases. Strings hold at most maxLen runes.
// The same seed always yields the same corpus.
//
// Runes are drawn from a small random window of the alphabet so that both
// unique and repeated strings show up, and half of the permutation cases are
// shuffles (true) while the rest have one rune changed (usually false).
func GenerateCorpus(alphabet charset.Alphabet, n, maxLen int, seed uint64) []VerifyCase {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	cases := make([]VerifyCase, 0, n)

	for i := range n {
		length := rng.IntN(maxLen + 1)
		span := 1 + rng.IntN(min(alphabet.Size, 2*maxLen+1))
		base := alphabet.Base + rune(rng.IntN(alphabet.Size-span+1))
		runes := make([]rune, length)
		for j := range runes {
			runes[j] = pickRune(rng, base, span)
		}

		if i%2 == 0 {
			cases = append(cases, VerifyCase{Operation: OperationUnique, A: string(runes)})
			continue
		}

		other := make([]rune, len(runes))
		copy(other, runes)
		rng.Shuffle(len(other), func(x, y int) { other[x], other[y] = other[y], other[x] })
		if i%4 == 3 && len(other) > 0 {
			other[rng.IntN(len(other))] = pickRune(rng, base, span)
		}
		cases = append(cases, VerifyCase{Operation: OperationPermutation, A: string(runes), B: string(other)})
	}

	return cases
}

// pickRune draws a rune from [base, base+span). Surrogates cannot be encoded
// in a string, so they are moved up into the private use area.
func pickRune(rng *rand.Rand, base rune, span int) rune {
	r := base + rune(rng.IntN(span))
	if r >= 0xD800 && r <= 0xDFFF {
		r += 0x800
	}
	return r
}
