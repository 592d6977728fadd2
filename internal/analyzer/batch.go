package analyzer

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/garyellow/strcheck/internal/config"
	domerrors "github.com/garyellow/strcheck/internal/errors"
	"github.com/garyellow/strcheck/internal/uniqueness"
)

// BatchRequest asks for uniqueness checks over several inputs with one
// strategy and alphabet.
type BatchRequest struct {
	Inputs   []string
	Strategy string
	Alphabet string
}

// UniqueBatch checks every input concurrently, bounded by the configured
// batch concurrency. Results keep input order.
//
// Per-input failures (alphabet violations, over-long inputs) are reported in
// UniqueResult.Error and do not fail the batch. An unknown strategy or
// alphabet, an invalid batch size, or ctx ending fails the whole batch.
func (s *Service) UniqueBatch(ctx context.Context, req BatchRequest) ([]UniqueResult, error) {
	if len(req.Inputs) == 0 {
		return nil, domerrors.NewValidationError("inputs", "at least one input is required")
	}
	if len(req.Inputs) > s.cfg.MaxBatchSize {
		return nil, domerrors.NewValidationError("inputs",
			fmt.Sprintf("batch has %d inputs, limit is %d", len(req.Inputs), s.cfg.MaxBatchSize))
	}

	// Resolve names once so configuration errors fail fast.
	name := req.Strategy
	if name == "" {
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

	if s.metrics != nil {
		s.metrics.RecordBatch(len(req.Inputs))
	}

	ctx, cancel := context.WithTimeout(ctx, config.BatchEvaluation)
	defer cancel()

	results := make([]UniqueResult, len(req.Inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.BatchConcurrency)

	for i, input := range req.Inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.Unique(gctx, UniqueRequest{
				Input:    input,
				Strategy: string(strategy),
				Alphabet: alphabet.Name,
			})
			if err != nil {
				results[i] = UniqueResult{
					Input:    input,
					Strategy: string(strategy),
					Alphabet: alphabet.Name,
					Error:    err.Error(),
				}
				return nil
			}
			results[i] = *res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: batch of %d inputs", domerrors.ErrTimeout, len(req.Inputs))
		}
		return nil, err
	}

	s.logger.DebugContext(ctx, "Batch finished",
		"inputs", len(req.Inputs),
		"strategy", strategy,
		"alphabet", alphabet.Name,
	)
	return results, nil
}
