package sim

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Builder populates a fresh simulation (objects, metrics, bounds) before it
// runs.
type Builder func(s *Simulation) error

// Ensemble runs independent simulations that differ only in seed.
type Ensemble struct {
	build     Builder
	numRuns   int
	seedStart int64
	limit     int
}

func NewEnsemble(build Builder, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, seedStart: seedStart, limit: -1}
}

// SetLimit caps the number of runs in flight; n <= 0 means no cap.
func (e *Ensemble) SetLimit(n int) {
	if n <= 0 {
		n = -1
	}
	e.limit = n
}

// Run executes every member and returns results in seed order. The first
// failure cancels the rest.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	results := make([]*Result, e.numRuns)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)

	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			s := New(e.seedStart + int64(idx))
			if err := e.build(s); err != nil {
				return err
			}
			res, err := s.Run(gctx, cfg)
			if err != nil {
				return err
			}
			results[idx] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
