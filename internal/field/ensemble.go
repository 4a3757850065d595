package field

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent realizations with consecutive seeds.
type Ensemble struct {
	params    Params
	numRuns   int
	seedStart uint64
	limit     int
}

// NewEnsemble prepares numRuns realizations seeded seedStart, seedStart+1, ...
// At most limit realizations are held in memory at once.
func NewEnsemble(p Params, numRuns int, seedStart uint64, limit int) *Ensemble {
	if limit < 1 {
		limit = 1
	}
	return &Ensemble{params: p, numRuns: numRuns, seedStart: seedStart, limit: limit}
}

// Run executes every realization and hands each result to reduce, which is
// called from the realization's goroutine and must be safe for concurrent
// use. Results are not retained.
func (e *Ensemble) Run(ctx context.Context, reduce func(idx int, seed uint64, r *Result) error) error {
	if err := e.params.Validate(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)

	for i := 0; i < e.numRuns; i++ {
		seed := e.seedStart + uint64(i)
		g.Go(func() error {
			r, err := Run(gctx, e.params, NewSource(seed))
			if err != nil {
				return err
			}
			return reduce(i, seed, r)
		})
	}

	return g.Wait()
}
