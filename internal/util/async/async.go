package async

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEach calls fn for every index in [0, n), in order, with at most limit
// calls running at once. It returns the first error returned by fn.
//
// Once an item fails, or ctx is cancelled, no new items are started. Items
// already in flight keep the caller's ctx and run to completion, so their
// side effects are never cut off half way.
//
// Example:
//
//	err := ForEach(ctx, len(keys), 4, func(ctx context.Context, i int) error {
//	    return copyKey(ctx, keys[i])
//	})
func ForEach(ctx context.Context, n, limit int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return ctx.Err()
	}
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range n {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// A slot may free up only after a failure cancelled gctx.
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(ctx, i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
