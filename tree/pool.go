package tree

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// buildLevel runs fn(i) concurrently for every index in [0, n), collecting
// the first error (if any) and cancelling the ctx passed to fn, then returns
// the results in order. It waits for every fn call to return; an fn that
// ignores its ctx runs to completion. This replaces the ancestor implementation's
// error-dropping for_each (spec §7's Open Question) with a collecting,
// first-error-wins combinator, grounded in service/artifacts.go's
// errgroup.WithContext fan-out.
func buildLevel[T any](ctx context.Context, n int, fn func(ctx context.Context, i int) (T, error)) ([]T, error) {
	out := make([]T, n)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			v, err := fn(gctx, i)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
