package array

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/zfp/codec"
)

// Parallel1 partitions a into n private views and calls fn on each from its
// own goroutine. Every view is flushed when fn returns, and the array's
// cache is cleared once all of them are done so later reads see the
// views' writes.
//
// Returns:
//   - error: errs.ErrPartition if n < 1, otherwise the first error returned
//     by fn or ctx
func Parallel1[T codec.Scalar](ctx context.Context, a *Array1[T], n int, fn func(context.Context, *PrivateView1[T]) error) error {
	if n < 1 {
		return errPartition(0, n)
	}

	views := make([]*PrivateView1[T], n)
	for i := range views {
		views[i] = NewPrivateView1(a, 0, a.Size())
		if err := views[i].Partition(i, n); err != nil {
			return err
		}
	}

	return run(ctx, &a.base, views, fn)
}

// Parallel2 is Parallel1 for two-dimensional arrays.
func Parallel2[T codec.Scalar](ctx context.Context, a *Array2[T], n int, fn func(context.Context, *PrivateView2[T]) error) error {
	if n < 1 {
		return errPartition(0, n)
	}

	views := make([]*PrivateView2[T], n)
	for i := range views {
		views[i] = NewPrivateView2(a, 0, 0, a.SizeX(), a.SizeY())
		if err := views[i].Partition(i, n); err != nil {
			return err
		}
	}

	return run(ctx, &a.base, views, fn)
}

// Parallel3 is Parallel1 for three-dimensional arrays.
func Parallel3[T codec.Scalar](ctx context.Context, a *Array3[T], n int, fn func(context.Context, *PrivateView3[T]) error) error {
	if n < 1 {
		return errPartition(0, n)
	}

	views := make([]*PrivateView3[T], n)
	for i := range views {
		views[i] = NewPrivateView3(a, 0, 0, 0, a.SizeX(), a.SizeY(), a.SizeZ())
		if err := views[i].Partition(i, n); err != nil {
			return err
		}
	}

	return run(ctx, &a.base, views, fn)
}

type flusher interface {
	FlushCache()
}

func run[T codec.Scalar, V flusher](ctx context.Context, a *base[T], views []V, fn func(context.Context, V) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, v := range views {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			defer v.FlushCache()

			return fn(ctx, v)
		})
	}

	err := g.Wait()
	a.cache.clear()

	return err
}
