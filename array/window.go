package array

import (
	"fmt"

	"github.com/arloliu/zfp/codec"
	"github.com/arloliu/zfp/errs"
)

// window addresses a box of an array through a block cache. Coordinates
// passed to its methods are relative to off.
type window[T codec.Scalar] struct {
	cache *blockCache[T]
	off   [3]int
	ext   [3]int
}

func newWindow[T codec.Scalar](c *blockCache[T], off, ext [3]int) window[T] {
	for a := range ext {
		ext[a] = max(ext[a], 1)
	}

	return window[T]{cache: c, off: off, ext: ext}
}

func (w *window[T]) size() int {
	return w.ext[0] * w.ext[1] * w.ext[2]
}

func (w *window[T]) locate(i, j, k int) (int, int) {
	i += w.off[0]
	j += w.off[1]
	k += w.off[2]

	return w.cache.store.block(i, j, k), (i & 3) + 4*((j&3)+4*(k&3))
}

func (w *window[T]) get(i, j, k int) T {
	b, p := w.locate(i, j, k)
	return w.cache.get(b, p)
}

func (w *window[T]) ref(i, j, k int) Ref[T] {
	b, p := w.locate(i, j, k)
	return Ref[T]{c: w.cache, b: b, k: p}
}

func (w *window[T]) set(i, j, k int, v T) {
	b, p := w.locate(i, j, k)
	*w.cache.ref(b, p) = v
}

// ij maps a flat index in x-fastest order to window coordinates.
func (w *window[T]) ij(index int) (int, int) {
	return index % w.ext[0], index / w.ext[0]
}

func (w *window[T]) ijk(index int) (int, int, int) {
	i := index % w.ext[0]
	index /= w.ext[0]

	return i, index % w.ext[1], index / w.ext[1]
}

// partition narrows the window along its longest axis to the index-th of
// count block-aligned pieces.
func (w *window[T]) partition(dims, index, count int) error {
	if count < 1 || index < 0 || index >= count {
		return errPartition(index, count)
	}

	axis := 0
	switch dims {
	case 2:
		if w.ext[0] <= w.ext[1] {
			axis = 1
		}
	case 3:
		switch {
		case w.ext[0] > max(w.ext[1], w.ext[2]):
			axis = 0
		case w.ext[1] > max(w.ext[0], w.ext[2]):
			axis = 1
		default:
			axis = 2
		}
	}
	w.off[axis], w.ext[axis] = partition(w.off[axis], w.ext[axis], index, count)

	return nil
}

// partition splits [off, off+size) into count pieces whose inner bounds are
// multiples of 4 and returns piece index.
func partition(off, size, index, count int) (int, int) {
	bmin := off / 4
	bmax := (off + size + 3) / 4
	lo := max(off, 4*(bmin+(bmax-bmin)*index/count))
	hi := min(off+size, 4*(bmin+(bmax-bmin)*(index+1)/count))

	return lo, max(hi-lo, 0)
}

func errPartition(index, count int) error {
	return fmt.Errorf("%w: index %d of %d", errs.ErrPartition, index, count)
}
