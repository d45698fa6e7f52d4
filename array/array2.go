package array

import (
	"iter"

	"github.com/arloliu/zfp/codec"
	"github.com/arloliu/zfp/format"
)

// Array2 is a compressed two-dimensional array stored with x varying fastest.
//
// Indices are not bounds checked.
type Array2[T codec.Scalar] struct {
	base[T]
}

// NewArray2 creates an nx by ny array compressed at rate bits per element.
func NewArray2[T codec.Scalar](nx, ny int, rate float64, opts ...Option) (*Array2[T], error) {
	if err := checkRate(rate); err != nil {
		return nil, err
	}
	p, _ := codec.RateParams(rate, codec.TypeOf[T](), 2, true)

	return newArray2[T](nx, ny, p, opts)
}

// NewArray2FromHeader creates an array from a header produced by Header.
// The compressed storage is copied from buffer when buffer is not nil.
func NewArray2FromHeader[T codec.Scalar](h Header, buffer []byte, opts ...Option) (*Array2[T], error) {
	info, err := parseHeader(h, codec.TypeOf[T](), 2, buffer)
	if err != nil {
		return nil, err
	}

	return fromHeader2[T](info, buffer, opts)
}

func fromHeader2[T codec.Scalar](info headerInfo, buffer []byte, opts []Option) (*Array2[T], error) {
	a, err := newArray2[T](info.ext[0], info.ext[1], info.params, opts)
	if err != nil {
		return nil, err
	}
	a.load(buffer)

	return a, nil
}

func newArray2[T codec.Scalar](nx, ny int, p codec.Params, opts []Option) (*Array2[T], error) {
	a := &Array2[T]{}
	cfg, err := a.init(2, [3]int{nx, ny}, p, opts)
	if err != nil {
		return nil, err
	}

	data, err := initialData[T](cfg, a.Len())
	if err != nil {
		return nil, err
	}
	if data != nil {
		a.cache.setAll(data)
	}

	return a, nil
}

// Size returns the number of elements.
func (a *Array2[T]) Size() int {
	return a.Len()
}

// SizeX returns the extent along x.
func (a *Array2[T]) SizeX() int {
	return a.store.ext[0]
}

// SizeY returns the extent along y.
func (a *Array2[T]) SizeY() int {
	return a.store.ext[1]
}

// Resize changes the extents. The cache is discarded; the compressed
// storage is zeroed when clear is set. A zero extent frees the storage.
func (a *Array2[T]) Resize(nx, ny int, clear bool) {
	a.resize([3]int{nx, ny}, clear)
}

func (a *Array2[T]) locate(i, j int) (int, int) {
	return a.store.block(i, j, 0), (i & 3) + 4*(j&3)
}

// Get returns element (i, j).
func (a *Array2[T]) Get(i, j int) T {
	b, k := a.locate(i, j)
	return a.cache.get(b, k)
}

// Set assigns v to element (i, j).
func (a *Array2[T]) Set(i, j int, v T) {
	b, k := a.locate(i, j)
	*a.cache.ref(b, k) = v
}

// Add adds v to element (i, j).
func (a *Array2[T]) Add(i, j int, v T) {
	b, k := a.locate(i, j)
	*a.cache.ref(b, k) += v
}

// Sub subtracts v from element (i, j).
func (a *Array2[T]) Sub(i, j int, v T) {
	b, k := a.locate(i, j)
	*a.cache.ref(b, k) -= v
}

// Mul multiplies element (i, j) by v.
func (a *Array2[T]) Mul(i, j int, v T) {
	b, k := a.locate(i, j)
	*a.cache.ref(b, k) *= v
}

// Div divides element (i, j) by v.
func (a *Array2[T]) Div(i, j int, v T) {
	b, k := a.locate(i, j)
	*a.cache.ref(b, k) /= v
}

// Ref returns a reference to element (i, j).
func (a *Array2[T]) Ref(i, j int) Ref[T] {
	b, k := a.locate(i, j)
	return Ref[T]{c: a.cache, b: b, k: k}
}

// GetAll decompresses every element into dst in raster order.
func (a *Array2[T]) GetAll(dst []T) error {
	return a.getAll(dst)
}

// SetAll discards the cache and compresses src, given in raster order.
func (a *Array2[T]) SetAll(src []T) error {
	return a.setAll(src)
}

// All iterates over the elements block by block, yielding (i, j) indices.
func (a *Array2[T]) All() iter.Seq2[[2]int, T] {
	return func(yield func([2]int, T) bool) {
		for b := range a.store.blocks {
			c := a.store.coords(b)
			n := a.store.extent(b)
			for y := range n[1] {
				for x := range n[0] {
					ij := [2]int{format.BlockEdge*c[0] + x, format.BlockEdge*c[1] + y}
					if !yield(ij, a.cache.get(b, x+4*y)) {
						return
					}
				}
			}
		}
	}
}
