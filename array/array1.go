package array

import (
	"iter"

	"github.com/arloliu/zfp/codec"
	"github.com/arloliu/zfp/format"
)

// Array1 is a compressed one-dimensional array.
//
// Indices are not bounds checked; an index outside [0, Size()) addresses an
// unspecified element or panics.
type Array1[T codec.Scalar] struct {
	base[T]
}

// NewArray1 creates an array of nx elements compressed at rate bits per
// element. The elements are zero unless WithData is given. A rate that is
// not a positive finite number fails with errs.ErrInvalidRate.
//
// Example:
//
//	a, err := array.NewArray1[float64](1000, 16, array.WithData(samples))
//	v := a.Get(42)
func NewArray1[T codec.Scalar](nx int, rate float64, opts ...Option) (*Array1[T], error) {
	if err := checkRate(rate); err != nil {
		return nil, err
	}
	p, _ := codec.RateParams(rate, codec.TypeOf[T](), 1, true)

	return newArray1[T](nx, p, opts)
}

// NewArray1FromHeader creates an array from a header produced by Header.
// The compressed storage is copied from buffer when buffer is not nil.
//
// Returns:
//   - error: *errs.HeaderError if the header is invalid, is not a 1D array
//     of T, or buffer is too small
func NewArray1FromHeader[T codec.Scalar](h Header, buffer []byte, opts ...Option) (*Array1[T], error) {
	info, err := parseHeader(h, codec.TypeOf[T](), 1, buffer)
	if err != nil {
		return nil, err
	}

	return fromHeader1[T](info, buffer, opts)
}

func fromHeader1[T codec.Scalar](info headerInfo, buffer []byte, opts []Option) (*Array1[T], error) {
	a, err := newArray1[T](info.ext[0], info.params, opts)
	if err != nil {
		return nil, err
	}
	a.load(buffer)

	return a, nil
}

func newArray1[T codec.Scalar](nx int, p codec.Params, opts []Option) (*Array1[T], error) {
	a := &Array1[T]{}
	cfg, err := a.init(1, [3]int{nx}, p, opts)
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
func (a *Array1[T]) Size() int {
	return a.store.ext[0]
}

// Resize changes the number of elements. The cache is discarded; the
// compressed storage is zeroed when clear is set. nx == 0 frees the storage.
func (a *Array1[T]) Resize(nx int, clear bool) {
	a.resize([3]int{nx}, clear)
}

// Get returns element i.
func (a *Array1[T]) Get(i int) T {
	return a.cache.get(i/4, i&3)
}

// Set assigns v to element i.
func (a *Array1[T]) Set(i int, v T) {
	*a.cache.ref(i/4, i&3) = v
}

// Add adds v to element i.
func (a *Array1[T]) Add(i int, v T) {
	*a.cache.ref(i/4, i&3) += v
}

// Sub subtracts v from element i.
func (a *Array1[T]) Sub(i int, v T) {
	*a.cache.ref(i/4, i&3) -= v
}

// Mul multiplies element i by v.
func (a *Array1[T]) Mul(i int, v T) {
	*a.cache.ref(i/4, i&3) *= v
}

// Div divides element i by v.
func (a *Array1[T]) Div(i int, v T) {
	*a.cache.ref(i/4, i&3) /= v
}

// Ref returns a reference to element i.
func (a *Array1[T]) Ref(i int) Ref[T] {
	return Ref[T]{c: a.cache, b: i / 4, k: i & 3}
}

// GetAll decompresses every element into dst, which must hold Size values.
// Cached blocks are read from the cache; other blocks are decoded directly
// without entering the cache.
func (a *Array1[T]) GetAll(dst []T) error {
	return a.getAll(dst)
}

// SetAll discards the cache and compresses src, which must hold Size values.
func (a *Array1[T]) SetAll(src []T) error {
	return a.setAll(src)
}

// All iterates over the elements block by block.
func (a *Array1[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for b := range a.store.blocks {
			x := format.BlockEdge * b
			n := a.store.extent(b)
			for i := range n[0] {
				if !yield(x+i, a.cache.get(b, i)) {
					return
				}
			}
		}
	}
}
