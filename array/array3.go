package array

import (
	"iter"

	"github.com/arloliu/zfp/codec"
	"github.com/arloliu/zfp/format"
)

// Array3 is a compressed three-dimensional array stored with x varying
// fastest and z slowest.
//
// Indices are not bounds checked.
type Array3[T codec.Scalar] struct {
	base[T]
}

// NewArray3 creates an nx by ny by nz array compressed at rate bits per element.
func NewArray3[T codec.Scalar](nx, ny, nz int, rate float64, opts ...Option) (*Array3[T], error) {
	if err := checkRate(rate); err != nil {
		return nil, err
	}
	p, _ := codec.RateParams(rate, codec.TypeOf[T](), 3, true)

	return newArray3[T](nx, ny, nz, p, opts)
}

// NewArray3FromHeader creates an array from a header produced by Header.
// The compressed storage is copied from buffer when buffer is not nil.
func NewArray3FromHeader[T codec.Scalar](h Header, buffer []byte, opts ...Option) (*Array3[T], error) {
	info, err := parseHeader(h, codec.TypeOf[T](), 3, buffer)
	if err != nil {
		return nil, err
	}

	return fromHeader3[T](info, buffer, opts)
}

func fromHeader3[T codec.Scalar](info headerInfo, buffer []byte, opts []Option) (*Array3[T], error) {
	a, err := newArray3[T](info.ext[0], info.ext[1], info.ext[2], info.params, opts)
	if err != nil {
		return nil, err
	}
	a.load(buffer)

	return a, nil
}

func newArray3[T codec.Scalar](nx, ny, nz int, p codec.Params, opts []Option) (*Array3[T], error) {
	a := &Array3[T]{}
	cfg, err := a.init(3, [3]int{nx, ny, nz}, p, opts)
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
func (a *Array3[T]) Size() int {
	return a.Len()
}

// SizeX returns the extent along x.
func (a *Array3[T]) SizeX() int {
	return a.store.ext[0]
}

// SizeY returns the extent along y.
func (a *Array3[T]) SizeY() int {
	return a.store.ext[1]
}

// SizeZ returns the extent along z.
func (a *Array3[T]) SizeZ() int {
	return a.store.ext[2]
}

// Resize changes the extents. The cache is discarded; the compressed
// storage is zeroed when clear is set. A zero extent frees the storage.
func (a *Array3[T]) Resize(nx, ny, nz int, clear bool) {
	a.resize([3]int{nx, ny, nz}, clear)
}

func (a *Array3[T]) locate(i, j, k int) (int, int) {
	return a.store.block(i, j, k), (i & 3) + 4*((j&3)+4*(k&3))
}

// Get returns element (i, j, k).
func (a *Array3[T]) Get(i, j, k int) T {
	b, p := a.locate(i, j, k)
	return a.cache.get(b, p)
}

// Set assigns v to element (i, j, k).
func (a *Array3[T]) Set(i, j, k int, v T) {
	b, p := a.locate(i, j, k)
	*a.cache.ref(b, p) = v
}

// Add adds v to element (i, j, k).
func (a *Array3[T]) Add(i, j, k int, v T) {
	b, p := a.locate(i, j, k)
	*a.cache.ref(b, p) += v
}

// Sub subtracts v from element (i, j, k).
func (a *Array3[T]) Sub(i, j, k int, v T) {
	b, p := a.locate(i, j, k)
	*a.cache.ref(b, p) -= v
}

// Mul multiplies element (i, j, k) by v.
func (a *Array3[T]) Mul(i, j, k int, v T) {
	b, p := a.locate(i, j, k)
	*a.cache.ref(b, p) *= v
}

// Div divides element (i, j, k) by v.
func (a *Array3[T]) Div(i, j, k int, v T) {
	b, p := a.locate(i, j, k)
	*a.cache.ref(b, p) /= v
}

// Ref returns a reference to element (i, j, k).
func (a *Array3[T]) Ref(i, j, k int) Ref[T] {
	b, p := a.locate(i, j, k)
	return Ref[T]{c: a.cache, b: b, k: p}
}

// GetAll decompresses every element into dst in raster order.
func (a *Array3[T]) GetAll(dst []T) error {
	return a.getAll(dst)
}

// SetAll discards the cache and compresses src, given in raster order.
func (a *Array3[T]) SetAll(src []T) error {
	return a.setAll(src)
}

// All iterates over the elements block by block, yielding (i, j, k) indices.
func (a *Array3[T]) All() iter.Seq2[[3]int, T] {
	return func(yield func([3]int, T) bool) {
		for b := range a.store.blocks {
			c := a.store.coords(b)
			n := a.store.extent(b)
			for z := range n[2] {
				for y := range n[1] {
					for x := range n[0] {
						ijk := [3]int{
							format.BlockEdge*c[0] + x,
							format.BlockEdge*c[1] + y,
							format.BlockEdge*c[2] + z,
						}
						if !yield(ijk, a.cache.get(b, x+4*(y+4*z))) {
							return
						}
					}
				}
			}
		}
	}
}
