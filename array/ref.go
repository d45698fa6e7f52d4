package array

import (
	"fmt"

	"github.com/arloliu/zfp/codec"
	"github.com/arloliu/zfp/errs"
)

// Ref is a reference to one element of a compressed array. Every access
// goes through the cache, so a Ref stays valid across evictions.
type Ref[T codec.Scalar] struct {
	c    *blockCache[T]
	b, k int
}

// Get returns the element.
func (r Ref[T]) Get() T {
	return r.c.get(r.b, r.k)
}

// Set assigns v to the element.
func (r Ref[T]) Set(v T) {
	*r.c.ref(r.b, r.k) = v
}

// Add adds v to the element.
func (r Ref[T]) Add(v T) {
	*r.c.ref(r.b, r.k) += v
}

// Sub subtracts v from the element.
func (r Ref[T]) Sub(v T) {
	*r.c.ref(r.b, r.k) -= v
}

// Mul multiplies the element by v.
func (r Ref[T]) Mul(v T) {
	*r.c.ref(r.b, r.k) *= v
}

// Div divides the element by v.
func (r Ref[T]) Div(v T) {
	*r.c.ref(r.b, r.k) /= v
}

func checkLen(got, want int) error {
	if got != want {
		return fmt.Errorf("%w: have %d values, need %d", errs.ErrDataSize, got, want)
	}

	return nil
}
