package array

import (
	"github.com/arloliu/zfp/codec"
)

// NestedView1 is a one-dimensional line of elements, obtained from
// NestedView2.Row, or a window onto an Array1.
type NestedView1[T codec.Scalar] struct {
	w window[T]
}

// NewNestedView1 returns a nested view of elements [x, x+nx) of a.
func NewNestedView1[T codec.Scalar](a *Array1[T], x, nx int) NestedView1[T] {
	return NestedView1[T]{w: newWindow(a.cache, [3]int{x}, [3]int{nx})}
}

// Size returns the number of elements.
func (v NestedView1[T]) Size() int {
	return v.w.ext[0]
}

// Get returns element i.
func (v NestedView1[T]) Get(i int) T {
	return v.w.get(i, 0, 0)
}

// Set assigns val to element i.
func (v NestedView1[T]) Set(i int, val T) {
	v.w.set(i, 0, 0, val)
}

// Ref returns a reference to element i.
func (v NestedView1[T]) Ref(i int) Ref[T] {
	return v.w.ref(i, 0, 0)
}

// NestedView2 is a two-dimensional window whose rows are NestedView1 values,
// so that elements can be addressed as v.Row(j).Get(i).
type NestedView2[T codec.Scalar] struct {
	w window[T]
}

// NewNestedView2 returns a nested view of an nx by ny window of a.
func NewNestedView2[T codec.Scalar](a *Array2[T], x, y, nx, ny int) NestedView2[T] {
	return NestedView2[T]{w: newWindow(a.cache, [3]int{x, y}, [3]int{nx, ny})}
}

// SizeX returns the extent along x.
func (v NestedView2[T]) SizeX() int {
	return v.w.ext[0]
}

// SizeY returns the extent along y.
func (v NestedView2[T]) SizeY() int {
	return v.w.ext[1]
}

// Row returns row j as a one-dimensional view.
func (v NestedView2[T]) Row(j int) NestedView1[T] {
	off := v.w.off
	off[1] += j

	return NestedView1[T]{w: newWindow(v.w.cache, off, [3]int{v.w.ext[0]})}
}

// Get returns element (i, j).
func (v NestedView2[T]) Get(i, j int) T {
	return v.w.get(i, j, 0)
}

// Set assigns val to element (i, j).
func (v NestedView2[T]) Set(i, j int, val T) {
	v.w.set(i, j, 0, val)
}

// NestedView3 is a three-dimensional window whose slices are NestedView2
// values, so that elements can be addressed as v.Slice(k).Row(j).Get(i).
type NestedView3[T codec.Scalar] struct {
	w window[T]
}

// NewNestedView3 returns a nested view of an nx by ny by nz window of a.
func NewNestedView3[T codec.Scalar](a *Array3[T], x, y, z, nx, ny, nz int) NestedView3[T] {
	return NestedView3[T]{w: newWindow(a.cache, [3]int{x, y, z}, [3]int{nx, ny, nz})}
}

// SizeX returns the extent along x.
func (v NestedView3[T]) SizeX() int {
	return v.w.ext[0]
}

// SizeY returns the extent along y.
func (v NestedView3[T]) SizeY() int {
	return v.w.ext[1]
}

// SizeZ returns the extent along z.
func (v NestedView3[T]) SizeZ() int {
	return v.w.ext[2]
}

// Slice returns the xy slice k as a two-dimensional view.
func (v NestedView3[T]) Slice(k int) NestedView2[T] {
	off := v.w.off
	off[2] += k

	return NestedView2[T]{w: newWindow(v.w.cache, off, [3]int{v.w.ext[0], v.w.ext[1]})}
}

// Get returns element (i, j, k).
func (v NestedView3[T]) Get(i, j, k int) T {
	return v.w.get(i, j, k)
}

// Set assigns val to element (i, j, k).
func (v NestedView3[T]) Set(i, j, k int, val T) {
	v.w.set(i, j, k, val)
}
