package array

import (
	"github.com/arloliu/zfp/codec"
)

// ConstView1 is a read-only window [x, x+nx) onto an Array1. It shares the
// array's cache.
type ConstView1[T codec.Scalar] struct {
	w window[T]
}

// NewConstView1 returns a read-only view of elements [x, x+nx) of a.
func NewConstView1[T codec.Scalar](a *Array1[T], x, nx int) *ConstView1[T] {
	return &ConstView1[T]{w: newWindow(a.cache, [3]int{x}, [3]int{nx})}
}

// Size returns the number of elements in the view.
func (v *ConstView1[T]) Size() int {
	return v.w.ext[0]
}

// Get returns element i of the view.
func (v *ConstView1[T]) Get(i int) T {
	return v.w.get(i, 0, 0)
}

// View1 is a mutable window onto an Array1 sharing the array's cache.
type View1[T codec.Scalar] struct {
	ConstView1[T]
}

// NewView1 returns a view of elements [x, x+nx) of a.
func NewView1[T codec.Scalar](a *Array1[T], x, nx int) *View1[T] {
	return &View1[T]{ConstView1: *NewConstView1(a, x, nx)}
}

// Set assigns v to element i of the view.
func (v *View1[T]) Set(i int, val T) {
	v.w.set(i, 0, 0, val)
}

// Ref returns a reference to element i of the view.
func (v *View1[T]) Ref(i int) Ref[T] {
	return v.w.ref(i, 0, 0)
}

// ConstView2 is a read-only nx by ny window onto an Array2 with origin
// (x, y). It shares the array's cache.
//
// Besides (i, j) access, elements can be addressed by a flat index in
// x-fastest order over the window.
type ConstView2[T codec.Scalar] struct {
	w window[T]
}

// NewConstView2 returns a read-only view of a.
func NewConstView2[T codec.Scalar](a *Array2[T], x, y, nx, ny int) *ConstView2[T] {
	return &ConstView2[T]{w: newWindow(a.cache, [3]int{x, y}, [3]int{nx, ny})}
}

// Size returns the number of elements in the view.
func (v *ConstView2[T]) Size() int {
	return v.w.size()
}

// SizeX returns the extent of the view along x.
func (v *ConstView2[T]) SizeX() int {
	return v.w.ext[0]
}

// SizeY returns the extent of the view along y.
func (v *ConstView2[T]) SizeY() int {
	return v.w.ext[1]
}

// Get returns element (i, j) of the view.
func (v *ConstView2[T]) Get(i, j int) T {
	return v.w.get(i, j, 0)
}

// Index returns the flat index of (i, j).
func (v *ConstView2[T]) Index(i, j int) int {
	return i + v.w.ext[0]*j
}

// IJ returns the coordinates of a flat index.
func (v *ConstView2[T]) IJ(index int) (int, int) {
	return v.w.ij(index)
}

// GetFlat returns the element at a flat index.
func (v *ConstView2[T]) GetFlat(index int) T {
	i, j := v.w.ij(index)
	return v.w.get(i, j, 0)
}

// View2 is a mutable window onto an Array2 sharing the array's cache.
type View2[T codec.Scalar] struct {
	ConstView2[T]
}

// NewView2 returns a view of a.
func NewView2[T codec.Scalar](a *Array2[T], x, y, nx, ny int) *View2[T] {
	return &View2[T]{ConstView2: *NewConstView2(a, x, y, nx, ny)}
}

// Set assigns val to element (i, j) of the view.
func (v *View2[T]) Set(i, j int, val T) {
	v.w.set(i, j, 0, val)
}

// SetFlat assigns val to the element at a flat index.
func (v *View2[T]) SetFlat(index int, val T) {
	i, j := v.w.ij(index)
	v.w.set(i, j, 0, val)
}

// Ref returns a reference to element (i, j) of the view.
func (v *View2[T]) Ref(i, j int) Ref[T] {
	return v.w.ref(i, j, 0)
}

// ConstView3 is a read-only nx by ny by nz window onto an Array3 with
// origin (x, y, z). It shares the array's cache.
type ConstView3[T codec.Scalar] struct {
	w window[T]
}

// NewConstView3 returns a read-only view of a.
func NewConstView3[T codec.Scalar](a *Array3[T], x, y, z, nx, ny, nz int) *ConstView3[T] {
	return &ConstView3[T]{w: newWindow(a.cache, [3]int{x, y, z}, [3]int{nx, ny, nz})}
}

// Size returns the number of elements in the view.
func (v *ConstView3[T]) Size() int {
	return v.w.size()
}

// SizeX returns the extent of the view along x.
func (v *ConstView3[T]) SizeX() int {
	return v.w.ext[0]
}

// SizeY returns the extent of the view along y.
func (v *ConstView3[T]) SizeY() int {
	return v.w.ext[1]
}

// SizeZ returns the extent of the view along z.
func (v *ConstView3[T]) SizeZ() int {
	return v.w.ext[2]
}

// Get returns element (i, j, k) of the view.
func (v *ConstView3[T]) Get(i, j, k int) T {
	return v.w.get(i, j, k)
}

// Index returns the flat index of (i, j, k).
func (v *ConstView3[T]) Index(i, j, k int) int {
	return i + v.w.ext[0]*(j+v.w.ext[1]*k)
}

// IJK returns the coordinates of a flat index.
func (v *ConstView3[T]) IJK(index int) (int, int, int) {
	return v.w.ijk(index)
}

// GetFlat returns the element at a flat index.
func (v *ConstView3[T]) GetFlat(index int) T {
	i, j, k := v.w.ijk(index)
	return v.w.get(i, j, k)
}

// View3 is a mutable window onto an Array3 sharing the array's cache.
type View3[T codec.Scalar] struct {
	ConstView3[T]
}

// NewView3 returns a view of a.
func NewView3[T codec.Scalar](a *Array3[T], x, y, z, nx, ny, nz int) *View3[T] {
	return &View3[T]{ConstView3: *NewConstView3(a, x, y, z, nx, ny, nz)}
}

// Set assigns val to element (i, j, k) of the view.
func (v *View3[T]) Set(i, j, k int, val T) {
	v.w.set(i, j, k, val)
}

// SetFlat assigns val to the element at a flat index.
func (v *View3[T]) SetFlat(index int, val T) {
	i, j, k := v.w.ijk(index)
	v.w.set(i, j, k, val)
}

// Ref returns a reference to element (i, j, k) of the view.
func (v *View3[T]) Ref(i, j, k int) Ref[T] {
	return v.w.ref(i, j, k)
}
