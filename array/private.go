package array

import (
	"github.com/arloliu/zfp/codec"
)

// private is a window over a clone of an array's store with a cache of its
// own. Creating one flushes the array's cache so the clone sees every
// committed write.
type private[T codec.Scalar] struct {
	w    window[T]
	dims int
}

func newPrivate[T codec.Scalar](a *base[T], off, ext [3]int) private[T] {
	a.cache.flush()
	c := newBlockCache(a.store.clone(), a.cache.size(), a.stats, a.logger)

	return private[T]{w: newWindow(c, off, ext), dims: a.store.dims}
}

// CacheSize returns the size of the view's cache in bytes.
func (p *private[T]) CacheSize() int {
	return p.w.cache.size()
}

// SetCacheSize writes back dirty blocks and resizes the view's cache. 0
// selects the default size.
func (p *private[T]) SetCacheSize(bytes int) {
	p.w.cache.resize(max(bytes, 0))
}

// ClearCache discards the view's cache, including uncommitted writes.
func (p *private[T]) ClearCache() {
	p.w.cache.clear()
}

// Partition narrows the view to piece index of count pieces along its
// longest axis. Piece boundaries fall on block boundaries, so views
// partitioned with the same count and distinct indices touch disjoint
// blocks.
//
// Returns:
//   - error: errs.ErrPartition if index is outside [0, count)
func (p *private[T]) Partition(index, count int) error {
	return p.w.partition(p.dims, index, count)
}

// PrivateConstView1 is a read-only view of an Array1 with its own cache.
type PrivateConstView1[T codec.Scalar] struct {
	private[T]
}

// NewPrivateConstView1 returns a private read-only view of elements
// [x, x+nx) of a.
func NewPrivateConstView1[T codec.Scalar](a *Array1[T], x, nx int) *PrivateConstView1[T] {
	return &PrivateConstView1[T]{private: newPrivate(&a.base, [3]int{x}, [3]int{nx})}
}

// Size returns the number of elements in the view.
func (v *PrivateConstView1[T]) Size() int {
	return v.w.ext[0]
}

// Offset returns the origin of the view within the array.
func (v *PrivateConstView1[T]) Offset() int {
	return v.w.off[0]
}

// Get returns element i of the view.
func (v *PrivateConstView1[T]) Get(i int) T {
	return v.w.get(i, 0, 0)
}

// PrivateView1 is a mutable view of an Array1 with its own cache. Writes
// reach the array once FlushCache is called.
type PrivateView1[T codec.Scalar] struct {
	PrivateConstView1[T]
}

// NewPrivateView1 returns a private view of elements [x, x+nx) of a.
func NewPrivateView1[T codec.Scalar](a *Array1[T], x, nx int) *PrivateView1[T] {
	return &PrivateView1[T]{PrivateConstView1: *NewPrivateConstView1(a, x, nx)}
}

// Set assigns val to element i of the view.
func (v *PrivateView1[T]) Set(i int, val T) {
	v.w.set(i, 0, 0, val)
}

// Ref returns a reference to element i of the view.
func (v *PrivateView1[T]) Ref(i int) Ref[T] {
	return v.w.ref(i, 0, 0)
}

// FlushCache compresses every dirty block of the view into the array.
func (v *PrivateView1[T]) FlushCache() {
	v.w.cache.flush()
}

// PrivateConstView2 is a read-only view of an Array2 with its own cache.
type PrivateConstView2[T codec.Scalar] struct {
	private[T]
}

// NewPrivateConstView2 returns a private read-only view of an nx by ny
// window of a.
func NewPrivateConstView2[T codec.Scalar](a *Array2[T], x, y, nx, ny int) *PrivateConstView2[T] {
	return &PrivateConstView2[T]{private: newPrivate(&a.base, [3]int{x, y}, [3]int{nx, ny})}
}

// SizeX returns the extent of the view along x.
func (v *PrivateConstView2[T]) SizeX() int {
	return v.w.ext[0]
}

// SizeY returns the extent of the view along y.
func (v *PrivateConstView2[T]) SizeY() int {
	return v.w.ext[1]
}

// Offset returns the origin of the view within the array.
func (v *PrivateConstView2[T]) Offset() (int, int) {
	return v.w.off[0], v.w.off[1]
}

// Get returns element (i, j) of the view.
func (v *PrivateConstView2[T]) Get(i, j int) T {
	return v.w.get(i, j, 0)
}

// PrivateView2 is a mutable view of an Array2 with its own cache.
type PrivateView2[T codec.Scalar] struct {
	PrivateConstView2[T]
}

// NewPrivateView2 returns a private view of an nx by ny window of a.
func NewPrivateView2[T codec.Scalar](a *Array2[T], x, y, nx, ny int) *PrivateView2[T] {
	return &PrivateView2[T]{PrivateConstView2: *NewPrivateConstView2(a, x, y, nx, ny)}
}

// Set assigns val to element (i, j) of the view.
func (v *PrivateView2[T]) Set(i, j int, val T) {
	v.w.set(i, j, 0, val)
}

// Ref returns a reference to element (i, j) of the view.
func (v *PrivateView2[T]) Ref(i, j int) Ref[T] {
	return v.w.ref(i, j, 0)
}

// FlushCache compresses every dirty block of the view into the array.
func (v *PrivateView2[T]) FlushCache() {
	v.w.cache.flush()
}

// PrivateConstView3 is a read-only view of an Array3 with its own cache.
type PrivateConstView3[T codec.Scalar] struct {
	private[T]
}

// NewPrivateConstView3 returns a private read-only view of an nx by ny by
// nz window of a.
func NewPrivateConstView3[T codec.Scalar](a *Array3[T], x, y, z, nx, ny, nz int) *PrivateConstView3[T] {
	return &PrivateConstView3[T]{private: newPrivate(&a.base, [3]int{x, y, z}, [3]int{nx, ny, nz})}
}

// SizeX returns the extent of the view along x.
func (v *PrivateConstView3[T]) SizeX() int {
	return v.w.ext[0]
}

// SizeY returns the extent of the view along y.
func (v *PrivateConstView3[T]) SizeY() int {
	return v.w.ext[1]
}

// SizeZ returns the extent of the view along z.
func (v *PrivateConstView3[T]) SizeZ() int {
	return v.w.ext[2]
}

// Offset returns the origin of the view within the array.
func (v *PrivateConstView3[T]) Offset() (int, int, int) {
	return v.w.off[0], v.w.off[1], v.w.off[2]
}

// Get returns element (i, j, k) of the view.
func (v *PrivateConstView3[T]) Get(i, j, k int) T {
	return v.w.get(i, j, k)
}

// PrivateView3 is a mutable view of an Array3 with its own cache.
type PrivateView3[T codec.Scalar] struct {
	PrivateConstView3[T]
}

// NewPrivateView3 returns a private view of an nx by ny by nz window of a.
func NewPrivateView3[T codec.Scalar](a *Array3[T], x, y, z, nx, ny, nz int) *PrivateView3[T] {
	return &PrivateView3[T]{PrivateConstView3: *NewPrivateConstView3(a, x, y, z, nx, ny, nz)}
}

// Set assigns val to element (i, j, k) of the view.
func (v *PrivateView3[T]) Set(i, j, k int, val T) {
	v.w.set(i, j, k, val)
}

// Ref returns a reference to element (i, j, k) of the view.
func (v *PrivateView3[T]) Ref(i, j, k int) Ref[T] {
	return v.w.ref(i, j, k)
}

// FlushCache compresses every dirty block of the view into the array.
func (v *PrivateView3[T]) FlushCache() {
	v.w.cache.flush()
}
