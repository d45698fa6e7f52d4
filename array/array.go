// Package array implements fixed-rate compressed arrays of one, two and three
// dimensions with random read and write access to individual elements.
//
// An array stores its elements in 4^d blocks, each compressed to the same
// number of bits so that any block can be located, decoded and re-encoded
// independently. Element accesses go through a write-back cache of decoded
// blocks: reads decode a block once and serve subsequent accesses from the
// cache, writes mark the cached block dirty and it is compressed again only
// when evicted or flushed.
//
// # Views
//
// Views are windows onto an array. Plain views share the array's cache and
// are as unsynchronized as the array itself. Private views clone the
// array's stream and own a separate cache; private views over disjoint
// block-aligned partitions (see PrivateView3.Partition and Parallel3) may
// be used from separate goroutines.
//
// # Thread Safety
//
// Arrays are not safe for concurrent use.
package array

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/arloliu/zfp/codec"
	"github.com/arloliu/zfp/errs"
	"github.com/arloliu/zfp/format"
	"github.com/arloliu/zfp/internal/options"
)

// Array is the dimension and type agnostic interface of a compressed array.
type Array interface {
	// Type returns the scalar type of the elements.
	Type() format.ScalarType
	// Dims returns the dimensionality.
	Dims() int
	// Len returns the number of elements.
	Len() int
	// Rate returns the number of compressed bits per element.
	Rate() float64
	// SetRate changes the rate, discarding the contents, and returns the rate used.
	SetRate(rate float64) (float64, error)
	// CacheSize returns the cache size in bytes.
	CacheSize() int
	// SetCacheSize writes back dirty blocks and resizes the cache.
	SetCacheSize(bytes int)
	// ClearCache discards the cache, including uncommitted writes.
	ClearCache()
	// FlushCache writes back every dirty block.
	FlushCache()
	// CompressedSize returns the size of the compressed storage in bytes.
	CompressedSize() int
	// CompressedData flushes the cache and returns the compressed storage.
	CompressedData() []byte
	// Header returns the self-describing header of the array.
	Header() (Header, error)
	// Stats returns the cache activity counters.
	Stats() CacheStats
}

// base holds the state shared by arrays of every dimensionality.
type base[T codec.Scalar] struct {
	store      *store[T]
	cache      *blockCache[T]
	stats      *stats
	logger     *zap.Logger
	cacheBytes int // requested cache size, 0 for the default
}

func (a *base[T]) init(dims int, ext [3]int, p codec.Params, opts []Option) (*Config, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	a.store = newStore[T](dims)
	a.store.setParams(p)
	a.store.resize(ext, true)
	a.stats = &stats{}
	a.logger = cfg.logger
	a.cacheBytes = cfg.cacheBytes
	a.cache = newBlockCache(a.store, cfg.cacheBytes, a.stats, cfg.logger)

	return cfg, nil
}

// Type returns the scalar type of the elements.
func (a *base[T]) Type() format.ScalarType {
	return a.store.typ()
}

// Dims returns the dimensionality.
func (a *base[T]) Dims() int {
	return a.store.dims
}

// Len returns the number of elements.
func (a *base[T]) Len() int {
	if a.store.blocks == 0 {
		return 0
	}

	return a.store.ext[0] * a.store.ext[1] * a.store.ext[2]
}

// Rate returns the number of compressed bits per element.
func (a *base[T]) Rate() float64 {
	return a.store.rate()
}

// SetRate changes the rate. The storage is reallocated and zeroed, and the
// cache is discarded.
//
// Returns:
//   - float64: The rate used, rounded so that every block is a whole number
//     of 64-bit words
//   - error: errs.ErrInvalidRate if rate is not a positive finite number; the
//     array is left unchanged
func (a *base[T]) SetRate(rate float64) (float64, error) {
	if err := checkRate(rate); err != nil {
		return a.Rate(), err
	}
	r := a.store.setRate(rate)
	a.cache.clear()

	return r, nil
}

func checkRate(rate float64) error {
	if !(rate > 0) || math.IsInf(rate, 1) {
		return fmt.Errorf("%w: %v", errs.ErrInvalidRate, rate)
	}

	return nil
}

// CacheSize returns the cache size in bytes.
func (a *base[T]) CacheSize() int {
	return a.cache.size()
}

// SetCacheSize writes back dirty blocks and resizes the cache to hold at
// least bytes bytes of decoded blocks. 0 selects the default size.
func (a *base[T]) SetCacheSize(bytes int) {
	a.cacheBytes = max(bytes, 0)
	a.cache.resize(a.cacheBytes)
}

// ClearCache discards every cached block, including uncommitted writes.
func (a *base[T]) ClearCache() {
	a.cache.clear()
}

// FlushCache compresses every dirty cached block into the storage.
func (a *base[T]) FlushCache() {
	a.cache.flush()
}

// CompressedSize returns the size of the compressed storage in bytes.
func (a *base[T]) CompressedSize() int {
	return len(a.store.buffer)
}

// CompressedData flushes the cache and returns the compressed storage. The
// slice aliases the array's storage.
func (a *base[T]) CompressedData() []byte {
	a.cache.flush()
	return a.store.buffer
}

// Stats returns the cache activity of the array and its private views.
func (a *base[T]) Stats() CacheStats {
	return a.stats.snapshot()
}

// ResetStats zeroes the cache activity counters.
func (a *base[T]) ResetStats() {
	a.stats.reset()
}

// Header returns the self-describing header of the array.
//
// Returns:
//   - error: *errs.HeaderError if the rate needs a long mode code or the
//     array has no storage
func (a *base[T]) Header() (Header, error) {
	return writeHeader(a.store)
}

// resize changes the extents and resets the cache. Any zero extent frees
// the storage.
func (a *base[T]) resize(ext [3]int, clear bool) {
	a.store.resize(ext, clear)
	a.cache.lines.Resize(a.cache.linesFor(a.cacheBytes))
}

// setAll compresses raster-ordered data into the array.
func (a *base[T]) setAll(data []T) error {
	if err := checkLen(len(data), a.Len()); err != nil {
		return err
	}
	a.cache.setAll(data)

	return nil
}

// getAll decompresses the array into raster-ordered data.
func (a *base[T]) getAll(data []T) error {
	if err := checkLen(len(data), a.Len()); err != nil {
		return err
	}
	a.cache.getAll(data)

	return nil
}
