package array

import (
	"go.uber.org/zap"

	"github.com/arloliu/zfp/cache"
	"github.com/arloliu/zfp/codec"
	"github.com/arloliu/zfp/format"
)

// blockCache mediates every element access to a store through a write-back
// cache of decoded blocks.
type blockCache[T codec.Scalar] struct {
	store  *store[T]
	lines  *cache.Cache[T]
	stats  *stats
	logger *zap.Logger
}

func newBlockCache[T codec.Scalar](s *store[T], bytes int, st *stats, logger *zap.Logger) *blockCache[T] {
	c := &blockCache[T]{
		store:  s,
		lines:  cache.New[T](0, format.BlockSize(s.dims)),
		stats:  st,
		logger: logger,
	}
	c.lines.Resize(c.linesFor(bytes))

	return c
}

func (c *blockCache[T]) lineBytes() int {
	return c.lines.LineSize() * c.store.typ().Size()
}

// linesFor converts a size in bytes to a line count. 0 selects the smallest
// power of two whose square covers the number of blocks.
func (c *blockCache[T]) linesFor(bytes int) int {
	if bytes > 0 {
		return (bytes + c.lineBytes() - 1) / c.lineBytes()
	}

	m := 1
	for m*m < c.store.blocks {
		m *= 2
	}

	return m
}

// size returns the cache size in bytes.
func (c *blockCache[T]) size() int {
	return c.lines.Size() * c.lineBytes()
}

// resize writes back dirty lines and changes the cache size.
func (c *blockCache[T]) resize(bytes int) {
	c.flush()
	c.lines.Resize(c.linesFor(bytes))
	c.logger.Debug("cache resized",
		zap.Int("lines", c.lines.Size()),
		zap.Int("bytes", c.size()))
}

// line returns the cached line of block b, decoding it on a miss after
// writing back the line it replaces.
func (c *blockCache[T]) line(b int, write bool) []T {
	line, prev := c.lines.Access(b, write)
	if prev.Index() == b {
		c.stats.hits.Inc()
		return line
	}

	c.stats.misses.Inc()
	if prev.Dirty() {
		c.store.encode(prev.Index(), line)
		c.stats.writeBacks.Inc()
	}
	c.store.decode(b, line)

	return line
}

func (c *blockCache[T]) get(b, k int) T {
	return c.line(b, false)[k]
}

func (c *blockCache[T]) ref(b, k int) *T {
	return &c.line(b, true)[k]
}

// flush encodes every dirty line and empties the cache.
func (c *blockCache[T]) flush() {
	n := 0
	for slot, tag := range c.lines.All() {
		if tag.Dirty() {
			c.store.encode(tag.Index(), c.lines.Line(slot))
			n++
		}
		c.lines.Flush(slot)
	}
	if n > 0 {
		c.stats.writeBacks.Add(int64(n))
		c.logger.Debug("cache flushed", zap.Int("writeBacks", n))
	}
}

// clear discards every line, including uncommitted writes.
func (c *blockCache[T]) clear() {
	c.lines.Clear()
}

// getAll decodes the whole array into raster-ordered data, taking resident
// lines from the cache and decoding the other blocks directly.
func (c *blockCache[T]) getAll(data []T) {
	for b := range c.store.blocks {
		if line := c.lines.Lookup(b); line != nil {
			c.store.copyLine(b, data, line)
		} else {
			c.store.decodeTo(b, data)
		}
	}
}

// setAll discards the cache and compresses raster-ordered data into every block.
func (c *blockCache[T]) setAll(data []T) {
	c.clear()
	for b := range c.store.blocks {
		c.store.encodeFrom(b, data)
	}
}
