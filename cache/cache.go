// Package cache implements the write-back store of decompressed blocks used
// by compressed arrays.
//
// The cache is two-way skew associative: block x may live in its primary
// slot (x & mask) or its secondary slot (hash(x) & mask), and never in both.
// The cache only tracks tags; it never touches compressed data. Callers use
// the tag returned by Access to detect a miss, write back the evicted line
// when it is dirty and decode the requested block into the line.
//
//	line, prev := c.Access(b, write)
//	if prev.Index() != b {
//	    if prev.Dirty() {
//	        encode(prev.Index(), line)
//	    }
//	    decode(b, line)
//	}
package cache

import (
	"iter"

	"github.com/arloliu/zfp/internal/ints"
)

// Tag records which block a slot holds and whether the line was modified.
type Tag struct {
	index uint32 // one-based block index, 0 when the slot is unused
	dirty bool
}

// NewTag returns the tag of block index.
func NewTag(index int, dirty bool) Tag {
	return Tag{index: uint32(index) + 1, dirty: dirty}
}

// Index returns the block index, or -1 for an unused slot.
func (t Tag) Index() int {
	return int(t.index) - 1
}

// Dirty reports whether the line was written since it was decoded.
func (t Tag) Dirty() bool {
	return t.dirty
}

// Used reports whether the slot holds a block.
func (t Tag) Used() bool {
	return t.index != 0
}

// Cache holds decompressed lines of lineSize scalars.
type Cache[T any] struct {
	mask     uint32
	lineSize int
	tags     []Tag
	data     []T
}

// New returns a cache with at least lines lines of lineSize values each.
func New[T any](lines, lineSize int) *Cache[T] {
	c := &Cache[T]{lineSize: lineSize}
	c.Resize(lines)

	return c
}

// Size returns the number of lines.
func (c *Cache[T]) Size() int {
	return len(c.tags)
}

// LineSize returns the number of values per line.
func (c *Cache[T]) LineSize() int {
	return c.lineSize
}

// Resize sets the number of lines to the smallest power of two not less
// than minLines (0 and 1 both give one line). Every line is invalidated
// without write-back.
func (c *Cache[T]) Resize(minLines int) {
	n := int(ints.NextPow2(uint32(max(minLines, 1))))
	c.mask = uint32(n - 1)
	c.tags = make([]Tag, n)
	c.data = make([]T, n*c.lineSize)
}

// Line returns the values of slot i.
func (c *Cache[T]) Line(i int) []T {
	return c.data[i*c.lineSize : (i+1)*c.lineSize : (i+1)*c.lineSize]
}

// Lookup returns the line holding block index, or nil if it is not cached.
// It never evicts.
func (c *Cache[T]) Lookup(index int) []T {
	x := uint32(index) + 1
	if i := c.primary(x); c.tags[i].index == x {
		return c.Line(i)
	}
	if j := c.secondary(x); c.tags[j].index == x {
		return c.Line(j)
	}

	return nil
}

// Access returns the line for block index, claiming a slot on a miss, and
// marks it dirty when write is set.
//
// On a miss the primary slot is reused unless it is dirty and the secondary
// slot is clean, or it is used and the secondary slot is free.
//
// Returns:
//   - []T: The line; its contents are stale on a miss
//   - Tag: The tag the slot held before the call. prev.Index() != index
//     signals a miss, and prev.Dirty() that the old line must be written back
func (c *Cache[T]) Access(index int, write bool) ([]T, Tag) {
	x := uint32(index) + 1
	i := c.primary(x)
	if c.tags[i].index != x {
		j := c.secondary(x)
		switch {
		case c.tags[j].index == x:
			i = j
		case c.tags[i].dirty && !c.tags[j].dirty,
			c.tags[i].Used() && !c.tags[j].Used():
			i = j
		}
	}

	prev := c.tags[i]
	if prev.index == x {
		c.tags[i].dirty = prev.dirty || write
	} else {
		c.tags[i] = Tag{index: x, dirty: write}
	}

	return c.Line(i), prev
}

// Clear invalidates every line without write-back.
func (c *Cache[T]) Clear() {
	clear(c.tags)
}

// Flush invalidates slot i, typically after its line was written back.
func (c *Cache[T]) Flush(i int) {
	c.tags[i] = Tag{}
}

// All iterates over the used slots and their tags in slot order.
func (c *Cache[T]) All() iter.Seq2[int, Tag] {
	return func(yield func(int, Tag) bool) {
		for i, t := range c.tags {
			if t.Used() && !yield(i, t) {
				return
			}
		}
	}
}

func (c *Cache[T]) primary(x uint32) int {
	return int(x & c.mask)
}

func (c *Cache[T]) secondary(x uint32) int {
	return int(hash(x) & c.mask)
}

// hash is Jenkins' 32-bit integer avalanche.
func hash(x uint32) uint32 {
	x += x << 10
	x ^= x >> 6
	x += x << 3
	x ^= x >> 11
	x += x << 15

	return x
}
