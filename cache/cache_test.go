package cache

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTag(t *testing.T) {
	var unused Tag
	assert.False(t, unused.Used())
	assert.False(t, unused.Dirty())
	assert.Equal(t, -1, unused.Index())

	tag := NewTag(0, true)
	assert.True(t, tag.Used())
	assert.True(t, tag.Dirty())
	assert.Equal(t, 0, tag.Index())

	assert.Equal(t, 41, NewTag(41, false).Index())
}

func TestCache_Resize(t *testing.T) {
	tests := []struct {
		lines int
		want  int
	}{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {7, 8}, {8, 8}, {9, 16},
	}

	for _, tt := range tests {
		c := New[float64](tt.lines, 16)
		assert.Equal(t, tt.want, c.Size(), "lines=%d", tt.lines)
		assert.Len(t, c.Line(c.Size()-1), 16)
	}
}

func TestCache_ResizeInvalidates(t *testing.T) {
	c := New[int32](4, 4)
	c.Access(1, true)
	require.NotNil(t, c.Lookup(1))

	c.Resize(8)
	require.Nil(t, c.Lookup(1))
	require.Equal(t, 8, c.Size())
}

func TestCache_AccessMissThenHit(t *testing.T) {
	c := New[float64](4, 4)

	line, prev := c.Access(5, false)
	require.False(t, prev.Used(), "first access is a miss on an empty slot")
	line[0] = 1.5

	again, prev := c.Access(5, true)
	require.Equal(t, 5, prev.Index(), "hit returns the block's own tag")
	require.False(t, prev.Dirty())
	require.Equal(t, 1.5, again[0])

	_, prev = c.Access(5, false)
	require.True(t, prev.Dirty(), "write marked the line dirty")

	require.Equal(t, 1.5, c.Lookup(5)[0])
}

func TestCache_EvictionReturnsPreviousTag(t *testing.T) {
	c := New[int64](1, 4)

	line, _ := c.Access(3, true)
	line[2] = 42

	line, prev := c.Access(9, false)
	require.Equal(t, 3, prev.Index())
	require.True(t, prev.Dirty())
	require.Equal(t, int64(42), line[2], "line contents are stale on a miss")

	require.Nil(t, c.Lookup(3))
	require.NotNil(t, c.Lookup(9))
}

func TestCache_PrefersCleanSlot(t *testing.T) {
	c := New[float32](8, 1)

	// find a block whose primary and secondary slots differ
	b := 0
	for ; c.primary(uint32(b)+1) == c.secondary(uint32(b)+1); b++ {
	}
	x := uint32(b) + 1
	i, j := c.primary(x), c.secondary(x)

	// occupy the primary slot with a dirty block and the secondary with a clean one
	c.tags[i] = Tag{index: 1000, dirty: true}
	c.tags[j] = Tag{index: 2000}

	_, prev := c.Access(b, false)
	require.Equal(t, 1999, prev.Index(), "clean secondary slot evicted")
	require.Equal(t, Tag{index: 1000, dirty: true}, c.tags[i])
}

func TestCache_AtMostOneSlot(t *testing.T) {
	c := New[int32](16, 1)
	rng := rand.New(rand.NewSource(1))

	for range 10000 {
		c.Access(rng.Intn(200), rng.Intn(2) == 0)

		seen := map[int]bool{}
		for _, tag := range c.All() {
			require.False(t, seen[tag.Index()], "block %d cached twice", tag.Index())
			seen[tag.Index()] = true
		}
	}
}

// TestCache_Coherence drives the cache the way an array does and checks that
// write-back preserves every value written.
func TestCache_Coherence(t *testing.T) {
	const blocks = 64
	backing := make([][]int64, blocks)
	for b := range backing {
		backing[b] = make([]int64, 4)
	}
	want := make([][]int64, blocks)
	for b := range want {
		want[b] = make([]int64, 4)
	}

	c := New[int64](4, 4)
	access := func(b int, write bool) []int64 {
		line, prev := c.Access(b, write)
		if prev.Index() != b {
			if prev.Dirty() {
				copy(backing[prev.Index()], line)
			}
			copy(line, backing[b])
		}

		return line
	}

	rng := rand.New(rand.NewSource(2))
	for range 5000 {
		b, k := rng.Intn(blocks), rng.Intn(4)
		if rng.Intn(3) == 0 {
			v := rng.Int63()
			access(b, true)[k] = v
			want[b][k] = v
		} else {
			require.Equal(t, want[b][k], access(b, false)[k])
		}
	}

	// flush everything
	for slot, tag := range c.All() {
		if tag.Dirty() {
			copy(backing[tag.Index()], c.Line(slot))
		}
		c.Flush(slot)
	}
	require.Equal(t, want, backing)

	count := 0
	for range c.All() {
		count++
	}
	require.Zero(t, count)
}

func TestCache_Clear(t *testing.T) {
	c := New[float64](4, 16)
	for b := range 4 {
		c.Access(b, true)
	}

	c.Clear()
	for b := range 4 {
		require.Nil(t, c.Lookup(b))
	}
	require.Equal(t, 4, c.Size())
}

func TestHash_Spreads(t *testing.T) {
	const lines = 64
	used := map[uint32]bool{}
	for x := uint32(1); x <= lines; x++ {
		used[hash(x)&(lines-1)] = true
	}

	// sequential indices should land on many distinct secondary slots
	require.Greater(t, len(used), lines/2)
}
