package array

import (
	"go.uber.org/atomic"
)

// CacheStats is a snapshot of cache activity.
type CacheStats struct {
	Hits       int64 // accesses served by a resident line
	Misses     int64 // accesses that decoded a block
	WriteBacks int64 // dirty lines encoded on eviction or flush
}

// stats counts cache activity of an array and all private views derived
// from it, which may run on separate goroutines.
type stats struct {
	hits       atomic.Int64
	misses     atomic.Int64
	writeBacks atomic.Int64
}

func (s *stats) snapshot() CacheStats {
	return CacheStats{
		Hits:       s.hits.Load(),
		Misses:     s.misses.Load(),
		WriteBacks: s.writeBacks.Load(),
	}
}

func (s *stats) reset() {
	s.hits.Store(0)
	s.misses.Store(0)
	s.writeBacks.Store(0)
}
