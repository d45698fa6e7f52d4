package array

import (
	"github.com/arloliu/zfp/bitstream"
	"github.com/arloliu/zfp/codec"
	"github.com/arloliu/zfp/format"
	"github.com/arloliu/zfp/internal/ints"
	"github.com/arloliu/zfp/stream"
)

// lineStrides address a contiguous 4^d cache line.
var lineStrides = codec.Strides{1, 4, 16, 64}

// store is the fixed-rate compressed storage shared by arrays of every
// dimensionality. Block b occupies bits [b*blkbits, (b+1)*blkbits) of the
// buffer, so any block can be read or rewritten in place.
type store[T codec.Scalar] struct {
	dims    int
	ext     [3]int // nx, ny, nz; unused axes are 1
	bext    [3]int // blocks per axis
	blocks  int
	blkbits int

	buffer []byte
	stream *stream.Stream
	// shape holds, for each block, 2 bits per axis with the number of
	// padding values of a boundary block; nil when every block is full
	shape []uint8
}

func newStore[T codec.Scalar](dims int) *store[T] {
	return &store[T]{
		dims:   dims,
		ext:    [3]int{1, 1, 1},
		bext:   [3]int{1, 1, 1},
		stream: stream.Open(nil),
	}
}

func (s *store[T]) typ() format.ScalarType {
	return codec.TypeOf[T]()
}

// clone returns a store over the same buffer with its own stream cursor.
func (s *store[T]) clone() *store[T] {
	c := *s
	c.stream = s.stream.Clone()

	return &c
}

// setRate selects fixed-rate coding with word-aligned blocks and
// reallocates zeroed storage.
func (s *store[T]) setRate(rate float64) float64 {
	p, achieved := codec.RateParams(rate, s.typ(), s.dims, true)
	s.setParams(p)
	s.alloc(false)

	return achieved
}

// setParams adopts a fixed-rate tuple without touching the storage.
func (s *store[T]) setParams(p codec.Params) {
	// fixed-rate tuples are always valid
	_ = s.stream.SetParams(p.MinBits, p.MaxBits, p.MaxPrec, p.MinExp)
	s.blkbits = p.MaxBits
}

func (s *store[T]) params() codec.Params {
	return s.stream.Params()
}

func (s *store[T]) rate() float64 {
	return float64(s.blkbits) / float64(format.BlockSize(s.dims))
}

// resize sets the extents. Any zero extent frees the storage. The previous
// compressed bytes are kept where they fit unless clear is set.
func (s *store[T]) resize(ext [3]int, clear bool) {
	for a := range s.dims {
		if ext[a] <= 0 {
			s.free()
			return
		}
	}

	s.ext = [3]int{1, 1, 1}
	s.bext = [3]int{1, 1, 1}
	s.blocks = 1
	for a := range s.dims {
		s.ext[a] = ext[a]
		s.bext[a] = ints.CeilDiv(ext[a], format.BlockEdge)
		s.blocks *= s.bext[a]
	}
	s.alloc(!clear)
	s.buildShape()
}

func (s *store[T]) free() {
	s.ext = [3]int{}
	s.bext = [3]int{}
	s.blocks = 0
	s.buffer = nil
	s.shape = nil
	s.stream.SetBitstream(nil)
}

// bufferSize returns the size of the storage in bytes, rounded up to whole words.
func (s *store[T]) bufferSize() int {
	bits := s.blocks * s.blkbits
	return ints.AlignUp(bits, bitstream.WordBits) / 8
}

func (s *store[T]) alloc(keep bool) {
	if s.blocks == 0 {
		return
	}

	buf := make([]byte, s.bufferSize())
	if keep {
		copy(buf, s.buffer)
	}
	s.buffer = buf
	s.stream.SetBitstream(bitstream.New(buf))
}

func (s *store[T]) buildShape() {
	s.shape = nil
	partial := false
	for a := range s.dims {
		partial = partial || s.ext[a]%format.BlockEdge != 0
	}
	if !partial {
		return
	}

	s.shape = make([]uint8, s.blocks)
	for b := range s.shape {
		c := s.coords(b)
		var v uint8
		for a := range s.dims {
			if c[a] == s.bext[a]-1 {
				v |= uint8(-s.ext[a]&3) << (2 * a)
			}
		}
		s.shape[b] = v
	}
}

// coords returns the block grid coordinates of block b.
func (s *store[T]) coords(b int) [3]int {
	var c [3]int
	for a := range s.dims {
		c[a] = b % s.bext[a]
		b /= s.bext[a]
	}

	return c
}

// block returns the index of the block containing element (i, j, k).
func (s *store[T]) block(i, j, k int) int {
	return i/4 + s.bext[0]*(j/4+s.bext[1]*(k/4))
}

// extent returns the number of valid values of block b along each axis.
func (s *store[T]) extent(b int) codec.Extent {
	n := codec.FullExtent
	if s.shape == nil {
		return n
	}
	v := s.shape[b]
	for a := range s.dims {
		n[a] = format.BlockEdge - int(v>>(2*a)&3)
	}

	return n
}

// rasterStrides returns the strides of the array in raster order.
func (s *store[T]) rasterStrides() codec.Strides {
	return codec.Strides{1, s.ext[0], s.ext[0] * s.ext[1]}
}

// origin returns the raster offset of the first element of block b.
func (s *store[T]) origin(b int) int {
	c := s.coords(b)
	st := s.rasterStrides()

	return format.BlockEdge * (c[0]*st[0] + c[1]*st[1] + c[2]*st[2])
}

// encode compresses a cache line into block b.
func (s *store[T]) encode(b int, line []T) {
	s.write(b, func() {
		if n := s.extent(b); n.Full(s.dims) {
			stream.EncodeBlock(s.stream, s.dims, line)
		} else {
			stream.EncodePartialBlock(s.stream, s.dims, line, 0, lineStrides, n)
		}
	})
}

// decode decompresses block b into a cache line. Padding positions of a
// boundary block are left untouched.
func (s *store[T]) decode(b int, line []T) {
	s.stream.Bitstream().RSeek(uint64(b) * uint64(s.blkbits))
	if n := s.extent(b); n.Full(s.dims) {
		stream.DecodeBlock(s.stream, s.dims, line)
	} else {
		stream.DecodePartialBlock(s.stream, s.dims, line, 0, lineStrides, n)
	}
}

// encodeFrom compresses block b from raster-ordered data.
func (s *store[T]) encodeFrom(b int, data []T) {
	off, st := s.origin(b), s.rasterStrides()
	s.write(b, func() {
		if n := s.extent(b); n.Full(s.dims) {
			stream.EncodeBlockStrided(s.stream, s.dims, data, off, st)
		} else {
			stream.EncodePartialBlock(s.stream, s.dims, data, off, st, n)
		}
	})
}

// decodeTo decompresses block b into raster-ordered data.
func (s *store[T]) decodeTo(b int, data []T) {
	off, st := s.origin(b), s.rasterStrides()
	s.stream.Bitstream().RSeek(uint64(b) * uint64(s.blkbits))
	if n := s.extent(b); n.Full(s.dims) {
		stream.DecodeBlockStrided(s.stream, s.dims, data, off, st)
	} else {
		stream.DecodePartialBlock(s.stream, s.dims, data, off, st, n)
	}
}

// copyLine stores the valid values of a cache line of block b into
// raster-ordered data.
func (s *store[T]) copyLine(b int, data, line []T) {
	off, st := s.origin(b), s.rasterStrides()
	if n := s.extent(b); n.Full(s.dims) {
		codec.Scatter(data, line, off, s.dims, st)
	} else {
		codec.ScatterPartial(data, line, off, s.dims, st, n)
	}
}

// write positions the stream at block b, runs enc and restores the bits of
// the following block that share its last word.
func (s *store[T]) write(b int, enc func()) {
	bs := s.stream.Bitstream()
	start := uint64(b) * uint64(s.blkbits)
	end := start + uint64(s.blkbits)

	var tail uint64
	tailBits := uint(0)
	if r := end % bitstream.WordBits; r != 0 {
		tailBits = uint(bitstream.WordBits - r)
		rd := bs.Clone()
		rd.RSeek(end)
		tail = rd.ReadBits(tailBits)
	}

	bs.WSeek(start)
	enc()
	if tailBits != 0 {
		bs.WriteBits(tail, tailBits)
	}
	bs.Flush()
}
