package stream

import (
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/zfp/bitstream"
	"github.com/arloliu/zfp/codec"
	"github.com/arloliu/zfp/field"
	"github.com/arloliu/zfp/format"
	"github.com/arloliu/zfp/internal/ints"
	"github.com/arloliu/zfp/internal/pool"
)

// grid enumerates the blocks of a field in raster order, x fastest.
type grid struct {
	dims   int
	ext    [codec.MaxDims]int
	blocks [codec.MaxDims]int
	st     codec.Strides
	origin int
}

func newGrid(f *field.Field) grid {
	g := grid{dims: f.Dims(), ext: f.Extents(), st: f.Strides(), origin: f.Offset}
	for a := range g.dims {
		g.blocks[a] = ints.CeilDiv(g.ext[a], format.BlockEdge)
	}

	return g
}

func (g grid) count() int {
	n := 1
	for a := range g.dims {
		n *= g.blocks[a]
	}

	return n
}

// locate returns the data offset of the first value of block b and the
// number of valid values along each axis.
func (g grid) locate(b int) (int, codec.Extent) {
	off := g.origin
	n := codec.FullExtent
	for a := range g.dims {
		x := format.BlockEdge * (b % g.blocks[a])
		b /= g.blocks[a]
		off += x * g.st[a]
		n[a] = min(format.BlockEdge, g.ext[a]-x)
	}

	return off, n
}

// chunks splits blocks into contiguous [from, to) ranges.
func (s *Stream) chunks(blocks int) [][2]int {
	size := s.exec.ChunkSize
	if size == 0 {
		size = ints.CeilDiv(blocks, 4*s.threads())
	}
	size = max(size, 1)

	ranges := make([][2]int, 0, ints.CeilDiv(blocks, size))
	for from := 0; from < blocks; from += size {
		ranges = append(ranges, [2]int{from, min(from+size, blocks)})
	}

	return ranges
}

// Compress compresses f into the bit stream at its current position and
// flushes the stream.
//
// The output of ExecThreads is bit-for-bit identical to ExecSerial.
//
// Returns:
//   - int: The compressed size in bytes, or 0 if f is invalid, holds no data,
//     or the parameters are invalid
func (s *Stream) Compress(f *field.Field) int {
	if !s.ready(f) {
		return 0
	}

	switch f.Type {
	case format.TypeInt32:
		compressField(s, newGrid(f), field.Slice[int32](f))
	case format.TypeInt64:
		compressField(s, newGrid(f), field.Slice[int64](f))
	case format.TypeFloat32:
		compressField(s, newGrid(f), field.Slice[float32](f))
	case format.TypeFloat64:
		compressField(s, newGrid(f), field.Slice[float64](f))
	default:
		return 0
	}
	s.bs.Flush()

	return s.bs.Size()
}

// Decompress decompresses f from the bit stream at its current position and
// aligns the stream to the next word.
//
// ExecThreads decompression requires fixed-rate mode, where the position of
// every block is known in advance.
//
// Returns:
//   - int: The number of bytes consumed, or 0 if f is invalid, holds no data,
//     the parameters are invalid or the execution policy cannot decompress
//     this stream
func (s *Stream) Decompress(f *field.Field) int {
	if !s.ready(f) {
		return 0
	}
	if s.exec.Policy == format.ExecThreads && s.params.Mode() != format.ModeFixedRate {
		s.logger.Debug("threaded decompression requires fixed-rate mode",
			zap.Stringer("mode", s.params.Mode()))

		return 0
	}

	switch f.Type {
	case format.TypeInt32:
		decompressField(s, newGrid(f), field.Slice[int32](f))
	case format.TypeInt64:
		decompressField(s, newGrid(f), field.Slice[int64](f))
	case format.TypeFloat32:
		decompressField(s, newGrid(f), field.Slice[float32](f))
	case format.TypeFloat64:
		decompressField(s, newGrid(f), field.Slice[float64](f))
	default:
		return 0
	}
	s.bs.Align()

	return s.bs.Size()
}

func (s *Stream) ready(f *field.Field) bool {
	if s.bs == nil || f == nil || f.Data == nil {
		return false
	}
	if s.params.Validate() != nil {
		return false
	}
	if err := f.Validate(); err != nil {
		s.logger.Debug("rejecting field", zap.Error(err))
		return false
	}

	return true
}

func compressField[T codec.Scalar](s *Stream, g grid, data []T) {
	if s.exec.Policy != format.ExecThreads {
		encodeBlocks(s.bs, s.params, g, data, 0, g.count())
		return
	}

	ranges := s.chunks(g.count())
	blockBits := codec.MaxBlockBits(s.params, codec.TypeOf[T](), g.dims)
	parts := make([]*bitstream.Bitstream, len(ranges))
	lengths := make([]uint64, len(ranges))
	releases := make([]func(), len(ranges))

	var eg errgroup.Group
	eg.SetLimit(s.threads())
	for i, r := range ranges {
		eg.Go(func() error {
			words := ints.CeilDiv((r[1]-r[0])*blockBits, bitstream.WordBits)
			buf, release := pool.GetChunkBuffer(words * bitstream.WordBytes)
			releases[i] = release
			part := bitstream.New(buf)
			encodeBlocks(part, s.params, g, data, r[0], r[1])
			lengths[i] = part.WTell()
			part.Flush()
			part.Rewind()
			parts[i] = part

			return nil
		})
	}
	_ = eg.Wait()

	for i, part := range parts {
		bitstream.Copy(s.bs, part, lengths[i])
		releases[i]()
	}
	s.logger.Debug("compressed in parallel",
		zap.Int("blocks", g.count()),
		zap.Int("chunks", len(ranges)),
		zap.Int("threads", s.threads()))
}

func decompressField[T codec.Scalar](s *Stream, g grid, data []T) {
	if s.exec.Policy != format.ExecThreads {
		decodeBlocks(s.bs, s.params, g, data, 0, g.count())
		return
	}

	base := s.bs.RTell()
	blockBits := uint64(s.params.MaxBits)
	ranges := s.chunks(g.count())

	var eg errgroup.Group
	eg.SetLimit(s.threads())
	for _, r := range ranges {
		eg.Go(func() error {
			part := s.bs.Clone()
			part.RSeek(base + uint64(r[0])*blockBits)
			decodeBlocks(part, s.params, g, data, r[0], r[1])

			return nil
		})
	}
	_ = eg.Wait()

	s.bs.RSeek(base + uint64(g.count())*blockBits)
	s.logger.Debug("decompressed in parallel",
		zap.Int("blocks", g.count()),
		zap.Int("chunks", len(ranges)))
}

func encodeBlocks[T codec.Scalar](bs *bitstream.Bitstream, p codec.Params, g grid, data []T, from, to int) {
	c := codec.For[T]()
	var scratch [codec.MaxBlockSize]T
	block := scratch[:format.BlockSize(g.dims)]
	for b := from; b < to; b++ {
		off, n := g.locate(b)
		if n.Full(g.dims) {
			codec.Gather(block, data, off, g.dims, g.st)
		} else {
			codec.GatherPartial(block, data, off, g.dims, g.st, n)
		}
		c.EncodeBlock(bs, p, g.dims, block)
	}
}

func decodeBlocks[T codec.Scalar](bs *bitstream.Bitstream, p codec.Params, g grid, data []T, from, to int) {
	c := codec.For[T]()
	var scratch [codec.MaxBlockSize]T
	block := scratch[:format.BlockSize(g.dims)]
	for b := from; b < to; b++ {
		off, n := g.locate(b)
		c.DecodeBlock(bs, p, g.dims, block)
		if n.Full(g.dims) {
			codec.Scatter(data, block, off, g.dims, g.st)
		} else {
			codec.ScatterPartial(data, block, off, g.dims, g.st, n)
		}
	}
}
