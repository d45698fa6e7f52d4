// Package stream implements the zfp compression stream: a parameter tuple,
// an execution policy and a bit stream, plus the block loops that compress a
// field into the bit stream and decompress it back.
//
// Example:
//
//	buf := make([]byte, s.MaximumSize(f))
//	s := stream.Open(bitstream.New(buf))
//	s.SetRate(8, format.TypeFloat64, 2, false)
//	n := s.Compress(f)
//	compressed := buf[:n]
package stream

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/arloliu/zfp/bitstream"
	"github.com/arloliu/zfp/codec"
	"github.com/arloliu/zfp/errs"
	"github.com/arloliu/zfp/field"
	"github.com/arloliu/zfp/format"
)

// Execution describes how a stream dispatches its block loop.
type Execution struct {
	Policy format.ExecPolicy
	// Threads is the number of goroutines for ExecThreads; 0 means GOMAXPROCS.
	Threads int
	// ChunkSize is the number of blocks per goroutine task; 0 means
	// four chunks per thread.
	ChunkSize int
}

// Stream couples compression parameters with the bit stream that holds the
// compressed data. A Stream is not safe for concurrent use.
type Stream struct {
	params codec.Params
	exec   Execution
	bs     *bitstream.Bitstream
	logger *zap.Logger
}

// Open returns a stream with default (expert, unbounded) parameters and
// serial execution over bs. bs may be nil and attached later.
func Open(bs *bitstream.Bitstream) *Stream {
	return &Stream{
		params: codec.DefaultParams(),
		exec:   Execution{Policy: format.ExecSerial},
		bs:     bs,
		logger: zap.NewNop(),
	}
}

// Close detaches the bit stream. The bit stream itself is not closed.
func (s *Stream) Close() {
	s.bs = nil
}

// Clone returns a stream with the same parameters and execution policy and
// a cloned bit stream: both cursors address the same bytes.
func (s *Stream) Clone() *Stream {
	c := *s
	if s.bs != nil {
		c.bs = s.bs.Clone()
	}

	return &c
}

// Bitstream returns the attached bit stream.
func (s *Stream) Bitstream() *bitstream.Bitstream {
	return s.bs
}

// SetBitstream replaces the attached bit stream.
func (s *Stream) SetBitstream(bs *bitstream.Bitstream) {
	s.bs = bs
}

// SetLogger sets the logger used for debug output; nil restores the no-op logger.
func (s *Stream) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s.logger = logger
}

// Rewind positions the bit stream at its beginning.
func (s *Stream) Rewind() {
	s.bs.Rewind()
}

// Flush writes out any buffered bits and returns the number of padding bits.
func (s *Stream) Flush() uint64 {
	return s.bs.Flush()
}

// Align advances the read cursor to the next word boundary.
func (s *Stream) Align() {
	s.bs.Align()
}

// CompressedSize returns the number of bytes of compressed data written so
// far, counting whole words. Call Flush first to include buffered bits.
func (s *Stream) CompressedSize() int {
	if s.bs == nil {
		return 0
	}

	return s.bs.Size()
}

// Params returns the current parameter tuple.
func (s *Stream) Params() codec.Params {
	return s.params
}

// SetParams sets the parameter tuple in expert mode.
//
// Returns:
//   - error: errs.ErrInvalidParams if minbits > maxbits or maxprec is outside
//     [1, 64]; the stream is left unchanged
func (s *Stream) SetParams(minbits, maxbits, maxprec, minexp int) error {
	p := codec.Params{MinBits: minbits, MaxBits: maxbits, MaxPrec: maxprec, MinExp: minexp}
	if err := p.Validate(); err != nil {
		return err
	}
	s.params = p

	return nil
}

// SetRate selects fixed-rate mode with rate bits per value.
//
// Parameters:
//   - rate: Target bits per value
//   - typ: Scalar type of the data
//   - dims: Dimensionality of the data
//   - align: Round blocks up to whole words for random-access writes
//
// Returns:
//   - float64: The rate actually used
func (s *Stream) SetRate(rate float64, typ format.ScalarType, dims int, align bool) float64 {
	p, achieved := codec.RateParams(rate, typ, dims, align)
	s.params = p

	return achieved
}

// Rate returns the number of bits per value of a fixed-rate stream, or 0.
func (s *Stream) Rate(dims int) float64 {
	if s.params.Mode() != format.ModeFixedRate {
		return 0
	}

	return float64(s.params.MaxBits) / float64(format.BlockSize(dims))
}

// SetPrecision selects fixed-precision mode and returns the precision used. A
// non-positive prec keeps every bit plane.
func (s *Stream) SetPrecision(prec int) int {
	s.params = codec.PrecisionParams(prec)
	return s.params.MaxPrec
}

// SetAccuracy selects fixed-accuracy mode and returns the tolerance honored.
func (s *Stream) SetAccuracy(tolerance float64) float64 {
	p, tol := codec.AccuracyParams(tolerance)
	s.params = p

	return tol
}

// SetReversible selects lossless compression.
func (s *Stream) SetReversible() {
	s.params = codec.ReversibleParams()
}

// CompressionMode classifies the current parameter tuple.
func (s *Stream) CompressionMode() format.Mode {
	return s.params.Mode()
}

// Mode returns the compact mode code of the current parameters.
func (s *Stream) Mode() uint64 {
	return s.params.Code()
}

// SetMode restores the parameters from a mode code.
//
// Returns:
//   - format.Mode: The mode of the restored tuple, or format.ModeNull if the
//     code is malformed (the stream is then left unchanged)
func (s *Stream) SetMode(code uint64) format.Mode {
	p := codec.ParamsFromCode(code)
	if p.Validate() != nil {
		return format.ModeNull
	}
	s.params = p

	return p.Mode()
}

// Execution returns the execution settings.
func (s *Stream) Execution() Execution {
	return s.exec
}

// SetExecution selects the execution policy.
//
// Returns:
//   - error: errs.ErrExecutionUnavailable for a policy without a dispatch entry
func (s *Stream) SetExecution(policy format.ExecPolicy) error {
	switch policy {
	case format.ExecSerial, format.ExecThreads:
		s.exec.Policy = policy
		return nil
	default:
		return fmt.Errorf("%w: %s", errs.ErrExecutionUnavailable, policy)
	}
}

// SetThreads sets the goroutine count of ExecThreads; 0 means GOMAXPROCS.
func (s *Stream) SetThreads(n int) {
	s.exec.Threads = max(n, 0)
}

// SetChunkSize sets the number of blocks per ExecThreads task; 0 selects
// four chunks per thread.
func (s *Stream) SetChunkSize(blocks int) {
	s.exec.ChunkSize = max(blocks, 0)
}

func (s *Stream) threads() int {
	if s.exec.Threads > 0 {
		return s.exec.Threads
	}

	return runtime.GOMAXPROCS(0)
}

// MaximumSize returns a byte count that is never exceeded when compressing f
// with the current parameters, including a full header.
//
// Returns:
//   - int: Buffer size in bytes, or 0 if f has no extents, an invalid type
//     or the parameters are invalid
func (s *Stream) MaximumSize(f *field.Field) int {
	dims := f.Dims()
	if dims == 0 || !f.Type.Valid() || s.params.Validate() != nil {
		return 0
	}

	bits := format.HeaderMaxBits + f.Blocks()*codec.MaxBlockBits(s.params, f.Type, dims)
	bits = (bits + bitstream.WordBits - 1) &^ (bitstream.WordBits - 1)

	return bits / 8
}
