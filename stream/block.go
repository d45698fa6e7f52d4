package stream

import (
	"github.com/arloliu/zfp/codec"
	"github.com/arloliu/zfp/format"
)

// EncodeBlock encodes one contiguous block of 4^dims values.
//
// Returns:
//   - int: Number of bits written
func EncodeBlock[T codec.Scalar](s *Stream, dims int, block []T) int {
	var scratch [codec.MaxBlockSize]T
	n := copy(scratch[:], block[:format.BlockSize(dims)])

	return codec.For[T]().EncodeBlock(s.bs, s.params, dims, scratch[:n])
}

// DecodeBlock decodes one block of 4^dims values into block.
//
// Returns:
//   - int: Number of bits read
func DecodeBlock[T codec.Scalar](s *Stream, dims int, block []T) int {
	return codec.For[T]().DecodeBlock(s.bs, s.params, dims, block[:format.BlockSize(dims)])
}

// EncodeBlockStrided encodes the block whose first value is data[off].
func EncodeBlockStrided[T codec.Scalar](s *Stream, dims int, data []T, off int, st codec.Strides) int {
	var scratch [codec.MaxBlockSize]T
	block := scratch[:format.BlockSize(dims)]
	codec.Gather(block, data, off, dims, st)

	return codec.For[T]().EncodeBlock(s.bs, s.params, dims, block)
}

// EncodePartialBlock encodes a boundary block with n valid values along each
// axis, padding the remainder.
func EncodePartialBlock[T codec.Scalar](s *Stream, dims int, data []T, off int, st codec.Strides, n codec.Extent) int {
	var scratch [codec.MaxBlockSize]T
	block := scratch[:format.BlockSize(dims)]
	codec.GatherPartial(block, data, off, dims, st, n)

	return codec.For[T]().EncodeBlock(s.bs, s.params, dims, block)
}

// DecodeBlockStrided decodes one block into the values whose first is data[off].
func DecodeBlockStrided[T codec.Scalar](s *Stream, dims int, data []T, off int, st codec.Strides) int {
	var scratch [codec.MaxBlockSize]T
	block := scratch[:format.BlockSize(dims)]
	bits := codec.For[T]().DecodeBlock(s.bs, s.params, dims, block)
	codec.Scatter(data, block, off, dims, st)

	return bits
}

// DecodePartialBlock decodes a boundary block and stores only its n valid
// values along each axis.
func DecodePartialBlock[T codec.Scalar](s *Stream, dims int, data []T, off int, st codec.Strides, n codec.Extent) int {
	var scratch [codec.MaxBlockSize]T
	block := scratch[:format.BlockSize(dims)]
	bits := codec.For[T]().DecodeBlock(s.bs, s.params, dims, block)
	codec.ScatterPartial(data, block, off, dims, st, n)

	return bits
}
