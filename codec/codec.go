// Package codec implements the zfp block codec: the numerical procedure that
// turns one 4^d block of scalars into a bit sequence and back.
//
// Lossy coding of floating-point blocks works in four steps:
//  1. Block-floating-point conversion: values are aligned to the largest
//     exponent in the block and converted to integers.
//  2. A decorrelating lifting transform is applied along each axis.
//  3. Coefficients are reordered by total sequency and mapped to negabinary.
//  4. Bit planes are emitted from the most significant down with group
//     testing, stopping at the maxbits, maxprec or minexp bound.
//
// Integer blocks skip step 1. Reversible (lossless) coding replaces the
// lifting transform with an exactly invertible integer one, records the
// number of significant bit planes per block, and falls back to coding the
// raw bit patterns of a floating-point block when its block-floating-point
// conversion is not exact.
//
// Codecs are stateless. A Codec is selected per scalar type with For.
package codec

import (
	"github.com/arloliu/zfp/bitstream"
	"github.com/arloliu/zfp/format"
)

const (
	wordBits = bitstream.WordBits

	ebitsFloat32 = 8
	ebitsFloat64 = 11
	ebiasFloat32 = 127
	ebiasFloat64 = 1023

	pbits32 = 5 // bits recording the precision of a reversible 32-bit block
	pbits64 = 6 // bits recording the precision of a reversible 64-bit block

	// MaxDims is the largest dimensionality a block can have.
	MaxDims = 4
	// MaxBlockSize is the number of values in a block of MaxDims dimensions.
	MaxBlockSize = 1 << (2 * MaxDims)
)

// Scalar is the set of element types a block can hold.
type Scalar interface {
	int32 | int64 | float32 | float64
}

// Codec encodes and decodes single blocks of one scalar type.
//
// A block holds 4^dims values in raster order (x varies fastest). Both
// methods return the number of bits consumed from or written to the stream,
// which is at least p.MinBits and, for lossy modes, at most p.MaxBits.
type Codec[T Scalar] interface {
	// Type returns the scalar type handled by this codec.
	Type() format.ScalarType
	// EncodeBlock writes block to s. The block contents may be clobbered.
	EncodeBlock(s *bitstream.Bitstream, p Params, dims int, block []T) int
	// DecodeBlock reads one block from s into block.
	DecodeBlock(s *bitstream.Bitstream, p Params, dims int, block []T) int
}

var (
	int32Codec   = intCodec[int32, uint32]{intCoder: newIntCoder[int32, uint32](format.TypeInt32)}
	int64Codec   = intCodec[int64, uint64]{intCoder: newIntCoder[int64, uint64](format.TypeInt64)}
	float32Codec = newFloat32Codec()
	float64Codec = newFloat64Codec()
)

// For returns the codec for scalar type T.
//
// Example:
//
//	c := codec.For[float64]()
//	bits := c.EncodeBlock(bs, codec.ReversibleParams(), 2, block)
func For[T Scalar]() Codec[T] {
	var zero T
	var c any
	switch any(zero).(type) {
	case int32:
		c = int32Codec
	case int64:
		c = int64Codec
	case float32:
		c = float32Codec
	case float64:
		c = float64Codec
	}

	return c.(Codec[T])
}

// TypeOf returns the scalar type tag of T.
func TypeOf[T Scalar]() format.ScalarType {
	var zero T
	switch any(zero).(type) {
	case int32:
		return format.TypeInt32
	case int64:
		return format.TypeInt64
	case float32:
		return format.TypeFloat32
	case float64:
		return format.TypeFloat64
	}

	return format.TypeNone
}

// HeaderBits returns the number of bits preceding the bit planes of a
// non-empty lossy block of the given type (the exponent of a float block).
func HeaderBits(typ format.ScalarType) int {
	switch typ {
	case format.TypeFloat32:
		return 1 + ebitsFloat32
	case format.TypeFloat64:
		return 1 + ebitsFloat64
	}

	return 0
}

// MaxBlockBits returns a bound on the number of bits EncodeBlock can write for
// a block of the given type and dimensionality under p, independent of the
// block contents. The bound honors p.MinBits and p.MaxBits.
func MaxBlockBits(p Params, typ format.ScalarType, dims int) int {
	values := format.BlockSize(dims)
	prec := typ.Precision()

	hdr := HeaderBits(typ)
	if p.Reversible() {
		hdr = 2 + hdr + pbits32
		if prec == 64 {
			hdr++
		}
	} else {
		prec = min(prec, p.MaxPrec)
	}
	// each plane writes at most one bit per value plus one group test that
	// ends the plane, and each value joins the significant set once
	bits := hdr + values*prec + values + prec
	bits = min(bits, max(p.MaxBits, hdr))

	return max(bits, p.MinBits)
}
