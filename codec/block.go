package codec

import (
	"math/bits"

	"github.com/arloliu/zfp/bitstream"
	"github.com/arloliu/zfp/format"
)

// intCoder codes blocks of transformed integers. Lossy and reversible float
// coding both end here once a block has been converted to integers.
type intCoder[I signed, U unsigned] struct {
	typ     format.ScalarType
	intprec uint
	pbits   uint
}

func newIntCoder[I signed, U unsigned](typ format.ScalarType) intCoder[I, U] {
	c := intCoder[I, U]{typ: typ, intprec: uint(typ.Precision()), pbits: pbits32}
	if c.intprec == 64 {
		c.pbits = pbits64
	}

	return c
}

// budget turns a bit count that may have gone negative into a coding budget.
func budget(n int) uint {
	if n < 0 {
		return 0
	}

	return uint(n)
}

// encodeBlock transforms iblock in place and codes it lossily.
func (c intCoder[I, U]) encodeBlock(s *bitstream.Bitstream, minbits, maxbits, maxprec, dims int, iblock []I) int {
	var ub [MaxBlockSize]U
	u := ub[:len(iblock)]

	fwdXform(iblock, dims, fwdLift[I])
	fwdOrder(u, iblock, perms[dims])

	n := int(encodeInts(s, c.intprec, budget(maxbits), budget(maxprec), u))
	if n < minbits {
		s.Pad(uint64(minbits - n))
		n = minbits
	}

	return n
}

func (c intCoder[I, U]) decodeBlock(s *bitstream.Bitstream, minbits, maxbits, maxprec, dims int, iblock []I) int {
	var ub [MaxBlockSize]U
	u := ub[:len(iblock)]

	n := int(decodeInts(s, c.intprec, budget(maxbits), budget(maxprec), u))
	if n < minbits {
		s.Skip(uint64(minbits - n))
		n = minbits
	}

	invOrder(u, iblock, perms[dims])
	invXform(iblock, dims, invLift[I])

	return n
}

// revEncodeBlock transforms iblock in place and codes it losslessly. The
// number of bit planes needed is written first so that decoding stops at the
// lowest nonzero plane.
func (c intCoder[I, U]) revEncodeBlock(s *bitstream.Bitstream, minbits, maxbits, dims int, iblock []I) int {
	var ub [MaxBlockSize]U
	u := ub[:len(iblock)]

	fwdXform(iblock, dims, revFwdLift[I])
	fwdOrder(u, iblock, perms[dims])

	prec := max(revPrecision(u, c.intprec), 1)
	s.WriteBits(uint64(prec-1), c.pbits)

	n := int(c.pbits)
	n += int(encodeInts(s, c.intprec, budget(maxbits-n), prec, u))
	if n < minbits {
		s.Pad(uint64(minbits - n))
		n = minbits
	}

	return n
}

func (c intCoder[I, U]) revDecodeBlock(s *bitstream.Bitstream, minbits, maxbits, dims int, iblock []I) int {
	var ub [MaxBlockSize]U
	u := ub[:len(iblock)]

	prec := uint(s.ReadBits(c.pbits)) + 1
	n := int(c.pbits)
	n += int(decodeInts(s, c.intprec, budget(maxbits-n), prec, u))
	if n < minbits {
		s.Skip(uint64(minbits - n))
		n = minbits
	}

	invOrder(u, iblock, perms[dims])
	invXform(iblock, dims, revInvLift[I])

	return n
}

// revPrecision returns the number of bit planes from the top down to the
// lowest plane holding a one bit.
func revPrecision[U unsigned](u []U, intprec uint) uint {
	var m U
	for _, v := range u {
		m |= v
	}
	if m == 0 {
		return 0
	}

	return intprec - uint(bits.TrailingZeros64(uint64(m)))
}

// intCodec codes blocks of int32 or int64 values.
//
// Values should leave two bits of headroom (|x| < 2^30 for int32, 2^62 for
// int64); larger magnitudes may overflow the lossy transform.
type intCodec[I signed, U unsigned] struct {
	intCoder[I, U]
}

func (c intCodec[I, U]) Type() format.ScalarType {
	return c.typ
}

func (c intCodec[I, U]) EncodeBlock(s *bitstream.Bitstream, p Params, dims int, block []I) int {
	block = block[:format.BlockSize(dims)]
	var ib [MaxBlockSize]I
	iblock := ib[:len(block)]
	copy(iblock, block)

	if p.Reversible() {
		return c.revEncodeBlock(s, p.MinBits, p.MaxBits, dims, iblock)
	}

	return c.encodeBlock(s, p.MinBits, p.MaxBits, p.MaxPrec, dims, iblock)
}

func (c intCodec[I, U]) DecodeBlock(s *bitstream.Bitstream, p Params, dims int, block []I) int {
	block = block[:format.BlockSize(dims)]
	if p.Reversible() {
		return c.revDecodeBlock(s, p.MinBits, p.MaxBits, dims, block)
	}

	return c.decodeBlock(s, p.MinBits, p.MaxBits, p.MaxPrec, dims, block)
}
