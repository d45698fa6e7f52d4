package codec

import (
	"math"

	"github.com/arloliu/zfp/bitstream"
	"github.com/arloliu/zfp/format"
)

type float interface {
	float32 | float64
}

// floatCodec codes blocks of float32 or float64 values by converting them to
// block-floating-point integers of the same width.
type floatCodec[F float, I signed, U unsigned] struct {
	ints     intCoder[I, U]
	ebits    uint
	ebias    int
	toBits   func(F) I
	fromBits func(I) F
}

func newFloat32Codec() floatCodec[float32, int32, uint32] {
	return floatCodec[float32, int32, uint32]{
		ints:     newIntCoder[int32, uint32](format.TypeFloat32),
		ebits:    ebitsFloat32,
		ebias:    ebiasFloat32,
		toBits:   func(f float32) int32 { return int32(math.Float32bits(f)) },
		fromBits: func(i int32) float32 { return math.Float32frombits(uint32(i)) },
	}
}

func newFloat64Codec() floatCodec[float64, int64, uint64] {
	return floatCodec[float64, int64, uint64]{
		ints:     newIntCoder[int64, uint64](format.TypeFloat64),
		ebits:    ebitsFloat64,
		ebias:    ebiasFloat64,
		toBits:   func(f float64) int64 { return int64(math.Float64bits(f)) },
		fromBits: func(i int64) float64 { return math.Float64frombits(uint64(i)) },
	}
}

func (c floatCodec[F, I, U]) Type() format.ScalarType {
	return c.ints.typ
}

// exponent returns e such that |x| < 2^e, clamped to the smallest normal exponent.
func (c floatCodec[F, I, U]) exponent(x F) int {
	if x > 0 {
		_, e := math.Frexp(float64(x))
		return max(e, 1-c.ebias)
	}

	return -c.ebias
}

func (c floatCodec[F, I, U]) maxExponent(block []F) int {
	var m F
	for _, v := range block {
		if v < 0 {
			v = -v
		}
		if v > m {
			m = v
		}
	}

	return c.exponent(m)
}

// precision returns the number of bit planes to code for a block whose
// largest exponent is emax.
func precision(emax, maxprec, minexp, dims int) int {
	return min(maxprec, max(0, emax-minexp+2*(dims+1)))
}

// fwdCast aligns the block to emax and converts it to integers with two bits
// of headroom.
func (c floatCodec[F, I, U]) fwdCast(iblock []I, block []F, emax int) {
	shift := int(c.ints.intprec) - 2 - emax
	for i, v := range block {
		iblock[i] = I(math.Ldexp(float64(v), shift))
	}
}

func (c floatCodec[F, I, U]) invCast(block []F, iblock []I, emax int) {
	shift := emax - (int(c.ints.intprec) - 2)
	for i, v := range iblock {
		block[i] = F(math.Ldexp(float64(v), shift))
	}
}

// castIsExact converts block to integers and reports whether converting back
// reproduces every value bit for bit.
func (c floatCodec[F, I, U]) castIsExact(iblock []I, block []F, emax int) bool {
	c.fwdCast(iblock, block, emax)

	shift := emax - (int(c.ints.intprec) - 2)
	for i, v := range iblock {
		if c.toBits(F(math.Ldexp(float64(v), shift))) != c.toBits(block[i]) {
			return false
		}
	}

	return true
}

// reinterpret maps the sign-magnitude bit patterns of block to two's
// complement integers of the same order. The mapping is its own inverse.
func (c floatCodec[F, I, U]) reinterpret(iblock []I, block []F) {
	mask := I(^U(0) >> 1)
	for i, v := range block {
		x := c.toBits(v)
		if x < 0 {
			x ^= mask
		}
		iblock[i] = x
	}
}

func (c floatCodec[F, I, U]) uninterpret(block []F, iblock []I) {
	mask := I(^U(0) >> 1)
	for i, x := range iblock {
		if x < 0 {
			x ^= mask
		}
		block[i] = c.fromBits(x)
	}
}

func (c floatCodec[F, I, U]) EncodeBlock(s *bitstream.Bitstream, p Params, dims int, block []F) int {
	block = block[:format.BlockSize(dims)]
	if p.Reversible() {
		return c.revEncode(s, p, dims, block)
	}

	n := 1
	emax := c.maxExponent(block)
	maxprec := precision(emax, p.MaxPrec, p.MinExp, dims)
	e := 0
	if maxprec > 0 {
		e = emax + c.ebias
	}

	if e > 0 {
		// a one bit followed by the biased common exponent
		n += int(c.ebits)
		s.WriteBits(2*uint64(e)+1, uint(n))

		var ib [MaxBlockSize]I
		iblock := ib[:len(block)]
		c.fwdCast(iblock, block, emax)

		return n + c.ints.encodeBlock(s, p.MinBits-n, p.MaxBits-n, maxprec, dims, iblock)
	}

	// a single zero bit stands for a block that codes to all zeros
	s.WriteBit(0)
	if p.MinBits > n {
		s.Pad(uint64(p.MinBits - n))
		n = p.MinBits
	}

	return n
}

func (c floatCodec[F, I, U]) DecodeBlock(s *bitstream.Bitstream, p Params, dims int, block []F) int {
	block = block[:format.BlockSize(dims)]
	if p.Reversible() {
		return c.revDecode(s, p, dims, block)
	}

	n := 1
	if s.ReadBit() != 0 {
		emax := int(s.ReadBits(c.ebits)) - c.ebias
		maxprec := precision(emax, p.MaxPrec, p.MinExp, dims)
		n += int(c.ebits)

		var ib [MaxBlockSize]I
		iblock := ib[:len(block)]
		n += c.ints.decodeBlock(s, p.MinBits-n, p.MaxBits-n, maxprec, dims, iblock)
		c.invCast(block, iblock, emax)

		return n
	}

	clear(block)
	if p.MinBits > n {
		s.Skip(uint64(p.MinBits - n))
		n = p.MinBits
	}

	return n
}

// revEncode codes a block losslessly. Two tag bits select between an exact
// block-floating-point conversion (01) and reinterpreted bit patterns (11);
// a single zero bit stands for a block of positive zeros.
func (c floatCodec[F, I, U]) revEncode(s *bitstream.Bitstream, p Params, dims int, block []F) int {
	var ib [MaxBlockSize]I
	iblock := ib[:len(block)]

	n := 0
	emax := c.maxExponent(block)
	if c.castIsExact(iblock, block, emax) {
		e := emax + c.ebias
		if e == 0 {
			s.WriteBit(0)
			n = 1
			if p.MinBits > n {
				s.Pad(uint64(p.MinBits - n))
				n = p.MinBits
			}

			return n
		}
		s.WriteBits(1, 2)
		s.WriteBits(uint64(e), c.ebits)
		n += 2 + int(c.ebits)
	} else {
		c.reinterpret(iblock, block)
		s.WriteBits(3, 2)
		n += 2
	}

	return n + c.ints.revEncodeBlock(s, p.MinBits-n, p.MaxBits-n, dims, iblock)
}

func (c floatCodec[F, I, U]) revDecode(s *bitstream.Bitstream, p Params, dims int, block []F) int {
	n := 1
	if s.ReadBit() == 0 {
		clear(block)
		if p.MinBits > n {
			s.Skip(uint64(p.MinBits - n))
			n = p.MinBits
		}

		return n
	}

	var ib [MaxBlockSize]I
	iblock := ib[:len(block)]

	n++
	if s.ReadBit() != 0 {
		n += c.ints.revDecodeBlock(s, p.MinBits-n, p.MaxBits-n, dims, iblock)
		c.uninterpret(block, iblock)

		return n
	}

	emax := int(s.ReadBits(c.ebits)) - c.ebias
	n += int(c.ebits)
	n += c.ints.revDecodeBlock(s, p.MinBits-n, p.MaxBits-n, dims, iblock)
	c.invCast(block, iblock, emax)

	return n
}
