package codec

import (
	"fmt"
	"math"

	"github.com/arloliu/zfp/errs"
	"github.com/arloliu/zfp/format"
	"github.com/arloliu/zfp/internal/ints"
)

// Short mode codes: [0, 2048) hold maxbits-1, [2048, 2176) hold maxprec-1,
// 2176 is reversible and [2177, 4094] hold minexp-MinExp.
const (
	shortRateEnd      = 2048
	shortPrecisionEnd = shortRateEnd + 128
	shortReversible   = shortPrecisionEnd
	shortAccuracyBase = shortPrecisionEnd + 1
	maxShortMinExp    = 843

	longMinExpBias = 16495 // bias of the 15-bit minexp field of a long code
	longModeTag    = 0xfff // low 12 bits of every long code
	longMask15     = (1 << 15) - 1
	longMask7      = (1 << 7) - 1
	shortModeMask  = (1 << format.ModeShortBits) - 1
)

// Params is the compression parameter tuple bounding the encoding of every block.
//
// The compression mode is not stored: it is derived from the four values by
// Mode, so a tuple always has exactly one mode.
type Params struct {
	MinBits int // minimum number of bits written per block
	MaxBits int // maximum number of bits written per block
	MaxPrec int // maximum number of bit planes encoded
	MinExp  int // smallest bit plane exponent encoded; below format.MinExp selects reversible coding
}

// DefaultParams returns the parameters of a freshly opened stream.
//
// The defaults impose no bound and classify as expert mode.
func DefaultParams() Params {
	return Params{
		MinBits: format.MinBits,
		MaxBits: format.MaxBits,
		MaxPrec: format.MaxPrec,
		MinExp:  format.MinExp,
	}
}

// RateParams returns fixed-rate parameters for the given rate in bits per value.
//
// The number of bits per block is round(rate * 4^dims), raised to the size of
// the block exponent header for floating-point types, and rounded up to a
// whole stream word when align is set (required for random-access writes).
//
// Parameters:
//   - rate: Target bits per value
//   - typ: Scalar type of the data
//   - dims: Dimensionality (1-4)
//   - align: Round the block size up to a multiple of 64 bits
//
// Returns:
//   - Params: Fixed-rate parameters
//   - float64: The rate actually achieved
func RateParams(rate float64, typ format.ScalarType, dims int, align bool) (Params, float64) {
	n := format.BlockSize(dims)
	bits := int(math.Floor(float64(n)*rate + 0.5))
	if bits < 0 {
		bits = 0
	}

	switch typ {
	case format.TypeFloat32:
		bits = max(bits, 1+ebitsFloat32)
	case format.TypeFloat64:
		bits = max(bits, 1+ebitsFloat64)
	}

	if align {
		bits = (bits + wordBits - 1) &^ (wordBits - 1)
	}

	p := Params{
		MinBits: bits,
		MaxBits: bits,
		MaxPrec: format.MaxPrec,
		MinExp:  format.MinExp,
	}

	return p, float64(bits) / float64(n)
}

// PrecisionParams returns fixed-precision parameters encoding at most prec bit planes.
// prec is capped at format.MaxPrec; a non-positive prec selects format.MaxPrec.
func PrecisionParams(prec int) Params {
	if prec <= 0 {
		prec = format.MaxPrec
	}

	return Params{
		MinBits: format.MinBits,
		MaxBits: format.MaxBits,
		MaxPrec: min(prec, format.MaxPrec),
		MinExp:  format.MinExp,
	}
}

// AccuracyParams returns fixed-accuracy parameters for an absolute error tolerance.
//
// The smallest encoded bit plane is emin where 2^emin <= tolerance < 2^(emin+1).
// A non-positive tolerance keeps every bit plane (format.MinExp).
//
// Returns:
//   - Params: Fixed-accuracy parameters
//   - float64: The tolerance actually honored, 2^emin (0 for a non-positive tolerance)
func AccuracyParams(tolerance float64) (Params, float64) {
	emin := format.MinExp
	if tolerance > 0 {
		_, e := math.Frexp(tolerance)
		emin = e - 1
	}

	p := Params{
		MinBits: format.MinBits,
		MaxBits: format.MaxBits,
		MaxPrec: format.MaxPrec,
		MinExp:  emin,
	}
	if tolerance > 0 {
		return p, math.Ldexp(1, emin)
	}

	return p, 0
}

// ReversibleParams returns the parameters of lossless compression.
func ReversibleParams() Params {
	return Params{
		MinBits: format.MinBits,
		MaxBits: format.MaxBits,
		MaxPrec: format.MaxPrec,
		MinExp:  format.MinExp - 1,
	}
}

// Validate reports whether the tuple is usable for coding.
//
// Returns:
//   - error: errs.ErrInvalidParams if minbits > maxbits or maxprec is outside [1, 64]
func (p Params) Validate() error {
	if p.MinBits < 0 || p.MinBits > p.MaxBits {
		return fmt.Errorf("%w: minbits %d > maxbits %d", errs.ErrInvalidParams, p.MinBits, p.MaxBits)
	}
	if p.MaxPrec < 1 || p.MaxPrec > format.MaxPrec {
		return fmt.Errorf("%w: maxprec %d outside [1, %d]", errs.ErrInvalidParams, p.MaxPrec, format.MaxPrec)
	}

	return nil
}

// Reversible reports whether blocks are coded losslessly.
func (p Params) Reversible() bool {
	return p.MinExp < format.MinExp
}

// Mode classifies the tuple.
//
// The checks run in order: an invalid tuple is null, the defaults are expert,
// then fixed-rate, fixed-precision, fixed-accuracy and reversible are tried.
// Any other valid tuple is expert.
func (p Params) Mode() format.Mode {
	if p.Validate() != nil {
		return format.ModeNull
	}

	if p == DefaultParams() {
		return format.ModeExpert
	}

	unbounded := p.MinBits <= format.MinBits && p.MaxBits >= format.MaxBits
	switch {
	case p.MinBits == p.MaxBits && p.MaxBits >= 1 && p.MaxBits <= format.MaxBits &&
		p.MaxPrec >= format.MaxPrec && p.MinExp <= format.MinExp:
		return format.ModeFixedRate
	case unbounded && p.MinExp == format.MinExp:
		return format.ModeFixedPrecision
	case unbounded && p.MaxPrec >= format.MaxPrec && p.MinExp >= format.MinExp:
		return format.ModeFixedAccuracy
	case unbounded && p.MaxPrec >= format.MaxPrec && p.MinExp < format.MinExp:
		return format.ModeReversible
	}

	return format.ModeExpert
}

// Code returns the compact encoding of the tuple.
//
// Canonical fixed-rate (maxbits <= 2048), fixed-precision, fixed-accuracy
// (minexp <= 843) and reversible tuples map to a 12-bit short code no larger
// than format.ModeShortMax. Every other tuple maps to a 64-bit long code
// whose low 12 bits are all ones.
func (p Params) Code() uint64 {
	switch p.Mode() {
	case format.ModeFixedRate:
		if p.MaxBits <= shortRateEnd && p == rateTuple(p.MaxBits) {
			return uint64(p.MaxBits - 1)
		}
	case format.ModeFixedPrecision:
		if p == PrecisionParams(p.MaxPrec) {
			return uint64(p.MaxPrec-1) + shortRateEnd
		}
	case format.ModeFixedAccuracy:
		if p.MinExp <= maxShortMinExp && p == accuracyTuple(p.MinExp) {
			return uint64(p.MinExp-format.MinExp) + shortAccuracyBase
		}
	case format.ModeReversible:
		if p == ReversibleParams() {
			return shortReversible
		}
	}

	minbits := uint64(ints.Clamp(p.MinBits, 1, 1<<15) - 1)
	maxbits := uint64(ints.Clamp(p.MaxBits, 1, 1<<15) - 1)
	maxprec := uint64(ints.Clamp(p.MaxPrec, 1, 1<<7) - 1)
	minexp := uint64(ints.Clamp(p.MinExp+longMinExpBias, 0, longMask15))

	code := minexp
	code = code<<7 | maxprec
	code = code<<15 | maxbits
	code = code<<15 | minbits
	code = code<<12 | longModeTag

	return code
}

// ParamsFromCode decodes a short or long mode code produced by Params.Code.
//
// Parameters:
//   - code: 12-bit short code (<= format.ModeShortMax) or 64-bit long code
//
// Returns:
//   - Params: The decoded tuple; its Mode is null if the code is malformed
func ParamsFromCode(code uint64) Params {
	if code <= format.ModeShortMax {
		switch {
		case code < shortRateEnd:
			return rateTuple(int(code) + 1)
		case code < shortPrecisionEnd:
			return Params{
				MinBits: format.MinBits,
				MaxBits: format.MaxBits,
				MaxPrec: int(code) + 1 - shortRateEnd,
				MinExp:  format.MinExp,
			}
		case code == shortReversible:
			return ReversibleParams()
		default:
			return accuracyTuple(int(code) + format.MinExp - shortAccuracyBase)
		}
	}

	code >>= 12
	minbits := int(code&longMask15) + 1
	code >>= 15
	maxbits := int(code&longMask15) + 1
	code >>= 15
	maxprec := int(code&longMask7) + 1
	code >>= 7
	minexp := int(code&longMask15) - longMinExpBias

	return Params{MinBits: minbits, MaxBits: maxbits, MaxPrec: maxprec, MinExp: minexp}
}

// IsShortCode reports whether a mode code fits in format.ModeShortBits bits.
func IsShortCode(code uint64) bool {
	return code <= format.ModeShortMax && code&shortModeMask == code
}

func rateTuple(bits int) Params {
	return Params{MinBits: bits, MaxBits: bits, MaxPrec: format.MaxPrec, MinExp: format.MinExp}
}

func accuracyTuple(minexp int) Params {
	return Params{MinBits: format.MinBits, MaxBits: format.MaxBits, MaxPrec: format.MaxPrec, MinExp: minexp}
}

// String renders the tuple for logs and errors.
func (p Params) String() string {
	return fmt.Sprintf("%s{minbits=%d maxbits=%d maxprec=%d minexp=%d}",
		p.Mode(), p.MinBits, p.MaxBits, p.MaxPrec, p.MinExp)
}
