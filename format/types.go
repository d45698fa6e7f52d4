// Package format defines the enumerations and wire constants shared by every
// layer of the zfp packages: scalar types, compression modes, execution
// policies, secondary compression types and the bit sizes of the header.
package format

import "fmt"

type (
	// ScalarType identifies the element type of a field or array.
	ScalarType uint8
	// Mode is the compression mode derived from a parameter tuple.
	Mode uint8
	// ExecPolicy selects how a stream dispatches block work.
	ExecPolicy uint8
	// CompressionType identifies a secondary byte compressor used by blobs.
	CompressionType uint8
)

const (
	TypeNone    ScalarType = 0x0 // TypeNone is the zero value, never valid in a header.
	TypeInt32   ScalarType = 0x1 // TypeInt32 is a 32-bit signed integer.
	TypeInt64   ScalarType = 0x2 // TypeInt64 is a 64-bit signed integer.
	TypeFloat32 ScalarType = 0x3 // TypeFloat32 is an IEEE single precision float.
	TypeFloat64 ScalarType = 0x4 // TypeFloat64 is an IEEE double precision float.
)

const (
	ModeNull           Mode = iota // ModeNull marks an invalid parameter tuple.
	ModeExpert                     // ModeExpert is any valid tuple that is not one of the named modes.
	ModeFixedRate                  // ModeFixedRate uses a constant number of bits per block.
	ModeFixedPrecision             // ModeFixedPrecision bounds the number of encoded bit planes.
	ModeFixedAccuracy              // ModeFixedAccuracy bounds the absolute error.
	ModeReversible                 // ModeReversible is lossless.
)

const (
	ExecSerial  ExecPolicy = iota // ExecSerial runs on the calling goroutine.
	ExecThreads                   // ExecThreads spreads chunks of blocks over goroutines.
	ExecCUDA                      // ExecCUDA is recognized but has no dispatch entry.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone stores the payload as is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Compression parameter limits.
const (
	MinBits = 1     // MinBits is the smallest meaningful per-block bit budget.
	MaxBits = 16658 // MaxBits is the largest block size in bits (4D reversible float64).
	MaxPrec = 64    // MaxPrec is the largest number of encodable bit planes.
	MinExp  = -1074 // MinExp is the exponent of the smallest float64 subnormal.
)

// Header layout.
const (
	CodecVersion  = 5   // CodecVersion is the block codec version recorded in the magic.
	MagicBits     = 32  // MagicBits is the size of 'z' 'f' 'p' + version.
	MetaBits      = 52  // MetaBits is the size of the packed field metadata.
	ModeShortBits = 12  // ModeShortBits is the size of a short mode code.
	ModeLongBits  = 64  // ModeLongBits is the size of a long mode code.
	HeaderMaxBits = 148 // HeaderMaxBits bounds the size of a full header.

	// ModeShortMax is the largest short mode code; 0xfff tags a long code.
	ModeShortMax = (1 << ModeShortBits) - 2

	HeaderMagic = 0x1 // HeaderMagic selects the magic word.
	HeaderMeta  = 0x2 // HeaderMeta selects field metadata.
	HeaderMode  = 0x4 // HeaderMode selects the compression mode.
	HeaderFull  = 0x7 // HeaderFull selects every header part.

	// MetaNull is returned when field metadata cannot be packed.
	MetaNull = ^uint64(0)
)

// BlockEdge is the number of samples along each axis of a block.
const BlockEdge = 4

// BlockSize returns the number of samples in a block of the given dimensionality.
func BlockSize(dims int) int {
	return 1 << (2 * uint(dims))
}

// Size returns the size in bytes of one scalar, or 0 for TypeNone.
func (t ScalarType) Size() int {
	switch t {
	case TypeInt32, TypeFloat32:
		return 4
	case TypeInt64, TypeFloat64:
		return 8
	default:
		return 0
	}
}

// Precision returns the number of bits of one scalar.
func (t ScalarType) Precision() int {
	return 8 * t.Size()
}

// IsFloat reports whether t is a floating-point type.
func (t ScalarType) IsFloat() bool {
	return t == TypeFloat32 || t == TypeFloat64
}

// Valid reports whether t names a supported scalar type.
func (t ScalarType) Valid() bool {
	return t >= TypeInt32 && t <= TypeFloat64
}

func (t ScalarType) String() string {
	switch t {
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	default:
		return "none"
	}
}

// ParseScalarType parses the short names used on the command line
// (i32, i64, f32, f64) as well as the full type names.
func ParseScalarType(s string) (ScalarType, error) {
	switch s {
	case "i32", "int32":
		return TypeInt32, nil
	case "i64", "int64":
		return TypeInt64, nil
	case "f32", "f", "float32", "float":
		return TypeFloat32, nil
	case "f64", "d", "float64", "double":
		return TypeFloat64, nil
	default:
		return TypeNone, fmt.Errorf("unknown scalar type %q", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeExpert:
		return "expert"
	case ModeFixedRate:
		return "fixed-rate"
	case ModeFixedPrecision:
		return "fixed-precision"
	case ModeFixedAccuracy:
		return "fixed-accuracy"
	case ModeReversible:
		return "reversible"
	default:
		return "null"
	}
}

func (p ExecPolicy) String() string {
	switch p {
	case ExecSerial:
		return "serial"
	case ExecThreads:
		return "threads"
	case ExecCUDA:
		return "cuda"
	default:
		return "unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType parses a case-sensitive lower-case compressor name.
func ParseCompressionType(s string) (CompressionType, error) {
	switch s {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}
