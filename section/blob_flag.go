package section

import (
	"fmt"

	"github.com/arloliu/zfp/endian"
	"github.com/arloliu/zfp/errs"
	"github.com/arloliu/zfp/format"
)

// BlobKind identifies what a blob payload holds.
type BlobKind uint8

const (
	KindStream BlobKind = 0x1 // KindStream is a zfp stream with a full header.
	KindArray  BlobKind = 0x2 // KindArray is a compressed array header followed by its buffer.
)

// String returns the name of the kind.
func (k BlobKind) String() string {
	switch k {
	case KindStream:
		return "stream"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("BlobKind(%d)", uint8(k))
	}
}

var validCompressions = map[format.CompressionType]struct{}{
	format.CompressionNone: {},
	format.CompressionZstd: {},
	format.CompressionS2:   {},
	format.CompressionLZ4:  {},
}

// BlobFlag represents the packed flag field at the start of an envelope header.
type BlobFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bit 1-3 are reserved for future use, must be set to 0.
	// Bit 4-15 are the magic number identifying the envelope format (0xEC10).
	Options uint16

	// Kind is the payload kind.
	Kind BlobKind
	// CompressionType is the secondary compression applied to the payload.
	CompressionType format.CompressionType
}

// NewBlobFlag creates a little-endian flag for the given payload kind with
// no secondary compression.
func NewBlobFlag(kind BlobKind) BlobFlag {
	return BlobFlag{
		Options:         MagicBlobV1Opt,
		Kind:            kind,
		CompressionType: format.CompressionNone,
	}
}

// IsLittleEndian returns whether the header fields are little-endian.
func (f BlobFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the header fields are big-endian.
func (f BlobFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *BlobFlag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *BlobFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f BlobFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// IsValidMagicNumber checks if the magic number is valid.
func (f BlobFlag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicBlobV1Opt
}

// Validate checks if the flag contains valid values.
func (f BlobFlag) Validate() error {
	if !f.IsValidMagicNumber() {
		return errs.ErrInvalidMagic
	}
	if f.Options&ReservedBitsMask != 0 {
		return errs.ErrInvalidHeaderFlags
	}
	if f.Kind != KindStream && f.Kind != KindArray {
		return fmt.Errorf("%w: %s", errs.ErrInvalidBlobKind, f.Kind)
	}
	if _, ok := validCompressions[f.CompressionType]; !ok {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}

// GetEndianEngine returns the appropriate endian engine based on the flag.
func (f BlobFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
