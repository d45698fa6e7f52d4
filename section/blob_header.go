package section

import (
	"github.com/arloliu/zfp/errs"
	"github.com/arloliu/zfp/format"
)

// BlobHeader represents the fixed-size header at the start of a blob.
type BlobHeader struct {
	// RawSize is the payload size before secondary compression.
	RawSize uint64 // byte offset 4-11
	// StoredSize is the payload size following the header.
	StoredSize uint64 // byte offset 12-19
	// Checksum is the xxHash64 of the raw payload.
	Checksum uint64 // byte offset 20-27

	// Flag is a packed field for options, payload kind and compression.
	Flag BlobFlag // byte offset 0-3
}

// NewBlobHeader creates a BlobHeader for the given payload kind.
// Sizes and checksum are set by the encoder.
func NewBlobHeader(kind BlobKind) *BlobHeader {
	return &BlobHeader{Flag: NewBlobFlag(kind)}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly 32 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 32 bytes, or flag validation errors
func (h *BlobHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// options are always little-endian so the endianness bit can be read first
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.Kind = BlobKind(data[2])
	h.Flag.CompressionType = format.CompressionType(data[3])

	engine := h.Flag.GetEndianEngine()
	h.RawSize = engine.Uint64(data[4:12])
	h.StoredSize = engine.Uint64(data[12:20])
	h.Checksum = engine.Uint64(data[20:28])

	if engine.Uint32(data[28:32]) != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	return h.Flag.Validate()
}

// Bytes serializes the BlobHeader into a byte slice.
func (h *BlobHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)
	h.WriteToSlice(b)

	return b
}

// WriteToSlice serializes the header into the first HeaderSize bytes of b.
func (h *BlobHeader) WriteToSlice(b []byte) {
	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = byte(h.Flag.Kind)
	b[3] = byte(h.Flag.CompressionType)
	engine.PutUint64(b[4:12], h.RawSize)
	engine.PutUint64(b[12:20], h.StoredSize)
	engine.PutUint64(b[20:28], h.Checksum)
	engine.PutUint32(b[28:32], 0)
}

// ParseBlobHeader parses a BlobHeader from the start of data.
//
// Parameters:
//   - data: Byte slice containing header (must be at least 32 bytes)
//
// Returns:
//   - BlobHeader: Parsed header struct
//   - error: ErrInvalidHeaderSize or flag validation errors
func ParseBlobHeader(data []byte) (BlobHeader, error) {
	if len(data) < HeaderSize {
		return BlobHeader{}, errs.ErrInvalidHeaderSize
	}

	h := BlobHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return BlobHeader{}, err
	}

	return h, nil
}
