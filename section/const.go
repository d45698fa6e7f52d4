package section

import "github.com/arloliu/zfp/format"

// zfp header magic, written 8 bits at a time.
const (
	MagicZ = 'z'
	MagicF = 'f'
	MagicP = 'p'
)

// ArrayHeaderBits is the size of the header of a compressed array:
// magic, metadata and a short mode code.
const ArrayHeaderBits = format.MagicBits + format.MetaBits + format.ModeShortBits

// ArrayHeaderSize is ArrayHeaderBits in bytes.
const ArrayHeaderSize = ArrayHeaderBits / 8

const (
	// Bit masks of BlobFlag.Options
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0)
	ReservedBitsMask = 0x000E // Mask for reserved bits (bits 1-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicBlobV1Opt is the version 1 magic number of the blob envelope.
	MagicBlobV1Opt = 0xEC10
)

// offset and section sizes of a blob envelope
const (
	HeaderSize    = 32         // fixed envelope header size in bytes
	PayloadOffset = HeaderSize // byte offset where the payload starts
)
