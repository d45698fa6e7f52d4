// Package section defines the binary layouts shared by zfp streams and blobs.
//
// It covers two structures:
//
//  1. The zfp header: a bit-level record written at the current position of
//     a bit stream, selectable by mask.
//  2. The blob envelope header: a fixed 32-byte record in front of a payload
//     holding a zfp stream or a compressed array.
//
// # zfp Header
//
// The zfp header is written least significant bit first through the bit
// stream, in this order:
//
//	Bits   | Part  | Content
//	-------|-------|-----------------------------------------------------
//	32     | MAGIC | 'z', 'f', 'p', codec version (8 bits each)
//	52     | META  | type-1 (2), dims-1 (2), extents-1 (48 / 24x2 / 16x3 / 12x4)
//	12/64  | MODE  | short mode code, or long code whose low 12 bits are 0xfff
//
// A reader consumes 12 mode bits and reads the remaining 52 only if the
// value exceeds format.ModeShortMax. A full header is at most 148 bits.
// Compressed arrays use a 96-bit (12-byte) header with a short mode.
//
// # Envelope Header
//
//	Bytes  | Field           | Type   | Description
//	-------|-----------------|--------|----------------------------------
//	0-1    | Options         | uint16 | Endianness bit, magic number
//	2      | Kind            | uint8  | Payload kind (stream, array)
//	3      | CompressionType | uint8  | Secondary compression of the payload
//	4-11   | RawSize         | uint64 | Payload size before secondary compression
//	12-19  | StoredSize      | uint64 | Payload size as stored
//	20-27  | Checksum        | uint64 | xxHash64 of the raw payload
//	28-31  | Reserved        | uint32 | Must be zero
//
// Options is always little-endian; the remaining fields follow the
// endianness bit.
//
// # Thread Safety
//
// All types in this package are value types and are safe for concurrent use.
package section
