package section

import (
	"github.com/arloliu/zfp/bitstream"
	"github.com/arloliu/zfp/format"
)

// ZFPHeader is the decoded content of a zfp header.
//
// Only the parts selected by the mask used to read it are meaningful.
type ZFPHeader struct {
	Version uint8  // codec version from the magic
	Meta    uint64 // packed field metadata
	Mode    uint64 // short or long mode code
}

// ModeBits returns the number of bits used to store mode.
func ModeBits(mode uint64) int {
	if mode > format.ModeShortMax {
		return format.ModeLongBits
	}

	return format.ModeShortBits
}

// WriteZFPHeader writes the parts of a zfp header selected by mask.
//
// Parameters:
//   - s: Destination stream, written at its current position
//   - meta: Packed field metadata (used with format.HeaderMeta)
//   - mode: Mode code (used with format.HeaderMode)
//   - mask: Combination of format.HeaderMagic, HeaderMeta and HeaderMode
//
// Returns:
//   - int: Number of bits written, 0 if meta is format.MetaNull while requested
func WriteZFPHeader(s *bitstream.Bitstream, meta, mode uint64, mask uint) int {
	if mask&format.HeaderMeta != 0 && meta == format.MetaNull {
		return 0
	}

	bits := 0
	if mask&format.HeaderMagic != 0 {
		s.WriteBits(MagicZ, 8)
		s.WriteBits(MagicF, 8)
		s.WriteBits(MagicP, 8)
		s.WriteBits(format.CodecVersion, 8)
		bits += format.MagicBits
	}
	if mask&format.HeaderMeta != 0 {
		s.WriteBits(meta, format.MetaBits)
		bits += format.MetaBits
	}
	if mask&format.HeaderMode != 0 {
		n := ModeBits(mode)
		s.WriteBits(mode, uint(n))
		bits += n
	}

	return bits
}

// ReadZFPHeader reads the parts of a zfp header selected by mask.
//
// The magic is verified byte by byte, including the codec version.
//
// Returns:
//   - ZFPHeader: The decoded parts
//   - int: Number of bits read, 0 if the magic does not match
func ReadZFPHeader(s *bitstream.Bitstream, mask uint) (ZFPHeader, int) {
	var h ZFPHeader
	bits := 0

	if mask&format.HeaderMagic != 0 {
		if s.ReadBits(8) != MagicZ || s.ReadBits(8) != MagicF || s.ReadBits(8) != MagicP {
			return h, 0
		}
		h.Version = uint8(s.ReadBits(8))
		if h.Version != format.CodecVersion {
			return h, 0
		}
		bits += format.MagicBits
	}
	if mask&format.HeaderMeta != 0 {
		h.Meta = s.ReadBits(format.MetaBits)
		bits += format.MetaBits
	}
	if mask&format.HeaderMode != 0 {
		h.Mode = s.ReadBits(format.ModeShortBits)
		bits += format.ModeShortBits
		if h.Mode > format.ModeShortMax {
			h.Mode += s.ReadBits(format.ModeLongBits-format.ModeShortBits) << format.ModeShortBits
			bits += format.ModeLongBits - format.ModeShortBits
		}
	}

	return h, bits
}
