package stream

import (
	"go.uber.org/zap"

	"github.com/arloliu/zfp/field"
	"github.com/arloliu/zfp/format"
	"github.com/arloliu/zfp/section"
)

// WriteHeader writes the parts of a zfp header selected by mask at the
// current position: magic, the metadata of f and the mode of the stream.
//
// Returns:
//   - int: Number of bits written, or 0 if metadata was requested and f
//     cannot be described
func (s *Stream) WriteHeader(f *field.Field, mask uint) int {
	meta := uint64(0)
	if mask&format.HeaderMeta != 0 {
		meta = f.Metadata()
	}

	return section.WriteZFPHeader(s.bs, meta, s.Mode(), mask)
}

// ReadHeader reads the parts of a zfp header selected by mask, restoring the
// type and extents of f and the parameters of the stream.
//
// Returns:
//   - int: Number of bits read, or 0 if the magic, metadata or mode is invalid
func (s *Stream) ReadHeader(f *field.Field, mask uint) int {
	h, bits := section.ReadZFPHeader(s.bs, mask)
	if bits == 0 {
		s.logger.Debug("zfp header magic mismatch")
		return 0
	}

	if mask&format.HeaderMeta != 0 && !f.SetMetadata(h.Meta) {
		s.logger.Debug("invalid zfp header metadata", zap.Uint64("meta", h.Meta))
		return 0
	}
	if mask&format.HeaderMode != 0 && s.SetMode(h.Mode) == format.ModeNull {
		s.logger.Debug("invalid zfp header mode", zap.Uint64("mode", h.Mode))
		return 0
	}

	return bits
}
