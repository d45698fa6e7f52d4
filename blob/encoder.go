package blob

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/zfp/array"
	"github.com/arloliu/zfp/bitstream"
	"github.com/arloliu/zfp/compress"
	"github.com/arloliu/zfp/errs"
	"github.com/arloliu/zfp/field"
	"github.com/arloliu/zfp/format"
	"github.com/arloliu/zfp/internal/hash"
	"github.com/arloliu/zfp/internal/pool"
	"github.com/arloliu/zfp/section"
	"github.com/arloliu/zfp/stream"
)

// EncodeStream compresses f into a stream blob. Without a mode option the
// stream uses expert mode with default (unbounded) parameters.
//
// Returns:
//   - []byte: The blob
//   - error: Field validation errors, invalid options, or errs.ErrInvalidParams
//     if the stream could not be written
func EncodeStream(f *field.Field, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	s := stream.Open(nil)
	if err := cfg.configure(s, f); err != nil {
		return nil, err
	}

	buf := make([]byte, s.MaximumSize(f))
	s.SetBitstream(bitstream.NewWithEngine(buf, cfg.engine()))
	if s.WriteHeader(f, format.HeaderFull) == 0 {
		return nil, errs.NewHeaderError(errs.MsgBadMeta)
	}
	n := s.Compress(f)
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidParams, s.Params())
	}

	cfg.logger.Debug("field compressed",
		zap.Stringer("type", f.Type),
		zap.Int("dims", f.Dims()),
		zap.Stringer("mode", s.CompressionMode()),
		zap.Int("bytes", n))

	return seal(section.KindStream, buf[:n], cfg)
}

// EncodeArray stores the header and compressed storage of a into an array
// blob. Dirty cached blocks are flushed first.
//
// Returns:
//   - []byte: The blob
//   - error: *errs.HeaderError if a cannot be described by a short header
func EncodeArray(a array.Array, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	h, err := a.Header()
	if err != nil {
		return nil, err
	}
	data := a.CompressedData()

	payload := make([]byte, 0, len(h)+len(data))
	payload = append(payload, h[:]...)
	payload = append(payload, data...)

	return seal(section.KindArray, payload, cfg)
}

// seal applies secondary compression to payload and prepends the envelope.
func seal(kind section.BlobKind, payload []byte, cfg *Config) ([]byte, error) {
	header := section.NewBlobHeader(kind)
	if cfg.bigEndian {
		header.Flag.WithBigEndian()
	}
	header.RawSize = uint64(len(payload))
	header.Checksum = hash.Checksum(payload)

	stored, typ, err := pack(payload, cfg)
	if err != nil {
		return nil, err
	}
	header.Flag.CompressionType = typ
	header.StoredSize = uint64(len(stored))

	bb := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(bb)

	bb.Grow(section.HeaderSize + len(stored))
	_, _ = bb.Write(header.Bytes())
	_, _ = bb.Write(stored)

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out, nil
}

// pack compresses payload with the configured codec, falling back to
// storing it as is when compression does not help.
func pack(payload []byte, cfg *Config) ([]byte, format.CompressionType, error) {
	if cfg.compression == format.CompressionNone || len(payload) == 0 {
		return payload, format.CompressionNone, nil
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, 0, err
	}
	out, st, err := compress.Measure(codec, cfg.compression, payload)
	if err != nil {
		return nil, 0, fmt.Errorf("%s payload compression: %w", cfg.compression, err)
	}
	if len(out) == 0 || len(out) >= len(payload) {
		cfg.logger.Debug("payload stored uncompressed",
			zap.Stringer("algorithm", cfg.compression),
			zap.Int("bytes", len(payload)))

		return payload, format.CompressionNone, nil
	}

	cfg.logger.Debug("payload compressed",
		zap.Stringer("algorithm", cfg.compression),
		zap.Int64("raw", st.OriginalSize),
		zap.Int64("stored", st.CompressedSize),
		zap.Float64("savings", st.SpaceSavings()))

	return out, cfg.compression, nil
}
