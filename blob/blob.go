package blob

import (
	"fmt"
	"math"

	"github.com/arloliu/zfp/array"
	"github.com/arloliu/zfp/bitstream"
	"github.com/arloliu/zfp/compress"
	"github.com/arloliu/zfp/errs"
	"github.com/arloliu/zfp/field"
	"github.com/arloliu/zfp/format"
	"github.com/arloliu/zfp/internal/hash"
	"github.com/arloliu/zfp/section"
	"github.com/arloliu/zfp/stream"
)

// Blob is a decoded envelope with its verified raw payload.
type Blob struct {
	header  section.BlobHeader
	payload []byte
}

// Decode parses and verifies a blob. The payload is decompressed when the
// envelope records a secondary compression; otherwise it aliases data.
//
// Returns:
//   - *Blob: The verified blob
//   - error: Envelope errors (errs.ErrInvalidHeaderSize, errs.ErrInvalidMagic,
//     errs.ErrInvalidHeaderFlags, errs.ErrInvalidBlobKind),
//     errs.ErrInvalidBlobSize for truncated data, or errs.ErrChecksumMismatch
func Decode(data []byte) (*Blob, error) {
	header, err := section.ParseBlobHeader(data)
	if err != nil {
		return nil, err
	}

	end := uint64(section.PayloadOffset) + header.StoredSize
	if end < header.StoredSize || uint64(len(data)) < end {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", errs.ErrInvalidBlobSize, end, len(data))
	}
	stored := data[section.PayloadOffset:end]

	codec, err := compress.GetCodec(header.Flag.CompressionType)
	if err != nil {
		return nil, err
	}
	payload, err := compress.DecompressSized(codec, stored, int(min(header.RawSize, uint64(math.MaxInt))))
	if err != nil {
		return nil, err
	}

	if uint64(len(payload)) != header.RawSize {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", errs.ErrInvalidBlobSize, len(payload), header.RawSize)
	}
	if hash.Checksum(payload) != header.Checksum {
		return nil, errs.ErrChecksumMismatch
	}

	return &Blob{header: header, payload: payload}, nil
}

// Kind returns the payload kind.
func (b *Blob) Kind() section.BlobKind {
	return b.header.Flag.Kind
}

// Header returns the envelope header.
func (b *Blob) Header() section.BlobHeader {
	return b.header
}

// Payload returns the raw payload.
func (b *Blob) Payload() []byte {
	return b.payload
}

// Field decompresses a stream blob into a newly allocated contiguous field
// of the recorded type and extents.
//
// Returns:
//   - *field.Field: The decompressed field
//   - error: errs.ErrInvalidBlobKind for array blobs, *errs.HeaderError for
//     an invalid zfp header, or errs.ErrInvalidParams if decompression fails
func (b *Blob) Field(opts ...Option) (*field.Field, error) {
	if b.Kind() != section.KindStream {
		return nil, fmt.Errorf("%w: %s blob has no stream", errs.ErrInvalidBlobKind, b.Kind())
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	s := stream.Open(bitstream.NewWithEngine(b.payload, b.header.Flag.GetEndianEngine()))
	s.SetLogger(cfg.logger)

	f := &field.Field{}
	if s.ReadHeader(f, format.HeaderMagic) == 0 {
		return nil, errs.NewHeaderError(errs.MsgBadMagic)
	}
	if s.ReadHeader(f, format.HeaderMeta|format.HeaderMode) == 0 {
		if f.Dims() == 0 {
			return nil, errs.NewHeaderError(errs.MsgBadMeta)
		}

		return nil, errs.NewHeaderError(errs.MsgBadMode)
	}

	if s.CompressionMode() == format.ModeFixedRate {
		if err := cfg.parallel(s); err != nil {
			return nil, err
		}
	}

	switch f.Type {
	case format.TypeInt32:
		f.Data = make([]int32, f.Size())
	case format.TypeInt64:
		f.Data = make([]int64, f.Size())
	case format.TypeFloat32:
		f.Data = make([]float32, f.Size())
	case format.TypeFloat64:
		f.Data = make([]float64, f.Size())
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidType, f.Type)
	}

	if s.Decompress(f) == 0 {
		return nil, fmt.Errorf("%w: cannot decompress %s stream", errs.ErrInvalidParams, s.CompressionMode())
	}

	return f, nil
}

// Array reconstructs the compressed array stored in an array blob. The
// array owns a copy of the storage.
//
// Returns:
//   - array.Array: An *array.Array1[T], *array.Array2[T] or *array.Array3[T]
//   - error: errs.ErrInvalidBlobKind for stream blobs, or *errs.HeaderError
func (b *Blob) Array(opts ...array.Option) (array.Array, error) {
	if b.Kind() != section.KindArray {
		return nil, fmt.Errorf("%w: %s blob has no array", errs.ErrInvalidBlobKind, b.Kind())
	}
	if len(b.payload) < section.ArrayHeaderSize {
		return nil, fmt.Errorf("%w: array payload is %d bytes", errs.ErrInvalidBlobSize, len(b.payload))
	}

	var h array.Header
	copy(h[:], b.payload)

	return array.Construct(h, b.payload[section.ArrayHeaderSize:], opts...)
}
