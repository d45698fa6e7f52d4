package array

import (
	"fmt"

	"github.com/arloliu/zfp/bitstream"
	"github.com/arloliu/zfp/codec"
	"github.com/arloliu/zfp/errs"
	"github.com/arloliu/zfp/field"
	"github.com/arloliu/zfp/format"
	"github.com/arloliu/zfp/internal/ints"
	"github.com/arloliu/zfp/section"
	"github.com/arloliu/zfp/stream"
)

// Header is the 96-bit self-describing header of a compressed array: the
// zfp magic, the scalar type and extents, and a short fixed-rate mode code.
type Header [section.ArrayHeaderSize]byte

// headerInfo is the content of a validated header.
type headerInfo struct {
	typ    format.ScalarType
	dims   int
	ext    [3]int
	params codec.Params
}

// blocks returns the number of blocks described by the header.
func (h headerInfo) blocks() int {
	n := 1
	for a := range h.dims {
		n *= ints.CeilDiv(h.ext[a], format.BlockEdge)
	}

	return n
}

// bufferSize returns the number of bytes of compressed storage.
func (h headerInfo) bufferSize() int {
	return ints.AlignUp(h.blocks()*h.params.MaxBits, bitstream.WordBits) / 8
}

func writeHeader[T codec.Scalar](s *store[T]) (Header, error) {
	var h Header

	f := field.Field{Type: s.typ()}
	if s.blocks > 0 {
		ext := [3]int{}
		copy(ext[:], s.ext[:s.dims])
		f.NX, f.NY, f.NZ = ext[0], ext[1], ext[2]
	}

	var msgs []string
	p := s.params()
	if !codec.IsShortCode(p.Code()) {
		msgs = append(msgs, errs.MsgLongHeader)
	}
	if f.Metadata() == format.MetaNull {
		msgs = append(msgs, errs.MsgBadMeta)
	}
	if err := errs.NewHeaderError(msgs...); err != nil {
		return h, err
	}

	buf := make([]byte, 2*bitstream.WordBytes)
	zs := stream.Open(bitstream.New(buf))
	_ = zs.SetParams(p.MinBits, p.MaxBits, p.MaxPrec, p.MinExp)
	if zs.WriteHeader(&f, format.HeaderFull) != section.ArrayHeaderBits {
		return h, errs.NewHeaderError(errs.MsgHeaderSize)
	}
	zs.Flush()
	copy(h[:], buf)

	return h, nil
}

// parseHeader decodes and validates a header.
//
// Parameters:
//   - h: The header
//   - typ: Required scalar type, or format.TypeNone for any
//   - dims: Required dimensionality, or 0 for any of 1, 2 and 3
//   - buffer: Compressed storage that will accompany the header, or nil
//
// Returns:
//   - headerInfo: The decoded content
//   - error: *errs.HeaderError listing every violation found
func parseHeader(h Header, typ format.ScalarType, dims int, buffer []byte) (headerInfo, error) {
	var info headerInfo

	buf := make([]byte, 2*bitstream.WordBytes)
	copy(buf, h[:])
	bs := bitstream.New(buf)

	if _, n := section.ReadZFPHeader(bs, format.HeaderMagic); n == 0 {
		return info, errs.NewHeaderError(errs.MsgBadMagic)
	}
	meta, _ := section.ReadZFPHeader(bs, format.HeaderMeta)
	mode := bs.ReadBits(format.ModeShortBits)

	var msgs []string
	var f field.Field
	f.SetMetadata(meta.Meta)
	info.typ = f.Type
	info.dims = f.Dims()
	copy(info.ext[:], []int{f.NX, f.NY, f.NZ})

	if typ != format.TypeNone && f.Type != typ {
		msgs = append(msgs, errs.MsgTypeMismatch)
	}
	switch {
	case dims != 0 && info.dims != dims:
		msgs = append(msgs, errs.MsgDimsMismatch)
	case info.dims > 3:
		msgs = append(msgs, errs.MsgBadMeta)
	}

	if mode > format.ModeShortMax {
		msgs = append(msgs, errs.MsgLongHeader)
	} else {
		info.params = codec.ParamsFromCode(mode)
		switch {
		case info.params.Mode() != format.ModeFixedRate:
			msgs = append(msgs, errs.MsgNotFixedRate)
		case info.params.MaxBits%bitstream.WordBits != 0:
			// blocks sharing a word could not be written from separate views
			msgs = append(msgs, errs.MsgUnalignedRate)
		case buffer != nil && info.dims <= 3 && len(buffer) < info.bufferSize():
			msgs = append(msgs, errs.MsgBufferTooSmall)
		}
	}

	return info, errs.NewHeaderError(msgs...)
}

// Construct creates an array of the type and dimensionality recorded in h.
// The compressed storage is copied from buffer when buffer is not nil.
//
// Returns:
//   - Array: An *Array1[T], *Array2[T] or *Array3[T]
//   - error: *errs.HeaderError for an invalid header
func Construct(h Header, buffer []byte, opts ...Option) (Array, error) {
	info, err := parseHeader(h, format.TypeNone, 0, buffer)
	if err != nil {
		return nil, err
	}

	switch info.typ {
	case format.TypeInt32:
		return construct[int32](info, buffer, opts)
	case format.TypeInt64:
		return construct[int64](info, buffer, opts)
	case format.TypeFloat32:
		return construct[float32](info, buffer, opts)
	case format.TypeFloat64:
		return construct[float64](info, buffer, opts)
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidType, info.typ)
}

func construct[T codec.Scalar](info headerInfo, buffer []byte, opts []Option) (Array, error) {
	switch info.dims {
	case 1:
		return fromHeader1[T](info, buffer, opts)
	case 2:
		return fromHeader2[T](info, buffer, opts)
	case 3:
		return fromHeader3[T](info, buffer, opts)
	}

	return nil, fmt.Errorf("%w: %d", errs.ErrInvalidDims, info.dims)
}

// load copies compressed storage into a freshly constructed array.
func (a *base[T]) load(buffer []byte) {
	if buffer != nil {
		copy(a.store.buffer, buffer)
	}
}
