package main

import (
	"fmt"
	"io"
	"math"

	"github.com/arloliu/zfp/codec"
	"github.com/arloliu/zfp/diffstats"
	"github.com/arloliu/zfp/endian"
	"github.com/arloliu/zfp/errs"
	"github.com/arloliu/zfp/field"
	"github.com/arloliu/zfp/format"
)

// Raw files hold values in host byte order with x varying fastest.
var rawEngine = endian.GetNativeEngine()

// decodeRaw interprets raw as a contiguous field of the given type and shape.
func decodeRaw(raw []byte, typ format.ScalarType, dims [4]int) (*field.Field, error) {
	n := 1
	for _, e := range nonzero(dims) {
		n *= e
	}
	if len(raw) != n*typ.Size() {
		return nil, fmt.Errorf("%w: %d values of %s need %d bytes, have %d",
			errs.ErrDataSize, n, typ, n*typ.Size(), len(raw))
	}

	f := &field.Field{Type: typ, NX: dims[0], NY: dims[1], NZ: dims[2], NW: dims[3]}
	switch typ {
	case format.TypeInt32:
		s := make([]int32, n)
		for i := range s {
			s[i] = int32(rawEngine.Uint32(raw[4*i:]))
		}
		f.Data = s
	case format.TypeInt64:
		s := make([]int64, n)
		for i := range s {
			s[i] = int64(rawEngine.Uint64(raw[8*i:]))
		}
		f.Data = s
	case format.TypeFloat32:
		s := make([]float32, n)
		for i := range s {
			s[i] = math.Float32frombits(rawEngine.Uint32(raw[4*i:]))
		}
		f.Data = s
	case format.TypeFloat64:
		s := make([]float64, n)
		for i := range s {
			s[i] = math.Float64frombits(rawEngine.Uint64(raw[8*i:]))
		}
		f.Data = s
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidType, typ)
	}

	return f, nil
}

// encodeRaw serializes the data of a contiguous field.
func encodeRaw(f *field.Field) []byte {
	switch s := f.Data.(type) {
	case []int32:
		out := make([]byte, 0, 4*len(s))
		for _, v := range s {
			out = rawEngine.AppendUint32(out, uint32(v))
		}
		return out
	case []int64:
		out := make([]byte, 0, 8*len(s))
		for _, v := range s {
			out = rawEngine.AppendUint64(out, uint64(v))
		}
		return out
	case []float32:
		out := make([]byte, 0, 4*len(s))
		for _, v := range s {
			out = rawEngine.AppendUint32(out, math.Float32bits(v))
		}
		return out
	case []float64:
		out := make([]byte, 0, 8*len(s))
		for _, v := range s {
			out = rawEngine.AppendUint64(out, math.Float64bits(v))
		}
		return out
	default:
		return nil
	}
}

// report prints sizes and error statistics of a compress and decompress
// round trip.
func report(out io.Writer, orig, recon *field.Field, rawBytes, zfpBytes int) error {
	var (
		st  diffstats.Stats
		err error
	)
	switch orig.Type {
	case format.TypeInt32:
		st, err = compare[int32](orig, recon)
	case format.TypeInt64:
		st, err = compare[int64](orig, recon)
	case format.TypeFloat32:
		st, err = compare[float32](orig, recon)
	default:
		st, err = compare[float64](orig, recon)
	}
	if err != nil {
		return err
	}

	n := orig.Size()
	_, err = fmt.Fprintf(out, "type=%s dims=%v raw=%d zfp=%d ratio=%.3g rate=%.4g %s\n",
		orig.Type, nonzero(orig.Extents()), rawBytes, zfpBytes,
		float64(rawBytes)/float64(zfpBytes), 8*float64(zfpBytes)/float64(n), st)

	return err
}

func compare[T codec.Scalar](orig, recon *field.Field) (diffstats.Stats, error) {
	return diffstats.Compare(field.Slice[T](orig), field.Slice[T](recon))
}
