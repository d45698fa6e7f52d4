// Package zfp provides compressed floating-point and integer arrays with
// fixed-rate random access, and a streaming codec for whole arrays.
//
// zfp compresses d-dimensional arrays (d = 1..4) of int32, int64, float32
// and float64 values in independent blocks of 4^d values. Each block is
// decorrelated by a lifting transform and coded one bit plane at a time, so
// the output can be truncated at any bit budget.
//
// # Core Features
//
//   - Fixed-rate, fixed-precision, fixed-accuracy, reversible and expert modes
//   - Compressed arrays with a write-back block cache and random access
//   - Shared and private views, with goroutine-parallel partitioned writes
//   - Self-describing blobs with optional secondary compression (Zstd, S2, LZ4)
//   - xxHash64 checksums for blob integrity
//
// # Basic Usage
//
// Compressing a slice:
//
//	import "github.com/arloliu/zfp"
//
//	data := make([]float64, 64*64)
//	// fill data...
//	b, _ := zfp.CompressSlice(data, []int{64, 64}, blob.WithAccuracy(1e-6))
//	out, ext, _ := zfp.DecompressSlice[float64](b)
//
// Using a compressed array:
//
//	a, _ := zfp.NewArray2[float64](512, 512, 16)
//	a.Set(3, 4, 1.5)
//	v := a.Get(3, 4)
//
// # Package Structure
//
// This package provides convenient wrappers around the array and blob
// packages. For views, headers, streams and fine-grained control use those
// packages, or stream and field directly.
package zfp

import (
	"fmt"

	"github.com/arloliu/zfp/array"
	"github.com/arloliu/zfp/blob"
	"github.com/arloliu/zfp/codec"
	"github.com/arloliu/zfp/errs"
	"github.com/arloliu/zfp/field"
)

var defaultStreamOptions = []blob.Option{
	blob.WithLittleEndian(),
	blob.WithReversible(),
}

// NewArray1 creates a one-dimensional compressed array of nx elements
// stored at rate compressed bits per value.
//
// Available options:
//   - array.WithData(data) initializes the array from a slice
//   - array.WithCacheSize(bytes) sets the cache size
//   - array.WithLogger(logger) enables debug logging
//
// Example:
//
//	a, err := zfp.NewArray1[float32](1000, 8)
func NewArray1[T codec.Scalar](nx int, rate float64, opts ...array.Option) (*array.Array1[T], error) {
	return array.NewArray1[T](nx, rate, opts...)
}

// NewArray2 creates an nx by ny compressed array with x varying fastest.
func NewArray2[T codec.Scalar](nx, ny int, rate float64, opts ...array.Option) (*array.Array2[T], error) {
	return array.NewArray2[T](nx, ny, rate, opts...)
}

// NewArray3 creates an nx by ny by nz compressed array with x varying
// fastest.
func NewArray3[T codec.Scalar](nx, ny, nz int, rate float64, opts ...array.Option) (*array.Array3[T], error) {
	return array.NewArray3[T](nx, ny, nz, rate, opts...)
}

// CompressSlice compresses a contiguous array with the given extents (x
// first, one to four of them) into a stream blob.
//
// Without a mode option the data is compressed losslessly. Options are
// applied after the defaults, so any blob mode option overrides it.
//
// Parameters:
//   - data: The values, x varying fastest
//   - extents: nx, ny, nz, nw; the count selects the dimensionality
//   - opts: blob options such as blob.WithRate or blob.WithCompression
//
// Returns:
//   - []byte: The blob
//   - error: errs.ErrInvalidDims for a bad extent list, errs.ErrDataSize if
//     data is too short, or any blob.EncodeStream error
//
// Example:
//
//	b, err := zfp.CompressSlice(data, []int{nx, ny, nz},
//	    blob.WithRate(8),
//	    blob.WithCompression(format.CompressionZstd),
//	)
func CompressSlice[T codec.Scalar](data []T, extents []int, opts ...blob.Option) ([]byte, error) {
	var f *field.Field
	switch len(extents) {
	case 1:
		f = field.New1(data, extents[0])
	case 2:
		f = field.New2(data, extents[0], extents[1])
	case 3:
		f = field.New3(data, extents[0], extents[1], extents[2])
	case 4:
		f = field.New4(data, extents[0], extents[1], extents[2], extents[3])
	default:
		return nil, fmt.Errorf("%w: %d extents", errs.ErrInvalidDims, len(extents))
	}
	for _, n := range extents {
		if n <= 0 {
			return nil, fmt.Errorf("%w: extents %v", errs.ErrInvalidDims, extents)
		}
	}

	allOpts := append(append([]blob.Option{}, defaultStreamOptions...), opts...)

	return blob.EncodeStream(f, allOpts...)
}

// DecompressSlice decodes a stream blob written by CompressSlice or
// blob.EncodeStream.
//
// Returns:
//   - []T: The values, x varying fastest
//   - []int: The extents, x first
//   - error: errs.ErrInvalidType if the blob holds another scalar type, or
//     any blob.Decode or Blob.Field error
func DecompressSlice[T codec.Scalar](data []byte, opts ...blob.Option) ([]T, []int, error) {
	b, err := blob.Decode(data)
	if err != nil {
		return nil, nil, err
	}
	f, err := b.Field(opts...)
	if err != nil {
		return nil, nil, err
	}

	out := field.Slice[T](f)
	if out == nil {
		return nil, nil, fmt.Errorf("%w: blob holds %s, want %s", errs.ErrInvalidType, f.Type, codec.TypeOf[T]())
	}
	extents := f.Extents()

	return out, extents[:f.Dims()], nil
}
