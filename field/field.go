// Package field describes the uncompressed data a stream compresses from or
// decompresses to.
//
// A Field is a view descriptor: it records the scalar type, up to four
// extents and strides, and a slice holding the samples. It never owns or
// copies the samples.
//
//	data := make([]float64, nx*ny)
//	f := field.New2(data, nx, ny)
//	size := s.MaximumSize(f)
package field

import (
	"fmt"

	"github.com/arloliu/zfp/codec"
	"github.com/arloliu/zfp/errs"
	"github.com/arloliu/zfp/format"
)

const metaMask = (uint64(1) << format.MetaBits) - 1

// Field describes a strided array of up to four dimensions.
//
// Extents NX..NW are counted from x; a zero extent ends the list, so a 2D
// field has NX, NY > 0 and NZ = NW = 0. A zero stride means contiguous
// layout along that axis (SX = 1, SY = NX, SZ = NX*NY, SW = NX*NY*NZ).
// Strides may be negative, in which case Offset must point inside Data.
type Field struct {
	Type format.ScalarType

	NX, NY, NZ, NW int
	SX, SY, SZ, SW int

	// Data holds a []int32, []int64, []float32 or []float64 matching Type.
	Data any
	// Offset is the index in Data of the sample at the origin.
	Offset int
}

// New1 returns a contiguous 1D field over data.
func New1[T codec.Scalar](data []T, nx int) *Field {
	return &Field{Type: codec.TypeOf[T](), NX: nx, Data: data}
}

// New2 returns a contiguous 2D field over data with x varying fastest.
func New2[T codec.Scalar](data []T, nx, ny int) *Field {
	return &Field{Type: codec.TypeOf[T](), NX: nx, NY: ny, Data: data}
}

// New3 returns a contiguous 3D field over data with x varying fastest.
func New3[T codec.Scalar](data []T, nx, ny, nz int) *Field {
	return &Field{Type: codec.TypeOf[T](), NX: nx, NY: ny, NZ: nz, Data: data}
}

// New4 returns a contiguous 4D field over data with x varying fastest.
func New4[T codec.Scalar](data []T, nx, ny, nz, nw int) *Field {
	return &Field{Type: codec.TypeOf[T](), NX: nx, NY: ny, NZ: nz, NW: nw, Data: data}
}

// Dims returns the dimensionality, 0 for a field without extents.
func (f *Field) Dims() int {
	switch {
	case f.NX == 0:
		return 0
	case f.NY == 0:
		return 1
	case f.NZ == 0:
		return 2
	case f.NW == 0:
		return 3
	default:
		return 4
	}
}

// Extents returns NX..NW.
func (f *Field) Extents() [4]int {
	return [4]int{f.NX, f.NY, f.NZ, f.NW}
}

// Size returns the number of samples described by the field.
func (f *Field) Size() int {
	dims := f.Dims()
	if dims == 0 {
		return 0
	}

	ext := f.Extents()
	n := 1
	for _, e := range ext[:dims] {
		n *= e
	}

	return n
}

// Blocks returns the number of 4^d blocks needed to cover the field.
func (f *Field) Blocks() int {
	dims := f.Dims()
	if dims == 0 {
		return 0
	}

	ext := f.Extents()
	n := 1
	for _, e := range ext[:dims] {
		n *= (e + 3) / 4
	}

	return n
}

// Strides returns the element strides, replacing zero strides with the
// contiguous layout.
func (f *Field) Strides() codec.Strides {
	s := codec.Strides{f.SX, f.SY, f.SZ, f.SW}
	contiguous := [4]int{
		1,
		max(f.NX, 1),
		max(f.NX, 1) * max(f.NY, 1),
		max(f.NX, 1) * max(f.NY, 1) * max(f.NZ, 1),
	}
	for a := range s {
		if s[a] == 0 {
			s[a] = contiguous[a]
		}
	}

	return s
}

// IsContiguous reports whether samples are laid out densely in raster order.
func (f *Field) IsContiguous() bool {
	s := f.Strides()
	c := (&Field{NX: f.NX, NY: f.NY, NZ: f.NZ}).Strides()
	for a := range f.Dims() {
		if s[a] != c[a] {
			return false
		}
	}

	return true
}

// Span returns the smallest and largest offsets from Offset touched by the field.
func (f *Field) Span() (lo, hi int) {
	s := f.Strides()
	ext := f.Extents()
	for a := range f.Dims() {
		d := (ext[a] - 1) * s[a]
		if d < 0 {
			lo += d
		} else {
			hi += d
		}
	}

	return lo, hi
}

// Len returns the length of Data, or -1 if Data is not a supported slice.
func (f *Field) Len() int {
	switch d := f.Data.(type) {
	case []int32:
		return len(d)
	case []int64:
		return len(d)
	case []float32:
		return len(d)
	case []float64:
		return len(d)
	}

	return -1
}

// Validate checks that the field can be compressed from or decompressed to.
//
// Returns:
//   - error: errs.ErrInvalidDims, errs.ErrInvalidType or errs.ErrDataSize
func (f *Field) Validate() error {
	if f.Dims() == 0 {
		return fmt.Errorf("%w: field has no extents", errs.ErrInvalidDims)
	}
	for _, e := range f.Extents() {
		if e < 0 {
			return fmt.Errorf("%w: negative extent", errs.ErrInvalidDims)
		}
	}
	if !f.Type.Valid() {
		return fmt.Errorf("%w: %s", errs.ErrInvalidType, f.Type)
	}
	if f.Data == nil {
		return nil
	}
	if got := typeOfData(f.Data); got != f.Type {
		return fmt.Errorf("%w: field type %s holds %s data", errs.ErrInvalidType, f.Type, got)
	}

	lo, hi := f.Span()
	if f.Offset+lo < 0 || f.Offset+hi >= f.Len() {
		return fmt.Errorf("%w: need indices [%d, %d], have %d", errs.ErrDataSize, f.Offset+lo, f.Offset+hi, f.Len())
	}

	return nil
}

func typeOfData(data any) format.ScalarType {
	switch data.(type) {
	case []int32:
		return format.TypeInt32
	case []int64:
		return format.TypeInt64
	case []float32:
		return format.TypeFloat32
	case []float64:
		return format.TypeFloat64
	}

	return format.TypeNone
}

// Metadata packs the scalar type, dimensionality and extents into 52 bits.
//
// Layout from the least significant bit: type-1 (2 bits), dims-1 (2 bits),
// then NX-1, NY-1, ... using 48, 24, 16 or 12 bits per extent for 1, 2, 3
// or 4 dimensions.
//
// Returns:
//   - uint64: The metadata, or format.MetaNull if the type is invalid or an
//     extent does not fit its field
func (f *Field) Metadata() uint64 {
	dims := f.Dims()
	if dims == 0 || !f.Type.Valid() {
		return format.MetaNull
	}

	width := extentBits(dims)
	var meta uint64
	ext := f.Extents()
	for a := dims - 1; a >= 0; a-- {
		if ext[a] < 1 || uint64(ext[a]) > uint64(1)<<width {
			return format.MetaNull
		}
		meta = meta<<width | uint64(ext[a]-1)
	}
	meta = meta<<2 | uint64(dims-1)
	meta = meta<<2 | uint64(f.Type-1)

	return meta
}

// SetMetadata restores type and extents from Metadata output and resets the
// strides to the contiguous layout. Data and Offset are left alone.
//
// Returns:
//   - bool: false if meta has bits beyond the 52-bit field
func (f *Field) SetMetadata(meta uint64) bool {
	if meta&^metaMask != 0 {
		return false
	}

	f.Type = format.ScalarType(meta&3) + 1
	meta >>= 2
	dims := int(meta&3) + 1
	meta >>= 2

	width := extentBits(dims)
	mask := (uint64(1) << width) - 1
	ext := [4]int{}
	for a := range dims {
		ext[a] = int(meta&mask) + 1
		meta >>= width
	}

	f.NX, f.NY, f.NZ, f.NW = ext[0], ext[1], ext[2], ext[3]
	f.SX, f.SY, f.SZ, f.SW = 0, 0, 0, 0

	return true
}

// extentBits returns the metadata width of one extent.
func extentBits(dims int) uint {
	return uint(48 / dims)
}

// Slice returns the field data as []T, or nil if the field holds another type.
func Slice[T codec.Scalar](f *Field) []T {
	s, _ := f.Data.([]T)
	return s
}
