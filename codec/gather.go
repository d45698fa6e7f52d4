package codec

// Strides holds the element strides of a field along x, y, z and w.
type Strides [MaxDims]int

// Extent holds the number of valid values of a partial block along each axis.
type Extent [MaxDims]int

// FullExtent marks every axis of a block as complete.
var FullExtent = Extent{4, 4, 4, 4}

// offset returns the data offset of block position i.
func (s Strides) offset(i, dims int) int {
	off := 0
	for a := range dims {
		off += (i & 3) * s[a]
		i >>= 2
	}

	return off
}

// inside reports whether block position i lies in the valid region n.
func (n Extent) inside(i, dims int) bool {
	for a := range dims {
		if i&3 >= n[a] {
			return false
		}
		i >>= 2
	}

	return true
}

// Full reports whether n covers the whole block in dims dimensions.
func (n Extent) Full(dims int) bool {
	for a := range dims {
		if n[a] < 4 {
			return false
		}
	}

	return true
}

// Gather copies the 4^dims block whose first value is data[off] into block.
func Gather[T Scalar](block, data []T, off, dims int, s Strides) {
	for i := range block[:1<<(2*dims)] {
		block[i] = data[off+s.offset(i, dims)]
	}
}

// GatherPartial copies the valid n region of a boundary block into block and
// pads the remaining positions so the block transform stays smooth.
func GatherPartial[T Scalar](block, data []T, off, dims int, s Strides, n Extent) {
	size := 1 << (2 * dims)
	for i := range size {
		if n.inside(i, dims) {
			block[i] = data[off+s.offset(i, dims)]
		}
	}
	PadBlock(block, dims, n)
}

// Scatter copies block to the 4^dims values whose first value is data[off].
func Scatter[T Scalar](data, block []T, off, dims int, s Strides) {
	for i := range block[:1<<(2*dims)] {
		data[off+s.offset(i, dims)] = block[i]
	}
}

// ScatterPartial copies only the valid n region of block to data.
func ScatterPartial[T Scalar](data, block []T, off, dims int, s Strides, n Extent) {
	size := 1 << (2 * dims)
	for i := range size {
		if n.inside(i, dims) {
			data[off+s.offset(i, dims)] = block[i]
		}
	}
}

// PadBlock fills the positions of block outside the valid region n.
//
// Axes are padded in order. Along axis a only lines whose coordinates on the
// later axes are valid are padded; earlier axes are complete by then.
func PadBlock[T Scalar](block []T, dims int, n Extent) {
	for a := range dims {
		if n[a] >= 4 {
			continue
		}
		stride := 1 << (2 * a)
		for _, i := range lines[dims][a] {
			if later(i, a, dims, n) {
				padLine(block, i, stride, n[a])
			}
		}
	}
}

// later reports whether the coordinates of position i on the axes after a
// are inside n.
func later(i, a, dims int, n Extent) bool {
	i >>= 2 * (a + 1)
	for b := a + 1; b < dims; b++ {
		if i&3 >= n[b] {
			return false
		}
		i >>= 2
	}

	return true
}

// padLine fills a 4-value line with n valid values: a missing first value
// becomes zero, the second and third repeat their predecessor and the fourth
// repeats the first.
func padLine[T Scalar](p []T, i, s, n int) {
	switch n {
	case 0:
		p[i] = 0
		fallthrough
	case 1:
		p[i+s] = p[i]
		fallthrough
	case 2:
		p[i+2*s] = p[i+s]
		fallthrough
	case 3:
		p[i+3*s] = p[i]
	}
}
