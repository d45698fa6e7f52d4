package codec

import (
	"cmp"
	"slices"
)

type signed interface {
	int32 | int64
}

type unsigned interface {
	uint32 | uint64
}

var (
	// perms[d] lists block positions of a d-dimensional block in order of
	// increasing total sequency.
	perms [MaxDims + 1][]int
	// lines[d][a] lists the first position of every 4-value line along axis a.
	lines [MaxDims + 1][MaxDims][]int
)

func init() {
	for d := 1; d <= MaxDims; d++ {
		perms[d] = sequencyOrder(d)
		for a := range d {
			lines[d][a] = lineStarts(d, a)
		}
	}
}

// sequencyOrder orders the positions of a block by the sum of their
// coordinates, then by the sum of squared coordinates, then by position.
func sequencyOrder(dims int) []int {
	size := 1 << (2 * dims)
	type key struct{ pos, sum, sq int }

	keys := make([]key, size)
	for i := range size {
		k := key{pos: i}
		for v := i; v > 0; v >>= 2 {
			c := v & 3
			k.sum += c
			k.sq += c * c
		}
		keys[i] = k
	}
	slices.SortFunc(keys, func(a, b key) int {
		if c := cmp.Compare(a.sum, b.sum); c != 0 {
			return c
		}
		if c := cmp.Compare(a.sq, b.sq); c != 0 {
			return c
		}

		return cmp.Compare(a.pos, b.pos)
	})

	perm := make([]int, size)
	for i, k := range keys {
		perm[i] = k.pos
	}

	return perm
}

func lineStarts(dims, axis int) []int {
	size := 1 << (2 * dims)
	stride := 1 << (2 * axis)

	starts := make([]int, 0, size/4)
	for i := range size {
		if (i/stride)&3 == 0 {
			starts = append(starts, i)
		}
	}

	return starts
}

// fwdLift applies the non-orthogonal decorrelating transform
//
//	       ( 4  4  4  4) (x)
//	1/16 * ( 5  1 -1 -5) (y)
//	       (-4  4  4 -4) (z)
//	       (-2  6 -6  2) (w)
//
// to p[i], p[i+s], p[i+2s], p[i+3s].
func fwdLift[I signed](p []I, i, s int) {
	x, y, z, w := p[i], p[i+s], p[i+2*s], p[i+3*s]

	x += w
	x >>= 1
	w -= x
	z += y
	z >>= 1
	y -= z
	x += z
	x >>= 1
	z -= x
	w += y
	w >>= 1
	y -= w
	w += y >> 1
	y -= w >> 1

	p[i], p[i+s], p[i+2*s], p[i+3*s] = x, y, z, w
}

// invLift inverts fwdLift up to the rounding of the forward shifts.
func invLift[I signed](p []I, i, s int) {
	x, y, z, w := p[i], p[i+s], p[i+2*s], p[i+3*s]

	y += w >> 1
	w -= y >> 1
	y += w
	w <<= 1
	w -= y
	z += x
	x <<= 1
	x -= z
	y += z
	z <<= 1
	z -= y
	w += x
	x <<= 1
	x -= w

	p[i], p[i+s], p[i+2*s], p[i+3*s] = x, y, z, w
}

// revFwdLift applies the exactly invertible high-order Lorenzo transform
//
//	( 1  0  0  0) (x)
//	(-1  1  0  0) (y)
//	( 1 -2  1  0) (z)
//	(-1  3 -3  1) (w)
func revFwdLift[I signed](p []I, i, s int) {
	x, y, z, w := p[i], p[i+s], p[i+2*s], p[i+3*s]

	w -= z
	z -= y
	y -= x
	w -= z
	z -= y
	w -= z

	p[i], p[i+s], p[i+2*s], p[i+3*s] = x, y, z, w
}

func revInvLift[I signed](p []I, i, s int) {
	x, y, z, w := p[i], p[i+s], p[i+2*s], p[i+3*s]

	w += z
	z += y
	w += z
	y += x
	z += y
	w += z

	p[i], p[i+s], p[i+2*s], p[i+3*s] = x, y, z, w
}

// forward transforms run along x, then y, then z, then w
func fwdXform[I signed](p []I, dims int, lift func([]I, int, int)) {
	for a := range dims {
		s := 1 << (2 * a)
		for _, i := range lines[dims][a] {
			lift(p, i, s)
		}
	}
}

// inverse transforms run in the opposite axis order
func invXform[I signed](p []I, dims int, lift func([]I, int, int)) {
	for a := dims - 1; a >= 0; a-- {
		s := 1 << (2 * a)
		for _, i := range lines[dims][a] {
			lift(p, i, s)
		}
	}
}

// negabinaryMask returns 0xaaaa...a of the width of U.
func negabinaryMask[U unsigned]() U {
	return ^U(0) / 3 * 2
}

// fwdOrder reorders coefficients by sequency and maps them to negabinary.
func fwdOrder[I signed, U unsigned](u []U, p []I, perm []int) {
	mask := negabinaryMask[U]()
	for k, i := range perm {
		u[k] = (U(p[i]) + mask) ^ mask
	}
}

func invOrder[I signed, U unsigned](u []U, p []I, perm []int) {
	mask := negabinaryMask[U]()
	for k, i := range perm {
		p[i] = I((u[k] ^ mask) - mask)
	}
}
