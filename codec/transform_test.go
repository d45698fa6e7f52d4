package codec

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequencyOrder(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3}, perms[1])
	assert.Equal(t, []int{0, 1, 4, 5, 2, 8, 6, 9, 3, 12, 10, 7, 13, 11, 14, 15}, perms[2])

	for d := 1; d <= MaxDims; d++ {
		sorted := slices.Clone(perms[d])
		slices.Sort(sorted)
		for i, v := range sorted {
			require.Equal(t, i, v, "perms[%d] is not a permutation", d)
		}
		assert.Equal(t, 0, perms[d][0], "DC coefficient comes first")
		assert.Equal(t, len(perms[d])-1, perms[d][len(perms[d])-1])
	}
}

func TestLineStarts(t *testing.T) {
	assert.Equal(t, []int{0, 4, 8, 12}, lines[2][0])
	assert.Equal(t, []int{0, 1, 2, 3}, lines[2][1])
	assert.Len(t, lines[3][2], 16)
}

func TestReversibleTransform_Inverts(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for d := 1; d <= MaxDims; d++ {
		size := 1 << (2 * d)
		block := make([]int64, size)
		for i := range block {
			block[i] = rng.Int63() - rng.Int63()
		}
		orig := slices.Clone(block)

		fwdXform(block, d, revFwdLift[int64])
		invXform(block, d, revInvLift[int64])
		require.Equal(t, orig, block, "dims=%d", d)
	}
}

func TestLossyTransform_NearlyInverts(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for d := 1; d <= 3; d++ {
		size := 1 << (2 * d)
		block := make([]int32, size)
		for i := range block {
			block[i] = rng.Int31n(1<<24) - 1<<23
		}
		orig := slices.Clone(block)

		fwdXform(block, d, fwdLift[int32])
		invXform(block, d, invLift[int32])
		for i := range block {
			assert.InDelta(t, orig[i], block[i], 32, "dims=%d i=%d", d, i)
		}
	}
}

func TestNegabinary(t *testing.T) {
	values := []int32{0, 1, -1, 2, -2, 12345, -12345, 1 << 30, -(1 << 30)}
	u := make([]uint32, len(values))
	back := make([]int32, len(values))
	perm := make([]int, len(values))
	for i := range perm {
		perm[i] = i
	}

	fwdOrder(u, values, perm)
	assert.Equal(t, uint32(0), u[0])
	assert.Equal(t, uint32(1), u[1])
	assert.Equal(t, uint32(3), u[2], "-1 is 11 in base -2")

	invOrder(u, back, perm)
	assert.Equal(t, values, back)
}

func TestRevPrecision(t *testing.T) {
	assert.Equal(t, uint(0), revPrecision([]uint32{0, 0}, 32))
	assert.Equal(t, uint(32), revPrecision([]uint32{1, 0}, 32))
	assert.Equal(t, uint(31), revPrecision([]uint32{2, 4}, 32))
	assert.Equal(t, uint(1), revPrecision([]uint64{1 << 63}, 64))
}

func TestPadLine(t *testing.T) {
	tests := []struct {
		n    int
		in   []float64
		want []float64
	}{
		{0, []float64{9, 9, 9, 9}, []float64{0, 0, 0, 0}},
		{1, []float64{5, 9, 9, 9}, []float64{5, 5, 5, 5}},
		{2, []float64{5, 6, 9, 9}, []float64{5, 6, 6, 5}},
		{3, []float64{5, 6, 7, 9}, []float64{5, 6, 7, 5}},
		{4, []float64{5, 6, 7, 8}, []float64{5, 6, 7, 8}},
	}

	for _, tt := range tests {
		p := slices.Clone(tt.in)
		padLine(p, 0, 1, tt.n)
		assert.Equal(t, tt.want, p, "n=%d", tt.n)
	}
}

func TestGatherScatter_Strided(t *testing.T) {
	// 6x5 field, row-major
	nx, ny := 6, 5
	data := make([]float64, nx*ny)
	for i := range data {
		data[i] = float64(i)
	}
	s := Strides{1, nx}

	block := make([]float64, 16)
	Gather(block, data, 1+nx, 2, s)
	assert.Equal(t, []float64{7, 8, 9, 10, 13, 14, 15, 16, 19, 20, 21, 22, 25, 26, 27, 28}, block)

	out := make([]float64, len(data))
	Scatter(out, block, 1+nx, 2, s)
	assert.Equal(t, 7.0, out[7])
	assert.Equal(t, 28.0, out[28])
	assert.Zero(t, out[0])
}

func TestGatherPartial(t *testing.T) {
	// 2x3 valid corner of a field with x stride 1 and y stride 10
	data := make([]float64, 40)
	for i := range data {
		data[i] = float64(i + 1)
	}
	s := Strides{1, 10}
	n := Extent{2, 3, 4, 4}

	block := make([]float64, 16)
	GatherPartial(block, data, 0, 2, s, n)

	// rows y < 3 padded along x: a b b a
	assert.Equal(t, []float64{1, 2, 2, 1}, block[0:4])
	assert.Equal(t, []float64{11, 12, 12, 11}, block[4:8])
	assert.Equal(t, []float64{21, 22, 22, 21}, block[8:12])
	// last row padded along y from the first row
	assert.Equal(t, []float64{1, 2, 2, 1}, block[12:16])

	out := make([]float64, 40)
	ScatterPartial(out, block, 0, 2, s, n)
	for i, v := range out {
		x, y := i%10, i/10
		if x < 2 && y < 3 {
			assert.Equal(t, data[i], v)
		} else {
			assert.Zero(t, v, "position %d must not be written", i)
		}
	}
}

func TestExtent_Full(t *testing.T) {
	assert.True(t, FullExtent.Full(3))
	assert.False(t, Extent{4, 3, 4, 4}.Full(2))
	assert.True(t, Extent{4, 3, 4, 4}.Full(1))
}
