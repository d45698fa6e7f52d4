package array

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/zfp/codec"
	"github.com/arloliu/zfp/errs"
	"github.com/arloliu/zfp/format"
)

func smooth1(n int) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(float64(i) / 5)
	}

	return data
}

func smooth2(nx, ny int) []float64 {
	data := make([]float64, nx*ny)
	for j := range ny {
		for i := range nx {
			data[i+nx*j] = math.Cos(float64(i)/4) * math.Sin(float64(j)/3)
		}
	}

	return data
}

func smooth3(nx, ny, nz int) []float64 {
	data := make([]float64, nx*ny*nz)
	for k := range nz {
		for j := range ny {
			for i := range nx {
				data[i+nx*(j+ny*k)] = float64(i+2*j) / 8 * math.Cos(float64(k)/3)
			}
		}
	}

	return data
}

// ==============================
// Construction
// ==============================

func TestNewArray1(t *testing.T) {
	a, err := NewArray1[float64](10, 32)
	require.NoError(t, err)

	assert.Equal(t, 10, a.Size())
	assert.Equal(t, 1, a.Dims())
	assert.Equal(t, format.TypeFloat64, a.Type())
	assert.Equal(t, 32.0, a.Rate())
	// 3 blocks of 128 bits
	assert.Equal(t, 48, a.CompressedSize())

	for i := range 10 {
		assert.Equal(t, 0.0, a.Get(i))
	}
}

func TestNewArray_RateRounding(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		want float64
	}{
		{"aligned", 16, 16},
		{"rounded up to a word", 5, 16},
		{"smallest rate for doubles", 0.5, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewArray1[float64](8, tt.rate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Rate())
		})
	}
}

func TestNewArray_WithData(t *testing.T) {
	data := smooth2(9, 7)
	a, err := NewArray2[float64](9, 7, 32, WithData(data))
	require.NoError(t, err)

	for j := range 7 {
		for i := range 9 {
			assert.InDelta(t, data[i+9*j], a.Get(i, j), 1e-6)
		}
	}
}

func TestNewArray_WithDataErrors(t *testing.T) {
	_, err := NewArray1[float64](10, 32, WithData(make([]float64, 4)))
	require.ErrorIs(t, err, errs.ErrDataSize)

	_, err = NewArray1[float64](10, 32, WithData(make([]float32, 10)))
	require.ErrorIs(t, err, errs.ErrInvalidType)

	_, err = NewArray1[float64](10, 32, WithCacheSize(-1))
	require.Error(t, err)
}

// ==============================
// Element access
// ==============================

func TestArray1_SetGetAfterEviction(t *testing.T) {
	a, err := NewArray1[float64](10, 32)
	require.NoError(t, err)

	a.Set(7, 3.5)
	a.SetCacheSize(1)
	require.Equal(t, 1, a.CacheSize()/(4*8))

	_ = a.Get(0)
	_ = a.Get(3)
	_ = a.Get(7)
	assert.Equal(t, 3.5, a.Get(7))
}

func TestArray1_Arithmetic(t *testing.T) {
	a, err := NewArray1[float64](6, 64)
	require.NoError(t, err)

	a.Set(2, 10)
	a.Add(2, 5)
	assert.InDelta(t, 15.0, a.Get(2), 1e-9)
	a.Sub(2, 3)
	assert.InDelta(t, 12.0, a.Get(2), 1e-9)
	a.Mul(2, 4)
	assert.InDelta(t, 48.0, a.Get(2), 1e-9)
	a.Div(2, 6)
	assert.InDelta(t, 8.0, a.Get(2), 1e-9)

	r := a.Ref(5)
	r.Set(-7)
	r.Add(2)
	r.Mul(3)
	assert.InDelta(t, -15.0, a.Get(5), 1e-9)
	assert.InDelta(t, -15.0, r.Get(), 1e-9)

	// values survive compression
	a.FlushCache()
	a.ClearCache()
	assert.InDelta(t, 8.0, a.Get(2), 1e-9)
	assert.InDelta(t, -15.0, a.Get(5), 1e-9)
}

func TestArray2_CacheCoherence(t *testing.T) {
	const nx, ny = 13, 11
	data := smooth2(nx, ny)

	a, err := NewArray2[float64](nx, ny, 48)
	require.NoError(t, err)
	a.SetCacheSize(1)

	for j := range ny {
		for i := range nx {
			a.Set(i, j, data[i+nx*j])
		}
	}
	// read back in a different order so every line is evicted repeatedly
	for i := range nx {
		for j := range ny {
			assert.InDelta(t, data[i+nx*j], a.Get(i, j), 1e-6, "(%d, %d)", i, j)
		}
	}

	st := a.Stats()
	assert.Positive(t, st.Misses)
	assert.Positive(t, st.WriteBacks)
}

func TestArray3_SetGet(t *testing.T) {
	const nx, ny, nz = 6, 5, 9
	data := smooth3(nx, ny, nz)

	a, err := NewArray3[float64](nx, ny, nz, 32)
	require.NoError(t, err)
	require.Equal(t, nx*ny*nz, a.Size())

	for k := range nz {
		for j := range ny {
			for i := range nx {
				a.Set(i, j, k, data[i+nx*(j+ny*k)])
			}
		}
	}
	a.FlushCache()
	a.ClearCache()

	for k := range nz {
		for j := range ny {
			for i := range nx {
				assert.InDelta(t, data[i+nx*(j+ny*k)], a.Get(i, j, k), 1e-4)
			}
		}
	}
}

func TestArray_ClearCacheDropsWrites(t *testing.T) {
	a, err := NewArray1[float64](8, 32)
	require.NoError(t, err)

	a.Set(1, 2.0)
	a.ClearCache()
	assert.Equal(t, 0.0, a.Get(1))
}

func TestArray_FlushIdempotent(t *testing.T) {
	a, err := NewArray2[float32](7, 7, 16, WithData(make([]float32, 49)))
	require.NoError(t, err)
	a.Set(3, 4, 1.25)

	first := append([]byte(nil), a.CompressedData()...)
	second := append([]byte(nil), a.CompressedData()...)
	assert.Equal(t, first, second)
	assert.InDelta(t, 1.25, a.Get(3, 4), 1e-3)
}

// ==============================
// Bulk access
// ==============================

func TestArray_GetAllSetAll(t *testing.T) {
	t.Run("1D", func(t *testing.T) {
		data := smooth1(23)
		a, err := NewArray1[float64](23, 40)
		require.NoError(t, err)
		require.NoError(t, a.SetAll(data))

		out := make([]float64, 23)
		require.NoError(t, a.GetAll(out))
		assert.InDeltaSlice(t, data, out, 1e-8)
	})

	t.Run("2D partial blocks", func(t *testing.T) {
		data := smooth2(10, 6)
		a, err := NewArray2[float64](10, 6, 32)
		require.NoError(t, err)
		require.NoError(t, a.SetAll(data))

		// a cached dirty line must win over the stored block
		a.Set(9, 5, 100)
		data[9+10*5] = 100

		out := make([]float64, 60)
		require.NoError(t, a.GetAll(out))
		assert.InDeltaSlice(t, data, out, 1e-4)
	})

	t.Run("3D", func(t *testing.T) {
		data := smooth3(5, 4, 7)
		a, err := NewArray3[float64](5, 4, 7, 32)
		require.NoError(t, err)
		require.NoError(t, a.SetAll(data))

		out := make([]float64, len(data))
		require.NoError(t, a.GetAll(out))
		assert.InDeltaSlice(t, data, out, 1e-4)
	})

	t.Run("wrong length", func(t *testing.T) {
		a, err := NewArray1[float64](5, 32)
		require.NoError(t, err)
		require.ErrorIs(t, a.SetAll(make([]float64, 4)), errs.ErrDataSize)
		require.ErrorIs(t, a.GetAll(make([]float64, 6)), errs.ErrDataSize)
	})
}

func TestArray_All(t *testing.T) {
	t.Run("1D visits every element once", func(t *testing.T) {
		a, err := NewArray1[float64](10, 64)
		require.NoError(t, err)
		for i := range 10 {
			a.Set(i, float64(i*i))
		}

		seen := map[int]float64{}
		for i, v := range a.All() {
			seen[i] = v
		}
		require.Len(t, seen, 10)
		for i := range 10 {
			assert.InDelta(t, float64(i*i), seen[i], 1e-9)
		}
	})

	t.Run("2D block order", func(t *testing.T) {
		a, err := NewArray2[float64](6, 5, 32)
		require.NoError(t, err)
		for j := range 5 {
			for i := range 6 {
				a.Set(i, j, float64(i+10*j))
			}
		}

		var order [][2]int
		for ij, v := range a.All() {
			assert.InDelta(t, float64(ij[0]+10*ij[1]), v, 1e-4)
			order = append(order, ij)
		}
		require.Len(t, order, 30)
		// first block is fully visited before the second starts
		assert.Equal(t, [2]int{0, 0}, order[0])
		assert.Equal(t, [2]int{3, 3}, order[15])
		assert.Equal(t, [2]int{4, 0}, order[16])
	})

	t.Run("3D early stop", func(t *testing.T) {
		a, err := NewArray3[float32](5, 5, 5, 16)
		require.NoError(t, err)

		n := 0
		for range a.All() {
			n++
			if n == 3 {
				break
			}
		}
		assert.Equal(t, 3, n)
	})
}

// ==============================
// Storage management
// ==============================

func TestArray_Resize(t *testing.T) {
	a, err := NewArray2[float64](8, 8, 16)
	require.NoError(t, err)
	size := a.CompressedSize()

	a.Resize(9, 8, true)
	assert.Equal(t, 9, a.SizeX())
	assert.Equal(t, 72, a.Size())
	assert.Greater(t, a.CompressedSize(), size)

	a.Resize(0, 8, true)
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 0, a.CompressedSize())
}

func TestArray_SetRate(t *testing.T) {
	a, err := NewArray1[float64](16, 8, WithData(smooth1(16)))
	require.NoError(t, err)
	size := a.CompressedSize()

	rate, err := a.SetRate(32)
	require.NoError(t, err)
	assert.Equal(t, 32.0, rate)
	assert.Equal(t, 2*size, a.CompressedSize())
	// contents are discarded
	assert.Equal(t, 0.0, a.Get(3))

	a.Set(3, 1.5)
	for _, bad := range []float64{0, -4, math.NaN(), math.Inf(1)} {
		rate, err := a.SetRate(bad)
		require.ErrorIs(t, err, errs.ErrInvalidRate)
		assert.Equal(t, 32.0, rate)
		assert.Equal(t, 2*size, a.CompressedSize())
		assert.InDelta(t, 1.5, a.Get(3), 1e-6)
	}
}

func TestNewArray_InvalidRate(t *testing.T) {
	for _, rate := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewArray1[float64](8, rate)
		require.ErrorIs(t, err, errs.ErrInvalidRate)
		_, err = NewArray2[float32](8, 8, rate)
		require.ErrorIs(t, err, errs.ErrInvalidRate)
		_, err = NewArray3[int32](4, 4, 4, rate)
		require.ErrorIs(t, err, errs.ErrInvalidRate)
	}
}

func TestArray_DefaultCacheSize(t *testing.T) {
	tests := []struct {
		name  string
		nx    int
		lines int
	}{
		{"one block", 4, 1},
		{"four blocks", 16, 2},
		{"five blocks", 20, 4},
		{"sixty four blocks", 256, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewArray1[float64](tt.nx, 16)
			require.NoError(t, err)
			assert.Equal(t, tt.lines*4*8, a.CacheSize())
		})
	}
}

func TestArray_WithCacheSize(t *testing.T) {
	a, err := NewArray2[float32](32, 32, 8, WithCacheSize(1000))
	require.NoError(t, err)
	// 16 floats per line, 16 lines cover 1000 bytes
	assert.Equal(t, 16*16*4, a.CacheSize())
}

func TestArray_Stats(t *testing.T) {
	a, err := NewArray1[float64](8, 32)
	require.NoError(t, err)

	_ = a.Get(0)
	_ = a.Get(1)
	_ = a.Get(5)

	st := a.Stats()
	assert.Equal(t, int64(1), st.Hits)
	assert.Equal(t, int64(2), st.Misses)

	a.ResetStats()
	assert.Equal(t, CacheStats{}, a.Stats())
}

// ==============================
// Element and bulk paths
// ==============================

// elementArray adapts arrays of any dimensionality to raster-order element
// access for the mixed path checks below.
type elementArray[T codec.Scalar] struct {
	Array
	get    func(idx int) T
	set    func(idx int, v T)
	getAll func(dst []T) error
	setAll func(src []T) error
}

func newElementArray[T codec.Scalar](t *testing.T, ext []int, rate float64) elementArray[T] {
	t.Helper()

	switch len(ext) {
	case 1:
		a, err := NewArray1[T](ext[0], rate)
		require.NoError(t, err)

		return elementArray[T]{Array: a, get: a.Get, set: a.Set, getAll: a.GetAll, setAll: a.SetAll}
	case 2:
		a, err := NewArray2[T](ext[0], ext[1], rate)
		require.NoError(t, err)
		nx := ext[0]

		return elementArray[T]{
			Array:  a,
			get:    func(idx int) T { return a.Get(idx%nx, idx/nx) },
			set:    func(idx int, v T) { a.Set(idx%nx, idx/nx, v) },
			getAll: a.GetAll,
			setAll: a.SetAll,
		}
	default:
		a, err := NewArray3[T](ext[0], ext[1], ext[2], rate)
		require.NoError(t, err)
		nx, ny := ext[0], ext[1]

		return elementArray[T]{
			Array:  a,
			get:    func(idx int) T { return a.Get(idx%nx, (idx/nx)%ny, idx/(nx*ny)) },
			set:    func(idx int, v T) { a.Set(idx%nx, (idx/nx)%ny, idx/(nx*ny), v) },
			getAll: a.GetAll,
			setAll: a.SetAll,
		}
	}
}

func checkMixedPaths[T codec.Scalar](t *testing.T, scale, tol float64) {
	t.Helper()

	rate := float64(8 * codec.TypeOf[T]().Size())
	shapes := [][]int{{7}, {8}, {7, 6}, {8, 4}, {5, 6, 3}, {4, 8, 4}}

	for _, ext := range shapes {
		n := 1
		for _, e := range ext {
			n *= e
		}
		data := make([]T, n)
		for i := range data {
			data[i] = T(scale * math.Sin(float64(i)/3))
		}

		// bulk write, element reads from a cold cache
		bulk := newElementArray[T](t, ext, rate)
		require.NoError(t, bulk.setAll(data))
		bulk.ClearCache()
		byElement := make([]T, n)
		for i := range byElement {
			byElement[i] = bulk.get(i)
		}
		byBulk := make([]T, n)
		bulk.ClearCache()
		require.NoError(t, bulk.getAll(byBulk))
		require.Equal(t, byBulk, byElement, "%v: element reads disagree with GetAll", ext)
		for i := range data {
			require.InDelta(t, float64(data[i]), float64(byBulk[i]), tol, "%v[%d]", ext, i)
		}

		// element writes, written back, then a cold bulk read
		elem := newElementArray[T](t, ext, rate)
		for i, v := range data {
			elem.set(i, v)
		}
		elem.FlushCache()
		elem.ClearCache()
		got := make([]T, n)
		require.NoError(t, elem.getAll(got))
		for i := range data {
			require.InDelta(t, float64(data[i]), float64(got[i]), tol, "%v[%d]", ext, i)
			require.Equal(t, got[i], elem.get(i), "%v[%d]", ext, i)
		}
	}
}

func TestArray_MixedElementAndBulk(t *testing.T) {
	t.Run("int32", func(t *testing.T) { checkMixedPaths[int32](t, 1<<20, 256) })
	t.Run("int64", func(t *testing.T) { checkMixedPaths[int64](t, 1<<40, 1<<26) })
	t.Run("float32", func(t *testing.T) { checkMixedPaths[float32](t, 1, 1e-4) })
	t.Run("float64", func(t *testing.T) { checkMixedPaths[float64](t, 1, 1e-8) })
}
