package array

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/arloliu/zfp/errs"
)

// ==============================
// Shared-cache views
// ==============================

func TestView1(t *testing.T) {
	a, err := NewArray1[float64](20, 64)
	require.NoError(t, err)

	v := NewView1(a, 5, 10)
	require.Equal(t, 10, v.Size())

	v.Set(0, 1.5)
	v.Ref(9).Set(-2)
	assert.InDelta(t, 1.5, a.Get(5), 1e-9)
	assert.InDelta(t, -2.0, a.Get(14), 1e-9)

	a.Set(6, 4)
	cv := NewConstView1(a, 5, 10)
	assert.InDelta(t, 4.0, cv.Get(1), 1e-9)
}

func TestView2_Flat(t *testing.T) {
	a, err := NewArray2[float64](10, 8, 32, WithData(smooth2(10, 8)))
	require.NoError(t, err)

	v := NewView2(a, 2, 3, 5, 4)
	require.Equal(t, 20, v.Size())
	require.Equal(t, 5, v.SizeX())
	require.Equal(t, 4, v.SizeY())

	for idx := range v.Size() {
		i, j := v.IJ(idx)
		require.Equal(t, idx, v.Index(i, j))
		assert.Equal(t, a.Get(2+i, 3+j), v.GetFlat(idx))
		assert.Equal(t, v.Get(i, j), v.GetFlat(idx))
	}

	v.SetFlat(v.Index(4, 3), 9)
	assert.InDelta(t, 9.0, a.Get(6, 6), 1e-4)
}

func TestView3_Flat(t *testing.T) {
	a, err := NewArray3[float64](6, 6, 6, 32, WithData(smooth3(6, 6, 6)))
	require.NoError(t, err)

	v := NewView3(a, 1, 2, 3, 4, 3, 2)
	require.Equal(t, 24, v.Size())

	seen := map[[3]int]bool{}
	for idx := range v.Size() {
		i, j, k := v.IJK(idx)
		require.Equal(t, idx, v.Index(i, j, k))
		seen[[3]int{i, j, k}] = true
		assert.Equal(t, a.Get(1+i, 2+j, 3+k), v.GetFlat(idx))
	}
	assert.Len(t, seen, 24)

	v.Set(3, 2, 1, -1)
	assert.InDelta(t, -1.0, a.Get(4, 4, 4), 1e-4)

	cv := NewConstView3(a, 1, 2, 3, 4, 3, 2)
	assert.Equal(t, a.Get(4, 4, 4), cv.Get(3, 2, 1))
}

func TestNestedView(t *testing.T) {
	a, err := NewArray3[float64](5, 4, 3, 32, WithData(smooth3(5, 4, 3)))
	require.NoError(t, err)

	v := NewNestedView3(a, 0, 0, 0, 5, 4, 3)
	require.Equal(t, 5, v.SizeX())
	require.Equal(t, 4, v.SizeY())
	require.Equal(t, 3, v.SizeZ())

	for k := range 3 {
		slice := v.Slice(k)
		for j := range 4 {
			row := slice.Row(j)
			require.Equal(t, 5, row.Size())
			for i := range 5 {
				assert.Equal(t, a.Get(i, j, k), row.Get(i))
				assert.Equal(t, a.Get(i, j, k), slice.Get(i, j))
			}
		}
	}

	v.Slice(2).Row(1).Set(3, 7)
	assert.InDelta(t, 7.0, a.Get(3, 1, 2), 1e-4)

	b, err := NewArray2[float64](6, 6, 32)
	require.NoError(t, err)
	n2 := NewNestedView2(b, 1, 1, 4, 4)
	n2.Row(2).Ref(3).Set(2.5)
	assert.InDelta(t, 2.5, b.Get(4, 3), 1e-6)
	assert.InDelta(t, 2.5, n2.Get(3, 2), 1e-6)

	c, err := NewArray1[float64](8, 32)
	require.NoError(t, err)
	n1 := NewNestedView1(c, 4, 4)
	n1.Set(0, 1)
	assert.InDelta(t, 1.0, c.Get(4), 1e-6)
}

// ==============================
// Private views
// ==============================

func TestPartition(t *testing.T) {
	tests := []struct {
		name        string
		off, size   int
		count       int
		wantOffsets []int
		wantSizes   []int
	}{
		{"even", 0, 16, 4, []int{0, 4, 8, 12}, []int{4, 4, 4, 4}},
		{"ragged tail", 0, 10, 3, []int{0, 4, 8}, []int{4, 4, 2}},
		{"more pieces than blocks", 0, 6, 4, []int{0, 0, 4, 4}, []int{0, 4, 0, 2}},
		{"unaligned window", 5, 9, 2, []int{5, 8}, []int{3, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := 0
			for i := range tt.count {
				off, size := partition(tt.off, tt.size, i, tt.count)
				assert.Equal(t, tt.wantOffsets[i], off, "offset %d", i)
				assert.Equal(t, tt.wantSizes[i], size, "size %d", i)
				total += size
			}
			assert.Equal(t, tt.size, total)
		})
	}
}

func TestPrivateView_Partition(t *testing.T) {
	a, err := NewArray2[float64](9, 13, 32)
	require.NoError(t, err)

	v := NewPrivateView2(a, 0, 0, 9, 13)
	require.NoError(t, v.Partition(1, 2))
	x, y := v.Offset()
	assert.Equal(t, 0, x)
	assert.Equal(t, 8, y)
	assert.Equal(t, 9, v.SizeX())
	assert.Equal(t, 5, v.SizeY())

	require.ErrorIs(t, v.Partition(2, 2), errs.ErrPartition)
	require.ErrorIs(t, v.Partition(0, 0), errs.ErrPartition)

	b, err := NewArray3[float64](4, 12, 8, 16)
	require.NoError(t, err)
	w := NewPrivateConstView3(b, 0, 0, 0, 4, 12, 8)
	require.NoError(t, w.Partition(2, 3))
	_, oy, _ := w.Offset()
	assert.Equal(t, 8, oy)
	assert.Equal(t, 4, w.SizeY())
}

func TestPrivateView_FlushReachesArray(t *testing.T) {
	a, err := NewArray1[float64](12, 32)
	require.NoError(t, err)
	a.Set(0, 1)

	v := NewPrivateView1(a, 0, 12)
	// the array's pending write was flushed on creation
	assert.InDelta(t, 1.0, v.Get(0), 1e-9)
	assert.Equal(t, a.CacheSize(), v.CacheSize())

	v.Set(9, 5)
	v.FlushCache()
	a.ClearCache()
	assert.InDelta(t, 5.0, a.Get(9), 1e-9)

	v.SetCacheSize(1)
	assert.Equal(t, 32, v.CacheSize())
	v.Set(1, 3)
	v.ClearCache()
	assert.InDelta(t, 0.0, v.Get(1), 1e-9)
}

func TestPrivateView_Concurrent(t *testing.T) {
	const nx, ny = 16, 12
	a, err := NewArray2[float64](nx, ny, 32)
	require.NoError(t, err)

	const n = 4
	var wg sync.WaitGroup
	for p := range n {
		v := NewPrivateView2(a, 0, 0, nx, ny)
		require.NoError(t, v.Partition(p, n))
		wg.Add(1)
		go func() {
			defer wg.Done()
			x, y := v.Offset()
			for j := range v.SizeY() {
				for i := range v.SizeX() {
					v.Set(i, j, float64((x+i)+100*(y+j)))
				}
			}
			v.FlushCache()
		}()
	}
	wg.Wait()
	a.ClearCache()

	for j := range ny {
		for i := range nx {
			assert.InDelta(t, float64(i+100*j), a.Get(i, j), 1e-3)
		}
	}
}

// ==============================
// Parallel helpers
// ==============================

func TestParallel1(t *testing.T) {
	const nx = 37
	a, err := NewArray1[float64](nx, 32)
	require.NoError(t, err)

	var covered atomic.Int64
	err = Parallel1(context.Background(), a, 4, func(_ context.Context, v *PrivateView1[float64]) error {
		x := v.Offset()
		for i := range v.Size() {
			v.Set(i, float64(x+i))
		}
		covered.Add(int64(v.Size()))

		return nil
	})
	require.NoError(t, err)
	require.Equal(t, int64(nx), covered.Load())

	for i := range nx {
		assert.InDelta(t, float64(i), a.Get(i), 1e-3)
	}
}

func TestParallel3(t *testing.T) {
	const nx, ny, nz = 8, 6, 10
	a, err := NewArray3[float64](nx, ny, nz, 32)
	require.NoError(t, err)

	err = Parallel3(context.Background(), a, 3, func(_ context.Context, v *PrivateView3[float64]) error {
		x, y, z := v.Offset()
		for k := range v.SizeZ() {
			for j := range v.SizeY() {
				for i := range v.SizeX() {
					v.Set(i, j, k, float64(x+i+y+j+z+k))
				}
			}
		}

		return nil
	})
	require.NoError(t, err)

	for k := range nz {
		for j := range ny {
			for i := range nx {
				assert.InDelta(t, float64(i+j+k), a.Get(i, j, k), 1e-3)
			}
		}
	}
}

func TestParallel_Errors(t *testing.T) {
	a, err := NewArray1[float64](32, 16)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = Parallel1(context.Background(), a, 4, func(_ context.Context, v *PrivateView1[float64]) error {
		if v.Offset() == 8 {
			return boom
		}

		return nil
	})
	require.ErrorIs(t, err, boom)

	err = Parallel1(context.Background(), a, 0, func(context.Context, *PrivateView1[float64]) error { return nil })
	require.ErrorIs(t, err, errs.ErrPartition)

	b, err := NewArray2[float64](8, 8, 16)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Parallel2(ctx, b, 2, func(context.Context, *PrivateView2[float64]) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}
