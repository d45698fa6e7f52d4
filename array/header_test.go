package array

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/zfp/bitstream"
	"github.com/arloliu/zfp/errs"
	"github.com/arloliu/zfp/field"
	"github.com/arloliu/zfp/format"
	"github.com/arloliu/zfp/section"
	"github.com/arloliu/zfp/stream"
)

func headerError(t *testing.T, err error) *errs.HeaderError {
	t.Helper()

	var he *errs.HeaderError
	require.True(t, errors.As(err, &he), "expected *errs.HeaderError, got %v", err)

	return he
}

func TestArray2_HeaderRoundTrip(t *testing.T) {
	a, err := NewArray2[float64](9, 7, 16, WithData(smooth2(9, 7)))
	require.NoError(t, err)

	h, err := a.Header()
	require.NoError(t, err)

	b, err := NewArray2FromHeader[float64](h, a.CompressedData())
	require.NoError(t, err)
	assert.Equal(t, a.SizeX(), b.SizeX())
	assert.Equal(t, a.SizeY(), b.SizeY())
	assert.Equal(t, a.Rate(), b.Rate())
	assert.Equal(t, a.CompressedData(), b.CompressedData())

	for j := range 7 {
		for i := range 9 {
			assert.Equal(t, a.Get(i, j), b.Get(i, j))
		}
	}
}

func TestConstruct(t *testing.T) {
	t.Run("2D doubles", func(t *testing.T) {
		a, err := NewArray2[float64](5, 6, 24, WithData(smooth2(5, 6)))
		require.NoError(t, err)
		h, err := a.Header()
		require.NoError(t, err)

		c, err := Construct(h, a.CompressedData())
		require.NoError(t, err)
		require.IsType(t, &Array2[float64]{}, c)
		assert.Equal(t, 2, c.Dims())
		assert.Equal(t, 30, c.Len())
		assert.Equal(t, a.CompressedData(), c.CompressedData())
	})

	t.Run("1D floats without buffer", func(t *testing.T) {
		a, err := NewArray1[float32](17, 8)
		require.NoError(t, err)
		h, err := a.Header()
		require.NoError(t, err)

		c, err := Construct(h, nil)
		require.NoError(t, err)
		require.IsType(t, &Array1[float32]{}, c)
		assert.Equal(t, format.TypeFloat32, c.Type())
		assert.Equal(t, a.Rate(), c.Rate())
	})

	t.Run("3D int64", func(t *testing.T) {
		a, err := NewArray3[int64](3, 4, 5, 16)
		require.NoError(t, err)
		h, err := a.Header()
		require.NoError(t, err)

		c, err := Construct(h, nil)
		require.NoError(t, err)
		require.IsType(t, &Array3[int64]{}, c)
	})
}

func TestHeader_Errors(t *testing.T) {
	a, err := NewArray2[float64](9, 7, 16)
	require.NoError(t, err)
	h, err := a.Header()
	require.NoError(t, err)

	t.Run("type and dims mismatch", func(t *testing.T) {
		_, err := NewArray1FromHeader[float32](h, nil)
		he := headerError(t, err)
		assert.True(t, he.Has(errs.MsgTypeMismatch))
		assert.True(t, he.Has(errs.MsgDimsMismatch))
		assert.Len(t, he.Messages(), 2)
	})

	t.Run("bad magic", func(t *testing.T) {
		_, err := Construct(Header{}, nil)
		he := headerError(t, err)
		assert.Equal(t, []string{errs.MsgBadMagic}, he.Messages())
	})

	t.Run("buffer too small", func(t *testing.T) {
		_, err := NewArray2FromHeader[float64](h, a.CompressedData()[:4])
		he := headerError(t, err)
		assert.True(t, he.Has(errs.MsgBufferTooSmall))
	})

	t.Run("rate not word aligned", func(t *testing.T) {
		// 16 bits per 2D double block, as a stream without aligned rate writes
		f := field.New2(make([]float64, 64), 8, 8)
		buf := make([]byte, 2*bitstream.WordBytes)
		zs := stream.Open(bitstream.New(buf))
		zs.SetRate(1, format.TypeFloat64, 2, false)
		require.Equal(t, section.ArrayHeaderBits, zs.WriteHeader(f, format.HeaderFull))
		zs.Flush()

		var unaligned Header
		copy(unaligned[:], buf)

		_, err := NewArray2FromHeader[float64](unaligned, nil)
		he := headerError(t, err)
		assert.Equal(t, []string{errs.MsgUnalignedRate}, he.Messages())

		_, err = Construct(unaligned, make([]byte, 1024))
		he = headerError(t, err)
		assert.True(t, he.Has(errs.MsgUnalignedRate))
	})

	t.Run("long mode on write", func(t *testing.T) {
		b, err := NewArray3[float64](4, 4, 4, 64)
		require.NoError(t, err)
		_, err = b.Header()
		he := headerError(t, err)
		assert.True(t, he.Has(errs.MsgLongHeader))
	})

	t.Run("no storage", func(t *testing.T) {
		b, err := NewArray1[float64](0, 16)
		require.NoError(t, err)
		_, err = b.Header()
		assert.True(t, errs.IsHeaderError(err))
	})
}
