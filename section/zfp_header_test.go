package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zfp/bitstream"
	"github.com/arloliu/zfp/format"
)

func TestZFPHeader_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		meta uint64
		mode uint64
		mask uint
		bits int
	}{
		{"full short mode", 0x123456789, 1024, format.HeaderFull, 96},
		{"full long mode", 0x123456789, 0xabcdef0123456fff, format.HeaderFull, 148},
		{"magic only", 0, 0, format.HeaderMagic, 32},
		{"meta only", 0xfffffffffffff, 0, format.HeaderMeta, 52},
		{"mode only", 0, 2176, format.HeaderMode, 12},
		{"meta and mode", 42, 7, format.HeaderMeta | format.HeaderMode, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 64)
			w := bitstream.New(buf)
			require.Equal(t, tt.bits, WriteZFPHeader(w, tt.meta, tt.mode, tt.mask))
			require.Equal(t, uint64(tt.bits), w.WTell())
			w.Flush()

			r := bitstream.New(buf)
			h, n := ReadZFPHeader(r, tt.mask)
			require.Equal(t, tt.bits, n)
			if tt.mask&format.HeaderMagic != 0 {
				require.Equal(t, uint8(format.CodecVersion), h.Version)
			}
			if tt.mask&format.HeaderMeta != 0 {
				require.Equal(t, tt.meta, h.Meta)
			}
			if tt.mask&format.HeaderMode != 0 {
				require.Equal(t, tt.mode, h.Mode)
			}
		})
	}
}

func TestZFPHeader_MagicLayout(t *testing.T) {
	buf := make([]byte, 16)
	w := bitstream.New(buf)
	WriteZFPHeader(w, 0, 0, format.HeaderMagic)
	w.Flush()

	require.Equal(t, []byte{'z', 'f', 'p', format.CodecVersion}, buf[:4])
}

func TestZFPHeader_NullMeta(t *testing.T) {
	buf := make([]byte, 32)
	w := bitstream.New(buf)

	require.Zero(t, WriteZFPHeader(w, format.MetaNull, 0, format.HeaderFull))
	require.Zero(t, w.WTell())

	// magic alone ignores metadata
	require.Equal(t, 32, WriteZFPHeader(w, format.MetaNull, 0, format.HeaderMagic))
}

func TestZFPHeader_BadMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"zero", []byte{0, 0, 0, 0}},
		{"wrong letter", []byte{'z', 'f', 'q', format.CodecVersion}},
		{"wrong version", []byte{'z', 'f', 'p', format.CodecVersion + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 16)
			copy(buf, tt.data)
			_, n := ReadZFPHeader(bitstream.New(buf), format.HeaderFull)
			require.Zero(t, n)
		})
	}
}

func TestModeBits(t *testing.T) {
	require.Equal(t, 12, ModeBits(0))
	require.Equal(t, 12, ModeBits(format.ModeShortMax))
	require.Equal(t, 64, ModeBits(format.ModeShortMax+1))
}

func TestArrayHeaderSize(t *testing.T) {
	require.Equal(t, 96, ArrayHeaderBits)
	require.Equal(t, 12, ArrayHeaderSize)
}
