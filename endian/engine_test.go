package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	require := require.New(t)

	result := CheckEndianness()

	var testValue uint16 = 0x0102
	testBytes := (*[2]byte)(unsafe.Pointer(&testValue))

	switch testBytes[0] {
	case 0x01:
		require.Equal(binary.BigEndian, result)
	case 0x02:
		require.Equal(binary.LittleEndian, result)
	default:
		require.Failf("unexpected byte value", "got: %v", testBytes[0])
	}
}

func TestGetNativeEngine(t *testing.T) {
	if IsNativeLittleEndian() {
		require.Equal(t, GetLittleEndianEngine(), GetNativeEngine())
	} else {
		require.Equal(t, GetBigEndianEngine(), GetNativeEngine())
	}
}

func TestLoadStoreWord(t *testing.T) {
	tests := []struct {
		name   string
		engine EndianEngine
		first  byte
	}{
		{"little", GetLittleEndianEngine(), 0x08},
		{"big", GetBigEndianEngine(), 0x01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 3*WordBytes)
			StoreWord(tt.engine, buf, 1, 0x0102030405060708)

			require.Equal(t, tt.first, buf[WordBytes], "first byte of word 1")
			require.Equal(t, uint64(0x0102030405060708), LoadWord(tt.engine, buf, 1))
			require.Zero(t, LoadWord(tt.engine, buf, 0))
			require.Zero(t, LoadWord(tt.engine, buf, 2))
		})
	}
}
