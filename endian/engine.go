// Package endian provides the byte order used to lay out 64-bit stream words
// and fixed-width envelope fields in memory.
//
// A zfp bit stream is a sequence of 64-bit words whose bits are filled least
// significant bit first. How those words map to bytes is decided by an
// EndianEngine. Little-endian is the default: it makes the stream a plain
// little-endian bit sequence that is portable across hosts.
//
//	engine := endian.GetLittleEndianEngine()
//	word := endian.LoadWord(engine, buf, 3) // bytes 24..31
//
// All functions in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// WordBytes is the size in bytes of one stream word.
const WordBytes = 8

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness reports the byte order of the host.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	if IsNativeLittleEndian() {
		return binary.LittleEndian
	}

	return binary.BigEndian
}

// LoadWord reads the 64-bit word with the given word index from buf.
//
// The caller guarantees that buf holds at least (index+1)*WordBytes bytes.
func LoadWord(engine EndianEngine, buf []byte, index int) uint64 {
	return engine.Uint64(buf[index*WordBytes:])
}

// StoreWord writes w as the word with the given word index into buf.
func StoreWord(engine EndianEngine, buf []byte, index int, w uint64) {
	engine.PutUint64(buf[index*WordBytes:], w)
}
