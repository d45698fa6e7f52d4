// Package bitstream implements a randomly seekable stream of bits over a
// caller-owned byte buffer.
//
// The buffer is treated as a sequence of 64-bit words. Bits are appended to
// a word starting at its least significant bit, and a word is stored to
// the buffer once it is full (or when the stream is flushed). Reading mirrors
// writing: a word is loaded into a bit buffer and consumed from the low end.
//
// A Bitstream keeps a single cursor that is used either for reading or for
// writing. Mixing reads and writes without an intervening seek is not
// meaningful, exactly as with the word-buffered cursor it models.
//
// # Capacity
//
// Reads beyond the end of the buffer return zero bits. Writes beyond the end
// panic; size buffers with stream.MaximumSize.
package bitstream

import (
	"fmt"

	"github.com/arloliu/zfp/endian"
)

const (
	// WordBits is the number of bits in one stream word.
	WordBits = 64
	// WordBytes is the number of bytes in one stream word.
	WordBytes = endian.WordBytes
)

// Bitstream is a bit-granular cursor over a byte buffer.
type Bitstream struct {
	// Hot path fields
	buffer uint64 // partially read or written word
	bits   uint   // number of buffered bits
	ptr    int    // index of the next word to load or store

	// strided word access (see SetStride)
	strided bool
	mask    int
	delta   int

	data   []byte
	words  int
	engine endian.EndianEngine
}

// New opens a bit stream over buf using little-endian words.
//
// Only whole words are addressable: the capacity is len(buf)/8 words.
//
// Parameters:
//   - buf: Backing storage, borrowed for the lifetime of the stream
//
// Returns:
//   - *Bitstream: A stream positioned at bit offset 0
func New(buf []byte) *Bitstream {
	return NewWithEngine(buf, endian.GetLittleEndianEngine())
}

// NewWithEngine opens a bit stream over buf using the given word byte order.
func NewWithEngine(buf []byte, engine endian.EndianEngine) *Bitstream {
	return &Bitstream{
		data:   buf,
		words:  len(buf) / WordBytes,
		engine: engine,
	}
}

// Close detaches the stream from its buffer. The buffer itself is left
// untouched and remains owned by the caller.
func (s *Bitstream) Close() {
	s.data = nil
	s.words = 0
	s.Rewind()
}

// Clone returns a stream over the same buffer with an independent copy of
// the cursor state.
func (s *Bitstream) Clone() *Bitstream {
	c := *s
	return &c
}

// Data returns the backing buffer.
func (s *Bitstream) Data() []byte {
	return s.data
}

// Capacity returns the number of addressable bytes (whole words only).
func (s *Bitstream) Capacity() int {
	return s.words * WordBytes
}

// Size returns the number of bytes up to and including the last word the
// cursor has touched; after Flush it is the byte size of the written stream.
func (s *Bitstream) Size() int {
	return s.ptr * WordBytes
}

// WordBits returns the stream word size in bits.
func (s *Bitstream) WordBits() int {
	return WordBits
}

func (s *Bitstream) readWord() uint64 {
	var w uint64
	if s.ptr < s.words {
		w = endian.LoadWord(s.engine, s.data, s.ptr)
	}
	s.advance()

	return w
}

func (s *Bitstream) writeWord(w uint64) {
	if s.ptr >= s.words {
		panic(fmt.Sprintf("bitstream: write beyond capacity (%d words)", s.words))
	}
	endian.StoreWord(s.engine, s.data, s.ptr, w)
	s.advance()
}

func (s *Bitstream) advance() {
	s.ptr++
	if s.strided && s.ptr&s.mask == 0 {
		s.ptr += s.delta
	}
}

// ReadBit reads a single bit.
func (s *Bitstream) ReadBit() uint64 {
	if s.bits == 0 {
		s.buffer = s.readWord()
		s.bits = WordBits
	}
	s.bits--
	bit := s.buffer & 1
	s.buffer >>= 1

	return bit
}

// WriteBit writes the least significant bit of bit and returns it.
func (s *Bitstream) WriteBit(bit uint64) uint64 {
	bit &= 1
	s.buffer |= bit << s.bits
	s.bits++
	if s.bits == WordBits {
		s.writeWord(s.buffer)
		s.buffer = 0
		s.bits = 0
	}

	return bit
}

// ReadBits reads n bits (0 <= n <= 64); the first bit read is the least
// significant bit of the result.
func (s *Bitstream) ReadBits(n uint) uint64 {
	value := s.buffer
	if s.bits < n {
		w := s.readWord()
		value |= w << s.bits
		s.bits += WordBits - n
		s.buffer = w >> (WordBits - s.bits)
	} else {
		s.bits -= n
		s.buffer >>= n
	}
	if n < WordBits {
		value &= (uint64(1) << n) - 1
	}

	return value
}

// WriteBits writes the low n bits of value (0 <= n <= 64), least significant
// bit first, and returns value >> n so that wide values can be written in
// chained calls.
func (s *Bitstream) WriteBits(value uint64, n uint) uint64 {
	s.buffer |= value << s.bits
	s.bits += n
	if s.bits >= WordBits {
		s.bits -= WordBits
		s.writeWord(s.buffer)
		s.buffer = value >> (n - s.bits)
	}
	s.buffer &= (uint64(1) << s.bits) - 1

	return value >> n
}

// RTell returns the read position in bits.
func (s *Bitstream) RTell() uint64 {
	return uint64(s.ptr)*WordBits - uint64(s.bits)
}

// WTell returns the write position in bits.
func (s *Bitstream) WTell() uint64 {
	return uint64(s.ptr)*WordBits + uint64(s.bits)
}

// Rewind positions the cursor at the beginning of the stream.
func (s *Bitstream) Rewind() {
	s.ptr = 0
	s.buffer = 0
	s.bits = 0
}

// RSeek positions the cursor for reading at the given bit offset.
func (s *Bitstream) RSeek(offset uint64) {
	n := uint(offset % WordBits)
	s.ptr = int(offset / WordBits)
	if n != 0 {
		s.buffer = s.readWord() >> n
		s.bits = WordBits - n
	} else {
		s.buffer = 0
		s.bits = 0
	}
}

// WSeek positions the cursor for writing at the given bit offset. Bits of
// the current word below the offset are preserved.
func (s *Bitstream) WSeek(offset uint64) {
	n := uint(offset % WordBits)
	s.ptr = int(offset / WordBits)
	if n != 0 {
		var w uint64
		if s.ptr < s.words {
			w = endian.LoadWord(s.engine, s.data, s.ptr)
		}
		s.buffer = w & ((uint64(1) << n) - 1)
		s.bits = n
	} else {
		s.buffer = 0
		s.bits = 0
	}
}

// Skip advances the read cursor by n bits.
func (s *Bitstream) Skip(n uint64) {
	s.RSeek(s.RTell() + n)
}

// Pad writes n zero bits.
func (s *Bitstream) Pad(n uint64) {
	total := uint64(s.bits) + n
	for total >= WordBits {
		s.writeWord(s.buffer)
		s.buffer = 0
		total -= WordBits
	}
	s.bits = uint(total)
}

// Align advances the read cursor to the next word boundary.
func (s *Bitstream) Align() {
	if s.bits != 0 {
		s.Skip(uint64(s.bits))
	}
}

// Flush pads the partially written word with zeros and stores it. It
// returns the number of padding bits.
func (s *Bitstream) Flush() uint64 {
	var n uint64
	if s.bits != 0 {
		n = uint64(WordBits - s.bits)
		s.Pad(n)
	}

	return n
}

// Copy copies n bits from the read cursor of src to the write cursor of dst.
func Copy(dst, src *Bitstream, n uint64) {
	for n > WordBits {
		dst.WriteBits(src.ReadBits(WordBits), WordBits)
		n -= WordBits
	}
	if n > 0 {
		dst.WriteBits(src.ReadBits(uint(n)), uint(n))
	}
}

// SetStride makes word access skip delta blocks of block words after every
// block words, which interleaves several logical streams in one buffer.
// block must be a power of two; block 0 disables striding.
//
// Returns false (and leaves the stream unchanged) if block is not a power of two.
func (s *Bitstream) SetStride(block, delta int) bool {
	if block < 0 || block&(block-1) != 0 {
		return false
	}
	if block == 0 {
		s.strided = false
		s.mask = 0
		s.delta = 0

		return true
	}
	s.strided = true
	s.mask = block - 1
	s.delta = delta * block

	return true
}
