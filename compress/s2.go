package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor compresses with S2, a Snappy extension that trades some ratio
// for speed. An S2 block records its decoded length in a varint prefix.
type S2Compressor struct{}

var (
	_ Codec             = (*S2Compressor)(nil)
	_ SizedDecompressor = (*S2Compressor)(nil)
)

// NewS2Compressor returns an S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses data using S2. Empty input yields an empty block.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses an S2 block of any recorded size.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}

// DecompressSized decompresses a block whose recorded length must equal size.
// The length prefix is checked before any output is allocated.
func (c S2Compressor) DecompressSized(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		if size != 0 {
			return nil, fmt.Errorf("s2: empty block cannot expand to %d bytes", size)
		}

		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if n != size {
		return nil, fmt.Errorf("s2: block expands to %d bytes, want %d", n, size)
	}

	return s2.Decode(make([]byte, size), data)
}
