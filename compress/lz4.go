package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4.Compressor keeps a hash table between calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses with LZ4 block format. It is the fastest of the
// built-in codecs to decompress.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor returns an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data using LZ4. Incompressible input yields an empty
// block, which Decompress cannot restore, so callers should store such
// payloads uncompressed.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dstSize := lz4.CompressBlockBound(len(data))
	dst := make([]byte, dstSize)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// maxLZ4Expansion bounds the output of one LZ4 block per input byte.
const maxLZ4Expansion = 255

// Decompress decompresses LZ4 data. The block format does not record the
// original size, so the output buffer starts at four times the input and
// doubles up to 128MiB.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	const maxSize = 128 * 1024 * 1024
	limit := min(maxSize, maxLZ4Expansion*len(data)+16)
	for size := min(len(data)*4, limit); ; size = min(2*size, limit) {
		out, err := c.DecompressSized(data, size)
		if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && size < limit {
			continue
		}

		return out, err
	}
}

// DecompressSized decompresses a block that expands to at most size bytes.
func (c LZ4Compressor) DecompressSized(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if size < 0 || size > maxLZ4Expansion*len(data)+16 {
		return nil, fmt.Errorf("lz4: %d bytes cannot expand to %d", len(data), size)
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data, buf)
	if err != nil {
		return nil, err
	}

	return buf[:n], nil
}
