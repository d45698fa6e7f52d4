//go:build cgo && gozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

const zstdLevel = 3

// Compress compresses data using Zstandard.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decompresses Zstandard data.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}
