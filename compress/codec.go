package compress

import (
	"fmt"

	"github.com/arloliu/zfp/format"
)

// Compressor compresses a serialized zfp stream.
//
// Fixed-rate streams of smooth data leave long runs of zero padding and
// repeated bit-plane prefixes that a byte compressor can still remove.
type Compressor interface {
	// Compress returns the compressed form of data. The input is not
	// modified; the result may alias it for CompressionNone.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores data produced by the matching Compressor.
//
// Implementations are safe for concurrent use.
type Decompressor interface {
	// Decompress returns the original bytes, or an error if data is
	// corrupt or was produced by a different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// SizedDecompressor is implemented by codecs whose format does not record
// the decompressed size, so a caller that knows it saves the buffer growth.
type SizedDecompressor interface {
	DecompressSized(data []byte, size int) ([]byte, error)
}

// DecompressSized decompresses data that is expected to expand to size
// bytes, taking the codec's sized path when it has one.
func DecompressSized(c Decompressor, data []byte, size int) ([]byte, error) {
	if sd, ok := c.(SizedDecompressor); ok {
		return sd.DecompressSized(data, size)
	}

	return c.Decompress(data)
}

// CompressionStats describes one secondary compression pass.
type CompressionStats struct {
	Algorithm      format.CompressionType
	OriginalSize   int64
	CompressedSize int64
}

// CompressionRatio returns compressed size over original size, 0 for an
// empty input.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec returns a new Codec for compressionType.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of the payload, used in error messages
//
// Returns:
//   - Codec: Codec for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// Measure compresses data with codec and reports the sizes.
func Measure(codec Codec, typ format.CompressionType, data []byte) ([]byte, CompressionStats, error) {
	out, err := codec.Compress(data)
	if err != nil {
		return nil, CompressionStats{}, err
	}

	return out, CompressionStats{
		Algorithm:      typ,
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(out)),
	}, nil
}
