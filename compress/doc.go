// Package compress provides secondary byte compressors for serialized zfp
// streams.
//
// zfp removes most of the redundancy of smooth floating-point data, but a
// fixed-rate stream still carries padding bits and, for slowly varying
// fields, repeated bit-plane prefixes. Blobs can pass their payload through
// one of the codecs here before storing it:
//   - None: the stream is stored as is
//   - Zstd: best ratio, moderate speed
//   - S2: balanced
//   - LZ4: fastest decompression
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//		return err
//	}
//	packed, err := codec.Compress(stream)
//	...
//	stream, err = codec.Decompress(packed)
//
// # Build Tags
//
// Zstandard uses github.com/klauspost/compress/zstd by default. Building with
// cgo enabled and the gozstd tag switches to github.com/valyala/gozstd,
// which wraps the reference C implementation. Both produce standard frames,
// so data written by one is readable by the other.
//
// # Thread Safety
//
// All codecs are stateless values backed by sync.Pool and are safe for
// concurrent use.
package compress
