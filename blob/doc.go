// Package blob wraps zfp streams and compressed arrays in a self-checking
// envelope suitable for storage or transport.
//
// # Blob Format
//
// A blob is a 32-byte envelope header (see section.BlobHeader) followed by
// the payload, optionally passed through a secondary byte compressor:
//
//	+----------------------+------------------------------------------+
//	| envelope header (32) | payload (StoredSize bytes)               |
//	+----------------------+------------------------------------------+
//
// The payload depends on the blob kind:
//   - KindStream: a zfp stream with a full header (magic, field metadata
//     and mode) followed by the compressed blocks. Words are written in the
//     byte order recorded in the envelope.
//   - KindArray: the 12-byte header of a compressed array followed by its
//     fixed-rate storage. Array storage is always little-endian.
//
// The envelope records the raw payload size and its xxHash64, verified on
// Decode after secondary decompression.
//
// # Usage
//
//	data, err := blob.EncodeStream(field.New2(samples, nx, ny),
//		blob.WithAccuracy(1e-3),
//		blob.WithCompression(format.CompressionZstd))
//	...
//	b, err := blob.Decode(data)
//	f, err := b.Field()
//	samples := field.Slice[float64](f)
package blob
