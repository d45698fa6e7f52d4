package compress

// ZstdCompressor compresses with Zstandard. It gives the best ratio of the
// built-in codecs and suits streams written once and archived.
//
// With cgo and the gozstd build tag it binds the reference C library;
// otherwise it uses the pure Go implementation.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor returns a Zstandard codec with default settings.
//
// Example:
//
//	c := NewZstdCompressor()
//	packed, err := c.Compress(stream)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
