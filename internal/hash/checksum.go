// Package hash computes payload checksums for blob envelopes.
package hash

import "github.com/cespare/xxhash/v2"

// Checksum returns the xxHash64 of data.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
