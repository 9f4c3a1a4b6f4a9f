// Package hash wraps xxHash64 for the handful of internal callers that need
// a fast, non-cryptographic fingerprint rather than a full cryptographic
// digest (see crypto.Sum for that).
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a string, used to key lookup tables by name.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Bytes computes the xxHash64 of a byte slice, used to fingerprint
// arbitrary binary blobs such as trained compression dictionaries.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}
