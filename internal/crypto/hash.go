// Package crypto provides the hashing primitives used to derive asset
// identifiers.
package crypto

import "crypto/sha512"

// Sha512Half returns the first 32 bytes of the SHA-512 hash of msg.
func Sha512Half(msg []byte) [32]byte {
	h := sha512.Sum512(msg)
	var result [32]byte
	copy(result[:], h[:32])
	return result
}
