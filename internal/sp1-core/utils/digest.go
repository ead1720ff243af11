package utils

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Digest hashes data with the named function. It backs the public output
// digest, so the set of names matches Config.OutputDigest.
func Digest(hashFunc string, data []byte) ([]byte, error) {
	switch hashFunc {
	case "sha256":
		h := sha256.Sum256(data)
		return h[:], nil
	case "sha3":
		h := sha3.Sum256(data)
		return h[:], nil
	default:
		return nil, fmt.Errorf("unsupported digest function '%s'", hashFunc)
	}
}

// DigestWords hashes the little-endian encoding of words.
func DigestWords(hashFunc string, words []uint32) ([]byte, error) {
	return Digest(hashFunc, WordsToBytesLE(words))
}
