package utils

import "encoding/binary"

// IsPowerOfTwo checks if a number is a power of 2
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// NextPowerOfTwo returns the smallest power of 2 >= n
func NextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	power := 1
	for power < n {
		power <<= 1
	}
	return power
}

// WordsToBytesLE flattens words into little-endian bytes.
func WordsToBytesLE(words []uint32) []byte {
	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

// BytesToWordsLE packs little-endian bytes into words. A trailing partial
// word is zero-padded.
func BytesToWordsLE(b []byte) []uint32 {
	words := make([]uint32, (len(b)+3)/4)
	for i := range words {
		var chunk [4]byte
		copy(chunk[:], b[i*4:])
		words[i] = binary.LittleEndian.Uint32(chunk[:])
	}
	return words
}
