// Package sha256 implements the SHA-256 message schedule and compression
// precompiles.
package sha256

import (
	"math/bits"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/precompiles"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/runtime"
)

// ScheduleWords is the length of the expanded message schedule.
const ScheduleWords = 64

// StateWords is the length of the hash state.
const StateWords = 8

var roundConstants = [ScheduleWords]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// InitialState is the SHA-256 initial hash value.
var InitialState = [StateWords]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a, 0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

// ExtendChip expands w[0..16] into w[16..64] in place. arg1 points at the
// 64-word schedule.
type ExtendChip struct{}

// NewExtendChip creates the SHA_EXTEND syscall.
func NewExtendChip() *ExtendChip {
	return &ExtendChip{}
}

// Execute implements runtime.Syscall.
func (c *ExtendChip) Execute(ctx *runtime.SyscallContext, arg1, _ uint32) (uint32, bool) {
	wPtr := arg1
	word := func(i int) uint32 {
		return wPtr + uint32(i)*runtime.WordSize
	}

	for i := 16; i < ScheduleWords; i++ {
		_, w15 := ctx.ReadWord(word(i - 15))
		s0 := bits.RotateLeft32(w15, -7) ^ bits.RotateLeft32(w15, -18) ^ (w15 >> 3)

		_, w2 := ctx.ReadWord(word(i - 2))
		s1 := bits.RotateLeft32(w2, -17) ^ bits.RotateLeft32(w2, -19) ^ (w2 >> 10)

		_, w16 := ctx.ReadWord(word(i - 16))
		_, w7 := ctx.ReadWord(word(i - 7))

		ctx.WriteWord(word(i), s1+w16+s0+w7)
	}
	return 0, false
}

// NumExtraCycles implements runtime.Syscall.
func (c *ExtendChip) NumExtraCycles() uint32 {
	return precompiles.NumExtraCycles
}

// CompressChip runs the 64 compression rounds. arg1 points at the expanded
// schedule and arg2 at the 8-word state, which is updated in place.
type CompressChip struct{}

// NewCompressChip creates the SHA_COMPRESS syscall.
func NewCompressChip() *CompressChip {
	return &CompressChip{}
}

// Execute implements runtime.Syscall.
func (c *CompressChip) Execute(ctx *runtime.SyscallContext, arg1, arg2 uint32) (uint32, bool) {
	wPtr, hPtr := arg1, arg2

	_, hx := ctx.ReadWords(hPtr, StateWords)

	a, b, cc, d := hx[0], hx[1], hx[2], hx[3]
	e, f, g, h := hx[4], hx[5], hx[6], hx[7]
	for i := 0; i < ScheduleWords; i++ {
		s1 := bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)
		ch := (e & f) ^ (^e & g)
		_, w := ctx.ReadWord(wPtr + uint32(i)*runtime.WordSize)
		temp1 := h + s1 + ch + roundConstants[i] + w
		s0 := bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)
		maj := (a & b) ^ (a & cc) ^ (b & cc)
		temp2 := s0 + maj

		h = g
		g = f
		f = e
		e = d + temp1
		d = cc
		cc = b
		b = a
		a = temp1 + temp2
	}

	v := [StateWords]uint32{a, b, cc, d, e, f, g, h}
	out := make([]uint32, StateWords)
	for i := range out {
		out[i] = hx[i] + v[i]
	}
	ctx.WriteWords(hPtr, out)
	return 0, false
}

// NumExtraCycles implements runtime.Syscall.
func (c *CompressChip) NumExtraCycles() uint32 {
	return precompiles.NumExtraCycles
}
