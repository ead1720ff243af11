// Package blake3 implements the inner BLAKE3 compression precompile: the
// seven keyed rounds without the final feed-forward, which the guest
// applies itself.
package blake3

import (
	"math/bits"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/precompiles"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/runtime"
)

const (
	// StateWords is the width of the compression state.
	StateWords = 16

	// MessageWords is the width of a message block.
	MessageWords = 16

	numRounds = 7
)

// IV is the BLAKE3 initialization vector.
var IV = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a, 0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var messagePermutation = [MessageWords]int{2, 6, 3, 10, 7, 0, 4, 13, 1, 11, 12, 5, 9, 14, 15, 8}

// G is applied to four columns, then four diagonals.
var gIndices = [8][4]int{
	{0, 4, 8, 12},
	{1, 5, 9, 13},
	{2, 6, 10, 14},
	{3, 7, 11, 15},
	{0, 5, 10, 15},
	{1, 6, 11, 12},
	{2, 7, 8, 13},
	{3, 4, 9, 14},
}

// CompressInnerChip updates the state at arg1 with the message at arg2.
type CompressInnerChip struct{}

// NewCompressInnerChip creates the BLAKE3_COMPRESS_INNER syscall.
func NewCompressInnerChip() *CompressInnerChip {
	return &CompressInnerChip{}
}

// Execute implements runtime.Syscall.
func (c *CompressInnerChip) Execute(ctx *runtime.SyscallContext, arg1, arg2 uint32) (uint32, bool) {
	statePtr, msgPtr := arg1, arg2

	var state [StateWords]uint32
	var msg [MessageWords]uint32
	_, s := ctx.ReadWords(statePtr, StateWords)
	_, m := ctx.ReadWords(msgPtr, MessageWords)
	copy(state[:], s)
	copy(msg[:], m)

	CompressInner(&state, &msg)

	ctx.WriteWords(statePtr, state[:])
	return 0, false
}

// NumExtraCycles implements runtime.Syscall.
func (c *CompressInnerChip) NumExtraCycles() uint32 {
	return precompiles.NumExtraCycles
}

// CompressInner runs the compression rounds on state. msg is left permuted.
func CompressInner(state *[StateWords]uint32, msg *[MessageWords]uint32) {
	for round := 0; round < numRounds; round++ {
		for op, idx := range gIndices {
			g(state, idx, msg[2*op], msg[2*op+1])
		}
		if round < numRounds-1 {
			permute(msg)
		}
	}
}

func g(s *[StateWords]uint32, idx [4]int, mx, my uint32) {
	a, b, c, d := idx[0], idx[1], idx[2], idx[3]
	s[a] = s[a] + s[b] + mx
	s[d] = bits.RotateLeft32(s[d]^s[a], -16)
	s[c] = s[c] + s[d]
	s[b] = bits.RotateLeft32(s[b]^s[c], -12)
	s[a] = s[a] + s[b] + my
	s[d] = bits.RotateLeft32(s[d]^s[a], -8)
	s[c] = s[c] + s[d]
	s[b] = bits.RotateLeft32(s[b]^s[c], -7)
}

func permute(msg *[MessageWords]uint32) {
	var permuted [MessageWords]uint32
	for i, j := range messagePermutation {
		permuted[i] = msg[j]
	}
	*msg = permuted
}
