// Package keccak256 implements the Keccak-f[1600] permutation precompile.
package keccak256

import (
	"math/bits"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/precompiles"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/runtime"
)

const (
	// StateLanes is the number of 64-bit lanes in the permutation state.
	StateLanes = 25

	// StateWords is the state size in memory words. Each lane is stored
	// as its low word followed by its high word.
	StateWords = 2 * StateLanes

	numRounds = 24
)

var roundConstants = [numRounds]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808a, 0x8000000080008000,
	0x000000000000808b, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008a, 0x0000000000000088, 0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800a, 0x800000008000000a,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

var rho = [24]int{
	1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 2, 14, 27, 41, 56, 8, 25, 43, 62, 18, 39, 61, 20, 44,
}

var pi = [24]int{
	10, 7, 11, 17, 18, 3, 5, 16, 8, 21, 24, 4, 15, 23, 19, 13, 12, 2, 20, 14, 22, 9, 6, 1,
}

// PermuteChip applies Keccak-f[1600] in place to the state at arg1.
type PermuteChip struct{}

// NewPermuteChip creates the KECCAK_PERMUTE syscall.
func NewPermuteChip() *PermuteChip {
	return &PermuteChip{}
}

// Execute implements runtime.Syscall.
func (c *PermuteChip) Execute(ctx *runtime.SyscallContext, arg1, _ uint32) (uint32, bool) {
	statePtr := arg1

	_, words := ctx.ReadWords(statePtr, StateWords)
	var state [StateLanes]uint64
	for i := range state {
		state[i] = uint64(words[2*i]) | uint64(words[2*i+1])<<32
	}

	Permute(&state)

	out := make([]uint32, StateWords)
	for i, lane := range state {
		out[2*i] = uint32(lane)
		out[2*i+1] = uint32(lane >> 32)
	}
	ctx.WriteWords(statePtr, out)
	return 0, false
}

// NumExtraCycles implements runtime.Syscall.
func (c *PermuteChip) NumExtraCycles() uint32 {
	return precompiles.NumExtraCycles
}

// Permute is Keccak-f[1600] on a lane array indexed x + 5y.
func Permute(a *[StateLanes]uint64) {
	var array [5]uint64
	for round := 0; round < numRounds; round++ {
		// theta
		for x := 0; x < 5; x++ {
			array[x] = 0
			for y := 0; y < StateLanes; y += 5 {
				array[x] ^= a[x+y]
			}
		}
		for x := 0; x < 5; x++ {
			d := array[(x+4)%5] ^ bits.RotateLeft64(array[(x+1)%5], 1)
			for y := 0; y < StateLanes; y += 5 {
				a[y+x] ^= d
			}
		}

		// rho and pi
		last := a[1]
		for i := 0; i < 24; i++ {
			tmp := a[pi[i]]
			a[pi[i]] = bits.RotateLeft64(last, rho[i])
			last = tmp
		}

		// chi
		for y := 0; y < StateLanes; y += 5 {
			for x := 0; x < 5; x++ {
				array[x] = a[y+x]
			}
			for x := 0; x < 5; x++ {
				a[y+x] = array[x] ^ (^array[(x+1)%5] & array[(x+2)%5])
			}
		}

		// iota
		a[0] ^= roundConstants[round]
	}
}
