// Package weierstrass implements the secp256k1 precompiles.
//
// Points use the same layout as the edwards precompiles: x then y, each a
// little-endian field element over 8 words. The curve library works with
// big-endian encodings, so bytes are reversed at the boundary.
package weierstrass

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/precompiles"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/runtime"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/utils"
)

const (
	// FieldWords is the size of a field element in words.
	FieldWords = 8

	// PointWords is the size of an affine point in words.
	PointWords = 2 * FieldWords
)

var errPointAtInfinity = errors.New("result is the point at infinity")

// AddChip adds the point at arg2 into the point at arg1.
type AddChip struct{}

// NewAddChip creates the SECP256K1_ADD syscall.
func NewAddChip() *AddChip {
	return &AddChip{}
}

// Execute implements runtime.Syscall.
func (c *AddChip) Execute(ctx *runtime.SyscallContext, arg1, arg2 uint32) (uint32, bool) {
	pPtr, qPtr := arg1, arg2

	pWords := ctx.ReadWordsUntraced(pPtr, PointWords)
	_, qWords := ctx.ReadWords(qPtr, PointWords)

	p := PointFromWords(pWords)
	q := PointFromWords(qWords)
	var sum secp256k1.JacobianPoint
	secp256k1.AddNonConst(&p, &q, &sum)

	out, err := PointToWords(&sum)
	if err != nil {
		runtime.Misuse(err, "secp256k1 add of %#x and %#x", pPtr, qPtr)
	}
	ctx.WriteWords(pPtr, out)
	return 0, false
}

// NumExtraCycles implements runtime.Syscall.
func (c *AddChip) NumExtraCycles() uint32 {
	return precompiles.NumExtraCycles
}

// DoubleChip doubles the point at arg1 in place.
type DoubleChip struct{}

// NewDoubleChip creates the SECP256K1_DOUBLE syscall.
func NewDoubleChip() *DoubleChip {
	return &DoubleChip{}
}

// Execute implements runtime.Syscall.
func (c *DoubleChip) Execute(ctx *runtime.SyscallContext, arg1, _ uint32) (uint32, bool) {
	pPtr := arg1

	p := PointFromWords(ctx.ReadWordsUntraced(pPtr, PointWords))
	var doubled secp256k1.JacobianPoint
	secp256k1.DoubleNonConst(&p, &doubled)

	out, err := PointToWords(&doubled)
	if err != nil {
		runtime.Misuse(err, "secp256k1 double of %#x", pPtr)
	}
	ctx.WriteWords(pPtr, out)
	return 0, false
}

// NumExtraCycles implements runtime.Syscall.
func (c *DoubleChip) NumExtraCycles() uint32 {
	return precompiles.NumExtraCycles
}

// DecompressChip recovers y from x. x is read from arg1+32, arg2 is 1 when
// y must be odd, and y is written to arg1.
type DecompressChip struct{}

// NewDecompressChip creates the SECP256K1_DECOMPRESS syscall.
func NewDecompressChip() *DecompressChip {
	return &DecompressChip{}
}

// Execute implements runtime.Syscall.
func (c *DecompressChip) Execute(ctx *runtime.SyscallContext, arg1, arg2 uint32) (uint32, bool) {
	slicePtr := arg1
	xPtr := slicePtr + FieldWords*runtime.WordSize

	_, xWords := ctx.ReadWords(xPtr, FieldWords)
	x := fieldFromWords(xWords)

	var y secp256k1.FieldVal
	if !secp256k1.DecompressY(&x, arg2 == 1, &y) {
		runtime.Misuse(nil, "secp256k1 decompress: x at %#x is not on the curve", xPtr)
	}
	y.Normalize()
	ctx.WriteWords(slicePtr, fieldToWords(&y))
	return 0, false
}

// NumExtraCycles implements runtime.Syscall.
func (c *DecompressChip) NumExtraCycles() uint32 {
	return precompiles.NumExtraCycles
}

// PointFromWords decodes an affine point into Jacobian form with Z = 1.
// The point is not checked to be on the curve.
func PointFromWords(words []uint32) secp256k1.JacobianPoint {
	var p secp256k1.JacobianPoint
	p.X = fieldFromWords(words[:FieldWords])
	p.Y = fieldFromWords(words[FieldWords:PointWords])
	p.Z.SetInt(1)
	return p
}

// PointToWords encodes p in affine form. The point at infinity has no
// affine encoding.
func PointToWords(p *secp256k1.JacobianPoint) ([]uint32, error) {
	if p.Z.IsZero() {
		return nil, errPointAtInfinity
	}
	affine := *p
	affine.ToAffine()
	words := make([]uint32, 0, PointWords)
	words = append(words, fieldToWords(&affine.X)...)
	return append(words, fieldToWords(&affine.Y)...), nil
}

func fieldFromWords(words []uint32) secp256k1.FieldVal {
	var f secp256k1.FieldVal
	f.SetByteSlice(reverse(utils.WordsToBytesLE(words)))
	f.Normalize()
	return f
}

func fieldToWords(f *secp256k1.FieldVal) []uint32 {
	be := f.Bytes()
	return utils.BytesToWordsLE(reverse(be[:]))
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}
