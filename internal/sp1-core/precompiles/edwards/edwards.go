// Package edwards implements the ed25519 point addition and decompression
// precompiles.
//
// A point is stored as x followed by y, each a 32-byte little-endian field
// element spread over 8 words.
package edwards

import (
	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"

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

// AddChip adds the point at arg2 into the point at arg1.
type AddChip struct{}

// NewAddChip creates the ED_ADD syscall.
func NewAddChip() *AddChip {
	return &AddChip{}
}

// Execute implements runtime.Syscall.
func (c *AddChip) Execute(ctx *runtime.SyscallContext, arg1, arg2 uint32) (uint32, bool) {
	pPtr, qPtr := arg1, arg2

	// p is overwritten below; the write records carry its previous value.
	pWords := ctx.ReadWordsUntraced(pPtr, PointWords)
	_, qWords := ctx.ReadWords(qPtr, PointWords)

	p, err := PointFromWords(pWords)
	if err != nil {
		runtime.Misuse(err, "ed25519 add: invalid point at %#x", pPtr)
	}
	q, err := PointFromWords(qWords)
	if err != nil {
		runtime.Misuse(err, "ed25519 add: invalid point at %#x", qPtr)
	}

	sum := new(edwards25519.Point).Add(p, q)
	ctx.WriteWords(pPtr, PointToWords(sum))
	return 0, false
}

// NumExtraCycles implements runtime.Syscall.
func (c *AddChip) NumExtraCycles() uint32 {
	return precompiles.NumExtraCycles
}

// DecompressChip recovers x from a compressed point. The compressed form,
// y with the sign of x in its top bit, is read from arg1+32 and x is
// written to arg1.
type DecompressChip struct{}

// NewDecompressChip creates the ED_DECOMPRESS syscall.
func NewDecompressChip() *DecompressChip {
	return &DecompressChip{}
}

// Execute implements runtime.Syscall.
func (c *DecompressChip) Execute(ctx *runtime.SyscallContext, arg1, _ uint32) (uint32, bool) {
	slicePtr := arg1
	yPtr := slicePtr + FieldWords*runtime.WordSize

	_, compressed := ctx.ReadWords(yPtr, FieldWords)
	point, err := new(edwards25519.Point).SetBytes(utils.WordsToBytesLE(compressed))
	if err != nil {
		runtime.Misuse(err, "ed25519 decompress: invalid encoding at %#x", yPtr)
	}

	x, _ := affine(point)
	ctx.WriteWords(slicePtr, utils.BytesToWordsLE(x.Bytes()))
	return 0, false
}

// NumExtraCycles implements runtime.Syscall.
func (c *DecompressChip) NumExtraCycles() uint32 {
	return precompiles.NumExtraCycles
}

// PointFromWords decodes an affine point. It fails unless the point is on
// the curve.
func PointFromWords(words []uint32) (*edwards25519.Point, error) {
	x, err := new(field.Element).SetBytes(utils.WordsToBytesLE(words[:FieldWords]))
	if err != nil {
		return nil, err
	}
	y, err := new(field.Element).SetBytes(utils.WordsToBytesLE(words[FieldWords:PointWords]))
	if err != nil {
		return nil, err
	}
	t := new(field.Element).Multiply(x, y)
	return new(edwards25519.Point).SetExtendedCoordinates(x, y, new(field.Element).One(), t)
}

// PointToWords encodes p in affine form.
func PointToWords(p *edwards25519.Point) []uint32 {
	x, y := affine(p)
	words := make([]uint32, 0, PointWords)
	words = append(words, utils.BytesToWordsLE(x.Bytes())...)
	return append(words, utils.BytesToWordsLE(y.Bytes())...)
}

func affine(p *edwards25519.Point) (x, y *field.Element) {
	X, Y, Z, _ := p.ExtendedCoordinates()
	zInv := new(field.Element).Invert(Z)
	return new(field.Element).Multiply(X, zInv), new(field.Element).Multiply(Y, zInv)
}
