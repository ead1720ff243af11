// Package memtable lays a shard's memory log out as a table of field
// elements, the form the memory-consistency argument works on.
package memtable

import (
	"fmt"
	"sort"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/merkle"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/record"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/utils"
)

// Access type column values
const (
	AccessTypeRead   = 0
	AccessTypeWrite  = 1
	PaddingIndicator = 2
)

// A Merkle tree needs at least two leaves.
const minPaddedHeight = 2

// Rows are zero-extended to a multiple of this before hashing.
const leafElementsBlock = 10

// MemoryTable holds one row per traced memory access.
//
// Rows keep the order they were added in, which for a shard log is clock
// order. The table proves:
// 1. Every access follows the previous access to the same address
// 2. Reads return the most recently written value
type MemoryTable struct {
	shard         []field.Element
	clk           []field.Element
	accessType    []field.Element
	addr          []field.Element
	value         []field.Element
	prevValue     []field.Element
	prevShard     []field.Element
	prevTimestamp []field.Element

	accesses []record.MemoryAccess

	height       int
	paddedHeight int
}

// NewMemoryTable creates an empty table
func NewMemoryTable() *MemoryTable {
	return &MemoryTable{
		shard:         make([]field.Element, 0),
		clk:           make([]field.Element, 0),
		accessType:    make([]field.Element, 0),
		addr:          make([]field.Element, 0),
		value:         make([]field.Element, 0),
		prevValue:     make([]field.Element, 0),
		prevShard:     make([]field.Element, 0),
		prevTimestamp: make([]field.Element, 0),
		accesses:      make([]record.MemoryAccess, 0),
	}
}

// FromRecord builds the table of a shard record's memory log.
func FromRecord(rec *record.ExecutionRecord) *MemoryTable {
	mt := NewMemoryTable()
	for _, a := range rec.MemoryAccesses {
		mt.AddRow(a)
	}
	return mt
}

// GetHeight returns the number of non-padding rows
func (mt *MemoryTable) GetHeight() int {
	return mt.height
}

// GetPaddedHeight returns the padded height
func (mt *MemoryTable) GetPaddedHeight() int {
	return mt.paddedHeight
}

// GetMainColumns returns all columns
func (mt *MemoryTable) GetMainColumns() [][]field.Element {
	return [][]field.Element{
		mt.shard,
		mt.clk,
		mt.accessType,
		mt.addr,
		mt.value,
		mt.prevValue,
		mt.prevShard,
		mt.prevTimestamp,
	}
}

// AddRow appends one access
func (mt *MemoryTable) AddRow(a record.MemoryAccess) {
	accessType := uint64(AccessTypeRead)
	if a.Kind == record.Write {
		accessType = AccessTypeWrite
	}

	mt.shard = append(mt.shard, field.New(uint64(a.Shard)))
	mt.clk = append(mt.clk, field.New(uint64(a.Timestamp)))
	mt.accessType = append(mt.accessType, field.New(accessType))
	mt.addr = append(mt.addr, field.New(uint64(a.Addr)))
	mt.value = append(mt.value, field.New(uint64(a.Value)))
	mt.prevValue = append(mt.prevValue, field.New(uint64(a.PrevValue)))
	mt.prevShard = append(mt.prevShard, field.New(uint64(a.PrevShard)))
	mt.prevTimestamp = append(mt.prevTimestamp, field.New(uint64(a.PrevTimestamp)))
	mt.accesses = append(mt.accesses, a)

	mt.height++
}

// Pad pads the table to the next power of two with padding rows that
// repeat the last row under the padding indicator. An empty table is
// padded with zero rows.
func (mt *MemoryTable) Pad() {
	target := utils.NextPowerOfTwo(mt.height)
	if target < minPaddedHeight {
		target = minPaddedHeight
	}

	for len(mt.clk) < target {
		for _, col := range mt.columnRefs() {
			if mt.height == 0 {
				*col = append(*col, field.Zero)
			} else {
				*col = append(*col, (*col)[mt.height-1])
			}
		}
		mt.accessType[len(mt.accessType)-1] = field.New(PaddingIndicator)
	}
	mt.paddedHeight = target
}

func (mt *MemoryTable) columnRefs() []*[]field.Element {
	return []*[]field.Element{
		&mt.shard,
		&mt.clk,
		&mt.accessType,
		&mt.addr,
		&mt.value,
		&mt.prevValue,
		&mt.prevShard,
		&mt.prevTimestamp,
	}
}

// row returns row i across all columns
func (mt *MemoryTable) row(i int) []field.Element {
	out := make([]field.Element, 0, leafElementsBlock)
	for _, col := range mt.GetMainColumns() {
		out = append(out, col[i])
	}
	// Pad to a multiple of 10 for the sponge
	for len(out)%leafElementsBlock != 0 {
		out = append(out, field.Zero)
	}
	return out
}

// Commit pads the table and returns the Merkle root over its row hashes,
// little-endian encoded.
func (mt *MemoryTable) Commit() ([]byte, error) {
	if mt.paddedHeight == 0 {
		mt.Pad()
	}

	leaves := make([]hash.Digest, mt.paddedHeight)
	for i := range leaves {
		leaves[i] = hash.HashVarlen(mt.row(i))
	}

	tree, err := merkle.New(leaves)
	if err != nil {
		return nil, fmt.Errorf("failed to create Merkle tree: %w", err)
	}

	root := tree.Root()
	result := make([]byte, len(root)*8)
	for i, elem := range root {
		val := elem.Value()
		for j := 0; j < 8; j++ {
			result[i*8+j] = byte(val >> (j * 8))
		}
	}
	return result, nil
}

// SortedAccesses returns the non-padding rows ordered by address, then by
// (shard, timestamp). Consecutive rows for one address are the pairs the
// consistency argument relates.
func (mt *MemoryTable) SortedAccesses() []record.MemoryAccess {
	sorted := make([]record.MemoryAccess, len(mt.accesses))
	copy(sorted, mt.accesses)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Addr != sorted[j].Addr {
			return sorted[i].Addr < sorted[j].Addr
		}
		return sorted[i].Before(sorted[j])
	})
	return sorted
}
