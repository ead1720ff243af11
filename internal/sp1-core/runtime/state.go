package runtime

import "github.com/rlyzurjf57/sp1/internal/sp1-core/record"

// MemoryEntry is the current value of a word and the stamp of the last
// access to it.
type MemoryEntry struct {
	Value     uint32
	Shard     uint32
	Timestamp uint32
}

// ExecutionState is the machine state the runtime lends to syscalls.
type ExecutionState struct {
	PC uint32

	// Clk orders memory accesses within CurrentShard. It restarts at zero
	// in every shard.
	Clk uint32

	// GlobalClk counts cycles across shards, extra syscall cycles included.
	GlobalClk uint64

	CurrentShard uint32

	Registers [NumRegisters]uint32

	Memory map[uint32]MemoryEntry

	// Output is the committed output stream.
	Output []uint32

	Halted   bool
	ExitCode uint32
}

// forkState is what entering unconstrained mode saves so that exiting can
// put the machine back.
type forkState struct {
	pc        uint32
	clk       uint32
	globalClk uint64
	registers [NumRegisters]uint32
	outputLen int

	// record is the shard record set aside while a scratch record absorbs
	// everything produced in unconstrained mode.
	record *record.ExecutionRecord

	// memoryDiff holds the entry each address had before its first access
	// in unconstrained mode; a nil value means the address was absent.
	memoryDiff map[uint32]*MemoryEntry
}
