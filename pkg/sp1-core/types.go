package sp1core

import (
	"github.com/rlyzurjf57/sp1/internal/sp1-core/record"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/runtime"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/utils"
)

// Config configures a Machine
type Config = utils.Config

// Record is the record of one finalized shard
type Record = record.ExecutionRecord

// MemoryAccess is one entry of a shard's memory log
type MemoryAccess = record.MemoryAccess

// SyscallEvent is what one syscall contributed to a shard
type SyscallEvent = record.SyscallEvent

// RecordSink receives shard records as shards are finalized
type RecordSink = runtime.RecordSink

// DefaultConfig returns the default machine configuration
func DefaultConfig() *Config {
	return utils.DefaultConfig()
}

// TrapResult is the machine state right after a trap retired
type TrapResult struct {
	// Return is the value left in t0: the syscall's return value, or its
	// code when it returns nothing
	Return uint32

	PC        uint32
	Clk       uint32
	GlobalClk uint64
	Shard     uint32
	Halted    bool
}
