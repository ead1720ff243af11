// Package record defines the execution records produced while a program runs.
//
// Records are the raw input of the memory-consistency argument: every traced
// memory access yields exactly one record stamped with the shard it happened in
// and a per-shard clock. The proving side consumes them verbatim.
package record

import "fmt"

// MemoryReadRecord describes a traced read of one word.
type MemoryReadRecord struct {
	Value         uint32 `json:"value"`
	Shard         uint32 `json:"shard"`
	Timestamp     uint32 `json:"timestamp"`
	PrevShard     uint32 `json:"prev_shard"`
	PrevTimestamp uint32 `json:"prev_timestamp"`
}

// MemoryWriteRecord describes a traced write of one word.
type MemoryWriteRecord struct {
	Value         uint32 `json:"value"`
	Shard         uint32 `json:"shard"`
	Timestamp     uint32 `json:"timestamp"`
	PrevValue     uint32 `json:"prev_value"`
	PrevShard     uint32 `json:"prev_shard"`
	PrevTimestamp uint32 `json:"prev_timestamp"`
}

// AccessKind tells reads and writes apart in the unified log.
type AccessKind uint8

const (
	// Read is a traced load.
	Read AccessKind = iota
	// Write is a traced store.
	Write
)

func (k AccessKind) String() string {
	switch k {
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return fmt.Sprintf("AccessKind(%d)", uint8(k))
	}
}

// MemoryAccess is one entry of a shard's ordered memory log.
//
// For reads PrevValue equals Value.
type MemoryAccess struct {
	Kind          AccessKind `json:"kind"`
	Addr          uint32     `json:"addr"`
	Value         uint32     `json:"value"`
	PrevValue     uint32     `json:"prev_value"`
	Shard         uint32     `json:"shard"`
	Timestamp     uint32     `json:"timestamp"`
	PrevShard     uint32     `json:"prev_shard"`
	PrevTimestamp uint32     `json:"prev_timestamp"`
}

// ReadAccess lifts a read record at addr into the unified log form.
func ReadAccess(addr uint32, r MemoryReadRecord) MemoryAccess {
	return MemoryAccess{
		Kind:          Read,
		Addr:          addr,
		Value:         r.Value,
		PrevValue:     r.Value,
		Shard:         r.Shard,
		Timestamp:     r.Timestamp,
		PrevShard:     r.PrevShard,
		PrevTimestamp: r.PrevTimestamp,
	}
}

// WriteAccess lifts a write record at addr into the unified log form.
func WriteAccess(addr uint32, w MemoryWriteRecord) MemoryAccess {
	return MemoryAccess{
		Kind:          Write,
		Addr:          addr,
		Value:         w.Value,
		PrevValue:     w.PrevValue,
		Shard:         w.Shard,
		Timestamp:     w.Timestamp,
		PrevShard:     w.PrevShard,
		PrevTimestamp: w.PrevTimestamp,
	}
}

// Before reports whether a is ordered strictly before b by (shard, timestamp).
func (a MemoryAccess) Before(b MemoryAccess) bool {
	if a.Shard != b.Shard {
		return a.Shard < b.Shard
	}
	return a.Timestamp < b.Timestamp
}

// SyscallEvent is what one syscall contributed to a shard: the trap
// arguments and every record it produced through its context.
type SyscallEvent struct {
	Code   uint32         `json:"code"`
	Shard  uint32         `json:"shard"`
	Clk    uint32         `json:"clk"`
	Arg1   uint32         `json:"arg1"`
	Arg2   uint32         `json:"arg2"`
	Reads  []MemoryAccess `json:"reads,omitempty"`
	Writes []MemoryAccess `json:"writes,omitempty"`
	Return *uint32        `json:"return,omitempty"`
}

// ExecutionRecord accumulates the side effects of one shard.
type ExecutionRecord struct {
	Shard uint32 `json:"shard"`

	// MemoryAccesses is ordered by timestamp.
	MemoryAccesses []MemoryAccess `json:"memory_accesses"`

	SyscallEvents []SyscallEvent `json:"syscall_events"`

	// Output holds words committed by WRITE during this shard.
	Output []uint32 `json:"output,omitempty"`

	// Cycles counts global cycles spent in this shard, extra syscall cycles included.
	Cycles uint64 `json:"cycles"`

	// Commitment is the memory table root, set when the shard is finalized
	// with commitments enabled.
	Commitment []byte `json:"commitment,omitempty"`
}

// New returns an empty record for the given shard.
func New(shard uint32) *ExecutionRecord {
	return &ExecutionRecord{
		Shard:          shard,
		MemoryAccesses: make([]MemoryAccess, 0),
		SyscallEvents:  make([]SyscallEvent, 0),
	}
}

// AddAccess appends one access to the memory log.
func (r *ExecutionRecord) AddAccess(a MemoryAccess) {
	r.MemoryAccesses = append(r.MemoryAccesses, a)
}

// AddSyscallEvent merges a syscall's records into the shard: the event is kept
// whole, and its reads and writes join the memory log in timestamp order.
func (r *ExecutionRecord) AddSyscallEvent(ev SyscallEvent) {
	r.SyscallEvents = append(r.SyscallEvents, ev)

	i, j := 0, 0
	for i < len(ev.Reads) || j < len(ev.Writes) {
		switch {
		case j >= len(ev.Writes):
			r.AddAccess(ev.Reads[i])
			i++
		case i >= len(ev.Reads):
			r.AddAccess(ev.Writes[j])
			j++
		case ev.Reads[i].Before(ev.Writes[j]):
			r.AddAccess(ev.Reads[i])
			i++
		default:
			r.AddAccess(ev.Writes[j])
			j++
		}
	}
}

// Reads returns the number of read accesses in the log.
func (r *ExecutionRecord) Reads() int {
	n := 0
	for _, a := range r.MemoryAccesses {
		if a.Kind == Read {
			n++
		}
	}
	return n
}

// Writes returns the number of write accesses in the log.
func (r *ExecutionRecord) Writes() int {
	return len(r.MemoryAccesses) - r.Reads()
}
