package runtime

import (
	"github.com/rlyzurjf57/sp1/internal/sp1-core/record"
)

// WordSize is the width of a memory word in bytes.
const WordSize = 4

// SyscallContext is the only way a syscall may touch machine state. It is
// handed out by the runtime for exactly one Execute call: the runtime holds
// at most one live context, and a context refuses every operation once its
// syscall has returned. Implementations must not retain it.
//
// Every traced access is stamped with the shard that was current at the
// trap and the runtime clock, which advances by one per access. Accesses are
// therefore totally ordered within the shard, in the order issued.
type SyscallContext struct {
	currentShard uint32
	clk          uint32
	nextPC       uint32

	rt *Runtime

	reads  []record.MemoryAccess
	writes []record.MemoryAccess
}

func newSyscallContext(rt *Runtime) *SyscallContext {
	if rt.activeContext != nil {
		protocolMisuse("syscall context requested while another one is live")
	}
	ctx := &SyscallContext{
		currentShard: rt.state.CurrentShard,
		clk:          rt.state.Clk,
		nextPC:       rt.state.PC + WordSize,
		rt:           rt,
	}
	rt.activeContext = ctx
	return ctx
}

// release ends the context's lease on the runtime.
func (ctx *SyscallContext) release() {
	if ctx.rt != nil && ctx.rt.activeContext == ctx {
		ctx.rt.activeContext = nil
	}
	ctx.rt = nil
}

func (ctx *SyscallContext) runtime() *Runtime {
	if ctx.rt == nil {
		protocolMisuse("syscall context used after its syscall returned")
	}
	return ctx.rt
}

// CurrentShard returns the shard the syscall runs in.
func (ctx *SyscallContext) CurrentShard() uint32 {
	return ctx.currentShard
}

// Clk returns the clock at the trap.
func (ctx *SyscallContext) Clk() uint32 {
	return ctx.clk
}

// NextPC returns the pc execution resumes at once the syscall returns.
func (ctx *SyscallContext) NextPC() uint32 {
	return ctx.nextPC
}

// SetNextPC overrides where execution resumes. The default is the pc of
// the trap plus one instruction.
func (ctx *SyscallContext) SetNextPC(pc uint32) {
	ctx.runtime()
	ctx.nextPC = pc
}

// ReadWord reads the word at addr and records the access.
func (ctx *SyscallContext) ReadWord(addr uint32) (record.MemoryReadRecord, uint32) {
	rt := ctx.runtime()
	rec := rt.mr(addr, ctx.currentShard, rt.tick())
	ctx.reads = append(ctx.reads, record.ReadAccess(addr, rec))
	return rec, rec.Value
}

// ReadWords reads n consecutive words starting at addr, one access per
// word in ascending address order.
func (ctx *SyscallContext) ReadWords(addr uint32, n int) ([]record.MemoryReadRecord, []uint32) {
	checkSpan(addr, n)
	var (
		records []record.MemoryReadRecord
		values  []uint32
	)
	for i := 0; i < n; i++ {
		rec, value := ctx.ReadWord(addr + uint32(i)*WordSize)
		records = append(records, rec)
		values = append(values, value)
	}
	return records, values
}

// WriteWord writes value at addr and records the access. Later reads of
// addr in this shard observe value.
func (ctx *SyscallContext) WriteWord(addr, value uint32) record.MemoryWriteRecord {
	rt := ctx.runtime()
	rec := rt.mw(addr, value, ctx.currentShard, rt.tick())
	ctx.writes = append(ctx.writes, record.WriteAccess(addr, rec))
	return rec
}

// WriteWords writes values to consecutive words starting at addr.
func (ctx *SyscallContext) WriteWords(addr uint32, values []uint32) []record.MemoryWriteRecord {
	checkSpan(addr, len(values))
	records := make([]record.MemoryWriteRecord, 0, len(values))
	for i, value := range values {
		records = append(records, ctx.WriteWord(addr+uint32(i)*WordSize, value))
	}
	return records
}

// checkSpan faults unless n words starting at addr fit below the top of
// the address space. n comes from the guest.
func checkSpan(addr uint32, n int) {
	if n < 0 || uint64(addr)+uint64(n)*WordSize > 1<<32 {
		protocolMisuse("%d words at %#x run past the end of memory", n, addr)
	}
}

// event packages what the syscall produced for the shard record.
func (ctx *SyscallContext) event(code SyscallCode, arg1, arg2 uint32) record.SyscallEvent {
	return record.SyscallEvent{
		Code:   uint32(code),
		Shard:  ctx.currentShard,
		Clk:    ctx.clk,
		Arg1:   arg1,
		Arg2:   arg2,
		Reads:  ctx.reads,
		Writes: ctx.writes,
	}
}
