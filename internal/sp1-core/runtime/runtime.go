// Package runtime services the traps of a guest program: it decodes syscall
// codes, dispatches them to registered implementations, and mediates every
// memory access they make so that each one becomes a shard-scoped,
// clock-ordered record.
package runtime

import (
	"io"

	"github.com/pkg/errors"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/log"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/memtable"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/metrics"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/record"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/utils"
)

// Runtime owns the machine state of one guest execution. The instruction
// interpreter drives it: ordinary loads and stores go through LoadWord and
// StoreWord, every retired instruction through Retire, and every ecall
// through Ecall.
//
// A Runtime is not safe for concurrent use.
type Runtime struct {
	config   *utils.Config
	syscalls SyscallMap
	witness  io.Reader
	sink     RecordSink

	state  ExecutionState
	record *record.ExecutionRecord

	initial map[uint32]uint32

	unconstrained bool
	fork          forkState

	activeContext *SyscallContext
	faulted       error
}

// New creates a runtime. The syscall map is checked for consistency
// between declared and encoded extra cycles before anything runs.
func New(config *utils.Config, syscalls SyscallMap, witness io.Reader, sink RecordSink) (*Runtime, error) {
	if config == nil {
		config = utils.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid runtime config")
	}
	if err := syscalls.CheckConsistency(); err != nil {
		return nil, err
	}
	if witness == nil {
		witness = eofReader{}
	}
	if sink == nil {
		sink = &MemorySink{}
	}

	rt := &Runtime{
		config:   config.Clone(),
		syscalls: syscalls,
		witness:  witness,
		sink:     sink,
		state: ExecutionState{
			CurrentShard: 1,
			Memory:       make(map[uint32]MemoryEntry),
			Output:       make([]uint32, 0),
		},
		initial: make(map[uint32]uint32),
	}
	rt.record = record.New(rt.state.CurrentShard)
	return rt, nil
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }

// InitMemory loads the program's initial memory image. Image words carry
// shard 0 and timestamp 0, before any access of the first shard.
func (rt *Runtime) InitMemory(image map[uint32]uint32) error {
	for addr, value := range image {
		if addr%WordSize != 0 {
			return errors.Errorf("initial memory address %#x is not word aligned", addr)
		}
		rt.state.Memory[addr] = MemoryEntry{Value: value}
		rt.initial[addr] = value
	}
	return nil
}

// InitialMemory returns a copy of the initial memory image.
func (rt *Runtime) InitialMemory() map[uint32]uint32 {
	out := make(map[uint32]uint32, len(rt.initial))
	for addr, value := range rt.initial {
		out[addr] = value
	}
	return out
}

// State returns the machine state. Callers must not mutate it.
func (rt *Runtime) State() *ExecutionState {
	return &rt.state
}

// Record returns the record of the shard in progress.
func (rt *Runtime) Record() *record.ExecutionRecord {
	return rt.record
}

// Config returns the runtime's configuration.
func (rt *Runtime) Config() *utils.Config {
	return rt.config
}

// CurrentShard returns the shard in progress.
func (rt *Runtime) CurrentShard() uint32 {
	return rt.state.CurrentShard
}

// Unconstrained reports whether unconstrained mode is active.
func (rt *Runtime) Unconstrained() bool {
	return rt.unconstrained
}

// Halted reports whether the program has halted.
func (rt *Runtime) Halted() bool {
	return rt.state.Halted
}

// Register returns the value of reg.
func (rt *Runtime) Register(reg Register) uint32 {
	return rt.state.Registers[reg]
}

// SetRegister sets reg. Writes to x0 are discarded.
func (rt *Runtime) SetRegister(reg Register, value uint32) {
	if reg == X0 {
		return
	}
	rt.state.Registers[reg] = value
}

// PC returns the program counter.
func (rt *Runtime) PC() uint32 {
	return rt.state.PC
}

// SetPC sets the program counter.
func (rt *Runtime) SetPC(pc uint32) {
	rt.state.PC = pc
}

// tick returns the clock for the next access and advances it.
func (rt *Runtime) tick() uint32 {
	clk := rt.state.Clk
	rt.state.Clk++
	return clk
}

func checkAligned(addr uint32) {
	if addr%WordSize != 0 {
		protocolMisuse("address %#x is not word aligned", addr)
	}
}

// touch remembers the entry of addr before its first access in
// unconstrained mode.
func (rt *Runtime) touch(addr uint32) {
	if !rt.unconstrained {
		return
	}
	if _, seen := rt.fork.memoryDiff[addr]; seen {
		return
	}
	if entry, ok := rt.state.Memory[addr]; ok {
		rt.fork.memoryDiff[addr] = &entry
	} else {
		rt.fork.memoryDiff[addr] = nil
	}
}

// mr reads the word at addr, stamping it with (shard, clk).
func (rt *Runtime) mr(addr, shard, clk uint32) record.MemoryReadRecord {
	checkAligned(addr)
	rt.touch(addr)

	entry := rt.state.Memory[addr]
	rec := record.MemoryReadRecord{
		Value:         entry.Value,
		Shard:         shard,
		Timestamp:     clk,
		PrevShard:     entry.Shard,
		PrevTimestamp: entry.Timestamp,
	}
	entry.Shard = shard
	entry.Timestamp = clk
	rt.state.Memory[addr] = entry

	metrics.MemoryAccesses.WithLabelValues("read").Inc()
	return rec
}

// mw writes value at addr, stamping it with (shard, clk).
func (rt *Runtime) mw(addr, value, shard, clk uint32) record.MemoryWriteRecord {
	checkAligned(addr)
	rt.touch(addr)

	entry := rt.state.Memory[addr]
	rec := record.MemoryWriteRecord{
		Value:         value,
		Shard:         shard,
		Timestamp:     clk,
		PrevValue:     entry.Value,
		PrevShard:     entry.Shard,
		PrevTimestamp: entry.Timestamp,
	}
	rt.state.Memory[addr] = MemoryEntry{Value: value, Shard: shard, Timestamp: clk}

	metrics.MemoryAccesses.WithLabelValues("write").Inc()
	return rec
}

// wordAt returns the word at addr without a record.
func (rt *Runtime) wordAt(addr uint32) uint32 {
	checkAligned(addr)
	return rt.state.Memory[addr].Value
}

// byteAt returns the byte at addr without a record.
func (rt *Runtime) byteAt(addr uint32) byte {
	word := rt.state.Memory[addr-addr%WordSize].Value
	return byte(word >> (8 * (addr % WordSize)))
}

// LoadWord is the traced load of an ordinary instruction.
func (rt *Runtime) LoadWord(addr uint32) (value uint32, err error) {
	if rt.faulted != nil {
		return 0, rt.faulted
	}
	defer rt.recoverFault(&err)
	rt.checkRunning("load")
	rec := rt.mr(addr, rt.state.CurrentShard, rt.tick())
	rt.record.AddAccess(record.ReadAccess(addr, rec))
	return rec.Value, nil
}

// StoreWord is the traced store of an ordinary instruction.
func (rt *Runtime) StoreWord(addr, value uint32) (err error) {
	if rt.faulted != nil {
		return rt.faulted
	}
	defer rt.recoverFault(&err)
	rt.checkRunning("store")
	rec := rt.mw(addr, value, rt.state.CurrentShard, rt.tick())
	rt.record.AddAccess(record.WriteAccess(addr, rec))
	return nil
}

// Retire completes an instruction: it moves the pc, advances the clock and
// the global cycle count by 1+extraCycles, and finalizes the shard when its
// clock budget is used up. Shards never roll over in unconstrained mode.
// Nothing retires once the program halted or faulted.
func (rt *Runtime) Retire(nextPC uint32, extraCycles uint32) (err error) {
	if rt.faulted != nil {
		return rt.faulted
	}
	if rt.state.Halted {
		defer rt.recoverFault(&err)
		protocolMisuse("instruction retired after halt")
	}
	return rt.retire(nextPC, extraCycles)
}

// checkRunning faults an access made after the program halted.
func (rt *Runtime) checkRunning(op string) {
	if rt.state.Halted {
		protocolMisuse("%s after halt", op)
	}
}

// retire is Retire without the terminal-state checks; the trap that halts
// the program still retires.
func (rt *Runtime) retire(nextPC uint32, extraCycles uint32) error {
	rt.state.PC = nextPC
	rt.state.Clk++
	rt.state.GlobalClk += 1 + uint64(extraCycles)
	if !rt.unconstrained {
		rt.record.Cycles += 1 + uint64(extraCycles)
	}
	metrics.GlobalCycles.Set(float64(rt.state.GlobalClk))

	if rt.config.MaxCycles > 0 && rt.state.GlobalClk > rt.config.MaxCycles {
		return errors.Wrapf(ErrCycleLimitExceeded, "cycle %d, pc %#x", rt.state.GlobalClk, rt.state.PC)
	}

	if !rt.unconstrained && rt.state.Clk >= rt.config.ShardSize {
		return rt.finalizeShard()
	}
	return nil
}

// Finish finalizes the shard in progress. It is called once the program
// halted or the interpreter stopped driving it.
//
// A faulted runtime has no shard to finish: the faulting syscall already
// changed memory without recording it.
func (rt *Runtime) Finish() error {
	if rt.faulted != nil {
		return rt.faulted
	}
	if rt.unconstrained {
		return errors.New("cannot finish inside an unconstrained block")
	}
	rec := rt.record
	if len(rec.MemoryAccesses) == 0 && len(rec.SyscallEvents) == 0 && rec.Cycles == 0 {
		return nil
	}
	return rt.finalizeShard()
}

func (rt *Runtime) finalizeShard() error {
	rec := rt.record
	if rt.config.CommitShards {
		root, err := memtable.FromRecord(rec).Commit()
		if err != nil {
			return errors.Wrapf(err, "commit shard %d", rec.Shard)
		}
		rec.Commitment = root
	}
	if err := rt.sink.EmitShard(rec); err != nil {
		return errors.Wrapf(err, "emit shard %d", rec.Shard)
	}

	log.L.Debug("shard finalized",
		"shard", rec.Shard,
		"accesses", len(rec.MemoryAccesses),
		"syscalls", len(rec.SyscallEvents),
		"cycles", rec.Cycles)
	metrics.ShardsFinalized.Inc()

	rt.state.CurrentShard++
	rt.state.Clk = 0
	rt.record = record.New(rt.state.CurrentShard)
	return nil
}

// OutputDigest hashes the committed output with the configured function.
func (rt *Runtime) OutputDigest() ([]byte, error) {
	return utils.DigestWords(rt.config.OutputDigest, rt.state.Output)
}

// recoverFault turns a fault panic into the returned error and marks the
// runtime as faulted. Other panics propagate.
func (rt *Runtime) recoverFault(err *error) {
	r := recover()
	if r == nil {
		return
	}
	f, ok := r.(*Fault)
	if !ok {
		panic(r)
	}
	if rt.activeContext != nil {
		rt.activeContext.release()
	}
	rt.faulted = f
	metrics.Faults.WithLabelValues(f.Kind.String()).Inc()
	log.L.Error("runtime fault",
		"kind", f.Kind.String(),
		"shard", rt.state.CurrentShard,
		"clk", rt.state.Clk,
		"pc", rt.state.PC,
		"error", f.Message)
	*err = f
}
