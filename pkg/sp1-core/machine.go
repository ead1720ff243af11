package sp1core

import (
	"io"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/memtable"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/runtime"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/syscalls"
)

// Machine drives one guest execution through the syscall layer. The
// caller plays the instruction interpreter: ordinary loads and stores go
// through Load and Store, other instructions retire through Step, and
// ecalls through Trap.
//
// A Machine is not safe for concurrent use.
type Machine struct {
	rt   *runtime.Runtime
	sink RecordSink
	mem  *runtime.MemorySink
}

// NewMachine creates a machine with every syscall registered. A nil
// witness behaves as an empty one; a nil sink keeps records in memory.
func NewMachine(config *Config, witness io.Reader, sink RecordSink) (*Machine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, &VMError{Code: ErrInvalidConfig, Message: "invalid machine config", Cause: err}
	}

	m := &Machine{sink: sink}
	if sink == nil {
		m.mem = &runtime.MemorySink{}
		m.sink = m.mem
	}

	rt, err := runtime.New(config, syscalls.DefaultSyscallMap(), witness, m.sink)
	if err != nil {
		return nil, &VMError{Code: ErrInvalidConfig, Message: "failed to create runtime", Cause: err}
	}
	m.rt = rt
	return m, nil
}

// LoadMemory loads the initial memory image. It must be called before
// anything runs.
func (m *Machine) LoadMemory(image map[uint32]uint32) error {
	if err := m.rt.InitMemory(image); err != nil {
		return &VMError{Code: ErrInvalidInput, Message: "invalid memory image", Cause: err}
	}
	return nil
}

// SetPC moves the program counter.
func (m *Machine) SetPC(pc uint32) {
	m.rt.SetPC(pc)
}

// Trap services an ecall with code in t0 and the two arguments in a0 and a1.
func (m *Machine) Trap(code, arg1, arg2 uint32) (*TrapResult, error) {
	m.rt.SetRegister(runtime.RegisterSyscallCode, code)
	m.rt.SetRegister(runtime.RegisterArg1, arg1)
	m.rt.SetRegister(runtime.RegisterArg2, arg2)

	if err := m.rt.Ecall(); err != nil {
		return nil, executionError("trap failed", err)
	}

	st := m.rt.State()
	return &TrapResult{
		Return:    m.rt.Register(runtime.RegisterReturn),
		PC:        st.PC,
		Clk:       st.Clk,
		GlobalClk: st.GlobalClk,
		Shard:     st.CurrentShard,
		Halted:    st.Halted,
	}, nil
}

// Load performs a traced word load.
func (m *Machine) Load(addr uint32) (uint32, error) {
	v, err := m.rt.LoadWord(addr)
	if err != nil {
		return 0, executionError("load failed", err)
	}
	return v, nil
}

// Store performs a traced word store.
func (m *Machine) Store(addr, value uint32) error {
	if err := m.rt.StoreWord(addr, value); err != nil {
		return executionError("store failed", err)
	}
	return nil
}

// Step retires a non-trapping instruction and moves to the next one.
func (m *Machine) Step() error {
	if err := m.rt.Retire(m.rt.PC()+runtime.WordSize, 0); err != nil {
		return executionError("step failed", err)
	}
	return nil
}

// Finish finalizes the last shard.
func (m *Machine) Finish() error {
	if err := m.rt.Finish(); err != nil {
		return executionError("finish failed", err)
	}
	return nil
}

// Halted reports whether the guest halted, and with which exit code.
func (m *Machine) Halted() (bool, uint32) {
	st := m.rt.State()
	return st.Halted, st.ExitCode
}

// Unconstrained reports whether an unconstrained block is active.
func (m *Machine) Unconstrained() bool {
	return m.rt.Unconstrained()
}

// Output returns a copy of the committed output.
func (m *Machine) Output() []uint32 {
	return append([]uint32(nil), m.rt.State().Output...)
}

// OutputDigest hashes the committed output with the configured function.
func (m *Machine) OutputDigest() ([]byte, error) {
	d, err := m.rt.OutputDigest()
	if err != nil {
		return nil, &VMError{Code: ErrInvalidConfig, Message: "failed to digest output", Cause: err}
	}
	return d, nil
}

// Cycles returns the global cycle count.
func (m *Machine) Cycles() uint64 {
	return m.rt.State().GlobalClk
}

// Records returns the finalized shard records when the machine keeps them
// in memory, and nil when they went to a caller-supplied sink.
func (m *Machine) Records() []*Record {
	if m.mem == nil {
		return nil
	}
	return m.mem.Records
}

// Verify replays records against the machine's initial memory and checks
// the memory log is consistent.
func (m *Machine) Verify(records []*Record) error {
	if err := memtable.Check(records, m.rt.InitialMemory()); err != nil {
		return &VMError{Code: ErrExecution, Message: "memory log is inconsistent", Cause: err}
	}
	return nil
}
