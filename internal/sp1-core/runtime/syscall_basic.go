package runtime

import (
	"encoding/binary"
	"io"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/record"
)

// SyscallHalt stops the program. arg1 is the exit code.
type SyscallHalt struct{}

// NewSyscallHalt creates the halt syscall.
func NewSyscallHalt() *SyscallHalt {
	return &SyscallHalt{}
}

// Execute implements Syscall.
func (s *SyscallHalt) Execute(ctx *SyscallContext, arg1, _ uint32) (uint32, bool) {
	rt := ctx.runtime()
	rt.state.Halted = true
	rt.state.ExitCode = arg1
	ctx.SetNextPC(0)
	return 0, false
}

// NumExtraCycles implements Syscall.
func (s *SyscallHalt) NumExtraCycles() uint32 { return 0 }

// SyscallLWA returns a word taken from the witness channel. The word never
// touches traced memory: it comes from the prover and is deliberately left
// outside the memory-consistency argument.
//
// arg1 is the number of bytes to take (1 to 4); any other value takes a
// whole word. Missing high bytes are zero.
type SyscallLWA struct{}

// NewSyscallLWA creates the load-witness syscall.
func NewSyscallLWA() *SyscallLWA {
	return &SyscallLWA{}
}

// Execute implements Syscall.
func (s *SyscallLWA) Execute(ctx *SyscallContext, arg1, _ uint32) (uint32, bool) {
	rt := ctx.runtime()

	n := int(arg1)
	if n < 1 || n > WordSize {
		n = WordSize
	}
	var buf [WordSize]byte
	if _, err := io.ReadFull(rt.witness, buf[:n]); err != nil {
		protocolMisuseCause(err, "witness channel exhausted reading %d bytes", n)
	}
	return binary.LittleEndian.Uint32(buf[:]), true
}

// NumExtraCycles implements Syscall.
func (s *SyscallLWA) NumExtraCycles() uint32 { return 0 }

// SyscallWrite commits arg2 words read from arg1 to the program's output.
type SyscallWrite struct{}

// NewSyscallWrite creates the write syscall.
func NewSyscallWrite() *SyscallWrite {
	return &SyscallWrite{}
}

// Execute implements Syscall.
func (s *SyscallWrite) Execute(ctx *SyscallContext, arg1, arg2 uint32) (uint32, bool) {
	_, values := ctx.ReadWords(arg1, int(arg2))

	rt := ctx.runtime()
	rt.state.Output = append(rt.state.Output, values...)
	rt.record.Output = append(rt.record.Output, values...)
	return 0, false
}

// NumExtraCycles implements Syscall.
func (s *SyscallWrite) NumExtraCycles() uint32 { return 0 }

// SyscallEnterUnconstrained starts a block whose effects are discarded when
// the matching exit runs. It returns 1, which is how the guest knows it is
// running on the executor and should compute its hints.
type SyscallEnterUnconstrained struct{}

// NewSyscallEnterUnconstrained creates the enter-unconstrained syscall.
func NewSyscallEnterUnconstrained() *SyscallEnterUnconstrained {
	return &SyscallEnterUnconstrained{}
}

// Execute implements Syscall.
func (s *SyscallEnterUnconstrained) Execute(ctx *SyscallContext, _, _ uint32) (uint32, bool) {
	rt := ctx.runtime()
	if rt.unconstrained {
		protocolMisuse("unconstrained block is already active")
	}

	rt.fork = forkState{
		pc:         rt.state.PC,
		clk:        rt.state.Clk,
		globalClk:  rt.state.GlobalClk,
		registers:  rt.state.Registers,
		outputLen:  len(rt.state.Output),
		memoryDiff: make(map[uint32]*MemoryEntry),
		record:     rt.record,
	}
	rt.record = record.New(rt.state.CurrentShard)
	rt.unconstrained = true
	return 1, true
}

// NumExtraCycles implements Syscall.
func (s *SyscallEnterUnconstrained) NumExtraCycles() uint32 { return 0 }

// SyscallExitUnconstrained ends the active unconstrained block and restores
// the machine to where the block was entered.
type SyscallExitUnconstrained struct{}

// NewSyscallExitUnconstrained creates the exit-unconstrained syscall.
func NewSyscallExitUnconstrained() *SyscallExitUnconstrained {
	return &SyscallExitUnconstrained{}
}

// Execute implements Syscall.
func (s *SyscallExitUnconstrained) Execute(ctx *SyscallContext, _, _ uint32) (uint32, bool) {
	rt := ctx.runtime()
	if !rt.unconstrained {
		protocolMisuse("exit without an active unconstrained block")
	}

	fork := rt.fork
	for addr, entry := range fork.memoryDiff {
		if entry == nil {
			delete(rt.state.Memory, addr)
		} else {
			rt.state.Memory[addr] = *entry
		}
	}
	rt.state.PC = fork.pc
	rt.state.Clk = fork.clk
	rt.state.GlobalClk = fork.globalClk
	rt.state.Registers = fork.registers
	rt.state.Output = rt.state.Output[:fork.outputLen]
	rt.record = fork.record

	rt.unconstrained = false
	rt.fork = forkState{}

	ctx.SetNextPC(fork.pc + WordSize)
	return 0, false
}

// NumExtraCycles implements Syscall.
func (s *SyscallExitUnconstrained) NumExtraCycles() uint32 { return 0 }
