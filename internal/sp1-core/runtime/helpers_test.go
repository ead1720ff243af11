package runtime

import (
	"bytes"
	"testing"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/utils"
)

func basicSyscallMap() SyscallMap {
	m := SyscallMap{}
	m.Insert(SysHalt, NewSyscallHalt())
	m.Insert(SysLWA, NewSyscallLWA())
	m.Insert(SysWrite, NewSyscallWrite())
	m.Insert(SysEnterUnconstrained, NewSyscallEnterUnconstrained())
	m.Insert(SysExitUnconstrained, NewSyscallExitUnconstrained())
	return m
}

type testRuntime struct {
	*Runtime
	sink *MemorySink
}

func newTestRuntime(t *testing.T, config *utils.Config, m SyscallMap, witness []byte) *testRuntime {
	t.Helper()
	if config == nil {
		config = utils.DefaultConfig()
	}
	if m == nil {
		m = basicSyscallMap()
	}
	sink := &MemorySink{}
	rt, err := New(config, m, bytes.NewReader(witness), sink)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return &testRuntime{Runtime: rt, sink: sink}
}

func (rt *testRuntime) trap(code SyscallCode, arg1, arg2 uint32) error {
	rt.SetRegister(RegisterSyscallCode, uint32(code))
	rt.SetRegister(RegisterArg1, arg1)
	rt.SetRegister(RegisterArg2, arg2)
	return rt.Ecall()
}

func (rt *testRuntime) mustTrap(t *testing.T, code SyscallCode, arg1, arg2 uint32) {
	t.Helper()
	if err := rt.trap(code, arg1, arg2); err != nil {
		t.Fatalf("%s failed: %v", code, err)
	}
}

func requireFault(t *testing.T, err error, kind FaultKind) {
	t.Helper()
	f, ok := AsFault(err)
	if !ok {
		t.Fatalf("expected %s fault, got %v", kind, err)
	}
	if f.Kind != kind {
		t.Fatalf("fault kind = %s, want %s", f.Kind, kind)
	}
}

// funcSyscall adapts a function to Syscall for tests.
type funcSyscall struct {
	fn    func(ctx *SyscallContext, arg1, arg2 uint32) (uint32, bool)
	extra uint32
}

func (s funcSyscall) Execute(ctx *SyscallContext, arg1, arg2 uint32) (uint32, bool) {
	return s.fn(ctx, arg1, arg2)
}

func (s funcSyscall) NumExtraCycles() uint32 { return s.extra }
