package integration_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/runtime"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/syscalls"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/utils"
)

// newRuntime creates a runtime with every syscall registered.
func newRuntime(t *testing.T, config *utils.Config, witness []byte, sink runtime.RecordSink) *runtime.Runtime {
	t.Helper()
	var w io.Reader
	if witness != nil {
		w = bytes.NewReader(witness)
	}
	rt, err := runtime.New(config, syscalls.DefaultSyscallMap(), w, sink)
	if err != nil {
		t.Fatalf("Failed to create runtime: %v", err)
	}
	return rt
}

func setTrap(rt *runtime.Runtime, code, arg1, arg2 uint32) {
	rt.SetRegister(runtime.RegisterSyscallCode, code)
	rt.SetRegister(runtime.RegisterArg1, arg1)
	rt.SetRegister(runtime.RegisterArg2, arg2)
}

func trap(t *testing.T, rt *runtime.Runtime, code, arg1, arg2 uint32) {
	t.Helper()
	setTrap(rt, code, arg1, arg2)
	if err := rt.Ecall(); err != nil {
		t.Fatalf("Trap %#08x failed: %v", code, err)
	}
}
