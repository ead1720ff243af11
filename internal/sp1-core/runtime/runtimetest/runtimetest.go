// Package runtimetest provides helpers for testing syscalls against a real
// runtime.
package runtimetest

import (
	"testing"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/record"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/runtime"
	"github.com/rlyzurjf57/sp1/internal/sp1-core/utils"
)

// Image builds a memory image holding words at consecutive addresses from
// addr.
func Image(addr uint32, words []uint32) map[uint32]uint32 {
	image := make(map[uint32]uint32, len(words))
	for i, w := range words {
		image[addr+uint32(i)*runtime.WordSize] = w
	}
	return image
}

// Merge combines images. Later images win on overlap.
func Merge(images ...map[uint32]uint32) map[uint32]uint32 {
	out := make(map[uint32]uint32)
	for _, image := range images {
		for addr, w := range image {
			out[addr] = w
		}
	}
	return out
}

// NewRuntime creates a runtime with a default config and only impl
// registered under code, loaded with image.
func NewRuntime(t testing.TB, code runtime.SyscallCode, impl runtime.Syscall, image map[uint32]uint32) *runtime.Runtime {
	t.Helper()
	m := runtime.SyscallMap{}
	m.Insert(code, impl)
	rt, err := runtime.New(utils.DefaultConfig(), m, nil, nil)
	if err != nil {
		t.Fatalf("runtime.New failed: %v", err)
	}
	if err := rt.InitMemory(image); err != nil {
		t.Fatalf("InitMemory failed: %v", err)
	}
	return rt
}

// Trap sets up the registers for code and services one ecall.
func Trap(rt *runtime.Runtime, code runtime.SyscallCode, arg1, arg2 uint32) error {
	rt.SetRegister(runtime.RegisterSyscallCode, code.Uint32())
	rt.SetRegister(runtime.RegisterArg1, arg1)
	rt.SetRegister(runtime.RegisterArg2, arg2)
	return rt.Ecall()
}

// Run executes a single syscall on a fresh runtime and fails the test if
// it faults.
func Run(t testing.TB, code runtime.SyscallCode, impl runtime.Syscall, image map[uint32]uint32, arg1, arg2 uint32) *runtime.Runtime {
	t.Helper()
	rt := NewRuntime(t, code, impl, image)
	if err := Trap(rt, code, arg1, arg2); err != nil {
		t.Fatalf("%s failed: %v", code, err)
	}
	return rt
}

// Words returns n words of rt's memory starting at addr.
func Words(rt *runtime.Runtime, addr uint32, n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = rt.State().Memory[addr+uint32(i)*runtime.WordSize].Value
	}
	return out
}

// LastEvent returns the last syscall event of the shard in progress.
func LastEvent(t testing.TB, rt *runtime.Runtime) record.SyscallEvent {
	t.Helper()
	events := rt.Record().SyscallEvents
	if len(events) == 0 {
		t.Fatalf("no syscall event recorded")
	}
	return events[len(events)-1]
}
