package integration_test

import (
	"testing"

	"github.com/rlyzurjf57/sp1/internal/sp1-core/runtime"
)

// Test06_DecodeIsFatal checks that every assigned code round-trips and
// that an unassigned one stops the machine.
func Test06_DecodeIsFatal(t *testing.T) {
	t.Log("=== Test 06: code decoding ===")

	for _, code := range runtime.AllSyscallCodes() {
		got, ok := runtime.LookupSyscallCode(code.Uint32())
		if !ok || got != code {
			t.Errorf("%s does not round-trip", code)
		}
	}

	rt := newRuntime(t, nil, nil, nil)
	setTrap(rt, 0x00_80_01_7f, 0, 0)
	err := rt.Ecall()
	f, ok := runtime.AsFault(err)
	if !ok || f.Kind != runtime.FaultMalformedCode {
		t.Fatalf("Expected a malformed-code fault, got %v", err)
	}

	setTrap(rt, 0x00_00_00_02, 0, 0)
	if err := rt.Ecall(); err == nil {
		t.Fatal("Runtime should refuse traps after a fault")
	}

	t.Log("✓ Unassigned code is fatal")
}
