package runtime

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Syscall is implemented by every operation reachable through ecall, from
// the basic services to the cryptographic precompiles.
type Syscall interface {
	// Execute runs the syscall. arg1 and arg2 are the values of a0 and a1
	// at the trap. Returning ok asks the runtime to place value in t0; by
	// convention only basic services such as LWA do so, while precompiles
	// treat arg1 and arg2 as pointers and write their result to memory at
	// arg1.
	//
	// All memory traffic must go through ctx.
	Execute(ctx *SyscallContext, arg1, arg2 uint32) (value uint32, ok bool)

	// NumExtraCycles is the number of cycles the syscall takes on top of
	// the trap itself. It must equal the cost class byte of its code.
	NumExtraCycles() uint32
}

// SyscallMap resolves codes to shared, stateless implementations. It is
// filled once at construction and only read afterwards.
type SyscallMap map[SyscallCode]Syscall

// Insert registers impl under code. An existing entry is replaced without
// notice, so construction lists must not repeat a code.
func (m SyscallMap) Insert(code SyscallCode, impl Syscall) {
	m[code] = impl
}

// Get returns the implementation registered under code.
func (m SyscallMap) Get(code SyscallCode) (Syscall, bool) {
	impl, ok := m[code]
	return impl, ok
}

// Codes returns the registered codes in ascending order.
func (m SyscallMap) Codes() []SyscallCode {
	codes := make([]SyscallCode, 0, len(m))
	for code := range m {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// CheckConsistency verifies that every implementation declares the extra
// cycles its code advertises, and that nothing is registered under an
// unassigned code. A drift here would desynchronize cycle accounting
// between execution and proving.
func (m SyscallMap) CheckConsistency() error {
	var problems []string
	for _, code := range m.Codes() {
		if _, ok := LookupSyscallCode(uint32(code)); !ok {
			problems = append(problems, code.String()+": unassigned code")
			continue
		}
		impl := m[code]
		if impl == nil {
			problems = append(problems, code.String()+": nil implementation")
			continue
		}
		if got, want := impl.NumExtraCycles(), code.ExtraCyclesHint(); got != want {
			problems = append(problems, fmt.Sprintf("%s: declares %d extra cycles, code encodes %d", code, got, want))
		}
	}
	if len(problems) > 0 {
		return errors.Errorf("inconsistent syscall map: %s", strings.Join(problems, "; "))
	}
	return nil
}
