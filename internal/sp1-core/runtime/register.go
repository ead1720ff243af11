package runtime

import "fmt"

// Register is an index into the 32-entry integer register file.
type Register uint8

const (
	X0 Register = iota
	X1
	X2
	X3
	X4
	X5
	X6
	X7
	X8
	X9
	X10
	X11
	X12
	X13
	X14
	X15
	X16
	X17
	X18
	X19
	X20
	X21
	X22
	X23
	X24
	X25
	X26
	X27
	X28
	X29
	X30
	X31
)

// NumRegisters is the size of the register file.
const NumRegisters = 32

// Trap calling convention: the code travels in t0, which also carries the
// return value back; the arguments are a0 and a1.
const (
	RegisterSyscallCode = X5
	RegisterReturn      = X5
	RegisterArg1        = X10
	RegisterArg2        = X11
)

func (r Register) String() string {
	return fmt.Sprintf("x%d", uint8(r))
}
