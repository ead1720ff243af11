package runtime

import "fmt"

// SyscallCode identifies a syscall. It is the value the guest places in t0
// before executing ecall.
//
// The code is laid out in four bytes, most significant first:
//
//	[category][cost class][family][variant]
//
// category is 0 for normal syscalls and 1 for halt-class ones. The cost class
// byte is the number of extra cycles the syscall consumes (0 or 0x80).
type SyscallCode uint32

const (
	// SysHalt halts the program.
	SysHalt SyscallCode = 0x01_00_00_00

	// SysLWA loads a word supplied by the prover.
	SysLWA SyscallCode = 0x00_00_00_01

	// SysWrite appends words to the committed output.
	SysWrite SyscallCode = 0x00_00_00_02

	// SysEnterUnconstrained enters an unconstrained block.
	SysEnterUnconstrained SyscallCode = 0x00_00_00_03

	// SysExitUnconstrained exits an unconstrained block.
	SysExitUnconstrained SyscallCode = 0x00_00_00_04

	SysShaExtend           SyscallCode = 0x00_80_01_00
	SysShaCompress         SyscallCode = 0x00_80_01_01
	SysEdAdd               SyscallCode = 0x00_80_01_02
	SysEdDecompress        SyscallCode = 0x00_80_01_03
	SysKeccakPermute       SyscallCode = 0x00_80_01_04
	SysSecp256k1Add        SyscallCode = 0x00_80_01_05
	SysSecp256k1Double     SyscallCode = 0x00_80_01_06
	SysSecp256k1Decompress SyscallCode = 0x00_80_01_07
	SysBlake3CompressInner SyscallCode = 0x00_80_01_08
)

var syscallNames = map[SyscallCode]string{
	SysHalt:                "HALT",
	SysLWA:                 "LWA",
	SysWrite:               "WRITE",
	SysEnterUnconstrained:  "ENTER_UNCONSTRAINED",
	SysExitUnconstrained:   "EXIT_UNCONSTRAINED",
	SysShaExtend:           "SHA_EXTEND",
	SysShaCompress:         "SHA_COMPRESS",
	SysEdAdd:               "ED_ADD",
	SysEdDecompress:        "ED_DECOMPRESS",
	SysKeccakPermute:       "KECCAK_PERMUTE",
	SysSecp256k1Add:        "SECP256K1_ADD",
	SysSecp256k1Double:     "SECP256K1_DOUBLE",
	SysSecp256k1Decompress: "SECP256K1_DECOMPRESS",
	SysBlake3CompressInner: "BLAKE3_COMPRESS_INNER",
}

// AllSyscallCodes returns every assigned code in ascending numeric order.
func AllSyscallCodes() []SyscallCode {
	return []SyscallCode{
		SysLWA,
		SysWrite,
		SysEnterUnconstrained,
		SysExitUnconstrained,
		SysShaExtend,
		SysShaCompress,
		SysEdAdd,
		SysEdDecompress,
		SysKeccakPermute,
		SysSecp256k1Add,
		SysSecp256k1Double,
		SysSecp256k1Decompress,
		SysBlake3CompressInner,
		SysHalt,
	}
}

// LookupSyscallCode maps raw to a code without faulting. Tools use it to
// validate input before it ever reaches a runtime.
func LookupSyscallCode(raw uint32) (SyscallCode, bool) {
	code := SyscallCode(raw)
	_, ok := syscallNames[code]
	return code, ok
}

// SyscallCodeFromUint32 decodes raw into a code. Unassigned values mean the
// guest program is malformed or the interpreter is broken, so they raise a
// malformed-code fault instead of returning an error.
func SyscallCodeFromUint32(raw uint32) SyscallCode {
	code, ok := LookupSyscallCode(raw)
	if !ok {
		malformedCode("invalid syscall number: %#08x", raw)
	}
	return code
}

// Uint32 returns the raw encoding.
func (c SyscallCode) Uint32() uint32 {
	return uint32(c)
}

// ExtraCyclesHint is the cost class byte. It depends only on the code, so
// the interpreter can account cycles before dispatch.
func (c SyscallCode) ExtraCyclesHint() uint32 {
	return (uint32(c) >> 16) & 0xff
}

// IsHalt reports whether the category byte marks a halt-class syscall.
func (c SyscallCode) IsHalt() bool {
	return uint32(c)>>24 == 1
}

// Family returns the family id byte.
func (c SyscallCode) Family() uint8 {
	return uint8(uint32(c) >> 8)
}

// Variant returns the variant id byte.
func (c SyscallCode) Variant() uint8 {
	return uint8(c)
}

func (c SyscallCode) String() string {
	if name, ok := syscallNames[c]; ok {
		return name
	}
	return fmt.Sprintf("SyscallCode(%#08x)", uint32(c))
}
