// Package zkvm holds the syscall numbers as the guest sees them. A guest
// loads one into t0, its arguments into a0 and a1, and executes ecall.
//
// The values are written out here rather than derived from the host so
// that guest tooling can depend on this package alone; a test keeps the
// two sides in step.
package zkvm

// Syscall numbers.
const (
	Halt                uint32 = 0x01_00_00_00
	LWA                 uint32 = 0x00_00_00_01
	Write               uint32 = 0x00_00_00_02
	EnterUnconstrained  uint32 = 0x00_00_00_03
	ExitUnconstrained   uint32 = 0x00_00_00_04
	ShaExtend           uint32 = 0x00_80_01_00
	ShaCompress         uint32 = 0x00_80_01_01
	EdAdd               uint32 = 0x00_80_01_02
	EdDecompress        uint32 = 0x00_80_01_03
	KeccakPermute       uint32 = 0x00_80_01_04
	Secp256k1Add        uint32 = 0x00_80_01_05
	Secp256k1Double     uint32 = 0x00_80_01_06
	Secp256k1Decompress uint32 = 0x00_80_01_07
	Blake3CompressInner uint32 = 0x00_80_01_08
)

// Registers of the trap convention.
const (
	RegisterT0 = 5
	RegisterA0 = 10
	RegisterA1 = 11
)

// Names maps every syscall number to its name.
var Names = map[uint32]string{
	Halt:                "HALT",
	LWA:                 "LWA",
	Write:               "WRITE",
	EnterUnconstrained:  "ENTER_UNCONSTRAINED",
	ExitUnconstrained:   "EXIT_UNCONSTRAINED",
	ShaExtend:           "SHA_EXTEND",
	ShaCompress:         "SHA_COMPRESS",
	EdAdd:               "ED_ADD",
	EdDecompress:        "ED_DECOMPRESS",
	KeccakPermute:       "KECCAK_PERMUTE",
	Secp256k1Add:        "SECP256K1_ADD",
	Secp256k1Double:     "SECP256K1_DOUBLE",
	Secp256k1Decompress: "SECP256K1_DECOMPRESS",
	Blake3CompressInner: "BLAKE3_COMPRESS_INNER",
}
