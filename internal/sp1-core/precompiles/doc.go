// Package precompiles groups the cryptographic syscalls. Each subpackage
// implements runtime.Syscall for one family of circuits and touches guest
// memory only through the runtime.SyscallContext it is handed.
//
// Buffers are little-endian words. Every precompile costs
// NumExtraCycles cycles on top of its trap, matching the cost class byte of
// its code.
package precompiles

// NumExtraCycles is the extra cycle cost shared by all precompiles.
const NumExtraCycles = 128
